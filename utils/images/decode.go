// Package images loads images referenced from content and encodes
// rasterized output.
package images

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupported is returned for data which is not a known image format.
var ErrUnsupported = errors.New("unsupported image format")

// Decode decodes raster or SVG image. SVG is rasterized at its intrinsic
// size. Returned string is detected MIME type.
func Decode(data []byte) (image.Image, string, error) {
	if IsSVG(data) {
		img, err := RasterizeSVG(data, 0, 0)
		if err != nil {
			return nil, "", fmt.Errorf("unable to rasterize svg: %w", err)
		}
		return img, "image/svg+xml", nil
	}
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || !filetype.IsImage(data) {
		return nil, "", ErrUnsupported
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, kind.MIME.Value, fmt.Errorf("unable to decode %s: %w", kind.MIME.Value, err)
	}
	return img, kind.MIME.Value, nil
}

// Read returns bytes of image reference: data URI or a file path, relative
// paths are resolved against baseDir.
func Read(ref, baseDir string) ([]byte, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return nil, errors.New("empty image reference")
	case strings.HasPrefix(ref, "data:"):
		return decodeDataURI(ref)
	case strings.HasPrefix(ref, "file://"):
		u, err := url.Parse(ref)
		if err != nil {
			return nil, fmt.Errorf("bad image reference %q: %w", ref, err)
		}
		ref = u.Path
	case strings.Contains(ref, "://"):
		return nil, fmt.Errorf("remote image reference %q is not supported", ref)
	}
	if !filepath.IsAbs(ref) && baseDir != "" {
		ref = filepath.Join(baseDir, ref)
	}
	return os.ReadFile(ref)
}

// Load reads and decodes image reference.
func Load(ref, baseDir string) (image.Image, error) {
	data, err := Read(ref, baseDir)
	if err != nil {
		return nil, err
	}
	img, _, err := Decode(data)
	return img, err
}

// Fill scales and crops image to cover w x h box, the way CSS
// "background-size: cover" does.
func Fill(img image.Image, w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return img
	}
	return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
}

func decodeDataURI(ref string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return nil, errors.New("malformed data URI")
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			// some producers drop padding
			if data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "=")); err != nil {
				return nil, fmt.Errorf("malformed data URI: %w", err)
			}
		}
		return data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("malformed data URI: %w", err)
	}
	return []byte(s), nil
}
