// Package raster captures single rendered page as PNG or JPEG image.
package raster

import (
	"context"
	"errors"
	"image/png"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"pagecraft/common"
	"pagecraft/export/paint"
	"pagecraft/render"
	"pagecraft/utils/images"
)

// cssDPI is resolution at which one CSS pixel is one image pixel.
const cssDPI = 96

// Options for image capture.
type Options struct {
	Painter *paint.Painter
	// device pixels per CSS pixel
	Scale       float64
	Compression png.CompressionLevel
	JPEG        bool
	JPEGQuality int
}

// Generate draws page and encodes it.
func Generate(ctx context.Context, page *render.Fragment, shape common.Shape, w io.Writer, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if opts.Painter == nil {
		return errors.New("no painter")
	}
	c, _, err := opts.Painter.Canvas(page, shape)
	if err != nil {
		return err
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	dpi := cssDPI * scale
	img := rasterizer.Draw(c, canvas.DPI(dpi), canvas.DefaultColorSpace)

	if opts.JPEG {
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		return images.EncodeJPEG(w, img, quality, int(dpi))
	}
	return images.EncodePNG(w, img, opts.Compression)
}
