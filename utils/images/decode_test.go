package images

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/url"
	"os"
	"path/filepath"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	img, mime, err := Decode(pngBytes(t, 6, 4))
	if err != nil || mime != "image/png" || img.Bounds().Dx() != 6 {
		t.Fatalf("png: %v %q %v", img, mime, err)
	}

	img, mime, err = Decode([]byte(testSVG))
	if err != nil || mime != "image/svg+xml" || img.Bounds().Dx() != 100 {
		t.Fatalf("svg: %q %v", mime, err)
	}
	if c := color.NRGBAModel.Convert(img.At(50, 25)).(color.NRGBA); c.R != 0xff || c.G != 0 {
		t.Errorf("svg pixel = %v", c)
	}

	if _, _, err := Decode([]byte("plain text")); !errors.Is(err, ErrUnsupported) {
		t.Errorf("text: err = %v", err)
	}
	if _, _, err := Decode([]byte("%PDF-1.7\n")); !errors.Is(err, ErrUnsupported) {
		t.Errorf("pdf: err = %v", err)
	}
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	data := pngBytes(t, 2, 2)
	if err := os.WriteFile(filepath.Join(dir, "bg.png"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		ref     string
		want    []byte
		wantErr bool
	}{
		{name: "relative", ref: "bg.png", want: data},
		{name: "absolute", ref: filepath.Join(dir, "bg.png"), want: data},
		{name: "file url", ref: (&url.URL{Scheme: "file", Path: filepath.Join(dir, "bg.png")}).String(), want: data},
		{name: "base64", ref: "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), want: data},
		{name: "unpadded", ref: "data:image/png;base64," + base64.RawStdEncoding.EncodeToString(data), want: data},
		{name: "percent", ref: "data:image/svg+xml," + url.PathEscape(testSVG), want: []byte(testSVG)},
		{name: "missing", ref: "nope.png", wantErr: true},
		{name: "remote", ref: "https://example.com/a.png", wantErr: true},
		{name: "empty", ref: " ", wantErr: true},
		{name: "malformed", ref: "data:image/png;base64", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(tt.ref, dir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Read() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !bytes.Equal(got, tt.want) {
				t.Errorf("Read() returned %d bytes, want %d", len(got), len(tt.want))
			}
		})
	}
}

func TestLoadAndFill(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "wide.png"), pngBytes(t, 40, 10), 0o644); err != nil {
		t.Fatal(err)
	}
	img, err := Load("wide.png", dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	filled := Fill(img, 20, 20)
	if filled.Bounds().Dx() != 20 || filled.Bounds().Dy() != 20 {
		t.Errorf("Fill() bounds = %v", filled.Bounds())
	}
	if same := Fill(img, 0, 20); same != img {
		t.Error("Fill() with empty box must return image unchanged")
	}
}
