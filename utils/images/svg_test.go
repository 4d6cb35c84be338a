package images

import "testing"

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50"><rect width="100" height="50" fill="#ff0000"/></svg>`

func TestRasterizeSVG(t *testing.T) {
	svg := []byte(testSVG)

	tests := []struct {
		name         string
		tw, th       int
		wantW, wantH int
	}{
		{"intrinsic", 0, 0, 100, 50},
		{"scale_by_width", 200, 0, 200, 100},
		{"scale_by_height", 0, 200, 400, 200},
		{"fit_box", 150, 150, 150, 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := RasterizeSVG(svg, tt.tw, tt.th)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if img.Bounds().Dx() != tt.wantW || img.Bounds().Dy() != tt.wantH {
				t.Fatalf("unexpected bounds: %v", img.Bounds())
			}
		})
	}
}

func TestIsSVG(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{testSVG, true},
		{"  \n" + testSVG, true},
		{`<?xml version="1.0"?>` + "\n" + testSVG, true},
		{`<?xml version="1.0"?><html/>`, false},
		{"\x89PNG\r\n", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsSVG([]byte(tt.in)); got != tt.want {
			t.Errorf("IsSVG(%.20q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
