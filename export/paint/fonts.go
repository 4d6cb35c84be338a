// Package paint lays out rendered pages on a fixed canvas and draws them
// with tdewolff/canvas. PDF, raster and PPTX exporters share it, so page
// geometry is computed in one place.
package paint

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-fonts/latin-modern/lmsans10oblique"
	"github.com/go-fonts/latin-modern/lmsans10regular"
	"github.com/tdewolff/canvas"
)

const (
	// CSS pixel to millimeter
	mmPerPx = 25.4 / 96
	// CSS pixel to point
	ptPerPx = 72.0 / 96
)

// FontFamilyName is the family every page is set in.
const FontFamilyName = "Latin Modern Sans"

type fontSet struct {
	family *canvas.FontFamily
}

var (
	loadOnce sync.Once
	loaded   *fontSet
	loadErr  error
)

// fonts are parsed once per process and shared by all painters
func loadFonts() (*fontSet, error) {
	loadOnce.Do(func() {
		family := canvas.NewFontFamily(FontFamilyName)
		for _, f := range []struct {
			name  string
			data  []byte
			style canvas.FontStyle
		}{
			{"regular", lmsans10regular.TTF, canvas.FontRegular},
			{"bold", lmsans10bold.TTF, canvas.FontBold},
			{"oblique", lmsans10oblique.TTF, canvas.FontRegular | canvas.FontItalic},
		} {
			if err := family.LoadFont(f.data, 0, f.style); err != nil {
				loadErr = fmt.Errorf("unable to load %s font: %w", f.name, err)
				return
			}
		}
		loaded = &fontSet{family: family}
	})
	return loaded, loadErr
}

// face returns font face for size in CSS pixels.
func (fs *fontSet) face(sizePx float64, col color.Color, bold, italic bool) *canvas.FontFace {
	// only regular, bold and oblique faces are loaded
	style := canvas.FontRegular
	switch {
	case bold:
		style = canvas.FontBold
	case italic:
		style |= canvas.FontItalic
	}
	return fs.family.Face(sizePx*ptPerPx, col, style, canvas.FontNormal)
}

// width returns text width in CSS pixels.
func width(face *canvas.FontFace, s string) float64 {
	return face.TextWidth(s) / mmPerPx
}
