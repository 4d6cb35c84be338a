package paint

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"pagecraft/css"
)

func cssColor(s string) (colorful.Color, float64, bool) {
	return css.ParseColor(s)
}

func withAlpha(c colorful.Color, alpha float64) color.Color {
	return toNRGBA(c, alpha)
}
