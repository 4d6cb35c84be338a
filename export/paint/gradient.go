package paint

import (
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"pagecraft/css"
)

// GradientImage rasterizes CSS gradient into w x h image. Linear
// gradients follow CSS gradient line definition, radial gradients are
// farthest-corner ellipses centered in the box.
func GradientImage(g css.Gradient, w, h int) *image.NRGBA {
	w, h = max(w, 1), max(h, 1)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	rad := g.Angle * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	length := math.Abs(float64(w)*dx) + math.Abs(float64(h)*dy)
	cx, cy := float64(w)/2, float64(h)/2
	rx, ry := cx*math.Sqrt2, cy*math.Sqrt2

	alphaAt := func(t float64) float64 {
		stops := g.Stops
		if t <= stops[0].Offset {
			return stops[0].Alpha
		}
		for i := 1; i < len(stops); i++ {
			if t <= stops[i].Offset {
				span := stops[i].Offset - stops[i-1].Offset
				if span <= 0 {
					return stops[i].Alpha
				}
				k := (t - stops[i-1].Offset) / span
				return stops[i-1].Alpha + (stops[i].Alpha-stops[i-1].Alpha)*k
			}
		}
		return stops[len(stops)-1].Alpha
	}

	for y := range h {
		for x := range w {
			px, py := float64(x)+0.5-cx, float64(y)+0.5-cy
			var t float64
			if g.Radial {
				t = math.Hypot(px/rx, py/ry)
			} else if length > 0 {
				t = (px*dx+py*dy)/length + 0.5
			}
			t = min(max(t, 0), 1)
			img.SetNRGBA(x, y, toNRGBA(g.At(t), alphaAt(t)))
		}
	}
	return img
}

func toNRGBA(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(min(max(alpha, 0), 1) * 255))}
}
