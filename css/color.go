package css

import (
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// small subset of CSS named colors, enough for hand written catalogs
var namedColors = map[string]string{
	"black":       "#000000",
	"white":       "#ffffff",
	"red":         "#ff0000",
	"green":       "#008000",
	"blue":        "#0000ff",
	"yellow":      "#ffff00",
	"orange":      "#ffa500",
	"purple":      "#800080",
	"gray":        "#808080",
	"grey":        "#808080",
	"silver":      "#c0c0c0",
	"navy":        "#000080",
	"teal":        "#008080",
	"maroon":      "#800000",
	"olive":       "#808000",
	"lime":        "#00ff00",
	"aqua":        "#00ffff",
	"cyan":        "#00ffff",
	"fuchsia":     "#ff00ff",
	"magenta":     "#ff00ff",
	"transparent": "#ffffff",
}

// ParseColor converts CSS color notation (hex, rgb(), rgba(), hsl(),
// hsla() or basic color name) into a color. Alpha is reported separately
// in range [0, 1].
func ParseColor(s string) (colorful.Color, float64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[s]; ok {
		c, _ := colorful.Hex(hex)
		alpha := 1.0
		if s == "transparent" {
			alpha = 0
		}
		return c, alpha, true
	}

	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}

	name, args, ok := splitFunction(s)
	if !ok {
		return colorful.Color{}, 0, false
	}
	switch name {
	case "rgb", "rgba":
		if len(args) < 3 {
			return colorful.Color{}, 0, false
		}
		var ch [3]float64
		for i := range 3 {
			v, ok := parseChannel(args[i], 255)
			if !ok {
				return colorful.Color{}, 0, false
			}
			ch[i] = v
		}
		alpha := 1.0
		if len(args) > 3 {
			if alpha, ok = parseChannel(args[3], 1); !ok {
				return colorful.Color{}, 0, false
			}
		}
		return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}.Clamped(), alpha, true
	case "hsl", "hsla":
		if len(args) < 3 {
			return colorful.Color{}, 0, false
		}
		h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
		if err != nil {
			return colorful.Color{}, 0, false
		}
		sat, ok1 := parseChannel(args[1], 100)
		lum, ok2 := parseChannel(args[2], 100)
		if !ok1 || !ok2 {
			return colorful.Color{}, 0, false
		}
		alpha := 1.0
		if len(args) > 3 {
			if alpha, ok = parseChannel(args[3], 1); !ok {
				return colorful.Color{}, 0, false
			}
		}
		return colorful.Hsl(h, sat, lum).Clamped(), alpha, true
	}
	return colorful.Color{}, 0, false
}

// IsColor reports whether string is a color ParseColor understands.
func IsColor(s string) bool {
	_, _, ok := ParseColor(s)
	return ok
}

func parseHex(h string) (colorful.Color, float64, bool) {
	alpha := 1.0
	switch len(h) {
	case 3, 4:
		var sb strings.Builder
		for _, r := range h {
			sb.WriteRune(r)
			sb.WriteRune(r)
		}
		h = sb.String()
	case 6, 8:
	default:
		return colorful.Color{}, 0, false
	}
	if len(h) == 8 {
		a, err := strconv.ParseUint(h[6:], 16, 8)
		if err != nil {
			return colorful.Color{}, 0, false
		}
		alpha = float64(a) / 255
		h = h[:6]
	}
	c, err := colorful.Hex("#" + h)
	if err != nil {
		return colorful.Color{}, 0, false
	}
	return c, alpha, true
}

func splitFunction(s string) (string, []string, bool) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", nil, false
	}
	inner := s[open+1 : len(s)-1]
	// both "rgb(1, 2, 3)" and "rgb(1 2 3 / 50%)" forms
	inner = strings.NewReplacer(",", " ", "/", " ").Replace(inner)
	return strings.TrimSpace(s[:open]), strings.Fields(inner), true
}

// parseChannel returns channel in [0, 1], scale is the value of a plain
// number representing full intensity.
func parseChannel(s string, scale float64) (float64, bool) {
	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, false
		}
		return min(max(v/100, 0), 1), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return min(max(v/scale, 0), 1), true
}
