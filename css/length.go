package css

import (
	"strings"
)

// ParseLength parses single CSS length ("12px", "1.5em", "0") and returns
// it in pixels, relative units are resolved against base font size.
func ParseLength(s string, base float64) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, unit := parseDimension(s)
	if unit == "" && strings.TrimLeft(s, "+-.0123456789eE") != "" {
		return 0, false
	}
	return Value{Raw: s, Value: v, Unit: unit}.Pixels(base)
}

// Box expands 1 to 4 value shorthand (padding, margin) into top, right,
// bottom and left lengths in pixels. Values which are not lengths are 0.
func Box(s string, base float64) [4]float64 {
	var sides []float64
	for _, f := range strings.Fields(s) {
		v, _ := ParseLength(f, base)
		sides = append(sides, v)
	}
	switch len(sides) {
	case 1:
		return [4]float64{sides[0], sides[0], sides[0], sides[0]}
	case 2:
		return [4]float64{sides[0], sides[1], sides[0], sides[1]}
	case 3:
		return [4]float64{sides[0], sides[1], sides[2], sides[1]}
	case 4:
		return [4]float64{sides[0], sides[1], sides[2], sides[3]}
	}
	return [4]float64{}
}
