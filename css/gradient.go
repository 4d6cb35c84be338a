package css

import (
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// GradientStop is a color position on gradient line, offset is in [0, 1].
type GradientStop struct {
	Color  colorful.Color
	Alpha  float64
	Offset float64
}

// Gradient is parsed linear-gradient() or radial-gradient() value. Angle
// follows CSS convention: 0 points up, 90 to the right, default is 180.
type Gradient struct {
	Radial bool
	Angle  float64
	Stops  []GradientStop
}

var sideAngles = map[string]float64{
	"to top":          0,
	"to right":        90,
	"to bottom":       180,
	"to left":         270,
	"to top right":    45,
	"to right top":    45,
	"to bottom right": 135,
	"to right bottom": 135,
	"to bottom left":  225,
	"to left bottom":  225,
	"to top left":     315,
	"to left top":     315,
}

// ParseGradient parses gradient function. At least two color stops are
// required, missing stop positions are distributed evenly.
func ParseGradient(s string) (Gradient, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return Gradient{}, false
	}

	g := Gradient{Angle: 180}
	switch strings.TrimPrefix(s[:open], "repeating-") {
	case "linear-gradient":
	case "radial-gradient":
		g.Radial = true
	default:
		return Gradient{}, false
	}

	args := splitTopLevel(s[open+1 : len(s)-1])
	if len(args) == 0 {
		return Gradient{}, false
	}
	if dir, ok := parseDirection(args[0], g.Radial); ok {
		g.Angle = dir
		args = args[1:]
	}

	for _, arg := range args {
		colorPart, offsetPart := splitStop(arg)
		c, alpha, ok := ParseColor(colorPart)
		if !ok {
			return Gradient{}, false
		}
		offset := math.NaN()
		if offsetPart != "" {
			if p, ok := strings.CutSuffix(offsetPart, "%"); ok {
				v, err := strconv.ParseFloat(p, 64)
				if err != nil {
					return Gradient{}, false
				}
				offset = min(max(v/100, 0), 1)
			}
		}
		g.Stops = append(g.Stops, GradientStop{Color: c, Alpha: alpha, Offset: offset})
	}
	if len(g.Stops) < 2 {
		return Gradient{}, false
	}
	distributeOffsets(g.Stops)
	return g, true
}

// At returns gradient color at position t in [0, 1].
func (g Gradient) At(t float64) colorful.Color {
	if len(g.Stops) == 0 {
		return colorful.Color{}
	}
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t <= b.Offset {
			if b.Offset <= a.Offset {
				return b.Color
			}
			return a.Color.BlendRgb(b.Color, (t-a.Offset)/(b.Offset-a.Offset)).Clamped()
		}
	}
	return g.Stops[len(g.Stops)-1].Color
}

func parseDirection(arg string, radial bool) (float64, bool) {
	if radial {
		// shape and position are not used, only presence is detected
		if _, _, ok := ParseColor(firstField(arg)); !ok {
			return 180, true
		}
		return 0, false
	}
	if a, ok := sideAngles[strings.Join(strings.Fields(arg), " ")]; ok {
		return a, true
	}
	for unit, scale := range map[string]float64{"deg": 1, "turn": 360, "rad": 180 / math.Pi, "grad": 0.9} {
		if v, ok := strings.CutSuffix(arg, unit); ok {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return math.Mod(math.Mod(f*scale, 360)+360, 360), true
			}
		}
	}
	return 0, false
}

func firstField(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return ""
}

// splitStop separates "rgb(0, 0, 0) 50%" into color and position.
func splitStop(arg string) (string, string) {
	arg = strings.TrimSpace(arg)
	if strings.HasSuffix(arg, ")") {
		return arg, ""
	}
	i := strings.LastIndexByte(arg, ' ')
	if i < 0 {
		return arg, ""
	}
	return strings.TrimSpace(arg[:i]), arg[i+1:]
}

// splitTopLevel splits function arguments on commas outside of nested
// parentheses.
func splitTopLevel(s string) []string {
	var (
		res   []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				res = append(res, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(s[start:]); last != "" {
		res = append(res, last)
	}
	return res
}

func distributeOffsets(stops []GradientStop) {
	if math.IsNaN(stops[0].Offset) {
		stops[0].Offset = 0
	}
	if last := len(stops) - 1; math.IsNaN(stops[last].Offset) {
		stops[last].Offset = 1
	}
	for i := 1; i < len(stops); i++ {
		if !math.IsNaN(stops[i].Offset) {
			continue
		}
		j := i
		for math.IsNaN(stops[j].Offset) {
			j++
		}
		from, to := stops[i-1].Offset, stops[j].Offset
		for k := i; k < j; k++ {
			stops[k].Offset = from + (to-from)*float64(k-i+1)/float64(j-i+1)
		}
		i = j
	}
	// positions may not decrease
	for i := 1; i < len(stops); i++ {
		stops[i].Offset = max(stops[i].Offset, stops[i-1].Offset)
	}
}
