package paint

import (
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"pagecraft/common"
	"pagecraft/css"
	"pagecraft/render"
	"pagecraft/style"
)

// Box is a positioned block of a page. Coordinates are CSS pixels from the
// top left corner of the page.
type Box struct {
	Node       *render.Fragment
	X, Y, W, H float64
	Lines      []string
	Size       float64
	LineHeight float64
	Bold       bool
	Italic     bool
	Color      colorful.Color
	Alpha      float64
	// empty when box has no fill
	Fill  string
	Align string
}

// Page is laid out rendered item.
type Page struct {
	Node          *render.Fragment
	Width, Height float64
	Background    render.Background
	Boxes         []*Box
}

// PageSize returns canvas size in CSS pixels. Shapes without fixed height
// use 16:9 frame.
func PageSize(shape common.Shape) (float64, float64) {
	w, h := float64(shape.Width), float64(shape.Height)
	if w <= 0 {
		w = 1280
	}
	if h <= 0 {
		h = math.Round(w * 9 / 16)
	}
	return w, h
}

// Layout positions visible nodes of a rendered page top to bottom inside
// its padding box.
func (p *Painter) Layout(page *render.Fragment, shape common.Shape) *Page {
	w, h := PageSize(shape)
	st := page.Style
	pg := &Page{Node: page, Width: w, Height: h, Background: page.Background}

	pad := st.Box(style.Padding)
	if pad == [4]float64{} {
		pad = [4]float64{48, 48, 48, 48}
	}
	contentW := max(w-pad[1]-pad[3], 1)
	align := textAlign(st.Value(style.TextAlign))
	italic := st.Value("fontStyle") == "italic"
	base := st.FontSize()
	textColor, textAlpha := colorOf(st.Value(style.Color), colorful.Color{})

	y := pad[0]
	add := func(b *Box, gap float64) {
		b.Y = y
		y += b.H + gap
		pg.Boxes = append(pg.Boxes, b)
	}

	for _, n := range page.Children {
		switch n.Role {
		case render.RoleBackground:
			continue
		case render.RoleMetric:
			for _, part := range n.Children {
				if part.Text == "" {
					continue
				}
				b := p.textBox(part, base, contentW, textColor, textAlpha, false)
				b.X, b.Align = pad[3], align
				add(b, b.Size*0.2)
			}
			y += base * 0.6
		case render.RoleSwatch:
			if fill, ok := n.Extra.Get("background"); ok {
				add(&Box{Node: n, X: pad[3], W: 64, H: 64, Fill: fill.Raw, Align: align}, base*0.5)
			}
		case render.RoleAction:
			if n.Text == "" {
				continue
			}
			b := p.textBox(n, base, contentW-56, textColor, textAlpha, italic)
			b.W = min(b.W+56, contentW)
			b.H += 24
			if fill, ok := n.Extra.Get("background"); ok {
				b.Fill = fill.Raw
			}
			b.Align = "center"
			switch align {
			case "center":
				b.X = pad[3] + (contentW-b.W)/2
			case "right":
				b.X = pad[3] + contentW - b.W
			default:
				b.X = pad[3]
			}
			add(b, b.Size*0.5)
		default:
			if n.Text == "" {
				continue
			}
			b := p.textBox(n, base, contentW, textColor, textAlpha, italic)
			b.X, b.W, b.Align = pad[3], contentW, align
			add(b, b.Size*0.5)
		}
	}

	used := y - pad[0]
	if len(pg.Boxes) > 0 {
		last := pg.Boxes[len(pg.Boxes)-1]
		used = last.Y + last.H - pad[0]
	}
	if shape.Height <= 0 {
		// content driven height
		pg.Height = max(math.Ceil(used+pad[0]+pad[2]), 200)
		return pg
	}
	if shift := verticalShift(st, h-pad[0]-pad[2], used); shift > 0 {
		for _, b := range pg.Boxes {
			b.Y += shift
		}
	}
	return pg
}

// textBox wraps node text into lines which fit into maxW.
func (p *Painter) textBox(n *render.Fragment, base, maxW float64, col colorful.Color, alpha float64, italic bool) *Box {
	b := &Box{Node: n, Size: n.FontSize(base), Bold: n.Bold(), Italic: italic, Color: col, Alpha: alpha}
	if v, ok := n.Extra.Get("color"); ok {
		b.Color, b.Alpha = colorOf(v.Raw, col)
	}
	if n.Placeholder {
		b.Alpha *= 0.6
	}
	b.LineHeight = b.Size * 1.25
	if v, ok := n.Extra.Get("line-height"); ok {
		if f, ok := css.ParseLength(v.Raw, 0); ok && f > 0 {
			b.LineHeight = b.Size * f
		}
	}

	face := p.fonts.face(b.Size, b.Color, b.Bold, b.Italic)
	if n.Role == render.RoleDiagram {
		// diagram source keeps its own line structure
		b.Lines = strings.Split(strings.ReplaceAll(n.Text, "\r", ""), "\n")
	} else {
		b.Lines = wrap(face, n.Text, maxW)
	}
	for _, l := range b.Lines {
		b.W = max(b.W, width(face, l))
	}
	b.H = float64(len(b.Lines)) * b.LineHeight
	return b
}

// wrap breaks text on spaces greedily, words longer than line are split
// between characters. Explicit new lines are kept.
func wrap(face interface{ TextWidth(string) float64 }, text string, maxW float64) []string {
	measure := func(s string) float64 { return face.TextWidth(s) / mmPerPx }
	var lines []string
	for para := range strings.SplitSeq(strings.ReplaceAll(text, "\r", ""), "\n") {
		var line string
		for _, word := range strings.Fields(para) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if measure(candidate) <= maxW {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			for measure(word) > maxW {
				cut := fitPrefix(measure, word, maxW)
				lines = append(lines, word[:cut])
				word = word[cut:]
			}
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}

// fitPrefix returns byte length of the longest rune prefix which fits,
// at least one rune.
func fitPrefix(measure func(string) float64, s string, maxW float64) int {
	last := 0
	for i := range s {
		if i > 0 && measure(s[:i]) > maxW {
			break
		}
		last = i
	}
	if last == 0 {
		for i := range s {
			if i > 0 {
				return i
			}
		}
		return len(s)
	}
	return last
}

func textAlign(v string) string {
	switch v {
	case "center":
		return "center"
	case "right", "end":
		return "right"
	}
	return "left"
}

// verticalShift follows flex box alignment of the layout: main axis for
// column direction, cross axis for row.
func verticalShift(st style.Style, avail, used float64) float64 {
	if st.Value("display") != "flex" {
		return 0
	}
	v := st.Value("alignItems")
	if st.Value("flexDirection") == "column" {
		v = st.Value("justifyContent")
	}
	switch v {
	case "center":
		return (avail - used) / 2
	case "flex-end", "end":
		return avail - used
	}
	return 0
}

func colorOf(s string, fallback colorful.Color) (colorful.Color, float64) {
	c, a, ok := css.ParseColor(s)
	if !ok {
		return fallback, 1
	}
	return c, a
}
