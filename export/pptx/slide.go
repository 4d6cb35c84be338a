package pptx

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"pagecraft/export/paint"
	"pagecraft/render"
	"pagecraft/style"
	"pagecraft/utils/images"
)

func buildSlide(pg *paint.Page, g geometry, number int, opts Options) (*slide, error) {
	s := &slide{doc: newDocument()}
	root := presentationRoot(s.doc, "p:sld")
	cSld := root.CreateElement("p:cSld")
	if pg.Node != nil && pg.Node.ItemID != "" {
		cSld.CreateAttr("name", pg.Node.ItemID)
	}

	if err := s.background(cSld, pg, number, opts); err != nil {
		return nil, err
	}

	tree := emptyTree(cSld)
	for i, b := range pg.Boxes {
		shape(tree, pg, b, g, i+2)
	}
	root.CreateElement("p:clrMapOvr").CreateElement("a:masterClrMapping")
	return s, nil
}

// background sets slide fill. Slides without own fill inherit white master
// background.
func (s *slide) background(cSld *etree.Element, pg *paint.Page, number int, opts Options) error {
	bg := pg.Background
	if bg.IsZero() {
		return nil
	}

	var bgPr *etree.Element
	newBgPr := func() *etree.Element {
		return cSld.CreateElement("p:bg").CreateElement("p:bgPr")
	}

	switch bg.Kind {
	case render.BackgroundKindColor:
		hex, alpha, ok := hexColor(bg.Value)
		if !ok {
			opts.Log.Debug("Ignoring unsupported background color")
			return nil
		}
		bgPr = newBgPr()
		solidFill(bgPr, hex, alpha)
	case render.BackgroundKindGradient:
		grad, ok := bg.Gradient()
		if !ok {
			opts.Log.Debug("Ignoring unsupported background gradient")
			return nil
		}
		bgPr = newBgPr()
		fill := bgPr.CreateElement("a:gradFill")
		fill.CreateAttr("rotWithShape", "1")
		gs := fill.CreateElement("a:gsLst")
		for _, stop := range grad.Stops {
			el := gs.CreateElement("a:gs")
			el.CreateAttr("pos", strconv.Itoa(int(math.Round(stop.Offset*100000))))
			clr := el.CreateElement("a:srgbClr")
			clr.CreateAttr("val", hexOf(stop.Color.Clamped().Hex()))
			addAlpha(clr, stop.Alpha)
		}
		if grad.Radial {
			path := fill.CreateElement("a:path")
			path.CreateAttr("path", "circle")
			rect := path.CreateElement("a:fillToRect")
			for _, side := range []string{"l", "t", "r", "b"} {
				rect.CreateAttr(side, "50000")
			}
		} else {
			// CSS angle points up at 0, DrawingML points right at 0
			ang := math.Mod(grad.Angle-90+360, 360)
			lin := fill.CreateElement("a:lin")
			lin.CreateAttr("ang", strconv.Itoa(int(math.Round(ang*60000))))
			lin.CreateAttr("scaled", "0")
		}
	case render.BackgroundKindImage:
		img, err := images.Load(bg.Value, opts.BaseDir)
		if err != nil {
			return fmt.Errorf("unable to load background image %q: %w", bg.Value, err)
		}
		var buf bytes.Buffer
		if err := images.EncodePNG(&buf, images.Fill(img, int(pg.Width), int(pg.Height)), 0); err != nil {
			return fmt.Errorf("unable to encode background image %q: %w", bg.Value, err)
		}
		s.media = append(s.media, media{name: fmt.Sprintf("image%d.png", number), data: buf.Bytes()})

		bgPr = newBgPr()
		fill := bgPr.CreateElement("a:blipFill")
		fill.CreateAttr("dpi", "0")
		fill.CreateAttr("rotWithShape", "1")
		fill.CreateElement("a:blip").CreateAttr("r:embed", "rId"+strconv.Itoa(len(s.media)+1))
		fill.CreateElement("a:srcRect")
		fill.CreateElement("a:stretch").CreateElement("a:fillRect")
	default:
		return nil
	}
	bgPr.CreateElement("a:effectLst")
	return nil
}

// shape adds text box or filled rectangle for laid out box.
func shape(tree *etree.Element, pg *paint.Page, b *paint.Box, g geometry, id int) {
	sp := tree.CreateElement("p:sp")
	nv := sp.CreateElement("p:nvSpPr")
	pr := nv.CreateElement("p:cNvPr")
	pr.CreateAttr("id", strconv.Itoa(id))
	name := "Shape " + strconv.Itoa(id)
	if b.Node != nil {
		name = b.Node.Role.String() + " " + strconv.Itoa(id)
		if b.Node.Slot != "" {
			name = b.Node.Slot
		}
	}
	pr.CreateAttr("name", name)
	nvSp := nv.CreateElement("p:cNvSpPr")
	if len(b.Lines) > 0 {
		nvSp.CreateAttr("txBox", "1")
	}
	nv.CreateElement("p:nvPr")

	spPr := sp.CreateElement("p:spPr")
	xfrm := spPr.CreateElement("a:xfrm")
	off := xfrm.CreateElement("a:off")
	off.CreateAttr("x", strconv.FormatInt(g.emu(b.X), 10))
	off.CreateAttr("y", strconv.FormatInt(g.emu(b.Y), 10))
	ext := xfrm.CreateElement("a:ext")
	ext.CreateAttr("cx", strconv.FormatInt(g.emu(b.W), 10))
	ext.CreateAttr("cy", strconv.FormatInt(g.emu(b.H), 10))
	geom := spPr.CreateElement("a:prstGeom")
	geom.CreateAttr("prst", "rect")
	geom.CreateElement("a:avLst")
	if hex, alpha, ok := hexColor(b.Fill); b.Fill != "" && ok {
		solidFill(spPr, hex, alpha)
	} else {
		spPr.CreateElement("a:noFill")
	}

	if len(b.Lines) == 0 {
		return
	}

	body := sp.CreateElement("p:txBody")
	bodyPr := body.CreateElement("a:bodyPr")
	bodyPr.CreateAttr("wrap", "square")
	for _, ins := range []string{"lIns", "tIns", "rIns", "bIns"} {
		bodyPr.CreateAttr(ins, "0")
	}
	anchor := "t"
	if b.Fill != "" {
		anchor = "ctr"
	}
	bodyPr.CreateAttr("anchor", anchor)
	bodyPr.CreateElement("a:noAutofit")
	body.CreateElement("a:lstStyle")

	face := boxTypeface(pg, b)
	hex := hexOf(b.Color.Clamped().Hex())
	for _, line := range b.Lines {
		p := body.CreateElement("a:p")
		pPr := p.CreateElement("a:pPr")
		pPr.CreateAttr("algn", alignment(b.Align))
		pPr.CreateElement("a:lnSpc").CreateElement("a:spcPts").CreateAttr("val", strconv.FormatInt(g.centipoints(b.LineHeight), 10))

		if line == "" {
			p.CreateElement("a:endParaRPr").CreateAttr("sz", strconv.FormatInt(g.centipoints(b.Size), 10))
			continue
		}
		r := p.CreateElement("a:r")
		rPr := r.CreateElement("a:rPr")
		rPr.CreateAttr("lang", "en-US")
		rPr.CreateAttr("sz", strconv.FormatInt(g.centipoints(b.Size), 10))
		if b.Bold {
			rPr.CreateAttr("b", "1")
		}
		if b.Italic {
			rPr.CreateAttr("i", "1")
		}
		rPr.CreateAttr("dirty", "0")
		solidFill(rPr, hex, b.Alpha)
		if face != "" {
			rPr.CreateElement("a:latin").CreateAttr("typeface", face)
		}
		r.CreateElement("a:t").SetText(line)
	}
}

func boxTypeface(pg *paint.Page, b *paint.Box) string {
	if b.Node != nil {
		if v, ok := b.Node.Extra.Get("font-family"); ok {
			return typeface(v.Raw)
		}
	}
	if pg.Node != nil {
		return typeface(pg.Node.Style.Value(style.FontFamily))
	}
	return ""
}

func alignment(align string) string {
	switch align {
	case "center":
		return "ctr"
	case "right":
		return "r"
	}
	return "l"
}

func hexOf(s string) string {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	return strings.ToUpper(s)
}
