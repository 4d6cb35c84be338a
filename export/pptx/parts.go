package pptx

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"pagecraft/css"
	"pagecraft/render"
)

const (
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsP   = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsRel = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsCT  = "http://schemas.openxmlformats.org/package/2006/content-types"

	relBase   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
	ctBase    = "application/vnd.openxmlformats-officedocument.presentationml."
	masterID  = 2147483648
	firstSlID = 256
)

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return doc
}

// presentationRoot creates root element with presentation namespaces.
func presentationRoot(doc *etree.Document, tag string) *etree.Element {
	root := doc.CreateElement(tag)
	root.CreateAttr("xmlns:a", nsA)
	root.CreateAttr("xmlns:r", nsR)
	root.CreateAttr("xmlns:p", nsP)
	return root
}

type relationship struct {
	id, typ, target string
}

func relationships(rels ...relationship) *etree.Document {
	doc := newDocument()
	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", nsRel)
	for _, r := range rels {
		el := root.CreateElement("Relationship")
		el.CreateAttr("Id", r.id)
		el.CreateAttr("Type", r.typ)
		el.CreateAttr("Target", r.target)
	}
	return doc
}

func contentTypes(slides []*slide) *etree.Document {
	doc := newDocument()
	root := doc.CreateElement("Types")
	root.CreateAttr("xmlns", nsCT)

	def := func(ext, ct string) {
		el := root.CreateElement("Default")
		el.CreateAttr("Extension", ext)
		el.CreateAttr("ContentType", ct)
	}
	def("rels", "application/vnd.openxmlformats-package.relationships+xml")
	def("xml", "application/xml")
	def("png", "image/png")

	override := func(part, ct string) {
		el := root.CreateElement("Override")
		el.CreateAttr("PartName", part)
		el.CreateAttr("ContentType", ct)
	}
	override("/ppt/presentation.xml", ctBase+"presentation.main+xml")
	override("/ppt/presProps.xml", ctBase+"presProps+xml")
	override("/ppt/slideMasters/slideMaster1.xml", ctBase+"slideMaster+xml")
	override("/ppt/slideLayouts/slideLayout1.xml", ctBase+"slideLayout+xml")
	override("/ppt/theme/theme1.xml", "application/vnd.openxmlformats-officedocument.theme+xml")
	for i := range slides {
		override(fmt.Sprintf("/ppt/slides/slide%d.xml", i+1), ctBase+"slide+xml")
	}
	override("/docProps/core.xml", "application/vnd.openxmlformats-package.core-properties+xml")
	override("/docProps/app.xml", "application/vnd.openxmlformats-officedocument.extended-properties+xml")
	return doc
}

func rootRels() *etree.Document {
	return relationships(
		relationship{"rId1", relBase + "officeDocument", "ppt/presentation.xml"},
		relationship{"rId2", "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties", "docProps/core.xml"},
		relationship{"rId3", relBase + "extended-properties", "docProps/app.xml"},
	)
}

func coreProps(rd *render.Document, creator string, now time.Time) *etree.Document {
	doc := newDocument()
	root := doc.CreateElement("cp:coreProperties")
	root.CreateAttr("xmlns:cp", "http://schemas.openxmlformats.org/package/2006/metadata/core-properties")
	root.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
	root.CreateAttr("xmlns:dcterms", "http://purl.org/dc/terms/")
	root.CreateAttr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")

	root.CreateElement("dc:title").SetText(rd.Title)
	root.CreateElement("dc:creator").SetText(creator)
	root.CreateElement("dc:subject").SetText(rd.ContentType.String())
	if rd.Language != "" {
		root.CreateElement("dc:language").SetText(rd.Language)
	}
	if rd.ProjectID != "" {
		root.CreateElement("dc:identifier").SetText(rd.ProjectID)
	}
	stamp := now.UTC().Format(time.RFC3339)
	for _, tag := range []string{"dcterms:created", "dcterms:modified"} {
		el := root.CreateElement(tag)
		el.CreateAttr("xsi:type", "dcterms:W3CDTF")
		el.SetText(stamp)
	}
	return doc
}

func appProps(slides int, creator string) *etree.Document {
	doc := newDocument()
	root := doc.CreateElement("Properties")
	root.CreateAttr("xmlns", "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties")
	root.CreateElement("Application").SetText(creator)
	root.CreateElement("Slides").SetText(strconv.Itoa(slides))
	root.CreateElement("PresentationFormat").SetText("Custom")
	return doc
}

func presentation(g geometry, slides int) *etree.Document {
	doc := newDocument()
	root := presentationRoot(doc, "p:presentation")
	root.CreateAttr("saveSubsetFonts", "1")

	mst := root.CreateElement("p:sldMasterIdLst").CreateElement("p:sldMasterId")
	mst.CreateAttr("id", strconv.Itoa(masterID))
	mst.CreateAttr("r:id", "rId1")

	lst := root.CreateElement("p:sldIdLst")
	for i := range slides {
		sl := lst.CreateElement("p:sldId")
		sl.CreateAttr("id", strconv.Itoa(firstSlID+i))
		sl.CreateAttr("r:id", "rId"+strconv.Itoa(i+2))
	}

	sz := root.CreateElement("p:sldSz")
	sz.CreateAttr("cx", strconv.FormatInt(g.width, 10))
	sz.CreateAttr("cy", strconv.FormatInt(g.height, 10))
	notes := root.CreateElement("p:notesSz")
	notes.CreateAttr("cx", "6858000")
	notes.CreateAttr("cy", "9144000")
	return doc
}

func presentationRels(slides int) *etree.Document {
	rels := []relationship{{"rId1", relBase + "slideMaster", "slideMasters/slideMaster1.xml"}}
	for i := range slides {
		rels = append(rels, relationship{"rId" + strconv.Itoa(i+2), relBase + "slide", fmt.Sprintf("slides/slide%d.xml", i+1)})
	}
	rels = append(rels,
		relationship{"rId" + strconv.Itoa(slides+2), relBase + "presProps", "presProps.xml"},
		relationship{"rId" + strconv.Itoa(slides+3), relBase + "theme", "theme/theme1.xml"},
	)
	return relationships(rels...)
}

func presProps() *etree.Document {
	doc := newDocument()
	presentationRoot(doc, "p:presentationPr")
	return doc
}

// emptyTree adds shape tree with group properties only.
func emptyTree(cSld *etree.Element) *etree.Element {
	tree := cSld.CreateElement("p:spTree")
	nv := tree.CreateElement("p:nvGrpSpPr")
	pr := nv.CreateElement("p:cNvPr")
	pr.CreateAttr("id", "1")
	pr.CreateAttr("name", "")
	nv.CreateElement("p:cNvGrpSpPr")
	nv.CreateElement("p:nvPr")
	tree.CreateElement("p:grpSpPr")
	return tree
}

func slideMaster() *etree.Document {
	doc := newDocument()
	root := presentationRoot(doc, "p:sldMaster")
	cSld := root.CreateElement("p:cSld")
	bgPr := cSld.CreateElement("p:bg").CreateElement("p:bgPr")
	solidFill(bgPr, "FFFFFF", 1)
	bgPr.CreateElement("a:effectLst")
	emptyTree(cSld)

	clr := root.CreateElement("p:clrMap")
	for _, kv := range [][2]string{
		{"bg1", "lt1"}, {"tx1", "dk1"}, {"bg2", "lt2"}, {"tx2", "dk2"},
		{"accent1", "accent1"}, {"accent2", "accent2"}, {"accent3", "accent3"},
		{"accent4", "accent4"}, {"accent5", "accent5"}, {"accent6", "accent6"},
		{"hlink", "hlink"}, {"folHlink", "folHlink"},
	} {
		clr.CreateAttr(kv[0], kv[1])
	}
	lid := root.CreateElement("p:sldLayoutIdLst").CreateElement("p:sldLayoutId")
	lid.CreateAttr("id", strconv.Itoa(masterID+1))
	lid.CreateAttr("r:id", "rId1")
	return doc
}

func slideMasterRels() *etree.Document {
	return relationships(
		relationship{"rId1", relBase + "slideLayout", "../slideLayouts/slideLayout1.xml"},
		relationship{"rId2", relBase + "theme", "../theme/theme1.xml"},
	)
}

func slideLayout() *etree.Document {
	doc := newDocument()
	root := presentationRoot(doc, "p:sldLayout")
	root.CreateAttr("type", "blank")
	root.CreateAttr("preserve", "1")
	cSld := root.CreateElement("p:cSld")
	cSld.CreateAttr("name", "Blank")
	emptyTree(cSld)
	root.CreateElement("p:clrMapOvr").CreateElement("a:masterClrMapping")
	return doc
}

func slideLayoutRels() *etree.Document {
	return relationships(relationship{"rId1", relBase + "slideMaster", "../slideMasters/slideMaster1.xml"})
}

func slideRels(media []media) *etree.Document {
	rels := []relationship{{"rId1", relBase + "slideLayout", "../slideLayouts/slideLayout1.xml"}}
	for i, m := range media {
		rels = append(rels, relationship{"rId" + strconv.Itoa(i+2), relBase + "image", "../media/" + m.name})
	}
	return relationships(rels...)
}

// theme carries project palette so colors survive editing in PowerPoint.
func theme(rd *render.Document) *etree.Document {
	doc := newDocument()
	root := doc.CreateElement("a:theme")
	root.CreateAttr("xmlns:a", nsA)
	name := "pagecraft"
	palette := map[string]string{"dk1": "000000", "lt1": "FFFFFF", "dk2": "1F2937", "lt2": "F3F4F6",
		"accent1": "3B82F6", "accent2": "64748B", "accent3": "F59E0B", "accent4": "10B981",
		"accent5": "8B5CF6", "accent6": "EF4444", "hlink": "2563EB", "folHlink": "7C3AED"}
	major, minor := "Calibri", "Calibri"
	if t := rd.Theme; t != nil {
		name = t.Name
		for key, v := range map[string]string{"dk1": t.Colors.Text, "lt1": t.Colors.Background,
			"accent1": t.Colors.Primary, "accent2": t.Colors.Secondary, "accent3": t.Colors.Accent} {
			if hex, _, ok := hexColor(v); ok {
				palette[key] = hex
			}
		}
		if f := typeface(t.Fonts.Heading); f != "" {
			major = f
		}
		if f := typeface(t.Fonts.Body); f != "" {
			minor = f
		}
	}
	root.CreateAttr("name", name)
	elements := root.CreateElement("a:themeElements")

	scheme := elements.CreateElement("a:clrScheme")
	scheme.CreateAttr("name", name)
	for _, key := range []string{"dk1", "lt1", "dk2", "lt2", "accent1", "accent2", "accent3", "accent4", "accent5", "accent6", "hlink", "folHlink"} {
		scheme.CreateElement("a:"+key).CreateElement("a:srgbClr").CreateAttr("val", palette[key])
	}

	fonts := elements.CreateElement("a:fontScheme")
	fonts.CreateAttr("name", name)
	for _, f := range [][2]string{{"a:majorFont", major}, {"a:minorFont", minor}} {
		el := fonts.CreateElement(f[0])
		el.CreateElement("a:latin").CreateAttr("typeface", f[1])
		el.CreateElement("a:ea").CreateAttr("typeface", "")
		el.CreateElement("a:cs").CreateAttr("typeface", "")
	}

	fmtScheme := elements.CreateElement("a:fmtScheme")
	fmtScheme.CreateAttr("name", name)
	fills := fmtScheme.CreateElement("a:fillStyleLst")
	for range 3 {
		fills.CreateElement("a:solidFill").CreateElement("a:schemeClr").CreateAttr("val", "phClr")
	}
	lines := fmtScheme.CreateElement("a:lnStyleLst")
	for _, w := range []string{"6350", "12700", "19050"} {
		ln := lines.CreateElement("a:ln")
		ln.CreateAttr("w", w)
		ln.CreateElement("a:solidFill").CreateElement("a:schemeClr").CreateAttr("val", "phClr")
	}
	effects := fmtScheme.CreateElement("a:effectStyleLst")
	for range 3 {
		effects.CreateElement("a:effectStyle").CreateElement("a:effectLst")
	}
	bgFills := fmtScheme.CreateElement("a:bgFillStyleLst")
	for range 3 {
		bgFills.CreateElement("a:solidFill").CreateElement("a:schemeClr").CreateAttr("val", "phClr")
	}
	return doc
}

// hexColor converts CSS color into OOXML hex value and alpha.
func hexColor(s string) (string, float64, bool) {
	c, a, ok := css.ParseColor(s)
	if !ok {
		return "", 0, false
	}
	return hexOf(c.Clamped().Hex()), a, true
}

// typeface returns first concrete family of CSS font-family list.
func typeface(family string) string {
	for f := range strings.SplitSeq(family, ",") {
		f = strings.Trim(strings.TrimSpace(f), `"'`)
		switch strings.ToLower(f) {
		case "", "serif", "sans-serif", "monospace", "cursive", "fantasy", "system-ui", "inherit":
			continue
		}
		return f
	}
	return ""
}

func solidFill(parent *etree.Element, hex string, alpha float64) {
	clr := parent.CreateElement("a:solidFill").CreateElement("a:srgbClr")
	clr.CreateAttr("val", hex)
	addAlpha(clr, alpha)
}

func addAlpha(clr *etree.Element, alpha float64) {
	if alpha < 1 {
		clr.CreateElement("a:alpha").CreateAttr("val", strconv.Itoa(int(alpha*100000)))
	}
}
