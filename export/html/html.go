// Package html materializes rendered documents as standalone HTML files.
package html

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"pagecraft/common"
	"pagecraft/render"
	"pagecraft/utils/images"
)

// Mode selects how pages are assembled.
type Mode int

const (
	// ModeScroll produces single continuous page.
	ModeScroll Mode = iota
	// ModeDeck produces fixed size pages separated by page breaks.
	ModeDeck
	// ModeSnapshot produces single fixed size page.
	ModeSnapshot
)

func (m Mode) class() string {
	switch m {
	case ModeDeck:
		return "pc-deck"
	case ModeSnapshot:
		return "pc-snapshot"
	}
	return "pc-scroll"
}

// Options for HTML generation.
type Options struct {
	Mode Mode
	// directory to resolve relative image references against
	BaseDir   string
	Generator string
	// OnFailure is called for every page which could not be produced, page
	// is skipped when it returns nil, generation stops otherwise.
	OnFailure func(index int, err error) error
	Log       *zap.Logger
}

// Generate writes HTML document and returns number of pages in it. All text
// is escaped by html renderer, page and fragment styles are put into style
// attributes.
func Generate(ctx context.Context, doc *render.Document, w io.Writer, opts Options) (int, error) {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := element(atom.Html)
	if doc.Language != "" {
		setAttr(htmlEl, "lang", doc.Language)
	}
	root.AppendChild(htmlEl)
	htmlEl.AppendChild(head(doc, opts))

	body := element(atom.Body, "class", opts.Mode.class())
	htmlEl.AppendChild(body)

	diagrams, pages := false, 0
	for i, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		section, err := pageNode(page, doc.Shape, opts)
		if err != nil {
			if opts.OnFailure == nil {
				return 0, err
			}
			if ferr := opts.OnFailure(i, err); ferr != nil {
				return 0, ferr
			}
			continue
		}
		body.AppendChild(section)
		pages++
		page.Walk(func(f *render.Fragment, _ int) bool {
			if f.Role == render.RoleDiagram && !f.Placeholder {
				diagrams = true
			}
			return !diagrams
		})
	}

	if diagrams {
		script := element(atom.Script, "type", "module")
		script.AppendChild(text(mermaidScript))
		body.AppendChild(script)
	}

	if err := html.Render(w, root); err != nil {
		return 0, fmt.Errorf("unable to write html: %w", err)
	}
	return pages, nil
}

const mermaidScript = `import mermaid from "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.esm.min.mjs"; mermaid.initialize({ startOnLoad: true });`

func head(doc *render.Document, opts Options) *html.Node {
	h := element(atom.Head)
	h.AppendChild(element(atom.Meta, "charset", "utf-8"))
	h.AppendChild(element(atom.Meta, "name", "viewport", "content", "width=device-width, initial-scale=1"))
	if opts.Generator != "" {
		h.AppendChild(element(atom.Meta, "name", "generator", "content", opts.Generator))
	}
	title := element(atom.Title)
	title.AppendChild(text(doc.Title))
	h.AppendChild(title)

	st := element(atom.Style)
	st.AppendChild(text(stylesheet(doc.Shape, opts.Mode)))
	h.AppendChild(st)
	return h
}

func pageNode(page *render.Fragment, shape common.Shape, opts Options) (*html.Node, error) {
	decls := page.Style.Declarations()
	if !page.Background.IsZero() {
		bg, err := backgroundCSS(page.Background, opts.BaseDir)
		if err != nil {
			return nil, err
		}
		decls = decls.Set("background", bg)
	}

	class := "pc-page"
	if page.Animation != "" && page.Animation != common.AnimationNone {
		class += " pc-anim-" + page.Animation.String()
	}
	attrs := []string{"class", class, "data-layout", page.LayoutID}
	if page.ItemID != "" {
		attrs = append(attrs, "id", "item-"+page.ItemID)
	}
	attrs = append(attrs, "style", decls.String())
	section := element(atom.Section, attrs...)

	for _, child := range page.Children {
		if n := fragmentNode(child); n != nil {
			section.AppendChild(n)
		}
	}
	return section, nil
}

// backgroundCSS returns background property value. Local images are
// embedded so the document stays self contained, remote ones are left to
// the browser.
func backgroundCSS(bg render.Background, baseDir string) (string, error) {
	if bg.Kind != render.BackgroundKindImage {
		return bg.CSS(), nil
	}
	ref := bg.Value
	if lower := strings.ToLower(ref); strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "data:") {
		return bg.CSS(), nil
	}
	data, err := images.Read(ref, baseDir)
	if err != nil {
		return "", fmt.Errorf("unable to load background image %q: %w", ref, err)
	}
	_, mime, err := images.Decode(data)
	if err != nil {
		return "", fmt.Errorf("unable to load background image %q: %w", ref, err)
	}
	embedded := render.Background{Kind: render.BackgroundKindImage, Value: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)}
	return embedded.CSS(), nil
}

func fragmentNode(f *render.Fragment) *html.Node {
	var n *html.Node
	switch f.Role {
	case render.RoleBackground:
		return nil
	case render.RoleHeading:
		n = element(atom.H2, "class", "pc-heading")
		appendLines(n, f.Text)
	case render.RoleBody:
		n = element(atom.P, "class", "pc-body")
		appendLines(n, f.Text)
	case render.RoleCaption:
		n = element(atom.P, "class", "pc-caption")
		appendLines(n, f.Text)
	case render.RoleAction:
		n = element(atom.Span, "class", "pc-action", "role", "button")
		n.AppendChild(text(f.Text))
	case render.RoleMetric:
		n = element(atom.Div, "class", "pc-metric")
		for _, part := range f.Children {
			if c := fragmentNode(part); c != nil {
				n.AppendChild(c)
			}
		}
	case render.RoleMetricValue:
		n = element(atom.Span, "class", "pc-metric-value")
		n.AppendChild(text(f.Text))
	case render.RoleMetricLabel:
		n = element(atom.Span, "class", "pc-metric-label")
		n.AppendChild(text(f.Text))
	case render.RoleMetricTrend:
		n = element(atom.Span, "class", "pc-metric-trend")
		n.AppendChild(text(f.Text))
	case render.RoleDiagram:
		class := "pc-diagram"
		if !f.Placeholder {
			class += " mermaid"
		}
		n = element(atom.Pre, "class", class)
		n.AppendChild(text(f.Text))
	case render.RoleSwatch:
		n = element(atom.Div, "class", "pc-swatch", "title", f.Text)
	case render.RoleError:
		n = element(atom.Div, "class", "pc-error", "role", "alert")
		n.AppendChild(text(f.Text))
	default:
		n = element(atom.Div)
		n.AppendChild(text(f.Text))
	}

	if f.Placeholder {
		addClass(n, "pc-placeholder")
	}
	if f.Slot != "" {
		setAttr(n, "data-slot", f.Slot)
	}
	if len(f.Extra) > 0 {
		setAttr(n, "style", f.Extra.String())
	}
	return n
}

func appendLines(n *html.Node, s string) {
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			n.AppendChild(element(atom.Br))
		}
		if line != "" {
			n.AppendChild(text(line))
		}
	}
}

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func addClass(n *html.Node, class string) {
	for i := range n.Attr {
		if n.Attr[i].Key == "class" {
			n.Attr[i].Val += " " + class
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
}
