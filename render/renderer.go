// Package render maps layout, item content and theme into a tree of
// presentational fragments every exporter materializes in its own way.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"pagecraft/catalog"
	"pagecraft/common"
	"pagecraft/css"
	"pagecraft/project"
	"pagecraft/style"
)

// Options control rendering.
type Options struct {
	// HidePlaceholders leaves text of slots without content empty instead
	// of showing placeholder text.
	HidePlaceholders bool
}

// Document is a rendered project.
type Document struct {
	Title       string
	ProjectID   string
	ContentType common.ContentType
	Shape       common.Shape
	Theme       *catalog.Theme
	Language    string
	Pages       []*Fragment
	// index of focused page
	Current int
}

// Snapshot returns document with focused page only.
func (d *Document) Snapshot() *Document {
	s := *d
	s.Pages = nil
	s.Current = 0
	if d.Current >= 0 && d.Current < len(d.Pages) {
		s.Pages = []*Fragment{d.Pages[d.Current]}
	}
	return &s
}

// Renderer is stateless with respect to the project, it may be shared.
type Renderer struct {
	log *zap.Logger
}

// NewRenderer creates renderer. Logger may be nil.
func NewRenderer(log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{log: log.Named("render")}
}

// RenderProject renders all project items in order.
func (r *Renderer) RenderProject(p *project.Project, opts Options) *Document {
	doc := &Document{
		Title:       p.Name(),
		ProjectID:   p.ID(),
		ContentType: p.ContentType(),
		Shape:       p.Shape(),
		Theme:       p.Theme(),
		Language:    p.Language().String(),
		Current:     p.CurrentIndex(),
	}
	cat := p.Catalog()
	for _, it := range p.Items() {
		doc.Pages = append(doc.Pages, r.RenderItem(cat, doc.Theme, it, opts))
	}
	return doc
}

// RenderItem renders single item. Item referencing layout which catalog
// does not know renders as error fragment.
func (r *Renderer) RenderItem(cat *catalog.Catalog, theme *catalog.Theme, it *project.Item, opts Options) *Fragment {
	layout, ok := cat.Layout(it.LayoutID)
	if !ok {
		r.log.Debug("Rendering dangling layout reference", zap.String("item", it.ID), zap.String("layout", it.LayoutID))
		return errorPage(it, style.Resolve(nil, theme, it.StyleOverrides))
	}
	return r.RenderLayout(layout, theme, it, opts)
}

func errorPage(it *project.Item, st style.Style) *Fragment {
	page := &Fragment{
		Role:       RolePage,
		Style:      st,
		Background: ParseBackground(st.Value(style.Background)),
		ItemID:     it.ID,
		LayoutID:   it.LayoutID,
	}
	page.Children = []*Fragment{{
		Role:  RoleError,
		Text:  fmt.Sprintf("Layout %q not found", it.LayoutID),
		Extra: css.Declarations{}.Set("color", "#b91c1c").Set("font-size", px(st.FontSize())),
	}}
	return page
}

// RenderLayout renders item content against given layout.
func (r *Renderer) RenderLayout(layout *catalog.Layout, theme *catalog.Theme, it *project.Item, opts Options) *Fragment {
	st := style.Resolve(layout, theme, it.StyleOverrides)
	page := &Fragment{
		Role:      RolePage,
		Style:     st,
		Animation: it.Animation,
		ItemID:    it.ID,
		LayoutID:  layout.ID,
	}
	if page.Animation == "" {
		page.Animation = common.AnimationNone
	}

	var fill *Fragment
	for _, slot := range layout.Slots {
		value, has := it.Content[slot.ID]
		placeholder := !has || value.IsBlank() || value.String() == slot.PlaceholderText()

		switch slot.Kind {
		case common.SlotKindBackgroundFill:
			if placeholder || fill != nil {
				continue
			}
			fill = &Fragment{
				Role:       RoleBackground,
				Slot:       slot.ID,
				Kind:       slot.Kind,
				Background: ParseBackground(value.String()),
			}
		case common.SlotKindDataMetric:
			page.Children = append(page.Children, metricNode(slot, value, placeholder, st, opts))
		case common.SlotKindDiagramSource:
			n := &Fragment{Role: RoleDiagram, Slot: slot.ID, Kind: slot.Kind, Placeholder: placeholder}
			n.Text = textOf(slot, value, placeholder, opts)
			n.Extra = css.Declarations{}.Set("font-family", "monospace").Set("font-size", px(st.FontSize()*0.8))
			page.Children = append(page.Children, n)
		case common.SlotKindColorSwatch:
			n := &Fragment{Role: RoleSwatch, Slot: slot.ID, Kind: slot.Kind, Placeholder: placeholder}
			n.Text = textOf(slot, value, placeholder, opts)
			if !placeholder {
				n.Extra = css.Declarations{}.Set("background", value.String())
			}
			page.Children = append(page.Children, n)
		default:
			role := RoleFor(slot)
			n := &Fragment{Role: role, Slot: slot.ID, Kind: slot.Kind, Placeholder: placeholder}
			n.Text = textOf(slot, value, placeholder, opts)
			n.Extra = textDeclarations(role, st)
			page.Children = append(page.Children, n)
		}
	}

	// background slot content wins over resolved background style
	if fill != nil {
		page.Background = fill.Background
		page.Children = append([]*Fragment{fill}, page.Children...)
	} else {
		page.Background = ParseBackground(st.Value(style.Background))
	}
	r.log.Debug("Item rendered", zap.String("item", it.ID), zap.String("layout", layout.ID), zap.Int("nodes", len(page.Children)))
	return page
}

// RoleFor returns presentational role of a text slot. Explicit slot role
// wins over naming convention.
func RoleFor(slot catalog.Slot) Role {
	if slot.Role != "" {
		switch slot.Role {
		case common.SlotRoleHeading:
			return RoleHeading
		case common.SlotRoleBody:
			return RoleBody
		case common.SlotRoleAction:
			return RoleAction
		default:
			return RoleCaption
		}
	}
	id := strings.ToLower(slot.ID)
	switch id {
	case "title", "heading", "headline":
		return RoleHeading
	case "body", "subtitle", "subheadline", "description":
		return RoleBody
	}
	if strings.HasPrefix(id, "cta") {
		return RoleAction
	}
	return RoleCaption
}

func textOf(slot catalog.Slot, value common.SlotValue, placeholder bool, opts Options) string {
	if !placeholder {
		return value.String()
	}
	if opts.HidePlaceholders {
		return ""
	}
	return slot.PlaceholderText()
}

func metricNode(slot catalog.Slot, value common.SlotValue, placeholder bool, st style.Style, opts Options) *Fragment {
	n := &Fragment{Role: RoleMetric, Slot: slot.ID, Kind: slot.Kind, Placeholder: placeholder}
	var m common.Metric
	switch {
	case !placeholder:
		m = value.AsMetric()
	case !opts.HidePlaceholders:
		m = common.SlotValue{Text: slot.PlaceholderText()}.AsMetric()
	}
	base := st.FontSize()
	primary := st.Value(style.PrimaryColor)
	n.Children = append(n.Children, &Fragment{
		Role: RoleMetricValue, Slot: slot.ID, Kind: slot.Kind, Text: m.Value, Placeholder: placeholder,
		Extra: css.Declarations{}.Set("font-size", px(base*2.4)).Set("font-weight", "bold").Set("color", primary),
	})
	if m.Label != "" {
		n.Children = append(n.Children, &Fragment{
			Role: RoleMetricLabel, Slot: slot.ID, Kind: slot.Kind, Text: m.Label, Placeholder: placeholder,
			Extra: css.Declarations{}.Set("font-size", px(base*0.9)),
		})
	}
	if m.Trend != "" {
		n.Children = append(n.Children, &Fragment{
			Role: RoleMetricTrend, Slot: slot.ID, Kind: slot.Kind, Text: m.Trend, Placeholder: placeholder,
			Extra: css.Declarations{}.Set("font-size", px(base*0.8)).Set("color", st.Value(style.AccentColor)),
		})
	}
	return n
}

func textDeclarations(role Role, st style.Style) css.Declarations {
	base := st.FontSize()
	var d css.Declarations
	switch role {
	case RoleHeading:
		d = d.Set("font-size", px(base*2)).Set("font-weight", "bold")
		if f := st.Value(style.HeadingFontFamily); f != "" {
			d = d.Set("font-family", f)
		}
	case RoleBody:
		d = d.Set("font-size", px(base)).Set("line-height", "1.5")
	case RoleCaption:
		d = d.Set("font-size", px(base*0.85)).Set("color", st.Value(style.SecondaryColor))
	case RoleAction:
		d = d.Set("font-size", px(base)).Set("font-weight", "bold").
			Set("background", st.Value(style.PrimaryColor)).Set("color", "#ffffff").Set("padding", "12px 28px")
	}
	return d
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
