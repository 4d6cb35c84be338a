package render

import (
	"pagecraft/utils/debug"
)

// Dump returns human readable tree of rendered document for debug
// reports.
func (d *Document) Dump() string {
	tw := debug.NewTreeWriter().WithTextLimit(120)
	tw.Line(0, "document id=%s type=%s pages=%d current=%d", d.ProjectID, d.ContentType, len(d.Pages), d.Current)
	tw.TextBlock(1, "title", d.Title)
	if d.Theme != nil {
		tw.Line(1, "theme %s", d.Theme.ID)
	}
	for _, p := range d.Pages {
		p.dump(tw, 1)
	}
	return tw.String()
}

// Dump returns human readable tree of a fragment.
func (f *Fragment) Dump() string {
	tw := debug.NewTreeWriter().WithTextLimit(120)
	f.dump(tw, 0)
	return tw.String()
}

func (f *Fragment) dump(tw *debug.TreeWriter, base int) {
	f.Walk(func(n *Fragment, depth int) bool {
		d := base + depth
		switch {
		case n.Role == RolePage:
			tw.Line(d, "%s item=%s layout=%s animation=%s", n.Role, n.ItemID, n.LayoutID, n.Animation)
			tw.Line(d+1, "style: %s", n.Style.CSS())
		case n.Slot != "":
			tw.Line(d, "%s slot=%s kind=%s placeholder=%t", n.Role, n.Slot, n.Kind, n.Placeholder)
		default:
			tw.Line(d, "%s", n.Role)
		}
		if !n.Background.IsZero() {
			tw.Line(d+1, "background %s: %s", n.Background.Kind, n.Background.Value)
		}
		if n.Text != "" {
			tw.TextBlock(d+1, "text", n.Text)
		}
		if len(n.Extra) > 0 {
			attrs := make(map[string]string, len(n.Extra))
			for _, decl := range n.Extra {
				attrs[decl.Property] = decl.Value.Raw
			}
			tw.Attrs(d+1, "extra", attrs)
		}
		return true
	})
}
