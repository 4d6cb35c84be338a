package render

import (
	"strconv"
	"strings"

	"pagecraft/common"
	"pagecraft/css"
	"pagecraft/style"
)

// Fragment is a node of rendered item tree. Text is kept raw, every
// materializer escapes it for its own output format.
type Fragment struct {
	Role        Role
	Slot        string
	Kind        common.SlotKind
	Text        string
	Placeholder bool

	// resolved item style, page nodes only
	Style style.Style
	// extra declarations applied to this node
	Extra      css.Declarations
	Background Background
	Animation  common.Animation

	ItemID   string
	LayoutID string
	Children []*Fragment
}

// Walk visits fragment and its descendants depth first until fn returns
// false.
func (f *Fragment) Walk(fn func(f *Fragment, depth int) bool) {
	f.walk(fn, 0)
}

func (f *Fragment) walk(fn func(*Fragment, int) bool, depth int) bool {
	if !fn(f, depth) {
		return false
	}
	for _, c := range f.Children {
		if !c.walk(fn, depth+1) {
			return false
		}
	}
	return true
}

// Find returns descendants with given role in document order.
func (f *Fragment) Find(role Role) []*Fragment {
	var res []*Fragment
	f.Walk(func(n *Fragment, _ int) bool {
		if n.Role == role {
			res = append(res, n)
		}
		return true
	})
	return res
}

// BySlot returns node rendered for the slot.
func (f *Fragment) BySlot(slot string) (*Fragment, bool) {
	var found *Fragment
	f.Walk(func(n *Fragment, _ int) bool {
		if n.Slot == slot && n.Role != RoleMetricValue && n.Role != RoleMetricLabel && n.Role != RoleMetricTrend {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// TextContent joins text of all visible descendants with new lines.
func (f *Fragment) TextContent() string {
	var parts []string
	f.Walk(func(n *Fragment, _ int) bool {
		if n.Text != "" && n.Role.IsVisibleText() {
			parts = append(parts, n.Text)
		}
		return true
	})
	return strings.Join(parts, "\n")
}

// IsVisibleText reports roles which carry text shown to the reader.
func (r Role) IsVisibleText() bool {
	switch r {
	case RoleHeading, RoleBody, RoleCaption, RoleAction, RoleMetricValue, RoleMetricLabel, RoleMetricTrend, RoleError:
		return true
	}
	return false
}

// FontSize returns node font size in pixels from its extra declarations.
func (f *Fragment) FontSize(base float64) float64 {
	if v, ok := f.Extra.Get("font-size"); ok {
		if px, ok := css.ParseLength(v.Raw, base); ok {
			return px
		}
	}
	return base
}

// Bold reports bold font weight.
func (f *Fragment) Bold() bool {
	v, ok := f.Extra.Get("font-weight")
	if !ok {
		return false
	}
	if v.Raw == "bold" || v.Raw == "bolder" {
		return true
	}
	w, err := strconv.Atoi(v.Raw)
	return err == nil && w >= 600
}
