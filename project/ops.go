package project

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"pagecraft/catalog"
	"pagecraft/common"
)

// returned by mutations which would not change anything
var errNoChange = errors.New("no change")

// apply runs mutation on a copy of the document. Successful mutation
// replaces document and puts previous one into history, failed one leaves
// project untouched.
func (p *Project) apply(op string, fn func(d *document) error) error {
	work := p.doc.clone()
	if err := fn(&work); err != nil {
		if errors.Is(err, errNoChange) {
			return nil
		}
		p.log.Debug("Operation rejected", zap.String("op", op), zap.Error(err))
		return err
	}
	work.UpdatedAt = p.opts.now().UTC()
	p.history.record(p.doc)
	p.doc = work
	p.log.Debug("Operation applied", zap.String("op", op), zap.Int("items", len(work.Items)), zap.Int("current", work.CurrentIndex))
	return nil
}

func (p *Project) layout(id string) (*catalog.Layout, error) {
	l, ok := p.cat.Layout(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLayoutNotFound, id)
	}
	return l, nil
}

func findItem(d *document, id string) (int, *Item, error) {
	for i, it := range d.Items {
		if it.ID == id {
			return i, it, nil
		}
	}
	return -1, nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

func seedContent(l *catalog.Layout) common.Content {
	c := make(common.Content, len(l.Slots))
	for _, s := range l.Slots {
		c[s.ID] = common.Text(s.PlaceholderText())
	}
	return c
}

func clampIndex(i, n int) int {
	if n == 0 {
		return 0
	}
	return min(max(i, 0), n-1)
}

// AddItem appends new item built from layout, seeds its content with slot
// placeholders, copies theme palette into its style overrides and moves
// cursor to it.
func (p *Project) AddItem(layoutID string) (*Item, error) {
	return p.AddItemWithContent(layoutID, nil, "")
}

// AddItemWithContent is AddItem which also fills slots from content and,
// when themeID is not empty, switches project theme, all as a single undo
// step. Blank values keep slot placeholders.
func (p *Project) AddItemWithContent(layoutID string, content common.Content, themeID string) (*Item, error) {
	l, err := p.layout(layoutID)
	if err != nil {
		return nil, err
	}
	theme := p.Theme()
	if themeID != "" {
		t, ok := p.cat.Theme(themeID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, themeID)
		}
		theme = t
	}
	if l.Category != p.doc.ContentType.Shape().Category {
		p.log.Debug("Layout category does not match content type", zap.String("layout", l.ID), zap.String("category", l.Category), zap.Stringer("type", p.doc.ContentType))
	}

	it := &Item{
		ID:             newID(),
		LayoutID:       l.ID,
		Content:        seedContent(l),
		StyleOverrides: theme.Colors.Map(),
		Animation:      common.AnimationNone,
	}
	for slot, v := range content {
		if slot == "" {
			return nil, errors.New("slot id is empty")
		}
		if !v.IsBlank() {
			it.Content[slot] = v.Clone()
		}
	}

	err = p.apply("add", func(d *document) error {
		d.Items = append(d.Items, it.Clone())
		d.CurrentIndex = len(d.Items) - 1
		if themeID != "" {
			d.Theme = theme.ID
			paletteOverrides(d.Items, theme)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return it, nil
}

// RemoveItem deletes item, unknown id is ignored. Cursor stays within the
// sequence.
func (p *Project) RemoveItem(id string) bool {
	removed := false
	_ = p.apply("remove", func(d *document) error {
		i, _, err := findItem(d, id)
		if err != nil {
			return errNoChange
		}
		d.Items = append(d.Items[:i], d.Items[i+1:]...)
		if i < d.CurrentIndex {
			d.CurrentIndex--
		}
		d.CurrentIndex = clampIndex(d.CurrentIndex, len(d.Items))
		removed = true
		return nil
	})
	return removed
}

// DuplicateItem inserts deep copy of the item right after it and moves
// cursor to the copy.
func (p *Project) DuplicateItem(id string) (*Item, error) {
	var dup *Item
	err := p.apply("duplicate", func(d *document) error {
		i, src, err := findItem(d, id)
		if err != nil {
			return err
		}
		dup = src.Clone()
		dup.ID = newID()
		d.Items = append(d.Items[:i+1], append([]*Item{dup}, d.Items[i+1:]...)...)
		d.CurrentIndex = i + 1
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dup.Clone(), nil
}

// MoveItem moves item from one position to another as list splice does.
// Cursor follows the moved item, or shifts by one when the current item is
// passed over.
func (p *Project) MoveItem(from, to int) error {
	return p.apply("move", func(d *document) error {
		n := len(d.Items)
		if from < 0 || from >= n || to < 0 || to >= n {
			return fmt.Errorf("%w: move %d -> %d with %d items", ErrIndexOutOfRange, from, to, n)
		}
		if from == to {
			return errNoChange
		}
		it := d.Items[from]
		d.Items = append(d.Items[:from], d.Items[from+1:]...)
		d.Items = append(d.Items[:to], append([]*Item{it}, d.Items[to:]...)...)

		cur := d.CurrentIndex
		switch {
		case cur == from:
			cur = to
		case from < cur && cur <= to:
			cur--
		case to <= cur && cur < from:
			cur++
		}
		d.CurrentIndex = cur
		return nil
	})
}

// UpdateContent sets slot value. Length constraints are not enforced here,
// see catalog.ValidateContent.
func (p *Project) UpdateContent(id, slot string, value common.SlotValue) error {
	return p.UpdateContentMap(id, common.Content{slot: value})
}

// UpdateContentMap merges values into item content.
func (p *Project) UpdateContentMap(id string, values common.Content) error {
	return p.apply("content", func(d *document) error {
		_, it, err := findItem(d, id)
		if err != nil {
			return err
		}
		changed := false
		for k, v := range values {
			if k == "" {
				return errors.New("slot id is empty")
			}
			if old, ok := it.Content[k]; ok && old.Equal(v) {
				continue
			}
			it.Content[k] = v.Clone()
			changed = true
		}
		if !changed {
			return errNoChange
		}
		return nil
	})
}

// UpdateStyleOverride sets item style override.
func (p *Project) UpdateStyleOverride(id, property, value string) error {
	return p.apply("style", func(d *document) error {
		_, it, err := findItem(d, id)
		if err != nil {
			return err
		}
		property = strings.TrimSpace(property)
		if property == "" {
			return errors.New("style property is empty")
		}
		if l, ok := p.cat.Layout(it.LayoutID); ok && !l.IsEditable(property) {
			p.log.Debug("Overriding property layout does not declare editable", zap.String("layout", l.ID), zap.String("property", property))
		}
		if old, ok := it.StyleOverrides[property]; ok && old == value {
			return errNoChange
		}
		it.StyleOverrides[property] = value
		return nil
	})
}

// ClearStyleOverride removes item style override so lower layers apply.
func (p *Project) ClearStyleOverride(id, property string) error {
	return p.apply("style-clear", func(d *document) error {
		_, it, err := findItem(d, id)
		if err != nil {
			return err
		}
		if _, ok := it.StyleOverrides[property]; !ok {
			return errNoChange
		}
		delete(it.StyleOverrides, property)
		return nil
	})
}

// ChangeLayout rebinds item to another layout. Content is replaced by the
// new layout placeholders, previous content is dropped.
func (p *Project) ChangeLayout(id, layoutID string) error {
	l, err := p.layout(layoutID)
	if err != nil {
		return err
	}
	return p.apply("layout", func(d *document) error {
		_, it, err := findItem(d, id)
		if err != nil {
			return err
		}
		it.LayoutID = l.ID
		it.Content = seedContent(l)
		return nil
	})
}

// SetAnimation sets item entrance animation.
func (p *Project) SetAnimation(id string, anim common.Animation) error {
	if !anim.IsValid() {
		return fmt.Errorf("unknown animation %q", anim)
	}
	return p.apply("animation", func(d *document) error {
		_, it, err := findItem(d, id)
		if err != nil {
			return err
		}
		if it.Animation == anim {
			return errNoChange
		}
		it.Animation = anim
		return nil
	})
}

// SetTheme binds theme and copies its palette into style overrides of every
// item. Palette keys are overwritten even when they were customized, keys
// the theme does not define are dropped, other overrides are kept.
func (p *Project) SetTheme(themeID string) error {
	t, ok := p.cat.Theme(themeID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrThemeNotFound, themeID)
	}
	return p.apply("theme", func(d *document) error {
		d.Theme = t.ID
		paletteOverrides(d.Items, t)
		return nil
	})
}

// paletteOverrides replaces palette keys of item overrides with theme
// colors, keys theme does not define are removed.
func paletteOverrides(items []*Item, t *catalog.Theme) {
	for _, it := range items {
		for _, k := range catalog.PaletteKeys {
			if v, ok := t.Colors.Get(k); ok {
				it.StyleOverrides[k] = v
			} else {
				delete(it.StyleOverrides, k)
			}
		}
	}
}

// Rename changes project name.
func (p *Project) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("project name is empty")
	}
	return p.apply("rename", func(d *document) error {
		if d.Name == name {
			return errNoChange
		}
		d.Name = name
		return nil
	})
}

// SetMetadata sets or, with empty value, removes metadata entry. Language
// must be a valid BCP 47 tag.
func (p *Project) SetMetadata(key, value string) error {
	if key == MetaLanguage && value != "" {
		tag, err := language.Parse(value)
		if err != nil {
			return fmt.Errorf("invalid language %q: %w", value, err)
		}
		value = tag.String()
	}
	return p.apply("metadata", func(d *document) error {
		old, ok := d.Metadata[key]
		switch {
		case value == "" && !ok, value != "" && ok && old == value:
			return errNoChange
		case value == "":
			delete(d.Metadata, key)
		default:
			d.Metadata[key] = value
		}
		return nil
	})
}

// SetCursor moves cursor clamping index into the sequence. Nothing happens
// on empty project.
func (p *Project) SetCursor(index int) {
	if len(p.doc.Items) == 0 {
		return
	}
	p.doc.CurrentIndex = clampIndex(index, len(p.doc.Items))
}

// Next moves cursor forward, reports whether it moved.
func (p *Project) Next() bool {
	cur := p.doc.CurrentIndex
	p.SetCursor(cur + 1)
	return p.doc.CurrentIndex != cur
}

// Prev moves cursor back, reports whether it moved.
func (p *Project) Prev() bool {
	cur := p.doc.CurrentIndex
	p.SetCursor(cur - 1)
	return p.doc.CurrentIndex != cur
}

// SetZoom sets zoom level clamped to configured range.
func (p *Project) SetZoom(v float64) float64 {
	p.doc.Zoom = math.Round(p.opts.zoom.ClampZoom(v)*100) / 100
	return p.doc.Zoom
}

func (p *Project) ZoomIn() float64 {
	return p.SetZoom(p.doc.Zoom + p.opts.zoom.Step)
}

func (p *Project) ZoomOut() float64 {
	return p.SetZoom(p.doc.Zoom - p.opts.zoom.Step)
}

// Undo restores document state before the last mutation.
func (p *Project) Undo() bool {
	prev, ok := p.history.undo(p.doc)
	if !ok {
		return false
	}
	p.doc = prev
	p.log.Debug("Undo", zap.Int("items", len(prev.Items)))
	return true
}

// Redo reapplies the last undone mutation.
func (p *Project) Redo() bool {
	next, ok := p.history.redoStep(p.doc)
	if !ok {
		return false
	}
	p.doc = next
	p.log.Debug("Redo", zap.Int("items", len(next.Items)))
	return true
}

func (p *Project) CanUndo() bool { return p.history.canUndo() }
func (p *Project) CanRedo() bool { return p.history.canRedo() }
