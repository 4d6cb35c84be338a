// Package project implements the editable document model. All changes to
// items, theme binding and cursor go through Project methods, every
// mutating method is applied completely or not at all.
package project

import (
	"encoding/json"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"pagecraft/catalog"
	"pagecraft/common"
)

// State of the project.
type State int

const (
	Empty State = iota
	Populated
)

func (s State) String() string {
	if s == Populated {
		return "populated"
	}
	return "empty"
}

// MetaLanguage is metadata key holding BCP 47 language tag of content.
const MetaLanguage = "language"

// document is everything undo restores.
type document struct {
	ID           string
	Name         string
	ContentType  common.ContentType
	Items        []*Item
	CurrentIndex int
	Theme        string
	Zoom         float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Metadata     map[string]string

	extra map[string]json.RawMessage
}

func (d *document) clone() document {
	c := *d
	c.Items = make([]*Item, len(d.Items))
	for i, it := range d.Items {
		c.Items[i] = it.Clone()
	}
	c.Metadata = maps.Clone(d.Metadata)
	c.extra = maps.Clone(d.extra)
	return c
}

// Project is a single-writer, not goroutine safe editable document.
type Project struct {
	doc     document
	cat     *catalog.Catalog
	history *history
	opts    options
	log     *zap.Logger
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// New creates empty project. Empty theme id selects first theme of the
// catalog.
func New(cat *catalog.Catalog, name string, ct common.ContentType, themeID string, opts ...Option) (*Project, error) {
	if cat == nil {
		cat = catalog.Default()
	}
	if !ct.IsValid() {
		return nil, fmt.Errorf("unknown content type %d", ct)
	}
	o := buildOptions(opts)

	theme := cat.FallbackTheme()
	if themeID != "" {
		t, ok := cat.Theme(themeID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, themeID)
		}
		theme = t
	}
	if name == "" {
		name = "Untitled " + ct.Shape().Name
	}

	now := o.now().UTC()
	p := &Project{
		doc: document{
			ID:          newID(),
			Name:        name,
			ContentType: ct,
			Items:       []*Item{},
			Theme:       theme.ID,
			Zoom:        1,
			CreatedAt:   now,
			UpdatedAt:   now,
			Metadata:    map[string]string{},
		},
		cat:     cat,
		history: newHistory(o.historyDepth),
		opts:    o,
		log:     o.log,
	}
	p.doc.Zoom = o.zoom.ClampZoom(p.doc.Zoom)
	p.log.Debug("Project created", zap.String("id", p.doc.ID), zap.Stringer("type", ct), zap.String("theme", theme.ID))
	return p, nil
}

// UseCatalog rebinds project to another catalog (after reload). Items
// referencing layouts which are gone render as errors, unresolved theme
// falls back to the first catalog theme on next use.
func (p *Project) UseCatalog(cat *catalog.Catalog) {
	if cat != nil {
		p.cat = cat
	}
}

// Catalog returns catalog project is bound to.
func (p *Project) Catalog() *catalog.Catalog {
	return p.cat
}

func (p *Project) ID() string                      { return p.doc.ID }
func (p *Project) Name() string                    { return p.doc.Name }
func (p *Project) ContentType() common.ContentType { return p.doc.ContentType }
func (p *Project) Shape() common.Shape             { return p.doc.ContentType.Shape() }
func (p *Project) ThemeID() string                 { return p.doc.Theme }
func (p *Project) Zoom() float64                   { return p.doc.Zoom }
func (p *Project) CreatedAt() time.Time            { return p.doc.CreatedAt }
func (p *Project) UpdatedAt() time.Time            { return p.doc.UpdatedAt }
func (p *Project) Len() int                        { return len(p.doc.Items) }

// CurrentIndex returns cursor position, meaningless for empty project.
func (p *Project) CurrentIndex() int {
	return p.doc.CurrentIndex
}

// State reports whether project has items.
func (p *Project) State() State {
	if len(p.doc.Items) == 0 {
		return Empty
	}
	return Populated
}

// Theme returns bound theme definition. Theme which no longer resolves is
// replaced by the first catalog theme.
func (p *Project) Theme() *catalog.Theme {
	if t, ok := p.cat.Theme(p.doc.Theme); ok {
		return t
	}
	return p.cat.FallbackTheme()
}

// Items returns copies of all items in order.
func (p *Project) Items() []*Item {
	res := make([]*Item, len(p.doc.Items))
	for i, it := range p.doc.Items {
		res[i] = it.Clone()
	}
	return res
}

// Item returns copy of item by id.
func (p *Project) Item(id string) (*Item, bool) {
	if i := p.indexOf(id); i >= 0 {
		return p.doc.Items[i].Clone(), true
	}
	return nil, false
}

// ItemAt returns copy of item at position.
func (p *Project) ItemAt(index int) (*Item, bool) {
	if index < 0 || index >= len(p.doc.Items) {
		return nil, false
	}
	return p.doc.Items[index].Clone(), true
}

// Current returns copy of the item under cursor.
func (p *Project) Current() (*Item, bool) {
	return p.ItemAt(p.doc.CurrentIndex)
}

// IndexOf returns position of the item or -1.
func (p *Project) IndexOf(id string) int {
	return p.indexOf(id)
}

func (p *Project) indexOf(id string) int {
	for i, it := range p.doc.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Metadata returns copy of free-form project metadata.
func (p *Project) Metadata() map[string]string {
	return maps.Clone(p.doc.Metadata)
}

// Language returns content language, English when not set or invalid.
func (p *Project) Language() language.Tag {
	if tag, err := language.Parse(p.doc.Metadata[MetaLanguage]); err == nil {
		return tag
	}
	return language.English
}

// Equal compares documents by value, history and catalog binding are not
// part of the comparison.
func (p *Project) Equal(o *Project) bool {
	a, b := &p.doc, &o.doc
	if a.ID != b.ID || a.Name != b.Name || a.ContentType != b.ContentType ||
		a.CurrentIndex != b.CurrentIndex || a.Theme != b.Theme || a.Zoom != b.Zoom ||
		!a.CreatedAt.Equal(b.CreatedAt) || !a.UpdatedAt.Equal(b.UpdatedAt) ||
		!maps.Equal(a.Metadata, b.Metadata) || len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if !a.Items[i].Equal(b.Items[i]) {
			return false
		}
	}
	return true
}
