// Package catalog loads and indexes layout and theme definitions.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/maruel/natural"

	"pagecraft/common"
)

// ErrConfigLoadFailed is matched by errors reporting catalog source which
// could not be used.
var ErrConfigLoadFailed = errors.New("catalog configuration load failed")

// LoadError carries the reason catalog source was replaced by the default
// catalog.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("unable to load catalog from %q: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Is(target error) bool {
	return target == ErrConfigLoadFailed
}

// Catalog is an immutable indexed set of layouts and themes. Safe for
// concurrent reads.
type Catalog struct {
	source     string
	layouts    []*Layout
	layoutByID map[string]*Layout
	themes     []*Theme
	themeByID  map[string]*Theme
	categories []string
	// definitions rejected during load
	problems []error
}

func newCatalog(source string, layouts []*Layout, themes []*Theme, problems []error) *Catalog {
	c := &Catalog{
		source:     source,
		layoutByID: make(map[string]*Layout, len(layouts)),
		themeByID:  make(map[string]*Theme, len(themes)),
		problems:   problems,
	}
	for _, l := range layouts {
		if _, exists := c.layoutByID[l.ID]; exists {
			c.problems = append(c.problems, fmt.Errorf("layout %q: duplicate id, ignored", l.ID))
			continue
		}
		c.layoutByID[l.ID] = l
		c.layouts = append(c.layouts, l)
		if !slices.Contains(c.categories, l.Category) {
			c.categories = append(c.categories, l.Category)
		}
	}
	for _, t := range themes {
		if _, exists := c.themeByID[t.ID]; exists {
			c.problems = append(c.problems, fmt.Errorf("theme %q: duplicate id, ignored", t.ID))
			continue
		}
		c.themeByID[t.ID] = t
		c.themes = append(c.themes, t)
	}
	sort.Sort(natural.StringSlice(c.categories))
	return c
}

// Source returns name of the document catalog was loaded from.
func (c *Catalog) Source() string {
	return c.source
}

// Problems returns definitions rejected while loading.
func (c *Catalog) Problems() []error {
	return slices.Clone(c.problems)
}

// Layout returns layout by id.
func (c *Catalog) Layout(id string) (*Layout, bool) {
	l, ok := c.layoutByID[id]
	return l, ok
}

// Layouts returns all layouts in document order.
func (c *Catalog) Layouts() []*Layout {
	return slices.Clone(c.layouts)
}

// LayoutsByCategory returns layouts with exactly matching category, empty
// slice when there are none.
func (c *Catalog) LayoutsByCategory(category string) []*Layout {
	res := make([]*Layout, 0)
	for _, l := range c.layouts {
		if l.Category == category {
			res = append(res, l)
		}
	}
	return res
}

// LayoutsForContentType returns layouts offered for document shape.
func (c *Catalog) LayoutsForContentType(ct common.ContentType) []*Layout {
	return c.LayoutsByCategory(ct.Shape().Category)
}

// Categories returns category names present in catalog in natural order.
func (c *Catalog) Categories() []string {
	return slices.Clone(c.categories)
}

// Theme returns theme by id.
func (c *Catalog) Theme(id string) (*Theme, bool) {
	t, ok := c.themeByID[id]
	return t, ok
}

// Themes returns all themes in document order.
func (c *Catalog) Themes() []*Theme {
	return slices.Clone(c.themes)
}

// FallbackTheme is used when project theme no longer resolves. Catalogs
// always have at least one theme.
func (c *Catalog) FallbackTheme() *Theme {
	if len(c.themes) == 0 {
		return nil
	}
	return c.themes[0]
}

// MarshalJSON includes style defaults as declaration text.
func (l *Layout) MarshalJSON() ([]byte, error) {
	type plain Layout
	return json.Marshal(struct {
		*plain
		Style string `json:"style,omitempty"`
	}{
		plain: (*plain)(l),
		Style: l.Style.String(),
	})
}
