package catalog

import (
	"slices"

	"pagecraft/common"
	"pagecraft/css"
)

// Slot is a single typed content field of a layout.
type Slot struct {
	ID          string          `json:"id" validate:"required"`
	Kind        common.SlotKind `json:"kind" validate:"enum"`
	Placeholder string          `json:"placeholder,omitempty"`
	MaxLength   int             `json:"maxLength,omitempty" validate:"gte=0"`
	Required    bool            `json:"required,omitempty"`
	// empty means role is derived from slot id
	Role common.SlotRole `json:"role,omitempty" validate:"omitempty,enum"`
}

// Layout is an immutable named schema of content slots with default
// styling.
type Layout struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Subcategory string `json:"subcategory,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`

	Slots                   []Slot             `json:"slots" validate:"unique=ID,dive"`
	Style                   css.Declarations   `json:"-"`
	EditableStyleProperties []string           `json:"editableStyleProperties,omitempty"`
	Animations              []common.Animation `json:"animations,omitempty" validate:"dive,enum"`
}

// Slot returns slot definition by id.
func (l *Layout) Slot(id string) (Slot, bool) {
	for _, s := range l.Slots {
		if s.ID == id {
			return s, true
		}
	}
	return Slot{}, false
}

// SlotIDs returns slot ids in declaration order.
func (l *Layout) SlotIDs() []string {
	ids := make([]string, 0, len(l.Slots))
	for _, s := range l.Slots {
		ids = append(ids, s.ID)
	}
	return ids
}

// IsEditable reports whether style property may be overridden on items.
// Layouts which do not declare editable properties allow everything.
func (l *Layout) IsEditable(property string) bool {
	return len(l.EditableStyleProperties) == 0 || slices.Contains(l.EditableStyleProperties, property)
}

// Palette keys, also used as item style override keys.
const (
	PaletteBackground = "background"
	PaletteText       = "text"
	PalettePrimary    = "primary"
	PaletteSecondary  = "secondary"
	PaletteAccent     = "accent"
)

// PaletteKeys lists palette keys in canonical order.
var PaletteKeys = []string{PaletteBackground, PaletteText, PalettePrimary, PaletteSecondary, PaletteAccent}

// Palette is theme color set.
type Palette struct {
	Background string `json:"background" validate:"required,csscolor"`
	Text       string `json:"text" validate:"required,csscolor"`
	Primary    string `json:"primary" validate:"required,csscolor"`
	Secondary  string `json:"secondary" validate:"required,csscolor"`
	Accent     string `json:"accent,omitempty" validate:"omitempty,csscolor"`
}

// Get returns palette color by key.
func (p Palette) Get(key string) (string, bool) {
	var v string
	switch key {
	case PaletteBackground:
		v = p.Background
	case PaletteText:
		v = p.Text
	case PalettePrimary:
		v = p.Primary
	case PaletteSecondary:
		v = p.Secondary
	case PaletteAccent:
		v = p.Accent
	}
	return v, v != ""
}

// Map returns defined palette colors keyed by palette key.
func (p Palette) Map() map[string]string {
	m := make(map[string]string, len(PaletteKeys))
	for _, k := range PaletteKeys {
		if v, ok := p.Get(k); ok {
			m[k] = v
		}
	}
	return m
}

// Fonts are optional font family tokens of a theme.
type Fonts struct {
	Heading string `json:"heading,omitempty"`
	Body    string `json:"body,omitempty"`
}

// Theme is an immutable named palette.
type Theme struct {
	ID     string  `json:"id" validate:"required"`
	Name   string  `json:"name" validate:"required"`
	Colors Palette `json:"colors"`
	Fonts  Fonts   `json:"fonts"`
}
