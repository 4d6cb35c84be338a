// Package style resolves item style from layout defaults, theme palette and
// item overrides. Every renderer and exporter goes through Resolve.
package style

import (
	"slices"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"pagecraft/catalog"
	"pagecraft/css"
)

// Resolved property names. Names which are not CSS properties are emitted
// as custom properties by CSS().
const (
	Background        = "background"
	Color             = "color"
	PrimaryColor      = "primaryColor"
	SecondaryColor    = "secondaryColor"
	AccentColor       = "accentColor"
	FontFamily        = "fontFamily"
	HeadingFontFamily = "headingFontFamily"
	FontSize          = "fontSize"
	Padding           = "padding"
	TextAlign         = "textAlign"
)

// Source tells which layer property value came from.
type Source int

const (
	SourceFallback Source = iota
	SourceLayout
	SourceTheme
	SourceOverride
)

func (s Source) String() string {
	switch s {
	case SourceLayout:
		return "layout"
	case SourceTheme:
		return "theme"
	case SourceOverride:
		return "override"
	}
	return "fallback"
}

type paletteMapping struct {
	property string
	get      func(*catalog.Theme) string
}

// properties themes provide, in output order
var paletteMappings = []paletteMapping{
	{Background, func(t *catalog.Theme) string { return t.Colors.Background }},
	{Color, func(t *catalog.Theme) string { return t.Colors.Text }},
	{PrimaryColor, func(t *catalog.Theme) string { return t.Colors.Primary }},
	{SecondaryColor, func(t *catalog.Theme) string { return t.Colors.Secondary }},
	{AccentColor, func(t *catalog.Theme) string { return t.Colors.Accent }},
	{FontFamily, func(t *catalog.Theme) string { return t.Fonts.Body }},
	{HeadingFontFamily, func(t *catalog.Theme) string { return t.Fonts.Heading }},
}

var fallbacks = map[string]string{
	Background:     "#ffffff",
	Color:          "#000000",
	PrimaryColor:   "#000000",
	SecondaryColor: "#666666",
	AccentColor:    "#000000",
	FontFamily:     "sans-serif",
}

// palette keys used as item override names
var overrideAliases = map[string]string{
	catalog.PaletteBackground: Background,
	catalog.PaletteText:       Color,
	catalog.PalettePrimary:    PrimaryColor,
	catalog.PaletteSecondary:  SecondaryColor,
	catalog.PaletteAccent:     AccentColor,
}

// PropertyName normalizes property name: palette keys are mapped to
// properties they control, CSS names are converted to camelCase.
func PropertyName(name string) string {
	name = strings.TrimSpace(name)
	if p, ok := overrideAliases[name]; ok {
		return p
	}
	return css.ToCamel(name)
}

// Entry is a single resolved property.
type Entry struct {
	Property string
	Value    css.Value
	Source   Source
}

// Style is resolved, immutable set of properties.
type Style struct {
	entries []Entry
	index   map[string]int
}

// Resolve composes style for an item. For every property item override
// wins over theme palette, theme palette wins over layout default and
// layout default wins over system fallback. Theme and layout may be nil.
func Resolve(layout *catalog.Layout, theme *catalog.Theme, overrides map[string]string) Style {
	s := Style{index: make(map[string]int)}

	var defaults css.Declarations
	if layout != nil {
		defaults = layout.Style
	}
	layoutValue := func(prop string) (css.Value, bool) {
		return defaults.Get(css.ToKebab(prop))
	}

	// explicit property names win over palette key aliases
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		_, ai := overrideAliases[keys[i]]
		_, aj := overrideAliases[keys[j]]
		if ai != aj {
			return ai
		}
		return keys[i] < keys[j]
	})
	normalized := make(map[string]string, len(overrides))
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			continue
		}
		normalized[PropertyName(k)] = overrides[k]
	}

	resolve := func(prop string, themed func(*catalog.Theme) string) {
		if _, done := s.index[prop]; done {
			return
		}
		e := Entry{Property: prop}
		if v, ok := normalized[prop]; ok {
			e.Value, e.Source = valueOf(prop, v), SourceOverride
		} else if v := themeValue(theme, themed); v != "" {
			e.Value, e.Source = valueOf(prop, v), SourceTheme
		} else if v, ok := layoutValue(prop); ok {
			e.Value, e.Source = v, SourceLayout
		} else if v, ok := fallbacks[prop]; ok {
			e.Value, e.Source = valueOf(prop, v), SourceFallback
		} else {
			return
		}
		s.index[prop] = len(s.entries)
		s.entries = append(s.entries, e)
	}

	for _, m := range paletteMappings {
		resolve(m.property, m.get)
	}
	for _, p := range defaults.Properties() {
		resolve(css.ToCamel(p), nil)
	}
	rest := make([]string, 0, len(normalized))
	for p := range normalized {
		rest = append(rest, p)
	}
	sort.Strings(rest)
	for _, p := range rest {
		resolve(p, nil)
	}
	return s
}

func themeValue(theme *catalog.Theme, get func(*catalog.Theme) string) string {
	if theme == nil || get == nil {
		return ""
	}
	return strings.TrimSpace(get(theme))
}

var valueParser = css.NewParser(nil)

func valueOf(prop, raw string) css.Value {
	return valueParser.ParseValue(css.ToKebab(prop), raw)
}

// Get returns resolved value of the property. Both camelCase and CSS
// property names are accepted.
func (s Style) Get(prop string) (css.Value, bool) {
	i, ok := s.index[PropertyName(prop)]
	if !ok {
		return css.Value{}, false
	}
	return s.entries[i].Value, true
}

// Value returns raw value of the property or empty string.
func (s Style) Value(prop string) string {
	v, _ := s.Get(prop)
	return v.Raw
}

// Source reports which layer provided the property.
func (s Style) Source(prop string) (Source, bool) {
	i, ok := s.index[PropertyName(prop)]
	if !ok {
		return SourceFallback, false
	}
	return s.entries[i].Source, true
}

// Properties returns resolved property names in stable order: palette
// properties first, then layout defaults, then remaining overrides.
func (s Style) Properties() []string {
	names := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		names = append(names, e.Property)
	}
	return names
}

// Entries returns resolved properties in the order of Properties.
func (s Style) Entries() []Entry {
	return slices.Clone(s.entries)
}

// custom properties carry palette entries which are not CSS properties
var customProperties = map[string]string{
	PrimaryColor:      "--primary-color",
	SecondaryColor:    "--secondary-color",
	AccentColor:       "--accent-color",
	HeadingFontFamily: "--heading-font-family",
}

// Declarations returns style as CSS declarations.
func (s Style) Declarations() css.Declarations {
	decls := make(css.Declarations, 0, len(s.entries))
	for _, e := range s.entries {
		name, ok := customProperties[e.Property]
		if !ok {
			name = css.ToKebab(e.Property)
		}
		decls = append(decls, css.Declaration{Property: name, Value: e.Value})
	}
	return decls
}

// CSS returns inline style text.
func (s Style) CSS() string {
	return s.Declarations().String()
}

// Color returns property parsed as color with its alpha.
func (s Style) Color(prop string) (colorful.Color, float64, bool) {
	v, ok := s.Get(prop)
	if !ok {
		return colorful.Color{}, 0, false
	}
	return css.ParseColor(v.Raw)
}

// FontSize returns font size in pixels, 16 when not set.
func (s Style) FontSize() float64 {
	if v, ok := s.Get(FontSize); ok {
		if px, ok := v.Pixels(16); ok && px > 0 {
			return px
		}
	}
	return 16
}

// Length returns property as length in pixels, relative units are resolved
// against style font size.
func (s Style) Length(prop string, fallback float64) float64 {
	v, ok := s.Get(prop)
	if !ok {
		return fallback
	}
	if px, ok := css.ParseLength(v.Raw, s.FontSize()); ok {
		return px
	}
	return fallback
}

// Box returns shorthand property (padding) as top, right, bottom and left
// lengths in pixels.
func (s Style) Box(prop string) [4]float64 {
	v, ok := s.Get(prop)
	if !ok {
		return [4]float64{}
	}
	return css.Box(v.Raw, s.FontSize())
}
