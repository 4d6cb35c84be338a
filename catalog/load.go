package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"pagecraft/common"
	"pagecraft/css"
)

type rawSlot struct {
	ID          string `yaml:"id"`
	Kind        string `yaml:"kind"`
	Type        string `yaml:"type"`
	ContentType string `yaml:"contentType"`
	Placeholder string `yaml:"placeholder"`
	MaxLength   int    `yaml:"maxLength"`
	MaxChars    int    `yaml:"maxChars"`
	Required    bool   `yaml:"required"`
	Role        string `yaml:"role"`
}

type rawConstraint struct {
	Required  bool `yaml:"required"`
	MaxChars  int  `yaml:"maxChars"`
	MaxLength int  `yaml:"maxLength"`
}

type rawLayout struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Category    string    `yaml:"category"`
	Subcategory string    `yaml:"subcategory"`
	Icon        string    `yaml:"icon"`
	Description string    `yaml:"description"`
	Slots       yaml.Node `yaml:"slots"`
	Style       yaml.Node `yaml:"style"`
	CSS         struct {
		Default yaml.Node `yaml:"default"`
	} `yaml:"css"`
	EditableStyleProperties []string                 `yaml:"editableStyleProperties"`
	EditableProperties      []string                 `yaml:"editableProperties"`
	Animations              []string                 `yaml:"animations"`
	AnimationOptions        []string                 `yaml:"animationOptions"`
	Constraints             map[string]rawConstraint `yaml:"constraints"`
}

type rawTheme struct {
	ID     string            `yaml:"id"`
	Name   string            `yaml:"name"`
	Colors map[string]string `yaml:"colors"`
	Fonts  Fonts             `yaml:"fonts"`
}

// slot kind spellings seen in hand written catalogs
var kindAliases = map[string]common.SlotKind{
	"string":     common.SlotKindText,
	"input":      common.SlotKindText,
	"textarea":   common.SlotKindLongText,
	"paragraph":  common.SlotKindLongText,
	"richtext":   common.SlotKindLongText,
	"color":      common.SlotKindColorSwatch,
	"swatch":     common.SlotKindColorSwatch,
	"background": common.SlotKindBackgroundFill,
	"gradient":   common.SlotKindBackgroundFill,
	"image":      common.SlotKindBackgroundFill,
	"stat":       common.SlotKindDataMetric,
	"metric":     common.SlotKindDataMetric,
	"data":       common.SlotKindDataMetric,
	"diagram":    common.SlotKindDiagramSource,
	"mermaid":    common.SlotKindDiagramSource,
}

func parseSlotKind(s string) (common.SlotKind, error) {
	if k, ok := kindAliases[strings.ToLower(s)]; ok {
		return k, nil
	}
	return common.ParseSlotKind(s)
}

// inferSlotKind is used for slots listed by name only.
func inferSlotKind(id string) common.SlotKind {
	switch strings.ToLower(id) {
	case "background":
		return common.SlotKindBackgroundFill
	case "visual", "diagram", "mermaid":
		return common.SlotKindDiagramSource
	case "body", "description", "content", "quote":
		return common.SlotKindLongText
	}
	if strings.HasPrefix(strings.ToLower(id), "stat") {
		return common.SlotKindDataMetric
	}
	return common.SlotKindText
}

type decoder struct {
	source   string
	parser   *css.Parser
	log      *zap.Logger
	layouts  []*Layout
	themes   []*Theme
	problems []error
}

func (d *decoder) reject(err error) {
	d.log.Warn("Rejecting catalog definition", zap.String("source", d.source), zap.Error(err))
	d.problems = append(d.problems, err)
}

// Load reads catalog from file. JSON and YAML are both accepted. Catalog
// which cannot be read or parsed is replaced by the default one, returned
// error is informational and matches ErrConfigLoadFailed. Empty source
// selects default catalog without error.
func Load(ctx context.Context, source string, log *zap.Logger) (*Catalog, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("catalog")

	if len(source) == 0 {
		log.Debug("Using default catalog")
		return Default(), nil
	}

	cat, err := load(ctx, source, log)
	if err != nil {
		lerr := &LoadError{Source: source, Err: err}
		log.Warn("Using default catalog", zap.Error(lerr))
		return Default(), lerr
	}
	log.Debug("Catalog loaded", zap.String("source", source),
		zap.Int("layouts", len(cat.layouts)), zap.Int("themes", len(cat.themes)), zap.Int("rejected", len(cat.problems)))
	return cat, nil
}

func load(ctx context.Context, source string, log *zap.Logger) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("unable to read catalog: %w", err)
	}
	return Parse(data, source, log)
}

// Parse decodes catalog document. Individual malformed layouts and themes
// are rejected and reported through Problems, document which does not
// produce any usable layout is an error. Missing themes are taken from
// the default catalog.
func Parse(data []byte, source string, log *zap.Logger) (*Catalog, error) {
	return parse(data, source, log, Default().Themes)
}

// parse does the work for Parse. fallback supplies themes when document
// has none, nil fallback makes missing themes an error.
func parse(data []byte, source string, log *zap.Logger, fallback func() []*Theme) (*Catalog, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unable to parse catalog: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("catalog document is empty")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("catalog document must be a mapping")
	}
	// original manifest keeps everything under "components"
	if comp := mappingValue(root, "components"); comp != nil && comp.Kind == yaml.MappingNode {
		root = comp
	}

	d := &decoder{source: source, parser: css.NewParser(log), log: log}

	layoutsNode := mappingValue(root, "layouts")
	if layoutsNode == nil {
		return nil, errors.New("catalog has no layouts")
	}
	d.collectLayouts(layoutsNode, nil, "")
	if len(d.layouts) == 0 {
		return nil, fmt.Errorf("catalog has no usable layouts (%d rejected)", len(d.problems))
	}

	if themesNode := mappingValue(root, "themes"); themesNode != nil {
		d.collectThemes(themesNode)
	}
	if len(d.themes) == 0 {
		if fallback == nil {
			return nil, fmt.Errorf("catalog has no usable themes (%d rejected)", len(d.problems))
		}
		log.Warn("Catalog has no usable themes, using default themes", zap.String("source", source))
		d.themes = fallback()
	}

	return newCatalog(source, d.layouts, d.themes, d.problems), nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// looksLikeLayout tells layout keyed by id from a category or subcategory
// level of nested catalog.
func looksLikeLayout(node *yaml.Node) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}
	for _, k := range []string{"slots", "name", "style", "css"} {
		if mappingValue(node, k) != nil {
			return true
		}
	}
	return false
}

// collectLayouts walks flat list, map keyed by id or nested
// category -> subcategory -> list forms.
func (d *decoder) collectLayouts(node *yaml.Node, path []string, key string) {
	switch node.Kind {
	case yaml.SequenceNode:
		for _, n := range node.Content {
			d.decodeLayout(n, path, "")
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			k, v := node.Content[i].Value, node.Content[i+1]
			switch {
			case looksLikeLayout(v):
				d.decodeLayout(v, path, k)
			case len(path) < 2:
				d.collectLayouts(v, append(path[:len(path):len(path)], k), k)
			default:
				d.reject(fmt.Errorf("layouts at %q (line %d): nesting is too deep", strings.Join(append(path, k), "/"), v.Line))
			}
		}
	default:
		d.reject(fmt.Errorf("layouts at %q (line %d): unexpected value", key, node.Line))
	}
}

func (d *decoder) decodeLayout(node *yaml.Node, path []string, defaultID string) {
	var raw rawLayout
	if err := node.Decode(&raw); err != nil {
		d.reject(fmt.Errorf("layout at line %d: %w", node.Line, err))
		return
	}
	l, err := d.normalizeLayout(&raw, path, defaultID)
	if err != nil {
		d.reject(fmt.Errorf("layout %q (line %d): %w", raw.ID, node.Line, err))
		return
	}
	if err := validateDefinition(l); err != nil {
		d.reject(fmt.Errorf("layout %q (line %d): %w", l.ID, node.Line, err))
		return
	}
	d.layouts = append(d.layouts, l)
}

func (d *decoder) normalizeLayout(raw *rawLayout, path []string, defaultID string) (*Layout, error) {
	l := &Layout{
		ID:          raw.ID,
		Name:        raw.Name,
		Category:    raw.Category,
		Subcategory: raw.Subcategory,
		Icon:        raw.Icon,
		Description: raw.Description,
	}
	if l.ID == "" {
		l.ID = defaultID
	}
	if l.Name == "" {
		l.Name = l.ID
	}
	if l.Category == "" && len(path) > 0 {
		l.Category = path[0]
	}
	if l.Subcategory == "" && len(path) > 1 {
		l.Subcategory = path[1]
	}

	slots, err := d.decodeSlots(&raw.Slots)
	if err != nil {
		return nil, err
	}
	for i := range slots {
		c, ok := raw.Constraints[slots[i].ID]
		if !ok {
			continue
		}
		slots[i].Required = slots[i].Required || c.Required
		if slots[i].MaxLength == 0 {
			slots[i].MaxLength = max(c.MaxChars, c.MaxLength)
		}
	}
	l.Slots = slots

	styleNode := &raw.Style
	if styleNode.Kind == 0 {
		styleNode = &raw.CSS.Default
	}
	if l.Style, err = d.decodeStyle(styleNode, l.ID); err != nil {
		return nil, err
	}

	l.EditableStyleProperties = append(raw.EditableStyleProperties, raw.EditableProperties...)
	for _, a := range append(raw.Animations, raw.AnimationOptions...) {
		anim, err := common.ParseAnimation(a)
		if err != nil {
			return nil, err
		}
		l.Animations = append(l.Animations, anim)
	}
	return l, nil
}

func (d *decoder) decodeSlots(node *yaml.Node) ([]Slot, error) {
	var slots []Slot
	switch node.Kind {
	case 0:
		// layout without slots
		return []Slot{}, nil
	case yaml.SequenceNode:
		for _, n := range node.Content {
			if n.Kind == yaml.ScalarNode {
				slots = append(slots, Slot{ID: n.Value, Kind: inferSlotKind(n.Value)})
				continue
			}
			s, err := decodeSlot(n, "")
			if err != nil {
				return nil, err
			}
			slots = append(slots, s)
		}
	case yaml.MappingNode:
		// keyed form, document order is slot order
		for i := 0; i+1 < len(node.Content); i += 2 {
			s, err := decodeSlot(node.Content[i+1], node.Content[i].Value)
			if err != nil {
				return nil, err
			}
			slots = append(slots, s)
		}
	default:
		return nil, fmt.Errorf("slots (line %d): unexpected value", node.Line)
	}
	return slots, nil
}

func decodeSlot(node *yaml.Node, defaultID string) (Slot, error) {
	var raw rawSlot
	if err := node.Decode(&raw); err != nil {
		return Slot{}, fmt.Errorf("slot at line %d: %w", node.Line, err)
	}
	s := Slot{
		ID:          raw.ID,
		Placeholder: raw.Placeholder,
		MaxLength:   max(raw.MaxLength, raw.MaxChars),
		Required:    raw.Required,
	}
	if s.ID == "" {
		s.ID = defaultID
	}

	kind := raw.Kind
	for _, alt := range []string{raw.Type, raw.ContentType} {
		if kind == "" {
			kind = alt
		}
	}
	if kind == "" {
		return Slot{}, fmt.Errorf("slot %q has no declared kind", s.ID)
	}
	k, err := parseSlotKind(kind)
	if err != nil {
		return Slot{}, fmt.Errorf("slot %q: %w", s.ID, err)
	}
	s.Kind = k

	if raw.Role != "" {
		r, err := common.ParseSlotRole(raw.Role)
		if err != nil {
			return Slot{}, fmt.Errorf("slot %q: %w", s.ID, err)
		}
		s.Role = r
	}
	return s, nil
}

// decodeStyle accepts CSS declaration text or property map with camelCase
// or CSS property names.
func (d *decoder) decodeStyle(node *yaml.Node, id string) (css.Declarations, error) {
	switch node.Kind {
	case 0:
		return css.Declarations{}, nil
	case yaml.ScalarNode:
		return d.parser.ParseDeclarations([]byte(node.Value), "layout "+id), nil
	case yaml.MappingNode:
		var decls css.Declarations
		for i := 0; i+1 < len(node.Content); i += 2 {
			k, v := node.Content[i], node.Content[i+1]
			if v.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("style property %q (line %d): value must be scalar", k.Value, v.Line)
			}
			prop := css.ToKebab(k.Value)
			decls = append(decls, css.Declaration{Property: prop, Value: d.parser.ParseValue(prop, v.Value)})
		}
		return decls, nil
	}
	return nil, fmt.Errorf("style (line %d): unexpected value", node.Line)
}

func (d *decoder) collectThemes(node *yaml.Node) {
	switch node.Kind {
	case yaml.SequenceNode:
		for _, n := range node.Content {
			d.decodeTheme(n, "")
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			d.decodeTheme(node.Content[i+1], node.Content[i].Value)
		}
	default:
		d.reject(fmt.Errorf("themes (line %d): unexpected value", node.Line))
	}
}

func (d *decoder) decodeTheme(node *yaml.Node, defaultID string) {
	var raw rawTheme
	if err := node.Decode(&raw); err != nil {
		d.reject(fmt.Errorf("theme at line %d: %w", node.Line, err))
		return
	}
	t := &Theme{ID: raw.ID, Name: raw.Name, Fonts: raw.Fonts}
	if t.ID == "" {
		t.ID = defaultID
	}
	if t.Name == "" {
		t.Name = t.ID
	}
	for k, v := range raw.Colors {
		switch strings.ToLower(k) {
		case "background", "bg":
			t.Colors.Background = v
		case "text":
			t.Colors.Text = v
		case "primary":
			t.Colors.Primary = v
		case "secondary":
			t.Colors.Secondary = v
		case "accent":
			t.Colors.Accent = v
		}
	}
	if err := validateDefinition(t); err != nil {
		d.reject(fmt.Errorf("theme %q (line %d): %w", t.ID, node.Line, err))
		return
	}
	d.themes = append(d.themes, t)
}
