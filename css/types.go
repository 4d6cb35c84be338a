package css

import (
	"io"
	"strings"
	"unicode"
)

// Value represents a parsed CSS property value.
type Value struct {
	Raw     string  // Original CSS value string (e.g., "1.2em", "bold", "#ff0000")
	Value   float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "em", "px", "%", "pt", etc.
	Keyword string  // Keyword if applicable: "bold", "italic", "center", etc.
}

// IsNumeric returns true if the value has a numeric component.
// This includes explicit zero values like "0" or "0px".
func (v Value) IsNumeric() bool {
	if v.Unit != "" {
		return true
	}
	if v.Value != 0 && v.Keyword == "" {
		return true
	}
	if v.Raw != "" && v.Keyword == "" {
		firstChar := rune(v.Raw[0])
		if unicode.IsDigit(firstChar) || firstChar == '.' || firstChar == '-' || firstChar == '+' {
			return true
		}
	}
	return false
}

// IsKeyword returns true if the value is a keyword (no numeric component).
func (v Value) IsKeyword() bool {
	return v.Keyword != "" && v.Unit == ""
}

// Pixels converts length value to CSS pixels. Relative units are resolved
// against base font size, percentages and keywords are not lengths.
func (v Value) Pixels(base float64) (float64, bool) {
	if !v.IsNumeric() {
		return 0, false
	}
	switch v.Unit {
	case "", "px":
		return v.Value, true
	case "pt":
		return v.Value * 96 / 72, true
	case "pc":
		return v.Value * 16, true
	case "in":
		return v.Value * 96, true
	case "cm":
		return v.Value * 96 / 2.54, true
	case "mm":
		return v.Value * 96 / 25.4, true
	case "em", "rem":
		return v.Value * base, true
	}
	return 0, false
}

// Declaration is a single "property: value" pair.
type Declaration struct {
	Property  string
	Value     Value
	Important bool
}

// Declarations keeps declarations in source order. Later declarations of
// the same property win, as in a browser.
type Declarations []Declaration

// Get returns effective value of the property.
func (d Declarations) Get(property string) (Value, bool) {
	property = strings.ToLower(property)
	for i := len(d) - 1; i >= 0; i-- {
		if d[i].Property == property {
			return d[i].Value, true
		}
	}
	return Value{}, false
}

// Set replaces value of the property or appends new declaration.
func (d Declarations) Set(property, raw string) Declarations {
	property = strings.ToLower(property)
	v := Value{Raw: raw, Keyword: raw}
	for i := range d {
		if d[i].Property == property {
			d[i].Value = v
			return d
		}
	}
	return append(d, Declaration{Property: property, Value: v})
}

// Properties returns property names in order of first appearance without
// duplicates.
func (d Declarations) Properties() []string {
	seen := make(map[string]bool, len(d))
	names := make([]string, 0, len(d))
	for _, decl := range d {
		if seen[decl.Property] {
			continue
		}
		seen[decl.Property] = true
		names = append(names, decl.Property)
	}
	return names
}

// WriteTo serializes declarations as inline style text.
func (d Declarations) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, decl := range d {
		sep := "; "
		if i == 0 {
			sep = ""
		}
		s := sep + decl.Property + ": " + decl.Value.Raw
		if decl.Important {
			s += " !important"
		}
		n, err := io.WriteString(w, s)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (d Declarations) String() string {
	var sb strings.Builder
	_, _ = d.WriteTo(&sb)
	return sb.String()
}

// ToKebab converts camelCase property name used in configuration and
// overrides into CSS form: "fontFamily" becomes "font-family".
func ToKebab(name string) string {
	var sb strings.Builder
	sb.Grow(len(name) + 4)
	for _, r := range name {
		if unicode.IsUpper(r) {
			sb.WriteByte('-')
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// ToCamel is the reverse of ToKebab.
func ToCamel(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	upper := false
	for _, r := range name {
		if r == '-' {
			upper = sb.Len() > 0
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Escape makes string safe to be put into double quoted CSS string.
func Escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString("\\\\")
		case '"':
			sb.WriteString("\\\"")
		case '\n':
			sb.WriteString("\\a ")
		case '<':
			// keeps "</style>" from terminating embedding element
			sb.WriteString("\\3c ")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
