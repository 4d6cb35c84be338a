package render

import (
	"strings"

	"pagecraft/css"
)

// Background is parsed background fill value.
type Background struct {
	Kind  BackgroundKind
	Value string
}

// ParseBackground recognizes background fill encodings: "gradient:<css>",
// "image:<reference>", bare CSS gradient, color, or empty.
func ParseBackground(s string) Background {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Background{Kind: BackgroundKindNone}
	case strings.HasPrefix(s, "gradient:"):
		return Background{Kind: BackgroundKindGradient, Value: strings.TrimSpace(strings.TrimPrefix(s, "gradient:"))}
	case strings.HasPrefix(s, "image:"):
		return Background{Kind: BackgroundKindImage, Value: strings.TrimSpace(strings.TrimPrefix(s, "image:"))}
	case strings.Contains(strings.ToLower(s), "gradient("):
		return Background{Kind: BackgroundKindGradient, Value: s}
	case strings.HasPrefix(strings.ToLower(s), "url("):
		ref := strings.TrimSuffix(strings.TrimPrefix(s[3:], "("), ")")
		return Background{Kind: BackgroundKindImage, Value: strings.Trim(ref, `"' `)}
	}
	return Background{Kind: BackgroundKindColor, Value: s}
}

// IsZero reports empty background.
func (b Background) IsZero() bool {
	return b.Kind == BackgroundKindNone || b.Value == ""
}

// CSS returns value usable as CSS background property.
func (b Background) CSS() string {
	switch b.Kind {
	case BackgroundKindColor, BackgroundKindGradient:
		return b.Value
	case BackgroundKindImage:
		return `url("` + css.Escape(b.Value) + `") center/cover no-repeat`
	}
	return ""
}

// Gradient parses gradient background.
func (b Background) Gradient() (css.Gradient, bool) {
	if b.Kind != BackgroundKindGradient {
		return css.Gradient{}, false
	}
	return css.ParseGradient(b.Value)
}

// String returns encoded form accepted by ParseBackground.
func (b Background) String() string {
	switch b.Kind {
	case BackgroundKindGradient:
		return "gradient:" + b.Value
	case BackgroundKindImage:
		return "image:" + b.Value
	case BackgroundKindColor:
		return b.Value
	}
	return ""
}
