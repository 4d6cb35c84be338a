package catalog

import "fmt"

// built-in placeholder text for well known slot names
var defaultPlaceholders = map[string]string{
	"title":        "Your Title Here",
	"subtitle":     "Subtitle or description",
	"heading":      "Section Heading",
	"body":         "Your content goes here...",
	"cta":          "Click Here",
	"ctaPrimary":   "Get Started",
	"ctaSecondary": "Learn More",
	"contact":      "email@example.com",
	"headline":     "Your Headline",
	"subheadline":  "Your subheadline text here",
	"footer":       "Footer content",
	"visual":       "",
	"image":        "",
	"photo":        "",
	"background":   "",
}

// DefaultPlaceholder returns built-in placeholder for slot name, slots
// nobody knows about get their id in brackets.
func DefaultPlaceholder(slotID string) string {
	if p, ok := defaultPlaceholders[slotID]; ok {
		return p
	}
	return fmt.Sprintf("[%s]", slotID)
}

// PlaceholderText is the text shown in a slot which has no content.
func (s Slot) PlaceholderText() string {
	if s.Placeholder != "" {
		return s.Placeholder
	}
	return DefaultPlaceholder(s.ID)
}
