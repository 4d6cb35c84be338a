package config

import (
	"strings"
	"unicode"
)

// CleanFileName removes characters which are not allowed in file names on
// current platform, hidden file prefix and control characters.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if unicode.IsControl(sym) || strings.ContainsRune(forbiddenNameChars, sym) {
			return -1
		}
		return sym
	}, in)
	out = trimName(strings.TrimLeft(out, "."))
	if len(out) == 0 {
		out = "untitled"
	}
	return out
}
