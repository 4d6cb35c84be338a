package text

import (
	"strings"
	"unicode/utf8"
)

const ellipsis = "…"

// Preview returns first sentence of the text limited to limit characters.
// Long sentence is cut on word boundary when possible and ellipsis is
// appended. Zero limit means no limit.
func (s *Splitter) Preview(in string, limit int) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return ""
	}
	first := in
	for sentence := range s.Sentences(in) {
		first = strings.TrimSpace(sentence)
		break
	}
	return Truncate(first, limit)
}

// Truncate limits text to limit characters cutting on word boundary.
func Truncate(in string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(in) <= limit {
		return in
	}
	return strings.TrimRight(cut(in, limit), " ,;:-") + ellipsis
}

func cut(in string, limit int) string {
	var (
		sb    strings.Builder
		count int
	)
	for word := range Words(in, false) {
		n := utf8.RuneCountInString(word)
		if sb.Len() > 0 {
			n++
		}
		if count+n > limit {
			break
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(word)
		count += n
	}
	if sb.Len() == 0 {
		// single word longer than limit
		return string([]rune(in)[:limit])
	}
	return sb.String()
}
