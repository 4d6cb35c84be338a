// Package debug has helpers producing human readable dumps for debug
// reports.
package debug

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// TreeWriter accumulates indented tree dump.
type TreeWriter struct {
	w *strings.Builder
	// texts longer than this are shortened, 0 means no limit
	limit int
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

// WithTextLimit sets maximum number of characters TextBlock shows.
func (tw *TreeWriter) WithTextLimit(n int) *TreeWriter {
	tw.limit = max(0, n)
	return tw
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(tw.shorten(value)))
	tw.w.WriteByte('\n')
}

// Attrs writes sorted key=value pairs on a single line, empty values are
// skipped. Nothing is written when all values are empty.
func (tw *TreeWriter) Attrs(depth int, label string, attrs map[string]string) {
	keys := make([]string, 0, len(attrs))
	for k, v := range attrs {
		if v != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return
	}
	slices.Sort(keys)
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteByte(':')
	for _, k := range keys {
		tw.w.WriteByte(' ')
		tw.w.WriteString(k)
		tw.w.WriteByte('=')
		tw.w.WriteString(attrs[k])
	}
	tw.w.WriteByte('\n')
}

func (tw *TreeWriter) shorten(s string) string {
	if tw.limit == 0 || utf8.RuneCountInString(s) <= tw.limit {
		return s
	}
	return string([]rune(s)[:tw.limit]) + "..."
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
