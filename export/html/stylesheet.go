package html

import (
	"fmt"
	"strings"

	"pagecraft/common"
)

const baseStylesheet = `* { box-sizing: border-box; }
body { margin: 0; background: #e5e7eb; }
.pc-page { position: relative; margin: 0 auto; padding: 48px; overflow: hidden; display: flex; flex-direction: column; gap: 16px; }
.pc-heading, .pc-body, .pc-caption { margin: 0; white-space: pre-wrap; overflow-wrap: anywhere; }
.pc-action { display: inline-block; align-self: flex-start; border-radius: 8px; }
.pc-metric { display: flex; flex-direction: column; }
.pc-swatch { width: 64px; height: 64px; border-radius: 8px; border: 1px solid rgba(0, 0, 0, 0.1); }
.pc-diagram { margin: 0; white-space: pre-wrap; }
.pc-placeholder { opacity: 0.6; }
.pc-error { padding: 16px; border: 2px dashed currentColor; }
@keyframes pc-fadeIn { from { opacity: 0; } to { opacity: 1; } }
@keyframes pc-slideUp { from { opacity: 0; transform: translateY(40px); } to { opacity: 1; transform: none; } }
@keyframes pc-slideLeft { from { opacity: 0; transform: translateX(40px); } to { opacity: 1; transform: none; } }
@keyframes pc-zoomIn { from { opacity: 0; transform: scale(0.9); } to { opacity: 1; transform: none; } }
.pc-anim-fadeIn { animation: pc-fadeIn 0.6s ease-out both; }
.pc-anim-slideUp { animation: pc-slideUp 0.6s ease-out both; }
.pc-anim-slideLeft { animation: pc-slideLeft 0.6s ease-out both; }
.pc-anim-zoomIn { animation: pc-zoomIn 0.6s ease-out both; }
@media print { body { background: none; } .pc-page { margin: 0; } [class*="pc-anim-"] { animation: none; } }
`

// stylesheet returns document level CSS. Page dimensions come from content
// type, scrolling documents keep width only.
func stylesheet(shape common.Shape, mode Mode) string {
	var sb strings.Builder
	sb.WriteString(baseStylesheet)
	switch mode {
	case ModeScroll:
		fmt.Fprintf(&sb, ".pc-scroll .pc-page { max-width: %dpx; }\n", shape.Width)
	case ModeDeck:
		fmt.Fprintf(&sb, ".pc-deck .pc-page { width: %dpx; height: %dpx; margin-bottom: 24px; break-after: page; page-break-after: always; }\n", shape.Width, pageHeight(shape))
		fmt.Fprintf(&sb, "@page { size: %dpx %dpx; margin: 0; }\n", shape.Width, pageHeight(shape))
	case ModeSnapshot:
		fmt.Fprintf(&sb, ".pc-snapshot .pc-page { width: %dpx; height: %dpx; }\n", shape.Width, pageHeight(shape))
	}
	return sb.String()
}

func pageHeight(shape common.Shape) int {
	if shape.Height > 0 {
		return shape.Height
	}
	return shape.Width * 9 / 16
}
