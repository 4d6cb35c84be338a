// Package common keeps enumerations shared by the document model, renderer
// and exporters, so none of them has to import the others just for names.
package common

// Top level document shape.
// ENUM(presentation, post, resume, website)
type ContentType int

// Kind of a layout slot content.
// ENUM(text, longText, colorSwatch, backgroundFill, dataMetric, diagramSource)
type SlotKind string

// Presentational role of a rendered slot.
// ENUM(heading, body, caption, action)
type SlotRole string

// Entrance animation applied to an item.
// ENUM(none, fadeIn, slideUp, slideLeft, zoomIn)
type Animation string

// Specification of requested export output.
// ENUM(html, pptx, pdf, png, jpeg, json)
type ExportFmt int

// How items are assembled into output.
// ENUM(scroll, deck, snapshot)
type ExportShape int

// Shape describes fixed canvas properties of a content type.
type Shape struct {
	Name     string
	Width    int
	Height   int // 0 means content driven height
	Aspect   string
	Category string
	Assembly ExportShape
}

var shapes = map[ContentType]Shape{
	ContentTypePresentation: {Name: "Presentation", Width: 1280, Height: 720, Aspect: "16/9", Category: "presentation", Assembly: ExportShapeDeck},
	ContentTypePost:         {Name: "Social Post", Width: 1080, Height: 1080, Aspect: "1/1", Category: "social", Assembly: ExportShapeSnapshot},
	ContentTypeResume:       {Name: "Resume", Width: 794, Height: 1123, Aspect: "210mm/297mm", Category: "resume", Assembly: ExportShapeDeck},
	ContentTypeWebsite:      {Name: "Website Section", Width: 1200, Height: 0, Aspect: "auto", Category: "website", Assembly: ExportShapeScroll},
}

// Shape returns canvas properties of content type.
func (c ContentType) Shape() Shape {
	if s, ok := shapes[c]; ok {
		return s
	}
	return shapes[ContentTypePresentation]
}

// ContentTypeForCategory maps layout category to the document shape it
// belongs to. Unknown categories are treated as presentation.
func ContentTypeForCategory(category string) ContentType {
	for ct, s := range shapes {
		if s.Category == category {
			return ct
		}
	}
	return ContentTypePresentation
}

// Ext returns file extension for the format.
func (f ExportFmt) Ext() string {
	switch f {
	case ExportFmtHtml:
		return ".html"
	case ExportFmtPptx:
		return ".pptx"
	case ExportFmtPdf:
		return ".pdf"
	case ExportFmtPng:
		return ".png"
	case ExportFmtJpeg:
		return ".jpg"
	case ExportFmtJson:
		return ".json"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// IsRaster reports whether format produces a single image.
func (f ExportFmt) IsRaster() bool {
	return f == ExportFmtPng || f == ExportFmtJpeg
}

// Supports reports whether format makes sense for the given assembly. Deck
// binary formats cannot express a continuous page and a snapshot is a single
// picture of one item.
func (f ExportFmt) Supports(shape ExportShape) bool {
	switch f {
	case ExportFmtHtml, ExportFmtJson, ExportFmtPdf:
		return true
	case ExportFmtPptx:
		return shape == ExportShapeDeck
	case ExportFmtPng, ExportFmtJpeg:
		return shape == ExportShapeSnapshot || shape == ExportShapeDeck
	default:
		return false
	}
}
