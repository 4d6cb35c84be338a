package render

// Role of a fragment tree node.
// ENUM(page, background, heading, body, caption, action, metric, metricValue, metricLabel, metricTrend, diagram, swatch, error)
type Role int

// Encoding of a background fill value.
// ENUM(none, color, gradient, image)
type BackgroundKind int
