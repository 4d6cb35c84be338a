package config

import (
	"image/png"
)

// Specification of PNG encoder effort.
// ENUM(default, none, speed, best)
type PNGCompression int

// Level returns encoder compression level.
func (p PNGCompression) Level() png.CompressionLevel {
	switch p {
	case PNGCompressionNone:
		return png.NoCompression
	case PNGCompressionSpeed:
		return png.BestSpeed
	case PNGCompressionBest:
		return png.BestCompression
	default:
		return png.DefaultCompression
	}
}
