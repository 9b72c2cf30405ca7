package encoder

import (
	"image"
)

// Encoder encodes a saliency map image to a specific format.
type Encoder interface {
	// Format returns the output format name ("png", "jpeg").
	Format() string

	// Encode converts the image to bytes at the given quality (1-100).
	// Lossless formats ignore quality.
	Encode(img image.Image, quality int) ([]byte, error)

	// Extension returns the file extension without dot.
	Extension() string
}
