package saliency

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/floats"
)

// Map is a row-major Width × Height grid of saliency values.
type Map struct {
	Width  int
	Height int
	Pix    []float64
}

// NewMap returns a zero map.
func NewMap(width, height int) *Map {
	return &Map{Width: width, Height: height, Pix: make([]float64, width*height)}
}

// At returns the value at (x, y).
func (m *Map) At(x, y int) float64 { return m.Pix[y*m.Width+x] }

// Set stores v at (x, y).
func (m *Map) Set(x, y int, v float64) { m.Pix[y*m.Width+x] = v }

// Bounds returns the map rectangle anchored at the origin.
func (m *Map) Bounds() image.Rectangle { return image.Rect(0, 0, m.Width, m.Height) }

// Mean returns the average value, 0 for an empty map.
func (m *Map) Mean() float64 {
	if len(m.Pix) == 0 {
		return 0
	}
	return floats.Sum(m.Pix) / float64(len(m.Pix))
}

// Gray renders the map as an 8-bit image, value·255 clamped to [0, 255].
func (m *Map) Gray() *image.Gray {
	img := image.NewGray(m.Bounds())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			v := math.Round(m.At(x, y) * 255)
			img.SetGray(x, y, color.Gray{Y: uint8(math.Max(0, math.Min(255, v)))})
		}
	}
	return img
}

// Image renders the map at width × height, resampling linearly when the
// size differs from the map's own.
func (m *Map) Image(width, height int) image.Image {
	g := m.Gray()
	if width == m.Width && height == m.Height {
		return g
	}
	return imaging.Resize(g, width, height, imaging.Linear)
}
