// Package planes turns decoded images into the floating-point channel planes
// the saliency algorithms consume: resized to the processing resolution and
// converted to the requested color space.
package planes

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("planes: invalid planes")

// Planes are three row-major Width × Height channels.
type Planes struct {
	Width  int
	Height int
	C      [3][]float64
}

// New allocates zeroed planes.
func New(width, height int) Planes {
	p := Planes{Width: width, Height: height}
	for c := range p.C {
		p.C[c] = make([]float64, width*height)
	}
	return p
}

// Validate checks that the planes have positive dimensions and that every
// channel holds exactly Width × Height values.
func (p Planes) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalid, p.Width, p.Height)
	}
	n := p.Width * p.Height
	for c := range p.C {
		if len(p.C[c]) != n {
			return fmt.Errorf("%w: channel %d has %d values, want %d", ErrInvalid, c, len(p.C[c]), n)
		}
	}
	return nil
}

func resize(img image.Image, width, height int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return imaging.Clone(img)
	}
	return imaging.Resize(img, width, height, imaging.Linear)
}

func clamp8(v float64) float64 {
	return math.Max(0, math.Min(255, math.Round(v)))
}

// Lab resizes img and converts it to CIE L*a*b* (D65) held at 8-bit scale:
// L in [0, 255] (L*·255/100), a and b offset by 128. Values are rounded as an
// 8-bit Lab image stores them.
func Lab(img image.Image, width, height int) Planes {
	src := resize(img, width, height)
	p := New(width, height)
	for y := 0; y < height; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < width; x++ {
			o := x * 4
			c := colorful.Color{
				R: float64(row[o]) / 255,
				G: float64(row[o+1]) / 255,
				B: float64(row[o+2]) / 255,
			}
			l, a, bb := c.Lab()
			i := y*width + x
			p.C[0][i] = clamp8(l * 255)
			p.C[1][i] = clamp8(a*100 + 128)
			p.C[2][i] = clamp8(bb*100 + 128)
		}
	}
	return p
}

// RGB resizes img without a color-space conversion. Channels are stored in
// B, G, R order.
func RGB(img image.Image, width, height int) Planes {
	src := resize(img, width, height)
	p := New(width, height)
	for y := 0; y < height; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < width; x++ {
			o := x * 4
			i := y*width + x
			p.C[0][i] = float64(row[o+2])
			p.C[1][i] = float64(row[o+1])
			p.C[2][i] = float64(row[o])
		}
	}
	return p
}

// Gray resizes img and returns its 8-bit luminance
// (0.299 R + 0.587 G + 0.114 B, rounded) as a single row-major plane.
func Gray(img image.Image, width, height int) []float64 {
	src := resize(img, width, height)
	out := make([]float64, width*height)
	for y := 0; y < height; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < width; x++ {
			o := x * 4
			v := 0.299*float64(row[o]) + 0.587*float64(row[o+1]) + 0.114*float64(row[o+2])
			out[y*width+x] = clamp8(v)
		}
	}
	return out
}
