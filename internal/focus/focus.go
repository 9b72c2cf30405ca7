// Package focus derives crop hints from a saliency map: the saliency
// weighted center and the bounding boxes of the most salient pixels.
package focus

import (
	"image"
	"math"

	"github.com/AnyUserName/salmap-cli/internal/saliency"
	"gonum.org/v1/gonum/floats"
)

// Thresholds are the peak fractions that Analyze reports regions for.
var Thresholds = []int{25, 40, 50, 75, 90}

// Point is a normalized position, both coordinates in [0, 1].
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box is a normalized rectangle.
type Box struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Meta is the focus description of one map.
type Meta struct {
	Center Point `json:"center"`
	// Regions maps a threshold percent to the box of pixels at or above that
	// fraction of the peak. Empty for an all-zero map.
	Regions map[int]Box `json:"regions,omitempty"`
}

// Analyze computes the focus metadata of m.
func Analyze(m *saliency.Map) Meta {
	meta := Meta{Center: Point{0.5, 0.5}}
	if m == nil || len(m.Pix) == 0 {
		return meta
	}
	total := floats.Sum(m.Pix)
	peak := floats.Max(m.Pix)
	if total <= 0 || peak <= 0 {
		return meta
	}

	var sx, sy float64
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			v := m.At(x, y)
			sx += v * (float64(x) + 0.5)
			sy += v * (float64(y) + 0.5)
		}
	}
	w, h := float64(m.Width), float64(m.Height)
	meta.Center = Point{X: sx / total / w, Y: sy / total / h}

	meta.Regions = make(map[int]Box, len(Thresholds))
	for _, pct := range Thresholds {
		cut := peak * float64(pct) / 100
		x0, y0, x1, y1 := m.Width, m.Height, -1, -1
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				if m.At(x, y) < cut {
					continue
				}
				x0, y0 = min(x0, x), min(y0, y)
				x1, y1 = max(x1, x), max(y1, y)
			}
		}
		meta.Regions[pct] = Box{
			MinX: float64(x0) / w,
			MinY: float64(y0) / h,
			MaxX: float64(x1+1) / w,
			MaxY: float64(y1+1) / h,
		}
	}
	return meta
}

// Region returns a regionW × regionH rectangle centered on the focus center
// of an imgW × imgH image, shifted to lie inside it. A region larger than
// the image is shrunk to the image.
func Region(meta Meta, imgW, imgH, regionW, regionH int) image.Rectangle {
	regionW = max(1, min(regionW, imgW))
	regionH = max(1, min(regionH, imgH))
	cx := meta.Center.X * float64(imgW)
	cy := meta.Center.Y * float64(imgH)
	x0 := int(math.Round(cx - float64(regionW)/2))
	y0 := int(math.Round(cy - float64(regionH)/2))
	x0 = max(0, min(x0, imgW-regionW))
	y0 = max(0, min(y0, imgH-regionH))
	return image.Rect(x0, y0, x0+regionW, y0+regionH)
}

// CropSize returns the largest width × height with width/height = ratio
// that fits an imgW × imgH image.
func CropSize(imgW, imgH int, ratio float64) (int, int) {
	if ratio <= 0 || imgW <= 0 || imgH <= 0 {
		return imgW, imgH
	}
	w := float64(imgW)
	h := w / ratio
	if h > float64(imgH) {
		h = float64(imgH)
		w = h * ratio
	}
	return max(1, int(math.Round(w))), max(1, int(math.Round(h)))
}

// Crop combines CropSize and Region.
func Crop(meta Meta, imgW, imgH int, ratio float64) image.Rectangle {
	w, h := CropSize(imgW, imgH, ratio)
	return Region(meta, imgW, imgH, w, h)
}
