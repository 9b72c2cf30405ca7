package saliency

import (
	"fmt"
	"image"
	"math"

	"github.com/AnyUserName/salmap-cli/internal/planes"
	"github.com/disintegration/imaging"
)

// fineNeighborhoods are the center-surround half widths, one per scale.
var fineNeighborhoods = [...]int{12, 24, 48, 28, 56, 112}

// fineBlurSigma matches a 3×3 Gaussian kernel.
const fineBlurSigma = 0.8

// FineGrained is a center-surround intensity contrast algorithm computed
// over several scales with an integral image. Only Width and Height of its
// Config are used.
type FineGrained struct {
	cfg Config
}

// NewFineGrained returns the fine-grained algorithm.
func NewFineGrained(cfg Config) (*FineGrained, error) {
	c, err := cfg.WithDefaults()
	if err != nil {
		return nil, err
	}
	return &FineGrained{cfg: c}, nil
}

func (f *FineGrained) Name() string { return "fine" }

func (f *FineGrained) Compute(img image.Image) (*Map, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidInput)
	}
	w, h := f.cfg.Width, f.cfg.Height
	small := imaging.Resize(img, w, h, imaging.Linear)
	gray := planes.Gray(imaging.Blur(small, fineBlurSigma), w, h)
	return fineGrained(gray, w, h), nil
}

// integral returns the (h+1) × (w+1) summed area table of gray.
func integral(gray []float64, w, h int) []float64 {
	stride := w + 1
	sum := make([]float64, stride*(h+1))
	for y := 0; y < h; y++ {
		var row float64
		for x := 0; x < w; x++ {
			row += gray[y*w+x]
			sum[(y+1)*stride+x+1] = sum[y*stride+x+1] + row
		}
	}
	return sum
}

func clampInt(v, lo, hi int) int { return max(lo, min(hi, v)) }

// surroundMean is the mean of the window around (x, y), excluding the
// center pixel.
func surroundMean(sum []float64, w, h, x, y, n int, center float64) float64 {
	stride := w + 1
	x1, y1 := clampInt(x-n+1, 0, w), clampInt(y-n+1, 0, h)
	x2, y2 := clampInt(x+n+1, 0, w), clampInt(y+n+1, 0, h)
	area := (x2-x1)*(y2-y1) - 1
	if area <= 0 {
		return center
	}
	v := sum[y2*stride+x2] + sum[y1*stride+x1] - sum[y2*stride+x1] - sum[y1*stride+x2]
	return (v - center) / float64(area)
}

func sat8(v float64) float64 { return math.Max(0, math.Min(255, math.Round(v))) }

func fineGrained(gray []float64, w, h int) *Map {
	sum := integral(gray, w, h)
	n := w * h
	on := make([]float64, n)
	off := make([]float64, n)
	for _, nb := range fineNeighborhoods {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				i := y*w + x
				c := gray[i]
				mean := surroundMean(sum, w, h, x, y, nb, c)
				on[i] += sat8(c - mean)
				off[i] += sat8(mean - c)
			}
		}
	}

	normalize := func(v []float64) float64 {
		var peak float64
		for _, s := range v {
			peak = math.Max(peak, s)
		}
		var top float64
		for i, s := range v {
			if peak > 0 {
				v[i] = sat8(255 * s / peak)
			} else {
				v[i] = 0
			}
			top = math.Max(top, v[i])
		}
		return top
	}
	peak := math.Max(normalize(on), normalize(off))

	m := NewMap(w, h)
	if peak == 0 {
		return m
	}
	var top float64
	for i := range m.Pix {
		m.Pix[i] = sat8(255 * (on[i] + off[i]) / peak)
		top = math.Max(top, m.Pix[i])
	}
	for i := range m.Pix {
		m.Pix[i] /= top
	}
	return m
}
