// Package colorhist quantizes three channel planes into a coarse joint color
// histogram and reduces every occupied color bin to the spatial moments of
// the pixels that carry it.
package colorhist

import (
	"errors"
	"fmt"
	"math"

	"github.com/AnyUserName/salmap-cli/internal/tensor"
)

// ErrInvalidBins is returned for a non-positive bin count, an empty or
// inverted range, or channels of unequal length.
var ErrInvalidBins = errors.New("colorhist: invalid bin specification")

// BinSpec describes the uniform binning of one channel over [Low, High].
type BinSpec struct {
	Count int
	Low   float64
	High  float64
}

// Histogrammer builds a dense Count0 × Count1 × Count2 occupancy histogram
// of three equally sized channels.
type Histogrammer interface {
	Histogram(channels [3][]float64, spec [3]BinSpec) (*tensor.Tensor[int], error)
}

// Uniform is the default Histogrammer. Bins are equal-width over
// [Low, High]; the last bin is closed so values equal to High are counted.
// Values outside the range are dropped.
type Uniform struct{}

func (s BinSpec) index(v float64) int {
	if v < s.Low || v > s.High || math.IsNaN(v) {
		return -1
	}
	if v == s.High {
		return s.Count - 1
	}
	b := int(math.Floor((v - s.Low) * float64(s.Count) / (s.High - s.Low)))
	if b >= s.Count {
		b = s.Count - 1
	}
	return b
}

func (s BinSpec) validate() error {
	if s.Count <= 0 {
		return fmt.Errorf("%w: bin count %d", ErrInvalidBins, s.Count)
	}
	if !(s.High > s.Low) {
		return fmt.Errorf("%w: range [%v, %v]", ErrInvalidBins, s.Low, s.High)
	}
	return nil
}

// Histogram implements Histogrammer.
func (Uniform) Histogram(channels [3][]float64, spec [3]BinSpec) (*tensor.Tensor[int], error) {
	for c := range spec {
		if err := spec[c].validate(); err != nil {
			return nil, fmt.Errorf("channel %d: %w", c, err)
		}
	}
	n := len(channels[0])
	if len(channels[1]) != n || len(channels[2]) != n {
		return nil, fmt.Errorf("%w: channel lengths %d, %d, %d",
			ErrInvalidBins, len(channels[0]), len(channels[1]), len(channels[2]))
	}

	hist := tensor.New[int](spec[0].Count, spec[1].Count, spec[2].Count)
	data := hist.Data()
	s1, s2 := spec[1].Count, spec[2].Count
	for i := 0; i < n; i++ {
		b0 := spec[0].index(channels[0][i])
		b1 := spec[1].index(channels[1][i])
		b2 := spec[2].index(channels[2][i])
		if b0 < 0 || b1 < 0 || b2 < 0 {
			continue
		}
		data[(b0*s1+b1)*s2+b2]++
	}
	return hist, nil
}
