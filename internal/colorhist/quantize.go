package colorhist

import (
	"fmt"

	"github.com/AnyUserName/salmap-cli/internal/tensor"
	"gonum.org/v1/gonum/floats"
)

// DefaultBins is the per-channel bin count used when none is configured.
const DefaultBins = 8

// Moments are the raw first and second moments of the pixel coordinates of
// every unique color, aligned with Quantization.Colors.
type Moments struct {
	SumX  []float64
	SumY  []float64
	SumX2 []float64
	SumY2 []float64
}

// Quantization is the output of Quantize. Every per-color slice has exactly
// NumColors entries, in the order of Colors.
type Quantization struct {
	Width  int
	Height int
	Bins   int

	// Edges holds the Bins lower edges of every channel.
	Edges [3][]float64
	// Specs are the ranges handed to the Histogrammer.
	Specs [3]BinSpec

	// Grid is the height × width × 3 tensor of 0-based bin indices.
	Grid *tensor.Tensor[int]
	// Linear is the row-major per-pixel linear color code.
	Linear []int

	Histogram *tensor.Tensor[int]
	// Colors is the unique color list, in histogram scan order.
	Colors [][3]int
	// Counts are the histogram counts of Colors.
	Counts  []float64
	Moments Moments

	// Mismatches counts colors the histogram reports as occupied but no
	// quantized pixel carries. Their moments are zero.
	Mismatches int
}

// NumColors returns the number of unique colors.
func (q *Quantization) NumColors() int { return len(q.Colors) }

// Dims returns the histogram shape as a dims slice for ravel/unravel.
func (q *Quantization) Dims() []int { return []int{q.Bins, q.Bins, q.Bins} }

// Quantize bins each of the three height × width planes into bins levels,
// asks h for the joint histogram over the same ranges and computes the
// per-color moments.
func Quantize(channels [3][]float64, width, height, bins int, h Histogrammer) (*Quantization, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("%w: bin count %d", ErrInvalidBins, bins)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidBins, width, height)
	}
	n := width * height
	for c := range channels {
		if len(channels[c]) != n {
			return nil, fmt.Errorf("%w: channel %d has %d values for %dx%d",
				ErrInvalidBins, c, len(channels[c]), width, height)
		}
	}
	if h == nil {
		h = Uniform{}
	}

	q := &Quantization{Width: width, Height: height, Bins: bins}
	dims := q.Dims()

	var digits [3]*tensor.Tensor[int]
	for c := range channels {
		lo, hi := floats.Min(channels[c]), floats.Max(channels[c])
		if lo == hi {
			// zero-width range: widen so edges and histogram stay defined
			hi = lo + 1
		}
		q.Specs[c] = BinSpec{Count: bins, Low: lo, High: hi}
		q.Edges[c] = tensor.Linspace(lo, hi, bins, true)
		plane := tensor.FromSlice(channels[c], height, width)
		digits[c] = tensor.Digitize(plane, q.Edges[c], false)
	}

	q.Grid = tensor.New[int](height, width, 3)
	grid := q.Grid.Data()
	flat := make([][]int, 3)
	for c := range digits {
		flat[c] = make([]int, n)
		for i, d := range digits[c].Data() {
			grid[i*3+c] = d - 1
			flat[c][i] = d - 1
		}
	}
	q.Linear = tensor.RavelMultiIndex(flat, dims)

	hist, err := h.Histogram(channels, q.Specs)
	if err != nil {
		return nil, fmt.Errorf("histogram: %w", err)
	}
	if s := hist.Shape(); len(s) != 3 || s[0] != bins || s[1] != bins || s[2] != bins {
		return nil, fmt.Errorf("%w: histogram shape %v, want %v", ErrInvalidBins, s, dims)
	}
	q.Histogram = hist

	index := tensor.Nonzero(hist)
	colorLinear := tensor.RavelMultiIndex(index, dims)
	k := len(colorLinear)
	q.Colors = make([][3]int, k)
	q.Counts = make([]float64, k)
	for i := range q.Colors {
		q.Colors[i] = [3]int{index[0][i], index[1][i], index[2][i]}
		q.Counts[i] = float64(hist.Data()[colorLinear[i]])
	}

	q.Moments, q.Mismatches = moments(q.Linear, colorLinear, width, height, len(hist.Data()))
	return q, nil
}

// moments reduces the pixel coordinates of every linear color code to
// Σx, Σy, Σx², Σy² and zero-fills colors without matching pixels.
func moments(linear, colors []int, width, height, codes int) (Moments, int) {
	pixels := make([]int, len(linear))
	for i := range pixels {
		pixels[i] = i
	}
	where := tensor.UnravelIndex(pixels, []int{height, width})
	ys, xs := where[0], where[1]

	var (
		hits = make([]int, codes)
		sx   = make([]float64, codes)
		sy   = make([]float64, codes)
		sx2  = make([]float64, codes)
		sy2  = make([]float64, codes)
	)
	for i, code := range linear {
		x, y := float64(xs[i]), float64(ys[i])
		hits[code]++
		sx[code] += x
		sy[code] += y
		sx2[code] += x * x
		sy2[code] += y * y
	}

	m := Moments{
		SumX:  make([]float64, len(colors)),
		SumY:  make([]float64, len(colors)),
		SumX2: make([]float64, len(colors)),
		SumY2: make([]float64, len(colors)),
	}
	mismatches := 0
	for i, code := range colors {
		if hits[code] == 0 {
			mismatches++
			continue
		}
		m.SumX[i] = sx[code]
		m.SumY[i] = sy[code]
		m.SumX2[i] = sx2[code]
		m.SumY2[i] = sy2[code]
	}
	return m, mismatches
}
