package saliency

import (
	"math"

	"github.com/AnyUserName/salmap-cli/internal/colorhist"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Spatial holds the color-smoothed statistics of every unique color.
type Spatial struct {
	// Contrast is the count-weighted color distance to all other colors.
	Contrast []float64
	// Normalizer is the affinity-weighted pixel count.
	Normalizer []float64
	// MX and MY are the smoothed mean pixel coordinates.
	MX, MY []float64
	// VX and VY are the smoothed coordinate variances.
	VX, VY []float64
}

func mulVec(a mat.Matrix, x []float64) []float64 {
	out := make([]float64, len(x))
	mat.NewVecDense(len(out), out).MulVec(a, mat.NewVecDense(len(x), x))
	return out
}

func bilateral(sim *Similarity, q *colorhist.Quantization) *Spatial {
	s := &Spatial{
		Contrast:   mulVec(sim.Distance, q.Counts),
		Normalizer: mulVec(sim.Affinity, q.Counts),
	}
	smooth := func(sum []float64) []float64 {
		v := mulVec(sim.Affinity, sum)
		floats.Div(v, s.Normalizer)
		return v
	}
	s.MX = smooth(q.Moments.SumX)
	s.MY = smooth(q.Moments.SumY)
	mx2 := smooth(q.Moments.SumX2)
	my2 := smooth(q.Moments.SumY2)

	n := len(s.MX)
	s.VX = make([]float64, n)
	s.VY = make([]float64, n)
	for i := 0; i < n; i++ {
		s.VX[i] = math.Abs(mx2[i] - s.MX[i]*s.MX[i])
		s.VY[i] = math.Abs(my2[i] - s.MY[i]*s.MY[i])
	}
	return s
}
