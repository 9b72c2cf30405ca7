package saliency

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// shapeFeatures returns (x spread, y spread, x offset, y offset) for one
// color. Offsets are relative to the image center.
func shapeFeatures(s *Spatial, i, width, height int, heightSpread bool) [4]float64 {
	w, h := float64(width), float64(height)
	xs := w
	if heightSpread {
		xs = h
	}
	return [4]float64{
		math.Sqrt(12*s.VX[i]) / xs,
		math.Sqrt(12*s.VY[i]) / h,
		(s.MX[i] - w/2) / w,
		(s.MY[i] - h/2) / h,
	}
}

// shapeProbability scores every color against the prior as
// exp(-½ (f-μ)ᵀ Σ⁻¹ (f-μ)).
func shapeProbability(s *Spatial, width, height int, prior ShapePrior, heightSpread bool) []float64 {
	inv := mat.NewDense(4, 4, nil)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			inv.Set(r, c, prior.InvCov[r][c])
		}
	}
	d := mat.NewVecDense(4, nil)
	out := make([]float64, len(s.MX))
	for i := range out {
		f := shapeFeatures(s, i, width, height, heightSpread)
		for k := 0; k < 4; k++ {
			d.SetVec(k, f[k]-prior.Mean[k])
		}
		out[i] = math.Exp(-0.5 * mat.Inner(d, inv, d))
	}
	return out
}
