package saliency

import (
	"math"

	"github.com/AnyUserName/salmap-cli/internal/colorhist"
	"github.com/AnyUserName/salmap-cli/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// Similarity relates every pair of unique colors.
type Similarity struct {
	// Centroids is the n × 3 representative color of every unique color.
	Centroids *tensor.Tensor[float64]
	// Distance holds pairwise Euclidean centroid distances.
	Distance *mat.SymDense
	// Affinity holds exp(-d²/(2σ²)) for every pair.
	Affinity *mat.SymDense
	// Index maps a bins³ color coordinate to its position in the unique
	// color list, -1 where the bin is empty.
	Index *tensor.Tensor[int]
}

func similarity(q *colorhist.Quantization, sigmac float64, cartesian bool) *Similarity {
	n := q.NumColors()
	b := q.Bins

	indexing := tensor.IndexingIJ
	if cartesian {
		indexing = tensor.IndexingXY
	}
	grids := tensor.Meshgrid(indexing, q.Edges[0], q.Edges[1], q.Edges[2])

	cent := tensor.New[float64](n, 3)
	index := tensor.Full(-1, b, b, b)
	for i, c := range q.Colors {
		for k := 0; k < 3; k++ {
			cent.Set(grids[k].At(c[0], c[1], c[2]), i, k)
		}
		index.Set(i, c[0], c[1], c[2])
	}

	dist := mat.NewSymDense(n, nil)
	aff := mat.NewSymDense(n, nil)
	twoSigma2 := 2 * sigmac * sigmac
	data := cent.Data()
	for i := 0; i < n; i++ {
		// one 1 × n × 3 slab of pairwise differences per row
		diff := tensor.Subtract(tensor.FromSlice(data[3*i:3*i+3], 1, 1, 3), cent)
		for j := i; j < n; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				d := diff.At(0, j, k)
				s += d * d
			}
			dist.SetSym(i, j, math.Sqrt(s))
			aff.SetSym(i, j, math.Exp(-s/twoSigma2))
		}
	}
	return &Similarity{Centroids: cent, Distance: dist, Affinity: aff, Index: index}
}
