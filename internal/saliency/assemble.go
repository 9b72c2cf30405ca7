package saliency

import (
	"runtime"
	"sync"

	"github.com/AnyUserName/salmap-cli/internal/colorhist"
	"gonum.org/v1/gonum/floats"
)

// parallelPixels is the map size above which broadcast splits rows across
// goroutines.
const parallelPixels = 1 << 16

// assemble weights contrast by shape probability, smooths the result across
// similar colors and rescales it into [0, 1).
func assemble(sim *Similarity, contrast, prob []float64) []float64 {
	n := len(contrast)
	raw := make([]float64, n)
	floats.MulTo(raw, contrast, prob)

	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	sal := mulVec(sim.Affinity, raw)
	floats.Div(sal, mulVec(sim.Affinity, ones))

	lo, hi := floats.Min(sal), floats.Max(sal)
	floats.AddConst(-lo, sal)
	floats.Scale(1/(hi-lo+rescaleEpsilon), sal)
	return sal
}

// broadcast paints every pixel with the saliency of its color.
func broadcast(q *colorhist.Quantization, index []int, sal []float64) *Map {
	m := NewMap(q.Width, q.Height)
	grid := q.Grid.Data()
	b := q.Bins
	paint := func(y0, y1 int) {
		for i := y0 * q.Width; i < y1*q.Width; i++ {
			g := grid[3*i : 3*i+3]
			if k := index[(g[0]*b+g[1])*b+g[2]]; k >= 0 {
				m.Pix[i] = sal[k]
			}
		}
	}

	workers := runtime.GOMAXPROCS(0)
	if q.Width*q.Height < parallelPixels || workers < 2 {
		paint(0, q.Height)
		return m
	}
	band := (q.Height + workers - 1) / workers
	var wg sync.WaitGroup
	for y := 0; y < q.Height; y += band {
		y1 := min(y+band, q.Height)
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			paint(y0, y1)
		}(y, y1)
	}
	wg.Wait()
	return m
}
