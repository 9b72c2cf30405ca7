package tensor

// Linspace returns count evenly spaced values starting at start. The range
// is [start, stop) when exclusiveEnd is set and [start, stop] otherwise.
// count == 1 yields [start]; count < 1 yields an empty slice.
func Linspace(start, stop float64, count int, exclusiveEnd bool) []float64 {
	if count < 2 {
		if count == 1 {
			return []float64{start}
		}
		return []float64{}
	}
	div := float64(count - 1)
	if exclusiveEnd {
		div = float64(count)
	}
	step := (stop - start) / div
	out := make([]float64, count)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// digitizeOne returns the 1-based interval of v. Values below the first edge
// land in interval 1; values at or above the last edge land in len(edges)
// (len(edges)-1 when right is set).
func digitizeOne(v float64, edges []float64, right bool) int {
	last := edges[len(edges)-1]
	if v >= last {
		if right {
			return len(edges) - 1
		}
		return len(edges)
	}
	for i := 1; i < len(edges); i++ {
		lo, hi := edges[i-1], edges[i]
		if right {
			if lo < v && v <= hi {
				return i
			}
		} else if lo <= v && v < hi {
			return i
		}
	}
	return 1
}

// DigitizeValues digitizes a flat list of values against ascending edges,
// using edges[i-1] <= v < edges[i] (or edges[i-1] < v <= edges[i] when
// right is set).
func DigitizeValues(values []float64, edges []float64, right bool) []int {
	if len(edges) == 0 {
		panic(shapeErrorf("digitize needs at least one edge"))
	}
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = digitizeOne(v, edges, right)
	}
	return out
}

// Digitize applies DigitizeValues to every element of values, keeping its
// shape.
func Digitize(values *Tensor[float64], edges []float64, right bool) *Tensor[int] {
	out := New[int](values.shape...)
	copy(out.data, DigitizeValues(values.data, edges, right))
	return out
}

func checkDims(dims []int) int {
	if len(dims) == 0 {
		panic(shapeErrorf("empty dims"))
	}
	n := 1
	for _, d := range dims {
		if d <= 0 {
			panic(shapeErrorf("non-positive dimension in %v", dims))
		}
		n *= d
	}
	return n
}

// RavelIndex flattens one coordinate tuple under row-major layout.
func RavelIndex(coord []int, dims []int) int {
	checkDims(dims)
	if len(coord) != len(dims) {
		panic(shapeErrorf("coordinate %v for dims %v", coord, dims))
	}
	idx := 0
	for a, c := range coord {
		if c < 0 || c >= dims[a] {
			panic(shapeErrorf("coordinate %v out of bounds for dims %v", coord, dims))
		}
		idx = idx*dims[a] + c
	}
	return idx
}

// RavelMultiIndex flattens parallel per-axis coordinate lists:
// multi[a][i] is the coordinate of point i along axis a.
func RavelMultiIndex(multi [][]int, dims []int) []int {
	checkDims(dims)
	if len(multi) != len(dims) {
		panic(shapeErrorf("%d coordinate lists for dims %v", len(multi), dims))
	}
	n := len(multi[0])
	for a := range multi {
		if len(multi[a]) != n {
			panic(shapeErrorf("coordinate lists of unequal length"))
		}
	}
	out := make([]int, n)
	coord := make([]int, len(dims))
	for i := range out {
		for a := range multi {
			coord[a] = multi[a][i]
		}
		out[i] = RavelIndex(coord, dims)
	}
	return out
}

// UnravelOne is the inverse of RavelIndex.
func UnravelOne(flat int, dims []int) []int {
	total := checkDims(dims)
	if flat < 0 || flat >= total {
		panic(shapeErrorf("flat index %d out of bounds for dims %v", flat, dims))
	}
	coord := make([]int, len(dims))
	for a := len(dims) - 1; a >= 0; a-- {
		coord[a] = flat % dims[a]
		flat /= dims[a]
	}
	return coord
}

// UnravelIndex is the inverse of RavelMultiIndex. It returns one coordinate
// list per axis.
func UnravelIndex(flat []int, dims []int) [][]int {
	checkDims(dims)
	out := make([][]int, len(dims))
	for a := range out {
		out[a] = make([]int, len(flat))
	}
	for i, f := range flat {
		c := UnravelOne(f, dims)
		for a := range c {
			out[a][i] = c[a]
		}
	}
	return out
}

// Indexing selects the axis ordering of Meshgrid.
type Indexing int

const (
	// IndexingXY is Cartesian ordering: the first two output axes are
	// (len(axis1), len(axis0)).
	IndexingXY Indexing = iota
	// IndexingIJ is matrix ordering: output axis k has length len(axis k).
	IndexingIJ
)

// Meshgrid builds 2-D or 3-D coordinate grids from two or three axes. The
// k-th result holds the value of axis k at every grid position.
func Meshgrid(indexing Indexing, axes ...[]float64) []*Tensor[float64] {
	if len(axes) != 2 && len(axes) != 3 {
		panic(shapeErrorf("meshgrid needs 2 or 3 axes, got %d", len(axes)))
	}
	shape := make([]int, len(axes))
	for k := range axes {
		shape[k] = len(axes[k])
	}
	// position p along output axis a reads source axis src[a]
	src := []int{0, 1, 2}[:len(axes)]
	if indexing == IndexingXY {
		shape[0], shape[1] = shape[1], shape[0]
		src[0], src[1] = 1, 0
	}
	out := make([]*Tensor[float64], len(axes))
	for k := range axes {
		out[k] = New[float64](shape...)
	}
	idx := make([]int, len(shape))
	for off := 0; off < out[0].Len(); off++ {
		rem := off
		for a := len(shape) - 1; a >= 0; a-- {
			idx[a] = rem % shape[a]
			rem /= shape[a]
		}
		for a := range shape {
			k := src[a]
			out[k].data[off] = axes[k][idx[a]]
		}
	}
	return out
}

// Transpose swaps the axes of a rank-2 tensor. Rank-1 input is returned as
// a copy; rank 3 is not supported.
func Transpose[T Number](t *Tensor[T]) *Tensor[T] {
	switch t.Rank() {
	case 1:
		return t.Clone()
	case 2:
		rows, cols := t.shape[0], t.shape[1]
		out := New[T](cols, rows)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				out.data[c*rows+r] = t.data[r*cols+c]
			}
		}
		return out
	default:
		panic(shapeErrorf("transpose of rank %d", t.Rank()))
	}
}

// Nonzero returns, per axis, the coordinates of every element > 0 in
// row-major scan order.
func Nonzero[T Number](t *Tensor[T]) [][]int {
	out := make([][]int, t.Rank())
	for a := range out {
		out[a] = []int{}
	}
	coord := make([]int, t.Rank())
	for off, v := range t.data {
		if v <= 0 {
			continue
		}
		rem := off
		for a := t.Rank() - 1; a >= 0; a-- {
			coord[a] = rem % t.shape[a]
			rem /= t.shape[a]
		}
		for a := range coord {
			out[a] = append(out[a], coord[a])
		}
	}
	return out
}

// Subtract returns a - b elementwise for equal shapes. It also broadcasts a
// rank-3 operand of shape (n, 1, k) against a rank-2 operand of shape
// (m, k), yielding the (n, m, k) tensor of every row difference
// a[i][0] - b[j].
func Subtract(a, b *Tensor[float64]) *Tensor[float64] {
	if a.SameShape(b) {
		out := New[float64](a.shape...)
		for i := range a.data {
			out.data[i] = a.data[i] - b.data[i]
		}
		return out
	}
	if a.Rank() == 3 && b.Rank() == 2 && a.shape[1] == 1 && a.shape[2] == b.shape[1] {
		n, m, k := a.shape[0], b.shape[0], b.shape[1]
		out := New[float64](n, m, k)
		for i := 0; i < n; i++ {
			row := a.data[i*k : (i+1)*k]
			for j := 0; j < m; j++ {
				dst := out.data[(i*m+j)*k : (i*m+j+1)*k]
				src := b.data[j*k : (j+1)*k]
				for z := range dst {
					dst[z] = row[z] - src[z]
				}
			}
		}
		return out
	}
	panic(shapeErrorf("cannot subtract %v from %v", b.shape, a.shape))
}
