// Package tensor provides a small dense array type of fixed rank (1 to 3)
// and the index utilities the saliency engine is built from: evenly spaced
// ranges, digitization, multi-index ravel/unravel, coordinate grids,
// transpose, nonzero extraction and broadcasting subtraction.
//
// Shape mismatches are programmer errors. Every operation panics with an
// error wrapping ErrShape instead of truncating or guessing.
package tensor

import (
	"errors"
	"fmt"
)

// ErrShape is wrapped by every panic caused by an unsupported or mismatched
// shape.
var ErrShape = errors.New("tensor: shape mismatch")

// MaxRank is the highest rank a Tensor supports.
const MaxRank = 3

// Number is the set of element types a Tensor can hold.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Tensor is a row-major dense array of rank 1 to 3.
type Tensor[T Number] struct {
	shape   []int
	strides []int
	data    []T
}

func shapeErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrShape}, args...)...)
}

func checkShape(shape []int) int {
	if len(shape) < 1 || len(shape) > MaxRank {
		panic(shapeErrorf("rank %d not in [1, %d]", len(shape), MaxRank))
	}
	n := 1
	for _, d := range shape {
		if d < 0 {
			panic(shapeErrorf("negative dimension in %v", shape))
		}
		n *= d
	}
	return n
}

func stridesOf(shape []int) []int {
	s := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= shape[i]
	}
	return s
}

// New returns a zero-filled tensor of the given shape.
func New[T Number](shape ...int) *Tensor[T] {
	n := checkShape(shape)
	sh := append([]int(nil), shape...)
	return &Tensor[T]{shape: sh, strides: stridesOf(sh), data: make([]T, n)}
}

// Full returns a tensor of the given shape with every element set to v.
func Full[T Number](v T, shape ...int) *Tensor[T] {
	t := New[T](shape...)
	for i := range t.data {
		t.data[i] = v
	}
	return t
}

// FromSlice copies data into a new tensor of the given shape.
func FromSlice[T Number](data []T, shape ...int) *Tensor[T] {
	t := New[T](shape...)
	if len(data) != len(t.data) {
		panic(shapeErrorf("%d elements for shape %v", len(data), shape))
	}
	copy(t.data, data)
	return t
}

// Rank returns the number of axes.
func (t *Tensor[T]) Rank() int { return len(t.shape) }

// Shape returns a copy of the tensor's shape.
func (t *Tensor[T]) Shape() []int { return append([]int(nil), t.shape...) }

// Dim returns the length of axis i.
func (t *Tensor[T]) Dim(i int) int { return t.shape[i] }

// Len returns the total number of elements.
func (t *Tensor[T]) Len() int { return len(t.data) }

// Data returns the backing slice in row-major order.
func (t *Tensor[T]) Data() []T { return t.data }

func (t *Tensor[T]) offset(idx []int) int {
	if len(idx) != len(t.shape) {
		panic(shapeErrorf("%d indices for rank %d", len(idx), len(t.shape)))
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= t.shape[i] {
			panic(shapeErrorf("index %v out of range for shape %v", idx, t.shape))
		}
		off += v * t.strides[i]
	}
	return off
}

// At returns the element at idx.
func (t *Tensor[T]) At(idx ...int) T { return t.data[t.offset(idx)] }

// Set stores v at idx.
func (t *Tensor[T]) Set(v T, idx ...int) { t.data[t.offset(idx)] = v }

// Clone returns a deep copy.
func (t *Tensor[T]) Clone() *Tensor[T] {
	return FromSlice(t.data, t.shape...)
}

// SameShape reports whether t and o have identical shapes.
func (t *Tensor[T]) SameShape(o *Tensor[T]) bool {
	if len(t.shape) != len(o.shape) {
		return false
	}
	for i := range t.shape {
		if t.shape[i] != o.shape[i] {
			return false
		}
	}
	return true
}

// Equal reports whether t and o have the same shape and elements.
func (t *Tensor[T]) Equal(o *Tensor[T]) bool {
	if !t.SameShape(o) {
		return false
	}
	for i := range t.data {
		if t.data[i] != o.data[i] {
			return false
		}
	}
	return true
}
