package tensor

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func expectShapePanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("%s: expected panic", name)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrShape) {
			t.Fatalf("%s: panic %v does not wrap ErrShape", name, r)
		}
	}()
	fn()
}

func TestLinspace(t *testing.T) {
	tests := []struct {
		name      string
		start     float64
		stop      float64
		count     int
		exclusive bool
		want      []float64
	}{
		{"exclusive", 0, 10, 5, true, []float64{0, 2, 4, 6, 8}},
		{"inclusive", 0, 10, 5, false, []float64{0, 2.5, 5, 7.5, 10}},
		{"single", 3, 10, 1, true, []float64{3}},
		{"empty", 3, 10, 0, false, []float64{}},
		{"negative count", 3, 10, -2, false, []float64{}},
	}
	for _, tt := range tests {
		got := Linspace(tt.start, tt.stop, tt.count, tt.exclusive)
		if len(got) != len(tt.want) {
			t.Fatalf("%s: len %d, want %d", tt.name, len(got), len(tt.want))
		}
		for i := range got {
			if math.Abs(got[i]-tt.want[i]) > 1e-12 {
				t.Errorf("%s: [%d] = %v, want %v", tt.name, i, got[i], tt.want[i])
			}
		}
	}
}

func TestDigitizeBoundaries(t *testing.T) {
	edges := []float64{0, 2, 4, 6}
	values := []float64{-1, 0, 1.9, 2, 5.9, 6, 100}
	want := []int{1, 1, 1, 2, 3, 4, 4}
	got := DigitizeValues(values, edges, false)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("digitize(%v) = %d, want %d", values[i], got[i], want[i])
		}
	}
}

func TestDigitizeRight(t *testing.T) {
	edges := []float64{0, 2, 4, 6}
	values := []float64{0.5, 2, 2.1, 6, 7}
	want := []int{1, 1, 2, 3, 3}
	got := DigitizeValues(values, edges, true)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("digitize right(%v) = %d, want %d", values[i], got[i], want[i])
		}
	}
}

func TestDigitizeKeepsShape(t *testing.T) {
	grid := FromSlice([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 2, 2, 2)
	got := Digitize(grid, []float64{0, 4}, false)
	want := FromSlice([]int{1, 1, 1, 1, 2, 2, 2, 2}, 2, 2, 2)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got.Data(), want.Data())
	}
	if grid.At(1, 1, 1) != 7 {
		t.Fatal("input mutated")
	}
}

func TestRavelMultiIndex(t *testing.T) {
	if got := RavelIndex([]int{2, 1, 4}, []int{4, 3, 6}); got != 46 {
		t.Errorf("single ravel = %d, want 46", got)
	}
	got := RavelMultiIndex([][]int{{3, 6, 6}, {4, 5, 1}}, []int{7, 6})
	want := []int{22, 41, 37}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("batched ravel[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestRavelUnravelRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	dims := []int{5, 7, 3}
	const n = 200
	multi := make([][]int, len(dims))
	for a := range dims {
		multi[a] = make([]int, n)
		for i := range multi[a] {
			multi[a][i] = rng.Intn(dims[a])
		}
	}
	back := UnravelIndex(RavelMultiIndex(multi, dims), dims)
	for a := range dims {
		for i := 0; i < n; i++ {
			if back[a][i] != multi[a][i] {
				t.Fatalf("axis %d point %d: got %d, want %d", a, i, back[a][i], multi[a][i])
			}
		}
	}
}

func TestRavelOutOfBoundsPanics(t *testing.T) {
	expectShapePanic(t, "coordinate", func() { RavelIndex([]int{0, 3}, []int{2, 3}) })
	expectShapePanic(t, "arity", func() { RavelIndex([]int{0}, []int{2, 3}) })
	expectShapePanic(t, "unequal lists", func() {
		RavelMultiIndex([][]int{{0, 1}, {0}}, []int{2, 2})
	})
	expectShapePanic(t, "unravel", func() { UnravelOne(6, []int{2, 3}) })
}

func TestMeshgridXY(t *testing.T) {
	a0 := []float64{1, 2, 3}
	a1 := []float64{10, 20}
	a2 := []float64{100, 200, 300, 400}
	g := Meshgrid(IndexingXY, a0, a1, a2)
	wantShape := []int{2, 3, 4}
	for k := range g {
		s := g[k].Shape()
		for i := range wantShape {
			if s[i] != wantShape[i] {
				t.Fatalf("grid %d shape %v, want %v", k, s, wantShape)
			}
		}
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			for z := 0; z < 4; z++ {
				if g[0].At(i, j, z) != a0[j] || g[1].At(i, j, z) != a1[i] || g[2].At(i, j, z) != a2[z] {
					t.Fatalf("wrong value at (%d,%d,%d)", i, j, z)
				}
			}
		}
	}
}

func TestMeshgridIJ(t *testing.T) {
	a0 := []float64{1, 2, 3}
	a1 := []float64{10, 20}
	g := Meshgrid(IndexingIJ, a0, a1)
	if s := g[0].Shape(); s[0] != 3 || s[1] != 2 {
		t.Fatalf("shape %v, want [3 2]", s)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			if g[0].At(i, j) != a0[i] || g[1].At(i, j) != a1[j] {
				t.Fatalf("wrong value at (%d,%d)", i, j)
			}
		}
	}
	expectShapePanic(t, "one axis", func() { Meshgrid(IndexingIJ, a0) })
}

func TestTranspose(t *testing.T) {
	m := FromSlice([]int{0, 1, 2, 3, 4, 5}, 3, 2)
	got := Transpose(m)
	want := FromSlice([]int{0, 2, 4, 1, 3, 5}, 2, 3)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got.Data(), want.Data())
	}
	v := FromSlice([]int{1, 2, 3}, 3)
	if !Transpose(v).Equal(v) {
		t.Fatal("rank-1 transpose changed input")
	}
	expectShapePanic(t, "rank 3", func() { Transpose(New[int](1, 2, 3)) })
}

func TestNonzero(t *testing.T) {
	h := New[int](2, 2, 2)
	h.Set(3, 0, 1, 0)
	h.Set(1, 1, 0, 1)
	h.Set(-2, 1, 1, 1)
	nz := Nonzero(h)
	want := [][]int{{0, 1}, {1, 0}, {0, 1}}
	for a := range want {
		if len(nz[a]) != len(want[a]) {
			t.Fatalf("axis %d: %v, want %v", a, nz[a], want[a])
		}
		for i := range want[a] {
			if nz[a][i] != want[a][i] {
				t.Fatalf("axis %d: %v, want %v", a, nz[a], want[a])
			}
		}
	}
	empty := Nonzero(New[float64](2, 2))
	if len(empty) != 2 || len(empty[0]) != 0 {
		t.Fatalf("empty nonzero = %v", empty)
	}
}

func TestSubtractEqualShape(t *testing.T) {
	a := FromSlice([]float64{5, 6, 7, 8}, 2, 2)
	b := FromSlice([]float64{1, 1, 2, 2}, 2, 2)
	got := Subtract(a, b)
	want := FromSlice([]float64{4, 5, 5, 6}, 2, 2)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got.Data(), want.Data())
	}
}

func TestSubtractBroadcast(t *testing.T) {
	rows := []float64{1, 2, 3, 10, 20, 30}
	a := FromSlice(rows, 2, 1, 3)
	b := FromSlice(rows, 2, 3)
	d := Subtract(a, b)
	if s := d.Shape(); s[0] != 2 || s[1] != 2 || s[2] != 3 {
		t.Fatalf("shape %v", s)
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for z := 0; z < 3; z++ {
				want := rows[i*3+z] - rows[j*3+z]
				if d.At(i, j, z) != want {
					t.Fatalf("d[%d][%d][%d] = %v, want %v", i, j, z, d.At(i, j, z), want)
				}
				if d.At(i, j, z) != -d.At(j, i, z) {
					t.Fatal("pairwise differences not antisymmetric")
				}
			}
		}
	}
}

func TestSubtractMismatchPanics(t *testing.T) {
	expectShapePanic(t, "rank mismatch", func() {
		Subtract(New[float64](2, 2), New[float64](4))
	})
	expectShapePanic(t, "last axis", func() {
		Subtract(New[float64](2, 1, 3), New[float64](2, 2))
	})
	expectShapePanic(t, "middle axis", func() {
		Subtract(New[float64](2, 2, 3), New[float64](2, 3))
	})
}

func TestNewRejectsBadRank(t *testing.T) {
	expectShapePanic(t, "rank 0", func() { New[int]() })
	expectShapePanic(t, "rank 4", func() { New[int](1, 1, 1, 1) })
	expectShapePanic(t, "from slice", func() { FromSlice([]int{1, 2, 3}, 2, 2) })
	expectShapePanic(t, "at", func() { New[int](2, 2).At(2, 0) })
}
