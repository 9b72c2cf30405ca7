package planes

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestLabKnownColors(t *testing.T) {
	tests := []struct {
		name string
		c    color.NRGBA
		want [3]float64
	}{
		{"white", color.NRGBA{255, 255, 255, 255}, [3]float64{255, 128, 128}},
		{"black", color.NRGBA{0, 0, 0, 255}, [3]float64{0, 128, 128}},
		{"red", color.NRGBA{255, 0, 0, 255}, [3]float64{136, 208, 195}},
	}
	for _, tt := range tests {
		p := Lab(solid(4, 4, tt.c), 4, 4)
		for c := 0; c < 3; c++ {
			if got := p.C[c][5]; math.Abs(got-tt.want[c]) > 1 {
				t.Errorf("%s channel %d = %v, want %v", tt.name, c, got, tt.want[c])
			}
		}
	}
}

func TestRGBChannelOrder(t *testing.T) {
	p := RGB(solid(2, 2, color.NRGBA{10, 20, 30, 255}), 2, 2)
	if p.C[0][0] != 30 || p.C[1][0] != 20 || p.C[2][0] != 10 {
		t.Fatalf("got %v %v %v, want B G R = 30 20 10", p.C[0][0], p.C[1][0], p.C[2][0])
	}
}

func TestGray(t *testing.T) {
	g := Gray(solid(3, 3, color.NRGBA{255, 0, 0, 255}), 3, 3)
	if len(g) != 9 {
		t.Fatalf("len = %d", len(g))
	}
	if g[4] != 76 {
		t.Fatalf("red luminance = %v, want 76", g[4])
	}
}

func TestResizeToProcessingResolution(t *testing.T) {
	p := Lab(solid(40, 10, color.NRGBA{90, 120, 200, 255}), 20, 15)
	if p.Width != 20 || p.Height != 15 {
		t.Fatalf("dims %dx%d", p.Width, p.Height)
	}
	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestValidate(t *testing.T) {
	if err := (Planes{}).Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("zero planes: %v", err)
	}
	p := New(2, 2)
	p.C[1] = p.C[1][:3]
	if err := p.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("short channel: %v", err)
	}
}
