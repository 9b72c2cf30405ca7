package encoder

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func gradient() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 16)})
		}
	}
	return img
}

func TestEncodersDecodeBack(t *testing.T) {
	r := NewRegistry()
	for _, f := range r.Available() {
		enc, err := r.Resolve(f)
		if err != nil {
			t.Fatal(err)
		}
		data, err := enc.Encode(gradient(), 0)
		if err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("%s: decode: %v", f, err)
		}
		if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
			t.Errorf("%s: bounds %v", f, b)
		}
	}
}

func TestPNGIsLossless(t *testing.T) {
	src := gradient()
	data, err := (&PNGEncoder{}).Encode(src, 0)
	if err != nil {
		t.Fatal(err)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 16; x++ {
		r, _, _, _ := img.At(x, 3).RGBA()
		if uint8(r>>8) != src.GrayAt(x, 3).Y {
			t.Fatalf("pixel %d changed", x)
		}
	}
}

func TestResolve(t *testing.T) {
	r := NewRegistry()
	if enc, err := r.Resolve(""); err != nil || enc.Format() != "png" {
		t.Errorf("default: %v %v", enc, err)
	}
	if enc, err := r.Resolve("JPG"); err != nil || enc.Format() != "jpeg" {
		t.Errorf("jpg alias: %v %v", enc, err)
	}
	if _, err := r.Resolve("webp"); err == nil {
		t.Error("webp resolved")
	}
}
