//go:build ignore

// gen_fixtures creates small scenes with a known salient object and the
// matching ground-truth masks for the E2E smoke test.
// Usage: go run gen_fixtures.go <output_dir>
//
// Images land in <output_dir>/images, masks in <output_dir>/truth with the
// same keys, ready for `salmap compute --truth <output_dir>/truth`.
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

type scene struct {
	name       string
	w, h       int
	cx, cy, r  float64 // object disc, normalized
	background func(x, y, w, h int) color.NRGBA
	object     color.NRGBA
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	os.MkdirAll(filepath.Join(dir, "images", "scenes"), 0o755)
	os.MkdirAll(filepath.Join(dir, "truth", "scenes"), 0o755)

	scenes := []scene{
		{"banner", 400, 225, 0.7, 0.45, 0.15, gradient, color.NRGBA{230, 40, 30, 255}},
		{"scenes/meadow", 240, 240, 0.35, 0.6, 0.2, stripes, color.NRGBA{250, 220, 30, 255}},
		{"scenes/night", 320, 180, 0.5, 0.3, 0.1, flat(color.NRGBA{20, 25, 60, 255}), color.NRGBA{240, 240, 250, 255}},
		{"scenes/portrait", 180, 240, 0.5, 0.4, 0.25, gradient, color.NRGBA{200, 150, 120, 255}},
	}
	for _, s := range scenes {
		img, mask := render(s)
		if s.name == "banner" {
			writeJPEG(filepath.Join(dir, "images", s.name+".jpg"), img)
		} else {
			writeImage(filepath.Join(dir, "images", s.name+".png"), img)
		}
		writeImage(filepath.Join(dir, "truth", s.name+".png"), mask)
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created %d scenes with masks in %s\n", len(scenes), dir)
}

func render(s scene) (*image.NRGBA, *image.NRGBA) {
	img := image.NewNRGBA(image.Rect(0, 0, s.w, s.h))
	mask := image.NewNRGBA(image.Rect(0, 0, s.w, s.h))
	cx, cy := s.cx*float64(s.w), s.cy*float64(s.h)
	r := s.r * math.Min(float64(s.w), float64(s.h))
	for y := 0; y < s.h; y++ {
		for x := 0; x < s.w; x++ {
			c := s.background(x, y, s.w, s.h)
			m := color.NRGBA{0, 0, 0, 255}
			if math.Hypot(float64(x)-cx, float64(y)-cy) < r {
				c = s.object
				m = color.NRGBA{255, 255, 255, 255}
			}
			img.SetNRGBA(x, y, c)
			mask.SetNRGBA(x, y, m)
		}
	}
	return img, mask
}

func gradient(x, y, w, h int) color.NRGBA {
	return color.NRGBA{
		R: uint8(40 + x*60/w),
		G: uint8(80 + y*90/h),
		B: 140,
		A: 255,
	}
}

func stripes(x, y, w, h int) color.NRGBA {
	if (y/12)%2 == 0 {
		return color.NRGBA{60, 140, 50, 255}
	}
	return color.NRGBA{70, 160, 60, 255}
}

func flat(c color.NRGBA) func(x, y, w, h int) color.NRGBA {
	return func(int, int, int, int) color.NRGBA { return c }
}

func writeImage(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}

func writeJPEG(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 85}); err != nil {
		panic(err)
	}
}
