// Package saliency computes per-pixel visual saliency maps.
//
// The core algorithm, Engine, scores colors rather than pixels: the image is
// quantized into a coarse joint color histogram, every occupied color bin is
// described by the spatial spread and position of the pixels that carry it
// (smoothed across perceptually similar colors), each description is scored
// against a fixed Gaussian shape prior, and the resulting per-color contrast
// is broadcast back onto the pixel grid.
//
// All algorithms implement Algorithm and are registered by name:
//
//	alg, err := saliency.New("contrast", saliency.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	m, err := alg.Compute(img)
package saliency

import (
	"errors"
	"fmt"
	"image"
	"sort"
)

// ErrInvalidInput is returned for malformed planes or configuration.
var ErrInvalidInput = errors.New("saliency: invalid input")

// Algorithm computes a saliency map with values in [0, 1] at the
// algorithm's processing resolution. Implementations keep no per-image state
// between calls.
type Algorithm interface {
	Name() string
	Compute(img image.Image) (*Map, error)
}

type variant struct {
	title string
	build func(Config) (Algorithm, error)
}

var variants = map[string]variant{
	"contrast": {"Histogram contrast (Lab)", func(c Config) (Algorithm, error) {
		e, err := NewEngine(c)
		if err != nil {
			return nil, err
		}
		return e, nil
	}},
	"contrast-rgb": {"Histogram contrast (RGB)", func(c Config) (Algorithm, error) {
		e, err := NewRGBEngine(c)
		if err != nil {
			return nil, err
		}
		return e, nil
	}},
	"fine": {"Fine grained", func(c Config) (Algorithm, error) {
		f, err := NewFineGrained(c)
		if err != nil {
			return nil, err
		}
		return f, nil
	}},
}

// New returns the algorithm registered under name.
func New(name string, cfg Config) (Algorithm, error) {
	v, ok := variants[name]
	if !ok {
		return nil, fmt.Errorf("unknown algorithm %q (have %v)", name, Names())
	}
	return v.build(cfg)
}

// Names lists the registered algorithm names in sorted order.
func Names() []string {
	names := make([]string, 0, len(variants))
	for n := range variants {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Title returns a human readable title for a registered algorithm name, or
// the name itself if it is unknown.
func Title(name string) string {
	if v, ok := variants[name]; ok {
		return v.title
	}
	return name
}
