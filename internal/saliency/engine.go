package saliency

import (
	"fmt"
	"image"

	"github.com/AnyUserName/salmap-cli/internal/colorhist"
	"github.com/AnyUserName/salmap-cli/internal/planes"
)

// Result exposes the intermediate products of one Engine run.
type Result struct {
	Quantization     *colorhist.Quantization
	Similarity       *Similarity
	Spatial          *Spatial
	ShapeProbability []float64
	// Saliency is the final per-color score, aligned with
	// Quantization.Colors.
	Saliency []float64
}

// Engine is the histogram-contrast saliency algorithm. An Engine holds only
// its configuration and may be reused, including concurrently, for images
// of any size.
type Engine struct {
	name  string
	cfg   Config
	space func(img image.Image, width, height int) planes.Planes
}

// NewEngine returns an Engine working in CIE L*a*b*.
func NewEngine(cfg Config) (*Engine, error) {
	return newEngine("contrast", cfg, planes.Lab)
}

// NewRGBEngine returns an Engine working directly on the B, G, R channels.
func NewRGBEngine(cfg Config) (*Engine, error) {
	return newEngine("contrast-rgb", cfg, planes.RGB)
}

func newEngine(name string, cfg Config, space func(image.Image, int, int) planes.Planes) (*Engine, error) {
	c, err := cfg.WithDefaults()
	if err != nil {
		return nil, err
	}
	return &Engine{name: name, cfg: c, space: space}, nil
}

func (e *Engine) Name() string { return e.name }

func (e *Engine) Config() Config { return e.cfg }

// Compute resizes img to the configured resolution, converts it to the
// engine's color space and runs ComputePlanes.
func (e *Engine) Compute(img image.Image) (*Map, error) {
	m, _, err := e.ComputeResult(img)
	return m, err
}

// ComputeResult is Compute that also returns the intermediate products.
func (e *Engine) ComputeResult(img image.Image) (*Map, *Result, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, nil, fmt.Errorf("%w: empty image", ErrInvalidInput)
	}
	return e.ComputePlanes(e.space(img, e.cfg.Width, e.cfg.Height))
}

// ComputePlanes runs the algorithm on already prepared planes. The map has
// the planes' own dimensions.
func (e *Engine) ComputePlanes(p planes.Planes) (*Map, *Result, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	q, err := colorhist.Quantize(p.C, p.Width, p.Height, e.cfg.Bins, e.cfg.Histogram)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: quantize: %w", ErrInvalidInput, err)
	}
	if q.NumColors() == 0 {
		return nil, nil, fmt.Errorf("%w: histogram has no occupied bins", ErrInvalidInput)
	}
	if q.Mismatches > 0 {
		e.cfg.Log.Printf("%s: %d of %d colors carry no pixels", e.name, q.Mismatches, q.NumColors())
	}

	sim := similarity(q, e.cfg.SigmaC, e.cfg.CartesianCentroids)
	sp := bilateral(sim, q)
	prob := shapeProbability(sp, p.Width, p.Height, e.cfg.prior(), e.cfg.HeightNormalizedSpread)
	sal := assemble(sim, sp.Contrast, prob)

	res := &Result{
		Quantization:     q,
		Similarity:       sim,
		Spatial:          sp,
		ShapeProbability: prob,
		Saliency:         sal,
	}
	return broadcast(q, sim.Index.Data(), sal), res, nil
}
