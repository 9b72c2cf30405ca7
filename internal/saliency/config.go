package saliency

import (
	"fmt"
	"io"
	"log"

	"github.com/AnyUserName/salmap-cli/internal/colorhist"
)

const (
	DefaultWidth  = 200
	DefaultHeight = 200
	DefaultSigmaC = 16.0

	// MaxBins bounds the per-channel bin count. The similarity matrices are
	// n × n over up to MaxBins³ colors.
	MaxBins = 16

	// rescaleEpsilon keeps the final min-max rescale defined for flat maps.
	rescaleEpsilon = 0.001
)

// ShapePrior is a fixed 4-D Gaussian over (x spread, y spread, x offset,
// y offset), given by its mean and inverse covariance.
type ShapePrior struct {
	Mean   [4]float64    `json:"mean"`
	InvCov [4][4]float64 `json:"inv_cov"`
}

// DefaultPrior returns the compiled-in shape prior.
func DefaultPrior() ShapePrior {
	return ShapePrior{
		Mean: [4]float64{0.5555, 0.6449, 0.0002, 0.0063},
		InvCov: [4][4]float64{
			{43.3777, 1.7633, -0.4059, 1.0997},
			{1.7633, 40.7221, -0.0165, 0.0447},
			{-0.4059, -0.0165, 87.0455, -3.2744},
			{1.0997, 0.0447, -3.2744, 125.1503},
		},
	}
}

// Config holds the parameters shared by every algorithm. Zero fields take
// their defaults.
type Config struct {
	// Width and Height are the processing resolution images are resized to.
	Width  int `json:"width"`
	Height int `json:"height"`
	// Bins is the per-channel quantization level count.
	Bins int `json:"bins"`
	// SigmaC is the bandwidth of the color affinity kernel.
	SigmaC float64 `json:"sigmac"`

	// Prior overrides DefaultPrior.
	Prior *ShapePrior `json:"prior,omitempty"`
	// HeightNormalizedSpread divides the x spread by the image height
	// instead of the width, so both spread features share the height as
	// divisor. By default each spread is divided by
	// the extent of its own axis. The two agree on square inputs.
	HeightNormalizedSpread bool `json:"height_normalized_spread,omitempty"`
	// CartesianCentroids reads the color centroid grid in Cartesian (xy)
	// order, which swaps the first two channel coordinates of every
	// centroid. By default each centroid is the lower edge of its own bin.
	CartesianCentroids bool `json:"cartesian_centroids,omitempty"`

	// Histogram overrides the default uniform histogram.
	Histogram colorhist.Histogrammer `json:"-"`
	// Log receives recoverable anomalies. Nil discards them.
	Log *log.Logger `json:"-"`
}

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	c, _ := Config{}.WithDefaults()
	return c
}

// WithDefaults fills zero fields with their defaults and rejects negative
// values and bin counts above MaxBins with ErrInvalidInput.
func (c Config) WithDefaults() (Config, error) {
	if c.Width < 0 || c.Height < 0 {
		return c, fmt.Errorf("%w: resolution %dx%d", ErrInvalidInput, c.Width, c.Height)
	}
	if c.Bins < 0 || c.Bins > MaxBins {
		return c, fmt.Errorf("%w: bin count %d outside [1, %d]", ErrInvalidInput, c.Bins, MaxBins)
	}
	if c.SigmaC < 0 {
		return c, fmt.Errorf("%w: sigmac %v", ErrInvalidInput, c.SigmaC)
	}
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.Bins == 0 {
		c.Bins = colorhist.DefaultBins
	}
	if c.SigmaC == 0 {
		c.SigmaC = DefaultSigmaC
	}
	if c.Histogram == nil {
		c.Histogram = colorhist.Uniform{}
	}
	if c.Log == nil {
		c.Log = log.New(io.Discard, "", 0)
	}
	return c, nil
}

func (c Config) prior() ShapePrior {
	if c.Prior != nil {
		return *c.Prior
	}
	return DefaultPrior()
}
