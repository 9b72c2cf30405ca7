package cmd

import (
	"fmt"
	"strings"

	"github.com/AnyUserName/salmap-cli/internal/profile"
	"github.com/AnyUserName/salmap-cli/internal/saliency"
	"github.com/spf13/pflag"
)

// tuning holds the flags shared by every command that computes maps.
type tuning struct {
	profile   string
	models    []string
	width     int
	height    int
	bins      int
	sigmac    float64
	heightSpread bool
	cropRatio float64
}

func (t *tuning) register(fs *pflag.FlagSet) {
	fs.StringVarP(&t.profile, "profile", "p", "default", "processing profile (default, trainer, fast, fine)")
	fs.StringSliceVar(&t.models, "models", nil, "algorithms to run (overrides profile): "+joinNames())
	fs.IntVar(&t.width, "width", 0, "processing width (0 = profile default)")
	fs.IntVar(&t.height, "height", 0, "processing height (0 = profile default)")
	fs.IntVar(&t.bins, "bins", 0, fmt.Sprintf("quantization levels per channel, at most %d (0 = profile default)", saliency.MaxBins))
	fs.Float64Var(&t.sigmac, "sigmac", 0, "color affinity bandwidth (0 = profile default)")
	fs.BoolVar(&t.heightSpread, "height-spread", false, "normalize the x spread by image height instead of width")
	fs.Float64Var(&t.cropRatio, "crop-ratio", 0, "crop width/height (0 = profile default)")
}

// resolve applies the flag overrides to the selected profile.
func (t *tuning) resolve() (profile.Profile, saliency.Config) {
	prof := profile.Get(t.profile)
	if len(t.models) > 0 {
		prof.Algorithms = t.models
	}
	if t.width > 0 {
		prof.Width = t.width
	}
	if t.height > 0 {
		prof.Height = t.height
	}
	if t.bins > 0 {
		prof.Bins = t.bins
	}
	if t.sigmac > 0 {
		prof.SigmaC = t.sigmac
	}
	if t.cropRatio > 0 {
		prof.CropRatio = t.cropRatio
	}
	cfg := prof.Config()
	cfg.HeightNormalizedSpread = t.heightSpread
	return prof, cfg
}

func joinNames() string {
	return strings.Join(saliency.Names(), ", ")
}
