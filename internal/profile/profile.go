package profile

import "github.com/AnyUserName/salmap-cli/internal/saliency"

// Profile defines the processing parameters of a saliency run.
type Profile struct {
	Name       string
	Algorithms []string // registered algorithm names, in report order
	Width      int      // processing resolution
	Height     int
	Bins       int     // per-channel quantization levels
	SigmaC     float64 // color affinity bandwidth
	CropRatio  float64 // width / height of suggested crops
	Format     string  // saliency map output format
	Quality    int     // encoding quality 1-100, jpeg only
}

// Built-in profiles.
var profiles = map[string]Profile{
	"default": {
		Name:       "default",
		Algorithms: []string{"contrast"},
		Width:      200,
		Height:     200,
		Bins:       8,
		SigmaC:     16,
		CropRatio:  0.75,
		Format:     "png",
		Quality:    90,
	},
	"trainer": {
		Name:       "trainer",
		Algorithms: []string{"contrast"},
		Width:      300,
		Height:     300,
		Bins:       8,
		SigmaC:     16,
		CropRatio:  0.75,
		Format:     "png",
		Quality:    90,
	},
	"fast": {
		Name:       "fast",
		Algorithms: []string{"contrast"},
		Width:      100,
		Height:     100,
		Bins:       6,
		SigmaC:     16,
		CropRatio:  0.75,
		Format:     "jpeg",
		Quality:    80,
	},
	"fine": {
		Name:       "fine",
		Algorithms: []string{"fine"},
		Width:      200,
		Height:     200,
		Bins:       8,
		SigmaC:     16,
		CropRatio:  0.75,
		Format:     "png",
		Quality:    90,
	},
}

// Get returns a profile by name. Falls back to default if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles["default"]
	p.Name = name // preserve requested name
	return p
}

// Config returns the saliency configuration the profile describes.
func (p Profile) Config() saliency.Config {
	return saliency.Config{
		Width:  p.Width,
		Height: p.Height,
		Bins:   p.Bins,
		SigmaC: p.SigmaC,
	}
}
