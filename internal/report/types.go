package report

import (
	"github.com/AnyUserName/salmap-cli/internal/evaluate"
	"github.com/AnyUserName/salmap-cli/internal/focus"
)

// Report is the top-level output of a salmap compute run.
type Report struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Profile     string           `json:"profile"`
	Algorithms  []string         `json:"algorithms"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Images      map[string]Image `json:"images"`
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures run parameters for diagnostics.
type BuildInfo struct {
	Workers                int     `json:"workers"`
	Width                  int     `json:"width"`
	Height                 int     `json:"height"`
	Bins                   int     `json:"bins"`
	SigmaC                 float64 `json:"sigmac"`
	HeightNormalizedSpread bool    `json:"height_normalized_spread,omitempty"`
}

// Image describes one source image and its maps, keyed by algorithm name.
type Image struct {
	Original OriginalInfo      `json:"original"`
	Results  map[string]Result `json:"results"`
}

// OriginalInfo holds metadata about the source image.
type OriginalInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
}

// Rect is a pixel rectangle in original image coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Result is one algorithm's output for an image. Path is relative to the
// output dir and empty when maps are not saved. Colors is 0 for variants
// without a color histogram.
type Result struct {
	Path       string          `json:"path,omitempty"`
	Hash       string          `json:"hash,omitempty"`
	Size       int64           `json:"size,omitempty"`
	Colors     int             `json:"colors"`
	Mismatches int             `json:"mismatches,omitempty"`
	Mean       float64         `json:"mean"`
	DurationMS float64         `json:"duration_ms"`
	Focus      focus.Meta      `json:"focus"`
	Crop       Rect            `json:"crop"`
	Score      *evaluate.Score `json:"score,omitempty"`
	Cached     bool            `json:"cached,omitempty"`
}

// Stats aggregates run metrics. Durations cover computed maps only.
type Stats struct {
	TotalImages     int     `json:"total_images"`
	TotalMaps       int     `json:"total_maps"`
	CachedMaps      int     `json:"cached_maps,omitempty"`
	MismatchImages  int     `json:"mismatch_images,omitempty"` // images with a color that carries no pixel
	MismatchBins    int     `json:"mismatch_bins,omitempty"`
	Scored          int     `json:"scored,omitempty"`
	MeanDurationMS  float64 `json:"mean_duration_ms"`
	P50DurationMS   float64 `json:"p50_duration_ms"`
	P90DurationMS   float64 `json:"p90_duration_ms"`
	MeanCorrelation float64 `json:"mean_correlation,omitempty"`
	MeanMAE         float64 `json:"mean_mae,omitempty"`
}

// SupportedVersion is the current schema version.
const SupportedVersion = 1
