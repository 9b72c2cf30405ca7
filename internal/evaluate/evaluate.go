// Package evaluate scores saliency maps against ground-truth maps.
package evaluate

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/AnyUserName/salmap-cli/internal/planes"
	"github.com/AnyUserName/salmap-cli/internal/saliency"
	"github.com/montanaflynn/stats"
)

// ErrSizeMismatch is returned when two value sets differ in length.
var ErrSizeMismatch = errors.New("evaluate: size mismatch")

// Score compares a predicted map with the truth.
type Score struct {
	// Correlation is the Pearson correlation, 0 when either side is flat.
	Correlation float64 `json:"correlation"`
	// MAE is the mean absolute error of values in [0, 1].
	MAE float64 `json:"mae"`
}

// Compare resizes truth to the map resolution, reads its luminance as
// values in [0, 1] and scores pred against it.
func Compare(pred *saliency.Map, truth image.Image) (Score, error) {
	if pred == nil || len(pred.Pix) == 0 {
		return Score{}, fmt.Errorf("%w: empty prediction", ErrSizeMismatch)
	}
	if truth == nil || truth.Bounds().Empty() {
		return Score{}, fmt.Errorf("%w: empty truth", ErrSizeMismatch)
	}
	gt := planes.Gray(truth, pred.Width, pred.Height)
	for i := range gt {
		gt[i] /= 255
	}
	return CompareValues(pred.Pix, gt)
}

// CompareValues scores two equally sized value slices.
func CompareValues(pred, truth []float64) (Score, error) {
	if len(pred) != len(truth) || len(pred) == 0 {
		return Score{}, fmt.Errorf("%w: %d vs %d values", ErrSizeMismatch, len(pred), len(truth))
	}
	corr, err := stats.Correlation(pred, truth)
	if err != nil {
		return Score{}, fmt.Errorf("correlation: %w", err)
	}
	if math.IsNaN(corr) {
		corr = 0
	}
	diff := make(stats.Float64Data, len(pred))
	for i := range pred {
		diff[i] = math.Abs(pred[i] - truth[i])
	}
	mae, err := stats.Mean(diff)
	if err != nil {
		return Score{}, fmt.Errorf("mae: %w", err)
	}
	return Score{Correlation: corr, MAE: mae}, nil
}
