package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/montanaflynn/stats"
)

// FileName is the report name inside the output directory.
const FileName = "salmap.report.json"

// New creates an empty report with defaults.
func New(profileName string, algorithms []string) *Report {
	return &Report{
		Version:     SupportedVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Profile:     profileName,
		Algorithms:  algorithms,
		Images:      make(map[string]Image),
	}
}

// ComputeStats recalculates aggregate statistics from images.
func (r *Report) ComputeStats() {
	var s Stats
	var durations, corr, mae stats.Float64Data
	s.TotalImages = len(r.Images)
	for _, img := range r.Images {
		mismatched := false
		for _, res := range img.Results {
			s.TotalMaps++
			if res.Cached {
				s.CachedMaps++
			} else {
				durations = append(durations, res.DurationMS)
			}
			if res.Mismatches > 0 {
				mismatched = true
				s.MismatchBins += res.Mismatches
			}
			if res.Score != nil {
				corr = append(corr, res.Score.Correlation)
				mae = append(mae, res.Score.MAE)
			}
		}
		if mismatched {
			s.MismatchImages++
		}
	}
	if len(durations) > 0 {
		s.MeanDurationMS, _ = stats.Mean(durations)
		s.P50DurationMS, _ = stats.Percentile(durations, 50)
		s.P90DurationMS, _ = stats.Percentile(durations, 90)
	}
	if len(corr) > 0 {
		s.Scored = len(corr)
		s.MeanCorrelation, _ = stats.Mean(corr)
		s.MeanMAE, _ = stats.Mean(mae)
	}
	r.Stats = s
}

// WriteJSON serializes the report to a JSON file with stable ordering.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a report written by WriteJSON.
func ReadJSON(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &r, nil
}
