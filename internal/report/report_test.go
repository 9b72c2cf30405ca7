package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/salmap-cli/internal/evaluate"
	"github.com/AnyUserName/salmap-cli/internal/focus"
)

func sample() *Report {
	r := New("test-profile", []string{"contrast", "fine"})
	r.BuildInfo = &BuildInfo{Workers: 4, Width: 200, Height: 200, Bins: 8, SigmaC: 16}
	r.Images["test/image"] = Image{
		Original: OriginalInfo{Width: 800, Height: 600, Format: "jpeg", Size: 100000},
		Results: map[string]Result{
			"contrast": {
				Path:       "contrast/test/image.abcd1234.png",
				Hash:       "abcd1234abcd1234",
				Colors:     37,
				Mismatches: 2,
				DurationMS: 10,
				Focus:      focus.Meta{Center: focus.Point{X: 0.4, Y: 0.6}},
				Crop:       Rect{X: 100, Y: 0, Width: 450, Height: 600},
				Score:      &evaluate.Score{Correlation: 0.5, MAE: 0.2},
			},
			"fine": {DurationMS: 30},
		},
	}
	r.Images["other"] = Image{
		Results: map[string]Result{
			"contrast": {Cached: true, Colors: 12},
			"fine":     {DurationMS: 20},
		},
	}
	return r
}

func TestReportRoundtrip(t *testing.T) {
	r := sample()
	path := filepath.Join(t.TempDir(), FileName)
	if err := WriteJSON(r, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	r2, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if r2.Version != SupportedVersion {
		t.Errorf("version: got %d, want %d", r2.Version, SupportedVersion)
	}
	if r2.Profile != "test-profile" || len(r2.Algorithms) != 2 {
		t.Errorf("profile %q algorithms %v", r2.Profile, r2.Algorithms)
	}
	if r2.BuildInfo == nil || r2.BuildInfo.Workers != 4 || r2.BuildInfo.SigmaC != 16 {
		t.Fatalf("build_info: %+v", r2.BuildInfo)
	}

	res := r2.Images["test/image"].Results["contrast"]
	if res.Colors != 37 || res.Crop.Width != 450 || res.Focus.Center.X != 0.4 {
		t.Errorf("result: %+v", res)
	}
	if res.Score == nil || res.Score.Correlation != 0.5 {
		t.Errorf("score: %+v", res.Score)
	}
}

func TestComputeStats(t *testing.T) {
	r := sample()
	r.ComputeStats()
	s := r.Stats
	if s.TotalImages != 2 || s.TotalMaps != 4 || s.CachedMaps != 1 {
		t.Errorf("counts: %+v", s)
	}
	if s.MismatchImages != 1 || s.MismatchBins != 2 {
		t.Errorf("mismatches: %+v", s)
	}
	if s.MeanDurationMS != 20 {
		t.Errorf("mean duration = %v, want 20", s.MeanDurationMS)
	}
	if s.Scored != 1 || s.MeanCorrelation != 0.5 || s.MeanMAE != 0.2 {
		t.Errorf("scores: %+v", s)
	}
}

func TestReportVersion(t *testing.T) {
	r := New("v-test", nil)
	if r.Version != SupportedVersion {
		t.Errorf("new report version: got %d, want %d", r.Version, SupportedVersion)
	}
}

func TestReportIgnoresUnknownFields(t *testing.T) {
	raw := `{
		"version": 1,
		"generated_at": "2025-01-01T00:00:00Z",
		"profile": "test",
		"future_field": "should be ignored",
		"build_info": { "workers": 8, "width": 200, "new_flag": true },
		"images": {},
		"stats": { "total_images": 0, "total_maps": 0, "new_stat": 42 }
	}`
	path := filepath.Join(t.TempDir(), "r.json")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("read with unknown fields: %v", err)
	}
	if r.BuildInfo == nil || r.BuildInfo.Workers != 8 {
		t.Error("build_info not parsed correctly")
	}

	var generic map[string]any
	data, _ := json.Marshal(r)
	if err := json.Unmarshal(data, &generic); err != nil {
		t.Fatal(err)
	}
	if _, ok := generic["future_field"]; ok {
		t.Error("unknown field survived a rewrite")
	}
}
