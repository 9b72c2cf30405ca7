package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/AnyUserName/salmap-cli/internal/pipeline"
	"github.com/AnyUserName/salmap-cli/internal/report"
	"github.com/spf13/cobra"
)

var (
	computeOutDir  string
	computeWorkers int
	computeFormat  string
	computeQuality int
	computeTruth   string
	computeCache   string
	computeTop     int
	computeNoSave  bool
	computeTuning  tuning
)

var computeCmd = &cobra.Command{
	Use:   "compute <input_dir>",
	Short: "Compute saliency maps for a directory of images + report",
	Long: `Scans input directory for images (png, jpg, jpeg, webp, gif, bmp, tiff),
computes a saliency map per selected algorithm, derives focus metadata and
a crop rectangle, optionally scores maps against ground truth, and writes
a report file.

Output filenames are content-addressed: <algorithm>/<key>.<hash>.ext`,
	Args: cobra.ExactArgs(1),
	RunE: runCompute,
}

func init() {
	computeCmd.Flags().StringVarP(&computeOutDir, "out", "o", "./salmap_out", "output directory")
	computeCmd.Flags().IntVarP(&computeWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	computeCmd.Flags().StringVar(&computeFormat, "format", "", "map format: png, jpeg (empty = profile default)")
	computeCmd.Flags().IntVarP(&computeQuality, "quality", "q", 0, "jpeg quality 1-100 (0 = profile default)")
	computeCmd.Flags().StringVar(&computeTruth, "truth", "", "ground-truth map directory mirroring the input keys")
	computeCmd.Flags().StringVar(&computeCache, "cache", "", "map cache directory")
	computeCmd.Flags().IntVar(&computeTop, "top", 0, "process only the first N images (0 = all)")
	computeCmd.Flags().BoolVar(&computeNoSave, "no-save", false, "do not write map files")
	computeTuning.register(computeCmd.Flags())
	rootCmd.AddCommand(computeCmd)
}

func runCompute(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	// Resolve absolute paths.
	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(computeOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	prof, cfg := computeTuning.resolve()
	if computeFormat != "" {
		prof.Format = computeFormat
	}
	if computeQuality > 0 {
		prof.Quality = computeQuality
	}

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("profile: %s (algorithms=%v, %dx%d, bins=%d, sigmac=%g)",
		prof.Name, prof.Algorithms, prof.Width, prof.Height, prof.Bins, prof.SigmaC)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p, err := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		TruthDir:  computeTruth,
		CacheDir:  computeCache,
		Profile:   prof,
		Saliency:  cfg,
		Workers:   computeWorkers,
		Top:       computeTop,
		NoSave:    computeNoSave,
		Verbose:   verbose,
	})
	if err != nil {
		return err
	}

	r, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	reportPath := filepath.Join(absOutput, report.FileName)
	if err := report.WriteJSON(r, reportPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	printComputeReport(r, time.Since(start))
	return nil
}

func printComputeReport(r *report.Report, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║             salmap compute complete              ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	s := r.Stats
	fmt.Printf("  Images:      %d\n", s.TotalImages)
	fmt.Printf("  Maps:        %d (%d cached)\n", s.TotalMaps, s.CachedMaps)
	fmt.Printf("  Per map:     %.1f ms mean, %.1f ms p90\n", s.MeanDurationMS, s.P90DurationMS)
	if s.MismatchImages > 0 {
		fmt.Printf("  Mismatches:  %d bins in %d images\n", s.MismatchBins, s.MismatchImages)
	}
	if s.Scored > 0 {
		fmt.Printf("  Scored:      %d maps, correlation %.3f, mae %.3f\n", s.Scored, s.MeanCorrelation, s.MeanMAE)
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if r.BuildInfo != nil {
		fmt.Printf("  Workers:     %d\n", r.BuildInfo.Workers)
	}
	fmt.Println()

	// Top 10 slowest images.
	if len(r.Images) > 0 {
		type imageTime struct {
			key string
			ms  float64
		}
		var items []imageTime
		for key, img := range r.Images {
			var sum float64
			for _, res := range img.Results {
				sum += res.DurationMS
			}
			items = append(items, imageTime{key, sum})
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].ms != items[j].ms {
				return items[i].ms > items[j].ms
			}
			return items[i].key < items[j].key
		})
		n := min(len(items), 10)
		fmt.Printf("  Top %d slowest:\n", n)
		for _, it := range items[:n] {
			fmt.Printf("    %-40s %8.1f ms\n", truncKey(it.key, 40), it.ms)
		}
		fmt.Println()
	}

	data, _ := json.Marshal(r)
	fmt.Printf("  Report:      %s (%s)\n", report.FileName, formatBytes(int64(len(data))))
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
