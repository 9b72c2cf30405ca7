package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/salmap-cli/internal/report"
	"github.com/montanaflynn/stats"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_report>",
	Short: "Display statistics for a computed map directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// reportPath accepts either a report file or the directory holding one.
func reportPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return filepath.Join(path, report.FileName), nil
	}
	return path, nil
}

func runStats(_ *cobra.Command, args []string) error {
	path, err := reportPath(args[0])
	if err != nil {
		return err
	}
	r, err := report.ReadJSON(path)
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}
	printStats(r)
	return nil
}

type algorithmStats struct {
	maps, cached, colors, mismatches int
	durations, corr                  stats.Float64Data
}

func breakdown(r *report.Report) map[string]*algorithmStats {
	out := map[string]*algorithmStats{}
	for _, img := range r.Images {
		for name, res := range img.Results {
			a := out[name]
			if a == nil {
				a = &algorithmStats{}
				out[name] = a
			}
			a.maps++
			a.colors += res.Colors
			a.mismatches += res.Mismatches
			if res.Cached {
				a.cached++
			} else {
				a.durations = append(a.durations, res.DurationMS)
			}
			if res.Score != nil {
				a.corr = append(a.corr, res.Score.Correlation)
			}
		}
	}
	return out
}

func printStats(r *report.Report) {
	fmt.Println()
	fmt.Printf("  Report version:   %d\n", r.Version)
	fmt.Printf("  Generated:        %s\n", r.GeneratedAt)
	fmt.Printf("  Profile:          %s\n", r.Profile)
	if b := r.BuildInfo; b != nil {
		fmt.Printf("  Workers:          %d\n", b.Workers)
		fmt.Printf("  Resolution:       %dx%d, %d bins, sigmac %g\n", b.Width, b.Height, b.Bins, b.SigmaC)
	}
	fmt.Println()

	s := r.Stats
	fmt.Printf("  Total images:     %d\n", s.TotalImages)
	fmt.Printf("  Total maps:       %d (%d cached)\n", s.TotalMaps, s.CachedMaps)
	fmt.Printf("  Duration:         mean %.1f ms, p50 %.1f ms, p90 %.1f ms\n",
		s.MeanDurationMS, s.P50DurationMS, s.P90DurationMS)
	if s.TotalImages > 0 {
		fmt.Printf("  Mismatch images:  %d / %d (%d bins)\n", s.MismatchImages, s.TotalImages, s.MismatchBins)
	}
	fmt.Println()

	per := breakdown(r)
	names := make([]string, 0, len(per))
	for n := range per {
		names = append(names, n)
	}
	sort.Strings(names)
	fmt.Println("  Algorithm breakdown:")
	for _, n := range names {
		a := per[n]
		line := fmt.Sprintf("    %-14s %4d maps", n, a.maps)
		if len(a.durations) > 0 {
			median, _ := stats.Median(a.durations)
			line += fmt.Sprintf("  median %7.1f ms", median)
		}
		if a.colors > 0 {
			line += fmt.Sprintf("  %5.1f colors/map", float64(a.colors)/float64(a.maps))
		}
		if len(a.corr) > 0 {
			mean, _ := stats.Mean(a.corr)
			line += fmt.Sprintf("  corr %.3f", mean)
		}
		fmt.Println(line)
	}

	// Warnings.
	var warnings []string
	for key, img := range r.Images {
		for _, name := range r.Algorithms {
			if _, ok := img.Results[name]; !ok {
				warnings = append(warnings, fmt.Sprintf("image %q has no %s map", key, name))
			}
		}
	}
	sort.Strings(warnings)
	if len(warnings) > 0 {
		fmt.Println()
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
	}
	fmt.Println()
}
