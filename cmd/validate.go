package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/salmap-cli/internal/report"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <report_path>",
	Short: "Validate a salmap report and check referenced map files exist",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	path, err := reportPath(args[0])
	if err != nil {
		return err
	}
	r, err := report.ReadJSON(path)
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}

	errors := validateReport(r, filepath.Dir(path))
	if len(errors) == 0 {
		fmt.Println("  ✓ Report is valid")
		fmt.Printf("  ✓ %d images, %d maps, all files present\n", r.Stats.TotalImages, r.Stats.TotalMaps)
		return nil
	}

	fmt.Printf("  ✗ Report has %d error(s):\n", len(errors))
	for _, e := range errors {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errors))
}

func inUnit(v float64) bool { return v >= 0 && v <= 1 }

func validateReport(r *report.Report, baseDir string) []string {
	var errs []string

	if r.Version != report.SupportedVersion {
		errs = append(errs, fmt.Sprintf("unsupported report version: %d", r.Version))
	}

	maps, cached := 0, 0
	seenPaths := map[string]bool{}
	for key, img := range r.Images {
		o := img.Original
		if o.Width <= 0 || o.Height <= 0 {
			errs = append(errs, fmt.Sprintf("image %q: invalid original dimensions %dx%d", key, o.Width, o.Height))
		}
		if len(img.Results) == 0 {
			errs = append(errs, fmt.Sprintf("image %q: no results", key))
		}

		for name, res := range img.Results {
			maps++
			if res.Cached {
				cached++
			}
			where := fmt.Sprintf("image %q %s", key, name)
			if !inUnit(res.Mean) {
				errs = append(errs, fmt.Sprintf("%s: mean %v outside [0, 1]", where, res.Mean))
			}
			if c := res.Focus.Center; !inUnit(c.X) || !inUnit(c.Y) {
				errs = append(errs, fmt.Sprintf("%s: focus center %+v outside [0, 1]", where, c))
			}
			c := res.Crop
			if c.Width <= 0 || c.Height <= 0 || c.X < 0 || c.Y < 0 ||
				c.X+c.Width > o.Width || c.Y+c.Height > o.Height {
				errs = append(errs, fmt.Sprintf("%s: crop %+v outside %dx%d", where, c, o.Width, o.Height))
			}
			if res.Mismatches > res.Colors {
				errs = append(errs, fmt.Sprintf("%s: %d mismatches for %d colors", where, res.Mismatches, res.Colors))
			}
			if res.Path == "" {
				continue
			}
			if res.Hash == "" {
				errs = append(errs, fmt.Sprintf("%s: missing hash", where))
			}
			if seenPaths[res.Path] {
				errs = append(errs, fmt.Sprintf("%s: duplicate path %q", where, res.Path))
			}
			seenPaths[res.Path] = true

			info, err := os.Stat(filepath.Join(baseDir, filepath.FromSlash(res.Path)))
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: file not found: %s", where, res.Path))
			} else if res.Size > 0 && info.Size() != res.Size {
				errs = append(errs, fmt.Sprintf("%s: size mismatch: report=%d, disk=%d", where, res.Size, info.Size()))
			}
		}
	}

	// Verify stats consistency.
	if r.Stats.TotalImages != len(r.Images) {
		errs = append(errs, fmt.Sprintf("stats.total_images mismatch: %d != %d", r.Stats.TotalImages, len(r.Images)))
	}
	if r.Stats.TotalMaps != maps {
		errs = append(errs, fmt.Sprintf("stats.total_maps mismatch: %d != %d", r.Stats.TotalMaps, maps))
	}
	if r.Stats.CachedMaps != cached {
		errs = append(errs, fmt.Sprintf("stats.cached_maps mismatch: %d != %d", r.Stats.CachedMaps, cached))
	}

	return errs
}
