package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/AnyUserName/salmap-cli/internal/focus"
	"github.com/AnyUserName/salmap-cli/internal/saliency"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
)

var (
	cropOut     string
	cropMapOut  string
	cropQuality int
	cropTuning  tuning
)

var cropCmd = &cobra.Command{
	Use:   "crop <image>",
	Short: "Crop one image around its most salient region",
	Long: `Computes a saliency map for the image with the first selected algorithm,
places a crop of --crop-ratio (width/height) on the saliency-weighted
center and writes the cropped image. The output format follows the output
file extension.`,
	Args: cobra.ExactArgs(1),
	RunE: runCrop,
}

func init() {
	cropCmd.Flags().StringVarP(&cropOut, "out", "o", "", "output file (default <name>.crop<ext>)")
	cropCmd.Flags().StringVar(&cropMapOut, "map", "", "also write the saliency map to this file")
	cropCmd.Flags().IntVarP(&cropQuality, "quality", "q", 90, "jpeg quality 1-100")
	cropTuning.register(cropCmd.Flags())
	rootCmd.AddCommand(cropCmd)
}

func runCrop(_ *cobra.Command, args []string) error {
	in := args[0]
	prof, cfg := cropTuning.resolve()
	if len(prof.Algorithms) == 0 {
		return fmt.Errorf("profile %q selects no algorithms", prof.Name)
	}
	alg, err := saliency.New(prof.Algorithms[0], cfg)
	if err != nil {
		return err
	}

	img, err := imaging.Open(in, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("open %s: %w", in, err)
	}
	b := img.Bounds()

	start := time.Now()
	m, err := alg.Compute(img)
	if err != nil {
		return fmt.Errorf("%s: %w", alg.Name(), err)
	}
	logVerbose("%s: %dx%d map in %s", alg.Name(), m.Width, m.Height, time.Since(start).Round(time.Millisecond))

	meta := focus.Analyze(m)
	rect := focus.Crop(meta, b.Dx(), b.Dy(), prof.CropRatio).Add(b.Min)
	logVerbose("focus center (%.3f, %.3f), crop %v", meta.Center.X, meta.Center.Y, rect)

	out := cropOut
	if out == "" {
		ext := filepath.Ext(in)
		out = strings.TrimSuffix(in, ext) + ".crop" + ext
	}
	if err := imaging.Save(imaging.Crop(img, rect), out, imaging.JPEGQuality(cropQuality)); err != nil {
		return fmt.Errorf("save %s: %w", out, err)
	}
	if cropMapOut != "" {
		if err := imaging.Save(m.Image(b.Dx(), b.Dy()), cropMapOut); err != nil {
			return fmt.Errorf("save %s: %w", cropMapOut, err)
		}
	}

	fmt.Printf("  %s → %s (%dx%d at %d,%d)\n", in, out, rect.Dx(), rect.Dy(), rect.Min.X, rect.Min.Y)
	return nil
}
