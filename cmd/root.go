package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "salmap",
	Short: "Histogram-contrast saliency maps and smart crops",
	Long: `salmap — computes per-pixel saliency maps from color histogram contrast
weighted by a learned shape prior, and derives focus points and crop
rectangles from them.

Runs over directories of images with a report for batch evaluation, or on
a single image to produce a saliency-aware crop.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"salmap %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[salmap] "+format+"\n", args...)
	}
}
