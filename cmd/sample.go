package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/particle-morph/internal/config"
	"github.com/iburimskiy/particle-morph/internal/morph"
	"github.com/iburimskiy/particle-morph/internal/slides"
)

var sampleFlags struct {
	ascii bool
	cols  int
}

var sampleCmd = &cobra.Command{
	Use:   "sample <image>...",
	Short: "report how many agents each image needs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		setupLogging(false, true)
		for _, path := range args {
			if err := reportSamples(c.OutOrStdout(), path); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	sampleCmd.Flags().BoolVar(&sampleFlags.ascii, "ascii", false, "print the sampled silhouette")
	sampleCmd.Flags().IntVar(&sampleFlags.cols, "cols", 60, "silhouette width in characters")
	rootCmd.AddCommand(sampleCmd)
}

func reportSamples(w io.Writer, path string) error {
	img, err := slides.DecodeFile(path)
	if err != nil {
		return err
	}
	canvas := slides.Rasterize(img, config.CanvasWidth, config.CanvasHeight)
	samples := morph.SampleImage(canvas)

	fmt.Fprintf(w, "%s: %d samples\n", path, len(samples))
	if sampleFlags.ascii {
		fmt.Fprint(w, silhouette(samples, config.CanvasWidth, config.CanvasHeight, sampleFlags.cols))
	}
	return nil
}

// silhouette draws samples as '#' on a grid cols wide, with rows at twice
// the horizontal step to suit terminal glyphs.
func silhouette(samples []morph.Sample, width, height, cols int) string {
	if cols <= 0 {
		cols = 1
	}
	step := float64(width) / float64(cols)
	rows := int(float64(height)/(step*2)) + 1
	grid := make([][]byte, rows)
	for i := range grid {
		grid[i] = []byte(strings.Repeat(" ", cols))
	}
	for _, s := range samples {
		col := int(float64(s.X) / step)
		row := int(float64(height-s.Y) / (step * 2))
		if col >= 0 && col < cols && row >= 0 && row < rows {
			grid[row][col] = '#'
		}
	}

	var b strings.Builder
	for _, line := range grid {
		b.WriteString(strings.TrimRight(string(line), " "))
		b.WriteByte('\n')
	}
	return b.String()
}
