package cmd

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/particle-morph/internal/camera"
	"github.com/iburimskiy/particle-morph/internal/config"
	"github.com/iburimskiy/particle-morph/internal/director"
	"github.com/iburimskiy/particle-morph/internal/morph"
	"github.com/iburimskiy/particle-morph/internal/slides"
	"github.com/iburimskiy/particle-morph/internal/term"
)

var previewCmd = &cobra.Command{
	Use:   "preview <slides-dir>",
	Short: "run the field in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(c *cobra.Command, args []string) error {
	if f := setupLogging(debug, true); f != nil {
		defer f.Close()
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	paths, err := slidePaths(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no images in %s", args[0])
	}
	palette, err := morph.ParsePalette(settings.Palette)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	cols, rows := screen.Size()
	cam := camera.New(cols, rows*2)
	anim := morph.New(morph.Options{
		Rand:          morph.NewSource(seed),
		Palette:       palette,
		ViewWidth:     config.WindowWidth,
		ClearRadius:   cam.ClearRadius(),
		Smoothing:     settings.Smoothing,
		DisperseDelay: settings.DisperseDelay(),
	})

	loader := &slides.Loader{Width: config.CanvasWidth, Height: config.CanvasHeight, Workers: config.DecodeWorkers}
	loaded, _ := loader.Load(paths)
	carousel := slides.NewCarousel(loaded...)
	dir := director.New(anim, carousel)
	carousel.Select(0)

	p := &term.Preview{
		Screen:   screen,
		Anim:     anim,
		Carousel: carousel,
		Director: dir,
		Camera:   cam,
	}
	p.Run()
	return nil
}
