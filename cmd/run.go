package cmd

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/particle-morph/internal/audio"
	"github.com/iburimskiy/particle-morph/internal/config"
	"github.com/iburimskiy/particle-morph/internal/game"
	"github.com/iburimskiy/particle-morph/internal/slides"
)

var runFlags struct {
	slidesDir  string
	compact    bool
	mute       bool
	cue        string
	background string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "open the particle window",
	RunE:  runWindow,
}

func init() {
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func addRunFlags(c *cobra.Command) {
	c.Flags().StringVarP(&runFlags.slidesDir, "slides", "s", "", "directory of slide images")
	c.Flags().BoolVar(&runFlags.compact, "compact", false, "use the small-screen title layout")
	c.Flags().BoolVar(&runFlags.mute, "mute", false, "start with the transition cue muted")
	c.Flags().StringVar(&runFlags.cue, "cue", "", "wav, mp3 or flac file to play on slide changes")
	c.Flags().StringVar(&runFlags.background, "background", "", "image faded in behind the field")
}

// applyRunFlags lets explicit flags override the settings file.
func applyRunFlags(c *cobra.Command, s *config.Settings) {
	if c.Flags().Changed("slides") {
		s.SlidesDir = runFlags.slidesDir
	}
	if c.Flags().Changed("compact") {
		s.Compact = runFlags.compact
	}
	if c.Flags().Changed("mute") {
		s.Mute = runFlags.mute
	}
	if c.Flags().Changed("cue") {
		s.CueSound = runFlags.cue
	}
	if c.Flags().Changed("background") {
		s.BackgroundImage = runFlags.background
	}
}

func runWindow(c *cobra.Command, args []string) error {
	if f := setupLogging(debug, false); f != nil {
		defer f.Close()
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	applyRunFlags(c, settings)

	paths, err := slidePaths(settings.SlidesDir)
	if err != nil {
		return err
	}

	cue, err := audio.NewCue(settings.CueSound, settings.CueVolume)
	if err != nil {
		log.Printf("Transition cue disabled: %v", err)
		cue = nil
	} else {
		cue.SetMuted(settings.Mute)
		if err := cue.Init(); err != nil {
			// Non-fatal, the field runs without sound
			log.Printf("Audio initialization failed: %v", err)
		}
	}

	var background image.Image
	if settings.BackgroundImage != "" {
		background, err = slides.DecodeFile(settings.BackgroundImage)
		if err != nil {
			log.Printf("Background image skipped: %v", err)
			background = nil
		}
	}

	g, err := game.New(game.Options{
		Settings:   settings,
		SlidePaths: paths,
		Seed:       seed,
		Cue:        cue,
		Background: background,
	})
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
