package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/particle-morph/internal/config"
	"github.com/iburimskiy/particle-morph/internal/slides"
)

const (
	logDir      = "logs"
	logFileName = "particle-morph.log"
)

var (
	settingsPath string
	debug        bool
	seed         int64
)

var rootCmd = &cobra.Command{
	Use:   "particle-morph",
	Short: "particle field that morphs between slide images",
	RunE:  runWindow,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "settings file (default ~/.config/particle-morph/settings.json)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write logs to "+filepath.Join(logDir, logFileName))
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	addRunFlags(rootCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging sends log output to a file when debug is set. Otherwise it
// goes to stderr, or nowhere when quiet is set (the terminal preview owns
// the screen).
func setupLogging(debug, quiet bool) *os.File {
	if !debug {
		if quiet {
			log.SetOutput(io.Discard)
		} else {
			log.SetOutput(os.Stderr)
		}
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

func loadSettings() (*config.Settings, error) {
	s, err := config.LoadSettings(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return s, nil
}

// slidePaths lists the images in dir, which may be empty.
func slidePaths(dir string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	paths, err := slides.ListDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	if len(paths) == 0 {
		log.Printf("No images found in %s", dir)
	}
	return paths, nil
}
