package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

type Settings struct {
	SlidesDir       string   `json:"slides_dir"`
	Palette         []string `json:"palette"`
	Smoothing       float64  `json:"smoothing"`
	DisperseDelayMs int      `json:"disperse_delay_ms"`
	TitleDesktop    string   `json:"title_desktop"`
	TitleMobile     string   `json:"title_mobile"`
	Compact         bool     `json:"compact"`
	CueSound        string   `json:"cue_sound"`
	CueVolume       float64  `json:"cue_volume"`
	Mute            bool     `json:"mute"`
	BackgroundImage string   `json:"background_image"`
}

// Default returns the settings used when no file exists.
func Default() *Settings {
	return &Settings{
		Palette:         append([]string(nil), Palette...),
		Smoothing:       SmoothingFactor,
		DisperseDelayMs: int(DisperseDelay / time.Millisecond),
		TitleDesktop:    "Creative Particles",
		TitleMobile:     "Particles",
		CueVolume:       -1,
	}
}

// DisperseDelay returns the configured disperse-to-reform delay.
func (s *Settings) DisperseDelay() time.Duration {
	return time.Duration(s.DisperseDelayMs) * time.Millisecond
}

// Title picks the title variant for the current layout.
func (s *Settings) Title(compact bool) string {
	if compact {
		return s.TitleMobile
	}
	return s.TitleDesktop
}

func GetSettingsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, ".config", "particle-morph")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "settings.json"), nil
}

// LoadSettings reads the settings file at path, or the default location when
// path is empty. A missing file is created with defaults.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		p, err := GetSettingsPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	defaultSettings := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Creating default settings file at %s", path)
			if err := createDefaultSettings(path, defaultSettings); err != nil {
				log.Printf("Failed to create default settings file: %v", err)
			}
			return defaultSettings, nil
		}
		return nil, err
	}

	// Check for unrecognised keys
	var rawSettings map[string]interface{}
	if err := json.Unmarshal(data, &rawSettings); err != nil {
		log.Printf("Invalid settings file, using defaults: %v", err)
		return defaultSettings, nil
	}

	knownKeys := getKnownKeys(Settings{})
	for key := range rawSettings {
		if !knownKeys[key] {
			log.Printf("Warning: unrecognised setting key '%s' in settings file", key)
		}
	}

	settings := Default()
	if err := json.Unmarshal(data, settings); err != nil {
		log.Printf("Invalid settings file, using defaults: %v", err)
		return defaultSettings, nil
	}

	settings.validate(defaultSettings)
	return settings, nil
}

func (s *Settings) validate(defaults *Settings) {
	if s.Smoothing <= 0 || s.Smoothing >= 1 {
		log.Printf("Invalid smoothing value %.2f, must be between 0 and 1 exclusive, using default %.2f",
			s.Smoothing, defaults.Smoothing)
		s.Smoothing = defaults.Smoothing
	}
	if s.DisperseDelayMs < 0 {
		log.Printf("Invalid disperse_delay_ms %d, using default %d", s.DisperseDelayMs, defaults.DisperseDelayMs)
		s.DisperseDelayMs = defaults.DisperseDelayMs
	}

	palette := s.Palette[:0]
	for _, hex := range s.Palette {
		if _, err := colorful.Hex(hex); err != nil {
			log.Printf("Ignoring invalid palette colour %q: %v", hex, err)
			continue
		}
		palette = append(palette, hex)
	}
	if len(palette) == 0 {
		palette = append(palette, defaults.Palette...)
	}
	s.Palette = palette
}

func createDefaultSettings(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func getKnownKeys(v interface{}) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			// Handle json tags like "field,omitempty"
			tagName := strings.Split(jsonTag, ",")[0]
			if tagName != "-" {
				keys[tagName] = true
			}
		}
	}
	return keys
}
