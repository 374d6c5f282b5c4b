package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/go-theft-auto/guibridge"
)

// Config is the example host's settings file.
type Config struct {
	Width               int    `yaml:"width"`
	Height              int    `yaml:"height"`
	Title               string `yaml:"title"`
	VSync               bool   `yaml:"vsync"`
	Verbose             bool   `yaml:"verbose"`
	ShowCursorOnStartup bool   `yaml:"show_cursor_on_startup"`
	ToggleCursorKey     string `yaml:"toggle_cursor_key"`
	ShowDemo            bool   `yaml:"show_demo"`
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() Config {
	return Config{
		Width:               1280,
		Height:              720,
		Title:               "guibridge example",
		VSync:               true,
		ShowCursorOnStartup: true,
		ToggleCursorKey:     "F2",
		ShowDemo:            true,
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("config %s: window size %dx%d must be positive", path, cfg.Width, cfg.Height)
	}
	return cfg, nil
}

// physicalKeyByName finds the lowest host key code that translates to the
// GUI key named name (see guibridge.Key.String).
func physicalKeyByName(keys guibridge.KeyMap, name string) (guibridge.PhysicalKey, bool) {
	var matches []guibridge.PhysicalKey
	for pk, k := range keys {
		if k.String() == name {
			matches = append(matches, pk)
		}
	}
	if len(matches) == 0 {
		return 0, false
	}
	return slices.Min(matches), true
}
