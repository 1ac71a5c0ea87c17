// Package config loads the dirjump configuration file and supplies the
// settings that influence queries. Settings are plain values: every caller
// snapshots them per call, so edits between calls need no invalidation.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the dirjump configuration.
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Search      SearchConfig      `yaml:"search"`
	Suggestions SuggestionsConfig `yaml:"suggestions"`
	Picker      PickerConfig      `yaml:"picker"`
	Log         LogConfig         `yaml:"log"`
}

// DatabaseConfig holds storage settings.
type DatabaseConfig struct {
	Path string `yaml:"path"` // database file (empty = ~/.dirjump/state.db)
}

// SearchConfig holds listing/search settings.
type SearchConfig struct {
	ShortcutAware bool `yaml:"shortcut_aware"` // match shortcut names/descriptions too
}

// SuggestionsConfig holds predictive-suggestion settings.
type SuggestionsConfig struct {
	Enabled bool `yaml:"enabled"` // prepend predicted entries to unfiltered listings
	Depth   int  `yaml:"depth"`   // anchor occurrences to mine
	Count   int  `yaml:"count"`   // predicted entries to produce
}

// PickerConfig holds interactive picker settings.
type PickerConfig struct {
	PageSize int `yaml:"page_size"` // rows per window in the picker
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Search:      SearchConfig{ShortcutAware: true},
		Suggestions: SuggestionsConfig{Enabled: true, Depth: 10, Count: 4},
		Picker:      PickerConfig{PageSize: 20},
		Log:         LogConfig{Level: "warn"},
	}
}

// Load reads the configuration file at path, falling back to the default
// location and to built-in defaults when the file does not exist. A file
// that exists but cannot be parsed is an error: silently ignoring a broken
// config hides misconfiguration.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := Default()
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the user's own config file
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize clamps nonsensical values back to the defaults.
func (c *Config) normalize() {
	def := Default()
	if c.Suggestions.Depth <= 0 {
		c.Suggestions.Depth = def.Suggestions.Depth
	}
	if c.Suggestions.Count <= 0 {
		c.Suggestions.Count = def.Suggestions.Count
	}
	if c.Picker.PageSize <= 0 {
		c.Picker.PageSize = def.Picker.PageSize
	}
}
