package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Encounter dates are captured once with this layout and stored as
	// plain strings, never re-derived.
	DateFormat string `yaml:"date_format"`

	DefaultSort string `yaml:"default_sort"`
	ReverseSort bool   `yaml:"reverse_sort"`

	// UI Settings
	ColorTheme string `yaml:"color_theme"`
	TableWidth int    `yaml:"table_width"`

	// Cleanup Settings
	AutoClean       bool `yaml:"auto_clean"`
	ConfirmDelete   bool `yaml:"confirm_delete"`
	WatchDebounceMS int  `yaml:"watch_debounce_ms"`

	// Search Settings
	MaxSearchResults int `yaml:"max_search_results"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		DateFormat:       "1/2/2006",
		DefaultSort:      "name",
		ReverseSort:      false,
		ColorTheme:       "auto",
		TableWidth:       0,
		AutoClean:        true,
		ConfirmDelete:    true,
		WatchDebounceMS:  500,
		MaxSearchResults: 50,
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for essential values if missing
	if cfg.DateFormat == "" {
		cfg.DateFormat = "1/2/2006"
	}
	if cfg.WatchDebounceMS <= 0 {
		cfg.WatchDebounceMS = 500
	}
	if cfg.MaxSearchResults <= 0 {
		cfg.MaxSearchResults = 50
	}
	if !isValidSort(cfg.DefaultSort) {
		cfg.DefaultSort = "name"
	}

	return cfg, nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// isValidSort checks if the sort field is one the list command understands
func isValidSort(sort string) bool {
	validSorts := []string{"name", "date", "encounters"}
	for _, valid := range validSorts {
		if sort == valid {
			return true
		}
	}
	return false
}
