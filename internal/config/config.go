package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persistent application configuration
type Config struct {
	// UI Preferences
	UI UIConfig `json:"ui"`

	// History settings
	History HistoryConfig `json:"history"`

	// DBPath overrides the default history database location
	DBPath string `json:"db_path,omitempty"`
}

// UIConfig holds UI preferences
type UIConfig struct {
	Theme         string `json:"theme"`
	PopupDisabled bool   `json:"popup_disabled"` // Disable completion popup entirely
	PopupMaxRows  int    `json:"popup_max_rows"` // Visible candidate rows in the popup
}

// HistoryConfig holds input-history preferences
type HistoryConfig struct {
	MaxEntries int `json:"max_entries"` // Per-field history bound
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Theme:        "dark",
			PopupMaxRows: 8,
		},
		History: HistoryConfig{
			MaxEntries: 100,
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".recall", "config.json")
}

// DefaultDBPath returns the default history database location
func DefaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".recall", "recall.db")
}

// Load reads config from disk, or returns defaults
func Load() (*Config, error) {
	path := ConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		// Corrupt config is not fatal; start from defaults
		return DefaultConfig(), nil
	}

	cfg.applyFloors()
	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// ResolveDBPath returns the configured database path, falling back to
// the default location.
func (c *Config) ResolveDBPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return DefaultDBPath()
}

// applyFloors clamps zero or negative values left by hand-edited config
// files back to usable defaults.
func (c *Config) applyFloors() {
	if c.History.MaxEntries <= 0 {
		c.History.MaxEntries = 100
	}
	if c.UI.PopupMaxRows <= 0 {
		c.UI.PopupMaxRows = 8
	}
}
