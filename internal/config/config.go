// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/stagehandapp/stagehand/internal/schedule"
)

// Config holds the application configuration.
type Config struct {
	API     APIConfig     `toml:"api"`
	Event   EventConfig   `toml:"event"`
	Grid    GridConfig    `toml:"grid"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
	Token   string `toml:"token"` // bearer token, written by `stagehand login`
}

// EventConfig holds the active event selection.
type EventConfig struct {
	ActiveID string `toml:"active_id"` // set by `stagehand events use`
}

// GridConfig holds schedule grid tuning. All values have working defaults;
// most installs never set this section.
type GridConfig struct {
	SnapMinutes            int `toml:"snap_minutes"`
	PlacementSnapMinutes   int `toml:"placement_snap_minutes"`
	MinDurationMinutes     int `toml:"min_duration_minutes"`
	DefaultDurationMinutes int `toml:"default_duration_minutes"`
	TimeLabelInterval      int `toml:"time_label_interval"`
}

// StorageConfig holds the schedule snapshot database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	m := schedule.DefaultMetrics()
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080",
		},
		Grid: GridConfig{
			SnapMinutes:            m.SnapMinutes,
			PlacementSnapMinutes:   m.PlacementSnapMinutes,
			MinDurationMinutes:     m.MinDurationMinutes,
			DefaultDurationMinutes: m.DefaultDurationMinutes,
			TimeLabelInterval:      m.TimeLabelInterval,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// Metrics builds the grid configuration object from the config values.
func (c *Config) Metrics() schedule.Metrics {
	m := schedule.DefaultMetrics()
	m.SnapMinutes = c.Grid.SnapMinutes
	m.PlacementSnapMinutes = c.Grid.PlacementSnapMinutes
	m.MinDurationMinutes = c.Grid.MinDurationMinutes
	m.DefaultDurationMinutes = c.Grid.DefaultDurationMinutes
	m.TimeLabelInterval = c.Grid.TimeLabelInterval
	return m
}

// defaultDBPath returns the default snapshot database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "stagehand.db"
	}
	return filepath.Join(home, ".local", "share", "stagehand", "stagehand.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "stagehand", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STAGEHAND_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("STAGEHAND_API_TOKEN"); v != "" {
		cfg.API.Token = v
	}
	if v := os.Getenv("STAGEHAND_EVENT_ID"); v != "" {
		cfg.Event.ActiveID = v
	}
	if v := os.Getenv("STAGEHAND_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("STAGEHAND_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// SaveTo writes the configuration to the given path, creating parent
// directories as needed. Used after login and event selection.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	// the token lives in here, keep it out of other users' reach
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api base_url must be set")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api base_url must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if c.Grid.SnapMinutes <= 0 {
		return errors.New("snap_minutes must be positive")
	}
	if c.Grid.PlacementSnapMinutes <= 0 {
		return errors.New("placement_snap_minutes must be positive")
	}
	if c.Grid.MinDurationMinutes <= 0 {
		return errors.New("min_duration_minutes must be positive")
	}
	if c.Grid.DefaultDurationMinutes < c.Grid.MinDurationMinutes {
		return errors.New("default_duration_minutes must be at least min_duration_minutes")
	}
	if c.Grid.TimeLabelInterval <= 0 {
		return errors.New("time_label_interval must be positive")
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}
