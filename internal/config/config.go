// Package config handles configuration file loading and parsing for the
// matkit CLI and the matkitd daemon.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultRenderWidth  = 960
	DefaultRenderHeight = 600
	DefaultCellWidth    = 8
	DefaultCellHeight   = 16
)

// Config represents the matkit CLI configuration.
type Config struct {
	Render  RenderConfig  `toml:"render"`
	Preview PreviewConfig `toml:"preview"`
	Client  ClientConfig  `toml:"client"`
}

// RenderConfig holds defaults for `matkit render`.
type RenderConfig struct {
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	Theme    string `toml:"theme"`    // Empty = daemon theme setting
	Controls bool   `toml:"controls"` // Draw app chrome behind overlays
}

// PreviewConfig holds terminal preview settings.
type PreviewConfig struct {
	CellWidth  int  `toml:"cell_width"`  // Pixels per terminal column
	CellHeight int  `toml:"cell_height"` // Pixels per terminal row
	ShowHelp   bool `toml:"show_help"`
	// Clipboard overrides the copy command; empty auto-detects
	// wl-copy, xclip or xsel.
	Clipboard string `toml:"clipboard"`
}

// ClientConfig holds defaults for requests sent to the daemon.
type ClientConfig struct {
	Severity  string   `toml:"severity"`
	Placement string   `toml:"placement"`
	Duration  Duration `toml:"duration"` // 0 = daemon default
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Width:    DefaultRenderWidth,
			Height:   DefaultRenderHeight,
			Controls: true,
		},
		Preview: PreviewConfig{
			CellWidth:  DefaultCellWidth,
			CellHeight: DefaultCellHeight,
			ShowHelp:   true,
		},
		Client: ClientConfig{
			Severity: "info",
		},
	}
}

// ConfigDir returns the matkit configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "matkit")
}

// ConfigPath returns the path to the CLI config file.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.Preview.CellWidth <= 0 {
		cfg.Preview.CellWidth = DefaultCellWidth
	}
	if cfg.Preview.CellHeight <= 0 {
		cfg.Preview.CellHeight = DefaultCellHeight
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
