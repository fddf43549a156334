package config

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/matkit/internal/overlay"
	"github.com/jmylchreest/matkit/internal/paint"
	"github.com/jmylchreest/matkit/internal/theme"
)

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "5s", "1m", "1h30m", or integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '5s', '1m', '1h30m' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Milliseconds returns the duration in milliseconds.
func (d Duration) Milliseconds() int {
	return int(time.Duration(d).Milliseconds())
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// DaemonConfig is the configuration for matkitd.
// Loaded from ~/.config/matkit/matkitd.toml
type DaemonConfig struct {
	Toast    ToastConfig    `toml:"toast"`
	Snackbar SnackbarConfig `toml:"snackbar"`
	Shadow   ShadowConfig   `toml:"shadow"`
	Corners  CornersConfig  `toml:"corners"`
	Theme    ThemeConfig    `toml:"theme"`
	Audio    AudioConfig    `toml:"audio"`
	Display  DisplayConfig  `toml:"display"`
}

// ToastConfig contains toast defaults.
type ToastConfig struct {
	Duration Duration `toml:"duration"` // Used when a request has no duration
	Width    int      `toml:"width"`
	Height   int      `toml:"height"`
}

// SnackbarConfig contains snackbar defaults.
type SnackbarConfig struct {
	Duration    Duration          `toml:"duration"`
	Placement   overlay.Placement `toml:"placement"` // "bottom-center", "top-left", etc.
	Width       int               `toml:"width"`
	Height      int               `toml:"height"`
	ActionWidth int               `toml:"action_width"`
}

// ShadowConfig describes the shadow under every surface.
type ShadowConfig struct {
	Kind    paint.ShadowKind `toml:"kind"` // "none", "solid" or "layered"
	Blur    float64          `toml:"blur"`
	OffsetX float64          `toml:"offset_x"`
	OffsetY float64          `toml:"offset_y"`
	Spread  float64          `toml:"spread"`
	Opacity float64          `toml:"opacity"` // 0.0-1.0, scales the theme's shadow colour
}

// CornersConfig contains per-corner radii in pixels.
type CornersConfig struct {
	TopLeft     float64 `toml:"top_left"`
	TopRight    float64 `toml:"top_right"`
	BottomRight float64 `toml:"bottom_right"`
	BottomLeft  float64 `toml:"bottom_left"`
}

// ThemeConfig contains theme settings.
type ThemeConfig struct {
	Name        string `toml:"name"`         // Theme name without .yaml extension
	ColorScheme string `toml:"color_scheme"` // "system", "light", or "dark"
	HotReload   bool   `toml:"hot_reload"`
}

// ColorScheme represents the color scheme preference.
type ColorScheme string

const (
	ColorSchemeSystem ColorScheme = theme.SchemeSystem
	ColorSchemeLight  ColorScheme = theme.SchemeLight
	ColorSchemeDark   ColorScheme = theme.SchemeDark
)

// ValidColorSchemes returns all valid color scheme values.
func ValidColorSchemes() []ColorScheme {
	return []ColorScheme{ColorSchemeSystem, ColorSchemeLight, ColorSchemeDark}
}

// AudioConfig contains audio settings.
type AudioConfig struct {
	Enabled bool        `toml:"enabled"`
	Volume  int         `toml:"volume"` // 0-100
	Sounds  SoundConfig `toml:"sounds"`
}

// SoundConfig contains per-severity sound file paths.
type SoundConfig struct {
	Info     string `toml:"info"`
	Success  string `toml:"success"`
	Warning  string `toml:"warning"`
	Error    string `toml:"error"`
	Snackbar string `toml:"snackbar"`
}

// DisplayConfig contains display-related settings.
type DisplayConfig struct {
	Monitor int `toml:"monitor"` // 0 = primary, 1+ = specific monitor
}

// DefaultDaemonConfig returns a new DaemonConfig with default values.
func DefaultDaemonConfig() *DaemonConfig {
	lay := overlay.DefaultLayout()
	shadow := paint.DefaultShadow()

	return &DaemonConfig{
		Toast: ToastConfig{
			Duration: Duration(overlay.DefaultToastDuration),
			Width:    lay.ToastSize.X,
			Height:   lay.ToastSize.Y,
		},
		Snackbar: SnackbarConfig{
			Duration:    Duration(4 * time.Second),
			Placement:   overlay.DefaultPlacement,
			Width:       lay.SnackbarSize.X,
			Height:      lay.SnackbarSize.Y,
			ActionWidth: lay.ActionWidth,
		},
		Shadow: ShadowConfig{
			Kind:    shadow.Kind,
			Blur:    shadow.Blur,
			OffsetX: shadow.OffsetX,
			OffsetY: shadow.OffsetY,
			Spread:  shadow.Spread,
			Opacity: 1.0,
		},
		Corners: CornersConfig{
			TopLeft:     4,
			TopRight:    4,
			BottomRight: 4,
			BottomLeft:  4,
		},
		Theme: ThemeConfig{
			Name:        theme.DefaultThemeName,
			ColorScheme: string(ColorSchemeSystem),
			HotReload:   true,
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  80,
		},
		Display: DisplayConfig{
			Monitor: 0,
		},
	}
}

// DaemonConfigPath returns the path to the daemon config file.
func DaemonConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "matkit", "matkitd.toml"), nil
}

// LoadDaemonConfig loads the daemon configuration from path, or from
// DaemonConfigPath when path is empty.
// If the file doesn't exist, returns the default configuration.
func LoadDaemonConfig(path string) (*DaemonConfig, error) {
	if path == "" {
		var err error
		path, err = DaemonConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultDaemonConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseDaemonConfig(data)
}

// ParseDaemonConfig decodes TOML on top of the defaults and validates it.
func ParseDaemonConfig(data []byte) (*DaemonConfig, error) {
	config := DefaultDaemonConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// SaveDaemonConfig writes the configuration to path, or to DaemonConfigPath
// when path is empty.
func SaveDaemonConfig(config *DaemonConfig, path string) error {
	if path == "" {
		var err error
		path, err = DaemonConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *DaemonConfig) Validate() error {
	if !c.Snackbar.Placement.Valid() {
		return fmt.Errorf("invalid placement %q, must be one of: %v", c.Snackbar.Placement, overlay.Placements)
	}

	for name, size := range map[string]image.Point{
		"toast":    {c.Toast.Width, c.Toast.Height},
		"snackbar": {c.Snackbar.Width, c.Snackbar.Height},
	} {
		if size.X < 100 || size.X > 2000 {
			return fmt.Errorf("%s width must be between 100 and 2000, got %d", name, size.X)
		}
		if size.Y < 24 || size.Y > 400 {
			return fmt.Errorf("%s height must be between 24 and 400, got %d", name, size.Y)
		}
	}
	if c.Snackbar.ActionWidth < 0 || c.Snackbar.ActionWidth >= c.Snackbar.Width {
		return fmt.Errorf("action_width must be between 0 and the snackbar width, got %d", c.Snackbar.ActionWidth)
	}

	if c.Shadow.Blur < 0 || c.Shadow.Spread < 0 {
		return fmt.Errorf("shadow blur and spread must not be negative")
	}
	if c.Shadow.Opacity < 0 || c.Shadow.Opacity > 1 {
		return fmt.Errorf("shadow opacity must be between 0 and 1, got %v", c.Shadow.Opacity)
	}

	for _, r := range []float64{c.Corners.TopLeft, c.Corners.TopRight, c.Corners.BottomRight, c.Corners.BottomLeft} {
		if r < 0 || math.IsNaN(r) {
			return fmt.Errorf("corner radius must not be negative, got %v", r)
		}
	}

	validScheme := false
	for _, s := range ValidColorSchemes() {
		if c.Theme.ColorScheme == string(s) {
			validScheme = true
			break
		}
	}
	if !validScheme {
		return fmt.Errorf("invalid color_scheme %q, must be one of: %v", c.Theme.ColorScheme, ValidColorSchemes())
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}

	if c.Display.Monitor < 0 {
		return fmt.Errorf("monitor must not be negative, got %d", c.Display.Monitor)
	}

	return nil
}

// Radius returns the configured corner radii.
func (c *DaemonConfig) Radius() paint.CornerRadius {
	return paint.CornerRadius{
		TopLeft:     c.Corners.TopLeft,
		TopRight:    c.Corners.TopRight,
		BottomRight: c.Corners.BottomRight,
		BottomLeft:  c.Corners.BottomLeft,
	}
}

// ShadowSettings returns the configured shadow coloured from the palette.
func (c *DaemonConfig) ShadowSettings(p *theme.Palette) paint.ShadowSettings {
	if p == nil {
		p = theme.Default()
	}
	col := p.Shadow.NRGBA()
	col.A = uint8(math.Round(float64(col.A) * c.Shadow.Opacity))

	return paint.ShadowSettings{
		Kind:    c.Shadow.Kind,
		Blur:    c.Shadow.Blur,
		OffsetX: c.Shadow.OffsetX,
		OffsetY: c.Shadow.OffsetY,
		Spread:  c.Shadow.Spread,
		Color:   col,
	}
}

// OverlayOptions builds overlay manager options from the configuration.
func (c *DaemonConfig) OverlayOptions(p *theme.Palette) overlay.Options {
	lay := overlay.DefaultLayout()
	lay.ToastSize = image.Pt(c.Toast.Width, c.Toast.Height)
	lay.SnackbarSize = image.Pt(c.Snackbar.Width, c.Snackbar.Height)
	lay.ActionWidth = c.Snackbar.ActionWidth

	return overlay.Options{
		Layout:  lay,
		Radius:  c.Radius(),
		Shadow:  c.ShadowSettings(p),
		Palette: p,
	}
}

// DurationFor returns d, or the configured default for kind when d is not positive.
func (c *DaemonConfig) DurationFor(kind overlay.Kind, d time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	if kind == overlay.Snackbar {
		return c.Snackbar.Duration.Duration()
	}
	return c.Toast.Duration.Duration()
}

// GetSoundForSeverity returns the sound file path for a surface.
// Expands ~ to home directory.
func (c *DaemonConfig) GetSoundForSeverity(kind overlay.Kind, severity overlay.Severity) string {
	var path string
	if kind == overlay.Snackbar {
		path = c.Audio.Sounds.Snackbar
	} else {
		switch severity {
		case overlay.Success:
			path = c.Audio.Sounds.Success
		case overlay.Warning:
			path = c.Audio.Sounds.Warning
		case overlay.Error:
			path = c.Audio.Sounds.Error
		default:
			path = c.Audio.Sounds.Info
		}
	}
	return expandPath(path)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
