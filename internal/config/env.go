package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/jmylchreest/matkit/internal/overlay"
	"github.com/jmylchreest/matkit/internal/paint"
)

// EnvFileVar names an alternative .env file.
const EnvFileVar = "MATKIT_ENV_FILE"

// Environment variables that override daemon settings.
const (
	EnvTheme             = "MATKIT_THEME"
	EnvColorScheme       = "MATKIT_COLOR_SCHEME"
	EnvToastDuration     = "MATKIT_TOAST_DURATION"
	EnvSnackbarDuration  = "MATKIT_SNACKBAR_DURATION"
	EnvSnackbarPlacement = "MATKIT_SNACKBAR_PLACEMENT"
	EnvShadow            = "MATKIT_SHADOW"
	EnvAudio             = "MATKIT_AUDIO"
	EnvVolume            = "MATKIT_VOLUME"
)

// EnvFilePath returns the .env file to load: $MATKIT_ENV_FILE if set,
// otherwise .env in the matkit config directory.
func EnvFilePath() string {
	if p := strings.TrimSpace(os.Getenv(EnvFileVar)); p != "" {
		return p
	}
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, ".env")
}

// LoadEnvFile loads variables from path into the process environment.
// Variables already set are not overwritten. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from MATKIT_* environment variables and
// validates the result.
func (c *DaemonConfig) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

func (c *DaemonConfig) applyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvTheme); ok {
		c.Theme.Name = v
	}
	if v, ok := get(EnvColorScheme); ok {
		c.Theme.ColorScheme = strings.ToLower(v)
	}
	if v, ok := get(EnvToastDuration); ok {
		if err := c.Toast.Duration.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s: %w", EnvToastDuration, err)
		}
	}
	if v, ok := get(EnvSnackbarDuration); ok {
		if err := c.Snackbar.Duration.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s: %w", EnvSnackbarDuration, err)
		}
	}
	if v, ok := get(EnvSnackbarPlacement); ok {
		p, err := overlay.ParsePlacement(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSnackbarPlacement, err)
		}
		c.Snackbar.Placement = p
	}
	if v, ok := get(EnvShadow); ok {
		k, err := paint.ParseShadowKind(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvShadow, err)
		}
		c.Shadow.Kind = k
	}
	if v, ok := get(EnvAudio); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAudio, err)
		}
		c.Audio.Enabled = enabled
	}
	if v, ok := get(EnvVolume); ok {
		vol, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVolume, err)
		}
		c.Audio.Volume = vol
	}

	return c.Validate()
}
