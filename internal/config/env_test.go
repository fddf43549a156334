package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/matkit/internal/overlay"
	"github.com/jmylchreest/matkit/internal/paint"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultDaemonConfig()
	err := cfg.applyEnv(mapLookup(map[string]string{
		EnvTheme:             "catppuccin",
		EnvColorScheme:       "DARK",
		EnvToastDuration:     "1500",
		EnvSnackbarDuration:  "8s",
		EnvSnackbarPlacement: "top-right",
		EnvShadow:            "solid",
		EnvAudio:             "true",
		EnvVolume:            "40",
	}))
	require.NoError(t, err)

	assert.Equal(t, "catppuccin", cfg.Theme.Name)
	assert.Equal(t, "dark", cfg.Theme.ColorScheme)
	assert.Equal(t, 1500*time.Millisecond, cfg.Toast.Duration.Duration())
	assert.Equal(t, 8*time.Second, cfg.Snackbar.Duration.Duration())
	assert.Equal(t, overlay.TopRight, cfg.Snackbar.Placement)
	assert.Equal(t, paint.ShadowSolid, cfg.Shadow.Kind)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 40, cfg.Audio.Volume)
}

func TestApplyEnv_BlankValuesIgnored(t *testing.T) {
	cfg := DefaultDaemonConfig()
	require.NoError(t, cfg.applyEnv(mapLookup(map[string]string{EnvTheme: "  "})))
	assert.Equal(t, DefaultDaemonConfig(), cfg)
}

func TestApplyEnv_Invalid(t *testing.T) {
	tests := map[string]string{
		EnvToastDuration:     "later",
		EnvSnackbarPlacement: "left",
		EnvShadow:            "blurry",
		EnvAudio:             "sometimes",
		EnvVolume:            "loud",
		EnvColorScheme:       "sepia",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			cfg := DefaultDaemonConfig()
			err := cfg.applyEnv(mapLookup(map[string]string{key: value}))
			assert.Error(t, err)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("MATKIT_TEST_THEME=dark\nMATKIT_TEST_KEEP=file\n"), 0644))

	t.Setenv("MATKIT_TEST_KEEP", "process")
	// Registered so the variable is removed again after the test.
	t.Setenv("MATKIT_TEST_THEME", "")
	require.NoError(t, os.Unsetenv("MATKIT_TEST_THEME"))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "dark", os.Getenv("MATKIT_TEST_THEME"))
	assert.Equal(t, "process", os.Getenv("MATKIT_TEST_KEEP"), "existing variables win")

	assert.NoError(t, LoadEnvFile(filepath.Join(dir, "missing.env")))
	assert.NoError(t, LoadEnvFile(""))
}

func TestEnvFilePath(t *testing.T) {
	t.Setenv(EnvFileVar, "/etc/matkit.env")
	assert.Equal(t, "/etc/matkit.env", EnvFilePath())

	t.Setenv(EnvFileVar, "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/matkit/.env", EnvFilePath())
}
