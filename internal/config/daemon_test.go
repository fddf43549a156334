package config

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/matkit/internal/overlay"
	"github.com/jmylchreest/matkit/internal/paint"
	"github.com/jmylchreest/matkit/internal/theme"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "5s", want: 5 * time.Second},
		{in: "1m30s", want: 90 * time.Second},
		{in: "1500", want: 1500 * time.Millisecond},
		{in: "0", want: 0},
		{in: "soon", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}

	text, err := Duration(2 * time.Second).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2s", string(text))
}

func TestDefaultDaemonConfig(t *testing.T) {
	cfg := DefaultDaemonConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, overlay.DefaultToastDuration, cfg.Toast.Duration.Duration())
	assert.Equal(t, overlay.BottomCenter, cfg.Snackbar.Placement)
	assert.Equal(t, paint.ShadowLayered, cfg.Shadow.Kind)
	assert.Equal(t, "default", cfg.Theme.Name)
	assert.Equal(t, "system", cfg.Theme.ColorScheme)
	assert.False(t, cfg.Audio.Enabled)
}

func TestParseDaemonConfig(t *testing.T) {
	cfg, err := ParseDaemonConfig([]byte(`
[toast]
duration = "2s"
width = 400
height = 60

[snackbar]
placement = "top-left"
duration = 6000

[shadow]
kind = "solid"
blur = 4
offset_x = 2
offset_y = -3
spread = 1
opacity = 0.5

[corners]
top_left = 12
bottom_right = 0

[theme]
name = "catppuccin"
color_scheme = "dark"
`))
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Toast.Duration.Duration())
	assert.Equal(t, 400, cfg.Toast.Width)
	assert.Equal(t, overlay.TopLeft, cfg.Snackbar.Placement)
	assert.Equal(t, 6*time.Second, cfg.Snackbar.Duration.Duration())
	assert.Equal(t, paint.ShadowSolid, cfg.Shadow.Kind)
	assert.Equal(t, paint.CornerRadius{TopLeft: 12, TopRight: 4, BottomRight: 0, BottomLeft: 4}, cfg.Radius())
	assert.Equal(t, "catppuccin", cfg.Theme.Name)

	pad := paint.ComputePadding(cfg.ShadowSettings(nil))
	assert.Equal(t, paint.Padding{Left: 9, Top: 10, Right: 9, Bottom: 10}, pad)
}

func TestParseDaemonConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"placement":    "[snackbar]\nplacement = \"middle\"",
		"shadow kind":  "[shadow]\nkind = \"fuzzy\"",
		"opacity":      "[shadow]\nopacity = 2.0",
		"blur":         "[shadow]\nblur = -1.0",
		"width":        "[toast]\nwidth = 10",
		"action width": "[snackbar]\naction_width = 900",
		"radius":       "[corners]\ntop_left = -4.0",
		"scheme":       "[theme]\ncolor_scheme = \"sepia\"",
		"volume":       "[audio]\nvolume = 101",
		"monitor":      "[display]\nmonitor = -1",
		"syntax":       "[toast",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDaemonConfig([]byte(content))
			assert.Error(t, err)
		})
	}
}

func TestLoadDaemonConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadDaemonConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultDaemonConfig(), cfg)
}

func TestSaveDaemonConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matkit", "matkitd.toml")

	cfg := DefaultDaemonConfig()
	cfg.Snackbar.Placement = overlay.TopRight
	cfg.Shadow.Kind = paint.ShadowNone
	cfg.Toast.Duration = Duration(1500 * time.Millisecond)
	require.NoError(t, SaveDaemonConfig(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadDaemonConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestShadowSettings_ScalesPaletteAlpha(t *testing.T) {
	cfg := DefaultDaemonConfig()
	cfg.Shadow.Opacity = 0.5

	p := theme.Default()
	s := cfg.ShadowSettings(p)
	assert.Equal(t, uint8(128), s.Color.A)
	assert.Equal(t, p.Shadow.R, s.Color.R)
}

func TestOverlayOptions(t *testing.T) {
	cfg := DefaultDaemonConfig()
	cfg.Toast.Width, cfg.Toast.Height = 400, 60
	cfg.Snackbar.ActionWidth = 120

	p := theme.Default()
	opts := cfg.OverlayOptions(p)
	assert.Equal(t, image.Pt(400, 60), opts.Layout.ToastSize)
	assert.Equal(t, 120, opts.Layout.ActionWidth)
	assert.Equal(t, paint.Uniform(4), opts.Radius)
	assert.Same(t, p, opts.Palette)
}

func TestDurationFor(t *testing.T) {
	cfg := DefaultDaemonConfig()
	assert.Equal(t, 250*time.Millisecond, cfg.DurationFor(overlay.Toast, 250*time.Millisecond))
	assert.Equal(t, cfg.Toast.Duration.Duration(), cfg.DurationFor(overlay.Toast, 0))
	assert.Equal(t, cfg.Snackbar.Duration.Duration(), cfg.DurationFor(overlay.Snackbar, -1))
}

func TestGetSoundForSeverity(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := DefaultDaemonConfig()
	cfg.Audio.Sounds = SoundConfig{
		Info:     "/s/info.wav",
		Error:    "~/sounds/error.wav",
		Snackbar: "/s/snack.wav",
	}

	assert.Equal(t, "/s/info.wav", cfg.GetSoundForSeverity(overlay.Toast, overlay.Info))
	assert.Equal(t, filepath.Join(home, "sounds/error.wav"), cfg.GetSoundForSeverity(overlay.Toast, overlay.Error))
	assert.Equal(t, "/s/snack.wav", cfg.GetSoundForSeverity(overlay.Snackbar, overlay.Error))
	assert.Empty(t, cfg.GetSoundForSeverity(overlay.Toast, overlay.Warning))
}
