package daemon

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/matkit/internal/config"
	"github.com/jmylchreest/matkit/internal/overlay"
	"github.com/jmylchreest/matkit/internal/theme"
)

// stillTimer never fires.
type stillTimer struct{}

func (stillTimer) Stop() bool { return true }

type stillScheduler struct{}

func (stillScheduler) AfterFunc(time.Duration, func()) overlay.Timer { return stillTimer{} }

func newTestDaemon(t *testing.T, cfg *config.DaemonConfig) *Daemon {
	t.Helper()
	loader := theme.NewLoader(t.TempDir(), nil)
	d := New(cfg, nil, stillScheduler{}, loader, nil)
	t.Cleanup(d.Stop)
	return d
}

func TestDaemon_ShowAppliesConfigDefaults(t *testing.T) {
	cfg := config.DefaultDaemonConfig()
	cfg.Toast.Duration = config.Duration(2 * time.Second)
	cfg.Snackbar.Duration = config.Duration(6 * time.Second)
	cfg.Snackbar.Placement = overlay.TopLeft
	d := newTestDaemon(t, cfg)

	toastID := d.Show(overlay.Request{Kind: overlay.Toast, Message: "saved"})
	toast, ok := d.Manager().Get(toastID)
	require.True(t, ok)
	assert.Equal(t, 2*time.Second, toast.Duration)
	assert.Equal(t, overlay.TopRight, toast.Placement)

	snackID := d.Show(overlay.Request{Kind: overlay.Snackbar, Message: "deleted", ActionLabel: "UNDO"})
	snack, ok := d.Manager().Get(snackID)
	require.True(t, ok)
	assert.Equal(t, 6*time.Second, snack.Duration)
	assert.Equal(t, overlay.TopLeft, snack.Placement)

	explicit := d.Show(overlay.Request{Kind: overlay.Snackbar, Message: "x", Duration: 1500 * time.Millisecond, Placement: overlay.BottomRight})
	s, ok := d.Manager().Get(explicit)
	require.True(t, ok)
	assert.Equal(t, 1500*time.Millisecond, s.Duration)
	assert.Equal(t, overlay.BottomRight, s.Placement)
}

func TestDaemon_DismissAndCloseAll(t *testing.T) {
	d := newTestDaemon(t, nil)

	a := d.Show(overlay.Request{Kind: overlay.Toast, Message: "a"})
	d.Show(overlay.Request{Kind: overlay.Toast, Message: "b"})
	require.Len(t, d.Active(), 2)

	assert.True(t, d.Dismiss(a))
	assert.False(t, d.Dismiss(a))
	assert.Len(t, d.Active(), 1)

	d.CloseAll()
	assert.Empty(t, d.Active())
}

func TestDaemon_SystemDarkSelectsDarkTheme(t *testing.T) {
	d := newTestDaemon(t, nil)
	assert.Equal(t, theme.DefaultThemeName, d.Themes().CurrentTheme())

	d.SetSystemDark(func() bool { return true })
	d.ReloadTheme()

	assert.Equal(t, theme.DarkThemeName, d.Themes().CurrentTheme())
	assert.Equal(t, "dark", d.Manager().Options().Palette.Name)
}

func TestDaemon_ApplyConfigSwitchesTheme(t *testing.T) {
	d := newTestDaemon(t, nil)
	d.Notifier().SetEnabled(false)

	id := d.Show(overlay.Request{Kind: overlay.Toast, Severity: overlay.Error, Message: "boom"})
	before, _ := d.Manager().Get(id)
	beforeStyle := before.Style()

	cfg := config.DefaultDaemonConfig()
	cfg.Theme.Name = "catppuccin"
	cfg.Corners.TopLeft = 12
	d.ApplyConfig(cfg)

	assert.Same(t, cfg, d.Config())
	assert.Equal(t, "catppuccin", d.Themes().CurrentTheme())
	assert.Equal(t, 12.0, d.Manager().Options().Radius.TopLeft)

	after, _ := d.Manager().Get(id)
	assert.NotEqual(t, beforeStyle.Background, after.Style().Background, "live surfaces are restyled")
}

func TestDaemon_ApplyConfigAnnounces(t *testing.T) {
	d := newTestDaemon(t, nil)

	cfg := config.DefaultDaemonConfig()
	cfg.Theme.ColorScheme = "dark"
	d.ApplyConfig(cfg)

	// Theme and config notices.
	assert.Equal(t, 2, d.Manager().Count())
	for _, s := range d.Active() {
		assert.Equal(t, overlay.Toast, s.Kind)
	}

	d.HandleConfigError(errors.New("bad placement"))
	assert.Equal(t, 3, d.Manager().Count())
}

func TestDaemon_DispatcherReceivesPaletteChanges(t *testing.T) {
	d := newTestDaemon(t, nil)

	var mu sync.Mutex
	dispatched := 0
	d.SetDispatcher(func(fn func()) {
		mu.Lock()
		dispatched++
		mu.Unlock()
		fn()
	})

	d.Themes().LoadTheme(theme.DarkThemeName)

	mu.Lock()
	assert.Equal(t, 1, dispatched)
	mu.Unlock()
	assert.Equal(t, "dark", d.Manager().Options().Palette.Name)
}

func TestConfigWatcher_ReloadsValidChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matkitd.toml")
	require.NoError(t, os.WriteFile(path, []byte("[toast]\nduration = \"2s\"\n"), 0644))

	w, err := NewConfigWatcher(path, nil)
	require.NoError(t, err)
	w.SetPollInterval(10 * time.Millisecond)

	var mu sync.Mutex
	var reloaded *config.DaemonConfig
	var failures []error
	w.SetReloadCallback(func(cfg *config.DaemonConfig) {
		mu.Lock()
		reloaded = cfg
		mu.Unlock()
	})
	w.SetErrorCallback(func(err error) {
		mu.Lock()
		failures = append(failures, err)
		mu.Unlock()
	})

	initial := config.DefaultDaemonConfig()
	require.NoError(t, w.Start(t.Context(), initial))
	t.Cleanup(w.Stop)
	assert.True(t, w.IsRunning())
	assert.Same(t, initial, w.GetCurrentConfig())

	touch := func(content string, at time.Time) {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		require.NoError(t, os.Chtimes(path, at, at))
	}

	touch("[toast]\nduration = \"7s\"\n", time.Now().Add(time.Hour))
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return reloaded != nil && reloaded.Toast.Duration.Duration() == 7*time.Second
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 7*time.Second, w.GetCurrentConfig().Toast.Duration.Duration())

	touch("[snackbar]\nplacement = \"middle\"\n", time.Now().Add(2*time.Hour))
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(failures) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 7*time.Second, w.GetCurrentConfig().Toast.Duration.Duration(), "invalid file keeps previous config")

	w.Stop()
	assert.False(t, w.IsRunning())
}

func TestInternalNotifier_RateLimits(t *testing.T) {
	var shown []overlay.Request
	n := NewInternalNotifier(nil)
	assert.Empty(t, n.Notify("k", "no handler", overlay.Info))

	n.SetNotifyHandler(func(req overlay.Request) string {
		shown = append(shown, req)
		return "id"
	})
	n.SetMinInterval(time.Hour)

	assert.Equal(t, "id", n.Notify("k", "first", overlay.Info))
	assert.Empty(t, n.Notify("k", "second", overlay.Info))
	assert.Equal(t, "id", n.Notify("other", "third", overlay.Warning))

	n.SetEnabled(false)
	assert.Empty(t, n.Notify("new", "fourth", overlay.Info))

	require.Len(t, shown, 2)
	assert.Equal(t, "first", shown[0].Message)
	assert.Equal(t, overlay.Toast, shown[0].Kind)
	assert.Equal(t, noticeDuration, shown[0].Duration)
	assert.Equal(t, overlay.Warning, shown[1].Severity)
}
