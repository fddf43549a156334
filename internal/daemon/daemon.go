package daemon

import (
	"log/slog"
	"sync"

	"github.com/jmylchreest/matkit/internal/config"
	"github.com/jmylchreest/matkit/internal/overlay"
	"github.com/jmylchreest/matkit/internal/theme"
)

// Daemon couples the overlay manager to configuration and theming.
// Requests arriving over D-Bus or from internal notices go through Show so
// they pick up the configured defaults.
type Daemon struct {
	logger   *slog.Logger
	manager  *overlay.Manager
	themes   *theme.Loader
	notifier *InternalNotifier

	mu         sync.RWMutex
	cfg        *config.DaemonConfig
	dispatch   overlay.Dispatcher
	systemDark func() bool
}

// New creates a daemon around host and scheduler. host may be nil for
// headless use. A nil themes loader only serves bundled themes.
func New(cfg *config.DaemonConfig, host overlay.Host, scheduler overlay.Scheduler, themes *theme.Loader, logger *slog.Logger) *Daemon {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultDaemonConfig()
	}
	if themes == nil {
		themes = theme.NewLoader("", logger)
	}

	d := &Daemon{
		logger:     logger,
		themes:     themes,
		cfg:        cfg,
		dispatch:   func(fn func()) { fn() },
		systemDark: func() bool { return false },
	}

	palette := themes.LoadTheme(d.themeName())
	d.manager = overlay.NewManager(host, scheduler, cfg.OverlayOptions(palette), logger)

	themes.SetChangeCallback(func(p *theme.Palette) {
		d.mu.RLock()
		dispatch := d.dispatch
		d.mu.RUnlock()
		dispatch(func() { d.applyPalette(p) })
	})

	d.notifier = NewInternalNotifier(logger)
	d.notifier.SetNotifyHandler(d.Show)

	return d
}

// Manager returns the overlay manager.
func (d *Daemon) Manager() *overlay.Manager {
	return d.manager
}

// Notifier returns the internal notifier.
func (d *Daemon) Notifier() *InternalNotifier {
	return d.notifier
}

// Themes returns the theme loader.
func (d *Daemon) Themes() *theme.Loader {
	return d.themes
}

// Config returns the active configuration.
func (d *Daemon) Config() *config.DaemonConfig {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg
}

// SetDispatcher sets how palette changes reach the UI thread. The theme
// watcher fires on its own goroutine.
func (d *Daemon) SetDispatcher(dispatch overlay.Dispatcher) {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dispatch = dispatch
}

// SetSystemDark sets the probe used when the colour scheme is "system".
func (d *Daemon) SetSystemDark(fn func() bool) {
	if fn == nil {
		fn = func() bool { return false }
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.systemDark = fn
}

func (d *Daemon) themeName() string {
	d.mu.RLock()
	cfg, dark := d.cfg, d.systemDark
	d.mu.RUnlock()
	return theme.ResolveName(cfg.Theme.Name, cfg.Theme.ColorScheme, dark())
}

// ReloadTheme resolves and loads the configured theme and restarts hot
// reload when enabled.
func (d *Daemon) ReloadTheme() {
	name := d.themeName()
	d.themes.LoadTheme(name)

	if !d.Config().Theme.HotReload {
		d.themes.StopHotReload()
		return
	}
	if err := d.themes.StartHotReload(); err != nil {
		d.logger.Warn("failed to start theme hot-reload", "theme", name, "error", err)
		d.notifier.NotifyThemeError(err)
	}
}

// applyPalette rebuilds manager options so the shadow colour follows the
// palette, then restyles live surfaces.
func (d *Daemon) applyPalette(p *theme.Palette) {
	d.manager.SetOptions(d.Config().OverlayOptions(p))
	d.manager.SetPalette(p)
	d.logger.Debug("palette applied", "name", p.Name)
}

// ApplyConfig switches to a new configuration. Live surfaces keep their
// geometry; later surfaces use the new settings.
func (d *Daemon) ApplyConfig(cfg *config.DaemonConfig) {
	if cfg == nil {
		return
	}
	d.mu.Lock()
	old := d.cfg
	d.cfg = cfg
	d.mu.Unlock()

	if old.Theme != cfg.Theme {
		d.ReloadTheme()
		d.notifier.NotifyThemeReloaded(d.themes.CurrentTheme())
	} else {
		d.applyPalette(d.themes.Palette())
	}

	d.logger.Info("configuration applied")
	d.notifier.NotifyConfigReloaded()
}

// HandleConfigError reports a config file that failed to reload.
func (d *Daemon) HandleConfigError(err error) {
	d.notifier.NotifyConfigError(err)
}

// Show fills in configured defaults and shows the request.
func (d *Daemon) Show(req overlay.Request) string {
	cfg := d.Config()
	req.Duration = cfg.DurationFor(req.Kind, req.Duration)
	if req.Kind == overlay.Snackbar && req.Placement == "" {
		req.Placement = cfg.Snackbar.Placement
	}
	return d.manager.Show(req)
}

// Dismiss closes a surface on request.
func (d *Daemon) Dismiss(id string) bool {
	return d.manager.Dismiss(id, overlay.Closed)
}

// CloseAll closes every live surface.
func (d *Daemon) CloseAll() {
	d.manager.CloseAll()
}

// Active returns live surfaces in show order.
func (d *Daemon) Active() []*overlay.Surface {
	return d.manager.Active()
}

// Stop closes all surfaces and stops theme hot reload.
func (d *Daemon) Stop() {
	d.themes.StopHotReload()
	d.manager.CloseAll()
}
