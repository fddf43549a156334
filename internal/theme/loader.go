package theme

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Colour scheme preferences accepted by ResolveName.
const (
	SchemeSystem = "system"
	SchemeLight  = "light"
	SchemeDark   = "dark"
)

// ResolveName maps a configured theme name and colour scheme to the theme to
// load. Only the default theme follows the scheme; named themes are kept.
func ResolveName(name, scheme string, systemDark bool) string {
	if name != "" && name != DefaultThemeName {
		return name
	}
	switch scheme {
	case SchemeDark:
		return DarkThemeName
	case SchemeSystem:
		if systemDark {
			return DarkThemeName
		}
	}
	return DefaultThemeName
}

// Loader resolves themes by name and keeps the current palette, optionally
// hot-reloading it when the user file changes.
type Loader struct {
	mu          sync.RWMutex
	logger      *slog.Logger
	themesDir   string
	currentName string
	theme       *Theme
	watcher     *Watcher
	onChange    func(*Palette)
}

// NewLoader creates a loader reading user themes from themesDir.
// An empty themesDir restricts the loader to bundled themes.
func NewLoader(themesDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:    logger,
		themesDir: themesDir,
	}
}

// ThemesDir returns the path to the user's themes directory.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "matkit", "themes"), nil
}

// SetChangeCallback sets the callback invoked whenever the active palette
// changes, either through LoadTheme or a hot reload.
func (l *Loader) SetChangeCallback(callback func(*Palette)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = callback
}

// LoadTheme loads a theme by name.
// Theme resolution order:
//  1. User themes directory (~/.config/matkit/themes/<name>.yaml)
//  2. Bundled themes
//  3. The bundled default theme
//
// LoadTheme never fails; problems are logged and the next source is tried.
func (l *Loader) LoadTheme(name string) *Palette {
	if name == "" {
		name = DefaultThemeName
	}

	theme := l.resolve(name)

	l.mu.Lock()
	l.theme = theme
	l.currentName = theme.Name
	callback := l.onChange
	l.mu.Unlock()

	if callback != nil {
		callback(theme.Palette)
	}
	return theme.Palette
}

func (l *Loader) resolve(name string) *Theme {
	if l.themesDir != "" {
		path := filepath.Join(l.themesDir, name+themeExt)
		if _, err := os.Stat(path); err == nil {
			theme, err := NewTheme(name, path)
			if err == nil {
				l.logger.Info("loaded user theme", "name", name, "path", path)
				return theme
			}
			l.logger.Warn("failed to load user theme, trying bundled", "theme", name, "error", err)
		}
	}

	if theme, err := NewBundledTheme(name); err == nil {
		l.logger.Info("loaded bundled theme", "name", name)
		return theme
	}

	l.logger.Warn("theme not found, using default", "theme", name)
	return &Theme{Name: DefaultThemeName, Palette: Default(), IsBundled: true}
}

// Palette returns the current palette, loading the default theme if nothing
// has been loaded yet.
func (l *Loader) Palette() *Palette {
	l.mu.RLock()
	theme := l.theme
	l.mu.RUnlock()

	if theme == nil {
		return l.LoadTheme(DefaultThemeName)
	}
	return theme.Palette
}

// CurrentTheme returns the name of the currently loaded theme.
func (l *Loader) CurrentTheme() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.currentName
}

// StartHotReload starts watching the current theme for changes.
// Bundled themes are not watched.
func (l *Loader) StartHotReload() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher != nil {
		if err := l.watcher.Stop(); err != nil {
			l.logger.Debug("failed to stop previous theme watcher", "error", err)
		}
		l.watcher = nil
	}

	if l.theme == nil || l.theme.IsBundled {
		l.logger.Debug("not starting hot-reload for bundled theme")
		return nil
	}

	w, err := NewWatcher(l.theme, l.logger)
	if err != nil {
		return err
	}
	w.SetChangeCallback(func(p *Palette) {
		l.mu.RLock()
		callback := l.onChange
		l.mu.RUnlock()
		l.logger.Info("hot-reloaded theme", "name", p.Name)
		if callback != nil {
			callback(p)
		}
	})
	if err := w.Start(); err != nil {
		_ = w.Stop()
		return err
	}
	l.watcher = w
	return nil
}

// StopHotReload stops watching the theme for changes.
func (l *Loader) StopHotReload() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher != nil {
		_ = l.watcher.Stop()
		l.watcher = nil
	}
}

// ListThemes returns available themes, bundled first, with user overrides
// replacing bundled entries of the same name.
func (l *Loader) ListThemes() []ThemeInfo {
	themes, err := ListAvailableThemes(l.themesDir)
	if err != nil {
		l.logger.Debug("failed to read themes directory", "error", err)
	}
	return themes
}
