package audio

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/jmylchreest/matkit/internal/config"
	"github.com/jmylchreest/matkit/internal/overlay"
)

// soundKey selects a sound. Snackbars share one sound regardless of severity.
type soundKey struct {
	kind     overlay.Kind
	severity overlay.Severity
}

func keyFor(kind overlay.Kind, severity overlay.Severity) soundKey {
	if kind == overlay.Snackbar {
		return soundKey{kind: overlay.Snackbar}
	}
	return soundKey{kind: overlay.Toast, severity: severity}
}

var allKeys = []soundKey{
	{kind: overlay.Toast, severity: overlay.Info},
	{kind: overlay.Toast, severity: overlay.Success},
	{kind: overlay.Toast, severity: overlay.Warning},
	{kind: overlay.Toast, severity: overlay.Error},
	{kind: overlay.Snackbar},
}

// Manager plays a sound when a surface is shown.
type Manager struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	player  Player
	watcher *Watcher
	enabled bool
	sounds  map[soundKey]string
	onError func(err error)

	// run executes playback off the caller's goroutine.
	run func(func())
}

// NewManager creates a manager backed by the system speaker.
func NewManager(cfg *config.DaemonConfig, logger *slog.Logger) *Manager {
	return newManager(cfg, NewBeepPlayer(logger), logger)
}

func newManager(cfg *config.DaemonConfig, player Player, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultDaemonConfig()
	}

	m := &Manager{
		logger:  logger,
		player:  player,
		watcher: NewWatcher(player, logger),
		sounds:  make(map[soundKey]string),
		run:     func(fn func()) { go fn() },
	}
	m.loadSoundConfig(cfg)
	return m
}

// SetErrorCallback sets the function called when playback fails.
func (m *Manager) SetErrorCallback(fn func(err error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onError = fn
}

// loadSoundConfig resolves configured sounds, skipping missing files.
func (m *Manager) loadSoundConfig(cfg *config.DaemonConfig) {
	m.player.SetVolume(float64(cfg.Audio.Volume) / 100)

	sounds := make(map[soundKey]string)
	for _, key := range allKeys {
		path := cfg.GetSoundForSeverity(key.kind, key.severity)
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			m.logger.Warn("sound file not found", "kind", key.kind, "severity", key.severity, "path", path)
			continue
		}
		sounds[key] = path
	}

	m.mu.Lock()
	m.enabled = cfg.Audio.Enabled
	m.sounds = sounds
	m.mu.Unlock()
}

// Enabled reports whether sounds are played.
func (m *Manager) Enabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled
}

// SoundFor returns the resolved sound for a surface, or "".
func (m *Manager) SoundFor(kind overlay.Kind, severity overlay.Severity) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sounds[keyFor(kind, severity)]
}

func (m *Manager) paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]bool, len(m.sounds))
	var out []string
	for _, key := range allKeys {
		if p, ok := m.sounds[key]; ok && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// preloadAndWatch decodes every configured sound and watches it for edits.
func (m *Manager) preloadAndWatch() {
	m.watcher.Reset()
	for _, path := range m.paths() {
		if err := m.player.Preload(path); err != nil {
			m.logger.Warn("failed to preload sound", "path", path, "error", err)
		}
		m.watcher.Watch(path)
	}
}

// Start preloads sounds and starts watching them for changes.
func (m *Manager) Start(ctx context.Context) {
	if m.Enabled() {
		m.preloadAndWatch()
	}
	m.watcher.Start(ctx)
	m.logger.Info("audio manager started", "enabled", m.Enabled(), "sounds", len(m.paths()))
}

// Stop stops the watcher and releases the speaker.
func (m *Manager) Stop() {
	m.watcher.Stop()
	m.player.Close()
	m.logger.Debug("audio manager stopped")
}

// HandleShown is an overlay.ShownFunc.
func (m *Manager) HandleShown(s *overlay.Surface) {
	if !m.Enabled() {
		return
	}
	path := m.SoundFor(s.Kind, s.Severity)
	if path == "" {
		return
	}
	m.run(func() {
		if err := m.player.Play(path); err != nil {
			m.reportError(err)
		}
	})
}

// PlayFile plays path regardless of configured sounds.
func (m *Manager) PlayFile(path string) error {
	if !m.Enabled() {
		return nil
	}
	return m.player.Play(path)
}

func (m *Manager) reportError(err error) {
	m.logger.Warn("failed to play sound", "error", err)
	m.mu.RLock()
	fn := m.onError
	m.mu.RUnlock()
	if fn != nil {
		fn(err)
	}
}

// UpdateConfig applies a reloaded configuration.
func (m *Manager) UpdateConfig(cfg *config.DaemonConfig) {
	m.player.ClearCache()
	m.loadSoundConfig(cfg)
	if m.Enabled() {
		m.preloadAndWatch()
	} else {
		m.watcher.Reset()
	}
	m.logger.Debug("audio config updated", "enabled", m.Enabled())
}
