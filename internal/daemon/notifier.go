package daemon

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jmylchreest/matkit/internal/overlay"
)

// noticeDuration is how long internal toasts stay up.
const noticeDuration = 5 * time.Second

// InternalNotifier shows toasts about matkitd's own events.
// It rate-limits by key so a flapping config file cannot flood the screen.
type InternalNotifier struct {
	mu     sync.Mutex
	logger *slog.Logger

	notifyHandler func(req overlay.Request) string

	lastNotifyTime map[string]time.Time
	minInterval    time.Duration

	enabled bool
}

// NewInternalNotifier creates a new InternalNotifier.
func NewInternalNotifier(logger *slog.Logger) *InternalNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &InternalNotifier{
		logger:         logger,
		lastNotifyTime: make(map[string]time.Time),
		minInterval:    5 * time.Second,
		enabled:        true,
	}
}

// SetNotifyHandler sets the function that shows a request.
func (n *InternalNotifier) SetNotifyHandler(handler func(req overlay.Request) string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifyHandler = handler
}

// SetEnabled enables or disables internal notifications.
func (n *InternalNotifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// SetMinInterval sets the minimum interval between notifications with the same key.
func (n *InternalNotifier) SetMinInterval(interval time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.minInterval = interval
}

// Notify shows a toast unless disabled or rate-limited. It returns the
// surface id, or "" when nothing was shown.
func (n *InternalNotifier) Notify(key, message string, severity overlay.Severity) string {
	n.mu.Lock()
	if !n.enabled {
		n.mu.Unlock()
		return ""
	}
	handler := n.notifyHandler
	if handler == nil {
		n.mu.Unlock()
		n.logger.Debug("internal notification skipped: no handler", "message", message)
		return ""
	}
	if lastTime, ok := n.lastNotifyTime[key]; ok && time.Since(lastTime) < n.minInterval {
		n.mu.Unlock()
		n.logger.Debug("internal notification rate-limited", "key", key)
		return ""
	}
	n.lastNotifyTime[key] = time.Now()
	n.mu.Unlock()

	n.logger.Debug("sending internal notification", "key", key, "severity", severity)

	// The handler may re-enter the manager, so it runs unlocked.
	return handler(overlay.Request{
		Kind:     overlay.Toast,
		Severity: severity,
		Message:  message,
		Duration: noticeDuration,
	})
}

// NotifyConfigReloaded reports a successful config reload.
func (n *InternalNotifier) NotifyConfigReloaded() {
	n.Notify("config-reload", "Configuration reloaded", overlay.Success)
}

// NotifyConfigError reports a rejected config file.
func (n *InternalNotifier) NotifyConfigError(err error) {
	n.Notify("config-error", "Configuration error: "+err.Error(), overlay.Error)
}

// NotifyThemeReloaded reports a theme change.
func (n *InternalNotifier) NotifyThemeReloaded(themeName string) {
	n.Notify("theme-reload", "Theme '"+themeName+"' loaded", overlay.Info)
}

// NotifyThemeError reports a theme that could not be watched or loaded.
func (n *InternalNotifier) NotifyThemeError(err error) {
	n.Notify("theme-error", "Theme error: "+err.Error(), overlay.Warning)
}

// NotifyStartup announces the daemon.
func (n *InternalNotifier) NotifyStartup(version string) {
	n.Notify("startup", "matkitd "+version+" is running", overlay.Info)
}

// NotifyAudioError reports a sound that failed to play.
func (n *InternalNotifier) NotifyAudioError(err error) {
	n.Notify("audio-error", "Sound error: "+err.Error(), overlay.Warning)
}
