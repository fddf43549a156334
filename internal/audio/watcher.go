package audio

import (
	"context"
	"log/slog"
	"maps"
	"os"
	"sync"
	"time"
)

// invalidator is told which cached sounds went stale.
type invalidator interface {
	InvalidateCache(path string)
}

// Watcher polls sound files and drops changed ones from the player cache.
type Watcher struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	cache    invalidator
	modTimes map[string]time.Time
	interval time.Duration

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher creates a watcher that invalidates entries in cache.
func NewWatcher(cache invalidator, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		logger:   logger,
		cache:    cache,
		modTimes: make(map[string]time.Time),
		interval: 2 * time.Second,
	}
}

// SetPollInterval sets how often files are checked. It takes effect on the
// next Start.
func (w *Watcher) SetPollInterval(interval time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.interval = interval
}

// Watch adds path. Missing files are watched too and picked up once created.
func (w *Watcher) Watch(path string) {
	if path == "" {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.modTimes[path] = modTime(path)
}

// Reset forgets every watched path.
func (w *Watcher) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.modTimes = make(map[string]time.Time)
}

// Paths returns the number of watched paths.
func (w *Watcher) Paths() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.modTimes)
}

// Start begins polling until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	stopCh := make(chan struct{})
	doneCh := make(chan struct{})
	w.stopCh, w.doneCh = stopCh, doneCh
	interval := w.interval
	w.mu.Unlock()

	go w.watchLoop(ctx, interval, stopCh, doneCh)
	w.logger.Debug("audio watcher started", "interval", interval)
}

// Stop stops polling and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	doneCh := w.doneCh
	w.mu.Unlock()

	<-doneCh
	w.logger.Debug("audio watcher stopped")
}

// IsRunning reports whether the poll loop is active.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

func (w *Watcher) watchLoop(ctx context.Context, interval time.Duration, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-ticker.C:
			w.checkForChanges()
		}
	}
}

// checkForChanges invalidates every path whose modification time moved
// forward.
func (w *Watcher) checkForChanges() {
	w.mu.RLock()
	paths := maps.Clone(w.modTimes)
	w.mu.RUnlock()

	for path, last := range paths {
		current := modTime(path)
		if !current.After(last) {
			continue
		}

		w.mu.Lock()
		if _, ok := w.modTimes[path]; ok {
			w.modTimes[path] = current
		}
		w.mu.Unlock()

		w.logger.Debug("sound file changed, invalidating cache", "path", path)
		if w.cache != nil {
			w.cache.InvalidateCache(path)
		}
	}
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
