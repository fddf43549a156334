package theme

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a user theme file and reloads it when it is written.
type Watcher struct {
	mu     sync.Mutex
	logger *slog.Logger

	watcher *fsnotify.Watcher
	theme   *Theme

	onChange func(*Palette)

	done    chan struct{}
	running bool
}

// NewWatcher creates a watcher for theme. Bundled themes are accepted but
// never produce change events.
func NewWatcher(theme *Theme, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		logger:  logger,
		watcher: fw,
		theme:   theme,
		done:    make(chan struct{}),
	}, nil
}

// SetChangeCallback sets the callback invoked with the reloaded palette.
func (w *Watcher) SetChangeCallback(callback func(*Palette)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = callback
}

// Start begins watching. The containing directory is watched since editors
// often replace files rather than writing them in place.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}
	if w.theme == nil || w.theme.IsBundled {
		w.logger.Debug("not watching bundled theme")
		return nil
	}

	if err := w.watcher.Add(filepath.Dir(w.theme.Path)); err != nil {
		return err
	}
	w.running = true

	go w.watch()
	w.logger.Debug("theme watcher started", "path", w.theme.Path)
	return nil
}

func (w *Watcher) watch() {
	filename := filepath.Base(w.theme.Path)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("theme watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	w.mu.Lock()
	theme := w.theme
	callback := w.onChange
	w.mu.Unlock()

	changed, err := theme.Reload()
	if err != nil {
		w.logger.Warn("failed to reload theme", "path", theme.Path, "error", err)
		return
	}
	if !changed {
		return
	}

	w.logger.Info("theme file changed, reloaded", "path", theme.Path)
	if callback != nil {
		callback(theme.Palette)
	}
}

// Stop stops the watcher and releases the underlying inotify handle.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		w.running = false
		close(w.done)
	}
	return w.watcher.Close()
}

// IsRunning returns whether the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
