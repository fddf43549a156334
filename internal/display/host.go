package display

import (
	"errors"
	"image"
	"log/slog"
	"sync"
	"unsafe"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/matkit/internal/overlay"
)

// ErrNoDisplay is returned when GDK has no default display.
var ErrNoDisplay = errors.New("no display available")

// ErrNoMonitor is returned when the display reports no monitors.
var ErrNoMonitor = errors.New("no monitor available")

// Handler receives user input from overlay windows. *overlay.Manager
// implements it.
type Handler interface {
	Click(id string) bool
	InvokeAction(id string) bool
}

// overlayCSS clears the window background so only the painted shadow and
// body are visible, and flattens the action button.
const overlayCSS = `
window.matkit-overlay {
	background: transparent;
	box-shadow: none;
}
button.matkit-action {
	background: transparent;
	border: none;
	box-shadow: none;
	padding: 0;
	min-height: 0;
}
`

// Host is an overlay.Host that shows each surface in its own layer-shell
// window. All methods must be called on the GTK main loop.
type Host struct {
	app    *gtk.Application
	logger *slog.Logger

	mu      sync.RWMutex
	monitor int
	handler Handler

	cssOnce sync.Once
}

var _ overlay.Host = (*Host)(nil)

// NewHost creates a host for app. monitor is 1-indexed; 0 selects the
// first monitor.
func NewHost(app *gtk.Application, monitor int, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	return &Host{
		app:     app,
		monitor: monitor,
		logger:  logger,
	}
}

// SetHandler sets where clicks and action presses are delivered.
func (h *Host) SetHandler(handler Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handler = handler
}

// SetMonitor changes the monitor new overlays are placed on.
func (h *Host) SetMonitor(monitor int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.monitor = monitor
}

func (h *Host) currentHandler() Handler {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.handler
}

// WorkArea implements overlay.Host. GTK4 does not expose panel struts, so
// this is the full geometry of the selected monitor.
func (h *Host) WorkArea() (image.Rectangle, error) {
	mon, err := h.selectMonitor()
	if err != nil {
		return image.Rectangle{}, &overlay.HostError{Op: "work area", Cause: err}
	}
	return monitorRect(mon), nil
}

// Open implements overlay.Host.
func (h *Host) Open(s *overlay.Surface) (overlay.Window, error) {
	mon, err := h.selectMonitor()
	if err != nil {
		return nil, &overlay.HostError{Op: "open window", Cause: err}
	}
	h.cssOnce.Do(h.installCSS)

	w := newWindow(h.app, s, mon, monitorRect(mon).Min, h.currentHandler, h.logger)
	return w, nil
}

func (h *Host) installCSS() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		h.logger.Warn("no display available, overlay windows will be opaque")
		return
	}
	provider := gtk.NewCSSProvider()
	provider.LoadFromString(overlayCSS)
	gtk.StyleContextAddProviderForDisplay(
		display,
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}

// selectMonitor returns the configured monitor, falling back to the first
// one when the configured index is out of range.
func (h *Host) selectMonitor() (*gdk.Monitor, error) {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return nil, ErrNoDisplay
	}

	monitors := display.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		return nil, ErrNoMonitor
	}

	h.mu.RLock()
	n := h.monitor
	h.mu.RUnlock()

	index := uint(0)
	if n > 0 {
		index = uint(n - 1)
	}
	if index >= monitors.NItems() {
		h.logger.Warn("configured monitor not available, using first",
			"configured", n,
			"available", monitors.NItems(),
		)
		index = 0
	}

	obj := monitors.Item(index)
	if obj == nil {
		return nil, ErrNoMonitor
	}
	return wrapMonitor(obj), nil
}

func monitorRect(mon *gdk.Monitor) image.Rectangle {
	g := mon.Geometry()
	return image.Rect(g.X(), g.Y(), g.X()+g.Width(), g.Y()+g.Height())
}

// wrapMonitor wraps a list item as a gdk.Monitor. gotk4 does not export its
// own wrapper; gdk.Monitor is a struct embedding *glib.Object.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}
