package tui

import (
	"errors"
	"image"
	"sync"

	"github.com/jmylchreest/matkit/internal/overlay"
)

// ErrNoTerminalSize is returned before the first window size is known.
var ErrNoTerminalSize = errors.New("terminal size unknown")

// Host is an overlay.Host drawing into the terminal. Each cell stands for a
// fixed block of pixels so overlay geometry maps onto rows and columns.
type Host struct {
	mu      sync.Mutex
	cell    image.Point
	area    image.Rectangle
	windows []*termWindow
}

var _ overlay.Host = (*Host)(nil)

// NewHost creates a host with the given cell size in pixels.
func NewHost(cellWidth, cellHeight int) *Host {
	return &Host{cell: image.Pt(max(1, cellWidth), max(1, cellHeight))}
}

// Cell returns the pixel size of one terminal cell.
func (h *Host) Cell() image.Point {
	return h.cell
}

// Resize sets the overlay area in cells.
func (h *Host) Resize(cols, rows int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.area = image.Rect(0, 0, max(0, cols)*h.cell.X, max(0, rows)*h.cell.Y)
}

// WorkArea implements overlay.Host.
func (h *Host) WorkArea() (image.Rectangle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.area.Empty() {
		return image.Rectangle{}, &overlay.HostError{Op: "work area", Cause: ErrNoTerminalSize}
	}
	return h.area, nil
}

// Open implements overlay.Host.
func (h *Host) Open(s *overlay.Surface) (overlay.Window, error) {
	w := &termWindow{host: h, surface: s}
	h.mu.Lock()
	h.windows = append(h.windows, w)
	h.mu.Unlock()
	return w, nil
}

// Visible returns the presented surfaces in the order they were opened.
func (h *Host) Visible() []*overlay.Surface {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*overlay.Surface, 0, len(h.windows))
	for _, w := range h.windows {
		if w.visible {
			out = append(out, w.surface)
		}
	}
	return out
}

// Windows returns the number of open windows, shown or not.
func (h *Host) Windows() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.windows)
}

func (h *Host) remove(w *termWindow) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, other := range h.windows {
		if other == w {
			h.windows = append(h.windows[:i], h.windows[i+1:]...)
			return
		}
	}
}

// termWindow is a surface's slot in the terminal composition.
type termWindow struct {
	host    *Host
	surface *overlay.Surface
	visible bool
}

func (w *termWindow) Present() {
	w.host.mu.Lock()
	w.visible = true
	w.host.mu.Unlock()
}

func (w *termWindow) Hide() {
	w.host.mu.Lock()
	w.visible = false
	w.host.mu.Unlock()
}

func (w *termWindow) Destroy() {
	w.host.remove(w)
}

// Invalidate is a no-op: every frame reads the surface's current style.
func (w *termWindow) Invalidate() {}
