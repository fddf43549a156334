// Package render draws still previews of app chrome and overlays. It runs a
// headless overlay.Manager against an in-memory host, so surfaces are placed
// and styled exactly as the daemon would place and style them.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/matkit/internal/controls"
	"github.com/jmylchreest/matkit/internal/overlay"
	"github.com/jmylchreest/matkit/internal/paint/raster"
	"github.com/jmylchreest/matkit/internal/theme"
)

// ErrEmptyScene is returned for a zero-sized scene.
var ErrEmptyScene = errors.New("scene has no area")

// Scene describes one preview frame.
type Scene struct {
	Width  int
	Height int

	Palette *theme.Palette
	Overlay overlay.Options

	// Controls adds an app bar, bottom bar, open drawer and FAB behind the
	// overlays. Overlays are then placed inside the remaining client area.
	Controls bool
	Title    string

	Requests []overlay.Request

	// Scale resizes the final image. Zero or one keeps it as drawn.
	Scale float64
}

// Frame is a laid-out scene ready to paint.
type Frame struct {
	Bounds   image.Rectangle
	Client   image.Rectangle
	Palette  *theme.Palette
	Controls []controls.StylableControl
	Surfaces []*overlay.Surface

	labels []label
}

// label is text drawn over the filled shapes.
type label struct {
	text  string
	rect  image.Rectangle
	color color.NRGBA
	align alignment
}

type alignment int

const (
	alignStart alignment = iota
	alignCenter
)

var navItems = []string{"Inbox", "Starred", "Sent", "Drafts"}

// Layout docks the controls and shows every request on a headless manager.
func Layout(sc Scene, logger *slog.Logger) (*Frame, error) {
	if logger == nil {
		logger = slog.Default()
	}
	bounds := image.Rect(0, 0, sc.Width, sc.Height)
	if bounds.Empty() {
		return nil, ErrEmptyScene
	}

	p := sc.Palette
	if p == nil {
		p = theme.Default()
	}

	f := &Frame{Bounds: bounds, Client: bounds, Palette: p}

	if sc.Controls {
		title := sc.Title
		if title == "" {
			title = "matkit"
		}
		bar := controls.NewAppBar(title, p)
		bottom := controls.NewBottomBar([]string{"Home", "Search", "Library"}, p)
		drawer := controls.NewNavigationDrawer(navItems, p)
		drawer.Open()
		fab := controls.NewFAB("+", p)

		f.Client = controls.Dock(bounds, bar, bottom, drawer, fab)
		f.Controls = []controls.StylableControl{bar, bottom, drawer, fab}
		f.labels = append(f.labels, controlLabels(bar, bottom, drawer, fab)...)
	}

	opts := sc.Overlay
	if opts.Layout == (overlay.Layout{}) {
		opts = overlay.DefaultOptions()
	}
	opts.Palette = p

	host := &sceneHost{area: f.Client}
	mgr := overlay.NewManager(host, stillScheduler{}, opts, logger)
	for _, req := range sc.Requests {
		mgr.Show(req)
	}
	f.Surfaces = host.visible()
	for _, s := range f.Surfaces {
		for _, e := range s.Elements() {
			al := alignStart
			if e.Kind != overlay.MessageElement {
				al = alignCenter
			}
			f.labels = append(f.labels, label{
				text:  e.Text,
				rect:  e.Bounds.Add(s.WindowBounds.Min),
				color: e.Color,
				align: al,
			})
		}
	}
	return f, nil
}

func controlLabels(bar *controls.AppBar, bottom *controls.BottomBar, drawer *controls.NavigationDrawer, fab *controls.FAB) []label {
	var out []label
	out = append(out, label{text: bar.Title(), rect: bar.TitleBounds(), color: bar.Style().Foreground})
	for i, item := range bottom.Items() {
		out = append(out, label{text: item, rect: bottom.ItemBounds(i), color: bottom.Style().Foreground, align: alignCenter})
	}
	if drawer.IsOpen() {
		for i, item := range drawer.Items() {
			r := drawer.ItemBounds(i)
			r.Min.X += 16
			out = append(out, label{text: item, rect: r, color: drawer.Style().Foreground})
		}
	}
	out = append(out, label{text: fab.Icon(), rect: fab.Bounds(), color: fab.Style().Foreground, align: alignCenter})
	return out
}

// Paint draws the frame's shapes onto c. Surfaces are painted in show order
// on top of the controls.
func (f *Frame) Paint(c *raster.Canvas) {
	for _, ctl := range f.Controls {
		ctl.Paint(c)
		ctl.ClearDirty()
	}
	for _, s := range f.Surfaces {
		origin := s.WindowBounds.Min
		s.Paint(c.WithOrigin(float64(origin.X), float64(origin.Y)))
	}
}

// Image paints the frame and its text into a new image.
func (f *Frame) Image() *image.RGBA {
	c := raster.New(f.Bounds.Dx(), f.Bounds.Dy())
	c.Fill(theme.Mix(f.Palette.Surface, f.Palette.OnSurface, 0.06).NRGBA())
	f.Paint(c)
	drawLabels(c.Image(), f.labels)
	return c.Image()
}

// Render lays out and paints sc.
func Render(sc Scene, logger *slog.Logger) (image.Image, error) {
	f, err := Layout(sc, logger)
	if err != nil {
		return nil, err
	}
	return scale(f.Image(), sc.Scale), nil
}

// Save renders sc to path. The format follows the file extension.
func Save(sc Scene, path string, logger *slog.Logger) error {
	img, err := Render(sc, logger)
	if err != nil {
		return err
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func scale(img image.Image, factor float64) image.Image {
	if factor <= 0 || factor == 1 {
		return img
	}
	b := img.Bounds()
	w := max(1, int(float64(b.Dx())*factor))
	return imaging.Resize(img, w, 0, imaging.Lanczos)
}

// drawLabels writes each label with the 7x13 basic font, vertically
// centred in its rectangle and clipped to it.
func drawLabels(dst *image.RGBA, labels []label) {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	textHeight := (metrics.Ascent + metrics.Descent).Ceil()

	for _, l := range labels {
		if l.text == "" || l.rect.Empty() || l.color.A == 0 {
			continue
		}
		clip, ok := dst.SubImage(l.rect).(*image.RGBA)
		if !ok {
			continue
		}
		d := &font.Drawer{
			Dst:  clip,
			Src:  image.NewUniform(l.color),
			Face: face,
		}
		x := l.rect.Min.X
		if l.align == alignCenter {
			x += (l.rect.Dx() - d.MeasureString(l.text).Ceil()) / 2
		}
		y := l.rect.Min.Y + (l.rect.Dy()-textHeight)/2 + metrics.Ascent.Ceil()
		d.Dot = fixed.P(x, y)
		d.DrawString(l.text)
	}
}

// sceneHost is an overlay.Host backed by a fixed work area.
type sceneHost struct {
	area image.Rectangle

	mu      sync.Mutex
	windows []*sceneWindow
}

func (h *sceneHost) WorkArea() (image.Rectangle, error) {
	return h.area, nil
}

func (h *sceneHost) Open(s *overlay.Surface) (overlay.Window, error) {
	w := &sceneWindow{host: h, surface: s}
	h.mu.Lock()
	h.windows = append(h.windows, w)
	h.mu.Unlock()
	return w, nil
}

func (h *sceneHost) visible() []*overlay.Surface {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []*overlay.Surface
	for _, w := range h.windows {
		if w.shown && !w.destroyed {
			out = append(out, w.surface)
		}
	}
	return out
}

type sceneWindow struct {
	host      *sceneHost
	surface   *overlay.Surface
	shown     bool
	destroyed bool
}

func (w *sceneWindow) Present() {
	w.host.mu.Lock()
	w.shown = true
	w.host.mu.Unlock()
}

func (w *sceneWindow) Hide() {
	w.host.mu.Lock()
	w.shown = false
	w.host.mu.Unlock()
}

func (w *sceneWindow) Destroy() {
	w.host.mu.Lock()
	w.destroyed = true
	w.host.mu.Unlock()
}

func (w *sceneWindow) Invalidate() {}

// stillScheduler never fires, freezing every surface in its shown state.
type stillScheduler struct{}

func (stillScheduler) AfterFunc(time.Duration, func()) overlay.Timer { return stillTimer{} }

type stillTimer struct{}

func (stillTimer) Stop() bool { return true }
