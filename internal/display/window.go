package display

import (
	"fmt"
	"html"
	"image"
	"image/color"
	"log/slog"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/cairo"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/matkit/internal/overlay"
)

// window backs one surface with a layer-shell window. The drawing area paints
// the shadow and body; labels for the elements sit on top at their laid-out
// bounds.
type window struct {
	surface *overlay.Surface
	logger  *slog.Logger

	win    *gtk.Window
	area   *gtk.DrawingArea
	labels map[overlay.ElementKind]*gtk.Label

	destroyed bool
}

var _ overlay.Window = (*window)(nil)

func newWindow(app *gtk.Application, s *overlay.Surface, mon *gdk.Monitor, origin image.Point, handler func() Handler, logger *slog.Logger) *window {
	w := &window{
		surface: s,
		logger:  logger,
		labels:  make(map[overlay.ElementKind]*gtk.Label),
	}

	size := s.WindowBounds.Size()

	w.win = gtk.NewWindow()
	w.win.SetApplication(app)
	w.win.SetDecorated(false)
	w.win.SetResizable(false)
	w.win.SetDefaultSize(size.X, size.Y)
	w.win.AddCSSClass("matkit-overlay")

	layershell.InitForWindow(w.win)
	layershell.SetLayer(w.win, layershell.LayerShellLayerOverlay)
	layershell.SetExclusiveZone(w.win, 0)
	layershell.SetKeyboardMode(w.win, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(w.win, "matkit-"+s.Kind.String())
	layershell.SetMonitor(w.win, mon)

	// Screen coordinates become margins from the monitor's top-left corner.
	layershell.SetAnchor(w.win, layershell.LayerShellEdgeTop, true)
	layershell.SetAnchor(w.win, layershell.LayerShellEdgeLeft, true)
	layershell.SetMargin(w.win, layershell.LayerShellEdgeTop, s.WindowBounds.Min.Y-origin.Y)
	layershell.SetMargin(w.win, layershell.LayerShellEdgeLeft, s.WindowBounds.Min.X-origin.X)

	fixed := gtk.NewFixed()

	w.area = gtk.NewDrawingArea()
	w.area.SetContentWidth(size.X)
	w.area.SetContentHeight(size.Y)
	w.area.SetDrawFunc(func(_ *gtk.DrawingArea, cr *cairo.Context, _, _ int) {
		w.surface.Paint(newCairoCanvas(cr))
	})
	fixed.Put(w.area, 0, 0)

	for _, e := range s.Elements() {
		label := gtk.NewLabel("")
		label.SetSizeRequest(e.Bounds.Dx(), e.Bounds.Dy())
		label.SetEllipsize(3) // PANGO_ELLIPSIZE_END
		label.SetMarkup(elementMarkup(e))
		w.labels[e.Kind] = label

		switch e.Kind {
		case overlay.GlyphElement:
			label.SetXAlign(0.5)
			fixed.Put(label, float64(e.Bounds.Min.X), float64(e.Bounds.Min.Y))
		case overlay.ActionElement:
			label.SetXAlign(0.5)
			btn := gtk.NewButton()
			btn.AddCSSClass("matkit-action")
			btn.SetChild(label)
			btn.ConnectClicked(func() {
				if h := handler(); h != nil {
					h.InvokeAction(s.ID)
				}
			})
			fixed.Put(btn, float64(e.Bounds.Min.X), float64(e.Bounds.Min.Y))
		default:
			label.SetXAlign(0)
			fixed.Put(label, float64(e.Bounds.Min.X), float64(e.Bounds.Min.Y))
		}
	}

	w.win.SetChild(fixed)

	clickCtrl := gtk.NewGestureClick()
	clickCtrl.SetButton(1)
	clickCtrl.ConnectReleased(func(nPress int, x, y float64) {
		if !image.Pt(int(x), int(y)).In(s.BodyRect()) {
			return
		}
		if h := handler(); h != nil {
			h.Click(s.ID)
		}
	})
	w.win.AddController(clickCtrl)

	return w
}

// elementMarkup renders an element's text in its colour as Pango markup.
func elementMarkup(e overlay.Element) string {
	return fmt.Sprintf(`<span foreground="%s" alpha="%d%%">%s</span>`,
		hexColor(e.Color), alphaPercent(e.Color), html.EscapeString(e.Text))
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// alphaPercent maps alpha to Pango's 1-100 percentage range.
func alphaPercent(c color.NRGBA) int {
	return max(1, (int(c.A)*100+127)/255)
}

// Present implements overlay.Window.
func (w *window) Present() {
	if w.destroyed {
		return
	}
	w.win.Present()
	w.logger.Debug("presented overlay window", "id", w.surface.ID, "bounds", w.surface.WindowBounds)
}

// Hide implements overlay.Window.
func (w *window) Hide() {
	if w.destroyed {
		return
	}
	w.win.SetVisible(false)
}

// Destroy implements overlay.Window.
func (w *window) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.win.Destroy()
	w.labels = nil
}

// Invalidate implements overlay.Window. Element colours are reapplied so a
// palette change shows up in the text as well as the body.
func (w *window) Invalidate() {
	if w.destroyed {
		return
	}
	for _, e := range w.surface.Elements() {
		if label, ok := w.labels[e.Kind]; ok {
			label.SetMarkup(elementMarkup(e))
		}
	}
	w.area.QueueDraw()
}
