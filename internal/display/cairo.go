package display

import (
	"image/color"

	"github.com/diamondburned/gotk4/pkg/cairo"

	"github.com/jmylchreest/matkit/internal/paint"
)

// pathContext is the part of *cairo.Context the canvas draws with.
type pathContext interface {
	NewPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CurveTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
	SetSourceRGBA(r, g, b, a float64)
	Fill()
}

// cairoCanvas adapts a cairo context from a GtkDrawingArea draw func to
// paint.Canvas.
type cairoCanvas struct {
	cr pathContext
}

// newCairoCanvas wraps cr. Cairo's default fill rule is non-zero winding.
func newCairoCanvas(cr *cairo.Context) *cairoCanvas {
	return &cairoCanvas{cr: cr}
}

// FillPath implements paint.Canvas.
func (c *cairoCanvas) FillPath(p paint.Path, col color.NRGBA) {
	if p.Empty() || col.A == 0 {
		return
	}

	c.cr.NewPath()
	for _, s := range p.Segments {
		switch s.Op {
		case paint.OpMoveTo:
			c.cr.MoveTo(s.Points[0].X, s.Points[0].Y)
		case paint.OpLineTo:
			c.cr.LineTo(s.Points[0].X, s.Points[0].Y)
		case paint.OpCubeTo:
			c.cr.CurveTo(
				s.Points[0].X, s.Points[0].Y,
				s.Points[1].X, s.Points[1].Y,
				s.Points[2].X, s.Points[2].Y,
			)
		case paint.OpClose:
			c.cr.ClosePath()
		}
	}

	c.cr.SetSourceRGBA(
		float64(col.R)/255,
		float64(col.G)/255,
		float64(col.B)/255,
		float64(col.A)/255,
	)
	c.cr.Fill()
}
