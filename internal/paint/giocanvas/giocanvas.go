// Package giocanvas adapts paint.Canvas to Gio operation lists so Gio hosts
// can draw overlay shadows and bodies inside their frame callback.
package giocanvas

import (
	"image/color"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	giopaint "gioui.org/op/paint"

	"github.com/jmylchreest/matkit/internal/paint"
)

// Canvas records fills into a Gio op.Ops.
type Canvas struct {
	Ops *op.Ops

	// Fills counts FillPath calls that produced operations.
	Fills int
}

// New returns a canvas writing into ops.
func New(ops *op.Ops) *Canvas {
	return &Canvas{Ops: ops}
}

// FillPath implements paint.Canvas.
func (c *Canvas) FillPath(p paint.Path, col color.NRGBA) {
	if c.Ops == nil || p.Empty() || col.A == 0 {
		return
	}

	var path clip.Path
	path.Begin(c.Ops)
	for _, s := range p.Segments {
		switch s.Op {
		case paint.OpMoveTo:
			path.MoveTo(point(s.Points[0]))
		case paint.OpLineTo:
			path.LineTo(point(s.Points[0]))
		case paint.OpCubeTo:
			path.CubeTo(point(s.Points[0]), point(s.Points[1]), point(s.Points[2]))
		case paint.OpClose:
			path.Close()
		}
	}

	giopaint.FillShape(c.Ops, col, clip.Outline{Path: path.End()}.Op())
	c.Fills++
}

// point converts a paint.Point to Gio's f32.Point.
func point(p paint.Point) f32.Point {
	return f32.Pt(float32(p.X), float32(p.Y))
}
