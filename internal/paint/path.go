package paint

import (
	"image/color"
	"math"
)

// SegmentOp identifies the kind of a path segment.
type SegmentOp int

const (
	// OpMoveTo starts a new subpath at Points[0].
	OpMoveTo SegmentOp = iota
	// OpLineTo draws a straight line to Points[0].
	OpLineTo
	// OpCubeTo draws a cubic Bézier with controls Points[0], Points[1] ending at Points[2].
	OpCubeTo
	// OpClose closes the current subpath.
	OpClose
)

// Segment is a single path instruction.
type Segment struct {
	Op     SegmentOp
	Points [3]Point
}

// Path is an ordered list of segments in absolute coordinates.
type Path struct {
	Segments []Segment
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(to Point) {
	p.Segments = append(p.Segments, Segment{Op: OpMoveTo, Points: [3]Point{to}})
}

// LineTo adds a straight edge.
func (p *Path) LineTo(to Point) {
	p.Segments = append(p.Segments, Segment{Op: OpLineTo, Points: [3]Point{to}})
}

// CubeTo adds a cubic Bézier curve.
func (p *Path) CubeTo(c0, c1, to Point) {
	p.Segments = append(p.Segments, Segment{Op: OpCubeTo, Points: [3]Point{c0, c1, to}})
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.Segments = append(p.Segments, Segment{Op: OpClose})
}

// Empty reports whether the path has no segments.
func (p Path) Empty() bool {
	return len(p.Segments) == 0
}

// Closed reports whether the last segment closes the path.
func (p Path) Closed() bool {
	return len(p.Segments) > 0 && p.Segments[len(p.Segments)-1].Op == OpClose
}

// Bounds returns the bounding box of every point in the path, control points included.
func (p Path) Bounds() Rect {
	if p.Empty() {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	visit := func(pt Point) {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	for _, s := range p.Segments {
		switch s.Op {
		case OpMoveTo, OpLineTo:
			visit(s.Points[0])
		case OpCubeTo:
			visit(s.Points[0])
			visit(s.Points[1])
			visit(s.Points[2])
		}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Translate returns a copy of p shifted by (dx, dy).
func (p Path) Translate(dx, dy float64) Path {
	out := Path{Segments: make([]Segment, len(p.Segments))}
	for i, s := range p.Segments {
		for j := range s.Points {
			s.Points[j].X += dx
			s.Points[j].Y += dy
		}
		out.Segments[i] = s
	}
	return out
}

// Canvas is the graphics context a host hands to the renderer from its
// paint callback.
type Canvas interface {
	// FillPath fills the closed path with c using non-zero winding,
	// compositing source-over onto whatever is already drawn.
	FillPath(p Path, c color.NRGBA)
}
