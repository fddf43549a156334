package paint

import (
	"image"
	"math"
)

// kappa is the control point distance for a cubic approximation of a quarter circle.
const kappa = 0.5522847498

// Point is a position in canvas coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// RectFromImage converts an integer rectangle to a Rect.
func RectFromImage(r image.Rectangle) Rect {
	return Rect{
		X: float64(r.Min.X),
		Y: float64(r.Min.Y),
		W: float64(r.Dx()),
		H: float64(r.Dy()),
	}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Grow returns r expanded by d on every side. Negative d shrinks it.
func (r Rect) Grow(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

// Inset returns r shrunk by the given padding.
func (r Rect) Inset(p Padding) Rect {
	return Rect{
		X: r.X + float64(p.Left),
		Y: r.Y + float64(p.Top),
		W: r.W - float64(p.Left+p.Right),
		H: r.H - float64(p.Top+p.Bottom),
	}
}

// CornerRadius holds the four corner radii of a rounded rectangle.
type CornerRadius struct {
	TopLeft     float64 `toml:"top_left" yaml:"top_left"`
	TopRight    float64 `toml:"top_right" yaml:"top_right"`
	BottomRight float64 `toml:"bottom_right" yaml:"bottom_right"`
	BottomLeft  float64 `toml:"bottom_left" yaml:"bottom_left"`
}

// Uniform returns a CornerRadius with all four corners set to r.
func Uniform(r float64) CornerRadius {
	return CornerRadius{TopLeft: r, TopRight: r, BottomRight: r, BottomLeft: r}
}

// Grow returns the radii increased by d, never below zero.
// Used to keep shadow passes concentric with the body they sit under.
func (c CornerRadius) Grow(d float64) CornerRadius {
	return CornerRadius{
		TopLeft:     math.Max(0, c.TopLeft+d),
		TopRight:    math.Max(0, c.TopRight+d),
		BottomRight: math.Max(0, c.BottomRight+d),
		BottomLeft:  math.Max(0, c.BottomLeft+d),
	}
}

// Max returns the largest of the four radii.
func (c CornerRadius) Max() float64 {
	return math.Max(math.Max(c.TopLeft, c.TopRight), math.Max(c.BottomRight, c.BottomLeft))
}

// ClampRadius limits every corner to [0, min(w,h)/2] so that opposing arcs
// never overlap on small or narrow rectangles.
func ClampRadius(bounds Rect, radius CornerRadius) CornerRadius {
	limit := math.Max(0, math.Min(bounds.W, bounds.H)/2)
	clamp := func(r float64) float64 {
		if r < 0 || math.IsNaN(r) {
			return 0
		}
		return math.Min(r, limit)
	}
	return CornerRadius{
		TopLeft:     clamp(radius.TopLeft),
		TopRight:    clamp(radius.TopRight),
		BottomRight: clamp(radius.BottomRight),
		BottomLeft:  clamp(radius.BottomLeft),
	}
}

// RoundedRect builds the closed outline of bounds with the given corner radii.
// Radii are clamped first. Each corner is an independent quarter arc joined
// to its neighbours by straight edges; a zero radius yields a sharp corner.
func RoundedRect(bounds Rect, radius CornerRadius) Path {
	var p Path
	if bounds.Empty() {
		return p
	}
	r := ClampRadius(bounds, radius)
	x0, y0 := bounds.X, bounds.Y
	x1, y1 := bounds.Right(), bounds.Bottom()

	p.MoveTo(Pt(x0+r.TopLeft, y0))

	// top edge, top-right arc
	p.LineTo(Pt(x1-r.TopRight, y0))
	if r.TopRight > 0 {
		k := r.TopRight * kappa
		p.CubeTo(Pt(x1-r.TopRight+k, y0), Pt(x1, y0+r.TopRight-k), Pt(x1, y0+r.TopRight))
	}

	// right edge, bottom-right arc
	p.LineTo(Pt(x1, y1-r.BottomRight))
	if r.BottomRight > 0 {
		k := r.BottomRight * kappa
		p.CubeTo(Pt(x1, y1-r.BottomRight+k), Pt(x1-r.BottomRight+k, y1), Pt(x1-r.BottomRight, y1))
	}

	// bottom edge, bottom-left arc
	p.LineTo(Pt(x0+r.BottomLeft, y1))
	if r.BottomLeft > 0 {
		k := r.BottomLeft * kappa
		p.CubeTo(Pt(x0+r.BottomLeft-k, y1), Pt(x0, y1-r.BottomLeft+k), Pt(x0, y1-r.BottomLeft))
	}

	// left edge, top-left arc
	p.LineTo(Pt(x0, y0+r.TopLeft))
	if r.TopLeft > 0 {
		k := r.TopLeft * kappa
		p.CubeTo(Pt(x0, y0+r.TopLeft-k), Pt(x0+r.TopLeft-k, y0), Pt(x0+r.TopLeft, y0))
	}

	p.Close()
	return p
}
