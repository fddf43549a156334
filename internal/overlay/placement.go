package overlay

import (
	"fmt"
	"image"
)

// Placement anchors a surface against the work area.
type Placement string

// Placements.
const (
	TopLeft      Placement = "top-left"
	TopCenter    Placement = "top-center"
	TopRight     Placement = "top-right"
	BottomLeft   Placement = "bottom-left"
	BottomCenter Placement = "bottom-center"
	BottomRight  Placement = "bottom-right"
)

// DefaultPlacement is used when a request leaves placement unset.
const DefaultPlacement = BottomCenter

// EdgeInset is the distance kept between a surface and the work-area edges.
const EdgeInset = 20

// Placements lists every valid placement.
var Placements = []Placement{TopLeft, TopCenter, TopRight, BottomLeft, BottomCenter, BottomRight}

// Valid reports whether p is one of the six placements.
func (p Placement) Valid() bool {
	switch p {
	case TopLeft, TopCenter, TopRight, BottomLeft, BottomCenter, BottomRight:
		return true
	}
	return false
}

// OrDefault returns p, or DefaultPlacement when p is empty or unknown.
func (p Placement) OrDefault() Placement {
	if p.Valid() {
		return p
	}
	return DefaultPlacement
}

// IsTop reports whether the placement anchors to the top edge.
func (p Placement) IsTop() bool {
	return p == TopLeft || p == TopCenter || p == TopRight
}

// ParsePlacement parses a placement name.
func ParsePlacement(s string) (Placement, error) {
	if s == "" {
		return DefaultPlacement, nil
	}
	p := Placement(s)
	if !p.Valid() {
		return "", fmt.Errorf("invalid placement %q", s)
	}
	return p, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Placement) UnmarshalText(text []byte) error {
	parsed, err := ParsePlacement(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Placement) MarshalText() ([]byte, error) {
	return []byte(p), nil
}

// Place returns the top-left corner of a surface of the given size anchored
// within workArea.
func Place(workArea image.Rectangle, size image.Point, p Placement) image.Point {
	var pt image.Point

	switch p.OrDefault() {
	case TopLeft, BottomLeft:
		pt.X = workArea.Min.X + EdgeInset
	case TopRight, BottomRight:
		pt.X = workArea.Max.X - size.X - EdgeInset
	default:
		pt.X = workArea.Min.X + (workArea.Dx()-size.X)/2
	}

	if p.OrDefault().IsTop() {
		pt.Y = workArea.Min.Y + EdgeInset
	} else {
		pt.Y = workArea.Max.Y - size.Y - EdgeInset
	}

	return pt
}
