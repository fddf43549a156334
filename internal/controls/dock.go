package controls

import "image"

// DockStyle says where a control attaches inside its container.
type DockStyle int

// Dock styles.
const (
	DockNone DockStyle = iota
	DockTop
	DockBottom
	DockLeft
	// DockBottomRight floats the control in the bottom-right corner of the
	// area left after edge-docked controls, inset by FABInset.
	DockBottomRight
)

func (d DockStyle) String() string {
	switch d {
	case DockTop:
		return "top"
	case DockBottom:
		return "bottom"
	case DockLeft:
		return "left"
	case DockBottomRight:
		return "bottom-right"
	default:
		return "none"
	}
}

// Dock lays controls out inside container in the order given. Edge-docked
// controls take their preferred thickness from the remaining area; floating
// controls are placed last. It returns the client area left over.
func Dock(container image.Rectangle, controls ...StylableControl) image.Rectangle {
	client := container

	for _, c := range controls {
		switch c.Dock() {
		case DockTop:
			h := thickness(c)
			c.SetBounds(image.Rect(client.Min.X, client.Min.Y, client.Max.X, client.Min.Y+h))
			client.Min.Y += h
		case DockBottom:
			h := thickness(c)
			c.SetBounds(image.Rect(client.Min.X, client.Max.Y-h, client.Max.X, client.Max.Y))
			client.Max.Y -= h
		case DockLeft:
			w := thickness(c)
			c.SetBounds(image.Rect(client.Min.X, client.Min.Y, client.Min.X+w, client.Max.Y))
			client.Min.X += w
		}
	}

	for _, c := range controls {
		if c.Dock() != DockBottomRight {
			continue
		}
		size := preferredSize(c)
		corner := client.Max.Sub(image.Pt(FABInset, FABInset))
		c.SetBounds(image.Rectangle{Min: corner.Sub(size), Max: corner})
	}

	return client
}

// sizer is implemented by controls with a preferred size.
type sizer interface {
	PreferredSize() image.Point
}

// thickness is the extent of an edge-docked control across its edge.
func thickness(c StylableControl) int {
	size := preferredSize(c)
	if c.Dock() == DockLeft {
		return size.X
	}
	return size.Y
}

func preferredSize(c StylableControl) image.Point {
	if s, ok := c.(sizer); ok {
		return s.PreferredSize()
	}
	return c.Bounds().Size()
}
