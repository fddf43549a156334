package overlay

import "image"

// Host is the windowing system overlays are shown on.
type Host interface {
	// WorkArea returns the usable screen rectangle of the primary display.
	WorkArea() (image.Rectangle, error)

	// Open creates a window for s. The window is not shown until Present.
	Open(s *Surface) (Window, error)
}

// Window is a host window backing one surface.
type Window interface {
	Present()
	Hide()
	Destroy()
	// Invalidate requests a repaint, which calls Surface.Paint.
	Invalidate()
}

// HostError is returned by hosts when a display operation fails.
type HostError struct {
	Op    string
	Cause error
}

func (e *HostError) Error() string {
	if e.Cause != nil {
		return e.Op + ": " + e.Cause.Error()
	}
	return e.Op
}

func (e *HostError) Unwrap() error {
	return e.Cause
}
