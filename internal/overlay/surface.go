package overlay

import (
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/jmylchreest/matkit/internal/paint"
)

// CountdownState tracks a surface's auto-hide timer.
type CountdownState int

// Countdown states. A surface moves forward only.
const (
	Armed CountdownState = iota
	Firing
	Consumed
)

func (s CountdownState) String() string {
	switch s {
	case Armed:
		return "armed"
	case Firing:
		return "firing"
	default:
		return "consumed"
	}
}

// DismissReason records why a surface went away.
type DismissReason int

// Dismiss reasons.
const (
	Expired DismissReason = iota + 1
	Clicked
	ActionInvoked
	Closed
)

func (r DismissReason) String() string {
	switch r {
	case Expired:
		return "expired"
	case Clicked:
		return "clicked"
	case ActionInvoked:
		return "action"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// ElementKind identifies a child element of a surface.
type ElementKind int

// Element kinds, in left-to-right order.
const (
	GlyphElement ElementKind = iota
	MessageElement
	ActionElement
)

// Element is a text child laid out inside a surface, in window-local coordinates.
type Element struct {
	Kind   ElementKind
	Text   string
	Bounds image.Rectangle
	Color  color.NRGBA
}

// Surface is a live overlay. Its identity and geometry are fixed at creation;
// countdown and disposal state change as it is dismissed.
type Surface struct {
	ID        string
	Kind      Kind
	Severity  Severity
	Message   string
	Placement Placement
	Duration  time.Duration
	CreatedAt time.Time

	// Bounds is the body rectangle in screen coordinates.
	Bounds image.Rectangle
	// WindowBounds is Bounds grown by the shadow padding.
	WindowBounds image.Rectangle
	Padding      paint.Padding

	Radius paint.CornerRadius
	Shadow paint.ShadowSettings

	action func()

	mu         sync.Mutex
	style      Style
	elements   []Element
	state      CountdownState
	reason     DismissReason
	disposed   bool
	expiresAt  time.Time
	timer      Timer
	generation uint64
	window     Window
}

// Layout is the sizing used to build surfaces.
type Layout struct {
	ToastSize    image.Point
	SnackbarSize image.Point
	// ContentPadding separates elements from the body edge.
	ContentPadding int
	GlyphWidth     int
	ActionWidth    int
	Gap            int
}

// DefaultLayout returns the standard toast and snackbar geometry.
func DefaultLayout() Layout {
	return Layout{
		ToastSize:      image.Pt(360, 64),
		SnackbarSize:   image.Pt(480, 48),
		ContentPadding: 16,
		GlyphWidth:     24,
		ActionWidth:    88,
		Gap:            8,
	}
}

// Size returns the body size for kind. Non-positive dimensions fall back to
// the default layout.
func (l Layout) Size(kind Kind) image.Point {
	def := DefaultLayout()
	size, fallback := l.ToastSize, def.ToastSize
	if kind == Snackbar {
		size, fallback = l.SnackbarSize, def.SnackbarSize
	}
	if size.X <= 0 {
		size.X = fallback.X
	}
	if size.Y <= 0 {
		size.Y = fallback.Y
	}
	return size
}

// newSurface builds a surface whose body's top-left corner is at origin.
func newSurface(id string, req Request, origin image.Point, size image.Point, lay Layout, style Style, radius paint.CornerRadius, shadow paint.ShadowSettings) *Surface {
	pad := paint.ComputePadding(shadow)
	bounds := image.Rectangle{Min: origin, Max: origin.Add(size)}

	s := &Surface{
		ID:        id,
		Kind:      req.Kind,
		Severity:  req.Severity,
		Message:   req.Message,
		Placement: req.EffectivePlacement(),
		Duration:  req.EffectiveDuration(),
		CreatedAt: time.Now(),
		Bounds:    bounds,
		WindowBounds: image.Rect(
			bounds.Min.X-pad.Left, bounds.Min.Y-pad.Top,
			bounds.Max.X+pad.Right, bounds.Max.Y+pad.Bottom,
		),
		Padding: pad,
		Radius:  radius,
		Shadow:  shadow,
		style:   style,
	}
	if req.HasAction() {
		s.action = req.Action
	}
	s.elements = layoutElements(req, s.BodyRect(), lay, style)
	return s
}

// layoutElements places glyph, message and action left to right inside body.
// Without an action the message takes the remaining width.
func layoutElements(req Request, body image.Rectangle, lay Layout, style Style) []Element {
	inner := body.Inset(lay.ContentPadding)
	left, right := inner.Min.X, inner.Max.X

	var elems []Element
	if req.Kind == Toast && style.Glyph != "" {
		elems = append(elems, Element{
			Kind:   GlyphElement,
			Text:   style.Glyph,
			Bounds: image.Rect(left, inner.Min.Y, left+lay.GlyphWidth, inner.Max.Y),
			Color:  style.Foreground,
		})
		left += lay.GlyphWidth + lay.Gap
	}

	var action *Element
	if req.HasAction() {
		action = &Element{
			Kind:   ActionElement,
			Text:   req.ActionLabel,
			Bounds: image.Rect(right-lay.ActionWidth, inner.Min.Y, right, inner.Max.Y),
			Color:  style.Action,
		}
		right -= lay.ActionWidth + lay.Gap
	}

	elems = append(elems, Element{
		Kind:   MessageElement,
		Text:   req.Message,
		Bounds: image.Rect(left, inner.Min.Y, max(left, right), inner.Max.Y),
		Color:  style.Foreground,
	})
	if action != nil {
		elems = append(elems, *action)
	}
	return elems
}

// BodyRect returns the body rectangle in window-local coordinates.
func (s *Surface) BodyRect() image.Rectangle {
	return image.Rect(s.Padding.Left, s.Padding.Top,
		s.Padding.Left+s.Bounds.Dx(), s.Padding.Top+s.Bounds.Dy())
}

// Element returns the first child of the given kind.
func (s *Surface) Element(kind ElementKind) (Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.elements {
		if e.Kind == kind {
			return e, true
		}
	}
	return Element{}, false
}

// HasAction reports whether the surface has an action element.
func (s *Surface) HasAction() bool {
	_, ok := s.Element(ActionElement)
	return ok
}

// Paint draws the shadow and body in window-local coordinates. Hosts call it
// from their paint callback before drawing text elements on top.
func (s *Surface) Paint(c paint.Canvas) {
	s.mu.Lock()
	bg := s.style.Background
	s.mu.Unlock()
	paint.DrawSurface(c, paint.RectFromImage(s.BodyRect()), s.Radius, s.Shadow, bg)
}

// Style returns the surface's current colours and glyph.
func (s *Surface) Style() Style {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.style
}

// Elements returns a copy of the surface's children in left-to-right order.
func (s *Surface) Elements() []Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Element(nil), s.elements...)
}

// restyle recolours the surface and its children.
func (s *Surface) restyle(style Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	style.Glyph = s.style.Glyph
	s.style = style
	for i := range s.elements {
		if s.elements[i].Kind == ActionElement {
			s.elements[i].Color = style.Action
		} else {
			s.elements[i].Color = style.Foreground
		}
	}
}

// State returns the countdown state.
func (s *Surface) State() CountdownState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Reason returns why the surface was dismissed, or zero while it is live.
func (s *Surface) Reason() DismissReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}

// Disposed reports whether the surface's window has been destroyed.
func (s *Surface) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// ExpiresAt returns when the current countdown fires.
func (s *Surface) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt
}
