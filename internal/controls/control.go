// Package controls provides Material app chrome (app bar, bottom bar,
// floating action button and navigation drawer) painted with the shared
// shadow and rounded-rectangle renderer.
//
// Controls are plain structs. Property setters return true when the change
// needs a repaint and mark the control dirty; hosts check Dirty once per
// frame, call Paint and then ClearDirty.
package controls

import (
	"image"
	"image/color"

	"github.com/jmylchreest/matkit/internal/paint"
	"github.com/jmylchreest/matkit/internal/theme"
)

// Standard Material metrics.
const (
	BarHeight    = 56
	FABSize      = 56
	FABInset     = 16
	DrawerWidth  = 280
	ItemHeight   = 48
	DefaultLevel = 4
)

// StylableControl is implemented by every control.
type StylableControl interface {
	Bounds() image.Rectangle
	SetBounds(r image.Rectangle) bool
	Dock() DockStyle
	Dirty() bool
	ClearDirty()
	Paint(c paint.Canvas)
	OnPropertyChanged(fn func(property string))
}

// Event is a list of listeners invoked in registration order.
type Event[T any] struct {
	listeners []func(T)
}

// Subscribe adds a listener.
func (e *Event[T]) Subscribe(fn func(T)) {
	if fn != nil {
		e.listeners = append(e.listeners, fn)
	}
}

// Emit calls every listener with v.
func (e *Event[T]) Emit(v T) {
	for _, fn := range e.listeners {
		fn(v)
	}
}

// Len returns the number of listeners.
func (e *Event[T]) Len() int {
	return len(e.listeners)
}

// Style is the visual state shared by all controls.
type Style struct {
	Background color.NRGBA
	Foreground color.NRGBA
	Accent     color.NRGBA
	Radius     paint.CornerRadius
	Shadow     paint.ShadowSettings
}

// base carries the bounds, dirty flag and property notifications.
type base struct {
	bounds  image.Rectangle
	style   Style
	dirty   bool
	changed Event[string]
}

func (b *base) Bounds() image.Rectangle { return b.bounds }

func (b *base) SetBounds(r image.Rectangle) bool {
	return set(b, &b.bounds, r, "bounds")
}

func (b *base) Dirty() bool { return b.dirty }

func (b *base) ClearDirty() { b.dirty = false }

func (b *base) OnPropertyChanged(fn func(property string)) {
	b.changed.Subscribe(fn)
}

// Style returns the control's style.
func (b *base) Style() Style { return b.style }

// SetStyle replaces the control's style.
func (b *base) SetStyle(s Style) bool {
	return set(b, &b.style, s, "style")
}

// set assigns v to *field, marking b dirty and notifying listeners when the
// value actually changed.
func set[T comparable](b *base, field *T, v T, property string) bool {
	if *field == v {
		return false
	}
	*field = v
	b.dirty = true
	b.changed.Emit(property)
	return true
}

// elevation returns shadow settings for a Material elevation level.
func elevation(level int, shadowColor color.NRGBA) paint.ShadowSettings {
	if level <= 0 {
		return paint.ShadowSettings{Kind: paint.ShadowNone}
	}
	return paint.ShadowSettings{
		Kind:    paint.ShadowLayered,
		Blur:    float64(level),
		OffsetY: float64(level) / 2,
		Color:   shadowColor,
	}
}

// paletteOrDefault returns p, or the bundled palette when p is nil.
func paletteOrDefault(p *theme.Palette) *theme.Palette {
	if p == nil {
		return theme.Default()
	}
	return p
}
