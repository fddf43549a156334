package paint

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

const (
	// antialiasMargin is added to every side of the shadow padding.
	antialiasMargin = 2

	// layeredPasses is the number of translucent passes used for a Layered shadow.
	layeredPasses = 4

	// layeredPassAlpha is the alpha of a single Layered pass for an opaque shadow colour.
	layeredPassAlpha = 20
)

// ShadowKind selects how a shadow is drawn.
type ShadowKind int

const (
	// ShadowNone draws nothing and reserves no padding.
	ShadowNone ShadowKind = iota
	// ShadowSolid draws a single offset copy of the outline.
	ShadowSolid
	// ShadowLayered approximates a soft blur with a few stacked translucent passes.
	ShadowLayered
)

// String returns the config name of the kind.
func (k ShadowKind) String() string {
	switch k {
	case ShadowNone:
		return "none"
	case ShadowSolid:
		return "solid"
	case ShadowLayered:
		return "layered"
	default:
		return "unknown"
	}
}

// ParseShadowKind converts a config name to a ShadowKind.
func ParseShadowKind(s string) (ShadowKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ShadowNone, nil
	case "solid":
		return ShadowSolid, nil
	case "layered":
		return ShadowLayered, nil
	default:
		return ShadowNone, fmt.Errorf("invalid shadow kind %q, must be one of: none, solid, layered", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k ShadowKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ShadowKind) UnmarshalText(text []byte) error {
	parsed, err := ParseShadowKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ShadowSettings configures the drop shadow drawn beneath a surface.
type ShadowSettings struct {
	Kind    ShadowKind
	Blur    float64
	OffsetX float64
	OffsetY float64
	Spread  float64
	Color   color.NRGBA
}

// DefaultShadow is the Material elevation shadow used by overlays.
func DefaultShadow() ShadowSettings {
	return ShadowSettings{
		Kind:    ShadowLayered,
		Blur:    6,
		OffsetX: 0,
		OffsetY: 2,
		Spread:  0,
		Color:   color.NRGBA{A: 0xff},
	}
}

// Padding is the space reserved around a body on each side.
type Padding struct {
	Left, Top, Right, Bottom int
}

// Horizontal returns Left+Right.
func (p Padding) Horizontal() int { return p.Left + p.Right }

// Vertical returns Top+Bottom.
func (p Padding) Vertical() int { return p.Top + p.Bottom }

// ComputePadding returns how much room a container must reserve around a
// body so its shadow is never clipped.
func ComputePadding(shadow ShadowSettings) Padding {
	if shadow.Kind == ShadowNone {
		return Padding{}
	}
	h := int(math.Ceil(shadow.Blur+math.Abs(shadow.OffsetX)+math.Abs(shadow.Spread))) + antialiasMargin
	v := int(math.Ceil(shadow.Blur+math.Abs(shadow.OffsetY)+math.Abs(shadow.Spread))) + antialiasMargin
	return Padding{Left: h, Top: v, Right: h, Bottom: v}
}

// DrawShadow paints the shadow for a body occupying bounds. It must run
// before DrawBody so the body covers the shadow interior.
func DrawShadow(c Canvas, bounds Rect, radius CornerRadius, shadow ShadowSettings) {
	if shadow.Kind == ShadowNone || bounds.Empty() {
		return
	}
	base := bounds.Translate(shadow.OffsetX, shadow.OffsetY)

	switch shadow.Kind {
	case ShadowSolid:
		r := base.Grow(shadow.Spread)
		c.FillPath(RoundedRect(r, radius.Grow(shadow.Spread)), shadow.Color)

	case ShadowLayered:
		pass := shadow.Color
		pass.A = uint8(uint16(shadow.Color.A) * layeredPassAlpha / 0xff)
		// Outermost first; overlapping passes darken towards the body.
		for i := layeredPasses; i >= 1; i-- {
			grow := shadow.Spread + shadow.Blur*float64(i)/layeredPasses
			r := base.Grow(grow)
			c.FillPath(RoundedRect(r, radius.Grow(grow)), pass)
		}
	}
}

// DrawBody fills a single rounded rectangle.
func DrawBody(c Canvas, bounds Rect, radius CornerRadius, fill color.NRGBA) {
	if bounds.Empty() {
		return
	}
	c.FillPath(RoundedRect(bounds, radius), fill)
}

// DrawSurface draws the shadow and then the body.
func DrawSurface(c Canvas, bounds Rect, radius CornerRadius, shadow ShadowSettings, fill color.NRGBA) {
	DrawShadow(c, bounds, radius, shadow)
	DrawBody(c, bounds, radius, fill)
}
