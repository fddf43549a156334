package controls

import (
	"image"

	"github.com/jmylchreest/matkit/internal/paint"
	"github.com/jmylchreest/matkit/internal/theme"
)

// FAB is a circular floating action button.
type FAB struct {
	base
	icon    string
	pressed bool

	// Clicked fires once per click.
	Clicked Event[struct{}]
}

// NewFAB creates a floating action button coloured from p.
func NewFAB(icon string, p *theme.Palette) *FAB {
	f := &FAB{icon: icon}
	f.ApplyPalette(p)
	f.dirty = true
	return f
}

// ApplyPalette restyles the button with the palette's action colour.
func (f *FAB) ApplyPalette(p *theme.Palette) bool {
	p = paletteOrDefault(p)
	st := Style{
		Background: p.Action.NRGBA(),
		Foreground: p.OnPrimary.NRGBA(),
		Accent:     theme.Mix(p.Action, p.OnPrimary, 0.16).NRGBA(),
		Radius:     paint.Uniform(FABSize / 2),
		Shadow:     elevation(DefaultLevel+2, p.Shadow.NRGBA()),
	}
	return f.SetStyle(st)
}

func (f *FAB) Icon() string { return f.icon }

func (f *FAB) SetIcon(icon string) bool {
	return set(&f.base, &f.icon, icon, "icon")
}

func (f *FAB) Pressed() bool { return f.pressed }

// SetPressed changes the pressed state, which tints the button.
func (f *FAB) SetPressed(pressed bool) bool {
	return set(&f.base, &f.pressed, pressed, "pressed")
}

// Click fires the Clicked event.
func (f *FAB) Click() {
	f.Clicked.Emit(struct{}{})
}

// HitTest reports whether pt lies inside the button's circle.
func (f *FAB) HitTest(pt image.Point) bool {
	r := f.bounds.Dx() / 2
	c := f.bounds.Min.Add(image.Pt(r, f.bounds.Dy()/2))
	d := pt.Sub(c)
	return d.X*d.X+d.Y*d.Y <= r*r
}

func (f *FAB) Dock() DockStyle { return DockBottomRight }

func (f *FAB) PreferredSize() image.Point { return image.Pt(FABSize, FABSize) }

func (f *FAB) Paint(c paint.Canvas) {
	bg := f.style.Background
	if f.pressed {
		bg = f.style.Accent
	}
	paint.DrawSurface(c, paint.RectFromImage(f.bounds), f.style.Radius, f.style.Shadow, bg)
}
