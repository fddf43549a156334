package controls

import (
	"image"
	"image/color"

	"github.com/jmylchreest/matkit/internal/paint"
	"github.com/jmylchreest/matkit/internal/theme"
)

// AppBar is the top app bar.
type AppBar struct {
	base
	title       string
	level       int
	shadowColor color.NRGBA
}

// NewAppBar creates an app bar coloured from p.
func NewAppBar(title string, p *theme.Palette) *AppBar {
	a := &AppBar{title: title, level: DefaultLevel}
	a.ApplyPalette(p)
	a.dirty = true
	return a
}

// ApplyPalette restyles the bar with the palette's primary colours.
func (a *AppBar) ApplyPalette(p *theme.Palette) bool {
	p = paletteOrDefault(p)
	a.shadowColor = p.Shadow.NRGBA()
	return a.SetStyle(Style{
		Background: p.Primary.NRGBA(),
		Foreground: p.OnPrimary.NRGBA(),
		Accent:     p.Action.NRGBA(),
		Shadow:     elevation(a.level, a.shadowColor),
	})
}

func (a *AppBar) Title() string { return a.title }

func (a *AppBar) SetTitle(title string) bool {
	return set(&a.base, &a.title, title, "title")
}

// Elevation returns the shadow level.
func (a *AppBar) Elevation() int { return a.level }

// SetElevation changes the shadow level. Zero removes the shadow.
func (a *AppBar) SetElevation(level int) bool {
	if level < 0 {
		level = 0
	}
	if !set(&a.base, &a.level, level, "elevation") {
		return false
	}
	st := a.style
	st.Shadow = elevation(level, a.shadowColor)
	a.SetStyle(st)
	return true
}

func (a *AppBar) Dock() DockStyle { return DockTop }

func (a *AppBar) PreferredSize() image.Point {
	return image.Pt(a.bounds.Dx(), BarHeight)
}

// TitleBounds is where hosts draw the title text.
func (a *AppBar) TitleBounds() image.Rectangle {
	return a.bounds.Inset(FABInset)
}

func (a *AppBar) Paint(c paint.Canvas) {
	paint.DrawSurface(c, paint.RectFromImage(a.bounds), a.style.Radius, a.style.Shadow, a.style.Background)
}
