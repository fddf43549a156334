package controls

import (
	"image"

	"github.com/jmylchreest/matkit/internal/paint"
	"github.com/jmylchreest/matkit/internal/theme"
)

// NavigationDrawer is a left-docked menu that can be opened and closed.
// Its bounds collapse to zero width while closed.
type NavigationDrawer struct {
	base
	open bool
	menu itemList

	// ItemSelected re-broadcasts selections made in the drawer's menu.
	ItemSelected Event[int]
	// OpenChanged fires with the new state when the drawer opens or closes.
	OpenChanged Event[bool]
}

// NewNavigationDrawer creates a closed drawer coloured from p.
func NewNavigationDrawer(items []string, p *theme.Palette) *NavigationDrawer {
	d := &NavigationDrawer{menu: newItemList(items)}
	d.menu.Selected.Subscribe(func(i int) {
		d.dirty = true
		d.changed.Emit("selected")
		d.ItemSelected.Emit(i)
	})
	d.ApplyPalette(p)
	d.dirty = true
	return d
}

// ApplyPalette restyles the drawer with the palette's surface colours.
func (d *NavigationDrawer) ApplyPalette(p *theme.Palette) bool {
	p = paletteOrDefault(p)
	return d.SetStyle(Style{
		Background: p.Surface.NRGBA(),
		Foreground: p.OnSurface.NRGBA(),
		Accent:     theme.Mix(p.Surface, p.Primary, 0.24).NRGBA(),
		Radius:     paint.CornerRadius{TopRight: 16, BottomRight: 16},
		Shadow:     elevation(DefaultLevel*4, p.Shadow.NRGBA()),
	})
}

func (d *NavigationDrawer) IsOpen() bool { return d.open }

// Open opens the drawer.
func (d *NavigationDrawer) Open() bool { return d.setOpen(true) }

// Close closes the drawer.
func (d *NavigationDrawer) Close() bool { return d.setOpen(false) }

// Toggle flips the drawer state.
func (d *NavigationDrawer) Toggle() bool { return d.setOpen(!d.open) }

func (d *NavigationDrawer) setOpen(open bool) bool {
	if !set(&d.base, &d.open, open, "open") {
		return false
	}
	d.OpenChanged.Emit(open)
	return true
}

func (d *NavigationDrawer) Items() []string { return append([]string(nil), d.menu.items...) }

func (d *NavigationDrawer) SetItems(items []string) bool {
	if !d.menu.setItems(items) {
		return false
	}
	d.dirty = true
	d.changed.Emit("items")
	return true
}

// Selected returns the selected menu index, or -1.
func (d *NavigationDrawer) Selected() int { return d.menu.selected }

// Select selects menu item i. Selections are ignored while closed.
func (d *NavigationDrawer) Select(i int) bool {
	if !d.open {
		return false
	}
	return d.menu.selectIndex(i)
}

func (d *NavigationDrawer) Dock() DockStyle { return DockLeft }

func (d *NavigationDrawer) PreferredSize() image.Point {
	if !d.open {
		return image.Pt(0, d.bounds.Dy())
	}
	return image.Pt(DrawerWidth, d.bounds.Dy())
}

// ItemBounds returns the row of menu item i.
func (d *NavigationDrawer) ItemBounds(i int) image.Rectangle {
	if i < 0 || i >= len(d.menu.items) {
		return image.Rectangle{}
	}
	top := d.bounds.Min.Y + 8 + i*ItemHeight
	return image.Rect(d.bounds.Min.X+12, top, d.bounds.Max.X-12, top+ItemHeight)
}

func (d *NavigationDrawer) Paint(c paint.Canvas) {
	if !d.open || d.bounds.Empty() {
		return
	}
	paint.DrawSurface(c, paint.RectFromImage(d.bounds), d.style.Radius, d.style.Shadow, d.style.Background)

	if sel := d.ItemBounds(d.menu.selected); !sel.Empty() {
		row := paint.RectFromImage(sel.Inset(4))
		paint.DrawBody(c, row, paint.Uniform(row.H/2), d.style.Accent)
	}
}
