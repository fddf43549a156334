package controls

import (
	"image"

	"github.com/jmylchreest/matkit/internal/paint"
	"github.com/jmylchreest/matkit/internal/theme"
)

// BottomBar is a bottom navigation bar with evenly spaced items.
type BottomBar struct {
	base
	list itemList

	// ItemSelected fires with the index of a newly selected item.
	ItemSelected Event[int]
}

// NewBottomBar creates a bottom bar coloured from p.
func NewBottomBar(items []string, p *theme.Palette) *BottomBar {
	b := &BottomBar{list: newItemList(items)}
	b.list.Selected.Subscribe(b.ItemSelected.Emit)
	b.ApplyPalette(p)
	b.dirty = true
	return b
}

// ApplyPalette restyles the bar with the palette's surface colours.
func (b *BottomBar) ApplyPalette(p *theme.Palette) bool {
	p = paletteOrDefault(p)
	return b.SetStyle(Style{
		Background: p.Surface.NRGBA(),
		Foreground: p.OnSurface.NRGBA(),
		Accent:     theme.Mix(p.Surface, p.Primary, 0.24).NRGBA(),
		Shadow:     elevation(DefaultLevel*2, p.Shadow.NRGBA()),
	})
}

func (b *BottomBar) Items() []string { return append([]string(nil), b.list.items...) }

func (b *BottomBar) SetItems(items []string) bool {
	if !b.list.setItems(items) {
		return false
	}
	b.dirty = true
	b.changed.Emit("items")
	return true
}

// Selected returns the selected index, or -1.
func (b *BottomBar) Selected() int { return b.list.selected }

// Select selects item i and fires ItemSelected.
func (b *BottomBar) Select(i int) bool {
	if !b.list.selectIndex(i) {
		return false
	}
	b.dirty = true
	b.changed.Emit("selected")
	return true
}

func (b *BottomBar) Dock() DockStyle { return DockBottom }

func (b *BottomBar) PreferredSize() image.Point {
	return image.Pt(b.bounds.Dx(), BarHeight)
}

// ItemBounds returns the slot of item i.
func (b *BottomBar) ItemBounds(i int) image.Rectangle {
	n := len(b.list.items)
	if i < 0 || i >= n {
		return image.Rectangle{}
	}
	w := b.bounds.Dx() / n
	x := b.bounds.Min.X + i*w
	return image.Rect(x, b.bounds.Min.Y, x+w, b.bounds.Max.Y)
}

func (b *BottomBar) Paint(c paint.Canvas) {
	paint.DrawSurface(c, paint.RectFromImage(b.bounds), b.style.Radius, b.style.Shadow, b.style.Background)

	if sel := b.ItemBounds(b.list.selected); !sel.Empty() {
		pill := paint.RectFromImage(sel.Inset(8))
		paint.DrawBody(c, pill, paint.Uniform(pill.H/2), b.style.Accent)
	}
}
