package controls

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/matkit/internal/paint"
	"github.com/jmylchreest/matkit/internal/theme"
)

type recordCanvas struct {
	fills []color.NRGBA
}

func (c *recordCanvas) FillPath(_ paint.Path, col color.NRGBA) {
	c.fills = append(c.fills, col)
}

func TestEvent_RegistrationOrder(t *testing.T) {
	var e Event[int]
	var got []string
	e.Subscribe(func(v int) { got = append(got, "a") })
	e.Subscribe(nil)
	e.Subscribe(func(v int) { got = append(got, "b") })

	e.Emit(1)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 2, e.Len())

	var empty Event[string]
	assert.NotPanics(t, func() { empty.Emit("x") })
}

func TestSetters_ReturnRepaintNeeded(t *testing.T) {
	bar := NewAppBar("Inbox", nil)
	bar.ClearDirty()

	var changed []string
	bar.OnPropertyChanged(func(p string) { changed = append(changed, p) })

	assert.False(t, bar.SetTitle("Inbox"), "same value is not a change")
	assert.False(t, bar.Dirty())

	assert.True(t, bar.SetTitle("Archive"))
	assert.True(t, bar.Dirty())
	assert.Equal(t, "Archive", bar.Title())
	assert.Equal(t, []string{"title"}, changed)

	bar.ClearDirty()
	assert.False(t, bar.Dirty())
}

func TestAppBar_Elevation(t *testing.T) {
	bar := NewAppBar("x", nil)
	assert.Equal(t, paint.ShadowLayered, bar.Style().Shadow.Kind)

	require.True(t, bar.SetElevation(0))
	assert.Equal(t, paint.ShadowNone, bar.Style().Shadow.Kind)

	assert.False(t, bar.SetElevation(-3), "negative clamps to zero, which is unchanged")

	require.True(t, bar.SetElevation(8))
	st := bar.Style().Shadow
	assert.Equal(t, 8.0, st.Blur)
	assert.NotZero(t, st.Color.A, "shadow colour survives a trip through zero")
}

func TestDock(t *testing.T) {
	p := theme.Default()
	bar := NewAppBar("Title", p)
	bottom := NewBottomBar([]string{"Home", "Search", "Profile"}, p)
	drawer := NewNavigationDrawer([]string{"Inbox", "Sent"}, p)
	fab := NewFAB("+", p)

	container := image.Rect(0, 0, 800, 600)
	drawer.Open()
	client := Dock(container, bar, bottom, drawer, fab)

	assert.Equal(t, image.Rect(0, 0, 800, 56), bar.Bounds())
	assert.Equal(t, image.Rect(0, 544, 800, 600), bottom.Bounds())
	assert.Equal(t, image.Rect(0, 56, 280, 544), drawer.Bounds())
	assert.Equal(t, image.Rect(280, 56, 800, 544), client)
	assert.Equal(t, image.Rect(800-16-56, 544-16-56, 800-16, 544-16), fab.Bounds())
}

func TestDock_ClosedDrawerTakesNoWidth(t *testing.T) {
	drawer := NewNavigationDrawer([]string{"a"}, nil)
	client := Dock(image.Rect(0, 0, 400, 300), drawer)

	assert.Equal(t, 0, drawer.Bounds().Dx())
	assert.Equal(t, image.Rect(0, 0, 400, 300), client)

	var c recordCanvas
	drawer.Paint(&c)
	assert.Empty(t, c.fills)
}

func TestBottomBar_Select(t *testing.T) {
	b := NewBottomBar([]string{"a", "b", "c"}, nil)
	Dock(image.Rect(0, 0, 300, 200), b)

	var selected []int
	b.ItemSelected.Subscribe(func(i int) { selected = append(selected, i) })

	assert.Equal(t, -1, b.Selected())
	assert.True(t, b.Select(1))
	assert.False(t, b.Select(1))
	assert.False(t, b.Select(7))
	assert.Equal(t, []int{1}, selected)

	assert.Equal(t, image.Rect(100, 144, 200, 200), b.ItemBounds(1))
	assert.Empty(t, b.ItemBounds(3))

	var c recordCanvas
	b.Paint(&c)
	assert.Equal(t, b.Style().Accent, c.fills[len(c.fills)-1], "selection pill drawn over the bar")
}

func TestBottomBar_SetItemsClearsStaleSelection(t *testing.T) {
	b := NewBottomBar([]string{"a", "b", "c"}, nil)
	b.Select(2)

	assert.True(t, b.SetItems([]string{"x"}))
	assert.Equal(t, -1, b.Selected())
	assert.False(t, b.SetItems([]string{"x"}))
	assert.Equal(t, []string{"x"}, b.Items())
}

func TestNavigationDrawer_ReBroadcastsSelection(t *testing.T) {
	d := NewNavigationDrawer([]string{"Inbox", "Sent", "Trash"}, nil)

	var opened []bool
	d.OpenChanged.Subscribe(func(o bool) { opened = append(opened, o) })
	var picked []int
	d.ItemSelected.Subscribe(func(i int) { picked = append(picked, i) })

	assert.False(t, d.Select(0), "closed drawer ignores selection")

	assert.True(t, d.Toggle())
	assert.True(t, d.IsOpen())
	assert.False(t, d.Open())

	d.ClearDirty()
	assert.True(t, d.Select(2))
	assert.True(t, d.Dirty())
	assert.Equal(t, 2, d.Selected())

	assert.True(t, d.Close())
	assert.Equal(t, []bool{true, false}, opened)
	assert.Equal(t, []int{2}, picked)
}

func TestFAB(t *testing.T) {
	f := NewFAB("+", nil)
	Dock(image.Rect(0, 0, 200, 200), f)
	assert.Equal(t, image.Rect(128, 128, 184, 184), f.Bounds())

	clicks := 0
	f.Clicked.Subscribe(func(struct{}) { clicks++ })
	f.Click()
	assert.Equal(t, 1, clicks)

	assert.True(t, f.HitTest(image.Pt(156, 156)))
	assert.False(t, f.HitTest(image.Pt(129, 129)), "corner of the box is outside the circle")

	var normal, pressed recordCanvas
	f.Paint(&normal)
	require.True(t, f.SetPressed(true))
	f.Paint(&pressed)
	assert.NotEqual(t, normal.fills[len(normal.fills)-1], pressed.fills[len(pressed.fills)-1])
}

func TestApplyPalette(t *testing.T) {
	data, ok := theme.GetEmbeddedTheme("dark")
	require.True(t, ok)
	dark, err := theme.ParsePalette(data)
	require.NoError(t, err)

	bar := NewAppBar("x", nil)
	bar.ClearDirty()
	assert.True(t, bar.ApplyPalette(dark))
	assert.True(t, bar.Dirty())
	assert.Equal(t, dark.Primary.NRGBA(), bar.Style().Background)
	assert.False(t, bar.ApplyPalette(dark))
}

func TestStylableControlImplementations(t *testing.T) {
	var _ StylableControl = (*AppBar)(nil)
	var _ StylableControl = (*BottomBar)(nil)
	var _ StylableControl = (*FAB)(nil)
	var _ StylableControl = (*NavigationDrawer)(nil)

	assert.Equal(t, "bottom-right", DockBottomRight.String())
}
