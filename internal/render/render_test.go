package render

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/matkit/internal/controls"
	"github.com/jmylchreest/matkit/internal/overlay"
	"github.com/jmylchreest/matkit/internal/theme"
)

func sampleScene() Scene {
	return Scene{
		Width:    960,
		Height:   600,
		Controls: true,
		Requests: []overlay.Request{
			{Kind: overlay.Toast, Severity: overlay.Error, Message: "Disk full", Duration: time.Second},
			{Kind: overlay.Snackbar, Message: "Message archived", ActionLabel: "Undo"},
		},
	}
}

func TestLayout_DocksControlsAndPlacesOverlays(t *testing.T) {
	f, err := Layout(sampleScene(), nil)
	require.NoError(t, err)

	want := image.Rect(controls.DrawerWidth, controls.BarHeight, 960, 600-controls.BarHeight)
	assert.Equal(t, want, f.Client)
	assert.Len(t, f.Controls, 4)

	require.Len(t, f.Surfaces, 2)
	toast, snack := f.Surfaces[0], f.Surfaces[1]
	assert.Equal(t, overlay.TopRight, toast.Placement)
	assert.Equal(t, overlay.BottomCenter, snack.Placement)
	assert.True(t, toast.Bounds.In(f.Client), "toast %v outside %v", toast.Bounds, f.Client)
	assert.True(t, snack.Bounds.In(f.Client), "snackbar %v outside %v", snack.Bounds, f.Client)
	assert.True(t, snack.HasAction())
}

func TestLayout_NoControlsUsesWholeFrame(t *testing.T) {
	sc := sampleScene()
	sc.Controls = false

	f, err := Layout(sc, nil)
	require.NoError(t, err)
	assert.Equal(t, f.Bounds, f.Client)
	assert.Empty(t, f.Controls)
}

func TestLayout_EmptyScene(t *testing.T) {
	_, err := Layout(Scene{}, nil)
	assert.ErrorIs(t, err, ErrEmptyScene)
}

func TestLayout_LabelsCarryText(t *testing.T) {
	f, err := Layout(sampleScene(), nil)
	require.NoError(t, err)

	var texts []string
	for _, l := range f.labels {
		texts = append(texts, l.text)
	}
	assert.Contains(t, texts, "matkit")
	assert.Contains(t, texts, "Inbox")
	assert.Contains(t, texts, "Disk full")
	assert.Contains(t, texts, "Undo")
}

func TestImage_PaintsSurfaceBodies(t *testing.T) {
	f, err := Layout(sampleScene(), nil)
	require.NoError(t, err)

	img := f.Image()
	assert.Equal(t, f.Bounds, img.Bounds())

	page := img.RGBAAt(f.Client.Min.X+40, f.Client.Min.Y+200)
	toast := f.Surfaces[0].Bounds
	body := img.RGBAAt(toast.Min.X+4, toast.Min.Y+toast.Dy()/2)
	assert.NotEqual(t, page, body, "toast body differs from the page")

	for _, ctl := range f.Controls {
		assert.False(t, ctl.Dirty(), "painting clears dirty flags")
	}
}

func TestRender_Scale(t *testing.T) {
	sc := sampleScene()
	sc.Scale = 0.5

	img, err := Render(sc, nil)
	require.NoError(t, err)
	assert.Equal(t, 480, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestSave_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.png")
	sc := sampleScene()
	sc.Palette = theme.Default()

	require.NoError(t, Save(sc, path, nil))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestOps_RecordsFrame(t *testing.T) {
	f, err := Layout(sampleScene(), nil)
	require.NoError(t, err)
	assert.NotNil(t, f.Ops())
}
