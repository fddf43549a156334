package render

import (
	"fmt"
	"image"
	"log/slog"

	"gioui.org/gpu/headless"
	"gioui.org/op"
	giopaint "gioui.org/op/paint"

	"github.com/jmylchreest/matkit/internal/paint/giocanvas"
	"github.com/jmylchreest/matkit/internal/theme"
)

// Ops records the frame's shapes as Gio operations. Text is not included.
func (f *Frame) Ops() *op.Ops {
	ops := new(op.Ops)
	giopaint.Fill(ops, theme.Mix(f.Palette.Surface, f.Palette.OnSurface, 0.06).NRGBA())

	c := giocanvas.New(ops)
	for _, ctl := range f.Controls {
		ctl.Paint(c)
		ctl.ClearDirty()
	}
	for _, s := range f.Surfaces {
		stack := op.Offset(s.WindowBounds.Min).Push(ops)
		s.Paint(c)
		stack.Pop()
	}
	return ops
}

// RenderGPU renders sc with Gio's headless GPU renderer, then draws labels
// on the read-back image. It needs a working GPU context.
func RenderGPU(sc Scene, logger *slog.Logger) (image.Image, error) {
	f, err := Layout(sc, logger)
	if err != nil {
		return nil, err
	}

	w, err := headless.NewWindow(f.Bounds.Dx(), f.Bounds.Dy())
	if err != nil {
		return nil, fmt.Errorf("failed to create headless window: %w", err)
	}
	defer w.Release()

	if err := w.Frame(f.Ops()); err != nil {
		return nil, fmt.Errorf("failed to render frame: %w", err)
	}

	img := image.NewRGBA(f.Bounds)
	if err := w.Screenshot(img); err != nil {
		return nil, fmt.Errorf("failed to read back frame: %w", err)
	}
	drawLabels(img, f.labels)
	return scale(img, sc.Scale), nil
}
