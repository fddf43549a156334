package display

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/matkit/internal/overlay"
	"github.com/jmylchreest/matkit/internal/paint"
)

type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) NewPath()            { r.add("new") }
func (r *recorder) MoveTo(x, y float64) { r.add("move %g,%g", x, y) }
func (r *recorder) LineTo(x, y float64) { r.add("line %g,%g", x, y) }
func (r *recorder) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	r.add("curve %g,%g %g,%g %g,%g", x1, y1, x2, y2, x3, y3)
}
func (r *recorder) ClosePath() { r.add("close") }
func (r *recorder) SetSourceRGBA(red, green, blue, alpha float64) {
	r.add("rgba %.2f %.2f %.2f %.2f", red, green, blue, alpha)
}
func (r *recorder) Fill() { r.add("fill") }

func TestCairoCanvas_FillPath(t *testing.T) {
	rec := &recorder{}
	c := &cairoCanvas{cr: rec}

	var p paint.Path
	p.MoveTo(paint.Point{X: 0, Y: 0})
	p.LineTo(paint.Point{X: 10, Y: 0})
	p.CubeTo(paint.Point{X: 12, Y: 0}, paint.Point{X: 12, Y: 2}, paint.Point{X: 12, Y: 4})
	p.Close()

	c.FillPath(p, color.NRGBA{R: 255, G: 0, B: 51, A: 128})

	assert.Equal(t, []string{
		"new",
		"move 0,0",
		"line 10,0",
		"curve 12,0 12,2 12,4",
		"close",
		"rgba 1.00 0.00 0.20 0.50",
		"fill",
	}, rec.calls)
}

func TestCairoCanvas_SkipsEmptyAndTransparent(t *testing.T) {
	rec := &recorder{}
	c := &cairoCanvas{cr: rec}

	c.FillPath(paint.Path{}, color.NRGBA{A: 255})
	c.FillPath(paint.RoundedRect(paint.Rect{W: 10, H: 10}, paint.Uniform(2)), color.NRGBA{R: 255})

	assert.Empty(t, rec.calls)
}

func TestCairoCanvas_DrawsSurface(t *testing.T) {
	rec := &recorder{}
	c := &cairoCanvas{cr: rec}

	shadow := paint.ShadowSettings{Kind: paint.ShadowLayered, Blur: 4, Color: color.NRGBA{A: 0xff}}
	paint.DrawSurface(c, paint.Rect{X: 10, Y: 10, W: 100, H: 40}, paint.Uniform(8), shadow, color.NRGBA{R: 0xff, A: 0xff})

	fills := 0
	for _, call := range rec.calls {
		if call == "fill" {
			fills++
		}
	}
	assert.Equal(t, 5, fills, "four shadow passes and one body")
}

func TestElementMarkup(t *testing.T) {
	e := overlay.Element{
		Kind:  overlay.MessageElement,
		Text:  "a <b> & c",
		Color: color.NRGBA{R: 0x12, G: 0xab, B: 0xff, A: 0xff},
	}
	assert.Equal(t, `<span foreground="#12abff" alpha="100%">a &lt;b&gt; &amp; c</span>`, elementMarkup(e))

	e.Color.A = 0
	assert.Contains(t, elementMarkup(e), `alpha="1%"`)
}
