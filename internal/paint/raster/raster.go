// Package raster implements paint.Canvas on an in-memory RGBA image.
// Paths are rasterised with golang.org/x/image/vector and composited
// source-over, which makes it suitable for PNG previews and for tests that
// need to inspect actual pixels.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/disintegration/imaging"
	"golang.org/x/image/vector"

	"github.com/jmylchreest/matkit/internal/paint"
)

// Canvas draws into an *image.RGBA.
type Canvas struct {
	img    *image.RGBA
	origin paint.Point
	rast   *vector.Rasterizer
}

// New creates a transparent canvas of the given size.
func New(width, height int) *Canvas {
	return FromImage(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// FromImage wraps an existing image. Drawing modifies img in place.
func FromImage(img *image.RGBA) *Canvas {
	b := img.Bounds()
	return &Canvas{
		img:  img,
		rast: vector.NewRasterizer(b.Dx(), b.Dy()),
	}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Fill replaces every pixel with col.
func (c *Canvas) Fill(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// WithOrigin returns a canvas sharing the same image whose (0,0) maps to
// (x, y) of the receiver. Hosts use it to paint a surface in window-local
// coordinates onto a larger screen preview.
func (c *Canvas) WithOrigin(x, y float64) *Canvas {
	b := c.img.Bounds()
	return &Canvas{
		img:    c.img,
		origin: paint.Pt(c.origin.X+x, c.origin.Y+y),
		rast:   vector.NewRasterizer(b.Dx(), b.Dy()),
	}
}

// FillPath implements paint.Canvas.
func (c *Canvas) FillPath(p paint.Path, col color.NRGBA) {
	if p.Empty() || col.A == 0 {
		return
	}
	b := c.img.Bounds()
	c.rast.Reset(b.Dx(), b.Dy())
	c.rast.DrawOp = draw.Over

	ox := float32(c.origin.X) - float32(b.Min.X)
	oy := float32(c.origin.Y) - float32(b.Min.Y)
	for _, s := range p.Segments {
		switch s.Op {
		case paint.OpMoveTo:
			c.rast.MoveTo(float32(s.Points[0].X)+ox, float32(s.Points[0].Y)+oy)
		case paint.OpLineTo:
			c.rast.LineTo(float32(s.Points[0].X)+ox, float32(s.Points[0].Y)+oy)
		case paint.OpCubeTo:
			c.rast.CubeTo(
				float32(s.Points[0].X)+ox, float32(s.Points[0].Y)+oy,
				float32(s.Points[1].X)+ox, float32(s.Points[1].Y)+oy,
				float32(s.Points[2].X)+ox, float32(s.Points[2].Y)+oy,
			)
		case paint.OpClose:
			c.rast.ClosePath()
		}
	}
	c.rast.Draw(c.img, b, image.NewUniform(col), b.Min)
}

// SavePNG writes the canvas to path. The format follows the file extension.
func (c *Canvas) SavePNG(path string) error {
	if err := imaging.Save(c.img, path); err != nil {
		return fmt.Errorf("failed to save image %s: %w", path, err)
	}
	return nil
}

// Encode writes the canvas as PNG to w.
func (c *Canvas) Encode(w io.Writer) error {
	return imaging.Encode(w, c.img, imaging.PNG)
}
