package dropbubble

import (
	"image"
	"io"

	"github.com/gogpu/gg"
	"github.com/pkg/errors"
)

// RasterCanvas draws engine frames on the CPU with gogpu/gg. It needs no
// window or GPU, which makes it the canvas of choice for tests and offline
// frame export.
type RasterCanvas struct {
	dc  *gg.Context
	err error
}

// NewRasterCanvas creates a transparent w×h canvas.
func NewRasterCanvas(w, h int) *RasterCanvas {
	return &RasterCanvas{dc: gg.NewContext(w, h)}
}

// Clear resets every pixel to transparent.
func (c *RasterCanvas) Clear() {
	c.dc.Clear()
	c.err = nil
}

// FillCircle implements Canvas.
func (c *RasterCanvas) FillCircle(center Vec2, radius float64, col Color) {
	if radius <= 0 {
		return
	}
	c.dc.SetRGBA(col.R, col.G, col.B, col.A)
	c.dc.DrawCircle(center.X, center.Y, radius)
	c.fill()
}

// FillBand implements Canvas.
func (c *RasterCanvas) FillBand(b Band, col Color) {
	c.dc.SetRGBA(col.R, col.G, col.B, col.A)
	c.dc.MoveTo(b.P0.X, b.P0.Y)
	c.dc.QuadraticTo(b.Control.X, b.Control.Y, b.P1.X, b.P1.Y)
	c.dc.LineTo(b.P2.X, b.P2.Y)
	c.dc.QuadraticTo(b.Control.X, b.Control.Y, b.P3.X, b.P3.Y)
	c.dc.ClosePath()
	c.fill()
}

// DrawImage implements Canvas.
func (c *RasterCanvas) DrawImage(img image.Image, center Vec2) {
	b := img.Bounds()
	c.dc.DrawImage(gg.ImageBufFromImage(img), center.X-float64(b.Dx())/2, center.Y-float64(b.Dy())/2)
}

func (c *RasterCanvas) fill() {
	if err := c.dc.Fill(); err != nil && c.err == nil {
		c.err = errors.Wrap(err, "raster fill")
	}
}

// Err returns the first fill error since the last Clear.
func (c *RasterCanvas) Err() error { return c.err }

// Image returns the canvas pixels.
func (c *RasterCanvas) Image() image.Image { return c.dc.Image() }

// EncodePNG writes the canvas as PNG.
func (c *RasterCanvas) EncodePNG(w io.Writer) error {
	return errors.Wrap(c.dc.EncodePNG(w), "encode frame")
}

// Close releases the gg context.
func (c *RasterCanvas) Close() error {
	return c.dc.Close()
}

// RenderFrame draws the engine's current frame into a fresh w×h image.
func RenderFrame(e *Engine, w, h int) (image.Image, error) {
	c := NewRasterCanvas(w, h)
	defer c.Close()
	e.Draw(c)
	if c.err != nil {
		return nil, c.err
	}
	return c.Image(), nil
}

// EncodeFramePNG draws the engine's current frame at w×h and writes it to out
// as PNG.
func EncodeFramePNG(out io.Writer, e *Engine, w, h int) error {
	c := NewRasterCanvas(w, h)
	defer c.Close()
	e.Draw(c)
	if c.err != nil {
		return c.err
	}
	return c.EncodePNG(out)
}
