package dropbubble

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// --- White pixel singleton (no sync.Once; drawing happens on one goroutine) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used as
// the source of untextured triangles.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// snapshotEntry is the GPU copy of one snapshot and the frame it was last
// drawn in.
type snapshotEntry struct {
	img   *ebiten.Image
	frame uint64
}

// ScreenCanvas draws engine frames onto an ebiten image. Wrap each frame in
// BeginFrame / EndFrame. Each snapshot is uploaded once and its GPU copy is
// kept for as long as some drawable keeps drawing it; EndFrame frees copies
// that were not drawn during the frame.
type ScreenCanvas struct {
	Target *ebiten.Image

	strip []Vec2
	verts []ebiten.Vertex
	inds  []uint16

	frame uint64
	snaps map[image.Image]*snapshotEntry
}

// BeginFrame sets the target for the frame's draw calls.
func (c *ScreenCanvas) BeginFrame(target *ebiten.Image) {
	c.Target = target
	c.frame++
}

// EndFrame drops the target and frees snapshot copies unused this frame.
func (c *ScreenCanvas) EndFrame() {
	c.Target = nil
	for src, e := range c.snaps {
		if e.frame != c.frame {
			e.img.Deallocate()
			delete(c.snaps, src)
		}
	}
}

// Cached returns the number of snapshot copies held on the GPU.
func (c *ScreenCanvas) Cached() int { return len(c.snaps) }

// FillCircle implements Canvas.
func (c *ScreenCanvas) FillCircle(center Vec2, radius float64, col Color) {
	if radius <= 0 {
		return
	}
	vector.DrawFilledCircle(c.Target, float32(center.X), float32(center.Y), float32(radius), col.RGBA(), true)
}

// FillBand implements Canvas. The outline is flattened into a triangle strip
// between its two curved edges.
func (c *ScreenCanvas) FillBand(b Band, col Color) {
	c.strip = b.Strip(bandSegments, c.strip)
	n := len(c.strip)

	if cap(c.verts) < n {
		c.verts = make([]ebiten.Vertex, n)
	}
	c.verts = c.verts[:n]
	r := float32(col.R * col.A)
	g := float32(col.G * col.A)
	bl := float32(col.B * col.A)
	a := float32(col.A)
	for i, p := range c.strip {
		c.verts[i] = ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: r,
			ColorG: g,
			ColorB: bl,
			ColorA: a,
		}
	}
	c.inds = stripIndices(n/2, c.inds)

	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = true
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	c.Target.DrawTriangles(c.verts, c.inds, ensureWhitePixel(), &op)
}

// DrawImage implements Canvas. img must be a comparable value, such as
// any of the image package's pointer types.
func (c *ScreenCanvas) DrawImage(img image.Image, center Vec2) {
	e, ok := c.snaps[img]
	if !ok {
		if c.snaps == nil {
			c.snaps = make(map[image.Image]*snapshotEntry)
		}
		e = &snapshotEntry{img: ebiten.NewImageFromImage(img)}
		c.snaps[img] = e
	}
	e.frame = c.frame
	b := e.img.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(center.X-float64(b.Dx())/2, center.Y-float64(b.Dy())/2)
	c.Target.DrawImage(e.img, &op)
}

// Release frees every cached snapshot copy.
func (c *ScreenCanvas) Release() {
	for src, e := range c.snaps {
		e.img.Deallocate()
		delete(c.snaps, src)
	}
}
