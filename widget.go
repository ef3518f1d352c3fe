package dropbubble

import (
	"image"
	"image/draw"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	xdraw "golang.org/x/image/draw"
)

// Widget is a rectangular host element: a solid fill, optionally covered by
// an image scaled to its bounds. It implements Element.
type Widget struct {
	Name string
	Rect Rect

	// Color fills the widget's bounds under Image. A zero alpha draws no fill.
	Color Color

	// Image is the widget's content. Changing it after the first draw
	// requires calling Invalidate.
	Image image.Image

	alpha   float64
	visible bool
	gpu     *ebiten.Image
}

// NewWidget creates a visible, opaque widget covering r.
func NewWidget(name string, r Rect) *Widget {
	return &Widget{Name: name, Rect: r, alpha: 1, visible: true}
}

// Bounds implements Element.
func (w *Widget) Bounds() Rect { return w.Rect }

// Alpha implements Element.
func (w *Widget) Alpha() float64 { return w.alpha }

// SetAlpha implements Element. Values are clamped to [0, 1].
func (w *Widget) SetAlpha(a float64) { w.alpha = clamp01(a) }

// Visible implements Element.
func (w *Widget) Visible() bool { return w.visible }

// SetVisible implements Element.
func (w *Widget) SetVisible(v bool) { w.visible = v }

// Invalidate drops the cached GPU copy of Image.
func (w *Widget) Invalidate() {
	if w.gpu != nil {
		w.gpu.Deallocate()
		w.gpu = nil
	}
}

// Capture renders the widget, ignoring its current alpha and visibility,
// into a new image at its measured size.
func (w *Widget) Capture() *image.RGBA {
	return CaptureImage(w.Image, w.Color, int(w.Rect.Width+0.5), int(w.Rect.Height+0.5))
}

// WidgetSnapshot is the SnapshotFunc used for widgets. Other element types
// yield no snapshot.
func WidgetSnapshot(el Element) image.Image {
	w, ok := el.(*Widget)
	if !ok || w == nil {
		return nil
	}
	return w.Capture()
}

// CaptureImage renders a fill color and src scaled to w×h into a new RGBA
// image owned by the caller. src may be nil.
func CaptureImage(src image.Image, fill Color, w, h int) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if fill.A > 0 {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(fill.RGBA()), image.Point{}, draw.Src)
	}
	if src != nil {
		sb := src.Bounds()
		if sb.Dx() == w && sb.Dy() == h {
			draw.Draw(dst, dst.Bounds(), src, sb.Min, draw.Over)
		} else {
			xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, sb, xdraw.Over, nil)
		}
	}
	return dst
}

// draw paints the widget onto dst with its current alpha.
func (w *Widget) draw(dst *ebiten.Image) {
	if !w.visible || w.alpha <= 0 {
		return
	}
	r := w.Rect
	if w.Color.A > 0 {
		c := w.Color
		c.A *= w.alpha
		vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c.RGBA(), true)
	}
	if w.Image == nil {
		return
	}
	if w.gpu == nil {
		w.gpu = ebiten.NewImageFromImage(w.Image)
	}
	b := w.gpu.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width/float64(b.Dx()), r.Height/float64(b.Dy()))
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.ScaleAlpha(float32(w.alpha))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(w.gpu, &op)
}
