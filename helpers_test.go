package dropbubble

import (
	"image"
	"math"
)

// fakeElement is an Element with plain fields.
type fakeElement struct {
	rect    Rect
	alpha   float64
	visible bool
}

func newFakeElement(r Rect) *fakeElement {
	return &fakeElement{rect: r, alpha: 1, visible: true}
}

func (f *fakeElement) Bounds() Rect       { return f.rect }
func (f *fakeElement) Alpha() float64     { return f.alpha }
func (f *fakeElement) SetAlpha(a float64) { f.alpha = a }
func (f *fakeElement) Visible() bool      { return f.visible }
func (f *fakeElement) SetVisible(v bool)  { f.visible = v }

// fakeOverlay counts attach and remove calls.
type fakeOverlay struct {
	attached []Drawable
	attaches int
	removes  int
	params   OverlayParams
}

func (o *fakeOverlay) Attach(d Drawable, p OverlayParams) {
	o.attached = append(o.attached, d)
	o.attaches++
	o.params = p
}

func (o *fakeOverlay) Remove(d Drawable) {
	for i, a := range o.attached {
		if a == d {
			o.attached = append(o.attached[:i], o.attached[i+1:]...)
			break
		}
	}
	o.removes++
}

// countingListener counts notifications.
type countingListener struct {
	dismissed   int
	sprangBack  int
	lastElement Element
}

func (l *countingListener) OnDismiss(el Element) {
	l.dismissed++
	l.lastElement = el
}

func (l *countingListener) OnSpringBack(el Element) {
	l.sprangBack++
	l.lastElement = el
}

// drawCall is one recorded Canvas call.
type drawCall struct {
	op     string
	center Vec2
	radius float64
	band   Band
	img    image.Image
}

// recordCanvas records every draw call in order.
type recordCanvas struct {
	calls []drawCall
}

func (c *recordCanvas) FillCircle(center Vec2, radius float64, _ Color) {
	c.calls = append(c.calls, drawCall{op: "circle", center: center, radius: radius})
}

func (c *recordCanvas) FillBand(b Band, _ Color) {
	c.calls = append(c.calls, drawCall{op: "band", band: b})
}

func (c *recordCanvas) DrawImage(img image.Image, center Vec2) {
	c.calls = append(c.calls, drawCall{op: "image", center: center, img: img})
}

func (c *recordCanvas) ops() []string {
	out := make([]string, len(c.calls))
	for i, call := range c.calls {
		out[i] = call.op
	}
	return out
}

// newTestEngine builds an engine bound to a 100×100 element at the origin
// with the default config.
func newTestEngine() (*Engine, *fakeElement, *fakeOverlay, *countingListener) {
	el := newFakeElement(Rect{Width: 100, Height: 100})
	ov := &fakeOverlay{}
	l := &countingListener{}
	return NewEngine(el, DefaultConfig(), ov, l), el, ov, l
}

const frameDT = float32(1.0 / 60)

// runUntil ticks e at 60 fps until cond holds or maxFrames elapse. It
// reports whether cond held.
func runUntil(e *Engine, maxFrames int, cond func() bool) bool {
	for i := 0; i < maxFrames; i++ {
		if cond() {
			return true
		}
		e.Update(frameDT)
	}
	return cond()
}

func approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
