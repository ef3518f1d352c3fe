package dropbubble

import "image"

// Element is the host UI element a bubble is bound to. The engine toggles
// its opacity and visibility but does not own it.
type Element interface {
	// Bounds returns the element's position and measured size in window
	// coordinates, the same space pointer events arrive in.
	Bounds() Rect
	Alpha() float64
	SetAlpha(a float64)
	Visible() bool
	SetVisible(v bool)
}

// Listener is notified when a session resolves. Both methods run
// synchronously on the frame that resolves the session, before the overlay
// is removed.
type Listener interface {
	OnDismiss(el Element)
	OnSpringBack(el Element)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Dismiss    func(Element)
	SpringBack func(Element)
}

// OnDismiss implements Listener.
func (f ListenerFuncs) OnDismiss(el Element) {
	if f.Dismiss != nil {
		f.Dismiss(el)
	}
}

// OnSpringBack implements Listener.
func (f ListenerFuncs) OnSpringBack(el Element) {
	if f.SpringBack != nil {
		f.SpringBack(el)
	}
}

// SnapshotFunc captures the element's current appearance at its measured
// size. The returned image must not change afterwards.
type SnapshotFunc func(el Element) image.Image

// Drawable is anything the overlay can paint each frame.
type Drawable interface {
	Draw(c Canvas)
}

// OverlayParams describe the floating surface a session asks for.
type OverlayParams struct {
	// FullScreen sizes the surface to the whole window.
	FullScreen bool
	// Transparent leaves everything the drawable does not paint see-through.
	Transparent bool
	// PassInput lets pointer events reach the widgets under the surface.
	PassInput bool
}

// DefaultOverlayParams is a full-window, transparent surface that does not
// intercept input. Its local coordinates equal window coordinates.
var DefaultOverlayParams = OverlayParams{FullScreen: true, Transparent: true, PassInput: true}

// Overlay is the host capability for a floating top-level surface.
type Overlay interface {
	Attach(d Drawable, p OverlayParams)
	Remove(d Drawable)
}

// Canvas receives the engine's draw instructions.
type Canvas interface {
	FillCircle(center Vec2, radius float64, c Color)
	FillBand(b Band, c Color)
	// DrawImage draws img with its center at center.
	DrawImage(img image.Image, center Vec2)
}
