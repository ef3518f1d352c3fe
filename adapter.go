package dropbubble

// PointerPhase is the phase of a raw pointer event.
type PointerPhase uint8

const (
	PointerDown PointerPhase = iota // button or finger went down
	PointerMove                     // moved while held
	PointerUp                       // released
)

// PointerEvent is a raw pointer event in window coordinates.
type PointerEvent struct {
	Phase PointerPhase
	X, Y  float64
}

// AdapterOption configures a GestureAdapter.
type AdapterOption func(*GestureAdapter)

// WithSnapshot sets the function used to capture the element at each press.
// Without it the bubble is drawn with no image inside.
func WithSnapshot(fn SnapshotFunc) AdapterOption {
	return func(a *GestureAdapter) { a.capture = fn }
}

// WithChromeOffset subtracts offset from the element's position when
// computing its center, for hosts whose overlay surface starts below system
// chrome (a status bar, a title bar drawn inside the window).
func WithChromeOffset(offset Vec2) AdapterOption {
	return func(a *GestureAdapter) { a.chrome = offset }
}

// GestureAdapter turns pointer phases on a bound element into engine calls.
// The bubble always starts on the element's center; the press offset is
// kept so the bubble moves rigidly with the pointer afterwards.
type GestureAdapter struct {
	engine  *Engine
	capture SnapshotFunc
	chrome  Vec2
	offset  Vec2
}

// NewGestureAdapter builds the adapter and its engine for el.
func NewGestureAdapter(el Element, cfg Config, overlay Overlay, l Listener, opts ...AdapterOption) *GestureAdapter {
	a := &GestureAdapter{engine: NewEngine(el, cfg, overlay, l)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Engine returns the adapter's engine.
func (a *GestureAdapter) Engine() *Engine { return a.engine }

// Offset returns the press position relative to the element center.
func (a *GestureAdapter) Offset() Vec2 { return a.offset }

// ElementCenter returns the bound element's center in window coordinates,
// measured now rather than cached, so a resized element is picked up.
func (a *GestureAdapter) ElementCenter() Vec2 {
	return a.engine.el.Bounds().Center().Sub(a.chrome)
}

// PointerDown starts a session at the element's center, records the press
// offset and captures a fresh snapshot. A refused press leaves the running
// session untouched.
func (a *GestureAdapter) PointerDown(x, y float64) {
	c := a.ElementCenter()
	if !a.engine.InitPoint(c.X, c.Y) {
		return
	}
	a.offset = Vec2{x - c.X, y - c.Y}
	if a.capture != nil {
		a.engine.SetSnapshot(a.capture(a.engine.el))
	}
}

// PointerMove moves the bubble with the pointer, minus the press offset.
func (a *GestureAdapter) PointerMove(x, y float64) {
	a.engine.UpdatePoint(x-a.offset.X, y-a.offset.Y)
}

// PointerUp clears the press offset and releases the bubble.
func (a *GestureAdapter) PointerUp() {
	a.offset = Vec2{}
	a.engine.StopPoint()
}

// Handle dispatches ev by phase. It always reports true: once bound, the
// adapter claims every event it is given.
func (a *GestureAdapter) Handle(ev PointerEvent) bool {
	switch ev.Phase {
	case PointerDown:
		a.PointerDown(ev.X, ev.Y)
	case PointerMove:
		a.PointerMove(ev.X, ev.Y)
	case PointerUp:
		a.PointerUp()
	}
	return true
}
