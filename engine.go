package dropbubble

import (
	"image"

	"github.com/tanema/gween/ease"
)

// tether holds the two points of an active session. The zero value is
// unset; anchor and drag are both valid exactly when set is true.
type tether struct {
	anchor Vec2
	drag   Vec2
	set    bool
}

// Engine is the bubble state machine for one bound element. It holds the
// anchor and drag points, derives the anchor radius from their distance,
// decides between spring-back and dismiss on release, and emits draw
// instructions. It never touches a window: the overlay, element and
// listener are supplied by the caller.
//
// Engine is not safe for concurrent use; drive it from the frame loop.
type Engine struct {
	el       Element
	overlay  Overlay
	listener Listener
	cfg      Config
	metrics  Metrics

	state        State
	pts          tether
	anchorRadius float64
	snapshot     image.Image
	attached     bool

	anim       Animator
	fade       *Task
	springBack *Task
	removal    *Task

	// OnInvalidate, when set, is called whenever the engine's picture changes.
	OnInvalidate func()
}

// NewEngine creates an idle engine bound to el. overlay may be nil, in which
// case sessions run without a floating surface.
func NewEngine(el Element, cfg Config, overlay Overlay, l Listener) *Engine {
	m := cfg.Metrics()
	return &Engine{
		el:           el,
		overlay:      overlay,
		listener:     l,
		cfg:          cfg,
		metrics:      m,
		anchorRadius: m.MaxAnchorRadius,
	}
}

// InitPoint starts a session with both points at (x, y), attaches the
// overlay and starts the element fade-out. It reports whether a session was
// started; a press while already dragging is refused.
//
// A previous session that has not finished is wound up first: a running
// spring-back is ended on the spot (its completion, including OnSpringBack,
// runs before InitPoint continues) and a pending overlay removal is dropped
// so the surface stays attached for the new session.
func (e *Engine) InitPoint(x, y float64) bool {
	if e.state == StateDragging {
		Logger().Debug("dropbubble: press ignored, session active")
		return false
	}
	if e.springBack != nil {
		e.springBack.End()
	}
	if e.removal != nil {
		e.removal.Cancel()
		e.removal = nil
	}
	if e.fade != nil {
		e.fade.Cancel()
		e.fade = nil
	}

	p := Vec2{x, y}
	e.pts = tether{anchor: p, drag: p, set: true}
	e.anchorRadius = e.metrics.MaxAnchorRadius
	e.snapshot = nil
	e.state = StateDragging

	if !e.attached && e.overlay != nil {
		e.overlay.Attach(e, DefaultOverlayParams)
		e.attached = true
		Logger().Info("dropbubble: overlay attached")
	}
	e.startFade()
	e.invalidate()
	return true
}

// UpdatePoint moves the drag point to (x, y) and recomputes the anchor
// radius from the element's current size. Ignored outside a drag.
func (e *Engine) UpdatePoint(x, y float64) {
	if e.state != StateDragging {
		Logger().Debug("dropbubble: move ignored", "state", e.state)
		return
	}
	e.pts.drag = Vec2{x, y}
	e.recomputeRadius()
	e.el.SetAlpha(0)
	e.invalidate()
}

// StopPoint ends the drag. Out of range, the element is hidden and the
// listener's OnDismiss runs; otherwise the bubble springs back to the anchor.
// Ignored outside a drag.
func (e *Engine) StopPoint() {
	if e.state != StateDragging {
		Logger().Debug("dropbubble: release ignored", "state", e.state)
		return
	}
	if e.OutOfRange() {
		e.dismiss()
		return
	}
	e.startSpringBack()
}

// Update advances the fade, spring-back and removal tasks by dt seconds.
func (e *Engine) Update(dt float32) {
	e.anim.Update(dt)
}

// Draw emits the current frame: the drag circle, then the anchor circle and
// band while in range, then the snapshot centered on the drag point. Nothing
// is drawn while idle.
func (e *Engine) Draw(c Canvas) {
	if !e.pts.set {
		return
	}
	col := e.cfg.Color
	c.FillCircle(e.pts.drag, e.metrics.DragRadius, col)
	if !e.OutOfRange() {
		c.FillCircle(e.pts.anchor, e.anchorRadius, col)
		c.FillBand(ComputeBand(e.pts.anchor, e.pts.drag, e.anchorRadius, e.metrics.DragRadius), col)
	}
	if e.snapshot != nil {
		c.DrawImage(e.snapshot, e.pts.drag)
	}
}

// Close cancels every task and removes the overlay if attached. The engine
// returns to idle without notifying the listener. An element hidden by an
// unresolved session is made visible and opaque again; a dismissed element
// stays hidden.
func (e *Engine) Close() {
	for _, t := range []*Task{e.fade, e.springBack, e.removal} {
		if t != nil {
			t.Cancel()
		}
	}
	e.fade, e.springBack, e.removal = nil, nil, nil
	if e.pts.set && e.state != StateDismissing {
		e.el.SetAlpha(1)
		if !e.el.Visible() {
			e.el.SetVisible(true)
		}
	}
	e.remove()
}

// State returns the session phase.
func (e *Engine) State() State { return e.state }

// AnchorRadius returns the current anchor circle radius in pixels.
func (e *Engine) AnchorRadius() float64 { return e.anchorRadius }

// OutOfRange reports whether the anchor radius has fallen below the minimum,
// in which case the band is not drawn and a release dismisses.
func (e *Engine) OutOfRange() bool {
	return e.anchorRadius < e.metrics.MinAnchorRadius
}

// Points returns the anchor and drag points; ok is false while idle.
func (e *Engine) Points() (anchor, drag Vec2, ok bool) {
	return e.pts.anchor, e.pts.drag, e.pts.set
}

// Band returns the current band outline; ok is false while idle or out of
// range.
func (e *Engine) Band() (b Band, ok bool) {
	if !e.pts.set || e.OutOfRange() {
		return Band{}, false
	}
	return ComputeBand(e.pts.anchor, e.pts.drag, e.anchorRadius, e.metrics.DragRadius), true
}

// Attached reports whether the overlay surface currently holds this engine.
func (e *Engine) Attached() bool { return e.attached }

// Snapshot returns the image drawn inside the bubble, or nil.
func (e *Engine) Snapshot() image.Image { return e.snapshot }

// SetSnapshot sets the image drawn inside the bubble for the current session.
// Ignored while idle.
func (e *Engine) SetSnapshot(img image.Image) {
	if !e.pts.set {
		return
	}
	e.snapshot = img
	e.invalidate()
}

// Element returns the bound element.
func (e *Engine) Element() Element { return e.el }

// Metrics returns the pixel radii fixed at construction.
func (e *Engine) Metrics() Metrics { return e.metrics }

// Config returns the engine's tuning.
func (e *Engine) Config() Config { return e.cfg }

// SetListener replaces the listener. nil silences notifications.
func (e *Engine) SetListener(l Listener) { e.listener = l }

// Busy reports whether any fade, spring-back or removal task is running.
func (e *Engine) Busy() bool { return e.anim.Len() > 0 }

func (e *Engine) recomputeRadius() {
	b := e.el.Bounds()
	d := Distance(e.pts.drag, e.pts.anchor)
	e.anchorRadius = AnchorRadius(d, b.Width, b.Height,
		e.metrics.DragRadius, e.cfg.Resistance(), e.metrics.MaxAnchorRadius)
}

func (e *Engine) startFade() {
	t := NewTween(1, [2]float64{1}, [2]float64{0}, e.cfg.FadeDuration, ease.Linear,
		func(v [2]float64) { e.el.SetAlpha(v[0]) })
	t.OnDone(func() {
		e.fade = nil
		if e.el.Visible() {
			e.el.SetVisible(false)
		}
	})
	e.fade = e.anim.Start(t)
}

func (e *Engine) startSpringBack() {
	e.state = StateSpringingBack
	from := e.pts.drag
	to := e.pts.anchor
	t := NewTween(2, [2]float64{from.X, from.Y}, [2]float64{to.X, to.Y},
		e.cfg.SpringBackDuration, Overshoot(float32(e.cfg.OvershootTension)),
		func(v [2]float64) {
			e.pts.drag = Vec2{v[0], v[1]}
			e.recomputeRadius()
			e.invalidate()
		})
	t.OnDone(e.finishSpringBack)
	e.springBack = e.anim.Start(t)
	Logger().Debug("dropbubble: spring back", "from", from, "to", to)
}

func (e *Engine) finishSpringBack() {
	e.springBack = nil
	if e.fade != nil {
		e.fade.Cancel()
		e.fade = nil
	}
	e.el.SetAlpha(1)
	if !e.el.Visible() {
		e.el.SetVisible(true)
	}
	if e.listener != nil {
		e.listener.OnSpringBack(e.el)
	}
	Logger().Info("dropbubble: sprang back")
	e.scheduleRemoval()
}

func (e *Engine) dismiss() {
	e.state = StateDismissing
	if e.fade != nil {
		e.fade.Cancel()
		e.fade = nil
	}
	if e.el.Visible() {
		e.el.SetVisible(false)
	}
	if e.listener != nil {
		e.listener.OnDismiss(e.el)
	}
	Logger().Info("dropbubble: dismissed", "radius", e.anchorRadius)
	e.scheduleRemoval()
}

// scheduleRemoval takes the overlay down after the settle delay so the last
// frame is not clipped. Without an overlay the session resets at once.
func (e *Engine) scheduleRemoval() {
	if !e.attached {
		e.reset()
		return
	}
	e.removal = e.anim.Start(NewDelay(e.cfg.RemovalDelay, func() {
		e.removal = nil
		e.remove()
	}))
}

func (e *Engine) remove() {
	if e.attached {
		if e.overlay != nil {
			e.overlay.Remove(e)
		}
		e.attached = false
		Logger().Info("dropbubble: overlay removed")
	}
	e.reset()
}

func (e *Engine) reset() {
	e.pts = tether{}
	e.anchorRadius = e.metrics.MaxAnchorRadius
	e.snapshot = nil
	e.state = StateIdle
	e.invalidate()
}

func (e *Engine) invalidate() {
	if e.OnInvalidate != nil {
		e.OnInvalidate()
	}
}
