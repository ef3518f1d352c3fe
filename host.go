package dropbubble

import (
	"reflect"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
)

// overlayEntry is one drawable on the overlay layer.
type overlayEntry struct {
	d Drawable
	p OverlayParams
}

// OverlayLayer is the host's floating surface: drawables attached to it are
// painted above every widget, in window coordinates. It implements Overlay.
//
// The layer always covers the whole window and is transparent wherever
// nothing is drawn; params asking for anything else are logged and ignored.
// PassInput is honored: while any attached drawable has it unset, presses
// stop at the layer and never reach widgets.
type OverlayLayer struct {
	entries []overlayEntry
	attachs int
}

// Attach implements Overlay. Attaching a drawable that is already on the
// layer only updates its params.
func (o *OverlayLayer) Attach(d Drawable, p OverlayParams) {
	if !p.FullScreen || !p.Transparent {
		Logger().Warn("dropbubble: overlay is always full-screen and transparent",
			"fullScreen", p.FullScreen, "transparent", p.Transparent)
	}
	for i := range o.entries {
		if o.entries[i].d == d {
			o.entries[i].p = p
			Logger().Warn("dropbubble: drawable already on overlay")
			return
		}
	}
	o.entries = append(o.entries, overlayEntry{d: d, p: p})
	o.attachs++
}

// BlocksInput reports whether an attached drawable asked the layer to take
// pointer input instead of passing it through.
func (o *OverlayLayer) BlocksInput() bool {
	for _, e := range o.entries {
		if !e.p.PassInput {
			return true
		}
	}
	return false
}

// Remove implements Overlay.
func (o *OverlayLayer) Remove(d Drawable) {
	for i := range o.entries {
		if o.entries[i].d == d {
			copy(o.entries[i:], o.entries[i+1:])
			o.entries[len(o.entries)-1] = overlayEntry{}
			o.entries = o.entries[:len(o.entries)-1]
			return
		}
	}
}

// Len returns the number of attached drawables.
func (o *OverlayLayer) Len() int { return len(o.entries) }

// Attaches returns how many times a drawable has been newly attached.
func (o *OverlayLayer) Attaches() int { return o.attachs }

// Draw paints every attached drawable onto c in attach order.
func (o *OverlayLayer) Draw(c Canvas) {
	for _, e := range o.entries {
		e.d.Draw(c)
	}
}

// Host owns the widgets, the overlay layer, the bound gesture adapters and
// the input state of one window.
type Host struct {
	// Config is used for every adapter created by Attach.
	Config Config

	// ClearColor fills the screen before widgets are drawn. A zero alpha
	// leaves the screen untouched.
	ClearColor Color

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	// OnUnhandled receives pointer events that no bound element claimed.
	OnUnhandled func(PointerEvent)

	widgets  []*Widget
	overlay  OverlayLayer
	bindings []*GestureAdapter
	bound    map[Element]*GestureAdapter
	canvas   ScreenCanvas
	debug    bool

	// Input state
	pointer     pointerState
	touchIDs    []ebiten.TouchID
	touchID     ebiten.TouchID
	touchActive bool

	// Testing
	injectQueue     []syntheticPointerEvent
	testRunner      *TestRunner
	screenshotQueue []string
}

// NewHost creates an empty host with the default config.
func NewHost() *Host {
	return &Host{
		Config:        DefaultConfig(),
		ScreenshotDir: "screenshots",
		bound:         make(map[Element]*GestureAdapter),
	}
}

// AddWidget appends w on top of the existing widgets.
func (h *Host) AddWidget(w *Widget) {
	h.widgets = append(h.widgets, w)
}

// Widgets returns the widgets in painter order. The returned slice MUST NOT
// be mutated.
func (h *Host) Widgets() []*Widget {
	return h.widgets
}

// Overlay returns the host's overlay layer.
func (h *Host) Overlay() *OverlayLayer {
	return &h.overlay
}

// Attach binds a bubble to el. Widgets get WidgetSnapshot unless opts supply
// another snapshot function. Binding is idempotent: a second call for the
// same element returns the existing adapter with its listener replaced.
func (h *Host) Attach(el Element, l Listener, opts ...AdapterOption) (*GestureAdapter, error) {
	if isNilElement(el) {
		return nil, errors.WithStack(ErrNilElement)
	}
	if a, ok := h.bound[el]; ok {
		a.engine.SetListener(l)
		return a, nil
	}
	if _, ok := el.(*Widget); ok {
		opts = append([]AdapterOption{WithSnapshot(WidgetSnapshot)}, opts...)
	}
	a := NewGestureAdapter(el, h.Config, &h.overlay, l, opts...)
	h.bound[el] = a
	h.bindings = append(h.bindings, a)
	return a, nil
}

// Detach unbinds el, tearing down any session in progress.
func (h *Host) Detach(el Element) {
	a, ok := h.bound[el]
	if !ok {
		return
	}
	a.engine.Close()
	delete(h.bound, el)
	for i, b := range h.bindings {
		if b == a {
			h.bindings = append(h.bindings[:i], h.bindings[i+1:]...)
			break
		}
	}
	if h.pointer.target == a {
		h.pointer.target = nil
	}
}

// Adapter returns the adapter bound to el, or nil.
func (h *Host) Adapter(el Element) *GestureAdapter {
	return h.bound[el]
}

// Update processes input and advances every engine by one tick.
func (h *Host) Update() {
	h.tick(float32(1.0/float64(ebiten.TPS())), true)
}

// Tick advances the host by dt seconds using only injected input. Use it to
// drive a host without a window (tests, headless replays).
func (h *Host) Tick(dt float32) {
	h.tick(dt, false)
}

func (h *Host) tick(dt float32, devices bool) {
	var t0 time.Time
	if h.debug {
		t0 = time.Now()
	}

	if h.testRunner != nil {
		h.testRunner.step(h)
	}
	if !h.processInjectedInput() && devices {
		h.processDevices()
	}
	for _, a := range h.bindings {
		a.engine.Update(dt)
	}

	if h.debug {
		h.debugLog(time.Since(t0))
	}
}

// Draw paints widgets, then the overlay layer, then flushes queued
// screenshots.
func (h *Host) Draw(screen *ebiten.Image) {
	if h.ClearColor.A > 0 {
		screen.Fill(h.ClearColor.RGBA())
	}
	for _, w := range h.widgets {
		w.draw(screen)
	}
	h.canvas.BeginFrame(screen)
	h.overlay.Draw(&h.canvas)
	h.canvas.EndFrame()
	h.flushScreenshots(screen)
}

// SetDebugMode enables or disables per-frame debug logging.
func (h *Host) SetDebugMode(enabled bool) {
	h.debug = enabled
}

// isNilElement catches a nil interface and a typed nil of any pointer-like
// implementation.
func isNilElement(el Element) bool {
	if el == nil {
		return true
	}
	v := reflect.ValueOf(el)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
