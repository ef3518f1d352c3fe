package dropbubble

import (
	"errors"
	"testing"
)

// newBadgeHost returns a host with one 50×50 widget centered on (65, 70),
// already bound.
func newBadgeHost(t *testing.T) (*Host, *Widget, *countingListener) {
	t.Helper()
	h := NewHost()
	w := NewWidget("badge", Rect{X: 40, Y: 45, Width: 50, Height: 50})
	h.AddWidget(w)
	l := &countingListener{}
	if _, err := h.Attach(w, l); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	return h, w, l
}

func tickN(h *Host, n int) {
	for i := 0; i < n; i++ {
		h.Tick(frameDT)
	}
}

func TestHostAttachNil(t *testing.T) {
	h := NewHost()
	if _, err := h.Attach(nil, nil); !errors.Is(err, ErrNilElement) {
		t.Errorf("Attach(nil) error = %v, want ErrNilElement", err)
	}
	var w *Widget
	if _, err := h.Attach(w, nil); !errors.Is(err, ErrNilElement) {
		t.Errorf("Attach(typed nil) error = %v, want ErrNilElement", err)
	}
	var fe *fakeElement
	if _, err := h.Attach(fe, nil); !errors.Is(err, ErrNilElement) {
		t.Errorf("Attach(typed nil non-widget) error = %v, want ErrNilElement", err)
	}
	if len(h.bindings) != 0 {
		t.Errorf("bindings = %d, want 0", len(h.bindings))
	}

	// A press after the failed attach must not reach a nil element.
	h.InjectPress(10, 10)
	h.Tick(frameDT)
}

func TestHostDetachMidDragRestoresWidget(t *testing.T) {
	h, w, l := newBadgeHost(t)

	h.InjectPress(65, 70)
	h.InjectMove(70, 70)
	tickN(h, 20) // past the 250ms fade
	if w.Visible() || w.Alpha() != 0 {
		t.Fatalf("visible %v alpha %f before Detach, want faded out", w.Visible(), w.Alpha())
	}

	h.Detach(w)
	if !w.Visible() || w.Alpha() != 1 {
		t.Errorf("visible %v alpha %f after Detach, want true 1", w.Visible(), w.Alpha())
	}
	if l.dismissed+l.sprangBack != 0 {
		t.Error("Detach must not notify the listener")
	}
	if h.hitTest(65, 70) != nil {
		t.Error("detached widget should be an unbound blocker, not a bound target")
	}
}

func TestHostDetachAfterDismissKeepsWidgetHidden(t *testing.T) {
	h, w, l := newBadgeHost(t)

	h.InjectDrag(65, 70, 200, 70, 4)
	tickN(h, 4)
	if l.dismissed != 1 {
		t.Fatalf("dismissed = %d, want 1", l.dismissed)
	}

	h.Detach(w) // during the removal delay
	if w.Visible() {
		t.Error("dismissed widget reappeared on Detach")
	}
}

func TestHostOverlayBlockingInput(t *testing.T) {
	h, w, l := newBadgeHost(t)
	unhandled := 0
	h.OnUnhandled = func(PointerEvent) { unhandled++ }

	blocker, _, _, _ := newTestEngine()
	h.Overlay().Attach(blocker, OverlayParams{FullScreen: true, Transparent: true})
	if !h.Overlay().BlocksInput() {
		t.Fatal("a drawable without PassInput should block input")
	}

	h.InjectPress(65, 70)
	h.Tick(frameDT)
	if h.Adapter(w).Engine().State() != StateIdle || unhandled != 1 {
		t.Errorf("state %v unhandled %d, want the press stopped at the overlay",
			h.Adapter(w).Engine().State(), unhandled)
	}
	h.InjectRelease(65, 70)
	h.Tick(frameDT)

	h.Overlay().Remove(blocker)
	if h.Overlay().BlocksInput() {
		t.Fatal("BlocksInput should clear once the drawable is removed")
	}
	h.InjectPress(65, 70)
	h.Tick(frameDT)
	if h.Adapter(w).Engine().State() != StateDragging {
		t.Errorf("State = %v, want dragging", h.Adapter(w).Engine().State())
	}
	_ = l
}

func TestHostAttachIdempotent(t *testing.T) {
	h, w, _ := newBadgeHost(t)
	first := h.Adapter(w)

	l2 := &countingListener{}
	a, err := h.Attach(w, l2)
	if err != nil {
		t.Fatalf("second Attach: %v", err)
	}
	if a != first {
		t.Error("second Attach should return the existing adapter")
	}
	if len(h.bindings) != 1 {
		t.Errorf("bindings = %d, want 1", len(h.bindings))
	}

	// The replacement listener receives the notification.
	h.InjectDrag(65, 70, 200, 70, 4)
	tickN(h, 4)
	if l2.dismissed != 1 {
		t.Errorf("new listener dismissed = %d, want 1", l2.dismissed)
	}
}

func TestHostAttachInstallsWidgetSnapshot(t *testing.T) {
	h, w, _ := newBadgeHost(t)
	w.Color = Color{R: 0, G: 0, B: 1, A: 1}

	h.InjectPress(65, 70)
	h.Tick(frameDT)

	snap := h.Adapter(w).Engine().Snapshot()
	if snap == nil {
		t.Fatal("widget session should carry a snapshot")
	}
	if b := snap.Bounds(); b.Dx() != 50 || b.Dy() != 50 {
		t.Errorf("snapshot size = %v, want 50×50", b.Size())
	}
}

func TestHostInjectDragDismisses(t *testing.T) {
	h, w, l := newBadgeHost(t)
	e := h.Adapter(w).Engine()

	h.InjectDrag(65, 70, 160, 70, 6)
	if h.PendingInjections() != 6 {
		t.Fatalf("PendingInjections = %d, want 6", h.PendingInjections())
	}

	tickN(h, 5)
	_, drag, _ := e.Points()
	if drag != (Vec2{160, 70}) {
		t.Errorf("drag = %v before release, want (160,70)", drag)
	}
	if h.Overlay().Len() != 1 {
		t.Errorf("overlay Len = %d during drag, want 1", h.Overlay().Len())
	}

	h.Tick(frameDT) // release
	if l.dismissed != 1 {
		t.Fatalf("dismissed = %d, want 1", l.dismissed)
	}
	if w.Visible() {
		t.Error("dismissed widget should be hidden")
	}

	tickN(h, 10)
	if h.Overlay().Len() != 0 {
		t.Errorf("overlay Len = %d after settle, want 0", h.Overlay().Len())
	}
	if e.State() != StateIdle {
		t.Errorf("State = %v, want idle", e.State())
	}
}

func TestHostShortDragSpringsBack(t *testing.T) {
	h, w, l := newBadgeHost(t)

	h.InjectDrag(65, 70, 68, 70, 4)
	tickN(h, 60)

	if l.sprangBack != 1 || l.dismissed != 0 {
		t.Errorf("sprangBack %d dismissed %d, want 1 0", l.sprangBack, l.dismissed)
	}
	if !w.Visible() || w.Alpha() != 1 {
		t.Errorf("widget visible %v alpha %f, want true 1", w.Visible(), w.Alpha())
	}
	if h.Overlay().Attaches() != 1 {
		t.Errorf("overlay attaches = %d, want 1", h.Overlay().Attaches())
	}
}

func TestHostUnhandledEvents(t *testing.T) {
	h, _, l := newBadgeHost(t)
	var phases []PointerPhase
	h.OnUnhandled = func(ev PointerEvent) { phases = append(phases, ev.Phase) }

	h.InjectDrag(300, 300, 320, 300, 3)
	tickN(h, 3)

	want := []PointerPhase{PointerDown, PointerMove, PointerUp}
	if len(phases) != len(want) {
		t.Fatalf("unhandled phases = %v, want %v", phases, want)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("phase[%d] = %d, want %d", i, phases[i], want[i])
		}
	}
	if l.dismissed+l.sprangBack != 0 {
		t.Error("a press outside the widget reached its listener")
	}
}

func TestHostPressClaimedUntilRelease(t *testing.T) {
	h, w, l := newBadgeHost(t)
	unhandled := 0
	h.OnUnhandled = func(PointerEvent) { unhandled++ }

	// Starts on the widget and ends far outside it: the widget keeps the
	// gesture for its whole duration.
	h.InjectDrag(65, 70, 400, 400, 5)
	tickN(h, 5)

	if unhandled != 0 {
		t.Errorf("unhandled = %d, want 0", unhandled)
	}
	if l.dismissed != 1 {
		t.Errorf("dismissed = %d, want 1", l.dismissed)
	}
	_ = w
}

func TestHostHiddenWidgetIgnored(t *testing.T) {
	h, w, l := newBadgeHost(t)
	w.SetVisible(false)
	unhandled := 0
	h.OnUnhandled = func(PointerEvent) { unhandled++ }

	h.InjectPress(65, 70)
	h.InjectRelease(65, 70)
	tickN(h, 2)

	if unhandled != 2 {
		t.Errorf("unhandled = %d, want 2", unhandled)
	}
	if h.Adapter(w).Engine().State() != StateIdle || l.sprangBack != 0 {
		t.Error("hidden widget started a session")
	}
}

func TestHostUnboundWidgetBlocksPress(t *testing.T) {
	h, w, _ := newBadgeHost(t)
	cover := NewWidget("cover", Rect{X: 0, Y: 0, Width: 200, Height: 200})
	h.AddWidget(cover)

	h.InjectPress(65, 70)
	h.Tick(frameDT)

	if h.Adapter(w).Engine().State() != StateIdle {
		t.Error("press went through an unbound widget on top")
	}
}

func TestHostNonWidgetElement(t *testing.T) {
	h := NewHost()
	el := newFakeElement(Rect{X: 0, Y: 0, Width: 40, Height: 40})
	l := &countingListener{}
	a, err := h.Attach(el, l)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}

	h.InjectPress(20, 20)
	h.Tick(frameDT)

	if a.Engine().State() != StateDragging {
		t.Errorf("State = %v, want dragging", a.Engine().State())
	}
	if a.Engine().Snapshot() != nil {
		t.Error("non-widget element should have no snapshot by default")
	}
}

func TestHostDetach(t *testing.T) {
	h, w, l := newBadgeHost(t)

	h.InjectPress(65, 70)
	h.Tick(frameDT)
	if h.Overlay().Len() != 1 {
		t.Fatalf("overlay Len = %d, want 1", h.Overlay().Len())
	}

	h.Detach(w)
	if h.Adapter(w) != nil {
		t.Error("adapter still bound after Detach")
	}
	if h.Overlay().Len() != 0 {
		t.Errorf("overlay Len = %d after Detach, want 0", h.Overlay().Len())
	}
	if h.pointer.target != nil {
		t.Error("pointer still targets the detached adapter")
	}

	h.InjectRelease(65, 70)
	h.Tick(frameDT)
	if l.dismissed+l.sprangBack != 0 {
		t.Error("detached listener notified")
	}

	h.Detach(w) // no-op
}

func TestOverlayLayerSessionsPassInput(t *testing.T) {
	h, _, _ := newBadgeHost(t)
	h.InjectPress(65, 70)
	h.Tick(frameDT)
	if h.Overlay().Len() != 1 {
		t.Fatalf("overlay Len = %d, want 1", h.Overlay().Len())
	}
	if h.Overlay().BlocksInput() {
		t.Error("bubble sessions attach with PassInput and must not block")
	}
}

func TestOverlayLayerAttachTwice(t *testing.T) {
	var o OverlayLayer
	e, _, _, _ := newTestEngine()

	o.Attach(e, DefaultOverlayParams)
	o.Attach(e, DefaultOverlayParams)
	if o.Len() != 1 || o.Attaches() != 1 {
		t.Errorf("Len %d Attaches %d, want 1 1", o.Len(), o.Attaches())
	}

	o.Remove(e)
	o.Remove(e)
	if o.Len() != 0 {
		t.Errorf("Len = %d, want 0", o.Len())
	}
}

func TestOverlayLayerDrawOrder(t *testing.T) {
	var o OverlayLayer
	e1, _, _, _ := newTestEngine()
	e2, _, _, _ := newTestEngine()
	o.Attach(e1, DefaultOverlayParams)
	o.Attach(e2, DefaultOverlayParams)
	e1.InitPoint(10, 10)
	e2.InitPoint(20, 20)

	var c recordCanvas
	o.Draw(&c)
	// Each in-range engine emits drag circle, anchor circle, band.
	if len(c.calls) != 6 {
		t.Fatalf("calls = %v, want 6", c.ops())
	}
	if c.calls[0].center != (Vec2{10, 10}) {
		t.Errorf("first drawable drew at %v, want (10,10)", c.calls[0].center)
	}
	if c.calls[3].center != (Vec2{20, 20}) {
		t.Errorf("second drawable drew at %v, want (20,20)", c.calls[3].center)
	}
}

func TestInjectDragMinimumFrames(t *testing.T) {
	h := NewHost()
	h.InjectDrag(0, 0, 10, 10, 1)
	if h.PendingInjections() != 2 {
		t.Errorf("PendingInjections = %d, want 2 (press + release)", h.PendingInjections())
	}
}

func TestInjectedInputConsumedOnePerTick(t *testing.T) {
	h := NewHost()
	h.InjectPress(1, 1)
	h.InjectMove(2, 2)
	h.InjectRelease(2, 2)

	h.Tick(frameDT)
	if h.PendingInjections() != 2 {
		t.Errorf("after 1 tick: %d pending, want 2", h.PendingInjections())
	}
	tickN(h, 2)
	if h.PendingInjections() != 0 {
		t.Errorf("after 3 ticks: %d pending, want 0", h.PendingInjections())
	}
}
