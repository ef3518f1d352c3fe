package dropbubble

import "github.com/hajimehoshi/ebiten/v2"

// --- Pointer state ---

// pointerState tracks the single pointer the host listens to. Multi-touch is
// not supported: the first finger down wins until it lifts.
type pointerState struct {
	down   bool
	lastX  float64
	lastY  float64
	target *GestureAdapter // adapter that claimed the press, nil if unclaimed
}

// --- Hit testing ---

// hitTest finds the adapter bound to the topmost element at (x, y). Widgets
// are tested in reverse painter order; bound elements that are not widgets
// are tested afterwards, most recently attached first. Hidden elements are
// skipped. An overlay that does not pass input through claims every press.
func (h *Host) hitTest(x, y float64) *GestureAdapter {
	if h.overlay.BlocksInput() {
		return nil
	}
	for i := len(h.widgets) - 1; i >= 0; i-- {
		w := h.widgets[i]
		if !w.visible || !w.Rect.Contains(x, y) {
			continue
		}
		if a, ok := h.bound[w]; ok {
			return a
		}
		// Unbound widgets are opaque to presses.
		return nil
	}
	for i := len(h.bindings) - 1; i >= 0; i-- {
		el := h.bindings[i].engine.el
		if _, isWidget := el.(*Widget); isWidget {
			continue
		}
		if el.Visible() && el.Bounds().Contains(x, y) {
			return h.bindings[i]
		}
	}
	return nil
}

// --- Input processing ---

// processDevices reads the first touch if any, otherwise the mouse's left
// button, and feeds the pointer state machine.
func (h *Host) processDevices() {
	h.touchIDs = ebiten.AppendTouchIDs(h.touchIDs[:0])

	if h.touchActive {
		for _, id := range h.touchIDs {
			if id == h.touchID {
				tx, ty := ebiten.TouchPosition(id)
				h.processPointer(float64(tx), float64(ty), true)
				return
			}
		}
		// Finger lifted: release where it was last seen.
		h.touchActive = false
		h.processPointer(h.pointer.lastX, h.pointer.lastY, false)
		return
	}

	if len(h.touchIDs) > 0 && !h.pointer.down {
		h.touchID = h.touchIDs[0]
		h.touchActive = true
		tx, ty := ebiten.TouchPosition(h.touchID)
		h.processPointer(float64(tx), float64(ty), true)
		return
	}

	mx, my := ebiten.CursorPosition()
	h.processPointer(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// processPointer runs the pointer state machine for one sample.
func (h *Host) processPointer(x, y float64, pressed bool) {
	ps := &h.pointer

	switch {
	case pressed && !ps.down:
		// Just pressed: the element under the pointer claims it until release.
		ps.down = true
		ps.lastX = x
		ps.lastY = y
		ps.target = h.hitTest(x, y)
		h.dispatch(ps.target, PointerEvent{Phase: PointerDown, X: x, Y: y})

	case !pressed && ps.down:
		h.dispatch(ps.target, PointerEvent{Phase: PointerUp, X: x, Y: y})
		ps.down = false
		ps.target = nil
		ps.lastX = x
		ps.lastY = y

	case pressed && ps.down:
		if x != ps.lastX || y != ps.lastY {
			h.dispatch(ps.target, PointerEvent{Phase: PointerMove, X: x, Y: y})
			ps.lastX = x
			ps.lastY = y
		}
	}
}

// dispatch hands ev to the claiming adapter, or to OnUnhandled.
func (h *Host) dispatch(a *GestureAdapter, ev PointerEvent) {
	if a != nil && a.Handle(ev) {
		return
	}
	if h.OnUnhandled != nil {
		h.OnUnhandled(ev)
	}
}
