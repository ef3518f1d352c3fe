package dropbubble

import "time"

// debugLog reports per-tick stats at debug level: tick time, overlay size
// and the state of every engine that is not idle.
func (h *Host) debugLog(tick time.Duration) {
	log := Logger()
	log.Debug("dropbubble: tick",
		"time", tick,
		"overlay", h.overlay.Len(),
		"bindings", len(h.bindings),
		"pending", len(h.injectQueue))
	for _, a := range h.bindings {
		e := a.engine
		if e.state == StateIdle {
			continue
		}
		log.Debug("dropbubble: session",
			"state", e.state,
			"anchorRadius", e.anchorRadius,
			"outOfRange", e.OutOfRange(),
			"drag", e.pts.drag)
	}
}
