package dropbubble

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorBubble is the default fill of the drag circle, anchor circle and band.
var ColorBubble = Color{R: 0.94, G: 0.26, B: 0.21, A: 1}

// RGBA converts c to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D point in window coordinates (origin top-left, Y down).
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// State is the phase of a drag session.
type State uint8

const (
	StateIdle          State = iota // no session; nothing is drawn
	StateDragging                   // anchor fixed, drag point follows the pointer
	StateSpringingBack              // drag point tweening back to the anchor
	StateDismissing                 // band snapped; waiting for overlay removal
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateSpringingBack:
		return "springing-back"
	case StateDismissing:
		return "dismissing"
	default:
		return "unknown"
	}
}

// Sizes in density-independent pixels. Multiply by Config.Density for pixels.
const (
	DragRadiusDp      = 16.0
	MaxAnchorRadiusDp = 8.0
	MinAnchorRadiusDp = 4.0
)

// Metrics are the pixel radii of a session, fixed when the engine is built.
type Metrics struct {
	DragRadius      float64
	MaxAnchorRadius float64
	MinAnchorRadius float64
}

// MetricsForDensity converts the dp constants to pixels.
func MetricsForDensity(density float64) Metrics {
	if density <= 0 {
		density = 1
	}
	return Metrics{
		DragRadius:      DragRadiusDp * density,
		MaxAnchorRadius: MaxAnchorRadiusDp * density,
		MinAnchorRadius: MinAnchorRadiusDp * density,
	}
}
