package dropbubble

import "math"

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Vec2) Vec2 {
	return Vec2{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// Span is the drag distance that costs one pixel of anchor radius. It grows
// with the element's larger side and shrinks with dragRadius*resistance.
func Span(width, height, dragRadius, resistance float64) float64 {
	d := dragRadius * resistance
	if d <= 0 {
		return 0
	}
	return math.Max(width, height) / d
}

// AnchorRadius derives the anchor circle's radius from the drag distance:
//
//	maxRadius - distance / Span(width, height, dragRadius, resistance)
//
// A zero span (zero-size element) keeps maxRadius at distance 0 and puts any
// other distance out of range.
func AnchorRadius(distance, width, height, dragRadius, resistance, maxRadius float64) float64 {
	span := Span(width, height, dragRadius, resistance)
	if span <= 0 {
		if distance == 0 {
			return maxRadius
		}
		return math.Inf(-1)
	}
	return maxRadius - distance/span
}

// bandAngle is the angle of the line joining anchor and drag, folded into
// (-π/2, π/2] the way atan does. A vertical line has no slope and maps to π/2.
func bandAngle(anchor, drag Vec2) float64 {
	dx := drag.X - anchor.X
	if dx == 0 {
		return math.Pi / 2
	}
	return math.Atan((drag.Y - anchor.Y) / dx)
}

// Band is the outline of the elastic band between the anchor circle and the
// drag circle. P0/P3 sit on the anchor circle, P1/P2 on the drag circle, all
// perpendicular to the line joining the centers. Control is the shared
// quadratic control point.
//
// The path is: move to P0, quad through Control to P1, line to P2, quad
// through Control to P3, close.
type Band struct {
	P0, P1, P2, P3 Vec2
	Control        Vec2
}

// ComputeBand builds the band outline for circles of radius anchorRadius at
// anchor and dragRadius at drag.
func ComputeBand(anchor, drag Vec2, anchorRadius, dragRadius float64) Band {
	a := bandAngle(anchor, drag)
	nx, ny := math.Sin(a), -math.Cos(a)
	return Band{
		P0:      Vec2{anchor.X + anchorRadius*nx, anchor.Y + anchorRadius*ny},
		P1:      Vec2{drag.X + dragRadius*nx, drag.Y + dragRadius*ny},
		P2:      Vec2{drag.X - dragRadius*nx, drag.Y - dragRadius*ny},
		P3:      Vec2{anchor.X - anchorRadius*nx, anchor.Y - anchorRadius*ny},
		Control: Midpoint(drag, anchor),
	}
}

// quadAt evaluates the quadratic Bezier p0-c-p1 at t.
func quadAt(p0, c, p1 Vec2, t float64) Vec2 {
	u := 1 - t
	return Vec2{
		X: u*u*p0.X + 2*u*t*c.X + t*t*p1.X,
		Y: u*u*p0.Y + 2*u*t*c.Y + t*t*p1.Y,
	}
}

// bandSegments is the number of strip segments used to flatten each curve.
const bandSegments = 16

// Strip flattens the band into pairs of points along its two curved edges.
// Pair i holds the P0→P1 edge and the P3→P2 edge at the same parameter, so
// consecutive pairs form quads (two triangles each), the same layout as a
// rope mesh. The returned slice has 2*(segments+1) points.
func (b Band) Strip(segments int, buf []Vec2) []Vec2 {
	if segments < 1 {
		segments = 1
	}
	buf = buf[:0]
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		buf = append(buf,
			quadAt(b.P0, b.Control, b.P1, t),
			quadAt(b.P3, b.Control, b.P2, t),
		)
	}
	return buf
}

// stripIndices returns triangle indices for a strip of n point pairs.
func stripIndices(n int, buf []uint16) []uint16 {
	buf = buf[:0]
	for i := 0; i < n-1; i++ {
		v := uint16(i * 2)
		buf = append(buf, v, v+1, v+2, v+1, v+3, v+2)
	}
	return buf
}
