// Package core provides fundamental types and utilities shared by every contest.
// It contains no external dependencies (especially no Bubble Tea) to keep
// contest logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned rectangle in framebuffer pixels.
// Used for draw calls and source regions of images.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Uses standard AABB collision detection.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Vec is a 2D point or direction in floating-point framebuffer pixels.
type Vec struct {
	X, Y float64
}

// V is shorthand for constructing a Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Scale returns v*k.
func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }

// Dot returns the dot product.
func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product.
func (v Vec) Cross(o Vec) float64 { return v.X*o.Y - v.Y*o.X }

// Len2 returns the squared length. Prefer it for comparisons on hot paths.
func (v Vec) Len2() float64 { return v.X*v.X + v.Y*v.Y }

// Len returns the length.
func (v Vec) Len() float64 { return math.Sqrt(v.Len2()) }

// IsZero reports whether both components are exactly zero.
func (v Vec) IsZero() bool { return v.X == 0 && v.Y == 0 }

// NormalizeOr returns v scaled to unit length, or fallback when v has zero length.
// Fallback is returned as given, so callers pass an already-normalized default.
func (v Vec) NormalizeOr(fallback Vec) Vec {
	l := v.Len()
	if l == 0 {
		return fallback
	}
	return Vec{v.X / l, v.Y / l}
}

// Dist2 returns the squared distance between two points.
func Dist2(a, b Vec) float64 {
	return b.Sub(a).Len2()
}

// Segment is the path a body covered during one step: From (previous) to To (current).
type Segment struct {
	From, To Vec
}

// Seg is shorthand for constructing a Segment.
func Seg(from, to Vec) Segment {
	return Segment{From: from, To: to}
}

// Degenerate reports whether the segment has zero length (the body did not move).
func (s Segment) Degenerate() bool {
	return s.From == s.To
}

// CircleOverlap reports whether two circles overlap: distance between
// centers strictly less than the sum of radii.
func CircleOverlap(a Vec, ra float64, b Vec, rb float64) bool {
	r := ra + rb
	return Dist2(a, b) < r*r
}

// ResolveCirclePush returns the position body must move to so it no longer
// penetrates support, pushing along the separation normal by the penetration depth.
// ok is false when the circles do not overlap. Coincident centers push straight up.
func ResolveCirclePush(body Vec, rBody float64, support Vec, rSupport float64) (Vec, bool) {
	if !CircleOverlap(body, rBody, support, rSupport) {
		return body, false
	}
	sep := body.Sub(support)
	dist := sep.Len()
	n := sep.NormalizeOr(Vec{0, -1})
	depth := rBody + rSupport - dist
	return body.Add(n.Scale(depth)), true
}

// SegmentHitsCircle reports whether a moving point, represented by its segment
// for this step, passes within radius of center (a capsule test).
// The perpendicular distance from center to the segment's line is rejected first,
// then the projection onto the segment must land within [-radius, len+radius].
// A degenerate segment falls back to a plain circle test.
func SegmentHitsCircle(s Segment, center Vec, radius float64) bool {
	d := s.To.Sub(s.From)
	l := d.Len()
	if l == 0 {
		return Dist2(s.From, center) <= radius*radius
	}
	rel := center.Sub(s.From)
	if math.Abs(d.Cross(rel))/l > radius {
		return false
	}
	proj := d.Dot(rel) / l
	return proj >= -radius && proj <= l+radius
}

// SegmentsIntersect reports whether two segments cross, via same-sign
// cross-product tests: the endpoints of each must not lie strictly on the same
// side of the other. Touching endpoints count as a crossing. Collinear
// segments intersect only when their extents overlap. Degenerate segments
// are treated as points and tested with radius 0.
func SegmentsIntersect(a, b Segment) bool {
	return SegmentsWithin(a, b, 0)
}

// SegmentsWithin is SegmentsIntersect with a radius applied whenever either
// segment is degenerate, so a resting body can still be struck by a passing one.
func SegmentsWithin(a, b Segment, radius float64) bool {
	switch {
	case a.Degenerate() && b.Degenerate():
		return Dist2(a.From, b.From) <= radius*radius
	case a.Degenerate():
		return SegmentHitsCircle(b, a.From, radius)
	case b.Degenerate():
		return SegmentHitsCircle(a, b.From, radius)
	}

	da := a.To.Sub(a.From)
	cb0 := da.Cross(b.From.Sub(a.From))
	cb1 := da.Cross(b.To.Sub(a.From))
	if sameSide(cb0, cb1) {
		return false
	}
	db := b.To.Sub(b.From)
	ca0 := db.Cross(a.From.Sub(b.From))
	ca1 := db.Cross(a.To.Sub(b.From))
	if sameSide(ca0, ca1) {
		return false
	}
	if cb0 == 0 && cb1 == 0 {
		return extentsOverlap(a, b)
	}
	return true
}

func sameSide(p, q float64) bool {
	return (p < 0 && q < 0) || (p > 0 && q > 0)
}

func extentsOverlap(a, b Segment) bool {
	return math.Max(a.From.X, a.To.X) >= math.Min(b.From.X, b.To.X) &&
		math.Max(b.From.X, b.To.X) >= math.Min(a.From.X, a.To.X) &&
		math.Max(a.From.Y, a.To.Y) >= math.Min(b.From.Y, b.To.Y) &&
		math.Max(b.From.Y, b.To.Y) >= math.Min(a.From.Y, a.To.Y)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Round converts a framebuffer coordinate to the nearest pixel.
func Round(f float64) int {
	return int(math.Round(f))
}
