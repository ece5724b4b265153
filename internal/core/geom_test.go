package core

import (
	"math"
	"testing"
)

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping rects", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"non-overlapping horizontal", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"adjacent vertical (no overlap)", NewRect(0, 0, 10, 10), NewRect(0, 10, 10, 10), false},
		{"contained rect", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
	if !r.Contains(5, 10) || r.Contains(25, 25) {
		t.Error("Contains() should include top-left and exclude bottom-right")
	}
}

func TestCircleOverlap(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec
		ra, rb   float64
		expected bool
	}{
		{"radius 20 at 50px", V(100, 100), V(150, 100), 20, 20, false},
		{"radius 20 at 30px", V(100, 100), V(130, 100), 20, 20, true},
		{"radius 20 at 2000px", V(0, 0), V(2000, 0), 20, 20, false},
		{"exactly touching", V(0, 0), V(40, 0), 20, 20, false},
		{"coincident", V(7, 7), V(7, 7), 1, 1, true},
		{"diagonal", V(0, 0), V(20, 20), 15, 15, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CircleOverlap(tc.a, tc.ra, tc.b, tc.rb); got != tc.expected {
				t.Errorf("CircleOverlap() = %v, expected %v", got, tc.expected)
			}
			if got := CircleOverlap(tc.b, tc.rb, tc.a, tc.ra); got != tc.expected {
				t.Errorf("CircleOverlap() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCircleOverlapLargeRadii(t *testing.T) {
	// 50px apart with radius 30 each: 50 < 60.
	if !CircleOverlap(V(0, 0), 30, V(50, 0), 30) {
		t.Error("expected overlap at 50px with radii 30+30")
	}
	if CircleOverlap(V(0, 0), 20, V(2000, 0), 20) {
		t.Error("expected no overlap at 2000px with radii 20+20")
	}
}

func TestResolveCirclePush(t *testing.T) {
	got, ok := ResolveCirclePush(V(10, 0), 10, V(0, 0), 10)
	if !ok {
		t.Fatal("expected overlap")
	}
	if math.Abs(got.X-20) > 1e-9 || math.Abs(got.Y) > 1e-9 {
		t.Errorf("pushed to %v, expected (20, 0)", got)
	}

	// Coincident centers must not divide by zero; default pushes up.
	got, ok = ResolveCirclePush(V(5, 5), 3, V(5, 5), 3)
	if !ok {
		t.Fatal("expected overlap for coincident centers")
	}
	if got.X != 5 || math.Abs(got.Y-(-1)) > 1e-9 {
		t.Errorf("coincident push = %v, expected (5, -1)", got)
	}

	if _, ok := ResolveCirclePush(V(100, 0), 10, V(0, 0), 10); ok {
		t.Error("separated circles should not be pushed")
	}
}

func TestSegmentHitsCircle(t *testing.T) {
	tests := []struct {
		name     string
		seg      Segment
		center   Vec
		radius   float64
		expected bool
	}{
		{"passes through", Seg(V(0, 0), V(10, 0)), V(5, 0), 3, true},
		{"passes near", Seg(V(0, 0), V(10, 0)), V(5, 2.5), 3, true},
		{"perpendicular miss", Seg(V(0, 0), V(10, 0)), V(5, 4), 3, false},
		{"short of segment start", Seg(V(0, 0), V(10, 0)), V(-4, 0), 3, false},
		{"within radius of start", Seg(V(0, 0), V(10, 0)), V(-2, 0), 3, true},
		{"past segment end", Seg(V(0, 0), V(10, 0)), V(14, 0), 3, false},
		{"within radius of end", Seg(V(0, 0), V(10, 0)), V(12, 0), 3, true},
		{"tunneling step", Seg(V(0, 0), V(100, 100)), V(50, 50), 1, true},
		{"degenerate hit", Seg(V(3, 3), V(3, 3)), V(4, 3), 2, true},
		{"degenerate miss", Seg(V(3, 3), V(3, 3)), V(10, 3), 2, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SegmentHitsCircle(tc.seg, tc.center, tc.radius); got != tc.expected {
				t.Errorf("SegmentHitsCircle() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Segment
		expected bool
	}{
		{"cross", Seg(V(0, 0), V(10, 10)), Seg(V(0, 10), V(10, 0)), true},
		{"parallel", Seg(V(0, 0), V(10, 0)), Seg(V(0, 5), V(10, 5)), false},
		{"one side", Seg(V(0, 0), V(10, 0)), Seg(V(5, 1), V(5, 10)), false},
		{"T touching", Seg(V(0, 0), V(10, 0)), Seg(V(5, 0), V(5, 10)), true},
		{"shared endpoint", Seg(V(0, 0), V(5, 5)), Seg(V(5, 5), V(10, 0)), true},
		{"collinear disjoint", Seg(V(0, 0), V(10, 0)), Seg(V(20, 0), V(30, 0)), false},
		{"collinear overlapping", Seg(V(0, 0), V(10, 0)), Seg(V(5, 0), V(30, 0)), true},
		{"lines cross beyond segments", Seg(V(0, 0), V(1, 1)), Seg(V(10, 0), V(9, 1)), false},
		{"degenerate on segment", Seg(V(5, 0), V(5, 0)), Seg(V(0, 0), V(10, 0)), true},
		{"both degenerate apart", Seg(V(0, 0), V(0, 0)), Seg(V(1, 0), V(1, 0)), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SegmentsIntersect(tc.a, tc.b); got != tc.expected {
				t.Errorf("SegmentsIntersect(a, b) = %v, expected %v", got, tc.expected)
			}
			if got := SegmentsIntersect(tc.b, tc.a); got != tc.expected {
				t.Errorf("SegmentsIntersect(b, a) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestSegmentsWithinRadius(t *testing.T) {
	resting := Seg(V(50, 50), V(50, 50))
	passing := Seg(V(40, 52), V(60, 52))
	if !SegmentsWithin(resting, passing, 3) {
		t.Error("resting body within radius should be struck")
	}
	if SegmentsWithin(resting, passing, 1) {
		t.Error("resting body outside radius should not be struck")
	}
}

func TestNormalizeOr(t *testing.T) {
	fallback := V(0, -1)
	if got := V(0, 0).NormalizeOr(fallback); got != fallback {
		t.Errorf("zero vector should yield fallback, got %v", got)
	}
	got := V(3, 4).NormalizeOr(fallback)
	if math.Abs(got.X-0.6) > 1e-9 || math.Abs(got.Y-0.8) > 1e-9 {
		t.Errorf("NormalizeOr(3,4) = %v, expected (0.6, 0.8)", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
	if ClampF(1.5, 0, 1) != 1 || ClampF(-0.5, 0, 1) != 0 {
		t.Error("ClampF should clamp to [0, 1]")
	}
	if Abs(-5) != 5 || Round(2.5) != 3 {
		t.Error("Abs/Round helpers are wrong")
	}
}
