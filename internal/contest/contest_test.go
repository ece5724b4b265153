package contest

import (
	"math"
	"testing"
)

func TestLifecycleExactlyOnce(t *testing.T) {
	calls := 0
	var got bool
	var l Lifecycle
	l.Reset(func(v bool) { calls++; got = v })

	if l.Tick(16) {
		t.Fatal("Tick before Arm should not simulate")
	}
	l.Arm()
	if l.Phase() != PhaseArmed {
		t.Fatalf("phase = %v, expected armed", l.Phase())
	}
	if !l.Tick(16) || l.Phase() != PhaseRunning {
		t.Fatalf("first Tick after Arm should run, phase = %v", l.Phase())
	}

	if !l.Resolve(true, 100) {
		t.Fatal("first Resolve should latch")
	}
	if l.Resolve(false, 0) {
		t.Fatal("second Resolve must not relatch")
	}
	if l.Live() {
		t.Error("resolving contest should not be live")
	}

	if l.Countdown(60) {
		t.Fatal("callback fired before delay elapsed")
	}
	if !l.Countdown(60) {
		t.Fatal("callback should fire once delay elapsed")
	}
	for i := 0; i < 10; i++ {
		l.Countdown(1000)
		l.Tick(1000)
		l.Finish(false)
	}

	if calls != 1 {
		t.Errorf("callback fired %d times, expected 1", calls)
	}
	if !got {
		t.Error("latched victory should be delivered")
	}
	if l.Phase() != PhaseTerminated {
		t.Errorf("phase = %v, expected terminated", l.Phase())
	}
}

func TestLifecycleResetRestarts(t *testing.T) {
	var l Lifecycle
	l.Reset(nil)
	l.Arm()
	l.Tick(10)
	l.Finish(true)

	l.Reset(nil)
	if l.Phase() != PhaseConfigured || l.Resolved() || l.Elapsed() != 0 {
		t.Errorf("Reset did not fully reset: %+v", l)
	}
}

func TestLifecycleLargeStep(t *testing.T) {
	calls := 0
	var l Lifecycle
	l.Reset(func(bool) { calls++ })
	l.Arm()
	l.Tick(1e9)
	l.Resolve(false, 1500)
	l.Countdown(1e9)
	if calls != 1 {
		t.Errorf("a single huge step should fire exactly once, got %d", calls)
	}
}

func TestAccumulatorBounds(t *testing.T) {
	a := Unit()
	a.Add(0.3)
	a.Add(5)
	if a.Value() != 1 {
		t.Errorf("Add above max = %f, expected 1", a.Value())
	}
	a.Add(-0.3)
	a.DecayLinear(0.2, 10000)
	if a.Value() != 0 {
		t.Errorf("linear decay below min = %f, expected 0", a.Value())
	}
	a.Set(math.NaN())
	if a.Value() != 0 {
		t.Errorf("NaN should clamp to min, got %f", a.Value())
	}
}

func TestAccumulatorDecayModels(t *testing.T) {
	lin := NewAccumulator(0, 1, 1)
	lin.DecayLinear(0.1, 500)
	if math.Abs(lin.Value()-0.95) > 1e-12 {
		t.Errorf("linear decay = %f, expected 0.95", lin.Value())
	}

	exp := NewAccumulator(0, 1, 1)
	exp.DecayExp(0.4, 1000)
	if math.Abs(exp.Value()-0.4) > 1e-12 {
		t.Errorf("exp decay over 1s = %f, expected 0.4", exp.Value())
	}
	// Two half steps equal one full step for the multiplicative model.
	split := NewAccumulator(0, 1, 1)
	split.DecayExp(0.4, 500)
	split.DecayExp(0.4, 500)
	if math.Abs(split.Value()-exp.Value()) > 1e-12 {
		t.Errorf("split exp decay = %f, expected %f", split.Value(), exp.Value())
	}
}

func TestLerpMonotonic(t *testing.T) {
	curves := []Curve{{Easy: 800, Hard: 200}, {Easy: 0.05, Hard: 0.12}, {Easy: 3, Hard: 3}}
	for _, c := range curves {
		prev := c.At(0)
		for d := 0.05; d <= 1.0001; d += 0.05 {
			v := c.At(d)
			if c.Rising() && v < prev || !c.Rising() && v > prev {
				t.Fatalf("curve %+v not monotonic at d=%f", c, d)
			}
			lo, hi := math.Min(c.Easy, c.Hard), math.Max(c.Easy, c.Hard)
			if v < lo-1e-9 || v > hi+1e-9 {
				t.Fatalf("curve %+v out of bounds at d=%f: %f", c, d, v)
			}
			prev = v
		}
	}
	if Lerp(10, 20, -3) != 10 || Lerp(10, 20, 7) != 20 {
		t.Error("Lerp should clamp difficulty to [0,1]")
	}
}

func TestKinds(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 11 {
		t.Fatalf("expected 11 kinds, got %d", len(kinds))
	}
	for _, k := range kinds {
		back, ok := ParseKind(k.String())
		if !ok || back != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), back, ok)
		}
	}
	if _, ok := ParseKind("nope"); ok {
		t.Error("unknown id should not parse")
	}
	if KindUnknown.Valid() {
		t.Error("KindUnknown should not be valid")
	}
}
