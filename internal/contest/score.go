package contest

import "math"

// Accumulator is a score clamped to [Min, Max] after every mutation.
type Accumulator struct {
	value    float64
	min, max float64
}

// NewAccumulator creates an accumulator over [min, max] starting at initial.
func NewAccumulator(min, max, initial float64) Accumulator {
	a := Accumulator{min: min, max: max}
	a.Set(initial)
	return a
}

// Unit returns an accumulator over [0, 1] starting at zero.
func Unit() Accumulator {
	return NewAccumulator(0, 1, 0)
}

// Value returns the current value.
func (a Accumulator) Value() float64 { return a.value }

// Bounds returns the closed range.
func (a Accumulator) Bounds() (float64, float64) { return a.min, a.max }

// Set assigns and clamps.
func (a *Accumulator) Set(v float64) {
	switch {
	case math.IsNaN(v):
		v = a.min
	case v < a.min:
		v = a.min
	case v > a.max:
		v = a.max
	}
	a.value = v
}

// Add applies a bonus (positive) or penalty (negative).
func (a *Accumulator) Add(delta float64) {
	a.Set(a.value + delta)
}

// DecayLinear subtracts ratePerSec scaled to the step.
func (a *Accumulator) DecayLinear(ratePerSec, elapsedMs float64) {
	a.Add(-ratePerSec * elapsedMs / 1000)
}

// DecayExp multiplies by base raised to the step in seconds.
// base is the fraction that survives one full second.
func (a *Accumulator) DecayExp(base, elapsedMs float64) {
	a.Set(a.value * math.Pow(base, elapsedMs/1000))
}
