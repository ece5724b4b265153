// Package ai holds the small opponent behaviour models contests compose.
// Every model is driven only by the elapsed time and state handed to it,
// so an opponent is fully determined by seed, difficulty and input history.
package ai

import (
	"math"

	"github.com/vovakirdan/tui-duel/internal/core"
)

// MinHysteresisGap is the margin enforced between stop and go thresholds.
const MinHysteresisGap = 5

// Hysteresis is threshold attract/repel with a commitment band.
// It engages when the metric exceeds Go and stays engaged until the metric
// falls to Stop or below.
type Hysteresis struct {
	Go, Stop float64
	engaged  bool
}

// NewHysteresis builds a model, raising go to stop+MinHysteresisGap when a
// difficulty interpolation would otherwise put it at or under stop.
func NewHysteresis(goAt, stopAt float64) Hysteresis {
	if goAt <= stopAt {
		goAt = stopAt + MinHysteresisGap
	}
	return Hysteresis{Go: goAt, Stop: stopAt}
}

// Update feeds the current metric and reports whether the model is engaged.
func (h *Hysteresis) Update(metric float64) bool {
	switch {
	case metric > h.Go:
		h.engaged = true
	case metric <= h.Stop:
		h.engaged = false
	}
	return h.engaged
}

// Engaged reports the current state without updating.
func (h *Hysteresis) Engaged() bool { return h.engaged }

// Release disengages, e.g. when the opponent has to do something else.
func (h *Hysteresis) Release() { h.engaged = false }

// Pursuit picks the nearest candidate by squared distance and sticks with it
// for Dwell milliseconds before re-evaluating, even if a nearer one appears.
type Pursuit[T comparable] struct {
	Dwell  float64
	target T
	has    bool
	clock  float64
}

// NewPursuit creates a model with the given commitment time.
func NewPursuit[T comparable](dwellMs float64) Pursuit[T] {
	return Pursuit[T]{Dwell: dwellMs}
}

// Select returns the committed target, or the nearest candidate when the
// commitment has lapsed or its target is gone. ok is false when there are
// no candidates at all.
func (p *Pursuit[T]) Select(elapsedMs float64, from core.Vec, candidates []T, pos func(T) core.Vec) (T, bool) {
	if p.has && p.clock > 0 {
		p.clock -= elapsedMs
		if p.clock > 0 && contains(candidates, p.target) {
			return p.target, true
		}
		p.clock = 0
	}

	var zero T
	best := zero
	found := false
	bestScore := math.Inf(1)
	for _, c := range candidates {
		score := core.Dist2(from, pos(c))
		if score < bestScore {
			best = c
			bestScore = score
			found = true
		}
	}
	if !found {
		p.has = false
		p.target = zero
		return zero, false
	}
	// Every commitment, a renewed one included, runs a full dwell.
	p.target = best
	p.has = true
	p.clock = p.Dwell
	return best, true
}

// Target returns the current commitment, if any.
func (p *Pursuit[T]) Target() (T, bool) {
	return p.target, p.has
}

// Reset drops the commitment.
func (p *Pursuit[T]) Reset() {
	var zero T
	p.target = zero
	p.has = false
	p.clock = 0
}

func contains[T comparable](items []T, want T) bool {
	for _, it := range items {
		if it == want {
			return true
		}
	}
	return false
}

// Cadence fires on a fixed period regardless of anything else.
type Cadence struct {
	Period float64
	clock  float64
}

// NewCadence creates a timer whose first firing is firstMs from now.
func NewCadence(periodMs, firstMs float64) Cadence {
	return Cadence{Period: periodMs, clock: firstMs}
}

// Step advances the timer and returns how many firings fell in this step.
// A non-positive period fires once per step.
func (c *Cadence) Step(elapsedMs float64) int {
	c.clock -= elapsedMs
	if c.clock > 0 {
		return 0
	}
	if c.Period <= 0 {
		c.clock = 0
		return 1
	}
	n := int(math.Floor(-c.clock/c.Period)) + 1
	c.clock += float64(n) * c.Period
	return n
}

// Remaining returns milliseconds until the next firing.
func (c *Cadence) Remaining() float64 { return c.clock }

// Reschedule sets the time until the next firing.
func (c *Cadence) Reschedule(ms float64) { c.clock = ms }

// Poller samples on a fixed interval and picks one action among weighted choices.
// Index 0 is conventionally "do nothing".
type Poller struct {
	Cadence
	Weights []float64
}

// NewPoller creates a poller whose first sample is one interval away.
func NewPoller(intervalMs float64, weights []float64) Poller {
	return Poller{Cadence: NewCadence(intervalMs, intervalMs), Weights: weights}
}

// Poll advances time and, when a sample is due, returns the chosen action.
// Missed samples in a long step collapse into one decision.
func (p *Poller) Poll(elapsedMs float64, rng *core.Lehmer) (int, bool) {
	if p.Step(elapsedMs) == 0 {
		return 0, false
	}
	return rng.Pick(p.Weights), true
}
