package session

import "time"

// Clock turns wall time into frame intervals a contest can digest.
// Intervals outside [min, max] are clamped and counted as faults.
type Clock struct {
	now      func() time.Time
	min, max float64

	start, recent time.Time
	elapsedMs     float64
	frames        int
	faults        int
}

// ClockStats summarizes a clock's run.
type ClockStats struct {
	Real     time.Duration
	Reported time.Duration
	Frames   int
	Faults   int
}

// NewClock creates a clock. A nil now uses time.Now.
func NewClock(now func() time.Time, minMs, maxMs float64) *Clock {
	if now == nil {
		now = time.Now
	}
	if maxMs < minMs {
		maxMs = minMs
	}
	return &Clock{now: now, min: minMs, max: maxMs}
}

// Start resets the counters.
func (c *Clock) Start() {
	c.start = c.now()
	c.recent = c.start
	c.elapsedMs = 0
	c.frames = 0
	c.faults = 0
}

// Tick returns the milliseconds since the previous tick, clamped.
func (c *Clock) Tick() float64 {
	now := c.now()
	interval := float64(now.Sub(c.recent)) / float64(time.Millisecond)
	switch {
	case interval < c.min:
		interval = c.min
		c.faults++
	case interval > c.max:
		interval = c.max
		c.faults++
	}
	c.elapsedMs += interval
	c.recent = now
	c.frames++
	return interval
}

// Stats reports real versus reported time.
func (c *Clock) Stats() ClockStats {
	return ClockStats{
		Real:     c.now().Sub(c.start),
		Reported: time.Duration(c.elapsedMs * float64(time.Millisecond)),
		Frames:   c.frames,
		Faults:   c.faults,
	}
}
