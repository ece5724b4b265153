// Package contesttest drives contests headlessly for tests.
package contesttest

import (
	"testing"

	"github.com/vovakirdan/tui-duel/internal/contest"
	"github.com/vovakirdan/tui-duel/internal/core"
)

// Input returns the buttons to hold at a given simulated time.
type Input func(elapsedMs float64) core.Buttons

// Idle holds nothing.
func Idle(float64) core.Buttons { return 0 }

// Result summarizes a headless run.
type Result struct {
	Calls     int     // how many times the callback fired
	Victory   bool    // last value delivered
	DoneAtMs  float64 // simulated time of the first callback, 0 if none
	ElapsedMs float64 // total simulated time
	Frames    int
	Scores    [2]float64 // final player/opponent score values, if inspectable
}

// Play sets up and starts c, then steps it by stepMs until the callback
// fires or maxMs passes. The run continues for extraMs after the callback so
// callers can assert it never fires twice.
func Play(c contest.Contest, difficulty float64, seed int64, stepMs, maxMs, extraMs float64, in Input) Result {
	var r Result
	c.Setup(difficulty, func(v bool) {
		r.Calls++
		r.Victory = v
		if r.DoneAtMs == 0 {
			r.DoneAtMs = r.ElapsedMs
		}
	}, seed)
	c.Start()

	for r.ElapsedMs < maxMs {
		if r.Calls > 0 && r.ElapsedMs >= r.DoneAtMs+extraMs {
			break
		}
		r.ElapsedMs += stepMs
		r.Frames++
		c.Update(stepMs, in(r.ElapsedMs))
	}
	if insp, ok := c.(contest.Inspector); ok {
		p, o := insp.Scores()
		r.Scores = [2]float64{p.Value(), o.Value()}
	}
	return r
}

// CheckScores fails the test when an inspectable contest's scores leave their bounds.
func CheckScores(t testing.TB, c contest.Contest) {
	t.Helper()
	insp, ok := c.(contest.Inspector)
	if !ok {
		return
	}
	p, o := insp.Scores()
	for i, a := range []contest.Accumulator{p, o} {
		lo, hi := a.Bounds()
		if a.Value() < lo || a.Value() > hi {
			t.Fatalf("score %d = %f outside [%f, %f]", i, a.Value(), lo, hi)
		}
	}
}

// Script plays a fixed list of (duration, buttons) segments, then idles.
func Script(segments ...Segment) Input {
	return func(ms float64) core.Buttons {
		at := 0.0
		for _, s := range segments {
			at += s.Ms
			if ms <= at {
				return s.Buttons
			}
		}
		return 0
	}
}

// Segment holds buttons for a duration.
type Segment struct {
	Ms      float64
	Buttons core.Buttons
}

// Pulse presses b for downMs out of every periodMs.
func Pulse(b core.Buttons, periodMs, downMs float64) Input {
	return func(ms float64) core.Buttons {
		phase := ms - periodMs*float64(int(ms/periodMs))
		if phase < downMs {
			return b
		}
		return 0
	}
}
