package flapping

import (
	"testing"

	"github.com/vovakirdan/tui-duel/internal/contest"
	"github.com/vovakirdan/tui-duel/internal/contest/contesttest"
	"github.com/vovakirdan/tui-duel/internal/core"
)

func TestIdlePlayerLoses(t *testing.T) {
	tests := []struct {
		name       string
		difficulty float64
	}{
		{"easy", 0},
		{"normal", 0.5},
		{"hard", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(contest.Deps{})
			res := contesttest.Play(g, tt.difficulty, 1, 20, 60000, 500, contesttest.Idle)
			if res.Calls != 1 {
				t.Fatalf("callback fired %d times, expected 1", res.Calls)
			}
			if res.Victory {
				t.Error("the bird should win against an idle player")
			}
			if g.BoatX() >= VictoryMargin {
				t.Errorf("boat at %f, expected past the bird's line %d", g.BoatX(), VictoryMargin)
			}
		})
	}
}

func TestBirdGetsFasterWithDifficulty(t *testing.T) {
	prev := -1.0
	for _, d := range []float64{1, 0.75, 0.5, 0.25, 0} {
		res := contesttest.Play(New(contest.Deps{}), d, 1, 20, 120000, 0, contesttest.Idle)
		if res.Calls != 1 {
			t.Fatalf("d=%.2f: no result within two minutes", d)
		}
		if res.DoneAtMs < prev {
			t.Errorf("d=%.2f lost at %.0fms, faster than a harder bird (%.0fms)", d, res.DoneAtMs, prev)
		}
		prev = res.DoneAtMs
	}
}

func TestSteadyFlappingBeatsEasyBird(t *testing.T) {
	g := New(contest.Deps{})
	res := contesttest.Play(g, 0, 1, 20, 60000, 500, contesttest.Pulse(core.ButtonA, 200, 100))
	if res.Calls != 1 || !res.Victory {
		t.Fatalf("calls=%d victory=%v, expected a single win", res.Calls, res.Victory)
	}
	if g.BoatX() <= core.FrameW-VictoryMargin {
		t.Errorf("boat at %f, expected past the player's line", g.BoatX())
	}
}

func TestStalemateEndsAtTheBell(t *testing.T) {
	tests := []struct {
		name    string
		boatX   float64
		victory bool
	}{
		{"boat on the bird's half", core.FrameW/2 + 20, true},
		{"boat in the middle", core.FrameW / 2, false},
		{"boat on the player's half", core.FrameW/2 - 20, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(contest.Deps{})
			var got []bool
			g.Setup(1, func(v bool) { got = append(got, v) }, 1)
			g.Start()
			// Pin the boat so neither side ever reaches its line.
			for ms := 0.0; ms < TimeLimit+1000; ms += 20 {
				g.boatX = tt.boatX
				g.sail.Set(0)
				g.Update(20, 0)
			}
			if len(got) != 1 || got[0] != tt.victory {
				t.Errorf("callbacks = %v, expected [%v]", got, tt.victory)
			}
		})
	}
}

func TestHoldingFlapsOnce(t *testing.T) {
	g := New(contest.Deps{})
	g.Setup(0, nil, 1)
	g.Start()

	// The bird's first flap lands on the first step; the player's too.
	g.Update(20, core.ButtonA)
	after := g.sail.Value()
	for i := 0; i < 10; i++ {
		g.Update(20, core.ButtonA)
	}
	if g.sail.Value() > after {
		t.Errorf("sail rose from %f to %f while A was only held", after, g.sail.Value())
	}
}

func TestGameDeterminism(t *testing.T) {
	in := contesttest.Pulse(core.ButtonA, 300, 120)
	a := New(contest.Deps{})
	b := New(contest.Deps{})
	ra := contesttest.Play(a, 0.4, 7, 16, 30000, 0, in)
	rb := contesttest.Play(b, 0.4, 7, 16, 30000, 0, in)

	if ra != rb {
		t.Errorf("runs differ: %+v vs %+v", ra, rb)
	}
	if a.BoatX() != b.BoatX() {
		t.Errorf("boat positions differ: %f vs %f", a.BoatX(), b.BoatX())
	}
}

func TestScoresStayInBounds(t *testing.T) {
	g := New(contest.Deps{})
	g.Setup(1, nil, 1)
	g.Start()
	for i := 0; i < 500; i++ {
		g.Update(16, 0)
		contesttest.CheckScores(t, g)
	}
}

func TestNothingBeforeStart(t *testing.T) {
	g := New(contest.Deps{})
	g.Setup(1, func(bool) { t.Fatal("callback before Start") }, 1)
	g.Update(100000, core.ButtonA)
	if g.BoatX() != core.FrameW/2 {
		t.Errorf("boat moved to %f before Start", g.BoatX())
	}
}

func TestRenderDraws(t *testing.T) {
	rec := core.NewRecorder()
	g := New(contest.Deps{Renderer: rec})
	g.Setup(0.5, nil, 1)
	g.Start()
	g.Update(16, 0)
	g.Render()

	if rec.Count("blit") < 6 {
		t.Errorf("expected boat, sail, sea, shores and both flappers, got %d blits", rec.Count("blit"))
	}
}
