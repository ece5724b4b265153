package parachute

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-duel/internal/contest"
	"github.com/vovakirdan/tui-duel/internal/contest/contesttest"
	"github.com/vovakirdan/tui-duel/internal/core"
)

func TestIdlePlayerCrashes(t *testing.T) {
	for _, d := range []float64{0, 0.5, 1} {
		g := New(contest.Deps{})
		res := contesttest.Play(g, d, 1, 20, 20000, 2000, contesttest.Idle)
		if res.Calls != 1 || res.Victory {
			t.Errorf("d=%.1f: calls=%d victory=%v, expected one loss", d, res.Calls, res.Victory)
		}
		if g.dot.state != diveCrash || g.chicken.state != diveLand {
			t.Errorf("d=%.1f: dot=%d chicken=%d", d, g.dot.state, g.chicken.state)
		}
	}
}

func TestLateDeployWins(t *testing.T) {
	in := contesttest.Script(
		contesttest.Segment{Ms: 1600},
		contesttest.Segment{Ms: 1000, Buttons: core.ButtonA},
	)
	g := New(contest.Deps{})
	res := contesttest.Play(g, 0.5, 1, 20, 20000, 0, in)
	if res.Calls != 1 || !res.Victory {
		t.Fatalf("calls=%d victory=%v, expected a win", res.Calls, res.Victory)
	}
	if g.dot.landAt >= g.chicken.landAt {
		t.Errorf("dot landed at %.0f, chicken at %.0f", g.dot.landAt, g.chicken.landAt)
	}
}

func TestEarlyDeployLoses(t *testing.T) {
	in := func(float64) core.Buttons { return core.ButtonA }
	res := contesttest.Play(New(contest.Deps{}), 0.5, 1, 20, 20000, 0, in)
	if res.Calls != 1 || res.Victory {
		t.Errorf("calls=%d victory=%v, drifting all the way down should lose", res.Calls, res.Victory)
	}
}

func TestNothingHappensDuringWait(t *testing.T) {
	g := New(contest.Deps{})
	g.Setup(1, nil, 1)
	g.Start()
	for ms := 20.0; ms < WaitTime; ms += 20 {
		g.Update(20, core.ButtonA)
	}
	if g.dot.state != diveWait || g.chicken.state != diveWait {
		t.Fatal("jumpers left before the wait ended")
	}
	dot, chicken := g.Altitudes()
	if dot != g.dot.fallTop || chicken != g.chicken.fallTop {
		t.Errorf("altitudes moved during the wait: %f, %f", dot, chicken)
	}
}

func TestJudging(t *testing.T) {
	tests := []struct {
		name     string
		dot      dive
		chicken  dive
		resolved bool
		victory  bool
	}{
		{"simultaneous landing goes to the player", diveLand, diveLand, true, true},
		{"player lands, chicken crashes", diveLand, diveCrash, true, true},
		{"player crashes, chicken lands", diveCrash, diveLand, true, false},
		{"player down, chicken still drifting", diveLand, diveDeploy, false, false},
		{"player crashed, chicken still drifting", diveCrash, diveDeploy, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(contest.Deps{})
			g.Setup(0.5, nil, 1)
			g.Start()
			g.Update(WaitTime, 0)
			g.dot.state, g.dot.landAt = tt.dot, 100
			g.chicken.state, g.chicken.landAt = tt.chicken, 100
			g.judge()
			if g.Resolved() != tt.resolved {
				t.Fatalf("resolved = %v, expected %v", g.Resolved(), tt.resolved)
			}
			if tt.resolved && g.Victory() != tt.victory {
				t.Errorf("victory = %v, expected %v", g.Victory(), tt.victory)
			}
		})
	}
}

func TestSameStepLanding(t *testing.T) {
	var got []bool
	g := New(contest.Deps{})
	g.Setup(0.5, func(v bool) { got = append(got, v) }, 1)
	g.Start()
	g.Update(WaitTime, 0)

	g.dot.state, g.dot.top = diveDeploy, g.dot.landTop-0.1
	g.chicken.state, g.chicken.top = diveDeploy, g.chicken.landTop-0.1
	g.Update(20, 0)
	g.Update(FarewellTime, 0)
	if len(got) != 1 || !got[0] {
		t.Errorf("callbacks = %v, expected [true]", got)
	}
}

func TestDoubleCrashRestarts(t *testing.T) {
	var got []bool
	g := New(contest.Deps{})
	g.Setup(0.5, func(v bool) { got = append(got, v) }, 1)
	g.Start()
	g.Update(WaitTime, 0)

	g.chickenAt = math.Inf(1)
	g.dot.top = g.dot.fatalTop - 0.1
	g.chicken.top = g.chicken.fatalTop - 0.1
	g.Update(20, 0)
	if g.dot.state != diveCrash || g.chicken.state != diveCrash {
		t.Fatalf("expected both to crash: dot=%d chicken=%d", g.dot.state, g.chicken.state)
	}
	g.Update(FarewellTime, 0)
	if len(got) != 0 {
		t.Fatalf("a double crash must not report, got %v", got)
	}
	if g.dot.state != diveWait || g.Phase() != contest.PhaseArmed {
		t.Fatalf("expected a fresh jump, dot=%d phase=%v", g.dot.state, g.Phase())
	}

	for ms := 0; ms < 20000 && len(got) == 0; ms += 20 {
		g.Update(20, 0)
	}
	if len(got) != 1 || got[0] {
		t.Errorf("callbacks after restart = %v, expected [false]", got)
	}
}

func TestHarderChickenLandsSooner(t *testing.T) {
	prev := math.Inf(1)
	for _, d := range []float64{0, 0.25, 0.5, 0.75, 1} {
		g := New(contest.Deps{})
		contesttest.Play(g, d, 1, 10, 20000, 0, contesttest.Idle)
		if g.chicken.landAt >= prev {
			t.Errorf("d=%.2f: chicken landed at %.0f, not before %.0f", d, g.chicken.landAt, prev)
		}
		prev = g.chicken.landAt
	}
}

func TestGameDeterminism(t *testing.T) {
	in := contesttest.Pulse(core.ButtonA, 1300, 40)
	a, b := New(contest.Deps{}), New(contest.Deps{})
	ra := contesttest.Play(a, 0.3, 1, 16, 20000, 500, in)
	rb := contesttest.Play(b, 0.3, 1, 16, 20000, 500, in)
	if ra != rb {
		t.Errorf("runs differ: %+v vs %+v", ra, rb)
	}
	if ra.Calls != 1 {
		t.Errorf("callback fired %d times", ra.Calls)
	}
}

func TestScoresStayInBounds(t *testing.T) {
	g := New(contest.Deps{})
	g.Setup(1, nil, 1)
	g.Start()
	for ms := 0; ms < 8000; ms += 10 {
		g.Update(10, 0)
		contesttest.CheckScores(t, g)
	}
}

func TestRenderDraws(t *testing.T) {
	rec := core.NewRecorder()
	g := New(contest.Deps{Renderer: rec})
	g.Setup(0.5, nil, 1)
	g.Start()
	g.Update(16, 0)
	g.Render()
	// Still aboard: only the helicopter and its blades.
	if rec.Count("fill") != 2 || rec.Count("blit") != 2 {
		t.Errorf("fills=%d blits=%d, expected 2 and 2", rec.Count("fill"), rec.Count("blit"))
	}

	g.Update(WaitTime, 0)
	g.Update(16, core.ButtonA)
	rec.Reset()
	g.Render()
	// Dot under her chute, the falling chicken.
	if rec.Count("blit") != 5 {
		t.Errorf("expected 5 blits, got %d", rec.Count("blit"))
	}
}
