package levitation

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-duel/internal/contest"
	"github.com/vovakirdan/tui-duel/internal/contest/contesttest"
	"github.com/vovakirdan/tui-duel/internal/core"
)

func TestScoreLines(t *testing.T) {
	tests := []struct {
		name      string
		dot, monk float64
		lines     int
		victory   bool
	}{
		{"player higher", 1, 0.5, 15, true},
		{"monk higher", 0.2, 0.9, 6, false},
		{"tie goes to the monk", 0.5, 0.5, 15, false},
		{"nobody floats", 0, 0, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(contest.Deps{})
			g.Setup(0.5, nil, 1)
			g.Start()
			g.Update(1, 0)
			g.dot.score.Set(tt.dot)
			g.monk.score.Set(tt.monk)
			for i := 0; i < 100 && !g.Resolved(); i++ {
				g.stepScore()
			}
			if g.lines != tt.lines {
				t.Errorf("decided after %d lines, expected %d", g.lines, tt.lines)
			}
			if g.Victory() != tt.victory {
				t.Errorf("victory = %v, expected %v", g.Victory(), tt.victory)
			}
		})
	}
}

func TestPlayThenTally(t *testing.T) {
	g := New(contest.Deps{})
	res := contesttest.Play(g, 0.5, 1, 20, 30000, 3000, contesttest.Idle)
	if res.Calls != 1 {
		t.Fatalf("callback fired %d times", res.Calls)
	}
	if res.DoneAtMs < PlayTime+ScoreStepTime+TerminationTime {
		t.Errorf("finished at %.0fms, before play, tally and farewell could run", res.DoneAtMs)
	}
}

func TestFocusFrozenAfterPlay(t *testing.T) {
	g := New(contest.Deps{})
	g.Setup(0.5, nil, 1)
	g.Start()
	for ms := 0.0; ms < PlayTime+20; ms += 20 {
		g.Update(20, core.ButtonLeft)
	}
	dot, monk := g.Focus()
	g.Update(20, core.ButtonRight)
	d2, m2 := g.Focus()
	if d2 != dot || m2 != monk {
		t.Error("focus moved during the tally")
	}
}

func TestAttractorPulls(t *testing.T) {
	m := meditator{}
	m.reset(1000)
	m.pulling[3] = true // starts at the bottom of the wheel
	m.update(20)
	if m.focus.Y <= 0 {
		t.Errorf("focus = %+v, expected pulled downward", m.focus)
	}
}

func TestFocusClampedToWheel(t *testing.T) {
	m := meditator{}
	m.reset(1000)
	m.focus = core.V(500, 0)
	m.update(20)
	if d := m.focus.Len(); d > wheelRadius+1e-9 {
		t.Errorf("focus at %f, outside the wheel", d)
	}
	if m.quality != -1 {
		t.Errorf("quality = %f, expected -1 on the rim", m.quality)
	}
}

func TestCentredFocusScores(t *testing.T) {
	m := meditator{}
	m.reset(1000)
	m.update(20)
	if m.quality <= 0 || m.score.Value() <= 0 {
		t.Errorf("quality=%f score=%f, expected both positive near the hub", m.quality, m.score.Value())
	}
}

func TestMonkPullsOpposite(t *testing.T) {
	m := meditator{}
	m.reset(500)
	m.focus = core.V(40, 10)
	m.think(20)
	want := [Attractors]bool{5: true}
	if m.pulling != want {
		t.Errorf("pulling = %v, expected %v", m.pulling, want)
	}

	// Thinking again before the delay keeps the choice.
	m.focus = core.V(-40, 10)
	m.think(20)
	if m.pulling != want {
		t.Errorf("changed its mind early: %v", m.pulling)
	}
}

func TestMonkLetsGoNearHub(t *testing.T) {
	m := meditator{}
	m.reset(500)
	m.pulling[2] = true
	m.focus = core.V(3, 0)
	m.think(20)
	if m.pulling != [Attractors]bool{} {
		t.Errorf("pulling = %v, expected nothing", m.pulling)
	}
}

func TestMonkKeepsBalance(t *testing.T) {
	g := New(contest.Deps{})
	g.Setup(1, nil, 1)
	g.Start()
	for ms := 0.0; ms < PlayTime; ms += 20 {
		g.Update(20, 0)
	}
	_, monk := g.Focus()
	if monk.Len() >= wheelRadius-1e-9 {
		t.Errorf("monk's focus ran to the rim: %+v", monk)
	}
	if g.monk.score.Value() <= 0 {
		t.Error("a hard monk should float")
	}
}

func TestHarderMonkFloatsHigher(t *testing.T) {
	monkAfterPlay := func(d float64) float64 {
		g := New(contest.Deps{})
		g.Setup(d, nil, 1)
		g.Start()
		for ms := 0.0; ms < PlayTime; ms += 20 {
			g.Update(20, 0)
		}
		return g.monk.score.Value()
	}
	if easy, hard := monkAfterPlay(0), monkAfterPlay(1); hard <= easy {
		t.Errorf("monk floats %.3f when hard, %.3f when easy", hard, easy)
	}
}

func TestGameDeterminism(t *testing.T) {
	in := contesttest.Pulse(core.ButtonUp, 600, 200)
	a, b := New(contest.Deps{}), New(contest.Deps{})
	ra := contesttest.Play(a, 0.4, 1, 16, 30000, 500, in)
	rb := contesttest.Play(b, 0.4, 1, 16, 30000, 500, in)
	if ra != rb {
		t.Errorf("runs differ: %+v vs %+v", ra, rb)
	}
}

func TestScoresStayInBounds(t *testing.T) {
	g := New(contest.Deps{})
	g.Setup(0, nil, 1)
	g.Start()
	in := contesttest.Pulse(core.ButtonA|core.ButtonB, 300, 150)
	for ms := 0.0; ms < PlayTime; ms += 7 {
		g.Update(7, in(ms))
		contesttest.CheckScores(t, g)
		if q := g.dot.quality; q < -1 || q > 1 || math.IsNaN(q) {
			t.Fatalf("quality %f out of range", q)
		}
	}
}

func TestRenderDraws(t *testing.T) {
	rec := core.NewRecorder()
	g := New(contest.Deps{Renderer: rec})
	g.Setup(0.5, nil, 1)
	g.Start()
	g.Update(16, 0)
	g.Render()
	// Per side: two body tiles, the hub, six attractors, the focus.
	if rec.Count("blit") != 20 {
		t.Errorf("expected 20 blits, got %d", rec.Count("blit"))
	}
	if texts := rec.Texts(); len(texts) != 1 || texts[0] != "4" {
		t.Errorf("clock = %v, expected [4]", texts)
	}
}
