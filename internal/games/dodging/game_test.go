package dodging

import (
	"testing"

	"github.com/vovakirdan/tui-duel/internal/contest"
	"github.com/vovakirdan/tui-duel/internal/contest/contesttest"
	"github.com/vovakirdan/tui-duel/internal/core"
)

func TestIdlePlayerIsShot(t *testing.T) {
	g := New(contest.Deps{})
	start := core.V(170, 144)

	res := contesttest.Play(g, 0.5, 1, 20, 5000, 2000, contesttest.Idle)
	if res.Calls != 1 {
		t.Fatalf("callback fired %d times within 5s, expected 1", res.Calls)
	}
	if res.Victory {
		t.Error("a player who never moves should lose")
	}
	if g.DotPosition() != start {
		t.Errorf("dot moved to %v without input", g.DotPosition())
	}
	if res.Scores[0] != 0 || res.Scores[1] != 1 {
		t.Errorf("scores = %v, expected the player's to stay at 0", res.Scores)
	}
	if g.Phase() != contest.PhaseTerminated {
		t.Errorf("phase = %v, expected terminated", g.Phase())
	}
}

func TestHarderVolleysHitSooner(t *testing.T) {
	hitAt := func(d float64) float64 {
		g := New(contest.Deps{})
		g.Setup(d, nil, 1)
		g.Start()
		for ms := 20.0; ms <= 5000; ms += 20 {
			g.Update(20, 0)
			if !g.dot.alive {
				if !g.deer.alive {
					t.Fatalf("d=%.0f: deer was shot too", d)
				}
				return ms
			}
		}
		t.Fatalf("d=%.0f: player still standing after 5s", d)
		return 0
	}

	easy, hard := hitAt(0), hitAt(1)
	if hard >= easy {
		t.Errorf("hit at %.0fms when hard, %.0fms when easy; expected faster volleys to land sooner", hard, easy)
	}
	if gap := fireDelay.Easy - fireDelay.Hard; easy-hard < gap-40 {
		t.Errorf("hit times differ by %.0fms, expected about the %.0fms fire delay gap", easy-hard, gap)
	}
}

func TestDeerHitFirstWins(t *testing.T) {
	g := New(contest.Deps{})
	var got []bool
	g.Setup(0.5, func(v bool) { got = append(got, v) }, 1)
	g.Start()

	// One bullet about to pass through the deer and one through the dot on
	// the same step: the deer is checked first.
	g.bullets = []*bullet{
		newBullet(g.deer.pos.Sub(core.V(0, 2)), g.deer.pos.Add(core.V(0, 10))),
		newBullet(g.dot.pos.Sub(core.V(0, 2)), g.dot.pos.Add(core.V(0, 10))),
	}
	g.Update(20, 0)

	if g.deer.alive {
		t.Fatal("deer should have been hit")
	}
	if !g.dot.alive {
		t.Fatal("dot must survive once the deer is down")
	}
	if g.bullets[1].smoke != 0 {
		t.Error("other bullets should turn to smoke")
	}
	for i := 0; i < 200; i++ {
		g.Update(20, 0)
	}
	if len(got) != 1 || !got[0] {
		t.Errorf("callbacks = %v, expected a single victory", got)
	}
}

func TestTerminationWaitsForBullets(t *testing.T) {
	g := New(contest.Deps{})
	calls := 0
	g.Setup(0, func(bool) { calls++ }, 1)
	g.Start()
	g.Update(1, 0)
	g.Resolve(false, TerminationTime)
	g.bullets = append(g.bullets, newBullet(core.V(0, 10), core.V(core.FrameW, 10)))

	// 200px/s across 512px: the bullet needs over two seconds to leave.
	for i := 0; i < 100; i++ {
		g.Update(20, 0)
	}
	if calls != 0 {
		t.Fatal("callback fired while a bullet was still in flight")
	}
	for i := 0; i < 200; i++ {
		g.Update(20, 0)
	}
	if calls != 1 {
		t.Errorf("callback fired %d times, expected 1", calls)
	}
}

func TestBulletReaimsFromTarget(t *testing.T) {
	at := core.V(0, 0)
	b := newBullet(at, at)
	if b.vel.IsZero() {
		t.Fatal("bullet aimed at its own muzzle must still move")
	}
	if b.vel.X <= 0 || b.vel.Y <= 0 {
		t.Errorf("velocity %v should point toward the middle", b.vel)
	}
}

func TestVolleyPositions(t *testing.T) {
	g := New(contest.Deps{})
	g.Setup(0.5, nil, 1)
	g.volley()
	if len(g.bullets) != 4 {
		t.Fatalf("volley produced %d bullets", len(g.bullets))
	}
	mid := float64(core.FrameW >> 1)
	for i, b := range g.bullets {
		if b.pos.X != mid {
			t.Errorf("first volley bullet %d at x=%f, expected %f", i, b.pos.X, mid)
		}
	}
	if g.bullets[0].vel.X <= 0 || g.bullets[2].vel.X >= 0 {
		t.Error("left pair should aim at the deer (right), right pair at the dot (left)")
	}

	// Past the fold the positions walk down the sides.
	g.firePhase = FireStepCount - 1
	g.bullets = nil
	g.volley()
	if g.bullets[0].pos.X != 0 || g.bullets[0].pos.Y <= 0 {
		t.Errorf("late volley should start on the left edge, got %v", g.bullets[0].pos)
	}
	if g.firePhase != 0 {
		t.Errorf("fire phase should wrap, got %d", g.firePhase)
	}
}

func TestGameDeterminism(t *testing.T) {
	in := contesttest.Script(
		contesttest.Segment{Ms: 400, Buttons: core.ButtonUp},
		contesttest.Segment{Ms: 300, Buttons: core.ButtonLeft},
		contesttest.Segment{Ms: 500, Buttons: core.ButtonDown | core.ButtonRight},
	)
	a, b := New(contest.Deps{}), New(contest.Deps{})
	ra := contesttest.Play(a, 0.7, 3, 16, 20000, 0, in)
	rb := contesttest.Play(b, 0.7, 3, 16, 20000, 0, in)
	if ra != rb {
		t.Errorf("runs differ: %+v vs %+v", ra, rb)
	}
	if a.DeerPosition() != b.DeerPosition() {
		t.Errorf("deer positions differ: %v vs %v", a.DeerPosition(), b.DeerPosition())
	}
}

func TestHugeStep(t *testing.T) {
	g := New(contest.Deps{})
	calls := 0
	g.Setup(1, func(bool) { calls++ }, 1)
	g.Start()
	g.Update(100000, core.ButtonRight)
	g.Update(100000, 0)
	if calls > 1 {
		t.Errorf("callback fired %d times", calls)
	}
	contesttest.CheckScores(t, g)
	if p := g.DotPosition(); p.X > core.FrameW-WalkMargin || p.X < WalkMargin {
		t.Errorf("dot escaped the field: %v", p)
	}
}

func TestRenderDraws(t *testing.T) {
	rec := core.NewRecorder()
	g := New(contest.Deps{Renderer: rec})
	g.Setup(0.5, nil, 1)
	g.Start()
	g.Update(1000, 0)
	g.Render()
	if rec.Count("fill") != 1 {
		t.Errorf("expected one background fill, got %d", rec.Count("fill"))
	}
	if rec.Count("blit") < 2+len(g.bullets) {
		t.Errorf("expected both players and %d bullets, got %d blits", len(g.bullets), rec.Count("blit"))
	}
}
