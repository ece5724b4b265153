package rollerskates

import (
	"testing"

	"github.com/vovakirdan/tui-duel/internal/contest"
	"github.com/vovakirdan/tui-duel/internal/contest/contesttest"
	"github.com/vovakirdan/tui-duel/internal/core"
)

// race steps g with a player that jumps whatever obstacle is coming up.
func race(g *Game, d float64) (calls int, victory bool) {
	g.Setup(d, func(v bool) { calls++; victory = v }, 1)
	g.Start()
	for ms := 0; ms < 60000 && calls == 0; ms += 20 {
		var in core.Buttons
		if obstacleAhead(g.dot.x) {
			in = core.ButtonA
		}
		g.Update(20, in)
	}
	return calls, victory
}

func TestIdlePlayerFalls(t *testing.T) {
	for _, d := range []float64{0, 0.5, 1} {
		g := New(contest.Deps{})
		res := contesttest.Play(g, d, 1, 20, 60000, 1000, contesttest.Idle)
		if res.Calls != 1 || res.Victory {
			t.Errorf("d=%.1f: calls=%d victory=%v, expected one loss", d, res.Calls, res.Victory)
		}
		dot, rabbit := g.Positions()
		if !g.dot.fallen || dot != obstacles[0]+FallSlide {
			t.Errorf("d=%.1f: dot at %f fallen=%v", d, dot, g.dot.fallen)
		}
		if g.rabbit.fallen || rabbit < Goal {
			t.Errorf("d=%.1f: rabbit at %f fallen=%v, expected it to finish", d, rabbit, g.rabbit.fallen)
		}
	}
}

func TestHarderRabbitFinishesSooner(t *testing.T) {
	var done [2]float64
	for i, d := range []float64{0, 1} {
		res := contesttest.Play(New(contest.Deps{}), d, 1, 20, 60000, 0, contesttest.Idle)
		if res.Calls != 1 || res.Victory {
			t.Fatalf("d=%.0f: calls=%d victory=%v, expected the rabbit to win", d, res.Calls, res.Victory)
		}
		done[i] = res.DoneAtMs
	}
	if done[1] >= done[0] {
		t.Errorf("rabbit finished at %.0fms when hard, %.0fms when easy", done[1], done[0])
	}
}

func TestJumpingPlayerBeatsEasyRabbit(t *testing.T) {
	g := New(contest.Deps{})
	calls, victory := race(g, 0)
	if calls != 1 || !victory {
		t.Fatalf("calls=%d victory=%v, expected a win", calls, victory)
	}
	if g.dot.fallen {
		t.Error("player should clear every obstacle")
	}
}

func TestRabbitClearsEveryObstacle(t *testing.T) {
	for _, d := range []float64{0, 0.5, 1} {
		g := New(contest.Deps{})
		contesttest.Play(g, d, 1, 20, 60000, 0, contesttest.Idle)
		if g.rabbit.fallen {
			_, x := g.Positions()
			t.Errorf("d=%.1f: rabbit fell at %f", d, x)
		}
	}
}

func TestRabbitCruises(t *testing.T) {
	g := New(contest.Deps{})
	g.Setup(0, nil, 1)
	g.Start()
	target := rabbitTarget.At(0)
	top := 0.0
	for ms := 0; ms < 10000; ms += 20 {
		g.Update(20, 0)
		top = max(top, g.rabbit.velocity)
	}
	if limit := target + acceleration.At(0)*0.02; top > limit {
		t.Errorf("rabbit reached %f px/s, expected at most %f", top, limit)
	}
}

func TestBothFallen(t *testing.T) {
	tests := []struct {
		name        string
		dot, rabbit float64
		victory     bool
	}{
		{"player further", 1240, 640, true},
		{"rabbit further", 640, 1240, false},
		{"tie goes to the rabbit", 1240, 1240, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(contest.Deps{})
			g.Setup(0.5, nil, 1)
			g.Start()
			g.dot.fallen, g.dot.x = true, tt.dot
			g.rabbit.fallen, g.rabbit.x = true, tt.rabbit
			g.Update(20, 0)
			if !g.Resolved() || g.Victory() != tt.victory {
				t.Errorf("resolved=%v victory=%v, expected %v", g.Resolved(), g.Victory(), tt.victory)
			}
		})
	}
}

func TestPhotoFinishGoesToPlayer(t *testing.T) {
	g := New(contest.Deps{})
	g.Setup(0.5, nil, 1)
	g.Start()
	g.dot.x, g.dot.velocity = Goal-1, 300
	g.rabbit.x, g.rabbit.velocity = Goal-1, 300
	g.Update(20, 0)
	if !g.Resolved() || !g.Victory() {
		t.Errorf("resolved=%v victory=%v, expected a win", g.Resolved(), g.Victory())
	}
}

func TestJumpHoldsVelocityAndEnds(t *testing.T) {
	g := New(contest.Deps{})
	g.Setup(1, nil, 1)
	g.Start()
	g.dot.velocity = 200

	g.Update(20, core.ButtonA)
	v := g.dot.velocity
	for ms := 20.0; ms < JumpTimeLimit-20; ms += 20 {
		g.Update(20, core.ButtonA)
		if !g.dot.jumping || g.dot.velocity != v {
			t.Fatalf("at %.0fms: jumping=%v velocity=%f", ms, g.dot.jumping, g.dot.velocity)
		}
	}
	g.Update(20, core.ButtonA)
	g.Update(20, core.ButtonA)
	if g.dot.jumping {
		t.Fatal("jump should end after the time limit even with A held")
	}
	if g.dot.velocity <= v {
		t.Error("back on the ground the skater speeds up again")
	}
}

func TestBraking(t *testing.T) {
	g := New(contest.Deps{})
	g.Setup(0, nil, 1)
	g.Start()
	g.dot.velocity = 100
	for i := 0; i < 20; i++ {
		g.Update(20, core.ButtonLeft)
	}
	if g.dot.velocity != 0 {
		t.Errorf("velocity = %f, expected to brake to a stop", g.dot.velocity)
	}
	if !g.dot.braking {
		t.Error("LEFT should hold the brake")
	}
}

func TestGameDeterminism(t *testing.T) {
	a, b := New(contest.Deps{}), New(contest.Deps{})
	ca, va := race(a, 0.7)
	cb, vb := race(b, 0.7)
	if ca != cb || va != vb || a.dot.x != b.dot.x || a.rabbit.x != b.rabbit.x {
		t.Errorf("runs differ: (%d %v %f %f) vs (%d %v %f %f)", ca, va, a.dot.x, a.rabbit.x, cb, vb, b.dot.x, b.rabbit.x)
	}
}

func TestFiresOnce(t *testing.T) {
	g := New(contest.Deps{})
	res := contesttest.Play(g, 0.5, 1, 20, 60000, 3000, contesttest.Idle)
	if res.Calls != 1 {
		t.Errorf("callback fired %d times", res.Calls)
	}
	contesttest.CheckScores(t, g)
}

func TestRenderDraws(t *testing.T) {
	rec := core.NewRecorder()
	g := New(contest.Deps{Renderer: rec})
	g.Setup(0.5, nil, 1)
	g.Start()
	for i := 0; i < 50; i++ {
		g.Update(20, 0)
	}
	g.Render()
	if rec.Count("fill") != 2 {
		t.Errorf("expected sky and divider fills, got %d", rec.Count("fill"))
	}
	if rec.Count("blit") < 4 {
		t.Errorf("expected ground and both skaters, got %d blits", rec.Count("blit"))
	}
	for _, op := range rec.Ops {
		if op.Kind == "blit" && (op.Rect.Right() <= 0 || op.Rect.X >= core.FrameW) {
			t.Errorf("off-screen blit at %+v", op.Rect)
		}
	}
}
