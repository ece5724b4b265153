package all

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-duel/internal/contest"
	"github.com/vovakirdan/tui-duel/internal/contest/contesttest"
	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/registry"
)

func TestEveryKindRegistered(t *testing.T) {
	metas := registry.List()
	kinds := contest.Kinds()
	if len(metas) != len(kinds) {
		t.Fatalf("registered %d contests, expected %d", len(metas), len(kinds))
	}
	for i, m := range metas {
		if m.Kind != kinds[i] {
			t.Errorf("entry %d is %s, expected %s", i, m.Kind, kinds[i])
		}
		if m.ActorName == "" || m.ActorName != strings.ToUpper(m.ActorName) {
			t.Errorf("%s: actor name %q should be non-empty capitals", m.ID(), m.ActorName)
		}
		if !strings.HasSuffix(m.ContestName, " CONTEST") {
			t.Errorf("%s: contest name %q", m.ID(), m.ContestName)
		}
	}
}

func TestCreate(t *testing.T) {
	for _, k := range contest.Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			c, ok := registry.Create(k.String(), contest.Deps{})
			if !ok || c == nil {
				t.Fatal("not created")
			}
			if c.Meta().Kind != k {
				t.Errorf("created %s", c.Meta().Kind)
			}
		})
	}

	if c, ok := registry.Create("chess", contest.Deps{}); ok || c != nil {
		t.Error("unknown contest should not be created")
	}
}

func TestIdleRunsFinishOnce(t *testing.T) {
	for _, k := range contest.Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			c, _ := registry.CreateKind(k, contest.Deps{})
			res := contesttest.Play(c, 0.5, 3, 20, 120000, 3000, contesttest.Idle)
			if res.Calls != 1 {
				t.Errorf("callback fired %d times", res.Calls)
			}
			contesttest.CheckScores(t, c)
		})
	}
}

func TestSameSeedSameRun(t *testing.T) {
	in := contesttest.Pulse(core.ButtonA|core.ButtonRight, 700, 250)
	for _, k := range contest.Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			a, _ := registry.CreateKind(k, contest.Deps{})
			b, _ := registry.CreateKind(k, contest.Deps{})
			ra := contesttest.Play(a, 0.6, 42, 16, 60000, 500, in)
			rb := contesttest.Play(b, 0.6, 42, 16, 60000, 500, in)
			if ra != rb {
				t.Errorf("runs differ: %+v vs %+v", ra, rb)
			}
		})
	}
}

func TestSetupRestarts(t *testing.T) {
	in := contesttest.Pulse(core.ButtonA|core.ButtonLeft, 500, 200)
	for _, k := range contest.Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			c, _ := registry.CreateKind(k, contest.Deps{})
			contesttest.Play(c, 1, 5, 20, 3000, 0, in)
			again := contesttest.Play(c, 0.2, 9, 20, 60000, 500, in)

			fresh, _ := registry.CreateKind(k, contest.Deps{})
			want := contesttest.Play(fresh, 0.2, 9, 20, 60000, 500, in)
			if again != want {
				t.Errorf("restarted run %+v, fresh run %+v", again, want)
			}
		})
	}
}

func TestLongStepsStayBounded(t *testing.T) {
	for _, k := range contest.Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			c, _ := registry.CreateKind(k, contest.Deps{})
			res := contesttest.Play(c, 1, 8, 250, 60000, 2000, contesttest.Pulse(core.ButtonA, 1000, 500))
			if res.Calls > 1 {
				t.Errorf("callback fired %d times", res.Calls)
			}
			contesttest.CheckScores(t, c)
		})
	}
}

func TestNothingMovesBeforeStart(t *testing.T) {
	for _, k := range contest.Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			rec := core.NewRecorder()
			c, _ := registry.CreateKind(k, contest.Deps{Renderer: rec})
			c.Setup(0.5, func(bool) { t.Error("finished before Start") }, 1)
			c.Render()
			before := len(rec.Ops)
			if before == 0 {
				t.Fatal("nothing drawn")
			}
			for i := 0; i < 50; i++ {
				c.Update(20, core.ButtonA)
			}
			if insp, ok := c.(contest.Inspector); ok && insp.Phase() != contest.PhaseConfigured {
				t.Errorf("phase = %v before Start", insp.Phase())
			}
		})
	}
}
