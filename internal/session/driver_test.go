package session

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-duel/internal/config"
	"github.com/vovakirdan/tui-duel/internal/contest"
	"github.com/vovakirdan/tui-duel/internal/core"
)

// stub finishes a fixed time after Start with a fixed outcome.
type stub struct {
	contest.Lifecycle
	meta    contest.Meta
	victory bool
	after   float64

	seed     int64
	starts   int
	updates  int
	renders  int
	setupDif float64
}

func (s *stub) Meta() contest.Meta { return s.meta }

func (s *stub) Setup(d float64, cb contest.Outcome, seed int64) {
	s.Lifecycle.Reset(cb)
	s.seed = seed
	s.setupDif = d
}

func (s *stub) Start() {
	s.starts++
	s.Arm()
}

func (s *stub) Update(elapsedMs float64, _ core.Buttons) {
	s.updates++
	if !s.Tick(elapsedMs) {
		return
	}
	if s.Elapsed() >= s.after {
		s.Finish(s.victory)
	}
}

func (s *stub) Render() { s.renders++ }

type harness struct {
	d       *Driver
	made    []*stub
	victory bool
	meta    contest.Meta
	rec     *core.Recorder
	results []Outcome
}

func newHarness(t *testing.T, campaign *Campaign) *harness {
	t.Helper()
	h := &harness{
		meta: contest.Meta{Kind: contest.KindFlapping, ActorName: "BIRD", ContestName: "A FLAPPING CONTEST"},
		rec:  core.NewRecorder(),
	}
	h.d = NewDriver(Options{
		Deps:     contest.Deps{Renderer: h.rec},
		Campaign: campaign,
		Sink: SinkFunc(func(o Outcome) error {
			h.results = append(h.results, o)
			return nil
		}),
		Factory: func(id string, _ contest.Deps) (contest.Contest, bool) {
			if _, ok := contest.ParseKind(id); !ok {
				return nil, false
			}
			s := &stub{meta: h.meta, victory: h.victory, after: 100}
			h.made = append(h.made, s)
			return s, true
		},
		Logger: log.New(io.Discard),
	})
	return h
}

// ack runs the full acknowledgement: blackout, release, press, release.
func (h *harness) ack() {
	h.d.Update(Blackout, 0)
	h.d.Update(16, core.ButtonA)
	h.d.Update(16, 0)
}

func testCampaign() *Campaign {
	return NewCampaign(config.Default().Campaign)
}

func TestBeginEncounter(t *testing.T) {
	h := newHarness(t, nil)
	if h.d.BeginEncounter("chess", 0.5) {
		t.Fatal("unknown contest started")
	}
	if !h.d.Idle() || h.d.NextSeed() != 1 {
		t.Fatal("a failed start should change nothing")
	}

	if !h.d.BeginEncounter("flapping", 2) {
		t.Fatal("flapping did not start")
	}
	s := h.made[0]
	if s.seed != 1 || s.setupDif != 1 {
		t.Errorf("seed=%d difficulty=%f, expected 1 and a clamped 1", s.seed, s.setupDif)
	}
	if h.d.Overlay().Kind != OverlayOverture {
		t.Errorf("overlay = %v", h.d.Overlay().Kind)
	}
	if h.d.BeginEncounter("flapping", 0) {
		t.Error("a second encounter started over the first")
	}
}

func TestSeedsAdvance(t *testing.T) {
	h := newHarness(t, nil)
	for want := int64(1); want <= 3; want++ {
		h.d.BeginEncounter("flapping", 0)
		h.ack()
		h.d.Update(200, 0)
		h.ack()
		if got := h.made[len(h.made)-1].seed; got != want {
			t.Errorf("encounter %d got seed %d", want, got)
		}
	}
}

func TestOvertureAcknowledgement(t *testing.T) {
	tests := []struct {
		name    string
		frames  []core.Buttons
		started bool
	}{
		{"press during blackout ignored", []core.Buttons{core.ButtonA, 0}, false},
		{"held from before must be released", []core.Buttons{core.ButtonA, core.ButtonA}, false},
		{"press and release", []core.Buttons{0, core.ButtonA, 0}, true},
		{"other buttons do nothing", []core.Buttons{0, core.ButtonB, 0}, false},
		{"start waits for release", []core.Buttons{0, core.ButtonA, core.ButtonA | core.ButtonB}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)
			h.d.BeginEncounter("flapping", 0)
			if tt.name == "press during blackout ignored" {
				h.d.Update(100, core.ButtonA)
				h.d.Update(100, 0)
			} else {
				h.d.Update(Blackout, tt.frames[0])
				tt.frames = tt.frames[1:]
			}
			for _, in := range tt.frames {
				h.d.Update(16, in)
			}
			if got := h.made[0].starts == 1; got != tt.started {
				t.Errorf("started = %v, expected %v", got, tt.started)
			}
		})
	}
}

func TestContestHiddenByOverlay(t *testing.T) {
	h := newHarness(t, nil)
	h.d.BeginEncounter("flapping", 0)
	h.d.Update(16, 0)
	h.d.Render()
	s := h.made[0]
	if s.updates != 0 || s.renders != 0 {
		t.Errorf("updates=%d renders=%d under the overture", s.updates, s.renders)
	}
	if texts := h.rec.Texts(); len(texts) != 2 || texts[0] != "BIRD CHALLENGES YOU TO" || texts[1] != "A FLAPPING CONTEST!" {
		t.Errorf("overture texts = %v", texts)
	}
}

func TestContestUnderOverlayWhenAsked(t *testing.T) {
	h := newHarness(t, nil)
	h.meta.UpdateDuringOverlay = true
	h.meta.RenderDuringOverlay = true
	h.d.BeginEncounter("flapping", 0)
	h.d.Update(16, 0)
	h.d.Render()
	s := h.made[0]
	if s.updates != 1 || s.renders != 1 {
		t.Errorf("updates=%d renders=%d, expected the contest to run underneath", s.updates, s.renders)
	}
	if s.Phase() != contest.PhaseConfigured {
		t.Error("running underneath must not start the contest")
	}
}

func TestEncounterOutcome(t *testing.T) {
	tests := []struct {
		name     string
		victory  bool
		hp, gold int // starting stakes
		want     Consequences
		texts    []string
	}{
		{"win", true, 3, 10, Consequences{Gold: 1}, []string{"YOU WIN!", "GAINED 1 GOLD."}},
		{"loss", false, 3, 10, Consequences{HP: -1, Gold: -5}, []string{"YOU LOSE!", "LOST 1 HP.", "LOST 5 GOLD."}},
		{"loss when poor", false, 2, 3, Consequences{HP: -1, Gold: -3}, []string{"YOU LOSE!", "LOST 1 HP.", "LOST 3 GOLD."}},
		{"loss when broke", false, 2, 0, Consequences{HP: -1}, []string{"YOU LOSE!", "LOST 1 HP."}},
		{"win at the cap", true, 3, 9999, Consequences{}, []string{"YOU WIN!"}},
		{"last life", false, 1, 0, Consequences{HP: -1}, []string{"YOU LOSE!", "LOST 1 HP.", "GAME OVER"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCampaign()
			c.HP, c.Gold = tt.hp, tt.gold
			h := newHarness(t, c)
			h.victory = tt.victory
			h.d.BeginEncounter("flapping", 0)
			h.ack()
			h.d.Update(60, 0)
			h.d.Update(60, 0)

			if len(h.results) != 1 {
				t.Fatalf("results = %v", h.results)
			}
			o := h.results[0]
			if o.Victory != tt.victory || o.Consequences != tt.want || o.Seed != 1 || o.Contest != "flapping" {
				t.Errorf("outcome = %+v", o)
			}
			if o.DurationMs != 120 {
				t.Errorf("duration = %f, expected 120", o.DurationMs)
			}
			if h.d.Overlay().Kind != OverlayDenouement {
				t.Fatalf("overlay = %v", h.d.Overlay().Kind)
			}

			h.rec.Reset()
			h.d.Render()
			texts := h.rec.Texts()
			if len(texts) != len(tt.texts) {
				t.Fatalf("texts = %v, expected %v", texts, tt.texts)
			}
			for i := range texts {
				if texts[i] != tt.texts[i] {
					t.Errorf("texts = %v, expected %v", texts, tt.texts)
					break
				}
			}
		})
	}
}

func TestGameOverRestarts(t *testing.T) {
	c := testCampaign()
	c.HP, c.Gold = 1, 7
	h := newHarness(t, c)
	h.d.BeginEncounter("flapping", 0)
	h.ack()
	h.d.Update(200, 0)
	h.ack()

	if !h.d.Idle() {
		t.Fatal("driver should be idle after the denouement")
	}
	if c.HP != 3 || c.Gold != 0 || c.Encounters != 0 || c.GameOvers != 1 || c.Losses != 1 {
		t.Errorf("campaign = %+v, expected a fresh start", c)
	}
}

func TestIdleStartsNextEncounter(t *testing.T) {
	c := testCampaign()
	h := newHarness(t, c)
	h.victory = true
	h.d.Render()
	if len(h.rec.Texts()) == 0 {
		t.Error("idle screen drew nothing")
	}

	h.d.Update(16, core.ButtonA)
	if _, ok := h.d.Active(); !ok {
		t.Fatal("A should start the next encounter")
	}
	h.ack()
	h.d.Update(200, 0)
	h.ack()
	if c.Encounters != 1 || c.Gold != 1 {
		t.Errorf("campaign = %+v", c)
	}

	h.d.Update(16, core.ButtonA)
	if meta, ok := h.d.Active(); !ok || len(h.made) != 2 || meta.Kind != contest.KindFlapping {
		t.Errorf("made %d contests, expected the second encounter to start", len(h.made))
	}
	if id, _ := c.Next(); id != "stirring" {
		t.Errorf("next up is %s, expected stirring", id)
	}
}

func TestSinkFailureIsNotFatal(t *testing.T) {
	h := newHarness(t, nil)
	h.d.sink = SinkFunc(func(Outcome) error { return errors.New("disk full") })
	h.d.BeginEncounter("flapping", 0)
	h.ack()
	h.d.Update(200, 0)
	if _, ok := h.d.Last(); !ok || h.d.Overlay().Kind != OverlayDenouement {
		t.Error("the denouement should show even when recording fails")
	}
}

func TestAbort(t *testing.T) {
	h := newHarness(t, nil)
	h.d.BeginEncounter("flapping", 0)
	h.ack()
	h.d.Update(16, 0)
	h.d.Abort()
	if !h.d.Idle() || len(h.results) != 0 {
		t.Error("abort should discard the contest without a result")
	}
	if !h.d.BeginEncounter("flapping", 0) {
		t.Error("a new encounter should start after an abort")
	}
}
