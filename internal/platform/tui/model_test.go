package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-duel/internal/config"
	"github.com/vovakirdan/tui-duel/internal/contest"
	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/session"
)

// quick finishes 100ms after Start.
type quick struct {
	contest.Lifecycle
	victory bool
}

var quickMeta = contest.Meta{
	Kind:        contest.KindFlapping,
	ActorName:   "STUB",
	ContestName: "A QUICK CONTEST",
}

func (q *quick) Meta() contest.Meta { return quickMeta }

func (q *quick) Setup(_ float64, cb contest.Outcome, _ int64) { q.Lifecycle.Reset(cb) }

func (q *quick) Start() { q.Arm() }

func (q *quick) Render() {}

func (q *quick) Update(elapsedMs float64, _ core.Buttons) {
	if !q.Tick(elapsedMs) {
		return
	}
	if q.Elapsed() >= 100 {
		q.Finish(q.victory)
	}
}

func quickFactory(victory bool) session.Factory {
	return func(id string, _ contest.Deps) (contest.Contest, bool) {
		if id == "nope" {
			return nil, false
		}
		return &quick{victory: victory}, true
	}
}

// fakeTime is a wall clock the test moves by hand.
type fakeTime struct{ t time.Time }

func (f *fakeTime) now() time.Time { return f.t }

var testClock = config.ClockConfig{MinIntervalMs: 5, MaxIntervalMs: 40, TickRate: 60}

func newTestGame(t *testing.T, opts GameOptions) (GameModel, *fakeTime) {
	t.Helper()
	ft := &fakeTime{t: time.Unix(1000, 0)}
	opts.Now = ft.now
	opts.Clock = testClock
	opts.Hold = 100 * time.Millisecond
	opts.Logger = log.New(io.Discard)
	if opts.Factory == nil {
		opts.Factory = quickFactory(true)
	}
	m, err := NewGameModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 5}, opts)
	if err != nil {
		t.Fatalf("NewGameModel: %v", err)
	}
	m.Init()
	return m, ft
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

// advance ticks m for ms of wall time in 20ms frames.
func advance(m GameModel, ft *fakeTime, ms int) GameModel {
	for i := 0; i < ms; i += 20 {
		ft.t = ft.t.Add(20 * time.Millisecond)
		next, _ := m.Update(TickMsg{Time: ft.t, Gen: m.gen})
		m = next.(GameModel)
	}
	return m
}

func press(m GameModel, msg tea.KeyMsg) (GameModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(GameModel), cmd
}

// acknowledge waits out the blackout, taps A and lets it go. The hold
// window ends 100ms after the tap, dismissing the overlay one frame later.
func acknowledge(m GameModel, ft *fakeTime) GameModel {
	m = advance(m, ft, 600)
	m, _ = press(m, keySpace)
	return advance(m, ft, 120)
}

func TestSingleContestRunsToCompletion(t *testing.T) {
	m, ft := newTestGame(t, GameOptions{Contest: "flapping", Difficulty: 0.3})

	if !strings.Contains(m.View(), "STUB CHALLENGES YOU TO") {
		t.Fatal("expected the overture on screen")
	}
	m = acknowledge(m, ft)
	if !m.Driver().Running() {
		t.Fatal("contest should be running after the overture")
	}

	m = advance(m, ft, 200)
	if !strings.Contains(m.View(), "YOU WIN!") {
		t.Fatal("expected the denouement on screen")
	}
	m = acknowledge(m, ft)
	if !m.BackToMenu() {
		t.Fatal("single contest should be done once the denouement is dismissed")
	}

	out := m.Outcomes()
	if len(out) != 1 || !out[0].Victory || out[0].Difficulty != 0.3 || out[0].Seed != 5 {
		t.Errorf("outcomes = %+v", out)
	}
}

func TestUnknownContest(t *testing.T) {
	_, err := NewGameModel(core.DefaultConfig(), GameOptions{
		Contest: "nope",
		Factory: quickFactory(true),
		Logger:  log.New(io.Discard),
	})
	if err == nil {
		t.Error("expected an error for an unknown contest")
	}
}

func TestStaleTickIgnored(t *testing.T) {
	m, ft := newTestGame(t, GameOptions{Contest: "flapping"})
	before := m.ClockStats().Frames
	ft.t = ft.t.Add(time.Second)
	next, cmd := m.Update(TickMsg{Time: ft.t, Gen: m.gen + 1})
	m = next.(GameModel)
	if cmd != nil || m.ClockStats().Frames != before {
		t.Error("a tick from another loop must not advance the game")
	}
}

func TestAbortGoesBack(t *testing.T) {
	m, ft := newTestGame(t, GameOptions{Contest: "flapping"})
	m = acknowledge(m, ft)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.BackToMenu() || m.IsQuitting() {
		t.Fatal("esc should leave the contest without quitting")
	}
	if !m.Driver().Idle() || len(m.Outcomes()) != 0 {
		t.Error("an abandoned contest has no outcome")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestGame(t, GameOptions{Contest: "flapping"})
	m, cmd := press(m, runes("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit")
	}
	if m.View() != "" {
		t.Error("nothing is drawn after quitting")
	}
}

func TestOnFrameSeesDriver(t *testing.T) {
	frames := 0
	m, ft := newTestGame(t, GameOptions{
		Contest: "flapping",
		OnFrame: func(d *session.Driver) {
			if _, ok := d.Active(); ok {
				frames++
			}
		},
	})
	advance(m, ft, 100)
	if frames != 5 {
		t.Errorf("OnFrame saw %d frames, expected 5", frames)
	}
}

func TestCampaignWaitsForA(t *testing.T) {
	m, ft := newTestGame(t, GameOptions{Campaign: session.NewCampaign(config.Default().Campaign)})
	m = advance(m, ft, 100)
	if !m.Driver().Idle() || m.BackToMenu() {
		t.Fatal("campaign should idle until A")
	}
	if !strings.Contains(m.View(), "PRESS A") {
		t.Error("expected the idle prompt")
	}
	m, _ = press(m, keySpace)
	m = advance(m, ft, 20)
	if _, ok := m.Driver().Active(); !ok {
		t.Error("A should begin the next encounter")
	}
}
