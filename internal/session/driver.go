// Package session drives contests one encounter at a time: it seeds and
// creates each contest, shows the overture and denouement overlays around
// it, settles the campaign stakes and reports results.
package session

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-duel/internal/contest"
	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/registry"
)

// Outcome is one finished encounter.
type Outcome struct {
	Contest      string
	Difficulty   float64
	Seed         int64
	Victory      bool
	DurationMs   float64
	Consequences Consequences
}

// ResultSink receives every finished encounter.
type ResultSink interface {
	Record(o Outcome) error
}

// SinkFunc adapts a function to ResultSink.
type SinkFunc func(o Outcome) error

// Record calls f.
func (f SinkFunc) Record(o Outcome) error { return f(o) }

// Factory creates contests by identifier.
type Factory func(id string, deps contest.Deps) (contest.Contest, bool)

// Options configure a Driver. Zero values pick defaults.
type Options struct {
	Deps     contest.Deps
	Campaign *Campaign
	Sink     ResultSink
	Factory  Factory // registry.Create when nil
	Logger   *log.Logger
	Seed     int64 // first encounter seed; 0 means 1
}

// Driver owns the live contest, if any, and whatever overlay sits on it.
// Update and Render give the overlay precedence over the contest, and the
// contest precedence over the idle screen.
type Driver struct {
	deps     contest.Deps
	campaign *Campaign
	sink     ResultSink
	factory  Factory
	logger   *log.Logger

	seed    int64
	overlay Overlay
	edges   core.EdgeDetector

	active     contest.Contest
	activeMeta contest.Meta
	activeSeed int64
	difficulty float64
	playedMs   float64
	running    bool
	pending    *Outcome
}

// NewDriver creates a driver with no encounter in progress.
func NewDriver(opts Options) *Driver {
	d := &Driver{
		deps:     opts.Deps.WithDefaults(),
		campaign: opts.Campaign,
		sink:     opts.Sink,
		factory:  opts.Factory,
		logger:   opts.Logger,
		seed:     opts.Seed,
	}
	if d.factory == nil {
		d.factory = registry.Create
	}
	if d.logger == nil {
		d.logger = log.Default()
	}
	if d.seed == 0 {
		d.seed = 1
	}
	return d
}

// BeginEncounter creates, seeds and sets up a contest, then raises the
// overture. It returns false, changing nothing, for an unknown id or while
// another encounter is in progress.
func (d *Driver) BeginEncounter(id string, difficulty float64) bool {
	if d.active != nil {
		return false
	}
	c, ok := d.factory(id, d.deps)
	if !ok || c == nil {
		d.logger.Warn("unknown contest", "contest", id)
		return false
	}

	seed := d.seed
	if d.seed++; d.seed == 0 {
		d.seed = 1
	}
	d.active = c
	d.activeMeta = c.Meta()
	d.activeSeed = seed
	d.difficulty = contest.ClampDifficulty(difficulty)
	d.playedMs = 0
	d.running = false
	d.pending = nil
	c.Setup(d.difficulty, d.wrapUp, seed)
	d.overlay.open(OverlayOverture)

	d.logger.Info("encounter begun", "contest", d.activeMeta.ID(), "difficulty", d.difficulty, "seed", seed)
	return true
}

// wrapUp is the contest's completion callback.
func (d *Driver) wrapUp(victory bool) {
	if d.active == nil || d.pending != nil {
		return
	}
	o := Outcome{
		Contest:    d.activeMeta.ID(),
		Difficulty: d.difficulty,
		Seed:       d.activeSeed,
		Victory:    victory,
		DurationMs: d.playedMs,
	}
	if d.campaign != nil {
		o.Consequences = d.campaign.Apply(victory)
	}
	d.pending = &o
	d.running = false
	d.overlay.open(OverlayDenouement)
	d.overlay.Victory = victory
	d.overlay.Consequences = o.Consequences

	d.logger.Info("encounter finished",
		"contest", o.Contest,
		"victory", victory,
		"duration_ms", int(o.DurationMs),
		"hp", o.Consequences.HP,
		"gold", o.Consequences.Gold)

	if d.sink != nil {
		if err := d.sink.Record(o); err != nil {
			d.logger.Warn("could not record result", "contest", o.Contest, "error", err)
		}
	}
}

// Update advances whatever is on top by one frame.
func (d *Driver) Update(elapsedMs float64, in core.Buttons) {
	pressed := d.edges.Update(in)
	if d.overlay.Active() {
		if d.overlay.update(elapsedMs, in) {
			d.dismiss()
		}
		if c := d.active; c != nil && d.activeMeta.UpdateDuringOverlay {
			d.step(c, elapsedMs, in)
		}
		return
	}
	if c := d.active; c != nil {
		d.step(c, elapsedMs, in)
		return
	}
	if d.campaign != nil && pressed.Has(core.ButtonA) {
		id, difficulty := d.campaign.Next()
		d.BeginEncounter(id, difficulty)
	}
}

func (d *Driver) step(c contest.Contest, elapsedMs float64, in core.Buttons) {
	if d.running {
		d.playedMs += elapsedMs
	}
	c.Update(elapsedMs, in)
}

func (d *Driver) dismiss() {
	kind := d.overlay.Kind
	d.overlay.close()
	switch kind {
	case OverlayOverture:
		if d.active == nil {
			return
		}
		d.running = true
		d.active.Start()
	case OverlayDenouement:
		d.active = nil
		d.pending = nil
		if d.campaign != nil && d.campaign.Over() {
			d.campaign.GameOvers++
			d.logger.Info("game over", "wins", d.campaign.Wins, "losses", d.campaign.Losses)
			d.campaign.Restart()
		}
	}
}

// Abort discards the live contest without an outcome.
func (d *Driver) Abort() {
	if d.active != nil {
		d.logger.Info("encounter abandoned", "contest", d.activeMeta.ID())
	}
	d.active = nil
	d.pending = nil
	d.running = false
	d.overlay.close()
}

// Render draws whatever is on top.
func (d *Driver) Render() {
	r := d.deps.Renderer
	if d.overlay.Active() {
		r.Clear()
		if d.active != nil && d.activeMeta.RenderDuringOverlay {
			d.active.Render()
		}
		d.renderOverlay(r)
		return
	}
	if d.active != nil {
		d.active.Render()
		return
	}
	d.renderIdle(r)
}

func (d *Driver) renderOverlay(r core.Renderer) {
	const x = 100
	y := 100
	line := func(s string) {
		r.Text(x, y, core.ColorBrightWhite, s)
		y += 20
	}

	switch d.overlay.Kind {
	case OverlayOverture:
		line(d.activeMeta.ActorName + " CHALLENGES YOU TO")
		line(d.activeMeta.ContestName + "!")
	case OverlayDenouement:
		if d.overlay.Victory {
			line("YOU WIN!")
		} else {
			line("YOU LOSE!")
		}
		if hp := d.overlay.Consequences.HP; hp != 0 {
			line(fmt.Sprintf("%s %d HP.", gainedOrLost(hp), core.Abs(hp)))
		}
		if gold := d.overlay.Consequences.Gold; gold != 0 {
			line(fmt.Sprintf("%s %d GOLD.", gainedOrLost(gold), core.Abs(gold)))
		}
		if d.campaign != nil && d.campaign.Over() {
			line("GAME OVER")
		}
	}
}

func gainedOrLost(n int) string {
	if n > 0 {
		return "GAINED"
	}
	return "LOST"
}

func (d *Driver) renderIdle(r core.Renderer) {
	r.Clear()
	if d.campaign == nil {
		r.Text(100, 100, core.ColorBrightWhite, "NO CHALLENGER")
		return
	}
	c := d.campaign
	r.Text(100, 100, core.ColorBrightWhite, fmt.Sprintf("HP %d/%d  GOLD %d", c.HP, c.MaxHP, c.Gold))
	id, _ := c.Next()
	if meta, ok := registry.Lookup(id); ok {
		r.Text(100, 120, core.ColorBrightWhite, meta.ActorName+" AWAITS")
	}
	r.Text(100, 140, core.ColorGray, "PRESS A")
}

// Overlay returns the current overlay.
func (d *Driver) Overlay() Overlay { return d.overlay }

// Active returns the live contest's metadata, if any.
func (d *Driver) Active() (contest.Meta, bool) {
	return d.activeMeta, d.active != nil
}

// Running reports whether the live contest has been started and has not finished.
func (d *Driver) Running() bool { return d.running }

// Campaign returns the campaign, or nil when driving single contests.
func (d *Driver) Campaign() *Campaign { return d.campaign }

// NextSeed returns the seed the next encounter will get.
func (d *Driver) NextSeed() int64 { return d.seed }

// Last returns the outcome waiting behind the denouement, if any.
func (d *Driver) Last() (Outcome, bool) {
	if d.pending == nil {
		return Outcome{}, false
	}
	return *d.pending, true
}

// Idle reports whether nothing is in progress.
func (d *Driver) Idle() bool {
	return d.active == nil && !d.overlay.Active()
}
