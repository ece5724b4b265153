// Package contest defines the contract every minigame obeys and the small
// building blocks they share: lifecycle phases, clamped score accumulators
// and difficulty curves.
package contest

import (
	"github.com/vovakirdan/tui-duel/internal/core"
)

// Outcome receives the result of a contest. victory is from the player's side.
type Outcome func(victory bool)

// Meta is the static description of a contest type.
type Meta struct {
	Kind        Kind
	ActorName   string // opposing actor, all caps, no article ("DEER")
	ContestName string // all caps, with article ("A DODGING CONTEST")

	// Whether the driver keeps calling Update/Render while an overlay is up.
	UpdateDuringOverlay bool
	RenderDuringOverlay bool
}

// ID returns the registry identifier.
func (m Meta) ID() string {
	return m.Kind.String()
}

// Contest is one playthrough of one contest type.
//
// Setup resets all state and may be called again to restart.
// Start arms gameplay; it must be called even when it does nothing.
// Update advances the simulation by exactly elapsedMs (any non-negative value).
// Render draws the current state and never mutates it.
// Calling Update or Render before Setup is a programming error.
type Contest interface {
	Meta() Meta
	Setup(difficulty float64, onComplete Outcome, seed int64)
	Start()
	Update(elapsedMs float64, in core.Buttons)
	Render()
}

// Deps are the services a contest is constructed with.
type Deps struct {
	Renderer core.Renderer
	Jitter   core.Jitter // cosmetic randomness only
}

// WithDefaults fills missing services: drawing is discarded and
// cosmetic jitter comes from an unseeded source.
func (d Deps) WithDefaults() Deps {
	if d.Renderer == nil {
		d.Renderer = core.Discard{}
	}
	if d.Jitter == nil {
		d.Jitter = core.CosmeticJitter()
	}
	return d
}

// Inspector is implemented by contests that expose their win-relevant state
// for logging, replays and tests. Scores carry their own bounds.
type Inspector interface {
	Phase() Phase
	Scores() (player, opponent Accumulator)
}
