// Package flapping implements the sail tug-of-war: the player and a bird
// flap their wings at a sailboat's sail from opposite shores.
// Whoever blows the boat past the line on the far side wins.
package flapping

import (
	"math"

	"github.com/vovakirdan/tui-duel/internal/contest"
	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/registry"
)

// Tuning constants.
const (
	VictoryMargin        = 170   // distance of each victory line from its edge
	FlapWeight           = 0.125 // sail change per flap
	SailDecay            = 0.1   // sail units per second, toward zero
	BoatSpeedMax         = 40.0  // px/s at full sail
	PlayerFlapBlackout   = 150.0 // ms before the player may unflap
	PlayerUnflapBlackout = 50.0  // ms before the player may flap again
	TimeLimit            = 60000 // ms; the boat's half of the sea decides a stalemate
)

// The bird's blackout shrinks as difficulty rises, so it flaps faster.
var birdBlackout = contest.Curve{Easy: 500, Hard: 150}

var meta = contest.Meta{
	Kind:        contest.KindFlapping,
	ActorName:   "BIRD",
	ContestName: "A FLAPPING CONTEST",
}

var (
	sprLand        = core.Sprite{Image: "mg01", Src: core.NewRect(0, 0, 134, 63), Glyph: '▓', Color: core.ColorGreen}
	sprSea         = core.Sprite{Image: "mg01", Src: core.NewRect(0, 64, 512, 53), Glyph: '~', Color: core.ColorBlue}
	sprDotOpen     = core.Sprite{Image: "mg01", Src: core.NewRect(1, 118, 80, 92), Glyph: 'D', Color: core.ColorPink}
	sprDotClosed   = core.Sprite{Image: "mg01", Src: core.NewRect(82, 118, 87, 92), Glyph: '>', Color: core.ColorPink}
	sprBirdOpen    = core.Sprite{Image: "mg01", Src: core.NewRect(170, 118, 82, 76), Glyph: 'B', Color: core.ColorYellow}
	sprBirdClosed  = core.Sprite{Image: "mg01", Src: core.NewRect(253, 118, 59, 76), Glyph: '<', Color: core.ColorYellow}
	sprBoat        = core.Sprite{Image: "mg01", Src: core.NewRect(313, 118, 119, 93), Glyph: '=', Color: core.ColorBrown}
	sprSailNeutral = core.Sprite{Image: "mg01", Src: core.NewRect(135, 1, 26, 55), Glyph: '|', Color: core.ColorBrightWhite}
	sprSailLight   = core.Sprite{Image: "mg01", Src: core.NewRect(162, 1, 25, 57), Glyph: ')', Color: core.ColorBrightWhite}
	sprSailHeavy   = core.Sprite{Image: "mg01", Src: core.NewRect(188, 1, 54, 57), Glyph: '>', Color: core.ColorBrightWhite}
)

const (
	dotLeft  = 35
	dotTop   = 145
	birdLeft = 400
	birdTop  = 161
	boatTop  = 165
)

// flapper is one side's arm state: flapped forward or not, with a blackout
// clock that forbids changing state while it runs.
type flapper struct {
	flapped bool
	clock   float64
}

func (f *flapper) cooling(elapsedMs float64) bool {
	if f.clock <= 0 {
		return false
	}
	if f.clock -= elapsedMs; f.clock <= 0 {
		f.clock = 0
	}
	return true
}

// Game implements the flapping contest.
type Game struct {
	contest.Lifecycle
	deps contest.Deps

	difficulty     float64
	boatX          float64
	sail           contest.Accumulator // -1 (toward the bird's win) .. 1 (toward the player's win)
	dot            flapper
	bird           flapper
	birdFlapTime   float64
	birdUnflapTime float64
}

// New creates a flapping contest.
func New(deps contest.Deps) *Game {
	return &Game{deps: deps.WithDefaults()}
}

func init() {
	registry.Register(meta, func(d contest.Deps) contest.Contest { return New(d) })
}

// Meta returns the static description.
func (g *Game) Meta() contest.Meta { return meta }

// Setup resets the boat to the middle with a slack sail.
func (g *Game) Setup(difficulty float64, onComplete contest.Outcome, _ int64) {
	g.Lifecycle.Reset(onComplete)
	g.difficulty = contest.ClampDifficulty(difficulty)
	g.boatX = core.FrameW / 2
	g.sail = contest.NewAccumulator(-1, 1, 0)
	g.dot = flapper{}
	g.bird = flapper{}
	g.birdFlapTime = math.Round(birdBlackout.At(g.difficulty))
	g.birdUnflapTime = g.birdFlapTime
}

// Start arms the contest. Nothing else happens: the game is ready after Setup.
func (g *Game) Start() { g.Arm() }

// Update advances the contest.
func (g *Game) Update(elapsedMs float64, in core.Buttons) {
	if !g.Tick(elapsedMs) || !g.Live() {
		return
	}

	if !g.dot.cooling(elapsedMs) {
		held := in.Has(core.ButtonA)
		switch {
		case g.dot.flapped && !held:
			g.dot.flapped = false
			g.dot.clock = PlayerUnflapBlackout
		case !g.dot.flapped && held:
			g.dot.flapped = true
			g.dot.clock = PlayerFlapBlackout
			g.sail.Add(FlapWeight)
		}
	}

	// The bird alternates on its own cadence, ignoring the player.
	if !g.bird.cooling(elapsedMs) {
		if g.bird.flapped {
			g.bird.flapped = false
			g.bird.clock = g.birdUnflapTime
		} else {
			g.bird.flapped = true
			g.bird.clock = g.birdFlapTime
			g.sail.Add(-FlapWeight)
		}
	}

	if s := g.sail.Value(); s != 0 {
		g.boatX += BoatSpeedMax * elapsedMs * s / 1000
		switch {
		case g.boatX > core.FrameW-VictoryMargin:
			g.Finish(true)
			return
		case g.boatX < VictoryMargin:
			g.Finish(false)
			return
		}
	}

	// At the bell the player needs the boat on the bird's half; the middle goes to the bird.
	if g.Elapsed() >= TimeLimit {
		g.Finish(g.boatX > core.FrameW/2)
		return
	}

	// Decay toward zero without overshooting.
	decay := SailDecay * elapsedMs / 1000
	switch s := g.sail.Value(); {
	case s > 0:
		g.sail.Set(math.Max(0, s-decay))
	case s < 0:
		g.sail.Set(math.Min(0, s+decay))
	}
}

// Render draws the sea, both shores, the boat and the two flappers.
func (g *Game) Render() {
	r := g.deps.Renderer
	r.FillRect(core.NewRect(0, 0, core.FrameW, core.FrameH), core.ColorBrightBlue)

	elapsed := g.Elapsed()
	bob := core.Round(math.Sin(elapsed*math.Pi*0.5/1000) * 2)
	top := boatTop + bob
	bx := core.Round(g.boatX)
	r.Blit(sprBoat, bx-sprBoat.Src.W/2, top, core.XformNone)

	switch s := g.sail.Value(); {
	case s < -0.6:
		r.Blit(sprSailHeavy, bx-sprSailHeavy.Src.W-3, top+5, core.XformXRev)
	case s < -0.15:
		r.Blit(sprSailLight, bx-sprSailLight.Src.W-3, top+5, core.XformXRev)
	case s < 0.15:
		r.Blit(sprSailNeutral, bx-sprSailNeutral.Src.W/2, top+5, core.XformNone)
	case s < 0.6:
		r.Blit(sprSailLight, bx+3, top+5, core.XformNone)
	default:
		r.Blit(sprSailHeavy, bx+3, top+5, core.XformNone)
	}

	seaOffset := core.Round(math.Sin(elapsed*math.Pi/1000) * 6)
	r.Blit(sprSea, seaOffset, core.FrameH-sprSea.Src.H, core.XformNone)
	r.Blit(sprLand, 0, core.FrameH-sprLand.Src.H, core.XformNone)
	r.Blit(sprLand, core.FrameW-sprLand.Src.W, core.FrameH-sprLand.Src.H, core.XformXRev)

	if g.dot.flapped {
		r.Blit(sprDotClosed, dotLeft+9, dotTop, core.XformNone)
	} else {
		r.Blit(sprDotOpen, dotLeft, dotTop, core.XformNone)
	}
	if g.bird.flapped {
		r.Blit(sprBirdClosed, birdLeft-10, birdTop, core.XformNone)
	} else {
		r.Blit(sprBirdOpen, birdLeft, birdTop, core.XformNone)
	}
}

// Scores reports the sail from each side's point of view.
func (g *Game) Scores() (contest.Accumulator, contest.Accumulator) {
	return g.sail, contest.NewAccumulator(-1, 1, -g.sail.Value())
}

// BoatX returns the boat's horizontal position.
func (g *Game) BoatX() float64 { return g.boatX }
