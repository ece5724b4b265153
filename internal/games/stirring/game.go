// Package stirring implements the pot-stirring contest. The player strokes
// the spoon around the pot with the d-pad; a mouse stirs its own pot on a
// steady clockwise beat. Power decays exponentially, and whoever has more
// power when the clock runs out wins.
package stirring

import (
	"math"
	"strconv"

	"github.com/vovakirdan/tui-duel/internal/ai"
	"github.com/vovakirdan/tui-duel/internal/contest"
	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/registry"
)

// Tuning constants.
const (
	GoodStroke = 0.1
	BadStroke  = 0.3
	DecayBase  = 0.4    // fraction of power surviving one second
	TimeLimit  = 5990.0 // ms
	HandSpeed  = 1000.0 // px/s
)

// Milliseconds per mouse stroke; the mouse stirs faster when hard.
var mouseDelay = contest.Curve{Easy: 500, Hard: 125}

var meta = contest.Meta{
	Kind:        contest.KindStirring,
	ActorName:   "MOUSE",
	ContestName: "A STIRRING CONTEST",
}

// hand is where the spoon is held.
type hand int

const (
	handCenter hand = iota
	handLeft
	handRight
	handUp
	handDown
)

var (
	dotHands   = [...]core.Vec{{X: 110, Y: 180}, {X: 50, Y: 180}, {X: 180, Y: 180}, {X: 100, Y: 160}, {X: 120, Y: 210}}
	mouseHands = [...]core.Vec{{X: 362, Y: 180}, {X: 300, Y: 180}, {X: 432, Y: 180}, {X: 348, Y: 160}, {X: 380, Y: 210}}
)

// turn returns 1 for a clockwise stroke, -1 for counterclockwise and 0 when
// the two positions are not neighbours on the circle.
func turn(from, to hand) int {
	switch {
	case from.next() == to:
		return 1
	case to.next() == from:
		return -1
	}
	return 0
}

// next is the clockwise neighbour: left, up, right, down.
func (h hand) next() hand {
	switch h {
	case handLeft:
		return handUp
	case handUp:
		return handRight
	case handRight:
		return handDown
	case handDown:
		return handLeft
	}
	return handLeft
}

var (
	sprPotBg     = core.Sprite{Image: "mg01", Src: core.NewRect(243, 1, 223, 38), Glyph: '_', Color: core.ColorDarkGray}
	sprPotFg     = core.Sprite{Image: "mg01", Src: core.NewRect(1, 211, 223, 80), Glyph: 'U', Color: core.ColorGray}
	sprMouse     = core.Sprite{Image: "mg01", Src: core.NewRect(1, 292, 190, 211), Glyph: 'm', Color: core.ColorGray}
	sprDot       = core.Sprite{Image: "mg01", Src: core.NewRect(225, 212, 196, 269), Glyph: 'D', Color: core.ColorPink}
	sprDotHand   = core.Sprite{Image: "mg01", Src: core.NewRect(433, 118, 29, 108), Glyph: '/', Color: core.ColorBrown}
	sprMouseHand = core.Sprite{Image: "mg01", Src: core.NewRect(463, 118, 27, 104), Glyph: '/', Color: core.ColorBrown}
)

// Layout.
const (
	dotLeft        = core.FrameW>>2 - 196>>1
	dotTop         = core.FrameH - 269
	mouseLeft      = core.FrameW*3>>2 - 190>>1
	mouseTop       = core.FrameH - 211
	dotPotLeft     = core.FrameW>>2 - 223>>1
	mousePotLeft   = core.FrameW*3>>2 - 223>>1
	potTop         = core.FrameH - 80
	powerW         = 20
	powerH         = core.FrameH * 8 / 10
	powerTop       = core.FrameH - 10 - powerH
	dotPowerLeft   = core.FrameW>>1 - 4 - powerW
	mousePowerLeft = core.FrameW>>1 + 4
	clockLeft      = core.FrameW>>1 - 8
	clockTop       = 10
)

// Game implements the stirring contest.
type Game struct {
	contest.Lifecycle
	deps contest.Deps

	difficulty float64
	edges      core.EdgeDetector

	dotHand   hand
	dotPos    core.Vec
	direction int // 0 until the second stroke picks one
	dotPower  contest.Accumulator

	mouseHand  hand
	mousePos   core.Vec
	mouseBeat  ai.Cadence
	mousePower contest.Accumulator
}

// New creates a stirring contest.
func New(deps contest.Deps) *Game {
	return &Game{deps: deps.WithDefaults()}
}

func init() {
	registry.Register(meta, func(d contest.Deps) contest.Contest { return New(d) })
}

// Meta returns the static description.
func (g *Game) Meta() contest.Meta { return meta }

// Setup centres both spoons with empty power.
func (g *Game) Setup(difficulty float64, onComplete contest.Outcome, _ int64) {
	g.Lifecycle.Reset(onComplete)
	g.difficulty = contest.ClampDifficulty(difficulty)
	g.edges.Reset(0)
	g.dotHand = handCenter
	g.dotPos = dotHands[handCenter]
	g.direction = 0
	g.dotPower = contest.Unit()
	g.mouseHand = handCenter
	g.mousePos = mouseHands[handCenter]
	delay := math.Floor(mouseDelay.At(g.difficulty))
	g.mouseBeat = ai.NewCadence(delay, delay)
	g.mousePower = contest.Unit()
}

// Start arms the contest.
func (g *Game) Start() { g.Arm() }

// Update advances the contest.
func (g *Game) Update(elapsedMs float64, in core.Buttons) {
	if !g.Tick(elapsedMs) {
		return
	}
	if g.Elapsed() >= TimeLimit {
		// The mouse wins ties, so a zero score never wins.
		g.Finish(g.dotPower.Value() > g.mousePower.Value())
		return
	}

	for n := g.mouseBeat.Step(elapsedMs); n > 0; n-- {
		g.mouseHand = g.mouseHand.next()
		g.mousePower.Add(GoodStroke)
	}

	// Pressing two directions on the same frame is ignored.
	switch g.edges.Update(in) & (core.ButtonsHorizontal | core.ButtonsVertical) {
	case core.ButtonLeft:
		g.stroke(handLeft)
	case core.ButtonRight:
		g.stroke(handRight)
	case core.ButtonUp:
		g.stroke(handUp)
	case core.ButtonDown:
		g.stroke(handDown)
	}

	g.dotPos = approach(g.dotPos, dotHands[g.dotHand], elapsedMs)
	g.mousePos = approach(g.mousePos, mouseHands[g.mouseHand], elapsedMs)

	g.dotPower.DecayExp(DecayBase, elapsedMs)
	g.mousePower.DecayExp(DecayBase, elapsedMs)
}

// stroke moves the player's spoon. The first stroke is always good, the
// second sets the direction, and after that every stroke must keep turning
// the same way. A wrong stroke costs power and forgets the direction.
func (g *Game) stroke(to hand) {
	if to == g.dotHand {
		return
	}
	dir := turn(g.dotHand, to)
	switch {
	case g.dotHand == handCenter:
		g.dotPower.Add(GoodStroke)
	case g.direction == 0 && dir != 0:
		g.direction = dir
		g.dotPower.Add(GoodStroke)
	case g.direction != 0 && dir == g.direction:
		g.dotPower.Add(GoodStroke)
	default:
		g.dotPower.Add(-BadStroke)
		g.direction = 0
	}
	g.dotHand = to
}

func approach(from, to core.Vec, elapsedMs float64) core.Vec {
	speed := math.Max(1, math.Round(HandSpeed*elapsedMs/1000))
	step := func(src, dst float64) float64 {
		if src > dst {
			return math.Max(dst, src-speed)
		}
		return math.Min(dst, src+speed)
	}
	return core.V(step(from.X, to.X), step(from.Y, to.Y))
}

// Render draws both cooks, their pots and power meters, and the clock.
func (g *Game) Render() {
	r := g.deps.Renderer
	r.FillRect(core.NewRect(0, 0, core.FrameW, core.FrameH), core.ColorGreen)

	r.Blit(sprDot, dotLeft, dotTop, core.XformNone)
	r.Blit(sprPotBg, dotPotLeft, potTop, core.XformNone)
	r.Blit(sprDotHand, core.Round(g.dotPos.X), core.Round(g.dotPos.Y), core.XformNone)
	r.Blit(sprPotFg, dotPotLeft, potTop, core.XformNone)

	r.Blit(sprMouse, mouseLeft, mouseTop, core.XformNone)
	r.Blit(sprPotBg, mousePotLeft, potTop, core.XformNone)
	r.Blit(sprMouseHand, core.Round(g.mousePos.X), core.Round(g.mousePos.Y), core.XformNone)
	r.Blit(sprPotFg, mousePotLeft, potTop, core.XformNone)

	meter(r, dotPowerLeft, g.dotPower.Value())
	meter(r, mousePowerLeft, g.mousePower.Value())

	if sec := int(math.Floor((TimeLimit - g.Elapsed()) / 1000)); sec >= 0 {
		r.Text(clockLeft, clockTop, core.ColorBrightWhite, strconv.Itoa(sec))
	}
}

func meter(r core.Renderer, x int, power float64) {
	h := int(power * powerH)
	r.FillRect(core.NewRect(x, powerTop, powerW, powerH-h), core.ColorDarkGray)
	r.FillRect(core.NewRect(x, powerTop+powerH-h, powerW, h), core.ColorRed)
}

// Scores returns the player's and the mouse's power.
func (g *Game) Scores() (contest.Accumulator, contest.Accumulator) {
	return g.dotPower, g.mousePower
}
