// Package jumprope implements the jumprope contest: a troll swings a rope
// that keeps speeding up while the player and a kangaroo jump it together.
// When the rope passes underfoot, whoever is still on the ground loses.
package jumprope

import (
	"math"

	"github.com/vovakirdan/tui-duel/internal/contest"
	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/registry"
)

// Tuning constants.
const (
	DotJumpSpeed  = 400.0 // px/s while A is held
	JoeyJumpSpeed = 375.0
	GravitySpeed  = 400.0 // px/s, constant fall
	RopeRateMax   = 2.5   // revolutions per second, regardless of difficulty
	FinalTime     = 1500.0
	JoeyJumpPhase = 0.80 // rope phase at which Joey takes off
	ropeArcW      = 40
	ropeRange     = 65
)

var (
	ropeRateStart = contest.Curve{Easy: 0.5, Hard: 1}     // rev/s at the start
	ropeRateGrow  = contest.Curve{Easy: 1.100, Hard: 1.2} // rate multiplier per second
	joeyDelay     = contest.Curve{Easy: 200, Hard: 30}    // ms Joey rests between jumps
)

var meta = contest.Meta{
	Kind:        contest.KindJumprope,
	ActorName:   "JOEY",
	ContestName: "A JUMPROPE CONTEST",
}

var (
	sprHorizon      = core.Sprite{Image: "mg02", Src: core.NewRect(0, 263, 512, 25), Glyph: '_', Color: core.ColorBrown}
	sprTree         = core.Sprite{Image: "mg02", Src: core.NewRect(1, 1, 93, 221), Glyph: 'T', Color: core.ColorGreen}
	sprDotIdle      = core.Sprite{Image: "mg02", Src: core.NewRect(95, 1, 75, 108), Glyph: 'D', Color: core.ColorPink}
	sprDotJump      = core.Sprite{Image: "mg02", Src: core.NewRect(171, 1, 75, 108), Glyph: 'D', Color: core.ColorPink}
	sprDotLose      = core.Sprite{Image: "mg02", Src: core.NewRect(247, 135, 75, 108), Glyph: 'x', Color: core.ColorPink}
	sprDotShadow    = core.Sprite{Image: "mg02", Src: core.NewRect(247, 119, 75, 15), Glyph: '.', Color: core.ColorDarkGray}
	sprJoeyIdle     = core.Sprite{Image: "mg02", Src: core.NewRect(247, 1, 130, 117), Glyph: 'J', Color: core.ColorBrown}
	sprJoeyJump     = core.Sprite{Image: "mg02", Src: core.NewRect(378, 1, 130, 117), Glyph: 'J', Color: core.ColorBrown}
	sprJoeyLose     = core.Sprite{Image: "mg02", Src: core.NewRect(323, 135, 130, 117), Glyph: 'x', Color: core.ColorBrown}
	sprJoeyShadow   = core.Sprite{Image: "mg02", Src: core.NewRect(323, 119, 130, 15), Glyph: '.', Color: core.ColorDarkGray}
	sprTroll        = core.Sprite{Image: "mg02", Src: core.NewRect(95, 110, 67, 152), Glyph: 'W', Color: core.ColorGray}
	sprTrollArmLow  = core.Sprite{Image: "mg02", Src: core.NewRect(163, 110, 41, 62), Glyph: '\\', Color: core.ColorGray}
	sprTrollArmMid  = core.Sprite{Image: "mg02", Src: core.NewRect(205, 110, 41, 62), Glyph: '-', Color: core.ColorGray}
	sprTrollArmHigh = core.Sprite{Image: "mg02", Src: core.NewRect(163, 173, 41, 62), Glyph: '/', Color: core.ColorGray}
)

// Layout.
const (
	horizonTop  = core.FrameH>>1 - 25>>1
	treeLeft    = 20
	treeTop     = core.FrameH>>1 - 221>>1
	groundLine  = treeTop + 221
	trollLeft   = core.FrameW - 20 - 67
	trollTop    = groundLine - 152
	trollArmX   = trollLeft - 20
	trollArmY   = trollTop + 49
	treeKnotX   = treeLeft + 58
	treeKnotY   = treeTop + 159
	dotLeft     = core.FrameW>>1 - 30 - 75
	dotTop      = groundLine - 108
	joeyLeft    = core.FrameW>>1 - 10
	joeyTop     = groundLine - 117
	shadowTop   = groundLine - 15
	dotJumpMax  = 58 // a fifth of the frame height
	joeyJumpMax = 79
)

// The troll's hand moves with the arm frame: low, mid, high.
var trollKnots = [3]core.Vec{
	{X: trollArmX + 7, Y: trollArmY + 54},
	{X: trollArmX, Y: trollArmY + 42},
	{X: trollArmX + 2, Y: trollArmY + 27},
}

// jumper is a vertical displacement above the ground.
type jumper struct {
	rising bool
	height float64
}

// fall lowers the jumper and reports whether it landed on this step.
func (j *jumper) fall(elapsedMs float64) bool {
	if j.height == 0 {
		return false
	}
	if j.height -= elapsedMs * GravitySpeed / 1000; j.height <= 0 {
		j.height = 0
		return true
	}
	return false
}

// rise lifts the jumper toward max and stops rising at the top.
func (j *jumper) rise(speed, top, elapsedMs float64) {
	if j.height += elapsedMs * speed / 1000; j.height >= top {
		j.height = top
		j.rising = false
	}
}

type side int

const (
	sideJoey side = iota
	sideDot
)

// Game implements the jumprope contest.
type Game struct {
	contest.Lifecycle
	deps contest.Deps

	difficulty float64
	phase      float64             // 0 bottom, 0.25 back, 0.5 top, 0.75 front
	rate       contest.Accumulator // rev/s, capped at RopeRateMax
	growth     float64
	dot, joey  jumper
	armed      bool // A was released while standing, so the next press jumps
	joeyRest   float64
	joeyDelay  float64
	lastToLand side
}

// New creates a jumprope contest.
func New(deps contest.Deps) *Game {
	return &Game{deps: deps.WithDefaults()}
}

func init() {
	registry.Register(meta, func(d contest.Deps) contest.Contest { return New(d) })
}

// Meta returns the static description.
func (g *Game) Meta() contest.Meta { return meta }

// Setup puts the rope at the bottom with both jumpers standing.
func (g *Game) Setup(difficulty float64, onComplete contest.Outcome, _ int64) {
	g.Lifecycle.Reset(onComplete)
	g.difficulty = contest.ClampDifficulty(difficulty)
	g.phase = 0
	g.rate = contest.NewAccumulator(0, RopeRateMax, ropeRateStart.At(g.difficulty))
	g.growth = ropeRateGrow.At(g.difficulty)
	g.dot = jumper{}
	g.joey = jumper{}
	g.armed = false
	g.joeyRest = 0
	g.joeyDelay = joeyDelay.At(g.difficulty)
	g.lastToLand = sideJoey
}

// Start arms the contest.
func (g *Game) Start() { g.Arm() }

// Update advances the contest.
func (g *Game) Update(elapsedMs float64, in core.Buttons) {
	if !g.Tick(elapsedMs) {
		return
	}
	if g.Resolved() {
		g.dot.fall(elapsedMs)
		g.joey.fall(elapsedMs)
		g.Countdown(elapsedMs)
		return
	}

	g.updateDot(elapsedMs, in.Has(core.ButtonA))
	g.updateJoey(elapsedMs)

	g.rate.Set(g.rate.Value() * math.Pow(g.growth, elapsedMs/1000))
	if g.phase += g.rate.Value() * elapsedMs / 1000; g.phase < 1 {
		return
	}
	g.phase -= 1

	// The rope passes underfoot. Both in the air: carry on.
	dotUp, joeyUp := g.dot.height > 0, g.joey.height > 0
	var victory bool
	switch {
	case dotUp && joeyUp:
		return
	case dotUp:
		victory = true
	case joeyUp:
		victory = false
	default:
		victory = g.lastToLand == sideDot
	}
	g.phase = 0
	g.dot.rising = false
	g.joey.rising = false
	g.Resolve(victory, FinalTime)
}

// updateDot rises while A is held, up to the maximum, and falls otherwise.
// A new jump needs A released on the ground first.
func (g *Game) updateDot(elapsedMs float64, held bool) {
	d := &g.dot
	switch {
	case d.rising:
		if held {
			d.rise(DotJumpSpeed, dotJumpMax, elapsedMs)
		} else {
			d.rising = false
		}
	case d.height > 0:
		if d.fall(elapsedMs) {
			g.lastToLand = sideDot
		}
	case !held:
		g.armed = true
	case g.armed:
		g.armed = false
		d.rising = true
	}
}

// updateJoey jumps to full height whenever the rope comes around, then
// rests a moment after landing.
func (g *Game) updateJoey(elapsedMs float64) {
	j := &g.joey
	switch {
	case g.joeyRest > 0:
		if g.joeyRest -= elapsedMs; g.joeyRest < 0 {
			g.joeyRest = 0
		}
	case j.rising:
		j.rise(JoeyJumpSpeed, joeyJumpMax, elapsedMs)
	case j.height > 0:
		if j.fall(elapsedMs) {
			g.joeyRest = g.joeyDelay
			g.lastToLand = sideJoey
		}
	case g.phase >= JoeyJumpPhase:
		j.rising = true
	}
}

func (g *Game) armFrame() int {
	switch {
	case g.phase < 0.125, g.phase >= 0.875:
		return 0
	case g.phase < 0.375, g.phase >= 0.625:
		return 1
	}
	return 2
}

// Render draws the scenery, the troll, both jumpers and the rope, which
// passes behind the jumpers on its upswing and in front on the way down.
func (g *Game) Render() {
	r := g.deps.Renderer
	frame := g.armFrame()

	r.FillRect(core.NewRect(0, 0, core.FrameW, horizonTop), core.ColorGray)
	r.FillRect(core.NewRect(0, horizonTop, core.FrameW, core.FrameH-horizonTop), core.ColorYellow)
	r.Blit(sprHorizon, 0, horizonTop, core.XformNone)
	r.Blit(sprTree, treeLeft, treeTop, core.XformNone)
	r.Blit([3]core.Sprite{sprTrollArmLow, sprTrollArmMid, sprTrollArmHigh}[frame], trollArmX, trollArmY, core.XformNone)
	r.Blit(sprTroll, trollLeft, trollTop, core.XformNone)
	r.Blit(sprDotShadow, dotLeft, shadowTop, core.XformNone)
	r.Blit(sprJoeyShadow, joeyLeft, shadowTop, core.XformNone)

	if g.phase <= 0.5 {
		g.renderRope(r, frame)
	}

	dot, joey := sprDotIdle, sprJoeyIdle
	if g.dot.rising {
		dot = sprDotJump
	}
	if g.joey.rising {
		joey = sprJoeyJump
	}
	if g.Resolved() {
		if g.Victory() {
			joey = sprJoeyLose
		} else {
			dot = sprDotLose
		}
	}
	r.Blit(dot, dotLeft, dotTop-core.Round(g.dot.height), core.XformNone)
	r.Blit(joey, joeyLeft, joeyTop-core.Round(g.joey.height), core.XformNone)

	if g.phase > 0.5 {
		g.renderRope(r, frame)
	}
}

// renderRope draws the rope as three straight runs from the tree knot to
// the troll's hand, sagging with the phase.
func (g *Game) renderRope(r core.Renderer, frame int) {
	norm := g.phase
	if norm >= 0.5 {
		norm = 1 - norm
	}
	ropeY := float64(treeKnotY) + (0.25-norm)*4*ropeRange
	knot := trollKnots[frame]
	points := []core.Vec{
		core.V(treeKnotX, treeKnotY),
		core.V(treeKnotX+ropeArcW, ropeY),
		core.V(knot.X-ropeArcW, ropeY),
		knot,
	}
	for i := 1; i < len(points); i++ {
		line(r, points[i-1], points[i], core.ColorBrightWhite)
	}
}

// line plots a segment as one-pixel fills spaced a few pixels apart.
func line(r core.Renderer, a, b core.Vec, c core.Color) {
	const spacing = 4
	d := b.Sub(a)
	n := int(d.Len()/spacing) + 1
	for i := 0; i <= n; i++ {
		p := a.Add(d.Scale(float64(i) / float64(n)))
		r.FillRect(core.NewRect(core.Round(p.X), core.Round(p.Y), 1, 1), c)
	}
}

// Scores reports how high each jumper is, as a fraction of their maximum.
func (g *Game) Scores() (contest.Accumulator, contest.Accumulator) {
	p := contest.Unit()
	p.Set(g.dot.height / dotJumpMax)
	o := contest.Unit()
	o.Set(g.joey.height / joeyJumpMax)
	return p, o
}

// RopePhase returns the rope's position in its revolution.
func (g *Game) RopePhase() float64 { return g.phase }
