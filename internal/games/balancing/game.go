// Package balancing implements the tomato race: the player and an orangutan
// walk toward a goal post in the middle, each with a tomato balanced on
// their head. Reaching the post wins; dropping the tomato loses.
package balancing

import (
	"github.com/vovakirdan/tui-duel/internal/ai"
	"github.com/vovakirdan/tui-duel/internal/contest"
	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/registry"
)

// Tuning constants.
const (
	WalkSpeed       = 100.0 // px/s
	TomatoRadius    = 23.0
	HeadRadius      = 20.0
	TomatoFall      = 100.0 // px/s, constant; there is no acceleration
	WalkFrameTime   = 400.0
	TerminationTime = 1000.0
	AIStop          = 10.0 // px left of the head where the orangutan stops walking
)

// The orangutan starts walking once the tomato leans this fraction of the
// contact distance to the left. Higher means he tolerates more lean and walks
// more. Past about 0.69 the tomato slides off before he can catch it.
var aiGo = contest.Curve{Easy: 0.40, Hard: 0.67}

// Layout.
const (
	goalW       = 16
	goalH       = 56
	groundY     = core.FrameH - goalH
	goalLeft    = core.FrameW>>1 - goalW>>1
	goalRight   = goalLeft + goalW
	dotStartX   = core.FrameW / 9
	ornStartX   = core.FrameW * 8 / 9
	dotBodyTop  = groundY - 28 - 28 + 3
	dotHeadY    = dotBodyTop + 3 - 33 + HeadRadius
	ornTop      = groundY - 95 + 9
	ornHeadY    = ornTop + HeadRadius
	dangerLean  = int(HeadRadius) >> 1
	dotOffsetX  = 7 // the player's art sits a little right of centre
	headCtlX    = 1
	headCtlY    = 33
	bodyHeadX   = 14
	bodyHeadY   = 3
	bodyLegsX   = 26
	bodyLegsY   = 28
	legsCtlY    = 1
	legsCtlWide = 8
	legsCtl     = 4
)

var meta = contest.Meta{
	Kind:        contest.KindBalancing,
	ActorName:   "ORANGUTAN",
	ContestName: "A BALANCING CONTEST",
}

var (
	sprTomato    = core.Sprite{Image: "mg03", Src: core.NewRect(88, 159, 59, 59), Glyph: 'O', Color: core.ColorRed}
	sprKetchup   = core.Sprite{Image: "mg03", Src: core.NewRect(364, 155, 54, 41), Glyph: '~', Color: core.ColorRed}
	sprHead      = core.Sprite{Image: "mg03", Src: core.NewRect(240, 135, 61, 44), Glyph: 'o', Color: core.ColorPink}
	sprHeadLeft  = core.Sprite{Image: "mg03", Src: core.NewRect(240, 180, 61, 44), Glyph: 'o', Color: core.ColorPink}
	sprHeadRight = core.Sprite{Image: "mg03", Src: core.NewRect(302, 153, 61, 44), Glyph: 'o', Color: core.ColorPink}
	sprHeadSad   = core.Sprite{Image: "mg03", Src: core.NewRect(313, 198, 61, 44), Glyph: 'x', Color: core.ColorPink}
	sprBody      = core.Sprite{Image: "mg03", Src: core.NewRect(302, 119, 80, 33), Glyph: '#', Color: core.ColorPink}
	sprLegs      = core.Sprite{Image: "mg03", Src: core.NewRect(383, 95, 47, 29), Glyph: '|', Color: core.ColorPink}
	sprLegsLeft  = core.Sprite{Image: "mg03", Src: core.NewRect(431, 93, 49, 29), Glyph: '/', Color: core.ColorPink}
	sprLegsRight = core.Sprite{Image: "mg03", Src: core.NewRect(383, 125, 53, 29), Glyph: '\\', Color: core.ColorPink}
	sprOrn       = core.Sprite{Image: "mg03", Src: core.NewRect(326, 243, 79, 95), Glyph: 'M', Color: core.ColorOrange}
	sprOrnWalk   = core.Sprite{Image: "mg03", Src: core.NewRect(406, 243, 79, 95), Glyph: 'M', Color: core.ColorOrange}
	sprGoal      = core.Sprite{Image: "mg03", Src: core.NewRect(481, 92, goalW, goalH), Glyph: '|', Color: core.ColorBrightWhite}
)

// walker is one racer: a head on legs with a tomato resting on it.
type walker struct {
	x, headY   float64
	startX     float64
	tomato     core.Vec
	dx         int
	walking    bool
	frame      int
	frameClock float64
	ketchup    bool
}

func (w *walker) reset(startX, headY float64) {
	*w = walker{x: startX, startX: startX, headY: headY}
	w.tomato = core.V(startX, headY-HeadRadius-TomatoRadius)
}

func (w *walker) walk(dx int, elapsedMs float64) {
	w.x += float64(dx) * WalkSpeed * elapsedMs / 1000
	w.dx = dx
	w.walking = true
	if w.frameClock -= elapsedMs; w.frameClock <= 0 {
		w.frameClock += WalkFrameTime
		w.frame ^= 1
	}
}

func (w *walker) standStill() {
	if !w.walking {
		return
	}
	w.walking = false
	w.frameClock = 0
	w.frame = 0
}

// updateTomato lets the tomato fall and pushes it out of the head.
func (w *walker) updateTomato(elapsedMs float64) {
	if w.ketchup {
		return
	}
	w.tomato.Y += TomatoFall * elapsedMs / 1000
	if w.tomato.Y >= groundY {
		w.tomato.Y = groundY
		w.ketchup = true
		return
	}
	head := core.V(w.x, w.headY)
	// Dead centre has no push direction; the next fall step will give it one.
	if w.tomato == head {
		return
	}
	if p, ok := core.ResolveCirclePush(w.tomato, TomatoRadius, head, HeadRadius); ok {
		w.tomato = p
	}
}

// Game implements the balancing contest.
type Game struct {
	contest.Lifecycle
	deps contest.Deps

	difficulty float64
	dot, orn   walker
	ornAI      ai.Hysteresis
}

// New creates a balancing contest.
func New(deps contest.Deps) *Game {
	return &Game{deps: deps.WithDefaults()}
}

func init() {
	registry.Register(meta, func(d contest.Deps) contest.Contest { return New(d) })
}

// Meta returns the static description.
func (g *Game) Meta() contest.Meta { return meta }

// Setup places both racers at their start lines with balanced tomatoes.
func (g *Game) Setup(difficulty float64, onComplete contest.Outcome, _ int64) {
	g.Lifecycle.Reset(onComplete)
	g.difficulty = contest.ClampDifficulty(difficulty)
	g.dot.reset(dotStartX, dotHeadY)
	g.orn.reset(ornStartX, ornHeadY)
	g.ornAI = ai.NewHysteresis((TomatoRadius+HeadRadius)*aiGo.At(g.difficulty), AIStop)
}

// Start arms the contest.
func (g *Game) Start() { g.Arm() }

// Update advances the contest.
func (g *Game) Update(elapsedMs float64, in core.Buttons) {
	if !g.Tick(elapsedMs) {
		return
	}
	if g.Resolved() {
		g.Countdown(elapsedMs)
		return
	}

	if dx := in.DX(); dx != 0 {
		g.dot.walk(dx, elapsedMs)
	} else {
		g.dot.standStill()
	}
	g.steerOrangutan(elapsedMs)

	g.dot.updateTomato(elapsedMs)
	g.orn.updateTomato(elapsedMs)

	switch {
	case g.orn.ketchup:
		// Both landing on the same step counts as the player's still in the air.
		g.dot.ketchup = false
		g.Resolve(true, TerminationTime)
	case g.dot.ketchup:
		g.Resolve(false, TerminationTime)
	case g.dot.x >= goalLeft:
		g.Resolve(true, TerminationTime)
	case g.orn.x <= goalRight:
		g.Resolve(false, TerminationTime)
	}
}

// steerOrangutan walks left under a tomato leaning left and right under
// one that leans right. The left walk has a commitment band so he does
// not stutter around the go threshold.
func (g *Game) steerOrangutan(elapsedMs float64) {
	o := &g.orn
	if o.tomato.X >= o.x {
		g.ornAI.Release()
		o.walk(1, elapsedMs)
		return
	}
	if g.ornAI.Update(o.x - o.tomato.X) {
		o.walk(-1, elapsedMs)
		return
	}
	o.standStill()
}

// Render draws sky, ground, the goal post and both racers.
func (g *Game) Render() {
	r := g.deps.Renderer
	r.FillRect(core.NewRect(0, 0, core.FrameW, core.FrameH), core.ColorCyan)
	r.FillRect(core.NewRect(0, groundY, core.FrameW, core.FrameH-groundY), core.ColorGreen)
	r.Blit(sprGoal, goalLeft, groundY, core.XformNone)

	g.renderDot(r)
	orn := sprOrn
	if g.orn.frame != 0 {
		orn = sprOrnWalk
	}
	r.Blit(orn, core.Round(g.orn.x-float64(sprOrn.Src.W)/2), ornTop, core.XformNone)
	renderTomato(r, &g.orn)
}

func (g *Game) renderDot(r core.Renderer) {
	d := &g.dot
	x := core.Round(d.x-float64(sprBody.Src.W)/2) - dotOffsetX

	legs, legsX := sprLegs, legsCtl
	if d.frame != 0 {
		if d.dx < 0 {
			legs, legsX = sprLegsLeft, legsCtlWide
		} else {
			legs = sprLegsRight
		}
	}
	head := sprHead
	switch {
	case d.ketchup:
		head = sprHeadSad
	case d.tomato.X < d.x-float64(dangerLean):
		head = sprHeadLeft
	case d.tomato.X > d.x+float64(dangerLean):
		head = sprHeadRight
	}

	r.Blit(sprBody, x, dotBodyTop, core.XformNone)
	r.Blit(head, x+bodyHeadX-headCtlX, dotBodyTop+bodyHeadY-headCtlY, core.XformNone)
	r.Blit(legs, x+bodyLegsX-legsX, dotBodyTop+bodyLegsY-legsCtlY, core.XformNone)
	renderTomato(r, d)
}

func renderTomato(r core.Renderer, w *walker) {
	s := sprTomato
	if w.ketchup {
		s = sprKetchup
	}
	r.Blit(s, core.Round(w.tomato.X-float64(s.Src.W)/2), core.Round(w.tomato.Y-float64(s.Src.H)/2), core.XformNone)
}

// Scores reports each racer's progress toward the post.
func (g *Game) Scores() (contest.Accumulator, contest.Accumulator) {
	p := contest.Unit()
	p.Set((g.dot.x - dotStartX) / (goalLeft - dotStartX))
	o := contest.Unit()
	o.Set((ornStartX - g.orn.x) / (ornStartX - goalRight))
	return p, o
}

// Positions returns the racers' horizontal positions.
func (g *Game) Positions() (dot, orangutan float64) { return g.dot.x, g.orn.x }

// Dropped reports whose tomato hit the ground.
func (g *Game) Dropped() (dot, orangutan bool) { return g.dot.ketchup, g.orn.ketchup }
