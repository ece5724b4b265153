// Package parachute implements the parachute contest. The player and a
// chicken jump out of a helicopter together; whoever lands safely first wins.
// The player opens the chute with A, and opening it late is faster but
// leaving it too late is a crash.
package parachute

import (
	"math"

	"github.com/vovakirdan/tui-duel/internal/contest"
	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/registry"
)

// Tuning constants.
const (
	FallRateOpen  = 30.0 // px/s under an open chute
	FallRateStart = 20.0 // px/s when leaving the helicopter
	WaitTime      = 500.0
	FarewellTime  = 1500.0
	BladeFrameMs  = 100.0
)

var (
	// Free-fall acceleration in px/s², steeper when hard.
	acceleration = contest.Curve{Easy: 50, Hard: 250}
	// Where the chicken opens its chute, as a fraction of its fall. Later is harder.
	chickenDeploy = contest.Curve{Easy: 0.3, Hard: 0.8}
)

var meta = contest.Meta{
	Kind:        contest.KindParachute,
	ActorName:   "CHICKEN",
	ContestName: "A PARACHUTE CONTEST",
}

var (
	sprBlades = [3]core.Sprite{
		{Image: "mg02", Src: core.NewRect(1, 289, 264, 21), Glyph: '=', Color: core.ColorDarkGray},
		{Image: "mg02", Src: core.NewRect(1, 311, 264, 21), Glyph: '-', Color: core.ColorDarkGray},
		{Image: "mg02", Src: core.NewRect(1, 333, 264, 21), Glyph: '~', Color: core.ColorDarkGray},
	}
	sprChopper      = core.Sprite{Image: "mg02", Src: core.NewRect(1, 355, 188, 128), Glyph: 'H', Color: core.ColorGreen}
	sprChickenFall  = core.Sprite{Image: "mg02", Src: core.NewRect(311, 289, 100, 30), Glyph: 'c', Color: core.ColorWhite}
	sprChickenStand = core.Sprite{Image: "mg02", Src: core.NewRect(266, 289, 44, 60), Glyph: 'C', Color: core.ColorWhite}
	sprDotFall      = core.Sprite{Image: "mg02", Src: core.NewRect(311, 320, 117, 71), Glyph: 'd', Color: core.ColorPink}
	sprDotStand     = core.Sprite{Image: "mg02", Src: core.NewRect(438, 289, 60, 111), Glyph: 'D', Color: core.ColorPink}
	sprChuteOpen    = core.Sprite{Image: "mg02", Src: core.NewRect(190, 355, 117, 130), Glyph: 'n', Color: core.ColorRed}
	sprChuteDefunct = core.Sprite{Image: "mg02", Src: core.NewRect(308, 392, 129, 28), Glyph: '_', Color: core.ColorRed}
	sprExplosion    = core.Sprite{Image: "mg02", Src: core.NewRect(308, 421, 189, 71), Glyph: '*', Color: core.ColorOrange}
	sprStar         = core.Sprite{Image: "mg02", Src: core.NewRect(1, 484, 23, 24), Glyph: '+', Color: core.ColorBrightYellow}
)

// Layout.
const (
	groundY     = core.FrameH - 10
	chopperTop  = 20
	chopperLeft = core.FrameW>>1 - 188>>1
	bladeLeft   = core.FrameW>>1 - 264>>1
	bladeTop    = chopperTop - 21>>1
	dotMidX     = core.FrameW / 5
	chickenMidX = core.FrameW * 4 / 5
	crashTop    = core.FrameH - 71
	defunctTop  = groundY - 28 + 5
	starTop     = core.FrameH >> 1
)

// dive is a jumper's progress from the helicopter to the ground.
type dive int

const (
	diveWait dive = iota
	diveFall
	diveDeploy
	diveLand
	diveCrash
)

// diver is one of the two jumpers. Positions are sprite tops.
type diver struct {
	state  dive
	top    float64
	landAt float64

	fallTop  float64
	fatalTop float64 // touching the ground in free fall
	landTop  float64 // standing on the ground
	adjust   float64 // shift when swapping the fall sprite for the standing one

	midX                int
	fall, stand         core.Sprite
	chuteOffset         int
	crashLeft, starLeft int
}

func newDiver(midX int, fallTop float64, fall, stand core.Sprite, landSlack, adjust int) diver {
	_, fh := fall.Size()
	_, sh := stand.Size()
	_, ch := sprChuteOpen.Size()
	ew, _ := sprExplosion.Size()
	stw, _ := sprStar.Size()
	return diver{
		fallTop:     fallTop,
		fatalTop:    float64(groundY - fh),
		landTop:     float64(groundY - sh + landSlack),
		adjust:      float64(adjust),
		midX:        midX,
		fall:        fall,
		stand:       stand,
		chuteOffset: sh>>1 - ch,
		crashLeft:   midX - ew>>1,
		starLeft:    midX - stw>>1,
	}
}

func (d *diver) reset() {
	d.state = diveWait
	d.top = d.fallTop
	d.landAt = math.Inf(1)
}

// freeFall drops by dy and crashes on reaching the ground.
func (d *diver) freeFall(dy float64) {
	if d.top += dy; d.top >= d.fatalTop {
		d.state = diveCrash
	}
}

func (d *diver) deploy() {
	d.state = diveDeploy
	d.top += d.adjust
}

// drift descends under the chute and records the landing time.
func (d *diver) drift(elapsedMs, now float64) {
	if d.top += FallRateOpen * elapsedMs / 1000; d.top >= d.landTop {
		d.top = d.landTop
		d.state = diveLand
		d.landAt = now
	}
}

// progress is how far down the diver is, 0 at the door and 1 on the ground.
func (d *diver) progress() float64 {
	if d.state == diveCrash {
		return 1
	}
	return (d.top - d.fallTop) / (d.landTop - d.fallTop)
}

func (d *diver) render(r core.Renderer) {
	top := core.Round(d.top)
	leftOf := func(s core.Sprite) int {
		w, _ := s.Size()
		return d.midX - w>>1
	}
	switch d.state {
	case diveFall:
		r.Blit(d.fall, leftOf(d.fall), top, core.XformNone)
	case diveDeploy:
		r.Blit(sprChuteOpen, leftOf(sprChuteOpen), top+d.chuteOffset, core.XformNone)
		r.Blit(d.stand, leftOf(d.stand), top, core.XformNone)
	case diveLand:
		r.Blit(sprChuteDefunct, leftOf(sprChuteDefunct), defunctTop, core.XformNone)
		r.Blit(d.stand, leftOf(d.stand), top, core.XformNone)
	case diveCrash:
		r.Blit(sprExplosion, d.crashLeft, crashTop, core.XformNone)
	}
}

// Game implements the parachute contest.
type Game struct {
	contest.Lifecycle
	deps contest.Deps

	difficulty   float64
	onComplete   contest.Outcome
	seed         int64
	accel        float64
	fallRate     float64
	chickenAt    float64 // sprite top at which the chicken deploys
	wait         float64
	retry        float64 // both crashed; counts down to a fresh jump
	blade        int
	bladeClock   float64
	dot, chicken diver
}

// New creates a parachute contest.
func New(deps contest.Deps) *Game {
	// Dot's standing sprite is taller than her falling one.
	return &Game{
		deps:    deps.WithDefaults(),
		dot:     newDiver(dotMidX, chopperTop+20, sprDotFall, sprDotStand, 10, -20),
		chicken: newDiver(chickenMidX, chopperTop+40, sprChickenFall, sprChickenStand, 5, 0),
	}
}

func init() {
	registry.Register(meta, func(d contest.Deps) contest.Contest { return New(d) })
}

// Meta returns the static description.
func (g *Game) Meta() contest.Meta { return meta }

// Setup puts both jumpers back in the helicopter.
func (g *Game) Setup(difficulty float64, onComplete contest.Outcome, seed int64) {
	g.Lifecycle.Reset(onComplete)
	g.onComplete = onComplete
	g.seed = seed
	g.difficulty = contest.ClampDifficulty(difficulty)
	g.accel = acceleration.At(g.difficulty)
	g.fallRate = FallRateStart
	c := &g.chicken
	g.chickenAt = c.fallTop + (c.fatalTop-c.fallTop)*chickenDeploy.At(g.difficulty)
	g.wait = WaitTime
	g.retry = 0
	g.blade = 0
	g.bladeClock = 0
	g.dot.reset()
	g.chicken.reset()
}

// Start arms the contest.
func (g *Game) Start() { g.Arm() }

// Update advances the contest.
func (g *Game) Update(elapsedMs float64, in core.Buttons) {
	if !g.Tick(elapsedMs) {
		return
	}

	if g.bladeClock -= elapsedMs; g.bladeClock <= 0 {
		g.bladeClock += BladeFrameMs
		g.blade = (g.blade + 1) % len(sprBlades)
	}

	if g.wait > 0 {
		if g.wait -= elapsedMs; g.wait <= 0 {
			g.wait = 0
			g.dot.state = diveFall
			g.chicken.state = diveFall
		}
		return
	}
	if g.Resolved() {
		g.Countdown(elapsedMs)
		return
	}
	if g.retry > 0 {
		if g.retry -= elapsedMs; g.retry <= 0 {
			g.Setup(g.difficulty, g.onComplete, g.seed)
			g.Start()
		}
		return
	}

	g.fallRate += g.accel * elapsedMs / 1000
	dy := g.fallRate * elapsedMs / 1000
	now := g.Elapsed()

	switch d := &g.dot; d.state {
	case diveFall:
		if in.Has(core.ButtonA) {
			d.deploy()
		} else {
			d.freeFall(dy)
		}
	case diveDeploy:
		d.drift(elapsedMs, now)
	}

	switch c := &g.chicken; c.state {
	case diveFall:
		if c.top >= g.chickenAt {
			c.deploy()
		} else {
			c.freeFall(dy)
		}
	case diveDeploy:
		c.drift(elapsedMs, now)
	}

	g.judge()
}

// judge resolves once both jumpers are down or one is down and the other
// crashed. The player wins a landing tie.
func (g *Game) judge() {
	dot, chicken := g.dot.state, g.chicken.state
	switch {
	case dot == diveLand && chicken == diveLand:
		g.Resolve(g.dot.landAt <= g.chicken.landAt, FarewellTime)
	case dot == diveLand && chicken == diveCrash:
		g.Resolve(true, FarewellTime)
	case dot == diveCrash && chicken == diveLand:
		g.Resolve(false, FarewellTime)
	case dot == diveCrash && chicken == diveCrash:
		g.retry = FarewellTime
	}
}

// Render draws the sky, the helicopter, both jumpers and a star over
// whoever touched down first.
func (g *Game) Render() {
	r := g.deps.Renderer
	r.FillRect(core.NewRect(0, 0, core.FrameW, core.FrameH), core.ColorBlue)
	r.FillRect(core.NewRect(0, groundY, core.FrameW, core.FrameH-groundY), core.ColorGreen)
	r.Blit(sprChopper, chopperLeft, chopperTop, core.XformNone)
	r.Blit(sprBlades[g.blade], bladeLeft, bladeTop, core.XformNone)

	g.dot.render(r)
	g.chicken.render(r)

	now := g.Elapsed()
	switch {
	case g.dot.landAt < now && g.dot.landAt < g.chicken.landAt:
		r.Blit(sprStar, g.dot.starLeft, starTop, core.XformNone)
	case g.chicken.landAt < now:
		r.Blit(sprStar, g.chicken.starLeft, starTop, core.XformNone)
	}
}

// Scores reports how far each jumper has descended.
func (g *Game) Scores() (contest.Accumulator, contest.Accumulator) {
	p := contest.Unit()
	p.Set(g.dot.progress())
	o := contest.Unit()
	o.Set(g.chicken.progress())
	return p, o
}

// Altitudes returns both sprite tops; larger is closer to the ground.
func (g *Game) Altitudes() (dot, chicken float64) {
	return g.dot.top, g.chicken.top
}
