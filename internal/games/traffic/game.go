// Package traffic implements the traffic contest. The player and an elephant
// each direct a four-way intersection; the same cars arrive at both. A car
// waits at the line until its controller stands where it may pass, and every
// car that leaves the screen scores. A tie at the bell goes to sudden death.
package traffic

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
	PlayTime   = 10000.0
	CarSpeed   = 100.0 // px/s
	CarSpacing = 30.0  // cars closer than this on both axes back off
	ExitMargin = 20.0
	AIPollTime = 800.0
	NoopOdds   = 0.5
)

// Milliseconds between cars; more traffic when hard.
var spawnDelay = contest.Curve{Easy: 1000, Hard: 200}

// The elephant's choices on each poll: stay, cross the street, cross the avenue.
var aiWeights = []float64{NoopOdds, (1 - NoopOdds) / 2, (1 - NoopOdds) / 2}

var meta = contest.Meta{
	Kind:        contest.KindTraffic,
	ActorName:   "ELEPHANT",
	ContestName: "A TRAFFIC CONTEST",
}

var (
	sprDot      = core.Tile("tiles", 0x40, 'D', core.ColorPink)
	sprElephant = core.Tile("tiles", 0x41, 'E', core.ColorGray)
	sprCarH     = core.Tile("tiles", 0x42, '=', core.ColorBrightYellow)
	sprCarV     = core.Tile("tiles", 0x43, 'H', core.ColorBrightYellow)
)

// Layout of one half of the screen.
const (
	viewW      = core.FrameW >> 1
	viewH      = core.FrameH
	leftLine   = viewW*0.333 - 20
	rightLine  = viewW*0.666 + 20
	topLine    = viewH*0.333 - 20
	bottomLine = viewH*0.666 + 20
	boxW       = viewW / 3
	boxLeft    = viewW>>1 - boxW>>1
	boxTop     = viewH>>1 - boxW>>1
	curbW      = 2
)

// car is one vehicle heading in a cardinal direction.
type car struct {
	pos     core.Vec
	dx, dy  int
	stopped bool // waiting at the line
	cleared bool // waved through; never stops again
}

func newCar(dx, dy int) *car {
	c := &car{dx: dx, dy: dy}
	switch {
	case dx < 0:
		c.pos = core.V(viewW+16, viewH>>1-20)
	case dx > 0:
		c.pos = core.V(-16, viewH>>1+20)
	case dy < 0:
		c.pos = core.V(viewW>>1+20, viewH+16)
	default:
		c.pos = core.V(viewW>>1-20, -16)
	}
	return c
}

// atLine reports whether the car has reached its stop line.
func (c *car) atLine() bool {
	switch {
	case c.dx < 0:
		return c.pos.X <= rightLine
	case c.dx > 0:
		return c.pos.X >= leftLine
	case c.dy < 0:
		return c.pos.Y <= bottomLine
	}
	return c.pos.Y >= topLine
}

func (c *car) sprite() (core.Sprite, core.Xform) {
	switch {
	case c.dx < 0:
		return sprCarH, core.XformXRev
	case c.dx > 0:
		return sprCarH, core.XformNone
	case c.dy < 0:
		return sprCarV, core.XformYRev
	}
	return sprCarV, core.XformNone
}

// crossing is one side's intersection: who directs it and its traffic.
type crossing struct {
	x, y   int // corner the controller stands on, 0 or 1 each
	cars   []*car
	score  int
	sprite core.Sprite
}

func (cr *crossing) reset() {
	cr.x, cr.y = 0, 0
	cr.cars = cr.cars[:0]
	cr.score = 0
}

func (cr *crossing) move(dx, dy int) {
	cr.x = min(1, max(0, cr.x+dx))
	cr.y = min(1, max(0, cr.y+dy))
}

// waves reports whether the controller's corner lets c through.
func (cr *crossing) waves(c *car) bool {
	switch {
	case c.dx < 0:
		return cr.y == 1
	case c.dx > 0:
		return cr.y == 0
	case c.dy < 0:
		return cr.x == 0
	}
	return cr.x == 1
}

// add puts a new car on the road unless another is in its way.
func (cr *crossing) add(c *car) {
	if !cr.crowded(c) {
		cr.cars = append(cr.cars, c)
	}
}

func (cr *crossing) crowded(a *car) bool {
	for _, b := range cr.cars {
		if a == b {
			continue
		}
		if math.Abs(a.pos.X-b.pos.X) <= CarSpacing && math.Abs(a.pos.Y-b.pos.Y) <= CarSpacing {
			return true
		}
	}
	return false
}

func (cr *crossing) update(elapsedMs float64) {
	const (
		left, top     = -ExitMargin, -ExitMargin
		right, bottom = viewW + ExitMargin, viewH + ExitMargin
	)
	for i := len(cr.cars) - 1; i >= 0; i-- {
		c := cr.cars[i]
		if c.stopped {
			if cr.waves(c) {
				c.stopped = false
				c.cleared = true
			}
			continue
		}
		if !c.cleared && c.atLine() {
			c.stopped = true
		}

		prev := c.pos
		step := CarSpeed * elapsedMs / 1000
		c.pos = c.pos.Add(core.V(step*float64(c.dx), step*float64(c.dy)))
		if c.pos.X < left || c.pos.X > right || c.pos.Y < top || c.pos.Y > bottom {
			cr.cars = append(cr.cars[:i], cr.cars[i+1:]...)
			cr.score++
			continue
		}
		if cr.crowded(c) {
			c.pos = prev
		}
	}
}

// Game implements the traffic contest.
type Game struct {
	contest.Lifecycle
	deps contest.Deps

	difficulty    float64
	rng           *core.Lehmer
	edges         core.EdgeDetector
	spawn         ai.Cadence
	poll          ai.Poller
	dot, elephant crossing
}

// New creates a traffic contest.
func New(deps contest.Deps) *Game {
	return &Game{
		deps:     deps.WithDefaults(),
		dot:      crossing{sprite: sprDot},
		elephant: crossing{sprite: sprElephant},
	}
}

func init() {
	registry.Register(meta, func(d contest.Deps) contest.Contest { return New(d) })
}

// Meta returns the static description.
func (g *Game) Meta() contest.Meta { return meta }

// Setup clears both intersections. The seed drives both the arrivals and
// the elephant's choices.
func (g *Game) Setup(difficulty float64, onComplete contest.Outcome, seed int64) {
	g.Lifecycle.Reset(onComplete)
	g.difficulty = contest.ClampDifficulty(difficulty)
	g.rng = core.NewLehmer(seed)
	g.edges.Reset(0)
	g.spawn = ai.NewCadence(spawnDelay.At(g.difficulty), 0)
	g.poll = ai.NewPoller(AIPollTime, aiWeights)
	g.poll.Reschedule(0)
	g.dot.reset()
	g.elephant.reset()
}

// Start arms the contest.
func (g *Game) Start() { g.Arm() }

// Update advances the contest.
func (g *Game) Update(elapsedMs float64, in core.Buttons) {
	if !g.Tick(elapsedMs) {
		return
	}
	if g.Elapsed() >= PlayTime && g.dot.score != g.elephant.score {
		g.Finish(g.dot.score > g.elephant.score)
		return
	}

	for n := g.spawn.Step(elapsedMs); n > 0; n-- {
		var dx, dy int
		switch g.rng.Intn(4) {
		case 0:
			dx = 1
		case 1:
			dx = -1
		case 2:
			dy = 1
		default:
			dy = -1
		}
		g.dot.add(newCar(dx, dy))
		g.elephant.add(newCar(dx, dy))
	}

	switch g.edges.Update(in) & (core.ButtonsHorizontal | core.ButtonsVertical) {
	case core.ButtonLeft:
		g.dot.move(-1, 0)
	case core.ButtonRight:
		g.dot.move(1, 0)
	case core.ButtonUp:
		g.dot.move(0, -1)
	case core.ButtonDown:
		g.dot.move(0, 1)
	}

	if choice, ok := g.poll.Poll(elapsedMs, g.rng); ok {
		e := &g.elephant
		switch choice {
		case 1:
			e.move(1-2*e.x, 0)
		case 2:
			e.move(0, 1-2*e.y)
		}
	}

	g.dot.update(elapsedMs)
	g.elephant.update(elapsedMs)
}

// SuddenDeath reports whether play has gone past the bell on a tie.
func (g *Game) SuddenDeath() bool {
	return g.Elapsed() >= PlayTime && !g.Resolved()
}

// Render draws the player's intersection on the left and the elephant's on
// the right, with the clock between them.
func (g *Game) Render() {
	r := g.deps.Renderer
	r.FillRect(core.NewRect(0, 0, core.FrameW, core.FrameH), core.ColorBlack)
	renderCrossing(r, 0, &g.dot)
	renderCrossing(r, viewW, &g.elephant)
	r.FillRect(core.NewRect(viewW, 0, 1, core.FrameH), core.ColorDarkGray)

	if g.Elapsed() < PlayTime {
		r.Text(viewW-6, 10, core.ColorBrightWhite, strconv.Itoa(int((PlayTime-g.Elapsed())/1000)))
	} else {
		r.Text(viewW-60, 10, core.ColorBrightWhite, "SUDDEN DEATH!")
	}
}

func renderCrossing(r core.Renderer, left int, cr *crossing) {
	curbs := []core.Rect{
		core.NewRect(left, boxTop, boxLeft, curbW),
		core.NewRect(left+boxLeft+boxW, boxTop, viewW-boxLeft-boxW, curbW),
		core.NewRect(left, boxTop+boxW, boxLeft, curbW),
		core.NewRect(left+boxLeft+boxW, boxTop+boxW, viewW-boxLeft-boxW, curbW),
		core.NewRect(left+boxLeft, 0, curbW, boxTop),
		core.NewRect(left+boxLeft+boxW, 0, curbW, boxTop),
		core.NewRect(left+boxLeft, boxTop+boxW, curbW, viewH-boxTop-boxW),
		core.NewRect(left+boxLeft+boxW, boxTop+boxW, curbW, viewH-boxTop-boxW),
	}
	for _, c := range curbs {
		r.FillRect(c, core.ColorWhite)
	}

	for _, c := range cr.cars {
		s, xf := c.sprite()
		px := core.Round(c.pos.X)
		if px < 0 || px >= viewW {
			continue
		}
		r.Blit(s, left+px, core.Round(c.pos.Y), xf)
	}

	hx := left + boxLeft + (1+2*cr.x)*boxW/4
	hy := boxTop + (1+2*cr.y)*boxW/4
	r.Blit(cr.sprite, hx, hy, core.XformNone)

	score := strconv.Itoa(cr.score)
	if left == 0 {
		r.Text(viewW-30, viewH-40, core.ColorBrightWhite, score)
	} else {
		r.Text(left+10, viewH-40, core.ColorBrightWhite, score)
	}
}

// Scores returns how many cars each side has sent through.
func (g *Game) Scores() (contest.Accumulator, contest.Accumulator) {
	return contest.NewAccumulator(0, math.Inf(1), float64(g.dot.score)),
		contest.NewAccumulator(0, math.Inf(1), float64(g.elephant.score))
}

// Corners returns where the player and the elephant stand.
func (g *Game) Corners() (dotX, dotY, elephantX, elephantY int) {
	return g.dot.x, g.dot.y, g.elephant.x, g.elephant.y
}
