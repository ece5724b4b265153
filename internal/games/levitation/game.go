// Package levitation implements the levitation contest. Each side keeps a
// focus point near the centre of a slowly turning control wheel; the focus
// drifts outward on its own and six attractors on the rim pull it back.
// A centred focus lifts the meditator, a stray one drops them. When play
// stops, rising score lines decide who floated higher.
package levitation

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
	PlayTime           = 4999.0
	ScoreStepTime      = 250.0
	TerminationTime    = 2000.0
	WheelSpeed         = 1.0  // rad/s
	WanderSpeed        = 2.5  // rad/s around the wander circle
	WanderVelocity     = 10.0 // px/s
	SlideOut           = 0.5  // per second, times the focus distance
	Gravity            = 50.0 // px/s toward each active attractor
	BalanceRadius      = 0.25 // fraction of the wheel radius
	ScoreRate          = 0.25 // per second at full quality
	UnscoreRate        = 1.0
	ActuationThreshold = 0.1 // the monk lets go inside this fraction of the radius
	Attractors         = 6
)

// Milliseconds between the monk's decisions; quicker when hard.
var aiDelay = contest.Curve{Easy: 1000, Hard: 200}

var meta = contest.Meta{
	Kind:        contest.KindLevitation,
	ActorName:   "MONK",
	ContestName: "A LEVITATION CONTEST",
}

// The attractors follow the button order: left, right, up, down, A, B.
var attractorButtons = [Attractors]core.Buttons{
	core.ButtonLeft, core.ButtonRight, core.ButtonUp, core.ButtonDown, core.ButtonA, core.ButtonB,
}

// Layout.
const (
	groundY     = core.FrameH - 40
	halfW       = core.FrameW >> 1
	wheelRadius = core.FrameW >> 3
	wheelMidX   = core.FrameW >> 2
	wheelMidY   = 96
	upRange     = core.FrameH * 0.2 // px a full score lifts
	lineLeft    = core.FrameW >> 3
	lineW       = core.FrameW * 3 >> 2
)

var (
	sprHub          = core.Tile("tiles", 0x54, '+', core.ColorGray)
	sprFocusStray   = core.Tile("tiles", 0x55, 'o', core.ColorRed)
	sprFocusCentred = core.Tile("tiles", 0x65, 'o', core.ColorBrightGreen)
	sprWinner       = core.Tile("tiles", 0x64, '!', core.ColorBrightYellow)
)

// meditator is one side's wheel and the body it lifts.
type meditator struct {
	wheel    float64 // rad
	wander   float64 // rad
	focus    core.Vec
	pulling  [Attractors]bool
	quality  float64 // -1..1
	score    contest.Accumulator
	tile0    int
	thinking ai.Cadence
}

func (m *meditator) reset(delay float64) {
	m.wheel = 0
	m.wander = 0
	m.focus = core.Vec{}
	m.pulling = [Attractors]bool{}
	m.quality = 0
	m.score = contest.Unit()
	m.thinking = ai.NewCadence(delay, 0)
}

// attractor returns the rim position of attractor i relative to the hub.
func (m *meditator) attractor(i int) core.Vec {
	t := m.wheel + float64(i)*math.Pi/3
	return core.V(wheelRadius*math.Sin(t), -wheelRadius*math.Cos(t))
}

func (m *meditator) hold(in core.Buttons) {
	for i, b := range attractorButtons {
		m.pulling[i] = in.Has(b)
	}
}

// think pulls with the one attractor most directly opposite the focus, or
// lets go entirely when the focus is already close to the hub.
func (m *meditator) think(elapsedMs float64) {
	if m.thinking.Step(elapsedMs) == 0 {
		return
	}
	m.pulling = [Attractors]bool{}
	if m.focus.Len()/wheelRadius < ActuationThreshold {
		return
	}
	away := m.focus.Scale(-1)
	best, bestDot := 0, math.Inf(-1)
	for i := range Attractors {
		if d := m.attractor(i).Dot(away); d > bestDot {
			best, bestDot = i, d
		}
	}
	m.pulling[best] = true
}

func (m *meditator) update(elapsedMs float64) {
	dt := elapsedMs / 1000
	if m.wheel += WheelSpeed * dt; m.wheel > math.Pi {
		m.wheel -= 2 * math.Pi
	}

	for i := Attractors - 1; i >= 0; i-- {
		if !m.pulling[i] {
			continue
		}
		dir := m.attractor(i).Sub(m.focus).NormalizeOr(core.Vec{})
		m.focus = m.focus.Add(dir.Scale(Gravity * dt))
	}

	// The wander is a small circle so the focus never settles.
	if m.wander += WanderSpeed * dt; m.wander > math.Pi {
		m.wander -= 2 * math.Pi
	}
	v := WanderVelocity * dt
	m.focus = m.focus.Add(core.V(math.Cos(m.wander)*v, -math.Sin(m.wander)*v))

	m.focus = m.focus.Add(m.focus.Scale(SlideOut * dt))
	distance := m.focus.Len()
	if distance > wheelRadius {
		m.focus = m.focus.Scale(wheelRadius / distance)
		distance = 1
	} else {
		distance /= wheelRadius
	}

	if distance <= BalanceRadius {
		m.quality = (BalanceRadius - distance) / BalanceRadius
	} else {
		m.quality = (BalanceRadius - distance) / (1 - BalanceRadius)
	}
	if m.quality > 0 {
		m.score.Add(m.quality * ScoreRate * dt)
	} else {
		m.score.Add(m.quality * UnscoreRate * dt)
	}
}

// height is how far the score lines must climb to reach the meditator.
func (m *meditator) height() float64 {
	return m.score.Value() * upRange * 0.5
}

func (m *meditator) render(r core.Renderer, left int) {
	tile := m.tile0
	if m.quality > 0 {
		tile++
	}
	hx := left + halfW>>1
	hy := groundY - core.TileSize - core.TileSize>>1 - core.Round(m.score.Value()*upRange)
	r.Blit(core.Tile("tiles", tile, 'M', core.ColorOrange), hx, hy, core.XformNone)
	r.Blit(core.Tile("tiles", tile+0x10, 'M', core.ColorOrange), hx, hy+core.TileSize, core.XformNone)

	mx, my := left+wheelMidX, wheelMidY
	r.Blit(sprHub, mx, my, core.XformNone)
	for i := range Attractors {
		id, c := 0x56+i, core.ColorDarkGray
		if m.pulling[i] {
			id, c = 0x66+i, core.ColorBrightCyan
		}
		p := m.attractor(i)
		r.Blit(core.Tile("tiles", id, '*', c), mx+core.Round(p.X), my+core.Round(p.Y), core.XformNone)
	}
	focus := sprFocusStray
	if m.quality > 0 {
		focus = sprFocusCentred
	}
	r.Blit(focus, mx+core.Round(m.focus.X), my+core.Round(m.focus.Y), core.XformNone)
}

// Game implements the levitation contest.
type Game struct {
	contest.Lifecycle
	deps contest.Deps

	difficulty float64
	play       float64
	tally      ai.Cadence
	lines      int
	dot, monk  meditator
}

// New creates a levitation contest.
func New(deps contest.Deps) *Game {
	return &Game{
		deps: deps.WithDefaults(),
		dot:  meditator{tile0: 0x50},
		monk: meditator{tile0: 0x52},
	}
}

func init() {
	registry.Register(meta, func(d contest.Deps) contest.Contest { return New(d) })
}

// Meta returns the static description.
func (g *Game) Meta() contest.Meta { return meta }

// Setup centres both wheels.
func (g *Game) Setup(difficulty float64, onComplete contest.Outcome, _ int64) {
	g.Lifecycle.Reset(onComplete)
	g.difficulty = contest.ClampDifficulty(difficulty)
	g.play = PlayTime
	g.tally = ai.NewCadence(ScoreStepTime, ScoreStepTime)
	g.lines = 0
	delay := aiDelay.At(g.difficulty)
	g.dot.reset(delay)
	g.monk.reset(delay)
}

// Start arms the contest.
func (g *Game) Start() { g.Arm() }

// Update advances the contest.
func (g *Game) Update(elapsedMs float64, in core.Buttons) {
	if !g.Tick(elapsedMs) {
		return
	}
	switch {
	case g.Resolved():
		g.Countdown(elapsedMs)
		return
	case g.play <= 0:
		for n := g.tally.Step(elapsedMs); n > 0 && g.Live(); n-- {
			g.stepScore()
		}
		return
	}
	g.play = math.Max(0, g.play-elapsedMs)

	g.dot.hold(in)
	g.monk.think(elapsedMs)
	g.dot.update(elapsedMs)
	g.monk.update(elapsedMs)
}

// stepScore raises the score lines one notch. Once they reach either
// meditator, the higher one wins and the monk takes ties.
func (g *Game) stepScore() {
	g.lines++
	dot, monk := g.dot.height(), g.monk.height()
	if float64(g.lines) >= dot || float64(g.lines) >= monk {
		g.Resolve(dot > monk, TerminationTime)
	}
}

// Render draws both meditators with their wheels, the score lines and,
// once decided, a marker by the winner.
func (g *Game) Render() {
	r := g.deps.Renderer
	r.FillRect(core.NewRect(0, 0, core.FrameW, core.FrameH), core.ColorCyan)
	r.FillRect(core.NewRect(0, groundY, core.FrameW, core.FrameH-groundY), core.ColorGreen)
	g.dot.render(r, 0)
	g.monk.render(r, halfW)

	for i, y := 0, groundY-2; i < g.lines; i, y = i+1, y-2 {
		r.FillRect(core.NewRect(lineLeft, y, lineW, 1), core.ColorBlack)
	}

	if g.Resolved() {
		if g.Victory() {
			r.Blit(sprWinner, core.FrameW/3, core.FrameH*2/3, core.XformNone)
		} else {
			r.Blit(sprWinner, core.FrameW*2/3, core.FrameH*2/3, core.XformXRev)
		}
	}

	r.Text(halfW-4, 20, core.ColorBrightWhite, strconv.Itoa(int(g.play/1000)))
}

// Scores returns how high each meditator floats.
func (g *Game) Scores() (contest.Accumulator, contest.Accumulator) {
	return g.dot.score, g.monk.score
}

// Focus returns both focus points relative to their hubs.
func (g *Game) Focus() (dot, monk core.Vec) {
	return g.dot.focus, g.monk.focus
}
