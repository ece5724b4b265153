// Package rollerskates implements the rollerskates contest: a downhill race
// against a rabbit. Skaters speed up on their own, brake with LEFT and jump
// with A. Touching an obstacle on the ground is a fall.
package rollerskates

import (
	"math"

	"github.com/vovakirdan/tui-duel/internal/ai"
	"github.com/vovakirdan/tui-duel/internal/contest"
	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/registry"
)

// Tuning constants.
const (
	VelocityLimit   = 800.0 // px/s
	JumpTimeLimit   = 800.0 // ms in the air per jump
	JumpLead        = 100.0 // px; the rabbit jumps when an obstacle is this close
	JumpTrail       = 50.0  // px; and stays up until it is this far behind
	AcceptFraction  = 0.75  // the rabbit stops braking below this share of its target
	Goal            = 5500.0
	ObstacleW       = 31.0
	FallSlide       = 40.0 // px past the obstacle's left edge where a fallen skater lies
	TerminationTime = 500.0
)

var (
	// px/s² while not braking. Both skaters share the curve.
	acceleration = contest.Curve{Easy: 100, Hard: 400}
	// px/s² while braking.
	deceleration = contest.Curve{Easy: 600, Hard: 400}
	// The rabbit brakes above this speed; faster when hard.
	rabbitTarget = contest.Curve{Easy: 400, Hard: VelocityLimit}
)

// Obstacles sit at fixed world positions.
var obstacles = [...]float64{600, 1200, 1800, 2400, 3100, 3600, 4200, 4600}

var meta = contest.Meta{
	Kind:        contest.KindRollerskates,
	ActorName:   "RABBIT",
	ContestName: "A ROLLERSKATES CONTEST",
}

// looks are the four poses of one skater.
type looks struct {
	skate, jump, brake, fall core.Sprite
}

var (
	sprGroundA  = core.Sprite{Image: "mg03", Src: core.NewRect(326, 339, 32, 142), Glyph: '/', Color: core.ColorGreen}
	sprGroundB  = core.Sprite{Image: "mg03", Src: core.NewRect(359, 339, 32, 142), Glyph: '/', Color: core.ColorBrightGreen}
	sprObstacle = core.Sprite{Image: "mg03", Src: core.NewRect(294, 377, 31, 21), Glyph: '^', Color: core.ColorBrown}
	sprGoal     = core.Sprite{Image: "mg03", Src: core.NewRect(293, 399, 32, 28), Glyph: 'F', Color: core.ColorBrightWhite}

	dotLooks = looks{
		skate: core.Sprite{Image: "mg03", Src: core.NewRect(392, 339, 35, 58), Glyph: 'D', Color: core.ColorPink},
		jump:  core.Sprite{Image: "mg03", Src: core.NewRect(428, 339, 35, 58), Glyph: 'D', Color: core.ColorPink},
		brake: core.Sprite{Image: "mg03", Src: core.NewRect(464, 339, 35, 58), Glyph: 'D', Color: core.ColorPink},
		fall:  core.Sprite{Image: "mg03", Src: core.NewRect(392, 398, 63, 23), Glyph: '_', Color: core.ColorPink},
	}
	rabbitLooks = looks{
		skate: core.Sprite{Image: "mg03", Src: core.NewRect(392, 422, 35, 58), Glyph: 'R', Color: core.ColorWhite},
		jump:  core.Sprite{Image: "mg03", Src: core.NewRect(428, 422, 35, 58), Glyph: 'R', Color: core.ColorWhite},
		brake: core.Sprite{Image: "mg03", Src: core.NewRect(464, 422, 35, 58), Glyph: 'R', Color: core.ColorWhite},
		fall:  core.Sprite{Image: "mg03", Src: core.NewRect(392, 481, 63, 23), Glyph: '_', Color: core.ColorWhite},
	}
)

// Each half of the screen follows one skater down a 1:4 slope.
const (
	sceneH = core.FrameH >> 1
	slope  = 0.25
)

// skater is one racer. x is in world pixels.
type skater struct {
	x, velocity  float64
	accel, decel float64
	braking      bool
	jumping      bool
	jumpTime     float64
	fallen       bool
	looks        looks
}

func (s *skater) reset(d float64, l looks) {
	*s = skater{
		accel: acceleration.At(d),
		decel: deceleration.At(d),
		looks: l,
	}
}

// update moves the skater. Velocity holds while airborne, and a jump ends
// after JumpTimeLimit even if the skater still wants to be up.
func (s *skater) update(elapsedMs float64) {
	if s.fallen {
		return
	}
	if !s.jumping {
		s.jumpTime = 0
	} else if s.jumpTime += elapsedMs; s.jumpTime >= JumpTimeLimit {
		s.jumping = false
	}

	if !s.jumping {
		if s.braking {
			s.velocity = math.Max(0, s.velocity-s.decel*elapsedMs/1000)
		} else {
			s.velocity = math.Min(VelocityLimit, s.velocity+s.accel*elapsedMs/1000)
		}
	}
	s.x += s.velocity * elapsedMs / 1000

	if s.jumping {
		return
	}
	for _, ox := range obstacles {
		if s.x >= ox && s.x < ox+ObstacleW {
			s.fallen = true
			s.x = ox + FallSlide
			return
		}
	}
}

// obstacleAhead reports whether an obstacle lies in the rabbit's jump window.
func obstacleAhead(x float64) bool {
	for _, ox := range obstacles {
		if ox > x-JumpTrail && ox <= x+JumpLead {
			return true
		}
	}
	return false
}

func (s *skater) sprite() core.Sprite {
	switch {
	case s.fallen:
		return s.looks.fall
	case s.jumping:
		return s.looks.jump
	case s.braking:
		return s.looks.brake
	}
	return s.looks.skate
}

// Game implements the rollerskates contest.
type Game struct {
	contest.Lifecycle
	deps contest.Deps

	difficulty  float64
	dot, rabbit skater
	cruise      ai.Hysteresis
}

// New creates a rollerskates contest.
func New(deps contest.Deps) *Game {
	return &Game{deps: deps.WithDefaults()}
}

func init() {
	registry.Register(meta, func(d contest.Deps) contest.Contest { return New(d) })
}

// Meta returns the static description.
func (g *Game) Meta() contest.Meta { return meta }

// Setup lines both skaters up at the top of the hill.
func (g *Game) Setup(difficulty float64, onComplete contest.Outcome, _ int64) {
	g.Lifecycle.Reset(onComplete)
	g.difficulty = contest.ClampDifficulty(difficulty)
	g.dot.reset(g.difficulty, dotLooks)
	g.rabbit.reset(g.difficulty, rabbitLooks)
	target := rabbitTarget.At(g.difficulty)
	g.cruise = ai.NewHysteresis(target, target*AcceptFraction)
}

// Start arms the contest.
func (g *Game) Start() { g.Arm() }

// Update advances the contest. Skaters keep rolling while the result is shown.
func (g *Game) Update(elapsedMs float64, in core.Buttons) {
	if !g.Tick(elapsedMs) {
		return
	}
	if g.Resolved() && g.Countdown(elapsedMs) {
		return
	}

	g.dot.jumping = in.Has(core.ButtonA)
	g.dot.braking = in.Has(core.ButtonLeft)
	g.rabbit.braking = g.cruise.Update(g.rabbit.velocity)
	g.rabbit.jumping = obstacleAhead(g.rabbit.x)

	g.dot.update(elapsedMs)
	g.rabbit.update(elapsedMs)

	if !g.Live() {
		return
	}
	switch {
	case g.dot.fallen && g.rabbit.fallen:
		// Nobody finishes: whoever got further wins, the rabbit on a tie.
		g.Resolve(g.dot.x > g.rabbit.x, TerminationTime)
	case g.dot.x >= Goal:
		g.Resolve(true, TerminationTime)
	case g.rabbit.x >= Goal:
		g.Resolve(false, TerminationTime)
	}
}

// Render splits the screen: the player's view on top, the rabbit's below.
func (g *Game) Render() {
	r := g.deps.Renderer
	r.FillRect(core.NewRect(0, 0, core.FrameW, core.FrameH), core.ColorCyan)
	renderScene(r, 0, &g.dot, &g.rabbit)
	renderScene(r, sceneH, &g.rabbit, &g.dot)
	r.FillRect(core.NewRect(0, sceneH-1, core.FrameW, 1), core.ColorBlack)
}

// renderScene draws one half centred on leader. Anything outside the half
// is skipped since renderers do not clip.
func renderScene(r core.Renderer, top int, leader, opponent *skater) {
	worldX := core.Round(leader.x) - core.FrameW>>1
	visible := func(x, y, w, h int) bool {
		return x+w > 0 && x < core.FrameW && y+h > top && y < top+sceneH
	}
	blit := func(s core.Sprite, x, y int) {
		w, h := s.Size()
		if visible(x, y, w, h) {
			r.Blit(s, x, y, core.XformNone)
		}
	}
	slopeY := func(wx float64) int {
		return top + int(math.Floor((wx-float64(worldX))*slope))
	}

	tileW, _ := sprGroundA.Size()
	col := int(math.Floor(float64(worldX) / float64(tileW)))
	colX := col * tileW
	colY := top + 14 - int(math.Floor(float64(worldX-colX)*slope))
	for ; colX < worldX+core.FrameW; col, colX, colY = col+1, colX+tileW, colY+8 {
		tile := sprGroundB
		if col&1 != 0 {
			tile = sprGroundA
		}
		blit(tile, colX-worldX, colY)
	}

	for _, ox := range obstacles {
		blit(sprObstacle, core.Round(ox)-worldX, slopeY(ox))
	}
	blit(sprGoal, core.Round(Goal)-worldX, slopeY(Goal)+16)

	opp := opponent.sprite()
	ow, _ := opp.Size()
	ox, oy := core.Round(opponent.x)-worldX-ow>>1, slopeY(opponent.x)-39
	if opponent.fallen {
		oy += 45
	}
	blit(opp, ox, oy)

	hero := leader.sprite()
	hw, hh := hero.Size()
	hy := top + sceneH>>1 - hh>>1
	if !leader.fallen {
		hy -= 19
	}
	if leader.jumping {
		hy -= 10
	}
	blit(hero, core.FrameW>>1-hw>>1, hy)
}

// Scores reports how much of the course each skater has covered.
func (g *Game) Scores() (contest.Accumulator, contest.Accumulator) {
	p, o := contest.Unit(), contest.Unit()
	p.Set(g.dot.x / Goal)
	o.Set(g.rabbit.x / Goal)
	return p, o
}

// Positions returns both skaters' distance down the hill.
func (g *Game) Positions() (dot, rabbit float64) {
	return g.dot.x, g.rabbit.x
}
