// Package dodging implements the bullet-hell contest. Bullets stream in from
// the top and bottom edges, half aimed at the player and half at the deer.
// The first one to be hit loses; after that every other bullet goes up in smoke.
package dodging

import (
	"math"

	"github.com/vovakirdan/tui-duel/internal/ai"
	"github.com/vovakirdan/tui-duel/internal/contest"
	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/registry"
)

// Tuning constants.
const (
	WalkSpeed        = 150.0  // px/s
	WalkMargin       = 10.0   // players stay this far inside the frame
	BulletSpeed      = 200.0  // px/s
	FireStepDistance = 20     // px between consecutive firing positions
	HitRadius        = 3.0    // player radius when standing still
	TerminationTime  = 1000.0 // ms after the last bullet leaves
	DeerRotateRate   = 5.0    // rad/s of the deer's circular walk
	FrameTime        = 200.0  // ms per walk animation frame
	SmokeFrameTime   = 100.0  // ms per smoke frame
	SplatterJitter   = 4.0    // px of cosmetic scatter per blood drop
)

// FireStepCount is the number of firing positions along half the perimeter.
const FireStepCount = ((core.FrameW + core.FrameH) >> 1) / FireStepDistance

var (
	fireDelay     = contest.Curve{Easy: 800, Hard: 200} // ms between volleys
	deerMixRate   = contest.Curve{Easy: 0.3, Hard: 0.1} // per second, drift toward circling
	deerTrackTime = contest.Curve{Easy: 500, Hard: 100} // ms the deer commits to one threat
)

var meta = contest.Meta{
	Kind:        contest.KindDodging,
	ActorName:   "DEER",
	ContestName: "A DODGING CONTEST",
}

var (
	sprDots = []core.Sprite{
		{Image: "mg03", Src: core.NewRect(369, 80, 10, 14), Glyph: '@', Color: core.ColorPink},
		{Image: "mg03", Src: core.NewRect(380, 80, 10, 14), Glyph: '@', Color: core.ColorPink},
		{Image: "mg03", Src: core.NewRect(391, 80, 10, 14), Glyph: '@', Color: core.ColorPink},
	}
	sprDeers = []core.Sprite{
		{Image: "mg03", Src: core.NewRect(402, 80, 10, 12), Glyph: 'Y', Color: core.ColorBrown},
		{Image: "mg03", Src: core.NewRect(413, 80, 10, 12), Glyph: 'Y', Color: core.ColorBrown},
		{Image: "mg03", Src: core.NewRect(424, 80, 10, 12), Glyph: 'Y', Color: core.ColorBrown},
	}
	sprBullet = core.Sprite{Image: "mg03", Src: core.NewRect(435, 80, 5, 5), Glyph: '•', Color: core.ColorBrightWhite}
	// Roughly large to small; splatter is laid out in this order along the bullet's path.
	sprBloods = []core.Sprite{
		{Image: "mg03", Src: core.NewRect(441, 81, 4, 4), Glyph: '*', Color: core.ColorRed},
		{Image: "mg03", Src: core.NewRect(446, 80, 4, 4), Glyph: '*', Color: core.ColorRed},
		{Image: "mg03", Src: core.NewRect(444, 85, 6, 3), Glyph: '*', Color: core.ColorRed},
		{Image: "mg03", Src: core.NewRect(435, 86, 5, 4), Glyph: '*', Color: core.ColorRed},
		{Image: "mg03", Src: core.NewRect(441, 89, 4, 3), Glyph: '.', Color: core.ColorRed},
		{Image: "mg03", Src: core.NewRect(442, 85, 2, 2), Glyph: '.', Color: core.ColorRed},
		{Image: "mg03", Src: core.NewRect(446, 89, 2, 2), Glyph: '.', Color: core.ColorRed},
		{Image: "mg03", Src: core.NewRect(449, 89, 1, 2), Glyph: '.', Color: core.ColorRed},
	}
	sprSmokes = []core.Sprite{
		{Image: "mg03", Src: core.NewRect(451, 80, 9, 9), Glyph: '░', Color: core.ColorGray},
		{Image: "mg03", Src: core.NewRect(461, 82, 9, 9), Glyph: '░', Color: core.ColorGray},
		{Image: "mg03", Src: core.NewRect(471, 82, 9, 9), Glyph: '░', Color: core.ColorDarkGray},
		{Image: "mg03", Src: core.NewRect(481, 82, 9, 9), Glyph: '·', Color: core.ColorDarkGray},
	}
)

// player is the dot or the deer: a walking point with a previous position
// so moving players collide as segments.
type player struct {
	pos, prev  core.Vec
	alive      bool
	frame      int
	frameClock float64
	sprites    []core.Sprite
}

func (p *player) reset(at core.Vec) {
	p.pos = at
	p.prev = at
	p.alive = true
	p.frame = 0
	p.frameClock = FrameTime
}

func (p *player) animate(elapsedMs float64) {
	if p.frameClock -= elapsedMs; p.frameClock <= 0 {
		p.frameClock += FrameTime
		if p.frame++; p.frame >= len(p.sprites) {
			p.frame = 0
		}
	}
}

func (p *player) walk(dir core.Vec, elapsedMs float64) {
	if !p.alive {
		return
	}
	p.pos = p.pos.Add(dir.Scale(WalkSpeed * elapsedMs / 1000))
	p.pos.X = core.ClampF(p.pos.X, WalkMargin, core.FrameW-WalkMargin)
	p.pos.Y = core.ClampF(p.pos.Y, WalkMargin, core.FrameH-WalkMargin)
}

// moved reports whether the player left its start-of-step position.
func (p *player) moved() bool {
	return p.pos != p.prev
}

type bullet struct {
	pos, prev core.Vec
	vel       core.Vec // px/ms
	smoke     int      // -1 while dangerous, otherwise the smoke frame
	clock     float64
}

func newBullet(at, target core.Vec) *bullet {
	// Only a player resting on the edge could be hit at the muzzle. Aim at
	// the middle instead.
	if at == target {
		target = core.V(core.FrameW>>1, core.FrameH>>1)
	}
	dir := target.Sub(at).NormalizeOr(core.V(0, 1))
	return &bullet{
		pos:   at,
		prev:  at,
		vel:   dir.Scale(BulletSpeed / 1000),
		smoke: -1,
		clock: SmokeFrameTime,
	}
}

// update moves the bullet and reports whether it is still in play.
func (b *bullet) update(elapsedMs float64) bool {
	if b.smoke >= 0 {
		if b.clock -= elapsedMs; b.clock <= 0 {
			b.clock += SmokeFrameTime
			if b.smoke++; b.smoke >= len(sprSmokes) {
				return false
			}
		}
	}
	b.prev = b.pos
	b.pos = b.pos.Add(b.vel.Scale(elapsedMs))
	return b.pos.X >= 0 && b.pos.Y >= 0 && b.pos.X < core.FrameW && b.pos.Y < core.FrameH
}

func (b *bullet) path() core.Segment {
	return core.Seg(b.prev, b.pos)
}

type splatter struct {
	x, y   int
	sprite core.Sprite
}

// Game implements the dodging contest.
type Game struct {
	contest.Lifecycle
	deps contest.Deps

	difficulty float64
	dot, deer  player
	bullets    []*bullet
	firePhase  int
	fire       ai.Cadence
	splatters  []splatter

	deerAngle   float64
	deerMix     contest.Accumulator // 0 = flee the nearest threat, 1 = walk in circles
	deerMixRate float64
	deerTrack   ai.Pursuit[*bullet]
}

// New creates a dodging contest.
func New(deps contest.Deps) *Game {
	g := &Game{deps: deps.WithDefaults()}
	g.dot.sprites = sprDots
	g.deer.sprites = sprDeers
	return g
}

func init() {
	registry.Register(meta, func(d contest.Deps) contest.Contest { return New(d) })
}

// Meta returns the static description.
func (g *Game) Meta() contest.Meta { return meta }

// Setup places the player on the left third and the deer on the right third.
func (g *Game) Setup(difficulty float64, onComplete contest.Outcome, _ int64) {
	g.Lifecycle.Reset(onComplete)
	g.difficulty = contest.ClampDifficulty(difficulty)
	g.dot.reset(core.V(math.Floor(core.FrameW/3), core.FrameH>>1))
	g.deer.reset(core.V(math.Floor(core.FrameW*2/3), core.FrameH>>1))
	g.bullets = g.bullets[:0]
	g.splatters = g.splatters[:0]
	g.firePhase = 0
	delay := fireDelay.At(g.difficulty)
	g.fire = ai.NewCadence(delay, delay)
	g.deerAngle = 0
	g.deerMix = contest.Unit()
	g.deerMixRate = deerMixRate.At(g.difficulty)
	g.deerTrack = ai.NewPursuit[*bullet](deerTrackTime.At(g.difficulty))
}

// Start arms the contest.
func (g *Game) Start() { g.Arm() }

// Update advances the contest.
func (g *Game) Update(elapsedMs float64, in core.Buttons) {
	if !g.Tick(elapsedMs) {
		return
	}

	if g.Live() {
		for n := g.fire.Step(elapsedMs); n > 0; n-- {
			g.volley()
		}
	}

	kept := g.bullets[:0]
	for _, b := range g.bullets {
		if b.update(elapsedMs) {
			kept = append(kept, b)
		}
	}
	clear(g.bullets[len(kept):])
	g.bullets = kept

	g.dot.prev = g.dot.pos
	g.deer.prev = g.deer.pos

	g.dot.walk(core.V(float64(in.DX()), float64(in.DY())), elapsedMs)
	if g.deer.alive && g.Live() {
		g.moveDeer(elapsedMs)
	}
	g.dot.animate(elapsedMs)
	g.deer.animate(elapsedMs)

	if g.Live() {
		// Deer first, so the player wins ties.
		g.collide(&g.deer)
		if g.Live() {
			g.collide(&g.dot)
		}
	}

	// The termination clock only runs once the sky is clear.
	if len(g.bullets) == 0 {
		g.Countdown(elapsedMs)
	}
}

// volley fires four bullets from mirrored edge positions: the two on the
// left aim at the deer, the two on the right at the player.
func (g *Game) volley() {
	const xfold = core.FrameW >> 1
	dx, dy := g.firePhase*FireStepDistance, 0
	if dx >= xfold {
		dy = dx - xfold
		dx = xfold
	}
	left, right := float64(xfold-dx), float64(xfold+dx)
	top, bottom := float64(dy), float64(core.FrameH-dy)
	g.bullets = append(g.bullets,
		newBullet(core.V(left, top), g.deer.pos),
		newBullet(core.V(left, bottom), g.deer.pos),
		newBullet(core.V(right, top), g.dot.pos),
		newBullet(core.V(right, bottom), g.dot.pos),
	)
	if g.firePhase++; g.firePhase >= FireStepCount {
		g.firePhase = 0
	}
}

// moveDeer blends fleeing the tracked bullet with a steady circular walk.
// The blend drifts toward circling over time, which is what eventually
// gets her shot.
func (g *Game) moveDeer(elapsedMs float64) {
	var flee core.Vec
	pos := func(b *bullet) core.Vec { return b.pos }
	if b, ok := g.deerTrack.Select(elapsedMs, g.deer.pos, g.bullets, pos); ok {
		flee = g.deer.pos.Sub(b.pos).NormalizeOr(core.Vec{})
	}

	circle := core.V(math.Cos(g.deerAngle), -math.Sin(g.deerAngle))
	if g.deerAngle += DeerRotateRate * elapsedMs / 1000; g.deerAngle >= math.Pi {
		g.deerAngle -= 2 * math.Pi
	}

	mix := g.deerMix.Value()
	step := flee.Scale(1 - mix).Add(circle.Scale(mix))
	if step.IsZero() {
		return
	}
	g.deer.walk(step.NormalizeOr(core.Vec{}), elapsedMs)
	g.deerMix.Add(g.deerMixRate * elapsedMs / 1000)
}

// collide tests one player against every live bullet. A standing player is
// a small circle; a moving one is the segment it walked this step.
func (g *Game) collide(p *player) {
	if !p.alive {
		return
	}
	var hit *bullet
	for _, b := range g.bullets {
		if b.smoke >= 0 {
			continue
		}
		var touched bool
		if p.moved() {
			touched = core.SegmentsIntersect(core.Seg(p.prev, p.pos), b.path())
		} else {
			touched = core.SegmentHitsCircle(b.path(), p.pos, HitRadius)
		}
		if touched {
			hit = b
			break
		}
	}
	if hit == nil {
		return
	}

	g.splatter(p.pos, hit.vel)
	p.alive = false
	g.Resolve(g.dot.alive, TerminationTime)
	for _, b := range g.bullets {
		if b != hit {
			b.smoke = 0
			b.clock = SmokeFrameTime
		}
	}
}

func (g *Game) splatter(at, dir core.Vec) {
	n := dir.NormalizeOr(core.Vec{})
	step := 0.5
	for _, s := range sprBloods {
		g.splatters = append(g.splatters, splatter{
			x:      core.Round(at.X + g.deps.Jitter.Float64()*SplatterJitter),
			y:      core.Round(at.Y + g.deps.Jitter.Float64()*SplatterJitter),
			sprite: s,
		})
		at = at.Add(n.Scale(step))
		step *= 1.5
	}
}

// Render draws the field, splatter, surviving players and bullets.
func (g *Game) Render() {
	r := g.deps.Renderer
	r.FillRect(core.NewRect(0, 0, core.FrameW, core.FrameH), core.ColorGreen)

	for _, s := range g.splatters {
		r.Blit(s.sprite, s.x, s.y, core.XformNone)
	}
	for _, p := range []*player{&g.dot, &g.deer} {
		if !p.alive {
			continue
		}
		s := p.sprites[p.frame]
		r.Blit(s, core.Round(p.pos.X)-s.Src.W>>1, core.Round(p.pos.Y)-s.Src.H>>1, core.XformNone)
	}
	for _, b := range g.bullets {
		s := sprBullet
		if b.smoke >= 0 {
			s = sprSmokes[b.smoke]
		}
		r.Blit(s, core.Round(b.pos.X)-s.Src.W>>1, core.Round(b.pos.Y)-s.Src.H>>1, core.XformNone)
	}
}

// Scores reports 1 for a side once the other side has been shot, 0 before.
func (g *Game) Scores() (contest.Accumulator, contest.Accumulator) {
	return downed(g.deer.alive), downed(g.dot.alive)
}

func downed(alive bool) contest.Accumulator {
	a := contest.Unit()
	if !alive {
		a.Set(1)
	}
	return a
}

// DotPosition returns the player's position.
func (g *Game) DotPosition() core.Vec { return g.dot.pos }

// DeerPosition returns the deer's position.
func (g *Game) DeerPosition() core.Vec { return g.deer.pos }

// Bullets returns how many bullets are in flight, smoke included.
func (g *Game) Bullets() int { return len(g.bullets) }
