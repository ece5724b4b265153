// Package umbrella implements the weather contest: sun and rain alternate,
// and the player and a kitten each decide when to open their umbrella.
// Blocked drops score, drops on the head cost, and an open umbrella slowly
// drains the score. Higher score after six seconds wins.
package umbrella

import (
	"strconv"

	"github.com/vovakirdan/tui-duel/internal/contest"
	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/registry"
)

// Tuning constants.
const (
	TotalDuration    = 5999.0 // ms
	DropInterval     = 40.0   // ms between drops while raining
	DropSpeed        = 200.0  // px/s
	HeadPenalty      = -0.200
	BlockBonusPlayer = 0.050
	ScoreDecay       = 0.200 // per second with the umbrella open
	SplashTTL        = 300.0 // ms
	DangerMargin     = 10    // px the kitten adds on each side when sensing drops
)

var (
	shinePeriod   = contest.Curve{Easy: 2000, Hard: 500}    // ms per sun or rain spell; weather flips faster when hard
	catDelay      = contest.Curve{Easy: 500, Hard: 50}      // ms the kitten waits between umbrella changes
	catBlockBonus = contest.Curve{Easy: 0.050, Hard: 0.120} // kitten's reward per blocked drop
)

var meta = contest.Meta{
	Kind:        contest.KindUmbrella,
	ActorName:   "KITTEN",
	ContestName: "AN UMBRELLA CONTEST",
}

// decal is a sprite with a focus point used to attach parts to a body.
type decal struct {
	core.Sprite
	fx, fy int
}

var (
	dcDotBody   = decal{core.Sprite{Image: "mg03", Src: core.NewRect(1, 1, 98, 157), Glyph: 'D', Color: core.ColorPink}, 80, 18}
	dcDotDeploy = decal{core.Sprite{Image: "mg03", Src: core.NewRect(100, 1, 139, 125), Glyph: '^', Color: core.ColorRed}, 88, 39}
	dcDotStow   = decal{core.Sprite{Image: "mg03", Src: core.NewRect(240, 1, 51, 116), Glyph: '|', Color: core.ColorRed}, 5, 21}
	dcCatBody   = decal{core.Sprite{Image: "mg03", Src: core.NewRect(292, 1, 76, 117), Glyph: 'K', Color: core.ColorOrange}, 56, 37}
	dcCatDeploy = decal{core.Sprite{Image: "mg03", Src: core.NewRect(369, 1, 91, 78), Glyph: '^', Color: core.ColorYellow}, 66, 53}
	dcCatStow   = decal{core.Sprite{Image: "mg03", Src: core.NewRect(461, 1, 43, 80), Glyph: '|', Color: core.ColorYellow}, 4, 53}

	sprDrop   = core.Sprite{Image: "mg03", Src: core.NewRect(100, 127, 15, 31), Glyph: '\'', Color: core.ColorBrightBlue}
	sprSplash = core.Sprite{Image: "mg03", Src: core.NewRect(240, 118, 51, 16), Glyph: '~', Color: core.ColorBrightBlue}
	sprSun    = core.Sprite{Image: "mg03", Src: core.NewRect(148, 127, 91, 91), Glyph: '*', Color: core.ColorBrightYellow}
)

// Layout.
const (
	groundY  = core.FrameH - 40
	dropEndY = groundY - 31
	sunTop   = 20
	meterW   = 15
	meterTop = core.FrameH >> 1
	meterH   = core.FrameH>>1 - 10
)

// figure is one umbrella holder with its layout precomputed from the art.
type figure struct {
	body, stow, deploy decal

	phyLeft, phyRight       float64
	bodyLeft, bodyTop       int
	stowLeft, stowTop       int
	deployLeft, deployRight float64
	deployTop               float64
	meterLeft               int

	score    contest.Accumulator
	deployed bool
	delay    float64
}

func newFigure(midX, halfWidth, meterLeft, extraDY int, body, stow, deploy decal) figure {
	f := figure{
		body:      body,
		stow:      stow,
		deploy:    deploy,
		phyLeft:   float64(midX - halfWidth),
		phyRight:  float64(midX + halfWidth),
		bodyLeft:  midX - body.Src.W>>1,
		bodyTop:   groundY - body.Src.H + extraDY,
		meterLeft: meterLeft,
	}
	f.stowLeft = f.bodyLeft + body.fx - stow.fx
	f.stowTop = f.bodyTop + body.fy - stow.fy
	f.deployLeft = float64(f.bodyLeft + body.fx - deploy.fx)
	f.deployRight = f.deployLeft + float64(deploy.Src.W)
	f.deployTop = float64(f.bodyTop + body.fy - deploy.fy)
	return f
}

func (f *figure) reset() {
	f.score = contest.Unit()
	f.deployed = false
	f.delay = 0
}

// catches reports whether the drop lands on this figure, and whether it
// lands on the head rather than the umbrella.
func (f *figure) catches(d *drop) (hit, damage bool) {
	if f.deployed {
		return d.x >= f.deployLeft && d.x <= f.deployRight && d.top >= f.deployTop, false
	}
	return d.x >= f.phyLeft && d.x <= f.phyRight && d.top >= float64(f.bodyTop), true
}

// smellsDanger reports a drop falling near enough to be worth an umbrella.
// The margins err on the side of caution.
func (f *figure) smellsDanger(drops []*drop) bool {
	left := f.phyLeft - DangerMargin
	right := f.phyRight + DangerMargin
	top := float64(f.bodyTop) - core.FrameH/4.0
	for _, d := range drops {
		if d.x >= left && d.x <= right && d.top >= top {
			return true
		}
	}
	return false
}

type drop struct {
	x   float64
	top float64
}

type splash struct {
	x, y int
	ttl  float64
}

// Game implements the umbrella contest.
type Game struct {
	contest.Lifecycle
	deps contest.Deps

	difficulty float64
	dot, cat   figure
	drops      []*drop
	splashes   []splash
	rng        *core.Lehmer
	dropClock  float64
	shining    bool
	shineClock float64
	shinePer   float64
	catDelay   float64
	catBonus   float64
	remaining  float64
}

// New creates an umbrella contest.
func New(deps contest.Deps) *Game {
	return &Game{
		deps: deps.WithDefaults(),
		dot:  newFigure(core.FrameW*2/7, 35, core.FrameW>>1-20, 5, dcDotBody, dcDotStow, dcDotDeploy),
		cat:  newFigure(core.FrameW*5/7, 20, core.FrameW>>1+10, 10, dcCatBody, dcCatStow, dcCatDeploy),
	}
}

func init() {
	registry.Register(meta, func(d contest.Deps) contest.Contest { return New(d) })
}

// Meta returns the static description.
func (g *Game) Meta() contest.Meta { return meta }

// Setup starts in sunshine with both umbrellas closed. The seed picks
// where the rain falls.
func (g *Game) Setup(difficulty float64, onComplete contest.Outcome, seed int64) {
	g.Lifecycle.Reset(onComplete)
	g.difficulty = contest.ClampDifficulty(difficulty)
	g.dot.reset()
	g.cat.reset()
	g.drops = g.drops[:0]
	g.splashes = g.splashes[:0]
	g.rng = core.NewLehmer(seed % core.FrameW)
	g.dropClock = 0
	g.shinePer = shinePeriod.At(g.difficulty)
	g.shineClock = g.shinePer
	g.shining = true
	g.catDelay = catDelay.At(g.difficulty)
	g.catBonus = catBlockBonus.At(g.difficulty)
	g.remaining = TotalDuration
}

// Start arms the contest.
func (g *Game) Start() { g.Arm() }

// Update advances the contest.
func (g *Game) Update(elapsedMs float64, in core.Buttons) {
	if !g.Tick(elapsedMs) {
		return
	}

	if g.remaining -= elapsedMs; g.remaining <= 0 {
		// Strictly greater: a tie, zero-zero included, goes to the kitten.
		g.Finish(g.dot.score.Value() > g.cat.score.Value())
		return
	}

	if g.shineClock -= elapsedMs; g.shineClock <= 0 {
		g.shineClock += g.shinePer
		g.shining = !g.shining
	}

	kept := g.splashes[:0]
	for _, s := range g.splashes {
		if s.ttl -= elapsedMs; s.ttl > 0 {
			kept = append(kept, s)
		}
	}
	g.splashes = kept

	falling := g.drops[:0]
	for _, d := range g.drops {
		d.top += DropSpeed * elapsedMs / 1000
		if d.top >= dropEndY {
			g.splash(d.x, groundY)
			continue
		}
		falling = append(falling, d)
	}
	clear(g.drops[len(falling):])
	g.drops = falling

	if g.dropClock -= elapsedMs; g.dropClock <= 0 {
		g.dropClock += DropInterval
		if !g.shining {
			g.drops = append(g.drops, &drop{
				x:   float64(g.rng.Next() % core.FrameW),
				top: -float64(sprDrop.Src.H),
			})
		}
	}

	g.dot.deployed = in.Has(core.ButtonA)
	if g.dot.deployed {
		g.dot.score.DecayLinear(ScoreDecay, elapsedMs)
	}
	g.catch(&g.dot, BlockBonusPlayer)

	g.steerCat(elapsedMs)
	if g.cat.deployed {
		g.cat.score.DecayLinear(ScoreDecay, elapsedMs)
	}
	g.catch(&g.cat, g.catBonus)
}

// steerCat opens the umbrella when a drop comes close and closes it when
// the coast is clear, waiting catDelay after every change.
func (g *Game) steerCat(elapsedMs float64) {
	c := &g.cat
	if c.delay > 0 {
		if c.delay -= elapsedMs; c.delay <= 0 {
			c.delay = 0
		}
		return
	}
	if danger := c.smellsDanger(g.drops); danger != c.deployed {
		c.deployed = danger
		c.delay = g.catDelay
	}
}

func (g *Game) catch(f *figure, bonus float64) {
	kept := g.drops[:0]
	for _, d := range g.drops {
		hit, damage := f.catches(d)
		if !hit {
			kept = append(kept, d)
			continue
		}
		g.splash(d.x, core.Round(d.top))
		if damage {
			f.score.Add(HeadPenalty)
		} else {
			f.score.Add(bonus)
		}
	}
	clear(g.drops[len(kept):])
	g.drops = kept
}

func (g *Game) splash(x float64, y int) {
	g.splashes = append(g.splashes, splash{
		x:   core.Round(x) - sprSplash.Src.W>>1,
		y:   y - sprSplash.Src.H>>1,
		ttl: SplashTTL,
	})
}

// Render draws the weather, both figures, the drops and the score meters.
func (g *Game) Render() {
	r := g.deps.Renderer
	sky := core.ColorGray
	if g.shining {
		sky = core.ColorBrightCyan
	}
	r.FillRect(core.NewRect(0, 0, core.FrameW, core.FrameH), sky)
	r.FillRect(core.NewRect(0, groundY, core.FrameW, core.FrameH-groundY), core.ColorGreen)
	if g.shining {
		r.Blit(sprSun, core.FrameW>>1-sprSun.Src.W>>1, sunTop, core.XformNone)
	}

	for _, f := range []*figure{&g.dot, &g.cat} {
		r.Blit(f.body.Sprite, f.bodyLeft, f.bodyTop, core.XformNone)
		if f.deployed {
			r.Blit(f.deploy.Sprite, int(f.deployLeft), int(f.deployTop), core.XformNone)
		} else {
			r.Blit(f.stow.Sprite, f.stowLeft, f.stowTop, core.XformNone)
		}
	}
	for _, d := range g.drops {
		r.Blit(sprDrop, core.Round(d.x)-sprDrop.Src.W>>1, core.Round(d.top), core.XformNone)
	}
	for _, s := range g.splashes {
		r.Blit(sprSplash, s.x, s.y, core.XformNone)
	}

	for _, f := range []*figure{&g.dot, &g.cat} {
		bad := int((1 - f.score.Value()) * meterH)
		r.FillRect(core.NewRect(f.meterLeft, meterTop, meterW, meterH), core.ColorRed)
		r.FillRect(core.NewRect(f.meterLeft, meterTop+bad, meterW, meterH-bad), core.ColorGreen)
	}

	if g.remaining > 0 {
		r.Text(core.FrameW>>1-4, 5, core.ColorBrightWhite, strconv.Itoa(int(g.remaining/1000)))
	}
}

// Scores returns the player's and the kitten's scores.
func (g *Game) Scores() (contest.Accumulator, contest.Accumulator) {
	return g.dot.score, g.cat.score
}

// Shining reports the current weather.
func (g *Game) Shining() bool { return g.shining }

// Drops returns the horizontal positions of the drops in the air.
func (g *Game) Drops() []float64 {
	xs := make([]float64, len(g.drops))
	for i, d := range g.drops {
		xs[i] = d.x
	}
	return xs
}
