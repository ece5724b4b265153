// Package swearing implements the swearing contest: the player and a sailor
// trade insults and whoever has the last word when time runs out wins.
// Speaking twice in a row is a goof that leaves the player tongue-tied.
package swearing

import (
	"math"
	"strconv"

	"github.com/vovakirdan/tui-duel/internal/contest"
	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/registry"
)

// Tuning constants.
const (
	GoofTime         = 1000.0 // ms the player cannot speak after double talk
	GameTime         = 5999.0
	FarewellTime     = 1000.0
	SpeechProportion = 0.4 // after the player speaks, the sailor waits this much of the remaining time
)

// Milliseconds the sailor waits before answering; shorter when hard.
var speechTime = contest.Curve{Easy: 800, Hard: 300}

var meta = contest.Meta{
	Kind:        contest.KindSwearing,
	ActorName:   "SAILOR",
	ContestName: "A SWEARING CONTEST",
}

var (
	sprDotBehind    = core.Sprite{Image: "mg03", Src: core.NewRect(1, 159, 86, 157), Glyph: 'D', Color: core.ColorPink}
	sprDotAhead     = core.Sprite{Image: "mg03", Src: core.NewRect(88, 219, 101, 157), Glyph: 'D', Color: core.ColorBrightRed}
	sprDotGoof      = core.Sprite{Image: "mg03", Src: core.NewRect(1, 317, 86, 157), Glyph: '?', Color: core.ColorPink}
	sprDotSpeech    = core.Sprite{Image: "mg03", Src: core.NewRect(190, 225, 122, 66), Glyph: '#', Color: core.ColorWhite}
	sprSailorBehind = core.Sprite{Image: "mg03", Src: core.NewRect(88, 377, 84, 132), Glyph: 'S', Color: core.ColorBlue}
	sprSailorAhead  = core.Sprite{Image: "mg03", Src: core.NewRect(173, 377, 96, 132), Glyph: 'S', Color: core.ColorBrightBlue}
	sprSailorSpeech = core.Sprite{Image: "mg03", Src: core.NewRect(190, 292, 135, 84), Glyph: '@', Color: core.ColorWhite}
)

// Layout. The two speech balloons share the middle of the frame.
const (
	balloonW         = 135
	footY            = 230
	dotSpeechLeft    = core.FrameW>>1 - balloonW>>1
	sailorSpeechLeft = core.FrameW>>1 + balloonW>>1 - 135
	dotTop           = footY - 157
	sailorTop        = footY - 132
	dotLeftAhead     = dotSpeechLeft - 101 + 15
	dotLeftBehind    = dotSpeechLeft - 86
	sailorLeftAhead  = sailorSpeechLeft + 135 - 12
	sailorLeftBehind = sailorSpeechLeft + 135
	dotSpeechTop     = dotTop + 60 - 66 // balloon tail at her mouth
	sailorSpeechTop  = sailorTop + 40 - 84
	clockLeft        = core.FrameW>>1 - 4
	clockTop         = 10
)

// speaker is who holds the floor.
type speaker int

const (
	nobody speaker = iota
	speakerDot
	speakerSailor
)

// Game implements the swearing contest.
type Game struct {
	contest.Lifecycle
	deps contest.Deps

	difficulty  float64
	edges       core.EdgeDetector
	speaker     speaker
	speeches    []speaker // oldest first, at most one per speaker
	goof        float64
	sailorTime  float64
	sailorClock float64
}

// New creates a swearing contest.
func New(deps contest.Deps) *Game {
	return &Game{deps: deps.WithDefaults()}
}

func init() {
	registry.Register(meta, func(d contest.Deps) contest.Contest { return New(d) })
}

// Meta returns the static description.
func (g *Game) Meta() contest.Meta { return meta }

// Setup clears the floor.
func (g *Game) Setup(difficulty float64, onComplete contest.Outcome, _ int64) {
	g.Lifecycle.Reset(onComplete)
	g.difficulty = contest.ClampDifficulty(difficulty)
	g.edges.Reset(0)
	g.speaker = nobody
	g.speeches = g.speeches[:0]
	g.goof = 0
	g.sailorTime = speechTime.At(g.difficulty)
	g.sailorClock = g.sailorTime
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
	if g.Elapsed() >= GameTime {
		g.Resolve(g.speaker == speakerDot, FarewellTime)
		return
	}

	pressed := g.edges.Update(in).Has(core.ButtonA)
	switch {
	case g.goof > 0:
		g.goof = math.Max(0, g.goof-elapsedMs)
	case pressed && g.speaker == speakerDot:
		g.goof = GoofTime
	case pressed:
		g.speak(speakerDot)
	}

	// The sailor never goofs: he only speaks when he does not hold the floor.
	if g.speaker != speakerSailor {
		if g.sailorClock -= elapsedMs; g.sailorClock <= 0 {
			g.sailorClock = g.sailorTime
			g.speak(speakerSailor)
		}
	}
}

func (g *Game) speak(s speaker) {
	kept := g.speeches[:0]
	for _, prev := range g.speeches {
		if prev != s {
			kept = append(kept, prev)
		}
	}
	g.speeches = append(kept, s)
	g.speaker = s
	if s == speakerDot {
		g.sailorClock = math.Max((GameTime-g.Elapsed())*SpeechProportion, g.sailorTime)
	}
}

// Render draws both speakers, the balloons in speaking order and the clock.
func (g *Game) Render() {
	r := g.deps.Renderer
	r.FillRect(core.NewRect(0, 0, core.FrameW, core.FrameH), core.ColorGreen)

	switch {
	case g.goof > 0:
		r.Blit(sprDotGoof, dotLeftBehind, dotTop, core.XformNone)
	case g.speaker == speakerDot:
		r.Blit(sprDotAhead, dotLeftAhead, dotTop, core.XformNone)
	default:
		r.Blit(sprDotBehind, dotLeftBehind, dotTop, core.XformNone)
	}
	if g.speaker == speakerSailor {
		r.Blit(sprSailorAhead, sailorLeftAhead, sailorTop, core.XformNone)
	} else {
		r.Blit(sprSailorBehind, sailorLeftBehind, sailorTop, core.XformNone)
	}

	for _, s := range g.speeches {
		if s == speakerDot {
			r.Blit(sprDotSpeech, dotSpeechLeft, dotSpeechTop, core.XformNone)
		} else {
			r.Blit(sprSailorSpeech, sailorSpeechLeft, sailorSpeechTop, core.XformNone)
		}
	}

	remaining := math.Max(0, GameTime-g.Elapsed())
	r.Text(clockLeft, clockTop, core.ColorBrightWhite, strconv.Itoa(int(remaining/1000)))
}

// Scores is 1 for whoever holds the floor.
func (g *Game) Scores() (contest.Accumulator, contest.Accumulator) {
	p, o := contest.Unit(), contest.Unit()
	switch g.speaker {
	case speakerDot:
		p.Set(1)
	case speakerSailor:
		o.Set(1)
	}
	return p, o
}

// Speaker reports who holds the floor: 0 nobody, 1 the player, 2 the sailor.
func (g *Game) Speaker() int { return int(g.speaker) }

// Goofed reports whether the player is tongue-tied.
func (g *Game) Goofed() bool { return g.goof > 0 }
