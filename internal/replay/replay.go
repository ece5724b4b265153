// Package replay records the frames fed to a contest and plays them back
// headlessly. A contest is deterministic in its seed, difficulty and frame
// sequence, so a recording reproduces its outcome exactly.
package replay

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-duel/internal/contest"
	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/registry"
)

var (
	// ErrMismatch is returned when a replay does not reproduce the recorded outcome.
	ErrMismatch = errors.New("replay: outcome does not match recording")
	// ErrUnknownContest is returned for a recording of an unregistered contest.
	ErrUnknownContest = errors.New("replay: unknown contest")
)

// Frame is one Update call.
type Frame struct {
	Ms    float64      `yaml:"ms" msgpack:"ms"`
	Input core.Buttons `yaml:"in" msgpack:"in"`
}

// Recording is everything needed to re-run a contest.
type Recording struct {
	ID         string    `yaml:"id" msgpack:"id"`
	Contest    string    `yaml:"contest" msgpack:"contest"`
	Difficulty float64   `yaml:"difficulty" msgpack:"difficulty"`
	Seed       int64     `yaml:"seed" msgpack:"seed"`
	Recorded   time.Time `yaml:"recorded" msgpack:"recorded"`
	Frames     []Frame   `yaml:"frames" msgpack:"frames"`
	Victory    *bool     `yaml:"victory,omitempty" msgpack:"victory,omitempty"` // nil if unfinished
}

// Recorder wraps a contest and logs every frame it is given.
// It is itself a contest, so a driver can run it unchanged.
type Recorder struct {
	contest.Contest
	rec Recording
}

// NewRecorder wraps c.
func NewRecorder(c contest.Contest) *Recorder {
	return &Recorder{Contest: c}
}

// Setup starts a fresh recording and sets up the wrapped contest.
func (r *Recorder) Setup(difficulty float64, onComplete contest.Outcome, seed int64) {
	r.rec = Recording{
		ID:         uuid.NewString(),
		Contest:    r.Meta().ID(),
		Difficulty: difficulty,
		Seed:       seed,
		Recorded:   time.Now().UTC(),
	}
	r.Contest.Setup(difficulty, func(victory bool) {
		v := victory
		r.rec.Victory = &v
		if onComplete != nil {
			onComplete(victory)
		}
	}, seed)
}

// Update logs the frame and forwards it.
func (r *Recorder) Update(elapsedMs float64, in core.Buttons) {
	r.rec.Frames = append(r.rec.Frames, Frame{Ms: elapsedMs, Input: in})
	r.Contest.Update(elapsedMs, in)
}

// Recording returns a copy of what has been recorded so far.
func (r *Recorder) Recording() Recording {
	out := r.rec
	out.Frames = append([]Frame(nil), r.rec.Frames...)
	return out
}

// Factory wraps a contest factory so every contest it makes is recorded.
// Each new recorder is handed to track.
func Factory(create func(string, contest.Deps) (contest.Contest, bool), track func(*Recorder)) func(string, contest.Deps) (contest.Contest, bool) {
	return func(id string, deps contest.Deps) (contest.Contest, bool) {
		c, ok := create(id, deps)
		if !ok {
			return nil, false
		}
		r := NewRecorder(c)
		if track != nil {
			track(r)
		}
		return r, true
	}
}

// Outcome is the result of a replay.
type Outcome struct {
	Finished bool
	Victory  bool
	AtFrame  int // index of the frame whose Update fired the callback
	Scores   [2]float64
}

// Run replays rec on a fresh contest. Frames past the callback are still
// applied, as they were during recording.
func Run(rec Recording, deps contest.Deps) (Outcome, error) {
	c, ok := registry.Create(rec.Contest, deps)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownContest, rec.Contest)
	}

	var out Outcome
	frame := 0
	c.Setup(rec.Difficulty, func(victory bool) {
		if out.Finished {
			return
		}
		out.Finished = true
		out.Victory = victory
		out.AtFrame = frame
	}, rec.Seed)
	c.Start()
	for i, f := range rec.Frames {
		frame = i
		c.Update(f.Ms, f.Input)
	}

	if insp, ok := c.(contest.Inspector); ok {
		p, o := insp.Scores()
		out.Scores = [2]float64{p.Value(), o.Value()}
	}
	return out, nil
}

// Verify replays rec and checks it reaches the recorded outcome.
func Verify(rec Recording, deps contest.Deps) (Outcome, error) {
	out, err := Run(rec, deps)
	if err != nil {
		return out, err
	}
	switch {
	case rec.Victory == nil && out.Finished:
		return out, fmt.Errorf("%w: recording unfinished, replay finished", ErrMismatch)
	case rec.Victory != nil && !out.Finished:
		return out, fmt.Errorf("%w: replay never finished", ErrMismatch)
	case rec.Victory != nil && *rec.Victory != out.Victory:
		return out, fmt.Errorf("%w: recorded victory=%v, replayed victory=%v", ErrMismatch, *rec.Victory, out.Victory)
	}
	return out, nil
}

// Inner returns the wrapped contest.
func (r *Recorder) Inner() contest.Contest { return r.Contest }
