package contest

// Phase is where a contest is in its lifecycle.
type Phase int

const (
	PhaseConfigured Phase = iota // after Setup
	PhaseArmed                   // after Start, before the first Update
	PhaseRunning
	PhaseResolving // winner latched, cosmetic wind-down in progress
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhaseConfigured:
		return "configured"
	case PhaseArmed:
		return "armed"
	case PhaseRunning:
		return "running"
	case PhaseResolving:
		return "resolving"
	case PhaseTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Lifecycle tracks a contest's phase, latches its outcome once and fires
// the completion callback exactly once after the termination delay.
// Embed it in a contest and drive it from Setup/Start/Update.
type Lifecycle struct {
	phase      Phase
	onComplete Outcome
	victory    bool
	delay      float64
	elapsed    float64
	fired      bool
}

// Reset returns to Configured with a new callback. A nil callback is allowed.
func (l *Lifecycle) Reset(onComplete Outcome) {
	*l = Lifecycle{onComplete: onComplete}
}

// Arm moves Configured to Armed. Other phases are left alone.
func (l *Lifecycle) Arm() {
	if l.phase == PhaseConfigured {
		l.phase = PhaseArmed
	}
}

// Tick accounts elapsed time and reports whether the contest should simulate.
// It returns false before Start and after termination.
func (l *Lifecycle) Tick(elapsedMs float64) bool {
	switch l.phase {
	case PhaseConfigured, PhaseTerminated:
		return false
	case PhaseArmed:
		l.phase = PhaseRunning
	}
	l.elapsed += elapsedMs
	return true
}

// Resolve latches the outcome and starts the termination countdown.
// Only the first call has an effect; it reports whether this call latched.
func (l *Lifecycle) Resolve(victory bool, delayMs float64) bool {
	if l.phase != PhaseRunning && l.phase != PhaseArmed {
		return false
	}
	l.phase = PhaseResolving
	l.victory = victory
	l.delay = delayMs
	return true
}

// Countdown advances the termination delay while resolving and fires the
// callback when it runs out. It reports whether the callback fired on this call.
func (l *Lifecycle) Countdown(elapsedMs float64) bool {
	if l.phase != PhaseResolving {
		return false
	}
	l.delay -= elapsedMs
	if l.delay > 0 {
		return false
	}
	return l.fire()
}

// Finish resolves with no delay and fires immediately.
func (l *Lifecycle) Finish(victory bool) bool {
	if !l.Resolve(victory, 0) {
		return false
	}
	return l.fire()
}

func (l *Lifecycle) fire() bool {
	if l.fired {
		return false
	}
	l.fired = true
	l.phase = PhaseTerminated
	if l.onComplete != nil {
		l.onComplete(l.victory)
	}
	return true
}

// Phase returns the current phase.
func (l *Lifecycle) Phase() Phase { return l.phase }

// Resolved reports whether the outcome is latched.
func (l *Lifecycle) Resolved() bool {
	return l.phase == PhaseResolving || l.phase == PhaseTerminated
}

// Live reports whether win conditions may still be evaluated.
func (l *Lifecycle) Live() bool {
	return l.phase == PhaseRunning || l.phase == PhaseArmed
}

// Victory returns the latched outcome. Meaningless until Resolved.
func (l *Lifecycle) Victory() bool { return l.victory }

// Elapsed returns simulated milliseconds since Start.
func (l *Lifecycle) Elapsed() float64 { return l.elapsed }
