package session

import "github.com/vovakirdan/tui-duel/internal/core"

// OverlayKind tags what, if anything, is on top of the contest.
type OverlayKind int

const (
	OverlayNone OverlayKind = iota
	OverlayOverture
	OverlayDenouement
)

// String returns a short label for logs.
func (k OverlayKind) String() string {
	switch k {
	case OverlayOverture:
		return "overture"
	case OverlayDenouement:
		return "denouement"
	}
	return "none"
}

// Blackout is how long an overlay ignores input after it opens.
const Blackout = 500.0

// Overlay is the single modal layer. An overlay is acknowledged by
// releasing every button, pressing A, then releasing again; the blackout
// keeps a button held from the contest from dismissing it by accident.
type Overlay struct {
	Kind OverlayKind

	// Set for a denouement.
	Victory      bool
	Consequences Consequences

	blackout     float64
	awaitRelease bool
	acked        bool
}

func (o *Overlay) open(kind OverlayKind) {
	*o = Overlay{Kind: kind, blackout: Blackout, awaitRelease: true}
}

func (o *Overlay) close() {
	*o = Overlay{}
}

// Active reports whether an overlay is up.
func (o *Overlay) Active() bool { return o.Kind != OverlayNone }

// update advances the acknowledgement protocol and reports whether the
// player has dismissed the overlay.
func (o *Overlay) update(elapsedMs float64, in core.Buttons) bool {
	if o.blackout > 0 {
		if o.blackout -= elapsedMs; o.blackout > 0 {
			return false
		}
		o.blackout = 0
	}
	if o.awaitRelease {
		if in != 0 {
			return false
		}
		if o.acked {
			return true
		}
		o.awaitRelease = false
	}
	if in.Has(core.ButtonA) {
		o.acked = true
		o.awaitRelease = true
	}
	return false
}
