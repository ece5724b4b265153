package core

import "strings"

// Buttons is a snapshot of the held buttons for one frame.
// Contests receive it opaque and derive "new press" edges themselves
// by comparing with the previous frame's snapshot.
type Buttons uint8

// Button bits. Values are stable: they are stored in replay files.
const (
	ButtonLeft  Buttons = 0x01
	ButtonRight Buttons = 0x02
	ButtonUp    Buttons = 0x04
	ButtonDown  Buttons = 0x08
	ButtonA     Buttons = 0x10
	ButtonB     Buttons = 0x20

	ButtonsHorizontal = ButtonLeft | ButtonRight
	ButtonsVertical   = ButtonUp | ButtonDown
	ButtonsAll        = ButtonsHorizontal | ButtonsVertical | ButtonA | ButtonB
)

// Has returns true if every bit of mask is held.
func (b Buttons) Has(mask Buttons) bool {
	return b&mask == mask
}

// Any returns true if at least one bit of mask is held.
func (b Buttons) Any(mask Buttons) bool {
	return b&mask != 0
}

// NewPresses returns buttons held now that were not held in prev.
func (b Buttons) NewPresses(prev Buttons) Buttons {
	return b &^ prev
}

// DX returns -1, 0 or 1 for the horizontal pair.
// Both or neither held yields 0.
func (b Buttons) DX() int {
	switch b & ButtonsHorizontal {
	case ButtonLeft:
		return -1
	case ButtonRight:
		return 1
	}
	return 0
}

// DY returns -1, 0 or 1 for the vertical pair (up is negative).
func (b Buttons) DY() int {
	switch b & ButtonsVertical {
	case ButtonUp:
		return -1
	case ButtonDown:
		return 1
	}
	return 0
}

// String returns a compact human-readable form such as "L+A".
func (b Buttons) String() string {
	if b == 0 {
		return "-"
	}
	names := []struct {
		bit  Buttons
		name string
	}{
		{ButtonLeft, "L"}, {ButtonRight, "R"}, {ButtonUp, "U"},
		{ButtonDown, "D"}, {ButtonA, "A"}, {ButtonB, "B"},
	}
	var parts []string
	for _, n := range names {
		if b&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// EdgeDetector remembers the previous snapshot so callers can ask for new presses.
type EdgeDetector struct {
	prev Buttons
}

// Update records cur and returns the buttons that went down since the last call.
func (e *EdgeDetector) Update(cur Buttons) Buttons {
	pressed := cur.NewPresses(e.prev)
	e.prev = cur
	return pressed
}

// Prev returns the snapshot recorded by the last Update.
func (e *EdgeDetector) Prev() Buttons {
	return e.prev
}

// Reset forgets history. With primeHeld, buttons already down are not reported as new.
func (e *EdgeDetector) Reset(primeHeld Buttons) {
	e.prev = primeHeld
}
