package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-duel/internal/core"
)

// ButtonKeyMap binds terminal keys to the six contest buttons.
type ButtonKeyMap struct {
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding
	A     key.Binding
	B     key.Binding
	Abort key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ButtonKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.A, k.B, k.Abort, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ButtonKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.A, k.B},
		{k.Abort, k.Quit},
	}
}

// DefaultButtonKeyMap returns default key bindings.
func DefaultButtonKeyMap() ButtonKeyMap {
	return ButtonKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("left/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("right/d", "right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("up/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("down/s", "down"),
		),
		A: key.NewBinding(
			key.WithKeys(" ", "z", "enter"),
			key.WithHelp("space/z", "A"),
		),
		B: key.NewBinding(
			key.WithKeys("x", "c"),
			key.WithHelp("x", "B"),
		),
		Abort: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "abandon"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type binding struct {
	bit core.Buttons
	key key.Binding
}

func (k ButtonKeyMap) bindings() []binding {
	return []binding{
		{core.ButtonLeft, k.Left},
		{core.ButtonRight, k.Right},
		{core.ButtonUp, k.Up},
		{core.ButtonDown, k.Down},
		{core.ButtonA, k.A},
		{core.ButtonB, k.B},
	}
}

// KeyMapper translates Bubble Tea key messages into held buttons.
// Terminals report presses and auto-repeats but never releases, so a
// button counts as held until hold has passed since its last key event.
type KeyMapper struct {
	keys ButtonKeyMap
	hold time.Duration
	last map[core.Buttons]time.Time
}

// NewKeyMapper creates a key mapper. A non-positive hold falls back to 120ms.
func NewKeyMapper(keys ButtonKeyMap, hold time.Duration) *KeyMapper {
	if hold <= 0 {
		hold = 120 * time.Millisecond
	}
	return &KeyMapper{
		keys: keys,
		hold: hold,
		last: make(map[core.Buttons]time.Time),
	}
}

// Press records a key event at now. It returns the buttons the key maps to,
// zero for keys that are not contest buttons.
func (km *KeyMapper) Press(msg tea.KeyMsg, now time.Time) core.Buttons {
	var got core.Buttons
	for _, b := range km.keys.bindings() {
		if key.Matches(msg, b.key) {
			km.last[b.bit] = now
			got |= b.bit
		}
	}
	return got
}

// Held returns the buttons still inside their hold window at now.
// Presses stamped after now do not count yet.
func (km *KeyMapper) Held(now time.Time) core.Buttons {
	var held core.Buttons
	for bit, t := range km.last {
		if !t.After(now) && now.Sub(t) < km.hold {
			held |= bit
		}
	}
	return held
}

// Release forgets every key, as after a focus change.
func (km *KeyMapper) Release() {
	clear(km.last)
}

// Keys returns the bindings.
func (km *KeyMapper) Keys() ButtonKeyMap {
	return km.keys
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
