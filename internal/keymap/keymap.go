package keymap

import (
	"fmt"

	"github.com/cwbriones/editor/internal/protocol"
)

type ActionKind int

const (
	Noop ActionKind = iota
	Insert
	Delete
	CursorUp
	CursorDown
	CursorLeft
	CursorRight
	Save
	Quit
)

var actionNames = [...]string{
	Noop:        "noop",
	Insert:      "insert",
	Delete:      "delete",
	CursorUp:    "cursor_up",
	CursorDown:  "cursor_down",
	CursorLeft:  "cursor_left",
	CursorRight: "cursor_right",
	Save:        "save",
	Quit:        "quit",
}

// Action is a semantic editing command. Char is only meaningful for Insert.
type Action struct {
	Kind ActionKind
	Char rune
}

func InsertChar(r rune) Action {
	return Action{Kind: Insert, Char: r}
}

func (a Action) String() string {
	if a.Kind == Insert {
		return fmt.Sprintf("insert(%q)", a.Char)
	}
	if int(a.Kind) < len(actionNames) {
		return actionNames[a.Kind]
	}
	return fmt.Sprintf("action(%d)", int(a.Kind))
}

// Modifiers tracks held modifier keys. Left and right variants are not
// distinguished.
type Modifiers struct {
	Shift bool
	Ctrl  bool
}

// Update applies a key press or release to the modifier state.
func (m *Modifiers) Update(ev protocol.KeyEvent) {
	down := ev.Kind == protocol.KeyPress
	switch ev.Key.Name {
	case protocol.KeyLeftShift, protocol.KeyRightShift:
		m.Shift = down
	case protocol.KeyLeftControl, protocol.KeyRightControl:
		m.Ctrl = down
	}
}

// Map translates a key event into an action given the current modifiers.
// Releases never produce an action.
func Map(m Modifiers, ev protocol.KeyEvent) Action {
	if ev.Kind != protocol.KeyPress {
		return Action{Kind: Noop}
	}
	key := ev.Key
	if m.Ctrl && key == protocol.Char('s') {
		return Action{Kind: Save}
	}
	if m.Ctrl && key == protocol.Char('q') {
		return Action{Kind: Quit}
	}
	switch key.Name {
	case protocol.KeyChar:
		return InsertChar(key.Char)
	case protocol.KeyBackSpace:
		return Action{Kind: Delete}
	case protocol.KeyUp:
		return Action{Kind: CursorUp}
	case protocol.KeyDown:
		return Action{Kind: CursorDown}
	case protocol.KeyLeft:
		return Action{Kind: CursorLeft}
	case protocol.KeyRight:
		return Action{Kind: CursorRight}
	case protocol.KeyReturn:
		return InsertChar('\n')
	default:
		return Action{Kind: Noop}
	}
}

// Mapper holds modifier state across events.
type Mapper struct {
	mods Modifiers
}

func NewMapper() *Mapper {
	return &Mapper{}
}

// Action updates the modifier state with ev, then maps it.
func (m *Mapper) Action(ev protocol.KeyEvent) Action {
	m.mods.Update(ev)
	return Map(m.mods, ev)
}

func (m *Mapper) Modifiers() Modifiers {
	return m.mods
}
