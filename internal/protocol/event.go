package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is returned for inbound lines that do not decode to an event.
var ErrMalformed = errors.New("malformed event")

// Event is one decoded inbound line: Resize, Mouse or KeyEvent.
type Event interface {
	isEvent()
}

type Resize struct {
	Width  int
	Height int
}

type MouseKind int

const (
	MouseMove MouseKind = iota
	MouseDown
	MouseUp
)

type Mouse struct {
	Kind MouseKind
	X    int
	Y    int
}

type KeyKind int

const (
	KeyPress KeyKind = iota
	KeyRelease
)

type KeyEvent struct {
	Kind KeyKind
	Key  Key
}

func (Resize) isEvent()   {}
func (Mouse) isEvent()    {}
func (KeyEvent) isEvent() {}

// Down reports whether ev is a key press of k.
func (ev KeyEvent) Down(k Key) bool {
	return ev.Kind == KeyPress && ev.Key == k
}

// ParseEvent decodes a single inbound line, without its terminator.
func ParseEvent(line string) (Event, error) {
	line = strings.TrimRight(line, "\r\n")
	tag, rest, _ := strings.Cut(line, ",")
	switch strings.TrimSpace(tag) {
	case "resize":
		w, h, err := parseCoords(rest)
		if err != nil {
			return nil, err
		}
		return Resize{Width: w, Height: h}, nil
	case "mousedown":
		return parseMouse(MouseDown, rest)
	case "mouseup":
		return parseMouse(MouseUp, rest)
	case "mousemove":
		return parseMouse(MouseMove, rest)
	case "keydown":
		return KeyEvent{Kind: KeyPress, Key: ParseKey(rest)}, nil
	case "keyup":
		return KeyEvent{Kind: KeyRelease, Key: ParseKey(rest)}, nil
	default:
		return nil, fmt.Errorf("%w: unknown tag %q", ErrMalformed, tag)
	}
}

func parseMouse(kind MouseKind, rest string) (Event, error) {
	x, y, err := parseCoords(rest)
	if err != nil {
		return nil, err
	}
	return Mouse{Kind: kind, X: x, Y: y}, nil
}

func parseCoords(s string) (int, int, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: want 2 coordinates, got %d", ErrMalformed, len(fields))
	}
	x, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return x, y, nil
}
