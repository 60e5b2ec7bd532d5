package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadCommand is returned by ParseCommand for lines that are not drawing
// commands.
var ErrBadCommand = errors.New("bad command")

// Command is an outbound drawing primitive as seen by the display server.
type Command interface {
	isCommand()
}

type TextCommand struct {
	X, Y  int
	Color Color
	Text  string
}

type RectCommand struct {
	X, Y          int
	Width, Height int
	Color         Color
}

type ClearCommand struct{}

func (TextCommand) isCommand()  {}
func (RectCommand) isCommand()  {}
func (ClearCommand) isCommand() {}

// ParseCommand decodes one outbound line the way a display server would,
// reversing the comma doubling of text payloads.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimRight(line, "\r\n")
	tag, rest, _ := strings.Cut(line, ",")
	switch tag {
	case "clear":
		return ClearCommand{}, nil
	case "text":
		fields := strings.SplitN(rest, ",", 4)
		if len(fields) != 4 {
			return nil, fmt.Errorf("%w: %q", ErrBadCommand, line)
		}
		nums, err := atois(fields[:2])
		if err != nil {
			return nil, err
		}
		return TextCommand{X: nums[0], Y: nums[1], Color: Color(fields[2]), Text: UnescapeText(fields[3])}, nil
	case "rect":
		fields := strings.Split(rest, ",")
		if len(fields) != 5 {
			return nil, fmt.Errorf("%w: %q", ErrBadCommand, line)
		}
		nums, err := atois(fields[:4])
		if err != nil {
			return nil, err
		}
		return RectCommand{X: nums[0], Y: nums[1], Width: nums[2], Height: nums[3], Color: Color(fields[4])}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadCommand, line)
	}
}

func atois(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadCommand, err)
		}
		out[i] = n
	}
	return out, nil
}
