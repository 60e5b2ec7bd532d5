package protocol

import (
	"bufio"
	"errors"
	"io"

	"github.com/cwbriones/editor/internal/logger"
)

// Events is a lazy, finite sequence of inbound events. Lines that do not
// decode are dropped and reading continues with the next line; the
// sequence ends when the connection does.
//
//	ev := client.Events()
//	for ev.Next() {
//		handle(ev.Event())
//	}
//	if err := ev.Err(); err != nil { ... }
type Events struct {
	r    *bufio.Reader
	cur  Event
	err  error
	done bool
}

func newEvents(r io.Reader) *Events {
	return &Events{r: bufio.NewReader(r)}
}

// Next blocks until the next well-formed event arrives. It returns false
// once the underlying reader is exhausted.
func (e *Events) Next() bool {
	e.cur = nil
	for !e.done {
		line, err := e.r.ReadString('\n')
		if err != nil {
			e.done = true
			if !errors.Is(err, io.EOF) {
				e.err = err
			}
		}
		if line == "" {
			continue
		}
		logger.Debug("recv", "line", line)
		ev, perr := ParseEvent(line)
		if perr != nil {
			logger.Debug("dropping inbound line", "line", line, "error", perr)
			continue
		}
		e.cur = ev
		return true
	}
	return false
}

// Event returns the event read by the last successful call to Next.
func (e *Events) Event() Event {
	return e.cur
}

// Err returns the read error that ended the sequence, if it was not a
// clean end of stream.
func (e *Events) Err() error {
	return e.err
}
