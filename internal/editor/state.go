package editor

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbriones/editor/internal/config"
	"github.com/cwbriones/editor/internal/keymap"
	"github.com/cwbriones/editor/internal/logger"
	"github.com/cwbriones/editor/internal/protocol"
	"github.com/cwbriones/editor/internal/textstore"
)

// Mode is either EditMode or SaveMode.
type Mode interface {
	isMode()
}

type EditMode struct{}

// SaveMode collects the target filename; typed characters go to Filename
// instead of the document.
type SaveMode struct {
	Filename string
}

func (EditMode) isMode() {}
func (SaveMode) isMode() {}

// Sink receives the document when a save is committed.
type Sink interface {
	WriteFile(name string, data []byte) error
}

// FileSink creates or truncates the named file.
type FileSink struct{}

func (FileSink) WriteFile(name string, data []byte) error {
	return os.WriteFile(name, data, 0o644)
}

type Theme struct {
	Text    protocol.Color
	Caret   protocol.Color
	Overlay protocol.Color
}

// Cursor is the insertion point as an absolute offset and as line/column.
type Cursor struct {
	Ins    int
	Line   int
	Column int
}

type Editor struct {
	buf textstore.Store

	ins    int // absolute offset of the next insertion
	line   int
	column int
	goal   int // column vertical moves aim for

	top    int // first visible line
	topIns int // offset of the first character of line top

	totalLines    int
	width, height int

	charWidth  int
	lineHeight int
	theme      Theme

	mode     Mode
	sink     Sink
	filename string
}

func New(cfg config.Config) *Editor {
	charWidth := cfg.Editor.CharWidth
	if charWidth < 1 {
		charWidth = 1
	}
	lineHeight := cfg.Editor.LineHeight
	if lineHeight < 1 {
		lineHeight = 1
	}
	return &Editor{
		buf:        textstore.NewGapBuffer(0),
		totalLines: 1,
		charWidth:  charWidth,
		lineHeight: lineHeight,
		theme: Theme{
			Text:    protocol.Color(cfg.Theme.Text),
			Caret:   protocol.Color(cfg.Theme.Caret),
			Overlay: protocol.Color(cfg.Theme.Overlay),
		},
		mode: EditMode{},
		sink: FileSink{},
	}
}

// SetSink replaces where committed saves are written.
func (e *Editor) SetSink(s Sink) {
	e.sink = s
}

// Load replaces the document with text and resets the cursor and viewport.
func (e *Editor) Load(text string) {
	e.buf = textstore.FromString(text)
	e.ins, e.line, e.column, e.goal = 0, 0, 0, 0
	e.top, e.topIns = 0, 0
	e.totalLines = strings.Count(text, "\n") + 1
}

func (e *Editor) OpenFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	e.Load(string(data))
	e.filename = path
	logger.Info("opened file", "path", path, "lines", e.totalLines)
	return nil
}

// Contents returns the whole document in order.
func (e *Editor) Contents() string {
	var sb strings.Builder
	n := e.buf.Len()
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteRune(e.at(i))
	}
	return sb.String()
}

func (e *Editor) Cursor() Cursor {
	return Cursor{Ins: e.ins, Line: e.line, Column: e.column}
}

func (e *Editor) Mode() Mode {
	return e.mode
}

func (e *Editor) TotalLines() int {
	return e.totalLines
}

// Filename is the file most recently opened or saved.
func (e *Editor) Filename() string {
	return e.filename
}

// Apply runs one action through the mode state machine. quit reports a
// Quit action; err is only set when a save could not be written.
func (e *Editor) Apply(a keymap.Action) (quit bool, err error) {
	logger.Debug("editing", "action", a.String(), "ins", e.ins, "line", e.line, "column", e.column)
	switch m := e.mode.(type) {
	case SaveMode:
		return false, e.applySave(m, a)
	default:
		return e.applyEdit(a)
	}
}

func (e *Editor) applyEdit(a keymap.Action) (bool, error) {
	switch a.Kind {
	case keymap.Insert:
		if err := e.insert(a.Char); err != nil {
			return false, err
		}
	case keymap.Delete:
		e.deleteBack()
	case keymap.CursorUp:
		e.moveUp()
	case keymap.CursorDown:
		e.moveDown()
	case keymap.CursorLeft:
		e.moveLeft()
	case keymap.CursorRight:
		e.moveRight()
	case keymap.Save:
		e.mode = SaveMode{}
	case keymap.Quit:
		return true, nil
	}
	return false, nil
}

func (e *Editor) applySave(m SaveMode, a keymap.Action) error {
	switch a.Kind {
	case keymap.Insert:
		if a.Char == '\n' {
			return e.commit(m.Filename)
		}
		e.mode = SaveMode{Filename: m.Filename + string(a.Char)}
	case keymap.Delete:
		name := []rune(m.Filename)
		if len(name) > 0 {
			e.mode = SaveMode{Filename: string(name[:len(name)-1])}
		}
	}
	return nil
}

func (e *Editor) commit(name string) error {
	e.mode = EditMode{}
	if name == "" {
		logger.Info("save cancelled: empty filename")
		return nil
	}
	if err := e.sink.WriteFile(name, []byte(e.Contents())); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	e.filename = name
	logger.Info("saved", "path", name, "chars", e.buf.Len())
	return nil
}

func (e *Editor) insert(r rune) error {
	if err := e.buf.Insert(e.ins, r); err != nil {
		return fmt.Errorf("insert at %d: %w", e.ins, err)
	}
	e.ins++
	if r == '\n' {
		e.column = 0
		e.line++
		e.totalLines++
	} else {
		e.column++
	}
	e.goal = e.column
	e.follow()
	return nil
}

// deleteBack removes the character before the cursor.
func (e *Editor) deleteBack() {
	if e.ins == 0 {
		return
	}
	r, ok := e.buf.Remove(e.ins - 1)
	if !ok {
		return
	}
	e.ins--
	if r == '\n' {
		e.totalLines--
		e.line--
		e.column = e.ins - e.lineStart(e.ins)
	} else if e.column > 0 {
		e.column--
	}
	e.goal = e.column
	e.follow()
}
