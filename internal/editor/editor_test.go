package editor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbriones/editor/internal/config"
	"github.com/cwbriones/editor/internal/keymap"
)

func newTestEditor(text string) *Editor {
	e := New(config.Default())
	e.Load(text)
	return e
}

func apply(t *testing.T, e *Editor, actions ...keymap.Action) {
	t.Helper()
	for _, a := range actions {
		if _, err := e.Apply(a); err != nil {
			t.Fatalf("Apply(%v): %v", a, err)
		}
	}
}

func act(kind keymap.ActionKind) keymap.Action {
	return keymap.Action{Kind: kind}
}

func wantCursor(t *testing.T, e *Editor, ins, line, column int) {
	t.Helper()
	got := e.Cursor()
	want := Cursor{Ins: ins, Line: line, Column: column}
	if got != want {
		t.Fatalf("cursor = %+v, want %+v", got, want)
	}
}

func checkInvariants(t *testing.T, e *Editor) {
	t.Helper()
	text := e.Contents()
	if want := strings.Count(text, "\n") + 1; e.totalLines != want {
		t.Fatalf("totalLines = %d, want %d for %q", e.totalLines, want, text)
	}
	if e.ins < 0 || e.ins > e.buf.Len() {
		t.Fatalf("ins = %d out of [0, %d]", e.ins, e.buf.Len())
	}
	if want := strings.Count(string([]rune(text)[:e.ins]), "\n"); e.line != want {
		t.Fatalf("line = %d, want %d", e.line, want)
	}
	if want := e.ins - e.lineStart(e.ins); e.column != want {
		t.Fatalf("column = %d, want %d", e.column, want)
	}
	if e.topIns != e.lineStart(e.topIns) {
		t.Fatalf("topIns = %d is not a line start", e.topIns)
	}
}

func TestCursorDownThenInsert(t *testing.T) {
	e := newTestEditor("ab\ncd")
	apply(t, e, act(keymap.CursorDown))
	wantCursor(t, e, 3, 1, 0)
	apply(t, e, keymap.InsertChar('x'))
	if got := e.Contents(); got != "ab\nxcd" {
		t.Fatalf("contents = %q, want %q", got, "ab\nxcd")
	}
	wantCursor(t, e, 4, 1, 1)
}

func TestTotalLinesTracksNewlines(t *testing.T) {
	e := newTestEditor("")
	seed := uint32(7)
	for i := 0; i < 400; i++ {
		seed = seed*1664525 + 1013904223
		switch seed >> 29 {
		case 0, 1:
			apply(t, e, keymap.InsertChar('\n'))
		case 2, 3, 4:
			apply(t, e, keymap.InsertChar(rune('a'+i%26)))
		case 5:
			apply(t, e, act(keymap.Delete))
		case 6:
			apply(t, e, act(keymap.CursorUp), act(keymap.CursorLeft))
		default:
			apply(t, e, act(keymap.CursorDown), act(keymap.CursorRight))
		}
		checkInvariants(t, e)
	}
}

func TestInsertThenDeleteRestores(t *testing.T) {
	for _, r := range []rune{'z', '\n', ','} {
		e := newTestEditor("one\ntwo\nthree")
		apply(t, e, act(keymap.CursorDown), act(keymap.CursorRight), act(keymap.CursorRight))
		before := e.Cursor()
		apply(t, e, keymap.InsertChar(r), act(keymap.Delete))
		if got := e.Contents(); got != "one\ntwo\nthree" {
			t.Fatalf("contents after %q = %q", r, got)
		}
		if got := e.Cursor(); got != before {
			t.Fatalf("cursor after %q = %+v, want %+v", r, got, before)
		}
		if e.totalLines != 3 {
			t.Fatalf("totalLines = %d, want 3", e.totalLines)
		}
	}
}

func TestDownThenUpRestores(t *testing.T) {
	e := newTestEditor("hello\nhi\nworld")
	for i := 0; i < 4; i++ {
		apply(t, e, act(keymap.CursorRight))
	}
	before := e.Cursor()
	apply(t, e, act(keymap.CursorDown))
	wantCursor(t, e, 8, 1, 2)
	apply(t, e, act(keymap.CursorUp))
	if got := e.Cursor(); got != before {
		t.Fatalf("cursor = %+v, want %+v", got, before)
	}
}

func TestUpMovesExactlyOneLine(t *testing.T) {
	e := newTestEditor("a\nbb\nccc")
	apply(t, e, act(keymap.CursorDown), act(keymap.CursorDown), act(keymap.CursorRight))
	wantCursor(t, e, 6, 2, 1)
	apply(t, e, act(keymap.CursorUp))
	wantCursor(t, e, 3, 1, 1)
	apply(t, e, act(keymap.CursorUp))
	wantCursor(t, e, 1, 0, 1)
}

func TestBoundariesAreNoops(t *testing.T) {
	e := newTestEditor("ab\ncd")
	apply(t, e, act(keymap.Delete), act(keymap.CursorLeft), act(keymap.CursorUp))
	wantCursor(t, e, 0, 0, 0)
	if got := e.Contents(); got != "ab\ncd" {
		t.Fatalf("contents = %q", got)
	}

	apply(t, e, act(keymap.CursorRight), act(keymap.CursorRight), act(keymap.CursorRight))
	wantCursor(t, e, 2, 0, 2)

	apply(t, e, act(keymap.CursorDown), act(keymap.CursorDown))
	wantCursor(t, e, 5, 1, 2)
	apply(t, e, act(keymap.CursorRight))
	wantCursor(t, e, 5, 1, 2)

	apply(t, e, act(keymap.CursorLeft), act(keymap.CursorLeft), act(keymap.CursorLeft))
	wantCursor(t, e, 3, 1, 0)
}

func TestDeleteJoinsLines(t *testing.T) {
	e := newTestEditor("ab\ncd")
	apply(t, e, act(keymap.CursorDown), act(keymap.Delete))
	if got := e.Contents(); got != "abcd" {
		t.Fatalf("contents = %q, want %q", got, "abcd")
	}
	wantCursor(t, e, 2, 0, 2)
	if e.totalLines != 1 {
		t.Fatalf("totalLines = %d, want 1", e.totalLines)
	}
}

type memSink struct {
	files map[string]string
	err   error
}

func (m *memSink) WriteFile(name string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	if m.files == nil {
		m.files = map[string]string{}
	}
	m.files[name] = string(data)
	return nil
}

func TestSaveModeCommit(t *testing.T) {
	e := newTestEditor("ab\ncd")
	sink := &memSink{}
	e.SetSink(sink)

	apply(t, e, act(keymap.Save))
	if m, ok := e.Mode().(SaveMode); !ok || m.Filename != "" {
		t.Fatalf("mode = %#v, want empty SaveMode", e.Mode())
	}
	apply(t, e, keymap.InsertChar('o'), keymap.InsertChar('u'), keymap.InsertChar('t'))
	if m := e.Mode().(SaveMode); m.Filename != "out" {
		t.Fatalf("filename = %q, want %q", m.Filename, "out")
	}
	if got := e.Contents(); got != "ab\ncd" {
		t.Fatalf("document changed in save mode: %q", got)
	}
	apply(t, e, keymap.InsertChar('\n'))
	if _, ok := e.Mode().(EditMode); !ok {
		t.Fatalf("mode = %#v, want EditMode", e.Mode())
	}
	if got := sink.files["out"]; got != "ab\ncd" {
		t.Fatalf("sink[out] = %q, want %q", got, "ab\ncd")
	}
	if e.Filename() != "out" {
		t.Fatalf("Filename = %q", e.Filename())
	}
}

func TestSaveModeEditsFilename(t *testing.T) {
	e := newTestEditor("x")
	sink := &memSink{}
	e.SetSink(sink)
	apply(t, e, act(keymap.Save), keymap.InsertChar('a'), keymap.InsertChar('é'), act(keymap.Delete))
	if m := e.Mode().(SaveMode); m.Filename != "a" {
		t.Fatalf("filename = %q, want %q", m.Filename, "a")
	}
	quit, err := e.Apply(act(keymap.Quit))
	if quit || err != nil {
		t.Fatalf("quit in save mode = %v, %v, want ignored", quit, err)
	}
	apply(t, e, act(keymap.CursorDown), act(keymap.Delete), act(keymap.Delete))
	if m := e.Mode().(SaveMode); m.Filename != "" {
		t.Fatalf("filename = %q, want empty", m.Filename)
	}
	apply(t, e, keymap.InsertChar('\n'))
	if _, ok := e.Mode().(EditMode); !ok {
		t.Fatalf("empty commit did not return to edit mode")
	}
	if len(sink.files) != 0 {
		t.Fatalf("empty filename wrote %v", sink.files)
	}
}

func TestSaveFailureIsReturned(t *testing.T) {
	e := newTestEditor("x")
	e.SetSink(&memSink{err: errors.New("disk full")})
	apply(t, e, act(keymap.Save), keymap.InsertChar('f'))
	if _, err := e.Apply(keymap.InsertChar('\n')); err == nil {
		t.Fatalf("commit error = nil, want failure")
	}
}

func TestQuitInEditMode(t *testing.T) {
	e := newTestEditor("")
	quit, err := e.Apply(act(keymap.Quit))
	if !quit || err != nil {
		t.Fatalf("Apply(quit) = %v, %v", quit, err)
	}
}

func TestFileSinkRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(src, []byte("a,b\nc"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	e := New(config.Default())
	if err := e.OpenFile(src); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if e.TotalLines() != 2 {
		t.Fatalf("TotalLines = %d, want 2", e.TotalLines())
	}
	dst := filepath.Join(dir, "out.txt")
	apply(t, e, act(keymap.Save))
	for _, r := range dst {
		apply(t, e, keymap.InsertChar(r))
	}
	apply(t, e, keymap.InsertChar('\n'))
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "a,b\nc" {
		t.Fatalf("saved %q, want %q", data, "a,b\nc")
	}
}

func TestOpenFileMissing(t *testing.T) {
	e := New(config.Default())
	if err := e.OpenFile(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("OpenFile of missing file returned nil")
	}
}
