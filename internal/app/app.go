package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"golang.org/x/term"

	"github.com/cwbriones/editor/internal/config"
	"github.com/cwbriones/editor/internal/editor"
	"github.com/cwbriones/editor/internal/keymap"
	"github.com/cwbriones/editor/internal/logger"
	"github.com/cwbriones/editor/internal/mirror"
	"github.com/cwbriones/editor/internal/protocol"
	"github.com/cwbriones/editor/internal/session"
)

var (
	errUsage        = errors.New("usage: editor [file]")
	errDisconnected = errors.New("display server closed the connection")
)

// App is the top-level runtime for the editor.
type App struct {
	args []string
}

func New(args []string) *App {
	return &App{args: args}
}

// Run connects to the display server and processes events until the
// connection ends, a quit is requested, or ctx is cancelled.
func (a *App) Run(ctx context.Context) (err error) {
	if len(a.args) > 1 {
		return errUsage
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logPath, err := cfg.LogPath()
	if err != nil {
		return err
	}
	if err := logger.Init(logPath, cfg.Log.Debug); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Close() }()

	ed := editor.New(cfg)
	if len(a.args) == 1 {
		if err := ed.OpenFile(a.args[0]); err != nil {
			return err
		}
	}

	client, err := protocol.Dial(cfg.Server.Address)
	if err != nil {
		return err
	}
	// Closing the connection unblocks the pending read.
	stop := context.AfterFunc(ctx, func() {
		logger.Info("shutting down")
		_ = client.Close()
	})
	defer func() {
		if stop() {
			err = multierr.Append(err, client.Close())
		}
	}()

	displays := multiDisplay{client}
	var screen *mirror.Screen
	if cfg.Display.Mirror {
		screen, err = openMirror(cfg)
		if err != nil {
			return err
		}
		if screen != nil {
			defer func() { err = multierr.Append(err, screen.Close()) }()
			displays = append(displays, screen)
		}
	}

	sessions := restoreSession(ed)
	defer saveSession(sessions, ed)

	l := &loop{ed: ed, keys: keymap.NewMapper(), display: displays}
	if screen != nil {
		l.present = screen.Show
	}
	err = l.run(client.Events())
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func openMirror(cfg config.Config) (*mirror.Screen, error) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		logger.Warn("mirror disabled: stdout is not a terminal")
		return nil, nil
	}
	screen, err := mirror.Open(cfg.Editor.CharWidth, cfg.Editor.LineHeight)
	if err != nil {
		return nil, fmt.Errorf("open mirror: %w", err)
	}
	return screen, nil
}

func restoreSession(ed *editor.Editor) *session.Manager {
	sm, err := session.NewManager()
	if err != nil {
		logger.Warn("session unavailable", "error", err)
		return nil
	}
	path := absPath(ed.Filename())
	if path == "" {
		return sm
	}
	if state, ok := sm.FileState(path); ok {
		ed.Seek(state.Offset)
		logger.Debug("restored cursor", "path", path, "offset", state.Offset)
	}
	return sm
}

func saveSession(sm *session.Manager, ed *editor.Editor) {
	if sm == nil {
		return
	}
	path := absPath(ed.Filename())
	if path == "" {
		return
	}
	sm.SetFileState(path, session.FileState{Offset: ed.Cursor().Ins})
	if err := sm.Save(); err != nil {
		logger.Warn("save session", "error", err)
	}
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// loop feeds events to the editor one at a time, redrawing after each.
type loop struct {
	ed      *editor.Editor
	keys    *keymap.Mapper
	display editor.Display
	present func()
}

func (l *loop) run(events *protocol.Events) error {
	if err := l.render(); err != nil {
		return err
	}
	for events.Next() {
		quit, err := l.dispatch(events.Event())
		if err != nil {
			return err
		}
		if quit {
			logger.Info("quit requested")
			return nil
		}
		if err := l.render(); err != nil {
			return err
		}
	}
	if err := events.Err(); err != nil {
		return fmt.Errorf("read events: %w", err)
	}
	return errDisconnected
}

func (l *loop) dispatch(ev protocol.Event) (bool, error) {
	switch ev := ev.(type) {
	case protocol.Resize:
		l.ed.Resize(ev.Width, ev.Height)
	case protocol.Mouse:
		if ev.Kind == protocol.MouseDown {
			l.ed.Click(ev.X, ev.Y)
		}
	case protocol.KeyEvent:
		return l.ed.Apply(l.keys.Action(ev))
	}
	return false, nil
}

func (l *loop) render() error {
	if err := l.ed.Render(l.display); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if l.present != nil {
		l.present()
	}
	return nil
}

// multiDisplay sends every primitive to each display in turn.
type multiDisplay []editor.Display

func (m multiDisplay) Clear() error {
	var err error
	for _, d := range m {
		err = multierr.Append(err, d.Clear())
	}
	return err
}

func (m multiDisplay) Text(x, y int, color protocol.Color, s string) error {
	var err error
	for _, d := range m {
		err = multierr.Append(err, d.Text(x, y, color, s))
	}
	return err
}

func (m multiDisplay) Rect(x, y, width, height int, color protocol.Color) error {
	var err error
	for _, d := range m {
		err = multierr.Append(err, d.Rect(x, y, width, height, color))
	}
	return err
}
