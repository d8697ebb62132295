package app

import (
	"errors"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/vex/internal/config"
	"github.com/kobzarvs/vex/internal/editor"
	"github.com/kobzarvs/vex/internal/hexfile"
	"github.com/kobzarvs/vex/internal/logger"
	"github.com/kobzarvs/vex/internal/session"
)

// ErrUsage is returned when no file was named on the command line.
var ErrUsage = errors.New("missing file argument")

// App is the top-level runtime for vex.
type App struct {
	args      []string
	newScreen func() (tcell.Screen, error)
}

func New(args []string) *App {
	return &App{args: args, newScreen: tcell.NewScreen}
}

func (a *App) Run() error {
	if len(a.args) == 0 {
		return ErrUsage
	}
	path := a.args[0]

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// The editor runs without a log file rather than refusing to start.
	if err := logger.Init(cfg.Editor.DebugLog); err == nil {
		defer logger.Close()
	}

	f, err := hexfile.Open(path)
	if err != nil {
		logger.Error("open failed", "path", path, "err", err)
		return err
	}
	defer func() { _ = f.Close() }()

	s, err := a.newScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()
	if cfg.Editor.Mouse {
		s.EnableMouse()
	}

	ed := editor.New(cfg)
	ed.Resize(s.Size())
	ed.Load(path, f.Data(), f)
	ed.LoadCmdHistory()

	var sm *session.Manager
	key := path
	if cfg.Editor.RestorePosition {
		if abs, err := filepath.Abs(path); err == nil {
			key = abs
		}
		sm, err = session.NewManager()
		if err != nil {
			logger.Warn("session unavailable", "err", err)
			sm = nil
		} else if st, ok := sm.GetFileState(key); ok {
			if !ed.SetPosition(st.Page, st.Index) {
				logger.Debug("saved position dropped", "path", key, "page", st.Page, "index", st.Index)
			}
		}
	}

	loop(s, ed)

	if sm != nil {
		page, index := ed.Position()
		cur := ed.Cursor()
		sm.SetFileState(key, session.FileState{Page: page, Index: index, Row: cur.Row, Col: cur.Col})
		if err := sm.Save(); err != nil {
			logger.Warn("save session", "err", err)
		}
	}
	logger.Info("exit", "path", path)
	return nil
}

// loop renders and feeds events to the editor until it asks to quit.
func loop(s tcell.Screen, ed *editor.Editor) {
	ed.Render(s)
	for {
		ev := s.PollEvent()
		if ev == nil {
			return
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			s.Sync()
		}
		level, quit := ed.Step(ev)
		if quit {
			return
		}
		logger.Debug("event handled", "redraw", level.String(), "mode", ed.Mode().String())
		ed.Render(s)
	}
}
