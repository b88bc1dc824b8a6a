// Package session runs the application's single window: it acquires the
// window and its resources, dispatches events until the window is destroyed,
// and releases everything it acquired.
package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/1broseidon/typicalx11app/internal/config"
)

// State is the session lifecycle stage.
type State int

const (
	StateCreated State = iota
	StateRunning
	StateClosing
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateClosing:
		return "closing"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options are the optional collaborators of a Session.
type Options struct {
	// Out receives the button and modifier key messages. Defaults to stdout.
	Out io.Writer
	// Logger receives diagnostics. Defaults to a discarding logger.
	Logger *slog.Logger
	// Idle runs whenever no event is pending. It returns true if it did
	// work; when it returns false the loop blocks until the next event.
	Idle func() bool
	// Command is recorded in WM_COMMAND so session managers can restart
	// the program. Usually os.Args.
	Command []string
}

// Session owns one display connection and one window.
type Session struct {
	cfg       *config.Config
	connector Connector
	out       io.Writer
	logger    *slog.Logger
	idle      func() bool
	command   []string

	conn       Conn
	window     Window
	events     EventSource
	closeToken Token
	owned      []Resource

	state            State
	quit             bool
	shiftPressed     bool
	ctrlPressed      bool
	destroyRequested atomic.Bool
}

// New creates a session in StateCreated. Nothing is acquired until Startup.
func New(cfg *config.Config, connector Connector, opts Options) *Session {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Idle == nil {
		opts.Idle = func() bool { return false }
	}
	return &Session{
		cfg:       cfg,
		connector: connector,
		out:       opts.Out,
		logger:    opts.Logger,
		idle:      opts.Idle,
		command:   opts.Command,
		state:     StateCreated,
	}
}

// Startup connects, creates and maps the window. On error everything acquired
// so far has already been released and Run must not be called.
func (s *Session) Startup() error {
	if s.state != StateCreated {
		return fmt.Errorf("startup called in state %s", s.state)
	}

	conn, err := s.connector.Connect(s.cfg.Display)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	s.conn = conn
	s.own(releaseFunc(conn.Close))

	if err := s.createWindow(); err != nil {
		s.Close()
		return fmt.Errorf("%w: %w", ErrWindowCreation, err)
	}

	if s.cfg.Icon {
		s.loadIcon()
	}

	if err := s.window.SetHints(s.hints()); err != nil {
		s.logger.Warn("failed to set window manager hints", "error", err)
	}

	if err := s.window.Map(); err != nil {
		s.Close()
		return fmt.Errorf("%w: map window: %w", ErrWindowCreation, err)
	}

	s.events = conn.Events()
	s.state = StateRunning
	s.logger.Info("window mapped",
		"window", s.window.ID(),
		"width", s.cfg.Width,
		"height", s.cfg.Height)
	return nil
}

func (s *Session) createWindow() error {
	win, err := s.conn.CreateWindow(WindowSpec{
		Width:       s.cfg.Width,
		Height:      s.cfg.Height,
		BorderWidth: s.cfg.BorderWidth,
		Centered:    s.cfg.Placement == config.PlacementCenter,
	})
	if err != nil {
		return err
	}
	s.window = win

	contexts, err := win.CreateContexts(s.cfg.GraphicsContexts)
	if err != nil {
		return fmt.Errorf("create graphics contexts: %w", err)
	}
	s.own(contexts)

	token, err := win.AdvertiseClose()
	if err != nil {
		return fmt.Errorf("set WM_PROTOCOLS: %w", err)
	}
	s.closeToken = token
	return nil
}

// loadIcon acquires the icon image and mask independently; either may be
// missing afterwards.
func (s *Session) loadIcon() {
	if image, err := s.window.LoadIconImage(); err != nil {
		s.logger.Warn("icon image unavailable", "error", errors.Join(ErrIconLoad, err))
	} else {
		s.own(image)
	}
	if mask, err := s.window.LoadIconMask(); err != nil {
		s.logger.Warn("icon mask unavailable", "error", errors.Join(ErrIconLoad, err))
	} else {
		s.own(mask)
	}
}

func (s *Session) hints() Hints {
	return Hints{
		Title:     s.cfg.Title,
		IconName:  s.cfg.Title,
		Instance:  config.ProgramName,
		Class:     s.cfg.Title,
		MinWidth:  s.cfg.Width,
		MinHeight: s.cfg.Height,
		MaxWidth:  s.cfg.Width,
		MaxHeight: s.cfg.Height,
		Pid:       os.Getpid(),
		Command:   s.command,
	}
}

// Close releases every acquired resource in reverse acquisition order. It is
// safe to call at any point, including after a failed Startup, and more than
// once.
func (s *Session) Close() {
	for i := len(s.owned) - 1; i >= 0; i-- {
		s.owned[i].Release()
	}
	s.owned = nil
	s.conn = nil
	s.window = nil
	s.events = nil
}

func (s *Session) own(r Resource) {
	s.owned = append(s.owned, r)
}

type releaseFunc func()

func (f releaseFunc) Release() { f() }

// State returns the current lifecycle stage.
func (s *Session) State() State { return s.state }

// ShiftPressed reports whether a Shift key is held.
func (s *Session) ShiftPressed() bool { return s.shiftPressed }

// CtrlPressed reports whether a Control key is held.
func (s *Session) CtrlPressed() bool { return s.ctrlPressed }

// Quit reports whether the event loop has been told to stop.
func (s *Session) Quit() bool { return s.quit }

// CloseToken returns the WM_DELETE_WINDOW token negotiated at startup.
func (s *Session) CloseToken() Token { return s.closeToken }
