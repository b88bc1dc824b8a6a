package session

import (
	"errors"

	"github.com/1broseidon/typicalx11app/internal/event"
)

var (
	// ErrConnection means no display server could be reached.
	ErrConnection = errors.New("cannot open display")
	// ErrWindowCreation means the window or one of its required resources
	// could not be created.
	ErrWindowCreation = errors.New("cannot create window")
	// ErrIconLoad means the bundled icon could not be turned into a pixmap.
	// It is never fatal.
	ErrIconLoad = errors.New("cannot load icon")
	// ErrSourceClosed is returned by EventSource.Next once the connection is
	// gone and no further events will arrive.
	ErrSourceClosed = errors.New("event source closed")
)

// Token is a connection-scoped atom. Tokens are compared by identity only.
type Token uint32

// Segment is a line from (X1,Y1) to (X2,Y2) in window coordinates.
type Segment struct {
	X1, Y1, X2, Y2 int
}

// WindowSpec describes the top-level window to create.
type WindowSpec struct {
	Width, Height int
	BorderWidth   int
	Centered      bool
}

// Hints are the window manager properties set once at startup.
type Hints struct {
	Title    string
	IconName string
	Instance string
	Class    string

	MinWidth, MinHeight int
	MaxWidth, MaxHeight int

	Pid int
	// Command is the argv that started the program, for WM_COMMAND.
	Command []string
}

// Resource is a server-side handle owned by the session.
type Resource interface {
	Release()
}

// Font is an opened server font.
type Font interface {
	Resource
	// Ascent returns the overall ascent of text drawn in this font.
	Ascent(text string) (int, error)
}

// Connector opens display connections.
type Connector interface {
	Connect(display string) (Conn, error)
}

// Conn is an open display connection. Close releases every server resource
// created through it.
//
// Requests may be issued from any goroutine; events are read only by the
// goroutine running Session.Run.
type Conn interface {
	CreateWindow(spec WindowSpec) (Window, error)
	Events() EventSource
	SetCloseDownDestroyAll() error
	RefreshKeyboardMapping(ev event.MappingChanged) error
	Close()
}

// Window is the application's top-level window.
type Window interface {
	ID() uint32

	// CreateContexts allocates n drawing contexts, addressed as 0..n-1.
	CreateContexts(n int) (Resource, error)
	// AdvertiseClose registers WM_DELETE_WINDOW as the window's only
	// protocol and returns its token.
	AdvertiseClose() (Token, error)
	LoadIconImage() (Resource, error)
	LoadIconMask() (Resource, error)
	SetHints(h Hints) error
	Map() error

	Geometry() (width, height int, err error)
	Clear() error
	DrawSegments(context int, segs []Segment) error
	OpenFont(names []string) (Font, error)
	DrawString(context int, font Font, x, y int, text string) error

	// Destroy asks the server to destroy the window. Safe to call from any
	// goroutine.
	Destroy() error
}

// EventSource yields the connection's events in arrival order.
type EventSource interface {
	// Pending reports whether an event can be returned by Next without
	// blocking.
	Pending() bool
	// Next returns the next event, waiting for one if none is pending.
	Next() (event.Event, error)
}
