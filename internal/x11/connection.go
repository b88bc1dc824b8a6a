package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/1broseidon/typicalx11app/internal/event"
	"github.com/1broseidon/typicalx11app/internal/session"
)

var (
	_ session.Connector   = Connector{}
	_ session.Conn        = (*Connection)(nil)
	_ session.Window      = (*Window)(nil)
	_ session.Font        = (*serverFont)(nil)
	_ session.EventSource = (*EventSource)(nil)
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection connects to display (empty means $DISPLAY) and loads the
// keyboard mapping.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}

	// Keysym lookups need the keyboard and modifier maps.
	keybind.Initialize(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// Connector opens X11 connections for a session.
type Connector struct{}

// Connect implements session.Connector.
func (Connector) Connect(display string) (session.Conn, error) {
	conn, err := NewConnection(display)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Events returns the connection's event source.
func (c *Connection) Events() session.EventSource {
	return &EventSource{xu: c.XUtil}
}

// SetCloseDownDestroyAll makes the server free every resource of this client
// when the connection closes.
func (c *Connection) SetCloseDownDestroyAll() error {
	return xproto.SetCloseDownModeChecked(c.XUtil.Conn(), xproto.CloseDownDestroyAll).Check()
}

// RefreshKeyboardMapping reloads the cached keyboard and modifier maps after
// a MappingNotify. Pointer mapping changes are ignored.
func (c *Connection) RefreshKeyboardMapping(ev event.MappingChanged) error {
	if ev.Request != xproto.MappingKeyboard && ev.Request != xproto.MappingModifier {
		return nil
	}
	keyMap, modMap := keybind.MapsGet(c.XUtil)
	keybind.KeyMapSet(c.XUtil, keyMap)
	keybind.ModMapSet(c.XUtil, modMap)
	return nil
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
