package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/typicalx11app/internal/event"
	"github.com/1broseidon/typicalx11app/internal/session"
)

// EventSource reads events through xgbutil's event queue. Only the goroutine
// running the session loop may call Pending and Next; requests such as
// destroying the window may be sent from any goroutine.
type EventSource struct {
	xu *xgbutil.XUtil
}

// Pending drains whatever the connection has buffered into the queue and
// reports whether an event is ready.
func (s *EventSource) Pending() bool {
	xevent.Read(s.xu, false)
	return !xevent.Empty(s.xu)
}

// Next blocks until an event or protocol error is available. A closed
// connection yields session.ErrSourceClosed.
func (s *EventSource) Next() (event.Event, error) {
	if xevent.Empty(s.xu) {
		ev, xerr := s.xu.Conn().WaitForEvent()
		if ev == nil && xerr == nil {
			return nil, session.ErrSourceClosed
		}
		xevent.Enqueue(s.xu, ev, xerr)
	}

	ev, xerr := xevent.Dequeue(s.xu)
	if xerr != nil {
		return nil, fmt.Errorf("x11 error: %w", xerr)
	}
	return translate(ev, s.keysym), nil
}

func (s *EventSource) keysym(kc xproto.Keycode) xproto.Keysym {
	return keybind.KeysymGet(s.xu, kc, 0)
}

// translate maps a core protocol event onto the application's event set.
// keysym resolves the unshifted keysym of a keycode.
func translate(ev xgb.Event, keysym func(xproto.Keycode) xproto.Keysym) event.Event {
	switch e := ev.(type) {
	case xproto.ExposeEvent:
		return event.Expose{Window: uint32(e.Window), Count: int(e.Count)}
	case xproto.ButtonPressEvent:
		return event.ButtonPress{Button: uint8(e.Detail), X: int(e.EventX), Y: int(e.EventY)}
	case xproto.ButtonReleaseEvent:
		return event.ButtonRelease{Button: uint8(e.Detail), X: int(e.EventX), Y: int(e.EventY)}
	case xproto.MotionNotifyEvent:
		return event.Motion{X: int(e.EventX), Y: int(e.EventY), State: e.State}
	case xproto.KeyPressEvent:
		return event.KeyPress{Keycode: uint8(e.Detail), Keysym: uint32(keysym(e.Detail))}
	case xproto.KeyReleaseEvent:
		return event.KeyRelease{Keycode: uint8(e.Detail), Keysym: uint32(keysym(e.Detail))}
	case xproto.MappingNotifyEvent:
		return event.MappingChanged{Request: e.Request, FirstKeycode: uint8(e.FirstKeycode), Count: e.Count}
	case xproto.ClientMessageEvent:
		msg := event.ClientMessage{Window: uint32(e.Window), Format: e.Format, Type: uint32(e.Type)}
		if e.Format == 32 {
			copy(msg.Data[:], e.Data.Data32)
		}
		return msg
	case xproto.DestroyNotifyEvent:
		return event.Destroyed{Window: uint32(e.Window)}
	}
	return event.Other{Name: eventName(ev)}
}

// eventName turns xproto.MapNotifyEvent into "MapNotify".
func eventName(ev xgb.Event) string {
	name := fmt.Sprintf("%T", ev)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "Event")
}
