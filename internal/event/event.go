// Package event defines the window events a session reacts to.
//
// Event is a closed set: only the types declared here satisfy it, so a type
// switch over Event covers every kind the event source can produce.
package event

// Event is one record read from the display connection.
type Event interface {
	// Kind names the event for logging.
	Kind() string
	isEvent()
}

// Expose asks the client to redraw part of the window. Count is the number of
// Expose events that follow for the same window.
type Expose struct {
	Window uint32
	Count  int
}

// ButtonPress reports a pointer button going down inside the window.
type ButtonPress struct {
	Button uint8
	X, Y   int
}

// ButtonRelease reports a pointer button going up inside the window.
type ButtonRelease struct {
	Button uint8
	X, Y   int
}

// Motion reports pointer movement while a button is held.
type Motion struct {
	X, Y  int
	State uint16
}

// KeyPress carries the keycode and its unshifted keysym.
type KeyPress struct {
	Keycode uint8
	Keysym  uint32
}

// KeyRelease mirrors KeyPress.
type KeyRelease struct {
	Keycode uint8
	Keysym  uint32
}

// MappingChanged tells the client its cached keyboard or pointer mapping is
// stale.
type MappingChanged struct {
	Request      uint8
	FirstKeycode uint8
	Count        uint8
}

// ClientMessage is a message sent by another client, usually the window
// manager. Data holds the 32-bit payload words when Format is 32.
type ClientMessage struct {
	Window uint32
	Format uint8
	Type   uint32
	Data   [5]uint32
}

// Destroyed reports that a window selected for structure notifications no
// longer exists.
type Destroyed struct {
	Window uint32
}

// Other is any event the session selects but does not handle, such as
// MapNotify or ConfigureNotify.
type Other struct {
	Name string
}

func (Expose) Kind() string         { return "Expose" }
func (ButtonPress) Kind() string    { return "ButtonPress" }
func (ButtonRelease) Kind() string  { return "ButtonRelease" }
func (Motion) Kind() string         { return "MotionNotify" }
func (KeyPress) Kind() string       { return "KeyPress" }
func (KeyRelease) Kind() string     { return "KeyRelease" }
func (MappingChanged) Kind() string { return "MappingNotify" }
func (ClientMessage) Kind() string  { return "ClientMessage" }
func (Destroyed) Kind() string      { return "DestroyNotify" }
func (o Other) Kind() string        { return o.Name }

func (Expose) isEvent()         {}
func (ButtonPress) isEvent()    {}
func (ButtonRelease) isEvent()  {}
func (Motion) isEvent()         {}
func (KeyPress) isEvent()       {}
func (KeyRelease) isEvent()     {}
func (MappingChanged) isEvent() {}
func (ClientMessage) isEvent()  {}
func (Destroyed) isEvent()      {}
func (Other) isEvent()          {}
