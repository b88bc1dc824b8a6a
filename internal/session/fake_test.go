package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/1broseidon/typicalx11app/internal/event"
)

// recorder collects the calls made against the fakes, in order.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) count(call string) int {
	n := 0
	for _, c := range r.list() {
		if c == call {
			n++
		}
	}
	return n
}

type fakeResource struct {
	rec  *recorder
	name string
}

func (f fakeResource) Release() { f.rec.add("release %s", f.name) }

type fakeFont struct {
	fakeResource
	ascent int
}

func (f fakeFont) Ascent(text string) (int, error) {
	f.rec.add("measure %q", text)
	return f.ascent, nil
}

type fakeConnector struct {
	rec  *recorder
	err  error
	conn *fakeConn
}

func (c *fakeConnector) Connect(display string) (Conn, error) {
	c.rec.add("connect %q", display)
	if c.err != nil {
		return nil, c.err
	}
	return c.conn, nil
}

type fakeConn struct {
	rec       *recorder
	window    *fakeWindow
	source    *fakeSource
	createErr error
}

func (c *fakeConn) CreateWindow(spec WindowSpec) (Window, error) {
	c.rec.add("create window %dx%d border %d centered %v", spec.Width, spec.Height, spec.BorderWidth, spec.Centered)
	if c.createErr != nil {
		return nil, c.createErr
	}
	return c.window, nil
}

func (c *fakeConn) Events() EventSource { return c.source }

func (c *fakeConn) SetCloseDownDestroyAll() error {
	c.rec.add("close-down destroy-all")
	return nil
}

func (c *fakeConn) RefreshKeyboardMapping(ev event.MappingChanged) error {
	c.rec.add("refresh keyboard mapping")
	return nil
}

func (c *fakeConn) Close() { c.rec.add("release connection") }

type fakeWindow struct {
	rec    *recorder
	source *fakeSource
	token  Token

	width, height int
	ascent        int
	hints         Hints

	contextsErr  error
	iconImageErr error
	iconMaskErr  error
	mapErr       error
	fontErr      error

	segments []Segment
	strings  []string
}

func (w *fakeWindow) ID() uint32 { return 0x400001 }

func (w *fakeWindow) CreateContexts(n int) (Resource, error) {
	w.rec.add("create %d contexts", n)
	if w.contextsErr != nil {
		return nil, w.contextsErr
	}
	return fakeResource{w.rec, "contexts"}, nil
}

func (w *fakeWindow) AdvertiseClose() (Token, error) {
	w.rec.add("advertise close")
	return w.token, nil
}

func (w *fakeWindow) LoadIconImage() (Resource, error) {
	if w.iconImageErr != nil {
		return nil, w.iconImageErr
	}
	return fakeResource{w.rec, "icon image"}, nil
}

func (w *fakeWindow) LoadIconMask() (Resource, error) {
	if w.iconMaskErr != nil {
		return nil, w.iconMaskErr
	}
	return fakeResource{w.rec, "icon mask"}, nil
}

func (w *fakeWindow) SetHints(h Hints) error {
	w.hints = h
	w.rec.add("set hints")
	return nil
}

func (w *fakeWindow) Map() error {
	w.rec.add("map")
	return w.mapErr
}

func (w *fakeWindow) Geometry() (int, int, error) { return w.width, w.height, nil }

func (w *fakeWindow) Clear() error {
	w.rec.add("clear")
	return nil
}

func (w *fakeWindow) DrawSegments(context int, segs []Segment) error {
	w.rec.add("draw segments on context %d", context)
	w.segments = append(w.segments, segs...)
	return nil
}

func (w *fakeWindow) OpenFont(names []string) (Font, error) {
	if w.fontErr != nil {
		return nil, w.fontErr
	}
	w.rec.add("open font %s", names[0])
	return fakeFont{fakeResource{w.rec, "font"}, w.ascent}, nil
}

func (w *fakeWindow) DrawString(context int, font Font, x, y int, text string) error {
	w.rec.add("draw string %q at %d,%d", text, x, y)
	w.strings = append(w.strings, text)
	return nil
}

// Destroy behaves like the server: the window disappears and a DestroyNotify
// is queued.
func (w *fakeWindow) Destroy() error {
	w.rec.add("destroy window")
	w.source.push(event.Destroyed{Window: w.ID()})
	return nil
}

// fakeSource hands out queued events; once closed and drained, Next reports
// ErrSourceClosed.
type fakeSource struct {
	ch chan event.Event
	// onNext, when set, sees every event before it is returned.
	onNext func(event.Event)
}

func newFakeSource(events ...event.Event) *fakeSource {
	s := &fakeSource{ch: make(chan event.Event, 64)}
	for _, ev := range events {
		s.ch <- ev
	}
	return s
}

func (s *fakeSource) push(ev event.Event) { s.ch <- ev }

func (s *fakeSource) close() { close(s.ch) }

func (s *fakeSource) Pending() bool { return len(s.ch) > 0 }

func (s *fakeSource) Next() (event.Event, error) {
	ev, ok := <-s.ch
	if !ok {
		return nil, ErrSourceClosed
	}
	if errEv, isErr := ev.(errorEvent); isErr {
		return nil, errEv.err
	}
	if s.onNext != nil {
		s.onNext(ev)
	}
	return ev, nil
}

// errorEvent makes the fake source return an error instead of an event.
type errorEvent struct {
	event.Other
	err error
}

var errBadWindow = errors.New("BadWindow")

type fixture struct {
	rec       *recorder
	connector *fakeConnector
	conn      *fakeConn
	window    *fakeWindow
	source    *fakeSource
}

func newFixture(events ...event.Event) *fixture {
	rec := &recorder{}
	source := newFakeSource(events...)
	window := &fakeWindow{
		rec:    rec,
		source: source,
		token:  Token(301),
		width:  640,
		height: 400,
		ascent: 11,
	}
	conn := &fakeConn{rec: rec, window: window, source: source}
	return &fixture{
		rec:       rec,
		connector: &fakeConnector{rec: rec, conn: conn},
		conn:      conn,
		window:    window,
		source:    source,
	}
}
