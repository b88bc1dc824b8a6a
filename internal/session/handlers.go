package session

import (
	"fmt"
	"unicode/utf8"

	"github.com/1broseidon/typicalx11app/internal/event"
)

// Keysyms from X11/keysymdef.h.
const (
	keysymShiftL   = 0xffe1
	keysymShiftR   = 0xffe2
	keysymControlL = 0xffe3
	keysymControlR = 0xffe4
)

// maxTextBytes is the longest string one ImageText8 request carries.
const maxTextBytes = 255

// clipText shortens s to at most n bytes without splitting a UTF-8 sequence.
func clipText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// Diagonals returns the two corner-to-corner lines of a w x h window.
func Diagonals(w, h int) []Segment {
	return []Segment{
		{X1: 0, Y1: 0, X2: w, Y2: h},
		{X1: w, Y1: 0, X2: 0, Y2: h},
	}
}

func (s *Session) onExpose(event.Expose) {
	w, h, err := s.window.Geometry()
	if err != nil {
		s.logger.Warn("failed to query window geometry", "error", err)
		return
	}

	if err := s.window.Clear(); err != nil {
		s.logger.Warn("failed to clear window", "error", err)
	}
	if err := s.window.DrawSegments(0, Diagonals(w, h)); err != nil {
		s.logger.Warn("failed to draw lines", "error", err)
	}

	font, err := s.window.OpenFont(s.cfg.Fonts)
	if err != nil {
		s.logger.Warn("no usable font", "fonts", s.cfg.Fonts, "error", err)
		return
	}
	defer font.Release()

	text := clipText(s.cfg.Title, maxTextBytes)
	ascent, err := font.Ascent(text)
	if err != nil {
		s.logger.Warn("failed to measure text", "error", err)
		return
	}
	if err := s.window.DrawString(0, font, 0, ascent, text); err != nil {
		s.logger.Warn("failed to draw text", "error", err)
	}
}

func (s *Session) onButtonPress(ev event.ButtonPress) {
	fmt.Fprintf(s.out, "pressed button: %d, x: %d, y: %d\n", ev.Button, ev.X, ev.Y)
}

func (s *Session) onButtonRelease(ev event.ButtonRelease) {
	fmt.Fprintf(s.out, "released button: %d, x: %d, y: %d\n", ev.Button, ev.X, ev.Y)
}

func (s *Session) onMotion(event.Motion) {}

func (s *Session) onKeyPress(ev event.KeyPress) {
	switch ev.Keysym {
	case keysymShiftL, keysymShiftR:
		s.shiftPressed = true
		fmt.Fprintln(s.out, "Shift key pressed")
	case keysymControlL, keysymControlR:
		s.ctrlPressed = true
		fmt.Fprintln(s.out, "Ctrl key pressed")
	}
}

func (s *Session) onKeyRelease(ev event.KeyRelease) {
	switch ev.Keysym {
	case keysymShiftL, keysymShiftR:
		s.shiftPressed = false
		fmt.Fprintln(s.out, "Shift key released")
	case keysymControlL, keysymControlR:
		s.ctrlPressed = false
		fmt.Fprintln(s.out, "Ctrl key released")
	}
}

func (s *Session) onMappingChanged(ev event.MappingChanged) {
	if err := s.conn.RefreshKeyboardMapping(ev); err != nil {
		s.logger.Warn("failed to refresh keyboard mapping", "error", err)
	}
}

// onClientMessage accepts WM_DELETE_WINDOW from the window manager. There is
// no confirmation step: the window is destroyed immediately.
func (s *Session) onClientMessage(ev event.ClientMessage) {
	if Token(ev.Data[0]) != s.closeToken {
		return
	}
	if s.state == StateRunning {
		s.state = StateClosing
	}
	s.requestDestroy()
}

func (s *Session) onDestroyed(ev event.Destroyed) {
	if err := s.conn.SetCloseDownDestroyAll(); err != nil {
		s.logger.Warn("failed to set close-down mode", "error", err)
	}
	s.logger.Info("window destroyed", "window", ev.Window)
	s.quit = true
	s.state = StateTerminated
}
