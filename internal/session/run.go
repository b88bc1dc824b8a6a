package session

import (
	"context"
	"errors"

	"github.com/1broseidon/typicalx11app/internal/event"
)

// Run dispatches events until the window is destroyed and returns the
// process exit code. Cancelling ctx asks the server to destroy the window, so
// the loop still ends through the normal DestroyNotify path.
func (s *Session) Run(ctx context.Context) int {
	if s.state != StateRunning {
		s.logger.Error("run called before a successful startup", "state", s.state)
		return 1
	}

	// The watcher must be gone before Run returns: Close clears s.window.
	stop := make(chan struct{})
	done := make(chan struct{})
	defer func() {
		close(stop)
		<-done
	}()
	go func() {
		defer close(done)
		select {
		case <-ctx.Done():
			s.logger.Info("shutdown requested", "reason", context.Cause(ctx))
			s.requestDestroy()
		case <-stop:
		}
	}()

	for !s.quit {
		if !s.events.Pending() && s.idle() {
			continue
		}

		ev, err := s.events.Next()
		if err != nil {
			if errors.Is(err, ErrSourceClosed) {
				s.logger.Error("display connection lost", "error", err)
				s.quit = true
				s.state = StateTerminated
				return 1
			}
			s.logger.Warn("x11 error", "error", err)
			continue
		}
		s.dispatch(ev)
	}
	return 0
}

func (s *Session) dispatch(ev event.Event) {
	s.logger.Debug("event", "kind", ev.Kind())

	switch ev := ev.(type) {
	case event.Expose:
		s.onExpose(ev)
	case event.ButtonPress:
		s.onButtonPress(ev)
	case event.ButtonRelease:
		s.onButtonRelease(ev)
	case event.Motion:
		s.onMotion(ev)
	case event.KeyPress:
		s.onKeyPress(ev)
	case event.KeyRelease:
		s.onKeyRelease(ev)
	case event.MappingChanged:
		s.onMappingChanged(ev)
	case event.ClientMessage:
		s.onClientMessage(ev)
	case event.Destroyed:
		s.onDestroyed(ev)
	}
}

// requestDestroy sends at most one DestroyWindow request per session.
func (s *Session) requestDestroy() {
	if !s.destroyRequested.CompareAndSwap(false, true) {
		return
	}
	if err := s.window.Destroy(); err != nil {
		s.logger.Warn("failed to destroy window", "error", err)
	}
}
