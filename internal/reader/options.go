package reader

import (
	"log/slog"
	"time"

	"github.com/kahaaniverse/kahaani/internal/domain"
)

// Option configures a Session
type Option func(*Session)

// WithClock sets the time source used for transitions and timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTransitionWindow sets the navigation lock duration
func WithTransitionWindow(d time.Duration) Option {
	return func(s *Session) {
		if d >= 0 {
			s.window = d
		}
	}
}

// WithObserver registers the receiver of session events
func WithObserver(o domain.Observer) Option {
	return func(s *Session) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithLogger sets the session logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
