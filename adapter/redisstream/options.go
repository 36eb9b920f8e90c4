package redisstream

import (
	"github.com/trickstertwo/xclock"
	"github.com/trickstertwo/xlog"
)

// Option configures the sink construction.
type Option func(*sink)

// WithLogger injects a custom xlog logger.
func WithLogger(l *xlog.Logger) Option {
	return func(s *sink) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock injects a custom xclock clock for appendedAt stamps.
func WithClock(c xclock.Clock) Option {
	return func(s *sink) {
		if c != nil {
			s.clock = c
		}
	}
}
