package xcmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/trickstertwo/xlog"
)

// Handler executes the domain logic for a single drained envelope. It
// returns the kind-specific output on success or an error when execution
// fails. Handlers run synchronously on the calling tick.
type Handler[C Command, O any] func(ctx context.Context, env Envelope[C]) (O, error)

// Middleware composes processing concerns around a Handler.
type Middleware[C Command, O any] func(next Handler[C, O]) Handler[C, O]

// Chain composes middlewares around a handler in order.
func Chain[C Command, O any](h Handler[C, O], mws ...Middleware[C, O]) Handler[C, O] {
	if len(mws) == 0 {
		return h
	}
	wrapped := h
	// Apply in reverse so that first middleware wraps last.
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		wrapped = mws[i](wrapped)
	}
	return wrapped
}

// RecoveryMiddleware prevents handler panics from crashing the tick loop
// and converts them into execution errors.
func RecoveryMiddleware[C Command, O any]() Middleware[C, O] {
	return func(next Handler[C, O]) Handler[C, O] {
		return func(ctx context.Context, env Envelope[C]) (out O, err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("panic recovered: %v", r)
				}
			}()
			return next(ctx, env)
		}
	}
}

// LoggingMiddleware emits a debug line around each handler invocation.
func LoggingMiddleware[C Command, O any](l *xlog.Logger) Middleware[C, O] {
	return func(next Handler[C, O]) Handler[C, O] {
		return func(ctx context.Context, env Envelope[C]) (O, error) {
			out, err := next(ctx, env)
			ev := l.Debug().
				Str("kind", env.Command.Kind()).
				Str("id", strconv.FormatUint(uint64(env.Meta.ID), 10))
			if err != nil {
				ev = ev.Err(err)
			}
			ev.Msg("xcmd: handler done")
			return out, err
		}
	}
}
