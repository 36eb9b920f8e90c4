package xcmd

import (
	"strconv"

	"github.com/trickstertwo/xlog"
)

// Observer receives completion events for one command kind.
//
// Observers are notified synchronously, in tick order, after the matching
// log entry has been written. Implementations should be non-blocking;
// slow observers stall the calling tick.
type Observer[C Command, O any] interface {
	OnExecuted(e Executed[C, O])
}

// ObserverFunc is an Adapter that lets a plain function satisfy Observer.
type ObserverFunc[C Command, O any] func(e Executed[C, O])

func (f ObserverFunc[C, O]) OnExecuted(e Executed[C, O]) { f(e) }

// LoggingObserver is an Adapter that emits completion events via xlog.
type LoggingObserver[C Command, O any] struct {
	Logger *xlog.Logger
}

func (o LoggingObserver[C, O]) OnExecuted(e Executed[C, O]) {
	if o.Logger == nil {
		return
	}
	ev := o.Logger.With(
		xlog.Str("kind", e.Command.Kind()),
		xlog.Str("id", strconv.FormatUint(uint64(e.Meta.ID), 10)),
		xlog.Dur("execution_time", e.ExecutionTime),
	)
	switch {
	case e.Result.IsFailed():
		ev.Warn().Err(e.Result.Err()).Msg("xcmd: command failed")
	case e.Result.IsRejected():
		ev.Warn().Str("reason", e.Result.Rejection().Error()).Msg("xcmd: command rejected")
	default:
		ev.Debug().Msg("xcmd: command executed")
	}
}
