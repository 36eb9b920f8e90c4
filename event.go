package xcmd

import (
	"time"

	"github.com/trickstertwo/xclock"
)

// Executed is the completion record produced after acting on a drained
// envelope.
//
// The core defines only the shape: an executor drains the bus, runs domain
// logic per envelope, constructs the matching event and publishes it to
// interested listeners. How listeners are notified is the collaborator's
// choice; Observer is one option.
type Executed[C Command, O any] struct {
	// Command is the command that was executed.
	Command C
	// Result is the outcome of execution.
	Result Result[O]
	// Meta is the metadata from when the command was sent.
	Meta Meta
	// ExecutionTime is how long execution took.
	ExecutionTime time.Duration
}

// NewSuccess creates a completion event for a successful execution.
func NewSuccess[C Command, O any](command C, output O, meta Meta) Executed[C, O] {
	return Executed[C, O]{Command: command, Result: Success(output), Meta: meta}
}

// NewFailed creates a completion event for a failed execution.
func NewFailed[C Command, O any](command C, err error, meta Meta) Executed[C, O] {
	return Executed[C, O]{Command: command, Result: Failed[O](err), Meta: meta}
}

// NewRejected creates a completion event for a command refused by
// validation before it reached the handler.
func NewRejected[C Command, O any](command C, verr *ValidationError, meta Meta) Executed[C, O] {
	return Executed[C, O]{Command: command, Result: Rejected[O](verr), Meta: meta}
}

// WithExecutionTime returns a copy of the event with the elapsed time set.
func (e Executed[C, O]) WithExecutionTime(d time.Duration) Executed[C, O] {
	e.ExecutionTime = d
	return e
}

// IsSuccess reports whether the command succeeded.
func (e Executed[C, O]) IsSuccess() bool { return e.Result.IsSuccess() }

// IsFailed reports whether execution failed.
func (e Executed[C, O]) IsFailed() bool { return e.Result.IsFailed() }

// ID returns the command identity.
func (e Executed[C, O]) ID() ID { return e.Meta.ID }

// Timer measures elapsed wall time for command execution.
//
// Use it in processor loops around each handler call:
//
//	timer := StartTimer(clock)
//	out, err := handle(env)
//	event = event.WithExecutionTime(timer.Elapsed())
type Timer struct {
	clock xclock.Clock
	start time.Time
}

// StartTimer starts timing against the given clock. A nil clock falls
// back to the default wall clock.
func StartTimer(clock xclock.Clock) Timer {
	if clock == nil {
		clock = xclock.Default()
	}
	return Timer{clock: clock, start: clock.Now()}
}

// Elapsed returns the wall time since the timer started.
func (t Timer) Elapsed() time.Duration {
	return t.clock.Since(t.start)
}
