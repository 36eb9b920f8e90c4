package xcmd

import (
	"context"

	"github.com/trickstertwo/xclock"
	"github.com/trickstertwo/xlog"
)

// Processor is the per-tick executor harness for one command kind.
//
// Each Tick it drains the bus and, for every envelope in send order:
//  1. runs the validator pipeline if one is configured (fail-fast) and
//     rejects the command before it reaches the handler;
//  2. invokes the middleware-wrapped handler, timed against the clock;
//  3. constructs the matching Executed event;
//  4. writes a log entry if a log is configured;
//  5. notifies observers, synchronously, in registration order.
//
// The processor owns nothing the caller did not give it: bus, pipeline,
// log and observers stay independently usable. Validation remains opt-in;
// a processor built without a pipeline executes everything unchecked,
// exactly like a caller draining the bus by hand.
type Processor[C Command, O any] struct {
	bus       *Bus[C]
	pipeline  *Pipeline[C]
	log       *Log[C]
	handler   Handler[C, O]
	observers []Observer[C, O]

	clock  xclock.Clock
	logger *xlog.Logger
}

// ProcessorOption configures a Processor.
type ProcessorOption[C Command, O any] func(*Processor[C, O])

// WithPipeline attaches a validator pipeline. Commands failing validation
// are rejected before execution; rejections produce an event but no log
// entry.
func WithPipeline[C Command, O any](p *Pipeline[C]) ProcessorOption[C, O] {
	return func(pr *Processor[C, O]) { pr.pipeline = p }
}

// WithLog attaches an audit log; every executed command gets an entry.
func WithLog[C Command, O any](l *Log[C]) ProcessorOption[C, O] {
	return func(pr *Processor[C, O]) { pr.log = l }
}

// WithObserver registers completion-event observers.
func WithObserver[C Command, O any](obs ...Observer[C, O]) ProcessorOption[C, O] {
	return func(pr *Processor[C, O]) {
		for _, o := range obs {
			if o != nil {
				pr.observers = append(pr.observers, o)
			}
		}
	}
}

// WithMiddleware wraps the handler. Recovery is always applied innermost
// regardless of configured middlewares.
func WithMiddleware[C Command, O any](mws ...Middleware[C, O]) ProcessorOption[C, O] {
	return func(pr *Processor[C, O]) {
		pr.handler = Chain(pr.handler, mws...)
	}
}

// WithProcessorClock injects the clock used for execution timing.
func WithProcessorClock[C Command, O any](c xclock.Clock) ProcessorOption[C, O] {
	return func(pr *Processor[C, O]) {
		if c != nil {
			pr.clock = c
		}
	}
}

// WithProcessorLogger injects the structured logger.
func WithProcessorLogger[C Command, O any](l *xlog.Logger) ProcessorOption[C, O] {
	return func(pr *Processor[C, O]) {
		if l != nil {
			pr.logger = l
		}
	}
}

// NewProcessor creates a processor draining the given bus into the given
// handler.
func NewProcessor[C Command, O any](bus *Bus[C], handler Handler[C, O], opts ...ProcessorOption[C, O]) *Processor[C, O] {
	pr := &Processor[C, O]{
		bus: bus,
		// Always enable panic recovery first for dependability.
		handler: RecoveryMiddleware[C, O]()(handler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(pr)
		}
	}
	if pr.clock == nil {
		pr.clock = xclock.Default()
	}
	if pr.logger == nil {
		pr.logger = xlog.Default()
	}
	return pr
}

// Tick drains the bus and executes every pending command in send order.
// Returns the completion events in the same order.
func (p *Processor[C, O]) Tick(ctx context.Context) []Executed[C, O] {
	drained := p.bus.Drain()
	if len(drained) == 0 {
		return nil
	}

	hctx := injectLogger(injectClock(ctx, p.clock), p.logger)

	events := make([]Executed[C, O], 0, len(drained))
	for _, env := range drained {
		events = append(events, p.execute(hctx, env))
	}
	return events
}

func (p *Processor[C, O]) execute(ctx context.Context, env Envelope[C]) Executed[C, O] {
	if p.pipeline != nil {
		if verr := p.pipeline.Validate(env.Command); verr != nil {
			event := NewRejected[C, O](env.Command, verr, env.Meta)
			p.record(event)
			return event
		}
	}

	timer := StartTimer(p.clock)
	out, err := p.handler(ctx, env)
	elapsed := timer.Elapsed()

	var event Executed[C, O]
	if err != nil {
		event = NewFailed[C, O](env.Command, err, env.Meta).WithExecutionTime(elapsed)
	} else {
		event = NewSuccess(env.Command, out, env.Meta).WithExecutionTime(elapsed)
	}
	p.record(event)
	return event
}

// record writes the log entry and notifies observers, in that order, so
// observers always see a log consistent with the event. Rejected commands
// never reached execution and leave no log entry.
func (p *Processor[C, O]) record(event Executed[C, O]) {
	if p.log != nil && !event.Result.IsRejected() {
		if event.Result.IsSuccess() {
			p.log.LogSuccess(event.Command, event.Meta)
		} else {
			p.log.LogFailure(event.Command, event.Meta)
		}
	}
	for _, o := range p.observers {
		o.OnExecuted(event)
	}
}
