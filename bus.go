package xcmd

import (
	"strconv"
	"sync"

	"github.com/trickstertwo/xclock"
	"github.com/trickstertwo/xlog"
)

// Bus is a per-kind FIFO queue of pending commands.
//
// Systems send commands through the bus; each tick, a processor drains and
// executes them in send order. Each command kind has its own bus instance
// with its own identity counter.
//
// A single mutex guards all internal state so that multi-threaded hosts
// get one exclusion boundary per kind. The design still assumes a single
// logical owner per tick: two goroutines racing Drain will each observe a
// consistent but interleaved view.
type Bus[C Command] struct {
	mu           sync.Mutex
	queue        []Envelope[C]
	nextID       uint64
	currentFrame uint64

	clock  xclock.Clock
	logger *xlog.Logger
}

// BusOption configures a Bus.
type BusOption func(*busOptions)

type busOptions struct {
	clock  xclock.Clock
	logger *xlog.Logger
}

// WithClock injects the wall-clock source used for send timestamps.
func WithClock(c xclock.Clock) BusOption {
	return func(o *busOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger injects the structured logger.
func WithLogger(l *xlog.Logger) BusOption {
	return func(o *busOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewBus creates an empty bus. Identities start at 1.
func NewBus[C Command](opts ...BusOption) *Bus[C] {
	o := busOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.clock == nil {
		o.clock = xclock.Default()
	}
	if o.logger == nil {
		o.logger = xlog.Default()
	}
	return &Bus[C]{
		nextID: 1,
		clock:  o.clock,
		logger: o.logger,
	}
}

// Send enqueues a command at the tail of the queue.
//
// The command is wrapped in an envelope with auto-generated metadata: the
// next identity (starting at 1), a best-effort wall-clock timestamp and
// the bus's current frame (0 until SetFrame is called). Returns the
// assigned identity. Cannot fail. Frame-less envelopes only arise via
// SendWithMeta.
func (b *Bus[C]) Send(command C) ID {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := ID(b.nextID)
	b.nextID++

	meta := NewMeta(id, b.timestampMs()).WithFrame(b.currentFrame)
	b.queue = append(b.queue, NewEnvelope(command, meta))
	return id
}

// SendWithMeta enqueues a command with caller-supplied metadata verbatim.
//
// Use this when replaying commands or when the caller controls identity
// and timestamp. The identity counter is neither consulted nor advanced.
func (b *Bus[C]) SendWithMeta(command C, meta Meta) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue = append(b.queue, NewEnvelope(command, meta))
}

// Drain removes and returns all pending envelopes in send order.
//
// The queue is empty immediately after the call returns, regardless of
// how the caller consumes the slice.
func (b *Bus[C]) Drain() []Envelope[C] {
	b.mu.Lock()
	defer b.mu.Unlock()
	drained := b.queue
	b.queue = nil
	return drained
}

// Peek returns the head envelope without removing it.
func (b *Bus[C]) Peek() (Envelope[C], bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		var zero Envelope[C]
		return zero, false
	}
	return b.queue[0], true
}

// SetFrame sets the frame number stamped onto subsequently sent commands.
// Already-queued envelopes are not changed. Called once per tick by the
// host loop.
func (b *Bus[C]) SetFrame(frame uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.currentFrame = frame
}

// Frame returns the current frame number.
func (b *Bus[C]) Frame() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentFrame
}

// Len returns the number of queued commands.
func (b *Bus[C]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// IsEmpty reports whether there are no queued commands.
func (b *Bus[C]) IsEmpty() bool { return b.Len() == 0 }

// Clear discards all queued commands without processing them.
//
// This is a shutdown/abort path, not normal flow: dropped commands leave
// no log entry and no event. Callers needing auditable cancellation must
// log before clearing.
func (b *Bus[C]) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n := len(b.queue); n > 0 {
		b.logger.Debug().Str("dropped", strconv.Itoa(n)).Msg("xcmd: bus cleared")
	}
	b.queue = nil
}

// timestampMs reads the injected clock, falling back to 0 rather than
// failing when no clock is available. Callers hold b.mu.
func (b *Bus[C]) timestampMs() uint64 {
	if b.clock == nil {
		return 0
	}
	ms := b.clock.Now().UnixMilli()
	if ms < 0 {
		return 0
	}
	return uint64(ms)
}
