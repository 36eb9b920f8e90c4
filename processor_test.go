package xcmd_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trickstertwo/xcmd"
)

func doubler(_ context.Context, env xcmd.Envelope[testCommand]) (int, error) {
	return env.Command.Value * 2, nil
}

func TestProcessor_ExecutesInSendOrder(t *testing.T) {
	bus := xcmd.NewBus[testCommand]()
	processor := xcmd.NewProcessor(bus, doubler)

	bus.Send(testCommand{Value: 1})
	bus.Send(testCommand{Value: 2})
	bus.Send(testCommand{Value: 3})

	events := processor.Tick(context.Background())
	require.Len(t, events, 3)
	assert.True(t, bus.IsEmpty())

	for i, event := range events {
		assert.Equal(t, xcmd.ID(i+1), event.ID())
		out, ok := event.Result.Output()
		require.True(t, ok)
		assert.Equal(t, (i+1)*2, out)
	}
}

func TestProcessor_EmptyTick(t *testing.T) {
	bus := xcmd.NewBus[testCommand]()
	processor := xcmd.NewProcessor(bus, doubler)
	assert.Empty(t, processor.Tick(context.Background()))
}

func TestProcessor_LogsOutcomes(t *testing.T) {
	bus := xcmd.NewBus[testCommand]()
	log := xcmd.NewLog[testCommand]()

	handler := func(_ context.Context, env xcmd.Envelope[testCommand]) (int, error) {
		if env.Command.Value < 0 {
			return 0, errors.New("negative")
		}
		return env.Command.Value, nil
	}
	processor := xcmd.NewProcessor(bus, handler,
		xcmd.WithLog[testCommand, int](log),
	)

	bus.Send(testCommand{Value: 1})
	bus.Send(testCommand{Value: -2})
	bus.Send(testCommand{Value: 3})
	processor.Tick(context.Background())

	require.Equal(t, 3, log.Len())
	entries := log.Entries()
	assert.True(t, entries[0].Succeeded)
	assert.False(t, entries[1].Succeeded)
	assert.True(t, entries[2].Succeeded)

	// Log order equals execution order equals send order.
	assert.Equal(t, xcmd.ID(1), entries[0].Meta.ID)
	assert.Equal(t, xcmd.ID(2), entries[1].Meta.ID)
	assert.Equal(t, xcmd.ID(3), entries[2].Meta.ID)
}

func TestProcessor_RejectsBeforeExecution(t *testing.T) {
	bus := xcmd.NewBus[testCommand]()
	log := xcmd.NewLog[testCommand]()
	pipeline := xcmd.NewPipeline[testCommand]().Add(positiveValidator{})

	var handled []int
	handler := func(_ context.Context, env xcmd.Envelope[testCommand]) (int, error) {
		handled = append(handled, env.Command.Value)
		return env.Command.Value, nil
	}
	processor := xcmd.NewProcessor(bus, handler,
		xcmd.WithPipeline[testCommand, int](pipeline),
		xcmd.WithLog[testCommand, int](log),
	)

	bus.Send(testCommand{Value: -5})
	bus.Send(testCommand{Value: 7})
	events := processor.Tick(context.Background())

	require.Len(t, events, 2)
	assert.True(t, events[0].Result.IsRejected())
	assert.Equal(t, "must be positive", events[0].Result.Rejection().Reason)
	assert.True(t, events[1].IsSuccess())

	// The rejected command never reached the handler and left no log
	// entry; a rejection is not a failed execution.
	assert.Equal(t, []int{7}, handled)
	require.Equal(t, 1, log.Len())
	assert.Equal(t, xcmd.ID(2), log.Entries()[0].Meta.ID)
}

func TestProcessor_NoPipelineExecutesUnchecked(t *testing.T) {
	bus := xcmd.NewBus[testCommand]()
	processor := xcmd.NewProcessor(bus, doubler)

	bus.Send(testCommand{Value: -100})
	events := processor.Tick(context.Background())

	require.Len(t, events, 1)
	assert.True(t, events[0].IsSuccess())
}

func TestProcessor_NotifiesObserversInOrder(t *testing.T) {
	bus := xcmd.NewBus[testCommand]()

	var seen []xcmd.ID
	observer := xcmd.ObserverFunc[testCommand, int](func(e xcmd.Executed[testCommand, int]) {
		seen = append(seen, e.ID())
	})
	processor := xcmd.NewProcessor(bus, doubler,
		xcmd.WithObserver[testCommand, int](observer),
	)

	bus.Send(testCommand{Value: 1})
	bus.Send(testCommand{Value: 2})
	processor.Tick(context.Background())

	assert.Equal(t, []xcmd.ID{1, 2}, seen)
}

func TestProcessor_RecoversHandlerPanic(t *testing.T) {
	bus := xcmd.NewBus[testCommand]()
	log := xcmd.NewLog[testCommand]()

	handler := func(_ context.Context, env xcmd.Envelope[testCommand]) (int, error) {
		if env.Command.Value == 2 {
			panic("boom")
		}
		return env.Command.Value, nil
	}
	processor := xcmd.NewProcessor(bus, handler,
		xcmd.WithLog[testCommand, int](log),
	)

	bus.Send(testCommand{Value: 1})
	bus.Send(testCommand{Value: 2})
	bus.Send(testCommand{Value: 3})
	events := processor.Tick(context.Background())

	require.Len(t, events, 3)
	assert.True(t, events[0].IsSuccess())
	assert.True(t, events[1].IsFailed())
	assert.ErrorContains(t, events[1].Result.Err(), "panic recovered")
	assert.True(t, events[2].IsSuccess())
}

func TestProcessor_MiddlewareWrapsHandler(t *testing.T) {
	bus := xcmd.NewBus[testCommand]()

	var order []string
	mw := func(name string) xcmd.Middleware[testCommand, int] {
		return func(next xcmd.Handler[testCommand, int]) xcmd.Handler[testCommand, int] {
			return func(ctx context.Context, env xcmd.Envelope[testCommand]) (int, error) {
				order = append(order, name)
				return next(ctx, env)
			}
		}
	}
	processor := xcmd.NewProcessor(bus, doubler,
		xcmd.WithMiddleware(mw("outer"), mw("inner")),
	)

	bus.Send(testCommand{Value: 1})
	processor.Tick(context.Background())

	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestProcessor_InjectsClockAndLogger(t *testing.T) {
	bus := xcmd.NewBus[testCommand]()

	handler := func(ctx context.Context, env xcmd.Envelope[testCommand]) (int, error) {
		_, ok := xcmd.ClockFromContext(ctx)
		assert.True(t, ok)
		_, ok = xcmd.LoggerFromContext(ctx)
		assert.True(t, ok)
		return env.Command.Value, nil
	}
	processor := xcmd.NewProcessor(bus, handler)

	bus.Send(testCommand{Value: 1})
	events := processor.Tick(context.Background())
	require.Len(t, events, 1)
	assert.True(t, events[0].IsSuccess())
}

func TestProcessor_StampsExecutionTime(t *testing.T) {
	bus := xcmd.NewBus[testCommand]()
	processor := xcmd.NewProcessor(bus, doubler)

	bus.Send(testCommand{Value: 1})
	events := processor.Tick(context.Background())

	require.Len(t, events, 1)
	assert.GreaterOrEqual(t, events[0].ExecutionTime.Nanoseconds(), int64(0))
}
