package redisstream

import (
	"fmt"

	"github.com/trickstertwo/xcmd"
)

// Adapter: Redis Streams audit sink (Strategy + Adapter patterns)

const SinkName = "redis-streams"

func init() {
	if err := xcmd.RegisterSink(SinkName, func(cfg map[string]any) (xcmd.Sink, error) {
		return NewSink(ConfigFromMap(cfg))
	}); err != nil {
		panic(fmt.Errorf("xcmd: failed to register sink %q: %w", SinkName, err))
	}
}

// Use builds a Redis Streams sink or panics, for wiring at program start.
func Use(cfg Config, opts ...Option) xcmd.Sink {
	s, err := NewSink(cfg, opts...)
	if err != nil {
		panic(fmt.Errorf("redisstream.Use: %w", err))
	}
	return s
}
