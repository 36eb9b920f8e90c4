package redisstream

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/trickstertwo/xclock"
	"github.com/trickstertwo/xlog"

	"github.com/trickstertwo/xcmd"
)

// Field constants (avoid typos/allocs)
const (
	fieldKind       = "kind"
	fieldEntry      = "entry"      // serialized log entry bytes
	fieldAppendedAt = "appendedAt" // int64 ns
)

type sink struct {
	cfg    Config
	client *redis.Client
	clock  xclock.Clock
	logger *xlog.Logger

	closeOnce sync.Once
	closed    atomic.Bool

	// metrics for observability
	appended     atomic.Uint64
	appendErrors atomic.Uint64
}

var _ xcmd.Sink = (*sink)(nil)

// NewSink connects to Redis and returns an audit sink appending entries
// to the configured stream.
func NewSink(cfg Config, opts ...Option) (xcmd.Sink, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ropts := &redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		PoolSize:     10,
		MinIdleConns: 5,
	}
	if tc := cfg.tlsConfig(); tc != nil {
		ropts.TLSConfig = tc
	}

	client := redis.NewClient(ropts)
	if err := ping(client); err != nil {
		return nil, err
	}

	s := &sink{
		cfg:    cfg,
		client: client,
		clock:  xclock.Default(),
		logger: xlog.Default(),
	}
	for _, o := range opts {
		if o != nil {
			o(s)
		}
	}
	s.logger.Debug().Str("stream", cfg.Stream).Msg("redisstream: audit sink ready")
	return s, nil
}

// Append writes one serialized log entry to the stream via XADD.
//
// The call is synchronous and best-effort by contract: the Log swallows
// any error returned here. A short timeout keeps a slow Redis from
// stalling the calling tick indefinitely.
func (s *sink) Append(line []byte) error {
	if s.closed.Load() {
		return fmt.Errorf("redisstream: sink is closed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	vals := make(map[string]any, 3)
	if s.cfg.Kind != "" {
		vals[fieldKind] = s.cfg.Kind
	}
	// raw entry bytes (binary-safe, no base64 encoding overhead)
	vals[fieldEntry] = line
	vals[fieldAppendedAt] = s.clock.Now().UnixNano()

	args := &redis.XAddArgs{
		Stream: s.cfg.Stream,
		ID:     "*", // Let Redis generate ID
		Values: vals,
	}

	// Approximate trimming to keep the stream bounded
	if s.cfg.MaxLenApprox > 0 {
		args.MaxLen = s.cfg.MaxLenApprox
		args.Approx = true
	}

	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		s.appendErrors.Add(1)
		return fmt.Errorf("xadd %s: %w", s.cfg.Stream, err)
	}
	s.appended.Add(1)
	return nil
}

// Close releases the Redis connection. Idempotent.
func (s *sink) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		err = s.client.Close()
	})
	return err
}

func ping(client *redis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redisstream: ping: %w", err)
	}
	return nil
}
