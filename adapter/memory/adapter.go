// Package memory provides an in-memory audit sink for xcmd (dev/testing).
package memory

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/trickstertwo/xcmd"
)

const SinkName = "memory"

func init() {
	if err := xcmd.RegisterSink(SinkName, func(cfg map[string]any) (xcmd.Sink, error) {
		return NewSink(ConfigFromMap(cfg)), nil
	}); err != nil {
		panic(fmt.Errorf("xcmd/memory: failed to register sink: %w", err))
	}
}

// Config controls memory sink behavior.
type Config struct {
	// MaxLines caps retained lines; older lines are dropped first
	// (default: 0 = unbounded).
	MaxLines int
}

// ConfigFromMap safely converts a generic map to Config.
func ConfigFromMap(cfg map[string]any) Config {
	c := Config{}
	switch v := cfg["max_lines"].(type) {
	case int:
		c.MaxLines = v
	case int64:
		c.MaxLines = int(v)
	case float64:
		c.MaxLines = int(v)
	}
	if c.MaxLines < 0 {
		c.MaxLines = 0
	}
	return c
}

// Sink captures appended lines in memory. Not suitable for production but
// excellent for tests asserting auto-persist behavior.
type Sink struct {
	cfg Config

	mu    sync.Mutex
	lines [][]byte

	closed atomic.Bool
}

var _ xcmd.Sink = (*Sink)(nil)

// NewSink creates a new in-memory sink.
func NewSink(cfg Config) *Sink {
	return &Sink{cfg: cfg}
}

// Append retains a copy of the line.
func (s *Sink) Append(line []byte) error {
	if s.closed.Load() {
		return errors.New("memory sink is closed")
	}
	cp := make([]byte, len(line))
	copy(cp, line)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, cp)
	if s.cfg.MaxLines > 0 && len(s.lines) > s.cfg.MaxLines {
		s.lines = s.lines[len(s.lines)-s.cfg.MaxLines:]
	}
	return nil
}

// Close marks the sink closed; further appends fail.
func (s *Sink) Close() error {
	s.closed.Store(true)
	return nil
}

// Lines returns a copy of the captured lines in append order.
func (s *Sink) Lines() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, len(s.lines))
	for i, l := range s.lines {
		cp := make([]byte, len(l))
		copy(cp, l)
		out[i] = cp
	}
	return out
}

// Len returns the number of captured lines.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}
