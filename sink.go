package xcmd

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// Sink is the Strategy interface for audit-trail persistence backends.
//
// A Log with auto-persist enabled appends one serialized entry per call,
// synchronously, on the sending tick. Sinks should therefore be cheap;
// append failures are swallowed by the Log (audit path, not the primary
// state store).
type Sink interface {
	// Append writes one serialized log entry.
	Append(line []byte) error
	// Close releases resources.
	Close() error
}

// SinkFactory constructs sinks from a config blob.
type SinkFactory func(cfg map[string]any) (Sink, error)

var (
	sinkRegistryMu sync.RWMutex
	sinkRegistry   = map[string]SinkFactory{
		"file": func(cfg map[string]any) (Sink, error) {
			path, _ := cfg["path"].(string)
			if path == "" {
				return nil, errors.New("file sink requires a path")
			}
			return NewFileSink(path), nil
		},
	}
)

// RegisterSink registers a persistence backend adapter.
func RegisterSink(name string, factory SinkFactory) error {
	if name == "" {
		return errors.New("sink name must not be empty")
	}
	if factory == nil {
		return errors.New("sink factory must not be nil")
	}
	sinkRegistryMu.Lock()
	sinkRegistry[name] = factory
	sinkRegistryMu.Unlock()
	return nil
}

// NewSink constructs a sink by name with config.
func NewSink(name string, cfg map[string]any) (Sink, error) {
	sinkRegistryMu.RLock()
	f, ok := sinkRegistry[name]
	sinkRegistryMu.RUnlock()
	if !ok {
		return nil, ErrUnknownSink{name: name}
	}
	return f(cfg)
}

// FileSink appends newline-delimited entries to a file, creating it on
// first append. The file is exclusively owned by one Log while open.
type FileSink struct {
	mu   sync.Mutex
	path string
}

var _ Sink = (*FileSink)(nil)

// NewFileSink creates a sink appending to the given path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Append opens the file in append mode, writes the line and closes it.
// Open-per-append keeps a crash from losing buffered entries.
func (s *FileSink) Append(line []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')
	if _, err := f.Write(buf); err != nil {
		return fmt.Errorf("append %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op; the file handle is not held between appends.
func (s *FileSink) Close() error { return nil }
