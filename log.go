package xcmd

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"github.com/trickstertwo/xlog"
)

// Entry is a single record in the command log.
//
// Entries are append-only: never mutated or reordered after being
// written. Append order equals execution order.
type Entry[C Command] struct {
	// Command is the command that was executed.
	Command C `json:"command"`
	// Meta is the metadata from when the command was sent.
	Meta Meta `json:"meta"`
	// Succeeded reports whether execution succeeded.
	Succeeded bool `json:"succeeded"`
}

// SuccessEntry creates a log entry for a successful command.
func SuccessEntry[C Command](command C, meta Meta) Entry[C] {
	return Entry[C]{Command: command, Meta: meta, Succeeded: true}
}

// FailureEntry creates a log entry for a failed command.
func FailureEntry[C Command](command C, meta Meta) Entry[C] {
	return Entry[C]{Command: command, Meta: meta, Succeeded: false}
}

// Log is the in-memory audit trail for one command kind.
//
// It records every executed command in order and can be persisted to disk
// as newline-delimited JSON for replay and debugging. With auto-persist
// enabled, each append is also written synchronously to the configured
// sink; a sink failure is swallowed (after a warn log line) so a disk
// hiccup cannot stall gameplay.
type Log[C Command] struct {
	mu      sync.Mutex
	entries []Entry[C]

	autoPersist bool
	sink        Sink
	codec       Codec
	logger      *xlog.Logger
}

// LogOption configures a Log.
type LogOption func(*logOptions)

type logOptions struct {
	sink      Sink
	codec     Codec
	codecName string
	logger    *xlog.Logger
}

// WithSink enables auto-persist: every append is synchronously written to
// the sink, best-effort.
func WithSink(s Sink) LogOption {
	return func(o *logOptions) {
		if s != nil {
			o.sink = s
		}
	}
}

// WithPersistence enables auto-persist to a file at the given path.
func WithPersistence(path string) LogOption {
	return WithSink(NewFileSink(path))
}

// WithCodec overrides the entry codec. The default "json" codec produces
// the canonical audit format; alternate codecs change the sink/file
// representation only, never in-memory semantics.
func WithCodec(c Codec) LogOption {
	return func(o *logOptions) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCodecName selects a codec from the registry by name. An explicit
// WithCodec instance takes precedence; an unregistered name falls back
// to the default "json" codec with a warn log line.
func WithCodecName(name string) LogOption {
	return func(o *logOptions) {
		if name != "" {
			o.codecName = name
		}
	}
}

// WithLogLogger injects the structured logger used for swallowed
// persistence errors.
func WithLogLogger(l *xlog.Logger) LogOption {
	return func(o *logOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewLog creates an empty command log.
func NewLog[C Command](opts ...LogOption) *Log[C] {
	o := logOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = xlog.Default()
	}
	if o.codec == nil && o.codecName != "" {
		c, err := NewCodec(o.codecName)
		if err != nil {
			o.logger.Warn().Err(err).Str("codec", o.codecName).Msg("xcmd: unknown codec, using json")
		} else {
			o.codec = c
		}
	}
	if o.codec == nil {
		o.codec = JSONCodec{}
	}
	return &Log[C]{
		autoPersist: o.sink != nil,
		sink:        o.sink,
		codec:       o.codec,
		logger:      o.logger,
	}
}

// Append adds an entry to the log and, if auto-persist is enabled, writes
// it to the sink. Sink failures are swallowed.
func (l *Log[C]) Append(entry Entry[C]) {
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	persist := l.autoPersist
	l.mu.Unlock()

	if !persist {
		return
	}
	line, err := l.codec.Marshal(entry)
	if err != nil {
		l.logger.Warn().Err(err).Msg("xcmd: log entry encode failed")
		return
	}
	if err := l.sink.Append(line); err != nil {
		l.logger.Warn().Err(err).Msg("xcmd: log auto-persist failed")
	}
}

// LogSuccess records a successful command execution.
func (l *Log[C]) LogSuccess(command C, meta Meta) {
	l.Append(SuccessEntry(command, meta))
}

// LogFailure records a failed command execution.
func (l *Log[C]) LogFailure(command C, meta Meta) {
	l.Append(FailureEntry(command, meta))
}

// Entries returns a copy of all entries in append order.
func (l *Log[C]) Entries() []Entry[C] {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry[C], len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the entry count.
func (l *Log[C]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// IsEmpty reports whether the log has no entries.
func (l *Log[C]) IsEmpty() bool { return l.Len() == 0 }

// Clear discards all entries. The sink is not rewound; already-persisted
// lines stay on disk.
func (l *Log[C]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// GetByID returns the entry whose metadata identity matches, if any.
// Linear scan; identities within one log are unique because one bus
// assigns them.
func (l *Log[C]) GetByID(id ID) (Entry[C], bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.Meta.ID == id {
			return e, true
		}
	}
	var zero Entry[C]
	return zero, false
}

// Successes returns a lazy view over successful entries, in append order.
func (l *Log[C]) Successes() EntrySeq[C] {
	return l.filtered(func(e Entry[C]) bool { return e.Succeeded })
}

// Failures returns a lazy view over failed entries, in append order.
func (l *Log[C]) Failures() EntrySeq[C] {
	return l.filtered(func(e Entry[C]) bool { return !e.Succeeded })
}

// InFrameRange returns a lazy view over entries whose frame is present
// and within [lo, hi] inclusive. Frame-less entries are excluded.
func (l *Log[C]) InFrameRange(lo, hi uint64) EntrySeq[C] {
	return l.filtered(func(e Entry[C]) bool {
		return e.Meta.Frame != nil && *e.Meta.Frame >= lo && *e.Meta.Frame <= hi
	})
}

// SaveToFile serializes every entry as one line of newline-delimited JSON,
// overwriting the file.
func (l *Log[C]) SaveToFile(path string) error {
	entries := l.Entries()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range entries {
		line, err := l.codec.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode entry %d: %w", e.Meta.ID, err)
		}
		if _, err := w.Write(line); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// LoadFromFile parses a saved log back into a fresh Log with auto-persist
// disabled. Round-trips reproduce command, metadata (including absent
// optional fields) and the success flag exactly.
func LoadFromFile[C Command](path string, opts ...LogOption) (*Log[C], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	log := NewLog[C](opts...)
	log.autoPersist = false
	log.sink = nil

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry[C]
		if err := log.codec.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("decode %s line %d: %w", path, lineNo, err)
		}
		log.entries = append(log.entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return log, nil
}

// filtered snapshots the entries and returns a lazy sequence over the
// subset matching keep, preserving order.
func (l *Log[C]) filtered(keep func(Entry[C]) bool) EntrySeq[C] {
	snapshot := l.Entries()
	return func(yield func(Entry[C]) bool) {
		for _, e := range snapshot {
			if !keep(e) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}
