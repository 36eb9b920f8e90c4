package xcmd

// Command is the constraint for types that travel a Bus.
//
// Commands represent intentions to mutate game state. They must be
// serializable (the Log encodes them via Codec) and should be treated as
// immutable once sent. Kind names are used in validation errors, Registry
// keys and log lines.
type Command interface {
	// Kind is a unique name for this command type, used in logging.
	Kind() string
}

// ID is a unique identifier for a command instance.
//
// IDs are assigned by a Bus at send time, start at 1 and are strictly
// increasing within one Bus instance's lifetime. They are never reused and
// never reset except at process restart.
type ID uint64

// Meta is the metadata attached to a command when it enters the bus.
type Meta struct {
	// ID is the unique ID for this command instance.
	ID ID `json:"id"`
	// TimestampMs is when the command was sent (milliseconds since epoch).
	TimestampMs uint64 `json:"timestamp_ms"`
	// Frame is the logical frame number when the command was sent, if any.
	Frame *uint64 `json:"frame,omitempty"`
}

// NewMeta creates metadata with the given ID and timestamp and no frame.
func NewMeta(id ID, timestampMs uint64) Meta {
	return Meta{ID: id, TimestampMs: timestampMs}
}

// WithFrame returns a copy of the metadata with the frame number set.
func (m Meta) WithFrame(frame uint64) Meta {
	m.Frame = &frame
	return m
}

// HasFrame reports whether a frame number was stamped.
func (m Meta) HasFrame() bool { return m.Frame != nil }

// Envelope is a command bundled with its metadata, ready for processing.
// Immutable once constructed; the bus never alters it.
type Envelope[C Command] struct {
	// Command is the command to execute.
	Command C
	// Meta describes when/how the command was sent.
	Meta Meta
}

// NewEnvelope wraps a command with its metadata. No validation occurs
// here; this layer only carries data.
func NewEnvelope[C Command](command C, meta Meta) Envelope[C] {
	return Envelope[C]{Command: command, Meta: meta}
}
