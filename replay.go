package xcmd

import "iter"

// EntrySeq is a lazy, finite, restartable sequence of log entries.
type EntrySeq[C Command] iter.Seq[Entry[C]]

// Collect drains the sequence into a slice.
func (s EntrySeq[C]) Collect() []Entry[C] {
	var out []Entry[C]
	for e := range s {
		out = append(out, e)
	}
	return out
}

// Replay regenerates the original (command, metadata) sequence from a
// log.
//
// The sequence is lazy and finite, preserves append order and never
// mutates the log. It is restartable: call Log.Replay again (or range the
// same Replay again) to start over. Pairs are meant to be re-injected via
// Bus.SendWithMeta; replay never rewinds the original bus.
type Replay[C Command] struct {
	entries       []Entry[C]
	successesOnly bool
}

// Replay creates a replay sequence over the log's current entries.
func (l *Log[C]) Replay() Replay[C] {
	return Replay[C]{entries: l.Entries()}
}

// SuccessesOnly filters out failed entries, preserving order.
func (r Replay[C]) SuccessesOnly() Replay[C] {
	r.successesOnly = true
	return r
}

// All yields (command, metadata) pairs in original append order.
func (r Replay[C]) All() iter.Seq2[C, Meta] {
	return func(yield func(C, Meta) bool) {
		for _, e := range r.entries {
			if r.successesOnly && !e.Succeeded {
				continue
			}
			if !yield(e.Command, e.Meta) {
				return
			}
		}
	}
}

// Collect drains the sequence into envelope values.
func (r Replay[C]) Collect() []Envelope[C] {
	var out []Envelope[C]
	for c, m := range r.All() {
		out = append(out, NewEnvelope(c, m))
	}
	return out
}
