// Package xcmd is a typed command bus with audit logging and replay.
//
// All game-state mutations flow through a per-kind Bus: senders enqueue
// commands wrapped in Envelopes, a per-tick processor drains them in FIFO
// order, and the outcome of each execution is recorded in an append-only
// Log that can be persisted as JSONL and replayed deterministically.
//
// The flow is linear: game systems Send onto a Bus, the Processor drains
// the queue each tick and runs the handler through its middleware chain,
// and every execution yields an Executed event that is recorded in the
// Log and fanned out to observers.
//
// Each command kind gets its own Bus, Log, and validator Pipeline; kinds
// never share an identity counter. Validation is opt-in: Send never calls
// the Pipeline, a processor (or the caller) must validate explicitly.
//
// The core is single-owner per tick. Every instance is guarded by one
// mutex so multi-threaded hosts get a single exclusion boundary per kind,
// but the design assumes one logical owner drives Send/Drain each tick.
package xcmd
