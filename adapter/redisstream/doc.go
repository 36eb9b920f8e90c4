package redisstream

// Package redisstream provides a Redis Streams audit sink for xcmd.
//
// Sink name: "redis-streams"
//
// Minimal config keys:
// - addr: "host:port" (default "127.0.0.1:6379")
// - stream: stream name entries are appended to (default "xcmd-audit")
// - kind: command kind label stored on each stream entry (optional)
// - max_len_approx: approximate stream length cap via XADD MAXLEN ~ (0 = unbounded)
//
// Example:
//
//	sink, _ := xcmd.NewSink(redisstream.SinkName, map[string]any{
//	    "addr":   "localhost:6379",
//	    "stream": "audit:deal-damage",
//	    "kind":   "deal_damage",
//	})
//	log := xcmd.NewLog[DealDamage](xcmd.WithSink(sink))
