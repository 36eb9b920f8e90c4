package redisstream

import (
	"crypto/tls"
	"fmt"
)

// Config for the Redis Streams audit sink.
type Config struct {
	// Connection
	Addr          string
	Username      string
	Password      string
	DB            int
	TLS           bool
	TLSServerName string

	// Stream is the Redis stream entries are appended to.
	Stream string
	// Kind is an optional command-kind label stored on each stream entry.
	Kind string
	// MaxLenApprox bounds the stream approximately (XADD MAXLEN ~).
	// 0 means unbounded.
	MaxLenApprox int64
}

// Defaults returns a Config with production-safe defaults.
func Defaults() Config {
	return Config{
		Addr:   "127.0.0.1:6379",
		DB:     0,
		TLS:    false,
		Stream: "xcmd-audit",
	}
}

// Validate checks Config for production readiness.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("config: addr required")
	}
	if c.Stream == "" {
		return fmt.Errorf("config: stream required")
	}
	return nil
}

// tlsConfig builds the TLS settings when enabled.
func (c Config) tlsConfig() *tls.Config {
	if !c.TLS {
		return nil
	}
	return &tls.Config{
		MinVersion:    tls.VersionTLS12,
		ServerName:    c.TLSServerName,
		Renegotiation: tls.RenegotiateNever,
	}
}

// ConfigFromMap safely converts a generic map to Config with defaults.
func ConfigFromMap(m map[string]any) Config {
	c := Defaults()

	if v, ok := m["addr"].(string); ok && v != "" {
		c.Addr = v
	}
	if v, ok := m["username"].(string); ok {
		c.Username = v
	}
	if v, ok := m["password"].(string); ok {
		c.Password = v
	}
	if v, ok := m["db"].(int); ok {
		c.DB = v
	}
	if v, ok := m["tls"].(bool); ok {
		c.TLS = v
	}
	if v, ok := m["tls_server_name"].(string); ok {
		c.TLSServerName = v
	}
	if v, ok := m["stream"].(string); ok && v != "" {
		c.Stream = v
	}
	if v, ok := m["kind"].(string); ok {
		c.Kind = v
	}
	switch v := m["max_len_approx"].(type) {
	case int64:
		if v > 0 {
			c.MaxLenApprox = v
		}
	case int:
		if v > 0 {
			c.MaxLenApprox = int64(v)
		}
	}

	return c
}
