package cache

import "time"

const (
	// DefaultTTL is how long an entry stays visible.
	DefaultTTL = 300 * time.Second
	// DefaultMaxEntries is the size past which Set sweeps expired entries.
	DefaultMaxEntries = 100
)

// MemoryOption configures Memory cache.
type MemoryOption func(*MemoryConfig)

// MemoryConfig holds memory cache configuration.
type MemoryConfig struct {
	TTL        time.Duration
	MaxEntries int
	Now        func() time.Time
}

// WithTTL sets the entry time-to-live.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(c *MemoryConfig) {
		if ttl > 0 {
			c.TTL = ttl
		}
	}
}

// WithMaxEntries sets the sweep threshold.
func WithMaxEntries(n int) MemoryOption {
	return func(c *MemoryConfig) {
		if n > 0 {
			c.MaxEntries = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) MemoryOption {
	return func(c *MemoryConfig) {
		if now != nil {
			c.Now = now
		}
	}
}
