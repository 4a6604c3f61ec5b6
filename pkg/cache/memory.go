package cache

import (
	"sync"
	"time"
)

// MemoryItem stores a cached value with the time it was stored.
type MemoryItem[V any] struct {
	Value    V
	StoredAt time.Time
}

// IsExpired reports whether the item is older than ttl at now.
func (m *MemoryItem[V]) IsExpired(now time.Time, ttl time.Duration) bool {
	return now.Sub(m.StoredAt) >= ttl
}

// Memory is an in-memory TTL store. Expired items are removed lazily on Get,
// and all of them are swept by Set once the store grows past MaxEntries.
// It is safe for concurrent use.
type Memory[V any] struct {
	data       map[string]*MemoryItem[V]
	mutex      sync.Mutex
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	clone      func(V) V
}

// NewMemory creates an in-memory cache.
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	cfg := &MemoryConfig{
		TTL:        DefaultTTL,
		MaxEntries: DefaultMaxEntries,
		Now:        time.Now,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &Memory[V]{
		data:       make(map[string]*MemoryItem[V]),
		ttl:        cfg.TTL,
		maxEntries: cfg.MaxEntries,
		now:        cfg.Now,
	}
}

// WithCloner makes Get and Set copy values through fn, for value types that
// share backing memory (slices, maps).
func (mc *Memory[V]) WithCloner(fn func(V) V) *Memory[V] {
	mc.clone = fn
	return mc
}

// Get returns the value for key if it is present and not expired.
func (mc *Memory[V]) Get(key string) (V, bool) {
	var zero V

	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	item, exists := mc.data[key]
	if !exists {
		return zero, false
	}
	if item.IsExpired(mc.now(), mc.ttl) {
		delete(mc.data, key)
		return zero, false
	}
	return mc.copy(item.Value), true
}

// Set stores value under key, sweeping expired entries first when the store
// holds more than maxEntries items.
func (mc *Memory[V]) Set(key string, value V) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	now := mc.now()
	if len(mc.data) > mc.maxEntries {
		mc.sweepExpired(now)
	}

	mc.data[key] = &MemoryItem[V]{
		Value:    mc.copy(value),
		StoredAt: now,
	}
}

// Delete removes keys from the store.
func (mc *Memory[V]) Delete(keys ...string) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	for _, key := range keys {
		delete(mc.data, key)
	}
}

// Len returns the number of stored entries, expired ones included.
func (mc *Memory[V]) Len() int {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	return len(mc.data)
}

func (mc *Memory[V]) sweepExpired(now time.Time) {
	for key, item := range mc.data {
		if item.IsExpired(now, mc.ttl) {
			delete(mc.data, key)
		}
	}
}

func (mc *Memory[V]) copy(v V) V {
	if mc.clone == nil {
		return v
	}
	return mc.clone(v)
}
