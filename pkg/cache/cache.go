package cache

// Store defines the cache operations the fetchers depend on.
type Store[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
}

var _ Store[string] = (*Memory[string])(nil)
