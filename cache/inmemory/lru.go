package inmemory

import (
	"context"
	"sync"

	"github.com/botirk38/vectorize/types"
	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUBackend implements types.CacheBackend with recency-based eviction
// on top of hashicorp/golang-lru. Unlike the FIFO backend, a Get
// refreshes an entry's position, so hot vectors survive longer under
// skewed access patterns.
type LRUBackend struct {
	mu       sync.RWMutex
	cache    *lru.Cache[string, types.Vector]
	capacity int
}

// NewLRUBackend creates a new LRU backend.
func NewLRUBackend(config types.BackendConfig) (*LRUBackend, error) {
	lruCache, err := lru.New[string, types.Vector](config.Capacity)
	if err != nil {
		return nil, err
	}

	return &LRUBackend{
		cache:    lruCache,
		capacity: config.Capacity,
	}, nil
}

// Set stores a vector in the LRU cache.
func (b *LRUBackend) Set(ctx context.Context, key string, vector types.Vector) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cache.Add(key, vector)
	return nil
}

// Get retrieves a vector from the LRU cache.
func (b *LRUBackend) Get(ctx context.Context, key string) (types.Vector, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if vector, ok := b.cache.Get(key); ok {
		return vector, true, nil
	}
	return nil, false, nil
}

// Flush clears all entries from the LRU cache.
func (b *LRUBackend) Flush(ctx context.Context) error {
	newCache, err := lru.New[string, types.Vector](b.capacity)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.cache = newCache
	return nil
}

// Len returns the number of entries in the LRU cache.
func (b *LRUBackend) Len(ctx context.Context) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.cache.Len(), nil
}

// Close closes the LRU backend (no-op for in-memory).
func (b *LRUBackend) Close() error {
	return nil
}
