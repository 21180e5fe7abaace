package inmemory

import (
	"context"
	"sync"

	"github.com/botirk38/vectorize/types"
)

// FIFOBackend implements types.CacheBackend with insertion-order
// eviction: when the cache is full, the single oldest-inserted entry is
// evicted. Re-setting an existing key updates the vector in place and
// keeps its original queue position, so this is a bounded FIFO rather
// than a true LRU.
type FIFOBackend struct {
	mu       sync.RWMutex
	entries  map[string]types.Vector
	queue    []string
	capacity int
}

// NewFIFOBackend creates a new FIFO backend.
func NewFIFOBackend(config types.BackendConfig) (*FIFOBackend, error) {
	return &FIFOBackend{
		entries:  make(map[string]types.Vector),
		queue:    make([]string, 0, config.Capacity),
		capacity: config.Capacity,
	}, nil
}

// Set stores a vector in the FIFO cache.
func (b *FIFOBackend) Set(ctx context.Context, key string, vector types.Vector) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Existing keys update in place without size accounting changes
	if _, exists := b.entries[key]; exists {
		b.entries[key] = vector
		return nil
	}

	if len(b.entries) >= b.capacity && b.capacity > 0 {
		oldestKey := b.queue[0]
		b.queue = b.queue[1:]
		delete(b.entries, oldestKey)
	}

	b.entries[key] = vector
	b.queue = append(b.queue, key)
	return nil
}

// Get retrieves a vector from the FIFO cache.
func (b *FIFOBackend) Get(ctx context.Context, key string) (types.Vector, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if vector, ok := b.entries[key]; ok {
		return vector, true, nil
	}
	return nil, false, nil
}

// Flush clears all entries from the FIFO cache.
func (b *FIFOBackend) Flush(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = make(map[string]types.Vector)
	b.queue = make([]string, 0, b.capacity)
	return nil
}

// Len returns the number of entries in the FIFO cache.
func (b *FIFOBackend) Len(ctx context.Context) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.entries), nil
}

// Close closes the FIFO backend (no-op for in-memory).
func (b *FIFOBackend) Close() error {
	return nil
}
