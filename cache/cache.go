// Package cache provides bounded key→vector stores keyed by content
// hashes of normalized text. The default backend is a FIFO with
// insertion-order eviction; LRU and Redis backends are available for
// recency-sensitive or shared deployments.
package cache

import (
	"errors"

	"github.com/botirk38/vectorize/cache/inmemory"
	"github.com/botirk38/vectorize/cache/remote"
	"github.com/botirk38/vectorize/types"
)

var ErrUnsupportedBackend = errors.New("unsupported backend type")

// DefaultCapacity bounds the in-memory caches when no capacity is
// configured.
const DefaultCapacity = 1000

// NewBackend creates a cache backend of the specified type.
func NewBackend(backendType types.BackendType, config types.BackendConfig) (types.CacheBackend, error) {
	if config.Capacity <= 0 {
		config.Capacity = DefaultCapacity
	}

	switch backendType {
	case types.BackendFIFO:
		return inmemory.NewFIFOBackend(config)
	case types.BackendLRU:
		return inmemory.NewLRUBackend(config)
	case types.BackendRedis:
		return remote.NewRedisBackend(config)
	default:
		return nil, ErrUnsupportedBackend
	}
}
