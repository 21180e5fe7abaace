// Package types defines the shared contracts between the embedding
// service façade, its cache backends, and its embedding providers.
package types

import (
	"context"
	"time"
)

// Vector is a fixed-dimension embedding vector. The dimension is
// provider-dependent (384 for MiniLM-class local models, 512 for the
// Spark remote API, 1536 for OpenAI text-embedding-3-small).
type Vector = []float32

// Mode distinguishes query-time from document-time embedding requests.
// Providers that treat the two differently (Spark) map the mode onto
// their wire-level domain tag; other providers ignore it.
type Mode string

const (
	ModeQuery    Mode = "query"
	ModeDocument Mode = "document"
)

// CacheBackend defines the interface for vector cache storage backends.
// Keys are content hashes of normalized input text, never raw text.
// All implementations must be safe for concurrent use.
type CacheBackend interface {
	// Get retrieves the vector stored under key.
	Get(ctx context.Context, key string) (Vector, bool, error)

	// Set stores a vector under key. Re-setting an existing key updates
	// the vector in place without affecting size accounting.
	Set(ctx context.Context, key string, vector Vector) error

	// Flush clears all entries from the cache.
	Flush(ctx context.Context) error

	// Len returns the number of entries currently resident.
	Len(ctx context.Context) (int, error)

	// Close closes the backend and releases resources.
	Close() error
}

// BackendConfig provides configuration options for cache backends.
type BackendConfig struct {
	// For in-memory caches
	Capacity int

	// For Redis
	ConnectionString string
	Username         string
	Password         string
	Database         int
	Prefix           string
	TTL              time.Duration
}

// BackendType represents the type of cache backend.
type BackendType string

const (
	BackendFIFO  BackendType = "fifo"
	BackendLRU   BackendType = "lru"
	BackendRedis BackendType = "redis"
)

// EmbeddingProvider defines the interface all embedding providers must
// satisfy. Implementations must return one vector per input text, in
// input order. Providers with built-in degradation (Spark, local model)
// substitute deterministic fallback vectors instead of returning an
// error; providers without it (OpenAI, Gemini) surface the error and
// leave degradation to the service.
type EmbeddingProvider interface {
	// EmbedTexts turns a batch of texts into their embedding vectors.
	EmbedTexts(ctx context.Context, texts []string, mode Mode) ([]Vector, error)

	// Dimension returns the fixed output dimension of this provider.
	Dimension() int

	// Close frees any resources held by the provider.
	Close() error
}

// ProviderType represents the type of embedding provider.
type ProviderType string

const (
	ProviderSpark  ProviderType = "spark"
	ProviderLocal  ProviderType = "local"
	ProviderOpenAI ProviderType = "openai"
	ProviderGemini ProviderType = "gemini"
)
