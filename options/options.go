// Package options provides functional options for configuring
// embedding service instances.
package options

import (
	"context"
	"errors"

	"github.com/botirk38/vectorize/cache"
	"github.com/botirk38/vectorize/providers/gemini"
	"github.com/botirk38/vectorize/providers/local"
	"github.com/botirk38/vectorize/providers/openai"
	"github.com/botirk38/vectorize/providers/spark"
	"github.com/botirk38/vectorize/types"
	"go.uber.org/zap"
)

// Option represents a configuration option for the embedding service.
type Option func(*Config) error

// Config holds the configuration for building an embedding service.
type Config struct {
	Backend   types.CacheBackend
	Provider  types.EmbeddingProvider
	Logger    *zap.Logger
	CacheSize int
}

// NewConfig creates a new configuration with default values. The cache
// defaults to a bounded FIFO; the provider must be chosen explicitly.
func NewConfig() *Config {
	return &Config{
		Logger:    zap.NewNop(),
		CacheSize: cache.DefaultCapacity,
	}
}

// Apply applies all the given options to the config.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Provider == nil {
		return errors.New("embedding provider is required - use WithSparkProvider, WithLocalProvider, etc.")
	}
	return nil
}

// WithCacheSize sets the capacity of the default FIFO cache.
func WithCacheSize(size int) Option {
	return func(cfg *Config) error {
		if size <= 0 {
			return errors.New("cache size must be positive")
		}
		cfg.CacheSize = size
		return nil
	}
}

// WithFIFOCache sets up a bounded FIFO in-memory cache.
func WithFIFOCache(capacity int) Option {
	return func(cfg *Config) error {
		backend, err := cache.NewBackend(types.BackendFIFO, types.BackendConfig{Capacity: capacity})
		if err != nil {
			return err
		}
		cfg.Backend = backend
		return nil
	}
}

// WithLRUCache sets up an LRU in-memory cache.
func WithLRUCache(capacity int) Option {
	return func(cfg *Config) error {
		backend, err := cache.NewBackend(types.BackendLRU, types.BackendConfig{Capacity: capacity})
		if err != nil {
			return err
		}
		cfg.Backend = backend
		return nil
	}
}

// WithRedisCache sets up a Redis-backed cache.
func WithRedisCache(addr string, db int) Option {
	return func(cfg *Config) error {
		backend, err := cache.NewBackend(types.BackendRedis, types.BackendConfig{
			ConnectionString: addr,
			Database:         db,
		})
		if err != nil {
			return err
		}
		cfg.Backend = backend
		return nil
	}
}

// WithCustomBackend allows using a pre-configured cache backend.
func WithCustomBackend(backend types.CacheBackend) Option {
	return func(cfg *Config) error {
		if backend == nil {
			return errors.New("backend cannot be nil")
		}
		cfg.Backend = backend
		return nil
	}
}

// WithSparkProvider sets up the Spark remote embedding provider.
func WithSparkProvider(config spark.Config) Option {
	return func(cfg *Config) error {
		provider, err := spark.NewProvider(config)
		if err != nil {
			return err
		}
		cfg.Provider = provider
		return nil
	}
}

// WithLocalProvider sets up the local model embedding provider.
func WithLocalProvider(config local.Config) Option {
	return func(cfg *Config) error {
		provider, err := local.NewProvider(config)
		if err != nil {
			return err
		}
		cfg.Provider = provider
		return nil
	}
}

// WithOpenAIProvider sets up the OpenAI embedding provider.
func WithOpenAIProvider(config openai.Config) Option {
	return func(cfg *Config) error {
		provider, err := openai.NewProvider(config)
		if err != nil {
			return err
		}
		cfg.Provider = provider
		return nil
	}
}

// WithGeminiProvider sets up the Gemini embedding provider.
func WithGeminiProvider(ctx context.Context, config gemini.Config) Option {
	return func(cfg *Config) error {
		provider, err := gemini.NewProvider(ctx, config)
		if err != nil {
			return err
		}
		cfg.Provider = provider
		return nil
	}
}

// WithCustomProvider allows using a pre-configured embedding provider.
func WithCustomProvider(provider types.EmbeddingProvider) Option {
	return func(cfg *Config) error {
		if provider == nil {
			return errors.New("provider cannot be nil")
		}
		cfg.Provider = provider
		return nil
	}
}

// WithLogger sets the logger used by the service and its components.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *Config) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.Logger = logger
		return nil
	}
}
