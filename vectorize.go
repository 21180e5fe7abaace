// Package vectorize converts text into fixed-dimension embedding
// vectors for semantic similarity search, reliably in the face of
// unreliable or rate-limited providers. The service façade normalizes
// input, answers from a bounded cache where possible, batches cache
// misses to the configured provider, and tracks performance counters.
// Embed operations never fail: provider errors degrade to
// deterministic fallback vectors of the expected dimension.
package vectorize

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/botirk38/vectorize/cache"
	"github.com/botirk38/vectorize/fallback"
	"github.com/botirk38/vectorize/options"
	"github.com/botirk38/vectorize/types"
)

// Service is the embedding service façade. Construct one at the
// application's composition root with New and share it by reference;
// all methods are safe for concurrent use.
type Service struct {
	backend   types.CacheBackend
	provider  types.EmbeddingProvider
	logger    *zap.Logger
	metrics   *Metrics
	counters  counters
	dimension int
}

// New creates an embedding service with functional options. A provider
// is required; the cache defaults to a bounded FIFO holding
// cache.DefaultCapacity entries.
func New(opts ...options.Option) (*Service, error) {
	cfg := options.NewConfig()

	if err := cfg.Apply(opts...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// A provider that cannot state its dimension is a configuration
	// bug: fallback vectors could not match real output.
	dimension := cfg.Provider.Dimension()
	if dimension <= 0 {
		return nil, fmt.Errorf("provider reports invalid embedding dimension %d", dimension)
	}

	backend := cfg.Backend
	if backend == nil {
		var err error
		backend, err = cache.NewBackend(types.BackendFIFO, types.BackendConfig{Capacity: cfg.CacheSize})
		if err != nil {
			return nil, err
		}
	}

	return &Service{
		backend:   backend,
		provider:  cfg.Provider,
		logger:    cfg.Logger,
		metrics:   NewMetrics(cfg.Logger),
		dimension: dimension,
	}, nil
}

// EmbedQuery embeds a single query text. Defined as the batch path
// over one text, so caching and statistics behave identically.
func (s *Service) EmbedQuery(ctx context.Context, text string) types.Vector {
	return s.embed(ctx, []string{text}, types.ModeQuery, "embed_query")[0]
}

// EmbedDocuments embeds texts for indexing. The returned slice always
// has the same length and order as the input, regardless of which
// entries were cache hits.
func (s *Service) EmbedDocuments(ctx context.Context, texts []string) []types.Vector {
	return s.embed(ctx, texts, types.ModeDocument, "embed_documents")
}

// embed is the common path: probe the cache for every normalized text,
// send exactly the misses to the provider in one batch, cache the
// fresh vectors, and reassemble the output by original index.
func (s *Service) embed(ctx context.Context, texts []string, mode types.Mode, operation string) []types.Vector {
	start := time.Now()

	result := make([]types.Vector, len(texts))
	keys := make([]string, len(texts))
	var missIndexes []int
	var missTexts []string
	hits := 0

	for i, text := range texts {
		normalized := types.Normalize(text)
		keys[i] = types.Hash(normalized)

		vector, found, err := s.backend.Get(ctx, keys[i])
		if err != nil {
			s.logger.Warn("cache get failed", zap.Error(err))
		}
		if found {
			result[i] = vector
			hits++
			continue
		}
		missIndexes = append(missIndexes, i)
		missTexts = append(missTexts, normalized)
	}

	fallbacks := 0
	if len(missTexts) > 0 {
		embedded, err := s.provider.EmbedTexts(ctx, missTexts, mode)
		if err != nil || len(embedded) != len(missTexts) {
			if err != nil {
				s.logger.Warn("provider batch failed, using fallback vectors",
					zap.Int("count", len(missTexts)), zap.Error(err))
			} else {
				s.logger.Warn("provider returned wrong vector count, using fallback vectors",
					zap.Int("expected", len(missTexts)), zap.Int("got", len(embedded)))
			}
			embedded = make([]types.Vector, len(missTexts))
			for j, text := range missTexts {
				embedded[j] = fallback.Generate(text, s.dimension)
			}
			fallbacks = len(missTexts)
		}

		for j, i := range missIndexes {
			result[i] = embedded[j]
			if err := s.backend.Set(ctx, keys[i], embedded[j]); err != nil {
				s.logger.Warn("cache set failed", zap.Error(err))
			}
		}
	}

	elapsed := time.Since(start)
	s.counters.record(len(texts), hits, elapsed)
	s.metrics.recordBatch(ctx, operation, elapsed, len(texts), fallbacks)
	return result
}

// Stats returns a snapshot of the service's performance counters.
func (s *Service) Stats(ctx context.Context) Stats {
	requests, hits, total := s.counters.snapshot()

	avg := 0.0
	if requests > 0 {
		avg = total.Seconds() / float64(requests)
	}

	cacheLen, err := s.backend.Len(ctx)
	if err != nil {
		s.logger.Warn("cache len failed", zap.Error(err))
	}

	return Stats{
		TotalRequests: requests,
		CacheHits:     hits,
		CacheHitRate:  hitRate(requests, hits),
		AvgTime:       avg,
		Dimension:     s.dimension,
		CacheSize:     cacheLen,
	}
}

// ResetStats zeroes the performance counters.
func (s *Service) ResetStats() {
	s.counters.reset()
}

// ClearCache removes all cached vectors.
func (s *Service) ClearCache(ctx context.Context) error {
	return s.backend.Flush(ctx)
}

// Dimension returns the service's embedding dimension.
func (s *Service) Dimension() int {
	return s.dimension
}

// Warmup embeds a small fixed batch through the normal path to force
// lazy model or connection initialization before real traffic. Its
// only observable effect is priming the cache with the warmup strings.
func (s *Service) Warmup(ctx context.Context) {
	warmupTexts := []string{"warm up", "embedding service ready"}
	s.EmbedDocuments(ctx, warmupTexts)
	s.logger.Info("embedding service warmed up", zap.Int("dimension", s.dimension))
}

// Close releases the provider and cache backend.
func (s *Service) Close() error {
	return errors.Join(s.provider.Close(), s.backend.Close())
}
