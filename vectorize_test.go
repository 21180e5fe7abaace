package vectorize_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	vectorize "github.com/botirk38/vectorize"
	"github.com/botirk38/vectorize/fallback"
	"github.com/botirk38/vectorize/options"
	"github.com/botirk38/vectorize/types"
)

// stubProvider records every batch it receives and answers with
// deterministic per-text vectors.
type stubProvider struct {
	mu        sync.Mutex
	dimension int
	batches   [][]string
	modes     []types.Mode
	err       error
	shortBy   int
	closed    bool
}

func newStubProvider(dimension int) *stubProvider {
	return &stubProvider{dimension: dimension}
}

func (p *stubProvider) vectorFor(text string) types.Vector {
	v := make(types.Vector, p.dimension)
	for i := range v {
		v[i] = float32(len(text) + i)
	}
	return v
}

func (p *stubProvider) EmbedTexts(_ context.Context, texts []string, mode types.Mode) ([]types.Vector, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	batch := make([]string, len(texts))
	copy(batch, texts)
	p.batches = append(p.batches, batch)
	p.modes = append(p.modes, mode)

	if p.err != nil {
		return nil, p.err
	}
	vectors := make([]types.Vector, 0, len(texts))
	for _, text := range texts[:len(texts)-p.shortBy] {
		vectors = append(vectors, p.vectorFor(text))
	}
	return vectors, nil
}

func (p *stubProvider) Dimension() int { return p.dimension }

func (p *stubProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *stubProvider) batchCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.batches)
}

func newTestService(t *testing.T, provider types.EmbeddingProvider) *vectorize.Service {
	t.Helper()
	service, err := vectorize.New(options.WithCustomProvider(provider))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { service.Close() })
	return service
}

func TestNewRequiresProvider(t *testing.T) {
	if _, err := vectorize.New(); err == nil {
		t.Fatal("New() without a provider should fail")
	}
}

func TestNewRejectsInvalidDimension(t *testing.T) {
	if _, err := vectorize.New(options.WithCustomProvider(newStubProvider(0))); err == nil {
		t.Fatal("New() with zero-dimension provider should fail")
	}
}

func TestEmbedQueryCachesSecondCall(t *testing.T) {
	provider := newStubProvider(8)
	service := newTestService(t, provider)
	ctx := context.Background()

	first := service.EmbedQuery(ctx, "hello world")
	second := service.EmbedQuery(ctx, "hello world")

	if len(first) != 8 {
		t.Fatalf("vector length = %d, want 8", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("cached vector differs at index %d", i)
		}
	}
	if got := provider.batchCount(); got != 1 {
		t.Errorf("provider batches = %d, want 1", got)
	}

	stats := service.Stats(ctx)
	if stats.TotalRequests != 2 {
		t.Errorf("TotalRequests = %d, want 2", stats.TotalRequests)
	}
	if stats.CacheHits != 1 {
		t.Errorf("CacheHits = %d, want 1", stats.CacheHits)
	}
	if stats.CacheHitRate != "50.0%" {
		t.Errorf("CacheHitRate = %q, want %q", stats.CacheHitRate, "50.0%")
	}
}

func TestNormalizedTextsShareCacheEntry(t *testing.T) {
	provider := newStubProvider(4)
	service := newTestService(t, provider)
	ctx := context.Background()

	service.EmbedQuery(ctx, "hello world")
	service.EmbedQuery(ctx, "  hello \t world  ")

	if got := provider.batchCount(); got != 1 {
		t.Errorf("provider batches = %d, want 1 (whitespace variants should hit the same entry)", got)
	}
}

func TestEmbedDocumentsOnlySendsMisses(t *testing.T) {
	provider := newStubProvider(4)
	service := newTestService(t, provider)
	ctx := context.Background()

	service.EmbedQuery(ctx, "beta")

	texts := []string{"alpha", "beta", "gamma"}
	vectors := service.EmbedDocuments(ctx, texts)

	if len(vectors) != len(texts) {
		t.Fatalf("got %d vectors, want %d", len(vectors), len(texts))
	}
	for i, text := range texts {
		want := provider.vectorFor(text)
		for j := range want {
			if vectors[i][j] != want[j] {
				t.Fatalf("vector for %q differs at index %d", text, j)
			}
		}
	}

	provider.mu.Lock()
	lastBatch := provider.batches[len(provider.batches)-1]
	provider.mu.Unlock()
	if len(lastBatch) != 2 || lastBatch[0] != "alpha" || lastBatch[1] != "gamma" {
		t.Errorf("miss batch = %v, want [alpha gamma]", lastBatch)
	}
}

func TestEmbedModes(t *testing.T) {
	provider := newStubProvider(4)
	service := newTestService(t, provider)
	ctx := context.Background()

	service.EmbedQuery(ctx, "what is rust")
	service.EmbedDocuments(ctx, []string{"rust is a language"})

	provider.mu.Lock()
	defer provider.mu.Unlock()
	if provider.modes[0] != types.ModeQuery {
		t.Errorf("query mode = %q, want %q", provider.modes[0], types.ModeQuery)
	}
	if provider.modes[1] != types.ModeDocument {
		t.Errorf("document mode = %q, want %q", provider.modes[1], types.ModeDocument)
	}
}

func TestProviderErrorFallsBack(t *testing.T) {
	provider := newStubProvider(16)
	provider.err = errors.New("backend unavailable")
	service := newTestService(t, provider)
	ctx := context.Background()

	texts := []string{"alpha", "beta"}
	vectors := service.EmbedDocuments(ctx, texts)

	for i, text := range texts {
		want := fallback.Generate(text, 16)
		if len(vectors[i]) != 16 {
			t.Fatalf("vector %d length = %d, want 16", i, len(vectors[i]))
		}
		for j := range want {
			if vectors[i][j] != want[j] {
				t.Fatalf("vector for %q is not the deterministic fallback", text)
			}
		}
	}
}

func TestShortProviderResponseFallsBack(t *testing.T) {
	provider := newStubProvider(4)
	provider.shortBy = 1
	service := newTestService(t, provider)

	vectors := service.EmbedDocuments(context.Background(), []string{"alpha", "beta"})

	for i, text := range []string{"alpha", "beta"} {
		want := fallback.Generate(text, 4)
		for j := range want {
			if vectors[i][j] != want[j] {
				t.Fatalf("vector for %q is not the deterministic fallback after short response", text)
			}
		}
	}
}

func TestEmbedQueryEmptyText(t *testing.T) {
	provider := newStubProvider(4)
	service := newTestService(t, provider)

	vector := service.EmbedQuery(context.Background(), "   ")
	if len(vector) != 4 {
		t.Fatalf("empty-text vector length = %d, want 4", len(vector))
	}
}

func TestClearCacheForcesRefetch(t *testing.T) {
	provider := newStubProvider(4)
	service := newTestService(t, provider)
	ctx := context.Background()

	service.EmbedQuery(ctx, "hello")
	if err := service.ClearCache(ctx); err != nil {
		t.Fatalf("ClearCache() error = %v", err)
	}
	service.EmbedQuery(ctx, "hello")

	if got := provider.batchCount(); got != 2 {
		t.Errorf("provider batches = %d, want 2 after cache clear", got)
	}
}

func TestWarmupPrimesCache(t *testing.T) {
	provider := newStubProvider(4)
	service := newTestService(t, provider)
	ctx := context.Background()

	service.Warmup(ctx)

	stats := service.Stats(ctx)
	if stats.CacheSize != 2 {
		t.Errorf("CacheSize = %d, want 2 after warmup", stats.CacheSize)
	}
	if got := provider.batchCount(); got != 1 {
		t.Errorf("provider batches = %d, want 1", got)
	}
}

func TestResetStats(t *testing.T) {
	provider := newStubProvider(4)
	service := newTestService(t, provider)
	ctx := context.Background()

	service.EmbedQuery(ctx, "hello")
	service.ResetStats()

	stats := service.Stats(ctx)
	if stats.TotalRequests != 0 || stats.CacheHits != 0 {
		t.Errorf("counters after reset = %d/%d, want 0/0", stats.TotalRequests, stats.CacheHits)
	}
	if stats.CacheHitRate != "0.0%" {
		t.Errorf("CacheHitRate = %q, want %q", stats.CacheHitRate, "0.0%")
	}
	if stats.CacheSize != 1 {
		t.Errorf("CacheSize = %d, want 1 (reset leaves the cache alone)", stats.CacheSize)
	}
}

func TestStatsDimension(t *testing.T) {
	provider := newStubProvider(12)
	service := newTestService(t, provider)

	if got := service.Dimension(); got != 12 {
		t.Errorf("Dimension() = %d, want 12", got)
	}
	if got := service.Stats(context.Background()).Dimension; got != 12 {
		t.Errorf("Stats().Dimension = %d, want 12", got)
	}
}

func TestCloseReleasesProvider(t *testing.T) {
	provider := newStubProvider(4)
	service, err := vectorize.New(options.WithCustomProvider(provider))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := service.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !provider.closed {
		t.Error("provider was not closed")
	}
}

func TestConcurrentEmbeds(t *testing.T) {
	provider := newStubProvider(8)
	service := newTestService(t, provider)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			service.EmbedQuery(ctx, fmt.Sprintf("text %d", n%3))
		}(i)
	}
	wg.Wait()

	stats := service.Stats(ctx)
	if stats.TotalRequests != 10 {
		t.Errorf("TotalRequests = %d, want 10", stats.TotalRequests)
	}
	if stats.CacheSize != 3 {
		t.Errorf("CacheSize = %d, want 3", stats.CacheSize)
	}
}
