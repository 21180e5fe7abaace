package options

import (
	"context"
	"testing"

	"github.com/botirk38/vectorize/providers/spark"
	"github.com/botirk38/vectorize/types"
	"go.uber.org/zap"
)

// Mock provider for testing
type mockProvider struct{}

func (m *mockProvider) EmbedTexts(ctx context.Context, texts []string, mode types.Mode) ([]types.Vector, error) {
	result := make([]types.Vector, len(texts))
	for i := range texts {
		result[i] = types.Vector{0.1, 0.2, 0.3}
	}
	return result, nil
}

func (m *mockProvider) Dimension() int { return 3 }

func (m *mockProvider) Close() error { return nil }

func TestConfigCreation(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		cfg := NewConfig()
		if cfg.Logger == nil {
			t.Error("Expected default logger to be set")
		}
		if cfg.CacheSize != 1000 {
			t.Errorf("Expected default cache size 1000, got %d", cfg.CacheSize)
		}
		if cfg.Backend != nil {
			t.Error("Expected backend to be nil initially")
		}
		if cfg.Provider != nil {
			t.Error("Expected provider to be nil initially")
		}
	})

	t.Run("Validation", func(t *testing.T) {
		cfg := NewConfig()

		// Should fail without a provider
		if err := cfg.Validate(); err == nil {
			t.Error("Expected validation error for missing provider")
		}

		if err := cfg.Apply(WithCustomProvider(&mockProvider{})); err != nil {
			t.Fatalf("Failed to apply provider option: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Expected valid config, got %v", err)
		}
	})
}

func TestCacheOptions(t *testing.T) {
	t.Run("FIFOCache", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithFIFOCache(10)); err != nil {
			t.Fatalf("Failed to apply FIFO option: %v", err)
		}
		if cfg.Backend == nil {
			t.Error("Expected backend to be set")
		}
	})

	t.Run("LRUCache", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithLRUCache(10)); err != nil {
			t.Fatalf("Failed to apply LRU option: %v", err)
		}
		if cfg.Backend == nil {
			t.Error("Expected backend to be set")
		}
	})

	t.Run("InvalidCacheSize", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithCacheSize(0)); err == nil {
			t.Error("Expected error for non-positive cache size")
		}
	})
}

func TestCustomOptions(t *testing.T) {
	t.Run("NilBackend", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithCustomBackend(nil)); err == nil {
			t.Error("Expected error for nil backend")
		}
	})

	t.Run("NilProvider", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithCustomProvider(nil)); err == nil {
			t.Error("Expected error for nil provider")
		}
	})

	t.Run("NilLogger", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithLogger(nil)); err == nil {
			t.Error("Expected error for nil logger")
		}
	})

	t.Run("Logger", func(t *testing.T) {
		cfg := NewConfig()
		logger := zap.NewExample()
		if err := cfg.Apply(WithLogger(logger)); err != nil {
			t.Fatalf("Failed to apply logger option: %v", err)
		}
		if cfg.Logger != logger {
			t.Error("Expected configured logger to be set")
		}
	})
}

func TestProviderOptionErrors(t *testing.T) {
	t.Setenv("SPARK_APP_ID", "")
	t.Setenv("SPARK_API_KEY", "")
	t.Setenv("SPARK_API_SECRET", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg := NewConfig()
	if err := cfg.Apply(WithSparkProvider(spark.Config{})); err == nil {
		t.Error("Expected error for spark provider without credentials")
	}
}
