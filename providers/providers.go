// Package providers exposes constructors for the embedding providers
// behind the types.EmbeddingProvider interface. The provider is a
// closed set selected once at service construction, never per call.
package providers

import (
	"context"

	"github.com/botirk38/vectorize/providers/gemini"
	"github.com/botirk38/vectorize/providers/local"
	"github.com/botirk38/vectorize/providers/openai"
	"github.com/botirk38/vectorize/providers/spark"
	"github.com/botirk38/vectorize/types"
)

// NewSparkProvider creates a new Spark remote provider.
func NewSparkProvider(config spark.Config) (types.EmbeddingProvider, error) {
	return spark.NewProvider(config)
}

// NewLocalProvider creates a new local model provider.
func NewLocalProvider(config local.Config) (types.EmbeddingProvider, error) {
	return local.NewProvider(config)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(config openai.Config) (types.EmbeddingProvider, error) {
	return openai.NewProvider(config)
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, config gemini.Config) (types.EmbeddingProvider, error) {
	return gemini.NewProvider(ctx, config)
}
