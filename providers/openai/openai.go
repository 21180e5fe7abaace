// Package openai implements an embedding provider backed by OpenAI's
// embeddings API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"os"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/botirk38/vectorize/tokenizer"
	"github.com/botirk38/vectorize/types"
)

const DefaultModel = openai.EmbeddingModelTextEmbedding3Small

// modelDimensions maps embedding models to their output dimensions.
var modelDimensions = map[string]int{
	string(openai.EmbeddingModelTextEmbedding3Small): 1536,
	string(openai.EmbeddingModelTextEmbedding3Large): 3072,
	string(openai.EmbeddingModelTextEmbeddingAda002): 1536,
}

// Config provides configuration options for the OpenAI provider.
type Config struct {
	APIKey  string
	BaseURL string
	OrgID   string
	Model   string

	// MaxTokens bounds each input; longer texts are truncated locally
	// before the request. Defaults to the model's documented limit.
	MaxTokens int
}

// Provider uses OpenAI's API to embed text.
type Provider struct {
	client    *openai.Client
	model     string
	dimension int
	maxTokens int
}

// NewProvider creates an embedding provider for OpenAI. If the API key
// is empty, it uses os.Getenv("OPENAI_API_KEY").
func NewProvider(config Config) (*Provider, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, errors.New("OpenAI API key is required")
		}
	}

	model := config.Model
	if model == "" {
		model = DefaultModel
	}
	dimension, ok := modelDimensions[model]
	if !ok {
		return nil, fmt.Errorf("unsupported OpenAI embedding model %q", model)
	}

	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = tokenizer.DefaultMaxTokens
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}
	if config.OrgID != "" {
		opts = append(opts, option.WithOrganization(config.OrgID))
	}

	client := openai.NewClient(opts...)
	return &Provider{
		client:    &client,
		model:     model,
		dimension: dimension,
		maxTokens: maxTokens,
	}, nil
}

// EmbedTexts sends one batched embedding request for all texts. The
// mode tag is ignored; OpenAI does not distinguish query and document
// embeddings.
func (p *Provider) EmbedTexts(ctx context.Context, texts []string, _ types.Mode) ([]types.Vector, error) {
	inputs := make([]string, len(texts))
	for i, text := range texts {
		normalized := types.Normalize(text)
		if normalized == "" {
			// The API rejects empty strings
			normalized = " "
		}
		truncated, err := tokenizer.Truncate(normalized, p.maxTokens)
		if err != nil {
			return nil, fmt.Errorf("truncating input %d: %w", i, err)
		}
		inputs[i] = truncated
	}

	resp, err := p.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(p.model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: inputs,
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) != len(inputs) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(inputs), len(resp.Data))
	}

	result := make([]types.Vector, len(resp.Data))
	for i, item := range resp.Data {
		// OpenAI returns []float64; convert to []float32
		vector := make(types.Vector, len(item.Embedding))
		for j, v := range item.Embedding {
			vector[j] = float32(v)
		}
		result[i] = vector
	}
	return result, nil
}

// Dimension returns the model's embedding dimension.
func (p *Provider) Dimension() int {
	return p.dimension
}

// Close frees resources held by the provider (no-op for HTTP).
func (p *Provider) Close() error {
	return nil
}
