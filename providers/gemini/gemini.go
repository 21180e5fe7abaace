// Package gemini implements an embedding provider backed by Google's
// Gemini embedding API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/botirk38/vectorize/types"
)

const DefaultModel = "text-embedding-004"

// modelDimensions maps embedding models to their output dimensions.
var modelDimensions = map[string]int{
	"text-embedding-004": 768,
	"embedding-001":      768,
}

// Config provides configuration options for the Gemini provider.
type Config struct {
	APIKey string
	Model  string
}

// Provider uses Google's Gemini API to embed text.
type Provider struct {
	client    *genai.Client
	model     string
	dimension int
}

// NewProvider creates an embedding provider for Gemini. If the API key
// is empty, it uses os.Getenv("GEMINI_API_KEY").
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, errors.New("Gemini API key is required")
		}
	}

	model := config.Model
	if model == "" {
		model = DefaultModel
	}
	dimension, ok := modelDimensions[model]
	if !ok {
		return nil, fmt.Errorf("unsupported Gemini embedding model %q", model)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	return &Provider{
		client:    client,
		model:     model,
		dimension: dimension,
	}, nil
}

// EmbedTexts sends one batched embedding request for all texts. The
// mode tag is ignored.
func (p *Provider) EmbedTexts(ctx context.Context, texts []string, _ types.Mode) ([]types.Vector, error) {
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		normalized := types.Normalize(text)
		if normalized == "" {
			normalized = " "
		}
		contents[i] = genai.NewContentFromText(normalized, genai.RoleUser)
	}

	resp, err := p.client.Models.EmbedContent(ctx, p.model, contents, nil)
	if err != nil {
		return nil, err
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
	}

	result := make([]types.Vector, len(resp.Embeddings))
	for i, embedding := range resp.Embeddings {
		result[i] = embedding.Values
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
