package openai

import (
	"testing"

	openai "github.com/openai/openai-go/v2"
)

func TestNewProviderRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := NewProvider(Config{}); err == nil {
		t.Error("Expected error when API key is missing")
	}
}

func TestNewProviderUnknownModel(t *testing.T) {
	if _, err := NewProvider(Config{APIKey: "test-key", Model: "no-such-model"}); err == nil {
		t.Error("Expected error for unknown embedding model")
	}
}

func TestProviderDimensions(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		expected int
	}{
		{
			name:     "text-embedding-3-small",
			model:    string(openai.EmbeddingModelTextEmbedding3Small),
			expected: 1536,
		},
		{
			name:     "text-embedding-3-large",
			model:    string(openai.EmbeddingModelTextEmbedding3Large),
			expected: 3072,
		},
		{
			name:     "text-embedding-ada-002",
			model:    string(openai.EmbeddingModelTextEmbeddingAda002),
			expected: 1536,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(Config{APIKey: "test-key", Model: tt.model})
			if err != nil {
				t.Fatalf("NewProvider failed: %v", err)
			}
			if provider.Dimension() != tt.expected {
				t.Errorf("Dimension() = %d, want %d for model %s", provider.Dimension(), tt.expected, tt.model)
			}
		})
	}
}

func TestNewProviderDefaultModel(t *testing.T) {
	provider, err := NewProvider(Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	if provider.model != string(DefaultModel) {
		t.Errorf("Expected default model %s, got %s", DefaultModel, provider.model)
	}
	if provider.maxTokens != 8191 {
		t.Errorf("Expected default max tokens 8191, got %d", provider.maxTokens)
	}
}
