package gemini

import (
	"context"
	"testing"
)

func TestNewProviderRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	if _, err := NewProvider(context.Background(), Config{}); err == nil {
		t.Error("Expected error when API key is missing")
	}
}

func TestNewProviderUnknownModel(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{APIKey: "test-key", Model: "no-such-model"}); err == nil {
		t.Error("Expected error for unknown embedding model")
	}
}

func TestProviderDimension(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	if provider.Dimension() != 768 {
		t.Errorf("Expected dimension 768, got %d", provider.Dimension())
	}
}
