// Package local wraps an in-process ONNX embedding model as an
// embedding provider. Texts are embedded in bounded batches; a failed
// batch degrades to per-text fallback vectors instead of failing the
// whole call.
package local

import (
	"context"
	"fmt"
	"sync"

	"github.com/botirk38/vectorize/fallback"
	"github.com/botirk38/vectorize/types"
	"go.uber.org/zap"
)

const (
	// DefaultModel matches the original deployment's local model.
	DefaultModel = "sentence-transformers/all-MiniLM-L6-v2"

	// DefaultBatchSize bounds texts per model invocation.
	DefaultBatchSize = 32

	// DefaultMaxLength is the maximum input sequence length.
	DefaultMaxLength = 512
)

// modelDimensions maps supported model names to their embedding
// dimensions. Dimension is fixed at construction and never re-read.
var modelDimensions = map[string]int{
	"sentence-transformers/all-MiniLM-L6-v2": 384,
	"BAAI/bge-small-en-v1.5":                 384,
	"BAAI/bge-small-en":                      384,
	"BAAI/bge-base-en-v1.5":                  768,
	"BAAI/bge-base-en":                       768,
	"BAAI/bge-small-zh-v1.5":                 512,
}

// encoder is the slice of the underlying model the provider uses;
// *fastembed.FlagEmbedding satisfies it.
type encoder interface {
	PassageEmbed(input []string, batchSize int) ([][]float32, error)
	QueryEmbed(input string) ([]float32, error)
	Destroy() error
}

// Config provides configuration options for the local provider.
type Config struct {
	// Model name; DefaultModel when empty.
	Model string

	// CacheDir is the directory for downloaded model files.
	CacheDir string

	// MaxLength is the maximum input sequence length.
	MaxLength int

	// BatchSize bounds texts per model invocation.
	BatchSize int

	Logger *zap.Logger
}

// Provider embeds text with a local model.
type Provider struct {
	modelName string
	dimension int
	batchSize int
	logger    *zap.Logger

	// The model is expensive to construct; it is loaded lazily on
	// first use, guarded so concurrent first calls build it only once.
	initOnce   sync.Once
	initErr    error
	enc        encoder
	newEncoder func() (encoder, error)
}

// NewProvider creates a local embedding provider. The model itself is
// not loaded until the first embedding call (or a service Warmup).
// Unknown model names and builds without model support fail here,
// at construction.
func NewProvider(config Config) (*Provider, error) {
	modelName := config.Model
	if modelName == "" {
		modelName = DefaultModel
	}
	dimension, ok := modelDimensions[modelName]
	if !ok {
		return nil, fmt.Errorf("unsupported local model %q", modelName)
	}
	if err := checkModelRuntime(); err != nil {
		return nil, err
	}

	batchSize := config.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	maxLength := config.MaxLength
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Provider{
		modelName: modelName,
		dimension: dimension,
		batchSize: batchSize,
		logger:    logger,
		newEncoder: func() (encoder, error) {
			return newModelEncoder(modelName, config.CacheDir, maxLength)
		},
	}, nil
}

// init loads the model exactly once; the error is sticky.
func (p *Provider) init() error {
	p.initOnce.Do(func() {
		p.logger.Debug("loading local embedding model", zap.String("model", p.modelName))
		p.enc, p.initErr = p.newEncoder()
		if p.initErr != nil {
			p.logger.Error("loading local embedding model failed", zap.Error(p.initErr))
		}
	})
	return p.initErr
}

// EmbedTexts embeds texts in chunks of at most batchSize, one model
// call per chunk, concatenating results in input order. A failing
// chunk yields fallback vectors for exactly its texts. Empty texts are
// still embedded so output length always matches input length.
func (p *Provider) EmbedTexts(ctx context.Context, texts []string, mode types.Mode) ([]types.Vector, error) {
	normalized := make([]string, len(texts))
	for i, text := range texts {
		normalized[i] = types.Normalize(text)
	}

	if mode == types.ModeQuery {
		return p.embedQueries(normalized), nil
	}

	result := make([]types.Vector, 0, len(texts))
	for start := 0; start < len(normalized); start += p.batchSize {
		end := start + p.batchSize
		if end > len(normalized) {
			end = len(normalized)
		}
		chunk := normalized[start:end]

		embedded, err := p.embedChunk(chunk)
		if err != nil {
			p.logger.Warn("local model batch failed, using fallback vectors",
				zap.Int("chunk_start", start),
				zap.Int("chunk_size", len(chunk)),
				zap.Error(err))
			for _, text := range chunk {
				result = append(result, fallback.Generate(text, p.dimension))
			}
			continue
		}
		result = append(result, embedded...)
	}
	return result, nil
}

func (p *Provider) embedChunk(chunk []string) ([]types.Vector, error) {
	if err := p.init(); err != nil {
		return nil, err
	}
	embedded, err := p.enc.PassageEmbed(chunk, p.batchSize)
	if err != nil {
		return nil, err
	}
	if len(embedded) != len(chunk) {
		return nil, fmt.Errorf("model returned %d vectors for %d texts", len(embedded), len(chunk))
	}
	result := make([]types.Vector, len(embedded))
	for i, v := range embedded {
		result[i] = v
	}
	return result, nil
}

func (p *Provider) embedQueries(normalized []string) []types.Vector {
	result := make([]types.Vector, 0, len(normalized))
	for _, text := range normalized {
		vector, err := p.embedQuery(text)
		if err != nil {
			p.logger.Warn("local model query embed failed, using fallback vector", zap.Error(err))
			result = append(result, fallback.Generate(text, p.dimension))
			continue
		}
		result = append(result, vector)
	}
	return result
}

func (p *Provider) embedQuery(text string) (types.Vector, error) {
	if err := p.init(); err != nil {
		return nil, err
	}
	return p.enc.QueryEmbed(text)
}

// Dimension returns the model's embedding dimension.
func (p *Provider) Dimension() int {
	return p.dimension
}

// Close releases the underlying model.
func (p *Provider) Close() error {
	if p.enc != nil {
		return p.enc.Destroy()
	}
	return nil
}
