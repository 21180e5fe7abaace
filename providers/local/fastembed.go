//go:build cgo

package local

import (
	"fmt"
	"path/filepath"

	fastembed "github.com/anush008/fastembed-go"
)

// modelMapping maps supported model names to fastembed model
// constants. Keep in sync with modelDimensions.
var modelMapping = map[string]fastembed.EmbeddingModel{
	"sentence-transformers/all-MiniLM-L6-v2": fastembed.AllMiniLML6V2,
	"BAAI/bge-small-en-v1.5":                 fastembed.BGESmallENV15,
	"BAAI/bge-small-en":                      fastembed.BGESmallEN,
	"BAAI/bge-base-en-v1.5":                  fastembed.BGEBaseENV15,
	"BAAI/bge-base-en":                       fastembed.BGEBaseEN,
	"BAAI/bge-small-zh-v1.5":                 fastembed.BGESmallZH,
}

func checkModelRuntime() error {
	return nil
}

// newModelEncoder loads the ONNX model through fastembed.
func newModelEncoder(modelName, cacheDir string, maxLength int) (encoder, error) {
	model, ok := modelMapping[modelName]
	if !ok {
		return nil, fmt.Errorf("unsupported local model %q", modelName)
	}

	if cacheDir == "" {
		cacheDir = filepath.Join(".", "local_cache")
	}

	// No progress bars outside interactive use
	showProgress := false

	flagEmbed, err := fastembed.NewFlagEmbedding(&fastembed.InitOptions{
		Model:                model,
		CacheDir:             cacheDir,
		MaxLength:            maxLength,
		ShowDownloadProgress: &showProgress,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing local model: %w", err)
	}
	return flagEmbed, nil
}
