// Package similarity provides similarity functions for comparing
// embedding vectors. The embedding service itself performs exact-key
// caching only; these helpers are for downstream consumers ranking the
// vectors it produces.
package similarity

// SimilarityFunc computes similarity between two embedding vectors.
// Higher values indicate greater similarity.
type SimilarityFunc func(a, b []float32) float32
