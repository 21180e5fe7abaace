// Package fallback generates deterministic pseudo-random unit vectors
// from a text's hash. Providers substitute these when a model is
// unavailable or a remote call fails, so callers always receive a
// usable vector of the expected dimension instead of an error.
package fallback

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/rand"

	"github.com/botirk38/vectorize/types"
)

// emptySentinel stands in for empty or whitespace-only input so the
// empty string still maps to a stable non-degenerate vector.
const emptySentinel = "[empty]"

// Generate produces a deterministic unit vector for text. The same
// (text, dimension) pair always yields a bit-identical vector: the
// low 32 bits of the SHA-256 of the normalized text seed a PRNG that
// draws dimension standard-normal samples, which are then
// L2-normalized. A zero-norm result is returned unchanged.
func Generate(text string, dimension int) types.Vector {
	if dimension <= 0 {
		return types.Vector{}
	}

	normalized := types.Normalize(text)
	if normalized == "" {
		normalized = emptySentinel
	}

	sum := sha256.Sum256([]byte(normalized))
	seed := binary.BigEndian.Uint32(sum[len(sum)-4:])
	rng := rand.New(rand.NewSource(int64(seed)))

	vector := make(types.Vector, dimension)
	var sumSquares float64
	for i := range vector {
		sample := rng.NormFloat64()
		vector[i] = float32(sample)
		sumSquares += sample * sample
	}

	norm := math.Sqrt(sumSquares)
	if norm == 0 {
		return vector
	}
	for i := range vector {
		vector[i] = float32(float64(vector[i]) / norm)
	}
	return vector
}
