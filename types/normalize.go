package types

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Normalize canonicalizes input text before hashing or embedding:
// leading/trailing whitespace is trimmed and internal whitespace runs
// collapse to single spaces. Whitespace-only text normalizes to "".
// Cache keys and provider preprocessing must use the same normalization
// so a cached vector is found again regardless of incidental spacing.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Hash derives the cache key for normalized text: hex-encoded SHA-256
// of its UTF-8 bytes. Hashing bounds key memory for long inputs.
func Hash(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
