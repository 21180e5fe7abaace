// Package tokenizer provides local token counting and truncation for
// providers with hard input-token limits. Counting uses tiktoken's
// Cl100kBase encoding and never requires an API call.
package tokenizer

import (
	"github.com/tiktoken-go/tokenizer"
)

// DefaultMaxTokens is the input limit of OpenAI's
// text-embedding-3-small model.
const DefaultMaxTokens = 8191

// CountTokens counts tokens in text using tiktoken Cl100kBase encoding.
func CountTokens(text string) (int, error) {
	enc, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return 0, err
	}

	ids, _, err := enc.Encode(text)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// Truncate returns text cut down to at most maxTokens tokens. Text
// already within the limit is returned unchanged. Truncation happens
// on token boundaries, so the result re-encodes to exactly maxTokens
// tokens or fewer.
func Truncate(text string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		return "", nil
	}

	enc, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return "", err
	}

	ids, _, err := enc.Encode(text)
	if err != nil {
		return "", err
	}
	if len(ids) <= maxTokens {
		return text, nil
	}

	return enc.Decode(ids[:maxTokens])
}
