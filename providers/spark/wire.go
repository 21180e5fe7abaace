package spark

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/botirk38/vectorize/types"
	"github.com/botirk38/vectorize/vectors"
)

// Provider-reported status codes.
const (
	codeSuccess     = 0
	codeRateLimited = 11202
)

// requestEnvelope is the provider's JSON request body. The text itself
// travels base64-encoded inside payload.messages.text.
type requestEnvelope struct {
	Header    requestHeader    `json:"header"`
	Parameter requestParameter `json:"parameter"`
	Payload   requestPayload   `json:"payload"`
}

type requestHeader struct {
	AppID  string `json:"app_id"`
	UID    string `json:"uid"`
	Status int    `json:"status"`
}

type requestParameter struct {
	Emb embParameter `json:"emb"`
}

type embParameter struct {
	Domain  string     `json:"domain"`
	Feature embFeature `json:"feature"`
}

type embFeature struct {
	Encoding string `json:"encoding"`
}

type requestPayload struct {
	Messages requestMessages `json:"messages"`
}

type requestMessages struct {
	Text string `json:"text"`
}

type message struct {
	Content string `json:"content"`
	Role    string `json:"role"`
}

// responseEnvelope is the provider's JSON response body. On success
// payload.feature.text holds the vector as a base64-encoded buffer of
// little-endian float32 values.
type responseEnvelope struct {
	Header struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"header"`
	Payload struct {
		Feature struct {
			Text string `json:"text"`
		} `json:"feature"`
	} `json:"payload"`
}

// buildEnvelope assembles the request body for one text in the given
// wire-level domain ("query" or "para").
func buildEnvelope(appID, uid, text, domain string) (requestEnvelope, error) {
	messages, err := json.Marshal(struct {
		Messages []message `json:"messages"`
	}{
		Messages: []message{{Content: text, Role: "user"}},
	})
	if err != nil {
		return requestEnvelope{}, fmt.Errorf("encoding messages: %w", err)
	}

	return requestEnvelope{
		Header: requestHeader{
			AppID:  appID,
			UID:    uid,
			Status: 3,
		},
		Parameter: requestParameter{
			Emb: embParameter{
				Domain:  domain,
				Feature: embFeature{Encoding: "utf8"},
			},
		},
		Payload: requestPayload{
			Messages: requestMessages{
				Text: base64.StdEncoding.EncodeToString(messages),
			},
		},
	}, nil
}

// decodeVector extracts the embedding vector from a successful
// response.
func decodeVector(resp responseEnvelope) (types.Vector, error) {
	raw, err := base64.StdEncoding.DecodeString(resp.Payload.Feature.Text)
	if err != nil {
		return nil, fmt.Errorf("decoding feature payload: %w", err)
	}

	vector, err := vectors.FromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding feature payload: %w", err)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("provider returned empty vector")
	}
	return vector, nil
}
