// Package spark implements the remote embedding provider for the
// iFlytek Spark embedding API: HMAC-signed requests, bounded
// retry/backoff with rate-limit detection, and deterministic fallback
// vectors once retries are exhausted. Callers always receive a usable
// vector from this provider, never an error.
package spark

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/botirk38/vectorize/fallback"
	"github.com/botirk38/vectorize/types"
	"go.uber.org/zap"
)

const (
	// DefaultEndpoint is the Spark embedding API endpoint.
	DefaultEndpoint = "https://emb-cn-huabei-1.xf-yun.com/"

	// DefaultDimension is the fallback vector dimension for this
	// provider. The service validates it against its own at startup.
	DefaultDimension = 512

	// DefaultMaxRetries bounds attempts per text.
	DefaultMaxRetries = 3

	// DefaultBaseDelay is the exponential backoff base: retry n sleeps
	// baseDelay * 2^n.
	DefaultBaseDelay = time.Second

	// firstCallPacing is slept before the first attempt of every call
	// to stay under the provider's rate limit regardless of retries.
	firstCallPacing = 500 * time.Millisecond

	// interCallPacing is slept between texts of a batch after the
	// first; the free tier allows at most two calls per second.
	interCallPacing = 600 * time.Millisecond

	// uid is the per-call user identifier the envelope requires.
	uid = "39769795890"
)

// outcome drives the retry loop explicitly: a retryable attempt keeps
// looping, a fatal one aborts straight to fallback.
type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeRetryable
	outcomeFatal
)

// Config provides configuration options for the Spark provider.
type Config struct {
	AppID     string
	APIKey    string
	APISecret string

	// Endpoint overrides DefaultEndpoint (used by tests).
	Endpoint string

	// Dimension of fallback vectors; DefaultDimension when zero.
	Dimension int

	MaxRetries int
	BaseDelay  time.Duration

	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Provider calls the Spark embedding API.
type Provider struct {
	appID      string
	apiKey     string
	apiSecret  string
	endpoint   string
	dimension  int
	maxRetries int
	baseDelay  time.Duration

	client *http.Client
	logger *zap.Logger

	// sleep is swapped out in tests to observe pacing without waiting.
	sleep func(time.Duration)
	now   func() time.Time
}

// NewProvider creates a Spark embedding provider. Missing credentials
// fall back to the SPARK_APP_ID, SPARK_API_KEY and SPARK_API_SECRET
// environment variables.
func NewProvider(config Config) (*Provider, error) {
	appID := config.AppID
	if appID == "" {
		appID = os.Getenv("SPARK_APP_ID")
	}
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("SPARK_API_KEY")
	}
	apiSecret := config.APISecret
	if apiSecret == "" {
		apiSecret = os.Getenv("SPARK_API_SECRET")
	}
	if appID == "" || apiKey == "" || apiSecret == "" {
		return nil, errors.New("spark credentials are required (app ID, API key, API secret)")
	}

	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	dimension := config.Dimension
	if dimension == 0 {
		dimension = DefaultDimension
	}
	maxRetries := config.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	baseDelay := config.BaseDelay
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}
	client := config.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Provider{
		appID:      appID,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		endpoint:   endpoint,
		dimension:  dimension,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		client:     client,
		logger:     logger,
		sleep:      time.Sleep,
		now:        time.Now,
	}, nil
}

// domainFor maps the service-level mode onto the provider's wire-level
// domain tag.
func domainFor(mode types.Mode) string {
	if mode == types.ModeDocument {
		return "para"
	}
	return "query"
}

// EmbedText embeds a single text. Attempts are bounded by maxRetries
// with exponential backoff between them; rate-limit codes and transport
// failures retry, any other provider error aborts immediately. Both
// exhaustion and abort degrade to a deterministic fallback vector.
func (p *Provider) EmbedText(ctx context.Context, text string, mode types.Mode) types.Vector {
	domain := domainFor(mode)

	for attempt := 0; attempt < p.maxRetries; attempt++ {
		if attempt == 0 {
			p.sleep(firstCallPacing)
		} else {
			delay := p.baseDelay * (1 << attempt)
			p.logger.Debug("retrying spark embedding",
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay))
			p.sleep(delay)
		}

		vector, result := p.attempt(ctx, text, domain)
		switch result {
		case outcomeSuccess:
			return vector
		case outcomeFatal:
			p.logger.Warn("spark embedding failed hard, using fallback vector")
			return fallback.Generate(text, p.dimension)
		}
	}

	p.logger.Warn("spark embedding retries exhausted, using fallback vector",
		zap.Int("max_retries", p.maxRetries))
	return fallback.Generate(text, p.dimension)
}

// attempt issues one signed request and classifies the result.
func (p *Provider) attempt(ctx context.Context, text, domain string) (types.Vector, outcome) {
	date := p.now().UTC().Format(http.TimeFormat)
	authURL, err := assembleAuthURL(p.endpoint, p.apiKey, p.apiSecret, date)
	if err != nil {
		p.logger.Error("building auth URL failed", zap.Error(err))
		return nil, outcomeFatal
	}

	envelope, err := buildEnvelope(p.appID, uid, text, domain)
	if err != nil {
		p.logger.Error("building request envelope failed", zap.Error(err))
		return nil, outcomeFatal
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		p.logger.Error("encoding request envelope failed", zap.Error(err))
		return nil, outcomeFatal
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, authURL, bytes.NewReader(body))
	if err != nil {
		return nil, outcomeFatal
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		// Network failures retry like rate limits
		p.logger.Warn("spark request failed", zap.Error(err))
		return nil, outcomeRetryable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.logger.Warn("spark request rejected", zap.Int("status", resp.StatusCode))
		return nil, outcomeRetryable
	}

	var decoded responseEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		p.logger.Warn("decoding spark response failed", zap.Error(err))
		return nil, outcomeRetryable
	}

	switch decoded.Header.Code {
	case codeSuccess:
		vector, err := decodeVector(decoded)
		if err != nil {
			p.logger.Warn("decoding spark vector failed", zap.Error(err))
			return nil, outcomeRetryable
		}
		p.logger.Debug("spark embedding succeeded", zap.Int("dimension", len(vector)))
		return vector, outcomeSuccess
	case codeRateLimited:
		p.logger.Warn("spark rate limit hit", zap.Int("code", decoded.Header.Code))
		return nil, outcomeRetryable
	default:
		p.logger.Error("spark provider error",
			zap.Int("code", decoded.Header.Code),
			zap.String("message", decoded.Header.Message))
		return nil, outcomeFatal
	}
}

// EmbedTexts embeds texts one at a time with a pacing delay between
// calls; the provider's rate limit, not local compute, is the
// bottleneck, so the batch is sequential by design.
func (p *Provider) EmbedTexts(ctx context.Context, texts []string, mode types.Mode) ([]types.Vector, error) {
	result := make([]types.Vector, 0, len(texts))
	for i, text := range texts {
		if i > 0 {
			p.sleep(interCallPacing)
		}
		result = append(result, p.EmbedText(ctx, text, mode))
	}
	return result, nil
}

// Dimension returns the fallback vector dimension for this provider.
func (p *Provider) Dimension() int {
	return p.dimension
}

// Close frees resources held by the provider (no-op for HTTP).
func (p *Provider) Close() error {
	return nil
}
