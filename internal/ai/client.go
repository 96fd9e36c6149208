// Package ai talks to the Anthropic API for everything generative in the
// app: the dashboard health summary, the multi-turn assistant chat, and the
// per-metric report interpretations. It also owns the prompt builders and
// the separator-based summary/alerts stream protocol.
package ai

import (
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

const (
	// ModelDefault is the model used for summaries and chat
	ModelDefault = "claude-sonnet-4-5-20250929"

	// ModelLight is the cheaper model used for report interpretations,
	// which are short and formulaic
	ModelLight = "claude-3-5-haiku-20241022"
)

// GetDefaultModel returns the summary/chat model, checking HEALTHSENSE_MODEL first
func GetDefaultModel() string {
	if model := os.Getenv("HEALTHSENSE_MODEL"); model != "" {
		return model
	}
	return ModelDefault
}

// GetLightModel returns the report-interpretation model, checking HEALTHSENSE_MODEL_LIGHT first
func GetLightModel() string {
	if model := os.Getenv("HEALTHSENSE_MODEL_LIGHT"); model != "" {
		return model
	}
	return ModelLight
}

// Client wraps the Anthropic API with retry, circuit breaking, and
// concurrency/rate limits shared by all AI-consuming screens.
type Client struct {
	client         *anthropic.Client
	model          string
	lightModel     string
	retry          RetryConfig
	circuitBreaker *CircuitBreaker
	concurrencySem *semaphore.Weighted
	limiter        *rate.Limiter
}

// Config holds client configuration
type Config struct {
	APIKey     string      // Anthropic API key (if empty, reads from ANTHROPIC_API_KEY env var)
	Model      string      // Model for summaries and chat (default: claude-sonnet-4-5)
	LightModel string      // Model for report interpretations (default: haiku)
	Retry      RetryConfig // Retry configuration (uses defaults if not specified)

	// RefreshLimit throttles summary regeneration (calls per second) so
	// repeated dashboard renders don't hammer the API. Zero disables
	// throttling.
	RefreshLimit rate.Limit
}

// NewClient creates a new AI client
func NewClient(cfg *Config) (*Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
	}

	model := cfg.Model
	if model == "" {
		model = GetDefaultModel()
	}
	lightModel := cfg.LightModel
	if lightModel == "" {
		lightModel = GetLightModel()
	}

	retry := cfg.Retry
	if retry.MaxRetries == 0 {
		retry = DefaultRetryConfig()
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	var circuitBreaker *CircuitBreaker
	if retry.CircuitBreakerEnabled {
		circuitBreaker = NewCircuitBreaker(retry.FailureThreshold, retry.SuccessThreshold, retry.OpenTimeout)
	}

	var concurrencySem *semaphore.Weighted
	if retry.MaxConcurrentCalls > 0 {
		concurrencySem = semaphore.NewWeighted(int64(retry.MaxConcurrentCalls))
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RefreshLimit > 0 {
		limiter = rate.NewLimiter(cfg.RefreshLimit, 1)
	}

	return &Client{
		client:         &client,
		model:          model,
		lightModel:     lightModel,
		retry:          retry,
		circuitBreaker: circuitBreaker,
		concurrencySem: concurrencySem,
		limiter:        limiter,
	}, nil
}
