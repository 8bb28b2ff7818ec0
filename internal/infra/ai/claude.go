package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"marketpulse/internal/observability/metrics"
	"marketpulse/internal/resilience/circuitbreaker"
	"marketpulse/internal/resilience/retry"
	pkgconfig "marketpulse/pkg/config"
)

// ClaudeConfig holds configuration parameters for the Claude analyst.
type ClaudeConfig struct {
	// Model is the Claude API model identifier.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	MaxTokens int

	// Timeout is the maximum duration for a single analysis API call.
	Timeout time.Duration

	// RequestsPerMinute paces outgoing API calls.
	RequestsPerMinute int
}

// LoadClaudeConfig loads configuration from environment variables.
//
// Environment variables:
//   - CLAUDE_MODEL: model identifier (default: claude-sonnet-4-5)
//   - AI_MAX_TOKENS: response token cap (default: 1024)
//   - AI_TIMEOUT: per-call timeout (default: 60s)
//   - AI_REQUESTS_PER_MINUTE: request pacing (default: 20)
func LoadClaudeConfig() ClaudeConfig {
	return ClaudeConfig{
		Model:             pkgconfig.GetEnvString("CLAUDE_MODEL", string(anthropic.ModelClaudeSonnet4_5_20250929)),
		MaxTokens:         pkgconfig.GetEnvInt("AI_MAX_TOKENS", 1024),
		Timeout:           pkgconfig.GetEnvDuration("AI_TIMEOUT", 60*time.Second),
		RequestsPerMinute: pkgconfig.GetEnvInt("AI_REQUESTS_PER_MINUTE", 20),
	}
}

// ClaudeAnalyst implements the Analyst interface using Anthropic's Claude
// API. It includes circuit breaker, retry logic and request pacing.
type ClaudeAnalyst struct {
	client         anthropic.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	limiter        *rate.Limiter
	config         ClaudeConfig
}

// NewClaudeAnalyst creates a Claude analyst with the given API key.
func NewClaudeAnalyst(apiKey string) *ClaudeAnalyst {
	config := LoadClaudeConfig()

	slog.Info("Initialized Claude analyst",
		slog.String("model", config.Model),
		slog.Int("requests_per_minute", config.RequestsPerMinute))

	return &ClaudeAnalyst{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker: circuitbreaker.New(circuitbreaker.AIAPIConfig("claude-api")),
		retryConfig:    retry.AIAPIConfig(),
		limiter:        rate.NewLimiter(rate.Every(time.Minute/time.Duration(config.RequestsPerMinute)), 1),
		config:         config,
	}
}

// ClassifyHeadlines implements Analyst.
func (c *ClaudeAnalyst) ClassifyHeadlines(ctx context.Context, headlines []Headline) ([]Classification, error) {
	raw, err := c.complete(ctx, "classify", buildClassificationPrompt(headlines))
	if err != nil {
		return nil, err
	}
	return decodeClassifications(raw)
}

// SynthesizeSentiment implements Analyst.
func (c *ClaudeAnalyst) SynthesizeSentiment(ctx context.Context, headlines []string) (*Verdict, error) {
	raw, err := c.complete(ctx, "synthesize", buildSynthesisPrompt(headlines))
	if err != nil {
		return nil, err
	}
	return decodeVerdict(raw)
}

func (c *ClaudeAnalyst) complete(ctx context.Context, operation, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("claude rate limit wait: %w", err)
	}

	var result string

	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doComplete(ctx, operation, prompt)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("claude api circuit breaker open, request rejected",
					slog.String("service", "claude-api"),
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("claude api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})
	if retryErr != nil {
		return "", fmt.Errorf("claude %s failed after retries: %w", operation, retryErr)
	}

	return result, nil
}

// doComplete performs the actual API call without retry or circuit breaker.
func (c *ClaudeAnalyst) doComplete(ctx context.Context, operation, prompt string) (string, error) {
	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})

	duration := time.Since(start)
	metrics.RecordAIRequest(operation, duration, err)

	if err != nil {
		slog.ErrorContext(ctx, "claude api call failed",
			slog.String("operation", operation),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		return "", fmt.Errorf("claude api returned empty response")
	}

	slog.InfoContext(ctx, "claude api call completed",
		slog.String("operation", operation),
		slog.Duration("duration", duration))

	return message.Content[0].Text, nil
}
