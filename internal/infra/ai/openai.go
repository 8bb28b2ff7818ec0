package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"marketpulse/internal/observability/metrics"
	"marketpulse/internal/resilience/circuitbreaker"
	"marketpulse/internal/resilience/retry"
	pkgconfig "marketpulse/pkg/config"
)

// OpenAIConfig holds configuration parameters for the OpenAI analyst.
// Configuration is loaded from environment variables with fallback to
// defaults.
type OpenAIConfig struct {
	// Model is the OpenAI API model identifier.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	MaxTokens int

	// Timeout is the maximum duration for a single analysis API call.
	Timeout time.Duration

	// RequestsPerMinute paces outgoing API calls.
	RequestsPerMinute int
}

// LoadOpenAIConfig loads configuration from environment variables.
//
// Environment variables:
//   - OPENAI_MODEL: model identifier (default: gpt-4o-mini)
//   - AI_MAX_TOKENS: response token cap (default: 1024)
//   - AI_TIMEOUT: per-call timeout (default: 60s)
//   - AI_REQUESTS_PER_MINUTE: request pacing (default: 20)
func LoadOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		Model:             pkgconfig.GetEnvString("OPENAI_MODEL", openai.GPT4oMini),
		MaxTokens:         pkgconfig.GetEnvInt("AI_MAX_TOKENS", 1024),
		Timeout:           pkgconfig.GetEnvDuration("AI_TIMEOUT", 60*time.Second),
		RequestsPerMinute: pkgconfig.GetEnvInt("AI_REQUESTS_PER_MINUTE", 20),
	}
}

// OpenAIAnalyst implements the Analyst interface using OpenAI's chat API.
// It includes circuit breaker, retry logic and request pacing.
type OpenAIAnalyst struct {
	client         *openai.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	limiter        *rate.Limiter
	config         OpenAIConfig
}

// NewOpenAIAnalyst creates an OpenAI analyst with the given API key.
func NewOpenAIAnalyst(apiKey string) *OpenAIAnalyst {
	config := LoadOpenAIConfig()

	slog.Info("Initialized OpenAI analyst",
		slog.String("model", config.Model),
		slog.Int("requests_per_minute", config.RequestsPerMinute))

	return &OpenAIAnalyst{
		client:         openai.NewClient(apiKey),
		circuitBreaker: circuitbreaker.New(circuitbreaker.AIAPIConfig("openai-api")),
		retryConfig:    retry.AIAPIConfig(),
		limiter:        rate.NewLimiter(rate.Every(time.Minute/time.Duration(config.RequestsPerMinute)), 1),
		config:         config,
	}
}

// ClassifyHeadlines implements Analyst.
func (o *OpenAIAnalyst) ClassifyHeadlines(ctx context.Context, headlines []Headline) ([]Classification, error) {
	raw, err := o.complete(ctx, "classify", buildClassificationPrompt(headlines))
	if err != nil {
		return nil, err
	}
	return decodeClassifications(raw)
}

// SynthesizeSentiment implements Analyst.
func (o *OpenAIAnalyst) SynthesizeSentiment(ctx context.Context, headlines []string) (*Verdict, error) {
	raw, err := o.complete(ctx, "synthesize", buildSynthesisPrompt(headlines))
	if err != nil {
		return nil, err
	}
	return decodeVerdict(raw)
}

// complete issues one chat completion with pacing, retry and circuit
// breaking, and returns the raw model text.
func (o *OpenAIAnalyst) complete(ctx context.Context, operation, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	if err := o.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("openai rate limit wait: %w", err)
	}

	var result string

	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doComplete(ctx, operation, prompt)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("openai api circuit breaker open, request rejected",
					slog.String("service", "openai-api"),
					slog.String("state", o.circuitBreaker.State().String()))
				return fmt.Errorf("openai api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})
	if retryErr != nil {
		return "", fmt.Errorf("openai %s failed after retries: %w", operation, retryErr)
	}

	return result, nil
}

// doComplete performs the actual API call without retry or circuit breaker.
func (o *OpenAIAnalyst) doComplete(ctx context.Context, operation, prompt string) (string, error) {
	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.config.Model,
		MaxTokens: o.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	})

	duration := time.Since(start)
	metrics.RecordAIRequest(operation, duration, err)

	if err != nil {
		slog.ErrorContext(ctx, "openai api call failed",
			slog.String("operation", operation),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api returned empty response")
	}

	slog.InfoContext(ctx, "openai api call completed",
		slog.String("operation", operation),
		slog.Duration("duration", duration))

	return resp.Choices[0].Message.Content, nil
}
