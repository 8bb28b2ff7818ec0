package ai

import (
	"log/slog"
	"os"
)

// NewFromEnv creates an analyst based on the ANALYST_TYPE environment
// variable ("claude", "openai" or "none"; default "claude").
//
// A missing API key is not fatal: the pipeline must keep serving degraded
// results without credentials, so the factory falls back to the no-op
// analyst with a warning instead of exiting.
func NewFromEnv(logger *slog.Logger) Analyst {
	analystType := os.Getenv("ANALYST_TYPE")
	if analystType == "" {
		analystType = "claude"
	}

	switch analystType {
	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			logger.Warn("ANTHROPIC_API_KEY not set, sentiment analysis disabled",
				slog.String("type", analystType))
			return NewNoOp()
		}
		logger.Info("Using Claude API for market analysis", slog.String("type", analystType))
		return NewClaudeAnalyst(apiKey)
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			logger.Warn("OPENAI_API_KEY not set, sentiment analysis disabled",
				slog.String("type", analystType))
			return NewNoOp()
		}
		logger.Info("Using OpenAI API for market analysis", slog.String("type", analystType))
		return NewOpenAIAnalyst(apiKey)
	case "none":
		logger.Info("Sentiment analysis disabled", slog.String("type", analystType))
		return NewNoOp()
	default:
		logger.Warn("Unknown ANALYST_TYPE, sentiment analysis disabled",
			slog.String("type", analystType))
		return NewNoOp()
	}
}
