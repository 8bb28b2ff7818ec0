package logging_test

import (
	"context"
	"log/slog"
	"testing"

	"marketpulse/internal/observability/logging"
)

func TestNewLoggerReturnsUsableLogger(t *testing.T) {
	logger := logging.NewLogger()
	if logger == nil {
		t.Fatal("NewLogger() = nil")
	}
	// Must not panic.
	logger.Info("test message", slog.String("key", "value"))
}

func TestDebugLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	logger := logging.NewLogger()
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug level not enabled with LOG_LEVEL=debug")
	}
}

func TestInfoLevelByDefault(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	logger := logging.NewLogger()
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug level enabled without LOG_LEVEL=debug")
	}
	if !logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info level not enabled by default")
	}
}

func TestLoggerContextRoundTrip(t *testing.T) {
	logger := logging.NewTextLogger()
	ctx := logging.WithLogger(context.Background(), logger)
	if got := logging.FromContext(ctx); got != logger {
		t.Error("FromContext did not return the logger stored with WithLogger")
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	if got := logging.FromContext(context.Background()); got == nil {
		t.Error("FromContext(empty) = nil, want default logger")
	}
}
