package ai

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

func TestNewFromEnv_MissingCredentialFallsBack(t *testing.T) {
	t.Setenv("ANALYST_TYPE", "claude")
	t.Setenv("ANTHROPIC_API_KEY", "")

	analyst := NewFromEnv(slog.Default())
	if _, ok := analyst.(*NoOp); !ok {
		t.Fatalf("analyst = %T, want *NoOp when credential missing", analyst)
	}
}

func TestNewFromEnv_Disabled(t *testing.T) {
	t.Setenv("ANALYST_TYPE", "none")

	analyst := NewFromEnv(slog.Default())
	if _, ok := analyst.(*NoOp); !ok {
		t.Fatalf("analyst = %T, want *NoOp", analyst)
	}
}

func TestNewFromEnv_UnknownType(t *testing.T) {
	t.Setenv("ANALYST_TYPE", "gemini")

	analyst := NewFromEnv(slog.Default())
	if _, ok := analyst.(*NoOp); !ok {
		t.Fatalf("analyst = %T, want *NoOp for unknown type", analyst)
	}
}

func TestNoOp_ReportsUnavailable(t *testing.T) {
	n := NewNoOp()

	if _, err := n.ClassifyHeadlines(context.Background(), nil); !errors.Is(err, ErrUnavailable) {
		t.Errorf("ClassifyHeadlines err=%v, want ErrUnavailable", err)
	}
	if _, err := n.SynthesizeSentiment(context.Background(), nil); !errors.Is(err, ErrUnavailable) {
		t.Errorf("SynthesizeSentiment err=%v, want ErrUnavailable", err)
	}
}
