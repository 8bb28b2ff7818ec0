package retry_test

import (
	"context"
	"errors"
	"net/http"
	"syscall"
	"testing"
	"time"

	"marketpulse/internal/resilience/retry"
)

func fastConfig() retry.Config {
	return retry.Config{
		MaxAttempts:    3,
		InitialDelay:   time.Millisecond,
		MaxDelay:       5 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0,
	}
}

func TestWithBackoffSucceedsFirstTry(t *testing.T) {
	calls := 0
	err := retry.WithBackoff(context.Background(), fastConfig(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("WithBackoff() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestWithBackoffRetriesTransientError(t *testing.T) {
	calls := 0
	err := retry.WithBackoff(context.Background(), fastConfig(), func() error {
		calls++
		if calls < 3 {
			return syscall.ECONNRESET
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithBackoff() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestWithBackoffAbortsOnNonRetryable(t *testing.T) {
	calls := 0
	wantErr := errors.New("bad request")
	err := retry.WithBackoff(context.Background(), fastConfig(), func() error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("WithBackoff() error = %v, want %v", err, wantErr)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry for non-retryable error)", calls)
	}
}

func TestWithBackoffExhaustsAttempts(t *testing.T) {
	calls := 0
	err := retry.WithBackoff(context.Background(), fastConfig(), func() error {
		calls++
		return &retry.HTTPError{StatusCode: http.StatusInternalServerError, Message: "boom"}
	})
	if err == nil {
		t.Fatal("WithBackoff() error = nil, want exhaustion error")
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestWithBackoffHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := retry.WithBackoff(ctx, fastConfig(), func() error {
		calls++
		cancel()
		return syscall.ECONNREFUSED
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("WithBackoff() error = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"connection refused", syscall.ECONNREFUSED, true},
		{"http 500", &retry.HTTPError{StatusCode: 500, Message: "server error"}, true},
		{"http 429", &retry.HTTPError{StatusCode: 429, Message: "rate limited"}, true},
		{"http 404", &retry.HTTPError{StatusCode: 404, Message: "not found"}, false},
		{"plain error", errors.New("parse failure"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retry.IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
