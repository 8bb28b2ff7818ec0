package config_test

import (
	"testing"
	"time"

	"marketpulse/pkg/config"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	if got := config.GetEnvString("TEST_STR", "fallback"); got != "value" {
		t.Errorf("GetEnvString = %q, want %q", got, "value")
	}
	if got := config.GetEnvString("TEST_STR_UNSET", "fallback"); got != "fallback" {
		t.Errorf("GetEnvString = %q, want %q", got, "fallback")
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	if got := config.GetEnvInt("TEST_INT", 7); got != 42 {
		t.Errorf("GetEnvInt = %d, want 42", got)
	}

	t.Setenv("TEST_INT_BAD", "not-a-number")
	if got := config.GetEnvInt("TEST_INT_BAD", 7); got != 7 {
		t.Errorf("GetEnvInt with invalid value = %d, want 7", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	if got := config.GetEnvBool("TEST_BOOL", false); !got {
		t.Error("GetEnvBool = false, want true")
	}

	t.Setenv("TEST_BOOL_BAD", "yep")
	if got := config.GetEnvBool("TEST_BOOL_BAD", true); !got {
		t.Error("GetEnvBool with invalid value = false, want default true")
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DUR", "90s")
	if got := config.GetEnvDuration("TEST_DUR", time.Minute); got != 90*time.Second {
		t.Errorf("GetEnvDuration = %v, want 90s", got)
	}

	t.Setenv("TEST_DUR_BAD", "ninety")
	if got := config.GetEnvDuration("TEST_DUR_BAD", time.Minute); got != time.Minute {
		t.Errorf("GetEnvDuration with invalid value = %v, want 1m", got)
	}
}
