package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := New("sparky", "test", "debug", &buf)

	ctx := IntoContext(context.Background(), logger)
	FromContext(ctx).Info().Str("grade", "3").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "grade=3") {
		t.Errorf("log output = %q", out)
	}
}

func TestFromContextDefaultsToNop(t *testing.T) {
	// Must not panic.
	FromContext(context.Background()).Info().Msg("dropped")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New("sparky", "test", "warn", &buf)
	logger.Info().Msg("quiet")
	if buf.Len() != 0 {
		t.Errorf("info logged at warn level: %q", buf.String())
	}
	logger.Warn().Msg("loud")
	if !strings.Contains(buf.String(), "loud") {
		t.Errorf("warn not logged: %q", buf.String())
	}
}
