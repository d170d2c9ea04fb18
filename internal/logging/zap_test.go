package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZapLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewZapLogger(&buf, slog.LevelWarn)
	ctx := context.Background()

	log.Info(ctx, "hidden", "k", 1)
	log.Warn(ctx, "shown", "k", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "WARN")
}

func TestZapLogger_With_AddsFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZapLogger(&buf, slog.LevelDebug).With("request_id", "abc")

	log.Debug(context.Background(), "hello", "user", "alice")

	out := buf.String()
	for _, s := range []string{"hello", "request_id", "abc", "alice"} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in output, got:\n%s", s, out)
		}
	}
}
