package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aileon/awesome/pkg/logger"
)

type traceKey struct{}

func traceExtractor(ctx context.Context) (slog.Attr, bool) {
	v, ok := ctx.Value(traceKey{}).(string)
	if !ok || v == "" {
		return slog.Attr{}, false
	}
	return slog.String("trace", v), true
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("adds extracted attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.Options{Output: &buf}, traceExtractor, nil)

		ctx := context.WithValue(context.Background(), traceKey{}, "abc")
		log.InfoContext(ctx, "hello", slog.Int("n", 1))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "hello", rec["msg"])
		assert.Equal(t, "abc", rec["trace"])
		assert.EqualValues(t, 1, rec["n"])
	})

	t.Run("skips attributes the context does not carry", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.Options{Output: &buf}, traceExtractor)
		log.Info("plain")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.NotContains(t, rec, "trace")
	})

	t.Run("respects level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.Options{Output: &buf, Level: slog.LevelWarn})
		log.Info("dropped")
		assert.Zero(t, buf.Len())

		log.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("text output keeps extractors on derived loggers", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.Options{Output: &buf, Text: true}, traceExtractor).With("component", "test")

		ctx := context.WithValue(context.Background(), traceKey{}, "xyz")
		log.InfoContext(ctx, "text line")
		assert.Contains(t, buf.String(), "trace=xyz")
		assert.Contains(t, buf.String(), "component=test")
	})
}

func TestNewWithSentry_NoDSN(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithSentry(logger.SentryConfig{}, logger.Options{Output: &buf})
	log.Error("boom")
	assert.Contains(t, buf.String(), "boom")
}
