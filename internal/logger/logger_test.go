package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/recipedia/internal/ports"
)

type logEntry map[string]any

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	derived := log.With("component", "favorites", "namespace", "recipedia")
	derived.Info(context.Background(), "favorites loaded", "count", 2)

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "favorites loaded", entry["message"])
	require.Equal(t, "favorites", entry["component"])
	require.Equal(t, "recipedia", entry["namespace"])
	require.Equal(t, float64(2), entry["count"])
	require.Equal(t, "info", entry["level"])
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	log.Debug(context.Background(), "this should not appear")
	require.Equal(t, "", strings.TrimSpace(buf.String()))
}

func TestLoggerErrorIncludesContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", Writer: buf, Component: "storage"})
	require.NoError(t, err)

	ctx := ports.WithCorrelationID(context.Background(), "abc-123")
	log.Error(ctx, "write failed", "key", "recipedia:favorite:52772", "error", errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "write failed", entry["message"])
	require.Equal(t, "storage", entry["component"])
	require.Equal(t, "recipedia:favorite:52772", entry["key"])
	require.Equal(t, "boom", entry["error"])
	require.Equal(t, "abc-123", entry["correlation_id"])
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "chatty"})
	require.Error(t, err)
}

func TestNilLoggerIsSafe(t *testing.T) {
	t.Parallel()

	var log *Logger
	require.NotPanics(t, func() {
		log.Info(context.Background(), "ignored")
		log.With("k", "v").Warn(context.Background(), "ignored")
	})
	require.NotNil(t, OrNoOp(nil))
}
