package ports

import (
	"context"

	"github.com/google/uuid"
)

// Logger defines Recipedia's structured logging contract. All log calls take
// key/value pairs, must be safe for concurrent use, and enrich entries with the
// correlation ID found in context. Common fields include:
//   - correlation_id (UUIDv4, generated once per command)
//   - component (storage, favorites, mealdb, query, tui, ...)
//   - recipe_id / key / status for the operation at hand
//   - duration_ms for timed operations
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...interface{})
	Info(ctx context.Context, msg string, fields ...interface{})
	Warn(ctx context.Context, msg string, fields ...interface{})
	Error(ctx context.Context, msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

type correlationIDKey struct{}

// WithCorrelationID attaches the provided correlation ID to the context so
// downstream layers can emit correlated logs and traces.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// GetCorrelationID extracts a correlation ID from context. It returns an empty
// string when none has been set.
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateCorrelationID produces a new UUIDv4 string. CLI entry points invoke
// this once per command execution.
func GenerateCorrelationID() string {
	return uuid.NewString()
}
