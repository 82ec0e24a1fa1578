package logger

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

type ctxKey struct{}

func ContextWithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

func FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return L()
	}
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return L()
}

func WithOperation(ctx context.Context, operation string) context.Context {
	logger := FromContext(ctx).With(
		"operation", operation,
		"op_id", generateShortID(),
	)
	return ContextWithLogger(ctx, logger)
}

// WithTraceID tags every log line of a run. An empty id gets a fresh UUID.
func WithTraceID(ctx context.Context, traceID string) (context.Context, string) {
	if traceID == "" {
		traceID = uuid.NewString()
	}
	logger := FromContext(ctx).With("trace_id", traceID)
	return ContextWithLogger(ctx, logger), traceID
}

func generateShortID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
