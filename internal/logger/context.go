package logger

import (
	"context"

	"go.uber.org/zap"
)

// loggerKey is the private context key for the request-scoped logger.
type loggerKey struct{}

// ContextWithLogger returns a child context carrying the logger.
func ContextWithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the logger stored in ctx, or a no-op logger when the
// context carries none.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
