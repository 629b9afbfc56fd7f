package logging

import (
	"context"
	"log/slog"
	"os"
)

// ctxKey is the context key type for the request-scoped logger.
// A custom type prevents collisions.
type ctxKey struct{}

// NewLogger builds the process-wide base logger. Production gets JSON,
// everything else a text handler.
func NewLogger(isProduction bool) *slog.Logger {
	if isProduction {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// IntoContext stores a logger in the context for downstream calls.
func IntoContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromCtx retrieves the scoped logger from the context, falling back to the
// default logger when the caller attached none.
func FromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
