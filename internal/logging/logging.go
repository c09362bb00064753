// Package logging carries request-scoped loggers through contexts and labels
// them with the component doing the work. The request middleware attaches a
// logger holding the request id; services and handlers resolve it through
// Scoped so every line emitted for one request shares that id.
package logging

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// ContextWithLogger returns a derived context that carries the provided logger.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext extracts a logger previously attached to the context.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	logger, _ := ctx.Value(contextKey{}).(*slog.Logger)
	return logger
}

// OrDefault returns logger when non-nil and the process-wide default
// otherwise.
func OrDefault(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

// Scoped resolves the logger for one unit of work: the request-scoped logger
// from ctx when present, otherwise fallback, otherwise the process default.
// The result is labelled with the component under the given role key
// ("service" or "handler"), the operation, and any extra attribute pairs.
func Scoped(ctx context.Context, fallback *slog.Logger, role, component, operation string, attrs ...any) *slog.Logger {
	logger := FromContext(ctx)
	if logger == nil {
		logger = fallback
	}
	if logger == nil {
		logger = slog.Default()
	}

	pairs := []any{role, component}
	if operation != "" {
		pairs = append(pairs, "operation", operation)
	}
	if len(attrs) > 0 {
		pairs = append(pairs, attrs...)
	}
	return logger.With(pairs...)
}
