package slogx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// WithContext stores logger in ctx for FromContext.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the request logger, or slog's default outside a request.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// WithAccount scopes the context logger to one account.
func WithAccount(ctx context.Context, accountID string) (context.Context, *slog.Logger) {
	l := FromContext(ctx).With(slog.String("account_id", accountID))
	return WithContext(ctx, l), l
}
