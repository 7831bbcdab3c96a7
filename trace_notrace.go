//go:build notrace

package xmltok

import (
	"context"
	"log/slog"
)

// No-op implementations when built with -tags notrace

// TracingEnabled is false in builds with -tags notrace
const TracingEnabled = false

var nullLogger = slog.New(slog.DiscardHandler)

// WithTraceLogger returns ctx unchanged in builds with -tags notrace
func WithTraceLogger(ctx context.Context, _ *slog.Logger) context.Context {
	return ctx
}

func getTraceLogFromContext(context.Context) *slog.Logger {
	return nullLogger
}
