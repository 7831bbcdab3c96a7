//go:build !notrace

package xmltok

import (
	"context"
	"log/slog"
	"runtime"
)

type traceLoggerKey struct{}

// TracingEnabled is false in builds with -tags notrace
const TracingEnabled = true

// the null logger is a logger that does nothing
var nullLogger = slog.New(slog.DiscardHandler)

// WithTraceLogger returns a context carrying tlog. Tokenize logs every
// event it produces to the trace logger found in its context.
func WithTraceLogger(ctx context.Context, tlog *slog.Logger) context.Context {
	// If the context already has a trace logger, return the context as is
	if _, ok := ctx.Value(traceLoggerKey{}).(*slog.Logger); ok {
		return ctx
	}

	return context.WithValue(ctx, traceLoggerKey{}, tlog)
}

func getTraceLogFromContext(ctx context.Context) *slog.Logger {
	if tlog, ok := ctx.Value(traceLoggerKey{}).(*slog.Logger); ok {
		// Retrieve the function name of the caller for tracing
		pc, _, _, ok := runtime.Caller(1)
		if ok {
			if fn := runtime.FuncForPC(pc); fn != nil {
				tlog = tlog.With(slog.String("fn", fn.Name()))
			}
		}
		return tlog
	}

	return nullLogger
}
