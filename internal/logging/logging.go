// Package logging carries a *slog.Logger on a context.Context, so the loader,
// the renderer, and the server can log without each of them holding a logger
// of their own.
package logging

import (
	"context"
	"io"
	"log/slog"
)

type ctxKey struct{}

var (
	slogCtxKey = ctxKey{}
)

// FromContext returns the logger stored on ctx by WithLogger. If there isn't
// one, it returns a logger that discards everything.
func FromContext(ctx context.Context) *slog.Logger {
	val := ctx.Value(slogCtxKey)
	if val == nil {
		return slog.New(noopHandler{})
	}
	logger, ok := val.(*slog.Logger)
	if !ok || logger == nil {
		return slog.New(noopHandler{})
	}
	return logger
}

// WithLogger returns a copy of ctx that FromContext will pull logger out of.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, slogCtxKey, logger)
}

// New returns a text logger writing to out that drops records below level.
func New(out io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

type noopHandler struct{}

func (noopHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return false
}

func (noopHandler) Handle(_ context.Context, _ slog.Record) error {
	return nil
}

func (n noopHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return n
}

func (n noopHandler) WithGroup(_ string) slog.Handler {
	return n
}
