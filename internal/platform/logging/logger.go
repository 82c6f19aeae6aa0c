// Package logging provides the application logger: a slog front end fanned
// out to two independent sinks, a synchronous colored console sink and an
// asynchronous database-backed audit sink. Each sink filters against its own
// level threshold.
package logging

import (
	"context"
	"errors"
	"log/slog"
)

// fanoutHandler forwards every record to each sink that accepts its level.
type fanoutHandler struct {
	handlers []slog.Handler
}

// Fanout combines sinks into a single slog.Handler.
func Fanout(handlers ...slog.Handler) slog.Handler {
	return &fanoutHandler{handlers: handlers}
}

func (f *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (f *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	wrapped := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		wrapped[i] = h.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: wrapped}
}

func (f *fanoutHandler) WithGroup(name string) slog.Handler {
	wrapped := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		wrapped[i] = h.WithGroup(name)
	}
	return &fanoutHandler{handlers: wrapped}
}

var _ slog.Handler = (*fanoutHandler)(nil)

// New builds a logger over the given sinks.
func New(handlers ...slog.Handler) *slog.Logger {
	return slog.New(Fanout(handlers...))
}
