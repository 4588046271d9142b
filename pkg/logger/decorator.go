package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls one attribute out of the context of a log call,
// such as the window a renderer request came from.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// LogHandlerDecorator runs its extractors on every record and passes the
// record on to next.
type LogHandlerDecorator struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// NewLogHandlerDecorator wraps next with the non-nil extractors.
// Without extractors next is returned as is.
func NewLogHandlerDecorator(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	var active []ContextExtractor
	for _, ex := range extractors {
		if ex != nil {
			active = append(active, ex)
		}
	}
	if len(active) == 0 {
		return next
	}
	return &LogHandlerDecorator{next: next, extractors: active}
}

func (h *LogHandlerDecorator) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *LogHandlerDecorator) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *LogHandlerDecorator) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.wrap(h.next.WithAttrs(attrs))
}

func (h *LogHandlerDecorator) WithGroup(name string) slog.Handler {
	return h.wrap(h.next.WithGroup(name))
}

func (h *LogHandlerDecorator) wrap(next slog.Handler) slog.Handler {
	return &LogHandlerDecorator{next: next, extractors: h.extractors}
}

// StaticAttr returns an extractor that adds the same attribute to every
// record, e.g. the application name.
func StaticAttr(attr slog.Attr) ContextExtractor {
	return func(context.Context) (slog.Attr, bool) {
		return attr, true
	}
}

type windowKey struct{}

// WithWindow tags ctx with the id of the window a call is made for.
func WithWindow(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, windowKey{}, id)
}

// WindowFromContext returns the window id set by WithWindow.
func WindowFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(windowKey{}).(int)
	return id, ok
}

// WindowExtractor adds a "window" attribute to records logged with a
// context tagged by WithWindow.
func WindowExtractor(ctx context.Context) (slog.Attr, bool) {
	if id, ok := WindowFromContext(ctx); ok {
		return slog.Int("window", id), true
	}
	return slog.Attr{}, false
}
