package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dmitrymomot/deskit/pkg/env"
)

// New creates a JSON logger writing to stdout at info level.
func New(extractors ...ContextExtractor) *slog.Logger {
	return NewJSON(os.Stdout, slog.LevelInfo, extractors...)
}

// NewJSON creates a JSON logger writing to w.
func NewJSON(w io.Writer, level slog.Leveler, extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewLogHandlerDecorator(h, extractors...))
}

// NewForMode picks the handler for the runtime mode: colored console output
// on stderr in development, JSON on stdout (plus Sentry when configured)
// in production.
func NewForMode(mode env.Mode, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	level := cfg.level()

	if mode.IsDev() {
		return NewConsole(os.Stderr, level, extractors...)
	}

	return NewWithSentry(SentryConfig{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		MinLevel:    slog.LevelWarn,
		Level:       level,
	}, extractors...)
}

// NewFile opens path for appending, creating it and its directory if needed,
// and returns a JSON logger writing to it. The caller closes the file.
func NewFile(path string, level slog.Leveler, extractors ...ContextExtractor) (*slog.Logger, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return NewJSON(f, level, extractors...), f, nil
}
