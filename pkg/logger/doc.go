// Package logger provides structured logging for desktop applications.
//
// It extends log/slog with context-based attribute injection, a colored
// console handler for development, JSON output for production, and optional
// Sentry error reporting.
//
// # Basic Usage
//
// Pick the handler from the runtime mode:
//
//	cfg, _ := logger.ConfigFromEnv()
//	log := logger.NewForMode(mode, cfg,
//		logger.StaticAttr(slog.String("app", "notes")),
//	)
//
// Development mode writes tinted, human-readable lines to stderr.
// Production mode writes JSON to stdout and, when SENTRY_DSN is set,
// forwards warnings and errors to Sentry. Call Flush before the app quits
// so pending Sentry events are delivered.
//
// # Context Extractors
//
// A ContextExtractor pulls a log attribute out of a context on every call.
// WindowExtractor is built in: tag the context of work done for a window and
// every record logged with it carries the window id:
//
//	log := logger.NewForMode(mode, cfg, logger.WindowExtractor)
//	ctx = logger.WithWindow(ctx, win.ID)
//	log.InfoContext(ctx, "document saved")
//
// LogHandlerDecorator wraps any slog.Handler with extractors, and Tee fans
// records out to several sinks (stdout, a log file, Sentry).
//
// Use NewNope where logging is optional.
package logger
