package logger

import (
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds logger settings read from the environment.
type Config struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string `env:"LOG_LEVEL"`

	SentryDSN         string `env:"SENTRY_DSN"`
	SentryEnvironment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
}

// ConfigFromEnv parses Config from LOG_LEVEL, SENTRY_DSN and SENTRY_ENVIRONMENT.
func ConfigFromEnv() (Config, error) {
	return env.ParseAs[Config]()
}

// ParseLevel converts a level name to slog.Level. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) level() slog.Level {
	return ParseLevel(c.Level)
}
