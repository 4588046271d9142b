package deskit

import (
	"context"
	"io/fs"
	"log/slog"

	"github.com/dmitrymomot/deskit/pkg/env"
	"github.com/dmitrymomot/deskit/pkg/i18n"
	"github.com/dmitrymomot/deskit/pkg/paths"
)

// ShutdownHook releases a resource when the app closes.
type ShutdownHook func(ctx context.Context) error

// Option configures the application.
type Option func(*config)

type config struct {
	logger *slog.Logger
	paths  *paths.Paths
	mode   env.Mode

	localesDir       string
	fallbackLanguage string
	catalogOptions   []i18n.CatalogOption
	systemLocales    func() []string

	database *databaseConfig

	shutdownHooks []ShutdownHook
}

type databaseConfig struct {
	fsys fs.FS
	src  string
	name string
}

// WithLogger sets the application logger.
// If nil, a logger is built for the runtime mode from LOG_LEVEL and SENTRY_DSN.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMode forces the runtime mode instead of detecting it.
func WithMode(m env.Mode) Option {
	return func(c *config) {
		c.mode = m
	}
}

// WithPaths replaces the resolved user directories.
// Useful for tests and portable installs.
func WithPaths(p paths.Paths) Option {
	return func(c *config) {
		c.paths = &p
	}
}

// WithLocales loads messages.<lang>.json files from dir.
// A relative dir is resolved against the executable's directory.
func WithLocales(dir string) Option {
	return func(c *config) {
		c.localesDir = dir
	}
}

// WithFallbackLanguage sets the language used for missing keys.
// Defaults to "en".
func WithFallbackLanguage(id string) Option {
	return func(c *config) {
		if id != "" {
			c.fallbackLanguage = id
		}
	}
}

// WithCatalogOptions passes extra options to the translation catalog.
func WithCatalogOptions(opts ...i18n.CatalogOption) Option {
	return func(c *config) {
		c.catalogOptions = append(c.catalogOptions, opts...)
	}
}

// WithPreferredLocales replaces the system locales used to pick the initial
// language when the user has not chosen one.
func WithPreferredLocales(locales ...string) Option {
	return func(c *config) {
		c.systemLocales = func() []string { return locales }
	}
}

// WithSkeletonDatabase installs the database file at src as name inside
// the user data directory on first run.
func WithSkeletonDatabase(src, name string) Option {
	return func(c *config) {
		c.database = &databaseConfig{src: src, name: name}
	}
}

// WithSkeletonDatabaseFS is WithSkeletonDatabase reading the template
// from fsys, typically an embed.FS.
func WithSkeletonDatabaseFS(fsys fs.FS, src, name string) Option {
	return func(c *config) {
		c.database = &databaseConfig{fsys: fsys, src: src, name: name}
	}
}

// WithShutdownHook registers a function called by Close.
// Hooks run in registration order.
func WithShutdownHook(fn ShutdownHook) Option {
	return func(c *config) {
		if fn != nil {
			c.shutdownHooks = append(c.shutdownHooks, fn)
		}
	}
}
