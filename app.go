package deskit

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/dmitrymomot/deskit/pkg/apperr"
	"github.com/dmitrymomot/deskit/pkg/configstore"
	"github.com/dmitrymomot/deskit/pkg/env"
	"github.com/dmitrymomot/deskit/pkg/i18n"
	"github.com/dmitrymomot/deskit/pkg/logger"
	"github.com/dmitrymomot/deskit/pkg/paths"
	"github.com/dmitrymomot/deskit/pkg/skeleton"
)

const (
	// LanguageKey is the config store key holding the user's language choice.
	LanguageKey = "language"

	// LogFileName is the production log file inside Paths.Logs.
	LogFileName = "main.log"
)

// App bundles the per-user state of a desktop application: runtime mode,
// directories, settings, database file and translations.
// App is immutable after creation except for the active language.
type App struct {
	name string
	mode env.Mode

	logger  *slog.Logger
	logFile io.Closer
	paths   paths.Paths
	config  *configstore.Store

	catalog *i18n.Catalog

	dbPath string

	// Lifecycle
	shutdownHooks []ShutdownHook
	closeOnce     sync.Once
	closeErr      error
}

// New prepares the application named appName:
//
//  1. detects the runtime mode
//  2. resolves and creates the user directories
//  3. builds the logger for the mode
//  4. opens the settings file
//  5. installs the skeleton database, if configured
//  6. loads translations, if configured
//
// Example:
//
//	app, err := deskit.New("notes",
//	    deskit.WithLocales("locales"),
//	    deskit.WithSkeletonDatabase("/opt/notes/skeleton.db", "notes.db"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer app.Close(context.Background())
func New(appName string, opts ...Option) (_ *App, err error) {
	cfg := &config{
		fallbackLanguage: i18n.DefaultLang,
		systemLocales:    i18n.SystemLocales,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	a := &App{name: appName, shutdownHooks: cfg.shutdownHooks}

	if err := a.setupMode(cfg); err != nil {
		return nil, err
	}
	if err := a.setupPaths(cfg); err != nil {
		return nil, err
	}
	if err := a.setupLogger(cfg); err != nil {
		return nil, err
	}
	// The caller gets no App to Close on failure.
	defer func() {
		if err != nil {
			_ = a.release(0)
		}
	}()

	store, err := configstore.New(a.paths.ConfigFile(), configstore.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	a.config = store

	if err := a.setupDatabase(cfg); err != nil {
		return nil, err
	}
	if err := a.setupCatalog(cfg); err != nil {
		return nil, err
	}

	a.logger.Info("deskit: application ready",
		slog.String("app", a.name),
		slog.String("mode", a.mode.String()),
		slog.String("user_data", a.paths.UserData),
	)

	return a, nil
}

func (a *App) setupMode(cfg *config) error {
	if cfg.mode != "" {
		a.mode = cfg.mode
		return nil
	}
	mode, err := env.Detect()
	if err != nil {
		return err
	}
	a.mode = mode
	return nil
}

func (a *App) setupPaths(cfg *config) error {
	p := cfg.paths
	if p == nil {
		resolved, err := paths.Resolve(a.name)
		if err != nil {
			return err
		}
		p = &resolved
	} else if a.name == "" {
		return apperr.InvalidParameter("app name")
	}
	if err := p.Ensure(); err != nil {
		return err
	}
	a.paths = *p
	return nil
}

func (a *App) setupLogger(cfg *config) error {
	if cfg.logger != nil {
		a.logger = cfg.logger
		return nil
	}
	lc, err := logger.ConfigFromEnv()
	if err != nil {
		return apperr.New(apperr.KindEnvironment, "failed to parse logger environment", apperr.WithCause(err))
	}

	appAttr := logger.StaticAttr(slog.String("app", a.name))
	a.logger = logger.NewForMode(a.mode, lc, appAttr)
	if a.mode.IsDev() || a.paths.Logs == "" {
		return nil
	}

	// Packaged apps have no visible stdout; keep a copy in the logs directory.
	path := filepath.Join(a.paths.Logs, LogFileName)
	fileLog, f, err := logger.NewFile(path, logger.ParseLevel(lc.Level), appAttr)
	if err != nil {
		a.logger.Warn("deskit: log file unavailable", slog.String("path", path), slog.Any("error", err))
		return nil
	}
	a.logger = slog.New(logger.Tee(a.logger.Handler(), fileLog.Handler()))
	a.logFile = f
	return nil
}

func (a *App) setupDatabase(cfg *config) error {
	db := cfg.database
	if db == nil {
		return nil
	}
	if db.name == "" || filepath.Base(db.name) != db.name {
		return apperr.New(apperr.KindInvalidParameter,
			fmt.Sprintf("database name %q must be a plain file name", db.name),
			apperr.WithCode(apperr.CodeInvalidPath))
	}

	dst := a.paths.Database(db.name)
	opts := []skeleton.Option{skeleton.WithLogger(a.logger)}

	var err error
	if db.fsys != nil {
		_, err = skeleton.InstallFS(db.fsys, db.src, dst, opts...)
	} else {
		_, err = skeleton.Install(db.src, dst, opts...)
	}
	if err != nil {
		return err
	}

	a.dbPath = dst
	return nil
}

func (a *App) setupCatalog(cfg *config) error {
	catalogOpts := append([]i18n.CatalogOption{i18n.WithLogger(a.logger)}, cfg.catalogOptions...)
	a.catalog = i18n.NewCatalog(catalogOpts...)

	if cfg.localesDir == "" {
		return nil
	}
	dir, err := paths.Resources(cfg.localesDir)
	if err != nil {
		return err
	}

	// Start on the fallback; it is the only language guaranteed to exist.
	if err := a.catalog.Init(&i18n.Options{
		Language:         cfg.fallbackLanguage,
		FallbackLanguage: cfg.fallbackLanguage,
		LoadPath:         dir,
	}); err != nil {
		return err
	}

	lang := a.preferredLanguage(cfg)
	return a.catalog.ChangeLanguage(lang)
}

// preferredLanguage returns the persisted choice when it is still loaded,
// otherwise the best match for the system locales.
func (a *App) preferredLanguage(cfg *config) string {
	v, ok, err := a.config.Get(LanguageKey)
	if err != nil {
		a.logger.Warn("deskit: ignoring unreadable settings", slog.Any("error", err))
	}
	if id, isString := v.(string); ok && isString && a.catalog.HasLanguage(id) {
		return id
	}
	return a.catalog.Negotiate(cfg.systemLocales()...)
}

// Name returns the application name.
func (a *App) Name() string { return a.name }

// Mode returns the runtime mode.
func (a *App) Mode() env.Mode { return a.mode }

// IsDev reports whether the app runs in development mode.
func (a *App) IsDev() bool { return a.mode.IsDev() }

// Paths returns the per-user directories.
func (a *App) Paths() paths.Paths { return a.paths }

// Config returns the settings store.
func (a *App) Config() *configstore.Store { return a.config }

// Catalog returns the translation catalog. It is uninitialized unless
// WithLocales was given.
func (a *App) Catalog() *i18n.Catalog { return a.catalog }

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// DatabasePath returns the installed database path, or "" when no skeleton
// database was configured.
func (a *App) DatabasePath() string { return a.dbPath }

// T translates key in the active language.
func (a *App) T(key string) string { return a.catalog.T(key) }

// SetLanguage switches the active language and persists the choice so the
// next start uses it.
func (a *App) SetLanguage(id string) error {
	if err := a.catalog.ChangeLanguage(id); err != nil {
		return err
	}
	return a.config.Set(LanguageKey, id)
}
