package i18n

import (
	"io/fs"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/deskit/pkg/apperr"
)

// DefaultLang is used when Options leave a language empty.
const DefaultLang = "en"

// Options configures Catalog.Init.
// Fields can be populated from the environment with OptionsFromEnv.
type Options struct {
	// Language is the active language at startup.
	Language string `env:"DESKIT_LANGUAGE" envDefault:"en"`

	// FallbackLanguage is consulted when a key is missing from the active language.
	FallbackLanguage string `env:"DESKIT_FALLBACK_LANGUAGE" envDefault:"en"`

	// LoadPath is the absolute directory holding messages.<lang>.json files.
	LoadPath string `env:"DESKIT_LOCALES_PATH"`
}

// OptionsFromEnv reads Options from DESKIT_LANGUAGE, DESKIT_FALLBACK_LANGUAGE
// and DESKIT_LOCALES_PATH.
func OptionsFromEnv() (*Options, error) {
	opts, err := env.ParseAs[Options]()
	if err != nil {
		return nil, apperr.Configuration("failed to parse i18n options from environment", apperr.WithCause(err))
	}
	return &opts, nil
}

func (o Options) language() string {
	if o.Language == "" {
		return DefaultLang
	}
	return o.Language
}

func (o Options) fallbackLanguage() string {
	if o.FallbackLanguage == "" {
		return DefaultLang
	}
	return o.FallbackLanguage
}

// FileSystem lists directories and reads files by absolute path.
type FileSystem interface {
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
}

type osFS struct{}

func (osFS) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }
func (osFS) ReadFile(name string) ([]byte, error)       { return os.ReadFile(name) }

// CatalogOption configures a Catalog at construction.
type CatalogOption func(*Catalog)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *slog.Logger) CatalogOption {
	return func(c *Catalog) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithFileSystem replaces the OS filesystem used by Init.
func WithFileSystem(fsys FileSystem) CatalogOption {
	return func(c *Catalog) {
		if fsys != nil {
			c.fsys = fsys
		}
	}
}

// WithMissingKeyHandler sets a handler called when a key is found in neither
// the active nor the fallback language.
// Useful for spotting untranslated strings during development.
func WithMissingKeyHandler(handler func(lang, key string)) CatalogOption {
	return func(c *Catalog) {
		c.missingKeyHandler = handler
	}
}
