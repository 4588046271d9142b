package i18n

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"

	"github.com/dmitrymomot/deskit/pkg/apperr"
	"github.com/dmitrymomot/deskit/pkg/logger"
)

// Catalog holds every loaded language and the active-language selection.
// It starts uninitialized; Init loads translations exactly once.
// Lookups are safe for concurrent use.
type Catalog struct {
	fsys   FileSystem
	logger *slog.Logger

	// Optional handler called when a key is missing from every language consulted.
	missingKeyHandler func(lang, key string)

	// nil until Init succeeds.
	state *catalogState
	mu    sync.RWMutex
}

// NewCatalog creates an uninitialized catalog.
func NewCatalog(opts ...CatalogOption) *Catalog {
	c := &Catalog{
		fsys:   osFS{},
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init loads every messages.<lang>.json file from opts.LoadPath.
// It fails if the catalog is already initialized, if the path is not
// absolute, if any file cannot be read or parsed, or if no file exists
// for the active or the fallback language. A failed Init leaves the
// catalog untouched.
func (c *Catalog) Init(opts *Options) error {
	if opts == nil {
		return apperr.Configuration("i18n options are required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != nil {
		return apperr.Catalog("catalog is already initialized", apperr.WithCode(apperr.CodeAlreadyInit))
	}

	if opts.LoadPath == "" || !filepath.IsAbs(opts.LoadPath) {
		return apperr.Catalog(
			fmt.Sprintf("load path must be an absolute directory path, got %q", opts.LoadPath),
			apperr.WithCode(apperr.CodeInvalidLoadPath),
		)
	}

	st, err := c.load(filepath.Clean(opts.LoadPath), opts.language(), opts.fallbackLanguage())
	if err != nil {
		return err
	}

	c.state = st
	c.logger.Info("i18n: catalog initialized",
		slog.String("language", st.current),
		slog.String("fallback", st.fallback),
		slog.Int("languages", len(st.loaded)),
	)

	return nil
}

// Translate returns the translation of key in the active language, then in
// the fallback language, and finally key itself. An empty key yields "".
func (c *Catalog) Translate(key string) (string, error) {
	c.mu.RLock()
	st := c.state
	if st == nil {
		c.mu.RUnlock()
		return "", errNotInitialized()
	}
	value, found := st.lookup(key)
	current := st.current
	c.mu.RUnlock()

	if !found && key != "" && c.missingKeyHandler != nil {
		c.missingKeyHandler(current, key)
	}

	return value, nil
}

// T is Translate without the error: an uninitialized catalog returns key.
// Handy in templates and UI code where a raw key is an acceptable placeholder.
func (c *Catalog) T(key string) string {
	value, err := c.Translate(key)
	if err != nil {
		return key
	}
	return value
}

// ChangeLanguage switches the active language to a loaded language.
// Switching to the current language is a no-op. On failure the active
// language stays unchanged.
func (c *Catalog) ChangeLanguage(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.state
	if st == nil {
		return errNotInitialized()
	}
	if id == "" {
		return apperr.InvalidParameter("language id")
	}
	if _, ok := st.loaded[id]; !ok {
		return errNotLoaded(id)
	}
	if id == st.current {
		return nil
	}

	active := st.fallbackMessages
	if id != st.fallback {
		msgs, ok := st.messages[id]
		if !ok {
			return errNotLoaded(id)
		}
		active = msgs
	}

	prev := st.current
	st.current = id
	st.active = active

	c.logger.Info("i18n: language changed", slog.String("from", prev), slog.String("to", id))
	return nil
}

// Initialized reports whether Init has succeeded.
func (c *Catalog) Initialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state != nil
}

// Language returns the active language, or "" before Init.
func (c *Catalog) Language() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state == nil {
		return ""
	}
	return c.state.current
}

// FallbackLanguage returns the fallback language, or "" before Init.
func (c *Catalog) FallbackLanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state == nil {
		return ""
	}
	return c.state.fallback
}

// LoadPath returns the cleaned directory translations were loaded from.
func (c *Catalog) LoadPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state == nil {
		return ""
	}
	return c.state.loadPath
}

// Languages returns the loaded languages: the fallback first, the rest sorted.
func (c *Catalog) Languages() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state == nil {
		return nil
	}
	return c.state.languages()
}

// HasLanguage reports whether id was loaded.
func (c *Catalog) HasLanguage(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state == nil {
		return false
	}
	_, ok := c.state.loaded[id]
	return ok
}

// lookup resolves key against the active then the fallback messages.
// found is false when key itself is returned as placeholder.
func (st *catalogState) lookup(key string) (value string, found bool) {
	if key == "" {
		return "", true
	}
	if v, ok := st.active[key]; ok {
		return v, true
	}
	if st.current != st.fallback {
		if v, ok := st.fallbackMessages[key]; ok {
			return v, true
		}
	}
	return key, false
}

func (st *catalogState) languages() []string {
	others := make([]string, 0, len(st.loaded))
	for id := range st.loaded {
		if id != st.fallback {
			others = append(others, id)
		}
	}
	slices.Sort(others)
	return append([]string{st.fallback}, others...)
}

func errNotInitialized() error {
	return apperr.Catalog("catalog is not initialized", apperr.WithCode(apperr.CodeNotInit))
}

func errNotLoaded(id string) error {
	return apperr.Catalog(
		fmt.Sprintf("language %q is not loaded", id),
		apperr.WithCode(apperr.CodeLanguageNotFound),
	)
}
