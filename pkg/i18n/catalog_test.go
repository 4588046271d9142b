package i18n_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/deskit/pkg/apperr"
	"github.com/dmitrymomot/deskit/pkg/i18n"
)

// writeLocales creates a temp directory holding the given files.
func writeLocales(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

// failingFS delegates to the OS but injects errors.
type failingFS struct {
	readDirErr  error
	readFileErr map[string]error
}

func (f failingFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if f.readDirErr != nil {
		return nil, f.readDirErr
	}
	return os.ReadDir(name)
}

func (f failingFS) ReadFile(name string) ([]byte, error) {
	if err, ok := f.readFileErr[filepath.Base(name)]; ok {
		return nil, err
	}
	return os.ReadFile(name)
}

func enFr(t *testing.T) string {
	t.Helper()
	return writeLocales(t, map[string]string{
		"messages.en.json": `{"a":"A","b":{"c":"C"},"greeting":"Hello"}`,
		"messages.fr.json": `{"a":"Ah","greeting":"Bonjour"}`,
	})
}

func TestCatalogInit(t *testing.T) {
	t.Parallel()

	t.Run("loads languages and sets the active one", func(t *testing.T) {
		t.Parallel()
		c := i18n.NewCatalog()
		require.False(t, c.Initialized())

		dir := enFr(t)
		require.NoError(t, c.Init(&i18n.Options{Language: "fr", FallbackLanguage: "en", LoadPath: dir}))

		require.True(t, c.Initialized())
		require.Equal(t, "fr", c.Language())
		require.Equal(t, "en", c.FallbackLanguage())
		require.Equal(t, []string{"en", "fr"}, c.Languages())
		require.Equal(t, dir, c.LoadPath())
		require.True(t, c.HasLanguage("fr"))
		require.False(t, c.HasLanguage("de"))
	})

	t.Run("defaults both languages to en", func(t *testing.T) {
		t.Parallel()
		c := i18n.NewCatalog()
		require.NoError(t, c.Init(&i18n.Options{LoadPath: enFr(t)}))
		require.Equal(t, "en", c.Language())
		require.Equal(t, "en", c.FallbackLanguage())
		require.Equal(t, "Hello", c.T("greeting"))
	})

	t.Run("cleans the load path", func(t *testing.T) {
		t.Parallel()
		dir := enFr(t)
		c := i18n.NewCatalog()
		require.NoError(t, c.Init(&i18n.Options{LoadPath: filepath.Join(dir, "sub", "..") + string(filepath.Separator)}))
		require.Equal(t, dir, c.LoadPath())
	})

	t.Run("nil options is a configuration error", func(t *testing.T) {
		t.Parallel()
		err := i18n.NewCatalog().Init(nil)
		require.ErrorIs(t, err, apperr.ErrConfiguration)
		require.Equal(t, apperr.CodeInitObject, apperr.Code(err))
	})

	t.Run("rejects empty and relative load paths", func(t *testing.T) {
		t.Parallel()
		for _, p := range []string{"", "locales", "./locales"} {
			c := i18n.NewCatalog()
			err := c.Init(&i18n.Options{LoadPath: p})
			require.ErrorIs(t, err, apperr.ErrCatalog, p)
			require.Equal(t, apperr.CodeInvalidLoadPath, apperr.Code(err), p)
			require.False(t, c.Initialized())
		}
	})

	t.Run("second init fails and keeps first state", func(t *testing.T) {
		t.Parallel()
		c := i18n.NewCatalog()
		require.NoError(t, c.Init(&i18n.Options{Language: "fr", LoadPath: enFr(t)}))

		other := writeLocales(t, map[string]string{"messages.de.json": `{"a":"Ach"}`})
		err := c.Init(&i18n.Options{Language: "de", FallbackLanguage: "de", LoadPath: other})
		require.ErrorIs(t, err, apperr.ErrCatalog)
		require.Equal(t, apperr.CodeAlreadyInit, apperr.Code(err))

		require.Equal(t, "fr", c.Language())
		require.Equal(t, "Ah", c.T("a"))
		require.False(t, c.HasLanguage("de"))
	})

	t.Run("missing directory reports ENOENT", func(t *testing.T) {
		t.Parallel()
		c := i18n.NewCatalog()
		err := c.Init(&i18n.Options{LoadPath: filepath.Join(t.TempDir(), "nope")})
		require.ErrorIs(t, err, apperr.ErrCatalog)
		require.ErrorIs(t, err, fs.ErrNotExist)
		require.Equal(t, apperr.CodeNotFound, apperr.Code(err))
		require.False(t, c.Initialized())
	})

	t.Run("unreadable directory reports EPERM", func(t *testing.T) {
		t.Parallel()
		c := i18n.NewCatalog(i18n.WithFileSystem(failingFS{
			readDirErr: &fs.PathError{Op: "open", Path: "/locales", Err: syscall.EACCES},
		}))
		err := c.Init(&i18n.Options{LoadPath: "/locales"})
		require.ErrorIs(t, err, apperr.ErrCatalog)
		require.ErrorIs(t, err, fs.ErrPermission)
		require.Equal(t, apperr.CodePermission, apperr.Code(err))
	})

	t.Run("other listing errors keep their errno", func(t *testing.T) {
		t.Parallel()
		c := i18n.NewCatalog(i18n.WithFileSystem(failingFS{
			readDirErr: &fs.PathError{Op: "readdirent", Path: "/locales", Err: syscall.ENOTDIR},
		}))
		err := c.Init(&i18n.Options{LoadPath: "/locales"})
		require.ErrorIs(t, err, apperr.ErrCatalog)
		require.Equal(t, "ENOTDIR", apperr.Code(err))
	})

	t.Run("unreadable file aborts init", func(t *testing.T) {
		t.Parallel()
		dir := enFr(t)
		c := i18n.NewCatalog(i18n.WithFileSystem(failingFS{
			readFileErr: map[string]error{
				"messages.fr.json": &fs.PathError{Op: "open", Path: "messages.fr.json", Err: syscall.EACCES},
			},
		}))
		err := c.Init(&i18n.Options{LoadPath: dir})
		require.ErrorIs(t, err, apperr.ErrCatalog)
		require.Equal(t, apperr.CodePermission, apperr.Code(err))
		require.Contains(t, err.Error(), "messages.fr.json")
		require.False(t, c.Initialized())
	})

	t.Run("ignores non-matching files", func(t *testing.T) {
		t.Parallel()
		dir := writeLocales(t, map[string]string{
			"messages.en.json":       `{"a":"A"}`,
			"messages.en.txt":        `not json`,
			"Messages.de.json":       `not json`,
			"messages.json":          `not json`,
			"messages.de.extra.json": `not json`,
			"fr.json":                `not json`,
			"README":                 `hello`,
		})
		require.NoError(t, os.Mkdir(filepath.Join(dir, "messages.it.json"), 0o755))

		c := i18n.NewCatalog()
		require.NoError(t, c.Init(&i18n.Options{LoadPath: dir}))
		require.Equal(t, []string{"en"}, c.Languages())
	})

	t.Run("directory named like a locale file is skipped", func(t *testing.T) {
		t.Parallel()
		dir := writeLocales(t, map[string]string{"messages.en.json": `{"a":"A"}`})
		require.NoError(t, os.Mkdir(filepath.Join(dir, "messages.fr.json"), 0o755))

		c := i18n.NewCatalog()
		err := c.Init(&i18n.Options{Language: "fr", LoadPath: dir})
		require.ErrorIs(t, err, apperr.ErrCatalog)
		require.Equal(t, apperr.CodeMissingLanguage, apperr.Code(err))
		require.False(t, c.Initialized())
	})

	t.Run("invalid JSON fails with PARSE_ERROR", func(t *testing.T) {
		t.Parallel()
		dir := writeLocales(t, map[string]string{
			"messages.en.json": `{"a": "A",}`,
			"messages.en.txt":  `ignored`,
		})
		c := i18n.NewCatalog()
		err := c.Init(&i18n.Options{LoadPath: dir})
		require.ErrorIs(t, err, apperr.ErrCatalog)
		require.Equal(t, apperr.CodeParse, apperr.Code(err))
		require.Contains(t, err.Error(), filepath.Join(dir, "messages.en.json"))

		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		require.Error(t, appErr.Err)
		require.False(t, c.Initialized())
	})

	t.Run("non-object document fails with PARSE_ERROR", func(t *testing.T) {
		t.Parallel()
		dir := writeLocales(t, map[string]string{"messages.en.json": `["a"]`})
		err := i18n.NewCatalog().Init(&i18n.Options{LoadPath: dir})
		require.Equal(t, apperr.CodeParse, apperr.Code(err))
		require.ErrorIs(t, err, i18n.ErrNotObject)
	})

	t.Run("parse error wins over missing language", func(t *testing.T) {
		t.Parallel()
		dir := writeLocales(t, map[string]string{
			"messages.en.json": `{"a":"A"}`,
			"messages.fr.json": `{`,
		})
		err := i18n.NewCatalog().Init(&i18n.Options{Language: "de", LoadPath: dir})
		require.Equal(t, apperr.CodeParse, apperr.Code(err))
	})

	t.Run("missing fallback file fails", func(t *testing.T) {
		t.Parallel()
		dir := writeLocales(t, map[string]string{"messages.fr.json": `{"a":"Ah"}`})
		c := i18n.NewCatalog()
		err := c.Init(&i18n.Options{Language: "fr", FallbackLanguage: "en", LoadPath: dir})
		require.ErrorIs(t, err, apperr.ErrCatalog)
		require.Equal(t, apperr.CodeMissingFallback, apperr.Code(err))
		require.False(t, c.Initialized())
	})

	t.Run("missing active language file fails", func(t *testing.T) {
		t.Parallel()
		c := i18n.NewCatalog()
		err := c.Init(&i18n.Options{Language: "de", FallbackLanguage: "en", LoadPath: enFr(t)})
		require.ErrorIs(t, err, apperr.ErrCatalog)
		require.Equal(t, apperr.CodeMissingLanguage, apperr.Code(err))
		require.False(t, c.Initialized())
	})

	t.Run("empty fallback file is valid", func(t *testing.T) {
		t.Parallel()
		dir := writeLocales(t, map[string]string{
			"messages.en.json": `{}`,
			"messages.fr.json": `{"a":"Ah"}`,
		})
		c := i18n.NewCatalog()
		require.NoError(t, c.Init(&i18n.Options{Language: "fr", LoadPath: dir}))
		require.Equal(t, "Ah", c.T("a"))
		require.Equal(t, "b", c.T("b"))
	})

	t.Run("failed init can be retried", func(t *testing.T) {
		t.Parallel()
		c := i18n.NewCatalog()
		require.Error(t, c.Init(&i18n.Options{LoadPath: filepath.Join(t.TempDir(), "nope")}))
		require.NoError(t, c.Init(&i18n.Options{LoadPath: enFr(t)}))
	})
}

func TestCatalogTranslate(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) *i18n.Catalog {
		t.Helper()
		c := i18n.NewCatalog()
		require.NoError(t, c.Init(&i18n.Options{Language: "fr", FallbackLanguage: "en", LoadPath: enFr(t)}))
		return c
	}

	t.Run("fails before init", func(t *testing.T) {
		t.Parallel()
		c := i18n.NewCatalog()
		_, err := c.Translate("a")
		require.ErrorIs(t, err, apperr.ErrCatalog)
		require.Equal(t, apperr.CodeNotInit, apperr.Code(err))
		require.Equal(t, "a", c.T("a"))
	})

	t.Run("active language, fallback and missing key", func(t *testing.T) {
		t.Parallel()
		c := setup(t)

		v, err := c.Translate("a")
		require.NoError(t, err)
		require.Equal(t, "Ah", v)

		v, err = c.Translate("b.c")
		require.NoError(t, err)
		require.Equal(t, "C", v)

		v, err = c.Translate("missing")
		require.NoError(t, err)
		require.Equal(t, "missing", v)
	})

	t.Run("empty key returns empty string", func(t *testing.T) {
		t.Parallel()
		c := setup(t)
		v, err := c.Translate("")
		require.NoError(t, err)
		require.Empty(t, v)

		require.NoError(t, c.ChangeLanguage("en"))
		require.Empty(t, c.T(""))
	})

	t.Run("fallback law", func(t *testing.T) {
		t.Parallel()
		dir := writeLocales(t, map[string]string{
			"messages.en.json": `{"k1":"one","k2":"two","nested":{"k3":"three"},"shared":"en"}`,
			"messages.de.json": `{"shared":"de"}`,
		})
		c := i18n.NewCatalog()
		require.NoError(t, c.Init(&i18n.Options{Language: "de", LoadPath: dir}))

		for key, want := range map[string]string{"k1": "one", "k2": "two", "nested.k3": "three"} {
			require.Equal(t, want, c.T(key))
		}
		require.Equal(t, "de", c.T("shared"))
	})

	t.Run("missing key identity law", func(t *testing.T) {
		t.Parallel()
		c := setup(t)
		for _, key := range []string{"x", "b", "b.c.d", "menu.", ".", "a.b"} {
			require.Equal(t, key, c.T(key))
		}
	})

	t.Run("reports missing keys to the handler", func(t *testing.T) {
		t.Parallel()
		var mu sync.Mutex
		var missing []string
		c := i18n.NewCatalog(i18n.WithMissingKeyHandler(func(lang, key string) {
			mu.Lock()
			defer mu.Unlock()
			missing = append(missing, lang+":"+key)
		}))
		require.NoError(t, c.Init(&i18n.Options{Language: "fr", LoadPath: enFr(t)}))

		c.T("a")
		c.T("b.c")
		c.T("")
		c.T("nope")
		require.Equal(t, []string{"fr:nope"}, missing)
	})

	t.Run("safe for concurrent lookups", func(t *testing.T) {
		t.Parallel()
		c := setup(t)
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 100 {
					_ = c.T("a")
					_ = c.T("b.c")
				}
			}()
		}
		for range 10 {
			require.NoError(t, c.ChangeLanguage("en"))
			require.NoError(t, c.ChangeLanguage("fr"))
		}
		wg.Wait()
	})
}

func TestCatalogChangeLanguage(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) *i18n.Catalog {
		t.Helper()
		c := i18n.NewCatalog()
		require.NoError(t, c.Init(&i18n.Options{Language: "fr", FallbackLanguage: "en", LoadPath: enFr(t)}))
		return c
	}

	t.Run("fails before init", func(t *testing.T) {
		t.Parallel()
		err := i18n.NewCatalog().ChangeLanguage("en")
		require.ErrorIs(t, err, apperr.ErrCatalog)
		require.Equal(t, apperr.CodeNotInit, apperr.Code(err))
	})

	t.Run("empty id is an invalid parameter", func(t *testing.T) {
		t.Parallel()
		c := setup(t)
		err := c.ChangeLanguage("")
		require.ErrorIs(t, err, apperr.ErrInvalidParameter)
		require.Equal(t, "fr", c.Language())
	})

	t.Run("unloaded language fails and keeps state", func(t *testing.T) {
		t.Parallel()
		c := setup(t)
		err := c.ChangeLanguage("de")
		require.ErrorIs(t, err, apperr.ErrCatalog)
		require.Equal(t, apperr.CodeLanguageNotFound, apperr.Code(err))
		require.Equal(t, "fr", c.Language())
		require.Equal(t, "Ah", c.T("a"))
	})

	t.Run("switching to current language is a no-op", func(t *testing.T) {
		t.Parallel()
		c := setup(t)
		require.NoError(t, c.ChangeLanguage("fr"))
		require.Equal(t, "fr", c.Language())
		require.Equal(t, "Ah", c.T("a"))
		require.Equal(t, "C", c.T("b.c"))
	})

	t.Run("switches to fallback and back", func(t *testing.T) {
		t.Parallel()
		c := setup(t)

		require.NoError(t, c.ChangeLanguage("en"))
		require.Equal(t, "en", c.Language())
		require.Equal(t, "A", c.T("a"))
		require.Equal(t, "Hello", c.T("greeting"))

		require.NoError(t, c.ChangeLanguage("fr"))
		require.Equal(t, "Ah", c.T("a"))
		require.Equal(t, "Bonjour", c.T("greeting"))
	})

	t.Run("switches between non-fallback languages", func(t *testing.T) {
		t.Parallel()
		dir := writeLocales(t, map[string]string{
			"messages.en.json":    `{"a":"A","only":"en only"}`,
			"messages.fr.json":    `{"a":"Ah"}`,
			"messages.pt-BR.json": `{"a":"Á"}`,
		})
		c := i18n.NewCatalog()
		require.NoError(t, c.Init(&i18n.Options{Language: "fr", LoadPath: dir}))
		require.Equal(t, []string{"en", "fr", "pt-BR"}, c.Languages())

		require.NoError(t, c.ChangeLanguage("pt-BR"))
		require.Equal(t, "Á", c.T("a"))
		require.Equal(t, "en only", c.T("only"))
	})
}

func TestOptionsFromEnv(t *testing.T) {
	t.Run("reads variables", func(t *testing.T) {
		t.Setenv("DESKIT_LANGUAGE", "fr")
		t.Setenv("DESKIT_FALLBACK_LANGUAGE", "de")
		t.Setenv("DESKIT_LOCALES_PATH", "/opt/app/locales")

		opts, err := i18n.OptionsFromEnv()
		require.NoError(t, err)
		require.Equal(t, &i18n.Options{Language: "fr", FallbackLanguage: "de", LoadPath: "/opt/app/locales"}, opts)
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("DESKIT_LANGUAGE", "")
		t.Setenv("DESKIT_FALLBACK_LANGUAGE", "")
		t.Setenv("DESKIT_LOCALES_PATH", "")
		require.NoError(t, os.Unsetenv("DESKIT_LANGUAGE"))
		require.NoError(t, os.Unsetenv("DESKIT_FALLBACK_LANGUAGE"))

		opts, err := i18n.OptionsFromEnv()
		require.NoError(t, err)
		require.Equal(t, "en", opts.Language)
		require.Equal(t, "en", opts.FallbackLanguage)
		require.Empty(t, opts.LoadPath)
	})
}
