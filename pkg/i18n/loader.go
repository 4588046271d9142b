package i18n

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/deskit/pkg/apperr"
)

const (
	filePrefix = "messages"
	fileExt    = "json"
)

// LanguageFromFilename returns the language id of a translation file name.
// A name is recognized iff it splits on "." into exactly three parts,
// the first being "messages" and the last "json": messages.pt-BR.json -> pt-BR.
func LanguageFromFilename(name string) (string, bool) {
	parts := strings.Split(name, ".")
	if len(parts) != 3 || parts[0] != filePrefix || parts[2] != fileExt {
		return "", false
	}
	return parts[1], true
}

// catalogState is the committed state of an initialized catalog.
// Init builds a fresh one and only publishes it on success.
type catalogState struct {
	messages         map[string]map[string]string
	fallbackMessages map[string]string
	active           map[string]string
	loaded           map[string]struct{}
	loadPath         string
	current          string
	fallback         string
}

// load scans dir and builds a state for the given languages.
// Any listing, read or parse failure aborts the whole scan.
func (c *Catalog) load(dir, lang, fallback string) (*catalogState, error) {
	entries, err := c.fsys.ReadDir(dir)
	if err != nil {
		return nil, apperr.FS(apperr.KindCatalog, fmt.Sprintf("failed to list translation directory %q", dir), err)
	}

	st := &catalogState{
		messages: make(map[string]map[string]string),
		loaded:   make(map[string]struct{}),
		loadPath: dir,
		current:  lang,
		fallback: fallback,
	}

	for _, entry := range entries {
		id, ok := LanguageFromFilename(entry.Name())
		if !ok || entry.IsDir() {
			c.logger.Debug("i18n: skipping file", slog.String("name", entry.Name()), slog.String("dir", dir))
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := c.fsys.ReadFile(path)
		if err != nil {
			return nil, apperr.FS(apperr.KindCatalog, fmt.Sprintf("failed to read translation file %q", path), err)
		}

		msgs, err := ParseMessages(data)
		if err != nil {
			return nil, apperr.Catalog(
				fmt.Sprintf("failed to parse translation file %q", path),
				apperr.WithCode(apperr.CodeParse),
				apperr.WithCause(err),
			)
		}

		st.loaded[id] = struct{}{}
		if id == fallback {
			st.fallbackMessages = msgs
		} else {
			st.messages[id] = msgs
		}
		if id == lang {
			st.active = msgs
		}

		c.logger.Debug("i18n: loaded translations",
			slog.String("language", id),
			slog.Int("keys", len(msgs)),
		)
	}

	if st.active == nil {
		return nil, apperr.Catalog(
			fmt.Sprintf("no translation file for language %q in %q", lang, dir),
			apperr.WithCode(apperr.CodeMissingLanguage),
		)
	}
	if st.fallbackMessages == nil {
		return nil, apperr.Catalog(
			fmt.Sprintf("no translation file for fallback language %q in %q", fallback, dir),
			apperr.WithCode(apperr.CodeMissingFallback),
		)
	}

	return st, nil
}
