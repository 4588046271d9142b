package i18n

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Negotiate picks the loaded language that best matches the preferred
// BCP 47 tags, most preferred first (for example the list Electron's
// app.getPreferredSystemLanguages returns, or SystemLocales).
// Unparseable tags are ignored. When nothing matches, the fallback
// language is returned. Before Init it returns "".
//
// Example:
//
//	loaded: en (fallback), fr, pt-BR
//	Negotiate("fr-CA", "en")  // "fr"
//	Negotiate("de")           // "en"
func (c *Catalog) Negotiate(preferred ...string) string {
	c.mu.RLock()
	if c.state == nil {
		c.mu.RUnlock()
		return ""
	}
	ids := c.state.languages()
	fallback := c.state.fallback
	c.mu.RUnlock()

	// languages() puts the fallback first, so it is also the matcher's default.
	supported := make([]language.Tag, 0, len(ids))
	supportedIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		tag, err := language.Parse(id)
		if err != nil {
			continue
		}
		supported = append(supported, tag)
		supportedIDs = append(supportedIDs, id)
	}
	if len(supported) == 0 {
		return fallback
	}

	wanted := make([]language.Tag, 0, len(preferred))
	for _, p := range preferred {
		tag, err := language.Parse(normalizeLocale(p))
		if err != nil {
			continue
		}
		wanted = append(wanted, tag)
	}
	if len(wanted) == 0 {
		return fallback
	}

	_, idx, confidence := language.NewMatcher(supported).Match(wanted...)
	if confidence == language.No || idx < 0 || idx >= len(supportedIDs) {
		return fallback
	}
	return supportedIDs[idx]
}

// localeEnvVars is the POSIX lookup order for message locales.
var localeEnvVars = []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"}

// SystemLocales returns the user's preferred locales from the environment
// as BCP 47 tags, most preferred first, without duplicates.
// POSIX values are normalized: "pt_BR.UTF-8" becomes "pt-BR".
// The "C" and "POSIX" locales are skipped.
func SystemLocales() []string {
	var result []string
	seen := make(map[string]bool)

	for _, name := range localeEnvVars {
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		// LANGUAGE is a colon-separated priority list.
		for part := range strings.SplitSeq(value, ":") {
			tag := normalizeLocale(part)
			if tag == "" || tag == "C" || tag == "POSIX" || seen[tag] {
				continue
			}
			seen[tag] = true
			result = append(result, tag)
		}
	}

	return result
}

// normalizeLocale strips the POSIX codeset and modifier and converts
// underscores to hyphens.
func normalizeLocale(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	return strings.ReplaceAll(s, "_", "-")
}
