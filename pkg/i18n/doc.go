// Package i18n provides a file-based translation catalog for desktop applications.
//
// A Catalog loads every messages.<lang>.json file from one directory at
// startup, flattens nested objects into dotted keys, and resolves lookups
// against the active language, then the fallback language, then the key
// itself. The active language can be switched at runtime among the loaded
// languages. Translation files are never reloaded.
//
// # Basic Usage
//
//	catalog := i18n.NewCatalog(i18n.WithLogger(log))
//	err := catalog.Init(&i18n.Options{
//		Language:         "fr",
//		FallbackLanguage: "en",
//		LoadPath:         "/opt/myapp/resources/locales",
//	})
//	if err != nil {
//		return err
//	}
//
//	title := catalog.T("menu.file")
//
// # File Convention
//
// A file is recognized iff its name splits on "." into exactly three parts:
// "messages", the language id, and "json". messages.pt-BR.json loads the
// language "pt-BR"; messages.en.txt, messages.json and en.json are ignored.
//
// # Nested Translations
//
//	messages.en.json:
//	{ "greeting": "Hello", "menu": { "file": "File", "edit": "Edit" } }
//
// flattens to greeting, menu.file and menu.edit. Numbers and booleans are
// stored as their JSON literal, null values are dropped, and array elements
// are keyed by index (list.0, list.1).
//
// # Errors
//
// Every failure is an *apperr.Error. Init reports filesystem problems with
// the ENOENT, EPERM or other errno codes and malformed JSON with
// PARSE_ERROR; see package apperr.
//
// # Language Negotiation
//
// Negotiate picks the best loaded language for the user's preferences:
//
//	lang := catalog.Negotiate(i18n.SystemLocales()...)
//	_ = catalog.ChangeLanguage(lang)
package i18n
