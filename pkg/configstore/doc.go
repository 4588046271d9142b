// Package configstore persists a small settings document in the user data
// directory.
//
// The encoding follows the file extension (.json, .yaml/.yml, .toml) unless
// overridden with WithFormat. Every write is atomic: the document is encoded,
// written to a sibling temporary file, synced and renamed over the target.
//
//	store, err := configstore.New(filepath.Join(dataDir, "config.json"))
//	if err != nil {
//		return err
//	}
//	if err := store.Set("language", "fr"); err != nil {
//		return err
//	}
//	lang, ok, err := store.Get("language")
//
// Whole documents round-trip through Load and Save:
//
//	var s Settings
//	found, err := store.Load(&s)
//
// A missing or blank file loads as "not found" rather than an error. Malformed
// content is reported as a ConfigStoreError with code PARSE_ERROR.
package configstore
