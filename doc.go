// Package deskit provides the Go side of a desktop application: runtime mode
// detection, per-user directories, a settings file, first-run database
// installation and file-based translations.
//
// Everything is plain files in the user data directory, so an Electron (or
// any other) frontend can share the same folder and the same locales.
//
// # Quick Start
//
//	app, err := deskit.New("notes",
//	    deskit.WithLocales("locales"),
//	    deskit.WithFallbackLanguage("en"),
//	    deskit.WithSkeletonDatabase(skeletonPath, "notes.db"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer app.Close(context.Background())
//
//	fmt.Println(app.T("menu.file.open"))
//
// # Mode
//
// The runtime mode comes from ELECTRON_IS_DEV, then APP_ENV, then the
// executable itself (binaries built by "go run" count as development).
// Development mode logs colored text to stderr; production logs JSON and,
// when SENTRY_DSN is set, reports warnings and errors to Sentry.
// Override detection with WithMode.
//
// # Directories
//
// User data lives in the platform config directory (~/.config/<app> on
// Linux). Set DESKIT_USER_DATA_DIR to share Electron's userData folder,
// or pass WithPaths.
//
// # Languages
//
// With WithLocales, every messages.<lang>.json file in the directory is
// loaded. The active language is the one saved by SetLanguage, otherwise
// the closest match to the system locales, otherwise the fallback:
//
//	if err := app.SetLanguage("fr"); err != nil {
//	    return err
//	}
//
// # Shutdown
//
// Register cleanup functions with WithShutdownHook; Close runs them and
// flushes pending Sentry events:
//
//	app, err := deskit.New("notes",
//	    deskit.WithShutdownHook(func(ctx context.Context) error {
//	        return db.Close()
//	    }),
//	)
package deskit
