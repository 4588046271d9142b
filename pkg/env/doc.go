// Package env detects whether a desktop application runs in development or
// production mode.
//
// The checks mirror what Electron apps do with electron-is-dev:
// ELECTRON_IS_DEV forces the mode, APP_ENV names it, and otherwise a binary
// built by "go run" or a debugger is development while anything else is
// treated as a packaged production build.
//
//	if env.IsDev() {
//		log = logger.NewConsole(slog.LevelDebug)
//	}
package env
