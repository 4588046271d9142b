// Package paths resolves per-user application directories following the
// XDG base directory layout on Linux and the platform conventions on macOS
// and Windows (via github.com/adrg/xdg).
//
// Set DESKIT_USER_DATA_DIR to share the directory Electron reports for
// app.getPath("userData").
package paths
