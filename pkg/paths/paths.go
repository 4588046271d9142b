package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/dmitrymomot/deskit/pkg/apperr"
)

// EnvUserDataDir overrides the user data directory, for example with the
// value of Electron's app.getPath("userData") so both sides share one folder.
const EnvUserDataDir = "DESKIT_USER_DATA_DIR"

// ConfigFileName is the name of the settings file inside UserData.
const ConfigFileName = "config.json"

// Paths holds the per-user directories of an application.
type Paths struct {
	// UserData holds settings and databases.
	// Linux: ~/.config/<app>, macOS: ~/Library/Application Support/<app>,
	// Windows: %LOCALAPPDATA%\<app>.
	UserData string
	// Logs holds log files (XDG state home).
	Logs string
	// Cache holds disposable data (XDG cache home).
	Cache string
}

// Resolve computes the directories for appName. Nothing is created;
// call Ensure for that.
func Resolve(appName string) (Paths, error) {
	appName = strings.TrimSpace(appName)
	if appName == "" {
		return Paths{}, apperr.InvalidParameter("app name")
	}
	if strings.ContainsAny(appName, `/\`) || appName == "." || appName == ".." {
		return Paths{}, apperr.New(apperr.KindInvalidParameter,
			fmt.Sprintf("app name %q must not contain path separators", appName),
			apperr.WithCode(apperr.CodeInvalidPath))
	}

	userData := filepath.Join(xdg.ConfigHome, appName)
	if override := strings.TrimSpace(os.Getenv(EnvUserDataDir)); override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return Paths{}, apperr.New(apperr.KindInvalidParameter,
				fmt.Sprintf("invalid %s %q", EnvUserDataDir, override),
				apperr.WithCode(apperr.CodeInvalidPath), apperr.WithCause(err))
		}
		userData = abs
	}

	return Paths{
		UserData: userData,
		Logs:     filepath.Join(xdg.StateHome, appName),
		Cache:    filepath.Join(xdg.CacheHome, appName),
	}, nil
}

// Ensure creates every directory with 0o755.
func (p Paths) Ensure() error {
	for _, dir := range []string{p.UserData, p.Logs, p.Cache} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperr.FS(apperr.KindConfiguration, fmt.Sprintf("failed to create directory %q", dir), err)
		}
	}
	return nil
}

// ConfigFile returns the path of the settings file.
func (p Paths) ConfigFile() string {
	return filepath.Join(p.UserData, ConfigFileName)
}

// Database returns the path of a database file inside UserData.
func (p Paths) Database(name string) string {
	return filepath.Join(p.UserData, name)
}

// Resources returns dir resolved against the directory of the running
// executable, where packaged apps ship read-only resources such as locales.
// Absolute paths are returned cleaned.
func Resources(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir), nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", apperr.FS(apperr.KindConfiguration, "failed to locate executable", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), dir), nil
}
