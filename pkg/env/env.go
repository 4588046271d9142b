package env

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/deskit/pkg/apperr"
)

// Mode is the runtime mode of the application.
type Mode string

const (
	Development Mode = "development"
	Production  Mode = "production"
)

func (m Mode) String() string { return string(m) }

// IsDev reports whether m is Development.
func (m Mode) IsDev() bool { return m == Development }

// Config holds the environment variables that force a mode.
type Config struct {
	// IsDev mirrors electron-is-dev: when set it wins over everything else.
	// "1" and true-like values mean development, any other value production.
	IsDev string `env:"ELECTRON_IS_DEV"`

	// AppEnv accepts development/dev/local or production/prod.
	AppEnv string `env:"APP_ENV"`
}

// Detector resolves the runtime mode.
type Detector struct {
	environ    map[string]string
	executable func() (string, error)
}

// Option configures a Detector.
type Option func(*Detector)

// WithEnvironment replaces the process environment.
func WithEnvironment(environ map[string]string) Option {
	return func(d *Detector) {
		d.environ = environ
	}
}

// WithExecutable replaces os.Executable.
func WithExecutable(fn func() (string, error)) Option {
	return func(d *Detector) {
		if fn != nil {
			d.executable = fn
		}
	}
}

// NewDetector creates a Detector reading the process environment.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{executable: os.Executable}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect returns the runtime mode. Precedence:
//  1. ELECTRON_IS_DEV, when set
//  2. APP_ENV
//  3. Development when the binary was produced by "go run" or a debugger,
//     Production otherwise (a packaged app).
func (d *Detector) Detect() (Mode, error) {
	cfg, err := d.config()
	if err != nil {
		return "", err
	}

	if v := strings.TrimSpace(cfg.IsDev); v != "" {
		if dev, err := strconv.ParseBool(v); err == nil && dev {
			return Development, nil
		}
		return Production, nil
	}

	if cfg.AppEnv != "" {
		return ParseMode(cfg.AppEnv)
	}

	exe, err := d.executable()
	if err != nil {
		// Without an executable path there is no sign of a dev build.
		return Production, nil
	}
	if isDevBuild(exe) {
		return Development, nil
	}
	return Production, nil
}

func (d *Detector) config() (Config, error) {
	var opts env.Options
	if d.environ != nil {
		opts.Environment = d.environ
	}
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, apperr.New(apperr.KindEnvironment, "failed to parse environment",
			apperr.WithCode(apperr.CodeInvalidMode), apperr.WithCause(err))
	}
	return cfg, nil
}

// ParseMode converts an APP_ENV style value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev", "local":
		return Development, nil
	case "production", "prod":
		return Production, nil
	default:
		return "", apperr.New(apperr.KindEnvironment, fmt.Sprintf("unknown mode %q", s),
			apperr.WithCode(apperr.CodeInvalidMode))
	}
}

// isDevBuild reports whether exe was built by "go run"/"go test"
// (temporary go-build directory) or by delve (__debug_bin).
func isDevBuild(exe string) bool {
	if strings.HasPrefix(filepath.Base(exe), "__debug_bin") {
		return true
	}
	for _, part := range strings.Split(filepath.ToSlash(exe), "/") {
		if strings.HasPrefix(part, "go-build") {
			return true
		}
	}
	return false
}

// Detect resolves the mode from the process environment.
func Detect() (Mode, error) {
	return NewDetector().Detect()
}

// IsDev reports whether the process runs in development mode.
// Detection errors count as production.
func IsDev() bool {
	m, err := Detect()
	return err == nil && m == Development
}

// IsProd reports whether the process runs in production mode.
func IsProd() bool {
	return !IsDev()
}
