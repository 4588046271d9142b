package skeleton

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dmitrymomot/deskit/internal/fsutil"
	"github.com/dmitrymomot/deskit/pkg/apperr"
	"github.com/dmitrymomot/deskit/pkg/logger"
)

// DefaultFileMode is the permission of an installed database.
const DefaultFileMode fs.FileMode = 0o644

// Result describes an Install call.
type Result struct {
	// Path is the cleaned destination path.
	Path string
	// Bytes is the number of bytes copied, zero when Copied is false.
	Bytes int64
	// Copied is false when the destination already existed and was kept.
	Copied bool
}

// Option configures Install.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	mode      fs.FileMode
	overwrite bool
}

// WithOverwrite replaces an existing destination.
func WithOverwrite() Option {
	return func(o *options) {
		o.overwrite = true
	}
}

// WithFileMode sets the permission of the installed file.
// Default: 0o644.
func WithFileMode(mode fs.FileMode) Option {
	return func(o *options) {
		if mode != 0 {
			o.mode = mode
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: logger.NewNope(), mode: DefaultFileMode}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Install copies the template database at src to dst unless dst exists.
// Both paths must be absolute. The copy lands in a temporary file that is
// renamed over dst, so an interrupted install never leaves a truncated
// database behind.
func Install(src, dst string, opts ...Option) (Result, error) {
	if src == "" || !filepath.IsAbs(src) {
		return Result{}, apperr.InvalidParameter("absolute source path")
	}
	if dst == "" || !filepath.IsAbs(dst) {
		return Result{}, apperr.InvalidParameter("absolute destination path")
	}
	src = filepath.Clean(src)

	open := func() (io.ReadCloser, error) {
		fi, err := os.Stat(src)
		if err != nil {
			return nil, err
		}
		if fi.IsDir() {
			return nil, errIsDir(src)
		}
		return os.Open(src)
	}

	return install(src, filepath.Clean(dst), open, newOptions(opts))
}

// InstallFS is Install with the template read from fsys, typically an
// embed.FS compiled into the binary.
func InstallFS(fsys fs.FS, name, dst string, opts ...Option) (Result, error) {
	if fsys == nil {
		return Result{}, apperr.InvalidParameter("filesystem")
	}
	if !fs.ValidPath(name) || name == "." {
		return Result{}, apperr.New(apperr.KindInvalidParameter,
			fmt.Sprintf("invalid skeleton name %q", name),
			apperr.WithCode(apperr.CodeInvalidPath))
	}
	if dst == "" || !filepath.IsAbs(dst) {
		return Result{}, apperr.InvalidParameter("absolute destination path")
	}

	open := func() (io.ReadCloser, error) {
		fi, err := fs.Stat(fsys, name)
		if err != nil {
			return nil, err
		}
		if fi.IsDir() {
			return nil, errIsDir(name)
		}
		return fsys.Open(name)
	}

	return install(name, filepath.Clean(dst), open, newOptions(opts))
}

func install(src, dst string, open func() (io.ReadCloser, error), o options) (Result, error) {
	res := Result{Path: dst}

	if !o.overwrite {
		_, err := os.Stat(dst)
		switch {
		case err == nil:
			o.logger.Debug("skeleton: database exists, skipping", slog.String("path", dst))
			return res, nil
		case !errors.Is(err, fs.ErrNotExist):
			return res, apperr.FS(apperr.KindDatabase, fmt.Sprintf("failed to stat %q", dst), err)
		}
	}

	r, err := open()
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return res, err
		}
		return res, apperr.FS(apperr.KindDatabase, fmt.Sprintf("failed to open skeleton %q", src), err)
	}
	defer r.Close()

	n, err := fsutil.WriteFrom(dst, r, o.mode)
	if err != nil {
		return res, apperr.FS(apperr.KindDatabase, fmt.Sprintf("failed to install %q", dst), err)
	}

	res.Copied = true
	res.Bytes = n
	o.logger.Info("skeleton: database installed",
		slog.String("source", src),
		slog.String("path", dst),
		slog.Int64("bytes", n),
	)

	return res, nil
}

func errIsDir(name string) error {
	return apperr.New(apperr.KindDatabase,
		fmt.Sprintf("skeleton %q is a directory", name),
		apperr.WithCode(apperr.CodeIsDir))
}
