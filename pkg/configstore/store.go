package configstore

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrymomot/deskit/internal/fsutil"
	"github.com/dmitrymomot/deskit/pkg/apperr"
	"github.com/dmitrymomot/deskit/pkg/logger"
)

// DefaultFileMode keeps settings private to the user.
const DefaultFileMode fs.FileMode = 0o600

// Store reads and writes one settings document at an absolute path.
// Writes go to a temporary file in the same directory and are renamed over
// the target, so readers never see a partial document.
type Store struct {
	logger *slog.Logger
	codec  codec
	path   string
	format Format
	mode   fs.FileMode
	mu     sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithFormat overrides the format inferred from the file extension.
func WithFormat(f Format) Option {
	return func(s *Store) {
		s.format = f
	}
}

// WithFileMode sets the permissions of the written file.
// Default: 0o600.
func WithFileMode(mode fs.FileMode) Option {
	return func(s *Store) {
		if mode != 0 {
			s.mode = mode
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a store for path. The file does not need to exist.
// Files without a recognized extension default to JSON.
func New(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, apperr.InvalidParameter("config path")
	}
	if !filepath.IsAbs(path) {
		return nil, apperr.New(apperr.KindConfigStore,
			fmt.Sprintf("config path must be absolute, got %q", path),
			apperr.WithCode(apperr.CodeInvalidPath))
	}

	s := &Store{
		logger: logger.NewNope(),
		path:   filepath.Clean(path),
		format: FormatJSON,
		mode:   DefaultFileMode,
	}
	if f, ok := FormatFromPath(path); ok {
		s.format = f
	}
	for _, opt := range opts {
		opt(s)
	}

	c, ok := codecs[s.format]
	if !ok {
		return nil, apperr.New(apperr.KindConfigStore,
			fmt.Sprintf("unsupported config format %q", s.format),
			apperr.WithCode(apperr.CodeUnsupported))
	}
	s.codec = c

	return s, nil
}

// Path returns the absolute file path.
func (s *Store) Path() string { return s.path }

// Format returns the encoding used on disk.
func (s *Store) Format() Format { return s.format }

// Exists reports whether the file exists.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load decodes the file into dst. It reports false when the file does not
// exist or holds only whitespace, leaving dst untouched.
func (s *Store) Load(dst any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(dst)
}

// Save encodes src and atomically replaces the file, creating parent
// directories as needed.
func (s *Store) Save(src any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(src)
}

// Get returns a top-level value of the document.
func (s *Store) Get(key string) (any, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.document()
	if err != nil {
		return nil, false, err
	}
	v, ok := doc[key]
	return v, ok, nil
}

// Set writes a top-level value, keeping every other key.
func (s *Store) Set(key string, value any) error {
	if key == "" {
		return apperr.InvalidParameter("key")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.document()
	if err != nil {
		return err
	}
	doc[key] = value
	return s.save(doc)
}

// Delete removes a top-level key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.document()
	if err != nil {
		return err
	}
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return s.save(doc)
}

// Remove deletes the file. A missing file is not an error.
func (s *Store) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperr.FS(apperr.KindConfigStore, fmt.Sprintf("failed to remove %q", s.path), err)
	}
	return nil
}

func (s *Store) document() (map[string]any, error) {
	doc := make(map[string]any)
	if _, err := s.load(&doc); err != nil {
		return nil, err
	}
	if doc == nil {
		// a document of literal null
		doc = make(map[string]any)
	}
	return doc, nil
}

func (s *Store) load(dst any) (bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, apperr.FS(apperr.KindConfigStore, fmt.Sprintf("failed to read %q", s.path), err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}

	if err := s.codec.unmarshal(data, dst); err != nil {
		return false, apperr.New(apperr.KindConfigStore,
			fmt.Sprintf("failed to parse %q", s.path),
			apperr.WithCode(apperr.CodeParse), apperr.WithCause(err))
	}

	return true, nil
}

func (s *Store) save(src any) error {
	data, err := s.codec.marshal(src)
	if err != nil {
		return apperr.New(apperr.KindConfigStore,
			fmt.Sprintf("failed to encode %s config", s.format),
			apperr.WithCode(apperr.CodeEncode), apperr.WithCause(err))
	}

	if err := fsutil.WriteFile(s.path, data, s.mode); err != nil {
		return apperr.FS(apperr.KindConfigStore, fmt.Sprintf("failed to write %q", s.path), err)
	}

	s.logger.Debug("configstore: saved", slog.String("path", s.path), slog.Int("bytes", len(data)))
	return nil
}
