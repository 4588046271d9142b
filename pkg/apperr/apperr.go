package apperr

import (
	"errors"
	"strings"
)

// Kind classifies an Error. Each kind has a sentinel that errors.Is matches.
type Kind uint8

const (
	KindConfiguration Kind = iota + 1
	KindInvalidParameter
	KindCatalog
	KindConfigStore
	KindDatabase
	KindEnvironment
)

// Sentinel errors, one per Kind.
var (
	ErrConfiguration    = errors.New("configuration error")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrCatalog          = errors.New("catalog error")
	ErrConfigStore      = errors.New("config store error")
	ErrDatabase         = errors.New("database error")
	ErrEnvironment      = errors.New("environment error")
)

// String returns the kind name used as error message prefix.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindInvalidParameter:
		return "invalid parameter"
	case KindCatalog:
		return "catalog"
	case KindConfigStore:
		return "config store"
	case KindDatabase:
		return "database"
	case KindEnvironment:
		return "environment"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindConfiguration:
		return ErrConfiguration
	case KindInvalidParameter:
		return ErrInvalidParameter
	case KindCatalog:
		return ErrCatalog
	case KindConfigStore:
		return ErrConfigStore
	case KindDatabase:
		return ErrDatabase
	case KindEnvironment:
		return ErrEnvironment
	default:
		return nil
	}
}

// Error is the typed error returned by every deskit package.
// It carries a human-readable message, an optional machine code
// and the underlying cause.
type Error struct {
	// Err is the underlying cause (filesystem error, parse error, ...).
	Err error

	// Message is the human-readable description.
	Message string

	// Code is an optional machine-readable subcode (ENOENT, PARSE_ERROR, ...).
	Code string

	// Kind selects which sentinel the error matches.
	Kind Kind
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Code != "" {
		b.WriteString(" [")
		b.WriteString(e.Code)
		b.WriteString("]")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for the error's kind.
// A configuration error is also an invalid parameter: both describe
// a caller that did not supply what the operation needs.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if target == e.Kind.sentinel() {
		return true
	}
	return e.Kind == KindConfiguration && target == ErrInvalidParameter
}

// Option configures an Error.
type Option func(*Error)

// WithCode sets the machine-readable subcode.
func WithCode(code string) Option {
	return func(e *Error) {
		e.Code = code
	}
}

// WithCause attaches the underlying error.
func WithCause(err error) Option {
	return func(e *Error) {
		e.Err = err
	}
}

// New creates an Error of the given kind.
func New(kind Kind, message string, opts ...Option) *Error {
	e := &Error{Kind: kind, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Configuration reports a missing or unusable configuration object.
func Configuration(message string, opts ...Option) *Error {
	return New(KindConfiguration, message, append([]Option{WithCode(CodeInitObject)}, opts...)...)
}

// InvalidParameter reports that a required argument was not provided.
func InvalidParameter(name string, opts ...Option) *Error {
	return New(KindInvalidParameter, name+" is required", opts...)
}

// Catalog creates a translation catalog error.
func Catalog(message string, opts ...Option) *Error {
	return New(KindCatalog, message, opts...)
}

// FS wraps a filesystem error with the code derived from it.
func FS(kind Kind, message string, err error) *Error {
	return New(kind, message, WithCode(FSCode(err)), WithCause(err))
}

// Code returns the code of the first *Error in err's chain, or "".
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
