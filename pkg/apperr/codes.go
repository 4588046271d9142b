package apperr

import (
	"errors"
	"io/fs"
	"syscall"
)

// Error subcodes.
const (
	CodeNotFound         = "ENOENT"
	CodePermission       = "EPERM"
	CodeExists           = "EEXIST"
	CodeIsDir            = "EISDIR"
	CodeIO               = "EIO"
	CodeParse            = "PARSE_ERROR"
	CodeEncode           = "ENCODE_ERROR"
	CodeInitObject       = "INIT_OBJECT_ERROR"
	CodeAlreadyInit      = "ALREADY_INITIALIZED"
	CodeNotInit          = "NOT_INITIALIZED"
	CodeInvalidLoadPath  = "INVALID_LOAD_PATH"
	CodeMissingLanguage  = "MISSING_LANGUAGE"
	CodeMissingFallback  = "MISSING_FALLBACK"
	CodeLanguageNotFound = "LANGUAGE_NOT_LOADED"
	CodeUnsupported      = "UNSUPPORTED_FORMAT"
	CodeInvalidPath      = "INVALID_PATH"
	CodeInvalidMode      = "INVALID_MODE"
)

// errnoNames covers the errnos a local filesystem call realistically returns.
var errnoNames = map[syscall.Errno]string{
	syscall.ENOTDIR:      "ENOTDIR",
	syscall.EISDIR:       "EISDIR",
	syscall.EMFILE:       "EMFILE",
	syscall.ENFILE:       "ENFILE",
	syscall.ENOSPC:       "ENOSPC",
	syscall.EROFS:        "EROFS",
	syscall.ELOOP:        "ELOOP",
	syscall.ENAMETOOLONG: "ENAMETOOLONG",
	syscall.EBUSY:        "EBUSY",
	syscall.EINVAL:       "EINVAL",
}

// FSCode maps a filesystem error to a subcode.
// "not found" and "permission denied" get dedicated codes; other errno
// values keep their symbolic name; anything else is EIO.
func FSCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, fs.ErrNotExist):
		return CodeNotFound
	case errors.Is(err, fs.ErrPermission):
		return CodePermission
	case errors.Is(err, fs.ErrExist):
		return CodeExists
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if name, ok := errnoNames[errno]; ok {
			return name
		}
	}
	return CodeIO
}
