// Package fsutil holds filesystem helpers shared by deskit packages.
package fsutil

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteFile writes data to path atomically.
func WriteFile(path string, data []byte, mode fs.FileMode) error {
	_, err := WriteFrom(path, bytes.NewReader(data), mode)
	return err
}

// WriteFrom streams r into a temporary file next to path, syncs it, sets
// mode and renames it over path. Parent directories are created with 0o755.
// On failure the temporary file is removed and path is left untouched.
func WriteFrom(path string, r io.Reader, mode fs.FileMode) (int64, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return 0, err
	}
	tmpName := tmp.Name()

	n, err := io.Copy(tmp, r)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpName, mode)
	}
	if err == nil {
		err = os.Rename(tmpName, path)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return 0, err
	}

	return n, nil
}
