package fileutil

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rohmanhakim/nps-scraper/pkg/failure"
)

// GetFileExtension returns the lowercase extension of path without the dot,
// or empty string if none.
func GetFileExtension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// EnsureDir creates dir joined with path if it does not exist yet.
func EnsureDir(dir string, path ...string) failure.ClassifiedError {
	targetPath := append([]string{dir}, path...)

	target := filepath.Join(targetPath...)
	if err := os.MkdirAll(target, 0755); err != nil {
		return &FileError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCausePathError,
			Path:      target,
		}
	}
	return nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames it
// into place, so readers never observe a half-written file.
// Missing parent directories are created.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) failure.ClassifiedError {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &FileError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteError,
			Path:      path,
		}
	}
	tmpName := tmp.Name()

	writeErr := func(err error) failure.ClassifiedError {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &FileError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteError,
			Path:      path,
		}
	}

	if _, err := tmp.Write(data); err != nil {
		return writeErr(err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return writeErr(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &FileError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteError,
			Path:      path,
		}
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return &FileError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteError,
			Path:      path,
		}
	}
	return nil
}
