package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir and its parents if needed.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: create output dir %q: %w", dir, err)
	}
	return nil
}

// WriteFileAtomic writes data to dir/name through a temporary file in the same
// directory followed by a rename, so readers never see a half-written file.
func WriteFileAtomic(dir, name string, data []byte) (string, error) {
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	dst := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("storage: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return "", fmt.Errorf("storage: write %q: %w", dst, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return "", fmt.Errorf("storage: chmod %q: %w", dst, err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("storage: sync %q: %w", dst, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("storage: close %q: %w", dst, err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return "", fmt.Errorf("storage: rename into %q: %w", dst, err)
	}
	return dst, nil
}
