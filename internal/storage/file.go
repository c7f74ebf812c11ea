// filepath: internal/storage/file.go
// Package storage maps gallery paths onto the storage root and writes rendered output.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SaveFile streams data to path, creating missing parent directories.
func SaveFile(data io.Reader, path string) (int64, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("could not create directory structure: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("could not create file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, data)
	if err != nil {
		return 0, fmt.Errorf("could not write file: %w", err)
	}
	return size, nil
}
