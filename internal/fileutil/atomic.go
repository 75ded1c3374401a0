// Package fileutil provides whole-file replacement helpers.
package fileutil

import (
	"os"
	"path/filepath"

	oerrors "github.com/openimis/fe-config/internal/errors"
)

// WriteAtomic writes data to a temporary file next to path and renames
// it over path, so readers never observe a partially written file.
func WriteAtomic(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return oerrors.WrapFS(err, "creating directory", dir)
		}
	}

	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return oerrors.WrapFS(err, "writing", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return oerrors.WrapFS(err, "replacing", path)
	}
	return nil
}
