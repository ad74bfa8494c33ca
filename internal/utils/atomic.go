package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// tempPattern never contains ".toml" so a leftover temp file is not picked up
// as a config template.
const tempPattern = ".tmp-*"

// WriteFileAtomic writes data to a temp file in the target directory and
// renames it over path. Readers see either the old or the new content.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return fmt.Errorf("create temp file in %q: %w", dir, err)
	}
	tmpName := tmp.Name()

	cleanup := func(cause error) error {
		tmp.Close()
		if removeErr := os.Remove(tmpName); removeErr != nil && !os.IsNotExist(removeErr) {
			return errors.Join(cause, fmt.Errorf("remove temp file %q: %w", tmpName, removeErr))
		}
		return cause
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("write temp file %q: %w", tmpName, err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("sync temp file %q: %w", tmpName, err))
	}
	if err := tmp.Chmod(perm); err != nil {
		return cleanup(fmt.Errorf("chmod temp file %q: %w", tmpName, err))
	}
	if err := tmp.Close(); err != nil {
		return cleanup(fmt.Errorf("close temp file %q: %w", tmpName, err))
	}

	if err := os.Rename(tmpName, path); err != nil {
		return cleanup(fmt.Errorf("rename %q to %q: %w", tmpName, path, err))
	}
	return nil
}
