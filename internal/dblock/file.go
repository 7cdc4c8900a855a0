package dblock

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeLockFile publishes data at path via a temp file and atomic rename,
// so a concurrent reader never observes a partially-written record. The
// temp name includes our pid; concurrent writers from different processes
// cannot collide on it.
func writeLockFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating lock directory: %w", err)
	}

	tmp := fmt.Sprintf("%s.%d.tmp", path, os.Getpid())
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing lock temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) //nolint:errcheck // best-effort cleanup, original error wins
		return fmt.Errorf("publishing lock file: %w", err)
	}
	return nil
}

// readLockFile reads the record at path. The bool reports whether the file
// exists; absence is not an error.
func readLockFile(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading lock file: %w", err)
	}
	return data, true, nil
}

// RemoveRecord deletes the record file at path. Already-absent is success.
// Intended for maintenance surfaces (lock clean); the acquisition protocol
// removes stale records itself.
func RemoveRecord(path string) error {
	return removeLockFile(path)
}

// removeLockFile deletes the record at path. Already-absent is success.
func removeLockFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing lock file: %w", err)
	}
	return nil
}
