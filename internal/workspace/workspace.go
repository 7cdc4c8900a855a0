// Package workspace locates and lays out the .astdb database directory
// that the rest of the tool coordinates around.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// On-disk layout inside a workspace root.
const (
	// DirName is the database directory, and the marker that identifies a
	// workspace root.
	DirName = ".astdb"

	lockFileName   = ".lock"
	configFileName = "config.toml"
)

// Dir returns the database directory for a workspace root.
func Dir(root string) string {
	return filepath.Join(root, DirName)
}

// LockFile returns the lock record path for a workspace root.
func LockFile(root string) string {
	return filepath.Join(root, DirName, lockFileName)
}

// ConfigFile returns the configuration path for a workspace root.
func ConfigFile(root string) string {
	return filepath.Join(root, DirName, configFileName)
}

// Find walks up from startDir to the workspace root, identified by the
// presence of a .astdb directory. Returns an error when the filesystem
// root is reached without finding one.
func Find(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving start directory: %w", err)
	}
	for {
		if info, err := os.Stat(Dir(dir)); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s directory found in %s or any parent (run 'astdb init' first)", DirName, startDir)
		}
		dir = parent
	}
}

// FindFromCwd locates the workspace root containing the current directory.
func FindFromCwd() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return Find(cwd)
}

// Init creates the database directory under root. Idempotent.
func Init(root string) error {
	if err := os.MkdirAll(Dir(root), 0755); err != nil {
		return fmt.Errorf("creating %s directory: %w", DirName, err)
	}
	return nil
}
