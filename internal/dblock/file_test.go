package dblock

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteLockFileCreatesDirectoryAndPublishes(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".astdb", ".lock")

	if err := writeLockFile(path, []byte("one")); err != nil {
		t.Fatalf("writeLockFile: %v", err)
	}

	data, ok, err := readLockFile(path)
	if err != nil {
		t.Fatalf("readLockFile: %v", err)
	}
	if !ok || string(data) != "one" {
		t.Errorf("readLockFile = %q, %v; want %q, true", data, ok, "one")
	}

	// Replacing an existing record goes through the same rename path.
	if err := writeLockFile(path, []byte("two")); err != nil {
		t.Fatalf("writeLockFile overwrite: %v", err)
	}
	data, _, _ = readLockFile(path)
	if string(data) != "two" {
		t.Errorf("after overwrite = %q, want %q", data, "two")
	}

	// No temp files may survive a successful write.
	leftovers, err := filepath.Glob(path + ".*.tmp")
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestReadLockFileAbsent(t *testing.T) {
	_, ok, err := readLockFile(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("readLockFile: %v", err)
	}
	if ok {
		t.Error("readLockFile reported a missing file as present")
	}
}

func TestRemoveLockFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")

	// Absent is success, not an error.
	if err := removeLockFile(path); err != nil {
		t.Fatalf("removeLockFile absent: %v", err)
	}

	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := removeLockFile(path); err != nil {
		t.Fatalf("removeLockFile: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("lock file still present after remove")
	}
}
