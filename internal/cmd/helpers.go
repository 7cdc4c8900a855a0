package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/astdb-dev/astdb/internal/config"
	"github.com/astdb-dev/astdb/internal/dblock"
	"github.com/astdb-dev/astdb/internal/style"
	"github.com/astdb-dev/astdb/internal/workspace"
)

// styleLogger adapts style.PrintWarning to the dblock.Logger interface.
type styleLogger struct{}

func (styleLogger) Warn(format string, args ...any) {
	style.PrintWarning(format, args...)
}

// openManager locates the workspace from the current directory and builds
// a lock manager configured from its config.toml.
func openManager() (*dblock.Manager, string, error) {
	root, err := workspace.FindFromCwd()
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load(workspace.ConfigFile(root))
	if err != nil {
		return nil, "", err
	}

	mgr := dblock.NewManager(root)
	mgr.SetDefaults(cfg.LockOptions())
	mgr.SetLogger(styleLogger{})
	return mgr, root, nil
}

// describeLockError turns protocol errors into the user-facing "another
// process is using the database" message, naming the competing operation,
// pid, and how long it has held the lock. Other errors pass through.
func describeLockError(err error) error {
	var te *dblock.TimeoutError
	if errors.As(err, &te) {
		if te.LastConflict != nil {
			return fmt.Errorf("another process is using the database: %q (pid %d) has held the lock for %s; gave up after %d attempts",
				te.LastConflict.Operation, te.LastConflict.PID,
				time.Since(te.LastConflict.AcquiredAt).Round(time.Second), te.Attempts)
		}
		return fmt.Errorf("another process is using the database; gave up after %d attempts", te.Attempts)
	}

	var ce *dblock.ConflictError
	if errors.As(err, &ce) {
		return fmt.Errorf("another process is using the database: %q (pid %d) holds a %s lock",
			ce.Existing.Operation, ce.Existing.PID, ce.Existing.Type)
	}

	return err
}
