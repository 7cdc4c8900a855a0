package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/astdb-dev/astdb/internal/dblock"
)

// Lock run flags
var (
	lockRunShared     bool
	lockRunOperation  string
	lockRunTimeout    time.Duration
	lockRunRetries    int
	lockRunRetryDelay time.Duration
)

var lockRunCmd = &cobra.Command{
	Use:   "run -- CMD [ARGS...]",
	Short: "Run a command while holding the database lock",
	Long: `Acquire the database lock, run the given command, and release the
lock when it exits — on success, failure, or signal. The astdb exit code
mirrors the child's.

Examples:
  astdb lock run -- make reindex
  astdb lock run --shared --operation query -- ./report.sh
  astdb lock run --timeout 2m --retries 50 -- slow-migration`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLockRun,
}

func init() {
	lockRunCmd.Flags().BoolVar(&lockRunShared, "shared", false, "Acquire a shared (reader) lock instead of exclusive")
	lockRunCmd.Flags().StringVar(&lockRunOperation, "operation", "", "Operation label recorded in the lock file (default: the command name)")
	lockRunCmd.Flags().DurationVar(&lockRunTimeout, "timeout", 0, "How long the lock record stays valid (default from config)")
	lockRunCmd.Flags().IntVar(&lockRunRetries, "retries", 0, "Acquisition attempts before giving up (default from config)")
	lockRunCmd.Flags().DurationVar(&lockRunRetryDelay, "retry-delay", 0, "Delay between acquisition attempts (default from config)")
	lockCmd.AddCommand(lockRunCmd)
}

func runLockRun(cmd *cobra.Command, args []string) error {
	mgr, _, err := openManager()
	if err != nil {
		return err
	}

	operation := lockRunOperation
	if operation == "" {
		operation = args[0]
	}
	opts := &dblock.Options{
		Timeout:    lockRunTimeout,
		MaxRetries: lockRunRetries,
		RetryDelay: lockRunRetryDelay,
	}

	hold := mgr.WithExclusive
	if lockRunShared {
		hold = mgr.WithShared
	}

	exitCode := 0
	err = hold(operation, opts, func() error {
		child := exec.Command(args[0], args[1:]...) //nolint:gosec // G204: running the user's own command is the point
		child.Stdin = os.Stdin
		child.Stdout = os.Stdout
		child.Stderr = os.Stderr

		runErr := child.Run()
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
			return nil
		}
		if runErr != nil {
			return fmt.Errorf("running %s: %w", args[0], runErr)
		}
		return nil
	})
	if err != nil {
		return describeLockError(err)
	}

	// The lock is released by the time we get here; mirroring the child's
	// exit code must not skip that.
	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}
