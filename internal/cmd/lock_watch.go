package cmd

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/astdb-dev/astdb/internal/tui/lockwatch"
	"github.com/astdb-dev/astdb/internal/workspace"
)

var lockWatchInterval time.Duration

var lockWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the lock file live",
	Long: `Show a live view of the database lock, refreshing periodically.

Keys: r refreshes immediately, q quits.

Example:
  astdb lock watch --interval 500ms`,
	RunE: runLockWatch,
}

func init() {
	lockWatchCmd.Flags().DurationVar(&lockWatchInterval, "interval", time.Second, "Refresh interval")
	lockCmd.AddCommand(lockWatchCmd)
}

func runLockWatch(cmd *cobra.Command, args []string) error {
	root, err := workspace.FindFromCwd()
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("lock watch requires a terminal (use 'astdb lock status --json' for scripting)")
	}

	m := lockwatch.New(workspace.LockFile(root), lockWatchInterval)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running watch UI: %w", err)
	}
	return nil
}
