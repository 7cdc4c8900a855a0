package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/astdb-dev/astdb/internal/dblock"
	"github.com/astdb-dev/astdb/internal/style"
	"github.com/astdb-dev/astdb/internal/workspace"
)

// Lock command flags
var (
	lockStatusJSON bool
	lockCleanForce bool
)

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Inspect and maintain the database lock",
	RunE:  requireSubcommand,
	Long: `Inspect and maintain the .astdb lock file.

Commands:
  astdb lock status     Show the current lock holder
  astdb lock clean      Remove a stale lock record
  astdb lock run        Run a command while holding the lock
  astdb lock watch      Watch the lock file live`,
}

var lockStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current lock holder",
	Long: `Show who currently holds the database lock, how long they have
held it, and whether the record is still trustworthy.

Examples:
  astdb lock status          # Text output
  astdb lock status --json   # JSON output`,
	RunE: runLockStatus,
}

var lockCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove a stale lock record",
	Long: `Remove the lock record if its owner is gone or its timeout has
elapsed. A live record is left in place unless --force is given.`,
	RunE: runLockClean,
}

func init() {
	lockStatusCmd.Flags().BoolVar(&lockStatusJSON, "json", false, "Output as JSON")
	lockCleanCmd.Flags().BoolVar(&lockCleanForce, "force", false, "Remove the record even if its holder is alive")
	lockCmd.AddCommand(lockStatusCmd)
	lockCmd.AddCommand(lockCleanCmd)
	rootCmd.AddCommand(lockCmd)
}

// lockStatusItem is the JSON shape of `lock status --json`.
type lockStatusItem struct {
	Locked     bool   `json:"locked"`
	ID         string `json:"id,omitempty"`
	Type       string `json:"type,omitempty"`
	Operation  string `json:"operation,omitempty"`
	PID        int    `json:"pid,omitempty"`
	AcquiredAt string `json:"acquired_at,omitempty"`
	ExpiresAt  string `json:"expires_at,omitempty"`
	Alive      bool   `json:"alive,omitempty"`
	Stale      bool   `json:"stale,omitempty"`
}

func runLockStatus(cmd *cobra.Command, args []string) error {
	root, err := workspace.FindFromCwd()
	if err != nil {
		return err
	}

	record, err := dblock.ReadRecord(workspace.LockFile(root))
	if err != nil {
		return err
	}

	now := time.Now()
	if lockStatusJSON {
		item := lockStatusItem{Locked: record != nil}
		if record != nil {
			item.ID = record.ID
			item.Type = string(record.Type)
			item.Operation = record.Operation
			item.PID = record.PID
			item.AcquiredAt = record.AcquiredAt.Format(time.RFC3339)
			item.ExpiresAt = record.ExpiresAt().Format(time.RFC3339)
			item.Alive = dblock.ProcessAlive(record.PID)
			item.Stale = record.Stale(now)
		}
		out, err := json.MarshalIndent(item, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding status: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Println(style.Bold.Render("Database Lock"))
	fmt.Println(style.Dim.Render("  " + workspace.LockFile(root)))
	fmt.Println()

	if record == nil {
		fmt.Println("  " + style.Success.Render("unlocked"))
		return nil
	}

	t := style.NewTable(
		style.Column{Name: "TYPE", Width: 10},
		style.Column{Name: "OPERATION", Width: 24},
		style.Column{Name: "PID", Width: 8, Right: true},
		style.Column{Name: "HELD FOR", Width: 12, Right: true},
		style.Column{Name: "STATE", Width: 22},
	)
	t.AddRow(
		string(record.Type),
		record.Operation,
		fmt.Sprintf("%d", record.PID),
		now.Sub(record.AcquiredAt).Round(time.Second).String(),
		describeState(record, now),
	)
	fmt.Print(t.Render())
	if record.OwnedByCurrentProcess() {
		fmt.Println(style.Dim.Render("  (held by this process)"))
	}
	return nil
}

// describeState classifies a record for display.
func describeState(record *dblock.Lock, now time.Time) string {
	switch {
	case record.Expired(now):
		return style.Error.Render("stale (timeout elapsed)")
	case !dblock.ProcessAlive(record.PID):
		return style.Error.Render("stale (owner gone)")
	default:
		return style.Warning.Render("held")
	}
}

func runLockClean(cmd *cobra.Command, args []string) error {
	root, err := workspace.FindFromCwd()
	if err != nil {
		return err
	}
	path := workspace.LockFile(root)

	record, err := dblock.ReadRecord(path)
	if err != nil {
		// A record we cannot even parse proves nothing about its owner;
		// clean is exactly the tool for getting rid of it.
		style.PrintWarning("lock record is unreadable (%v), removing it", err)
		return dblock.RemoveRecord(path)
	}
	if record == nil {
		fmt.Println("no lock file present")
		return nil
	}

	if !record.Stale(time.Now()) && !lockCleanForce {
		return fmt.Errorf("lock is held by live process: %q (pid %d) since %s — use --force to remove anyway",
			record.Operation, record.PID, record.AcquiredAt.Format(time.RFC3339))
	}

	if err := dblock.RemoveRecord(path); err != nil {
		return err
	}
	style.PrintSuccess("removed lock record (was %q, pid %d)", record.Operation, record.PID)
	return nil
}
