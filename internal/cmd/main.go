// Package cmd implements the astdb command tree.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/astdb-dev/astdb/internal/style"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "astdb",
	Short:   "Manage a shared AST database directory",
	Version: Version,
	Long: `astdb manages the .astdb database directory shared by every
invocation of the tool in a workspace.

Independent processes (cron jobs, editors, CI) coordinate through a lock
file so at most one writer mutates the database at a time. The lock
subcommands inspect and maintain that coordination.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// requireSubcommand is the RunE for commands that only group subcommands.
func requireSubcommand(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		style.PrintError("%v", err)
		return 1
	}
	return 0
}
