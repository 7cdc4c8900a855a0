package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/astdb-dev/astdb/internal/config"
	"github.com/astdb-dev/astdb/internal/style"
	"github.com/astdb-dev/astdb/internal/workspace"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a .astdb database directory",
	Long: `Create the .astdb database directory and a default config.toml in
the given directory (default: current directory).

Example:
  astdb init           # Initialize the current directory
  astdb init ~/proj    # Initialize ~/proj`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving directory: %w", err)
	}

	if err := workspace.Init(root); err != nil {
		return err
	}

	cfgPath := workspace.ConfigFile(root)
	if _, err := os.Stat(cfgPath); err == nil {
		style.PrintWarning("config already exists at %s, leaving it untouched", cfgPath)
	} else {
		if err := config.Write(cfgPath, config.Default()); err != nil {
			return err
		}
	}

	style.PrintSuccess("initialized workspace at %s", root)
	return nil
}
