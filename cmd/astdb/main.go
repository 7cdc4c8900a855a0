// astdb is the CLI for managing a shared AST database directory.
package main

import (
	"os"

	"github.com/astdb-dev/astdb/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
