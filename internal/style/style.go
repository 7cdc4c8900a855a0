// Package style provides consistent terminal styling using Lipgloss.
package style

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Semantic styles shared by all commands.
var (
	Bold    = lipgloss.NewStyle().Bold(true)
	Dim     = lipgloss.NewStyle().Faint(true)
	Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	Error   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// PrintSuccess prints a success message to stdout.
func PrintSuccess(format string, args ...any) {
	fmt.Println(Success.Render(fmt.Sprintf(format, args...)))
}

// PrintWarning prints a warning to stderr.
func PrintWarning(format string, args ...any) {
	fmt.Fprintln(os.Stderr, Warning.Render("warning: "+fmt.Sprintf(format, args...)))
}

// PrintError prints an error to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintln(os.Stderr, Error.Render("error: "+fmt.Sprintf(format, args...)))
}
