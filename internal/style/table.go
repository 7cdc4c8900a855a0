package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column with name and width.
type Column struct {
	Name  string
	Width int
	Right bool // right-align values
	Style lipgloss.Style
}

// Table renders rows of values under styled, fixed-width headers.
type Table struct {
	columns []Column
	rows    [][]string
	indent  string
}

// NewTable creates a table with the given columns.
func NewTable(columns ...Column) *Table {
	return &Table{columns: columns, indent: "  "}
}

// AddRow appends a row of values. Short rows are padded with blanks.
func (t *Table) AddRow(values ...string) *Table {
	for len(values) < len(t.columns) {
		values = append(values, "")
	}
	t.rows = append(t.rows, values)
	return t
}

// Render returns the formatted table string.
func (t *Table) Render() string {
	if len(t.columns) == 0 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(t.indent)
	total := 0
	for i, col := range t.columns {
		sb.WriteString(pad(Bold.Render(col.Name), col.Name, col.Width, false))
		total += col.Width
		if i < len(t.columns)-1 {
			sb.WriteString(" ")
			total++
		}
	}
	sb.WriteString("\n")
	sb.WriteString(t.indent)
	sb.WriteString(Dim.Render(strings.Repeat("─", total)))
	sb.WriteString("\n")

	for _, row := range t.rows {
		sb.WriteString(t.indent)
		for i, col := range t.columns {
			val := row[i]
			plain := val
			if w := lipgloss.Width(val); w > col.Width && col.Width > 3 {
				val = truncate(val, col.Width-3) + "..."
				plain = val
			}
			if col.Style.Value() != "" {
				val = col.Style.Render(val)
			}
			sb.WriteString(pad(val, plain, col.Width, col.Right))
			if i < len(t.columns)-1 {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// pad pads styled text to width using the plain text's visible width, so
// ANSI escape sequences don't skew the alignment.
func pad(styled, plain string, width int, right bool) string {
	visible := lipgloss.Width(plain)
	if visible >= width {
		return styled
	}
	padding := strings.Repeat(" ", width-visible)
	if right {
		return padding + styled
	}
	return styled + padding
}

// truncate cuts a string to at most width visible cells.
func truncate(s string, width int) string {
	var sb strings.Builder
	for _, r := range s {
		if lipgloss.Width(sb.String()+string(r)) > width {
			break
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
