// Package lockwatch implements the live lock-file view behind
// `astdb lock watch`.
package lockwatch

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/astdb-dev/astdb/internal/dblock"
	"github.com/astdb-dev/astdb/internal/style"
)

// KeyMap defines the key bindings for the watch view.
type KeyMap struct {
	Refresh key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Refresh, k.Quit}}
}

type tickMsg time.Time

// recordMsg carries the result of one lock-file read.
type recordMsg struct {
	record *dblock.Lock
	err    error
}

// Model is the bubbletea model for the watch view.
type Model struct {
	lockPath string
	interval time.Duration

	record  *dblock.Lock
	readErr error
	checked time.Time

	width int
	keys  KeyMap
	help  help.Model
}

// New creates a watch model for the given lock file path, refreshing every
// interval.
func New(lockPath string, interval time.Duration) Model {
	return Model{
		lockPath: lockPath,
		interval: interval,
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.readRecord, m.tick())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// readRecord reads the lock file once, off the update loop.
func (m Model) readRecord() tea.Msg {
	record, err := dblock.ReadRecord(m.lockPath)
	return recordMsg{record: record, err: err}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.readRecord
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tickMsg:
		return m, tea.Batch(m.readRecord, m.tick())

	case recordMsg:
		m.record = msg.record
		m.readErr = msg.err
		m.checked = time.Now()
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	s := "\n" + style.Bold.Render("  Lock: "+m.lockPath) + "\n\n"

	switch {
	case m.readErr != nil:
		s += "  " + style.Error.Render(m.readErr.Error()) + "\n"
	case m.record == nil:
		s += "  " + style.Success.Render("unlocked") + "\n"
	default:
		s += renderRecord(m.record)
	}

	if !m.checked.IsZero() {
		s += "\n" + style.Dim.Render(fmt.Sprintf("  checked %s", m.checked.Format("15:04:05")))
	}
	s += "\n\n  " + m.help.View(m.keys) + "\n"
	return s
}

// renderRecord formats the current holder and its staleness classification.
func renderRecord(l *dblock.Lock) string {
	now := time.Now()

	state := style.Warning.Render("held")
	switch {
	case l.Expired(now):
		state = style.Error.Render("stale (timeout elapsed)")
	case !dblock.ProcessAlive(l.PID):
		state = style.Error.Render("stale (owner gone)")
	}

	t := style.NewTable(
		style.Column{Name: "TYPE", Width: 10},
		style.Column{Name: "OPERATION", Width: 24},
		style.Column{Name: "PID", Width: 8, Right: true},
		style.Column{Name: "HELD FOR", Width: 12, Right: true},
		style.Column{Name: "EXPIRES IN", Width: 12, Right: true},
	)
	t.AddRow(
		string(l.Type),
		l.Operation,
		fmt.Sprintf("%d", l.PID),
		now.Sub(l.AcquiredAt).Round(time.Second).String(),
		time.Until(l.ExpiresAt()).Round(time.Second).String(),
	)
	return t.Render() + "\n  state: " + state + "\n"
}
