package tui

import "github.com/charmbracelet/lipgloss"

// Probe row states.
const (
	StatusPending = "pending"
	StatusProbing = "probing"
	StatusOK      = "ok"
	StatusFailed  = "failed"
)

var (
	// HeaderStyle styles the column header row.
	HeaderStyle = lipgloss.NewStyle().Bold(true)

	// TitleStyle styles section titles.
	TitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	// PathStyle highlights an installation path.
	PathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	// VersionStyle highlights a version string.
	VersionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// MutedStyle renders secondary text.
	MutedStyle = lipgloss.NewStyle().Faint(true)

	// CursorStyle marks the highlighted row in the chooser.
	CursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)

	// ErrorStyle and WarningStyle render diagnostics.
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	statusStyles = map[string]lipgloss.Style{
		StatusOK:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		StatusProbing: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		StatusFailed:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		StatusPending: lipgloss.NewStyle().Faint(true),
		"warning":     lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"error":       lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

// StatusStyle returns the lipgloss style for the given status string.
func StatusStyle(status string) lipgloss.Style {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
