// internal/app/tui/styles.go
package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#1E63B5")
	colorAccent  = lipgloss.Color("#2E9E8F")
	colorMuted   = lipgloss.Color("#7A8599")
	colorError   = lipgloss.Color("#E53935")
	colorWarning = lipgloss.Color("#FFC107")
	colorSuccess = lipgloss.Color("#8BC34A")
)

// Styles holds the rendering styles for the dashboard view.
type Styles struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Filters   lipgloss.Style
	Footer    lipgloss.Style
	Help      lipgloss.Style
	Loading   lipgloss.Style
	Error     lipgloss.Style
	Toast     lipgloss.Style
	Table     table.Styles
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorMuted).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorPrimary).
		Bold(false)

	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(colorMuted),
		ActiveTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(colorAccent),
		Filters:   lipgloss.NewStyle().Foreground(colorMuted),
		Footer:    lipgloss.NewStyle().Foreground(colorMuted),
		Help:      lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
		Loading:   lipgloss.NewStyle().Foreground(colorWarning),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(colorError),
		Toast:     lipgloss.NewStyle().Foreground(colorSuccess),
		Table:     ts,
	}
}
