package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada/internal/ui"
)

var (
	titleStyle    lipgloss.Style
	successStyle  lipgloss.Style
	dueStyle      lipgloss.Style
	overdueStyle  lipgloss.Style
	accentStyle   lipgloss.Style
	mutedStyle    lipgloss.Style
	errorStyle    lipgloss.Style
	selectedStyle lipgloss.Style
	helpStyle     lipgloss.Style
	barStyle      lipgloss.Style
	frameStyle    lipgloss.Style
)

func init() { useTheme(ui.Current()) }

// useTheme points the view styles at t.
func useTheme(t ui.Theme) {
	titleStyle = t.Title
	successStyle = t.Success
	dueStyle = t.Due
	overdueStyle = t.Overdue
	accentStyle = t.Accent
	mutedStyle = t.Muted
	errorStyle = t.Error
	selectedStyle = t.Selected
	helpStyle = t.Muted
	frameStyle = t.Frame()
	barStyle = t.Frame()
}

func panelString(inner string) string { return frameStyle.Render(inner) }
