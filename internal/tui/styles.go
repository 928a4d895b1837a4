package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fpcore/internal/ui"
)

// Style variables for the dashboard.
// Initialized from the ui theme system via initStyles().
var (
	titleStyle lipgloss.Style
	dimStyle   lipgloss.Style
	labelStyle lipgloss.Style
	valueStyle lipgloss.Style
	passStyle  lipgloss.Style
	failStyle  lipgloss.Style
	keyStyle   lipgloss.Style
)

func init() {
	initStyles()
}

// initStyles rebuilds all styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initStyles() {
	t := ui.GetCurrentTheme()

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(t.Dim)
	labelStyle = lipgloss.NewStyle().Foreground(t.Text).Width(propertyColumnWidth)
	valueStyle = lipgloss.NewStyle().Foreground(t.Text)
	passStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Success)
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
	keyStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
}
