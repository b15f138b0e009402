package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kanbandesk/kanbandesk/models"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorCyan      = lipgloss.Color("87")
	ColorBlue      = lipgloss.Color("75")

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)

	// Column frame styles
	StyleColumn = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)

	StyleColumnActive = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	StyleCard         = lipgloss.NewStyle().Foreground(ColorText)
	StyleCardSelected = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
)

// columnColors maps each board column to its accent color.
var columnColors = map[models.TaskStatus]lipgloss.Color{
	models.StatusTodo:       ColorBlue,
	models.StatusInProgress: ColorWarning,
	models.StatusReview:     ColorCyan,
	models.StatusDone:       ColorSuccess,
	models.StatusCancel:     ColorError,
}

// ColumnTitleStyle returns the header style for one column.
func ColumnTitleStyle(status models.TaskStatus) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(columnColors[status]).Bold(true)
}
