// Package render draws rack elevations, metric readouts and catalog
// listings for the terminal using lipgloss.
package render

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

var (
	Primary = lipgloss.Color("#3B82F6") // Blue
	Accent  = lipgloss.Color("#06B6D4") // Cyan
	OK      = lipgloss.Color("#10B981") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Danger  = lipgloss.Color("#EF4444") // Red
	Muted   = lipgloss.Color("#6B7280") // Gray
	Empty   = lipgloss.Color("#374151") // Dark gray

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	unitLabel    = lipgloss.NewStyle().Foreground(Muted)
	occupiedUnit = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	freeUnit     = lipgloss.NewStyle().Foreground(Empty)
	previewOK    = lipgloss.NewStyle().Foreground(OK).Bold(true)
	previewBad   = lipgloss.NewStyle().Foreground(Danger).Bold(true)
)

// Level is the severity shown by a badge.
type Level int

const (
	LevelOK Level = iota
	LevelWarning
	LevelCritical
	LevelInfo
)

// Badge renders a colored inline status badge.
func Badge(text string, level Level) string {
	var bg lipgloss.Color
	fg := lipgloss.Color("#FFFFFF")
	switch level {
	case LevelOK:
		bg = OK
	case LevelWarning:
		bg, fg = Warning, lipgloss.Color("#000000")
	case LevelCritical:
		bg = Danger
	default:
		bg = Primary
	}
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true).
		Render(text)
}

// num formats a rating without trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
