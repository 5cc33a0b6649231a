// Package ui holds the lipgloss styles shared by command output and the TUI.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/DrZoddiak/ore-monitor/version"
)

var (
	outOfDateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Yellow
	upToDateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Green
	overdatedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")) // Magenta
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // Red
	HeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	FaintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

// Colorize applies a tag's hex color (e.g. "#f7cf0d") to the text.
func Colorize(text string, hexColor string) string {
	if hexColor == "" {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor)).Render(text)
}

// RenderStatus renders a version status in its conventional color.
func RenderStatus(status version.Status) string {
	return StatusStyle(status).Render(status.String())
}

// StatusStyle returns the style associated with a version status.
func StatusStyle(status version.Status) lipgloss.Style {
	switch status {
	case version.UpToDate:
		return upToDateStyle
	case version.OutOfDate:
		return outOfDateStyle
	case version.Overdated:
		return overdatedStyle
	default:
		return lipgloss.NewStyle()
	}
}
