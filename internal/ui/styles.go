package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorMuted   = lipgloss.Color("#9CA3AF") // Light gray
	ColorBlue    = lipgloss.Color("#3B82F6") // Blue
)

// Muted style for labels and secondary text
var Muted = lipgloss.NewStyle().Foreground(ColorMuted)

// URL style for endpoints printed by the server.
var URL = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Underline(true)

// Header style for section headers
var Header = lipgloss.NewStyle().
	Foreground(ColorPrimary).
	Bold(true)

// RenderLabeled returns "label value" with a muted label, for banner lines.
func RenderLabeled(label, value string) string {
	return Muted.Render(label) + " " + value
}
