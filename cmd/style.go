package cmd

import "github.com/charmbracelet/lipgloss"

// Terminal styles. They degrade to plain text when output is not a terminal.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#08306B", Dark: "#9ECAE1"})
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"})
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
)
