package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorAccent    = lipgloss.Color("87")  // Cyan, the product accent
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorText      = lipgloss.Color("252") // White/Gray

	// Base styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StyleAccent  = lipgloss.NewStyle().Foreground(ColorAccent)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)

	// Section header for plan rendering
	StyleSectionTitle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true).
				Underline(true)

	// Chat REPL styles
	StylePrompt    = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	StyleChatReply = lipgloss.NewStyle().Foreground(ColorText)

	// Box around the draft status line
	StyleStatusBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)
)
