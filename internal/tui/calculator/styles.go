// ============================================================================
// meinRECHENWERK (mRW) - Rechenplattform
// ============================================================================
//
// Package:     calculator
// Description: Styles for the calculator TUI
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package calculator

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorFg        = lipgloss.Color("#F9FAFB")
)

// Styles
var (
	// Title styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	// Result panel
	ResultBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSecondary).
			Padding(1, 2)

	ResultLabelStyle = lipgloss.NewStyle().
				Foreground(colorMuted)

	ResultValueStyle = lipgloss.NewStyle().
				Foreground(colorFg).
				Bold(true)

	ResultHeaderStyle = lipgloss.NewStyle().
				Foreground(colorAccent)

	// Form styles
	LabelStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Width(28)

	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				Width(28)

	RequiredStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(colorError)

	// Help style
	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)
)

// RenderTitle renders a view title
func RenderTitle(title string) string {
	return TitleStyle.Render(title)
}

// RenderError renders an error line
func RenderError(err string) string {
	return ErrorMessageStyle.Render("Fehler: " + err)
}

// RenderHelp renders the key help line
func RenderHelp(help string) string {
	return HelpStyle.Render(help)
}
