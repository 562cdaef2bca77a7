// Package ui holds the lipgloss styles shared by CLI commands.
package ui

import "github.com/charmbracelet/lipgloss"

// Styles defines all lipgloss styles used in the CLI.
var Styles = struct {
	Header     lipgloss.Style
	SuccessBox lipgloss.Style
	ErrorBox   lipgloss.Style
}{
	Header: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1),

	SuccessBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("42")).
		Padding(0, 1),

	ErrorBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("196")).
		Padding(0, 1),
}
