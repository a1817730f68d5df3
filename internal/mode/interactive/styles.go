// ABOUTME: Lipgloss style palette for the interactive TUI
// ABOUTME: One static set of styles shared by all views

package interactive

import "github.com/charmbracelet/lipgloss"

type styleSet struct {
	User      lipgloss.Style
	Tool      lipgloss.Style
	ToolErr   lipgloss.Style
	Info      lipgloss.Style
	Error     lipgloss.Style
	Status    lipgloss.Style
	Prompt    lipgloss.Style
	DialogBox lipgloss.Style
	Warning   lipgloss.Style
	Dim       lipgloss.Style
}

var styles = styleSet{
	User:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	Tool:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	ToolErr: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	Prompt:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	DialogBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("11")).
		Padding(0, 1),
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}
