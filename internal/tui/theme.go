package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name      string
	Base      lipgloss.Style
	Border    lipgloss.Color
	Header    lipgloss.Style
	Title     lipgloss.Style
	Body      lipgloss.Style
	Work      lipgloss.Style
	Break     lipgloss.Style
	Celebrate lipgloss.Style
	Input     lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Focused   lipgloss.Style
	Dim       lipgloss.Style
	Highlight lipgloss.Style
}

var Themes = map[string]Theme{
	"default": {
		Name:      "Default",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("39"),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true).Underline(true),
		Body:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Work:      lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Break:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		Celebrate: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("39")).Padding(0, 1),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	},
	"dracula": {
		Name:      "Dracula",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("62"),                                            // Purple
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true), // Cyan
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Bold(true).Underline(true),
		Body:      lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Work:      lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true), // Pink
		Break:     lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Bold(true), // Orange
		Celebrate: lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true), // Yellow
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("50")).Padding(0, 1),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
	},
}

// ThemeByName falls back to the default theme for unknown names.
func ThemeByName(name string) Theme {
	if t, ok := Themes[name]; ok {
		return t
	}
	return Themes["default"]
}
