package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains the lipgloss styles of the shell.
type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Sidebar   lipgloss.Style
	NavActive lipgloss.Style
	NavItem   lipgloss.Style
	Identity  lipgloss.Style
	Error     lipgloss.Style
	Notice    lipgloss.Style
	Muted     lipgloss.Style
	Help      lipgloss.Style
	Content   lipgloss.Style
}

// DefaultStyles returns the default shell styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Sidebar: lipgloss.NewStyle().
			Width(24).
			PaddingRight(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(lipgloss.Color("240")),
		NavActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")),
		NavItem: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")),
		Identity: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		Notice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Content: lipgloss.NewStyle().
			PaddingLeft(2),
	}
}
