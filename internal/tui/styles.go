package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/yoyoarcade/yoyo/internal/games"
)

var (
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activeCardStyle = cardStyle.BorderForeground(lipgloss.Color("205"))
)

// characterStyle colors a name with the character's own color.
func characterStyle(c games.Character) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Bold(true)
}
