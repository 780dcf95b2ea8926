package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/yoyoarcade/yoyo/internal/games"
)

const (
	maxCardWidth = 44
	minCardWidth = 24
)

// renderHeader places the logo beside the key help, stacking them when the
// terminal is too narrow for both.
func (m Model) renderHeader(b *strings.Builder) {
	logo := renderLogo(m.config.Logo, m.theme)
	info := labelStyle.Render("yoyo ") + valueStyle.Render(Version)
	left := lipgloss.JoinVertical(lipgloss.Left, logo, "", info)
	helpBlock := m.help.View(m.keys)

	const gap = 4
	if lipgloss.Width(left)+lipgloss.Width(helpBlock)+gap <= m.width {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), helpBlock))
		return
	}
	b.WriteString(left)
	b.WriteString("\n\n")
	b.WriteString(helpBlock)
}

func (m Model) cardWidth() int {
	if len(m.games) == 0 {
		return maxCardWidth
	}
	w := (m.width - 2*len(m.games)) / len(m.games)
	return max(minCardWidth, min(maxCardWidth, w))
}

// renderCards draws one bordered card per game, side by side when they fit.
func (m Model) renderCards(b *strings.Builder) {
	if len(m.games) == 0 {
		b.WriteString(dimStyle.Render("No games registered."))
		return
	}

	width := m.cardWidth()
	inner := width - 4
	cards := make([]string, 0, len(m.games))
	for i, g := range m.games {
		lines := []string{
			ansi.Truncate(titleStyle.Render(g.Title()), inner, "…"),
			ansi.Truncate(dimStyle.Render(g.Subtitle()), inner, "…"),
			"",
			lipgloss.NewStyle().Width(inner).Render(valueStyle.Render(g.Description())),
			"",
			labelStyle.Render("Players: ") + valueStyle.Render(playerRange(g.MaxPlayers())),
			labelStyle.Render("Command: ") + valueStyle.Render(":play "+g.Name()),
		}

		style := cardStyle
		if i == m.cursor {
			style = activeCardStyle
		}
		cards = append(cards, style.Width(width-2).Render(strings.Join(lines, "\n")))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, interleave(cards, "  ")...)
	if m.width > 0 && lipgloss.Width(row) > m.width {
		row = lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	b.WriteString(row)
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter to play, s for high scores"))
}

func (m Model) renderPlayers(b *strings.Builder) {
	g := m.currentGame()
	b.WriteString(titleStyle.Render(g.Title()))
	b.WriteString(dimStyle.Render("  how many players?"))
	b.WriteString("\n\n")

	for n := 1; n <= m.partyLimit(); n++ {
		label := fmt.Sprintf(" %d player", n)
		if n > 1 {
			label += "s"
		}
		label += " "
		if n == m.playerCount {
			b.WriteString(selectedStyle.Render(label))
		} else {
			b.WriteString(valueStyle.Render(label))
		}
		b.WriteString("  ")
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("←/→ to change, enter to continue, esc to go back"))
}

func (m Model) renderCharacters(b *strings.Builder) {
	g := m.currentGame()
	b.WriteString(titleStyle.Render(g.Title()))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  player %d of %d, pick a character", len(m.party)+1, m.playerCount)))
	b.WriteString("\n\n")

	for i, c := range m.party {
		b.WriteString(labelStyle.Render(fmt.Sprintf("  P%d ", i+1)))
		b.WriteString(characterStyle(c).Render(c.Name))
		b.WriteString("\n")
	}
	if len(m.party) > 0 {
		b.WriteString("\n")
	}

	for i, c := range games.Available(m.party) {
		if i == m.charCursor {
			b.WriteString(selectedStyle.Render(" ▶ " + c.Name + " "))
		} else {
			b.WriteString("   " + characterStyle(c).Render(c.Name))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("↑/↓ to choose, enter to pick, esc to undo"))
}

func (m Model) renderScores(b *strings.Builder) {
	if m.scoresGame == nil {
		return
	}
	b.WriteString(titleStyle.Render(m.scoresGame.Title() + " high scores"))
	b.WriteString("\n\n")

	if m.highScores == nil || len(m.highScores.Entries) == 0 {
		b.WriteString(dimStyle.Render("No scores yet. Go play!"))
	} else {
		b.WriteString(m.scores.View())
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("←/→ other game, y to copy, esc to go back"))
}

func playerRange(maxPlayers int) string {
	if maxPlayers <= 1 {
		return "1"
	}
	return fmt.Sprintf("1-%d", maxPlayers)
}

func interleave(items []string, sep string) []string {
	out := make([]string, 0, 2*len(items))
	for i, item := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, item)
	}
	return out
}
