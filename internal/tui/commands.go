package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/yoyoarcade/yoyo/internal/games"
)

const (
	cmdPlay   = "play"
	cmdScores = "scores"
	cmdHelp   = "help"
	cmdQuit   = "quit"
)

var builtinCommands = []string{cmdPlay, cmdScores, cmdHelp, cmdQuit, "q"}

type selectGameMsg struct {
	name string
}

type toggleHelpMsg struct{}

type scoresLoadedMsg struct {
	game   games.Game
	scores *games.HighScores
	err    error
}

type scoresCopiedMsg struct {
	success bool
	message string
}

// executeCommand processes a palette command and returns the tea command
// carrying its effect.
func (m Model) executeCommand(command string) tea.Cmd {
	fields := strings.Fields(strings.ToLower(command))
	if len(fields) == 0 {
		return nil
	}
	m.logger.Debug("executing command", "command", command)

	name, args := fields[0], fields[1:]
	switch name {
	case cmdQuit, "q":
		m.logger.Info("user quit from palette")
		return tea.Quit
	case cmdHelp:
		return func() tea.Msg { return toggleHelpMsg{} }
	case cmdScores:
		g := m.currentGame()
		if len(args) > 0 {
			found, ok := m.registry.GetByCommand(args[0])
			if !ok {
				return m.showCommandError(fmt.Sprintf("unknown game `%s`", args[0]))
			}
			g = found
		}
		if g == nil {
			return m.showCommandError("no games registered")
		}
		return m.loadScoresCmd(g)
	case cmdPlay:
		if len(args) == 0 {
			return m.showCommandError("usage: play <game>")
		}
		return m.selectGameCmd(args[0])
	default:
		// Bare aliases launch too.
		if _, ok := m.registry.GetByCommand(name); ok && len(args) == 0 {
			return m.selectGameCmd(name)
		}
		m.logger.Info("unknown command", "command", command)
		return m.showCommandError(fmt.Sprintf("did not recognize command `%s`", command))
	}
}

func (m Model) selectGameCmd(alias string) tea.Cmd {
	g, ok := m.registry.GetByCommand(alias)
	if !ok {
		return m.showCommandError(fmt.Sprintf("unknown game `%s`", alias))
	}
	return func() tea.Msg { return selectGameMsg{name: g.Name()} }
}

func (m Model) showCommandError(message string) tea.Cmd {
	return func() tea.Msg {
		return commandErrMsg{message}
	}
}

// loadScoresCmd reads a game's high-score table. A read failure still
// yields the empty table the store falls back to.
func (m Model) loadScoresCmd(g games.Game) tea.Cmd {
	return func() tea.Msg {
		hs, err := games.LoadHighScores(g.Name())
		return scoresLoadedMsg{game: g, scores: hs, err: err}
	}
}

// copyScoresCmd copies the shown high-score table to the clipboard.
func (m Model) copyScoresCmd() tea.Cmd {
	hs, g, logger := m.highScores, m.scoresGame, m.logger
	return func() tea.Msg {
		if hs == nil || g == nil || len(hs.Entries) == 0 {
			return scoresCopiedMsg{message: "no scores to copy"}
		}
		if err := clipboard.WriteAll(hs.Format(g.Title())); err != nil {
			logger.Error("failed to copy scores to clipboard", "error", err)
			return scoresCopiedMsg{message: fmt.Sprintf("failed to copy to clipboard: %v", err)}
		}
		logger.Info("copied scores to clipboard", "game", g.Name(), "entries", len(hs.Entries))
		return scoresCopiedMsg{
			success: true,
			message: fmt.Sprintf("Copied %d %s scores to clipboard", len(hs.Entries), g.Title()),
		}
	}
}

// getFilteredSuggestions returns palette completions for the current input,
// shortest first. After `play ` or `scores ` the game aliases are offered.
func (m Model) getFilteredSuggestions() []string {
	input := strings.ToLower(m.commandInput.Value())

	for _, prefix := range []string{cmdPlay + " ", cmdScores + " "} {
		if rest, ok := strings.CutPrefix(input, prefix); ok {
			return lo.Map(m.registry.Suggest(strings.TrimSpace(rest)), func(alias string, _ int) string {
				return prefix + alias
			})
		}
	}

	all := lo.Uniq(append(slices.Clone(builtinCommands), m.registry.CommandSuggestions()...))
	filtered := lo.Filter(all, func(s string, _ int) bool {
		return strings.HasPrefix(s, input)
	})
	slices.SortStableFunc(filtered, func(a, b string) int {
		if len(a) != len(b) {
			return len(a) - len(b)
		}
		return strings.Compare(a, b)
	})
	return filtered
}

// renderCommandInput renders the command input field with suggestions.
func (m Model) renderCommandInput(b *strings.Builder) {
	b.WriteString(promptStyle.Render(":"))
	b.WriteString(m.commandInput.View())

	if len(m.commandInput.Value()) > 0 {
		filtered := m.getFilteredSuggestions()
		if len(filtered) > 0 {
			b.WriteString("  ")
			b.WriteString(dimStyle.Render(fmt.Sprintf("(%s)", strings.Join(filtered[:min(3, len(filtered))], ", "))))
		}
	}
}
