package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yoyoarcade/yoyo/internal/config"
	"github.com/yoyoarcade/yoyo/internal/games"
	"github.com/yoyoarcade/yoyo/internal/log"
)

// Version is the current version of yoyo.
const Version = "v0.1.0"

const (
	historySize  = 20
	messageDelay = 5 * time.Second
)

// ViewMode represents the current input mode of the menu.
type ViewMode int

const (
	// ViewModeNormal is the default mode with vim-style navigation keybindings.
	ViewModeNormal ViewMode = iota
	// ViewModeCommand is the command entry mode activated by pressing ':'.
	ViewModeCommand
)

type screen int

const (
	screenGames screen = iota
	screenPlayers
	screenCharacters
	screenScores
)

// Model is the yoyo menu: game cards, party selection, high scores and
// the command palette. Once a party is complete the program quits and
// Chosen reports what to launch.
type Model struct {
	config   *config.Config
	registry *games.Registry
	games    []games.Game
	logger   *slog.Logger

	screen      screen
	cursor      int
	playerCount int
	party       []games.Character
	charCursor  int
	chosen      games.Game

	scores     table.Model
	scoresGame games.Game
	highScores *games.HighScores

	commandInput textinput.Model
	history      *commandHistory
	help         help.Model
	keys         keyMap
	viewMode     ViewMode
	theme        logoTheme

	ready          bool
	width          int
	height         int
	commandErr     string
	commandSuccess string
}

type commandErrMsg struct {
	message string
}

type clearCommandErrMsg struct{}

type commandSuccessMsg struct {
	message string
}

type clearCommandSuccessMsg struct{}

// New creates the menu over the registered games.
func New(cfg *config.Config, registry *games.Registry) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "play <game>, scores, quit..."
	ti.CharLimit = 100
	ti.Width = 50

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 8},
			{Title: "Result", Width: 8},
			{Title: "Players", Width: 26},
			{Title: "Date", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(games.MaxHighScores),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.HiddenBorder()).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	return Model{
		config:       cfg,
		registry:     registry,
		games:        registry.List(),
		logger:       log.Menu(),
		playerCount:  max(1, cfg.Players),
		scores:       t,
		commandInput: ti,
		history:      newCommandHistory(historySize),
		help:         h,
		keys:         newKeyMap(),
		viewMode:     ViewModeNormal,
		theme:        detectTheme(time.Now()),
	}
}

// WithResult returns the menu announcing how the last level ended.
func (m Model) WithResult(res games.Result) Model {
	g, ok := m.registry.Get(res.Game)
	if !ok {
		return m
	}
	for i, candidate := range m.games {
		if candidate.Name() == g.Name() {
			m.cursor = i
		}
	}

	switch res.Outcome {
	case games.OutcomeWon:
		m.commandSuccess = fmt.Sprintf("%s cleared with %d points", g.Title(), res.Score)
	case games.OutcomeLost:
		m.commandSuccess = fmt.Sprintf("%s over with %d points", g.Title(), res.Score)
	}
	return m
}

// Chosen returns the game and party picked before the menu quit.
func (m Model) Chosen() (games.Game, []games.Character, bool) {
	if m.chosen == nil {
		return nil, nil, false
	}
	return m.chosen, m.party, true
}

// Init starts the message timer when the menu opens with a result.
func (m Model) Init() tea.Cmd {
	if m.commandSuccess != "" {
		return clearAfter(clearCommandSuccessMsg{})
	}
	return nil
}

func clearAfter(msg tea.Msg) tea.Cmd {
	return tea.Tick(messageDelay, func(time.Time) tea.Msg {
		return msg
	})
}

// Update handles messages and updates the model state accordingly.
// It implements the tea.Model interface for Bubble Tea.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.scores.SetHeight(max(5, min(games.MaxHighScores+1, m.height-14)))
		return m, nil

	case selectGameMsg:
		for i, g := range m.games {
			if g.Name() == msg.name {
				m.cursor = i
				return m.openPlayers(), nil
			}
		}
		return m, nil

	case toggleHelpMsg:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case scoresLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("could not load high scores", "game", msg.game.Name(), "error", msg.err)
		}
		m.scoresGame = msg.game
		m.highScores = msg.scores
		m.screen = screenScores
		m.updateScoresTable()
		return m, nil

	case scoresCopiedMsg:
		if msg.success {
			m.commandSuccess = msg.message
			return m, clearAfter(clearCommandSuccessMsg{})
		}
		m.commandErr = msg.message
		return m, clearAfter(clearCommandErrMsg{})

	case commandErrMsg:
		m.commandErr = msg.message
		return m, clearAfter(clearCommandErrMsg{})

	case clearCommandErrMsg:
		m.commandErr = ""
		return m, nil

	case commandSuccessMsg:
		m.commandSuccess = msg.message
		return m, clearAfter(clearCommandSuccessMsg{})

	case clearCommandSuccessMsg:
		m.commandSuccess = ""
		return m, nil

	case tea.KeyMsg:
		if m.viewMode == ViewModeCommand {
			return m.updateCommand(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.logger.Info("user quit menu")
			return m, tea.Quit
		case key.Matches(msg, m.keys.Command):
			m.viewMode = ViewModeCommand
			m.history.Reset()
			cmd := m.commandInput.Focus()
			return m, cmd
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		switch m.screen {
		case screenPlayers:
			return m.updatePlayers(msg)
		case screenCharacters:
			return m.updateCharacters(msg)
		case screenScores:
			return m.updateScores(msg)
		default:
			return m.updateGames(msg)
		}
	}

	return m, nil
}

func (m Model) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		command := strings.TrimSpace(m.commandInput.Value())
		m.history.Add(command)
		m.commandInput.Reset()
		m.commandInput.Blur()
		m.viewMode = ViewModeNormal
		return m, m.executeCommand(command)
	case "esc":
		m.commandInput.Reset()
		m.commandInput.Blur()
		m.viewMode = ViewModeNormal
		return m, nil
	case "tab":
		filtered := m.getFilteredSuggestions()
		if len(filtered) > 0 {
			m.commandInput.SetValue(filtered[0])
			m.commandInput.SetCursor(len(filtered[0]))
		}
		return m, nil
	case "up":
		if prev, ok := m.history.Older(); ok {
			m.commandInput.SetValue(prev)
			m.commandInput.CursorEnd()
		}
		return m, nil
	case "down":
		if next, ok := m.history.Newer(); ok {
			m.commandInput.SetValue(next)
			m.commandInput.CursorEnd()
		}
		return m, nil
	default:
		m.commandInput, cmd = m.commandInput.Update(msg)
		return m, cmd
	}
}

func (m Model) updateGames(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.games) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
		m.cursor = max(0, m.cursor-1)
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
		m.cursor = min(len(m.games)-1, m.cursor+1)
	case key.Matches(msg, m.keys.Select):
		return m.openPlayers(), nil
	case key.Matches(msg, m.keys.Scores):
		return m, m.loadScoresCmd(m.currentGame())
	}
	return m, nil
}

func (m Model) updatePlayers(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	limit := m.partyLimit()

	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = screenGames
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
		m.playerCount = max(1, m.playerCount-1)
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
		m.playerCount = min(limit, m.playerCount+1)
	case key.Matches(msg, m.keys.Select):
		return m.openCharacters(), nil
	default:
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && int(s[0]-'0') <= limit {
			m.playerCount = int(s[0] - '0')
			return m.openCharacters(), nil
		}
	}
	return m, nil
}

func (m Model) updateCharacters(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	available := games.Available(m.party)

	switch {
	case key.Matches(msg, m.keys.Back):
		if len(m.party) > 0 {
			m.party = m.party[:len(m.party)-1]
			m.charCursor = 0
			return m, nil
		}
		if m.partyLimit() == 1 {
			m.screen = screenGames
		} else {
			m.screen = screenPlayers
		}
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Left):
		m.charCursor = max(0, m.charCursor-1)
	case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.Right):
		m.charCursor = min(len(available)-1, m.charCursor+1)
	case key.Matches(msg, m.keys.Select):
		if len(available) == 0 {
			return m, nil
		}
		picked := available[min(m.charCursor, len(available)-1)]
		m.party = append(m.party, picked)
		m.charCursor = 0
		m.logger.Debug("character picked", "player", len(m.party), "character", picked.ID)

		if len(m.party) == m.playerCount {
			m.chosen = m.currentGame()
			m.logger.Info("launching game", "game", m.chosen.Name(), "players", len(m.party))
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) updateScores(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = screenGames
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyScoresCmd()
	case key.Matches(msg, m.keys.Left):
		return m, m.cycleScores(-1)
	case key.Matches(msg, m.keys.Right):
		return m, m.cycleScores(1)
	}

	m.scores, cmd = m.scores.Update(msg)
	return m, cmd
}

// cycleScores loads the table of the neighbouring game.
func (m Model) cycleScores(step int) tea.Cmd {
	if len(m.games) < 2 || m.scoresGame == nil {
		return nil
	}
	for i, g := range m.games {
		if g.Name() == m.scoresGame.Name() {
			next := (i + step + len(m.games)) % len(m.games)
			return m.loadScoresCmd(m.games[next])
		}
	}
	return nil
}

func (m Model) openPlayers() Model {
	m.party = nil
	m.charCursor = 0
	m.playerCount = min(max(1, m.playerCount), m.partyLimit())
	if m.partyLimit() == 1 {
		return m.openCharacters()
	}
	m.screen = screenPlayers
	return m
}

func (m Model) openCharacters() Model {
	m.party = nil
	m.charCursor = 0
	m.screen = screenCharacters
	return m
}

func (m Model) currentGame() games.Game {
	if len(m.games) == 0 {
		return nil
	}
	return m.games[min(m.cursor, len(m.games)-1)]
}

// partyLimit is the largest party the selected game and the roster allow.
func (m Model) partyLimit() int {
	g := m.currentGame()
	if g == nil {
		return 1
	}
	return max(1, min(g.MaxPlayers(), len(games.Roster), config.MaxPlayers))
}

func (m *Model) updateScoresTable() {
	var rows []table.Row
	if m.highScores != nil {
		for i, e := range m.highScores.Entries {
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", i+1),
				fmt.Sprintf("%d", e.Score),
				string(e.Outcome),
				strings.Join(e.Players, ", "),
				e.Date.Format("2006-01-02"),
			})
		}
	}
	m.scores.SetRows(rows)
	m.scores.GotoTop()
}

// View renders the current state of the menu to a string.
// It implements the tea.Model interface for Bubble Tea.
func (m Model) View() string {
	if !m.ready {
		return "Initializing yoyo..."
	}

	var b strings.Builder
	b.WriteString("\n")
	m.renderHeader(&b)
	b.WriteString("\n\n")

	switch m.screen {
	case screenPlayers:
		m.renderPlayers(&b)
	case screenCharacters:
		m.renderCharacters(&b)
	case screenScores:
		m.renderScores(&b)
	default:
		m.renderCards(&b)
	}
	b.WriteString("\n")

	var footer string
	switch {
	case m.viewMode == ViewModeCommand:
		var cmd strings.Builder
		m.renderCommandInput(&cmd)
		footer = cmd.String()
	case m.commandErr != "":
		footer = errorStyle.Render(fmt.Sprintf("⚠ %s", m.commandErr))
	case m.commandSuccess != "":
		footer = successStyle.Render(fmt.Sprintf("✓ %s", m.commandSuccess))
	}

	// Fill remaining height to push the footer to the bottom.
	output := b.String()
	if footer != "" {
		if m.height > 0 {
			rendered := strings.Count(output, "\n") + 1
			needed := m.height - strings.Count(footer, "\n") - 2
			if rendered < needed {
				output += strings.Repeat("\n", needed-rendered)
			}
		}
		output += "\n" + footer + "\n"
	}
	return output
}
