package games

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/yoyoarcade/yoyo/internal/log"
)

// Options carries everything a level needs from the menu and config.
type Options struct {
	Players []Character
	Seed    int64
	Lives   int

	// ShieldDuration is how long the Castle Escape shield lasts;
	// InvincibilityDuration is the Coin Chaser equivalent.
	ShieldDuration        time.Duration
	InvincibilityDuration time.Duration

	// RespawnGrace is how long players are spared after losing a life.
	RespawnGrace time.Duration
}

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
	OutcomeQuit Outcome = "quit"
)

// PlayerScore is one player's share of a finished run.
type PlayerScore struct {
	Character Character
	Score     int
}

// Result is returned to the menu once a level exits.
type Result struct {
	Game    string
	Outcome Outcome
	Score   int
	Players []PlayerScore
}

// Game is a playable level launched from the menu. The menu is restored
// once Launch returns.
type Game interface {
	// Name returns the unique identifier (kebab-case recommended).
	Name() string

	// Title is the card heading; Subtitle is shown beneath it.
	Title() string
	Subtitle() string

	// Description is shown on the game card and in help text.
	Description() string

	// Commands returns aliases that launch this game from the command palette.
	Commands() []string

	// MaxPlayers is the largest party the level supports.
	MaxPlayers() int

	// Launch runs the level until the player quits back to the menu.
	Launch(opts Options) (Result, error)
}

type Registry struct {
	mu         sync.RWMutex
	games      map[string]Game
	commandMap map[string]Game
	ordered    []Game
}

func NewRegistry() *Registry {
	return &Registry{
		games:      make(map[string]Game),
		commandMap: make(map[string]Game),
		ordered:    make([]Game, 0),
	}
}

func (r *Registry) Register(g Game) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.games[g.Name()]; exists {
		log.G().Warn("game already registered", "game", g.Name())
		r.ordered = lo.Reject(r.ordered, func(existing Game, _ int) bool {
			return existing.Name() == g.Name()
		})
	}

	r.games[g.Name()] = g
	r.ordered = append(r.ordered, g)

	for _, cmd := range append([]string{g.Name()}, g.Commands()...) {
		if existing, exists := r.commandMap[cmd]; exists && existing.Name() != g.Name() {
			log.G().Warn("command collision",
				"command", cmd,
				"existing_game", existing.Name(),
				"new_game", g.Name())
		}
		r.commandMap[cmd] = g
	}
}

func (r *Registry) Get(name string) (Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.games[name]
	return g, ok
}

func (r *Registry) GetByCommand(cmd string) (Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.commandMap[strings.ToLower(strings.TrimSpace(cmd))]
	return g, ok
}

// List returns the games in registration order.
func (r *Registry) List() []Game {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.ordered)
}

// CommandSuggestions returns every launch alias, sorted.
func (r *Registry) CommandSuggestions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	suggestions := lo.Keys(r.commandMap)
	slices.Sort(suggestions)
	return suggestions
}

// Suggest returns the sorted aliases starting with prefix.
func (r *Registry) Suggest(prefix string) []string {
	prefix = strings.ToLower(prefix)
	return lo.Filter(r.CommandSuggestions(), func(cmd string, _ int) bool {
		return strings.HasPrefix(cmd, prefix)
	})
}
