// Package chaser is Coin Chaser: up to three players race to collect every
// coin on a vertical stage of ledges and moving platforms.
package chaser

import (
	"fmt"

	"github.com/yoyoarcade/yoyo/internal/games"
	"github.com/yoyoarcade/yoyo/internal/games/scene"
	"github.com/yoyoarcade/yoyo/internal/log"
)

const Name = "chaser"

var medals = []string{"🥇", "🥈", "🥉"}

type Game struct {
	stage *Stage
}

// New returns Coin Chaser on the built-in stage.
func New() *Game {
	return &Game{}
}

// NewWithStage returns Coin Chaser on a custom stage.
func NewWithStage(s *Stage) *Game {
	return &Game{stage: s}
}

func (g *Game) Name() string     { return Name }
func (g *Game) Title() string    { return "Coin Chaser" }
func (g *Game) Subtitle() string { return "金币追逐" }

func (g *Game) Description() string {
	return "Climb the ledges and grab every coin before the guards and fireballs get you."
}

func (g *Game) Commands() []string {
	return []string{"coins", "coin", "chase"}
}

func (g *Game) MaxPlayers() int {
	return 3
}

// Launch plays Coin Chaser until the player presses Esc.
func (g *Game) Launch(opts games.Options) (games.Result, error) {
	logger := log.Game(Name)

	stage := g.stage
	if stage == nil {
		var err error
		if stage, err = DefaultStage(); err != nil {
			return games.Result{Game: Name, Outcome: games.OutcomeQuit}, fmt.Errorf("failed to load stage: %w", err)
		}
	}
	if len(opts.Players) == 0 {
		opts.Players = games.DefaultParty(1)
	}
	if len(opts.Players) > g.MaxPlayers() {
		opts.Players = opts.Players[:g.MaxPlayers()]
	}

	play := newPlay(opts, stage.Layout(), logger)

	var (
		rank      int
		last      games.Result
		standings []Standing
	)
	play.OnFinish = func(res games.Result) {
		last = res
		standings = play.Standings()
		r, err := games.Record(res)
		if err != nil {
			logger.Warn("could not save high score", "error", err)
		}
		rank = r
	}

	host := scene.NewHost(play)
	host.Title = func() []scene.Line { return titleLines(opts) }
	host.End = func() []scene.Line { return endLines(last, rank, standings) }

	logger.Info("launching", "players", len(opts.Players), "stage", stage.Name)
	host.Start()

	res := play.Result()
	if res.Outcome == games.OutcomeQuit && last.Game != "" {
		res = last
	}
	logger.Info("exited", "outcome", res.Outcome, "score", res.Score)
	return res, nil
}

func titleLines(opts games.Options) []scene.Line {
	lines := []scene.Line{
		{Text: "COIN CHASER", Color: scene.ColorCoin},
		{Text: "金币追逐", Color: scene.ColorCoin},
		{},
		{Text: "Collect every coin to win. Land on enemies to defeat them.", Color: scene.ColorText},
		{},
	}
	for i, c := range opts.Players {
		lines = append(lines, scene.Line{
			Text:  fmt.Sprintf("%s: %s", c.Name, scene.BindingFor(i).Help),
			Color: scene.AttrForHex(c.Color),
		})
	}
	return append(lines,
		scene.Line{},
		scene.Line{Text: "Press SPACE to start, Esc to return to the menu", Color: scene.ColorText},
	)
}

func endLines(res games.Result, rank int, standings []Standing) []scene.Line {
	head := scene.Line{Text: "Game Over!", Color: scene.ColorDanger}
	if res.Outcome == games.OutcomeWon {
		head = scene.Line{Text: "🏆 Victory! 🏆", Color: scene.ColorHighlight}
	}

	lines := []scene.Line{
		head,
		{},
		{Text: fmt.Sprintf("Final Score: %d", res.Score), Color: scene.ColorText},
	}
	if rank > 0 {
		lines = append(lines, scene.Line{Text: fmt.Sprintf("NEW HIGH SCORE! Rank #%d", rank), Color: scene.ColorHighlight})
	}

	if len(standings) > 0 {
		lines = append(lines, scene.Line{}, scene.Line{Text: "Coin Rankings:", Color: scene.ColorText})
		for i, s := range standings {
			lines = append(lines, scene.Line{
				Text:  fmt.Sprintf("%s %s: %d coins", medals[min(i, len(medals)-1)], s.Character.Name, s.Coins),
				Color: scene.AttrForHex(s.Character.Color),
			})
		}
	}
	return append(lines,
		scene.Line{},
		scene.Line{Text: "Press R to Restart, Esc to return to the menu", Color: scene.ColorText},
	)
}
