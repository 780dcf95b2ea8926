// Package runner is Castle Escape: a side-scrolling run over a streamed
// floor of platforms and gaps toward a castle.
package runner

import (
	"fmt"

	"github.com/yoyoarcade/yoyo/internal/games"
	"github.com/yoyoarcade/yoyo/internal/games/scene"
	"github.com/yoyoarcade/yoyo/internal/log"
)

const Name = "runner"

type Game struct{}

func New() *Game {
	return &Game{}
}

func (g *Game) Name() string     { return Name }
func (g *Game) Title() string    { return "Castle Escape" }
func (g *Game) Subtitle() string { return "古堡逃亡" }

func (g *Game) Description() string {
	return "Run and fly over a crumbling floor to the castle. Stomp guards, dodge fireballs."
}

func (g *Game) Commands() []string {
	return []string{"castle", "escape", "run"}
}

func (g *Game) MaxPlayers() int {
	return 2
}

// Launch plays Castle Escape until the player presses Esc. Finished runs
// are recorded in the high score table.
func (g *Game) Launch(opts games.Options) (games.Result, error) {
	logger := log.Game(Name)
	if len(opts.Players) == 0 {
		opts.Players = games.DefaultParty(1)
	}
	if len(opts.Players) > g.MaxPlayers() {
		opts.Players = opts.Players[:g.MaxPlayers()]
	}

	run := newRun(opts, logger)

	var (
		rank int
		last games.Result
	)
	run.OnFinish = func(res games.Result) {
		last = res
		r, err := games.Record(res)
		if err != nil {
			logger.Warn("could not save high score", "error", err)
		}
		rank = r
	}

	host := scene.NewHost(run)
	host.Title = func() []scene.Line { return titleLines(opts) }
	host.End = func() []scene.Line { return endLines(last, rank) }

	logger.Info("launching", "players", len(opts.Players), "seed", opts.Seed)
	host.Start()

	res := run.Result()
	if res.Outcome == games.OutcomeQuit && last.Game != "" {
		res = last
	}
	logger.Info("exited", "outcome", res.Outcome, "score", res.Score)
	return res, nil
}

func titleLines(opts games.Options) []scene.Line {
	lines := []scene.Line{
		{Text: "CASTLE ESCAPE", Color: scene.ColorHighlight},
		{Text: "古堡逃亡", Color: scene.ColorHighlight},
		{},
		{Text: "Reach the castle at the end of the road.", Color: scene.ColorText},
		{Text: "Land on guards to defeat them. Fireballs cost a life.", Color: scene.ColorText},
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

func endLines(res games.Result, rank int) []scene.Line {
	head := scene.Line{Text: "GAME OVER!", Color: scene.ColorDanger}
	if res.Outcome == games.OutcomeWon {
		head = scene.Line{Text: "YOU ESCAPED!", Color: scene.ColorHighlight}
	}

	lines := []scene.Line{
		head,
		{},
		{Text: fmt.Sprintf("Final Score: %d", res.Score), Color: scene.ColorHighlight},
	}
	if rank > 0 {
		lines = append(lines, scene.Line{Text: fmt.Sprintf("NEW HIGH SCORE! Rank #%d", rank), Color: scene.ColorHighlight})
	}
	for _, p := range res.Players {
		lines = append(lines, scene.Line{
			Text:  fmt.Sprintf("%s: %d", p.Character.Name, p.Score),
			Color: scene.AttrForHex(p.Character.Color),
		})
	}
	return append(lines,
		scene.Line{},
		scene.Line{Text: "Press R to play again, Esc to return to the menu", Color: scene.ColorText},
	)
}
