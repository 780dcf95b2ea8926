package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yoyoarcade/yoyo/internal/config"
	"github.com/yoyoarcade/yoyo/internal/games"
	"github.com/yoyoarcade/yoyo/internal/games/chaser"
	"github.com/yoyoarcade/yoyo/internal/games/runner"
	"github.com/yoyoarcade/yoyo/internal/log"
	"github.com/yoyoarcade/yoyo/internal/tui"
)

// gameOptions builds launch options from the config. A zero seed from the
// flag defers to the config, and a zero there seeds from the clock.
func gameOptions(cfg *config.Config, party []games.Character, seed int64) games.Options {
	if seed == 0 {
		seed = cfg.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return games.Options{
		Players:               party,
		Seed:                  seed,
		Lives:                 cfg.Lives,
		ShieldDuration:        cfg.ShieldDuration,
		InvincibilityDuration: cfg.ChaserInvincibility,
		RespawnGrace:          cfg.RespawnGrace,
	}
}

func launch(g games.Game, opts games.Options) games.Result {
	log.G().Info("launching game", "game", g.Name(), "players", len(opts.Players))
	res, err := g.Launch(opts)
	if err != nil {
		log.G().Error("game launch failed", "game", g.Name(), "error", err)
	}
	log.G().Info("returning to menu", "game", g.Name(), "outcome", res.Outcome, "score", res.Score)
	return res
}

func main() {
	logLevelFlag := flag.String("log-level", "", "Set log level (debug, info, warn, error). Defaults to info.")
	gameFlag := flag.String("game", "", "Launch a game directly by name or alias, skipping the menu.")
	playersFlag := flag.Int("players", 0, "Number of players for -game (defaults to the configured count).")
	seedFlag := flag.Int64("seed", 0, "Level generation seed (0 uses the configured seed or the clock).")
	flag.Parse()

	if err := config.CreateDefaultConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create default config: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults where needed\n", err)
	}

	logFile, err := setupLogging(parseLogLevel(*logLevelFlag), cfg.LogFilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not setup logging: %v\n", err)
	} else {
		defer func() {
			if closeErr := logFile.Close(); closeErr != nil {
				log.G().Error("failed to close log file", "error", closeErr)
			}
		}()
	}

	log.G().Info("yoyo starting", "version", tui.Version)
	log.G().Info("configuration loaded", "config", cfg.String())

	registry := games.NewRegistry()
	registry.Register(runner.New())
	registry.Register(chaser.New())
	log.G().Info("loaded games", "count", len(registry.List()))

	if *gameFlag != "" {
		g, ok := registry.GetByCommand(*gameFlag)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown game %q, try one of %v\n", *gameFlag, registry.CommandSuggestions())
			os.Exit(2)
		}
		players := *playersFlag
		if players == 0 {
			players = cfg.Players
		}
		party := games.DefaultParty(min(players, g.MaxPlayers()))
		launch(g, gameOptions(cfg, party, *seedFlag))
		return
	}

	var last *games.Result
	for {
		menu := tui.New(cfg, registry)
		if last != nil {
			menu = menu.WithResult(*last)
		}

		finalModel, err := tea.NewProgram(menu, tea.WithAltScreen()).Run()
		if err != nil {
			log.G().Error("menu error", "error", err)
			os.Exit(1)
		}

		model, ok := finalModel.(tui.Model)
		if !ok {
			break
		}
		g, party, ok := model.Chosen()
		if !ok {
			break
		}

		res := launch(g, gameOptions(cfg, party, *seedFlag))
		last = &res
	}

	log.G().Info("yoyo exiting")
}
