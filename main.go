package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"risk/combat"
	"risk/engine"
	"risk/game"
	"risk/player"
)

type config struct {
	Players  int    `env:"RISK_PLAYERS" envDefault:"4"`
	Neutrals int    `env:"RISK_NEUTRALS" envDefault:"1"`
	Games    int    `env:"RISK_GAMES" envDefault:"1"`
	Seed     uint64 `env:"RISK_SEED" envDefault:"1"`
	Map      string `env:"RISK_MAP" envDefault:"classic"`
	LogLevel string `env:"RISK_LOG_LEVEL" envDefault:"info"`
	PrintLog bool   `env:"RISK_PRINT_LOG" envDefault:"true"`
}

func main() {
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "bad configuration: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	for i := 0; i < cfg.Games; i++ {
		// Offset the seed per game so a series stays reproducible end to end.
		winner, err := runGame(cfg, cfg.Seed+uint64(i), logger)
		if err != nil {
			logger.Error().Err(err).Msg("game failed")
			os.Exit(1)
		}
		if winner == "" {
			fmt.Printf("Game %d: no winner within the round cap\n", i+1)
		} else {
			fmt.Printf("Game %d: %s wins\n", i+1, winner)
		}
	}
}

// runGame plays one seeded bot-vs-bot game and returns the winner's name.
func runGame(cfg config, seed uint64, logger zerolog.Logger) (string, error) {
	m, err := game.LoadBuiltinMap(cfg.Map)
	if err != nil {
		return "", err
	}

	names := make([]string, cfg.Players)
	for i := range names {
		names[i] = fmt.Sprintf("Player%d", i+1)
	}

	rng := rand.New(rand.NewSource(seed))
	gs, err := game.NewGameState(m, names, rng)
	if err != nil {
		return "", err
	}
	gs.Setup()

	policies := make(map[int]player.Policy, len(gs.Roster))
	for i, id := range gs.Roster {
		if i < cfg.Neutrals && cfg.Neutrals < cfg.Players {
			policies[id] = player.NewNeutral(rng)
		} else {
			policies[id] = player.NewGreedy()
		}
	}

	e, err := engine.New(gs, policies, combat.NewDiceRoller(rng), logger)
	if err != nil {
		return "", err
	}
	winnerID, err := e.Run()
	if err != nil {
		return "", err
	}

	if cfg.PrintLog {
		for _, line := range gs.Log.Full() {
			fmt.Println(line)
		}
	}
	if winnerID == 0 {
		return "", nil
	}
	return gs.PlayerByID(winnerID).Name, nil
}
