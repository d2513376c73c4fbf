package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/janosimas/dominon/internal/config"
	"github.com/janosimas/dominon/internal/game"
	"github.com/janosimas/dominon/internal/random"
	"github.com/janosimas/dominon/internal/tournament"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath = flag.String("config", "", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting card simulator",
		zap.String("version", version),
		zap.String("game", cfg.Simulation.Game),
		zap.Int("players", cfg.Simulation.Players),
		zap.Int("games", cfg.Simulation.Games),
	)

	if err := run(cfg, logger); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	seed := cfg.Simulation.Seed
	if seed == 0 {
		var err error
		if seed, err = random.NewSeed(); err != nil {
			return err
		}
	}

	var recorder *game.ReplayRecorder
	if cfg.Replay.Enabled {
		recorder = game.NewReplayRecorder(logger, cfg.Replay.Directory)
	}
	manager := game.NewManager(logger, recorder)

	tour := tournament.NewTournament(logger, cfg.Simulation.Game, cfg.Simulation.Players, cfg.Simulation.Games, seed)
	if err := tour.Run(manager, cfg.Simulation.MaxMoves); err != nil {
		return err
	}

	for _, r := range tour.Results() {
		for id, s := range r.Stats {
			logger.Debug("player stats",
				zap.String("game_id", r.GameID),
				zap.String("player_id", id),
				zap.Int("cards_played", s.CardsPlayed),
				zap.Int("cards_bought", s.CardsBought),
				zap.Int("cards_gained", s.CardsGained),
				zap.Int("food_eaten", s.FoodEaten),
				zap.Int("attacks", s.Attacks),
				zap.Int("extinctions", s.Extinctions),
			)
		}
	}
	for _, s := range tour.Standings() {
		logger.Info("standing",
			zap.String("player_id", s.Seat),
			zap.Int("played", s.Played),
			zap.Int("wins", s.Wins),
			zap.Int("losses", s.Losses),
			zap.Int("points", s.Points),
		)
	}
	return nil
}

func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
