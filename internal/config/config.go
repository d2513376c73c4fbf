// Package config loads simulator configuration from an optional YAML file
// and CARDSIM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Game names accepted by Simulation.Game.
const (
	GameDominion  = "dominion"
	GameEvolution = "evolution"
)

// Config is the root configuration.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Replay     ReplayConfig     `mapstructure:"replay"`
}

// SimulationConfig controls which games are played.
type SimulationConfig struct {
	Game     string `mapstructure:"game"`
	Players  int    `mapstructure:"players"`
	Games    int    `mapstructure:"games"`
	Seed     int64  `mapstructure:"seed"`
	MaxMoves int    `mapstructure:"max_moves"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ReplayConfig controls replay export.
type ReplayConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Directory string `mapstructure:"directory"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("simulation.game", GameDominion)
	v.SetDefault("simulation.players", 2)
	v.SetDefault("simulation.games", 1)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.max_moves", 5000)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("replay.enabled", false)
	v.SetDefault("replay.directory", "replays")
}

// Load reads configuration from path. A missing file is not an error when
// path is empty; defaults and environment variables still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CARDSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	switch c.Simulation.Game {
	case GameDominion:
		if c.Simulation.Players < 2 || c.Simulation.Players > 4 {
			errs = append(errs, fmt.Errorf("dominion needs 2-4 players, got %d", c.Simulation.Players))
		}
	case GameEvolution:
		if c.Simulation.Players < 2 || c.Simulation.Players > 6 {
			errs = append(errs, fmt.Errorf("evolution needs 2-6 players, got %d", c.Simulation.Players))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown game %q", c.Simulation.Game))
	}
	if c.Simulation.Games < 1 {
		errs = append(errs, errors.New("simulation.games must be at least 1"))
	}
	if c.Simulation.MaxMoves < 1 {
		errs = append(errs, errors.New("simulation.max_moves must be at least 1"))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Logging.Format))
	}
	if c.Replay.Enabled && c.Replay.Directory == "" {
		errs = append(errs, errors.New("replay.directory is required when replays are enabled"))
	}
	return errors.Join(errs...)
}
