package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, GameDominion, cfg.Simulation.Game)
	assert.Equal(t, 2, cfg.Simulation.Players)
	assert.Equal(t, 1, cfg.Simulation.Games)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.False(t, cfg.Replay.Enabled)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cardsim.yaml")
	body := []byte("simulation:\n  game: evolution\n  players: 3\n  seed: 99\nlogging:\n  format: json\n")
	require.NoError(t, os.WriteFile(path, body, 0o600))

	t.Setenv("CARDSIM_SIMULATION_GAMES", "7")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, GameEvolution, cfg.Simulation.Game)
	assert.Equal(t, 3, cfg.Simulation.Players)
	assert.Equal(t, int64(99), cfg.Simulation.Seed)
	assert.Equal(t, 7, cfg.Simulation.Games)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("CARDSIM_SIMULATION_GAME", "chess")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown game")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
