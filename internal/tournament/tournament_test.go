package tournament

import (
	"testing"

	"github.com/janosimas/dominon/internal/game"
	"github.com/janosimas/dominon/internal/game/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRecordResultStandings(t *testing.T) {
	tour := NewTournament(zaptest.NewLogger(t), game.GameTypeDominion, 2, 2, 1)
	assert.Equal(t, StateWaiting, tour.GetState())

	err := tour.RecordResult(Result{Winner: "0"})
	assert.ErrorIs(t, err, ErrNotRunning)

	tour.SetState(StateInProgress)
	require.NoError(t, tour.RecordResult(Result{
		GameID: "a",
		Winner: "1",
		Scores: []flow.Score{{Player: "1", Points: 12}, {Player: "0", Points: 9}},
	}))
	require.NoError(t, tour.RecordResult(Result{
		GameID: "b",
		Winner: "0",
		Scores: []flow.Score{{Player: "0", Points: 20}, {Player: "1", Points: 3}},
	}))

	standings := tour.Standings()
	require.Len(t, standings, 2)
	assert.Equal(t, Standing{Seat: "0", Played: 2, Wins: 1, Losses: 1, Points: 29}, standings[0])
	assert.Equal(t, Standing{Seat: "1", Played: 2, Wins: 1, Losses: 1, Points: 15}, standings[1])
	assert.Len(t, tour.Results(), 2)
}

func TestRunSeries(t *testing.T) {
	for _, gameType := range []string{game.GameTypeDominion, game.GameTypeEvolution} {
		t.Run(gameType, func(t *testing.T) {
			logger := zaptest.NewLogger(t)
			dir := t.TempDir()
			manager := game.NewManager(logger, game.NewReplayRecorder(logger, dir))

			tour := NewTournament(logger, gameType, 2, 3, 11)
			require.NoError(t, tour.Run(manager, 5000))
			assert.Equal(t, StateFinished, tour.GetState())

			results := tour.Results()
			require.Len(t, results, 3)
			wins := 0
			for i, r := range results {
				assert.Equal(t, int64(11+i), r.Seed)
				assert.NotEmpty(t, r.Winner)
				assert.Len(t, r.Stats, 2)

				_, err := game.LoadReplayFromFile(dir, r.GameID)
				assert.NoError(t, err)
			}
			for _, s := range tour.Standings() {
				assert.Equal(t, 3, s.Played)
				wins += s.Wins
			}
			assert.Equal(t, 3, wins)
		})
	}
}
