package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/janosimas/dominon/internal/game/dominion"
	"github.com/janosimas/dominon/internal/game/evolution"
	"github.com/janosimas/dominon/internal/game/flow"
	"github.com/janosimas/dominon/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestManager(t *testing.T) (*Manager, *ReplayRecorder) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	recorder := NewReplayRecorder(logger, t.TempDir())
	return NewManager(logger, recorder), recorder
}

// playTreasure plays the first treasure in the current player's hand.
func playTreasure(t *testing.T, m *Manager, gameID string) Action {
	t.Helper()
	session, err := m.Session(gameID)
	require.NoError(t, err)
	s := session.State().(*dominion.State)
	player := s.Player(session.Context().CurrentPlayer)
	for i, c := range player.Hand {
		if c.Kind == dominion.KindTreasure {
			action := Action{PlayerID: player.ID, Move: dominion.MovePlay, Args: flow.Args{Index: i}}
			require.NoError(t, m.ProcessAction(gameID, action))
			return action
		}
	}
	t.Fatal("no treasure in hand")
	return Action{}
}

func TestManagerStartGame(t *testing.T) {
	m, recorder := newTestManager(t)

	gameID, err := m.StartGame(GameTypeDominion, 2, 7)
	require.NoError(t, err)
	_, err = uuid.Parse(gameID)
	assert.NoError(t, err)

	session, err := m.Session(gameID)
	require.NoError(t, err)
	assert.Equal(t, GameTypeDominion, session.GameType())
	assert.Equal(t, string(dominion.PhaseAction), session.Phase())

	replay, ok := recorder.GetReplay(gameID)
	require.True(t, ok)
	assert.NotEmpty(t, replay.Initial)
	assert.Equal(t, int64(7), replay.Seed)

	_, err = m.StartGame("chess", 2, 7)
	assert.ErrorIs(t, err, ErrUnknownGameType)
}

func TestManagerProcessAction(t *testing.T) {
	m, recorder := newTestManager(t)
	gameID, err := m.StartGame(GameTypeDominion, 2, 7)
	require.NoError(t, err)

	playTreasure(t, m, gameID)
	stats, err := m.Stats(gameID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats["0"].PlayedThisTurn)

	err = m.ProcessAction(gameID, Action{PlayerID: "0", Move: dominion.MoveBuy, Args: flow.Args{Key: "province"}})
	assert.True(t, rules.IsRejected(err))

	err = m.ProcessAction(gameID, Action{PlayerID: "1", Move: dominion.MoveEndTurn})
	assert.ErrorIs(t, err, flow.ErrNotYourTurn)

	replay, _ := recorder.GetReplay(gameID)
	assert.Equal(t, 1, replay.Size())

	require.NoError(t, m.ProcessAction(gameID, Action{PlayerID: "0", Move: dominion.MoveEndTurn}))
	stats, err = m.Stats(gameID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats["0"].PlayedThisTurn)
	assert.Equal(t, 1, stats["0"].CardsPlayed)

	err = m.ProcessAction(uuid.NewString(), Action{})
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestManagerViewsAndStats(t *testing.T) {
	m, _ := newTestManager(t)
	gameID, err := m.StartGame(GameTypeDominion, 2, 9)
	require.NoError(t, err)

	playTreasure(t, m, gameID)
	require.NoError(t, m.ProcessAction(gameID, Action{PlayerID: "0", Move: dominion.MoveBuy, Args: flow.Args{Key: "copper"}}))

	view, err := m.GetGameView(gameID, "1")
	require.NoError(t, err)
	sv, ok := view.(dominion.StateView)
	require.True(t, ok)
	assert.Nil(t, sv.Players[0].Hand)
	assert.NotNil(t, sv.Players[1].Hand)

	stats, err := m.Stats(gameID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats["0"].CardsPlayed)
	assert.Equal(t, 1, stats["0"].CardsBought)
	assert.Equal(t, 0, stats["1"].CardsPlayed)

	_, over, err := m.Outcome(gameID)
	require.NoError(t, err)
	assert.False(t, over)
}

func TestManagerEvolutionSession(t *testing.T) {
	m, _ := newTestManager(t)
	gameID, err := m.StartGame(GameTypeEvolution, 3, 1)
	require.NoError(t, err)

	session, err := m.Session(gameID)
	require.NoError(t, err)
	assert.Equal(t, evolution.PhaseFood, session.Phase())
	assert.Equal(t, []string{evolution.MovePlayFood}, session.AllowedMoves())

	require.NoError(t, m.ProcessAction(gameID, Action{PlayerID: "0", Move: evolution.MovePlayFood}))
	assert.Equal(t, "1", session.Context().CurrentPlayer)

	view, err := m.GetGameView(gameID, "2")
	require.NoError(t, err)
	ev := view.(evolution.StateView)
	assert.Equal(t, 1, ev.FoodPlayed)
	assert.Nil(t, ev.FoodCards)
}

func TestManagerCleanupSavesReplay(t *testing.T) {
	logger := zaptest.NewLogger(t)
	dir := t.TempDir()
	recorder := NewReplayRecorder(logger, dir)
	m := NewManager(logger, recorder)

	gameID, err := m.StartGame(GameTypeDominion, 2, 5)
	require.NoError(t, err)
	action := playTreasure(t, m, gameID)

	m.mu.RLock()
	mg := m.games[gameID]
	m.mu.RUnlock()
	require.Equal(t, 1, mg.played.GetCount("0"))

	require.NoError(t, m.CleanupGame(gameID))
	mg.session.Events().Publish(rules.NewEvent(rules.EventCardPlayed, "0", "copper"))
	assert.Equal(t, 1, mg.played.GetCount("0"), "watchers are detached on cleanup")
	_, err = m.Session(gameID)
	assert.ErrorIs(t, err, ErrGameNotFound)
	assert.ErrorIs(t, m.CleanupGame(gameID), ErrGameNotFound)

	loaded, err := LoadReplayFromFile(dir, gameID)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Size())
	assert.Equal(t, action, loaded.GetStepAt(0).Action)

	rebuilt, err := m.Replay(loaded)
	require.NoError(t, err)
	assert.Equal(t, string(dominion.PhaseBuy), rebuilt.Phase())
}

func TestManagerReplayDetectsDivergence(t *testing.T) {
	m, recorder := newTestManager(t)
	gameID, err := m.StartGame(GameTypeDominion, 2, 5)
	require.NoError(t, err)
	playTreasure(t, m, gameID)

	replay, _ := recorder.GetReplay(gameID)
	tampered := NewReplay(gameID, replay.GameType, replay.Players, replay.Seed)
	tampered.Initial = replay.Initial
	step := replay.GetStepAt(0)
	tampered.RecordStep(step.Action, "not-a-checksum")

	_, err = m.Replay(tampered)
	assert.ErrorIs(t, err, ErrReplayDiverged)

	badSetup := NewReplay(gameID, replay.GameType, replay.Players, replay.Seed)
	badSetup.Initial = "not-a-checksum"
	_, err = m.Replay(badSetup)
	assert.ErrorIs(t, err, ErrReplayDiverged)
}

func TestSameSeedSameChecksum(t *testing.T) {
	a, err := NewSession(GameTypeDominion, flow.Options{Players: 3, Seed: 99})
	require.NoError(t, err)
	b, err := NewSession(GameTypeDominion, flow.Options{Players: 3, Seed: 99})
	require.NoError(t, err)
	require.NoError(t, a.Start())
	require.NoError(t, b.Start())

	sumA, err := a.Checksum()
	require.NoError(t, err)
	sumB, err := b.Checksum()
	require.NoError(t, err)
	assert.Equal(t, sumA, sumB)
}

func TestManagerEvolutionStats(t *testing.T) {
	m, _ := newTestManager(t)
	gameID, err := m.StartGame(GameTypeEvolution, 2, 4)
	require.NoError(t, err)
	session, err := m.Session(gameID)
	require.NoError(t, err)

	bus := session.Events()
	attack := rules.NewEventWithAmount(rules.EventSpeciesAttack, "0", "", 0)
	attack.TargetID = "1"
	bus.Publish(attack)
	bus.Publish(rules.NewEventWithAmount(rules.EventSpeciesExtinct, "1", "", 0))
	bus.Publish(rules.NewEventWithAmount(rules.EventSpeciesFed, "0", "", 2))

	stats, err := m.Stats(gameID)
	require.NoError(t, err)
	assert.Equal(t, PlayerStats{FoodEaten: 2, Attacks: 1}, stats["0"])
	assert.Equal(t, PlayerStats{Extinctions: 1}, stats["1"])
}
