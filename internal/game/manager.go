package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/janosimas/dominon/internal/game/flow"
	"github.com/janosimas/dominon/internal/game/rules"
	"github.com/janosimas/dominon/internal/game/watchers"
	"go.uber.org/zap"
)

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrReplayDiverged = errors.New("replay diverged")
)

// PlayerStats are the per-player tallies kept by a game's watchers.
type PlayerStats struct {
	CardsPlayed    int
	// PlayedThisTurn resets when the turn ends.
	PlayedThisTurn int
	CardsBought    int
	CardsGained    int
	Spent          int
	FoodEaten      int
	Attacks        int
	Extinctions    int
}

type managedGame struct {
	mu       sync.Mutex
	session  Session
	watchers *rules.WatcherRegistry
	handle   int // event bus subscription of watchers
	played   *watchers.CardsPlayedWatcher
	turn     *watchers.TurnPlaysWatcher
	bought   *watchers.CardsBoughtWatcher
	food     *watchers.FoodEatenWatcher
}

// Manager hosts game sessions keyed by game ID.
type Manager struct {
	logger   *zap.Logger
	recorder *ReplayRecorder

	mu    sync.RWMutex
	games map[string]*managedGame
}

// NewManager creates a manager. recorder may be nil to disable replays.
func NewManager(logger *zap.Logger, recorder *ReplayRecorder) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		logger:   logger,
		recorder: recorder,
		games:    make(map[string]*managedGame),
	}
}

// StartGame creates and starts a session and returns its game ID.
func (m *Manager) StartGame(gameType string, players int, seed int64) (string, error) {
	gameID := uuid.NewString()
	mg, err := m.newGame(gameID, gameType, players, seed)
	if err != nil {
		return "", err
	}

	if m.recorder != nil {
		initial, err := mg.session.Checksum()
		if err != nil {
			return "", fmt.Errorf("checksum initial state: %w", err)
		}
		replay := NewReplay(gameID, gameType, players, seed)
		replay.Initial = initial
		m.recorder.StartRecording(replay)
	}

	m.mu.Lock()
	m.games[gameID] = mg
	m.mu.Unlock()

	m.logger.Info("game started",
		zap.String("game_id", gameID),
		zap.String("game_type", gameType),
		zap.Int("players", players),
		zap.Int64("seed", seed),
	)
	return gameID, nil
}

func (m *Manager) newGame(gameID, gameType string, players int, seed int64) (*managedGame, error) {
	session, err := NewSession(gameType, flow.Options{
		Players: players,
		Seed:    seed,
		Logger:  m.logger.With(zap.String("game_id", gameID)),
	})
	if err != nil {
		return nil, err
	}

	mg := &managedGame{
		session:  session,
		watchers: rules.NewWatcherRegistry(),
		played:   watchers.NewCardsPlayedWatcher(),
		turn:     watchers.NewTurnPlaysWatcher(),
		bought:   watchers.NewCardsBoughtWatcher(),
		food:     watchers.NewFoodEatenWatcher(),
	}
	mg.watchers.AddWatcher(mg.played)
	mg.watchers.AddWatcher(mg.turn)
	mg.watchers.AddWatcher(mg.bought)
	mg.watchers.AddWatcher(mg.food)
	mg.handle = watchers.Attach(session.Events(), mg.watchers)

	if err := session.Start(); err != nil {
		return nil, fmt.Errorf("start %s game: %w", gameType, err)
	}
	return mg, nil
}

func (m *Manager) game(gameID string) (*managedGame, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mg, ok := m.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return mg, nil
}

// ProcessAction applies a player's move. Rejected moves leave the game
// untouched and are not recorded.
func (m *Manager) ProcessAction(gameID string, action Action) error {
	mg, err := m.game(gameID)
	if err != nil {
		return err
	}

	mg.mu.Lock()
	defer mg.mu.Unlock()

	if err := mg.session.Apply(action); err != nil {
		if errors.Is(err, flow.ErrAborted) {
			m.logger.Error("game aborted",
				zap.String("game_id", gameID),
				zap.String("player_id", action.PlayerID),
				zap.String("move", action.Move),
				zap.Error(err),
			)
		}
		return err
	}

	if m.recorder != nil && m.recorder.IsRecording(gameID) {
		checksum, err := mg.session.Checksum()
		if err != nil {
			return fmt.Errorf("checksum after %s: %w", action.Move, err)
		}
		m.recorder.RecordStep(gameID, action, checksum)
	}

	if outcome, over := mg.session.Outcome(); over {
		m.logger.Info("game finished",
			zap.String("game_id", gameID),
			zap.String("winner", outcome.Winner),
		)
		if m.recorder != nil {
			m.recorder.StopRecording(gameID)
		}
	}
	return nil
}

// Session returns the session of a game. Callers must not apply moves to
// it directly.
func (m *Manager) Session(gameID string) (Session, error) {
	mg, err := m.game(gameID)
	if err != nil {
		return nil, err
	}
	return mg.session, nil
}

// GetGameView returns the game as seen by viewer.
func (m *Manager) GetGameView(gameID, viewer string) (any, error) {
	mg, err := m.game(gameID)
	if err != nil {
		return nil, err
	}

	mg.mu.Lock()
	defer mg.mu.Unlock()
	return mg.session.View(viewer), nil
}

// Outcome returns the result of a finished game.
func (m *Manager) Outcome(gameID string) (flow.Outcome, bool, error) {
	mg, err := m.game(gameID)
	if err != nil {
		return flow.Outcome{}, false, err
	}

	mg.mu.Lock()
	defer mg.mu.Unlock()
	outcome, over := mg.session.Outcome()
	return outcome, over, nil
}

// Stats returns the watcher tallies of every player in the game.
func (m *Manager) Stats(gameID string) (map[string]PlayerStats, error) {
	mg, err := m.game(gameID)
	if err != nil {
		return nil, err
	}

	mg.mu.Lock()
	defer mg.mu.Unlock()

	stats := make(map[string]PlayerStats)
	for _, id := range mg.session.Context().PlayOrder {
		stats[id] = PlayerStats{
			CardsPlayed:    mg.played.GetCount(id),
			PlayedThisTurn: mg.turn.GetCount(id),
			CardsBought:    mg.bought.GetBought(id),
			CardsGained:    mg.bought.GetGained(id),
			Spent:          mg.bought.GetSpent(id),
			FoodEaten:      mg.food.GetEaten(id),
			Attacks:        mg.food.GetAttacks(id),
			Extinctions:    mg.food.GetExtinctions(id),
		}
	}
	return stats, nil
}

// CleanupGame removes a game, detaches its watchers and saves its replay
// when one was recorded.
func (m *Manager) CleanupGame(gameID string) error {
	m.mu.Lock()
	mg, ok := m.games[gameID]
	delete(m.games, gameID)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	mg.session.Events().Unsubscribe(mg.handle)

	if m.recorder != nil {
		if _, recorded := m.recorder.GetReplay(gameID); recorded {
			if err := m.recorder.SaveReplay(gameID); err != nil {
				return err
			}
		}
	}

	m.logger.Debug("game cleaned up", zap.String("game_id", gameID))
	return nil
}

// Replay rebuilds a recorded game from its seed and actions and verifies
// every checksum. It returns the rebuilt session.
func (m *Manager) Replay(replay *Replay) (Session, error) {
	mg, err := m.newGame(replay.GameID, replay.GameType, replay.Players, replay.Seed)
	if err != nil {
		return nil, err
	}

	checksum, err := mg.session.Checksum()
	if err != nil {
		return nil, err
	}
	if replay.Initial != "" && checksum != replay.Initial {
		return nil, fmt.Errorf("%w: setup of %s", ErrReplayDiverged, replay.GameID)
	}

	for i := 0; i < replay.Size(); i++ {
		step := replay.GetStepAt(i)
		if err := mg.session.Apply(step.Action); err != nil {
			return nil, fmt.Errorf("replay step %d (%s): %w", i, step.Action.Move, err)
		}
		checksum, err := mg.session.Checksum()
		if err != nil {
			return nil, err
		}
		if checksum != step.Checksum {
			return nil, fmt.Errorf("%w: step %d (%s)", ErrReplayDiverged, i, step.Action.Move)
		}
	}

	m.logger.Info("replay verified",
		zap.String("game_id", replay.GameID),
		zap.Int("steps", replay.Size()),
	)
	return mg.session, nil
}
