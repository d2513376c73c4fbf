// Package tournament runs a series of seeded bot games and keeps the
// standings of each seat.
package tournament

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/janosimas/dominon/internal/bot"
	"github.com/janosimas/dominon/internal/game"
	"github.com/janosimas/dominon/internal/game/flow"
	"go.uber.org/zap"
)

var ErrNotRunning = errors.New("tournament is not running")

// State represents the state of a tournament
type State int

const (
	StateWaiting State = iota
	StateInProgress
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "WAITING"
	case StateInProgress:
		return "IN_PROGRESS"
	case StateFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// Standing is one seat's record across the series.
type Standing struct {
	Seat   string
	Played int
	Wins   int
	Losses int
	Points int // sum of final scores
}

// Result is one finished game.
type Result struct {
	GameID string
	Seed   int64
	Winner string
	Moves  int
	Scores []flow.Score
	Stats  map[string]game.PlayerStats
}

// Tournament is a series of games of one type, each seeded with Seed+i.
type Tournament struct {
	ID       string
	GameType string
	Players  int
	Games    int
	Seed     int64

	logger    *zap.Logger
	mu        sync.RWMutex
	state     State
	standings map[string]*Standing
	results   []Result
}

// NewTournament creates a waiting tournament.
func NewTournament(logger *zap.Logger, gameType string, players, games int, seed int64) *Tournament {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	return &Tournament{
		ID:        id,
		GameType:  gameType,
		Players:   players,
		Games:     games,
		Seed:      seed,
		logger:    logger.With(zap.String("tournament_id", id)),
		standings: make(map[string]*Standing),
	}
}

// Run plays every game of the series on m with bots in every seat. Games
// are cleaned up after they finish, which saves their replays when m
// records them.
func (t *Tournament) Run(m *game.Manager, maxMoves int) error {
	t.SetState(StateInProgress)

	for i := 0; i < t.Games; i++ {
		seed := t.Seed + int64(i)
		gameID, err := m.StartGame(t.GameType, t.Players, seed)
		if err != nil {
			return fmt.Errorf("start game %d: %w", i, err)
		}

		outcome, moves, err := bot.Play(m, gameID, maxMoves)
		if err != nil {
			return fmt.Errorf("game %s (seed %d): %w", gameID, seed, err)
		}
		stats, err := m.Stats(gameID)
		if err != nil {
			return err
		}
		if err := m.CleanupGame(gameID); err != nil {
			return fmt.Errorf("cleanup game %s: %w", gameID, err)
		}

		result := Result{
			GameID: gameID,
			Seed:   seed,
			Winner: outcome.Winner,
			Moves:  moves,
			Scores: outcome.Scores,
			Stats:  stats,
		}
		if err := t.RecordResult(result); err != nil {
			return err
		}
	}

	t.SetState(StateFinished)
	return nil
}

// RecordResult adds a finished game to the standings.
func (t *Tournament) RecordResult(result Result) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateInProgress {
		return fmt.Errorf("%w: %s", ErrNotRunning, t.state)
	}

	for _, score := range result.Scores {
		standing, ok := t.standings[score.Player]
		if !ok {
			standing = &Standing{Seat: score.Player}
			t.standings[score.Player] = standing
		}
		standing.Played++
		standing.Points += score.Points
		if score.Player == result.Winner {
			standing.Wins++
		} else {
			standing.Losses++
		}
	}
	t.results = append(t.results, result)

	t.logger.Info("game recorded",
		zap.String("game_id", result.GameID),
		zap.Int64("seed", result.Seed),
		zap.String("winner", result.Winner),
		zap.Int("moves", result.Moves),
	)
	return nil
}

// SetState sets the tournament state
func (t *Tournament) SetState(state State) {
	t.mu.Lock()
	defer t.mu.Unlock()

	old := t.state
	t.state = state

	t.logger.Info("tournament state changed",
		zap.String("old_state", old.String()),
		zap.String("new_state", state.String()),
	)
}

// GetState returns the tournament state
func (t *Tournament) GetState() State {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.state
}

// Standings returns every seat ordered by wins, then points, then seat.
func (t *Tournament) Standings() []Standing {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Standing, 0, len(t.standings))
	for _, s := range t.standings {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Seat < out[j].Seat
	})
	return out
}

// Results returns the finished games in play order.
func (t *Tournament) Results() []Result {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Result, len(t.results))
	copy(out, t.results)
	return out
}
