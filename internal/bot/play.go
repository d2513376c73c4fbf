package bot

import (
	"errors"
	"fmt"

	"github.com/janosimas/dominon/internal/game"
	"github.com/janosimas/dominon/internal/game/flow"
)

// ErrMoveLimit is returned when a game does not end within the move limit.
var ErrMoveLimit = errors.New("move limit reached")

// Play drives a managed game with bots in every seat until it ends. It
// returns the outcome and the number of moves applied.
func Play(m *game.Manager, gameID string, maxMoves int) (flow.Outcome, int, error) {
	session, err := m.Session(gameID)
	if err != nil {
		return flow.Outcome{}, 0, err
	}

	for moves := 0; ; moves++ {
		if outcome, over := session.Outcome(); over {
			return outcome, moves, nil
		}
		if err := session.Err(); err != nil {
			return flow.Outcome{}, moves, err
		}
		if moves >= maxMoves {
			return flow.Outcome{}, moves, fmt.Errorf("%w: %d", ErrMoveLimit, maxMoves)
		}

		ctx := session.Context()
		move, err := Choose(session.State(), ctx, session.Phase())
		if err != nil {
			return flow.Outcome{}, moves, err
		}
		action := game.Action{PlayerID: ctx.CurrentPlayer, Move: move.Name, Args: move.Args}
		if err := m.ProcessAction(gameID, action); err != nil {
			return flow.Outcome{}, moves, fmt.Errorf("player %s %s in %s: %w", ctx.CurrentPlayer, move.Name, session.Phase(), err)
		}
	}
}
