// Package bot holds deterministic strategies that pick a legal move for
// the current player.
package bot

import (
	"errors"
	"fmt"

	"github.com/janosimas/dominon/internal/game/dominion"
	"github.com/janosimas/dominon/internal/game/evolution"
	"github.com/janosimas/dominon/internal/game/flow"
)

// ErrUnsupportedState is returned for a state no strategy plays.
var ErrUnsupportedState = errors.New("unsupported game state")

// Move is a move chosen by a bot.
type Move struct {
	Name string
	Args flow.Args
}

// Choose picks the next move for ctx.CurrentPlayer in the given phase.
func Choose(state any, ctx flow.Context, phase string) (Move, error) {
	switch s := state.(type) {
	case *dominion.State:
		return Dominion(s, ctx, phase), nil
	case *evolution.State:
		return Evolution(s, ctx, phase), nil
	default:
		return Move{}, fmt.Errorf("%w: %T", ErrUnsupportedState, state)
	}
}
