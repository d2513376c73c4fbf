package dominion

import (
	"github.com/janosimas/dominon/internal/game/flow"
	"github.com/janosimas/dominon/internal/game/rules"
)

// Canonical phases.
const (
	PhaseAction rules.Phase = "ACTION"
	PhaseBuy    rules.Phase = "BUY"
)

// Per-turn defaults.
const (
	HandSize       = 5
	ActionsPerTurn = 1
	BuysPerTurn    = 1
)

// OnTurnBegin resets the current player's resources when the action phase
// is on top.
func OnTurnBegin(s *State, ctx *flow.Context) (*State, error) {
	if s.TopPhase() != PhaseAction {
		return s, nil
	}
	state := s.Clone()
	player := CurrentPlayer(state, ctx)
	player.Actions = ActionsPerTurn
	player.Buys = BuysPerTurn
	player.Treasure = 0
	return state, nil
}

// OnTurnEnd clears the end-of-turn flag and, when the action phase is on
// top, cleans up: temporary cards go to the trash, the rest of the play
// area and the hand go to the discard and a new hand is drawn.
func OnTurnEnd(s *State, ctx *flow.Context) (*State, error) {
	state := s.Clone()
	state.EndTurn = false
	if state.TopPhase() != PhaseAction {
		return state, nil
	}

	player := CurrentPlayer(state, ctx)
	kept := state.PlayArea[:0:0]
	for _, card := range state.PlayArea {
		if card.Temporary {
			state.Trash = append(state.Trash, card)
			ctx.Emit(rules.NewEvent(rules.EventCardTrashed, player.ID, card.ID))
			continue
		}
		kept = append(kept, card)
	}
	player.Discard = append(player.Discard, kept...)
	state.PlayArea = nil
	player.InPlay = nil
	for len(player.Hand) > 0 {
		Discard(player, 0)
	}
	DrawCards(ctx, player, HandSize)
	player.Victory = Tally(state, player)
	return state, nil
}

// EndTurnIf ends the turn once the end-of-turn flag is raised.
func EndTurnIf(s *State, _ *flow.Context) bool {
	return s.EndTurn
}

// FollowStack returns an EndIf that switches the host to the top of the
// phase stack whenever it differs from self.
func FollowStack(self rules.Phase) func(*State, *flow.Context) (string, bool) {
	return func(s *State, _ *flow.Context) (string, bool) {
		if top := s.TopPhase(); top != self {
			return string(top), true
		}
		return "", false
	}
}

func actionPhase() PhaseDef {
	return PhaseDef{
		Name:  string(PhaseAction),
		Moves: []string{MovePlay, MoveEndTurn},
		EndIf: FollowStack(PhaseAction),
		// Nested phases must have popped themselves before the base flow
		// resumes.
		OnBegin: func(s *State, _ *flow.Context) (*State, error) {
			if err := s.phases.Expect(PhaseAction, PhaseBuy); err != nil {
				return s, err
			}
			state := s.Clone()
			state.phases = rules.NewPhaseStack(PhaseAction)
			return state, nil
		},
	}
}

func buyPhase() PhaseDef {
	return PhaseDef{
		Name:  string(PhaseBuy),
		Moves: []string{MovePlay, MoveBuy, MoveEndTurn},
		EndIf: FollowStack(PhaseBuy),
		OnBegin: func(s *State, _ *flow.Context) (*State, error) {
			state := s.Clone()
			state.phases = rules.NewPhaseStack(PhaseBuy)
			return state, nil
		},
	}
}
