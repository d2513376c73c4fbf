package dominion

import (
	"fmt"

	"github.com/janosimas/dominon/internal/game/flow"
	"github.com/janosimas/dominon/internal/game/rules"
)

// Canonical move names.
const (
	MoveBuy          = "onClickBoard"
	MovePlay         = "onClickHand"
	MoveCustomAction = "customAction"
	MoveEndTurn      = "endTurn"
)

// Buy purchases one card from the supply pile args.Key. It is rejected when
// the pile is missing or empty, the buyer has no buy left, or the buyer's
// treasure does not cover the cost.
func Buy(s *State, ctx *flow.Context, args flow.Args) (*State, error) {
	pile := s.Pile(args.Key)
	if pile == nil {
		return s, rules.Reject(MoveBuy, "no supply pile %q", args.Key)
	}
	if pile.Count <= 0 {
		return s, rules.Reject(MoveBuy, "supply pile %q is empty", args.Key)
	}
	buyer := CurrentPlayer(s, ctx)
	if buyer.Buys < 1 {
		return s, rules.Reject(MoveBuy, "no buys left")
	}
	if buyer.Treasure < pile.Card.Cost {
		return s, rules.Reject(MoveBuy, "%s costs %d, treasure is %d", args.Key, pile.Card.Cost, buyer.Treasure)
	}

	state := s.Clone()
	pile = state.Pile(args.Key)
	buyer = CurrentPlayer(state, ctx)
	pile.Count--
	buyer.Treasure -= pile.Card.Cost
	buyer.Buys--
	buyer.Discard = append(buyer.Discard, pile.Card)

	evt := rules.NewEventWithAmount(rules.EventCardBought, buyer.ID, pile.Card.ID, pile.Card.Cost)
	ctx.Emit(evt)
	return state, nil
}

// PlayFromHand plays the hand card at args.Index: it moves to the shared
// play area and its trigger runs against the working state. Action cards
// need the action phase on top and an action to spend.
func PlayFromHand(s *State, ctx *flow.Context, args flow.Args) (*State, error) {
	player := CurrentPlayer(s, ctx)
	if args.Index < 0 || args.Index >= len(player.Hand) {
		return s, rules.Reject(MovePlay, "hand index %d out of range [0,%d)", args.Index, len(player.Hand))
	}
	card := player.Hand[args.Index]
	if !card.Playable() {
		return s, rules.Reject(MovePlay, "%s cannot be played", card.ID)
	}
	if card.Kind == KindAction {
		if s.TopPhase() != PhaseAction {
			return s, rules.Reject(MovePlay, "%s can only be played in %s", card.ID, PhaseAction)
		}
		if player.Actions < 1 {
			return s, rules.Reject(MovePlay, "no actions left")
		}
	}

	state := s.Clone()
	player = CurrentPlayer(state, ctx)
	player.Hand = removeAt(player.Hand, args.Index)
	state.PlayArea = append(state.PlayArea, card)
	player.InPlay = append(player.InPlay, card)
	if card.Kind == KindAction {
		player.Actions--
	}
	ctx.Emit(rules.NewEvent(rules.EventCardPlayed, player.ID, card.ID))

	play := newPlay(state, ctx, card)
	card.OnPlay(play)
	if err := play.commit(); err != nil {
		return s, fmt.Errorf("%s trigger: %w", card.ID, err)
	}
	return state, nil
}

// RunCustomAction fires the armed custom action. The handler is expected to
// disarm itself.
func RunCustomAction(s *State, ctx *flow.Context, _ flow.Args) (*State, error) {
	if s.Armed == nil || s.Armed.Run == nil {
		return s, rules.Reject(MoveCustomAction, "no custom action armed")
	}

	state := s.Clone()
	play := newPlay(state, ctx, nil)
	if card, ok := state.registry.Card(state.Armed.Source); ok {
		play.Card = card
	}
	state.Armed.Run(play)
	if err := play.commit(); err != nil {
		return s, fmt.Errorf("custom action %q: %w", s.Armed.Label, err)
	}
	return state, nil
}

// EndTurn returns the stack to the action phase and raises the end-of-turn
// flag so the turn cleanup runs.
func EndTurn(s *State, ctx *flow.Context, _ flow.Args) (*State, error) {
	state := s.Clone()
	play := newPlay(state, ctx, nil)
	play.ResetPhase(PhaseAction)
	play.EndTurn()
	if err := play.commit(); err != nil {
		return s, err
	}
	return state, nil
}

// Apply runs effect as a move: it works on a copy of s, then applies the
// phase commands it recorded. Module moves use it to stay off the phase
// stack.
func Apply(s *State, ctx *flow.Context, effect Effect) (*State, error) {
	state := s.Clone()
	play := newPlay(state, ctx, nil)
	effect(play)
	if err := play.commit(); err != nil {
		return s, err
	}
	return state, nil
}
