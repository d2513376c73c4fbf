package bot

import (
	"github.com/janosimas/dominon/internal/game/dominion"
	"github.com/janosimas/dominon/internal/game/dominion/cards"
	"github.com/janosimas/dominon/internal/game/flow"
)

// cantrips are actions that give back at least one action; they are
// played before terminal actions.
var cantrips = map[string]bool{
	"village":    true,
	"festival":   true,
	"market":     true,
	"laboratory": true,
	"cellar":     true,
}

// gainPriority lists the cards worth gaining, best first.
var gainPriority = []string{"laboratory", "market", "festival", "smithy", "militia", "village", "silver"}

// Dominion plays big money with actions: play actions, then treasures,
// then buy the most expensive card worth having.
func Dominion(s *dominion.State, ctx flow.Context, phase string) Move {
	player := s.Player(ctx.CurrentPlayer)
	switch phase {
	case string(cards.PhaseCellar):
		for i, c := range player.Hand {
			if c.Kind == dominion.KindVictory || c.Kind == dominion.KindCurse {
				return Move{Name: cards.MoveCellarDiscard, Args: flow.Args{Index: i}}
			}
		}
		return Move{Name: dominion.MoveCustomAction}
	case string(cards.PhaseChapel):
		if s.Armed != nil && s.Armed.Counter < cards.ChapelLimit {
			for i, c := range player.Hand {
				if c.Kind == dominion.KindCurse || c.ID == "estate" {
					return Move{Name: cards.MoveChapelTrash, Args: flow.Args{Index: i}}
				}
			}
		}
		return Move{Name: dominion.MoveCustomAction}
	case string(cards.PhaseGain):
		for _, id := range gainPriority {
			if pile := s.Pile(id); pile != nil && pile.Count > 0 && pile.Card.Cost <= s.GainLimit {
				return Move{Name: cards.MoveGainCard, Args: flow.Args{Key: id}}
			}
		}
		return Move{Name: dominion.MoveCustomAction}
	case string(dominion.PhaseAction):
		if player.Actions > 0 {
			if i := pickAction(player.Hand); i >= 0 {
				return Move{Name: dominion.MovePlay, Args: flow.Args{Index: i}}
			}
		}
		if i := firstOfKind(player.Hand, dominion.KindTreasure); i >= 0 {
			return Move{Name: dominion.MovePlay, Args: flow.Args{Index: i}}
		}
		return Move{Name: dominion.MoveEndTurn}
	case string(dominion.PhaseBuy):
		if i := firstOfKind(player.Hand, dominion.KindTreasure); i >= 0 {
			return Move{Name: dominion.MovePlay, Args: flow.Args{Index: i}}
		}
		if player.Buys > 0 {
			if id := pickBuy(s, player.Treasure); id != "" {
				return Move{Name: dominion.MoveBuy, Args: flow.Args{Key: id}}
			}
		}
		return Move{Name: dominion.MoveEndTurn}
	}
	return Move{Name: dominion.MoveEndTurn}
}

func pickAction(hand []*dominion.Card) int {
	terminal := -1
	for i, c := range hand {
		if c.Kind != dominion.KindAction {
			continue
		}
		if cantrips[c.ID] {
			return i
		}
		if terminal < 0 {
			terminal = i
		}
	}
	return terminal
}

func firstOfKind(hand []*dominion.Card, kind dominion.Kind) int {
	for i, c := range hand {
		if c.Kind == kind {
			return i
		}
	}
	return -1
}

func pickBuy(s *dominion.State, treasure int) string {
	provinces := 0
	if pile := s.Pile("province"); pile != nil {
		provinces = pile.Count
	}
	wants := []struct {
		id string
		ok bool
	}{
		{"province", true},
		{"gold", true},
		{"duchy", provinces <= 4},
		{"laboratory", true},
		{"market", true},
		{"festival", true},
		{"smithy", true},
		{"estate", provinces <= 2},
		{"silver", true},
	}
	for _, w := range wants {
		if !w.ok {
			continue
		}
		pile := s.Pile(w.id)
		if pile != nil && pile.Count > 0 && pile.Card.Cost <= treasure {
			return w.id
		}
	}
	return ""
}
