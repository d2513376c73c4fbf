// Package cards holds the card modules of the deck-building game.
package cards

import (
	"github.com/janosimas/dominon/internal/game/dominion"
)

// victoryPile is the victory supply size: 8 for two players, 12 otherwise.
func victoryPile(players int) int {
	if players <= 2 {
		return 8
	}
	return 12
}

func treasure(id, name string, cost, value, pile int) *dominion.Card {
	return &dominion.Card{
		ID:   id,
		Name: name,
		Kind: dominion.KindTreasure,
		Cost: cost,
		OnPlay: func(p *dominion.Play) {
			p.AddTreasure(value)
			if p.State.TopPhase() == dominion.PhaseAction {
				p.PushPhase(dominion.PhaseBuy)
			}
		},
		Pile: func(int) int { return pile },
	}
}

func victory(id, name string, cost, points int) *dominion.Card {
	return &dominion.Card{
		ID:      id,
		Name:    name,
		Kind:    dominion.KindVictory,
		Cost:    cost,
		Victory: points,
		Pile:    victoryPile,
	}
}

// Base is the module of treasure, victory and curse cards present in every
// game. Playing a treasure during the action phase moves the turn into the
// buy phase.
func Base() dominion.Module {
	copper := treasure("copper", "Copper", 0, 1, 0)
	copper.Pile = func(players int) int { return 60 - 7*players }

	province := victory("province", "Province", 8, 6)
	province.Critical = true

	curse := &dominion.Card{
		ID:      "curse",
		Name:    "Curse",
		Kind:    dominion.KindCurse,
		Victory: -1,
		Pile: func(players int) int {
			if players < 2 {
				return 10
			}
			return 10 * (players - 1)
		},
	}

	return dominion.Module{
		Name: "base",
		Cards: []*dominion.Card{
			copper,
			treasure("silver", "Silver", 3, 2, 40),
			treasure("gold", "Gold", 6, 3, 30),
			victory("estate", "Estate", 2, 1),
			victory("duchy", "Duchy", 5, 3),
			province,
			curse,
		},
	}
}
