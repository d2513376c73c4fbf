package bot

import (
	"github.com/janosimas/dominon/internal/game/evolution"
	"github.com/janosimas/dominon/internal/game/flow"
)

// Evolution is a greedy feeder: it plays its richest card for food, grows
// small species first and always feeds when it can.
func Evolution(s *evolution.State, ctx flow.Context, phase string) Move {
	player := s.Player(ctx.CurrentPlayer)
	switch phase {
	case evolution.PhaseFood:
		if len(player.Hand) == 0 {
			return Move{Name: evolution.MovePlayFood}
		}
		best := 0
		for i, c := range player.Hand {
			if c.Food > player.Hand[best].Food {
				best = i
			}
		}
		return Move{Name: evolution.MovePlayFood, Args: flow.Args{Index: best}}
	case evolution.PhaseCardAction:
		if player.Selected == nil {
			return Move{Name: evolution.MoveSelectCard, Args: flow.Args{Index: 0}}
		}
		return spendCard(player)
	case evolution.PhaseEat:
		return feed(s, player)
	}
	return Move{}
}

func spendCard(player *evolution.Player) Move {
	for i, sp := range player.Species {
		if sp.Population < 3 {
			return Move{Name: evolution.MoveIncreasePopulation, Args: flow.Args{Index: i}}
		}
	}
	for i, sp := range player.Species {
		if sp.BodySize < 4 {
			return Move{Name: evolution.MoveIncreaseBodySize, Args: flow.Args{Index: i}}
		}
	}
	if len(player.Species) < 3 {
		return Move{Name: evolution.MoveCreateSpecies, Args: flow.Args{Index: len(player.Species)}}
	}
	for i, sp := range player.Species {
		if len(sp.Traits) < evolution.MaxTraits {
			return Move{Name: evolution.MoveNewTrait, Args: flow.Args{Index: i}}
		}
	}
	return Move{Name: evolution.MoveCreateSpecies, Args: flow.Args{Index: len(player.Species)}}
}

func feed(s *evolution.State, player *evolution.Player) Move {
	if sel := player.SelectedSpecies; sel >= 0 && sel < len(player.Species) {
		sp := player.Species[sel]
		if sp.Hungry() {
			if s.WateringHole > 0 {
				return Move{Name: evolution.MoveEat}
			}
			if seat, target, ok := findPrey(s, sp); ok {
				return Move{Name: evolution.MoveAttack, Args: flow.Args{Player: seat, Target: target}}
			}
		}
	}
	for i, sp := range player.Species {
		if !sp.Hungry() {
			continue
		}
		if _, _, ok := findPrey(s, sp); ok || s.WateringHole > 0 {
			return Move{Name: evolution.MoveSelectSpecies, Args: flow.Args{Index: i}}
		}
	}
	return Move{Name: evolution.MoveSelectSpecies}
}

// findPrey returns the largest species the hunter can attack, preferring
// other players' species.
func findPrey(s *evolution.State, hunter *evolution.Species) (int, int, bool) {
	bestSeat, bestTarget, found := -1, -1, false
	bestBody, bestOwn := -1, true
	for seat, p := range s.Players {
		for i, prey := range p.Species {
			if prey == hunter || prey.BodySize >= hunter.BodySize {
				continue
			}
			own := false
			for _, sp := range p.Species {
				if sp == hunter {
					own = true
				}
			}
			better := !found || (bestOwn && !own) || (own == bestOwn && prey.BodySize > bestBody)
			if better {
				bestSeat, bestTarget, found = seat, i, true
				bestBody, bestOwn = prey.BodySize, own
			}
		}
	}
	return bestSeat, bestTarget, found
}
