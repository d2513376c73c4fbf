package dominion

import (
	"github.com/janosimas/dominon/internal/game/flow"
)

// EmptyPileLimit is the number of exhausted supply piles that ends the game.
const EmptyPileLimit = 3

// Tally sums the victory value of the cards player owns in hand, deck and
// discard.
func Tally(s *State, player *Player) int {
	total := 0
	for _, card := range player.Owned() {
		total += card.VictoryPoints(s, player)
	}
	return total
}

// GameOver reports whether the end condition holds: EmptyPileLimit supply
// piles are exhausted, or a critical pile is.
func GameOver(s *State) bool {
	if s.EmptyPiles() >= EmptyPileLimit {
		return true
	}
	for _, pile := range s.Supply {
		if pile.Card.Critical && pile.Count == 0 {
			return true
		}
	}
	return false
}

// EndGameIf scores the game once it is over. Players are evaluated in seat
// order and only a strictly greater tally takes the lead, so ties go to the
// earlier seat.
func EndGameIf(s *State, _ *flow.Context) (flow.Outcome, bool) {
	if !GameOver(s) {
		return flow.Outcome{}, false
	}
	return Score(s), true
}

// Score tallies every player and picks the winner.
func Score(s *State) flow.Outcome {
	outcome := flow.Outcome{Scores: make([]flow.Score, 0, len(s.Players))}
	best := 0
	for i, player := range s.Players {
		points := Tally(s, player)
		outcome.Scores = append(outcome.Scores, flow.Score{Player: player.ID, Points: points})
		if i == 0 || points > best {
			best = points
			outcome.Winner = player.ID
		}
	}
	return outcome
}
