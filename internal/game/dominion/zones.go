package dominion

import (
	"github.com/janosimas/dominon/internal/game/flow"
	"github.com/janosimas/dominon/internal/game/rules"
	"github.com/janosimas/dominon/internal/random"
)

// DrawCards moves up to n cards from the player's deck to their hand. When
// the deck runs out the discard is shuffled into a new deck first. It
// returns the number of cards drawn, short only when deck and discard are
// both exhausted.
func DrawCards(ctx *flow.Context, player *Player, n int) int {
	drawn := 0
	for drawn < n {
		if len(player.Deck) == 0 {
			if len(player.Discard) == 0 {
				break
			}
			reshuffle(ctx, player)
		}
		top := len(player.Deck) - 1
		player.Hand = append(player.Hand, player.Deck[top])
		player.Deck = player.Deck[:top]
		drawn++
	}
	if drawn > 0 && ctx != nil {
		ctx.Emit(rules.NewEventWithAmount(rules.EventCardDrawn, player.ID, "", drawn))
	}
	return drawn
}

func reshuffle(ctx *flow.Context, player *Player) {
	var rng random.Shuffler
	if ctx != nil {
		rng = ctx.Random
		ctx.Emit(rules.NewEventWithAmount(rules.EventShuffled, player.ID, "", len(player.Discard)))
	}
	player.Deck = append(random.Shuffle(rng, player.Discard), player.Deck...)
	player.Discard = nil
}

// Discard moves the hand card at index to the discard pile. The caller
// validates index.
func Discard(player *Player, index int) *Card {
	card := player.Hand[index]
	player.Hand = removeAt(player.Hand, index)
	player.Discard = append(player.Discard, card)
	return card
}

// TrashFromHand moves the hand card at index to the shared trash. The
// caller validates index.
func TrashFromHand(s *State, player *Player, index int) *Card {
	card := player.Hand[index]
	player.Hand = removeAt(player.Hand, index)
	s.Trash = append(s.Trash, card)
	return card
}

// Gain takes one card from its supply pile into the player's discard
// without paying for it. It reports false when the pile is missing or
// empty.
func Gain(s *State, player *Player, id string) bool {
	pile := s.Pile(id)
	if pile == nil || pile.Count <= 0 {
		return false
	}
	pile.Count--
	player.Discard = append(player.Discard, pile.Card)
	return true
}

func removeAt(cards []*Card, index int) []*Card {
	out := make([]*Card, 0, len(cards)-1)
	out = append(out, cards[:index]...)
	return append(out, cards[index+1:]...)
}
