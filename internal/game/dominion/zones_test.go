package dominion

import (
	"testing"

	"github.com/janosimas/dominon/internal/game/rules"
	"github.com/stretchr/testify/assert"
)

func TestDrawCardsFromDeck(t *testing.T) {
	s, ctx := newTestState(t, 2)
	player := s.Players[0]
	player.Deck = testCards(t, s, "estate", "silver", "copper")

	drawn := DrawCards(ctx, player, 2)

	assert.Equal(t, 2, drawn)
	assert.Equal(t, []string{"copper", "silver"}, cardIDs(player.Hand))
	assert.Equal(t, []string{"estate"}, cardIDs(player.Deck))
}

func TestDrawCardsReshufflesDiscard(t *testing.T) {
	s, ctx := newTestState(t, 2)
	player := s.Players[0]
	player.Deck = testCards(t, s, "estate", "estate")
	player.Discard = testCards(t, s, repeat("copper", 5)...)

	drawn := DrawCards(ctx, player, 4)

	assert.Equal(t, 4, drawn)
	assert.Len(t, player.Hand, 4)
	assert.Len(t, player.Deck, 3)
	assert.Empty(t, player.Discard)
	assert.Equal(t, "estate", player.Hand[0].ID)
	assert.Equal(t, "estate", player.Hand[1].ID)
	assert.Equal(t, 7, len(player.Owned()))
}

func TestDrawCardsStopsWhenExhausted(t *testing.T) {
	s, ctx := newTestState(t, 2)
	player := s.Players[0]
	player.Deck = testCards(t, s, "copper")

	assert.Equal(t, 1, DrawCards(ctx, player, 3))
	assert.Len(t, player.Hand, 1)
	assert.Equal(t, 0, DrawCards(ctx, player, 1))
}

func TestDrawCardsEmitsEvents(t *testing.T) {
	s, ctx := newTestState(t, 2)
	player := s.Players[0]
	player.Discard = testCards(t, s, "copper", "copper")

	DrawCards(ctx, player, 1)

	events := ctx.Pending()
	if assert.Len(t, events, 2) {
		assert.Equal(t, rules.EventShuffled, events[0].Type)
		assert.Equal(t, 2, events[0].Amount)
		assert.Equal(t, rules.EventCardDrawn, events[1].Type)
		assert.Equal(t, 1, events[1].Amount)
	}
}

func TestGainAndTrash(t *testing.T) {
	s, _ := newTestState(t, 2)
	player := s.Players[0]
	before := s.Pile("silver").Count

	assert.True(t, Gain(s, player, "silver"))
	assert.Equal(t, before-1, s.Pile("silver").Count)
	assert.Equal(t, []string{"silver"}, cardIDs(player.Discard))

	s.Pile("silver").Count = 0
	assert.False(t, Gain(s, player, "silver"))
	assert.False(t, Gain(s, player, "missing"))

	player.Hand = testCards(t, s, "estate", "copper")
	trashed := TrashFromHand(s, player, 0)
	assert.Equal(t, "estate", trashed.ID)
	assert.Equal(t, []string{"copper"}, cardIDs(player.Hand))
	assert.Equal(t, []string{"estate"}, cardIDs(s.Trash))
}
