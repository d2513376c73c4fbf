package evolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewHidesPrivateZones(t *testing.T) {
	s, _ := newTestState(2)
	s.Players[0].Hand = cards("horns", "climbing")
	s.Players[1].Hand = cards("ambush")
	selected := cards("long-neck")[0]
	s.Players[1].Selected = &selected
	s.Deck = cards("burrowing", "foraging")
	s.FoodCards = cards("fat-tissue")

	v := View(s, "0")
	assert.Equal(t, []string{"horns", "climbing"}, v.Players[0].Hand)
	assert.Nil(t, v.Players[1].Hand)
	assert.Equal(t, 1, v.Players[1].HandCount)
	assert.Empty(t, v.Players[1].Selected)
	assert.Nil(t, v.Deck)
	assert.Equal(t, 2, v.DeckCount)
	assert.Nil(t, v.FoodCards)
	assert.Equal(t, 1, v.FoodPlayed)
	assert.Len(t, v.Players[1].Species, 1)

	all := View(s, Omniscient)
	assert.Equal(t, []string{"burrowing", "foraging"}, all.Deck)
	assert.Equal(t, []string{"fat-tissue"}, all.FoodCards)
	assert.Equal(t, "long-neck", all.Players[1].Selected)
}
