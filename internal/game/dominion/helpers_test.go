package dominion

import (
	"strconv"
	"testing"

	"github.com/janosimas/dominon/internal/game/flow"
	"github.com/janosimas/dominon/internal/random"
	"github.com/stretchr/testify/require"
)

func testTreasure(id string, cost, value int) *Card {
	return &Card{
		ID:   id,
		Name: id,
		Kind: KindTreasure,
		Cost: cost,
		OnPlay: func(p *Play) {
			p.AddTreasure(value)
			if p.State.TopPhase() == PhaseAction {
				p.PushPhase(PhaseBuy)
			}
		},
	}
}

func testBaseModule() Module {
	province := &Card{ID: "province", Name: "Province", Kind: KindVictory, Cost: 8, Victory: 6, Critical: true,
		Pile: func(int) int { return 8 }}
	return Module{
		Name: "test-base",
		Cards: []*Card{
			testTreasure("copper", 0, 1),
			testTreasure("silver", 3, 2),
			{ID: "estate", Name: "Estate", Kind: KindVictory, Cost: 2, Victory: 1, Pile: func(int) int { return 8 }},
			province,
			{ID: "curse", Name: "Curse", Kind: KindCurse, Victory: -1},
		},
	}
}

func testKingdomModule() Module {
	return Module{
		Name:    "test-kingdom",
		Kingdom: true,
		Cards: []*Card{
			{ID: "village", Name: "Village", Kind: KindAction, Cost: 3, OnPlay: func(p *Play) {
				p.Draw(1)
				p.AddActions(2)
			}},
			{ID: "banquet", Name: "Banquet", Kind: KindAction, Cost: 4, Temporary: true, OnPlay: func(p *Play) {
				p.AddTreasure(3)
			}},
			{ID: "broken", Name: "Broken", Kind: KindAction, Cost: 1, OnPlay: func(p *Play) {
				p.PopPhase()
			}},
		},
	}
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := BuildRegistry(testBaseModule(), testKingdomModule())
	require.NoError(t, err)
	return reg
}

// newTestState returns an empty state with seated players and every
// registered card in the supply.
func newTestState(t *testing.T, players int) (*State, *flow.Context) {
	t.Helper()
	reg := testRegistry(t)
	s := NewState(reg)
	for i := 0; i < players; i++ {
		s.Players = append(s.Players, &Player{ID: strconv.Itoa(i), Name: "Player " + strconv.Itoa(i+1)})
	}
	for _, card := range reg.Cards() {
		s.Supply = append(s.Supply, &Pile{Card: card, Count: card.SupplySize(players)})
	}
	return s, flow.NewContext(players, random.New(7))
}

func testCards(t *testing.T, s *State, ids ...string) []*Card {
	t.Helper()
	out := make([]*Card, 0, len(ids))
	for _, id := range ids {
		card, ok := s.Registry().Card(id)
		require.True(t, ok, "card %s", id)
		out = append(out, card)
	}
	return out
}

func repeat(id string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = id
	}
	return out
}

func indexOf(cards []*Card, id string) int {
	for i, c := range cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}
