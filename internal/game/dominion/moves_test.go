package dominion

import (
	"testing"

	"github.com/janosimas/dominon/internal/game/flow"
	"github.com/janosimas/dominon/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuy(t *testing.T) {
	s, ctx := newTestState(t, 2)
	buyer := s.Players[0]
	buyer.Buys = 1
	buyer.Treasure = 5
	s.Pile("silver").Count = 8

	next, err := Buy(s, ctx, flow.Args{Key: "silver"})
	require.NoError(t, err)

	bought := next.Players[0]
	assert.Equal(t, 7, next.Pile("silver").Count)
	assert.Equal(t, 2, bought.Treasure)
	assert.Equal(t, 0, bought.Buys)
	assert.Equal(t, []string{"silver"}, cardIDs(bought.Discard))

	// the input state is untouched
	assert.Equal(t, 8, s.Pile("silver").Count)
	assert.Equal(t, 5, buyer.Treasure)
	assert.Empty(t, buyer.Discard)
}

func TestBuyRejections(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		buys     int
		treasure int
		count    int
	}{
		{name: "missing pile", key: "gold", buys: 1, treasure: 10, count: 8},
		{name: "empty pile", key: "silver", buys: 1, treasure: 10, count: 0},
		{name: "no buys", key: "silver", buys: 0, treasure: 10, count: 8},
		{name: "not enough treasure", key: "silver", buys: 1, treasure: 2, count: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ctx := newTestState(t, 2)
			s.Players[0].Buys = tt.buys
			s.Players[0].Treasure = tt.treasure
			s.Pile("silver").Count = tt.count
			before := View(s, Omniscient)

			next, err := Buy(s, ctx, flow.Args{Key: tt.key})

			require.Error(t, err)
			assert.True(t, rules.IsRejected(err))
			assert.Same(t, s, next)
			assert.Equal(t, before, View(s, Omniscient))
			assert.Empty(t, ctx.Pending())
		})
	}
}

func TestPlayFromHandTreasureEntersBuy(t *testing.T) {
	s, ctx := newTestState(t, 2)
	s.Players[0].Hand = testCards(t, s, "estate", "copper")

	next, err := PlayFromHand(s, ctx, flow.Args{Index: 1})
	require.NoError(t, err)

	player := next.Players[0]
	assert.Equal(t, 1, player.Treasure)
	assert.Equal(t, []string{"estate"}, cardIDs(player.Hand))
	assert.Equal(t, []string{"copper"}, cardIDs(next.PlayArea))
	assert.Equal(t, []string{"copper"}, cardIDs(player.InPlay))
	assert.Equal(t, []rules.Phase{PhaseAction, PhaseBuy}, next.Phases())
	assert.Equal(t, []rules.Phase{PhaseAction}, s.Phases())
}

func TestPlayFromHandAction(t *testing.T) {
	s, ctx := newTestState(t, 2)
	player := s.Players[0]
	player.Actions = 1
	player.Hand = testCards(t, s, "village")
	player.Deck = testCards(t, s, "estate")

	next, err := PlayFromHand(s, ctx, flow.Args{Index: 0})
	require.NoError(t, err)

	played := next.Players[0]
	assert.Equal(t, 2, played.Actions)
	assert.Equal(t, []string{"estate"}, cardIDs(played.Hand))
	assert.Equal(t, []string{"village"}, cardIDs(next.PlayArea))
}

func TestPlayFromHandRejections(t *testing.T) {
	t.Run("index out of range", func(t *testing.T) {
		s, ctx := newTestState(t, 2)
		s.Players[0].Hand = testCards(t, s, "copper")
		next, err := PlayFromHand(s, ctx, flow.Args{Index: 3})
		assert.True(t, rules.IsRejected(err))
		assert.Same(t, s, next)
	})

	t.Run("victory card", func(t *testing.T) {
		s, ctx := newTestState(t, 2)
		s.Players[0].Hand = testCards(t, s, "estate")
		_, err := PlayFromHand(s, ctx, flow.Args{Index: 0})
		assert.True(t, rules.IsRejected(err))
	})

	t.Run("action without actions", func(t *testing.T) {
		s, ctx := newTestState(t, 2)
		s.Players[0].Hand = testCards(t, s, "village")
		_, err := PlayFromHand(s, ctx, flow.Args{Index: 0})
		assert.True(t, rules.IsRejected(err))
	})

	t.Run("action in buy phase", func(t *testing.T) {
		s, ctx := newTestState(t, 2)
		s.phases = rules.NewPhaseStack(PhaseBuy)
		s.Players[0].Actions = 1
		s.Players[0].Hand = testCards(t, s, "village")
		next, err := PlayFromHand(s, ctx, flow.Args{Index: 0})
		assert.True(t, rules.IsRejected(err))
		assert.Same(t, s, next)
	})
}

func TestPlayFromHandInvalidStack(t *testing.T) {
	s, ctx := newTestState(t, 2)
	s.Players[0].Actions = 1
	s.Players[0].Hand = testCards(t, s, "broken")

	next, err := PlayFromHand(s, ctx, flow.Args{Index: 0})

	require.Error(t, err)
	assert.False(t, rules.IsRejected(err))
	assert.ErrorIs(t, err, rules.ErrInvalidPhaseStack)
	assert.Same(t, s, next)
}

func TestRunCustomAction(t *testing.T) {
	s, ctx := newTestState(t, 2)

	_, err := RunCustomAction(s, ctx, flow.Args{})
	assert.True(t, rules.IsRejected(err))

	s.phases = rules.NewPhaseStack(PhaseAction)
	require.NoError(t, s.phases.Apply(rules.Push("CUSTOM")))
	s.Armed = &CustomAction{
		Label:  "bonus",
		Source: "village",
		Run: func(p *Play) {
			p.AddTreasure(p.Card.Cost)
			p.Disarm()
			p.PopPhase()
		},
	}

	next, err := RunCustomAction(s, ctx, flow.Args{})
	require.NoError(t, err)
	assert.Nil(t, next.Armed)
	assert.Equal(t, 3, next.Players[0].Treasure)
	assert.Equal(t, PhaseAction, next.TopPhase())
	assert.NotNil(t, s.Armed)
}

func TestEndTurnMove(t *testing.T) {
	s, ctx := newTestState(t, 2)
	require.NoError(t, s.phases.Apply(rules.Push(PhaseBuy)))

	next, err := EndTurn(s, ctx, flow.Args{})
	require.NoError(t, err)

	assert.True(t, next.EndTurn)
	assert.Equal(t, []rules.Phase{PhaseAction}, next.Phases())
	assert.False(t, s.EndTurn)
}
