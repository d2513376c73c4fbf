package evolution

import (
	"fmt"
	"testing"

	"github.com/janosimas/dominon/internal/game/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// uniformDeck returns n cards that are all worth food, so the shuffle does
// not change the outcome.
func uniformDeck(n, food int) []Card {
	deck := make([]Card, n)
	for i := range deck {
		deck[i] = Card{ID: fmt.Sprintf("trait-%d", i), Trait: "horns", Food: food}
	}
	return deck
}

func startGame(t *testing.T, cfg Config) *flow.Game[*State] {
	t.Helper()
	game, err := New(flow.Options{Players: 2, Seed: 11, Logger: zaptest.NewLogger(t)}, cfg)
	require.NoError(t, err)
	require.NoError(t, game.Start())
	return game
}

func move(t *testing.T, game *flow.Game[*State], player, name string, args flow.Args) {
	t.Helper()
	require.NoError(t, game.MakeMove(player, name, args), "%s by %s", name, player)
}

func TestSetupDefaults(t *testing.T) {
	game := startGame(t, DefaultConfig())
	s := game.State()

	assert.Equal(t, PhaseFood, game.Phase())
	require.Len(t, s.Players, 2)
	for _, p := range s.Players {
		assert.Len(t, p.Species, 1)
		assert.Len(t, p.Hand, 5)
		assert.Equal(t, NoSpecies, p.SelectedSpecies)
	}
	assert.Len(t, s.Deck, len(DefaultDeck())-10)
}

func TestFullRound(t *testing.T) {
	game := startGame(t, Config{Deck: uniformDeck(20, 2), StartingSpecies: 1})

	// food
	move(t, game, "0", MovePlayFood, flow.Args{Index: 0})
	assert.Equal(t, "1", game.Context().CurrentPlayer)
	move(t, game, "1", MovePlayFood, flow.Args{Index: 0})
	assert.Equal(t, PhaseCardAction, game.Phase())
	assert.Equal(t, 4, game.State().WateringHole)
	assert.Len(t, game.State().Discard, 2)

	// card actions: the player who closed the food phase acts first
	require.Equal(t, "1", game.Context().CurrentPlayer)
	for _, name := range []string{MoveIncreaseBodySize, MoveIncreasePopulation, MoveNewTrait} {
		move(t, game, "1", MoveSelectCard, flow.Args{Index: 0})
		move(t, game, "1", name, flow.Args{Index: 0})
	}
	move(t, game, "1", MoveSelectCard, flow.Args{Index: 0})
	move(t, game, "1", MoveCreateSpecies, flow.Args{Index: 1})
	assert.Equal(t, "0", game.Context().CurrentPlayer)

	for i := 0; i < 3; i++ {
		move(t, game, "0", MoveSelectCard, flow.Args{Index: 0})
		move(t, game, "0", MoveIncreasePopulation, flow.Args{Index: 0})
	}
	move(t, game, "0", MoveSelectCard, flow.Args{Index: 0})
	move(t, game, "0", MoveCreateSpecies, flow.Args{Index: 0})

	s := game.State()
	assert.Equal(t, PhaseEat, game.Phase())
	assert.Equal(t, "0", game.Context().CurrentPlayer)
	require.Len(t, s.Players[0].Species, 2)
	assert.Equal(t, 4, s.Players[0].Species[1].Population)
	require.Len(t, s.Players[1].Species, 2)
	assert.Equal(t, 2, s.Players[1].Species[0].BodySize)
	assert.Len(t, s.Players[1].Species[0].Traits, 1)

	// eat
	move(t, game, "0", MoveSelectSpecies, flow.Args{Index: 1})
	move(t, game, "0", MoveEat, flow.Args{})
	assert.Equal(t, 3, game.State().WateringHole)

	move(t, game, "1", MoveSelectSpecies, flow.Args{Index: 0})
	move(t, game, "1", MoveAttack, flow.Args{Player: 0, Target: 0})
	assert.Len(t, game.State().Players[0].Species, 1)

	move(t, game, "0", MoveSelectSpecies, flow.Args{Index: 0})
	move(t, game, "0", MoveEat, flow.Args{})
	move(t, game, "1", MoveSelectSpecies, flow.Args{Index: 0})
	move(t, game, "1", MoveEat, flow.Args{})
	move(t, game, "0", MoveSelectSpecies, flow.Args{Index: 0})
	move(t, game, "0", MoveEat, flow.Args{})

	// nobody can feed: food is banked and the deck cannot supply another
	// food phase
	s = game.State()
	assert.Equal(t, 0, s.WateringHole)
	assert.Equal(t, 3, s.Players[0].Food)
	assert.Equal(t, 2, s.Players[1].Food)
	assert.Equal(t, 0, s.Players[0].Species[0].Food)
	assert.True(t, s.Exhausted)

	outcome, over := game.Outcome()
	require.True(t, over)
	assert.Equal(t, "0", outcome.Winner)
	assert.Equal(t, []flow.Score{{Player: "0", Points: 3}, {Player: "1", Points: 2}}, outcome.Scores)
}

func TestEatPhaseSkipsPlayersWhoCannotFeed(t *testing.T) {
	s, ctx := newTestState(2)
	s.WateringHole = 0
	phase := eatPhase()

	assert.True(t, phase.EndTurnIf(s, ctx))
	next, ended := phase.EndIf(s, ctx)
	assert.True(t, ended)
	assert.Equal(t, PhaseFood, next)

	s.Players[1].Species[0].BodySize = 2
	assert.True(t, phase.EndTurnIf(s, ctx))
	_, ended = phase.EndIf(s, ctx)
	assert.False(t, ended)
}

func TestFoodPhaseExhaustsDeck(t *testing.T) {
	s, ctx := newTestState(2)
	s.Deck = uniformDeck(9, 1)

	next, err := foodPhase().OnBegin(s, ctx)
	require.NoError(t, err)
	assert.True(t, next.Exhausted)
	assert.Empty(t, next.Players[0].Hand)

	s.Deck = uniformDeck(10, 1)
	next, err = foodPhase().OnBegin(s, ctx)
	require.NoError(t, err)
	assert.False(t, next.Exhausted)
	assert.Len(t, next.Players[1].Hand, 5)
	assert.Empty(t, next.Deck)
}

func TestScoreTieGoesToEarlierSeat(t *testing.T) {
	s, _ := newTestState(3)
	s.Players[0].Food = 4
	s.Players[1].Food = 6
	s.Players[2].Food = 6

	assert.Equal(t, "1", Score(s).Winner)
}
