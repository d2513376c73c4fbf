// Package dominion implements the deck-building game engine: a nested
// phase stack, a card registry contributing cards, moves and phases, turn
// cleanup and the end-game evaluator.
package dominion

import (
	"fmt"
	"sort"

	"github.com/janosimas/dominon/internal/game/flow"
	"github.com/janosimas/dominon/internal/random"
)

// GameName identifies the deck-building game.
const GameName = "dominion"

// DeckEntry is one line of the starting deck.
type DeckEntry struct {
	Card  string
	Count int
}

// Config tunes setup.
type Config struct {
	StartingDeck []DeckEntry
	KingdomSize  int
}

// DefaultConfig is seven coppers, three estates and ten kingdom piles.
func DefaultConfig() Config {
	return Config{
		StartingDeck: []DeckEntry{{Card: "copper", Count: 7}, {Card: "estate", Count: 3}},
		KingdomSize:  10,
	}
}

// Definition assembles the host definition from reg. Canonical moves and
// phases come first; module moves and phases follow in registration order.
// A module move or phase sharing a canonical name replaces it in place.
func Definition(reg *Registry, cfg Config) flow.Definition[*State] {
	moves := map[string]flow.Move[*State]{
		MoveBuy:          Buy,
		MovePlay:         PlayFromHand,
		MoveCustomAction: RunCustomAction,
		MoveEndTurn:      EndTurn,
	}
	for _, m := range reg.Moves() {
		moves[m.Name] = m.Move
	}

	phases := []flow.Phase[*State]{actionPhase(), buyPhase()}
	for _, p := range reg.Phases() {
		switch p.Name {
		case string(PhaseAction):
			phases[0] = p
		case string(PhaseBuy):
			phases[1] = p
		default:
			phases = append(phases, p)
		}
	}

	return flow.Definition[*State]{
		Name:        GameName,
		Setup:       Setup(reg, cfg),
		Moves:       moves,
		Phases:      phases,
		OnTurnBegin: OnTurnBegin,
		OnTurnEnd:   OnTurnEnd,
		EndTurnIf:   EndTurnIf,
		EndGameIf:   EndGameIf,
	}
}

// Setup returns the setup function: players get the shuffled starting deck
// and a first hand; the supply holds every base card plus KingdomSize
// kingdom cards picked at random, sorted by cost.
func Setup(reg *Registry, cfg Config) func(ctx *flow.Context) (*State, error) {
	return func(ctx *flow.Context) (*State, error) {
		starting, err := startingDeck(reg, cfg.StartingDeck)
		if err != nil {
			return nil, err
		}

		s := NewState(reg)
		for i, id := range ctx.PlayOrder {
			player := &Player{
				ID:   id,
				Name: fmt.Sprintf("Player %d", i+1),
				Deck: random.Shuffle(ctx.Random, starting),
			}
			DrawCards(nil, player, HandSize)
			s.Players = append(s.Players, player)
		}

		for _, card := range reg.BaseCards() {
			s.Supply = append(s.Supply, &Pile{Card: card, Count: card.SupplySize(ctx.NumPlayers)})
		}
		kingdom := random.Shuffle(ctx.Random, reg.KingdomCards())
		if len(kingdom) > cfg.KingdomSize {
			kingdom = kingdom[:cfg.KingdomSize]
		}
		sort.SliceStable(kingdom, func(i, j int) bool { return kingdom[i].Cost < kingdom[j].Cost })
		for _, card := range kingdom {
			s.Supply = append(s.Supply, &Pile{Card: card, Count: card.SupplySize(ctx.NumPlayers)})
		}
		return s, nil
	}
}

func startingDeck(reg *Registry, entries []DeckEntry) ([]*Card, error) {
	var deck []*Card
	for _, e := range entries {
		card, ok := reg.Card(e.Card)
		if !ok {
			return nil, fmt.Errorf("%w: starting deck card %q is not registered", ErrInvalidCard, e.Card)
		}
		for i := 0; i < e.Count; i++ {
			deck = append(deck, card)
		}
	}
	return deck, nil
}

// New builds the registry from modules and hosts a game with it.
func New(opts flow.Options, cfg Config, modules ...Module) (*flow.Game[*State], *Registry, error) {
	reg, err := BuildRegistry(modules...)
	if err != nil {
		return nil, nil, err
	}
	game, err := flow.New(Definition(reg, cfg), opts)
	if err != nil {
		return nil, nil, err
	}
	return game, reg, nil
}
