package evolution

import (
	"fmt"

	"github.com/janosimas/dominon/internal/game/flow"
	"github.com/janosimas/dominon/internal/random"
)

// GameName identifies the evolution game.
const GameName = "evolution"

// Phases.
const (
	PhaseFood       = "FOOD"
	PhaseCardAction = "CARD_ACTION"
	PhaseEat        = "EAT"
)

// Config tunes setup.
type Config struct {
	// Deck is the trait deck before shuffling. Nil means DefaultDeck.
	Deck []Card
	// StartingSpecies is the number of species each player starts with.
	StartingSpecies int
}

// DefaultConfig starts every player with one species and the default deck.
func DefaultConfig() Config {
	return Config{StartingSpecies: 1}
}

// Definition returns the host definition of the game.
func Definition(cfg Config) flow.Definition[*State] {
	return flow.Definition[*State]{
		Name:  GameName,
		Setup: Setup(cfg),
		Moves: map[string]flow.Move[*State]{
			MovePlayFood:           PlayFood,
			MoveSelectCard:         SelectCard,
			MoveNewTrait:           NewTrait,
			MoveIncreasePopulation: IncreasePopulation,
			MoveIncreaseBodySize:   IncreaseBodySize,
			MoveCreateSpecies:      CreateSpecies,
			MoveSelectSpecies:      SelectSpecies,
			MoveEat:                Eat,
			MoveAttack:             Attack,
		},
		Phases:    []flow.Phase[*State]{foodPhase(), cardActionPhase(), eatPhase()},
		OnTurnEnd: onTurnEnd,
		EndGameIf: EndGameIf,
	}
}

// Setup returns the setup function: the deck is shuffled and every player
// gets StartingSpecies species.
func Setup(cfg Config) func(ctx *flow.Context) (*State, error) {
	return func(ctx *flow.Context) (*State, error) {
		deck := cfg.Deck
		if deck == nil {
			deck = DefaultDeck()
		}
		s := &State{Deck: random.Shuffle(ctx.Random, deck)}
		for i, id := range ctx.PlayOrder {
			player := &Player{
				ID:              id,
				Name:            fmt.Sprintf("Player %d", i+1),
				SelectedSpecies: NoSpecies,
			}
			for j := 0; j < cfg.StartingSpecies; j++ {
				player.Species = append(player.Species, NewSpecies())
			}
			s.Players = append(s.Players, player)
		}
		return s, nil
	}
}

// New hosts an evolution game.
func New(opts flow.Options, cfg Config) (*flow.Game[*State], error) {
	return flow.New(Definition(cfg), opts)
}

func onTurnEnd(s *State, ctx *flow.Context) (*State, error) {
	state := s.Clone()
	state.EndTurn = false
	CurrentPlayer(state, ctx).SelectedSpecies = NoSpecies
	return state, nil
}

func endTurnFlag(s *State, _ *flow.Context) bool {
	return s.EndTurn
}

// foodPhase: every player draws, then plays one card face down for food.
// The food fills the watering hole when the phase ends.
func foodPhase() flow.Phase[*State] {
	return flow.Phase[*State]{
		Name:  PhaseFood,
		Moves: []string{MovePlayFood},
		OnBegin: func(s *State, _ *flow.Context) (*State, error) {
			state := s.Clone()
			state.EndTurn = false
			state.FoodCards = nil
			if !deckCanSupply(state) {
				state.Exhausted = true
				return state, nil
			}
			for _, p := range state.Players {
				drawCards(state, p, drawSize(p))
			}
			return state, nil
		},
		EndIf: func(s *State, ctx *flow.Context) (string, bool) {
			return PhaseCardAction, len(s.FoodCards) >= ctx.NumPlayers
		},
		OnEnd: func(s *State, _ *flow.Context) (*State, error) {
			state := s.Clone()
			for _, card := range state.FoodCards {
				state.WateringHole += card.Food
			}
			state.Discard = append(state.Discard, state.FoodCards...)
			state.FoodCards = nil
			return state, nil
		},
		EndTurnIf: endTurnFlag,
	}
}

// cardActionPhase: players spend their hands on traits and species. A turn
// lasts until the hand and selection are empty.
func cardActionPhase() flow.Phase[*State] {
	return flow.Phase[*State]{
		Name: PhaseCardAction,
		Moves: []string{
			MoveSelectCard,
			MoveNewTrait,
			MoveIncreasePopulation,
			MoveIncreaseBodySize,
			MoveCreateSpecies,
		},
		OnBegin: resetEndTurn,
		EndIf: func(s *State, _ *flow.Context) (string, bool) {
			for _, p := range s.Players {
				if !handSpent(p) {
					return "", false
				}
			}
			return PhaseEat, true
		},
		EndTurnIf: func(s *State, ctx *flow.Context) bool {
			return handSpent(CurrentPlayer(s, ctx))
		},
	}
}

// eatPhase: one feeding per turn until nobody can feed. Species food is
// banked when the phase ends.
func eatPhase() flow.Phase[*State] {
	return flow.Phase[*State]{
		Name:    PhaseEat,
		Moves:   []string{MoveSelectSpecies, MoveEat, MoveAttack},
		OnBegin: resetEndTurn,
		EndIf: func(s *State, _ *flow.Context) (string, bool) {
			for _, p := range s.Players {
				if s.canFeed(p) {
					return "", false
				}
			}
			return PhaseFood, true
		},
		OnEnd: func(s *State, _ *flow.Context) (*State, error) {
			state := s.Clone()
			for _, p := range state.Players {
				for _, sp := range p.Species {
					p.Food += sp.Food
					sp.Food = 0
				}
				p.SelectedSpecies = NoSpecies
			}
			return state, nil
		},
		EndTurnIf: func(s *State, ctx *flow.Context) bool {
			return s.EndTurn || !s.canFeed(CurrentPlayer(s, ctx))
		},
	}
}

func resetEndTurn(s *State, _ *flow.Context) (*State, error) {
	if !s.EndTurn {
		return s, nil
	}
	state := s.Clone()
	state.EndTurn = false
	return state, nil
}

func handSpent(p *Player) bool {
	return len(p.Hand) == 0 && p.Selected == nil
}

func deckCanSupply(s *State) bool {
	need := 0
	for _, p := range s.Players {
		need += drawSize(p)
	}
	return len(s.Deck) >= need
}

// EndGameIf ends the game once the deck could not supply a food phase.
func EndGameIf(s *State, _ *flow.Context) (flow.Outcome, bool) {
	if !s.Exhausted {
		return flow.Outcome{}, false
	}
	return Score(s), true
}

// Score ranks players by banked food; ties go to the earlier seat.
func Score(s *State) flow.Outcome {
	outcome := flow.Outcome{Scores: make([]flow.Score, 0, len(s.Players))}
	best := 0
	for i, p := range s.Players {
		outcome.Scores = append(outcome.Scores, flow.Score{Player: p.ID, Points: p.Food})
		if i == 0 || p.Food > best {
			best = p.Food
			outcome.Winner = p.ID
		}
	}
	return outcome
}
