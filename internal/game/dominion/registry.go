package dominion

import (
	"errors"
	"fmt"

	"github.com/janosimas/dominon/internal/game/flow"
	"github.com/janosimas/dominon/internal/game/rules"
)

// ErrInvalidCard reports a card that cannot be registered.
var ErrInvalidCard = errors.New("invalid card")

// PhaseDef is a phase descriptor contributed by a module.
type PhaseDef = flow.Phase[*State]

// MoveFunc is a move operating on the deck-building state.
type MoveFunc = flow.Move[*State]

// NamedMove is a custom move contributed by a module.
type NamedMove struct {
	Name string
	Move MoveFunc
}

// Module is a unit of card definitions. Kingdom modules contribute cards
// drawn at random for the supply; other modules' cards are always present.
type Module struct {
	Name    string
	Kingdom bool
	Cards   []*Card
	Moves   []NamedMove
	Phases  []PhaseDef
}

// Collision records an identifier registered by more than one module. The
// later module wins.
type Collision struct {
	Kind     string
	ID       string
	Module   string
	Previous string
}

func (c Collision) String() string {
	return fmt.Sprintf("%s %q from %s overrides %s", c.Kind, c.ID, c.Module, c.Previous)
}

type registeredCard struct {
	card    *Card
	module  string
	kingdom bool
}

// Registry is the merged, immutable view of all modules.
type Registry struct {
	cards      []registeredCard
	byID       map[string]int
	moves      []NamedMove
	phases     []PhaseDef
	collisions []Collision
}

// BuildRegistry merges modules in order. Identifier collisions are resolved
// last-wins, keeping the position of the first registration; every
// collision is reported by Collisions. The canonical moves and phases count
// as registered by the game itself, so a module overriding them is
// reported too.
func BuildRegistry(modules ...Module) (*Registry, error) {
	r := &Registry{byID: make(map[string]int)}
	moveIdx := make(map[string]int)
	moveOwner := make(map[string]string)
	phaseIdx := make(map[string]int)
	phaseOwner := make(map[string]string)
	for _, name := range []string{MoveBuy, MovePlay, MoveCustomAction, MoveEndTurn} {
		moveOwner[name] = GameName
	}
	for _, p := range []rules.Phase{PhaseAction, PhaseBuy} {
		phaseOwner[string(p)] = GameName
	}

	for _, mod := range modules {
		for _, card := range mod.Cards {
			if card == nil || card.ID == "" {
				return nil, fmt.Errorf("%w in module %s: missing identifier", ErrInvalidCard, mod.Name)
			}
			entry := registeredCard{card: card, module: mod.Name, kingdom: mod.Kingdom}
			if i, ok := r.byID[card.ID]; ok {
				r.collisions = append(r.collisions, Collision{Kind: "card", ID: card.ID, Module: mod.Name, Previous: r.cards[i].module})
				r.cards[i] = entry
				continue
			}
			r.byID[card.ID] = len(r.cards)
			r.cards = append(r.cards, entry)
		}
		for _, m := range mod.Moves {
			if m.Name == "" || m.Move == nil {
				return nil, fmt.Errorf("module %s: move without name or function", mod.Name)
			}
			if i, ok := moveIdx[m.Name]; ok {
				r.collisions = append(r.collisions, Collision{Kind: "move", ID: m.Name, Module: mod.Name, Previous: moveOwner[m.Name]})
				r.moves[i] = m
				moveOwner[m.Name] = mod.Name
				continue
			}
			if prev, ok := moveOwner[m.Name]; ok {
				r.collisions = append(r.collisions, Collision{Kind: "move", ID: m.Name, Module: mod.Name, Previous: prev})
			}
			moveIdx[m.Name] = len(r.moves)
			moveOwner[m.Name] = mod.Name
			r.moves = append(r.moves, m)
		}
		for _, p := range mod.Phases {
			if p.Name == "" {
				return nil, fmt.Errorf("module %s: phase without name", mod.Name)
			}
			if i, ok := phaseIdx[p.Name]; ok {
				r.collisions = append(r.collisions, Collision{Kind: "phase", ID: p.Name, Module: mod.Name, Previous: phaseOwner[p.Name]})
				r.phases[i] = p
				phaseOwner[p.Name] = mod.Name
				continue
			}
			if prev, ok := phaseOwner[p.Name]; ok {
				r.collisions = append(r.collisions, Collision{Kind: "phase", ID: p.Name, Module: mod.Name, Previous: prev})
			}
			phaseIdx[p.Name] = len(r.phases)
			phaseOwner[p.Name] = mod.Name
			r.phases = append(r.phases, p)
		}
	}
	return r, nil
}

// Card looks up a card by identifier.
func (r *Registry) Card(id string) (*Card, bool) {
	i, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return r.cards[i].card, true
}

// Cards returns every registered card in registration order.
func (r *Registry) Cards() []*Card {
	out := make([]*Card, len(r.cards))
	for i, c := range r.cards {
		out[i] = c.card
	}
	return out
}

// BaseCards returns the cards always present in the supply.
func (r *Registry) BaseCards() []*Card {
	return r.filter(false)
}

// KingdomCards returns the cards eligible for the randomized supply.
func (r *Registry) KingdomCards() []*Card {
	return r.filter(true)
}

func (r *Registry) filter(kingdom bool) []*Card {
	var out []*Card
	for _, c := range r.cards {
		if c.kingdom == kingdom {
			out = append(out, c.card)
		}
	}
	return out
}

// Moves returns the injected moves in registration order.
func (r *Registry) Moves() []NamedMove {
	return append([]NamedMove(nil), r.moves...)
}

// Phases returns the injected phases in registration order.
func (r *Registry) Phases() []PhaseDef {
	return append([]PhaseDef(nil), r.phases...)
}

// Collisions returns the overridden registrations.
func (r *Registry) Collisions() []Collision {
	return append([]Collision(nil), r.collisions...)
}
