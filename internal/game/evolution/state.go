// Package evolution implements the evolution simulation: players spend
// trait cards on food, species growth and traits, then feed their species
// from a shared watering hole or by attacking smaller species.
package evolution

import (
	"github.com/janosimas/dominon/internal/game/flow"
)

// Species limits.
const (
	MaxTraits     = 4
	MaxPopulation = 9
	MaxBodySize   = 9
)

// Card is a trait card. Played face down it is worth Food for the
// watering hole.
type Card struct {
	ID    string
	Trait string
	Food  int
}

// Species is one of a player's species.
type Species struct {
	Population int
	BodySize   int
	Food       int
	Traits     []Card
}

// NewSpecies returns a species with population and body size one.
func NewSpecies() *Species {
	return &Species{Population: 1, BodySize: 1}
}

// Hungry reports whether the species can still eat.
func (s *Species) Hungry() bool {
	return s.Food < s.Population
}

func (s *Species) clone() *Species {
	c := *s
	c.Traits = append([]Card(nil), s.Traits...)
	return &c
}

// NoSpecies marks an empty species selection.
const NoSpecies = -1

// Player holds one player's hand, species and banked food.
type Player struct {
	ID      string
	Name    string
	Hand    []Card
	Species []*Species
	// Selected is the hand card picked in the card action phase.
	Selected *Card
	// SelectedSpecies indexes Species during the eat phase, NoSpecies when
	// nothing is selected.
	SelectedSpecies int
	// Food is the food banked at the end of each eat phase.
	Food int
}

func (p *Player) clone() *Player {
	c := *p
	c.Hand = append([]Card(nil), p.Hand...)
	c.Species = make([]*Species, len(p.Species))
	for i, s := range p.Species {
		c.Species[i] = s.clone()
	}
	if p.Selected != nil {
		card := *p.Selected
		c.Selected = &card
	}
	return &c
}

// State is the whole evolution game state.
type State struct {
	Players []*Player
	// Deck is the shared trait deck, top card last.
	Deck    []Card
	Discard []Card
	// FoodCards are the cards played face down this food phase.
	FoodCards    []Card
	WateringHole int

	EndTurn bool
	// Exhausted is raised when the deck cannot supply a food phase draw.
	Exhausted bool
}

// Clone returns a deep working copy.
func (s *State) Clone() *State {
	c := *s
	c.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		c.Players[i] = p.clone()
	}
	c.Deck = append([]Card(nil), s.Deck...)
	c.Discard = append([]Card(nil), s.Discard...)
	c.FoodCards = append([]Card(nil), s.FoodCards...)
	return &c
}

// Player returns the player with id.
func (s *State) Player(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// CurrentPlayer returns the player whose turn it is.
func CurrentPlayer(s *State, ctx *flow.Context) *Player {
	return s.Player(ctx.CurrentPlayer)
}

// drawSize is the number of cards p draws at the start of a food phase.
func drawSize(p *Player) int {
	return 4 + len(p.Species)
}

// canFeed reports whether p has a hungry species that can eat from the
// watering hole or attack some species.
func (s *State) canFeed(p *Player) bool {
	for _, sp := range p.Species {
		if !sp.Hungry() {
			continue
		}
		if s.WateringHole > 0 {
			return true
		}
		for _, other := range s.Players {
			for _, prey := range other.Species {
				if prey != sp && canAttack(sp, prey) {
					return true
				}
			}
		}
	}
	return false
}

func canAttack(attacker, prey *Species) bool {
	return attacker.BodySize > prey.BodySize
}
