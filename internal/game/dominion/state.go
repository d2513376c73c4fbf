package dominion

import (
	"github.com/janosimas/dominon/internal/game/flow"
	"github.com/janosimas/dominon/internal/game/rules"
)

// Pile is a supply pile with its live count.
type Pile struct {
	Card  *Card
	Count int
}

// Player holds one player's zones and per-turn resources.
type Player struct {
	ID   string
	Name string

	Hand    []*Card
	Deck    []*Card // top of deck is the last element
	Discard []*Card
	// InPlay lists the cards this player put into the shared play area
	// during the current turn.
	InPlay []*Card

	Actions  int
	Buys     int
	Treasure int
	// Victory is the player's tally as of the end of their last turn.
	Victory int
}

// Owned returns the cards counted for the victory tally: hand, deck and
// discard.
func (p *Player) Owned() []*Card {
	out := make([]*Card, 0, len(p.Hand)+len(p.Deck)+len(p.Discard))
	out = append(out, p.Hand...)
	out = append(out, p.Deck...)
	out = append(out, p.Discard...)
	return out
}

func (p *Player) clone() *Player {
	c := *p
	c.Hand = cloneCards(p.Hand)
	c.Deck = cloneCards(p.Deck)
	c.Discard = cloneCards(p.Discard)
	c.InPlay = cloneCards(p.InPlay)
	return &c
}

// CustomAction is an action armed by a card trigger and fired by the
// customAction move. Counter is scratch space for the arming card.
type CustomAction struct {
	Label   string
	Source  string
	Counter int
	Run     Effect
}

// State is the whole deck-building game state.
type State struct {
	Players  []*Player
	PlayArea []*Card
	Trash    []*Card
	Supply   []*Pile

	// EndTurn is raised by moves or triggers to end the current turn.
	EndTurn bool
	// Armed is the pending custom action, if any.
	Armed *CustomAction
	// GainLimit is the maximum cost of a card gained in the gain phase.
	GainLimit int

	registry *Registry
	phases   rules.PhaseStack
}

// NewState creates an empty state bound to reg with the phase stack at the
// action phase.
func NewState(reg *Registry) *State {
	return &State{
		registry: reg,
		phases:   rules.NewPhaseStack(PhaseAction),
	}
}

// Registry returns the card registry the game was built with.
func (s *State) Registry() *Registry {
	return s.registry
}

// TopPhase returns the authoritative phase of the stack.
func (s *State) TopPhase() rules.Phase {
	return s.phases.Top()
}

// Phases returns the phase stack, bottom first.
func (s *State) Phases() []rules.Phase {
	return s.phases.List()
}

// Pile returns the supply pile for card id.
func (s *State) Pile(id string) *Pile {
	for _, p := range s.Supply {
		if p.Card.ID == id {
			return p
		}
	}
	return nil
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

// EmptyPiles counts supply piles with nothing left.
func (s *State) EmptyPiles() int {
	n := 0
	for _, p := range s.Supply {
		if p.Count == 0 {
			n++
		}
	}
	return n
}

// Clone returns a working copy. Card templates are shared; every zone,
// pile and the phase stack are copied.
func (s *State) Clone() *State {
	c := *s
	c.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		c.Players[i] = p.clone()
	}
	c.PlayArea = cloneCards(s.PlayArea)
	c.Trash = cloneCards(s.Trash)
	c.Supply = make([]*Pile, len(s.Supply))
	for i, p := range s.Supply {
		pile := *p
		c.Supply[i] = &pile
	}
	if s.Armed != nil {
		armed := *s.Armed
		c.Armed = &armed
	}
	c.phases = s.phases.Clone()
	return &c
}

// CurrentPlayer returns the player whose turn it is.
func CurrentPlayer(s *State, ctx *flow.Context) *Player {
	return s.Player(ctx.CurrentPlayer)
}

func cloneCards(cards []*Card) []*Card {
	if cards == nil {
		return nil
	}
	out := make([]*Card, len(cards))
	copy(out, cards)
	return out
}
