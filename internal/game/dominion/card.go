package dominion

import "fmt"

// Kind classifies a card. Kinds decide where a card may be played from.
type Kind int

const (
	KindTreasure Kind = iota
	KindVictory
	KindCurse
	KindAction
)

var kindNames = map[Kind]string{
	KindTreasure: "TREASURE",
	KindVictory:  "VICTORY",
	KindCurse:    "CURSE",
	KindAction:   "ACTION",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND_%d", int(k))
}

// Effect is a card trigger. It mutates the working state through p and
// requests phase transitions through p's commands.
type Effect func(p *Play)

// Card is an immutable card template. Behaviour is expressed as an explicit
// capability set: OnPlay, Victory or ComputedVictory, Temporary.
type Card struct {
	ID   string
	Name string
	Kind Kind
	Cost int

	// Victory is the static victory value, used when ComputedVictory is nil.
	Victory int
	// ComputedVictory derives the value from the game state at game end.
	ComputedVictory func(s *State, owner *Player) int
	// OnPlay runs when the card is played from hand. Cards without it
	// cannot be played.
	OnPlay Effect
	// Temporary cards leave the play area at turn end without being
	// discarded.
	Temporary bool
	// Critical cards end the game when their supply pile runs out.
	Critical bool
	// Pile returns the starting supply size for a player count. Nil means
	// DefaultPileSize.
	Pile func(players int) int
}

// DefaultPileSize is the supply size of cards without a Pile function.
const DefaultPileSize = 10

// Playable reports whether the card has an on-play trigger.
func (c *Card) Playable() bool {
	return c.OnPlay != nil
}

// VictoryPoints returns the card's contribution to owner's victory tally.
func (c *Card) VictoryPoints(s *State, owner *Player) int {
	if c.ComputedVictory != nil {
		return c.ComputedVictory(s, owner)
	}
	return c.Victory
}

// SupplySize returns the starting pile size for the given player count.
func (c *Card) SupplySize(players int) int {
	if c.Pile == nil {
		return DefaultPileSize
	}
	if n := c.Pile(players); n > 0 {
		return n
	}
	return 0
}

func (c *Card) String() string {
	return c.ID
}
