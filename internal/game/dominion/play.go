package dominion

import (
	"github.com/janosimas/dominon/internal/game/flow"
	"github.com/janosimas/dominon/internal/game/rules"
)

// Play is the handle an effect works through. Resource and zone changes
// apply to the working state immediately; phase changes are recorded as
// commands and applied by the engine after the effect returns.
type Play struct {
	State  *State
	Ctx    *flow.Context
	Player *Player
	// Card is the card whose trigger is running, nil for plain moves.
	Card *Card

	commands []rules.Command
}

func newPlay(s *State, ctx *flow.Context, card *Card) *Play {
	return &Play{
		State:  s,
		Ctx:    ctx,
		Player: CurrentPlayer(s, ctx),
		Card:   card,
	}
}

// Draw draws n cards for the acting player.
func (p *Play) Draw(n int) int {
	return DrawCards(p.Ctx, p.Player, n)
}

// AddActions grants extra actions.
func (p *Play) AddActions(n int) { p.Player.Actions += n }

// AddBuys grants extra buys.
func (p *Play) AddBuys(n int) { p.Player.Buys += n }

// AddTreasure grants treasure for this turn.
func (p *Play) AddTreasure(n int) { p.Player.Treasure += n }

// EndTurn raises the end-of-turn flag.
func (p *Play) EndTurn() { p.State.EndTurn = true }

// PushPhase requests a nested phase.
func (p *Play) PushPhase(phase rules.Phase) {
	p.commands = append(p.commands, rules.Push(phase))
}

// PopPhase requests the top phase be removed.
func (p *Play) PopPhase() {
	p.commands = append(p.commands, rules.Pop())
}

// ResetPhase requests the stack be replaced by phase.
func (p *Play) ResetPhase(phase rules.Phase) {
	p.commands = append(p.commands, rules.Reset(phase))
}

// Arm sets the pending custom action.
func (p *Play) Arm(action CustomAction) {
	p.State.Armed = &action
}

// Disarm clears the pending custom action.
func (p *Play) Disarm() {
	p.State.Armed = nil
}

// Opponents returns the other players in seat order after the acting one.
func (p *Play) Opponents() []*Player {
	n := len(p.State.Players)
	seat := 0
	for i, pl := range p.State.Players {
		if pl == p.Player {
			seat = i
			break
		}
	}
	out := make([]*Player, 0, n-1)
	for i := 1; i < n; i++ {
		out = append(out, p.State.Players[(seat+i)%n])
	}
	return out
}

// Gain moves a card from the supply into the acting player's discard.
func (p *Play) Gain(id string) bool {
	if !Gain(p.State, p.Player, id) {
		return false
	}
	p.Emit(rules.EventCardGained, p.Player.ID, id, 1)
	return true
}

// Trash moves the acting player's hand card at index to the shared trash.
// The caller validates index.
func (p *Play) Trash(index int) *Card {
	card := TrashFromHand(p.State, p.Player, index)
	p.Emit(rules.EventCardTrashed, p.Player.ID, card.ID, 1)
	return card
}

// Emit records a card event for the host.
func (p *Play) Emit(t rules.EventType, target, source string, amount int) {
	if p.Ctx == nil {
		return
	}
	evt := rules.NewEventWithAmount(t, p.Player.ID, source, amount)
	evt.TargetID = target
	p.Ctx.Emit(evt)
}

func (p *Play) commit() error {
	return p.State.phases.ApplyAll(p.commands)
}
