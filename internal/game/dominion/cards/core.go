package cards

import (
	"sort"

	"github.com/janosimas/dominon/internal/game/dominion"
	"github.com/janosimas/dominon/internal/game/flow"
	"github.com/janosimas/dominon/internal/game/rules"
)

// Phases contributed by the core module.
const (
	PhaseCellar rules.Phase = "CELLAR"
	PhaseChapel rules.Phase = "CHAPEL"
	PhaseGain   rules.Phase = "GAIN"
)

// Moves contributed by the core module.
const (
	MoveCellarDiscard = "cellarDiscard"
	MoveChapelTrash   = "chapelTrash"
	MoveGainCard      = "gainCard"
)

const (
	// MilitiaHandSize is the hand size Militia's attack leaves opponents with.
	MilitiaHandSize = 3
	// ChapelLimit is the most cards one Chapel trashes.
	ChapelLimit = 4
)

func action(id, name string, cost int, effect dominion.Effect) *dominion.Card {
	return &dominion.Card{ID: id, Name: name, Kind: dominion.KindAction, Cost: cost, OnPlay: effect}
}

// Core is the kingdom module. Cellar and the gainers open nested phases
// and arm a custom action that closes them.
func Core() dominion.Module {
	feast := action("feast", "Feast", 4, gainUpTo(5))
	feast.Temporary = true

	gardens := &dominion.Card{
		ID:   "gardens",
		Name: "Gardens",
		Kind: dominion.KindVictory,
		Cost: 4,
		ComputedVictory: func(_ *dominion.State, owner *dominion.Player) int {
			return len(owner.Owned()) / 10
		},
		Pile: victoryPile,
	}

	return dominion.Module{
		Name:    "core",
		Kingdom: true,
		Cards: []*dominion.Card{
			action("festival", "Festival", 5, func(p *dominion.Play) {
				p.AddActions(2)
				p.AddBuys(1)
				p.AddTreasure(2)
			}),
			action("village", "Village", 3, func(p *dominion.Play) {
				p.Draw(1)
				p.AddActions(2)
			}),
			action("laboratory", "Laboratory", 5, func(p *dominion.Play) {
				p.Draw(2)
				p.AddActions(1)
			}),
			action("smithy", "Smithy", 4, func(p *dominion.Play) {
				p.Draw(3)
			}),
			action("woodcutter", "Woodcutter", 3, func(p *dominion.Play) {
				p.AddBuys(1)
				p.AddTreasure(2)
			}),
			action("market", "Market", 5, func(p *dominion.Play) {
				p.Draw(1)
				p.AddActions(1)
				p.AddBuys(1)
				p.AddTreasure(1)
			}),
			action("militia", "Militia", 4, militia),
			action("workshop", "Workshop", 3, gainUpTo(4)),
			action("cellar", "Cellar", 2, cellar),
			action("chapel", "Chapel", 2, chapel),
			feast,
			gardens,
		},
		Moves: []dominion.NamedMove{
			{Name: MoveCellarDiscard, Move: cellarDiscard},
			{Name: MoveChapelTrash, Move: chapelTrash},
			{Name: MoveGainCard, Move: gainCard},
		},
		Phases: []dominion.PhaseDef{
			{
				Name:  string(PhaseCellar),
				Moves: []string{MoveCellarDiscard, dominion.MoveCustomAction},
				EndIf: dominion.FollowStack(PhaseCellar),
			},
			{
				Name:  string(PhaseChapel),
				Moves: []string{MoveChapelTrash, dominion.MoveCustomAction},
				EndIf: dominion.FollowStack(PhaseChapel),
			},
			{
				Name:  string(PhaseGain),
				Moves: []string{MoveGainCard, dominion.MoveCustomAction},
				EndIf: dominion.FollowStack(PhaseGain),
			},
		},
	}
}

// militia gives two treasure; every opponent discards down to three,
// shedding victory and curse cards first, then the cheapest.
func militia(p *dominion.Play) {
	p.AddTreasure(2)
	for _, opp := range p.Opponents() {
		for len(opp.Hand) > MilitiaHandSize {
			idx := worstCard(opp.Hand)
			card := dominion.Discard(opp, idx)
			p.Emit(rules.EventDiscarded, opp.ID, card.ID, 1)
		}
	}
}

func worstCard(hand []*dominion.Card) int {
	order := make([]int, len(hand))
	for i := range order {
		order[i] = i
	}
	rank := func(c *dominion.Card) int {
		if c.Kind == dominion.KindVictory || c.Kind == dominion.KindCurse {
			return 0
		}
		return 1
	}
	sort.SliceStable(order, func(a, b int) bool {
		ca, cb := hand[order[a]], hand[order[b]]
		if rank(ca) != rank(cb) {
			return rank(ca) < rank(cb)
		}
		return ca.Cost < cb.Cost
	})
	return order[0]
}

// cellar: +1 action, then discard any number of cards in the cellar phase
// and fire the custom action to draw that many.
func cellar(p *dominion.Play) {
	p.AddActions(1)
	p.PushPhase(PhaseCellar)
	p.Arm(dominion.CustomAction{
		Label:  "Draw for discarded cards",
		Source: "cellar",
		Run: func(p *dominion.Play) {
			n := p.State.Armed.Counter
			p.Disarm()
			p.Draw(n)
			p.PopPhase()
		},
	})
}

func cellarDiscard(s *dominion.State, ctx *flow.Context, args flow.Args) (*dominion.State, error) {
	if s.TopPhase() != PhaseCellar || s.Armed == nil || s.Armed.Source != "cellar" {
		return s, rules.Reject(MoveCellarDiscard, "no cellar in progress")
	}
	player := dominion.CurrentPlayer(s, ctx)
	if args.Index < 0 || args.Index >= len(player.Hand) {
		return s, rules.Reject(MoveCellarDiscard, "hand index %d out of range", args.Index)
	}
	return dominion.Apply(s, ctx, func(p *dominion.Play) {
		card := dominion.Discard(p.Player, args.Index)
		p.State.Armed.Counter++
		p.Emit(rules.EventDiscarded, p.Player.ID, card.ID, 1)
	})
}

// chapel opens the chapel phase; the player trashes up to ChapelLimit hand
// cards and fires the custom action to stop.
func chapel(p *dominion.Play) {
	p.PushPhase(PhaseChapel)
	p.Arm(dominion.CustomAction{
		Label:  "Stop trashing",
		Source: "chapel",
		Run: func(p *dominion.Play) {
			p.Disarm()
			p.PopPhase()
		},
	})
}

func chapelTrash(s *dominion.State, ctx *flow.Context, args flow.Args) (*dominion.State, error) {
	if s.TopPhase() != PhaseChapel || s.Armed == nil || s.Armed.Source != "chapel" {
		return s, rules.Reject(MoveChapelTrash, "no chapel in progress")
	}
	if s.Armed.Counter >= ChapelLimit {
		return s, rules.Reject(MoveChapelTrash, "already trashed %d cards", ChapelLimit)
	}
	player := dominion.CurrentPlayer(s, ctx)
	if args.Index < 0 || args.Index >= len(player.Hand) {
		return s, rules.Reject(MoveChapelTrash, "hand index %d out of range", args.Index)
	}
	return dominion.Apply(s, ctx, func(p *dominion.Play) {
		p.Trash(args.Index)
		p.State.Armed.Counter++
	})
}

// gainUpTo opens the gain phase for a card costing up to limit. The armed
// custom action skips the gain.
func gainUpTo(limit int) dominion.Effect {
	return func(p *dominion.Play) {
		p.State.GainLimit = limit
		p.PushPhase(PhaseGain)
		source := ""
		if p.Card != nil {
			source = p.Card.ID
		}
		p.Arm(dominion.CustomAction{
			Label:  "Gain nothing",
			Source: source,
			Run: func(p *dominion.Play) {
				p.State.GainLimit = 0
				p.Disarm()
				p.PopPhase()
			},
		})
	}
}

func gainCard(s *dominion.State, ctx *flow.Context, args flow.Args) (*dominion.State, error) {
	if s.TopPhase() != PhaseGain {
		return s, rules.Reject(MoveGainCard, "no gain in progress")
	}
	pile := s.Pile(args.Key)
	if pile == nil || pile.Count <= 0 {
		return s, rules.Reject(MoveGainCard, "supply pile %q is empty or missing", args.Key)
	}
	if pile.Card.Cost > s.GainLimit {
		return s, rules.Reject(MoveGainCard, "%s costs %d, limit is %d", args.Key, pile.Card.Cost, s.GainLimit)
	}
	return dominion.Apply(s, ctx, func(p *dominion.Play) {
		p.Gain(args.Key)
		p.State.GainLimit = 0
		p.Disarm()
		p.PopPhase()
	})
}
