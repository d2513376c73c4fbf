package evolution

import (
	"github.com/janosimas/dominon/internal/game/flow"
	"github.com/janosimas/dominon/internal/game/rules"
)

// Move names.
const (
	MovePlayFood           = "clickOnCardForFood"
	MoveSelectCard         = "clickOnCard"
	MoveNewTrait           = "newTrait"
	MoveIncreasePopulation = "increasePopulation"
	MoveIncreaseBodySize   = "increaseBodySize"
	MoveCreateSpecies      = "createNewSpecie"
	MoveSelectSpecies      = "selectSpecie"
	MoveEat                = "eatFromWateringHole"
	MoveAttack             = "attackOtherSpecie"
)

// PlayFood plays the hand card at args.Index face down for food and ends
// the turn.
func PlayFood(s *State, ctx *flow.Context, args flow.Args) (*State, error) {
	player := CurrentPlayer(s, ctx)
	if err := checkHandIndex(MovePlayFood, player, args.Index); err != nil {
		return s, err
	}
	state := s.Clone()
	player = CurrentPlayer(state, ctx)
	card := takeFromHand(player, args.Index)
	state.FoodCards = append(state.FoodCards, card)
	state.EndTurn = true
	ctx.Emit(rules.NewEvent(rules.EventFoodPlayed, player.ID, ""))
	return state, nil
}

// SelectCard picks the hand card at args.Index to spend on the next
// species action.
func SelectCard(s *State, ctx *flow.Context, args flow.Args) (*State, error) {
	player := CurrentPlayer(s, ctx)
	if player.Selected != nil {
		return s, rules.Reject(MoveSelectCard, "card %s already selected", player.Selected.ID)
	}
	if err := checkHandIndex(MoveSelectCard, player, args.Index); err != nil {
		return s, err
	}
	state := s.Clone()
	player = CurrentPlayer(state, ctx)
	card := takeFromHand(player, args.Index)
	player.Selected = &card
	return state, nil
}

// NewTrait attaches the selected card to species args.Index as a trait.
func NewTrait(s *State, ctx *flow.Context, args flow.Args) (*State, error) {
	return spendSelected(s, ctx, MoveNewTrait, args.Index, func(state *State, player *Player, sp *Species, card Card) error {
		if len(sp.Traits) >= MaxTraits {
			return rules.Reject(MoveNewTrait, "species already has %d traits", MaxTraits)
		}
		sp.Traits = append(sp.Traits, card)
		ctx.Emit(rules.NewEvent(rules.EventTraitAdded, player.ID, card.Trait))
		return nil
	})
}

// IncreasePopulation spends the selected card on +1 population.
func IncreasePopulation(s *State, ctx *flow.Context, args flow.Args) (*State, error) {
	return spendSelected(s, ctx, MoveIncreasePopulation, args.Index, func(state *State, _ *Player, sp *Species, card Card) error {
		if sp.Population >= MaxPopulation {
			return rules.Reject(MoveIncreasePopulation, "population is at %d", MaxPopulation)
		}
		sp.Population++
		state.Discard = append(state.Discard, card)
		return nil
	})
}

// IncreaseBodySize spends the selected card on +1 body size.
func IncreaseBodySize(s *State, ctx *flow.Context, args flow.Args) (*State, error) {
	return spendSelected(s, ctx, MoveIncreaseBodySize, args.Index, func(state *State, _ *Player, sp *Species, card Card) error {
		if sp.BodySize >= MaxBodySize {
			return rules.Reject(MoveIncreaseBodySize, "body size is at %d", MaxBodySize)
		}
		sp.BodySize++
		state.Discard = append(state.Discard, card)
		return nil
	})
}

// CreateSpecies spends the selected card on a new species inserted at
// position args.Index.
func CreateSpecies(s *State, ctx *flow.Context, args flow.Args) (*State, error) {
	player := CurrentPlayer(s, ctx)
	if player.Selected == nil {
		return s, rules.Reject(MoveCreateSpecies, "no card selected")
	}
	if args.Index < 0 || args.Index > len(player.Species) {
		return s, rules.Reject(MoveCreateSpecies, "position %d out of range [0,%d]", args.Index, len(player.Species))
	}
	state := s.Clone()
	player = CurrentPlayer(state, ctx)
	species := append(player.Species[:args.Index:args.Index], NewSpecies())
	player.Species = append(species, player.Species[args.Index:]...)
	state.Discard = append(state.Discard, *player.Selected)
	player.Selected = nil
	ctx.Emit(rules.NewEventWithAmount(rules.EventSpeciesCreated, player.ID, "", args.Index))
	return state, nil
}

func spendSelected(s *State, ctx *flow.Context, move string, index int,
	apply func(state *State, player *Player, sp *Species, card Card) error) (*State, error) {
	player := CurrentPlayer(s, ctx)
	if player.Selected == nil {
		return s, rules.Reject(move, "no card selected")
	}
	if err := checkSpeciesIndex(move, player, index); err != nil {
		return s, err
	}
	state := s.Clone()
	player = CurrentPlayer(state, ctx)
	card := *player.Selected
	if err := apply(state, player, player.Species[index], card); err != nil {
		return s, err
	}
	player.Selected = nil
	return state, nil
}

// SelectSpecies picks the species at args.Index to feed.
func SelectSpecies(s *State, ctx *flow.Context, args flow.Args) (*State, error) {
	player := CurrentPlayer(s, ctx)
	if err := checkSpeciesIndex(MoveSelectSpecies, player, args.Index); err != nil {
		return s, err
	}
	state := s.Clone()
	CurrentPlayer(state, ctx).SelectedSpecies = args.Index
	return state, nil
}

// Eat feeds the selected species one food from the watering hole and ends
// the turn.
func Eat(s *State, ctx *flow.Context, _ flow.Args) (*State, error) {
	player := CurrentPlayer(s, ctx)
	sp, err := selectedSpecies(MoveEat, player)
	if err != nil {
		return s, err
	}
	if !sp.Hungry() {
		return s, rules.Reject(MoveEat, "species is fed")
	}
	if s.WateringHole <= 0 {
		return s, rules.Reject(MoveEat, "watering hole is empty")
	}
	state := s.Clone()
	player = CurrentPlayer(state, ctx)
	player.Species[player.SelectedSpecies].Food++
	state.WateringHole--
	ctx.Emit(rules.NewEventWithAmount(rules.EventSpeciesFed, player.ID, "", 1))
	player.SelectedSpecies = NoSpecies
	state.EndTurn = true
	return state, nil
}

// Attack has the selected species attack species args.Target of the
// player seated at args.Player. The attacker must be hungry and strictly
// larger; the prey loses one population and goes extinct at zero, and the
// attacker eats up to the prey's body size. The turn ends.
func Attack(s *State, ctx *flow.Context, args flow.Args) (*State, error) {
	player := CurrentPlayer(s, ctx)
	sp, err := selectedSpecies(MoveAttack, player)
	if err != nil {
		return s, err
	}
	if !sp.Hungry() {
		return s, rules.Reject(MoveAttack, "species is fed")
	}
	if args.Player < 0 || args.Player >= len(s.Players) {
		return s, rules.Reject(MoveAttack, "seat %d out of range", args.Player)
	}
	owner := s.Players[args.Player]
	if args.Target < 0 || args.Target >= len(owner.Species) {
		return s, rules.Reject(MoveAttack, "species %d out of range", args.Target)
	}
	prey := owner.Species[args.Target]
	if prey == sp {
		return s, rules.Reject(MoveAttack, "species cannot attack itself")
	}
	if !canAttack(sp, prey) {
		return s, rules.Reject(MoveAttack, "body size %d does not exceed %d", sp.BodySize, prey.BodySize)
	}

	state := s.Clone()
	player = CurrentPlayer(state, ctx)
	owner = state.Players[args.Player]
	attacker := player.Species[player.SelectedSpecies]
	prey = owner.Species[args.Target]

	prey.Population--
	evt := rules.NewEventWithAmount(rules.EventSpeciesAttack, player.ID, "", args.Target)
	evt.TargetID = owner.ID
	ctx.Emit(evt)
	if prey.Population <= 0 {
		state.Discard = append(state.Discard, prey.Traits...)
		owner.Species = append(owner.Species[:args.Target:args.Target], owner.Species[args.Target+1:]...)
		extinct := rules.NewEventWithAmount(rules.EventSpeciesExtinct, owner.ID, "", args.Target)
		extinct.TargetID = owner.ID
		ctx.Emit(extinct)
	}
	food := min(prey.BodySize, attacker.Population-attacker.Food)
	attacker.Food += food
	ctx.Emit(rules.NewEventWithAmount(rules.EventSpeciesFed, player.ID, "", food))

	player.SelectedSpecies = NoSpecies
	state.EndTurn = true
	return state, nil
}

func selectedSpecies(move string, p *Player) (*Species, error) {
	if p.SelectedSpecies < 0 || p.SelectedSpecies >= len(p.Species) {
		return nil, rules.Reject(move, "no species selected")
	}
	return p.Species[p.SelectedSpecies], nil
}

func checkHandIndex(move string, p *Player, index int) error {
	if index < 0 || index >= len(p.Hand) {
		return rules.Reject(move, "hand index %d out of range [0,%d)", index, len(p.Hand))
	}
	return nil
}

func checkSpeciesIndex(move string, p *Player, index int) error {
	if index < 0 || index >= len(p.Species) {
		return rules.Reject(move, "species index %d out of range [0,%d)", index, len(p.Species))
	}
	return nil
}
