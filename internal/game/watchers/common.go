package watchers

import (
	"github.com/janosimas/dominon/internal/game/rules"
)

// Watcher keys.
const (
	KeyCardsPlayed = "CardsPlayedWatcher"
	KeyCardsBought = "CardsBoughtWatcher"
	KeyTurnPlays   = "TurnPlaysWatcher"
	KeyFoodEaten   = "FoodEatenWatcher"
)

// Attach routes every event published on bus to the watchers in reg and
// returns the subscription handle.
func Attach(bus *rules.EventBus, reg *rules.WatcherRegistry) int {
	return bus.Subscribe(reg.NotifyWatchers)
}

// cardCounter counts card identifiers per player.
type cardCounter map[string]map[string]int

func (c cardCounter) add(playerID, cardID string) {
	if c[playerID] == nil {
		c[playerID] = make(map[string]int)
	}
	c[playerID][cardID]++
}

func (c cardCounter) total(playerID string) int {
	n := 0
	for _, count := range c[playerID] {
		n += count
	}
	return n
}

// CardsPlayedWatcher tracks cards played from hand for the whole game.
type CardsPlayedWatcher struct {
	*rules.BaseWatcher
	played cardCounter
}

// NewCardsPlayedWatcher creates a new cards played watcher.
func NewCardsPlayedWatcher() *CardsPlayedWatcher {
	return &CardsPlayedWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame, KeyCardsPlayed),
		played:      make(cardCounter),
	}
}

// Watch implements the Watcher interface.
func (w *CardsPlayedWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventCardPlayed || event.PlayerID == "" || event.SourceID == "" {
		return
	}
	w.played.add(event.PlayerID, event.SourceID)
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *CardsPlayedWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.played = make(cardCounter)
}

// GetCount returns the number of cards a player has played.
func (w *CardsPlayedWatcher) GetCount(playerID string) int {
	return w.played.total(playerID)
}

// CardsBoughtWatcher tracks purchases and gains per player.
type CardsBoughtWatcher struct {
	*rules.BaseWatcher
	bought cardCounter
	gained cardCounter
	spent  map[string]int
}

// NewCardsBoughtWatcher creates a new cards bought watcher.
func NewCardsBoughtWatcher() *CardsBoughtWatcher {
	return &CardsBoughtWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame, KeyCardsBought),
		bought:      make(cardCounter),
		gained:      make(cardCounter),
		spent:       make(map[string]int),
	}
}

// Watch implements the Watcher interface.
func (w *CardsBoughtWatcher) Watch(event rules.Event) {
	if event.PlayerID == "" || event.SourceID == "" {
		return
	}
	switch event.Type {
	case rules.EventCardBought:
		w.bought.add(event.PlayerID, event.SourceID)
		w.spent[event.PlayerID] += event.Amount
	case rules.EventCardGained:
		w.gained.add(event.PlayerID, event.SourceID)
	default:
		return
	}
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *CardsBoughtWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.bought = make(cardCounter)
	w.gained = make(cardCounter)
	w.spent = make(map[string]int)
}

// GetBought returns the number of cards a player bought.
func (w *CardsBoughtWatcher) GetBought(playerID string) int {
	return w.bought.total(playerID)
}

// GetGained returns the number of cards a player gained without buying.
func (w *CardsBoughtWatcher) GetGained(playerID string) int {
	return w.gained.total(playerID)
}

// GetSpent returns the treasure a player spent on purchases.
func (w *CardsBoughtWatcher) GetSpent(playerID string) int {
	return w.spent[playerID]
}

// TurnPlaysWatcher counts the cards played during the current turn. It is
// reset when the turn ends.
type TurnPlaysWatcher struct {
	*rules.BaseWatcher
	plays map[string]int
}

// NewTurnPlaysWatcher creates a new turn plays watcher.
func NewTurnPlaysWatcher() *TurnPlaysWatcher {
	return &TurnPlaysWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeTurn, KeyTurnPlays),
		plays:       make(map[string]int),
	}
}

// Watch implements the Watcher interface.
func (w *TurnPlaysWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventCardPlayed || event.PlayerID == "" {
		return
	}
	w.plays[event.PlayerID]++
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *TurnPlaysWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.plays = make(map[string]int)
}

// GetCount returns the cards a player played this turn.
func (w *TurnPlaysWatcher) GetCount(playerID string) int {
	return w.plays[playerID]
}

// FoodEatenWatcher tracks food eaten and attacks made by species.
type FoodEatenWatcher struct {
	*rules.BaseWatcher
	eaten   map[string]int
	attacks map[string]int
	extinct map[string]int
}

// NewFoodEatenWatcher creates a new food eaten watcher.
func NewFoodEatenWatcher() *FoodEatenWatcher {
	return &FoodEatenWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame, KeyFoodEaten),
		eaten:       make(map[string]int),
		attacks:     make(map[string]int),
		extinct:     make(map[string]int),
	}
}

// Watch implements the Watcher interface.
func (w *FoodEatenWatcher) Watch(event rules.Event) {
	if event.PlayerID == "" {
		return
	}
	switch event.Type {
	case rules.EventSpeciesFed:
		w.eaten[event.PlayerID] += event.Amount
	case rules.EventSpeciesAttack:
		w.attacks[event.PlayerID]++
	case rules.EventSpeciesExtinct:
		w.extinct[event.PlayerID]++
	default:
		return
	}
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *FoodEatenWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.eaten = make(map[string]int)
	w.attacks = make(map[string]int)
	w.extinct = make(map[string]int)
}

// GetEaten returns the food a player's species ate.
func (w *FoodEatenWatcher) GetEaten(playerID string) int {
	return w.eaten[playerID]
}

// GetAttacks returns the attacks a player made.
func (w *FoodEatenWatcher) GetAttacks(playerID string) int {
	return w.attacks[playerID]
}

// GetExtinctions returns how many of a player's species went extinct.
func (w *FoodEatenWatcher) GetExtinctions(playerID string) int {
	return w.extinct[playerID]
}
