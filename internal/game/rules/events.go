package rules

import (
	"sync"
	"time"
)

// EventType indicates the category of a rules event.
type EventType string

const (
	// Lifecycle events, published by the host.
	EventGameStarted  EventType = "GAME_STARTED"
	EventPhaseBegin   EventType = "PHASE_BEGIN"
	EventPhaseEnd     EventType = "PHASE_END"
	EventTurnBegin    EventType = "TURN_BEGIN"
	EventTurnEnd      EventType = "TURN_END"
	EventMoveApplied  EventType = "MOVE_APPLIED"
	EventMoveRejected EventType = "MOVE_REJECTED"
	EventGameOver     EventType = "GAME_OVER"
	EventGameAborted  EventType = "GAME_ABORTED"

	// Card events, emitted by moves and effects.
	EventCardPlayed  EventType = "CARD_PLAYED"
	EventCardBought  EventType = "CARD_BOUGHT"
	EventCardGained  EventType = "CARD_GAINED"
	EventCardTrashed EventType = "CARD_TRASHED"
	EventCardDrawn   EventType = "CARD_DRAWN"
	EventDiscarded   EventType = "CARD_DISCARDED"
	EventShuffled    EventType = "DECK_SHUFFLED"

	// Evolution events.
	EventFoodPlayed     EventType = "FOOD_PLAYED"
	EventTraitAdded     EventType = "TRAIT_ADDED"
	EventSpeciesCreated EventType = "SPECIES_CREATED"
	EventSpeciesFed     EventType = "SPECIES_FED"
	EventSpeciesAttack  EventType = "SPECIES_ATTACKED"
	EventSpeciesExtinct EventType = "SPECIES_EXTINCT"
)

// Event represents a state change that other subsystems may react to.
type Event struct {
	Type      EventType
	PlayerID  string // acting player
	SourceID  string // card or species that caused the event
	TargetID  string // player, card or species affected
	Phase     Phase
	Move      string
	Turn      int
	Amount    int
	Timestamp time.Time
	Metadata  map[string]string
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, playerID, sourceID string) Event {
	return Event{
		Type:      eventType,
		PlayerID:  playerID,
		SourceID:  sourceID,
		Timestamp: time.Now(),
		Metadata:  make(map[string]string),
	}
}

// NewEventWithAmount creates a new event with an amount value.
func NewEventWithAmount(eventType EventType, playerID, sourceID string, amount int) Event {
	evt := NewEvent(eventType, playerID, sourceID)
	evt.Amount = amount
	return evt
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type filtering.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	order          []int
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	bus.order = append(bus.order, handle)
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle,
// whether it was registered with Subscribe or SubscribeTyped.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	if _, ok := bus.listeners[handle]; ok {
		delete(bus.listeners, handle)
		for i, h := range bus.order {
			if h == handle {
				bus.order = append(bus.order[:i], bus.order[i+1:]...)
				break
			}
		}
		return
	}
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously,
// in subscription order.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	listeners := make([]Listener, 0, len(bus.order))
	for _, handle := range bus.order {
		listeners = append(listeners, bus.listeners[handle])
	}
	typed := append([]TypedListener(nil), bus.typedListeners[event.Type]...)
	bus.mu.RUnlock()

	for _, listener := range listeners {
		listener(event)
	}
	for _, listener := range typed {
		listener.Callback(event)
	}
}

// PublishBatch publishes events in order.
func (bus *EventBus) PublishBatch(events []Event) {
	for _, event := range events {
		bus.Publish(event)
	}
}
