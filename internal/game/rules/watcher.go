package rules

import (
	"sync"
)

// WatcherScope defines the scope of a watcher's tracking.
type WatcherScope int

const (
	// WatcherScopeGame tracks events for the entire game.
	WatcherScopeGame WatcherScope = iota
	// WatcherScopePlayer tracks events for a specific player.
	WatcherScopePlayer
	// WatcherScopeTurn tracks events until the current turn ends.
	WatcherScopeTurn
)

// String returns the string representation of the watcher scope.
func (ws WatcherScope) String() string {
	switch ws {
	case WatcherScopeGame:
		return "GAME"
	case WatcherScopePlayer:
		return "PLAYER"
	case WatcherScopeTurn:
		return "TURN"
	default:
		return "UNKNOWN"
	}
}

// Watcher observes game events and keeps derived tallies.
type Watcher interface {
	// Watch is called for every published event.
	Watch(event Event)
	// Reset clears the watcher's state.
	Reset()
	// ConditionMet returns true once the tracked condition has been observed.
	ConditionMet() bool
	// Scope returns the scope of this watcher.
	Scope() WatcherScope
	// Key returns a unique key for this watcher instance.
	Key() string
}

// BaseWatcher provides the bookkeeping shared by watchers.
type BaseWatcher struct {
	scope     WatcherScope
	key       string
	condition bool
}

// NewBaseWatcher creates a new base watcher with the specified scope and key.
func NewBaseWatcher(scope WatcherScope, key string) *BaseWatcher {
	return &BaseWatcher{scope: scope, key: key}
}

// Scope returns the watcher's scope.
func (bw *BaseWatcher) Scope() WatcherScope {
	return bw.scope
}

// Key returns the unique key for this watcher.
func (bw *BaseWatcher) Key() string {
	return bw.key
}

// ConditionMet returns whether the condition has been met.
func (bw *BaseWatcher) ConditionMet() bool {
	return bw.condition
}

// SetCondition sets the condition flag.
func (bw *BaseWatcher) SetCondition(condition bool) {
	bw.condition = condition
}

// Reset clears the condition.
func (bw *BaseWatcher) Reset() {
	bw.condition = false
}

// WatcherRegistry manages watchers for a game.
type WatcherRegistry struct {
	mu       sync.RWMutex
	watchers map[string]Watcher
	keys     []string
}

// NewWatcherRegistry creates a new watcher registry.
func NewWatcherRegistry() *WatcherRegistry {
	return &WatcherRegistry{
		watchers: make(map[string]Watcher),
	}
}

// AddWatcher adds a watcher, replacing any watcher with the same key.
func (wr *WatcherRegistry) AddWatcher(watcher Watcher) {
	if watcher == nil {
		return
	}
	wr.mu.Lock()
	defer wr.mu.Unlock()

	key := watcher.Key()
	if _, exists := wr.watchers[key]; !exists {
		wr.keys = append(wr.keys, key)
	}
	wr.watchers[key] = watcher
}

// NotifyWatchers delivers event to every watcher in registration order.
// Turn-scoped watchers are reset once the turn ends.
func (wr *WatcherRegistry) NotifyWatchers(event Event) {
	wr.mu.RLock()
	defer wr.mu.RUnlock()

	for _, key := range wr.keys {
		watcher := wr.watchers[key]
		watcher.Watch(event)
		if event.Type == EventTurnEnd && watcher.Scope() == WatcherScopeTurn {
			watcher.Reset()
		}
	}
}

// ResetWatchers resets all watchers.
func (wr *WatcherRegistry) ResetWatchers() {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, watcher := range wr.watchers {
		watcher.Reset()
	}
}
