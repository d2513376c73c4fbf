package rules

import (
	"testing"
)

func TestWatcherRegistry(t *testing.T) {
	registry := NewWatcherRegistry()

	gameWatcher := &testWatcherImpl{BaseWatcher: NewBaseWatcher(WatcherScopeGame, "GameWatcher")}
	turnWatcher := &testWatcherImpl{BaseWatcher: NewBaseWatcher(WatcherScopeTurn, "TurnWatcher")}
	registry.AddWatcher(gameWatcher)
	registry.AddWatcher(turnWatcher)
	registry.AddWatcher(nil)

	// Same key replaces the earlier watcher and keeps its position.
	replacement := &testWatcherImpl{BaseWatcher: NewBaseWatcher(WatcherScopeGame, "GameWatcher")}
	registry.AddWatcher(replacement)
	if len(registry.keys) != 2 {
		t.Fatalf("expected 2 keys, got %v", registry.keys)
	}
	gameWatcher = replacement

	registry.NotifyWatchers(NewEvent(EventCardPlayed, "0", "village"))
	if !gameWatcher.ConditionMet() || !turnWatcher.ConditionMet() {
		t.Fatal("both watchers should have seen the card play")
	}

	registry.NotifyWatchers(NewEvent(EventTurnEnd, "0", ""))
	if !gameWatcher.ConditionMet() {
		t.Fatal("game watcher must survive turn end")
	}
	if turnWatcher.ConditionMet() {
		t.Fatal("turn watcher should reset at turn end")
	}

	registry.ResetWatchers()
	if gameWatcher.ConditionMet() {
		t.Fatal("watcher should not have condition met after reset")
	}
}

func TestWatcherScopeString(t *testing.T) {
	if WatcherScopePlayer.String() != "PLAYER" || WatcherScope(9).String() != "UNKNOWN" {
		t.Fatal("unexpected scope names")
	}
}

type testWatcherImpl struct {
	*BaseWatcher
}

func (t *testWatcherImpl) Watch(event Event) {
	if event.Type == EventCardPlayed {
		t.SetCondition(true)
	}
}
