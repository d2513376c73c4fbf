package flow

import (
	"strconv"

	"github.com/janosimas/dominon/internal/game/rules"
	"github.com/janosimas/dominon/internal/random"
)

// Args carries the arguments of a move. Each move reads only the fields it
// documents.
type Args struct {
	Key    string // card identifier
	Index  int    // hand or species index
	Player int    // target seat
	Target int    // target index within the target seat
}

// Context is the turn context handed to every move and hook.
type Context struct {
	NumPlayers    int
	PlayOrder     []string
	CurrentPlayer string
	Turn          int
	Phase         string
	Random        random.Shuffler

	events []rules.Event
}

// NewContext builds a context for n seated players, ids "0".."n-1".
func NewContext(n int, rng random.Shuffler) *Context {
	order := make([]string, n)
	for i := range order {
		order[i] = strconv.Itoa(i)
	}
	ctx := &Context{
		NumPlayers: n,
		PlayOrder:  order,
		Turn:       1,
		Random:     rng,
	}
	if n > 0 {
		ctx.CurrentPlayer = order[0]
	}
	return ctx
}

// Seat returns the index of the current player in the play order.
func (c *Context) Seat() int {
	return c.SeatOf(c.CurrentPlayer)
}

// SeatOf returns the index of player in the play order, or -1.
func (c *Context) SeatOf(player string) int {
	for i, id := range c.PlayOrder {
		if id == player {
			return i
		}
	}
	return -1
}

// Emit buffers an event. The host publishes buffered events once the move
// or hook that emitted them has been applied, and drops them on rejection.
func (c *Context) Emit(event rules.Event) {
	if event.PlayerID == "" {
		event.PlayerID = c.CurrentPlayer
	}
	if event.Turn == 0 {
		event.Turn = c.Turn
	}
	if event.Phase == "" {
		event.Phase = rules.Phase(c.Phase)
	}
	c.events = append(c.events, event)
}

// Pending returns the events buffered since the last flush.
func (c *Context) Pending() []rules.Event {
	return append([]rules.Event(nil), c.events...)
}

func (c *Context) drain() []rules.Event {
	events := c.events
	c.events = nil
	return events
}

func (c *Context) discard() {
	c.events = nil
}
