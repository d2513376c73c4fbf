package flow

// Move applies a named move. A rejected move returns the input state and an
// error wrapping rules.ErrRejected; any other error aborts the game.
type Move[S any] func(state S, ctx *Context, args Args) (S, error)

// Hook runs at a lifecycle point.
type Hook[S any] func(state S, ctx *Context) (S, error)

// Phase describes one phase of a game.
type Phase[S any] struct {
	Name string
	// Moves lists the moves callable while this phase is active.
	Moves []string

	OnBegin Hook[S]
	OnEnd   Hook[S]
	// EndIf returns the name of the next phase when this one should end.
	EndIf func(state S, ctx *Context) (string, bool)

	// Turn overrides; nil falls back to the game-level hooks.
	EndTurnIf   func(state S, ctx *Context) bool
	OnTurnBegin Hook[S]
	OnTurnEnd   Hook[S]
}

// Score is one player's final tally.
type Score struct {
	Player string
	Points int
}

// Outcome is the result of a finished game.
type Outcome struct {
	Winner string
	Scores []Score
}

// Definition describes a game for the host.
type Definition[S any] struct {
	Name   string
	Setup  func(ctx *Context) (S, error)
	Moves  map[string]Move[S]
	Phases []Phase[S]

	OnTurnBegin Hook[S]
	OnTurnEnd   Hook[S]
	EndTurnIf   func(state S, ctx *Context) bool
	// EndGameIf is checked after every mutation.
	EndGameIf func(state S, ctx *Context) (Outcome, bool)
}

func (d *Definition[S]) phase(name string) *Phase[S] {
	for i := range d.Phases {
		if d.Phases[i].Name == name {
			return &d.Phases[i]
		}
	}
	return nil
}
