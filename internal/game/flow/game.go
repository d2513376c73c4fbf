// Package flow is the host dispatcher for turn-based card games. It owns the
// turn context, enforces per-phase move allow-lists and calls a game's
// lifecycle hooks in a fixed order.
package flow

import (
	"errors"
	"fmt"

	"github.com/janosimas/dominon/internal/game/rules"
	"github.com/janosimas/dominon/internal/random"
	"go.uber.org/zap"
)

var (
	ErrNoPhases       = errors.New("definition has no phases")
	ErrUnknownPhase   = errors.New("unknown phase")
	ErrUnknownMove    = errors.New("unknown move")
	ErrMoveNotAllowed = errors.New("move not allowed in current phase")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrNotStarted     = errors.New("game not started")
	ErrGameOver       = errors.New("game is over")
	ErrAborted        = errors.New("game aborted")
	ErrUnsettled      = errors.New("lifecycle did not settle")
)

// Options configures a hosted game.
type Options struct {
	Players int
	Seed    int64
	Logger  *zap.Logger
	Events  *rules.EventBus
}

// Game hosts one running game of state S.
type Game[S any] struct {
	def    Definition[S]
	ctx    *Context
	state  S
	phase  *Phase[S]
	logger *zap.Logger
	events *rules.EventBus
	seed   int64

	started bool
	outcome *Outcome
	aborted error
}

// New validates def and prepares a game. Start must be called before moves.
func New[S any](def Definition[S], opts Options) (*Game[S], error) {
	if len(def.Phases) == 0 {
		return nil, ErrNoPhases
	}
	if def.Setup == nil {
		return nil, errors.New("definition has no setup")
	}
	if opts.Players < 1 {
		return nil, fmt.Errorf("invalid player count %d", opts.Players)
	}
	seen := make(map[string]bool, len(def.Phases))
	for _, p := range def.Phases {
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate phase %q", p.Name)
		}
		seen[p.Name] = true
		for _, m := range p.Moves {
			if _, ok := def.Moves[m]; !ok {
				return nil, fmt.Errorf("phase %s lists %w %q", p.Name, ErrUnknownMove, m)
			}
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	events := opts.Events
	if events == nil {
		events = rules.NewEventBus()
	}

	return &Game[S]{
		def:    def,
		ctx:    NewContext(opts.Players, random.New(opts.Seed)),
		logger: logger.With(zap.String("game", def.Name)),
		events: events,
		seed:   opts.Seed,
	}, nil
}

// Start runs setup, enters the first phase and begins the first turn.
func (g *Game[S]) Start() error {
	if g.started {
		return errors.New("game already started")
	}
	state, err := g.def.Setup(g.ctx)
	if err != nil {
		return fmt.Errorf("setup %s: %w", g.def.Name, err)
	}
	g.state = state
	g.started = true
	g.publish(rules.NewEventWithAmount(rules.EventGameStarted, "", "", g.ctx.NumPlayers))
	g.logger.Info("game started",
		zap.Int("players", g.ctx.NumPlayers),
		zap.Int64("seed", g.seed),
	)

	if err := g.enterPhase(&g.def.Phases[0]); err != nil {
		return g.abort(err)
	}
	if err := g.beginTurn(); err != nil {
		return g.abort(err)
	}
	if err := g.settle(); err != nil {
		return g.abort(err)
	}
	return nil
}

// MakeMove dispatches move name for player. Rejected moves leave the state
// untouched and return an error wrapping rules.ErrRejected.
func (g *Game[S]) MakeMove(player, name string, args Args) error {
	if err := g.checkPlayable(); err != nil {
		return err
	}
	if player != g.ctx.CurrentPlayer {
		return fmt.Errorf("%w: player %s, current %s", ErrNotYourTurn, player, g.ctx.CurrentPlayer)
	}
	move, ok := g.def.Moves[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownMove, name)
	}
	if !rules.NewMoveSet(g.phase.Moves...).Allows(name) {
		return fmt.Errorf("%w: %s in %s", ErrMoveNotAllowed, name, g.phase.Name)
	}

	next, err := move(g.state, g.ctx, args)
	if err != nil {
		g.ctx.discard()
		if rules.IsRejected(err) {
			evt := rules.NewEvent(rules.EventMoveRejected, player, args.Key)
			evt.Move = name
			g.publish(evt)
			g.logger.Debug("move rejected",
				zap.String("player", player),
				zap.String("move", name),
				zap.Error(err),
			)
			return err
		}
		return g.abort(fmt.Errorf("move %s: %w", name, err))
	}

	g.state = next
	g.flush()
	evt := rules.NewEvent(rules.EventMoveApplied, player, args.Key)
	evt.Move = name
	evt.Amount = args.Index
	g.publish(evt)
	g.logger.Debug("move applied",
		zap.String("player", player),
		zap.String("move", name),
		zap.String("phase", g.phase.Name),
		zap.Int("turn", g.ctx.Turn),
	)

	if err := g.settle(); err != nil {
		return g.abort(err)
	}
	return nil
}

// State returns the current state.
func (g *Game[S]) State() S {
	return g.state
}

// Context returns a copy of the turn context.
func (g *Game[S]) Context() Context {
	ctx := *g.ctx
	ctx.PlayOrder = append([]string(nil), g.ctx.PlayOrder...)
	ctx.events = nil
	return ctx
}

// Phase returns the active phase name.
func (g *Game[S]) Phase() string {
	if g.phase == nil {
		return ""
	}
	return g.phase.Name
}

// AllowedMoves returns the allow-list of the active phase.
func (g *Game[S]) AllowedMoves() []string {
	if g.phase == nil {
		return nil
	}
	return append([]string(nil), g.phase.Moves...)
}

// Outcome returns the result once the game is over.
func (g *Game[S]) Outcome() (Outcome, bool) {
	if g.outcome == nil {
		return Outcome{}, false
	}
	return *g.outcome, true
}

// Err returns the error that aborted the game, if any.
func (g *Game[S]) Err() error {
	return g.aborted
}

// Seed returns the seed of the shuffle source.
func (g *Game[S]) Seed() int64 {
	return g.seed
}

// Events returns the bus lifecycle and card events are published on.
func (g *Game[S]) Events() *rules.EventBus {
	return g.events
}

func (g *Game[S]) checkPlayable() error {
	switch {
	case !g.started:
		return ErrNotStarted
	case g.aborted != nil:
		return g.aborted
	case g.outcome != nil:
		return ErrGameOver
	}
	return nil
}

// settle applies end conditions until none fires: end game, end phase,
// end turn, in that order.
func (g *Game[S]) settle() error {
	limit := 4*(len(g.def.Phases)+g.ctx.NumPlayers) + 8
	for i := 0; i < limit; i++ {
		if g.checkGameOver() {
			return nil
		}
		phaseChanged, err := g.checkPhase()
		if err != nil {
			return err
		}
		turnEnded, err := g.checkTurn()
		if err != nil {
			return err
		}
		if !phaseChanged && !turnEnded {
			return nil
		}
	}
	return fmt.Errorf("%w after %d passes", ErrUnsettled, limit)
}

func (g *Game[S]) checkGameOver() bool {
	if g.def.EndGameIf == nil {
		return false
	}
	outcome, over := g.def.EndGameIf(g.state, g.ctx)
	if !over {
		return false
	}
	g.outcome = &outcome
	evt := rules.NewEvent(rules.EventGameOver, outcome.Winner, "")
	evt.TargetID = outcome.Winner
	g.publish(evt)

	fields := []zap.Field{zap.String("winner", outcome.Winner), zap.Int("turn", g.ctx.Turn)}
	for _, s := range outcome.Scores {
		fields = append(fields, zap.Int("score_"+s.Player, s.Points))
	}
	g.logger.Info("game over", fields...)
	return true
}

func (g *Game[S]) checkPhase() (bool, error) {
	if g.phase.EndIf == nil {
		return false, nil
	}
	nextName, ok := g.phase.EndIf(g.state, g.ctx)
	if !ok || nextName == g.phase.Name {
		return false, nil
	}
	next := g.def.phase(nextName)
	if next == nil {
		return false, fmt.Errorf("%w %q requested by %s", ErrUnknownPhase, nextName, g.phase.Name)
	}
	if err := g.leavePhase(); err != nil {
		return false, err
	}
	if err := g.enterPhase(next); err != nil {
		return false, err
	}
	return true, nil
}

func (g *Game[S]) checkTurn() (bool, error) {
	endTurnIf := g.def.EndTurnIf
	if g.phase.EndTurnIf != nil {
		endTurnIf = g.phase.EndTurnIf
	}
	if endTurnIf == nil || !endTurnIf(g.state, g.ctx) {
		return false, nil
	}
	if err := g.endTurn(); err != nil {
		return false, err
	}
	return true, nil
}

func (g *Game[S]) enterPhase(p *Phase[S]) error {
	g.phase = p
	g.ctx.Phase = p.Name
	evt := rules.NewEvent(rules.EventPhaseBegin, g.ctx.CurrentPlayer, "")
	evt.Phase = rules.Phase(p.Name)
	g.publish(evt)
	g.logger.Debug("phase begin", zap.String("phase", p.Name), zap.Int("turn", g.ctx.Turn))
	return g.runHook("phase begin "+p.Name, p.OnBegin)
}

func (g *Game[S]) leavePhase() error {
	p := g.phase
	if err := g.runHook("phase end "+p.Name, p.OnEnd); err != nil {
		return err
	}
	evt := rules.NewEvent(rules.EventPhaseEnd, g.ctx.CurrentPlayer, "")
	evt.Phase = rules.Phase(p.Name)
	g.publish(evt)
	return nil
}

func (g *Game[S]) beginTurn() error {
	hook := g.def.OnTurnBegin
	if g.phase.OnTurnBegin != nil {
		hook = g.phase.OnTurnBegin
	}
	g.publish(rules.NewEvent(rules.EventTurnBegin, g.ctx.CurrentPlayer, ""))
	return g.runHook("turn begin", hook)
}

func (g *Game[S]) endTurn() error {
	hook := g.def.OnTurnEnd
	if g.phase.OnTurnEnd != nil {
		hook = g.phase.OnTurnEnd
	}
	if err := g.runHook("turn end", hook); err != nil {
		return err
	}
	g.publish(rules.NewEvent(rules.EventTurnEnd, g.ctx.CurrentPlayer, ""))

	seat := (g.ctx.Seat() + 1) % g.ctx.NumPlayers
	g.ctx.CurrentPlayer = g.ctx.PlayOrder[seat]
	g.ctx.Turn++
	g.logger.Debug("turn passed",
		zap.String("player", g.ctx.CurrentPlayer),
		zap.Int("turn", g.ctx.Turn),
	)
	return g.beginTurn()
}

func (g *Game[S]) runHook(name string, hook Hook[S]) error {
	if hook == nil {
		return nil
	}
	next, err := hook(g.state, g.ctx)
	if err != nil {
		g.ctx.discard()
		return fmt.Errorf("%s: %w", name, err)
	}
	g.state = next
	g.flush()
	return nil
}

func (g *Game[S]) flush() {
	g.events.PublishBatch(g.ctx.drain())
}

func (g *Game[S]) publish(evt rules.Event) {
	if evt.Turn == 0 {
		evt.Turn = g.ctx.Turn
	}
	if evt.Phase == "" {
		evt.Phase = rules.Phase(g.ctx.Phase)
	}
	g.events.Publish(evt)
}

func (g *Game[S]) abort(err error) error {
	g.aborted = fmt.Errorf("%w: %w", ErrAborted, err)
	g.publish(rules.NewEvent(rules.EventGameAborted, g.ctx.CurrentPlayer, ""))
	g.logger.Error("game aborted", zap.Error(err), zap.Int("turn", g.ctx.Turn))
	return g.aborted
}
