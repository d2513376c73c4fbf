// Package game hosts card game sessions: it creates engines by game type,
// dispatches player actions, records replays and checksums states.
package game

import (
	"errors"
	"fmt"

	"github.com/janosimas/dominon/internal/game/dominion"
	"github.com/janosimas/dominon/internal/game/dominion/cards"
	"github.com/janosimas/dominon/internal/game/evolution"
	"github.com/janosimas/dominon/internal/game/flow"
	"github.com/janosimas/dominon/internal/game/rules"
	"go.uber.org/zap"
)

// Game types.
const (
	GameTypeDominion  = dominion.GameName
	GameTypeEvolution = evolution.GameName
)

// OmniscientViewer sees every zone of either game.
const OmniscientViewer = dominion.Omniscient

// ErrUnknownGameType is returned for a game type no engine implements.
var ErrUnknownGameType = errors.New("unknown game type")

// Action is a move submitted by a player.
type Action struct {
	PlayerID string
	Move     string
	Args     flow.Args
}

// Session is a running game of any type.
type Session interface {
	GameType() string
	Start() error
	Apply(action Action) error
	// State returns the engine state: *dominion.State or *evolution.State.
	State() any
	Context() flow.Context
	Phase() string
	AllowedMoves() []string
	View(viewer string) any
	Checksum() (string, error)
	Outcome() (flow.Outcome, bool)
	Err() error
	Events() *rules.EventBus
}

// NewSession builds an unstarted session of gameType.
func NewSession(gameType string, opts flow.Options) (Session, error) {
	switch gameType {
	case GameTypeDominion:
		g, reg, err := dominion.New(opts, dominion.DefaultConfig(), cards.Base(), cards.Core())
		if err != nil {
			return nil, err
		}
		if opts.Logger != nil {
			for _, c := range reg.Collisions() {
				opts.Logger.Warn("card registry collision", zap.String("collision", c.String()))
			}
		}
		return &hosted[*dominion.State]{
			gameType: gameType,
			game:     g,
			view:     func(s *dominion.State, viewer string) any { return dominion.View(s, viewer) },
		}, nil
	case GameTypeEvolution:
		g, err := evolution.New(opts, evolution.DefaultConfig())
		if err != nil {
			return nil, err
		}
		return &hosted[*evolution.State]{
			gameType: gameType,
			game:     g,
			view:     func(s *evolution.State, viewer string) any { return evolution.View(s, viewer) },
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownGameType, gameType)
	}
}

type hosted[S any] struct {
	gameType string
	game     *flow.Game[S]
	view     func(S, string) any
}

func (h *hosted[S]) GameType() string { return h.gameType }

func (h *hosted[S]) Start() error { return h.game.Start() }

func (h *hosted[S]) Apply(action Action) error {
	return h.game.MakeMove(action.PlayerID, action.Move, action.Args)
}

func (h *hosted[S]) State() any { return h.game.State() }

func (h *hosted[S]) Context() flow.Context { return h.game.Context() }

func (h *hosted[S]) Phase() string { return h.game.Phase() }

func (h *hosted[S]) AllowedMoves() []string { return h.game.AllowedMoves() }

func (h *hosted[S]) View(viewer string) any { return h.view(h.game.State(), viewer) }

func (h *hosted[S]) Checksum() (string, error) {
	return Checksum(h.View(OmniscientViewer))
}

func (h *hosted[S]) Outcome() (flow.Outcome, bool) { return h.game.Outcome() }

func (h *hosted[S]) Err() error { return h.game.Err() }

func (h *hosted[S]) Events() *rules.EventBus { return h.game.Events() }
