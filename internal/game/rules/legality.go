package rules

import (
	"errors"
	"fmt"
)

// ErrRejected marks a move that was not applied. The state returned with it
// is the unchanged input state.
var ErrRejected = errors.New("move rejected")

// Rejection explains why a move was not applied.
type Rejection struct {
	Move   string
	Reason string
}

func (r *Rejection) Error() string {
	if r.Move == "" {
		return fmt.Sprintf("move rejected: %s", r.Reason)
	}
	return fmt.Sprintf("move %s rejected: %s", r.Move, r.Reason)
}

// Is lets errors.Is match ErrRejected.
func (r *Rejection) Is(target error) bool {
	return target == ErrRejected
}

// Reject builds a rejection for move.
func Reject(move, format string, args ...any) error {
	return &Rejection{Move: move, Reason: fmt.Sprintf(format, args...)}
}

// IsRejected reports whether err is a move rejection.
func IsRejected(err error) bool {
	return errors.Is(err, ErrRejected)
}

// MoveSet is the allow-list of moves callable while a phase is active.
type MoveSet map[string]struct{}

// NewMoveSet builds an allow-list from names.
func NewMoveSet(names ...string) MoveSet {
	set := make(MoveSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Allows reports whether name is callable.
func (m MoveSet) Allows(name string) bool {
	_, ok := m[name]
	return ok
}
