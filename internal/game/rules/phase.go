package rules

import (
	"errors"
	"fmt"
	"strings"
)

// Phase identifies a game phase. Engines declare their canonical phases as
// constants; card modules may add their own.
type Phase string

func (p Phase) String() string {
	if p == "" {
		return "NONE"
	}
	return string(p)
}

// ErrInvalidPhaseStack reports a malformed phase stack. It is a programming
// error in a phase's push/pop discipline and aborts the game.
var ErrInvalidPhaseStack = errors.New("invalid phase stack")

// CommandKind is the kind of a phase transition request.
type CommandKind int

const (
	// CommandPush nests a phase on top of the stack.
	CommandPush CommandKind = iota
	// CommandPop removes the top phase.
	CommandPop
	// CommandReset replaces the whole stack with a single phase.
	CommandReset
)

var commandNames = map[CommandKind]string{
	CommandPush:  "PUSH",
	CommandPop:   "POP",
	CommandReset: "RESET",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return fmt.Sprintf("COMMAND_%d", int(k))
}

// Command is a requested phase stack transition. Effects record commands
// instead of mutating the stack.
type Command struct {
	Kind  CommandKind
	Phase Phase
}

// Push requests p be nested on top of the stack.
func Push(p Phase) Command { return Command{Kind: CommandPush, Phase: p} }

// Pop requests the top phase be removed.
func Pop() Command { return Command{Kind: CommandPop} }

// Reset requests the stack be replaced by p alone.
func Reset(p Phase) Command { return Command{Kind: CommandReset, Phase: p} }

func (c Command) String() string {
	if c.Kind == CommandPop {
		return c.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", c.Kind, c.Phase)
}

// PhaseStack is an ordered, never-empty sequence of nested phases. The last
// element is the top phase and is authoritative for legal moves.
type PhaseStack struct {
	phases []Phase
}

// NewPhaseStack creates a stack holding only base.
func NewPhaseStack(base Phase) PhaseStack {
	return PhaseStack{phases: []Phase{base}}
}

// Top returns the authoritative phase.
func (s PhaseStack) Top() Phase {
	if len(s.phases) == 0 {
		return ""
	}
	return s.phases[len(s.phases)-1]
}

// Len returns the stack depth.
func (s PhaseStack) Len() int {
	return len(s.phases)
}

// List returns a copy of the stack, bottom first.
func (s PhaseStack) List() []Phase {
	out := make([]Phase, len(s.phases))
	copy(out, s.phases)
	return out
}

// Clone returns an independent copy.
func (s PhaseStack) Clone() PhaseStack {
	return PhaseStack{phases: s.List()}
}

// Apply is the single transition function for the stack.
func (s *PhaseStack) Apply(cmd Command) error {
	switch cmd.Kind {
	case CommandPush:
		if cmd.Phase == "" {
			return fmt.Errorf("%w: push of empty phase", ErrInvalidPhaseStack)
		}
		s.phases = append(s.phases, cmd.Phase)
	case CommandPop:
		if len(s.phases) <= 1 {
			return fmt.Errorf("%w: pop would empty the stack", ErrInvalidPhaseStack)
		}
		s.phases = s.phases[:len(s.phases)-1]
	case CommandReset:
		if cmd.Phase == "" {
			return fmt.Errorf("%w: reset to empty phase", ErrInvalidPhaseStack)
		}
		s.phases = []Phase{cmd.Phase}
	default:
		return fmt.Errorf("%w: unknown command %s", ErrInvalidPhaseStack, cmd.Kind)
	}
	return nil
}

// ApplyAll applies commands in order and stops at the first failure.
func (s *PhaseStack) ApplyAll(cmds []Command) error {
	for _, cmd := range cmds {
		if err := s.Apply(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Expect checks that the stack holds exactly one phase and that it is one of
// allowed.
func (s PhaseStack) Expect(allowed ...Phase) error {
	if len(s.phases) != 1 {
		return fmt.Errorf("%w: expected a single phase, got [%s]", ErrInvalidPhaseStack, s)
	}
	for _, p := range allowed {
		if s.phases[0] == p {
			return nil
		}
	}
	return fmt.Errorf("%w: unexpected base phase %s", ErrInvalidPhaseStack, s.phases[0])
}

func (s PhaseStack) String() string {
	names := make([]string, len(s.phases))
	for i, p := range s.phases {
		names[i] = p.String()
	}
	return strings.Join(names, ",")
}
