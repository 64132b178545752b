package game

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"skirmish/meta"
)

// Scores of terminal states.
const (
	WonScore  = 0
	LostScore = math.MinInt + 1
)

var (
	ErrTeamTooLarge  = errors.New("team has more units than supported")
	ErrDuplicateUnit = errors.New("duplicate unit id on one side")
)

// State is a snapshot of both teams. The controlled side maximizes the
// evaluation, the opposing side minimizes it.
//
// A State is a value object: it is either built from a snapshot, a sentinel,
// or a copy of its parent with exactly one JointAction applied.
type State struct {
	board        *Board // Shared, read-only
	controlled   []Unit
	opposing     []Unit
	score        int
	scored       bool
	parentAction JointAction
}

// NewState builds a root state. Unit order is preserved: the first opposing
// unit is the evaluation target and the controlled units play the flanking
// roles in order.
func NewState(board *Board, controlled, opposing []Unit) (*State, error) {
	for _, side := range [][]Unit{controlled, opposing} {
		if len(side) > meta.MAX_UNITS {
			return nil, fmt.Errorf("%w: %d units", ErrTeamTooLarge, len(side))
		}
		if len(side) == 2 && side[0].id == side[1].id {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateUnit, side[0].id)
		}
	}
	return &State{
		board:      board,
		controlled: copyUnits(controlled),
		opposing:   copyUnits(opposing),
	}, nil
}

// Sentinel returns a unit-less state with a fixed score, used as -inf/+inf
// bounds at the search root.
func Sentinel(score int) *State {
	return &State{score: score, scored: true}
}

// Copy returns an independent deep copy without cached score or parent action.
func (s *State) Copy() *State {
	return &State{
		board:      s.board,
		controlled: copyUnits(s.controlled),
		opposing:   copyUnits(s.opposing),
	}
}

// Child copies the state and applies action for the given side.
func (s *State) Child(action JointAction, maximizing bool) *State {
	child := s.Copy()
	child.Apply(action, maximizing)
	return child
}

// Apply records action as the parent action and moves the units it names on
// the moving side. It must only be called once, on a fresh copy.
func (s *State) Apply(action JointAction, maximizing bool) {
	if s.parentAction != nil || s.scored {
		panic("apply called on a state that is already settled")
	}
	s.parentAction = action.Copy()
	units := s.opposing
	if maximizing {
		units = s.controlled
	}
	for i := range units {
		a, ok := action[units[i].id]
		if !ok {
			continue
		}
		dx, dy := a.Delta()
		units[i].step(dx, dy)
	}
}

// Eval returns the memoized pincer heuristic: the first controlled unit is
// rewarded for closing horizontally on the first opposing unit, the last
// controlled unit for closing vertically.
func (s *State) Eval() int {
	if s.scored {
		return s.score
	}
	s.scored = true
	switch {
	case len(s.controlled) == 0:
		// Lost: below every live state, still above the -inf sentinel
		s.score = LostScore
		return s.score
	case len(s.opposing) == 0:
		// Won: live states score strictly below zero
		s.score = WonScore
		return s.score
	}
	target := s.opposing[0].pos
	f1 := s.controlled[0].pos
	f2 := s.controlled[len(s.controlled)-1].pos
	dx1, dy1 := abs(target.X-f1.X), abs(target.Y-f1.Y)
	dx2, dy2 := abs(target.X-f2.X), abs(target.Y-f2.Y)
	s.score = -(10*dx1 + dy1 + dx2 + 10*dy2)
	return s.score
}

func (s *State) IsTerminal() bool {
	return len(s.controlled) == 0 || len(s.opposing) == 0
}

// Children expands one child per legal joint action of the moving side, in
// enumeration order.
func (s *State) Children(maximizing bool) []*State {
	actions := JointActions(s, maximizing)
	children := make([]*State, 0, len(actions))
	for _, action := range actions {
		children = append(children, s.Child(action, maximizing))
	}
	return children
}

// ParentAction returns the joint action that produced this state, or nil for
// snapshot and sentinel states.
func (s *State) ParentAction() JointAction {
	return s.parentAction.Copy()
}

func (s *State) Board() *Board { return s.board }

func (s *State) Controlled() []Unit { return copyUnits(s.controlled) }

func (s *State) Opposing() []Unit { return copyUnits(s.opposing) }

// Unit looks a unit up on either side.
func (s *State) Unit(id int) (Unit, bool) {
	for _, side := range [][]Unit{s.controlled, s.opposing} {
		for _, u := range side {
			if u.id == id {
				return u, true
			}
		}
	}
	return Unit{}, false
}

func (s *State) String() string {
	if s.parentAction != nil {
		return fmt.Sprintf("[%d|%s]", s.Eval(), s.parentAction)
	}
	if s.board == nil && s.scored {
		switch s.score {
		case math.MinInt:
			return "-inf"
		case math.MaxInt:
			return "+inf"
		}
		return fmt.Sprintf("[%d]", s.score)
	}
	var b strings.Builder
	b.WriteString("F[")
	for i, u := range s.controlled {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(u.String())
	}
	b.WriteString("] A[")
	for i, u := range s.opposing {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(u.String())
	}
	b.WriteString("]")
	return b.String()
}

func copyUnits(units []Unit) []Unit {
	out := make([]Unit, len(units))
	copy(out, units)
	return out
}
