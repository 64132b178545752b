package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T, board *Board, controlled, opposing []Unit) *State {
	t.Helper()
	s, err := NewState(board, controlled, opposing)
	require.NoError(t, err)
	return s
}

func TestNewState(t *testing.T) {
	board := NewBoard(5, 5)

	t.Run("rejecting more than two units on a side", func(t *testing.T) {
		_, err := NewState(board, []Unit{NewUnit(1, 0, 0), NewUnit(2, 0, 1), NewUnit(3, 0, 2)}, []Unit{NewUnit(9, 4, 4)})
		require.ErrorIs(t, err, ErrTeamTooLarge)
	})

	t.Run("rejecting duplicate ids on a side", func(t *testing.T) {
		_, err := NewState(board, []Unit{NewUnit(1, 0, 0), NewUnit(1, 0, 1)}, []Unit{NewUnit(9, 4, 4)})
		require.ErrorIs(t, err, ErrDuplicateUnit)
	})

	t.Run("copying the caller's units", func(t *testing.T) {
		controlled := []Unit{NewUnit(1, 0, 0)}
		s := newTestState(t, board, controlled, []Unit{NewUnit(9, 4, 4)})
		controlled[0].step(1, 1)

		require.Equal(t, Position{X: 0, Y: 0}, s.Controlled()[0].Position(), "State should not alias the caller's slice")
		require.Nil(t, s.ParentAction(), "Snapshot state should have no parent action")
	})
}

func TestStateEval(t *testing.T) {
	board := NewBoard(10, 10)

	t.Run("weighting the pincer distances", func(t *testing.T) {
		s := newTestState(t, board,
			[]Unit{NewUnit(1, 0, 0), NewUnit(2, 6, 7)},
			[]Unit{NewUnit(9, 3, 5)})

		// f1: dx=3 dy=5, f2: dx=3 dy=2
		require.Equal(t, -(10*3 + 5 + 3 + 10*2), s.Eval())
	})

	t.Run("using the single controlled unit for both roles", func(t *testing.T) {
		s := newTestState(t, board, []Unit{NewUnit(1, 1, 1)}, []Unit{NewUnit(9, 3, 2)})

		require.Equal(t, -(10*2 + 1 + 2 + 10*1), s.Eval())
	})

	t.Run("returning the same value on repeated reads", func(t *testing.T) {
		s := newTestState(t, board, []Unit{NewUnit(1, 1, 1)}, []Unit{NewUnit(9, 3, 2)})
		first := s.Eval()

		require.Equal(t, first, s.Eval(), "Eval should be idempotent")
		require.Equal(t, first, s.Copy().Eval(), "A fresh copy should evaluate identically")
	})

	t.Run("sentinels keep their fixed score", func(t *testing.T) {
		require.Equal(t, math.MinInt, Sentinel(math.MinInt).Eval())
		require.Equal(t, math.MaxInt, Sentinel(math.MaxInt).Eval())
		require.True(t, Sentinel(0).IsTerminal(), "Sentinel should carry no units")
	})
}

func TestStateIsTerminal(t *testing.T) {
	board := NewBoard(3, 3)

	t.Run("both sides populated", func(t *testing.T) {
		s := newTestState(t, board, []Unit{NewUnit(1, 0, 0)}, []Unit{NewUnit(9, 2, 2)})
		require.False(t, s.IsTerminal())
	})

	t.Run("opposing side empty", func(t *testing.T) {
		s := newTestState(t, board, []Unit{NewUnit(1, 0, 0)}, nil)
		require.True(t, s.IsTerminal())
	})

	t.Run("controlled side empty", func(t *testing.T) {
		s := newTestState(t, board, nil, []Unit{NewUnit(9, 2, 2)})
		require.True(t, s.IsTerminal())
	})
}

func TestStateEvalTerminal(t *testing.T) {
	board := NewBoard(3, 3)
	live := newTestState(t, board, []Unit{NewUnit(1, 0, 0)}, []Unit{NewUnit(9, 2, 2)})

	t.Run("scoring a lost position below every live state", func(t *testing.T) {
		lost := newTestState(t, board, nil, []Unit{NewUnit(9, 2, 2)})
		require.Equal(t, LostScore, lost.Eval())
		require.Less(t, lost.Eval(), live.Eval())
		require.Greater(t, lost.Eval(), Sentinel(math.MinInt).Eval(), "Lost states should still beat the -inf bound")
	})

	t.Run("scoring a won position above every live state", func(t *testing.T) {
		won := newTestState(t, board, []Unit{NewUnit(1, 0, 0)}, nil)
		require.Equal(t, WonScore, won.Eval())
		require.Greater(t, won.Eval(), live.Eval())
	})
}

func TestStateApply(t *testing.T) {
	board := NewBoard(5, 5)
	root := func(t *testing.T) *State {
		return newTestState(t, board,
			[]Unit{NewUnit(1, 2, 2), NewUnit(2, 1, 1)},
			[]Unit{NewUnit(9, 4, 4)})
	}

	t.Run("moving every named unit of the moving side", func(t *testing.T) {
		s := root(t)
		child := s.Child(JointAction{1: MoveUp, 2: MoveRight}, true)

		u1, _ := child.Unit(1)
		u2, _ := child.Unit(2)
		require.Equal(t, Position{X: 2, Y: 1}, u1.Position(), "MoveUp should decrease y")
		require.Equal(t, Position{X: 2, Y: 1}, u2.Position(), "MoveRight should increase x")
		require.Equal(t, JointAction{1: MoveUp, 2: MoveRight}, child.ParentAction())
	})

	t.Run("leaving position unchanged on attack", func(t *testing.T) {
		s := root(t)
		child := s.Child(JointAction{1: Attack, 2: MoveDown}, true)

		u1, _ := child.Unit(1)
		u2, _ := child.Unit(2)
		require.Equal(t, Position{X: 2, Y: 2}, u1.Position())
		require.Equal(t, Position{X: 1, Y: 2}, u2.Position())
	})

	t.Run("moving only the side named by maximizing", func(t *testing.T) {
		s := root(t)
		child := s.Child(JointAction{9: MoveLeft}, false)

		archer, _ := child.Unit(9)
		require.Equal(t, Position{X: 3, Y: 4}, archer.Position())
		require.Equal(t, s.Controlled(), child.Controlled(), "Controlled units should not move on the opponent's ply")
	})

	t.Run("never mutating the parent", func(t *testing.T) {
		s := root(t)
		before := s.Eval()
		child := s.Child(JointAction{1: MoveLeft, 2: MoveLeft}, true)

		require.Equal(t, before, s.Eval(), "Parent score should not change")
		require.Nil(t, s.ParentAction(), "Parent should keep no parent action")
		require.NotEqual(t, s.Controlled(), child.Controlled())
	})

	t.Run("panicking when applied twice", func(t *testing.T) {
		child := root(t).Child(JointAction{1: Attack, 2: Attack}, true)
		require.Panics(t, func() {
			child.Apply(JointAction{1: MoveUp}, true)
		})
	})
}

func TestActionString(t *testing.T) {
	require.Equal(t, "1:MoveUp 2:Attack", JointAction{2: Attack, 1: MoveUp}.String())
	require.Panics(t, func() { _ = Action(42).String() })
}
