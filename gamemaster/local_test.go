package gamemaster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"skirmish/communication"
	"skirmish/meta"
)

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	l, err := NewLocal(4, 4, []communication.UnitView{
		{ID: 1, X: 0, Y: 0, Type: meta.FOOTMAN},
		{ID: 2, X: 1, Y: 1, Type: meta.FOOTMAN},
		{ID: 3, X: 1, Y: 0, Type: meta.ARCHER, HP: 10},
	})
	require.NoError(t, err)
	return l
}

func TestNewLocal(t *testing.T) {
	t.Run("filling in template hit points", func(t *testing.T) {
		snapshot, err := newTestLocal(t).Snapshot(context.Background())
		require.NoError(t, err)

		require.Equal(t, 4, snapshot.Width)
		require.Equal(t, meta.FOOTMAN_HP, snapshot.Units[0].HP)
		require.Equal(t, 10, snapshot.Units[2].HP, "Explicit hit points should be kept")
	})

	t.Run("rejecting stacked units", func(t *testing.T) {
		_, err := NewLocal(4, 4, []communication.UnitView{
			{ID: 1, X: 0, Y: 0, Type: meta.FOOTMAN},
			{ID: 3, X: 0, Y: 0, Type: meta.ARCHER},
		})
		require.ErrorIs(t, err, ErrInvalidSetup)
	})

	t.Run("rejecting unknown unit types", func(t *testing.T) {
		_, err := NewLocal(4, 4, []communication.UnitView{{ID: 1, Type: "Peasant"}})
		require.ErrorIs(t, err, ErrInvalidSetup)
	})
}

func TestLocalSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("moving a unit onto a free cell", func(t *testing.T) {
		l := newTestLocal(t)
		err := l.Submit(ctx, map[int]communication.Command{2: communication.Move(2, communication.South)})
		require.NoError(t, err)

		snapshot, _ := l.Snapshot(ctx)
		require.Equal(t, communication.UnitView{ID: 2, X: 1, Y: 2, Type: meta.FOOTMAN, HP: meta.FOOTMAN_HP}, snapshot.Units[1])
		require.Equal(t, 1, snapshot.Turn)
	})

	t.Run("rejecting moves off the board or onto units atomically", func(t *testing.T) {
		l := newTestLocal(t)

		err := l.Submit(ctx, map[int]communication.Command{
			1: communication.Move(1, communication.South),
			2: communication.Move(2, communication.North),
		})
		require.ErrorIs(t, err, ErrIllegalCommand, "Unit 2 would step onto the archer")
		snapshot, _ := l.Snapshot(ctx)
		require.Equal(t, 0, snapshot.Units[0].Y, "Unit 1's legal move should be rolled back")

		err = l.Submit(ctx, map[int]communication.Command{1: communication.Move(1, communication.West)})
		require.ErrorIs(t, err, ErrIllegalCommand)
	})

	t.Run("resolving attacks and removing dead units", func(t *testing.T) {
		l := newTestLocal(t)

		err := l.Submit(ctx, map[int]communication.Command{1: communication.AttackOn(1, 3)})
		require.NoError(t, err)
		require.True(t, l.Over(), "Archer with 10 HP should fall to one footman strike")
		require.Equal(t, meta.FOOTMAN, l.Winner())

		err = l.Submit(ctx, map[int]communication.Command{1: communication.Move(1, communication.East)})
		require.ErrorIs(t, err, ErrGameOver)
	})

	t.Run("rejecting attacks on missing or friendly targets", func(t *testing.T) {
		l := newTestLocal(t)

		err := l.Submit(ctx, map[int]communication.Command{1: communication.AttackOn(1, communication.NoTarget)})
		require.ErrorIs(t, err, ErrIllegalCommand)
		err = l.Submit(ctx, map[int]communication.Command{1: communication.AttackOn(1, 2)})
		require.ErrorIs(t, err, ErrIllegalCommand)
	})
}

func TestNewScenario(t *testing.T) {
	for _, name := range ScenarioNames() {
		t.Run(name, func(t *testing.T) {
			l, err := NewScenario(name, 8, 8)
			require.NoError(t, err)
			require.False(t, l.Over())
		})
	}

	_, err := NewScenario("9v9", 8, 8)
	require.ErrorIs(t, err, ErrInvalidSetup)
}

func TestLocalOverkill(t *testing.T) {
	l, err := NewLocal(3, 3, []communication.UnitView{
		{ID: 1, X: 0, Y: 0, Type: meta.FOOTMAN},
		{ID: 2, X: 2, Y: 2, Type: meta.FOOTMAN},
		{ID: 3, X: 1, Y: 1, Type: meta.ARCHER, HP: 5},
	})
	require.NoError(t, err)

	err = l.Submit(context.Background(), map[int]communication.Command{
		1: communication.AttackOn(1, 3),
		2: communication.AttackOn(2, 3),
	})
	require.NoError(t, err, "Attacking a unit killed earlier in the turn should be a no-op")
	require.Equal(t, meta.FOOTMAN, l.Winner())
}
