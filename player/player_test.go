package player

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"skirmish/agent"
	"skirmish/communication"
	"skirmish/meta"
)

type mockEnvironment struct {
	snapshot  communication.Snapshot
	submitted []map[int]communication.Command
	err       error
}

func (m *mockEnvironment) Snapshot(ctx context.Context) (communication.Snapshot, error) {
	return m.snapshot, nil
}

func (m *mockEnvironment) Submit(ctx context.Context, commands map[int]communication.Command) error {
	if m.err != nil {
		return m.err
	}
	m.submitted = append(m.submitted, commands)
	m.snapshot.Turn++
	return nil
}

type mockAgent struct {
	idleFrom int // Turn from which the agent idles
}

func (m mockAgent) FindMove(snapshot communication.Snapshot) (agent.Decision, error) {
	if snapshot.Turn >= m.idleFrom {
		return agent.Decision{Commands: map[int]communication.Command{}, Idle: true}, nil
	}
	return agent.Decision{Commands: map[int]communication.Command{
		1: communication.Move(1, communication.East),
	}}, nil
}

func TestStep(t *testing.T) {
	t.Run("submitting the agent's commands", func(t *testing.T) {
		env := &mockEnvironment{}
		c := NewController(env, mockAgent{idleFrom: 10})

		decision, err := c.Step(context.Background())
		require.NoError(t, err)
		require.False(t, decision.Idle)
		require.Len(t, env.submitted, 1)
		require.Equal(t, communication.Move(1, communication.East), env.submitted[0][1])
	})

	t.Run("submitting nothing when idle", func(t *testing.T) {
		env := &mockEnvironment{}
		c := NewController(env, mockAgent{idleFrom: 0})

		decision, err := c.Step(context.Background())
		require.NoError(t, err)
		require.True(t, decision.Idle)
		require.Empty(t, env.submitted)
	})

	t.Run("wrapping environment errors", func(t *testing.T) {
		rejected := errors.New("rejected")
		c := NewController(&mockEnvironment{err: rejected}, mockAgent{idleFrom: 10})

		_, err := c.Step(context.Background())
		require.ErrorIs(t, err, rejected)
	})
}

func TestPlay(t *testing.T) {
	t.Run("stopping once the agent idles", func(t *testing.T) {
		env := &mockEnvironment{}
		decisions, err := NewController(env, mockAgent{idleFrom: 3}).Play(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, decisions, 4)
		require.Len(t, env.submitted, 3)
	})

	t.Run("stopping at the turn limit", func(t *testing.T) {
		env := &mockEnvironment{}
		decisions, err := NewController(env, mockAgent{idleFrom: 100}).Play(context.Background(), 5)
		require.NoError(t, err)
		require.Len(t, decisions, 5)
	})

	t.Run("stopping on a cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewController(&mockEnvironment{}, mockAgent{idleFrom: 100}).Play(ctx, 5)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("driving a real agent", func(t *testing.T) {
		a, err := agent.NewAlphaBeta(2)
		require.NoError(t, err)
		env := &mockEnvironment{snapshot: communication.Snapshot{
			Width:  3,
			Height: 3,
			Units: []communication.UnitView{
				{ID: 1, X: 0, Y: 0, Type: meta.FOOTMAN},
				{ID: 3, X: 2, Y: 2, Type: meta.ARCHER},
			},
		}}

		decision, err := NewController(env, a).Step(context.Background())
		require.NoError(t, err)
		require.Len(t, decision.Commands, 1)
		require.Equal(t, 1, decision.Commands[1].UnitID)
	})
}
