package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"skirmish/searcher"
)

func TestCollector(t *testing.T) {
	t.Run("labelling the game with its ply limit", func(t *testing.T) {
		c := NewCollector()
		c.Start("2v1", 3)
		c.AddTurn(TurnMetric{Turn: 1, SearchMetric: searcher.SearchMetric{PlyLimit: 3}})

		game, turns := c.Complete("Footman", 1)
		require.Equal(t, 3, game.PlyLimit)
		require.Equal(t, "2v1", game.Scenario)
		require.NotEmpty(t, game.ID)
		require.Len(t, turns, 1)
	})

	t.Run("taking the ply limit from the turns when unlabelled", func(t *testing.T) {
		c := NewCollector()
		c.Start("2v1", 0)
		c.AddTurn(TurnMetric{Turn: 1, Forfeit: true})
		c.AddTurn(TurnMetric{Turn: 2, SearchMetric: searcher.SearchMetric{PlyLimit: 5}})

		game, _ := c.Complete("", 2)
		require.Equal(t, 5, game.PlyLimit, "Should use the first turn that reports a ply limit")
	})

	t.Run("starting fresh for every game", func(t *testing.T) {
		c := NewCollector()
		c.Start("1v1", 1)
		c.AddTurn(TurnMetric{Turn: 1})
		first, _ := c.Complete("", 1)

		c.Start("1v1", 1)
		second, turns := c.Complete("", 0)
		require.NotEqual(t, first.ID, second.ID)
		require.Empty(t, turns)
	})
}
