package communication

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirectionDelta(t *testing.T) {
	for d, want := range map[Direction][2]int{
		North: {0, -1},
		South: {0, 1},
		West:  {-1, 0},
		East:  {1, 0},
	} {
		dx, dy, err := d.Delta()
		require.NoError(t, err)
		require.Equal(t, want, [2]int{dx, dy}, "Direction %s", d)
	}

	_, _, err := Direction("up").Delta()
	require.Error(t, err)
}

func TestCommandJSON(t *testing.T) {
	data, err := json.Marshal(AttackOn(1, NoTarget))
	require.NoError(t, err)
	require.JSONEq(t, `{"unitId":1,"kind":"attack","targetId":-1}`, string(data))

	data, err = json.Marshal(Move(2, West))
	require.NoError(t, err)
	require.JSONEq(t, `{"unitId":2,"kind":"move","direction":"west"}`, string(data))
}
