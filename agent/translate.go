package agent

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"skirmish/communication"
	"skirmish/game"
)

var ErrNoTarget = errors.New("attack has no adjacent target")

// Policy decides what happens to an Attack whose unit has no adjacent enemy.
// The search grants Attack by Manhattan range, while targets are resolved by
// adjacency, so the two can disagree.
type Policy int

const (
	// DowngradeNoTarget leaves the unit without a command for the turn.
	DowngradeNoTarget Policy = iota
	// RejectNoTarget fails the whole translation.
	RejectNoTarget
)

func (p Policy) String() string {
	switch p {
	case DowngradeNoTarget:
		return "downgrade"
	case RejectNoTarget:
		return "reject"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// TargetFor returns the id of the first opposing unit adjacent (Chebyshev
// distance 1) to the given controlled unit, or communication.NoTarget.
func TargetFor(state *game.State, unitID int) int {
	unit, ok := state.Unit(unitID)
	if !ok {
		return communication.NoTarget
	}
	for _, enemy := range state.Opposing() {
		if game.Chebyshev(unit.Position(), enemy.Position()) == 1 {
			return enemy.ID()
		}
	}
	return communication.NoTarget
}

// Translate turns the controlled side's joint action into environment commands.
func Translate(state *game.State, action game.JointAction, policy Policy) (map[int]communication.Command, error) {
	commands := make(map[int]communication.Command, len(action))
	for _, id := range action.IDs() {
		a := action[id]
		if a.IsMove() {
			commands[id] = communication.Move(id, direction(a))
			continue
		}

		target := TargetFor(state, id)
		if target != communication.NoTarget {
			commands[id] = communication.AttackOn(id, target)
			continue
		}
		switch policy {
		case RejectNoTarget:
			return nil, fmt.Errorf("%w: unit %d", ErrNoTarget, id)
		default:
			log.Warn().Msgf("Unit %d chose to attack without an adjacent target, skipping its command", id)
		}
	}
	return commands, nil
}

func direction(a game.Action) communication.Direction {
	switch a {
	case game.MoveUp:
		return communication.North
	case game.MoveDown:
		return communication.South
	case game.MoveLeft:
		return communication.West
	case game.MoveRight:
		return communication.East
	}
	panic(fmt.Sprintf("no direction for action %s", a))
}
