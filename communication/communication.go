package communication

import (
	"context"
	"fmt"
)

// NoTarget is the target id of an attack command whose target could not be
// resolved.
const NoTarget = -1

// UnitView is one live unit as reported by the hosting environment.
type UnitView struct {
	ID   int    `json:"id"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Type string `json:"type"` // meta.FOOTMAN or meta.ARCHER
	HP   int    `json:"hp,omitempty"`
}

// Snapshot is the environment state at the start of a turn.
type Snapshot struct {
	Turn   int        `json:"turn"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Units  []UnitView `json:"units"`
}

type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	West  Direction = "west"
	East  Direction = "east"
)

// Delta returns the coordinate change of one step; north decreases y.
func (d Direction) Delta() (dx, dy int, err error) {
	switch d {
	case North:
		return 0, -1, nil
	case South:
		return 0, 1, nil
	case West:
		return -1, 0, nil
	case East:
		return 1, 0, nil
	}
	return 0, 0, fmt.Errorf("unknown direction %q", string(d))
}

type CommandKind string

const (
	PrimitiveMove  CommandKind = "move"
	CompoundAttack CommandKind = "attack"
)

// Command is the instruction submitted for one unit.
type Command struct {
	UnitID    int         `json:"unitId"`
	Kind      CommandKind `json:"kind"`
	Direction Direction   `json:"direction,omitempty"`
	TargetID  int         `json:"targetId,omitempty"`
}

func Move(unitID int, direction Direction) Command {
	return Command{UnitID: unitID, Kind: PrimitiveMove, Direction: direction}
}

func AttackOn(unitID, targetID int) Command {
	return Command{UnitID: unitID, Kind: CompoundAttack, TargetID: targetID}
}

// Environment abstracts the hosting simulation.
type Environment interface {
	Snapshot(ctx context.Context) (Snapshot, error)
	Submit(ctx context.Context, commands map[int]Command) error
}
