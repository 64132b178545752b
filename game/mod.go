package game

import (
	"fmt"
	"sort"
	"strings"
)

// Action is the decision taken by a single unit for one ply.
type Action uint8

const (
	MoveUp Action = iota
	MoveDown
	MoveLeft
	MoveRight
	Attack
)

// Actions lists every action in enumeration order.
var Actions = []Action{MoveUp, MoveDown, MoveLeft, MoveRight, Attack}

func (a Action) String() string {
	switch a {
	case MoveUp:
		return "MoveUp"
	case MoveDown:
		return "MoveDown"
	case MoveLeft:
		return "MoveLeft"
	case MoveRight:
		return "MoveRight"
	case Attack:
		return "Attack"
	default:
		panic(fmt.Sprintf("unknown action %d", uint8(a)))
	}
}

// Delta returns the coordinate change the action applies to its unit.
// Up decreases y, matching the hosting environment's north.
func (a Action) Delta() (dx, dy int) {
	switch a {
	case MoveUp:
		return 0, -1
	case MoveDown:
		return 0, 1
	case MoveLeft:
		return -1, 0
	case MoveRight:
		return 1, 0
	case Attack:
		return 0, 0
	default:
		panic(fmt.Sprintf("unknown action %d", uint8(a)))
	}
}

func (a Action) IsMove() bool {
	dx, dy := a.Delta()
	return dx != 0 || dy != 0
}

// JointAction assigns one action to every unit of the side moving this ply.
type JointAction map[int]Action

// IDs returns the unit ids of the joint action in ascending order.
func (ja JointAction) IDs() []int {
	ids := make([]int, 0, len(ja))
	for id := range ja {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (ja JointAction) Copy() JointAction {
	if ja == nil {
		return nil
	}
	out := make(JointAction, len(ja))
	for id, a := range ja {
		out[id] = a
	}
	return out
}

func (ja JointAction) String() string {
	parts := make([]string, 0, len(ja))
	for _, id := range ja.IDs() {
		parts = append(parts, fmt.Sprintf("%d:%s", id, ja[id]))
	}
	return strings.Join(parts, " ")
}
