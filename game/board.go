package game

import "skirmish/meta"

// Board holds the static parameters shared by every state of a search.
// It is never modified once the root state is built.
type Board struct {
	Width       int // valid x coordinates are 0..Width-1
	Height      int // valid y coordinates are 0..Height-1
	MeleeRange  int // attack range of the controlled (maximizing) side
	RangedRange int // attack range of the opposing (minimizing) side
}

// NewBoard returns a board with the default attack ranges.
func NewBoard(width, height int) *Board {
	return &Board{
		Width:       width,
		Height:      height,
		MeleeRange:  meta.MELEE_RANGE,
		RangedRange: meta.RANGED_RANGE,
	}
}

func (b *Board) Contains(p Position) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// AttackRange is selected by which side is moving, not by the unit's type.
func (b *Board) AttackRange(maximizing bool) int {
	if maximizing {
		return b.MeleeRange
	}
	return b.RangedRange
}
