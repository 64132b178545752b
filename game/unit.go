package game

import "fmt"

// Position is a grid cell. It is a value type: callers always receive copies.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Unit is one mobile unit with a fixed identity. Its position only changes
// through State.Apply on the state that owns it.
type Unit struct {
	id  int
	pos Position
}

func NewUnit(id, x, y int) Unit {
	return Unit{id: id, pos: Position{X: x, Y: y}}
}

func (u Unit) ID() int { return u.id }

func (u Unit) Position() Position { return u.pos }

func (u Unit) X() int { return u.pos.X }

func (u Unit) Y() int { return u.pos.Y }

func (u *Unit) step(dx, dy int) {
	u.pos.X += dx
	u.pos.Y += dy
}

func (u Unit) String() string {
	return fmt.Sprintf("%d%s", u.id, u.pos)
}

// Manhattan returns the sum of absolute coordinate differences.
func Manhattan(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Chebyshev returns the maximum of absolute coordinate differences.
func Chebyshev(a, b Position) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
