package gamemaster

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"skirmish/communication"
	"skirmish/game"
	"skirmish/meta"
)

var (
	ErrIllegalCommand = errors.New("illegal command")
	ErrGameOver       = errors.New("game is over")
	ErrInvalidSetup   = errors.New("invalid setup")
)

type template struct {
	hp     int
	damage int
	reach  int // Chebyshev attack range
}

var templates = map[string]template{
	meta.FOOTMAN: {hp: meta.FOOTMAN_HP, damage: meta.FOOTMAN_DAMAGE, reach: meta.FOOTMAN_RANGE},
	meta.ARCHER:  {hp: meta.ARCHER_HP, damage: meta.ARCHER_DAMAGE, reach: meta.ARCHER_RANGE},
}

type unit struct {
	id   int
	kind string
	pos  game.Position
	hp   int
}

// Local is an in-memory hosting environment. It validates every command and
// resolves attacks with fixed damage; units at zero hit points are removed.
// It is not safe for concurrent use.
type Local struct {
	width  int
	height int
	units  []*unit // Ordered by id
	turn   int
}

// NewLocal places units on a width x height board. Hit points of zero in the
// views are replaced by the unit template's maximum.
func NewLocal(width, height int, views []communication.UnitView) (*Local, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: board %dx%d", ErrInvalidSetup, width, height)
	}
	l := &Local{width: width, height: height}
	seen := map[int]bool{}
	for _, v := range views {
		tmpl, ok := templates[v.Type]
		if !ok {
			return nil, fmt.Errorf("%w: unit %d has unknown type %q", ErrInvalidSetup, v.ID, v.Type)
		}
		if seen[v.ID] {
			return nil, fmt.Errorf("%w: duplicate unit id %d", ErrInvalidSetup, v.ID)
		}
		seen[v.ID] = true
		pos := game.Position{X: v.X, Y: v.Y}
		if !l.contains(pos) || l.occupant(pos) != nil {
			return nil, fmt.Errorf("%w: unit %d cannot be placed at %s", ErrInvalidSetup, v.ID, pos)
		}
		hp := v.HP
		if hp <= 0 {
			hp = tmpl.hp
		}
		l.units = append(l.units, &unit{id: v.ID, kind: v.Type, pos: pos, hp: hp})
	}
	sort.Slice(l.units, func(i, j int) bool { return l.units[i].id < l.units[j].id })
	return l, nil
}

func (l *Local) Snapshot(ctx context.Context) (communication.Snapshot, error) {
	views := make([]communication.UnitView, 0, len(l.units))
	for _, u := range l.units {
		views = append(views, communication.UnitView{ID: u.id, X: u.pos.X, Y: u.pos.Y, Type: u.kind, HP: u.hp})
	}
	return communication.Snapshot{Turn: l.turn, Width: l.width, Height: l.height, Units: views}, nil
}

// Submit applies commands in ascending unit id order. Either every command is
// applied or, on the first illegal one, none is.
func (l *Local) Submit(ctx context.Context, commands map[int]communication.Command) error {
	if l.Over() {
		return ErrGameOver
	}
	next := l.clone()
	ids := make([]int, 0, len(commands))
	for id := range commands {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if err := next.apply(id, commands[id]); err != nil {
			return err
		}
	}
	next.removeDead()
	next.turn++
	*l = *next
	return nil
}

func (l *Local) apply(id int, command communication.Command) error {
	if command.UnitID != id {
		return fmt.Errorf("%w: command for unit %d filed under %d", ErrIllegalCommand, command.UnitID, id)
	}
	actor := l.find(id)
	if actor == nil || actor.hp <= 0 {
		return fmt.Errorf("%w: unit %d is not alive", ErrIllegalCommand, id)
	}

	switch command.Kind {
	case communication.PrimitiveMove:
		dx, dy, err := command.Direction.Delta()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrIllegalCommand, err)
		}
		dest := game.Position{X: actor.pos.X + dx, Y: actor.pos.Y + dy}
		if !l.contains(dest) {
			return fmt.Errorf("%w: unit %d cannot leave the board to %s", ErrIllegalCommand, id, dest)
		}
		if other := l.occupant(dest); other != nil {
			return fmt.Errorf("%w: unit %d cannot move onto unit %d at %s", ErrIllegalCommand, id, other.id, dest)
		}
		actor.pos = dest
	case communication.CompoundAttack:
		target := l.find(command.TargetID)
		if target == nil {
			return fmt.Errorf("%w: unit %d attacks missing unit %d", ErrIllegalCommand, id, command.TargetID)
		}
		if target.hp <= 0 {
			// Killed earlier this turn
			return nil
		}
		if target.kind == actor.kind {
			return fmt.Errorf("%w: unit %d attacks its own side", ErrIllegalCommand, id)
		}
		tmpl := templates[actor.kind]
		if game.Chebyshev(actor.pos, target.pos) > tmpl.reach {
			return fmt.Errorf("%w: unit %d is out of range of unit %d", ErrIllegalCommand, id, target.id)
		}
		target.hp -= tmpl.damage
	default:
		return fmt.Errorf("%w: unknown command kind %q", ErrIllegalCommand, command.Kind)
	}
	return nil
}

// Over reports whether either side has been eliminated.
func (l *Local) Over() bool {
	return l.Winner() != ""
}

// Winner returns the surviving role once the other side is eliminated.
func (l *Local) Winner() string {
	footmen, archers := l.count(meta.FOOTMAN), l.count(meta.ARCHER)
	switch {
	case footmen > 0 && archers == 0:
		return meta.FOOTMAN
	case archers > 0 && footmen == 0:
		return meta.ARCHER
	}
	return ""
}

func (l *Local) Turn() int { return l.turn }

func (l *Local) count(kind string) int {
	n := 0
	for _, u := range l.units {
		if u.kind == kind {
			n++
		}
	}
	return n
}

func (l *Local) contains(p game.Position) bool {
	return p.X >= 0 && p.X < l.width && p.Y >= 0 && p.Y < l.height
}

func (l *Local) occupant(p game.Position) *unit {
	for _, u := range l.units {
		if u.hp > 0 && u.pos == p {
			return u
		}
	}
	return nil
}

func (l *Local) find(id int) *unit {
	for _, u := range l.units {
		if u.id == id {
			return u
		}
	}
	return nil
}

func (l *Local) removeDead() {
	alive := l.units[:0]
	for _, u := range l.units {
		if u.hp > 0 {
			alive = append(alive, u)
		}
	}
	l.units = alive
}

func (l *Local) clone() *Local {
	out := &Local{width: l.width, height: l.height, turn: l.turn}
	out.units = make([]*unit, len(l.units))
	for i, u := range l.units {
		c := *u
		out.units[i] = &c
	}
	return out
}
