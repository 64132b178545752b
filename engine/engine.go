package engine

import (
	"golang.org/x/exp/rand"

	"skirmish/communication"
	"skirmish/game"
	"skirmish/meta"
)

// Opponent plays the archer side of a local match.
type Opponent interface {
	Commands(snapshot communication.Snapshot) map[int]communication.Command
}

// RandomOpponent picks a uniformly random legal command for every archer.
type RandomOpponent struct {
	rng *rand.Rand
}

func NewRandomOpponent(seed uint64) *RandomOpponent {
	return &RandomOpponent{rng: rand.New(rand.NewSource(seed))}
}

func (o *RandomOpponent) Commands(snapshot communication.Snapshot) map[int]communication.Command {
	occupied := map[game.Position]bool{}
	hp := map[int]int{}
	for _, u := range snapshot.Units {
		occupied[game.Position{X: u.X, Y: u.Y}] = true
		hp[u.ID] = u.HP
	}

	// Units act in snapshot order, which the environment applies in id order
	commands := map[int]communication.Command{}
	for _, u := range snapshot.Units {
		if u.Type != meta.ARCHER {
			continue
		}
		from := game.Position{X: u.X, Y: u.Y}

		var options []communication.Command
		for _, d := range []communication.Direction{communication.North, communication.South, communication.West, communication.East} {
			dx, dy, _ := d.Delta()
			to := game.Position{X: u.X + dx, Y: u.Y + dy}
			if to.X < 0 || to.X >= snapshot.Width || to.Y < 0 || to.Y >= snapshot.Height || occupied[to] {
				continue
			}
			options = append(options, communication.Move(u.ID, d))
		}
		for _, target := range snapshot.Units {
			if target.Type != meta.FOOTMAN || hp[target.ID] <= 0 {
				continue
			}
			if game.Chebyshev(from, game.Position{X: target.X, Y: target.Y}) <= meta.ARCHER_RANGE {
				options = append(options, communication.AttackOn(u.ID, target.ID))
			}
		}
		if len(options) == 0 {
			continue
		}

		command := options[o.rng.Intn(len(options))]
		switch command.Kind {
		case communication.PrimitiveMove:
			dx, dy, _ := command.Direction.Delta()
			delete(occupied, from)
			occupied[game.Position{X: u.X + dx, Y: u.Y + dy}] = true
		case communication.CompoundAttack:
			hp[command.TargetID] -= meta.ARCHER_DAMAGE
		}
		commands[u.ID] = command
	}
	return commands
}
