package game

// UnitActions lists the legal actions of unit given up to two enemies, in the
// order Up, Down, Left, Right, Attack. Pass the same enemy twice when the
// opposing side has a single unit.
//
// A move is legal when its destination is on the board and is not the cell an
// enemy currently holds. Attack is legal when an enemy is within attackRange
// Manhattan distance.
func UnitActions(board *Board, unit, enemy1, enemy2 Unit, attackRange int) []Action {
	twoEnemies := enemy1.id != enemy2.id
	actions := make([]Action, 0, len(Actions))
	for _, a := range Actions {
		if !a.IsMove() {
			continue
		}
		dx, dy := a.Delta()
		dest := Position{X: unit.pos.X + dx, Y: unit.pos.Y + dy}
		if !board.Contains(dest) || dest == enemy1.pos || (twoEnemies && dest == enemy2.pos) {
			continue
		}
		actions = append(actions, a)
	}
	if Manhattan(unit.pos, enemy1.pos) <= attackRange ||
		(twoEnemies && Manhattan(unit.pos, enemy2.pos) <= attackRange) {
		actions = append(actions, Attack)
	}
	return actions
}

// JointActions returns every joint action available to the moving side. With
// two units the result is the full cross product of both units' actions, the
// second unit's actions forming the outer loop.
func JointActions(s *State, maximizing bool) []JointAction {
	if s.IsTerminal() {
		return nil
	}
	units, enemies := s.opposing, s.controlled
	if maximizing {
		units, enemies = s.controlled, s.opposing
	}
	e1, e2 := enemies[0], enemies[len(enemies)-1]
	attackRange := s.board.AttackRange(maximizing)

	u1 := units[0]
	u1Actions := UnitActions(s.board, u1, e1, e2, attackRange)
	if len(units) == 1 {
		result := make([]JointAction, 0, len(u1Actions))
		for _, a := range u1Actions {
			result = append(result, JointAction{u1.id: a})
		}
		return result
	}

	u2 := units[1]
	u2Actions := UnitActions(s.board, u2, e1, e2, attackRange)
	result := make([]JointAction, 0, len(u1Actions)*len(u2Actions))
	for _, a2 := range u2Actions {
		for _, a1 := range u1Actions {
			result = append(result, JointAction{u1.id: a1, u2.id: a2})
		}
	}
	return result
}
