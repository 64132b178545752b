// meta/meta.go
package meta

// MELEE_RANGE is the attack range assumed for the controlled side during search.
const MELEE_RANGE = 1

// RANGED_RANGE is the attack range assumed for the opposing side during search.
const RANGED_RANGE = 12

// MAX_UNITS is the largest team size the search supports.
const MAX_UNITS = 2

// MAX_TURNS caps a locally simulated match.
const MAX_TURNS = 300

// Role labels reported by the hosting environment.
const (
	FOOTMAN = "Footman"
	ARCHER  = "Archer"
)

// Unit templates of the local environment.
const (
	FOOTMAN_HP     = 160
	FOOTMAN_DAMAGE = 12
	FOOTMAN_RANGE  = 1

	ARCHER_HP     = 50
	ARCHER_DAMAGE = 6
	ARCHER_RANGE  = 8
)
