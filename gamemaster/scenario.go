package gamemaster

import (
	"fmt"
	"sort"

	"skirmish/communication"
	"skirmish/meta"
)

type layout func(width, height int) []communication.UnitView

// Scenarios are the starting layouts of local matches, keyed by name.
// Footmen start in the left corners, archers towards the right edge.
var scenarios = map[string]layout{
	"1v1": func(w, h int) []communication.UnitView {
		return []communication.UnitView{
			{ID: 1, X: 0, Y: 0, Type: meta.FOOTMAN},
			{ID: 3, X: w - 1, Y: h / 2, Type: meta.ARCHER},
		}
	},
	"2v1": func(w, h int) []communication.UnitView {
		return []communication.UnitView{
			{ID: 1, X: 0, Y: 0, Type: meta.FOOTMAN},
			{ID: 2, X: 0, Y: h - 1, Type: meta.FOOTMAN},
			{ID: 3, X: w - 1, Y: h / 2, Type: meta.ARCHER},
		}
	},
	"2v2": func(w, h int) []communication.UnitView {
		return []communication.UnitView{
			{ID: 1, X: 0, Y: 0, Type: meta.FOOTMAN},
			{ID: 2, X: 0, Y: h - 1, Type: meta.FOOTMAN},
			{ID: 3, X: w - 1, Y: h / 3, Type: meta.ARCHER},
			{ID: 4, X: w - 1, Y: 2 * h / 3, Type: meta.ARCHER},
		}
	},
}

// ScenarioNames lists the known scenarios in sorted order.
func ScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewScenario builds a Local environment for a named layout.
func NewScenario(name string, width, height int) (*Local, error) {
	build, ok := scenarios[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown scenario %q", ErrInvalidSetup, name)
	}
	if width < 2 || height < 3 {
		return nil, fmt.Errorf("%w: scenario %q needs at least a 2x3 board", ErrInvalidSetup, name)
	}
	return NewLocal(width, height, build(width, height))
}
