package metrics

import (
	"time"

	"github.com/google/uuid"

	"skirmish/searcher"
)

type TurnMetric struct {
	Turn    int
	Idle    bool
	Forfeit bool // Commands were rejected by the environment
	Dropped int  // Attacks without an adjacent target
	searcher.SearchMetric
}

type GameMetric struct {
	ID         string
	Scenario   string
	PlyLimit   int
	Winner     string // meta.FOOTMAN, meta.ARCHER or empty on a draw
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalTurns int
}

type Collector interface {
	Start(scenario string, plyLimit int)
	AddTurn(metric TurnMetric)
	Complete(winner string, turns int) (GameMetric, []TurnMetric)
}

type collector struct {
	id        string
	scenario  string
	plyLimit  int
	startTime time.Time
	turns     []TurnMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(scenario string, plyLimit int) {
	m.id = uuid.NewString()
	m.scenario = scenario
	m.plyLimit = plyLimit
	m.startTime = time.Now()
	m.turns = nil
}

func (m *collector) AddTurn(metric TurnMetric) {
	m.turns = append(m.turns, metric)
}

// Complete closes the game. Without a ply limit from Start, the one reported
// by the first searched turn is used.
func (m *collector) Complete(winner string, turns int) (GameMetric, []TurnMetric) {
	end := time.Now()
	plyLimit := m.plyLimit
	for _, turn := range m.turns {
		if plyLimit != 0 {
			break
		}
		plyLimit = turn.PlyLimit
	}
	return GameMetric{
		ID:         m.id,
		Scenario:   m.scenario,
		PlyLimit:   plyLimit,
		Winner:     winner,
		StartTime:  m.startTime,
		EndTime:    end,
		Duration:   end.Sub(m.startTime),
		TotalTurns: turns,
	}, m.turns
}
