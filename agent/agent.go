package agent

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"skirmish/communication"
	"skirmish/game"
	"skirmish/meta"
	"skirmish/searcher"
)

var ErrInvalidSnapshot = errors.New("invalid snapshot")

type Agent interface {
	// FindMove returns the commands for the controlled units this turn and the search metrics
	FindMove(snapshot communication.Snapshot) (Decision, error)
}

// Decision is the outcome of one turn of planning.
type Decision struct {
	Commands map[int]communication.Command `json:"commands"`
	Action   game.JointAction              `json:"-"`
	Plan     string                        `json:"plan"`
	Score    int                           `json:"score"`
	Dropped  []int                         `json:"dropped,omitempty"` // Attacks without an adjacent target
	Idle     bool                          `json:"idle"`
	Metric   searcher.SearchMetric         `json:"metric"`
}

type Option func(a *AlphaBeta)

func WithTracer(tracer searcher.Tracer) Option {
	return func(a *AlphaBeta) {
		a.tracer = tracer
	}
}

// WithPolicy selects how attacks without an adjacent target are translated.
func WithPolicy(policy Policy) Option {
	return func(a *AlphaBeta) {
		a.policy = policy
	}
}

func WithRanges(melee, ranged int) Option {
	return func(a *AlphaBeta) {
		a.meleeRange = melee
		a.rangedRange = ranged
	}
}

// AlphaBeta plans each turn from scratch with a depth-limited alpha-beta search.
type AlphaBeta struct {
	search      *searcher.AlphaBeta[*game.State]
	tracer      searcher.Tracer
	policy      Policy
	meleeRange  int
	rangedRange int
}

func NewAlphaBeta(plyLimit int, options ...Option) (*AlphaBeta, error) {
	a := &AlphaBeta{
		tracer:      searcher.NopTracer{},
		policy:      DowngradeNoTarget,
		meleeRange:  meta.MELEE_RANGE,
		rangedRange: meta.RANGED_RANGE,
	}
	for _, option := range options {
		option(a)
	}
	search, err := searcher.New[*game.State](plyLimit, searcher.WithTracer(a.tracer), searcher.WithMetrics())
	if err != nil {
		return nil, err
	}
	a.search = search
	return a, nil
}

func (a *AlphaBeta) PlyLimit() int {
	return a.search.PlyLimit()
}

func (a *AlphaBeta) FindMove(snapshot communication.Snapshot) (Decision, error) {
	root, err := FromSnapshot(snapshot, a.meleeRange, a.rangedRange)
	if err != nil {
		return Decision{}, err
	}

	best, metric := a.search.Search(root, game.Sentinel(math.MinInt), game.Sentinel(math.MaxInt))
	action := best.ParentAction()
	if action == nil {
		// Terminal root, or no legal joint action: nothing to command
		log.Debug().Msgf("Turn %d: no move found from %s, idling", snapshot.Turn, root)
		return Decision{Commands: map[int]communication.Command{}, Score: root.Eval(), Idle: true, Metric: metric}, nil
	}

	commands, err := Translate(root, action, a.policy)
	if err != nil {
		return Decision{}, err
	}
	var dropped []int
	for _, id := range action.IDs() {
		if _, ok := commands[id]; !ok {
			dropped = append(dropped, id)
		}
	}
	log.Debug().Msgf("Turn %d: chose %s with eval %d after %d expansions", snapshot.Turn, action, best.Eval(), metric.Expansions)

	return Decision{
		Commands: commands,
		Action:   action,
		Plan:     action.String(),
		Score:    best.Eval(),
		Dropped:  dropped,
		Metric:   metric,
	}, nil
}

// FromSnapshot builds the root search state. Footmen are the controlled side
// and archers the opposing side, in snapshot order; other units are ignored.
func FromSnapshot(snapshot communication.Snapshot, meleeRange, rangedRange int) (*game.State, error) {
	if snapshot.Width < 1 || snapshot.Height < 1 {
		return nil, fmt.Errorf("%w: board %dx%d", ErrInvalidSnapshot, snapshot.Width, snapshot.Height)
	}
	board := &game.Board{
		Width:       snapshot.Width,
		Height:      snapshot.Height,
		MeleeRange:  meleeRange,
		RangedRange: rangedRange,
	}

	var controlled, opposing []game.Unit
	for _, u := range snapshot.Units {
		switch u.Type {
		case meta.FOOTMAN:
			controlled = append(controlled, game.NewUnit(u.ID, u.X, u.Y))
		case meta.ARCHER:
			opposing = append(opposing, game.NewUnit(u.ID, u.X, u.Y))
		default:
			log.Debug().Msgf("Skipping unit %d of unknown type %q", u.ID, u.Type)
		}
	}

	state, err := game.NewState(board, controlled, opposing)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	return state, nil
}
