package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"skirmish/agent"
	"skirmish/experiments/metrics"
	"skirmish/gamemaster"
	"skirmish/meta"
	"skirmish/player"
)

type Engine struct {
	env        *gamemaster.Local
	controller *player.Controller
	opponent   Opponent
	scenario   string
	plyLimit   int
	maxTurns   int
	collector  metrics.Collector
}

type Option func(e *Engine)

func WithMaxTurns(turns int) Option {
	return func(e *Engine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// WithScenario labels the match in its metrics.
func WithScenario(name string, plyLimit int) Option {
	return func(e *Engine) {
		e.scenario = name
		e.plyLimit = plyLimit
	}
}

func LocalEngine(env *gamemaster.Local, a agent.Agent, opponent Opponent, options ...Option) *Engine {
	e := &Engine{
		env:        env,
		controller: player.NewController(env, a),
		opponent:   opponent,
		maxTurns:   meta.MAX_TURNS,
		collector:  metrics.NewCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run alternates footman and archer turns until a side is eliminated or the
// turn limit is reached. A footman turn rejected by the environment is
// forfeited.
func (e *Engine) Run(ctx context.Context) (metrics.GameMetric, []metrics.TurnMetric, error) {
	e.collector.Start(e.scenario, e.plyLimit)
	log.Info().Msgf("Starting %s match", e.scenario)

	turn := 0
	for !e.env.Over() && turn < e.maxTurns {
		if err := ctx.Err(); err != nil {
			return metrics.GameMetric{}, nil, err
		}
		turn++

		decision, err := e.controller.Step(ctx)
		forfeit := false
		if err != nil {
			if !errors.Is(err, gamemaster.ErrIllegalCommand) {
				return metrics.GameMetric{}, nil, fmt.Errorf("turn %d: %w", turn, err)
			}
			log.Warn().Msgf("Turn %d forfeited: %v", turn, err)
			forfeit = true
		}
		e.collector.AddTurn(metrics.TurnMetric{
			Turn:         turn,
			Idle:         decision.Idle,
			Forfeit:      forfeit,
			Dropped:      len(decision.Dropped),
			SearchMetric: decision.Metric,
		})
		if e.env.Over() {
			break
		}

		snapshot, err := e.env.Snapshot(ctx)
		if err != nil {
			return metrics.GameMetric{}, nil, err
		}
		err = e.env.Submit(ctx, e.opponent.Commands(snapshot))
		if err != nil {
			return metrics.GameMetric{}, nil, fmt.Errorf("opponent turn %d: %w", turn, err)
		}
	}

	winner := e.env.Winner()
	if winner != "" {
		log.Info().Msgf("Match ended after %d turns with winner: %s", turn, winner)
	} else {
		log.Info().Msgf("Stopped after %d turns (no winner yet)", turn)
	}
	game, turns := e.collector.Complete(winner, turn)
	return game, turns, nil
}
