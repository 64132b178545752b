package experiments

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"skirmish/agent"
	"skirmish/engine"
	"skirmish/experiments/metrics"
	"skirmish/gamemaster"
)

var ErrEmptySetup = errors.New("experiment needs at least one ply limit, scenario and game")

// Setup describes a sweep of matches. Every ply limit plays every scenario
// NumGames times against the random archer policy.
type Setup struct {
	Name      string
	OutputDir string
	PlyLimits []int
	Scenarios []string
	NumGames  int
	Width     int
	Height    int
	MaxTurns  int
	Seed      uint64
	Agent     []agent.Option // Applied to every agent of the sweep
}

// Run plays the sweep and writes its records, returning the output directory.
func Run(ctx context.Context, setup Setup) (string, error) {
	if len(setup.PlyLimits) == 0 || len(setup.Scenarios) == 0 || setup.NumGames < 1 {
		return "", ErrEmptySetup
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	turnRecords := []metrics.TurnRecord{}

	log.Info().Msgf("starting %s experiment...", setup.Name)

	matchUps := len(setup.PlyLimits) * len(setup.Scenarios)
	mi := 0
	for _, plyLimit := range setup.PlyLimits {
		for _, scenario := range setup.Scenarios {
			mi++
			log.Info().Msgf("starting matchup %d of %d: ply limit %d on %s...", mi, matchUps, plyLimit, scenario)

			for i := 0; i < setup.NumGames; i++ {
				count++
				gameMetric, turnMetrics, err := runGame(ctx, setup, scenario, plyLimit, setup.Seed+uint64(count))
				if err != nil {
					return "", fmt.Errorf("matchup %d game %d: %w", mi, i+1, err)
				}

				gameRecords = append(gameRecords, metrics.GameRecord{Game: count, GameMetric: gameMetric})
				for _, tm := range turnMetrics {
					turnRecords = append(turnRecords, metrics.TurnRecord{Game: count, TurnMetric: tm})
				}
				log.Info().Msgf("completed matchup %d of %d game %d with winner: %q", mi, matchUps, i+1, gameMetric.Winner)
			}
		}
	}

	log.Info().Msgf("completed %s experiment", setup.Name)

	writer, err := metrics.NewWriter(setup.OutputDir, setup.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return "", err
	}
	log.Info().Msg("stored game records")

	err = writer.WriteTurnRecords(turnRecords)
	if err != nil {
		return "", err
	}
	log.Info().Msg("stored turn records")

	return writer.Dir(), nil
}

func runGame(ctx context.Context, setup Setup, scenario string, plyLimit int, seed uint64) (metrics.GameMetric, []metrics.TurnMetric, error) {
	env, err := gamemaster.NewScenario(scenario, setup.Width, setup.Height)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	a, err := agent.NewAlphaBeta(plyLimit, setup.Agent...)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	e := engine.LocalEngine(env, a, engine.NewRandomOpponent(seed),
		engine.WithScenario(scenario, plyLimit),
		engine.WithMaxTurns(setup.MaxTurns),
	)
	return e.Run(ctx)
}
