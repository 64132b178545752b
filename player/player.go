package player

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"skirmish/agent"
	"skirmish/communication"
)

// Controller drives the controlled side of an environment, one turn at a time.
type Controller struct {
	env   communication.Environment
	agent agent.Agent
}

func NewController(env communication.Environment, agent agent.Agent) *Controller {
	return &Controller{env: env, agent: agent}
}

// Step reads the current snapshot, plans and submits the turn's commands.
// Nothing is submitted when the agent idles.
func (c *Controller) Step(ctx context.Context) (agent.Decision, error) {
	snapshot, err := c.env.Snapshot(ctx)
	if err != nil {
		return agent.Decision{}, fmt.Errorf("failed to read snapshot: %w", err)
	}

	decision, err := c.agent.FindMove(snapshot)
	if err != nil {
		return agent.Decision{}, fmt.Errorf("failed to plan turn %d: %w", snapshot.Turn, err)
	}
	if decision.Idle {
		return decision, nil
	}

	err = c.env.Submit(ctx, decision.Commands)
	if err != nil {
		return decision, fmt.Errorf("failed to submit turn %d: %w", snapshot.Turn, err)
	}
	return decision, nil
}

// Play steps until the agent idles, maxTurns is reached or ctx is done.
func (c *Controller) Play(ctx context.Context, maxTurns int) ([]agent.Decision, error) {
	var decisions []agent.Decision
	for turn := 0; turn < maxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return decisions, err
		}
		decision, err := c.Step(ctx)
		if err != nil {
			return decisions, err
		}
		decisions = append(decisions, decision)
		if decision.Idle {
			log.Info().Msgf("Agent idled after %d turns", turn+1)
			break
		}
	}
	return decisions, nil
}
