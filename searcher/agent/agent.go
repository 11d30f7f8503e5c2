package agent

import (
	"time"

	"conquest/experiments/metrics"
	"conquest/game"
	"conquest/searcher"
)

type Agent interface {
	// FindMove returns the turn to play and performance metrics (if collected) from the search
	FindMove(state *game.State) (game.Move, metrics.SearchMetric)
}

type plannerAgent struct {
	planner *searcher.Planner
	budget  time.Duration
}

// NewPlannerAgent returns an agent that plans every turn within budget.
func NewPlannerAgent(planner *searcher.Planner, budget time.Duration) Agent {
	return plannerAgent{planner: planner, budget: budget}
}

func (a plannerAgent) FindMove(state *game.State) (game.Move, metrics.SearchMetric) {
	result := a.planner.Plan(state, a.budget)
	return result.Move, result.Metric
}
