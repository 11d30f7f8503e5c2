package engine

import (
	"conquest/experiments/metrics"
	"conquest/meta"
)

const MaxRounds = meta.MAX_ROUNDS

type Engine interface {
	// Run plays a game till there's a winner or the round limit is reached
	Run() (winner int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

// Outcome summarises how much of a move could be carried out.
type Outcome struct {
	Drafted    int
	Attacks    int // Attacks launched
	Captured   int
	Eliminated []int
	Bonuses    []string // Bonus groups completed by the captures
	Fortified  bool
	Skipped    int // Parts of the move that were not legal when reached
}
