// Package searcher plans a full turn by iterative deepening over combinations of
// intents, keeping the best scoring feasible move found before the deadline.
package searcher

import (
	"fmt"

	"conquest/experiments/metrics"
	"conquest/game"
	"conquest/intent"
)

type Phase int

const (
	Idle Phase = iota
	Searching
	Exhausted    // The generator ran out of combinations
	TimedOut     // The deadline fired between two combinations
	DepthLimited // The configured maximum depth was evaluated
	Returned
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Searching:
		return "searching"
	case Exhausted:
		return "exhausted"
	case TimedOut:
		return "timed out"
	case DepthLimited:
		return "depth limited"
	case Returned:
		return "returned"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// transitions lists the phases reachable from each phase. Nothing is re-entered
// within one search.
var transitions = map[Phase][]Phase{
	Idle:         {Searching},
	Searching:    {Exhausted, TimedOut, DepthLimited},
	Exhausted:    {Returned},
	TimedOut:     {Returned},
	DepthLimited: {Returned},
}

// lifecycle tracks the phase of one search.
type lifecycle struct {
	phase   Phase
	outcome Phase
}

func (l *lifecycle) to(next Phase) {
	for _, allowed := range transitions[l.phase] {
		if allowed == next {
			if next != Searching && next != Returned {
				l.outcome = next
			}
			l.phase = next
			return
		}
	}
	panic(fmt.Sprintf("invalid search transition from %s to %s", l.phase, next))
}

// Result is the outcome of one search.
type Result struct {
	Move        game.Move
	Score       float64
	Depth       int                // Deepest level fully evaluated, -1 when none was
	Combination intent.Combination // Intents behind the move, empty for the default move
	Outcome     Phase              // Exhausted, TimedOut or DepthLimited
	Metric      metrics.SearchMetric
}
