package experiments

import (
	"fmt"

	"conquest/store"
)

// Report summarises the games of an experiment saved in a database.
type Report struct {
	Experiment   string
	Games        int
	Wins         map[int]int // Games won per player ID, game.Neutral for unfinished games
	PlannerWins  int
	PlannerTurns int
	TimedOut     int     // Planner turns cut short by the deadline
	MeanDepth    float64 // Over planner turns
}

// LoadReport reads back every game of the experiment with its turns.
func LoadReport(db *store.DB, experiment string) (Report, error) {
	games, err := db.ListGames(experiment)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list games of %s: %w", experiment, err)
	}
	wins, err := db.Wins(experiment)
	if err != nil {
		return Report{}, fmt.Errorf("failed to count wins of %s: %w", experiment, err)
	}

	r := Report{Experiment: experiment, Games: len(games), Wins: wins}
	depth := 0
	for _, g := range games {
		if g.Seats.Agent(g.Winner) == PlannerID {
			r.PlannerWins++
		}
		moves, err := db.GetMoves(g.ID)
		if err != nil {
			return Report{}, fmt.Errorf("failed to read moves of game %s: %w", g.ID, err)
		}
		for _, m := range moves {
			if g.Seats.Agent(m.Player) != PlannerID {
				continue
			}
			r.PlannerTurns++
			depth += m.Depth
			if m.TimedOut {
				r.TimedOut++
			}
		}
	}
	if r.PlannerTurns > 0 {
		r.MeanDepth = float64(depth) / float64(r.PlannerTurns)
	}
	return r, nil
}
