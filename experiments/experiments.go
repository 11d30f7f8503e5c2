// Package experiments pits the planner against baseline agents and records the
// games as CSV, and in SQLite when a database is configured.
package experiments

import (
	"fmt"

	"conquest/config"
	"conquest/engine"
	"conquest/experiments/metrics"
	"conquest/game"
	"conquest/searcher"
	"conquest/searcher/agent"
	"conquest/store"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	PlannerID = 1
	RandomID  = 2
)

// Summary reports where an experiment was written and who won.
type Summary struct {
	Dir   string
	Games int
	Wins  map[int]int // Games won per player ID, game.Neutral for unfinished games
}

// Run plays the configured number of games with the planner as player 1 and
// random agents in the other seats. The starting player rotates between games.
func Run(cfg config.Config) (Summary, error) {
	name := cfg.Experiment.Name
	m, err := cfg.Map()
	if err != nil {
		return Summary{}, err
	}
	table, err := cfg.Table()
	if err != nil {
		return Summary{}, err
	}

	var db *store.DB
	if cfg.Experiment.Database != "" {
		db, err = store.New(cfg.Experiment.Database)
		if err != nil {
			return Summary{}, err
		}
		defer db.Close()
	}

	configs := []metrics.AgentConfig{
		{ID: PlannerID, Kind: "planner", Budget: cfg.Budget, MaxDepth: cfg.Planner.MaxDepth},
		{ID: RandomID, Kind: "random"},
	}
	planner := searcher.NewPlanner(table, searcher.WithConfig(cfg.Planner), searcher.WithMetrics())
	seats := metrics.Seats{PlannerID}
	for len(seats) < cfg.Experiment.Players {
		seats = append(seats, RandomID)
	}

	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	wins := map[int]int{}

	log.Info().Msgf("starting %s experiment...", name)

	for i := 0; i < cfg.Experiment.Games; i++ {
		rng := rand.New(rand.NewSource(cfg.Experiment.Seed + uint64(i)))

		agents := []agent.Agent{agent.NewPlannerAgent(planner, cfg.Budget)}
		for len(agents) < cfg.Experiment.Players {
			agents = append(agents, agent.NewRandomAgent(rng))
		}

		state := game.NewState(m, cfg.Experiment.Players)
		state.Deal(rng, cfg.Experiment.Troops)
		state.Agent = i%cfg.Experiment.Players + 1

		log.Info().Msgf("starting game %d of %d...", i+1, cfg.Experiment.Games)

		e := engine.LocalEngine(agents, m, game.NewStandardRules(), rng, cfg.Experiment.Troops,
			engine.WithState(state), engine.WithMaxRounds(cfg.Experiment.MaxRounds))
		winner, gameMetric, moveMetrics := e.Run()
		wins[winner]++

		record := metrics.GameRecord{Seats: seats, GameMetric: gameMetric}
		moves := make([]metrics.MoveRecord, 0, len(moveMetrics))
		for _, mm := range moveMetrics {
			moves = append(moves, metrics.MoveRecord{Game: gameMetric.ID, MoveMetric: mm})
		}
		gameRecords = append(gameRecords, record)
		moveRecords = append(moveRecords, moves...)

		if db != nil {
			if err := db.SaveGame(name, record, moves); err != nil {
				return Summary{}, fmt.Errorf("failed to save game %s: %w", gameMetric.ID, err)
			}
		}

		log.Info().Msgf("completed game %d of %d with winner: %d", i+1, cfg.Experiment.Games, winner)
	}

	log.Info().Msgf("completed %s experiment: planner won %d of %d games", name, wins[PlannerID], cfg.Experiment.Games)

	writer, err := metrics.NewWriter(cfg.Experiment.OutputDir, name)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return Summary{}, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return Summary{}, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return Summary{}, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return Summary{Dir: writer.Dir(), Games: cfg.Experiment.Games, Wins: wins}, nil
}
