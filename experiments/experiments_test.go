package experiments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"conquest/config"
	"conquest/experiments/metrics"
	"conquest/store"

	"github.com/stretchr/testify/require"
)

func smallExperiment(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Budget = 5 * time.Millisecond
	cfg.Planner.MaxDepth = 1
	cfg.Experiment.Name = "test"
	cfg.Experiment.Games = 2
	cfg.Experiment.MaxRounds = 3
	cfg.Experiment.OutputDir = filepath.Join(dir, "out")
	return cfg
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRun(t *testing.T) {
	t.Run("games are written as CSV", func(t *testing.T) {
		cfg := smallExperiment(t)

		summary, err := Run(cfg)

		require.NoError(t, err)
		require.Equal(t, 2, summary.Games)
		total := 0
		for _, n := range summary.Wins {
			total += n
		}
		require.Equal(t, 2, total)

		require.Len(t, readCSV(t, filepath.Join(summary.Dir, "agent_configs.csv")), 3)
		games := readCSV(t, filepath.Join(summary.Dir, "game_records.csv"))
		require.Len(t, games, 3)
		require.Equal(t, "1;2;2", games[1][1]) // planner then two random agents
		require.Equal(t, "1", games[1][2])     // starting player
		require.Equal(t, "2", games[2][2])
		require.Greater(t, len(readCSV(t, filepath.Join(summary.Dir, "move_records.csv"))), 1)
	})

	t.Run("games are saved when a database is configured", func(t *testing.T) {
		cfg := smallExperiment(t)
		cfg.Experiment.Database = filepath.Join(t.TempDir(), "conquest.db")

		summary, err := Run(cfg)
		require.NoError(t, err)

		db, err := store.New(cfg.Experiment.Database)
		require.NoError(t, err)
		defer db.Close()

		games, err := db.ListGames("test")
		require.NoError(t, err)
		require.Len(t, games, 2)

		wins, err := db.Wins("test")
		require.NoError(t, err)
		require.Equal(t, summary.Wins, wins)

		moves, err := db.GetMoves(games[0].ID)
		require.NoError(t, err)
		require.Equal(t, games[0].TotalMoves, len(moves))
		require.Equal(t, metrics.Seats{PlannerID, RandomID, RandomID}, games[0].Seats)

		report, err := LoadReport(db, "test")
		require.NoError(t, err)
		require.Equal(t, 2, report.Games)
		require.Equal(t, summary.Wins, report.Wins)
		require.Equal(t, summary.Wins[PlannerID], report.PlannerWins)
		planned := 0
		for _, g := range games {
			moves, err := db.GetMoves(g.ID)
			require.NoError(t, err)
			for _, m := range moves {
				if m.Player == 1 {
					planned++
				}
			}
		}
		require.Equal(t, planned, report.PlannerTurns)
		require.Positive(t, report.PlannerTurns)
		require.LessOrEqual(t, report.MeanDepth, 1.0)
	})

	t.Run("a report of an unknown experiment is empty", func(t *testing.T) {
		db, err := store.New(filepath.Join(t.TempDir(), "conquest.db"))
		require.NoError(t, err)
		defer db.Close()

		report, err := LoadReport(db, "missing")

		require.NoError(t, err)
		require.Zero(t, report.Games)
		require.Zero(t, report.PlannerTurns)
		require.Empty(t, report.Wins)
	})

	t.Run("a broken map file stops the experiment", func(t *testing.T) {
		cfg := smallExperiment(t)
		cfg.Experiment.Map = filepath.Join(t.TempDir(), "missing.yaml")

		_, err := Run(cfg)

		require.Error(t, err)
	})
}
