package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts search events", func(t *testing.T) {
		c := NewCollector()
		c.Start(time.Second, 3)
		c.AddCombination()
		c.AddCombination()
		c.AddPruned()
		c.AddInfeasible()
		c.AddDefect()
		c.SetDepth(2)
		c.SetTimedOut()

		m := c.Complete()

		require.Equal(t, time.Second, m.Budget)
		require.Equal(t, 3, m.MaxDepth)
		require.Equal(t, 2, m.Depth)
		require.Equal(t, 2, m.Combinations)
		require.Equal(t, 1, m.Pruned)
		require.Equal(t, 1, m.Infeasible)
		require.Equal(t, 1, m.Defects)
		require.True(t, m.TimedOut)
	})

	t.Run("starting again resets the counts", func(t *testing.T) {
		c := NewCollector()
		c.Start(time.Second, 3)
		c.AddCombination()
		c.SetTimedOut()
		c.Start(time.Second, 3)

		m := c.Complete()

		require.Zero(t, m.Combinations)
		require.False(t, m.TimedOut)
	})

	t.Run("the dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(time.Second, 3)
		c.AddCombination()

		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "test")
	require.NoError(t, err)

	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{ID: 1, Kind: "planner", Budget: time.Second, MaxDepth: 3}}))
	require.NoError(t, w.WriteGameRecords([]GameRecord{{
		Seats: Seats{1, 2, 2},
		GameMetric: GameMetric{
			ID: "g1", StartingPlayer: 1, Winner: 2, Leader: 2,
			StartTime: start, EndTime: start.Add(time.Minute), Duration: time.Minute,
			TotalMoves: 10, Rounds: 5,
		},
	}}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{{
		Game:       "g1",
		MoveMetric: MoveMetric{Step: 1, Player: 1, Attacks: 2, SearchMetric: SearchMetric{Depth: 2, Combinations: 7}},
	}}))

	read := func(name string) [][]string {
		f, err := os.Open(filepath.Join(w.Dir(), name))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		return rows
	}

	require.Equal(t, [][]string{
		{"id", "kind", "budget", "max_depth"},
		{"1", "planner", "1s", "3"},
	}, read("agent_configs.csv"))

	games := read("game_records.csv")
	require.Len(t, games, 2)
	require.Equal(t, []string{"g1", "1;2;2", "1", "2", "2", "2024-01-02T03:04:05Z", "2024-01-02T03:05:05Z", "1m0s", "10", "5"}, games[1])

	moves := read("move_records.csv")
	require.Len(t, moves, 2)
	require.Equal(t, []string{"g1", "1", "1", "2", "0s", "2", "7", "0", "0", "0", "false"}, moves[1])
}

func TestSeats(t *testing.T) {
	t.Run("every seat is listed in player order", func(t *testing.T) {
		seats := Seats{1, 2, 2}

		require.Equal(t, "1;2;2", seats.String())
		require.Equal(t, 1, seats.Agent(1))
		require.Equal(t, 2, seats.Agent(3))
		require.Zero(t, seats.Agent(4))
	})

	t.Run("written seats parse back", func(t *testing.T) {
		seats, err := ParseSeats(Seats{1, 2, 2, 2}.String())

		require.NoError(t, err)
		require.Equal(t, Seats{1, 2, 2, 2}, seats)
	})

	t.Run("malformed seats are rejected", func(t *testing.T) {
		_, err := ParseSeats("1;x")

		require.Error(t, err)
	})
}
