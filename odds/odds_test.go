package odds

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"testing"

	"conquest/game"

	"github.com/stretchr/testify/require"
)

func TestDiceTable(t *testing.T) {
	table := NewDiceTable(game.NewStandardRules(), 0.8)

	t.Run("single die duel favours the defender", func(t *testing.T) {
		require.InDelta(t, 15.0/36.0, table.CaptureProbability(1, 1), 1e-9)
	})

	t.Run("capture probability grows with attackers", func(t *testing.T) {
		previous := 0.0
		for a := 1; a <= 20; a++ {
			p := table.CaptureProbability(a, 5)
			require.GreaterOrEqual(t, p, previous, "Adding attackers should never lower the odds")
			previous = p
		}
		require.Greater(t, previous, 0.9)
	})

	t.Run("safe force for one defender", func(t *testing.T) {
		require.Equal(t, 3, table.TroopsNeeded(1))
		require.Equal(t, 1, table.TroopsNeeded(0), "An empty territory needs one troop to occupy")
	})

	t.Run("safe force never shrinks with more defenders", func(t *testing.T) {
		previous := 0
		for d := 1; d <= 30; d++ {
			n := table.TroopsNeeded(d)
			require.GreaterOrEqual(t, n, previous)
			require.GreaterOrEqual(t, table.CaptureProbability(n, d), 0.8)
			previous = n
		}
	})

	t.Run("expected losses are bounded by the force", func(t *testing.T) {
		losses := table.ExpectedLosses(10, 3)

		require.Greater(t, losses, 0.0)
		require.Less(t, losses, 10.0)
		require.Equal(t, 0.0, table.ExpectedLosses(5, 0))
	})

	t.Run("invalid confidence falls back to the default", func(t *testing.T) {
		require.Equal(t, DefaultConfidence, NewDiceTable(game.NewStandardRules(), 1.5).confidence)
	})
}

func TestCSVTable(t *testing.T) {
	t.Run("reads rows and skips the header", func(t *testing.T) {
		table, err := LoadCSV(strings.NewReader("defenders,attackers\n1,3\n2,5\n4,8\n"), nil)

		require.NoError(t, err)
		require.Equal(t, 3, table.TroopsNeeded(1))
		require.Equal(t, 8, table.TroopsNeeded(3), "Gaps should take the next row up")
		require.Equal(t, 10, table.TroopsNeeded(6), "Rows past the end should be extrapolated")
	})

	t.Run("uses the fallback past the last row", func(t *testing.T) {
		fallback := NewDiceTable(game.NewStandardRules(), 0.8)
		table, err := LoadCSV(strings.NewReader("1,3\n"), fallback)

		require.NoError(t, err)
		require.Equal(t, fallback.TroopsNeeded(7), table.TroopsNeeded(7))
	})

	t.Run("rejects empty and malformed tables", func(t *testing.T) {
		_, err := LoadCSV(strings.NewReader("defenders,attackers\n"), nil)
		require.ErrorIs(t, err, ErrEmptyTable)

		_, err = LoadCSV(strings.NewReader("1,3\n2,x\n"), nil)
		require.Error(t, err)

		_, err = LoadCSV(strings.NewReader("1,0\n"), nil)
		require.Error(t, err)
	})

	t.Run("single column rows are rejected", func(t *testing.T) {
		_, err := LoadCSV(strings.NewReader("1\n2\n"), nil)

		require.Error(t, err)
	})

	t.Run("dice tables are written with their odds", func(t *testing.T) {
		dice := NewDiceTable(game.NewStandardRules(), 0.8)
		var buf bytes.Buffer

		require.NoError(t, Write(&buf, dice, 3))

		rows, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Equal(t, []string{"defenders", "attackers", "capture_probability", "expected_losses"}, rows[0])
		require.Len(t, rows, 4)
		for _, row := range rows[1:] {
			p, err := strconv.ParseFloat(row[2], 64)
			require.NoError(t, err)
			require.GreaterOrEqual(t, p, 0.8)
			losses, err := strconv.ParseFloat(row[3], 64)
			require.NoError(t, err)
			attackers, err := strconv.Atoi(row[1])
			require.NoError(t, err)
			require.Greater(t, losses, 0.0)
			require.Less(t, losses, float64(attackers))
		}
	})

	t.Run("other tables are written with two columns", func(t *testing.T) {
		table, err := LoadCSV(strings.NewReader("1,3\n2,5\n"), nil)
		require.NoError(t, err)
		var buf bytes.Buffer

		require.NoError(t, Write(&buf, table, 2))

		require.Equal(t, "defenders,attackers\n1,3\n2,5\n", buf.String())
	})

	t.Run("written tables load back", func(t *testing.T) {
		dice := NewDiceTable(game.NewStandardRules(), 0.8)
		var buf bytes.Buffer

		require.NoError(t, Write(&buf, dice, 10))
		table, err := LoadCSV(&buf, nil)

		require.NoError(t, err)
		for d := 1; d <= 10; d++ {
			require.Equal(t, dice.TroopsNeeded(d), table.TroopsNeeded(d))
		}
	})
}
