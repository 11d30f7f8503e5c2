package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"conquest/meta"

	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("no file gives the defaults", func(t *testing.T) {
		c, err := LoadWithEnv("", env(nil))

		require.NoError(t, err)
		require.Equal(t, Default(), c)
		require.Equal(t, meta.MAX_DEPTH, c.Planner.MaxDepth)
	})

	t.Run("the file overrides the fields it names", func(t *testing.T) {
		path := writeFile(t, "conquest.yaml", `
budget: 250ms
planner:
  max_depth: 2
  cost_weight: 1.5
  weights:
    stack_percent: 20
  rewards:
    kill: 50
experiment:
  games: 4
  seed: 7
`)

		c, err := LoadWithEnv(path, env(nil))

		require.NoError(t, err)
		require.Equal(t, 250*time.Millisecond, c.Budget)
		require.Equal(t, 2, c.Planner.MaxDepth)
		require.Equal(t, 1.5, c.Planner.CostWeight)
		require.Equal(t, 20, c.Planner.Weights.StackPercent)
		require.Equal(t, 50.0, c.Planner.Rewards.Kill)
		require.Equal(t, 4, c.Experiment.Games)
		require.Equal(t, uint64(7), c.Experiment.Seed)

		// Untouched fields keep their defaults
		require.Equal(t, Default().Planner.PruneRatio, c.Planner.PruneRatio)
		require.Equal(t, Default().Planner.Weights.TransitMultiplier, c.Planner.Weights.TransitMultiplier)
		require.Equal(t, Default().Planner.Rewards.Expand, c.Planner.Rewards.Expand)
	})

	t.Run("an empty file gives the defaults", func(t *testing.T) {
		c, err := LoadWithEnv(writeFile(t, "empty.yaml", ""), env(nil))

		require.NoError(t, err)
		require.Equal(t, Default(), c)
	})

	t.Run("the environment overrides the file", func(t *testing.T) {
		path := writeFile(t, "conquest.yaml", "experiment:\n  games: 4\n")

		c, err := LoadWithEnv(path, env(map[string]string{
			"CONQUEST_GAMES":      "9",
			"CONQUEST_BUDGET":     "1s",
			"CONQUEST_CONFIDENCE": "0.6",
			"CONQUEST_SEED":       "42",
			"CONQUEST_LOG_LEVEL":  "debug",
			"CONQUEST_DATABASE":   "runs.db",
		}))

		require.NoError(t, err)
		require.Equal(t, 9, c.Experiment.Games)
		require.Equal(t, time.Second, c.Budget)
		require.Equal(t, 0.6, c.Odds.Confidence)
		require.Equal(t, uint64(42), c.Experiment.Seed)
		require.Equal(t, "debug", c.LogLevel)
		require.Equal(t, "runs.db", c.Experiment.Database)
	})

	t.Run("malformed environment values are rejected", func(t *testing.T) {
		for key, value := range map[string]string{
			"CONQUEST_MAX_DEPTH":  "deep",
			"CONQUEST_BUDGET":     "soon",
			"CONQUEST_CONFIDENCE": "high",
			"CONQUEST_SEED":       "-1",
		} {
			_, err := LoadWithEnv("", env(map[string]string{key: value}))
			require.ErrorContains(t, err, key)
		}
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		path := writeFile(t, "conquest.yaml", "planner:\n  max_dept: 2\n")

		_, err := LoadWithEnv(path, env(nil))

		require.Error(t, err)
	})

	t.Run("a missing file is an error", func(t *testing.T) {
		_, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yaml"), env(nil))

		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"negative budget", func(c *Config) { c.Budget = -time.Second }},
		{"zero prune ratio", func(c *Config) { c.Planner.PruneRatio = 0 }},
		{"negative cost weight", func(c *Config) { c.Planner.CostWeight = -1 }},
		{"transit cheaper than targets", func(c *Config) { c.Planner.Weights.TransitMultiplier = 0.5 }},
		{"zero minimum weight", func(c *Config) { c.Planner.Weights.MinWeight = 0 }},
		{"certain confidence", func(c *Config) { c.Odds.Confidence = 1 }},
		{"a single player", func(c *Config) { c.Experiment.Players = 1 }},
		{"negative games", func(c *Config) { c.Experiment.Games = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name+" is rejected", func(t *testing.T) {
			c := Default()
			tt.modify(&c)
			require.Error(t, c.Validate())
		})
	}

	t.Run("the defaults are valid", func(t *testing.T) {
		require.NoError(t, Default().Validate())
	})

	t.Run("any depth of 0 or less searches without a limit", func(t *testing.T) {
		c := Default()
		require.Zero(t, c.Planner.MaxDepth)
		c.Planner.MaxDepth = -1
		require.NoError(t, c.Validate())
	})
}

func TestTable(t *testing.T) {
	t.Run("dice odds are used without a file", func(t *testing.T) {
		table, err := Default().Table()

		require.NoError(t, err)
		require.Greater(t, table.TroopsNeeded(5), 5)
	})

	t.Run("rows of the file are served before the dice odds", func(t *testing.T) {
		c := Default()
		c.Odds.Table = writeFile(t, "odds.csv", "defenders,attackers\n1,2\n2,4\n")

		table, err := c.Table()

		require.NoError(t, err)
		require.Equal(t, 2, table.TroopsNeeded(1))
		require.Equal(t, 4, table.TroopsNeeded(2))
		dice, err := Default().Table()
		require.NoError(t, err)
		require.Equal(t, dice.TroopsNeeded(10), table.TroopsNeeded(10))
	})

	t.Run("an empty file is an error", func(t *testing.T) {
		c := Default()
		c.Odds.Table = writeFile(t, "odds.csv", "defenders,attackers\n")

		table, err := c.Table()

		require.Error(t, err)
		require.Nil(t, table)
	})
}

func TestMap(t *testing.T) {
	t.Run("the classic map is the default", func(t *testing.T) {
		m, err := Default().Map()

		require.NoError(t, err)
		require.Equal(t, 42, m.Size())
	})

	t.Run("a map file is built", func(t *testing.T) {
		c := Default()
		c.Experiment.Map = writeFile(t, "map.yaml", `
territories: [North, Middle, South]
bonuses:
  - name: Island
    value: 2
    territories: [0, 1, 2]
borders:
  - [0, 1]
  - [1, 2]
`)

		m, err := c.Map()

		require.NoError(t, err)
		require.Equal(t, 3, m.Size())
		require.True(t, m.AreAdjacent(0, 1))
		require.False(t, m.AreAdjacent(0, 2))
	})

	t.Run("a map with unknown territories is rejected", func(t *testing.T) {
		c := Default()
		c.Experiment.Map = writeFile(t, "map.yaml", "territories: [North]\nborders:\n  - [0, 3]\n")

		_, err := c.Map()

		require.Error(t, err)
	})
}
