package agent

import (
	"testing"
	"time"

	"conquest/advisor"
	"conquest/game"
	"conquest/searcher"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type needTable func(defenders int) int

func (f needTable) TroopsNeeded(defenders int) int {
	return f(defenders)
}

func TestPlannerAgent(t *testing.T) {
	t.Run("the planned move and its metrics are returned", func(t *testing.T) {
		m, err := game.BuildMap(game.MapSpec{
			Territories: []string{"a0", "a1", "b2", "b3"},
			Bonuses: []game.BonusSpec{
				{Name: "A", Value: 2, Territories: []int{0, 1}},
				{Name: "B", Value: 3, Territories: []int{2, 3}},
			},
			Borders: [][2]int{{0, 1}, {1, 2}, {2, 3}},
		})
		require.NoError(t, err)
		s := game.NewState(m, 2)
		copy(s.Ownership, []int{1, 2, 2, 2})
		copy(s.TroopCounts, []int{20, 1, 1, 1})

		planner := searcher.NewPlanner(needTable(func(d int) int { return d + 2 }), searcher.WithMetrics())
		move, metric := NewPlannerAgent(planner, time.Minute).FindMove(s)

		require.Len(t, move.Attacks, 3)
		require.Equal(t, 0, move.Attacks[0].From)
		require.Equal(t, 3, metric.Depth)
		require.Positive(t, metric.Combinations)
		require.False(t, metric.TimedOut)
	})
}

func TestRandomAgent(t *testing.T) {
	t.Run("moves only use the player's own troops and borders", func(t *testing.T) {
		for seed := uint64(1); seed <= 20; seed++ {
			rng := rand.New(rand.NewSource(seed))
			s := game.NewState(game.CreateClassicMap(), 3)
			s.Deal(rng, 35)
			s.Agent = int(seed%3) + 1

			move, _ := NewRandomAgent(rng).FindMove(s.Copy())

			require.Equal(t, advisor.DraftAmount(s, move.Draft.Trades), move.Draft.Troops(), "seed %d", seed)
			for _, d := range move.Draft.Deployments {
				require.Equal(t, s.Agent, s.Owner(d.Territory))
			}

			drafted := advisor.Drafted(s, move.Draft)
			require.LessOrEqual(t, len(move.Attacks), 1)
			for _, a := range move.Attacks {
				require.Equal(t, s.Agent, s.Owner(a.From))
				require.NotEqual(t, s.Agent, s.Owner(a.To))
				require.True(t, s.Map.AreAdjacent(a.From, a.To))
				require.Equal(t, drafted.Troops(a.From)-1, a.MoveTroops)
				require.Positive(t, a.MoveTroops)
			}
			if f := move.Fortify; f != nil {
				require.Equal(t, s.Agent, s.Owner(f.From))
				require.Equal(t, s.Agent, s.Owner(f.To))
				require.True(t, s.Map.AreAdjacent(f.From, f.To))
				require.Positive(t, f.Troops)
			}
		}
	})

	t.Run("eliminated players pass", func(t *testing.T) {
		s := game.NewState(game.CreateClassicMap(), 2)
		s.Deal(rand.New(rand.NewSource(1)), 30)
		for id := range s.Ownership {
			s.Ownership[id] = 2
		}

		move, _ := NewRandomAgent(rand.New(rand.NewSource(1))).FindMove(s)

		require.True(t, move.IsPass())
		require.Empty(t, move.Draft.Deployments)
	})
}
