package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func lineState(t *testing.T, owners, troops []int) *State {
	t.Helper()
	s := NewState(lineMap(t), 2)
	copy(s.Ownership, owners)
	copy(s.TroopCounts, troops)
	return s
}

func TestStateQueries(t *testing.T) {
	s := lineState(t, []int{1, 1, 2, Neutral}, []int{5, 3, 4, 2})

	t.Run("territories and troops by player", func(t *testing.T) {
		require.Equal(t, []int{0, 1}, s.TerritoriesOf(1))
		require.Equal(t, 8, s.TotalTroops(1))
		require.Equal(t, []int{1, 2}, s.AlivePlayers())
		require.Equal(t, []int{2}, s.Opponents())
	})

	t.Run("bonus ownership", func(t *testing.T) {
		require.Equal(t, 1, s.BonusOwner("A"))
		require.Equal(t, Neutral, s.BonusOwner("B"))
		require.Len(t, s.BonusesHeld(1), 1)
		require.Equal(t, MinReinforcements, s.Reinforcements(1), "Minimum should apply when territories and bonuses give less")
	})

	t.Run("borders and internal territories", func(t *testing.T) {
		require.Equal(t, []int{1}, s.Borders(1))
		require.Equal(t, []int{0}, s.Internal(1))
		require.Equal(t, []int{2}, s.EnemyNeighbors(1))
	})

	t.Run("connectivity through owned territories", func(t *testing.T) {
		require.True(t, s.AreConnected(0, 1, 1))
		require.False(t, s.AreConnected(0, 2, 1))
	})

	t.Run("territory view", func(t *testing.T) {
		require.Equal(t, TerritoryView{ID: 2, Owner: 2, Troops: 4, Bonus: "B"}, s.Territory(2))
	})
}

func TestStateCopy(t *testing.T) {
	s := lineState(t, []int{1, 1, 2, 2}, []int{5, 3, 4, 2})
	s.Hands[1] = []Card{{Type: Cavalry, TerritoryID: 0}}

	c := s.Copy()
	c.TroopCounts[0] = 99
	c.Ownership[0] = 2
	c.Hands[1][0].Type = Wild

	require.Equal(t, 5, s.TroopCounts[0], "Copy should not share troop counts")
	require.Equal(t, 1, s.Ownership[0], "Copy should not share ownership")
	require.Equal(t, Cavalry, s.Hands[1][0].Type, "Copy should not share hands")
	require.Same(t, s.Map, c.Map, "Copy should share the static map")
}

func TestStateMutations(t *testing.T) {
	t.Run("moving troops keeps one behind", func(t *testing.T) {
		s := lineState(t, []int{1, 1, 2, 2}, []int{5, 3, 4, 2})

		require.Error(t, s.MoveTroops(0, 1, 5))
		require.NoError(t, s.MoveTroops(0, 1, 4))
		require.Equal(t, []int{1, 7, 4, 2}, s.TroopCounts)
	})

	t.Run("deploying on enemy territory fails", func(t *testing.T) {
		s := lineState(t, []int{1, 1, 2, 2}, []int{5, 3, 4, 2})

		require.Error(t, s.Deploy(2, 3))
		require.NoError(t, s.Deploy(1, 3))
		require.Equal(t, 6, s.TroopCounts[1])
	})

	t.Run("capturing moves surviving attackers in", func(t *testing.T) {
		s := lineState(t, []int{1, 1, 2, 2}, []int{5, 30, 1, 2})
		rng := rand.New(rand.NewSource(1))

		captured, err := s.Attack(1, 2, 29, NewStandardRules(), rng)

		require.NoError(t, err)
		require.True(t, captured, "29 attackers should overwhelm a single defender")
		require.Equal(t, 1, s.Ownership[2])
		require.Equal(t, 1, s.TroopCounts[1], "Garrison should stay behind")
		require.Positive(t, s.TroopCounts[2])
		require.LessOrEqual(t, s.TroopCounts[2], 29)
	})

	t.Run("attacking needs a spare troop", func(t *testing.T) {
		s := lineState(t, []int{1, 1, 2, 2}, []int{5, 3, 4, 2})

		_, err := s.Attack(1, 2, 3, NewStandardRules(), rand.New(rand.NewSource(1)))
		require.Error(t, err)

		_, err = s.Attack(0, 2, 1, NewStandardRules(), rand.New(rand.NewSource(1)))
		require.Error(t, err, "Territories must be adjacent")
	})
}

func TestDeal(t *testing.T) {
	s := NewState(CreateClassicMap(), 3)

	s.Deal(rand.New(rand.NewSource(7)), 35)

	for player := 1; player <= 3; player++ {
		require.Len(t, s.TerritoriesOf(player), 14)
		require.Equal(t, 35, s.TotalTroops(player))
	}
	_, won := s.Winner()
	require.False(t, won)
}

func TestNextPlayerSkipsEliminated(t *testing.T) {
	s := NewState(lineMap(t), 3)
	copy(s.Ownership, []int{1, 1, 3, 3})
	s.Agent = 1

	require.Equal(t, 3, s.NextPlayer())
	s.Agent = 3
	require.Equal(t, 1, s.NextPlayer())
}

func TestBattle(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 50; i++ {
		attackers, defenders := Battle(NewStandardRules(), 5, 3, rng)
		require.True(t, attackers == 0 || defenders == 0, "Battle should run until one side is wiped out")
		require.False(t, attackers == 0 && defenders == 0)
	}
}

func TestStandardRules(t *testing.T) {
	rules := NewStandardRules()

	attackerLosses, defenderLosses := rules.DetermineAttackOutcome([]int{6, 4, 1}, []int{4, 4})

	require.Equal(t, 1, attackerLosses, "Ties should go to the defender")
	require.Equal(t, 1, defenderLosses)
}
