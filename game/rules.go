package game

import (
	"sort"

	"golang.org/x/exp/rand"
)

// DieFaces is the number of faces on a combat die.
const DieFaces = 6

type Rules interface {
	MaxAttackDice() int
	MaxDefendDice() int
	// DetermineAttackOutcome compares rolls sorted in descending order.
	DetermineAttackOutcome(attackerRolls, defenderRolls []int) (attackerLosses, defenderLosses int)
}

// Battle fights dice rounds until one side has no troops left and returns the survivors.
func Battle(rules Rules, attackers, defenders int, rng *rand.Rand) (int, int) {
	for attackers > 0 && defenders > 0 {
		attackerRolls := rollDice(min(attackers, rules.MaxAttackDice()), rng)
		defenderRolls := rollDice(min(defenders, rules.MaxDefendDice()), rng)

		attackerLosses, defenderLosses := rules.DetermineAttackOutcome(attackerRolls, defenderRolls)
		attackers -= attackerLosses
		defenders -= defenderLosses
	}
	return max(attackers, 0), max(defenders, 0)
}

func rollDice(num int, rng *rand.Rand) []int {
	rolls := make([]int, num)
	for i := 0; i < num; i++ {
		rolls[i] = rng.Intn(DieFaces) + 1
	}
	sort.Sort(sort.Reverse(sort.IntSlice(rolls)))
	return rolls
}
