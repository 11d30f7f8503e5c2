package game

type StandardRules struct {
	AttackDice int
	DefendDice int
}

func NewStandardRules() *StandardRules {
	return &StandardRules{
		AttackDice: 3,
		DefendDice: 2,
	}
}

func (sr *StandardRules) MaxAttackDice() int {
	return sr.AttackDice
}

func (sr *StandardRules) MaxDefendDice() int {
	return sr.DefendDice
}

func (sr *StandardRules) DetermineAttackOutcome(attackerRolls, defenderRolls []int) (attackerLosses, defenderLosses int) {
	// Highest dice are paired off, ties go to the defender
	battles := min(len(attackerRolls), len(defenderRolls))
	for i := 0; i < battles; i++ {
		if attackerRolls[i] > defenderRolls[i] {
			defenderLosses++
		} else {
			attackerLosses++
		}
	}
	return
}
