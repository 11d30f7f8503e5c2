package game

import "math"

// EvaluateResources tallies the player's controlled resources (territories, troops and
// bonuses) against all opponents combined to produce a score between -1 and 1.
func EvaluateResources(s *State, player int) float64 {
	territoryScore, troopScore := s.calculateResourceScores(player)
	bonusScore := s.calculateBonusScore(player)

	return (territoryScore + troopScore + bonusScore) / 3.0
}

// EvaluateBorderStrength also considers how well the player's borders hold up against
// adjacent enemy troops.
func EvaluateBorderStrength(s *State, player int) float64 {
	territoryScore, troopScore := s.calculateResourceScores(player)
	bonusScore := s.calculateBonusScore(player)
	borderScore := s.calculateBorderScore(player)

	return (territoryScore + troopScore + bonusScore + borderScore) / 4
}

func (s *State) calculateResourceScores(player int) (territoryScore, troopScore float64) {
	var territories, troops, otherTerritories, otherTroops float64

	for id, owner := range s.Ownership {
		switch owner {
		case Neutral:
			continue
		case player:
			territories++
			troops += float64(s.TroopCounts[id])
		default:
			otherTerritories++
			otherTroops += float64(s.TroopCounts[id])
		}
	}

	return normalize(territories, otherTerritories), normalize(troops, otherTroops)
}

func (s *State) calculateBonusScore(player int) float64 {
	var mine, others float64

	for _, name := range s.Map.BonusNames() {
		owner := s.BonusOwner(name)
		switch owner {
		case Neutral:
		case player:
			mine += float64(s.Map.Bonuses[name].Value)
		default:
			others += float64(s.Map.Bonuses[name].Value)
		}
	}

	return normalize(mine, others)
}

func (s *State) calculateBorderScore(player int) float64 {
	var mine, others float64

	for id, owner := range s.Ownership {
		if owner == Neutral {
			continue
		}

		troops := float64(s.TroopCounts[id])
		enemyBorders := 0
		troopDiff := 0.0
		for _, n := range s.EnemyNeighbors(id) {
			if s.Ownership[n] == Neutral {
				continue
			}
			enemyBorders++
			troopDiff += troops - float64(s.TroopCounts[n])
		}
		// Square root favours several lines of attack without letting them dominate
		if enemyBorders == 0 {
			continue
		}
		strength := troopDiff / math.Sqrt(float64(enemyBorders))
		if owner == player {
			mine += strength
		} else {
			others += strength
		}
	}

	return normalize(mine, others)
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := math.Abs(value) + math.Abs(otherValue)
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
