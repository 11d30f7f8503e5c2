package agent

import (
	"conquest/advisor"
	"conquest/experiments/metrics"
	"conquest/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent that drafts onto a random territory,
// launches at most one random all-in attack and fortifies between random neighbours.
func NewRandomAgent(rng *rand.Rand) Agent {
	return randomAgent{rng: rng}
}

func (a randomAgent) FindMove(state *game.State) (game.Move, metrics.SearchMetric) {
	owned := state.TerritoriesOf(state.Agent)
	if len(owned) == 0 {
		return game.Move{}, metrics.SearchMetric{}
	}

	draft := advisor.StackDraft(state, owned[a.rng.Intn(len(owned))], advisor.Trades(state))
	drafted := advisor.Drafted(state, draft)
	move := game.Move{Draft: draft}

	attackable := [][2]int{}
	fortifiable := [][2]int{}
	for _, id := range owned {
		if drafted.Troops(id) <= 1 {
			continue
		}
		for _, n := range state.Map.Neighbors(id) {
			if state.Owner(n) == state.Agent {
				fortifiable = append(fortifiable, [2]int{id, n})
			} else {
				attackable = append(attackable, [2]int{id, n})
			}
		}
	}

	if len(attackable) > 0 {
		pick := attackable[a.rng.Intn(len(attackable))]
		troops := drafted.Troops(pick[0]) - 1
		move.Attacks = []game.Attack{{From: pick[0], To: pick[1], AttackTroops: troops, MoveTroops: troops}}
	}
	if len(fortifiable) > 0 {
		pick := fortifiable[a.rng.Intn(len(fortifiable))]
		move.Fortify = &game.Fortify{From: pick[0], To: pick[1], Troops: drafted.Troops(pick[0]) - 1}
	}
	return move, metrics.SearchMetric{}
}
