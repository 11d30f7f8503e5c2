package intent

import (
	"sort"

	"conquest/game"
)

// Resolver maps intents to the territories the agent must capture for them.
// Resolution only reads the snapshot, so repeated calls give identical results.
type Resolver struct {
	state   *game.State
	borders []int
}

func NewResolver(state *game.State) *Resolver {
	return &Resolver{state: state, borders: state.Map.BorderTerritories()}
}

// Resolve returns the sorted targets of an intent and whether the intent is
// currently feasible. Targets never include the agent's own territories.
func (r *Resolver) Resolve(in Intent) ([]int, bool) {
	switch in.Kind {
	case NoAttack:
		return []int{}, true
	case KillPlayer:
		return r.kill(in.Player)
	case TakeBonus:
		return r.takeBonus(in.Bonus)
	case BreakBonus:
		return r.breakBonus(in.Player, in.Bonus)
	case ExpandBorders:
		return r.weakest(r.frontier(r.borders))
	case TakeCard:
		return r.weakest(r.frontier(r.state.Map.IDs()))
	case TakeTerritories:
		return r.grow(in.Budget)
	}
	return nil, false
}

func (r *Resolver) kill(player int) ([]int, bool) {
	if player == r.state.Agent || player == game.Neutral {
		return nil, false
	}
	targets := r.state.TerritoriesOf(player)
	return targets, len(targets) > 0
}

func (r *Resolver) takeBonus(name string) ([]int, bool) {
	bonus, ok := r.state.Map.Bonuses[name]
	if !ok {
		return nil, false
	}
	targets := []int{}
	for _, id := range bonus.TerritoryIDs {
		if r.state.Owner(id) != r.state.Agent {
			targets = append(targets, id)
		}
	}
	return targets, len(targets) > 0
}

// breakBonus picks the weakest border territory of a bonus the player holds.
func (r *Resolver) breakBonus(player int, name string) ([]int, bool) {
	bonus, ok := r.state.Map.Bonuses[name]
	if !ok || player == r.state.Agent || r.state.BonusOwner(name) != player {
		return nil, false
	}
	inBonus := map[int]bool{}
	for _, id := range bonus.TerritoryIDs {
		inBonus[id] = true
	}
	candidates := []int{}
	for _, id := range r.borders {
		if inBonus[id] {
			candidates = append(candidates, id)
		}
	}
	return r.weakest(candidates)
}

// frontier keeps the candidates the agent does not own but borders.
func (r *Resolver) frontier(candidates []int) []int {
	agent := r.state.Agent
	result := []int{}
	for _, id := range candidates {
		if r.state.Owner(id) == agent {
			continue
		}
		for _, n := range r.state.Map.Neighbors(id) {
			if r.state.Owner(n) == agent {
				result = append(result, id)
				break
			}
		}
	}
	return result
}

// weakest returns the candidate with the fewest troops, lowest id on ties.
func (r *Resolver) weakest(candidates []int) ([]int, bool) {
	best := -1
	for _, id := range candidates {
		if best == -1 || r.state.Troops(id) < r.state.Troops(best) ||
			(r.state.Troops(id) == r.state.Troops(best) && id < best) {
			best = id
		}
	}
	if best == -1 {
		return nil, false
	}
	return []int{best}, true
}

// grow queues unseen neighbours breadth first from the agent's territories until
// budget territories are queued or no growth is possible.
func (r *Resolver) grow(budget int) ([]int, bool) {
	if budget <= 0 {
		return nil, false
	}
	queue := r.state.TerritoriesOf(r.state.Agent)
	seen := map[int]bool{}
	for _, id := range queue {
		seen[id] = true
	}
	targets := []int{}
	for len(queue) > 0 && len(targets) < budget {
		current := queue[0]
		queue = queue[1:]
		for _, n := range r.state.Map.Neighbors(current) {
			if seen[n] {
				continue
			}
			seen[n] = true
			targets = append(targets, n)
			queue = append(queue, n)
			if len(targets) == budget {
				break
			}
		}
	}
	sort.Ints(targets)
	return targets, len(targets) > 0
}
