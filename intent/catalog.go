package intent

import (
	"sort"

	"conquest/game"
	"conquest/utils"
)

// Catalog holds the intents that can be pursued from one snapshot, with their
// resolved targets. It is built once per planning pass.
type Catalog struct {
	state   *game.State
	rewards Rewards
	intents []Intent
	targets map[Intent][]int
}

// NewCatalog instantiates every feasible intent: a kill per living opponent, a
// take per bonus the agent lacks, a break per bonus an opponent holds, and at most
// one each of expand, card, territories and no attack.
func NewCatalog(state *game.State, territoryBudget int, rewards Rewards) *Catalog {
	c := &Catalog{
		state:   state,
		rewards: rewards,
		targets: make(map[Intent][]int),
	}
	resolver := NewResolver(state)

	candidates := []Intent{Pass(), Expand(), Card(), Territories(territoryBudget)}
	for _, opponent := range state.Opponents() {
		candidates = append(candidates, Kill(opponent))
	}
	for _, name := range state.Map.BonusNames() {
		owner := state.BonusOwner(name)
		if owner == state.Agent {
			continue
		}
		candidates = append(candidates, Take(name, owner))
		if owner != game.Neutral {
			candidates = append(candidates, Break(owner, name))
		}
	}

	for _, in := range candidates {
		targets, ok := resolver.Resolve(in)
		if !ok {
			continue
		}
		c.intents = append(c.intents, in)
		c.targets[in] = targets
	}
	sort.Slice(c.intents, func(i, j int) bool { return less(c.intents[i], c.intents[j]) })
	return c
}

// Intents returns every instantiated intent in deterministic order.
func (c *Catalog) Intents() []Intent {
	return c.intents
}

// Generate returns the combinations to evaluate at depth. Depth 0 is the single
// empty combination, depth 1 every intent on its own, and deeper levels every
// valid depth-sized set of compound intents.
func (c *Catalog) Generate(depth int) []Combination {
	switch {
	case depth < 0:
		return nil
	case depth == 0:
		return []Combination{{}}
	case depth == 1:
		combinations := make([]Combination, len(c.intents))
		for i, in := range c.intents {
			combinations[i] = Combination{in}
		}
		return combinations
	}

	compound := []Intent{}
	for _, in := range c.intents {
		if in.Kind.Compound() {
			compound = append(compound, in)
		}
	}
	combinations := []Combination{}
	for _, subset := range utils.Combinations(compound, depth) {
		if Validate(subset) {
			combinations = append(combinations, subset)
		}
	}
	return combinations
}

// Targets returns the sorted union of the targets of every intent in the combination.
func (c *Catalog) Targets(comb Combination) []int {
	seen := map[int]bool{}
	union := []int{}
	for _, in := range comb {
		for _, id := range c.targets[in] {
			if !seen[id] {
				seen[id] = true
				union = append(union, id)
			}
		}
	}
	sort.Ints(union)
	return union
}

// Reward sums the static rewards of the intents in the combination.
func (c *Catalog) Reward(comb Combination) float64 {
	total := 0.0
	for _, in := range comb {
		total += c.reward(in)
	}
	return total
}

func (c *Catalog) reward(in Intent) float64 {
	switch in.Kind {
	case KillPlayer:
		return c.rewards.Kill
	case TakeBonus:
		return c.rewards.BonusFactor * float64(c.bonusValue(in.Bonus))
	case BreakBonus:
		return c.rewards.BreakFactor * float64(c.bonusValue(in.Bonus))
	case ExpandBorders:
		return c.rewards.Expand
	case TakeCard:
		return c.rewards.Card
	case TakeTerritories:
		return c.rewards.Territory * float64(len(c.targets[in]))
	}
	return 0
}

func (c *Catalog) bonusValue(name string) int {
	if b, ok := c.state.Map.Bonuses[name]; ok {
		return b.Value
	}
	return 0
}
