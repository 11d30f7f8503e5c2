// Package attack routes captures through the map: it picks the attacking stack,
// builds the cheapest tree of attacks reaching every target and splits troops
// along it.
package attack

import (
	"fmt"
	"sort"

	"conquest/game"
	"conquest/graph"
	"conquest/utils"
)

// NoStack is the stack of a plan that needs no attack.
const NoStack = -1

// Weights tune stack classification and the desirability of routing through a territory.
type Weights struct {
	StackPercent      int     `yaml:"stack_percent"`       // share of total troops making a stack
	StackMinimum      int     `yaml:"stack_minimum"`       // troops always making a stack
	TargetDiscount    float64 `yaml:"target_discount"`     // per neighbour that is also a target
	ThirdPartyPenalty float64 `yaml:"third_party_penalty"` // per neighbour outside the targets held by someone else
	MinWeight         float64 `yaml:"min_weight"`
	TransitMultiplier float64 `yaml:"transit_multiplier"` // applied to territories outside the targets
	StackEdgeFactor   float64 `yaml:"stack_edge_factor"`  // applied to edges leaving the stack
}

func DefaultWeights() Weights {
	return Weights{
		StackPercent:      10,
		StackMinimum:      10,
		TargetDiscount:    0.1,
		ThirdPartyPenalty: 0.1,
		MinWeight:         0.1,
		TransitMultiplier: 10000,
		StackEdgeFactor:   0.1,
	}
}

// Stacks returns the territories of player holding at least StackPercent of its
// troops or at least StackMinimum troops, ascending.
func Stacks(state *game.State, player int, w Weights) []int {
	total := state.TotalTroops(player)
	stacks := []int{}
	for _, id := range state.TerritoriesOf(player) {
		troops := state.Troops(id)
		if troops*100 >= total*w.StackPercent || troops >= w.StackMinimum {
			stacks = append(stacks, id)
		}
	}
	return stacks
}

// Plan is the trimmed attack tree chosen for a set of targets.
type Plan struct {
	Stack    int
	Tree     *graph.Tree
	Targets  []int
	Cost     int // troops on every captured territory, the stack excluded
	Branches int
}

// Empty reports whether the plan needs no attack.
func (p *Plan) Empty() bool {
	return p.Tree == nil
}

// Synthesizer finds attack plans for the agent of one snapshot.
type Synthesizer struct {
	state   *game.State
	weights Weights
	stacks  []int
}

func NewSynthesizer(state *game.State, weights Weights) *Synthesizer {
	return &Synthesizer{
		state:   state,
		weights: weights,
		stacks:  Stacks(state, state.Agent, weights),
	}
}

// Synthesize returns the cheapest plan capturing every target the agent does not
// already own. The cost only counts troops the attacks must defeat, so the stack's
// own troops never enter it and are instead preferred on ties: among stacks of
// equal cost the plan with fewer branch points wins, then the larger stack, then
// the lower id.
func (s *Synthesizer) Synthesize(targets []int) (*Plan, error) {
	agent := s.state.Agent
	wanted := map[int]bool{}
	required := []int{}
	for _, id := range targets {
		if s.state.Owner(id) != agent && !wanted[id] {
			wanted[id] = true
			required = append(required, id)
		}
	}
	sort.Ints(required)
	if len(required) == 0 {
		return &Plan{Stack: NoStack, Targets: required}, nil
	}

	component := s.component(required)
	if component == nil {
		return nil, fmt.Errorf("%w: %v", ErrDisconnectedTargets, required)
	}
	inComponent := utils.Set(component)

	candidates := []int{}
	for _, stack := range s.stacks {
		for _, n := range s.state.Map.Neighbors(stack) {
			if inComponent[n] {
				candidates = append(candidates, stack)
				break
			}
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoStack, required)
	}

	weights := make(map[int]float64, len(component))
	for _, id := range component {
		weights[id] = s.weight(id, wanted)
	}
	base := graph.NewDigraph()
	for _, u := range component {
		base.AddNode(u)
		for _, v := range s.state.Map.Neighbors(u) {
			if inComponent[v] {
				base.AddEdge(u, v, weights[v])
			}
		}
	}

	var best *Plan
	for _, stack := range candidates {
		plan, err := s.plan(base, stack, weights, inComponent, wanted, required)
		if err != nil {
			return nil, err
		}
		if best == nil || s.better(plan, best) {
			best = plan
		}
	}
	return best, nil
}

// component returns the non-agent component holding every target, or nil.
func (s *Synthesizer) component(targets []int) []int {
	agent := s.state.Agent
	components := s.state.Map.Components(func(id int) bool {
		return s.state.Owner(id) != agent
	})
	for _, component := range components {
		members := utils.Set(component)
		if !members[targets[0]] {
			continue
		}
		for _, id := range targets[1:] {
			if !members[id] {
				return nil
			}
		}
		return component
	}
	return nil
}

// weight scores how undesirable it is to capture id: its troops, discounted for
// neighbouring targets and penalised for neighbours held by others. Territories
// outside the targets are only worth crossing when nothing else connects.
func (s *Synthesizer) weight(id int, wanted map[int]bool) float64 {
	w := float64(s.state.Troops(id))
	for _, n := range s.state.Map.Neighbors(id) {
		switch {
		case wanted[n]:
			w -= s.weights.TargetDiscount
		case s.state.Owner(n) != s.state.Agent:
			w += s.weights.ThirdPartyPenalty
		}
	}
	w = max(w, s.weights.MinWeight)
	if !wanted[id] {
		w *= s.weights.TransitMultiplier
	}
	return w
}

func (s *Synthesizer) plan(base *graph.Digraph, stack int, weights map[int]float64, inComponent, wanted map[int]bool, targets []int) (*Plan, error) {
	g := base.Copy()
	for _, n := range s.state.Map.Neighbors(stack) {
		if inComponent[n] {
			g.AddEdge(stack, n, s.weights.StackEdgeFactor*weights[n])
		}
	}

	tree, err := graph.MinimumArborescence(g, stack)
	if err != nil {
		return nil, fmt.Errorf("stack %d: %w", stack, err)
	}
	if _, err := tree.Trim(func(id int) bool { return wanted[id] }); err != nil {
		return nil, fmt.Errorf("stack %d: %w", stack, err)
	}

	for _, id := range targets {
		if !tree.Contains(id) {
			return nil, fmt.Errorf("%w: stack %d target %d", ErrUnreachableTarget, stack, id)
		}
	}
	// The root is the agent's own stack, never captured
	cost := 0
	for _, id := range tree.Nodes() {
		if id == stack {
			continue
		}
		if s.state.Owner(id) == s.state.Agent {
			return nil, fmt.Errorf("%w: stack %d node %d", ErrOwnedTransit, stack, id)
		}
		cost += s.state.Troops(id)
	}

	return &Plan{
		Stack:    stack,
		Tree:     tree,
		Targets:  targets,
		Cost:     cost,
		Branches: tree.BranchCount(),
	}, nil
}

// better orders plans by cost, branch points, stack troops and stack id.
func (s *Synthesizer) better(a, b *Plan) bool {
	if a.Cost != b.Cost {
		return a.Cost < b.Cost
	}
	if a.Branches != b.Branches {
		return a.Branches < b.Branches
	}
	if s.state.Troops(a.Stack) != s.state.Troops(b.Stack) {
		return s.state.Troops(a.Stack) > s.state.Troops(b.Stack)
	}
	return a.Stack < b.Stack
}
