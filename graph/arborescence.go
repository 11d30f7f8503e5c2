package graph

import "errors"

var ErrUnknownRoot = errors.New("root is not in the graph")

type arc struct {
	from   int
	to     int
	weight float64
}

// MinimumArborescence computes the minimum weight spanning arborescence rooted at
// root over the nodes reachable from it, using the Chu-Liu/Edmonds algorithm.
// Ties between equal weight edges go to the lower tail id.
func MinimumArborescence(g *Digraph, root int) (*Tree, error) {
	if !g.HasNode(root) {
		return nil, ErrUnknownRoot
	}

	nodes := g.Reachable(root)
	reachable := make(map[int]bool, len(nodes))
	for _, id := range nodes {
		reachable[id] = true
	}
	arcs := []arc{}
	for _, e := range g.Edges() {
		if reachable[e.From] && reachable[e.To] && e.To != root {
			arcs = append(arcs, arc{from: e.From, to: e.To, weight: e.Weight})
		}
	}

	tree := NewTree(root)
	for _, i := range edmonds(nodes, arcs, root) {
		tree.link(arcs[i].from, arcs[i].to)
	}
	return tree, nil
}

// edmonds returns the indices of the arcs forming the minimum arborescence.
func edmonds(nodes []int, arcs []arc, root int) []int {
	best := cheapestIncoming(arcs, root)

	cycle := findCycle(nodes, arcs, best, root)
	if cycle == nil {
		selected := make([]int, 0, len(best))
		for _, id := range nodes {
			if i, ok := best[id]; ok && id != root {
				selected = append(selected, i)
			}
		}
		return selected
	}

	// Contract the cycle into a super node; arcs entering it are reduced by the
	// weight of the cycle arc they would replace
	inCycle := make(map[int]bool, len(cycle))
	for _, id := range cycle {
		inCycle[id] = true
	}
	super := nodes[0]
	for _, id := range nodes {
		super = max(super, id)
	}
	super++

	contracted := []int{}
	for _, id := range nodes {
		if !inCycle[id] {
			contracted = append(contracted, id)
		}
	}
	contracted = append(contracted, super)

	reduced := []arc{}
	origin := []int{}
	for i, a := range arcs {
		fromIn, toIn := inCycle[a.from], inCycle[a.to]
		switch {
		case fromIn && toIn:
			continue
		case toIn:
			reduced = append(reduced, arc{from: a.from, to: super, weight: a.weight - arcs[best[a.to]].weight})
		case fromIn:
			reduced = append(reduced, arc{from: super, to: a.to, weight: a.weight})
		default:
			reduced = append(reduced, a)
		}
		origin = append(origin, i)
	}

	// Expand: keep every cycle arc except the one into the node the cycle is entered by
	selected := []int{}
	entry := -1
	for _, k := range edmonds(contracted, reduced, root) {
		selected = append(selected, origin[k])
		if reduced[k].to == super {
			entry = arcs[origin[k]].to
		}
	}
	for _, id := range cycle {
		if id != entry {
			selected = append(selected, best[id])
		}
	}
	return selected
}

func cheapestIncoming(arcs []arc, root int) map[int]int {
	best := make(map[int]int)
	for i, a := range arcs {
		if a.to == root || a.from == a.to {
			continue
		}
		j, ok := best[a.to]
		if !ok || a.weight < arcs[j].weight || (a.weight == arcs[j].weight && a.from < arcs[j].from) {
			best[a.to] = i
		}
	}
	return best
}

// findCycle follows the cheapest incoming arcs backwards and returns the first cycle met.
func findCycle(nodes []int, arcs []arc, best map[int]int, root int) []int {
	const (
		unvisited = iota
		onPath
		done
	)
	state := make(map[int]int, len(nodes))
	for _, start := range nodes {
		path := []int{}
		id := start
		cyclic := false
		for id != root && state[id] != done {
			if state[id] == onPath {
				cyclic = true
				break
			}
			state[id] = onPath
			path = append(path, id)
			i, ok := best[id]
			if !ok {
				break
			}
			id = arcs[i].from
		}
		if cyclic {
			for i, p := range path {
				if p == id {
					return append([]int{}, path[i:]...)
				}
			}
		}
		for _, p := range path {
			state[p] = done
		}
	}
	return nil
}
