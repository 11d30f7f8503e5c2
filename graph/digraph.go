// Package graph provides the weighted directed graph and spanning tree types
// used to route attacks.
package graph

import "sort"

type Edge struct {
	From   int
	To     int
	Weight float64
}

// Digraph is a weighted directed graph without parallel edges or self loops.
type Digraph struct {
	out map[int]map[int]float64
}

func NewDigraph() *Digraph {
	return &Digraph{out: make(map[int]map[int]float64)}
}

func (g *Digraph) AddNode(id int) {
	if _, ok := g.out[id]; !ok {
		g.out[id] = make(map[int]float64)
	}
}

// AddEdge adds or reweights the edge from -> to. Self loops are ignored.
func (g *Digraph) AddEdge(from, to int, weight float64) {
	if from == to {
		return
	}
	g.AddNode(from)
	g.AddNode(to)
	g.out[from][to] = weight
}

func (g *Digraph) HasNode(id int) bool {
	_, ok := g.out[id]
	return ok
}

func (g *Digraph) Weight(from, to int) (float64, bool) {
	w, ok := g.out[from][to]
	return w, ok
}

func (g *Digraph) Len() int {
	return len(g.out)
}

// Nodes returns the node ids in ascending order.
func (g *Digraph) Nodes() []int {
	nodes := make([]int, 0, len(g.out))
	for id := range g.out {
		nodes = append(nodes, id)
	}
	sort.Ints(nodes)
	return nodes
}

// Successors returns the heads of the edges leaving id in ascending order.
func (g *Digraph) Successors(id int) []int {
	successors := make([]int, 0, len(g.out[id]))
	for to := range g.out[id] {
		successors = append(successors, to)
	}
	sort.Ints(successors)
	return successors
}

// Edges returns every edge ordered by tail then head.
func (g *Digraph) Edges() []Edge {
	edges := []Edge{}
	for _, from := range g.Nodes() {
		for _, to := range g.Successors(from) {
			edges = append(edges, Edge{From: from, To: to, Weight: g.out[from][to]})
		}
	}
	return edges
}

func (g *Digraph) Copy() *Digraph {
	c := NewDigraph()
	for from, edges := range g.out {
		c.AddNode(from)
		for to, w := range edges {
			c.out[from][to] = w
		}
	}
	return c
}

// Reachable returns the nodes reachable from root, root included, ascending.
func (g *Digraph) Reachable(root int) []int {
	if !g.HasNode(root) {
		return nil
	}
	visited := map[int]bool{root: true}
	queue := []int{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range g.Successors(current) {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	nodes := make([]int, 0, len(visited))
	for id := range visited {
		nodes = append(nodes, id)
	}
	sort.Ints(nodes)
	return nodes
}
