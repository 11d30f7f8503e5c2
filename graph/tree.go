package graph

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

var (
	ErrNotLeaf      = errors.New("node is not a removable leaf")
	ErrTrimDiverged = errors.New("trim did not converge")
)

// Tree is a rooted arborescence. Children are kept in ascending order.
type Tree struct {
	Root     int
	parent   map[int]int
	children map[int][]int
}

func NewTree(root int) *Tree {
	return &Tree{
		Root:     root,
		parent:   make(map[int]int),
		children: map[int][]int{root: {}},
	}
}

func (t *Tree) link(from, to int) {
	t.parent[to] = from
	if _, ok := t.children[to]; !ok {
		t.children[to] = []int{}
	}
	siblings := t.children[from]
	i, _ := slices.BinarySearch(siblings, to)
	t.children[from] = slices.Insert(siblings, i, to)
}

func (t *Tree) Contains(id int) bool {
	_, ok := t.children[id]
	return ok
}

func (t *Tree) Parent(id int) (int, bool) {
	p, ok := t.parent[id]
	return p, ok
}

// Children returns a copy of the children of id in ascending order.
func (t *Tree) Children(id int) []int {
	return slices.Clone(t.children[id])
}

func (t *Tree) OutDegree(id int) int {
	return len(t.children[id])
}

// Len returns the number of nodes, root included.
func (t *Tree) Len() int {
	return len(t.children)
}

func (t *Tree) Nodes() []int {
	nodes := make([]int, 0, len(t.children))
	for id := range t.children {
		nodes = append(nodes, id)
	}
	sort.Ints(nodes)
	return nodes
}

// Leaves returns the non-root nodes without children, ascending.
func (t *Tree) Leaves() []int {
	leaves := []int{}
	for _, id := range t.Nodes() {
		if id != t.Root && t.OutDegree(id) == 0 {
			leaves = append(leaves, id)
		}
	}
	return leaves
}

// Remove deletes a non-root leaf.
func (t *Tree) Remove(id int) error {
	if id == t.Root || !t.Contains(id) || t.OutDegree(id) > 0 {
		return fmt.Errorf("remove %d: %w", id, ErrNotLeaf)
	}
	p := t.parent[id]
	siblings := t.children[p]
	if i, found := slices.BinarySearch(siblings, id); found {
		t.children[p] = slices.Delete(siblings, i, i+1)
	}
	delete(t.parent, id)
	delete(t.children, id)
	return nil
}

// Trim repeatedly removes leaves that keep rejects until a pass removes nothing,
// and returns the number of nodes removed. Every pass must shrink the tree, so
// more passes than nodes means the tree is corrupt.
func (t *Tree) Trim(keep func(id int) bool) (int, error) {
	removed := 0
	limit := t.Len()
	for pass := 0; ; pass++ {
		if pass > limit {
			return removed, ErrTrimDiverged
		}
		dead := []int{}
		for _, id := range t.Leaves() {
			if !keep(id) {
				dead = append(dead, id)
			}
		}
		if len(dead) == 0 {
			return removed, nil
		}
		for _, id := range dead {
			if err := t.Remove(id); err != nil {
				return removed, err
			}
		}
		removed += len(dead)
	}
}

// BranchCount sums max(0, out-degree - 1) over every node.
func (t *Tree) BranchCount() int {
	branches := 0
	for _, children := range t.children {
		branches += max(0, len(children)-1)
	}
	return branches
}

// Walk visits every edge depth first from the root, children in ascending order.
func (t *Tree) Walk(visit func(from, to int)) {
	var walk func(id int)
	walk = func(id int) {
		for _, child := range t.children[id] {
			visit(id, child)
			walk(child)
		}
	}
	walk(t.Root)
}

// Edges returns the tree edges in Walk order.
func (t *Tree) Edges() [][2]int {
	edges := [][2]int{}
	t.Walk(func(from, to int) {
		edges = append(edges, [2]int{from, to})
	})
	return edges
}
