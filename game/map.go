package game

import (
	"fmt"
	"slices"
	"sort"
)

type Territory struct {
	ID          int    // Unique identifier, also the index into State slices
	Name        string // Display name
	Bonus       string // Name of the bonus group the territory belongs to
	AdjacentIDs []int  // IDs of adjacent territories, ascending
}

// Bonus is a group of territories that grants Value troops to a player holding all of them.
type Bonus struct {
	Name         string
	Value        int
	TerritoryIDs []int
}

// Map represents the game map. It is built once and shared read-only by every State.
type Map struct {
	Territories map[int]*Territory
	Bonuses     map[string]*Bonus
}

// NewMap creates and returns a new Map instance.
func NewMap() *Map {
	return &Map{
		Territories: make(map[int]*Territory),
		Bonuses:     make(map[string]*Bonus),
	}
}

// AddTerritory adds a new territory to the map.
func (m *Map) AddTerritory(id int, name string) *Territory {
	t := &Territory{ID: id, Name: name, AdjacentIDs: []int{}}
	m.Territories[id] = t
	return t
}

// AddBonus registers a bonus group and tags its territories with it.
func (m *Map) AddBonus(name string, value int, ids ...int) {
	b := &Bonus{Name: name, Value: value, TerritoryIDs: slices.Clone(ids)}
	sort.Ints(b.TerritoryIDs)
	m.Bonuses[name] = b
	for _, id := range ids {
		if t, ok := m.Territories[id]; ok {
			t.Bonus = name
		}
	}
}

// AddBorder adds a bidirectional border between two territories.
func (m *Map) AddBorder(id1, id2 int) {
	m.Territories[id1].AdjacentIDs = insertSorted(m.Territories[id1].AdjacentIDs, id2)
	m.Territories[id2].AdjacentIDs = insertSorted(m.Territories[id2].AdjacentIDs, id1)
}

func insertSorted(ids []int, id int) []int {
	i, found := slices.BinarySearch(ids, id)
	if found {
		return ids
	}
	return slices.Insert(ids, i, id)
}

// Size returns the number of territories.
func (m *Map) Size() int {
	return len(m.Territories)
}

// IDs returns every territory id in ascending order.
func (m *Map) IDs() []int {
	ids := make([]int, 0, len(m.Territories))
	for id := range m.Territories {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Neighbors returns the ids adjacent to id, ascending. The slice must not be modified.
func (m *Map) Neighbors(id int) []int {
	t, ok := m.Territories[id]
	if !ok {
		return nil
	}
	return t.AdjacentIDs
}

// AreAdjacent checks if two territories share a border.
func (m *Map) AreAdjacent(id1, id2 int) bool {
	_, found := slices.BinarySearch(m.Neighbors(id1), id2)
	return found
}

// BonusOf returns the bonus group of a territory, or nil.
func (m *Map) BonusOf(id int) *Bonus {
	t, ok := m.Territories[id]
	if !ok {
		return nil
	}
	return m.Bonuses[t.Bonus]
}

// BonusNames returns bonus names in ascending order.
func (m *Map) BonusNames() []string {
	names := make([]string, 0, len(m.Bonuses))
	for name := range m.Bonuses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BorderTerritories returns the territories adjacent to a territory of another bonus group.
func (m *Map) BorderTerritories() []int {
	borders := []int{}
	for _, id := range m.IDs() {
		t := m.Territories[id]
		for _, n := range t.AdjacentIDs {
			if m.Territories[n].Bonus != t.Bonus {
				borders = append(borders, id)
				break
			}
		}
	}
	return borders
}

// Components returns the connected components of the subgraph induced by the
// territories for which include returns true. Each component is sorted and
// components are ordered by their smallest id.
func (m *Map) Components(include func(id int) bool) [][]int {
	visited := make(map[int]bool)
	components := [][]int{}
	for _, start := range m.IDs() {
		if visited[start] || !include(start) {
			continue
		}
		component := []int{}
		queue := []int{start}
		visited[start] = true
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			component = append(component, current)
			for _, n := range m.Neighbors(current) {
				if !visited[n] && include(n) {
					visited[n] = true
					queue = append(queue, n)
				}
			}
		}
		sort.Ints(component)
		components = append(components, component)
	}
	return components
}

// Validate checks that ids are contiguous from zero, borders are symmetric and
// every territory belongs to exactly one known bonus group.
func (m *Map) Validate() error {
	for i, id := range m.IDs() {
		if i != id {
			return fmt.Errorf("territory ids must be contiguous from 0: missing %d", i)
		}
	}
	for id, t := range m.Territories {
		for _, n := range t.AdjacentIDs {
			if n == id {
				return fmt.Errorf("territory %d borders itself", id)
			}
			if !m.AreAdjacent(n, id) {
				return fmt.Errorf("border %d-%d is not symmetric", id, n)
			}
		}
		if _, ok := m.Bonuses[t.Bonus]; !ok {
			return fmt.Errorf("territory %d has unknown bonus %q", id, t.Bonus)
		}
	}
	seen := make(map[int]string)
	for name, b := range m.Bonuses {
		for _, id := range b.TerritoryIDs {
			if _, ok := m.Territories[id]; !ok {
				return fmt.Errorf("bonus %q references unknown territory %d", name, id)
			}
			if other, dup := seen[id]; dup {
				return fmt.Errorf("territory %d is in bonuses %q and %q", id, other, name)
			}
			seen[id] = name
		}
	}
	return nil
}

// MapSpec is the serialisable description of a map.
type MapSpec struct {
	Territories []string    `yaml:"territories"`
	Bonuses     []BonusSpec `yaml:"bonuses"`
	Borders     [][2]int    `yaml:"borders"`
}

type BonusSpec struct {
	Name        string `yaml:"name"`
	Value       int    `yaml:"value"`
	Territories []int  `yaml:"territories"`
}

// BuildMap creates a map from a spec, numbering territories by their position.
func BuildMap(spec MapSpec) (*Map, error) {
	m := NewMap()
	for id, name := range spec.Territories {
		m.AddTerritory(id, name)
	}
	for _, edge := range spec.Borders {
		for _, id := range edge {
			if _, ok := m.Territories[id]; !ok {
				return nil, fmt.Errorf("border %v references unknown territory %d", edge, id)
			}
		}
		m.AddBorder(edge[0], edge[1])
	}
	for _, b := range spec.Bonuses {
		m.AddBonus(b.Name, b.Value, b.Territories...)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid map: %w", err)
	}
	return m, nil
}
