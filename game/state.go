package game

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"
)

// TerritoryView is the dynamic view of one territory in a State.
type TerritoryView struct {
	ID     int
	Owner  int
	Troops int
	Bonus  string
}

// State represents the dynamic state of the game at any point: everything except the
// map, which is static. The planner treats a State as an immutable snapshot; only
// the engine mutates it.
type State struct {
	Map         *Map     // Reference to the static game map
	TroopCounts []int    // Troop counts per territory, indexed by territory ID
	Ownership   []int    // Owner IDs per territory, indexed by territory ID (Neutral indicates unowned)
	Hands       [][]Card // Cards per player, indexed by player ID (index 0 unused)
	Players     int      // Number of seats, player IDs are 1..Players
	Agent       int      // The player to move
	Exchanges   int      // Number of card trades so far
}

// NewState initializes and returns a new State with every territory unowned.
func NewState(m *Map, players int) *State {
	size := m.Size()
	s := &State{
		Map:         m,
		TroopCounts: make([]int, size),
		Ownership:   make([]int, size),
		Hands:       make([][]Card, players+1),
		Players:     players,
		Agent:       1,
	}
	for i := range s.Ownership {
		s.Ownership[i] = Neutral
	}
	for i := range s.Hands {
		s.Hands[i] = []Card{}
	}
	return s
}

func (s *State) Copy() *State {
	troopCountsCopy := make([]int, len(s.TroopCounts))
	copy(troopCountsCopy, s.TroopCounts)

	ownershipCopy := make([]int, len(s.Ownership))
	copy(ownershipCopy, s.Ownership)

	handsCopy := make([][]Card, len(s.Hands))
	for i, hand := range s.Hands {
		handCopy := make([]Card, len(hand))
		copy(handCopy, hand)
		handsCopy[i] = handCopy
	}

	return &State{
		Map:         s.Map, // Map is immutable
		TroopCounts: troopCountsCopy,
		Ownership:   ownershipCopy,
		Hands:       handsCopy,
		Players:     s.Players,
		Agent:       s.Agent,
		Exchanges:   s.Exchanges,
	}
}

func (s *State) Territory(id int) TerritoryView {
	return TerritoryView{
		ID:     id,
		Owner:  s.Ownership[id],
		Troops: s.TroopCounts[id],
		Bonus:  s.Map.Territories[id].Bonus,
	}
}

func (s *State) Owner(id int) int {
	return s.Ownership[id]
}

func (s *State) Troops(id int) int {
	return s.TroopCounts[id]
}

// Hand returns the cards held by player.
func (s *State) Hand(player int) []Card {
	if player <= 0 || player >= len(s.Hands) {
		return nil
	}
	return s.Hands[player]
}

// TerritoriesOf returns the territories owned by player in ascending order.
func (s *State) TerritoriesOf(player int) []int {
	territories := []int{}
	for id, owner := range s.Ownership {
		if owner == player {
			territories = append(territories, id)
		}
	}
	return territories
}

// TotalTroops sums the troops on every territory owned by player.
func (s *State) TotalTroops(player int) int {
	total := 0
	for id, owner := range s.Ownership {
		if owner == player {
			total += s.TroopCounts[id]
		}
	}
	return total
}

func (s *State) IsAlive(player int) bool {
	for _, owner := range s.Ownership {
		if owner == player {
			return true
		}
	}
	return false
}

// AlivePlayers returns the players holding at least one territory, ascending.
func (s *State) AlivePlayers() []int {
	seen := make(map[int]bool)
	players := []int{}
	for _, owner := range s.Ownership {
		if owner != Neutral && !seen[owner] {
			seen[owner] = true
			players = append(players, owner)
		}
	}
	sort.Ints(players)
	return players
}

// Opponents returns the living players other than the agent.
func (s *State) Opponents() []int {
	opponents := []int{}
	for _, p := range s.AlivePlayers() {
		if p != s.Agent {
			opponents = append(opponents, p)
		}
	}
	return opponents
}

// BonusOwner returns the player who owns every territory of the bonus, or Neutral if split.
func (s *State) BonusOwner(name string) int {
	bonus, ok := s.Map.Bonuses[name]
	if !ok || len(bonus.TerritoryIDs) == 0 {
		return Neutral
	}
	owner := s.Ownership[bonus.TerritoryIDs[0]]
	for _, id := range bonus.TerritoryIDs[1:] {
		if s.Ownership[id] != owner {
			return Neutral
		}
	}
	return owner
}

// BonusesHeld returns the bonuses fully owned by player, ordered by name.
func (s *State) BonusesHeld(player int) []*Bonus {
	held := []*Bonus{}
	for _, name := range s.Map.BonusNames() {
		if s.BonusOwner(name) == player {
			held = append(held, s.Map.Bonuses[name])
		}
	}
	return held
}

// Reinforcements calculates the number of troops player drafts before card trades.
func (s *State) Reinforcements(player int) int {
	troops := len(s.TerritoriesOf(player)) / TerritoriesPerTroop
	for _, bonus := range s.BonusesHeld(player) {
		troops += bonus.Value
	}
	return max(troops, MinReinforcements)
}

// EnemyNeighbors returns the territories adjacent to id that its owner does not hold.
func (s *State) EnemyNeighbors(id int) []int {
	enemies := []int{}
	for _, n := range s.Map.Neighbors(id) {
		if s.Ownership[n] != s.Ownership[id] {
			enemies = append(enemies, n)
		}
	}
	return enemies
}

// Borders returns the territories of player adjacent to a territory player does not hold.
func (s *State) Borders(player int) []int {
	borders := []int{}
	for _, id := range s.TerritoriesOf(player) {
		if len(s.EnemyNeighbors(id)) > 0 {
			borders = append(borders, id)
		}
	}
	return borders
}

// Internal returns the territories of player surrounded only by its own territories.
func (s *State) Internal(player int) []int {
	internal := []int{}
	for _, id := range s.TerritoriesOf(player) {
		if len(s.EnemyNeighbors(id)) == 0 {
			internal = append(internal, id)
		}
	}
	return internal
}

// AreConnected reports whether a path of territories owned by player links fromID and toID.
func (s *State) AreConnected(fromID, toID, player int) bool {
	if s.Ownership[fromID] != player || s.Ownership[toID] != player {
		return false
	}
	if fromID == toID {
		return true
	}
	visited := map[int]bool{fromID: true}
	queue := []int{fromID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, adjID := range s.Map.Neighbors(current) {
			if visited[adjID] || s.Ownership[adjID] != player {
				continue
			}
			if adjID == toID {
				return true
			}
			visited[adjID] = true
			queue = append(queue, adjID)
		}
	}
	return false
}

// Winner returns the last player standing, if any.
func (s *State) Winner() (int, bool) {
	alive := s.AlivePlayers()
	if len(alive) == 1 {
		return alive[0], true
	}
	return Neutral, false
}

// NextPlayer returns the next living player after the agent.
func (s *State) NextPlayer() int {
	for i := 1; i <= s.Players; i++ {
		p := (s.Agent+i-1)%s.Players + 1
		if s.IsAlive(p) {
			return p
		}
	}
	return s.Agent
}

// Deal shuffles the territories between players round robin with one troop each,
// then scatters the rest of each player's troopsPerPlayer over their territories.
func (s *State) Deal(rng *rand.Rand, troopsPerPlayer int) {
	owned := make([][]int, s.Players+1)
	for i, id := range rng.Perm(s.Map.Size()) {
		player := i%s.Players + 1
		s.Ownership[id] = player
		s.TroopCounts[id] = 1
		owned[player] = append(owned[player], id)
	}
	for player := 1; player <= s.Players; player++ {
		for left := troopsPerPlayer - len(owned[player]); left > 0; left-- {
			s.TroopCounts[owned[player][rng.Intn(len(owned[player]))]]++
		}
	}
}

// Deploy places drafted troops on a territory owned by the agent.
func (s *State) Deploy(id, troops int) error {
	if s.Ownership[id] != s.Agent {
		return fmt.Errorf("cannot deploy: territory %d is not owned by player %d", id, s.Agent)
	}
	if troops < 0 {
		return fmt.Errorf("cannot deploy: negative troops %d", troops)
	}
	s.TroopCounts[id] += troops
	return nil
}

// MoveTroops transfers troops between two connected territories owned by the same player.
func (s *State) MoveTroops(fromID, toID, numTroops int) error {
	owner := s.Ownership[fromID]
	if !s.AreConnected(fromID, toID, owner) {
		return fmt.Errorf("cannot move troops: territories %d and %d are not connected", fromID, toID)
	}
	if numTroops <= 0 || s.TroopCounts[fromID] <= numTroops {
		return fmt.Errorf("cannot move troops: not enough troops in territory %d", fromID)
	}
	s.TroopCounts[fromID] -= numTroops
	s.TroopCounts[toID] += numTroops
	return nil
}

// Attack commits troops from one territory against an adjacent enemy territory and
// fights until one side is wiped out. Surviving attackers occupy a captured territory
// and retreat otherwise.
func (s *State) Attack(attackerID, defenderID, committed int, rules Rules, rng *rand.Rand) (bool, error) {
	if s.Ownership[attackerID] == s.Ownership[defenderID] {
		return false, fmt.Errorf("cannot attack: territory %d is owned by the same player", defenderID)
	}
	if !s.Map.AreAdjacent(attackerID, defenderID) {
		return false, fmt.Errorf("cannot attack: territories %d and %d are not adjacent", attackerID, defenderID)
	}
	if committed <= 0 || s.TroopCounts[attackerID] <= committed {
		return false, fmt.Errorf("cannot attack: not enough troops in territory %d", attackerID)
	}

	survivors, defenders := Battle(rules, committed, s.TroopCounts[defenderID], rng)
	s.TroopCounts[attackerID] -= committed

	if defenders == 0 {
		s.Ownership[defenderID] = s.Ownership[attackerID]
		s.TroopCounts[defenderID] = survivors
		return true, nil
	}
	s.TroopCounts[attackerID] += survivors
	s.TroopCounts[defenderID] = defenders
	return false, nil
}
