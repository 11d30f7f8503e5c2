// Package odds answers how many attacking troops are needed to capture a
// territory safely.
package odds

import (
	"sort"
	"sync"

	"conquest/game"
)

// DefaultConfidence is the capture probability a force must reach to count as safe.
const DefaultConfidence = 0.8

// MaxAttackers bounds the search for a safe force.
const MaxAttackers = 1000

type Table interface {
	// TroopsNeeded returns the attacking force for a statistically safe capture of a
	// territory defended by defenders troops.
	TroopsNeeded(defenders int) int
}

type roll struct {
	attackerLosses int
	defenderLosses int
	probability    float64
}

type key struct {
	attackers int
	defenders int
}

// DiceTable computes capture odds exactly from the dice rules and memoises them.
type DiceTable struct {
	confidence float64
	rules      game.Rules
	outcomes   map[key][]roll
	capture    map[key]float64
	losses     map[key]float64
	needed     map[int]int
	mu         sync.Mutex
}

func NewDiceTable(rules game.Rules, confidence float64) *DiceTable {
	if confidence <= 0 || confidence >= 1 {
		confidence = DefaultConfidence
	}
	return &DiceTable{
		confidence: confidence,
		rules:      rules,
		outcomes:   make(map[key][]roll),
		capture:    make(map[key]float64),
		losses:     make(map[key]float64),
		needed:     make(map[int]int),
	}
}

func (t *DiceTable) TroopsNeeded(defenders int) int {
	if defenders <= 0 {
		return 1
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if n, ok := t.needed[defenders]; ok {
		return n
	}
	n := 1
	for n < MaxAttackers && t.captureProbability(n, defenders) < t.confidence {
		n++
	}
	t.needed[defenders] = n
	return n
}

// CaptureProbability returns the chance that attackers wipe out defenders before being wiped out.
func (t *DiceTable) CaptureProbability(attackers, defenders int) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.captureProbability(attackers, defenders)
}

// ExpectedLosses returns the attackers expected to die in a fight to the finish.
func (t *DiceTable) ExpectedLosses(attackers, defenders int) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expectedLosses(attackers, defenders)
}

func (t *DiceTable) captureProbability(attackers, defenders int) float64 {
	if defenders <= 0 {
		return 1
	}
	if attackers <= 0 {
		return 0
	}
	k := key{attackers, defenders}
	if p, ok := t.capture[k]; ok {
		return p
	}
	p := 0.0
	for _, r := range t.rollOutcomes(attackers, defenders) {
		p += r.probability * t.captureProbability(attackers-r.attackerLosses, defenders-r.defenderLosses)
	}
	t.capture[k] = p
	return p
}

func (t *DiceTable) expectedLosses(attackers, defenders int) float64 {
	if attackers <= 0 || defenders <= 0 {
		return 0
	}
	k := key{attackers, defenders}
	if e, ok := t.losses[k]; ok {
		return e
	}
	e := 0.0
	for _, r := range t.rollOutcomes(attackers, defenders) {
		e += r.probability * (float64(r.attackerLosses) + t.expectedLosses(attackers-r.attackerLosses, defenders-r.defenderLosses))
	}
	t.losses[k] = e
	return e
}

// rollOutcomes enumerates every roll of one round and groups them by losses.
func (t *DiceTable) rollOutcomes(attackers, defenders int) []roll {
	dice := key{min(attackers, t.rules.MaxAttackDice()), min(defenders, t.rules.MaxDefendDice())}
	if outcomes, ok := t.outcomes[dice]; ok {
		return outcomes
	}

	counts := map[[2]int]int{}
	total := 0
	attackerRolls := make([]int, dice.attackers)
	defenderRolls := make([]int, dice.defenders)
	all := make([]int, dice.attackers+dice.defenders)
	var enumerate func(i int)
	enumerate = func(i int) {
		if i == len(all) {
			copy(attackerRolls, all[:dice.attackers])
			copy(defenderRolls, all[dice.attackers:])
			sort.Sort(sort.Reverse(sort.IntSlice(attackerRolls)))
			sort.Sort(sort.Reverse(sort.IntSlice(defenderRolls)))
			a, d := t.rules.DetermineAttackOutcome(attackerRolls, defenderRolls)
			counts[[2]int{a, d}]++
			total++
			return
		}
		for face := 1; face <= game.DieFaces; face++ {
			all[i] = face
			enumerate(i + 1)
		}
	}
	enumerate(0)

	outcomes := make([]roll, 0, len(counts))
	for losses, count := range counts {
		outcomes = append(outcomes, roll{
			attackerLosses: losses[0],
			defenderLosses: losses[1],
			probability:    float64(count) / float64(total),
		})
	}
	sort.Slice(outcomes, func(i, j int) bool {
		if outcomes[i].attackerLosses != outcomes[j].attackerLosses {
			return outcomes[i].attackerLosses < outcomes[j].attackerLosses
		}
		return outcomes[i].defenderLosses < outcomes[j].defenderLosses
	})
	t.outcomes[dice] = outcomes
	return outcomes
}
