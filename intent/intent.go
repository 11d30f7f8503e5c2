// Package intent turns strategic goals into the territories that have to be
// captured to reach them, and enumerates which goals can be pursued together.
package intent

import (
	"fmt"
	"strings"
)

type Kind int

const (
	NoAttack Kind = iota
	KillPlayer
	TakeBonus
	BreakBonus
	ExpandBorders
	TakeCard
	TakeTerritories
)

func (k Kind) String() string {
	switch k {
	case NoAttack:
		return "noattack"
	case KillPlayer:
		return "kill"
	case TakeBonus:
		return "take"
	case BreakBonus:
		return "break"
	case ExpandBorders:
		return "expand"
	case TakeCard:
		return "card"
	case TakeTerritories:
		return "territories"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Compound reports whether intents of this kind may be combined with others in one turn.
func (k Kind) Compound() bool {
	switch k {
	case KillPlayer, TakeBonus, BreakBonus, ExpandBorders:
		return true
	}
	return false
}

// Intent is a strategic goal. Two intents are equal when their kind and key fields match,
// so Intent values can be compared with == and used as map keys.
type Intent struct {
	Kind   Kind
	Player int    // Target player for KillPlayer and BreakBonus, current owner for TakeBonus
	Bonus  string // Bonus group for TakeBonus and BreakBonus
	Budget int    // Number of territories for TakeTerritories
}

func Kill(player int) Intent {
	return Intent{Kind: KillPlayer, Player: player}
}

// Take targets a bonus held by owner, or by nobody when owner is game.Neutral.
func Take(bonus string, owner int) Intent {
	return Intent{Kind: TakeBonus, Player: owner, Bonus: bonus}
}

func Break(player int, bonus string) Intent {
	return Intent{Kind: BreakBonus, Player: player, Bonus: bonus}
}

func Expand() Intent {
	return Intent{Kind: ExpandBorders}
}

func Card() Intent {
	return Intent{Kind: TakeCard}
}

func Territories(budget int) Intent {
	return Intent{Kind: TakeTerritories, Budget: budget}
}

func Pass() Intent {
	return Intent{Kind: NoAttack}
}

func (in Intent) String() string {
	switch in.Kind {
	case KillPlayer:
		return fmt.Sprintf("kill(%d)", in.Player)
	case TakeBonus:
		return fmt.Sprintf("take(%s,%d)", in.Bonus, in.Player)
	case BreakBonus:
		return fmt.Sprintf("break(%d,%s)", in.Player, in.Bonus)
	case TakeTerritories:
		return fmt.Sprintf("territories(%d)", in.Budget)
	}
	return in.Kind.String()
}

func less(a, b Intent) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	if a.Player != b.Player {
		return a.Player < b.Player
	}
	if a.Bonus != b.Bonus {
		return a.Bonus < b.Bonus
	}
	return a.Budget < b.Budget
}

// Combination is a set of intents pursued in the same turn.
type Combination []Intent

func (c Combination) String() string {
	if len(c) == 0 {
		return "{}"
	}
	parts := make([]string, len(c))
	for i, in := range c {
		parts[i] = in.String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Validate rejects combinations that pursue the same territory twice: killing a
// player already takes or breaks any bonus that player owns, and taking a bonus
// already breaks it.
func Validate(c Combination) bool {
	killed := map[int]bool{}
	taken := map[string]bool{}
	seen := map[Intent]bool{}
	for _, in := range c {
		if seen[in] {
			return false
		}
		seen[in] = true
		switch in.Kind {
		case KillPlayer:
			killed[in.Player] = true
		case TakeBonus:
			taken[in.Bonus] = true
		}
	}
	for _, in := range c {
		switch in.Kind {
		case TakeBonus:
			if killed[in.Player] {
				return false
			}
		case BreakBonus:
			if killed[in.Player] || taken[in.Bonus] {
				return false
			}
		}
	}
	return true
}

// Rewards are the static values of achieving each kind of intent.
type Rewards struct {
	Kill        float64 `yaml:"kill"`
	BonusFactor float64 `yaml:"bonus_factor"` // per troop of bonus value taken
	BreakFactor float64 `yaml:"break_factor"` // per troop of bonus value denied
	Expand      float64 `yaml:"expand"`
	Card        float64 `yaml:"card"`
	Territory   float64 `yaml:"territory"` // per territory gained
}

func DefaultRewards() Rewards {
	return Rewards{
		Kill:        30,
		BonusFactor: 4,
		BreakFactor: 2,
		Expand:      2,
		Card:        5,
		Territory:   1,
	}
}
