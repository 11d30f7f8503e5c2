package game

import (
	"fmt"
	"strings"
)

// Deployment places drafted troops on an owned territory.
type Deployment struct {
	Territory int
	Troops    int
}

type Draft struct {
	Trades      []Trade
	Deployments []Deployment
}

// Troops returns the total number of troops deployed.
func (d Draft) Troops() int {
	total := 0
	for _, dep := range d.Deployments {
		total += dep.Troops
	}
	return total
}

// Attack is one planned capture. AttackTroops is the force needed for a safe
// capture. MoveTroops is the whole share of troops committed to the target,
// including those continuing to later attacks launched from it, rather than only
// the troops left behind on it: a captured territory can only attack with troops
// that moved in, so the engine commits min(MoveTroops, troops on From - 1).
type Attack struct {
	From         int
	To           int
	AttackTroops int
	MoveTroops   int
}

func (a Attack) String() string {
	return fmt.Sprintf("%d->%d(%d/%d)", a.From, a.To, a.AttackTroops, a.MoveTroops)
}

// Fortify relocates troops between two connected owned territories at the end of a turn.
type Fortify struct {
	From   int
	To     int
	Troops int
}

// Move is a full turn: draft, ordered attacks and an optional fortify.
type Move struct {
	Draft   Draft
	Attacks []Attack
	Fortify *Fortify
}

// IsPass reports whether the move launches no attack.
func (m Move) IsPass() bool {
	return len(m.Attacks) == 0
}

func (m Move) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "draft=%v trades=%d attacks=[", m.Draft.Deployments, len(m.Draft.Trades))
	for i, a := range m.Attacks {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(a.String())
	}
	b.WriteString("]")
	if m.Fortify != nil {
		fmt.Fprintf(&b, " fortify=%d->%d(%d)", m.Fortify.From, m.Fortify.To, m.Fortify.Troops)
	}
	return b.String()
}
