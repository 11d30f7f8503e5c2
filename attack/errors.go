package attack

import (
	"errors"

	"conquest/graph"
)

// Infeasible plans. The caller drops the combination and moves on.
var (
	ErrDisconnectedTargets = errors.New("targets span more than one component")
	ErrNoStack             = errors.New("no stack borders the target component")
	ErrInsufficientTroops  = errors.New("not enough troops for a safe capture")
)

// Defects in graph construction or allocation. The combination is discarded and logged.
var (
	ErrGarrisonViolation = errors.New("allocation leaves no garrison")
	ErrUnreachableTarget = errors.New("arborescence misses a target")
	ErrOwnedTransit      = errors.New("arborescence enters an owned territory")
)

// IsDefect reports whether err signals a bug rather than an infeasible plan.
func IsDefect(err error) bool {
	return errors.Is(err, ErrGarrisonViolation) ||
		errors.Is(err, ErrUnreachableTarget) ||
		errors.Is(err, ErrOwnedTransit) ||
		errors.Is(err, graph.ErrTrimDiverged) ||
		errors.Is(err, graph.ErrNotLeaf)
}
