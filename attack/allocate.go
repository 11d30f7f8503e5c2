package attack

import (
	"fmt"

	"conquest/game"
	"conquest/odds"
	"conquest/utils"
)

// Allocate walks the plan depth first from the stack, which holds available troops
// once drafted, and emits the attacks in execution order. At every node the troops
// that arrived, minus the garrison, are split evenly over the outgoing branches
// with the remainder going to the lowest ids. Each branch must carry at least the
// force the odds table asks for.
func Allocate(state *game.State, plan *Plan, available int, table odds.Table) ([]game.Attack, error) {
	attacks := []game.Attack{}
	if plan.Empty() {
		return attacks, nil
	}

	var visit func(node, arriving int) error
	visit = func(node, arriving int) error {
		children := plan.Tree.Children(node)
		if len(children) == 0 {
			return nil
		}
		usable := arriving - 1
		if usable < 0 {
			return fmt.Errorf("%w: %d troops reach %d", ErrGarrisonViolation, arriving, node)
		}

		shares := utils.SplitEvenly(usable, len(children))
		committed := 0
		for _, share := range shares {
			committed += share
		}
		if committed != usable {
			return fmt.Errorf("%w: %d of %d troops committed from %d", ErrGarrisonViolation, committed, usable, node)
		}

		for i, child := range children {
			required := table.TroopsNeeded(state.Troops(child))
			if shares[i] < required {
				return fmt.Errorf("%w: %d->%d needs %d but gets %d", ErrInsufficientTroops, node, child, required, shares[i])
			}
			attacks = append(attacks, game.Attack{
				From:         node,
				To:           child,
				AttackTroops: required,
				MoveTroops:   shares[i],
			})
			if err := visit(child, shares[i]); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(plan.Stack, available); err != nil {
		return nil, err
	}
	return attacks, nil
}
