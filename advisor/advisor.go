package advisor

import (
	"conquest/game"
)

// DefaultDraft makes the trades and drafts every troop to the most threatened
// border, or to the largest territory when no border is outnumbered.
func DefaultDraft(state *game.State, trades []game.Trade) game.Draft {
	target, ok := WeakestBorder(state)
	if !ok {
		target = Largest(state)
	}
	if target == game.Neutral {
		return game.Draft{Trades: trades}
	}
	return StackDraft(state, target, trades)
}

// StackDraft makes the trades and drafts every troop to the attacking stack.
func StackDraft(state *game.State, stack int, trades []game.Trade) game.Draft {
	return game.Draft{
		Trades:      trades,
		Deployments: []game.Deployment{{Territory: stack, Troops: DraftAmount(state, trades)}},
	}
}

// Threat returns how far the strongest enemy neighbour of id outnumbers it.
func Threat(state *game.State, id int) int {
	strongest := 0
	for _, n := range state.EnemyNeighbors(id) {
		strongest = max(strongest, state.Troops(n))
	}
	return strongest - state.Troops(id)
}

// WeakestBorder returns the agent's border territory with the largest positive
// threat, ties to the lowest id.
func WeakestBorder(state *game.State) (int, bool) {
	weakest, worst := game.Neutral, 0
	for _, id := range state.Borders(state.Agent) {
		if threat := Threat(state, id); threat > worst {
			weakest, worst = id, threat
		}
	}
	return weakest, worst > 0
}

// Largest returns the agent's territory with the most troops, ties to the lowest id.
func Largest(state *game.State) int {
	largest := game.Neutral
	for _, id := range state.TerritoriesOf(state.Agent) {
		if largest == game.Neutral || state.Troops(id) > state.Troops(largest) {
			largest = id
		}
	}
	return largest
}

// DefaultFortify moves everything but the garrison from the largest internal
// territory to the most threatened border, or to the largest territory. Territories
// in exclude are never the source. It returns nil when no move is possible.
func DefaultFortify(state *game.State, exclude ...int) *game.Fortify {
	to, ok := WeakestBorder(state)
	if !ok {
		to = Largest(state)
	}
	if to == game.Neutral {
		return nil
	}

	excluded := map[int]bool{}
	for _, id := range exclude {
		excluded[id] = true
	}
	from := game.Neutral
	for _, id := range state.Internal(state.Agent) {
		if id == to || excluded[id] || state.Troops(id) <= 1 || !state.AreConnected(id, to, state.Agent) {
			continue
		}
		if from == game.Neutral || state.Troops(id) > state.Troops(from) {
			from = id
		}
	}
	if from == game.Neutral {
		return nil
	}
	return &game.Fortify{From: from, To: to, Troops: state.Troops(from) - 1}
}

// DefaultMove is the turn played when no attack is worth it: the default draft,
// no attacks and the default fortify on the drafted board.
func DefaultMove(state *game.State) game.Move {
	draft := DefaultDraft(state, Trades(state))
	return game.Move{
		Draft:   draft,
		Fortify: DefaultFortify(Drafted(state, draft)),
	}
}

// Drafted returns a copy of state with the deployments of draft placed.
func Drafted(state *game.State, draft game.Draft) *game.State {
	next := state.Copy()
	for _, d := range draft.Deployments {
		if err := next.Deploy(d.Territory, d.Troops); err != nil {
			panic(err)
		}
	}
	return next
}
