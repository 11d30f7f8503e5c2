// Package advisor holds the non-attacking parts of a turn: card trades, where to
// draft and how to fortify.
package advisor

import (
	"slices"
	"sort"

	"conquest/game"
)

// Trades picks trades greedily from the agent's hand until no set remains. One of
// each type is preferred, then triples from artillery down to infantry completed
// with wilds, then two different types completed with a wild. A trade holds at
// most one card showing a territory the agent owns when others are available, so
// the bonus is not wasted.
func Trades(state *game.State) []game.Trade {
	hand := slices.Clone(state.Hand(state.Agent))
	trades := []game.Trade{}
	for {
		trade, rest, ok := firstTrade(state, hand)
		if !ok {
			return trades
		}
		trades = append(trades, trade)
		hand = rest
	}
}

// DraftAmount returns the troops the agent drafts after making trades.
func DraftAmount(state *game.State, trades []game.Trade) int {
	troops := state.Reinforcements(state.Agent)
	for _, trade := range trades {
		troops += trade.Value()
	}
	return troops
}

// Find a set of cards in the hand and return it with the remaining cards.
func firstTrade(state *game.State, hand []game.Card) (game.Trade, []game.Card, bool) {
	if len(hand) < 3 {
		return game.Trade{}, hand, false
	}
	owned := func(i int) bool {
		id := hand[i].TerritoryID
		return id != game.Neutral && state.Owner(id) == state.Agent
	}
	byType := map[game.CardType][]int{} // type -> indices
	for i, c := range hand {
		byType[c.Type] = append(byType[c.Type], i)
	}

	// One of each
	kinds := []game.CardType{game.Infantry, game.Cavalry, game.Artillery}
	if len(byType[game.Infantry]) > 0 && len(byType[game.Cavalry]) > 0 && len(byType[game.Artillery]) > 0 {
		return split(hand, oneOf(kinds, byType, owned))
	}

	// Three of a kind, highest value first, completed with wilds
	wilds := byType[game.Wild]
	for _, t := range []game.CardType{game.Artillery, game.Cavalry, game.Infantry} {
		if len(byType[t])+len(wilds) < 3 || len(byType[t]) == 0 {
			continue
		}
		chosen := pick(byType[t], 3, owned, false)
		chosen = append(chosen, wilds[:3-len(chosen)]...)
		return split(hand, chosen)
	}

	// Two types and a wild
	if len(wilds) > 0 {
		present := []game.CardType{}
		for _, t := range kinds {
			if len(byType[t]) > 0 {
				present = append(present, t)
			}
		}
		if len(present) >= 2 {
			return split(hand, append(oneOf(present[:2], byType, owned), wilds[0]))
		}
	}
	return game.Trade{}, hand, false
}

// oneOf takes a card of each type, spending at most one owned card when plain
// ones are available.
func oneOf(types []game.CardType, byType map[game.CardType][]int, owned func(int) bool) []int {
	chosen := make([]int, len(types))
	first := -1
	for k, t := range types {
		if i := slices.IndexFunc(byType[t], owned); i >= 0 {
			chosen[k], first = byType[t][i], k
			break
		}
	}
	for k, t := range types {
		if k != first {
			chosen[k] = pick(byType[t], 1, owned, first >= 0)[0]
		}
	}
	return chosen
}

// pick takes up to n indices from candidates: the first owned card unless one was
// already spent, then cards on territories the agent does not own, then the
// remaining owned cards.
func pick(candidates []int, n int, owned func(int) bool, spent bool) []int {
	var bonus, plain []int
	for _, i := range candidates {
		if owned(i) {
			bonus = append(bonus, i)
		} else {
			plain = append(plain, i)
		}
	}
	ordered := slices.Concat(plain, bonus)
	if len(bonus) > 0 && !spent {
		ordered = slices.Concat(bonus[:1], plain, bonus[1:])
	}
	return ordered[:min(n, len(ordered))]
}

func split(hand []game.Card, indices []int) (game.Trade, []game.Card, bool) {
	sort.Ints(indices)
	var trade game.Trade
	for i, idx := range indices {
		trade.Cards[i] = hand[idx]
	}
	rest := make([]game.Card, 0, len(hand)-len(indices))
	for i, c := range hand {
		if !slices.Contains(indices, i) {
			rest = append(rest, c)
		}
	}
	return trade, rest, true
}
