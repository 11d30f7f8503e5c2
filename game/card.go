package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

type CardType int

const (
	Infantry  CardType = iota // 0
	Cavalry                   // 1
	Artillery                 // 2
	Wild                      // 3
)

// MixedSetValue is the value of a traded set whose cards are not all the same type.
const MixedSetValue = 10

// OwnedCardBonus is placed on a territory shown on a traded card that the trader holds.
const OwnedCardBonus = 2

func (t CardType) String() string {
	switch t {
	case Infantry:
		return "infantry"
	case Cavalry:
		return "cavalry"
	case Artillery:
		return "artillery"
	case Wild:
		return "wild"
	}
	return fmt.Sprintf("card(%d)", int(t))
}

// Value is the number of troops a set of three cards of this type is worth.
func (t CardType) Value() int {
	switch t {
	case Infantry:
		return 4
	case Cavalry:
		return 6
	case Artillery:
		return 8
	}
	return MixedSetValue
}

type Card struct {
	Type        CardType
	TerritoryID int // Neutral for wild cards
}

// Trade is a set of three cards handed in during the draft.
type Trade struct {
	Cards [3]Card
}

// Value returns the troops granted for the trade.
func (t Trade) Value() int {
	first := t.Cards[0].Type
	for _, c := range t.Cards[1:] {
		if c.Type != first {
			return MixedSetValue
		}
	}
	return first.Value()
}

// IsSet reports whether the cards form a tradeable set: three of a kind, one of
// each, or any two completed by a wild.
func (t Trade) IsSet() bool {
	counts := map[CardType]int{}
	for _, c := range t.Cards {
		counts[c.Type]++
	}
	if counts[Wild] > 0 {
		return true
	}
	return len(counts) == 1 || len(counts) == 3
}

// Deck holds the draw pile and the discarded cards.
type Deck struct {
	cards     []Card
	discarded []Card
	rng       *rand.Rand
}

// NewDeck builds one card per territory, cycling through the three types, plus two wilds.
func NewDeck(m *Map, rng *rand.Rand) *Deck {
	types := []CardType{Infantry, Cavalry, Artillery}
	d := &Deck{rng: rng}
	for i, id := range m.IDs() {
		d.cards = append(d.cards, Card{Type: types[i%len(types)], TerritoryID: id})
	}
	d.cards = append(d.cards, Card{Type: Wild, TerritoryID: Neutral}, Card{Type: Wild, TerritoryID: Neutral})
	d.shuffle()
	return d
}

func (d *Deck) shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw takes the top card, reshuffling the discard pile when the deck runs out.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		if len(d.discarded) == 0 {
			return Card{}, false
		}
		d.cards = append(d.cards, d.discarded...)
		d.discarded = nil
		d.shuffle()
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// Discard returns traded cards to the discard pile.
func (d *Deck) Discard(cards ...Card) {
	d.discarded = append(d.discarded, cards...)
}

// Len returns the number of cards left to draw.
func (d *Deck) Len() int {
	return len(d.cards)
}
