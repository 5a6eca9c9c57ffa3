package deck

import (
	"math/rand"
	"sort"
)

// Deck represents a deck of cards
type Deck []Card

// New creates a deck of cards, ordered by suit then value
func New() Deck {
	cards := Deck{}
	for suit := range suitNames {
		for value := range valueNames {
			cards = append(cards, Card{Suit: Suit(suit), Value: Value(value)})
		}
	}
	return cards
}

// Shuffle shuffles the deck of cards using rng
func (d Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Deal deals n number of cards from the deck, until it is empty
func (d *Deck) Deal(n int) []Card {
	numCardsInDeck := len(*d)
	if n < 0 || n > numCardsInDeck {
		return []Card{}
	}
	startingIndex := numCardsInDeck - n
	dealt := make([]Card, n)
	copy(dealt, (*d)[startingIndex:])
	*d = (*d)[:startingIndex]
	return dealt
}

// Sorted returns a copy of cards ordered by suit, then value
func Sorted(cards []Card) []Card {
	sorted := make([]Card, len(cards))
	copy(sorted, cards)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Suit != sorted[j].Suit {
			return sorted[i].Suit < sorted[j].Suit
		}
		return sorted[i].Value < sorted[j].Value
	})

	return sorted
}

// IsSorted reports whether cards are ordered by suit, then value
func IsSorted(cards []Card) bool {
	return sort.SliceIsSorted(cards, func(i, j int) bool {
		if cards[i].Suit != cards[j].Suit {
			return cards[i].Suit < cards[j].Suit
		}
		return cards[i].Value < cards[j].Value
	})
}
