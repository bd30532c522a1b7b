package deck

import (
	rand "math/rand/v2"
)

// Size is the number of cards in a full Spanish deck
const Size = 40

// Deck represents a shuffled 40-card Spanish deck
type Deck struct {
	cards []Card
}

// New creates a freshly shuffled deck. The rng is injected so games and
// tests can run reproducibly from a known seed.
func New(rng *rand.Rand) *Deck {
	cards := make([]Card, 0, Size)
	for suit := Oros; suit <= Bastos; suit++ {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &Deck{cards: cards}
}

// Deal splits the deck into n equal hands of Size/n cards each, taken as
// contiguous runs from the front of the shuffle. Any remainder (Size mod n
// cards) stays undealt. The deck itself is not mutated; a deal is a
// snapshot of the shuffle.
func (d *Deck) Deal(n int) [][]Card {
	if n < 1 {
		return nil
	}
	per := len(d.cards) / n
	hands := make([][]Card, n)
	for i := range hands {
		hand := make([]Card, per)
		copy(hand, d.cards[i*per:(i+1)*per])
		hands[i] = hand
	}
	return hands
}

// Len returns the number of cards in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}
