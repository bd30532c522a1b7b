package game

import "github.com/nmoreno/brisca/internal/deck"

// Player occupies a seat in a room. The room owns it exclusively: the hand
// and won pile mutate only through room operations. ID is the opaque
// connection identifier for humans, or a synthetic stable id for bots.
type Player struct {
	ID    string
	Name  string
	IsBot bool

	hand []deck.Card
	won  []deck.Card
}

// HandSize returns the number of cards left in the player's hand
func (p *Player) HandSize() int {
	return len(p.hand)
}

// WonCount returns the number of cards in the player's won pile
func (p *Player) WonCount() int {
	return len(p.won)
}

// Points returns the running score, the sum of the scoring values of every
// card the player has won since the game began. Won piles are never cleared
// between deals, so this accumulates across rounds.
func (p *Player) Points() int {
	total := 0
	for _, c := range p.won {
		total += c.Points()
	}
	return total
}
