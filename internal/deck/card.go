package deck

import (
	"fmt"
	"strconv"
)

// Suit represents one of the four Spanish-deck suits
type Suit int

const (
	Oros Suit = iota
	Copas
	Espadas
	Bastos
)

var suitNames = [...]string{"oros", "copas", "espadas", "bastos"}

// String returns the Spanish name of the suit
func (s Suit) String() string {
	if s < Oros || s > Bastos {
		return "?"
	}
	return suitNames[s]
}

// ParseSuit converts a Spanish suit name into a Suit
func ParseSuit(name string) (Suit, error) {
	for i, n := range suitNames {
		if n == name {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("unknown suit %q", name)
}

// MarshalText encodes the suit as its Spanish name for the wire format
func (s Suit) MarshalText() ([]byte, error) {
	if s < Oros || s > Bastos {
		return nil, fmt.Errorf("invalid suit %d", int(s))
	}
	return []byte(suitNames[s]), nil
}

// UnmarshalText decodes a Spanish suit name
func (s *Suit) UnmarshalText(text []byte) error {
	parsed, err := ParseSuit(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Rank represents a card rank. The Spanish deck skips 8 and 9
type Rank int

// Ranks lists the ten ranks in ascending strength order. Position in this
// list, not face value, decides which card wins a trick: the 12 is the
// strongest rank and the 1 the weakest.
var Ranks = [...]Rank{1, 2, 3, 4, 5, 6, 7, 10, 11, 12}

// Valid returns true if the rank exists in the Spanish deck
func (r Rank) Valid() bool {
	return (r >= 1 && r <= 7) || (r >= 10 && r <= 12)
}

// String returns the string representation of a rank
func (r Rank) String() string {
	return strconv.Itoa(int(r))
}

// Card represents a playing card. Cards are immutable values compared by
// suit and rank
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "7 de oros")
func (c Card) String() string {
	return fmt.Sprintf("%s de %s", c.Rank, c.Suit)
}

// Points returns the scoring value of the card: ranks 1-7 score their face
// value, the three figures (10, 11, 12) score 10
func (c Card) Points() int {
	if c.Rank <= 7 {
		return int(c.Rank)
	}
	return 10
}

// strength returns the position of the rank in the fixed strength order
func (c Card) strength() int {
	for i, r := range Ranks {
		if r == c.Rank {
			return i
		}
	}
	return -1
}

// Beats reports whether c wins over other in a trick. Rank strength decides
// first; equal ranks fall back to suit priority, oros over copas over
// espadas over bastos. No two distinct cards compare equal, so this is a
// total order.
func (c Card) Beats(other Card) bool {
	cs, os := c.strength(), other.strength()
	if cs != os {
		return cs > os
	}
	return c.Suit < other.Suit
}
