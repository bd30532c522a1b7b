package deck

import (
	"fmt"
	"testing"

	"github.com/nmoreno/brisca/internal/randutil"
)

func TestNewDeckComplete(t *testing.T) {
	d := New(randutil.New(1))
	if d.Len() != Size {
		t.Fatalf("deck has %d cards, want %d", d.Len(), Size)
	}

	seen := make(map[Card]bool)
	for _, hand := range d.Deal(1) {
		for _, c := range hand {
			if !c.Rank.Valid() {
				t.Errorf("invalid rank in deck: %v", c)
			}
			if seen[c] {
				t.Errorf("duplicate card in deck: %v", c)
			}
			seen[c] = true
		}
	}
	if len(seen) != Size {
		t.Errorf("deck holds %d distinct cards, want %d", len(seen), Size)
	}
}

func TestDealEquitable(t *testing.T) {
	for n := 2; n <= 10; n++ {
		t.Run(fmt.Sprintf("players=%d", n), func(t *testing.T) {
			hands := New(randutil.New(int64(n))).Deal(n)
			if len(hands) != n {
				t.Fatalf("Deal(%d) returned %d hands", n, len(hands))
			}

			per := Size / n
			seen := make(map[Card]bool)
			for i, hand := range hands {
				if len(hand) != per {
					t.Errorf("hand %d has %d cards, want %d", i, len(hand), per)
				}
				for _, c := range hand {
					if seen[c] {
						t.Errorf("card %v dealt twice", c)
					}
					seen[c] = true
				}
			}

			// the Size mod n remainder stays undealt
			if len(seen) != Size-Size%n {
				t.Errorf("dealt %d cards, want %d", len(seen), Size-Size%n)
			}
		})
	}
}

func TestDealRejectsZeroHands(t *testing.T) {
	if hands := New(randutil.New(1)).Deal(0); hands != nil {
		t.Errorf("Deal(0) = %v, want nil", hands)
	}
}

func TestShuffleDeterministicPerSeed(t *testing.T) {
	a := New(randutil.New(99)).Deal(1)
	b := New(randutil.New(99)).Deal(1)
	for i := range a[0] {
		if a[0][i] != b[0][i] {
			t.Fatalf("same seed produced different shuffles at index %d", i)
		}
	}
}
