package deck

import (
	"encoding/json"
	"testing"
)

func TestCardPoints(t *testing.T) {
	tests := []struct {
		card     Card
		expected int
	}{
		{Card{Oros, 1}, 1},
		{Card{Copas, 4}, 4},
		{Card{Espadas, 7}, 7},
		{Card{Bastos, 10}, 10},
		{Card{Oros, 11}, 10},
		{Card{Copas, 12}, 10},
	}

	for _, tt := range tests {
		if got := tt.card.Points(); got != tt.expected {
			t.Errorf("%s.Points() = %d, want %d", tt.card, got, tt.expected)
		}
	}
}

func TestCardBeats(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Card
		aBeats bool
	}{
		{"12 beats 11 across suits", Card{Oros, 12}, Card{Bastos, 11}, true},
		{"11 beats 7", Card{Bastos, 11}, Card{Copas, 7}, true},
		{"7 beats 1", Card{Copas, 7}, Card{Espadas, 1}, true},
		{"1 is the weakest rank", Card{Oros, 1}, Card{Bastos, 2}, false},
		{"10 beats 7 despite equal points", Card{Bastos, 10}, Card{Oros, 7}, true},
		{"oros wins the suit tie-break", Card{Oros, 7}, Card{Bastos, 7}, true},
		{"copas beats espadas on equal rank", Card{Copas, 3}, Card{Espadas, 3}, true},
		{"espadas beats bastos on equal rank", Card{Espadas, 3}, Card{Bastos, 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Beats(tt.b); got != tt.aBeats {
				t.Errorf("%s.Beats(%s) = %v, want %v", tt.a, tt.b, got, tt.aBeats)
			}
			// the order is total: exactly one of the pair wins
			if got := tt.b.Beats(tt.a); got == tt.aBeats {
				t.Errorf("%s.Beats(%s) = %v, want %v", tt.b, tt.a, got, !tt.aBeats)
			}
		})
	}
}

func TestCardJSON(t *testing.T) {
	data, err := json.Marshal(Card{Oros, 3})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `{"suit":"oros","rank":3}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var card Card
	if err := json.Unmarshal([]byte(`{"suit":"bastos","rank":12}`), &card); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if card != (Card{Bastos, 12}) {
		t.Errorf("Unmarshal() = %v, want 12 de bastos", card)
	}

	if err := json.Unmarshal([]byte(`{"suit":"corazones","rank":2}`), &card); err == nil {
		t.Error("Unmarshal() should reject an unknown suit")
	}
}

func TestParseSuit(t *testing.T) {
	for _, suit := range []Suit{Oros, Copas, Espadas, Bastos} {
		parsed, err := ParseSuit(suit.String())
		if err != nil {
			t.Fatalf("ParseSuit(%q) error: %v", suit, err)
		}
		if parsed != suit {
			t.Errorf("ParseSuit(%q) = %v, want %v", suit, parsed, suit)
		}
	}
	if _, err := ParseSuit("hearts"); err == nil {
		t.Error("ParseSuit should reject a non-Spanish suit")
	}
}
