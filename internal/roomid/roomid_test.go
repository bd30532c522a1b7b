package roomid

import (
	"strings"
	"testing"

	"github.com/nmoreno/brisca/internal/randutil"
)

func TestGenerate(t *testing.T) {
	id := Generate()
	if err := Validate(id); err != nil {
		t.Errorf("Generate() produced invalid id %q: %v", id, err)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := NewGenerator(randutil.New(7)).Generate()
	b := NewGenerator(randutil.New(7)).Generate()
	if a != b {
		t.Errorf("same seed produced %q and %q", a, b)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid id", "0k3mztqw", false},
		{"too short", "abc", true},
		{"too long", strings.Repeat("a", Length+1), true},
		{"excluded letter", "abcdefgl", true},
		{"uppercase", "ABCDEFGH", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.id); (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}
