package roomid

import (
	"crypto/rand"
	"fmt"
)

// Base32 alphabet (Crockford's base32). Room ids get read aloud and retyped
// by players, so the ambiguous i/l/o/u characters are excluded.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of a generated id
const Length = 8

// RandSource interface for dependency injection of randomness
type RandSource interface {
	IntN(n int) int
}

// Generator handles id generation with configurable randomness
type Generator struct {
	randSource RandSource
}

// NewGenerator creates a new generator with optional RandSource
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// Generate creates a new 8-character base32 id
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new id using the generator's RandSource
func (g *Generator) Generate() string {
	buf := make([]byte, Length)

	if g.randSource != nil {
		// Use provided RandSource for deterministic testing
		for i := range buf {
			buf[i] = alphabet[g.randSource.IntN(len(alphabet))]
		}
		return string(buf)
	}

	// Use crypto/rand for production
	raw := make([]byte, Length)
	if _, err := rand.Read(raw); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}
	for i, b := range raw {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf)
}

// Validate checks if an id is valid (8 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("id must be exactly %d characters, got %d", Length, len(id))
	}

	for i, char := range id {
		valid := false
		for _, validChar := range alphabet {
			if char == validChar {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}

	return nil
}
