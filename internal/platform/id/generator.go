package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const rawIDBytes = 16

// Generator produces opaque identifiers for rounds and shots.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

// NewID returns a 32-character hex string from a CSPRNG.
func (g *RandomGenerator) NewID() (string, error) {
	var buf [rawIDBytes]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return hex.EncodeToString(buf[:]), nil
}
