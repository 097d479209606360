package generator

import (
	"math/rand"
	"sync"

	"seededrand/lcg"
)

// MathPRNG wraps the standard library's math/rand source.
type MathPRNG struct {
	rng  *rand.Rand
	lock sync.Mutex
}

// NewMathPRNG creates a math/rand generator seeded from src.
func NewMathPRNG(src lcg.SeedSource) *MathPRNG {
	return &MathPRNG{
		rng: rand.New(rand.NewSource(src.Seed())),
	}
}

// Name returns the generator name
func (p *MathPRNG) Name() string {
	return "Math PRNG"
}

// GenerateBytes generates bytes using math/rand
func (p *MathPRNG) GenerateBytes(numBytes int) ([]byte, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	result := make([]byte, numBytes)

	// 4 bytes per draw, last group truncated
	for i := 0; i < numBytes; i += 4 {
		putUint32(result[i:], p.rng.Uint32())
	}
	return result, nil
}
