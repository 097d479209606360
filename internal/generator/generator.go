// Package generator provides the byte generators compared by the benchmark
// harness.
package generator

import (
	"errors"
	"fmt"
	"sort"

	"seededrand/lcg"
)

// Generator interface for all RNG types
type Generator interface {
	Name() string
	GenerateBytes(numBytes int) ([]byte, error)
}

// ErrUnknownGenerator is returned by New for names it does not know.
var ErrUnknownGenerator = errors.New("unknown generator")

// Registry keys, also accepted on the command line.
const (
	KeyLCG    = "lcg"
	KeyMath   = "math"
	KeySystem = "system"
	KeyHMAC   = "hmac"
)

var constructors = map[string]func(src lcg.SeedSource) Generator{
	KeyLCG:    func(src lcg.SeedSource) Generator { return NewLCG(lcg.NewFromSource(src)) },
	KeyMath:   func(src lcg.SeedSource) Generator { return NewMathPRNG(src) },
	KeySystem: func(lcg.SeedSource) Generator { return NewSystemCSPRNG() },
	KeyHMAC:   func(lcg.SeedSource) Generator { return NewHMACDRBG() },
}

// Names lists the registry keys in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the generator registered under key. Seeded generators draw
// their seed from src.
func New(key string, src lcg.SeedSource) (Generator, error) {
	ctor, ok := constructors[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, key)
	}
	return ctor(src), nil
}

// NewAll builds one generator per key, in order.
func NewAll(keys []string, src lcg.SeedSource) ([]Generator, error) {
	generators := make([]Generator, 0, len(keys))
	for _, key := range keys {
		g, err := New(key, src)
		if err != nil {
			return nil, err
		}
		generators = append(generators, g)
	}
	return generators, nil
}

// putUint32 writes up to 4 bytes of val into dst, least significant first.
func putUint32(dst []byte, val uint32) {
	for i := 0; i < len(dst) && i < 4; i++ {
		dst[i] = byte(val >> (8 * i))
	}
}
