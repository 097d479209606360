package lcg

import (
	crand "crypto/rand"
	"encoding/binary"
	"sync/atomic"
	"time"
)

// SeedSource supplies seeds for streams created without an explicit one.
type SeedSource interface {
	Seed() int64
}

// SeedSourceFunc adapts a function to SeedSource.
type SeedSourceFunc func() int64

// Seed calls f.
func (f SeedSourceFunc) Seed() int64 { return f() }

// FixedSeedSource always returns the same seed.
type FixedSeedSource int64

// Seed returns the fixed value.
func (f FixedSeedSource) Seed() int64 { return int64(f) }

const (
	uniquifierStart = 8682522807148012
	uniquifierStep  = 181783497276652981
)

// TimeSeedSource mixes a per-source counter with a clock reading so that
// streams created in the same instant still get distinct seeds.
type TimeSeedSource struct {
	uniquifier atomic.Int64
	clock      func() time.Time
}

// NewTimeSeedSource creates a TimeSeedSource reading clock. A nil clock
// uses time.Now.
func NewTimeSeedSource(clock func() time.Time) *TimeSeedSource {
	if clock == nil {
		clock = time.Now
	}
	src := &TimeSeedSource{clock: clock}
	src.uniquifier.Store(uniquifierStart)
	return src
}

// Seed advances the uniquifier and mixes it with the clock.
func (t *TimeSeedSource) Seed() int64 {
	for {
		current := t.uniquifier.Load()
		next := current * uniquifierStep
		if t.uniquifier.CompareAndSwap(current, next) {
			return next ^ t.clock().UnixNano()
		}
	}
}

// DefaultSeedSource backs NewDefault.
var DefaultSeedSource SeedSource = NewTimeSeedSource(nil)

// CryptoSeedSource reads seeds from crypto/rand and falls back to
// Fallback if the system source fails.
type CryptoSeedSource struct {
	Fallback SeedSource
}

// Seed returns 8 bytes of system entropy, read little-endian.
func (c CryptoSeedSource) Seed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		if c.Fallback != nil {
			return c.Fallback.Seed()
		}
		return DefaultSeedSource.Seed()
	}

	return int64(binary.LittleEndian.Uint64(b[:]))
}
