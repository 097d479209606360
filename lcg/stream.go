// Package lcg implements a seeded 48-bit linear congruential generator whose
// output matches the classic java.util.Random sequence for every seed.
//
// A Stream is safe for concurrent use. Operations that consume several
// steps of the generator (Int64, Float64, NormFloat64, Bytes) are atomic
// with respect to other callers.
package lcg

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

const (
	multiplier = 0x5DEECE66D
	addend     = 0xB
	mask       = (1 << 48) - 1
)

// ErrIllegalArgument is returned when a bound is not positive.
var ErrIllegalArgument = errors.New("illegal argument")

// Stream is a reproducible pseudo-random sequence over a 48-bit state.
type Stream struct {
	state uint64
	// gaussian holds the second value of the last polar-method pair.
	gaussian    float64
	hasGaussian bool
	lock        sync.Mutex
}

// New creates a stream seeded with seed.
func New(seed int64) *Stream {
	s := &Stream{}
	s.setSeed(seed)
	return s
}

// NewFromSource creates a stream seeded from src.
func NewFromSource(src SeedSource) *Stream {
	return New(src.Seed())
}

// NewDefault creates a stream seeded from the process-wide time source.
func NewDefault() *Stream {
	return NewFromSource(DefaultSeedSource)
}

func scramble(seed int64) uint64 {
	return (uint64(seed) ^ multiplier) & mask
}

func (s *Stream) setSeed(seed int64) {
	s.state = scramble(seed)
	s.gaussian = 0
	s.hasGaussian = false
}

// SetSeed resets the stream as if it had been created with New(seed).
func (s *Stream) SetSeed(seed int64) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.setSeed(seed)
}

// Seed is SetSeed under the name math/rand.Source expects.
func (s *Stream) Seed(seed int64) {
	s.SetSeed(seed)
}

// State returns the current 48-bit register.
func (s *Stream) State() uint64 {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.state
}

// next advances the state and returns its top bits. Caller holds the lock.
func (s *Stream) next(bits int) int32 {
	s.state = (s.state*multiplier + addend) & mask
	return int32(s.state >> (48 - bits))
}

// Next advances the generator and returns the top bits of the new state,
// sign-extended through int32. bits must be in [1, 32].
func (s *Stream) Next(bits int) int32 {
	if bits < 1 || bits > 32 {
		panic(fmt.Sprintf("lcg: bits %d out of range [1, 32]", bits))
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	return s.next(bits)
}

// Int32 returns a uniformly distributed int32.
func (s *Stream) Int32() int32 {
	return s.Next(32)
}

// Int32N returns a uniformly distributed value in [0, bound).
func (s *Stream) Int32N(bound int32) (int32, error) {
	if bound <= 0 {
		return 0, fmt.Errorf("%w: bound must be positive, got %d", ErrIllegalArgument, bound)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	r := s.next(31)
	m := bound - 1
	if bound&m == 0 {
		return int32((int64(bound) * int64(r)) >> 31), nil
	}

	// Reject the top partial interval; the int32 sum wraps negative there.
	for u := r; ; u = s.next(31) {
		r = u % bound
		if u-r+m >= 0 {
			return r, nil
		}
	}
}

// Int64 returns a uniformly distributed int64 built from two 32-bit draws.
func (s *Stream) Int64() int64 {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.int64()
}

func (s *Stream) int64() int64 {
	high := int64(s.next(32))
	low := int64(s.next(32))
	return high<<32 + low
}

// Bool returns a uniformly distributed boolean.
func (s *Stream) Bool() bool {
	return s.Next(1) != 0
}

// Float32 returns a value in [0, 1) with 24 bits of precision.
func (s *Stream) Float32() float32 {
	return float32(s.Next(24)) / (1 << 24)
}

// Float64 returns a value in [0, 1) with 53 bits of precision.
func (s *Stream) Float64() float64 {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.float64()
}

func (s *Stream) float64() float64 {
	high := int64(s.next(26))
	low := int64(s.next(27))
	return float64(high<<27+low) * (1.0 / (1 << 53))
}

// NormFloat64 returns a normally distributed value with mean 0 and
// standard deviation 1, using the polar method. Every accepted pair yields
// two values; the second is returned by the following call unless the
// stream is reseeded first.
func (s *Stream) NormFloat64() float64 {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.hasGaussian {
		s.hasGaussian = false
		return s.gaussian
	}

	var v1, v2, q float64
	for {
		v1 = 2*s.float64() - 1
		v2 = 2*s.float64() - 1
		q = v1*v1 + v2*v2
		if q < 1 && q != 0 {
			break
		}
	}

	f := math.Sqrt(-2 * math.Log(q) / q)
	s.gaussian = v2 * f
	s.hasGaussian = true
	return v1 * f
}

// Bytes fills buf from successive Int32 values, least significant byte
// first. A trailing group shorter than four bytes is truncated.
func (s *Stream) Bytes(buf []byte) {
	s.lock.Lock()
	defer s.lock.Unlock()

	for i := 0; i < len(buf); {
		val := s.next(32)
		for n := min(len(buf)-i, 4); n > 0; n-- {
			buf[i] = byte(val)
			val >>= 8
			i++
		}
	}
}
