package lcg

import (
	"io"
	"math/rand"
)

var (
	_ rand.Source64 = (*Stream)(nil)
	_ io.Reader     = (*Stream)(nil)
)

// Int63 returns a non-negative int64 so a Stream can back a *rand.Rand.
func (s *Stream) Int63() int64 {
	return int64(s.Uint64() >> 1)
}

// Uint64 returns the bits of Int64 reinterpreted as unsigned.
func (s *Stream) Uint64() uint64 {
	return uint64(s.Int64())
}

// Read fills p like Bytes. It always returns len(p), nil.
func (s *Stream) Read(p []byte) (int, error) {
	s.Bytes(p)
	return len(p), nil
}
