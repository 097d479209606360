package generator

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sync"
	"time"
)

const (
	ReseedInterval     = 10 * time.Minute
	ReseedByteInterval = 500 * 1024 * 1024 // 500 MB
)

// EntropyFunc returns fresh key material for a reseed.
type EntropyFunc func() ([]byte, error)

// SystemEntropy reads 32 bytes from crypto/rand.
func SystemEntropy() ([]byte, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("read system entropy: %w", err)
	}
	return key, nil
}

// HMACDRBG is an HMAC-SHA256 counter-mode generator. The state is chained
// through every output block and re-keyed from Entropy after
// ReseedInterval or ReseedByteInterval, whichever comes first.
type HMACDRBG struct {
	state          []byte
	counter        uint64
	mutex          sync.Mutex
	bytesGenerated int
	lastReseed     time.Time

	entropy EntropyFunc
	now     func() time.Time
}

// NewHMACDRBG creates a DRBG keyed from system entropy.
func NewHMACDRBG() *HMACDRBG {
	return NewHMACDRBGWith(SystemEntropy, time.Now)
}

// NewHMACDRBGWith creates a DRBG with explicit entropy and clock. The
// initial reseed is deferred to the first GenerateBytes call so that
// entropy errors surface there.
func NewHMACDRBGWith(entropy EntropyFunc, now func() time.Time) *HMACDRBG {
	return &HMACDRBG{
		entropy: entropy,
		now:     now,
	}
}

// Name returns the generator name
func (h *HMACDRBG) Name() string {
	return "HMAC DRBG"
}

// reseed mixes fresh entropy into the state
func (h *HMACDRBG) reseed() error {
	fresh, err := h.entropy()
	if err != nil {
		return err
	}

	// Old state keys the mix so earlier entropy is never discarded.
	mac := hmac.New(sha256.New, h.state)
	mac.Write(fresh)
	h.state = mac.Sum(nil)

	h.lastReseed = h.now()
	h.bytesGenerated = 0
	return nil
}

func (h *HMACDRBG) needsReseed() bool {
	return h.state == nil ||
		h.now().Sub(h.lastReseed) > ReseedInterval ||
		h.bytesGenerated > ReseedByteInterval
}

// GenerateBytes generates pseudo-random bytes, reseeding first if due.
func (h *HMACDRBG) GenerateBytes(numBytes int) ([]byte, error) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.needsReseed() {
		if err := h.reseed(); err != nil {
			return nil, fmt.Errorf("reseed %s: %w", h.Name(), err)
		}
	}

	result := make([]byte, numBytes)
	generated := 0
	counterBytes := make([]byte, 8)

	for generated < numBytes {
		mac := hmac.New(sha256.New, h.state)
		binary.BigEndian.PutUint64(counterBytes, h.counter)
		mac.Write(counterBytes)
		block := mac.Sum(nil)

		generated += copy(result[generated:], block)
		h.counter++

		// Update state for next block generation
		updateMac := hmac.New(sha256.New, h.state)
		updateMac.Write(block)
		h.state = updateMac.Sum(nil)
	}

	h.bytesGenerated += numBytes
	return result, nil
}
