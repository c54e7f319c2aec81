package cryptography

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand/v2"
	"sync"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
)

// NewSecureRandomSource returns the operating system CSPRNG
func NewSecureRandomSource() cryptoalg.RandomSource {
	return rand.Reader
}

// seededSource is a deterministic byte stream for reproducible traces.
type seededSource struct {
	mu  sync.Mutex
	gen *mrand.ChaCha8
}

// NewSeededRandomSource returns a deterministic source derived from seed.
// Two sources built from the same seed yield the same bytes.
func NewSeededRandomSource(seed uint64) cryptoalg.RandomSource {
	var key [32]byte
	for i := 0; i < 4; i++ {
		s := seed + uint64(i)*0x9e3779b97f4a7c15
		for j := 0; j < 8; j++ {
			key[i*8+j] = byte(s >> (8 * j))
		}
	}
	return &seededSource{gen: mrand.NewChaCha8(key)}
}

func (s *seededSource) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen.Read(p)
}

// randomInRange draws a uniform integer from [lo, hi].
func randomInRange(src cryptoalg.RandomSource, lo, hi *big.Int) (*big.Int, error) {
	if hi.Cmp(lo) < 0 {
		return nil, cryptoalg.NewValidationError("empty range [%s, %s]", lo, hi)
	}
	span := new(big.Int).Sub(hi, lo)
	span.Add(span, one)
	n, err := rand.Int(src, span)
	if err != nil {
		return nil, fmt.Errorf("failed to read random source: %w", err)
	}
	return n.Add(n, lo), nil
}

func randomBytes(src cryptoalg.RandomSource, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := fullRead(src, buf); err != nil {
		return nil, fmt.Errorf("failed to read random source: %w", err)
	}
	return buf, nil
}

func fullRead(src cryptoalg.RandomSource, buf []byte) (int, error) {
	read := 0
	for read < len(buf) {
		n, err := src.Read(buf[read:])
		read += n
		if err != nil {
			return read, err
		}
	}
	return read, nil
}
