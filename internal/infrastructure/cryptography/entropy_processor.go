package cryptography

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/trace"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/config"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"
	"golang.org/x/crypto/hkdf"
)

const (
	entropySourceLabel = "OS random source (hardware noise and interrupts)"
	entropySampleLen   = 50
	entropySeedLen     = 32
	entropySeedInfo    = "crypto-trace entropy pool seed"
)

// entropyProcessor struct that implements the EntropyProcessor interface
type entropyProcessor struct {
	logger   logger.Logger
	random   cryptoalg.RandomSource
	maxBytes int
}

// NewEntropyProcessor creates and returns a new instance of entropyProcessor.
// random is read verbatim by SystemEntropy.
func NewEntropyProcessor(logger logger.Logger, random cryptoalg.RandomSource, settings config.EngineSettings) (cryptoalg.EntropyProcessor, error) {
	if random == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	if settings.EntropyMaxBytes < 1 {
		return nil, fmt.Errorf("entropy max bytes must be positive, got %d", settings.EntropyMaxBytes)
	}
	return &entropyProcessor{
		logger:   logger,
		random:   random,
		maxBytes: settings.EntropyMaxBytes,
	}, nil
}

// SystemEntropy reads numBytes from the random source without further processing
func (e *entropyProcessor) SystemEntropy(numBytes int) (*cryptoalg.SystemEntropyResult, error) {
	if numBytes < 1 || numBytes > e.maxBytes {
		return nil, cryptoalg.NewValidationError("the number of bytes must be in [1, %d]", e.maxBytes)
	}

	buf, err := randomBytes(e.random, numBytes)
	if err != nil {
		return nil, err
	}
	ints := make([]int, len(buf))
	for i, b := range buf {
		ints[i] = int(b)
	}

	e.logger.Info(fmt.Sprintf("Sampled %d bytes of system entropy", numBytes))
	return &cryptoalg.SystemEntropyResult{
		Hex:    hex.EncodeToString(buf),
		Bytes:  ints,
		Source: entropySourceLabel,
	}, nil
}

// MixUserEntropy serializes the events as "x,y,t|" records, hashes them into a
// pool digest and expands the digest into a 32-byte seed with HKDF-SHA256.
func (e *entropyProcessor) MixUserEntropy(events []cryptoalg.EntropyEvent) (*cryptoalg.EntropyMixResult, error) {
	if len(events) == 0 {
		return nil, cryptoalg.NewValidationError("No entropy events")
	}

	var raw strings.Builder
	for _, ev := range events {
		raw.WriteString(formatEntropyNumber(ev.X))
		raw.WriteByte(',')
		raw.WriteString(formatEntropyNumber(ev.Y))
		raw.WriteByte(',')
		raw.WriteString(formatEntropyNumber(ev.T))
		raw.WriteByte('|')
	}
	data := raw.String()
	sample := data
	if len(sample) > entropySampleLen {
		sample = sample[:entropySampleLen] + "..."
	}

	rec := trace.NewRecorder[trace.Step](3)
	rec.Record(trace.Step{
		Label:       "1. Serialize events",
		Description: fmt.Sprintf("%d events are written as x,y,t| records.", len(events)),
		Result:      sample,
	})

	pool := sha256.Sum256([]byte(data))
	rec.Record(trace.Step{
		Label:       "2. Mix into the pool",
		Description: "The serialized events are hashed into the pool digest.",
		Formula:     "pool = SHA-256(events)",
		Result:      hex.EncodeToString(pool[:]),
	})

	seed := make([]byte, entropySeedLen)
	if _, err := io.ReadFull(hkdf.New(sha256.New, pool[:], nil, []byte(entropySeedInfo)), seed); err != nil {
		return nil, fmt.Errorf("failed to derive seed from entropy pool: %w", err)
	}
	rec.Record(trace.Step{
		Label:       "3. Derive seed",
		Description: "The pool digest is expanded into a 32-byte seed.",
		Formula:     fmt.Sprintf("seed = HKDF-SHA256(pool, info=%q)", entropySeedInfo),
		Result:      hex.EncodeToString(seed),
	})

	logTraced(e.logger, "Entropy", "mix", rec.Len())
	return &cryptoalg.EntropyMixResult{
		PoolHash:       hex.EncodeToString(pool[:]),
		EventCount:     len(events),
		RawDataSample:  sample,
		DerivedSeedHex: hex.EncodeToString(seed),
		Steps:          rec.Steps(),
	}, nil
}

// formatEntropyNumber prints integral values without a fraction.
func formatEntropyNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
