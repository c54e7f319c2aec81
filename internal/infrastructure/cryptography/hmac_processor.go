package cryptography

import (
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/trace"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

const (
	hmacInnerPad = 0x36
	hmacOuterPad = 0x5c
)

type hashSpec struct {
	newHash   func() hash.Hash
	blockSize int
}

var hmacHashes = map[string]hashSpec{
	cryptoalg.HashMD5:        {md5.New, md5.BlockSize},
	cryptoalg.HashSHA1:       {sha1.New, sha1.BlockSize},
	cryptoalg.HashSHA256:     {sha256.New, sha256.BlockSize},
	cryptoalg.HashSHA512:     {sha512.New, sha512.BlockSize},
	cryptoalg.HashSHA3_256:   {sha3.New256, 136},
	cryptoalg.HashBLAKE2b256: {newBLAKE2b256, blake2b.BlockSize},
}

// newBLAKE2b256 drops the error New256 only returns for keys over 64 bytes.
func newBLAKE2b256() hash.Hash {
	h, _ := blake2b.New256(nil)
	return h
}

// hmacProcessor struct that implements the HMACProcessor interface
type hmacProcessor struct {
	logger logger.Logger
}

// NewHMACProcessor creates and returns a new instance of hmacProcessor
func NewHMACProcessor(logger logger.Logger) (cryptoalg.HMACProcessor, error) {
	return &hmacProcessor{logger: logger}, nil
}

// Compute returns H((K' ^ opad) || H((K' ^ ipad) || message)). An empty
// algorithm selects SHA-256.
func (h *hmacProcessor) Compute(key, message, algorithm string) (*cryptoalg.HMACResult, error) {
	if key == "" {
		return nil, cryptoalg.NewValidationError(cryptoalg.MsgMissingKey)
	}
	algorithm = strings.ToLower(strings.TrimSpace(algorithm))
	if algorithm == "" {
		algorithm = cryptoalg.HashSHA256
	}
	spec, ok := hmacHashes[algorithm]
	if !ok {
		return nil, cryptoalg.NewValidationError("Unsupported hash algorithm %q", algorithm)
	}

	sum := func(parts ...[]byte) []byte {
		d := spec.newHash()
		for _, p := range parts {
			d.Write(p)
		}
		return d.Sum(nil)
	}

	rec := trace.NewRecorder[trace.Step](6)
	k := []byte(key)
	rec.Record(trace.Step{
		Label:       "1. Key preparation",
		Description: fmt.Sprintf("Key %q, algorithm %s, block size %d bytes.", key, algorithm, spec.blockSize),
		Operands:    []trace.Operand{trace.Op("key", hex.EncodeToString(k))},
	})

	switch {
	case len(k) > spec.blockSize:
		k = sum(k)
		rec.Record(trace.Step{
			Label:       "1a. Key hashing",
			Description: "The key is longer than the block, so it is hashed down first.",
			Formula:     "K = H(key)",
			Result:      hex.EncodeToString(k),
		})
	case len(k) == spec.blockSize:
		rec.Record(trace.Step{
			Label:       "1a. Key fits",
			Description: "The key is exactly one block long and is used as is.",
		})
	}
	padding := spec.blockSize - len(k)
	k = append(k, make([]byte, padding)...)
	if padding > 0 {
		rec.Record(trace.Step{
			Label:       "1b. Key padding",
			Description: fmt.Sprintf("The key is shorter than the block and is filled with %d zero bytes (0x00) to reach %d bytes.", padding, spec.blockSize),
			Formula:     "K' = K || 0x00...",
			Result:      hex.EncodeToString(k),
		})
	}

	innerKey := xorByte(k, hmacInnerPad)
	rec.Record(trace.Step{
		Label:       "2. Inner pad (K' XOR ipad)",
		Description: "Every key byte is XORed with 0x36 (00110110).",
		Result:      hex.EncodeToString(innerKey),
	})

	inner := sum(innerKey, []byte(message))
	rec.Record(trace.Step{
		Label:       "3. Inner hash",
		Description: "H((K' XOR ipad) || message)",
		Operands:    []trace.Operand{trace.Op("message", hex.EncodeToString([]byte(message)))},
		Result:      hex.EncodeToString(inner),
	})

	outerKey := xorByte(k, hmacOuterPad)
	rec.Record(trace.Step{
		Label:       "4. Outer pad (K' XOR opad)",
		Description: "Every key byte is XORed with 0x5c (01011100).",
		Result:      hex.EncodeToString(outerKey),
	})

	final := sum(outerKey, inner)
	rec.Record(trace.Step{
		Label:       "5. Outer hash",
		Description: "H((K' XOR opad) || inner hash) is the HMAC.",
		Result:      hex.EncodeToString(final),
	})

	logTraced(h.logger, "HMAC-"+algorithm, "compute", rec.Len())
	return &cryptoalg.HMACResult{
		Algorithm:  algorithm,
		BlockSize:  spec.blockSize,
		DigestSize: len(final),
		KeyHex:     hex.EncodeToString([]byte(key)),
		MessageHex: hex.EncodeToString([]byte(message)),
		InnerHash:  hex.EncodeToString(inner),
		HMAC:       hex.EncodeToString(final),
		Steps:      rec.Steps(),
	}, nil
}

func xorByte(in []byte, pad byte) []byte {
	out := bytes.Clone(in)
	for i := range out {
		out[i] ^= pad
	}
	return out
}
