package cryptography

import (
	"fmt"
	"math/big"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/trace"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"
)

// elGamalProcessor struct that implements the ElGamalProcessor interface
type elGamalProcessor struct {
	logger logger.Logger
	random cryptoalg.RandomSource
}

// NewElGamalProcessor creates and returns a new instance of elGamalProcessor
func NewElGamalProcessor(logger logger.Logger, random cryptoalg.RandomSource) (cryptoalg.ElGamalProcessor, error) {
	if random == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	return &elGamalProcessor{
		logger: logger,
		random: random,
	}, nil
}

// GenerateKeys picks the private key x and publishes y = g^x mod p
func (e *elGamalProcessor) GenerateKeys(p, g, x *big.Int) (*cryptoalg.ElGamalKeyResult, error) {
	if err := requirePrime("p", p, 5); err != nil {
		return nil, err
	}
	if err := requireBetween("g", g, two, sub(p, one)); err != nil {
		return nil, err
	}

	var err error
	if x == nil {
		if x, err = randomInRange(e.random, two, sub(p, two)); err != nil {
			return nil, err
		}
	} else if err = requireBetween("x", x, one, sub(p, two)); err != nil {
		return nil, err
	}
	y := modExp(g, x, p)

	rec := trace.NewRecorder[trace.Step](2)
	rec.Record(trace.Step{
		Label:       "1. Private key",
		Description: fmt.Sprintf("x = %s is chosen with 1 < x < p - 1 and kept secret.", x),
		Operands:    []trace.Operand{trace.Op("p", p)},
		Result:      x,
	})
	rec.Record(trace.Step{
		Label:       "2. Public key",
		Description: "y = g^x mod p is published together with p and g.",
		Operands:    []trace.Operand{trace.Op("g", g), trace.Op("x", x)},
		Formula:     fmt.Sprintf("y = %s^%s mod %s = %s", g, x, p, y),
		Result:      y,
	})

	logTraced(e.logger, "ElGamal", "key generation", rec.Len())
	return &cryptoalg.ElGamalKeyResult{P: p, G: g, X: x, Y: y, Steps: rec.Steps()}, nil
}

// Encrypt turns every character code m into the pair (g^k, y^k * m) mod p with a fresh k
func (e *elGamalProcessor) Encrypt(text string, p, g, y *big.Int) (*cryptoalg.ElGamalEncryptResult, error) {
	if text == "" {
		return nil, cryptoalg.NewValidationError(cryptoalg.MsgMissingText)
	}
	if err := requirePrime("p", p, 5); err != nil {
		return nil, err
	}
	if err := requireBetween("g", g, two, sub(p, one)); err != nil {
		return nil, err
	}
	if err := requireBetween("y", y, one, sub(p, one)); err != nil {
		return nil, err
	}

	runes := []rune(text)
	pairs := make([]cryptoalg.ElGamalPair, 0, len(runes))
	rec := trace.NewRecorder[trace.Step](len(runes) + 1)
	rec.Record(trace.Step{
		Label:       "Public key",
		Description: fmt.Sprintf("Encrypting with the public key (p=%s, g=%s, y=%s)", p, g, y),
	})

	for _, ch := range runes {
		m := big.NewInt(int64(ch))
		if m.Cmp(p) >= 0 {
			return nil, cryptoalg.NewValidationError("character %q (code %d) does not fit below p = %s", ch, ch, p)
		}
		k, err := randomInRange(e.random, two, sub(p, two))
		if err != nil {
			return nil, err
		}
		a := modExp(g, k, p)
		s := modExp(y, k, p)
		b := mod(mul(s, m), p)
		pairs = append(pairs, cryptoalg.ElGamalPair{A: a, B: b})

		rec.Record(trace.Step{
			Label:       fmt.Sprintf("Character %q", ch),
			Description: fmt.Sprintf("ciphertext pair (%s, %s)", a, b),
			Operands:    []trace.Operand{trace.Op("m", m), trace.Op("k", k), trace.Op("s", s)},
			Formula: fmt.Sprintf("a = g^k mod p = %s^%s mod %s = %s; s = y^k mod p = %s^%s mod %s = %s; b = (s * m) mod p = (%s * %s) mod %s = %s",
				g, k, p, a, y, k, p, s, s, m, p, b),
			Result: []*big.Int{a, b},
		})
	}

	logTraced(e.logger, "ElGamal", cryptoalg.ModeEncrypt, rec.Len())
	return &cryptoalg.ElGamalEncryptResult{Text: text, Pairs: pairs, Steps: rec.Steps()}, nil
}

// Decrypt recovers m = b * (a^x)^-1 mod p for every pair
func (e *elGamalProcessor) Decrypt(pairs []cryptoalg.ElGamalPair, p, x *big.Int) (*cryptoalg.ElGamalDecryptResult, error) {
	if len(pairs) == 0 {
		return nil, cryptoalg.NewValidationError("Missing ciphertext")
	}
	if err := requirePrime("p", p, 5); err != nil {
		return nil, err
	}
	if err := requireAtLeast("x", x, 1); err != nil {
		return nil, err
	}

	rec := trace.NewRecorder[trace.Step](len(pairs) + 1)
	rec.Record(trace.Step{
		Label:       "Private key",
		Description: fmt.Sprintf("Decrypting with the private key x=%s", x),
	})

	var plaintext []byte
	for i, pair := range pairs {
		if pair.A == nil || pair.B == nil {
			return nil, cryptoalg.NewValidationError("ciphertext pair %d requires a and b", i)
		}
		s := modExp(pair.A, x, p)
		sInv := modInverse(s, p)

		ch := "?"
		var m *big.Int
		formula := fmt.Sprintf("s = a^x mod p = %s^%s mod %s = %s; s has no inverse mod %s", pair.A, x, p, s, p)
		if sInv != nil {
			m = mod(mul(pair.B, sInv), p)
			ch = decodeCodePoint(m)
			formula = fmt.Sprintf("s = a^x mod p = %s^%s mod %s = %s; m = b * s^-1 mod p = %s * %s mod %s = %s",
				pair.A, x, p, s, pair.B, sInv, p, m)
		}
		plaintext = append(plaintext, ch...)

		rec.Record(trace.Step{
			Label:       fmt.Sprintf("Pair (%s, %s)", pair.A, pair.B),
			Description: fmt.Sprintf("decodes to %q", ch),
			Operands:    []trace.Operand{trace.Op("s", s), trace.Op("s_inv", sInv)},
			Formula:     formula,
			Result:      m,
		})
	}

	logTraced(e.logger, "ElGamal", cryptoalg.ModeDecrypt, rec.Len())
	return &cryptoalg.ElGamalDecryptResult{Pairs: pairs, Plaintext: string(plaintext), Steps: rec.Steps()}, nil
}
