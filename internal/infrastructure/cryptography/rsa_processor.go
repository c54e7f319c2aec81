package cryptography

import (
	"fmt"
	"math/big"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/trace"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"
)

// rsaExponentTrials bounds the random search for e before falling back to a linear scan
const rsaExponentTrials = 64

// rsaProcessor struct that implements the RSAProcessor interface
type rsaProcessor struct {
	logger logger.Logger
	random cryptoalg.RandomSource
}

// NewRSAProcessor creates and returns a new instance of rsaProcessor
func NewRSAProcessor(logger logger.Logger, random cryptoalg.RandomSource) (cryptoalg.RSAProcessor, error) {
	if random == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	return &rsaProcessor{
		logger: logger,
		random: random,
	}, nil
}

// GenerateKeys derives (e, n) and (d, n) from the primes p and q
func (r *rsaProcessor) GenerateKeys(p, q *big.Int) (*cryptoalg.RSAKeyResult, error) {
	if p == nil || q == nil {
		return nil, cryptoalg.NewValidationError("Both p and q are required")
	}
	if !isPrime(p) || !isPrime(q) {
		return nil, cryptoalg.NewValidationError("Both numbers must be prime")
	}
	if p.Cmp(q) == 0 {
		return nil, cryptoalg.NewValidationError("p and q cannot be equal")
	}

	n := mul(p, q)
	phi := mul(sub(p, one), sub(q, one))
	if phi.Cmp(big.NewInt(3)) < 0 {
		return nil, cryptoalg.NewValidationError("phi(n) = %s leaves no valid public exponent", phi)
	}

	rec := trace.NewRecorder[trace.Step](4)
	rec.Record(trace.Step{
		Label:       "1. Modulus n",
		Description: "n is the product of the two primes and is part of both keys.",
		Operands:    []trace.Operand{trace.Op("p", p), trace.Op("q", q)},
		Formula:     fmt.Sprintf("n = p * q = %s * %s", p, q),
		Result:      n,
	})
	rec.Record(trace.Step{
		Label:       "2. Euler's totient phi(n)",
		Description: "phi(n) counts the integers below n that are coprime to n. It stays secret.",
		Formula:     fmt.Sprintf("phi(n) = (p - 1) * (q - 1) = %s * %s", sub(p, one), sub(q, one)),
		Result:      phi,
	})

	e, trials, err := r.chooseExponent(phi)
	if err != nil {
		return nil, err
	}
	rec.Record(trace.Step{
		Label:       "3. Public exponent e",
		Description: fmt.Sprintf("e must satisfy 1 < e < phi(n) and gcd(e, phi(n)) = 1. Chosen after %d candidate(s).", trials),
		Operands:    []trace.Operand{trace.Op("phi", phi)},
		Formula:     fmt.Sprintf("gcd(e, phi(n)) = gcd(%s, %s) = 1", e, phi),
		Result:      e,
	})

	_, s, _ := extendedGCD(e, phi)
	d := mod(s, phi)
	rec.Record(trace.Step{
		Label:       "4. Private exponent d",
		Description: "d is the modular inverse of e modulo phi(n), found with the extended Euclidean algorithm.",
		Operands:    []trace.Operand{trace.Op("e", e), trace.Op("phi", phi)},
		Formula:     fmt.Sprintf("d * e = 1 (mod phi(n)): (%s * %s) mod %s = %s", d, e, phi, mod(mul(d, e), phi)),
		Result:      d,
	})

	logTraced(r.logger, "RSA", "key generation", rec.Len())
	return &cryptoalg.RSAKeyResult{
		P:          p,
		Q:          q,
		N:          n,
		Phi:        phi,
		PublicKey:  cryptoalg.RSAPublicKey{E: e, N: n},
		PrivateKey: cryptoalg.RSAPrivateKey{D: d, N: n},
		Steps:      rec.Steps(),
	}, nil
}

// chooseExponent draws e from [2, phi-1] until it is coprime to phi. Once the
// trial budget is spent it scans upwards from 2; phi-1 always qualifies.
func (r *rsaProcessor) chooseExponent(phi *big.Int) (*big.Int, int, error) {
	hi := sub(phi, one)
	for trial := 1; trial <= rsaExponentTrials; trial++ {
		e, err := randomInRange(r.random, two, hi)
		if err != nil {
			return nil, trial, err
		}
		if gcd(e, phi).Cmp(one) == 0 {
			return e, trial, nil
		}
	}

	trials := rsaExponentTrials
	for e := big.NewInt(2); e.Cmp(hi) <= 0; e.Add(e, one) {
		trials++
		if gcd(e, phi).Cmp(one) == 0 {
			return new(big.Int).Set(e), trials, nil
		}
	}
	return nil, trials, cryptoalg.NewValidationError("no public exponent is coprime to phi(n) = %s", phi)
}

// Encrypt computes c = m^e mod n for the code point m of every character
func (r *rsaProcessor) Encrypt(text string, e, n *big.Int) (*cryptoalg.RSAEncryptResult, error) {
	if text == "" {
		return nil, cryptoalg.NewValidationError(cryptoalg.MsgMissingText)
	}
	if err := requireAtLeast("e", e, 1); err != nil {
		return nil, err
	}
	if err := requireAtLeast("n", n, 2); err != nil {
		return nil, err
	}

	runes := []rune(text)
	rec := trace.NewRecorder[trace.Step](len(runes) + 1)
	rec.Record(trace.Step{
		Label:       "Public key",
		Description: fmt.Sprintf("Encrypting with the public key (e=%s, n=%s)", e, n),
	})

	ciphertext := make([]*big.Int, 0, len(runes))
	for _, ch := range runes {
		m := big.NewInt(int64(ch))
		if m.Cmp(n) >= 0 {
			return nil, cryptoalg.NewValidationError("character %q (code %d) does not fit below n = %s", ch, ch, n)
		}
		c := modExp(m, e, n)
		ciphertext = append(ciphertext, c)
		rec.Record(trace.Step{
			Label:    fmt.Sprintf("Character %q", ch),
			Operands: []trace.Operand{trace.Op("m", m)},
			Formula:  fmt.Sprintf("%s^%s mod %s", m, e, n),
			Result:   c,
		})
	}

	logTraced(r.logger, "RSA", cryptoalg.ModeEncrypt, rec.Len())
	return &cryptoalg.RSAEncryptResult{
		Text:       text,
		PublicKey:  cryptoalg.RSAPublicKey{E: e, N: n},
		Ciphertext: ciphertext,
		Steps:      rec.Steps(),
	}, nil
}

// Decrypt computes m = c^d mod n for every ciphertext value
func (r *rsaProcessor) Decrypt(ciphertext []*big.Int, d, n *big.Int) (*cryptoalg.RSADecryptResult, error) {
	if len(ciphertext) == 0 {
		return nil, cryptoalg.NewValidationError("Missing ciphertext")
	}
	if err := requireAtLeast("d", d, 1); err != nil {
		return nil, err
	}
	if err := requireAtLeast("n", n, 2); err != nil {
		return nil, err
	}

	rec := trace.NewRecorder[trace.Step](len(ciphertext) + 1)
	rec.Record(trace.Step{
		Label:       "Private key",
		Description: fmt.Sprintf("Decrypting with the private key (d=%s, n=%s)", d, n),
	})

	var plaintext []byte
	for i, c := range ciphertext {
		if c == nil || c.Sign() < 0 {
			return nil, cryptoalg.NewValidationError("ciphertext value %d must be a non-negative integer", i)
		}
		m := modExp(c, d, n)
		ch := decodeCodePoint(m)
		plaintext = append(plaintext, ch...)
		rec.Record(trace.Step{
			Label:       fmt.Sprintf("Value %d", i+1),
			Description: fmt.Sprintf("decodes to %q", ch),
			Operands:    []trace.Operand{trace.Op("c", c)},
			Formula:     fmt.Sprintf("%s^%s mod %s", c, d, n),
			Result:      m,
		})
	}

	logTraced(r.logger, "RSA", cryptoalg.ModeDecrypt, rec.Len())
	return &cryptoalg.RSADecryptResult{
		Ciphertext: ciphertext,
		PrivateKey: cryptoalg.RSAPrivateKey{D: d, N: n},
		Plaintext:  string(plaintext),
		Steps:      rec.Steps(),
	}, nil
}
