package cryptography

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/trace"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/config"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"
)

// dsaQCandidates are the subgroup orders drawn by Setup
var dsaQCandidates = []int64{11, 23, 47, 59, 83}

// dsaProcessor struct that implements the DSAProcessor interface
type dsaProcessor struct {
	logger      logger.Logger
	random      cryptoalg.RandomSource
	maxAttempts int
}

// NewDSAProcessor creates and returns a new instance of dsaProcessor
func NewDSAProcessor(logger logger.Logger, random cryptoalg.RandomSource, settings config.EngineSettings) (cryptoalg.DSAProcessor, error) {
	if random == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	if settings.DsaMaxSignAttempts < 1 {
		return nil, fmt.Errorf("dsa max sign attempts must be positive, got %d", settings.DsaMaxSignAttempts)
	}
	return &dsaProcessor{
		logger:      logger,
		random:      random,
		maxAttempts: settings.DsaMaxSignAttempts,
	}, nil
}

// Setup picks q, the smallest prime p = k*q + 1 and a generator g of order q
func (d *dsaProcessor) Setup() (*cryptoalg.DSASetupResult, error) {
	idx, err := randomInRange(d.random, zero, big.NewInt(int64(len(dsaQCandidates)-1)))
	if err != nil {
		return nil, err
	}
	q := big.NewInt(dsaQCandidates[idx.Int64()])

	rec := trace.NewRecorder[trace.Step](3)
	rec.Record(trace.Step{
		Label:       "1. Prime q",
		Description: "q is a small prime that will be the order of the signing subgroup.",
		Operands:    []trace.Operand{trace.Op("candidates", dsaQCandidates)},
		Result:      q,
	})

	k := big.NewInt(2)
	p := add(mul(k, q), one)
	for !isPrime(p) {
		k.Add(k, one)
		p = add(mul(k, q), one)
	}
	rec.Record(trace.Step{
		Label:       "2. Prime p",
		Description: "The multiplier k grows from 2 until k * q + 1 is prime, so q divides p - 1.",
		Operands:    []trace.Operand{trace.Op("k", k)},
		Formula:     fmt.Sprintf("p = k * q + 1 = %s * %s + 1", k, q),
		Result:      p,
	})

	exp := new(big.Int).Div(sub(p, one), q)
	h := big.NewInt(2)
	g := modExp(h, exp, p)
	for g.Cmp(one) <= 0 {
		h.Add(h, one)
		g = modExp(h, exp, p)
	}
	rec.Record(trace.Step{
		Label:       "3. Generator g",
		Description: "g = h^((p-1)/q) mod p for the smallest h >= 2 that gives g > 1; g then has order q.",
		Operands:    []trace.Operand{trace.Op("h", h)},
		Formula:     fmt.Sprintf("g = %s^%s mod %s", h, exp, p),
		Result:      g,
	})

	logTraced(d.logger, "DSA", "setup", rec.Len())
	return &cryptoalg.DSASetupResult{
		Params: cryptoalg.DSAParams{P: p, Q: q, G: g},
		Steps:  rec.Steps(),
	}, nil
}

// GenerateKeys picks x in [1, q-1] and publishes y = g^x mod p
func (d *dsaProcessor) GenerateKeys(params cryptoalg.DSAParams) (*cryptoalg.DSAKeyResult, error) {
	if err := validateDSAParams(params); err != nil {
		return nil, err
	}

	x, err := randomInRange(d.random, one, sub(params.Q, one))
	if err != nil {
		return nil, err
	}
	y := modExp(params.G, x, params.P)

	rec := trace.NewRecorder[trace.Step](2)
	rec.Record(trace.Step{
		Label:       "1. Private key",
		Description: fmt.Sprintf("x = %s is a random secret with 0 < x < q.", x),
		Operands:    []trace.Operand{trace.Op("q", params.Q)},
		Result:      x,
	})
	rec.Record(trace.Step{
		Label:       "2. Public key",
		Description: "y = g^x mod p is published.",
		Formula:     fmt.Sprintf("y = %s^%s mod %s = %s", params.G, x, params.P, y),
		Result:      y,
	})

	logTraced(d.logger, "DSA", "key generation", rec.Len())
	return &cryptoalg.DSAKeyResult{Params: params, X: x, Y: y, Steps: rec.Steps()}, nil
}

// Sign computes r = (g^k mod p) mod q and s = k^-1 (H(m) + x r) mod q,
// resampling k while either is zero
func (d *dsaProcessor) Sign(message string, params cryptoalg.DSAParams, x *big.Int) (*cryptoalg.DSASignResult, error) {
	if message == "" {
		return nil, cryptoalg.NewValidationError(cryptoalg.MsgMissingText)
	}
	if err := validateDSAParams(params); err != nil {
		return nil, err
	}
	if err := requireBetween("x", x, one, sub(params.Q, one)); err != nil {
		return nil, err
	}

	hm, digest := dsaHash(message)
	rec := trace.NewRecorder[trace.Step](5)
	rec.Record(trace.Step{
		Label:       "1. Message hash",
		Description: "SHA-256 of the message, read as one large integer. It is reduced mod q only inside s.",
		Formula:     fmt.Sprintf("H(%q) = %s...", message, digest[:6]),
		Result:      hm,
	})

	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		k, err := randomInRange(d.random, one, sub(params.Q, one))
		if err != nil {
			return nil, err
		}
		r := mod(modExp(params.G, k, params.P), params.Q)
		kInv := modInverse(k, params.Q)
		s := mod(mul(kInv, add(hm, mul(x, r))), params.Q)

		if r.Sign() == 0 || s.Sign() == 0 {
			d.logger.Warn(fmt.Sprintf("DSA attempt %d produced a degenerate signature, resampling k", attempt))
			rec.Record(trace.Step{
				Label:       fmt.Sprintf("Retry %d", attempt),
				Description: "r or s is zero, so this k cannot be used. A fresh k is drawn.",
				Operands:    []trace.Operand{trace.Op("k", k), trace.Op("r", r), trace.Op("s", s)},
			})
			continue
		}

		rec.Record(trace.Step{
			Label:       "2. Ephemeral k",
			Description: "A fresh secret k with 0 < k < q is used for this signature only.",
			Result:      k,
		})
		rec.Record(trace.Step{
			Label:       "3. Compute r",
			Description: "r depends only on the domain parameters and k.",
			Formula:     fmt.Sprintf("r = (g^k mod p) mod q = (%s^%s mod %s) mod %s = %s", params.G, k, params.P, params.Q, r),
			Result:      r,
		})
		rec.Record(trace.Step{
			Label:       "4. Compute s",
			Description: "s binds the message hash, the private key x and r.",
			Operands:    []trace.Operand{trace.Op("k_inv", kInv)},
			Formula:     fmt.Sprintf("s = (k^-1 * (H(m) + x*r)) mod q = (%s * (%s + %s*%s)) mod %s = %s", kInv, hm, x, r, params.Q, s),
			Result:      s,
		})

		logTraced(d.logger, "DSA", "sign", rec.Len())
		return &cryptoalg.DSASignResult{
			Message:  message,
			Hash:     hm,
			K:        k,
			R:        r,
			S:        s,
			Attempts: attempt,
			Steps:    rec.Steps(),
		}, nil
	}

	d.logger.Error(fmt.Sprintf("DSA signing gave up after %d attempts", d.maxAttempts))
	return nil, fmt.Errorf("signing %q with q = %s: %w", message, params.Q, cryptoalg.ErrSigningExhausted)
}

// Verify checks v = ((g^u1 * y^u2) mod p) mod q against r
func (d *dsaProcessor) Verify(message string, params cryptoalg.DSAParams, y, r, s *big.Int) (*cryptoalg.DSAVerifyResult, error) {
	if message == "" {
		return nil, cryptoalg.NewValidationError(cryptoalg.MsgMissingText)
	}
	if err := validateDSAParams(params); err != nil {
		return nil, err
	}
	if err := requireAtLeast("y", y, 1); err != nil {
		return nil, err
	}
	if r == nil || s == nil {
		return nil, cryptoalg.NewValidationError("Missing signature")
	}

	rec := trace.NewRecorder[trace.Step](5)
	if r.Sign() <= 0 || r.Cmp(params.Q) >= 0 || s.Sign() <= 0 || s.Cmp(params.Q) >= 0 {
		reason := fmt.Sprintf("r and s must lie in (0, %s)", params.Q)
		rec.Record(trace.Step{
			Label:       "Range check",
			Description: "The signature is invalid: " + reason + ".",
			Operands:    []trace.Operand{trace.Op("r", r), trace.Op("s", s)},
			Result:      false,
		})
		logTraced(d.logger, "DSA", "verify", rec.Len())
		return &cryptoalg.DSAVerifyResult{Message: message, Valid: false, Reason: reason, Steps: rec.Steps()}, nil
	}

	hm, _ := dsaHash(message)
	rec.Record(trace.Step{
		Label:       "1. Message hash",
		Description: "The verifier hashes the same message.",
		Formula:     "H(m) = SHA-256(m)",
		Result:      hm,
	})

	w := modInverse(s, params.Q)
	rec.Record(trace.Step{
		Label:       "2. Compute w",
		Description: "w is the inverse of s modulo q.",
		Formula:     fmt.Sprintf("w = s^-1 mod q = %s^-1 mod %s = %s", s, params.Q, w),
		Result:      w,
	})

	u1 := mod(mul(hm, w), params.Q)
	u2 := mod(mul(r, w), params.Q)
	rec.Record(trace.Step{
		Label:       "3. Compute u1 and u2",
		Description: "Two intermediate exponents.",
		Operands:    []trace.Operand{trace.Op("u1", u1), trace.Op("u2", u2)},
		Formula: fmt.Sprintf("u1 = (H(m) * w) mod q = (%s * %s) mod %s = %s; u2 = (r * w) mod q = (%s * %s) mod %s = %s",
			hm, w, params.Q, u1, r, w, params.Q, u2),
	})

	v := mod(mod(mul(modExp(params.G, u1, params.P), modExp(y, u2, params.P)), params.P), params.Q)
	rec.Record(trace.Step{
		Label:       "4. Compute v",
		Description: "The signature is valid exactly when v equals r.",
		Formula:     fmt.Sprintf("v = ((g^u1 * y^u2) mod p) mod q = ((%s^%s * %s^%s) mod %s) mod %s = %s", params.G, u1, y, u2, params.P, params.Q, v),
		Result:      v,
	})

	valid := v.Cmp(r) == 0
	result := &cryptoalg.DSAVerifyResult{Message: message, Valid: valid, W: w, U1: u1, U2: u2, V: v}
	if valid {
		rec.Record(trace.Step{Label: "Result", Description: "v = r, the signature is VALID.", Result: true})
	} else {
		result.Reason = fmt.Sprintf("v (%s) != r (%s)", v, r)
		rec.Record(trace.Step{Label: "Result", Description: result.Reason + ", the signature is NOT VALID.", Result: false})
	}
	result.Steps = rec.Steps()

	logTraced(d.logger, "DSA", "verify", rec.Len())
	return result, nil
}

func validateDSAParams(params cryptoalg.DSAParams) error {
	if err := requirePrime("q", params.Q, 2); err != nil {
		return err
	}
	if err := requirePrime("p", params.P, 3); err != nil {
		return err
	}
	if mod(sub(params.P, one), params.Q).Sign() != 0 {
		return cryptoalg.NewValidationError("q = %s must divide p - 1 = %s", params.Q, sub(params.P, one))
	}
	if err := requireBetween("g", params.G, two, sub(params.P, one)); err != nil {
		return err
	}
	if modExp(params.G, params.Q, params.P).Cmp(one) != 0 {
		return cryptoalg.NewValidationError("g = %s must have order q = %s modulo p", params.G, params.Q)
	}
	return nil
}

// dsaHash returns SHA-256(message) as an integer and as hex.
func dsaHash(message string) (*big.Int, string) {
	sum := sha256.Sum256([]byte(message))
	return new(big.Int).SetBytes(sum[:]), hex.EncodeToString(sum[:])
}
