package cryptography

import (
	"fmt"
	"math/big"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/trace"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"
)

// dhPrimePool holds the demonstration primes drawn when no p is supplied
var dhPrimePool = []int64{23, 47, 59, 83, 107, 167, 263, 359, 479, 599, 719, 839}

// dhMaxPrime bounds the primitive root search
const dhMaxPrime = 1 << 20

// diffieHellmanProcessor struct that implements the DiffieHellmanProcessor interface
type diffieHellmanProcessor struct {
	logger logger.Logger
	random cryptoalg.RandomSource
}

// NewDiffieHellmanProcessor creates and returns a new instance of diffieHellmanProcessor
func NewDiffieHellmanProcessor(logger logger.Logger, random cryptoalg.RandomSource) (cryptoalg.DiffieHellmanProcessor, error) {
	if random == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	return &diffieHellmanProcessor{
		logger: logger,
		random: random,
	}, nil
}

// Setup agrees on the public parameters p and g
func (h *diffieHellmanProcessor) Setup(p, g *big.Int) (*cryptoalg.DHSetupResult, error) {
	rec := trace.NewRecorder[trace.Step](3)

	if p == nil {
		idx, err := randomInRange(h.random, zero, big.NewInt(int64(len(dhPrimePool)-1)))
		if err != nil {
			return nil, err
		}
		p = big.NewInt(dhPrimePool[idx.Int64()])
		g = nil
		rec.Record(trace.Step{
			Label:       "Prime selection",
			Description: "p is drawn from a small pool of demonstration primes.",
			Operands:    []trace.Operand{trace.Op("pool", dhPrimePool)},
			Result:      p,
		})
	} else if err := validateDHPrime(p); err != nil {
		return nil, err
	}

	if g == nil {
		root, rejected := smallestPrimitiveRoot(p.Int64())
		g = big.NewInt(root)
		rec.Record(trace.Step{
			Label:       "Primitive root search",
			Description: fmt.Sprintf("g is the smallest value whose powers g^1..g^%d mod %s are all distinct.", p.Int64()-1, p),
			Operands:    []trace.Operand{trace.Op("rejected", rejected)},
			Formula:     fmt.Sprintf("ord(g) = p - 1 = %d", p.Int64()-1),
			Result:      g,
		})
	} else if err := requireBetween("g", g, two, sub(p, one)); err != nil {
		return nil, err
	}

	rec.Record(trace.Step{
		Label:       "1. Public parameters",
		Description: fmt.Sprintf("Alice and Bob agree on the prime p = %s and the generator g = %s. Neither is secret.", p, g),
		Formula:     fmt.Sprintf("p = %s, g = %s", p, g),
	})

	logTraced(h.logger, "Diffie-Hellman", "setup", rec.Len())
	return &cryptoalg.DHSetupResult{P: p, G: g, Steps: rec.Steps()}, nil
}

// GenerateKeys computes A = g^a mod p and B = g^b mod p
func (h *diffieHellmanProcessor) GenerateKeys(p, g, a, b *big.Int) (*cryptoalg.DHKeysResult, error) {
	if err := validateDHPrime(p); err != nil {
		return nil, err
	}
	if err := requireBetween("g", g, two, sub(p, one)); err != nil {
		return nil, err
	}

	var err error
	if a, err = h.privateValue("a", a, p); err != nil {
		return nil, err
	}
	if b, err = h.privateValue("b", b, p); err != nil {
		return nil, err
	}

	publicA := modExp(g, a, p)
	publicB := modExp(g, b, p)

	rec := trace.NewRecorder[trace.Step](4)
	rec.Record(trace.Step{
		Label:       "2. Private values",
		Description: "Alice and Bob each pick a secret number that is never exchanged.",
		Operands:    []trace.Operand{trace.Op("a", a), trace.Op("b", b)},
	})
	rec.Record(trace.Step{
		Label:       "3a. Alice's public value",
		Description: "Alice raises g to her secret a.",
		Formula:     fmt.Sprintf("A = g^a mod p = %s^%s mod %s = %s", g, a, p, publicA),
		Result:      publicA,
	})
	rec.Record(trace.Step{
		Label:       "3b. Bob's public value",
		Description: "Bob raises g to his secret b.",
		Formula:     fmt.Sprintf("B = g^b mod p = %s^%s mod %s = %s", g, b, p, publicB),
		Result:      publicB,
	})
	rec.Record(trace.Step{
		Label:       "4. Exchange",
		Description: fmt.Sprintf("Alice sends A = %s to Bob and Bob sends B = %s to Alice over the open channel.", publicA, publicB),
		Operands:    []trace.Operand{trace.Op("A", publicA), trace.Op("B", publicB)},
	})

	logTraced(h.logger, "Diffie-Hellman", "key generation", rec.Len())
	return &cryptoalg.DHKeysResult{
		P:        p,
		G:        g,
		PrivateA: a,
		PrivateB: b,
		PublicA:  publicA,
		PublicB:  publicB,
		Steps:    rec.Steps(),
	}, nil
}

// ComputeSecret lets each side combine the other's public value with its own secret
func (h *diffieHellmanProcessor) ComputeSecret(p, a, b, publicA, publicB *big.Int) (*cryptoalg.DHSecretResult, error) {
	if err := requireAtLeast("p", p, 2); err != nil {
		return nil, err
	}
	for _, v := range []struct {
		name  string
		value *big.Int
	}{{"a", a}, {"b", b}, {"A", publicA}, {"B", publicB}} {
		if err := requireAtLeast(v.name, v.value, 0); err != nil {
			return nil, err
		}
	}

	secretA := modExp(publicB, a, p)
	secretB := modExp(publicA, b, p)
	match := secretA.Cmp(secretB) == 0

	rec := trace.NewRecorder[trace.Step](3)
	rec.Record(trace.Step{
		Label:       "5a. Alice's secret",
		Description: "Alice raises Bob's public value to her secret a.",
		Formula:     fmt.Sprintf("S = B^a mod p = %s^%s mod %s = %s", publicB, a, p, secretA),
		Result:      secretA,
	})
	rec.Record(trace.Step{
		Label:       "5b. Bob's secret",
		Description: "Bob raises Alice's public value to his secret b.",
		Formula:     fmt.Sprintf("S = A^b mod p = %s^%s mod %s = %s", publicA, b, p, secretB),
		Result:      secretB,
	})

	if match {
		rec.Record(trace.Step{
			Label:       "6. Comparison",
			Description: fmt.Sprintf("Both secrets are %s. Alice and Bob now share a value an eavesdropper cannot easily compute.", secretA),
			Result:      true,
		})
	} else {
		h.logger.Warn(fmt.Sprintf("Diffie-Hellman secrets differ (%s != %s); the public values do not belong to the private ones", secretA, secretB))
		rec.Record(trace.Step{
			Label:       "6. Comparison",
			Description: fmt.Sprintf("The secrets differ (%s != %s). A public value does not match its private exponent.", secretA, secretB),
			Result:      false,
		})
	}

	logTraced(h.logger, "Diffie-Hellman", "secret", rec.Len())
	return &cryptoalg.DHSecretResult{
		SecretA: secretA,
		SecretB: secretB,
		Match:   match,
		Steps:   rec.Steps(),
	}, nil
}

func (h *diffieHellmanProcessor) privateValue(name string, v, p *big.Int) (*big.Int, error) {
	if v == nil {
		return randomInRange(h.random, two, sub(p, two))
	}
	if err := requireBetween(name, v, one, sub(p, one)); err != nil {
		return nil, err
	}
	return v, nil
}

func validateDHPrime(p *big.Int) error {
	if err := requirePrime("p", p, 5); err != nil {
		return err
	}
	if p.Cmp(big.NewInt(dhMaxPrime)) > 0 {
		return cryptoalg.NewValidationError("p must not exceed %d", dhMaxPrime)
	}
	return nil
}

// smallestPrimitiveRoot returns the least g >= 2 of multiplicative order p-1
// together with the candidates rejected on the way.
func smallestPrimitiveRoot(p int64) (int64, []int64) {
	rejected := []int64{}
	for g := int64(2); g < p; g++ {
		if multiplicativeOrder(g, p) == p-1 {
			return g, rejected
		}
		rejected = append(rejected, g)
	}
	return 0, rejected
}

// multiplicativeOrder counts the distinct powers g^1, g^2, ... mod p before they cycle back to 1.
func multiplicativeOrder(g, p int64) int64 {
	v := g % p
	for k := int64(1); k < p; k++ {
		if v == 1 {
			return k
		}
		v = v * g % p
	}
	return 0
}
