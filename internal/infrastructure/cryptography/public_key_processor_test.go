//go:build unit
// +build unit

package cryptography

import (
	"errors"
	"math/big"
	"testing"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSAProcessor(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	processor, err := NewRSAProcessor(logger, NewSeededRandomSource(testSeed))
	require.NoError(t, err)

	t.Run("key generation", func(t *testing.T) {
		res, err := processor.GenerateKeys(bi(61), bi(53))
		require.NoError(t, err)

		assert.Equal(t, bi(3233), res.N)
		assert.Equal(t, bi(3120), res.Phi)
		assert.Equal(t, int64(1), gcd(res.PublicKey.E, res.Phi).Int64())
		assert.Equal(t, int64(1), mod(mul(res.PublicKey.E, res.PrivateKey.D), res.Phi).Int64())
		assert.True(t, res.PublicKey.E.Cmp(one) > 0 && res.PublicKey.E.Cmp(res.Phi) < 0)

		require.Len(t, res.Steps, 4)
		assert.Equal(t, "1. Modulus n", res.Steps[0].Label)
		assert.Equal(t, "n = p * q = 61 * 53", res.Steps[0].Formula)
		assert.Equal(t, res.PrivateKey.D, res.Steps[3].Result)
	})

	t.Run("same seed gives the same exponent", func(t *testing.T) {
		a, err := NewRSAProcessor(logger, NewSeededRandomSource(7))
		require.NoError(t, err)
		b, err := NewRSAProcessor(logger, NewSeededRandomSource(7))
		require.NoError(t, err)

		ka, err := a.GenerateKeys(bi(101), bi(113))
		require.NoError(t, err)
		kb, err := b.GenerateKeys(bi(101), bi(113))
		require.NoError(t, err)
		assert.Equal(t, ka.PublicKey.E, kb.PublicKey.E)
	})

	t.Run("invalid primes", func(t *testing.T) {
		tests := []struct {
			name string
			p, q *big.Int
			msg  string
		}{
			{"not prime", bi(4), bi(53), "Both numbers must be prime"},
			{"equal", bi(53), bi(53), "p and q cannot be equal"},
			{"phi too small", bi(2), bi(3), "phi(n) = 2 leaves no valid public exponent"},
			{"missing", nil, bi(3), "Both p and q are required"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := processor.GenerateKeys(tt.p, tt.q)
				requireValidationError(t, err, tt.msg)
			})
		}
	})

	t.Run("textbook vector", func(t *testing.T) {
		enc, err := processor.Encrypt("A", bi(17), bi(3233))
		require.NoError(t, err)
		assert.Equal(t, []*big.Int{bi(2790)}, enc.Ciphertext)
		require.Len(t, enc.Steps, 2)
		assert.Equal(t, "Public key", enc.Steps[0].Label)
		assert.Equal(t, "65^17 mod 3233", enc.Steps[1].Formula)

		dec, err := processor.Decrypt(enc.Ciphertext, bi(2753), bi(3233))
		require.NoError(t, err)
		assert.Equal(t, "A", dec.Plaintext)
		assert.Equal(t, bi(65), dec.Steps[1].Result)
	})

	t.Run("round trip over generated keys", func(t *testing.T) {
		keys, err := processor.GenerateKeys(bi(61), bi(53))
		require.NoError(t, err)

		text := "Hello, RSA! ~{}"
		enc, err := processor.Encrypt(text, keys.PublicKey.E, keys.PublicKey.N)
		require.NoError(t, err)
		assert.Len(t, enc.Steps, len(text)+1)

		dec, err := processor.Decrypt(enc.Ciphertext, keys.PrivateKey.D, keys.PrivateKey.N)
		require.NoError(t, err)
		assert.Equal(t, text, dec.Plaintext)
	})

	t.Run("every code below n survives", func(t *testing.T) {
		keys, err := processor.GenerateKeys(bi(11), bi(13))
		require.NoError(t, err)
		e, d, n := keys.PublicKey.E, keys.PrivateKey.D, keys.PublicKey.N
		for m := int64(0); m < n.Int64(); m++ {
			c := modExp(bi(m), e, n)
			assert.Equal(t, m, modExp(c, d, n).Int64())
		}
	})

	t.Run("character too large for n", func(t *testing.T) {
		_, err := processor.Encrypt("z", bi(3), bi(33))
		requireValidationError(t, err, "")
	})

	t.Run("unprintable code decodes to ?", func(t *testing.T) {
		dec, err := processor.Decrypt([]*big.Int{bi(7), bi(72)}, bi(1), bi(3233))
		require.NoError(t, err)
		assert.Equal(t, "?H", dec.Plaintext)
	})

	t.Run("missing inputs", func(t *testing.T) {
		_, err := processor.Encrypt("", bi(17), bi(3233))
		requireValidationError(t, err, cryptoalg.MsgMissingText)
		_, err = processor.Decrypt(nil, bi(1), bi(3233))
		requireValidationError(t, err, "Missing ciphertext")
	})

	t.Run("nil random source", func(t *testing.T) {
		_, err := NewRSAProcessor(logger, nil)
		assert.Error(t, err)
	})
}

func TestSmallestPrimitiveRoot(t *testing.T) {
	want := map[int64]int64{23: 5, 47: 5, 59: 2, 83: 2, 107: 2, 167: 5, 263: 5, 359: 7, 479: 13, 599: 7, 719: 11, 839: 11}
	for _, p := range dhPrimePool {
		g, rejected := smallestPrimitiveRoot(p)
		assert.Equal(t, want[p], g, "p = %d", p)
		assert.Len(t, rejected, int(g-2))
		assert.Equal(t, p-1, multiplicativeOrder(g, p))
	}
}

func TestDiffieHellmanProcessor(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	processor, err := NewDiffieHellmanProcessor(logger, NewSeededRandomSource(testSeed))
	require.NoError(t, err)

	t.Run("setup from the pool", func(t *testing.T) {
		pooled, err := NewDiffieHellmanProcessor(logger, zeroSource{})
		require.NoError(t, err)

		res, err := pooled.Setup(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, bi(23), res.P)
		assert.Equal(t, bi(5), res.G)
		require.Len(t, res.Steps, 3)
		assert.Equal(t, []int64{2, 3, 4}, res.Steps[1].Operands[0].Value)
		assert.Equal(t, "p = 23, g = 5", res.Steps[2].Formula)
	})

	t.Run("setup with a random pool prime", func(t *testing.T) {
		res, err := processor.Setup(nil, nil)
		require.NoError(t, err)
		assert.Contains(t, dhPrimePool, res.P.Int64())
		assert.Equal(t, res.P.Int64()-1, multiplicativeOrder(res.G.Int64(), res.P.Int64()))
	})

	t.Run("setup keeps supplied values", func(t *testing.T) {
		res, err := processor.Setup(bi(23), bi(7))
		require.NoError(t, err)
		assert.Equal(t, bi(7), res.G)
		assert.Len(t, res.Steps, 1)
	})

	t.Run("setup rejects bad parameters", func(t *testing.T) {
		_, err := processor.Setup(bi(21), nil)
		requireValidationError(t, err, "p = 21 is not prime")
		_, err = processor.Setup(bi(23), bi(23))
		requireValidationError(t, err, "g must be in [2, 22]")
	})

	t.Run("full exchange with fixed secrets", func(t *testing.T) {
		keys, err := processor.GenerateKeys(bi(23), bi(5), bi(6), bi(15))
		require.NoError(t, err)
		assert.Equal(t, bi(8), keys.PublicA)
		assert.Equal(t, bi(19), keys.PublicB)
		require.Len(t, keys.Steps, 4)
		assert.Equal(t, "A = g^a mod p = 5^6 mod 23 = 8", keys.Steps[1].Formula)

		secret, err := processor.ComputeSecret(bi(23), keys.PrivateA, keys.PrivateB, keys.PublicA, keys.PublicB)
		require.NoError(t, err)
		assert.Equal(t, bi(2), secret.SecretA)
		assert.Equal(t, bi(2), secret.SecretB)
		assert.True(t, secret.Match)
		assert.Equal(t, true, secret.Steps[2].Result)
	})

	t.Run("secrets agree for random exponents", func(t *testing.T) {
		for _, p := range dhPrimePool {
			setup, err := processor.Setup(bi(p), nil)
			require.NoError(t, err)
			keys, err := processor.GenerateKeys(setup.P, setup.G, nil, nil)
			require.NoError(t, err)

			lo, hi := bi(2), bi(p-2)
			assert.True(t, keys.PrivateA.Cmp(lo) >= 0 && keys.PrivateA.Cmp(hi) <= 0)
			assert.True(t, keys.PrivateB.Cmp(lo) >= 0 && keys.PrivateB.Cmp(hi) <= 0)

			secret, err := processor.ComputeSecret(setup.P, keys.PrivateA, keys.PrivateB, keys.PublicA, keys.PublicB)
			require.NoError(t, err)
			assert.True(t, secret.Match, "p = %d", p)
		}
	})

	t.Run("mismatch is reported, not an error", func(t *testing.T) {
		secret, err := processor.ComputeSecret(bi(23), bi(6), bi(15), bi(8), bi(20))
		require.NoError(t, err)
		assert.False(t, secret.Match)
		assert.Equal(t, bi(16), secret.SecretA)
		assert.Equal(t, bi(2), secret.SecretB)
		assert.Equal(t, false, secret.Steps[2].Result)
	})
}

func TestElGamalProcessor(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	processor, err := NewElGamalProcessor(logger, NewSeededRandomSource(testSeed))
	require.NoError(t, err)

	t.Run("key generation with a fixed secret", func(t *testing.T) {
		res, err := processor.GenerateKeys(bi(467), bi(2), bi(127))
		require.NoError(t, err)
		assert.Equal(t, bi(132), res.Y)
		require.Len(t, res.Steps, 2)
		assert.Equal(t, "y = 2^127 mod 467 = 132", res.Steps[1].Formula)
	})

	t.Run("random secret stays in range", func(t *testing.T) {
		res, err := processor.GenerateKeys(bi(467), bi(2), nil)
		require.NoError(t, err)
		assert.True(t, res.X.Cmp(bi(2)) >= 0 && res.X.Cmp(bi(465)) <= 0)
		assert.Equal(t, modExp(bi(2), res.X, bi(467)), res.Y)
	})

	t.Run("round trip", func(t *testing.T) {
		keys, err := processor.GenerateKeys(bi(467), bi(2), nil)
		require.NoError(t, err)

		text := "ElGamal, per character!"
		enc, err := processor.Encrypt(text, keys.P, keys.G, keys.Y)
		require.NoError(t, err)
		require.Len(t, enc.Pairs, len(text))
		assert.Len(t, enc.Steps, len(text)+1)

		dec, err := processor.Decrypt(enc.Pairs, keys.P, keys.X)
		require.NoError(t, err)
		assert.Equal(t, text, dec.Plaintext)
	})

	t.Run("fixed pair decrypts", func(t *testing.T) {
		// k = 3: a = 2^3 = 8, b = 132^3 * 72 mod 467
		b := mod(mul(modExp(bi(132), bi(3), bi(467)), bi(72)), bi(467))
		dec, err := processor.Decrypt([]cryptoalg.ElGamalPair{{A: bi(8), B: b}}, bi(467), bi(127))
		require.NoError(t, err)
		assert.Equal(t, "H", dec.Plaintext)
	})

	t.Run("zero a has no inverse", func(t *testing.T) {
		dec, err := processor.Decrypt([]cryptoalg.ElGamalPair{{A: bi(0), B: bi(5)}}, bi(467), bi(127))
		require.NoError(t, err)
		assert.Equal(t, "?", dec.Plaintext)
	})

	t.Run("character must fit below p", func(t *testing.T) {
		_, err := processor.Encrypt("A", bi(23), bi(5), bi(8))
		requireValidationError(t, err, "")
	})
}

func dsaTestParams() cryptoalg.DSAParams {
	return cryptoalg.DSAParams{P: bi(167), Q: bi(83), G: bi(4)}
}

func TestDSAProcessor(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	processor, err := NewDSAProcessor(logger, NewSeededRandomSource(testSeed), testEngineSettings())
	require.NoError(t, err)

	t.Run("setup", func(t *testing.T) {
		first, err := NewDSAProcessor(logger, zeroSource{}, testEngineSettings())
		require.NoError(t, err)
		res, err := first.Setup()
		require.NoError(t, err)
		assert.Equal(t, cryptoalg.DSAParams{P: bi(23), Q: bi(11), G: bi(4)}, res.Params)
		assert.Len(t, res.Steps, 3)

		for i := 0; i < 10; i++ {
			res, err := processor.Setup()
			require.NoError(t, err)
			assert.NoError(t, validateDSAParams(res.Params))
		}
	})

	t.Run("sign then verify", func(t *testing.T) {
		for _, params := range []cryptoalg.DSAParams{dsaTestParams(), {P: bi(23), Q: bi(11), G: bi(4)}} {
			keys, err := processor.GenerateKeys(params)
			require.NoError(t, err)
			assert.True(t, keys.X.Sign() > 0 && keys.X.Cmp(params.Q) < 0)

			sig, err := processor.Sign("attack at dawn", params, keys.X)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, sig.Attempts, 1)

			res, err := processor.Verify("attack at dawn", params, keys.Y, sig.R, sig.S)
			require.NoError(t, err)
			assert.True(t, res.Valid)
			assert.Equal(t, sig.R, res.V)
		}
	})

	t.Run("fixed signature vector", func(t *testing.T) {
		params := dsaTestParams()
		y := bi(28)

		res, err := processor.Verify("hello", params, y, bi(22), bi(70))
		require.NoError(t, err)
		assert.True(t, res.Valid)
		assert.Equal(t, bi(51), res.W)
		assert.Equal(t, bi(21), res.U1)
		assert.Equal(t, bi(43), res.U2)
		assert.Len(t, res.Steps, 5)

		for _, tampered := range []string{"hellp", "Hello"} {
			res, err := processor.Verify(tampered, params, y, bi(22), bi(70))
			require.NoError(t, err)
			assert.False(t, res.Valid, tampered)
			assert.NotEmpty(t, res.Reason)
		}
	})

	t.Run("out of range signature", func(t *testing.T) {
		res, err := processor.Verify("hello", dsaTestParams(), bi(28), bi(0), bi(70))
		require.NoError(t, err)
		assert.False(t, res.Valid)
		require.Len(t, res.Steps, 1)
		assert.Equal(t, "Range check", res.Steps[0].Label)
		assert.Nil(t, res.W)

		res, err = processor.Verify("hello", dsaTestParams(), bi(28), bi(22), bi(83))
		require.NoError(t, err)
		assert.False(t, res.Valid)
	})

	t.Run("degenerate signatures exhaust the budget", func(t *testing.T) {
		settings := testEngineSettings()
		settings.DsaMaxSignAttempts = 3
		degenerate, err := NewDSAProcessor(logger, zeroSource{}, settings)
		require.NoError(t, err)

		// k is always 1, so r = 4 and s = H + 9*4 = 0 mod 11
		_, err = degenerate.Sign("exhaust", cryptoalg.DSAParams{P: bi(23), Q: bi(11), G: bi(4)}, bi(9))
		require.Error(t, err)
		assert.True(t, errors.Is(err, cryptoalg.ErrSigningExhausted))
		assert.False(t, cryptoalg.IsValidationError(err))
	})

	t.Run("invalid parameters", func(t *testing.T) {
		_, err := processor.GenerateKeys(cryptoalg.DSAParams{P: bi(167), Q: bi(83), G: bi(5)})
		requireValidationError(t, err, "g = 5 must have order q = 83 modulo p")

		_, err = processor.GenerateKeys(cryptoalg.DSAParams{P: bi(167), Q: bi(11), G: bi(4)})
		requireValidationError(t, err, "q = 11 must divide p - 1 = 166")

		_, err = processor.Sign("m", dsaTestParams(), bi(83))
		requireValidationError(t, err, "x must be in [1, 82]")
	})

	t.Run("zero attempt budget", func(t *testing.T) {
		settings := testEngineSettings()
		settings.DsaMaxSignAttempts = 0
		_, err := NewDSAProcessor(logger, zeroSource{}, settings)
		assert.Error(t, err)
	})
}

func setupECCProcessor(t *testing.T) cryptoalg.ECCProcessor {
	t.Helper()
	logger := testutil.SetupTestLogger(t)
	processor, err := NewECCProcessor(logger, NewSeededRandomSource(testSeed), testEngineSettings())
	require.NoError(t, err)
	return processor
}

func TestECCPoints(t *testing.T) {
	processor := setupECCProcessor(t)

	res, err := processor.Points(processor.Params())
	require.NoError(t, err)

	assert.Equal(t, 19, res.Count)
	assert.True(t, res.Points[0].Equal(cryptoalg.NewECPoint(0, 6)))
	assert.True(t, res.Points[1].Equal(cryptoalg.NewECPoint(0, 11)))
	assert.True(t, res.Points[18].Infinity)
	for _, pt := range res.Points {
		assert.True(t, isOnCurve(res.Curve, pt), pt.String())
	}

	wide := cryptoalg.DefaultCurve()
	wide.P = bi(7919)
	wide.G = cryptoalg.NewECPoint(0, 0)
	wide.B = bi(0)
	_, err = processor.Points(wide)
	requireValidationError(t, err, "point enumeration needs p <= 4099")
}

func TestECCMultiply(t *testing.T) {
	processor := setupECCProcessor(t)
	curve := processor.Params()

	t.Run("known multiples of G", func(t *testing.T) {
		tests := []struct {
			k    int64
			want cryptoalg.ECPoint
		}{
			{0, cryptoalg.InfinityPoint()},
			{1, cryptoalg.NewECPoint(5, 1)},
			{2, cryptoalg.NewECPoint(6, 3)},
			{5, cryptoalg.NewECPoint(9, 16)},
			{13, cryptoalg.NewECPoint(16, 4)},
			{18, cryptoalg.NewECPoint(5, 16)},
			{19, cryptoalg.InfinityPoint()},
			{20, cryptoalg.NewECPoint(5, 1)},
		}
		for _, tt := range tests {
			res, err := processor.Multiply(curve, bi(tt.k), curve.G)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(res.Result), "k = %d: got %s", tt.k, res.Result)
		}
	})

	t.Run("double-and-add matches repeated addition", func(t *testing.T) {
		acc := cryptoalg.InfinityPoint()
		for k := int64(0); k <= 40; k++ {
			res, err := processor.Multiply(curve, bi(k), curve.G)
			require.NoError(t, err)
			assert.True(t, acc.Equal(res.Result), "k = %d", k)
			acc, _, _ = pointAdd(curve, acc, curve.G)
		}
	})

	t.Run("trace of 5G", func(t *testing.T) {
		res, err := processor.Multiply(curve, bi(5), curve.G)
		require.NoError(t, err)
		assert.Equal(t, "101", res.Binary)

		labels := make([]string, len(res.Steps))
		for i, s := range res.Steps {
			labels[i] = s.Label
		}
		assert.Equal(t, []string{
			"Start",
			"Binary expansion",
			"Bit 0 is 1: add",
			"Double base (2^0 -> 2^1)",
			"Bit 1 is 0: skip",
			"Double base (2^1 -> 2^2)",
			"Bit 2 is 1: add",
		}, labels)

		doubling := res.Steps[3]
		assert.Contains(t, doubling.Formula, "(9 * 9) mod 17 = 13")
		assert.True(t, cryptoalg.NewECPoint(6, 3).Equal(doubling.Result.(cryptoalg.ECPoint)))

		// the accumulator operand keeps its value from before the addition
		last := res.Steps[6]
		assert.True(t, cryptoalg.NewECPoint(5, 1).Equal(last.Operands[0].Value.(cryptoalg.ECPoint)))
	})

	t.Run("infinity cases", func(t *testing.T) {
		sum, desc, _ := pointAdd(curve, cryptoalg.NewECPoint(5, 1), cryptoalg.NewECPoint(5, 16))
		assert.True(t, sum.Infinity)
		assert.Contains(t, desc, "opposite")

		flat := cryptoalg.Curve{P: bi(23), A: bi(1), B: bi(0), G: cryptoalg.NewECPoint(0, 0)}
		require.NoError(t, validateCurve(flat))
		res, err := processor.Multiply(flat, bi(2), flat.G)
		require.NoError(t, err)
		assert.True(t, res.Result.Infinity)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		_, err := processor.Multiply(curve, bi(3), cryptoalg.NewECPoint(1, 1))
		requireValidationError(t, err, "P = (1, 1) is not a point of the curve")

		singular := cryptoalg.Curve{P: bi(17), A: bi(0), B: bi(0), G: cryptoalg.NewECPoint(0, 0)}
		_, err = processor.Multiply(singular, bi(3), singular.G)
		requireValidationError(t, err, "the curve is singular (4a^3 + 27b^2 = 0 mod p)")

		_, err = processor.Multiply(curve, bi(-1), curve.G)
		requireValidationError(t, err, "k must be at least 0")
	})
}

func TestECCKeysAndSharedSecret(t *testing.T) {
	processor := setupECCProcessor(t)
	curve := processor.Params()

	alice, err := processor.GenerateKeys(curve, nil)
	require.NoError(t, err)
	bob, err := processor.GenerateKeys(curve, bi(7))
	require.NoError(t, err)

	assert.True(t, alice.PrivateKey.Cmp(bi(2)) >= 0 && alice.PrivateKey.Cmp(bi(16)) <= 0)
	assert.True(t, cryptoalg.NewECPoint(0, 6).Equal(bob.PublicKey))
	assert.Equal(t, "Private key", bob.Steps[0].Label)

	sa, err := processor.SharedSecret(curve, alice.PrivateKey, bob.PublicKey)
	require.NoError(t, err)
	sb, err := processor.SharedSecret(curve, bob.PrivateKey, alice.PublicKey)
	require.NoError(t, err)
	assert.True(t, sa.Result.Equal(sb.Result))

	fixed, err := processor.SharedSecret(curve, bi(3), bob.PublicKey)
	require.NoError(t, err)
	assert.True(t, cryptoalg.NewECPoint(6, 3).Equal(fixed.Result))

	t.Run("steps hold point snapshots", func(t *testing.T) {
		for _, s := range fixed.Steps {
			if r, ok := s.Result.(cryptoalg.ECPoint); ok && !r.Infinity {
				assert.True(t, isOnCurve(curve, r))
			}
		}
	})

	t.Run("configurable scalar bound", func(t *testing.T) {
		settings := testEngineSettings()
		settings.EccMaxPrivateScalar = 2
		small, err := NewECCProcessor(testutil.SetupTestLogger(t), NewSeededRandomSource(1), settings)
		require.NoError(t, err)
		keys, err := small.GenerateKeys(curve, nil)
		require.NoError(t, err)
		assert.Equal(t, bi(2), keys.PrivateKey)
	})
}
