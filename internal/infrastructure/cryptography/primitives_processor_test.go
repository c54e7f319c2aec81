//go:build unit
// +build unit

package cryptography

import (
	"crypto/hmac"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACProcessor(t *testing.T) {
	processor, err := NewHMACProcessor(testutil.SetupTestLogger(t))
	require.NoError(t, err)

	const key, message = "Jefe", "what do ya want for nothing?"

	t.Run("published vectors", func(t *testing.T) {
		tests := []struct {
			algorithm  string
			digestSize int
			want       string
		}{
			{cryptoalg.HashMD5, 16, "750c783e6ab0b503eaa86e310a5db738"},
			{cryptoalg.HashSHA1, 20, "effcdf6ae5eb2fa2d27416d5f184df9c259a7c79"},
			{cryptoalg.HashSHA256, 32, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843"},
			{cryptoalg.HashSHA512, 64, "164b7a7bfcf819e2e395fbe73b56e0a387bd64222e831fd610270cd7ea2505549758bf75c05a994a6d034f65f8f0e6fdcaeab1a34d4a6b4b636e070a38bce737"},
			{cryptoalg.HashSHA3_256, 32, "c7d4072e788877ae3596bbb0da73b887c9171f93095b294ae857fbe2645e1ba5"},
			{cryptoalg.HashBLAKE2b256, 32, "3cf096eeeb2202a250db168c4823a44ef4618ebabb225789386fed316131e3a0"},
		}
		for _, tt := range tests {
			t.Run(tt.algorithm, func(t *testing.T) {
				res, err := processor.Compute(key, message, tt.algorithm)
				require.NoError(t, err)
				assert.Equal(t, tt.want, res.HMAC)
				assert.Equal(t, tt.digestSize, res.DigestSize)
				assert.Len(t, res.HMAC, 2*tt.digestSize)
				require.Len(t, res.Steps, 6)
				assert.Equal(t, res.HMAC, res.Steps[5].Result)
				assert.Equal(t, res.InnerHash, res.Steps[3].Result)
			})
		}
	})

	t.Run("matches crypto/hmac for long keys", func(t *testing.T) {
		longKey := strings.Repeat("k", 200)
		for name, spec := range hmacHashes {
			res, err := processor.Compute(longKey, message, name)
			require.NoError(t, err)

			mac := hmac.New(spec.newHash, []byte(longKey))
			mac.Write([]byte(message))
			assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), res.HMAC, name)
			assert.Equal(t, "1a. Key hashing", res.Steps[1].Label)
			assert.Len(t, res.Steps, 7)
		}
	})

	t.Run("block-sized key is used as is", func(t *testing.T) {
		res, err := processor.Compute(strings.Repeat("b", 64), message, cryptoalg.HashSHA256)
		require.NoError(t, err)
		assert.Equal(t, "1a. Key fits", res.Steps[1].Label)
		assert.Len(t, res.Steps, 6)
	})

	t.Run("single byte changes flip the digest", func(t *testing.T) {
		base, err := processor.Compute(key, message, "")
		require.NoError(t, err)
		assert.Equal(t, cryptoalg.HashSHA256, base.Algorithm)

		otherKey, err := processor.Compute("Jefa", message, "")
		require.NoError(t, err)
		otherMessage, err := processor.Compute(key, "what do ya want for nothing!", "")
		require.NoError(t, err)

		assert.NotEqual(t, base.HMAC, otherKey.HMAC)
		assert.NotEqual(t, base.HMAC, otherMessage.HMAC)
	})

	t.Run("inner and outer pads", func(t *testing.T) {
		res, err := processor.Compute("A", "", "SHA256")
		require.NoError(t, err)
		ipad := res.Steps[2].Result.(string)
		opad := res.Steps[4].Result.(string)
		assert.True(t, strings.HasPrefix(ipad, "77"+strings.Repeat("36", 3)))
		assert.True(t, strings.HasPrefix(opad, "1d"+strings.Repeat("5c", 3)))
		assert.Len(t, ipad, 128)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := processor.Compute("", message, "")
		requireValidationError(t, err, cryptoalg.MsgMissingKey)
		_, err = processor.Compute(key, message, "sha224")
		requireValidationError(t, err, `Unsupported hash algorithm "sha224"`)
	})
}

func TestLCG(t *testing.T) {
	processor, err := NewPRNGProcessor(testutil.SetupTestLogger(t), testEngineSettings())
	require.NoError(t, err)

	t.Run("full period generator", func(t *testing.T) {
		res, err := processor.LCG(bi(16), bi(5), bi(3), bi(7), 20)
		require.NoError(t, err)

		want := []int64{7, 6, 1, 8, 11, 10, 5, 12, 15, 14, 9, 0, 3, 2, 13, 4, 7, 6, 1, 8, 11}
		require.Len(t, res.Sequence, len(want))
		for i, v := range want {
			assert.Equal(t, v, res.Sequence[i].Int64(), "X%d", i)
		}
		assert.True(t, res.Cycle)
		assert.Equal(t, 16, res.Period)

		// start, 20 iterations and one cycle marker
		require.Len(t, res.Steps, 22)
		assert.Equal(t, "(5 * 7 + 3) mod 16 = 38 mod 16", res.Steps[1].Formula)
		assert.Equal(t, "Cycle detected", res.Steps[17].Label)
	})

	t.Run("no cycle within the samples", func(t *testing.T) {
		res, err := processor.LCG(bi(9), bi(4), bi(1), bi(0), 5)
		require.NoError(t, err)
		assert.False(t, res.Cycle)
		assert.Zero(t, res.Period)
		assert.Equal(t, int64(8), res.Sequence[5].Int64())
		assert.Len(t, res.Steps, 6)
	})

	t.Run("recurrence on the last sample is not a cycle", func(t *testing.T) {
		res, err := processor.LCG(bi(16), bi(5), bi(3), bi(7), 16)
		require.NoError(t, err)
		assert.False(t, res.Cycle)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := processor.LCG(bi(1), bi(5), bi(3), bi(7), 10)
		requireValidationError(t, err, "m must be at least 2")
		_, err = processor.LCG(bi(16), bi(-5), bi(3), bi(7), 10)
		requireValidationError(t, err, "a must be at least 0")
		_, err = processor.LCG(bi(16), bi(5), bi(3), bi(7), 0)
		requireValidationError(t, err, "the number of samples must be in [1, 10000]")
		_, err = processor.LCG(bi(16), bi(5), bi(3), bi(7), 10001)
		requireValidationError(t, err, "")
	})
}

func TestEntropyProcessor(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	processor, err := NewEntropyProcessor(logger, NewSeededRandomSource(testSeed), testEngineSettings())
	require.NoError(t, err)

	t.Run("system entropy", func(t *testing.T) {
		res, err := processor.SystemEntropy(16)
		require.NoError(t, err)
		assert.Len(t, res.Hex, 32)
		require.Len(t, res.Bytes, 16)

		raw, err := hex.DecodeString(res.Hex)
		require.NoError(t, err)
		for i, b := range raw {
			assert.Equal(t, int(b), res.Bytes[i])
		}
		assert.NotEmpty(t, res.Source)
	})

	t.Run("seeded sources repeat", func(t *testing.T) {
		a, err := NewEntropyProcessor(logger, NewSeededRandomSource(3), testEngineSettings())
		require.NoError(t, err)
		b, err := NewEntropyProcessor(logger, NewSeededRandomSource(3), testEngineSettings())
		require.NoError(t, err)

		ra, err := a.SystemEntropy(8)
		require.NoError(t, err)
		rb, err := b.SystemEntropy(8)
		require.NoError(t, err)
		assert.Equal(t, ra.Hex, rb.Hex)
	})

	t.Run("secure source", func(t *testing.T) {
		secure, err := NewEntropyProcessor(logger, NewSecureRandomSource(), testEngineSettings())
		require.NoError(t, err)
		res, err := secure.SystemEntropy(1024)
		require.NoError(t, err)
		assert.Len(t, res.Bytes, 1024)
	})

	t.Run("byte count bounds", func(t *testing.T) {
		_, err := processor.SystemEntropy(0)
		requireValidationError(t, err, "the number of bytes must be in [1, 1024]")
		_, err = processor.SystemEntropy(1025)
		requireValidationError(t, err, "")
	})

	t.Run("mixing user events", func(t *testing.T) {
		events := []cryptoalg.EntropyEvent{{X: 1, Y: 2, T: 3}, {X: 4.5, Y: 6, T: 7}}
		res, err := processor.MixUserEntropy(events)
		require.NoError(t, err)

		assert.Equal(t, 2, res.EventCount)
		assert.Equal(t, "1,2,3|4.5,6,7|", res.RawDataSample)
		assert.Equal(t, "90e19ae2d1d50ee8043d8f51c287f02705f78276b11e413ec795bde584d0b60a", res.PoolHash)
		assert.Equal(t, "65263644ec252aac9a45d300e7a1754e14673ce70ae12589ceeea5a14f95be9a", res.DerivedSeedHex)
		assert.Len(t, res.Steps, 3)

		again, err := processor.MixUserEntropy(events)
		require.NoError(t, err)
		assert.Equal(t, res.DerivedSeedHex, again.DerivedSeedHex)
	})

	t.Run("long samples are truncated", func(t *testing.T) {
		events := make([]cryptoalg.EntropyEvent, 20)
		for i := range events {
			events[i] = cryptoalg.EntropyEvent{X: float64(100 + i), Y: float64(200 + i), T: 1700000000.25}
		}
		res, err := processor.MixUserEntropy(events)
		require.NoError(t, err)
		assert.Len(t, res.RawDataSample, 53)
		assert.True(t, strings.HasSuffix(res.RawDataSample, "..."))
	})

	t.Run("no events", func(t *testing.T) {
		_, err := processor.MixUserEntropy(nil)
		requireValidationError(t, err, "No entropy events")
	})
}

func TestIPsecLayout(t *testing.T) {
	processor, err := NewIPsecProcessor(testutil.SetupTestLogger(t))
	require.NoError(t, err)

	tests := []struct {
		protocol, mode string
		types          []string
	}{
		{"ah", "transport", []string{"header-ip", "header-ah", "header-transport", "payload"}},
		{"ESP", "Transport", []string{"header-ip", "header-esp-head", "marker-enc-start", "header-transport", "payload", "header-esp-trail", "marker-enc-end", "header-esp-auth"}},
		{"ah", "tunnel", []string{"header-ip-new", "header-ah", "header-ip", "header-transport", "payload"}},
		{"esp", "tunnel", []string{"header-ip-new", "header-esp-head", "marker-enc-start", "header-ip", "header-transport", "payload", "header-esp-trail", "marker-enc-end", "header-esp-auth"}},
	}
	for _, tt := range tests {
		t.Run(tt.protocol+"/"+tt.mode, func(t *testing.T) {
			res, err := processor.Layout(tt.protocol, tt.mode)
			require.NoError(t, err)

			types := make([]string, len(res.Segments))
			for i, s := range res.Segments {
				types[i] = s.Type
			}
			assert.Equal(t, tt.types, types)
			assert.Equal(t, strings.ToLower(tt.protocol), res.Protocol)
		})
	}

	_, err = processor.Layout("gre", "tunnel")
	requireValidationError(t, err, "")
}
