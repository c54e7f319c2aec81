//go:build unit
// +build unit

package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/MGTheTrain/crypto-trace/internal/domain/runs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestComputeHandlers_Success(t *testing.T) {
	recorder := new(MockRunRecorderService)
	recorder.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, nil).
		Return(&runs.RunMeta{ID: "run-1"}, nil)

	r := setupRouter(t, recorder, new(MockRunMetadataService))

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		contains []string
	}{
		{"caesar default shift", "POST", "/classical/caesar", `{"text":"HELLO"}`, []string{`"result":"KHOOR"`, `"shift":3`}},
		{"caesar decrypt", "POST", "/classical/caesar/decrypt", `{"text":"KHOOR","shift":3}`, []string{`"result":"HELLO"`}},
		{"vigenere", "POST", "/classical/vigenere", `{"text":"ATTACKATDAWN","key":"LEMON"}`, []string{`"result":"LXFOPVEFRNHR"`}},
		{"hill", "POST", "/classical/hill", `{"text":"ACT","key":"GYBNQKURP"}`, []string{`"result":"POH"`}},
		{"rail fence default rails", "POST", "/classical/rail-fence", `{"text":"WEAREDISCOVERED"}`, []string{`"rails":3`}},
		{"des known answer", "POST", "/block/des", `{"text":"0123456789ABCDEF","key":"133457799BBCDFF1"}`, []string{`"ciphertext_hex":"85E813540F0AB405"`}},
		{"aes", "POST", "/block/aes", `{"text":"hello","key":"Thats my Kung Fu"}`, []string{`"blocks"`}},
		{"rsa keys", "POST", "/rsa/keys", `{"p":61,"q":53}`, []string{`"n":3233`, `"phi":3120`}},
		{"rsa encrypt", "POST", "/rsa/encrypt", `{"text":"A","e":17,"n":3233}`, []string{`"ciphertext":[2790]`}},
		{"rsa decrypt", "POST", "/rsa/decrypt", `{"ciphertext":[2790],"d":2753,"n":3233}`, []string{`"plaintext":"A"`}},
		{"dh setup without body", "POST", "/dh/setup", "", []string{`"1. Public parameters"`}},
		{"dh keys", "POST", "/dh/keys", `{"p":23,"g":5,"a":6,"b":15}`, []string{`"public_a":8`, `"public_b":19`}},
		{"dh secret", "POST", "/dh/secret", `{"p":23,"a":6,"b":15,"public_a":8,"public_b":19}`, []string{`"secret_a":2`, `"match":true`}},
		{"elgamal keys", "POST", "/elgamal/keys", `{"p":467,"g":2,"x":127}`, []string{`"y":132`}},
		{"dsa setup", "POST", "/dsa/setup", "", []string{`"params"`}},
		{"dsa verify", "POST", "/dsa/verify", `{"p":167,"q":83,"g":4,"message":"hello","y":28,"r":22,"s":70}`, []string{`"valid":true`}},
		{"dsa verify tampered", "POST", "/dsa/verify", `{"p":167,"q":83,"g":4,"message":"hellp","y":28,"r":22,"s":70}`, []string{`"valid":false`}},
		{"ecc points default curve", "POST", "/ecc/points", "", []string{`"count":19`}},
		{"ecc multiply", "POST", "/ecc/multiply", `{"k":2}`, []string{`"str":"(6, 3)"`}},
		{"ecc keys", "POST", "/ecc/keys", `{"d":5}`, []string{`"str":"(9, 16)"`}},
		{"hmac rfc 4231", "POST", "/hmac", `{"key":"Jefe","message":"what do ya want for nothing?"}`,
			[]string{`"hmac":"5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843"`}},
		{"lcg default samples", "POST", "/prng/lcg", `{"m":16,"a":5,"c":3,"seed":7}`, []string{`"period":16`, `"cycle_detected":true`}},
		{"entropy mix", "POST", "/entropy/mix", `{"events":[{"x":1,"y":2,"t":3}]}`, []string{`"event_count":1`}},
		{"entropy system", "GET", "/entropy/system?bytes=8", "", []string{`"hex"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(r, tt.method, tt.path, tt.body)

			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			for _, s := range tt.contains {
				assert.Contains(t, w.Body.String(), s)
			}
			assert.Equal(t, "run-1", w.Header().Get(RunIDHeader))
		})
	}
}

func TestComputeHandlers_BadRequest(t *testing.T) {
	recorder := new(MockRunRecorderService)
	recorder.On("Record", mock.Anything, mock.Anything, mock.Anything, nil, mock.Anything).
		Return(&runs.RunMeta{ID: "run-err"}, nil)

	r := setupRouter(t, recorder, new(MockRunMetadataService))

	tests := []struct {
		name    string
		path    string
		body    string
		message string
	}{
		{"missing text", "/classical/caesar", `{"shift":3}`, "Missing text"},
		{"missing key", "/classical/vigenere", `{"text":"HELLO"}`, "Missing key"},
		{"malformed body", "/classical/caesar", `{"text":`, "invalid request body"},
		{"non invertible hill key", "/classical/hill", `{"text":"HELLO","key":"AAAAAAAAA"}`, "Key Not Invertible"},
		{"rail count too small", "/classical/rail-fence", `{"text":"HELLO","rails":1}`, "Field: rails, Tag: gte"},
		{"rail count too large", "/classical/rail-fence", `{"text":"HELLO","rails":1099511627776}`, "Field: rails, Tag: lte"},
		{"des not hex", "/block/des", `{"text":"XYZ","key":"133457799BBCDFF1"}`, "text must be hexadecimal"},
		{"rsa non prime", "/rsa/keys", `{"p":4,"q":53}`, "Both numbers must be prime"},
		{"rsa missing q", "/rsa/keys", `{"p":61}`, "Missing q"},
		{"dh g without p", "/dh/setup", `{"g":5}`, "g requires p"},
		{"ecc point off curve", "/ecc/multiply", `{"k":2,"point":{"x":1,"y":1}}`, "is not a point of the curve"},
		{"hmac unsupported hash", "/hmac", `{"key":"k","message":"m","algorithm":"whirlpool"}`, `Unsupported hash algorithm "whirlpool"`},
		{"entropy without events", "/entropy/mix", `{"events":[]}`, "Field: events, Tag: min"},
		{"text too long", "/classical/caesar", `{"text":"` + strings.Repeat("A", 4097) + `"}`, "text exceeds 4096 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(r, "POST", tt.path, tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Contains(t, decodeError(t, w), tt.message)
			assert.Equal(t, "run-err", w.Header().Get(RunIDHeader))
		})
	}
}

func TestComputeHandlers_QueryValidation(t *testing.T) {
	r := setupRouter(t, nil, new(MockRunMetadataService))

	tests := []struct {
		name    string
		path    string
		message string
	}{
		{"entropy bytes not a number", "/entropy/system?bytes=abc", "bytes must be an integer"},
		{"entropy bytes out of range", "/entropy/system?bytes=0", "the number of bytes must be in [1, 1024]"},
		{"unknown ipsec protocol", "/ipsec/layout?protocol=gre", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(r, "GET", tt.path, "")

			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Contains(t, decodeError(t, w), tt.message)
		})
	}
}

func TestComputeHandlers_RecordingFailureKeepsResponse(t *testing.T) {
	recorder := new(MockRunRecorderService)
	recorder.On("Record", mock.Anything, "caesar", "encrypt", mock.Anything, nil).
		Return(nil, errors.New("database is locked"))

	r := setupRouter(t, recorder, new(MockRunMetadataService))

	w := perform(r, "POST", "/classical/caesar", `{"text":"HELLO"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "KHOOR")
	assert.Empty(t, w.Header().Get(RunIDHeader))
	recorder.AssertExpectations(t)
}

func TestComputeHandlers_WithoutRecorder(t *testing.T) {
	r := setupRouter(t, nil, new(MockRunMetadataService))

	t.Run("ecc params", func(t *testing.T) {
		w := perform(r, "GET", "/ecc/params", "")

		require.Equal(t, http.StatusOK, w.Code)
		var curve map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &curve))
		assert.EqualValues(t, 17, curve["p"])
		assert.Empty(t, w.Header().Get(RunIDHeader))
	})

	t.Run("ipsec default layout", func(t *testing.T) {
		w := perform(r, "GET", "/ipsec/layout", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"protocol":"esp"`)
		assert.Contains(t, w.Body.String(), `"mode":"transport"`)
	})

	t.Run("ecc round trip", func(t *testing.T) {
		w := perform(r, "POST", "/ecc/shared-secret", `{"d":3,"public_key":{"x":0,"y":6}}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"str":"(6, 3)"`)
	})
}
