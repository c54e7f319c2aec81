//go:build unit
// +build unit

package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (map[string]any, error) {
	t.Helper()

	rootCmd := &cobra.Command{Use: "crypto-trace-cli", SilenceUsage: true, SilenceErrors: true}
	require.NoError(t, InitCommands(rootCmd))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	var document map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &document), out.String())
	return document, err
}

func TestCommands_Success(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		field string
		want  any
	}{
		{"caesar", []string{"caesar", "--text", "HELLO"}, "result", "KHOOR"},
		{"caesar decrypt", []string{"caesar", "--text", "KHOOR", "--decrypt"}, "result", "HELLO"},
		{"vigenere", []string{"vigenere", "--text", "ATTACKATDAWN", "--key", "LEMON"}, "result", "LXFOPVEFRNHR"},
		{"hill", []string{"hill", "--text", "ACT", "--key", "GYBNQKURP"}, "result", "POH"},
		{"rail fence", []string{"rail-fence", "--text", "HELLO", "--rails", "2"}, "rails", float64(2)},
		{"des", []string{"des", "--text", "0123456789ABCDEF", "--key", "133457799BBCDFF1"}, "ciphertext_hex", "85E813540F0AB405"},
		{"rsa keys", []string{"rsa", "keys", "--p", "61", "--q", "53"}, "n", float64(3233)},
		{"rsa decrypt", []string{"rsa", "decrypt", "--ciphertext", "2790", "--d", "2753", "--n", "3233"}, "plaintext", "A"},
		{"dh secret", []string{"dh", "secret", "--p", "23", "--a", "6", "--b", "15", "--public-a", "8", "--public-b", "19"}, "match", true},
		{"elgamal keys", []string{"elgamal", "keys", "--p", "467", "--g", "2", "--x", "127"}, "y", float64(132)},
		{"dsa verify", []string{"dsa", "verify", "--p", "167", "--q", "83", "--g", "4", "--message", "hello", "--y", "28", "--r", "22", "--s", "70"}, "valid", true},
		{"ecc points", []string{"ecc", "points"}, "count", float64(19)},
		{"hmac", []string{"hmac", "--key", "Jefe", "--message", "what do ya want for nothing?"}, "hmac",
			"5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843"},
		{"lcg", []string{"lcg", "--m", "16", "--a", "5", "--c", "3", "--seed", "7", "--n", "20"}, "period", float64(16)},
		{"entropy mix", []string{"entropy", "mix", "--events", `[{"x":1,"y":2,"t":3}]`}, "event_count", float64(1)},
		{"ipsec", []string{"ipsec", "--protocol", "ah", "--mode", "tunnel"}, "protocol", "ah"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			document, err := execute(t, tt.args...)

			require.NoError(t, err)
			assert.Equal(t, tt.want, document[tt.field])
		})
	}
}

func TestCommands_ECCMultiply(t *testing.T) {
	document, err := execute(t, "ecc", "multiply", "--k", "2")

	require.NoError(t, err)
	result, ok := document["result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "(6, 3)", result["str"])
}

func TestCommands_SeededRandomIsReproducible(t *testing.T) {
	first, err := execute(t, "--random-seed", "7", "rsa", "keys", "--p", "61", "--q", "53")
	require.NoError(t, err)
	second, err := execute(t, "--random-seed", "7", "rsa", "keys", "--p", "61", "--q", "53")
	require.NoError(t, err)

	assert.Equal(t, first["public_key"], second["public_key"])
}

func TestCommands_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing text", []string{"caesar"}, "Missing text"},
		{"missing key", []string{"vigenere", "--text", "HELLO"}, "Missing key"},
		{"non prime", []string{"rsa", "keys", "--p", "4", "--q", "53"}, "Both numbers must be prime"},
		{"not an integer", []string{"rsa", "keys", "--p", "sixty-one", "--q", "53"}, `p must be an integer, got "sixty-one"`},
		{"g without p", []string{"dh", "setup", "--g", "5"}, "g requires p"},
		{"bad pairs", []string{"elgamal", "decrypt", "--pairs", "1-2", "--p", "467", "--x", "127"}, "pairs must look like a:b,a:b"},
		{"shared secret without point", []string{"ecc", "shared-secret", "--d", "3"}, "Missing public key (--x, --y)"},
		{"unsupported hash", []string{"hmac", "--key", "k", "--algorithm", "md4"}, `Unsupported hash algorithm "md4"`},
		{"malformed events", []string{"entropy", "mix", "--events", "{"}, "events must be a JSON array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			document, err := execute(t, tt.args...)

			require.ErrorIs(t, err, ErrReported)
			assert.Contains(t, document["error"], tt.want)
		})
	}
}
