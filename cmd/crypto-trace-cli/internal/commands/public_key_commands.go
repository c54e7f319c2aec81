package commands

import (
	"math/big"
	"strings"

	"github.com/MGTheTrain/crypto-trace/internal/app"
	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"

	"github.com/spf13/cobra"
)

// computeCmd adapts a compute closure to cobra's RunE
func (h *CommandHandler) computeCmd(run func(engine *app.Engine, cmd *cobra.Command) (any, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return h.compute(cmd, func(engine *app.Engine) (any, error) {
			return run(engine, cmd)
		})
	}
}

func (h *CommandHandler) requiredMessage(cmd *cobra.Command, name string) (string, error) {
	value, err := requiredString(cmd, name)
	if err != nil {
		return "", err
	}
	return value, h.checkText(value)
}

func dsaParams(cmd *cobra.Command) (cryptoalg.DSAParams, error) {
	values, err := requiredBigs(cmd, "p", "q", "g")
	if err != nil {
		return cryptoalg.DSAParams{}, err
	}
	return cryptoalg.DSAParams{P: values[0], Q: values[1], G: values[2]}, nil
}

// elGamalPairs parses "a:b,a:b,..."
func elGamalPairs(cmd *cobra.Command) ([]cryptoalg.ElGamalPair, error) {
	raw := strings.TrimSpace(stringFlag(cmd, "pairs"))
	if raw == "" {
		return nil, cryptoalg.NewValidationError("Missing pairs")
	}

	var pairs []cryptoalg.ElGamalPair
	for _, item := range strings.Split(raw, ",") {
		left, right, ok := strings.Cut(strings.TrimSpace(item), ":")
		a, okA := new(big.Int).SetString(left, 10)
		b, okB := new(big.Int).SetString(right, 10)
		if !ok || !okA || !okB {
			return nil, cryptoalg.NewValidationError("pairs must look like a:b,a:b, got %q", item)
		}
		pairs = append(pairs, cryptoalg.ElGamalPair{A: a, B: b})
	}
	return pairs, nil
}

func newGroupCommand(use, short string) *cobra.Command {
	return &cobra.Command{Use: use, Short: short}
}

func registerPublicKeyCommands(rootCmd *cobra.Command, handler *CommandHandler) {
	// RSA
	rsaCmd := newGroupCommand("rsa", "RSA with small primes")

	rsaKeysCmd := &cobra.Command{
		Use:   "keys",
		Short: "Derive n, phi(n), e and d from two primes",
		RunE: handler.computeCmd(func(engine *app.Engine, cmd *cobra.Command) (any, error) {
			values, err := requiredBigs(cmd, "p", "q")
			if err != nil {
				return nil, err
			}
			return engine.RSA.GenerateKeys(values[0], values[1])
		}),
	}
	addStringFlags(rsaKeysCmd, map[string]string{"p": "First prime", "q": "Second prime"})

	rsaEncryptCmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt every character code with the public key",
		RunE: handler.computeCmd(func(engine *app.Engine, cmd *cobra.Command) (any, error) {
			text, err := handler.requiredMessage(cmd, "text")
			if err != nil {
				return nil, err
			}
			values, err := requiredBigs(cmd, "e", "n")
			if err != nil {
				return nil, err
			}
			return engine.RSA.Encrypt(text, values[0], values[1])
		}),
	}
	addStringFlags(rsaEncryptCmd, map[string]string{"text": "Plaintext", "e": "Public exponent", "n": "Modulus"})

	rsaDecryptCmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a comma-separated ciphertext with the private key",
		RunE: handler.computeCmd(func(engine *app.Engine, cmd *cobra.Command) (any, error) {
			ciphertext, err := bigListFlag(cmd, "ciphertext")
			if err != nil {
				return nil, err
			}
			values, err := requiredBigs(cmd, "d", "n")
			if err != nil {
				return nil, err
			}
			return engine.RSA.Decrypt(ciphertext, values[0], values[1])
		}),
	}
	addStringFlags(rsaDecryptCmd, map[string]string{"ciphertext": "Comma-separated ciphertext values", "d": "Private exponent", "n": "Modulus"})

	rsaCmd.AddCommand(rsaKeysCmd, rsaEncryptCmd, rsaDecryptCmd)
	rootCmd.AddCommand(rsaCmd)

	// Diffie-Hellman
	dhCmd := newGroupCommand("dh", "Diffie-Hellman key exchange")

	dhSetupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Agree on p and g; both are chosen when omitted",
		RunE: handler.computeCmd(func(engine *app.Engine, cmd *cobra.Command) (any, error) {
			p, err := bigFlag(cmd, "p")
			if err != nil {
				return nil, err
			}
			g, err := bigFlag(cmd, "g")
			if err != nil {
				return nil, err
			}
			if p == nil && g != nil {
				return nil, cryptoalg.NewValidationError("g requires p")
			}
			return engine.DH.Setup(p, g)
		}),
	}
	addStringFlags(dhSetupCmd, map[string]string{"p": "Prime modulus", "g": "Generator"})

	dhKeysCmd := &cobra.Command{
		Use:   "keys",
		Short: "Compute both public values; private values are drawn when omitted",
		RunE: handler.computeCmd(func(engine *app.Engine, cmd *cobra.Command) (any, error) {
			values, err := requiredBigs(cmd, "p", "g")
			if err != nil {
				return nil, err
			}
			a, err := bigFlag(cmd, "a")
			if err != nil {
				return nil, err
			}
			b, err := bigFlag(cmd, "b")
			if err != nil {
				return nil, err
			}
			return engine.DH.GenerateKeys(values[0], values[1], a, b)
		}),
	}
	addStringFlags(dhKeysCmd, map[string]string{"p": "Prime modulus", "g": "Generator", "a": "Alice's private value", "b": "Bob's private value"})

	dhSecretCmd := &cobra.Command{
		Use:   "secret",
		Short: "Compute the shared secret on both sides",
		RunE: handler.computeCmd(func(engine *app.Engine, cmd *cobra.Command) (any, error) {
			values, err := requiredBigs(cmd, "p", "a", "b", "public-a", "public-b")
			if err != nil {
				return nil, err
			}
			return engine.DH.ComputeSecret(values[0], values[1], values[2], values[3], values[4])
		}),
	}
	addStringFlags(dhSecretCmd, map[string]string{
		"p": "Prime modulus", "a": "Alice's private value", "b": "Bob's private value",
		"public-a": "Alice's public value", "public-b": "Bob's public value",
	})

	dhCmd.AddCommand(dhSetupCmd, dhKeysCmd, dhSecretCmd)
	rootCmd.AddCommand(dhCmd)

	// ElGamal
	elGamalCmd := newGroupCommand("elgamal", "ElGamal encryption")

	elGamalKeysCmd := &cobra.Command{
		Use:   "keys",
		Short: "Publish y = g^x mod p",
		RunE: handler.computeCmd(func(engine *app.Engine, cmd *cobra.Command) (any, error) {
			values, err := requiredBigs(cmd, "p", "g")
			if err != nil {
				return nil, err
			}
			x, err := bigFlag(cmd, "x")
			if err != nil {
				return nil, err
			}
			return engine.ElGamal.GenerateKeys(values[0], values[1], x)
		}),
	}
	addStringFlags(elGamalKeysCmd, map[string]string{"p": "Prime modulus", "g": "Generator", "x": "Private key, drawn when omitted"})

	elGamalEncryptCmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt every character into a pair (a, b)",
		RunE: handler.computeCmd(func(engine *app.Engine, cmd *cobra.Command) (any, error) {
			text, err := handler.requiredMessage(cmd, "text")
			if err != nil {
				return nil, err
			}
			values, err := requiredBigs(cmd, "p", "g", "y")
			if err != nil {
				return nil, err
			}
			return engine.ElGamal.Encrypt(text, values[0], values[1], values[2])
		}),
	}
	addStringFlags(elGamalEncryptCmd, map[string]string{"text": "Plaintext", "p": "Prime modulus", "g": "Generator", "y": "Public key"})

	elGamalDecryptCmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt pairs given as a:b,a:b",
		RunE: handler.computeCmd(func(engine *app.Engine, cmd *cobra.Command) (any, error) {
			pairs, err := elGamalPairs(cmd)
			if err != nil {
				return nil, err
			}
			values, err := requiredBigs(cmd, "p", "x")
			if err != nil {
				return nil, err
			}
			return engine.ElGamal.Decrypt(pairs, values[0], values[1])
		}),
	}
	addStringFlags(elGamalDecryptCmd, map[string]string{"pairs": "Ciphertext pairs a:b,a:b", "p": "Prime modulus", "x": "Private key"})

	elGamalCmd.AddCommand(elGamalKeysCmd, elGamalEncryptCmd, elGamalDecryptCmd)
	rootCmd.AddCommand(elGamalCmd)

	// DSA
	dsaCmd := newGroupCommand("dsa", "DSA signatures over a small group")
	paramFlags := map[string]string{"p": "Prime modulus", "q": "Prime divisor of p-1", "g": "Generator of order q"}

	dsaSetupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Generate domain parameters (p, q, g)",
		RunE: handler.computeCmd(func(engine *app.Engine, _ *cobra.Command) (any, error) {
			return engine.DSA.Setup()
		}),
	}

	dsaKeysCmd := &cobra.Command{
		Use:   "keys",
		Short: "Draw a private key x and publish y = g^x mod p",
		RunE: handler.computeCmd(func(engine *app.Engine, cmd *cobra.Command) (any, error) {
			params, err := dsaParams(cmd)
			if err != nil {
				return nil, err
			}
			return engine.DSA.GenerateKeys(params)
		}),
	}
	addStringFlags(dsaKeysCmd, paramFlags)

	dsaSignCmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message with the private key x",
		RunE: handler.computeCmd(func(engine *app.Engine, cmd *cobra.Command) (any, error) {
			message, err := handler.requiredMessage(cmd, "message")
			if err != nil {
				return nil, err
			}
			params, err := dsaParams(cmd)
			if err != nil {
				return nil, err
			}
			x, err := requiredBig(cmd, "x")
			if err != nil {
				return nil, err
			}
			return engine.DSA.Sign(message, params, x)
		}),
	}
	addStringFlags(dsaSignCmd, paramFlags)
	addStringFlags(dsaSignCmd, map[string]string{"message": "Message to sign", "x": "Private key"})

	dsaVerifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the signature (r, s) with the public key y",
		RunE: handler.computeCmd(func(engine *app.Engine, cmd *cobra.Command) (any, error) {
			message, err := handler.requiredMessage(cmd, "message")
			if err != nil {
				return nil, err
			}
			params, err := dsaParams(cmd)
			if err != nil {
				return nil, err
			}
			values, err := requiredBigs(cmd, "y", "r", "s")
			if err != nil {
				return nil, err
			}
			return engine.DSA.Verify(message, params, values[0], values[1], values[2])
		}),
	}
	addStringFlags(dsaVerifyCmd, paramFlags)
	addStringFlags(dsaVerifyCmd, map[string]string{"message": "Signed message", "y": "Public key", "r": "Signature r", "s": "Signature s"})

	dsaCmd.AddCommand(dsaSetupCmd, dsaKeysCmd, dsaSignCmd, dsaVerifyCmd)
	rootCmd.AddCommand(dsaCmd)
}
