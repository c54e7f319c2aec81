// Package main is the entry point for the crypto-trace-cli application.
// It registers one command group per algorithm family and prints every
// verbose trace as indented JSON.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/MGTheTrain/crypto-trace/cmd/crypto-trace-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, commands.ErrReported) {
			os.Exit(1)
		}
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "crypto-trace-cli",
		Short: "Step-by-step cryptography traces",
		Long: `crypto-trace-cli runs textbook cryptographic algorithms and prints every
intermediate step as JSON: classical ciphers, AES and DES, RSA, Diffie-Hellman,
ElGamal, DSA, elliptic curves over small fields, HMAC, LCG and entropy mixing.

Pass --random-seed to make key generation and nonces reproducible.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	if err := commands.InitCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return err
	}

	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
