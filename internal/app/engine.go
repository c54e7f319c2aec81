package app

import (
	"fmt"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/config"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"
)

// Engine bundles one processor per algorithm family. It is shared by the REST
// API and the CLI; processors keep no state between calls.
type Engine struct {
	Classical   cryptoalg.ClassicalProcessor
	BlockCipher cryptoalg.BlockCipherProcessor
	RSA         cryptoalg.RSAProcessor
	DH          cryptoalg.DiffieHellmanProcessor
	ElGamal     cryptoalg.ElGamalProcessor
	DSA         cryptoalg.DSAProcessor
	ECC         cryptoalg.ECCProcessor
	HMAC        cryptoalg.HMACProcessor
	PRNG        cryptoalg.PRNGProcessor
	Entropy     cryptoalg.EntropyProcessor
	IPsec       cryptoalg.IPsecProcessor
	Settings    config.EngineSettings
}

// NewEngine wires every processor to the same logger and random source
func NewEngine(logger logger.Logger, random cryptoalg.RandomSource, settings config.EngineSettings) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{Settings: settings}
	var err error

	if e.Classical, err = cryptography.NewClassicalProcessor(logger, random); err != nil {
		return nil, fmt.Errorf("failed to create classical processor: %w", err)
	}
	if e.BlockCipher, err = cryptography.NewBlockCipherProcessor(logger); err != nil {
		return nil, fmt.Errorf("failed to create block cipher processor: %w", err)
	}
	if e.RSA, err = cryptography.NewRSAProcessor(logger, random); err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}
	if e.DH, err = cryptography.NewDiffieHellmanProcessor(logger, random); err != nil {
		return nil, fmt.Errorf("failed to create Diffie-Hellman processor: %w", err)
	}
	if e.ElGamal, err = cryptography.NewElGamalProcessor(logger, random); err != nil {
		return nil, fmt.Errorf("failed to create ElGamal processor: %w", err)
	}
	if e.DSA, err = cryptography.NewDSAProcessor(logger, random, settings); err != nil {
		return nil, fmt.Errorf("failed to create DSA processor: %w", err)
	}
	if e.ECC, err = cryptography.NewECCProcessor(logger, random, settings); err != nil {
		return nil, fmt.Errorf("failed to create ECC processor: %w", err)
	}
	if e.HMAC, err = cryptography.NewHMACProcessor(logger); err != nil {
		return nil, fmt.Errorf("failed to create HMAC processor: %w", err)
	}
	if e.PRNG, err = cryptography.NewPRNGProcessor(logger, settings); err != nil {
		return nil, fmt.Errorf("failed to create PRNG processor: %w", err)
	}
	if e.Entropy, err = cryptography.NewEntropyProcessor(logger, random, settings); err != nil {
		return nil, fmt.Errorf("failed to create entropy processor: %w", err)
	}
	if e.IPsec, err = cryptography.NewIPsecProcessor(logger); err != nil {
		return nil, fmt.Errorf("failed to create IPsec processor: %w", err)
	}

	return e, nil
}
