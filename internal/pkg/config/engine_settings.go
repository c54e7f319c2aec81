package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// EngineSettings bounds the verbose-compute routines so traces stay readable.
type EngineSettings struct {
	EccMaxPrivateScalar int `mapstructure:"ecc_max_private_scalar" validate:"gte=2"`
	DsaMaxSignAttempts  int `mapstructure:"dsa_max_sign_attempts" validate:"gte=1"`
	PrngDefaultSamples  int `mapstructure:"prng_default_samples" validate:"gte=1"`
	PrngMaxSamples      int `mapstructure:"prng_max_samples" validate:"gte=1"`
	EntropyDefaultBytes int `mapstructure:"entropy_default_bytes" validate:"gte=1"`
	EntropyMaxBytes     int `mapstructure:"entropy_max_bytes" validate:"gte=1,lte=1048576"`
	DefaultCaesarShift  int `mapstructure:"default_caesar_shift"`
	DefaultRailCount    int `mapstructure:"default_rail_count" validate:"gte=2"`
	MaxTextLength       int `mapstructure:"max_text_length" validate:"gte=1"`
}

// DefaultEngineSettings returns the bounds used when no configuration overrides them
func DefaultEngineSettings() EngineSettings {
	return EngineSettings{
		EccMaxPrivateScalar: 16,
		DsaMaxSignAttempts:  32,
		PrngDefaultSamples:  50,
		PrngMaxSamples:      10000,
		EntropyDefaultBytes: 16,
		EntropyMaxBytes:     1024,
		DefaultCaesarShift:  3,
		DefaultRailCount:    3,
		MaxTextLength:       4096,
	}
}

// Validate checks that all fields in EngineSettings are valid
func (s *EngineSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for EngineSettings: %w", err)
	}

	if s.PrngDefaultSamples > s.PrngMaxSamples {
		return fmt.Errorf("prng default samples %d exceed max samples %d", s.PrngDefaultSamples, s.PrngMaxSamples)
	}
	if s.EntropyDefaultBytes > s.EntropyMaxBytes {
		return fmt.Errorf("entropy default bytes %d exceed max bytes %d", s.EntropyDefaultBytes, s.EntropyMaxBytes)
	}

	return nil
}
