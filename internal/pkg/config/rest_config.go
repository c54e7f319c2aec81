package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable override, e.g. CRYPTO_TRACE_PORT
const EnvPrefix = "CRYPTO_TRACE"

// RestConfig holds the settings of the REST API binary
type RestConfig struct {
	Port     string           `mapstructure:"port" validate:"required,numeric"`
	Logger   LoggerSettings   `mapstructure:"logger"`
	Database DatabaseSettings `mapstructure:"database"`
	Engine   EngineSettings   `mapstructure:"engine"`
}

// Validate checks the top-level fields and every nested settings block
func (c *RestConfig) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed for RestConfig: %w", err)
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	return c.Engine.Validate()
}

// InitializeRestConfig reads the YAML file at path, applies environment overrides and validates the result
func InitializeRestConfig(path string) (*RestConfig, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultEngineSettings()
	v.SetDefault("port", "8080")
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", true)
	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", ":memory:")
	v.SetDefault("engine.ecc_max_private_scalar", defaults.EccMaxPrivateScalar)
	v.SetDefault("engine.dsa_max_sign_attempts", defaults.DsaMaxSignAttempts)
	v.SetDefault("engine.prng_default_samples", defaults.PrngDefaultSamples)
	v.SetDefault("engine.prng_max_samples", defaults.PrngMaxSamples)
	v.SetDefault("engine.entropy_default_bytes", defaults.EntropyDefaultBytes)
	v.SetDefault("engine.entropy_max_bytes", defaults.EntropyMaxBytes)
	v.SetDefault("engine.default_caesar_shift", defaults.DefaultCaesarShift)
	v.SetDefault("engine.default_rail_count", defaults.DefaultRailCount)
	v.SetDefault("engine.max_text_length", defaults.MaxTextLength)
	return v
}
