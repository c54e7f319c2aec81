package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/MGTheTrain/crypto-trace/internal/app"
	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/config"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// ErrReported marks a failure whose {"error": ...} document was already printed
var ErrReported = errors.New("error reported")

const randomSeedFlag = "random-seed"

// Logging goes to the console at error level so stdout stays valid JSON
func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: config.LogLevelError,
		LogType:  config.LogTypeConsole,
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// InitCommands registers the shared flags and every command group
func InitCommands(rootCmd *cobra.Command) error {
	rootCmd.PersistentFlags().Uint64(randomSeedFlag, 0, "Seed of a deterministic random source (0 uses crypto/rand)")

	handler, err := newCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create command handler: %w", err)
	}

	for _, register := range []func(*cobra.Command, *CommandHandler){
		registerClassicalCommands,
		registerBlockCipherCommands,
		registerPublicKeyCommands,
		registerECCCommands,
		registerPrimitivesCommands,
	} {
		register(rootCmd, handler)
	}
	return nil
}

// CommandHandler builds an engine per invocation and prints what it returns
type CommandHandler struct {
	logger   logger.Logger
	settings config.EngineSettings
}

func newCommandHandler() (*CommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &CommandHandler{
		logger:   loggerInstance,
		settings: config.DefaultEngineSettings(),
	}, nil
}

func (h *CommandHandler) engine(cmd *cobra.Command) (*app.Engine, error) {
	seed, err := cmd.Flags().GetUint64(randomSeedFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid %s flag: %w", randomSeedFlag, err)
	}

	random := cryptography.NewSecureRandomSource()
	if seed != 0 {
		random = cryptography.NewSeededRandomSource(seed)
	}
	return app.NewEngine(h.logger, random, h.settings)
}

// compute runs fn on a fresh engine. Results are printed as indented JSON,
// failures as {"error": "..."} followed by ErrReported.
func (h *CommandHandler) compute(cmd *cobra.Command, fn func(engine *app.Engine) (any, error)) error {
	engine, err := h.engine(cmd)
	if err != nil {
		return err
	}

	result, err := fn(engine)
	if err != nil {
		return h.report(cmd, err)
	}
	return printJSON(cmd.OutOrStdout(), result)
}

func (h *CommandHandler) report(cmd *cobra.Command, err error) error {
	if !cryptoalg.IsValidationError(err) {
		h.logger.Error(fmt.Sprintf("%s failed: %v", cmd.CommandPath(), err))
	}
	if printErr := printJSON(cmd.OutOrStdout(), map[string]string{"error": err.Error()}); printErr != nil {
		return printErr
	}
	return ErrReported
}

// checkText applies the engine's text length limit
func (h *CommandHandler) checkText(values ...string) error {
	for _, v := range values {
		if utf8.RuneCountInString(v) > h.settings.MaxTextLength {
			return cryptoalg.NewValidationError("text exceeds %d characters", h.settings.MaxTextLength)
		}
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func stringFlag(cmd *cobra.Command, name string) string {
	value, _ := cmd.Flags().GetString(name)
	return value
}

func requiredString(cmd *cobra.Command, name string) (string, error) {
	value := stringFlag(cmd, name)
	if value == "" {
		return "", cryptoalg.NewValidationError("Missing %s", name)
	}
	return value, nil
}

// bigFlag parses a decimal integer flag; an unset flag yields nil
func bigFlag(cmd *cobra.Command, name string) (*big.Int, error) {
	raw := strings.TrimSpace(stringFlag(cmd, name))
	if raw == "" {
		return nil, nil
	}
	value, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, cryptoalg.NewValidationError("%s must be an integer, got %q", name, raw)
	}
	return value, nil
}

func requiredBig(cmd *cobra.Command, name string) (*big.Int, error) {
	value, err := bigFlag(cmd, name)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, cryptoalg.NewValidationError("Missing %s", name)
	}
	return value, nil
}

// requiredBigs parses several required integer flags in order
func requiredBigs(cmd *cobra.Command, names ...string) ([]*big.Int, error) {
	values := make([]*big.Int, len(names))
	for i, name := range names {
		value, err := requiredBig(cmd, name)
		if err != nil {
			return nil, err
		}
		values[i] = value
	}
	return values, nil
}

// bigListFlag parses a comma-separated list of integers
func bigListFlag(cmd *cobra.Command, name string) ([]*big.Int, error) {
	raw := strings.TrimSpace(stringFlag(cmd, name))
	if raw == "" {
		return nil, cryptoalg.NewValidationError("Missing %s", name)
	}

	parts := strings.Split(raw, ",")
	values := make([]*big.Int, 0, len(parts))
	for _, part := range parts {
		value, ok := new(big.Int).SetString(strings.TrimSpace(part), 10)
		if !ok {
			return nil, cryptoalg.NewValidationError("%s must be a comma-separated list of integers, got %q", name, part)
		}
		values = append(values, value)
	}
	return values, nil
}

func addStringFlags(cmd *cobra.Command, flags map[string]string) {
	for name, usage := range flags {
		cmd.Flags().String(name, "", usage)
	}
}
