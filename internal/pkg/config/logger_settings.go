package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Log level constants. Critical has no slog counterpart and is logged as error.
const (
	LogLevelInfo     = "info"
	LogLevelDebug    = "debug"
	LogLevelError    = "error"
	LogLevelWarning  = "warning"
	LogLevelCritical = "critical"
)

// Log type constants
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

// LoggerSettings selects the console back end or the rotating JSON file back end.
// The rotation fields map onto lumberjack and are only required for the file back end.
type LoggerSettings struct {
	LogLevel   string `mapstructure:"log_level" validate:"required,oneof=info debug error warning critical"`
	LogType    string `mapstructure:"log_type" validate:"required,oneof=console file"`
	FilePath   string `mapstructure:"file_path" validate:"required_if=LogType file"`
	MaxSize    int    `mapstructure:"max_size" validate:"required_if=LogType file,gte=0,lte=100"`
	MaxBackups int    `mapstructure:"max_backups" validate:"required_if=LogType file,gte=0,lte=10"`
	MaxAge     int    `mapstructure:"max_age" validate:"required_if=LogType file,gte=0,lte=365"`
	Compress   bool   `mapstructure:"compress"`
}

// Validate reports the first offending field as "Field: <name>, Tag: <rule>"
func (s *LoggerSettings) Validate() error {
	err := validator.New().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fmt.Errorf("validation failed for LoggerSettings: Field: %s, Tag: %s", fieldErrs[0].Field(), fieldErrs[0].Tag())
	}
	return fmt.Errorf("validation failed for LoggerSettings: %w", err)
}
