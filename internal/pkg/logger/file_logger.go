package logger

import (
	"log/slog"
	"os"

	"github.com/MGTheTrain/crypto-trace/internal/pkg/config"
	"github.com/natefinch/lumberjack"
)

// FileLogger writes JSON records to a size-rotated log file.
type FileLogger struct {
	slogLogger
}

// NewFileLogger creates a file logger that rotates according to the rotation fields of settings.
func NewFileLogger(settings *config.LoggerSettings) Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(settings.LogLevel),
	}
	handler := slog.NewJSONHandler(rotatingWriter(settings), opts)

	return &FileLogger{slogLogger{logger: slog.New(handler), exit: os.Exit}}
}

func rotatingWriter(settings *config.LoggerSettings) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   settings.FilePath,
		MaxSize:    settings.MaxSize,
		MaxBackups: settings.MaxBackups,
		MaxAge:     settings.MaxAge,
		Compress:   settings.Compress,
	}
}
