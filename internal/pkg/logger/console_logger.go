package logger

import (
	"log/slog"
	"os"
)

// ConsoleLogger writes human-readable text records to stdout.
type ConsoleLogger struct {
	slogLogger
}

// NewConsoleLogger creates a new console logger with the specified log level.
func NewConsoleLogger(level string) Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	handler := slog.NewTextHandler(os.Stdout, opts)

	return &ConsoleLogger{slogLogger{logger: slog.New(handler), exit: os.Exit}}
}
