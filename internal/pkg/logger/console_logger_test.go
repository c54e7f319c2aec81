//go:build unit
// +build unit

package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/MGTheTrain/crypto-trace/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(buf *bytes.Buffer, level slog.Level) (*slogLogger, *int) {
	exitCode := -1
	l := &slogLogger{
		logger: slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level})),
		exit:   func(code int) { exitCode = code },
	}
	return l, &exitCode
}

func TestConsoleLogger_LogsToOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := newBufferedLogger(&buf, slog.LevelInfo)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestSlogLogger_FatalCallsExit(t *testing.T) {
	var buf bytes.Buffer
	logger, exitCode := newBufferedLogger(&buf, slog.LevelDebug)

	logger.Fatal("boom ", 42)

	assert.Equal(t, 1, *exitCode)
	assert.Contains(t, buf.String(), "boom 42")
}

func TestSlogLogger_Panic(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := newBufferedLogger(&buf, slog.LevelDebug)

	assert.PanicsWithValue(t, "bad state", func() {
		logger.Panic("bad state")
	})
	assert.Contains(t, buf.String(), "bad state")
}

func TestNewConsoleLogger(t *testing.T) {
	logger := NewConsoleLogger(config.LogLevelInfo)
	require.NotNil(t, logger)

	require.NotPanics(t, func() {
		logger.Debug("test")
		logger.Info("test")
		logger.Warn("test")
		logger.Error("test")
	})
}
