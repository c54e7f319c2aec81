//go:build unit
// +build unit

package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MGTheTrain/crypto-trace/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileLoggerSettings(t *testing.T, level string) *config.LoggerSettings {
	return &config.LoggerSettings{
		LogLevel:   level,
		LogType:    config.LogTypeFile,
		FilePath:   filepath.Join(t.TempDir(), "trace.log"),
		MaxSize:    1,
		MaxBackups: 2,
		MaxAge:     7,
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(content)), "\n")
}

func TestRotatingWriter(t *testing.T) {
	settings := fileLoggerSettings(t, config.LogLevelInfo)
	settings.Compress = true

	writer := rotatingWriter(settings)

	assert.Equal(t, settings.FilePath, writer.Filename)
	assert.Equal(t, 1, writer.MaxSize)
	assert.Equal(t, 2, writer.MaxBackups)
	assert.Equal(t, 7, writer.MaxAge)
	assert.True(t, writer.Compress)
}

func TestNewFileLogger_WritesJSONRecords(t *testing.T) {
	settings := fileLoggerSettings(t, config.LogLevelInfo)

	logger := NewFileLogger(settings)
	require.IsType(t, &FileLogger{}, logger)

	logger.Debug("dropped below info")
	logger.Info("AES traced 11 rounds")
	logger.Warn("Diffie-Hellman secrets differ")

	lines := readLines(t, settings.FilePath)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"level":"INFO"`)
	assert.Contains(t, lines[0], `"msg":"AES traced 11 rounds"`)
	assert.Contains(t, lines[1], `"level":"WARN"`)
}

func TestNewFileLogger_CriticalKeepsOnlyErrors(t *testing.T) {
	settings := fileLoggerSettings(t, config.LogLevelCritical)

	logger := NewFileLogger(settings)
	logger.Warn("run recording failed")
	logger.Error("DSA signing gave up")

	lines := readLines(t, settings.FilePath)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"level":"ERROR"`)
	assert.Contains(t, lines[0], "DSA signing gave up")
}

func TestFileLogger_RotatesPastMaxSize(t *testing.T) {
	settings := fileLoggerSettings(t, config.LogLevelInfo)

	writer := rotatingWriter(settings)
	t.Cleanup(func() { _ = writer.Close() })
	logger := &slogLogger{
		logger: slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: slog.LevelInfo})),
		exit:   func(int) {},
	}

	// 600 records of ~2 KiB exceed the 1 MB segment once
	payload := strings.Repeat("x", 2048)
	for i := 0; i < 600; i++ {
		logger.Info(payload)
	}

	backups, err := filepath.Glob(filepath.Join(filepath.Dir(settings.FilePath), "trace-*.log*"))
	require.NoError(t, err)
	assert.NotEmpty(t, backups)

	info, err := os.Stat(settings.FilePath)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(1024*1024))
}
