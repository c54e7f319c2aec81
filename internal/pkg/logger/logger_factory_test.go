//go:build unit
// +build unit

package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/MGTheTrain/crypto-trace/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLoggerSingleton() {
	loggerInstance = nil
	loggerErr = nil
	loggerOnce = sync.Once{}
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name     string
		settings func(t *testing.T) *config.LoggerSettings
		wantType Logger
		wantErr  string
	}{
		{
			name: "Console Back End",
			settings: func(t *testing.T) *config.LoggerSettings {
				return &config.LoggerSettings{LogLevel: config.LogLevelWarning, LogType: config.LogTypeConsole}
			},
			wantType: &ConsoleLogger{},
		},
		{
			name: "File Back End",
			settings: func(t *testing.T) *config.LoggerSettings {
				return fileLoggerSettings(t, config.LogLevelDebug)
			},
			wantType: &FileLogger{},
		},
		{
			name: "File Back End Without Rotation",
			settings: func(t *testing.T) *config.LoggerSettings {
				return &config.LoggerSettings{
					LogLevel: config.LogLevelInfo,
					LogType:  config.LogTypeFile,
					FilePath: filepath.Join(t.TempDir(), "trace.log"),
				}
			},
			wantErr: "Field: MaxSize, Tag: required_if",
		},
		{
			name: "Unknown Level",
			settings: func(t *testing.T) *config.LoggerSettings {
				return &config.LoggerSettings{LogLevel: "trace", LogType: config.LogTypeConsole}
			},
			wantErr: "Field: LogLevel, Tag: oneof",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(resetLoggerSingleton)

			err := InitLogger(tt.settings(t))
			logger, getErr := GetLogger()

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid config")
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Error(t, getErr)
				assert.Nil(t, logger)
				return
			}

			require.NoError(t, err)
			require.NoError(t, getErr)
			assert.IsType(t, tt.wantType, logger)
		})
	}
}

func TestGetLogger_BeforeInit(t *testing.T) {
	t.Cleanup(resetLoggerSingleton)

	logger, err := GetLogger()
	require.Error(t, err)
	assert.Nil(t, logger)
	assert.Contains(t, err.Error(), "call InitLogger first")
}

func TestInitLogger_FirstSettingsWin(t *testing.T) {
	t.Cleanup(resetLoggerSingleton)

	require.NoError(t, InitLogger(&config.LoggerSettings{
		LogLevel: config.LogLevelInfo,
		LogType:  config.LogTypeConsole,
	}))
	first, err := GetLogger()
	require.NoError(t, err)

	fileSettings := fileLoggerSettings(t, config.LogLevelInfo)
	require.NoError(t, InitLogger(fileSettings))
	second, err := GetLogger()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.IsType(t, &ConsoleLogger{}, second)
	_, statErr := os.Stat(fileSettings.FilePath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{config.LogLevelDebug, slog.LevelDebug},
		{config.LogLevelInfo, slog.LevelInfo},
		{config.LogLevelWarning, slog.LevelWarn},
		{config.LogLevelError, slog.LevelError},
		{config.LogLevelCritical, slog.LevelError},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.level))
		})
	}
}
