package observability

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xkilldash9x/verdict-cli/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// resetGlobalLogger restores the package state so each test observes a fresh
// initialization. Registered as cleanup so it also runs after the test.
func resetGlobalLogger(t *testing.T) {
	t.Helper()
	ResetForTest()
	t.Cleanup(func() {
		globalLogger.Store(nil)
		once = sync.Once{}
	})
}

func TestInitialize(t *testing.T) {
	t.Run("should initialize console logger with colors", func(t *testing.T) {
		resetGlobalLogger(t)

		var buf bytes.Buffer
		cfg := config.LoggerConfig{
			Level:       "debug",
			Format:      "console",
			ServiceName: "verdict-test",
			Colors:      config.ColorConfig{Info: "green", Error: "red"},
		}
		Initialize(cfg, zapcore.AddSync(&buf))

		logger := GetLogger()
		require.NotNil(t, logger)
		logger.Info("grading started")
		require.NoError(t, logger.Sync())

		out := buf.String()
		assert.Contains(t, out, "grading started")
		assert.Contains(t, out, "verdict-test.")
		assert.Contains(t, out, "\x1b[32mINFO\x1b[0m", "info lines should be colorized green")
	})

	t.Run("should initialize json logger", func(t *testing.T) {
		resetGlobalLogger(t)

		var buf bytes.Buffer
		cfg := config.LoggerConfig{
			Level:       "info",
			Format:      "json",
			ServiceName: "verdict-test",
		}
		Initialize(cfg, zapcore.AddSync(&buf))

		logger := GetLogger()
		logger.Info("run graded", zap.String("run_id", "run-1"))
		require.NoError(t, logger.Sync())

		out := buf.String()
		assert.Contains(t, out, `"msg":"run graded"`)
		assert.Contains(t, out, `"run_id":"run-1"`)
	})

	t.Run("should respect the configured level", func(t *testing.T) {
		resetGlobalLogger(t)

		var buf bytes.Buffer
		Initialize(config.LoggerConfig{Level: "warn", Format: "json"}, zapcore.AddSync(&buf))

		logger := GetLogger()
		logger.Info("too quiet to hear")
		logger.Warn("loud enough")
		require.NoError(t, logger.Sync())

		out := buf.String()
		assert.NotContains(t, out, "too quiet to hear")
		assert.Contains(t, out, "loud enough")
	})

	t.Run("should fall back to info on a bogus level", func(t *testing.T) {
		resetGlobalLogger(t)

		var buf bytes.Buffer
		Initialize(config.LoggerConfig{Level: "not-a-level", Format: "json"}, zapcore.AddSync(&buf))

		logger := GetLogger()
		logger.Debug("filtered")
		logger.Info("kept")
		require.NoError(t, logger.Sync())

		out := buf.String()
		assert.NotContains(t, out, "filtered")
		assert.Contains(t, out, "kept")
	})

	t.Run("should only initialize once", func(t *testing.T) {
		resetGlobalLogger(t)

		var first, second bytes.Buffer
		Initialize(config.LoggerConfig{Level: "info", Format: "json"}, zapcore.AddSync(&first))
		Initialize(config.LoggerConfig{Level: "info", Format: "json"}, zapcore.AddSync(&second))

		GetLogger().Info("singleton")
		require.NoError(t, GetLogger().Sync())

		assert.Contains(t, first.String(), "singleton")
		assert.Empty(t, second.String(), "the second Initialize call must be a no-op")
	})
}

func TestGetLoggerFallback(t *testing.T) {
	resetGlobalLogger(t)

	logger := GetLogger()
	require.NotNil(t, logger, "GetLogger must never return nil, even before initialization")
	// The fallback must not become the global instance.
	assert.Nil(t, globalLogger.Load())
}

func TestSyncWithoutLogger(t *testing.T) {
	resetGlobalLogger(t)
	// Must not panic when nothing was initialized.
	Sync()
}
