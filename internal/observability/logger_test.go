// internal/observability/logger_test.go
package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/boxflow/internal/config"
)

// -- Test Helper Functions --

// initBuffered resets the global logger and initializes it against an in-memory buffer.
func initBuffered(t *testing.T, cfg config.LoggerConfig) *bytes.Buffer {
	t.Helper()
	ResetForTest()
	t.Cleanup(ResetForTest)
	var buf bytes.Buffer
	Initialize(cfg, zapcore.AddSync(&buf))
	return &buf
}

// -- Test Cases --

func TestInitialize(t *testing.T) {
	t.Run("should initialize console logger with colors", func(t *testing.T) {
		buf := initBuffered(t, config.LoggerConfig{
			Level:       "debug",
			Format:      "console",
			ServiceName: "boxflow",
			Colors:      config.ColorConfig{Info: "green"},
		})

		Component("layout").Info("Layout complete")
		Sync()

		output := buf.String()
		assert.Contains(t, output, "INFO")
		assert.Contains(t, output, "Layout complete")
		assert.Contains(t, output, "boxflow.layout.")
		assert.Contains(t, output, colorMap["green"])
		assert.Contains(t, output, colorReset)
	})

	t.Run("should initialize json logger", func(t *testing.T) {
		buf := initBuffered(t, config.LoggerConfig{
			Level:       "info",
			Format:      "json",
			ServiceName: "JSONTest",
		})

		GetLogger().Warn("This is a JSON message.", zap.String("key", "value"))
		GetLogger().Debug("filtered by level")
		Sync()

		var logEntry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry), "Log output should be a single JSON object")
		assert.Equal(t, "warn", logEntry["level"])
		assert.Equal(t, "JSONTest", logEntry["logger"])
		assert.Equal(t, "This is a JSON message.", logEntry["msg"])
		assert.Equal(t, "value", logEntry["key"])
	})

	t.Run("should write to a log file if configured", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "boxflow.log")
		initBuffered(t, config.LoggerConfig{
			Level:   "debug",
			Format:  "json",
			LogFile: path,
			MaxSize: 1,
		})

		GetLogger().Error("This should go to the file.")
		Sync()

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "This should go to the file.")
	})

	t.Run("should only initialize once", func(t *testing.T) {
		buf := initBuffered(t, config.LoggerConfig{Level: "info", Format: "json", ServiceName: "First"})
		logger1 := GetLogger()

		Initialize(config.LoggerConfig{Level: "debug", ServiceName: "Second"}, zapcore.AddSync(&bytes.Buffer{}))
		logger2 := GetLogger()

		assert.Same(t, logger1, logger2)
		logger2.Info("test")
		Sync()
		assert.Contains(t, buf.String(), "First")
		assert.NotContains(t, buf.String(), "Second")
	})

	t.Run("should fall back to info on an unknown level", func(t *testing.T) {
		buf := initBuffered(t, config.LoggerConfig{Level: "chatty", Format: "json"})
		GetLogger().Debug("hidden")
		GetLogger().Info("shown")
		Sync()
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})
}

func TestGetLogger(t *testing.T) {
	t.Run("should return a no-op logger if not initialized", func(t *testing.T) {
		ResetForTest()
		logger := GetLogger()
		require.NotNil(t, logger)
		assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
	})

	t.Run("should return the global logger after initialization", func(t *testing.T) {
		initBuffered(t, config.LoggerConfig{Level: "info", ServiceName: "GlobalTest"})
		assert.Same(t, globalLogger.Load(), GetLogger())
	})
}
