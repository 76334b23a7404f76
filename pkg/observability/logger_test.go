package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger(t *testing.T) {
	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelInfo, Format: LogFormatText, Output: &buf})

		logger.Info("event added", "title", "Standup")

		assert.Contains(t, buf.String(), "event added")
		assert.Contains(t, buf.String(), "title=Standup")
	})

	t.Run("json format with service attributes", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{
			Level:          LogLevelInfo,
			Format:         LogFormatJSON,
			Output:         &buf,
			ServiceName:    ServiceName,
			ServiceVersion: "1.2.3",
		})

		logger.Info("conflict detected", "overlap_min", 30)

		entry := decodeLine(t, &buf)
		assert.Equal(t, "conflict detected", entry["msg"])
		assert.Equal(t, "dayslot", entry["service"])
		assert.Equal(t, "1.2.3", entry["version"])
		assert.Equal(t, 30.0, entry["overlap_min"])
	})

	t.Run("level filter", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelWarn, Format: LogFormatText, Output: &buf})

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")

		assert.NotContains(t, buf.String(), "debug message")
		assert.NotContains(t, buf.String(), "info message")
		assert.Contains(t, buf.String(), "warn message")
	})

	t.Run("context values", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelInfo, Format: LogFormatJSON, Output: &buf})

		ctx := WithCorrelationID(context.Background(), "corr-42")
		ctx = WithOperation(ctx, "add_event")
		logger.InfoContext(ctx, "handled")

		entry := decodeLine(t, &buf)
		assert.Equal(t, "corr-42", entry[CorrelationIDKey])
		assert.Equal(t, "add_event", entry[OperationKey])
	})

	t.Run("with attrs keeps service attributes", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Format: LogFormatJSON, Output: &buf, ServiceName: ServiceName})

		logger.With("component", "subscriber").Info("consumed", "key", "scheduling.event.added")

		entry := decodeLine(t, &buf)
		assert.Equal(t, "subscriber", entry["component"])
		assert.Equal(t, "dayslot", entry["service"])
	})
}

func TestLogConfigs(t *testing.T) {
	def := DefaultLogConfig()
	assert.Equal(t, LogLevelWarn, def.Level)
	assert.Equal(t, LogFormatText, def.Format)
	assert.Equal(t, ServiceName, def.ServiceName)

	prod := ProductionLogConfig()
	assert.Equal(t, LogLevelInfo, prod.Level)
	assert.Equal(t, LogFormatJSON, prod.Format)
	assert.True(t, prod.AddSource)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected slog.Level
	}{
		{LogLevelDebug, slog.LevelDebug},
		{LogLevelInfo, slog.LevelInfo},
		{LogLevelWarn, slog.LevelWarn},
		{LogLevelError, slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			assert.Equal(t, tt.expected, parseSlogLevel(tt.level))
		})
	}
}

func TestDiscardLogger(t *testing.T) {
	logger := DiscardLogger()

	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
	logger.Error("dropped")
}

func TestCorrelationIDGeneration(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "")

	assert.NotEmpty(t, CorrelationIDFromContext(ctx))
	assert.Empty(t, CorrelationIDFromContext(context.Background()))
	assert.Empty(t, OperationFromContext(context.Background()))
}
