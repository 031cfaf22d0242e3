package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(level zapcore.Level) (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewZapLoggerFrom(zap.New(core)), logs
}

func TestZapLogger_Levels(t *testing.T) {
	l, logs := observed(zapcore.DebugLevel)
	l.Debug("d")
	l.Info("i", StringField("campaign", "abc"))
	l.Warn("w")
	l.Error("e", ErrorField(assert.AnError))

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, "abc", entries[1].ContextMap()["campaign"])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, assert.AnError.Error(), entries[3].ContextMap()["error"])
}

func TestZapLogger_WithFields(t *testing.T) {
	l, logs := observed(zapcore.InfoLevel)
	child := l.WithFields(StringField("run_id", "r1"))
	child.Info("entry", IntField("worth", 3))

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "r1", ctx["run_id"])
	assert.EqualValues(t, 3, ctx["worth"])
}

func TestZapLogger_APILogsAtDebug(t *testing.T) {
	l, logs := observed(zapcore.InfoLevel)
	l.LogAPIRequest(APIRequestLog{RequestID: "x"})
	assert.Equal(t, 0, logs.Len())

	l, logs = observed(zapcore.DebugLevel)
	l.LogAPIRequest(APIRequestLog{RequestID: "x", Method: "POST"})
	l.LogAPIResponse(APIResponseLog{RequestID: "x", StatusCode: 200})
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "api request", logs.All()[0].Message)
	assert.EqualValues(t, 200, logs.All()[1].ContextMap()["status_code"])
}

func TestNewZapLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.log")
	l, err := NewZapLogger(LoggerConfig{
		OutputPath: path,
		Level:      LevelInfo,
		Fields:     map[string]any{"app": "sweepbot"},
	})
	require.NoError(t, err)
	l.Debug("hidden")
	l.Info("visible")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"visible"`)
	assert.Contains(t, string(data), `"app":"sweepbot"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNewZapLogger_UnknownFormat(t *testing.T) {
	_, err := NewZapLogger(LoggerConfig{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log format")
}
