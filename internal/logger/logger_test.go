package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit_ValidLevels(t *testing.T) {
	t.Setenv(EnvVar, "")
	for _, level := range []string{"debug", "info", "warn", "error"} {
		assert.NoError(t, Init(level), level)
	}
	Replace(zap.NewNop())
}

func TestInit_InvalidLevel(t *testing.T) {
	t.Setenv(EnvVar, "")
	assert.Error(t, Init("loud"))
}

func TestInit_EnvOverridesFlag(t *testing.T) {
	t.Setenv(EnvVar, "nonsense")
	assert.Error(t, Init("info"), "an unparsable env value should surface even with a valid flag")

	t.Setenv(EnvVar, "debug")
	assert.NoError(t, Init("info"))
	Replace(zap.NewNop())
}

func TestReplace_CapturesOutput(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	Replace(zap.New(core))
	defer Replace(zap.NewNop())

	Debug("debug message")
	Info("info message", zap.String("key", "value"))
	Warn("warn message")
	Error("error message")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "info message", entries[1].Message)
	assert.Equal(t, "value", entries[1].ContextMap()["key"])
}
