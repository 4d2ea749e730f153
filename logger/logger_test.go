package logger

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]LogLevel{
		"debug":   LogLevelDebug,
		"INFO":    LogLevelInfo,
		"warning": LogLevelWarn,
		"":        LogLevelInfo,
		"none":    LogLevelNone,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("trace")
	assert.Error(t, err)
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LogLevelWarn, &buf)
	l.Info("hidden")
	l.Warn("shown", "enum", "Status")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "enum=Status")
}

func TestNoneDiscards(t *testing.T) {
	var buf bytes.Buffer
	l := New(LogLevelNone, &buf)
	l.Error("nothing")
	assert.Empty(t, buf.String())
	assert.False(t, l.Enabled(t.Context(), slog.LevelError))
}

func TestSetupWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enummessage.log")
	l, closers, err := Setup("debug", path)
	require.NoError(t, err)
	require.Len(t, closers, 1)
	l.Debug("to file")
	for _, c := range closers {
		require.NoError(t, c.Close())
	}
	assert.FileExists(t, path)

	_, _, err = Setup("loud", "")
	assert.Error(t, err)
}
