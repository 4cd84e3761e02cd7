package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treeside/internal/errors"
)

func TestBasicLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Info("info message")
	assert.Contains(t, buf.String(), "info")
	assert.Contains(t, buf.String(), "info message")
	buf.Reset()

	l.Warn("warn message")
	assert.Contains(t, buf.String(), "warn message")
	buf.Reset()

	l.Error("error message")
	assert.Contains(t, buf.String(), "error message")
	buf.Reset()

	l.Infof("formatted %s", "message")
	assert.Contains(t, buf.String(), "formatted message")
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := logger
	logger = NewLogger(WithOutput(&buf))
	defer func() { logger = originalLogger }()

	// Debug off: nothing logged
	SetDebug(false)
	Debug("debug message")
	assert.Empty(t, buf.String())

	// Debug on
	SetDebug(true)
	Debug("debug %s", "message")
	assert.Contains(t, buf.String(), "debug message")

	SetDebug(false)
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.With(F("key1", "value1"), F("key2", 123)).Info("structured message")
	output := buf.String()
	assert.Contains(t, output, "structured message")
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
}

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithJSON())

	l.With(F("dir", "/tmp")).Info("json message")

	var logEntry map[string]interface{}
	err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &logEntry)
	require.NoError(t, err)
	assert.Equal(t, "json message", logEntry["msg"])
	assert.Equal(t, "/tmp", logEntry["dir"])
}

func TestLogWithError(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := logger
	logger = NewLogger(WithOutput(&buf))
	defer func() { logger = originalLogger }()

	// Nil error should not panic
	LogWithError(nil).Error("nil error test")
	assert.Contains(t, buf.String(), "nil error test")
	buf.Reset()

	// AccessError carries its path and kind
	accessErr := errors.NewAccessError("cannot list directory", "/locked", errors.AccessDenied, nil)
	LogWithError(accessErr).Error("access error occurred")
	output := buf.String()
	assert.Contains(t, output, "access error occurred")
	assert.Contains(t, output, "path=/locked")
	assert.Contains(t, output, "error_kind=2")
	buf.Reset()

	// SpawnError carries the program name
	spawnErr := errors.NewSpawnError("program not found", "glow", errors.ProgramNotFound, nil)
	LogError(spawnErr, "spawn failed")
	output = buf.String()
	assert.Contains(t, output, "spawn failed")
	assert.Contains(t, output, "program=glow")
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "treeside.log")

	originalLogger := logger
	logger = NewLogger(WithFile(path))
	defer func() {
		Close()
		logger = originalLogger
	}()

	Info("file test message")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "file test message")
}
