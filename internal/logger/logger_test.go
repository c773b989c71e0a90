package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 这些测试修改包级 logger，不能并行

func TestSetOutput_Fields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	WithField("session", "abc").Info("reconciled")
	LogError("request failed: %s", "timeout")

	out := buf.String()
	assert.Contains(t, out, "session=abc")
	assert.Contains(t, out, "msg=reconciled")
	assert.Contains(t, out, "level=error")
	assert.Contains(t, out, "request failed: timeout")
}

func TestInitDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitDir(dir))
	defer Close()

	assert.Equal(t, filepath.Join(dir, "debug.log"), GetLogPath())

	LogInfo("hello %d", 42)
	data, err := os.ReadFile(GetLogPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "Logger initialized")
	assert.Contains(t, string(data), "hello 42")
}

func TestLogPanic(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	LogPanic("boom")
	assert.Contains(t, buf.String(), "panic: boom")
	assert.Contains(t, buf.String(), "stack=")
}
