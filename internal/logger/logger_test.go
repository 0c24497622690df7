package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestVerboseToggle tests enabling and disabling verbose mode
func TestVerboseToggle(t *testing.T) {
	defer SetVerbose(false)

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

// TestTraceLevels_SilentByDefault tests that gated levels stay quiet
// when verbose is off
func TestTraceLevels_SilentByDefault(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	defer SetOutput(os.Stderr)

	SetVerbose(false)
	Debug("hidden %d", 1)
	Info("hidden")
	Section("hidden")

	assert.Empty(t, buf.String())
}

// TestWarn_NotGatedOnVerbose tests that warnings surface regardless
func TestWarn_NotGatedOnVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	defer SetOutput(os.Stderr)

	SetVerbose(false)
	Warn("page audit failed: %s", "timeout")

	assert.Contains(t, buf.String(), "[WARN] page audit failed: timeout")
}

// TestLevels_WriteWhenVerbose tests log output formatting
func TestLevels_WriteWhenVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	defer SetOutput(os.Stderr)
	SetVerbose(true)
	defer SetVerbose(false)

	Debug("d %d", 1)
	Info("i %s", "x")
	Warn("w")
	Section("Ranking")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] d 1")
	assert.Contains(t, out, "[INFO] i x")
	assert.Contains(t, out, "[WARN] w")
	assert.Contains(t, out, "--- Ranking ---")
}
