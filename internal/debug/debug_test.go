package debug

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSilentByDefault(t *testing.T) {
	SetOutput(nil)
	assert.False(t, Enabled())

	// Must not panic with no writer installed.
	Printf("dropped %d", 1)
	Log("TEST", "dropped")
}

func TestSetOutputCaptures(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	assert.True(t, Enabled())

	Printf("hello %s", "world")
	assert.Contains(t, buf.String(), "hello world")
}

func TestLogComponentTag(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	LogProfiles("loaded %d", 3)
	LogAnalyze("strategy %s", "full")
	LogPatterns("failed %q", "(")

	out := buf.String()
	assert.Contains(t, out, "[PROFILES] loaded 3")
	assert.Contains(t, out, "[ANALYZE] strategy full")
	assert.Contains(t, out, `[PATTERNS] failed "("`)
}

func TestInitLogFile(t *testing.T) {
	path, err := InitLogFile()
	require.NoError(t, err)
	defer os.Remove(path)

	assert.True(t, strings.HasSuffix(path, ".log"))
	Printf("file line")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file line")

	assert.False(t, Enabled(), "closing the log file disables output")
	assert.NoError(t, Close(), "double close is a no-op")
}
