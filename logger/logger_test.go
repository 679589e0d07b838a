package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

var parseLevelTestCases = []struct {
	name     string
	input    string
	expected slog.Level
}{
	{name: "Debug", input: "debug", expected: slog.LevelDebug},
	{name: "UpperCase", input: "DEBUG", expected: slog.LevelDebug},
	{name: "Warn", input: "warn", expected: slog.LevelWarn},
	{name: "Warning", input: " warning ", expected: slog.LevelWarn},
	{name: "Error", input: "error", expected: slog.LevelError},
	{name: "Empty", input: "", expected: slog.LevelInfo},
	{name: "Unknown", input: "verbose", expected: slog.LevelInfo},
}

func TestParseLevel(t *testing.T) {
	for _, testCase := range parseLevelTestCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert := require.New(t)
			assert.Equal(testCase.expected, parseLevel(testCase.input))
		})
	}
}

func TestNewWithWriterFiltersBelowLevel(t *testing.T) {
	assert := require.New(t)
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")

	log.Info("not written")
	log.Warn("written", "page", 3)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	assert.Len(lines, 1)

	var entry map[string]any
	assert.NoError(json.Unmarshal(lines[0], &entry))
	assert.Equal("written", entry["msg"])
	assert.Equal(float64(3), entry["page"])
	assert.Contains(entry, "source")
}
