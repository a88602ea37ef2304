package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		entries = append(entries, m)
	}

	return entries
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestValidLevel(t *testing.T) {
	assert.True(t, ValidLevel("debug"))
	assert.True(t, ValidLevel("ERROR"))
	assert.False(t, ValidLevel("trace"))
	assert.False(t, ValidLevel(""))
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, LevelInfo, FormatJSON)

	l.Debug("hidden")
	l.WithCommand("fit").WithSeries("terp").Info("fitted", "slope", -0.5)
	l.Warn("careful")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)

	assert.Equal(t, "fitted", entries[0]["msg"])
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "fit", entries[0]["command"])
	assert.Equal(t, "terp", entries[0]["series"])
	assert.InDelta(t, -0.5, entries[0]["slope"], 1e-12)

	assert.Equal(t, "careful", entries[1]["msg"])
	assert.NotContains(t, entries[1], "command", "parent logger must not inherit child attributes")
}

func TestLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, LevelDebug, FormatText)

	l.With("path", "chart.svg").Debug("wrote chart")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, `msg="wrote chart"`)
	assert.Contains(t, out, "path=chart.svg")
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, LevelDebug, FormatJSON)

	assert.Same(t, l, l.With())

	l.With("a", 1, 2, "skipped", "b").Info("odd args")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.InDelta(t, 1, entries[0]["a"], 0)
	assert.NotContains(t, entries[0], "b")
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, LevelError, FormatJSON)

	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "e", entries[0]["msg"])
}

func TestNopLogger(t *testing.T) {
	l := NopLogger()
	require.NotNil(t, l)
	l.Error("discarded")
}
