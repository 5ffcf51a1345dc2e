package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/hunt-tracker/internal/infrastructure/config"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC)
}

func TestConsoleHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, Options{Level: slog.LevelDebug, Now: fixedNow}))

	logger.Info("parsed teams", "count", 3, "path", "C:/Program Files/x.xml")

	assert.Equal(t, "[09:26, INFO] parsed teams count=3 path=\"C:/Program Files/x.xml\"\n", stripTime(buf.String()))
}

func TestConsoleHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, Options{Level: slog.LevelWarn, Now: fixedNow}))

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "WARN] shown")
}

func TestConsoleHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, Options{Now: fixedNow})).
		With("component", "watch").
		WithGroup("match")

	logger.Info("recorded", "hash", "abc", slog.Group("teams", "count", 2))

	out := buf.String()
	assert.Contains(t, out, " component=watch")
	assert.Contains(t, out, " match.hash=abc")
	assert.Contains(t, out, " match.teams.count=2")
}

func TestConsoleHandler_Color(t *testing.T) {
	var plain, colored bytes.Buffer
	slog.New(NewConsoleHandler(&plain, Options{Now: fixedNow})).Error("boom")
	slog.New(NewConsoleHandler(&colored, Options{Color: true, Now: fixedNow})).Error("boom")

	assert.NotContains(t, plain.String(), "\x1b[")
	assert.Contains(t, colored.String(), "\x1b[")

	h := NewConsoleHandler(&plain, Options{})
	assert.Equal(t, "Bob", h.Paint("Bob", ColorBad))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: "INFO", expected: slog.LevelInfo},
		{input: "", expected: slog.LevelInfo},
		{input: "warning", expected: slog.LevelWarn},
		{input: "error", expected: slog.LevelError},
		{input: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSetup(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger, handler, err := Setup(config.LogConfig{Level: "warn"}, &buf)
	require.NoError(t, err)
	require.NotNil(t, handler)

	logger.Info("quiet")
	slog.Warn("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")

	_, _, err = Setup(config.LogConfig{Level: "nope"}, &buf)
	require.Error(t, err)
}

// stripTime replaces the record timestamp with the fixed test clock so the
// assertion does not depend on when the test runs.
func stripTime(s string) string {
	if len(s) < 7 || s[0] != '[' {
		return s
	}
	return "[" + fixedNow().Format(TimeFormat) + s[6:]
}
