package logging

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"2", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"1", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"0", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"bogus", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.in))
		})
	}
}

func TestNewCLILogger(t *testing.T) {
	logger := NewCLILogger("info")
	require.NotNil(t, logger)
	logger.Info("test message")
}

func TestCLIHandler_InfoMessage(t *testing.T) {
	var buf bytes.Buffer
	handler := NewCLIHandler(&buf, slog.LevelInfo)
	logger := slog.New(handler)

	logger.Info("hello", "key", "val")

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "key=val")
	assert.Contains(t, out, colorGreen)
}

func TestCLIHandler_ErrorColor(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCLIHandler(&buf, slog.LevelInfo))

	logger.Error("boom")

	assert.Contains(t, buf.String(), colorRed)
}

func TestCLIHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCLIHandler(&buf, slog.LevelWarn))

	logger.Debug("hidden")
	logger.Info("also hidden")

	assert.Empty(t, buf.String())
}

func TestCLIHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCLIHandler(&buf, slog.LevelInfo)).WithGroup("score")

	logger.Info("done")

	assert.True(t, strings.Contains(buf.String(), "[score]"))
}

func TestSetDefault_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	SetDefault("debug", path)

	slog.Debug("file message")

	// restore the colorized default for other tests
	SetDefault("warn", "")
}
