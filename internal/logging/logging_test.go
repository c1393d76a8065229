package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brbranch/notes_mcp/internal/model"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := newLogger(&buf, model.LogConfig{Level: "warn"}, false)
	require.NoError(t, err)
	defer cleanup()

	logger.Info("hidden")
	logger.Warn("shown", "note", "note1")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "note=note1")
}

func TestNewLogger_DebugFlagWins(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := newLogger(&buf, model.LogConfig{Level: "error"}, true)
	require.NoError(t, err)
	defer cleanup()

	logger.Debug("details")
	assert.Contains(t, buf.String(), "msg=details")
}

func TestNewLogger_FileTee(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "server.log")

	logger, cleanup, err := newLogger(&buf, model.LogConfig{Level: "info", File: path}, false)
	require.NoError(t, err)

	logger.Info("tee")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=tee")
	assert.Contains(t, buf.String(), "msg=tee")
}

func TestNewLogger_FileError(t *testing.T) {
	// ディレクトリはファイルとして開けない
	dir := t.TempDir()
	_, _, err := newLogger(&bytes.Buffer{}, model.LogConfig{File: dir}, false)
	assert.Error(t, err)
}
