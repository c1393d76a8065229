// Package logging builds the process logger for mcp-notes.
//
// Records always go to stderr because stdout carries the stdio transport.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/brbranch/notes_mcp/internal/config"
	"github.com/brbranch/notes_mcp/internal/model"
)

// ParseLevel はログレベル文字列をslog.Levelに変換する
// 未知の値はinfo
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case model.LogLevelDebug:
		return slog.LevelDebug
	case model.LogLevelWarn:
		return slog.LevelWarn
	case model.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New はstderr（とlog.file指定時はファイル）へ書くロガーを作る
// debugがtrueならレベル設定より優先してdebugにする
// 返すcleanupでログファイルを閉じる
func New(cfg model.LogConfig, debug bool) (*slog.Logger, func(), error) {
	return newLogger(os.Stderr, cfg, debug)
}

func newLogger(stderr io.Writer, cfg model.LogConfig, debug bool) (*slog.Logger, func(), error) {
	level := ParseLevel(cfg.Level)
	if debug {
		level = slog.LevelDebug
	}

	var out io.Writer = stderr
	cleanup := func() {}

	if cfg.File != "" {
		path, err := config.ExpandTilde(cfg.File)
		if err != nil {
			return nil, nil, err
		}
		if err := config.EnsureDir(filepath.Dir(path)); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = io.MultiWriter(stderr, f)
		cleanup = func() { f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	return logger, cleanup, nil
}
