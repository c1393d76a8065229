package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/brbranch/notes_mcp/internal/model"
)

// sqliteMemoryDSN はファイルを持たないSQLiteのDSN
const sqliteMemoryDSN = ":memory:"

// ResolveDataPaths はlog.fileとSQLiteのファイルDSNをpaths.dataDir基準の絶対パスにする
// 解決済みの値に再度適用しても結果は変わらない
func ResolveDataPaths(cfg *model.Config) error {
	dataDir, err := ExpandTilde(cfg.Paths.DataDir)
	if err != nil {
		return fmt.Errorf("failed to resolve data dir: %w", err)
	}
	cfg.Paths.DataDir = dataDir

	logFile, err := ResolveDataPath(dataDir, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("failed to resolve log file: %w", err)
	}
	cfg.Log.File = logFile

	if cfg.Store.Type != model.StoreTypeSQLite || cfg.Store.DSN == nil {
		return nil
	}
	dsn, err := resolveSQLiteDSN(dataDir, *cfg.Store.DSN)
	if err != nil {
		return fmt.Errorf("failed to resolve store dsn: %w", err)
	}
	cfg.Store.DSN = &dsn
	return nil
}

// resolveSQLiteDSN はファイルパス形式のDSNだけを解決し、親ディレクトリを作成する
// ":memory:" と "file:" URI形式はドライバに任せてそのまま返す
func resolveSQLiteDSN(dataDir, dsn string) (string, error) {
	if dsn == "" || dsn == sqliteMemoryDSN || strings.HasPrefix(dsn, "file:") {
		return dsn, nil
	}

	path, query, hasQuery := strings.Cut(dsn, "?")
	resolved, err := ResolveDataPath(dataDir, path)
	if err != nil {
		return "", err
	}
	if err := EnsureDir(filepath.Dir(resolved)); err != nil {
		return "", err
	}
	if hasQuery {
		resolved += "?" + query
	}
	return resolved, nil
}
