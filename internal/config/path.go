package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultConfigDir はデフォルトの設定ディレクトリ名
	DefaultConfigDir = ".mcp-notes"
	// DefaultConfigFile はデフォルトの設定ファイル名
	DefaultConfigFile = "config.json"
	// DefaultDataSubDir はデフォルトのデータサブディレクトリ名
	DefaultDataSubDir = "data"
)

// ExpandTilde は"~"をホームディレクトリに展開する
// "~/" で始まる場合のみ展開し、それ以外はそのまま返す
func ExpandTilde(path string) (string, error) {
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}

	// それ以外（"~user" など）はそのまま返す
	return path, nil
}

// GetDefaultConfigPath はデフォルトの設定ファイルパスを返す
// ~/.mcp-notes/config.json
func GetDefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile), nil
}

// GetDefaultDataDir はデフォルトのデータディレクトリを返す
// ~/.mcp-notes/data
func GetDefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DefaultConfigDir, DefaultDataSubDir), nil
}

// ResolvePath は設定ファイル内の相対パスを設定ファイルのディレクトリ基準で解決する
// "~" は展開し、絶対パスはそのまま返す
func ResolvePath(configPath, path string) (string, error) {
	if path == "" {
		return "", nil
	}
	expanded, err := ExpandTilde(path)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(expanded) || configPath == "" {
		return expanded, nil
	}
	return filepath.Join(filepath.Dir(configPath), expanded), nil
}

// ResolveDataPath はデータファイルの相対パスをdataDir基準で解決する
// "~" は展開し、絶対パスとdataDir未設定の場合はそのまま返す
func ResolveDataPath(dataDir, path string) (string, error) {
	if path == "" {
		return "", nil
	}
	expanded, err := ExpandTilde(path)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(expanded) || dataDir == "" {
		return expanded, nil
	}
	dir, err := ExpandTilde(dataDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, expanded), nil
}

// EnsureDir はディレクトリが存在することを確認し、なければ作成する
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
