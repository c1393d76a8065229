package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tailscale/hujson"

	"github.com/brbranch/notes_mcp/internal/model"
)

// ErrInvalidConfig は設定値が不正な場合のエラー
var ErrInvalidConfig = errors.New("invalid config")

// DefaultHTTPHost / DefaultHTTPPort はHTTP transportのデフォルト
const (
	DefaultHTTPHost = "127.0.0.1"
	DefaultHTTPPort = 8765
)

// Manager は設定の読み書きを管理する
type Manager struct {
	mu         sync.RWMutex
	config     *model.Config
	configPath string
}

// NewManager は新しいManagerを作成する
// configPathが空文字の場合、デフォルトパス（~/.mcp-notes/config.json）を使用
func NewManager(configPath string) (*Manager, error) {
	if configPath == "" {
		defaultPath, err := GetDefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get default config path: %w", err)
		}
		configPath = defaultPath
	}

	dataDir, err := GetDefaultDataDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get default data dir: %w", err)
	}

	return &Manager{
		config:     DefaultConfig(configPath, dataDir),
		configPath: configPath,
	}, nil
}

// Load は設定ファイルを読み込む
// ファイルが存在しない場合はデフォルト設定を使用（エラーなし）
// コメントと末尾カンマを含むJSON（JSONC）を受け付ける
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.configPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// JSONCを標準JSONに変換
	standard, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	// デフォルトの上に重ねる（未指定フィールドはデフォルトのまま）
	config := *m.config
	if err := json.Unmarshal(standard, &config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	// seed.fileは設定ファイル基準で解決
	seedFile, err := ResolvePath(m.configPath, config.Seed.File)
	if err != nil {
		return fmt.Errorf("failed to resolve seed file: %w", err)
	}
	config.Seed.File = seedFile

	// paths.dataDirも設定ファイル基準（デフォルトは絶対パスなので変わらない）
	dataDir, err := ResolvePath(m.configPath, config.Paths.DataDir)
	if err != nil {
		return fmt.Errorf("failed to resolve data dir: %w", err)
	}
	config.Paths.DataDir = dataDir

	m.config = &config
	return nil
}

// Save は設定ファイルを保存する
func (m *Manager) Save() error {
	m.mu.RLock()
	config := m.config
	m.mu.RUnlock()

	if m.configPath == "" {
		return fmt.Errorf("%w: config path is empty", ErrInvalidConfig)
	}

	if err := EnsureDir(filepath.Dir(m.configPath)); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 一時ファイルに書き込み（atomicな保存のため）
	tmpFile := m.configPath + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp config file: %w", err)
	}

	if err := os.Rename(tmpFile, m.configPath); err != nil {
		os.Remove(tmpFile) // クリーンアップ
		return fmt.Errorf("failed to rename config file: %w", err)
	}

	return nil
}

// GetConfig は現在の設定を返す（ロード済みの場合）
func (m *Manager) GetConfig() *model.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// GetConfigPath は設定ファイルパスを返す
func (m *Manager) GetConfigPath() string {
	return m.configPath
}

// NewManagerWithConfig は指定した設定でManagerを作成する
// 保存先はcfg.Paths.ConfigPath
func NewManagerWithConfig(cfg *model.Config) *Manager {
	return &Manager{
		config:     cfg,
		configPath: cfg.Paths.ConfigPath,
	}
}

// DefaultConfig はデフォルト設定を返す
func DefaultConfig(configPath, dataDir string) *model.Config {
	return &model.Config{
		TransportDefaults: model.TransportDefaults{
			DefaultTransport: model.TransportStdio,
		},
		HTTP: model.HTTPConfig{
			Host: DefaultHTTPHost,
			Port: DefaultHTTPPort,
		},
		Store: model.StoreConfig{
			Type: model.StoreTypeMemory,
			DSN:  nil,
		},
		Log: model.LogConfig{
			Level: model.LogLevelInfo,
		},
		Paths: model.PathsConfig{
			ConfigPath: configPath,
			DataDir:    dataDir,
		},
	}
}

// Validate は設定値を検証する
func Validate(cfg *model.Config) error {
	switch cfg.TransportDefaults.DefaultTransport {
	case model.TransportStdio, model.TransportHTTP:
	default:
		return fmt.Errorf("%w: transport must be %q or %q, got %q",
			ErrInvalidConfig, model.TransportStdio, model.TransportHTTP, cfg.TransportDefaults.DefaultTransport)
	}

	if cfg.HTTP.Port < 1 || cfg.HTTP.Port > 65535 {
		return fmt.Errorf("%w: http port must be between 1 and 65535, got %d", ErrInvalidConfig, cfg.HTTP.Port)
	}

	switch cfg.Store.Type {
	case model.StoreTypeMemory, model.StoreTypeSQLite:
	default:
		return fmt.Errorf("%w: unknown store type %q", ErrInvalidConfig, cfg.Store.Type)
	}

	switch cfg.Log.Level {
	case model.LogLevelDebug, model.LogLevelInfo, model.LogLevelWarn, model.LogLevelError:
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, cfg.Log.Level)
	}

	for i, n := range cfg.Seed.Notes {
		if err := n.Validate(); err != nil {
			return fmt.Errorf("%w: seed.notes[%d]: %v", ErrInvalidConfig, i, err)
		}
	}

	return nil
}
