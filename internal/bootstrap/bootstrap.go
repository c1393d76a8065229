// Package bootstrap provides common initialization logic for mcp-notes.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brbranch/notes_mcp/internal/config"
	"github.com/brbranch/notes_mcp/internal/jsonrpc"
	"github.com/brbranch/notes_mcp/internal/model"
	"github.com/brbranch/notes_mcp/internal/notify"
	"github.com/brbranch/notes_mcp/internal/service"
	"github.com/brbranch/notes_mcp/internal/store"
)

// Services は初期化されたサービス群を保持
type Services struct {
	Store           store.Store
	Hub             *notify.Hub
	ResourceService service.ResourceService
	PromptService   service.PromptService
	ToolService     service.ToolService
	Handler         *jsonrpc.Handler
	Config          *model.Config
}

// LoadConfig は設定ファイルを読み込み、環境変数の上書きを適用する
// 検証はCLIフラグ適用後にInitializeで行う
func LoadConfig(configPath string) (*model.Config, error) {
	configManager, err := config.NewManager(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	if err := configManager.Load(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := configManager.GetConfig()
	config.ApplyEnvOverrides(cfg)
	return cfg, nil
}

// WriteConfig は現在の設定をpaths.configPathへ書き出し、書き込んだパスを返す
// データパス解決前に呼ぶと相対パスのまま保存される
func WriteConfig(cfg *model.Config) (string, error) {
	configManager := config.NewManagerWithConfig(cfg)
	if err := configManager.Save(); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return configManager.GetConfigPath(), nil
}

// NewStore は設定に応じたStoreを生成する
func NewStore(ctx context.Context, cfg model.StoreConfig) (store.Store, error) {
	switch cfg.Type {
	case model.StoreTypeSQLite:
		dsn := store.MemoryDSN
		if cfg.DSN != nil && *cfg.DSN != "" {
			dsn = *cfg.DSN
		}
		st, err := store.NewSQLiteStore(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to create sqlite store: %w", err)
		}
		return st, nil
	case model.StoreTypeMemory, "":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: unknown store type %q", config.ErrInvalidConfig, cfg.Type)
	}
}

// Initialize は設定を検証し、Store・通知Hub・各サービスを初期化する
// 返すcleanupでStoreを閉じる
func Initialize(ctx context.Context, cfg *model.Config) (*Services, func(), error) {
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}

	// 1. シード決定（Store生成前に失敗させる）
	seed, err := config.ResolveSeed(cfg.Seed)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve seed: %w", err)
	}

	// 2. Store初期化
	st, err := NewStore(ctx, cfg.Store)
	if err != nil {
		return nil, nil, err
	}

	if err := store.Seed(ctx, st, seed); err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("failed to seed store: %w", err)
	}
	slog.Debug("store seeded", "type", cfg.Store.Type, "notes", len(seed))

	// 3. Services初期化
	hub := notify.NewHub()
	resourceService := service.NewResourceService(st)
	promptService := service.NewPromptService(st)
	toolService := service.NewToolService(st, hub)

	cleanup := func() {
		st.Close()
	}

	return &Services{
		Store:           st,
		Hub:             hub,
		ResourceService: resourceService,
		PromptService:   promptService,
		ToolService:     toolService,
		Handler:         jsonrpc.New(resourceService, promptService, toolService),
		Config:          cfg,
	}, cleanup, nil
}
