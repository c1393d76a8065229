package config

import (
	"os"
	"strings"

	"github.com/brbranch/notes_mcp/internal/model"
)

// 環境変数名の定数
const (
	EnvTransport = "MCP_NOTES_TRANSPORT"
	EnvLogLevel  = "MCP_NOTES_LOG_LEVEL"
	EnvStore     = "MCP_NOTES_STORE"
	EnvSeedFile  = "MCP_NOTES_SEED_FILE"
)

// ApplyEnvOverrides は環境変数による設定上書きを適用する
// config を直接変更する
func ApplyEnvOverrides(config *model.Config) {
	if v := os.Getenv(EnvTransport); v != "" {
		config.TransportDefaults.DefaultTransport = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		config.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvStore); v != "" {
		config.Store.Type = strings.ToLower(v)
	}
	if v := os.Getenv(EnvSeedFile); v != "" {
		// 環境変数で指定したファイルはconfigのnotesより優先
		config.Seed.File = v
		config.Seed.Notes = nil
	}
}
