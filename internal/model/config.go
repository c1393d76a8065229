package model

// Config はサーバー全体の設定を表す
type Config struct {
	TransportDefaults TransportDefaults `json:"transportDefaults"`
	HTTP              HTTPConfig        `json:"http"`
	Store             StoreConfig       `json:"store"`
	Seed              SeedConfig        `json:"seed"`
	Log               LogConfig         `json:"log"`
	Paths             PathsConfig       `json:"paths"`
}

// TransportDefaults はtransportのデフォルト設定
type TransportDefaults struct {
	DefaultTransport string `json:"defaultTransport"` // "stdio" | "http"
}

// HTTPConfig はHTTP transportの設定
type HTTPConfig struct {
	Host        string   `json:"host"`
	Port        int      `json:"port"`
	CORSOrigins []string `json:"corsOrigins,omitempty"` // 空ならCORS無効
}

// StoreConfig はnote store設定
type StoreConfig struct {
	Type string  `json:"type"`          // "memory" | "sqlite"
	DSN  *string `json:"dsn,omitempty"` // nullable（SQLite用、未指定ならプロセス内メモリDB）
}

// SeedConfig は起動時に投入するノートの設定
// Notesが優先され、空の場合のみFileを読む。両方空ならデフォルトシード
type SeedConfig struct {
	Notes []Note `json:"notes,omitempty"`
	File  string `json:"file,omitempty"` // YAMLファイルパス
}

// LogConfig はログ設定
type LogConfig struct {
	Level string `json:"level"`          // "debug" | "info" | "warn" | "error"
	File  string `json:"file,omitempty"` // 指定時はstderrに加えてファイルにも出力
}

// PathsConfig はファイルパス設定
type PathsConfig struct {
	ConfigPath string `json:"-"`       // 読み込んだ（書き出す）設定ファイルパス
	DataDir    string `json:"dataDir"` // 相対のlog.fileとSQLiteファイルの基準ディレクトリ
}

// Transport定数
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Store Type定数
const (
	StoreTypeMemory = "memory"
	StoreTypeSQLite = "sqlite"
)

// Log Level定数
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)
