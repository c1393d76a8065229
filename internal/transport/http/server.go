// Package http implements HTTP and WebSocket transport for mcp-notes.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/brbranch/notes_mcp/internal/notify"
)

const (
	// DefaultAddr はAddr未設定時のlisten address
	DefaultAddr = "127.0.0.1:8765"
	// MaxBodySize はリクエストボディの最大サイズ（1MB）
	MaxBodySize = 1024 * 1024
	// readHeaderTimeout はヘッダー読み取りのタイムアウト
	readHeaderTimeout = 10 * time.Second
)

// Handler はJSON-RPCリクエストを処理する
// 通知に対してはnilを返す
type Handler interface {
	Handle(ctx context.Context, requestBytes []byte) []byte
}

// Subscriber はサーバー起点の通知の購読先
type Subscriber interface {
	Subscribe(sink notify.Sink) (string, func())
}

// Config はHTTPサーバー設定
type Config struct {
	Addr        string   // listen address (例: "127.0.0.1:8765")
	CORSOrigins []string // 許可するオリジンリスト、空ならCORS無効
}

// Server はHTTP JSON-RPCサーバー
type Server struct {
	handler     Handler
	config      Config
	subscriber  Subscriber
	srv         *http.Server
	wsOrigins   []string
	sessionDone chan struct{}
}

// Option はサーバーオプション
type Option func(*Server)

// WithSubscriber はWebSocketセッションへ通知を流す購読先を設定
func WithSubscriber(sub Subscriber) Option {
	return func(s *Server) {
		s.subscriber = sub
	}
}

// New は新しいServerを生成
func New(handler Handler, config Config, opts ...Option) *Server {
	if config.Addr == "" {
		config.Addr = DefaultAddr
	}

	s := &Server{
		handler:     handler,
		config:      config,
		wsOrigins:   originPatterns(config.CORSOrigins),
		sessionDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.HandleFunc("/rpc", s.handleRPC)
	r.Get("/ws", s.handleWS)
	r.Get("/healthz", s.handleHealth)

	s.srv = &http.Server{
		Addr:              config.Addr,
		Handler:           r,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return s
}

// Handler はルーティング済みのhttp.Handlerを返す（テスト用）
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run はサーバーを起動し、contextがキャンセルされるまで実行
func (s *Server) Run(ctx context.Context) error {
	// contextキャンセル時にShutdownを呼ぶ
	go func() {
		<-ctx.Done()
		// WebSocketセッションはShutdownの対象外なので先に閉じる
		close(s.sessionDone)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.srv.Shutdown(shutdownCtx)
	}()

	slog.Info("http transport listening", "addr", s.config.Addr)
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		// Graceful shutdownはエラーではない
		return nil
	}
	return err
}

// handleRPC はJSON-RPCリクエストを処理
func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	// CORS処理
	s.handleCORS(w, r)

	// Preflightリクエスト
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	// POSTのみ許可
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Content-Type確認
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Unsupported Media Type", http.StatusUnsupportedMediaType)
		return
	}

	// リクエストボディ読み取り（サイズ制限付き）
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	// JSON-RPC処理
	respBytes := s.handler.Handle(r.Context(), body)

	// 通知は本文なしで受理
	if respBytes == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	// レスポンス送信
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(respBytes)
}

// handleHealth はヘルスチェック
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleCORS はCORSヘッダーを設定
func (s *Server) handleCORS(w http.ResponseWriter, r *http.Request) {
	// CORS無効ならスキップ
	if len(s.config.CORSOrigins) == 0 {
		return
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		return
	}

	// 許可オリジンをチェック
	allowed := false
	for _, allowedOrigin := range s.config.CORSOrigins {
		if origin == allowedOrigin {
			allowed = true
			break
		}
	}

	if !allowed {
		return
	}

	// CORSヘッダーを設定
	w.Header().Set("Access-Control-Allow-Origin", origin)
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Vary", "Origin")
}
