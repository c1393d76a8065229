package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// wsWriteTimeout は1メッセージの書き込みタイムアウト
const wsWriteTimeout = 5 * time.Second

// originPatterns はCORS許可オリジン（URL）をWebSocketのホストパターンに変換
func originPatterns(origins []string) []string {
	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		u, err := url.Parse(o)
		if err != nil || u.Host == "" {
			continue
		}
		patterns = append(patterns, u.Host)
	}
	return patterns
}

// handleWS はWebSocketセッションを処理する
// 受信した各メッセージをJSON-RPCリクエストとして順に処理し、
// サーバー起点の通知も同じ接続へ送る
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.wsOrigins,
	})
	if err != nil {
		slog.Warn("ws accept", "error", err)
		return
	}
	defer conn.CloseNow()

	sessionID := uuid.NewString()
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// サーバー停止時にセッションを終了
	go func() {
		select {
		case <-s.sessionDone:
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	// 通知の購読はreadより前に行う（最初の応答が返った時点で購読済み）
	if s.subscriber != nil {
		_, unsubscribe := s.subscriber.Subscribe(func(_ context.Context, msg []byte) error {
			writeCtx, cancelWrite := context.WithTimeout(ctx, wsWriteTimeout)
			defer cancelWrite()
			return conn.Write(writeCtx, websocket.MessageText, msg)
		})
		defer unsubscribe()
	}

	slog.Info("ws session opened", "session", sessionID)
	defer slog.Info("ws session closed", "session", sessionID)

	conn.SetReadLimit(MaxBodySize)
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if status := websocket.CloseStatus(err); status != -1 {
				slog.Debug("ws read closed", "session", sessionID, "status", status)
			} else {
				slog.Debug("ws read error", "session", sessionID, "error", err)
			}
			return
		}
		if typ != websocket.MessageText {
			conn.Close(websocket.StatusUnsupportedData, "text frames only")
			return
		}

		resp := s.handler.Handle(ctx, data)
		if resp == nil {
			continue
		}

		writeCtx, cancelWrite := context.WithTimeout(ctx, wsWriteTimeout)
		err = conn.Write(writeCtx, websocket.MessageText, resp)
		cancelWrite()
		if err != nil {
			slog.Debug("ws write error", "session", sessionID, "error", err)
			return
		}
	}
}
