// Package notify fans out server-initiated JSON-RPC notifications to every
// connected transport session.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/brbranch/notes_mcp/internal/model"
)

// Sink は1セッション分の送信先。msgは改行を含まないJSON
type Sink func(ctx context.Context, msg []byte) error

// Hub は購読中のSinkへ通知を配信する
type Hub struct {
	mu    sync.RWMutex
	sinks map[string]Sink
}

// NewHub は新しいHubを生成
func NewHub() *Hub {
	return &Hub{
		sinks: make(map[string]Sink),
	}
}

// Subscribe はSinkを登録し、購読IDと解除関数を返す
func (h *Hub) Subscribe(sink Sink) (string, func()) {
	id := uuid.NewString()

	h.mu.Lock()
	h.sinks[id] = sink
	n := len(h.sinks)
	h.mu.Unlock()

	slog.Debug("notification sink subscribed", "id", id, "sinks", n)

	var once sync.Once
	return id, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.sinks, id)
			n := len(h.sinks)
			h.mu.Unlock()
			slog.Debug("notification sink unsubscribed", "id", id, "sinks", n)
		})
	}
}

// Len は購読中のSink数を返す
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sinks)
}

// Publish は通知をエンコードして全Sinkへ送る
// 一部のSinkが失敗しても残りには送り、失敗はまとめて返す
func (h *Hub) Publish(ctx context.Context, method string, params any) error {
	msg, err := json.Marshal(model.NewNotification(method, params))
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	h.mu.RLock()
	targets := make(map[string]Sink, len(h.sinks))
	for id, s := range h.sinks {
		targets[id] = s
	}
	h.mu.RUnlock()

	var errs []error
	for id, sink := range targets {
		if err := sink(ctx, msg); err != nil {
			slog.Warn("failed to deliver notification", "id", id, "method", method, "error", err)
			errs = append(errs, fmt.Errorf("sink %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// NotifyResourceListChanged は notifications/resources/list_changed を配信する
func (h *Hub) NotifyResourceListChanged(ctx context.Context) error {
	return h.Publish(ctx, model.NotificationResourceListChanged, nil)
}
