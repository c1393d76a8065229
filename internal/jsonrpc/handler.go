// Package jsonrpc implements JSON-RPC 2.0 handlers for mcp-notes.
package jsonrpc

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/brbranch/notes_mcp/internal/model"
	"github.com/brbranch/notes_mcp/internal/service"
)

// Handler はJSON-RPCリクエストを処理する
type Handler struct {
	resourceService service.ResourceService
	promptService   service.PromptService
	toolService     service.ToolService
}

// New は新しいHandlerを生成
func New(
	resourceService service.ResourceService,
	promptService service.PromptService,
	toolService service.ToolService,
) *Handler {
	return &Handler{
		resourceService: resourceService,
		promptService:   promptService,
		toolService:     toolService,
	}
}

// Handle はJSON-RPCリクエストをパースしてディスパッチ
// 戻り値は *model.Response または *model.ErrorResponse のJSON bytes
// 通知（idなし）の場合はnilを返す（レスポンスを書かない）
func (h *Handler) Handle(ctx context.Context, requestBytes []byte) []byte {
	// 1. パース
	var req model.Request
	if err := json.Unmarshal(requestBytes, &req); err != nil {
		return h.encodeError(model.NewParseError(err.Error()))
	}

	// 2. バージョン確認
	if req.JSONRPC != "2.0" {
		return h.encodeError(model.NewInvalidRequest(req.ID, "jsonrpc must be 2.0"))
	}

	// 3. method確認
	if req.Method == "" {
		return h.encodeError(model.NewInvalidRequest(req.ID, "method is required"))
	}

	// 4. 通知はレスポンスなし
	if req.IsNotification() {
		h.handleNotification(ctx, req.Method)
		return nil
	}

	// 5. ディスパッチ
	slog.Debug("rpc request", "method", req.Method, "id", req.ID)
	result, err := h.dispatch(ctx, req.Method, req.Params)
	if err != nil {
		slog.Debug("rpc request failed", "method", req.Method, "id", req.ID, "error", err)
		return h.encodeError(h.mapError(req.ID, err))
	}

	// 6. 成功レスポンス
	return h.encodeResponse(model.NewResponse(req.ID, result))
}

// dispatch はメソッドに応じて適切なハンドラーを呼び出す
func (h *Handler) dispatch(ctx context.Context, method string, params any) (any, error) {
	switch method {
	case "initialize":
		return h.handleInitialize(ctx, params)
	case "ping":
		return struct{}{}, nil
	case "resources/list":
		return h.handleResourcesList(ctx)
	case "resources/read":
		return h.handleResourcesRead(ctx, params)
	case "prompts/list":
		return h.handlePromptsList(ctx)
	case "prompts/get":
		return h.handlePromptsGet(ctx, params)
	case "tools/list":
		return h.handleToolsList(ctx)
	case "tools/call":
		return h.handleToolsCall(ctx, params)
	default:
		return nil, &methodNotFoundError{method: method}
	}
}

// handleNotification はクライアントからの通知を処理（応答しない）
func (h *Handler) handleNotification(ctx context.Context, method string) {
	switch method {
	case model.NotificationInitialized:
		slog.Info("client initialized")
	default:
		slog.Debug("notification ignored", "method", method)
	}
}

// mapError はサービスエラーをJSON-RPCエラーに変換
func (h *Handler) mapError(id any, err error) *model.ErrorResponse {
	// method not found
	var mnfErr *methodNotFoundError
	if errors.As(err, &mnfErr) {
		return model.NewMethodNotFound(id, mnfErr.method)
	}

	// invalid params
	var ipErr *invalidParamsError
	if errors.As(err, &ipErr) ||
		errors.Is(err, service.ErrInvalidURI) ||
		errors.Is(err, service.ErrUnknownPrompt) {
		return model.NewInvalidParams(id, err.Error())
	}

	// not found
	if errors.Is(err, service.ErrNoteNotFound) {
		return model.NewResourceNotFound(id, err.Error())
	}

	// internal error
	return model.NewInternalError(id, err.Error())
}

func (h *Handler) encodeResponse(resp *model.Response) []byte {
	b, _ := json.Marshal(resp)
	return b
}

func (h *Handler) encodeError(resp *model.ErrorResponse) []byte {
	b, _ := json.Marshal(resp)
	return b
}

// methodNotFoundError はメソッド未検出エラー
type methodNotFoundError struct {
	method string
}

func (e *methodNotFoundError) Error() string {
	return "method not found: " + e.method
}

// invalidParamsError はパラメータ形式エラー
type invalidParamsError struct {
	reason string
}

func (e *invalidParamsError) Error() string {
	return "invalid params: " + e.reason
}

// mapParams はanyをターゲット構造体にマッピング
func mapParams(params any, target any) error {
	if params == nil {
		return nil
	}

	// anyをJSONに変換してから構造体にアンマーシャル
	b, err := json.Marshal(params)
	if err != nil {
		return &invalidParamsError{reason: err.Error()}
	}
	if err := json.Unmarshal(b, target); err != nil {
		return &invalidParamsError{reason: err.Error()}
	}
	return nil
}
