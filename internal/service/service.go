// Package service implements the MCP resource, prompt and tool providers
// on top of a note store.
package service

import (
	"context"
	"errors"

	"github.com/brbranch/notes_mcp/internal/model"
)

// ResourceService はノートをリソースとして列挙・読み出しする
type ResourceService interface {
	ListResources(ctx context.Context) ([]model.Resource, error)
	ReadResource(ctx context.Context, uri string) (string, error)
}

// PromptService はプロンプトテンプレートを列挙・生成する
type PromptService interface {
	ListPrompts(ctx context.Context) ([]model.Prompt, error)
	GetPrompt(ctx context.Context, name string, args map[string]string) (*GetPromptResponse, error)
}

// ToolService はツールを列挙・実行する
type ToolService interface {
	ListTools(ctx context.Context) ([]model.Tool, error)
	CallTool(ctx context.Context, name string, args map[string]any) ([]model.ContentItem, error)
}

// ChangeNotifier はリソース一覧の変更をホスト側へ伝える
// 送信は一方向で、相手の受信確認は待たない
type ChangeNotifier interface {
	NotifyResourceListChanged(ctx context.Context) error
}

// NotifierFunc は関数をChangeNotifierとして扱うアダプタ
type NotifierFunc func(ctx context.Context) error

// NotifyResourceListChanged はfを呼び出す
func (f NotifierFunc) NotifyResourceListChanged(ctx context.Context) error {
	return f(ctx)
}

// エラー定義
var (
	ErrNoteNotFound     = errors.New("note not found")
	ErrInvalidURI       = errors.New("invalid note URI")
	ErrUnknownPrompt    = errors.New("unknown prompt")
	ErrUnknownTool      = errors.New("unknown tool")
	ErrInvalidArguments = errors.New("invalid arguments")
)
