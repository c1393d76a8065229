package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brbranch/notes_mcp/internal/model"
	"github.com/brbranch/notes_mcp/internal/store"
)

// ツール名
const (
	ToolAddNote = "add-note"
)

var addNoteTool = model.Tool{
	Name:        ToolAddNote,
	Description: "Add a new note",
	InputSchema: model.JSONSchema{
		Type: "object",
		Properties: map[string]model.JSONSchema{
			"name":    {Type: "string"},
			"content": {Type: "string"},
		},
		Required:             []string{"name", "content"},
		AdditionalProperties: boolPtr(false),
	},
}

func boolPtr(b bool) *bool {
	return &b
}

// toolService はToolServiceの実装
type toolService struct {
	store    store.Store
	notifier ChangeNotifier
}

// NewToolService はToolServiceの新しいインスタンスを作成
// notifierがnilの場合は通知しない
func NewToolService(s store.Store, notifier ChangeNotifier) ToolService {
	return &toolService{
		store:    s,
		notifier: notifier,
	}
}

// ListTools は利用可能なツールを返す
func (s *toolService) ListTools(ctx context.Context) ([]model.Tool, error) {
	return []model.Tool{addNoteTool}, nil
}

// CallTool は名前に応じたツールを実行する
func (s *toolService) CallTool(ctx context.Context, name string, args map[string]any) ([]model.ContentItem, error) {
	switch name {
	case ToolAddNote:
		return s.addNote(ctx, args)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
}

// addNote はノートを追加（既存名なら上書き）し、変更を通知する
func (s *toolService) addNote(ctx context.Context, args map[string]any) ([]model.ContentItem, error) {
	if args == nil {
		return nil, fmt.Errorf("%w: arguments are required", ErrInvalidArguments)
	}
	// スキーマはadditionalProperties: false
	for key := range args {
		if _, ok := addNoteTool.InputSchema.Properties[key]; !ok {
			return nil, fmt.Errorf("%w: unknown argument %q", ErrInvalidArguments, key)
		}
	}

	name, err := stringArg(args, "name")
	if err != nil {
		return nil, err
	}
	content, err := stringArg(args, "content")
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidArguments)
	}

	note := &model.Note{Name: name, Content: content}
	if err := s.store.Set(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to save note: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyResourceListChanged(ctx); err != nil {
			// 保存は完了しているので呼び出し自体は成功扱い
			slog.Warn("failed to send resource list changed notification", "note", name, "error", err)
		}
	}

	slog.Debug("note added", "note", note.String())

	return []model.ContentItem{
		model.NewTextContent(fmt.Sprintf("Added note '%s' with content: %s", name, content)),
	}, nil
}

// stringArg は必須の文字列引数を取り出す
func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%w: missing required argument %q", ErrInvalidArguments, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: argument %q must be a string", ErrInvalidArguments, key)
	}
	return s, nil
}
