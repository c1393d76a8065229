package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/brbranch/notes_mcp/internal/model"
	"github.com/brbranch/notes_mcp/internal/store"
)

// プロンプト名
const (
	PromptSummarizeNotes = "summarize-notes"
)

// StyleDetailed は詳細な要約を求めるstyle値
const StyleDetailed = "detailed"

var summarizeNotesPrompt = model.Prompt{
	Name:        PromptSummarizeNotes,
	Description: "Creates a summary of all notes",
	Arguments: []model.PromptArgument{
		{
			Name:        "style",
			Description: "Style of the summary (brief/detailed)",
			Required:    false,
		},
	},
}

// GetPromptResponse はプロンプト生成結果
type GetPromptResponse struct {
	Description string
	Messages    []model.PromptMessage
}

// promptService はPromptServiceの実装
type promptService struct {
	store store.Store
}

// NewPromptService はPromptServiceの新しいインスタンスを作成
func NewPromptService(s store.Store) PromptService {
	return &promptService{store: s}
}

// ListPrompts は利用可能なプロンプトを返す
func (s *promptService) ListPrompts(ctx context.Context) ([]model.Prompt, error) {
	return []model.Prompt{summarizeNotesPrompt}, nil
}

// GetPrompt は名前に応じたプロンプトを生成する
func (s *promptService) GetPrompt(ctx context.Context, name string, args map[string]string) (*GetPromptResponse, error) {
	switch name {
	case PromptSummarizeNotes:
		return s.summarizeNotes(ctx, args["style"])
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPrompt, name)
	}
}

// summarizeNotes は現在の全ノートを並べた要約依頼を組み立てる
func (s *promptService) summarizeNotes(ctx context.Context, style string) (*GetPromptResponse, error) {
	notes, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	var b strings.Builder
	b.WriteString("Here are the current notes to summarize:")
	for _, n := range notes {
		fmt.Fprintf(&b, "\n- %s: %s", n.Name, n.Content)
	}
	b.WriteString(detailDirective(style))

	return &GetPromptResponse{
		Description: "Summarize the current notes",
		Messages: []model.PromptMessage{
			{
				Role:    "user",
				Content: model.NewTextContent(b.String()),
			},
		},
	}, nil
}

// detailDirective はstyleから要約の粒度指示を作る
// "detailed"以外は簡潔な要約。未知のstyleも文中にそのまま埋め込む
func detailDirective(style string) string {
	switch style {
	case StyleDetailed:
		return "\n\nPlease provide a detailed summary."
	case "":
		return "\n\nPlease provide a concise summary."
	default:
		return fmt.Sprintf("\n\nPlease provide a concise summary in a %s style.", style)
	}
}
