package jsonrpc

import (
	"context"
	"fmt"
	"slices"

	"github.com/brbranch/notes_mcp/internal/model"
	"github.com/brbranch/notes_mcp/internal/service"
)

// ServerVersion はサーバーのバージョン（ビルド時に設定可能）
var ServerVersion = "0.1.0"

// ServerName はinitializeで返すサーバー名
const ServerName = "mcp-notes"

// LatestProtocolVersion はクライアントの要求が未知の場合に返すバージョン
const LatestProtocolVersion = "2025-06-18"

// supportedProtocolVersions はそのまま応答できるプロトコルバージョン
var supportedProtocolVersions = []string{
	"2024-11-05",
	"2025-03-26",
	"2025-06-18",
	"2025-11-25",
}

// handleInitialize は initialize メソッドを処理
func (h *Handler) handleInitialize(ctx context.Context, params any) (any, error) {
	// パラメータをパース（検証は最小限）
	var p model.InitializeParams
	if err := mapParams(params, &p); err != nil {
		return nil, err
	}

	version := LatestProtocolVersion
	if slices.Contains(supportedProtocolVersions, p.ProtocolVersion) {
		version = p.ProtocolVersion
	}

	return &model.InitializeResult{
		ProtocolVersion: version,
		ServerInfo: model.ServerInfo{
			Name:    ServerName,
			Version: ServerVersion,
		},
		Capabilities: model.Capabilities{
			Resources: &model.ResourcesCapability{ListChanged: true},
			Prompts:   &model.PromptsCapability{},
			Tools:     &model.ToolsCapability{},
		},
	}, nil
}

// handleResourcesList は resources/list メソッドを処理
func (h *Handler) handleResourcesList(ctx context.Context) (any, error) {
	resources, err := h.resourceService.ListResources(ctx)
	if err != nil {
		return nil, err
	}
	return &model.ResourcesListResult{Resources: resources}, nil
}

// handleResourcesRead は resources/read メソッドを処理
func (h *Handler) handleResourcesRead(ctx context.Context, params any) (any, error) {
	var p model.ResourcesReadParams
	if err := mapParams(params, &p); err != nil {
		return nil, err
	}
	if p.URI == "" {
		return nil, &invalidParamsError{reason: "uri is required"}
	}

	text, err := h.resourceService.ReadResource(ctx, p.URI)
	if err != nil {
		return nil, err
	}

	return &model.ResourcesReadResult{
		Contents: []model.ResourceContents{
			{
				URI:      p.URI,
				MimeType: service.NoteMimeType,
				Text:     text,
			},
		},
	}, nil
}

// handlePromptsList は prompts/list メソッドを処理
func (h *Handler) handlePromptsList(ctx context.Context) (any, error) {
	prompts, err := h.promptService.ListPrompts(ctx)
	if err != nil {
		return nil, err
	}
	return &model.PromptsListResult{Prompts: prompts}, nil
}

// handlePromptsGet は prompts/get メソッドを処理
func (h *Handler) handlePromptsGet(ctx context.Context, params any) (any, error) {
	var p model.PromptsGetParams
	if err := mapParams(params, &p); err != nil {
		return nil, err
	}

	resp, err := h.promptService.GetPrompt(ctx, p.Name, p.Arguments)
	if err != nil {
		return nil, err
	}

	return &model.PromptsGetResult{
		Description: resp.Description,
		Messages:    resp.Messages,
	}, nil
}

// handleToolsList は tools/list メソッドを処理
func (h *Handler) handleToolsList(ctx context.Context) (any, error) {
	tools, err := h.toolService.ListTools(ctx)
	if err != nil {
		return nil, err
	}
	return &model.ToolsListResult{Tools: tools}, nil
}

// handleToolsCall は tools/call メソッドを処理
// ツール実行時のエラーはJSON-RPCエラーではなくisError付きの結果で返す（MCP仕様）
func (h *Handler) handleToolsCall(ctx context.Context, params any) (any, error) {
	var p model.ToolsCallParams
	if err := mapParams(params, &p); err != nil {
		return nil, err
	}

	content, err := h.toolService.CallTool(ctx, p.Name, p.Arguments)
	if err != nil {
		return &model.ToolsCallResult{
			Content: []model.ContentItem{
				model.NewTextContent(fmt.Sprintf("Error: %s", err.Error())),
			},
			IsError: true,
		}, nil
	}

	return &model.ToolsCallResult{Content: content}, nil
}
