package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/brbranch/notes_mcp/internal/model"
	"github.com/brbranch/notes_mcp/internal/store"
)

// URI構成要素
const (
	NoteScheme    = "note"
	NoteAuthority = "internal"
	NoteMimeType  = "text/plain"
)

// resourceService はResourceServiceの実装
type resourceService struct {
	store store.Store
}

// NewResourceService はResourceServiceの新しいインスタンスを作成
func NewResourceService(s store.Store) ResourceService {
	return &resourceService{store: s}
}

// NoteURI はノート名からリソースURIを組み立てる
func NoteURI(name string) string {
	u := url.URL{Scheme: NoteScheme, Host: NoteAuthority, Path: "/" + name}
	return u.String()
}

// ListResources はストア内の全ノートをリソースとして返す（ストア順）
func (s *resourceService) ListResources(ctx context.Context) ([]model.Resource, error) {
	notes, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	resources := make([]model.Resource, 0, len(notes))
	for _, n := range notes {
		resources = append(resources, model.Resource{
			URI:         NoteURI(n.Name),
			Name:        n.Name,
			Description: "A simple note: " + n.Name,
			MimeType:    NoteMimeType,
		})
	}
	return resources, nil
}

// ReadResource はURIからノート名を取り出し、その内容を返す
func (s *resourceService) ReadResource(ctx context.Context, uri string) (string, error) {
	name, err := ParseNoteURI(uri)
	if err != nil {
		return "", err
	}

	note, err := s.store.Get(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("%w: %s", ErrNoteNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get note: %w", err)
	}
	return note.Content, nil
}

// ParseNoteURI は note://internal/{name} からノート名を取り出す
// authorityはルーティングに使わないため検証しない
// schemeは大文字小文字を区別しない（url.Parseが小文字化する）
func ParseNoteURI(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	if u.Scheme != NoteScheme {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURI, u.Scheme)
	}

	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return "", fmt.Errorf("%w: missing note name in %q", ErrInvalidURI, uri)
	}
	return name, nil
}
