package store

import (
	"context"
	"sync"

	"github.com/brbranch/notes_mcp/internal/model"
)

// MemoryStore はインメモリのStore実装（デフォルト）
type MemoryStore struct {
	mu     sync.RWMutex
	notes  map[string]string // key: note.Name
	order  []string          // 挿入順の名前
	closed bool
}

// NewMemoryStore はMemoryStoreを作成する
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		notes: make(map[string]string),
	}
}

// All は全ノートを挿入順で返す
func (s *MemoryStore) All(ctx context.Context) ([]*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	notes := make([]*model.Note, 0, len(s.order))
	for _, name := range s.order {
		notes = append(notes, &model.Note{Name: name, Content: s.notes[name]})
	}
	return notes, nil
}

// Get は名前でノートを取得する
func (s *MemoryStore) Get(ctx context.Context, name string) (*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	content, ok := s.notes[name]
	if !ok {
		return nil, ErrNotFound
	}
	return &model.Note{Name: name, Content: content}, nil
}

// Set はノートを追加または上書きする
func (s *MemoryStore) Set(ctx context.Context, note *model.Note) error {
	if err := note.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	if _, ok := s.notes[note.Name]; !ok {
		s.order = append(s.order, note.Name)
	}
	s.notes[note.Name] = note.Content
	return nil
}

// Close はストアをクローズする
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = make(map[string]string)
	s.order = nil
	s.closed = true
	return nil
}
