package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brbranch/notes_mcp/internal/model"
	"github.com/brbranch/notes_mcp/internal/store"
)

// recordingNotifier は通知回数を記録するChangeNotifier
type recordingNotifier struct {
	mu    sync.Mutex
	count int
	err   error
}

func (n *recordingNotifier) NotifyResourceListChanged(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.count++
	return n.err
}

func (n *recordingNotifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}

// failingStore は常にエラーを返すStore
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) All(ctx context.Context) ([]*model.Note, error) { return nil, errStoreDown }
func (failingStore) Get(ctx context.Context, name string) (*model.Note, error) {
	return nil, errStoreDown
}
func (failingStore) Set(ctx context.Context, note *model.Note) error { return errStoreDown }
func (failingStore) Close() error                                    { return nil }

// newSeededStore は note1=Hello, note2=World を投入したストアを返す
func newSeededStore(t *testing.T) store.Store {
	t.Helper()
	st := store.NewMemoryStore()
	t.Cleanup(func() { st.Close() })

	err := store.Seed(context.Background(), st, []model.Note{
		{Name: "note1", Content: "Hello"},
		{Name: "note2", Content: "World"},
	})
	require.NoError(t, err)
	return st
}

// newEmptyStore は空のストアを返す
func newEmptyStore(t *testing.T) store.Store {
	t.Helper()
	st := store.NewMemoryStore()
	t.Cleanup(func() { st.Close() })
	return st
}
