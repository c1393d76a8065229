package store

import (
	"context"
	"errors"
	"testing"

	"github.com/brbranch/notes_mcp/internal/model"
)

// storeFactories は全Store実装に共通の振る舞いテスト用
func storeFactories(t *testing.T) map[string]func() Store {
	t.Helper()
	return map[string]func() Store{
		"memory": func() Store {
			return NewMemoryStore()
		},
		"sqlite": func() Store {
			st, err := NewSQLiteStore(context.Background(), "")
			if err != nil {
				t.Fatalf("failed to create sqlite store: %v", err)
			}
			return st
		},
	}
}

func noteNames(notes []*model.Note) []string {
	names := make([]string, len(notes))
	for i, n := range notes {
		names[i] = n.Name
	}
	return names
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestStore_SetGet は追加したノートを取得できることをテスト
func TestStore_SetGet(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := newStore()
			defer st.Close()

			if err := st.Set(ctx, &model.Note{Name: "n1", Content: "c1"}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got, err := st.Get(ctx, "n1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Content != "c1" {
				t.Errorf("expected content 'c1', got %q", got.Content)
			}
		})
	}
}

// TestStore_Get_NotFound は存在しない名前でErrNotFoundを返すことをテスト
func TestStore_Get_NotFound(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			st := newStore()
			defer st.Close()

			_, err := st.Get(context.Background(), "missing")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

// TestStore_Get_CaseSensitive は名前の大文字小文字を区別することをテスト
func TestStore_Get_CaseSensitive(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := newStore()
			defer st.Close()

			if err := st.Set(ctx, &model.Note{Name: "Note", Content: "upper"}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, err := st.Get(ctx, "note"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound for different case, got %v", err)
			}
		})
	}
}

// TestStore_All_InsertionOrder は挿入順で列挙され、上書きで位置が変わらないことをテスト
func TestStore_All_InsertionOrder(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := newStore()
			defer st.Close()

			for _, n := range []model.Note{
				{Name: "zeta", Content: "1"},
				{Name: "alpha", Content: "2"},
				{Name: "mid", Content: "3"},
				{Name: "zeta", Content: "overwritten"},
			} {
				n := n
				if err := st.Set(ctx, &n); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			notes, err := st.All(ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := []string{"zeta", "alpha", "mid"}
			if got := noteNames(notes); !equalNames(got, want) {
				t.Errorf("expected order %v, got %v", want, got)
			}
			if notes[0].Content != "overwritten" {
				t.Errorf("expected overwritten content, got %q", notes[0].Content)
			}
		})
	}
}

// TestStore_All_Empty は空ストアで空スライスを返すことをテスト
func TestStore_All_Empty(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			st := newStore()
			defer st.Close()

			notes, err := st.All(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(notes) != 0 {
				t.Errorf("expected 0 notes, got %d", len(notes))
			}
		})
	}
}

// TestStore_Set_EmptyName は空の名前を拒否することをテスト
func TestStore_Set_EmptyName(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			st := newStore()
			defer st.Close()

			err := st.Set(context.Background(), &model.Note{Name: "", Content: "x"})
			if !errors.Is(err, model.ErrEmptyNoteName) {
				t.Errorf("expected ErrEmptyNoteName, got %v", err)
			}
		})
	}
}

// TestStore_Set_EmptyContent は空の内容を許容することをテスト
func TestStore_Set_EmptyContent(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := newStore()
			defer st.Close()

			if err := st.Set(ctx, &model.Note{Name: "blank", Content: ""}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, err := st.Get(ctx, "blank")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Content != "" {
				t.Errorf("expected empty content, got %q", got.Content)
			}
		})
	}
}

// TestStore_Closed はClose後の操作がErrClosedになることをテスト
func TestStore_Closed(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := newStore()
			if err := st.Close(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if _, err := st.All(ctx); !errors.Is(err, ErrClosed) {
				t.Errorf("All: expected ErrClosed, got %v", err)
			}
			if _, err := st.Get(ctx, "x"); !errors.Is(err, ErrClosed) {
				t.Errorf("Get: expected ErrClosed, got %v", err)
			}
			if err := st.Set(ctx, &model.Note{Name: "x"}); !errors.Is(err, ErrClosed) {
				t.Errorf("Set: expected ErrClosed, got %v", err)
			}
		})
	}
}

// TestSeed はシードが順番に投入されることをテスト
func TestSeed(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	defer st.Close()

	seed := []model.Note{
		{Name: "note1", Content: "Hello"},
		{Name: "note2", Content: "World"},
	}
	if err := Seed(ctx, st, seed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	notes, err := st.All(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := noteNames(notes); !equalNames(got, []string{"note1", "note2"}) {
		t.Errorf("expected [note1 note2], got %v", got)
	}
}

// TestSeed_StopsOnError は不正なノートで中断することをテスト
func TestSeed_StopsOnError(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	defer st.Close()

	err := Seed(ctx, st, []model.Note{{Name: "ok"}, {Name: ""}, {Name: "after"}})
	if !errors.Is(err, model.ErrEmptyNoteName) {
		t.Fatalf("expected ErrEmptyNoteName, got %v", err)
	}
	if _, err := st.Get(ctx, "after"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected seeding to stop before 'after', got %v", err)
	}
}
