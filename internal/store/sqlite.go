package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/brbranch/notes_mcp/internal/model"
	_ "modernc.org/sqlite"
)

const (
	// MemoryDSN はプロセス内メモリDBのDSN（プロセス終了で消える）
	MemoryDSN = ":memory:"

	// noteCountWarningThreshold は警告を出すノート件数の閾値
	noteCountWarningThreshold = 5000
)

// SQLiteStore はSQLiteを使用したStore実装
type SQLiteStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	dsn    string
	closed bool
}

// NewSQLiteStore はSQLiteStoreを作成し、スキーマを初期化する
// dsnが空の場合はMemoryDSNを使用
func NewSQLiteStore(ctx context.Context, dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// メモリDBは接続ごとに別DBになるため、接続を1本に固定
	db.SetMaxOpenConns(1)

	if !isMemoryDSN(dsn) {
		// WALモードを有効化
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set WAL mode: %w", err)
		}
	}

	// seqで挿入順を保持。上書きはseqを変えない
	schema := `
	CREATE TABLE IF NOT EXISTS notes (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		content TEXT NOT NULL
	);
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create notes table: %w", err)
	}

	return &SQLiteStore{
		db:  db,
		dsn: dsn,
	}, nil
}

func isMemoryDSN(dsn string) bool {
	return dsn == MemoryDSN || strings.Contains(dsn, "mode=memory")
}

// All は全ノートを挿入順で返す
func (s *SQLiteStore) All(ctx context.Context) ([]*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx, `SELECT name, content FROM notes ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*model.Note, 0)
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.Name, &n.Content); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}

	return notes, nil
}

// Get は名前でノートを取得する
func (s *SQLiteStore) Get(ctx context.Context, name string) (*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	var n model.Note
	err := s.db.QueryRowContext(ctx, `SELECT name, content FROM notes WHERE name = ?`, name).
		Scan(&n.Name, &n.Content)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &n, nil
}

// Set はノートを追加または上書きする
func (s *SQLiteStore) Set(ctx context.Context, note *model.Note) error {
	if err := note.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (name, content) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET content = excluded.content
	`, note.Name, note.Content)
	if err != nil {
		return fmt.Errorf("failed to upsert note: %w", err)
	}

	s.warnNoteCount(ctx)
	return nil
}

// warnNoteCount は件数が閾値以上なら警告を出す（ロック取得済み前提）
// 保存は完了しているので、件数取得の失敗はdebugログに留める
func (s *SQLiteStore) warnNoteCount(ctx context.Context) {
	count, err := s.countNotes(ctx)
	if err != nil {
		slog.Debug("failed to count notes", "error", err)
		return
	}
	if count >= noteCountWarningThreshold {
		slog.Warn("note count exceeded threshold",
			"count", count,
			"threshold", noteCountWarningThreshold,
			"recommendation", "summarize-notes prompt output grows with every note")
	}
}

// countNotes はノート件数を返す（ロック取得済み前提）
func (s *SQLiteStore) countNotes(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Close はストアをクローズする
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
