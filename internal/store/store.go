// Package store provides note storage interfaces and implementations.
package store

import (
	"context"

	"github.com/brbranch/notes_mcp/internal/model"
)

// Store はノートストアの抽象インターフェース
// 列挙順は挿入順。既存名へのSetは内容のみ置き換え、位置は保持する
type Store interface {
	// 全件取得（挿入順）
	All(ctx context.Context) ([]*model.Note, error)
	// 名前で取得。存在しなければErrNotFound
	Get(ctx context.Context, name string) (*model.Note, error)
	// 追加または上書き
	Set(ctx context.Context, note *model.Note) error

	Close() error
}

// Seed はノートを順番にストアへ投入する
func Seed(ctx context.Context, st Store, notes []model.Note) error {
	for i := range notes {
		if err := st.Set(ctx, &notes[i]); err != nil {
			return err
		}
	}
	return nil
}
