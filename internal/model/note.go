package model

import (
	"errors"
	"fmt"
)

// ErrEmptyNoteName はノート名が空の場合のエラー
var ErrEmptyNoteName = errors.New("note name must not be empty")

// Note は名前付きのテキストノートを表す
// Nameはストア内で一意のキー（大文字小文字を区別）
type Note struct {
	Name    string `json:"name" yaml:"name"`       // 必須、空文字不可
	Content string `json:"content" yaml:"content"` // 空文字可
}

// Validate はNoteのバリデーションを実行する
func (n *Note) Validate() error {
	if n.Name == "" {
		return ErrEmptyNoteName
	}
	return nil
}

// String はログ出力用の短い表現を返す
func (n *Note) String() string {
	return fmt.Sprintf("%s (%d bytes)", n.Name, len(n.Content))
}
