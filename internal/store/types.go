package store

import (
	"errors"
)

// エラー定義
var (
	ErrNotFound = errors.New("note not found")
	ErrClosed   = errors.New("store closed")
)
