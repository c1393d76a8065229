package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/brbranch/notes_mcp/internal/model"
)

// SeedFile はシードYAMLファイルの形式
//
//	notes:
//	  - name: note1
//	    content: Hello
type SeedFile struct {
	Notes []model.Note `yaml:"notes"`
}

// DefaultSeed は設定がない場合に投入するノート
func DefaultSeed() []model.Note {
	return []model.Note{
		{Name: "note1", Content: "Hello"},
		{Name: "note2", Content: "World"},
	}
}

// LoadSeedFile はYAMLのシードファイルを読み込む
func LoadSeedFile(path string) ([]model.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var sf SeedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	for i, n := range sf.Notes {
		if err := n.Validate(); err != nil {
			return nil, fmt.Errorf("seed file %s: notes[%d]: %w", path, i, err)
		}
	}
	return sf.Notes, nil
}

// ResolveSeed は起動時に投入するノートを決定する
// 優先順位: seed.notes > seed.file > DefaultSeed
func ResolveSeed(cfg model.SeedConfig) ([]model.Note, error) {
	if len(cfg.Notes) > 0 {
		return cfg.Notes, nil
	}
	if cfg.File != "" {
		path, err := ExpandTilde(cfg.File)
		if err != nil {
			return nil, err
		}
		return LoadSeedFile(path)
	}
	return DefaultSeed(), nil
}
