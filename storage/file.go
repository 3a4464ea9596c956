package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type FileSlot struct {
	FilePath string
}

func NewFileSlot(filePath string) *FileSlot {
	return &FileSlot{FilePath: filePath}
}

func (f *FileSlot) Load(ctx context.Context) ([]byte, error) {
	b, err := os.ReadFile(f.FilePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return b, err
}

// Save writes to a temp file in the same directory and renames it over the
// slot so readers never observe a partial write.
func (f *FileSlot) Save(ctx context.Context, data []byte) error {
	dir := filepath.Dir(f.FilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create slot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.FilePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // nolint: errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() // nolint: errcheck
		return fmt.Errorf("write slot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close slot: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.FilePath); err != nil {
		return fmt.Errorf("replace slot: %w", err)
	}
	return nil
}
