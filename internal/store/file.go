package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"example.com/activitytrack/internal/domain"
)

// File keeps the collection as a JSON array in a single document on disk.
// Writes go to a temp file in the same directory followed by a rename, so an
// interrupted write never corrupts the previous document.
type File struct {
	path string
}

// NewFile returns a file store at path, creating the parent directory and an
// empty document on first use.
func NewFile(path string) (*File, error) {
	f := &File{path: path}
	if err := f.ensure(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) ensure() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	_, err := os.Stat(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return f.writeDocument(nil)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", f.path, err)
	}
	return nil
}

func (f *File) ReadAll(ctx context.Context) ([]domain.Activity, error) {
	if err := f.ensure(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	var items []domain.Activity
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &DecodeError{Source: f.path, Err: err}
	}
	if items == nil {
		items = []domain.Activity{}
	}
	return items, nil
}

func (f *File) WriteAll(ctx context.Context, items []domain.Activity) error {
	if err := f.ensure(); err != nil {
		return err
	}
	return f.writeDocument(items)
}

func (f *File) writeDocument(items []domain.Activity) error {
	if items == nil {
		items = []domain.Activity{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode activities: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".activities-*.json")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp document: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

func (f *File) Close() error { return nil }
