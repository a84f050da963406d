package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"budgetbook/internal/core"
)

// JSONRepository persists the store as a single JSON document, rewritten
// wholesale on every save. Writes go through a temp file and an atomic
// rename.
type JSONRepository struct {
	path string
}

func NewJSONRepository(path string) *JSONRepository {
	return &JSONRepository{path: path}
}

// Load reads the document. A missing file is a first run, not an error.
func (r *JSONRepository) Load(ctx context.Context) (*Snapshot, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &core.PersistenceError{Op: "load", Path: r.path, Err: err}
	}
	defer f.Close()

	snap, err := ReadDocument(f)
	if err != nil {
		return nil, &core.PersistenceError{Op: "load", Path: r.path, Err: err}
	}
	return &snap, nil
}

// Save overwrites the document, creating missing parent directories.
func (r *JSONRepository) Save(ctx context.Context, snap Snapshot) error {
	dir := filepath.Dir(r.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &core.PersistenceError{Op: "save", Path: r.path, Err: err}
		}
	}

	tmp := r.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return &core.PersistenceError{Op: "save", Path: r.path, Err: err}
	}
	if err := WriteDocument(f, snap, time.Now()); err != nil {
		f.Close()
		os.Remove(tmp)
		return &core.PersistenceError{Op: "save", Path: r.path, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return &core.PersistenceError{Op: "save", Path: r.path, Err: err}
	}
	if err := os.Rename(tmp, r.path); err != nil {
		os.Remove(tmp)
		return &core.PersistenceError{Op: "save", Path: r.path, Err: fmt.Errorf("commit document: %w", err)}
	}
	return nil
}

func (r *JSONRepository) Close() error {
	return nil
}
