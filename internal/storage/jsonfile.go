// Package storage persists domain records. The default backend keeps each
// collection in a single JSON file under the data directory, written
// atomically via a temp file and rename.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// jsonFile is a mutex-guarded JSON array on disk. All typed repositories
// are built on top of it.
type jsonFile[T any] struct {
	path string
	mu   sync.RWMutex
}

func newJSONFile[T any](dataDir, name string) (*jsonFile[T], error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &jsonFile[T]{path: filepath.Join(dataDir, name)}, nil
}

// load reads every record. A missing file is an empty collection, not an
// error.
func (f *jsonFile[T]) load() ([]T, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.loadLocked()
}

func (f *jsonFile[T]) loadLocked() ([]T, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return records, nil
}

// update applies fn to the current records and persists the result. The
// whole read-modify-write runs under the write lock so concurrent updates
// never lose each other.
func (f *jsonFile[T]) update(fn func([]T) ([]T, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	records, err := f.loadLocked()
	if err != nil {
		return err
	}
	records, err = fn(records)
	if err != nil {
		return err
	}
	return f.writeLocked(records)
}

// writeLocked writes the collection to a temp file in the same directory
// and renames it over the target, so readers never observe a partial file.
func (f *jsonFile[T]) writeLocked(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}
