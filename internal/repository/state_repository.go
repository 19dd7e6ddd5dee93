package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"sentinel-backend/internal/domain"
)

// FileStateRepository persists the per-symbol alert state as a small JSON
// document. Every mutation rewrites the whole file via a temp file and an
// atomic rename, so a crash can never leave partial state behind.
type FileStateRepository struct {
	path  string
	mu    sync.RWMutex
	state map[string]domain.AlertState
}

// NewFileStateRepository loads existing state from path if present. A missing
// file is a fresh start, not an error.
func NewFileStateRepository(path string) (*FileStateRepository, error) {
	r := &FileStateRepository{
		path:  path,
		state: make(map[string]domain.AlertState),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("state: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &r.state); err != nil {
		return nil, fmt.Errorf("state: parse %s: %w", path, err)
	}
	return r, nil
}

func (r *FileStateRepository) Get(symbol string) (domain.AlertState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.state[symbol]
	return st, ok
}

func (r *FileStateRepository) Put(symbol string, st domain.AlertState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state[symbol] = st
	return r.flush()
}

// flush writes the whole document atomically. Caller holds the write lock.
func (r *FileStateRepository) flush() error {
	data, err := json.MarshalIndent(r.state, "", "  ")
	if err != nil {
		return fmt.Errorf("state: marshal: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".sentinel_state-*.tmp")
	if err != nil {
		return fmt.Errorf("state: temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("state: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("state: close: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("state: rename: %w", err)
	}
	return nil
}
