// Package cas persists the settings snapshot recorded after each successful build.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SettingsStore = (*Store)(nil)

// Store implements ports.SettingsStore with one JSON file per output directory.
type Store struct {
	mu    sync.RWMutex
	cache map[string]domain.SettingsSnapshot
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{cache: make(map[string]domain.SettingsSnapshot)}
}

// Get retrieves the snapshot recorded under outputDir.
// Returns nil, nil if no build has completed there yet.
func (s *Store) Get(outputDir string) (*domain.SettingsSnapshot, error) {
	key := filepath.Clean(outputDir)

	s.mu.RLock()
	snap, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return &snap, nil
	}

	path := domain.SettingsSnapshotPath(key)
	//nolint:gosec // Path is derived from the project's output directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", path)
	}

	if len(data) == 0 {
		return nil, nil
	}

	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "path", path)
	}

	s.mu.Lock()
	s.cache[key] = snap
	s.mu.Unlock()

	return &snap, nil
}

// Put records snap under outputDir.
func (s *Store) Put(outputDir string, snap domain.SettingsSnapshot) error {
	key := filepath.Clean(outputDir)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	dir := domain.StateDir(key)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", dir)
	}

	path := domain.SettingsSnapshotPath(key)
	//nolint:gosec // Path is derived from the project's output directory
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}

	s.mu.Lock()
	s.cache[key] = snap
	s.mu.Unlock()

	return nil
}
