// Package file stores the snapshot as an indented JSON file.
//
// Saves go to a temporary file in the same directory, are synced, and then
// renamed over the target, so the file on disk is always either the old or
// the new snapshot.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	rotawatch "github.com/xraph/rotawatch"
	"github.com/xraph/rotawatch/internal/fsutil"
	"github.com/xraph/rotawatch/rotation"
	"github.com/xraph/rotawatch/store"
)

// compile-time interface check
var _ store.Store = (*Store)(nil)

// DefaultPath is the snapshot file used when none is configured.
const DefaultPath = "currentRotation.json"

const filePermissions = 0o644

// Store implements store.Store on the local filesystem.
type Store struct {
	mu   sync.Mutex
	path string
}

// New creates a file store writing to path.
func New(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the snapshot file path.
func (s *Store) Path() string { return s.path }

// Load reads the snapshot file.
func (s *Store) Load(_ context.Context) (*rotation.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, rotawatch.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("rotawatch/file: read %s: %w", s.path, err)
	}

	var snap rotation.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("rotawatch/file: %s: %w", s.path, err)
	}
	return &snap, nil
}

// Save atomically replaces the snapshot file.
func (s *Store) Save(_ context.Context, snap *rotation.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "    ")
	if err != nil {
		return fmt.Errorf("rotawatch/file: marshal: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fsutil.WriteAtomic(s.path, data, filePermissions)
}

// Ping checks that the snapshot directory exists.
func (s *Store) Ping(_ context.Context) error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("rotawatch/file: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("rotawatch/file: %s is not a directory", dir)
	}
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }
