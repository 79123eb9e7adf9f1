// Package memory provides an in-process snapshot store for tests and dry runs.
package memory

import (
	"context"
	"sync"

	rotawatch "github.com/xraph/rotawatch"
	"github.com/xraph/rotawatch/rotation"
	"github.com/xraph/rotawatch/store"
)

// compile-time interface check
var _ store.Store = (*Store)(nil)

// Store keeps the snapshot in memory. Saved and loaded snapshots are
// copies, so callers cannot mutate the stored value.
type Store struct {
	mu    sync.RWMutex
	snap  *rotation.Snapshot
	saves int
}

// New returns an empty memory store.
func New() *Store {
	return &Store{}
}

// Load returns a copy of the stored snapshot.
func (s *Store) Load(_ context.Context) (*rotation.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		return nil, rotawatch.ErrSnapshotNotFound
	}
	return s.snap.Clone(), nil
}

// Save replaces the stored snapshot with a copy of snap.
func (s *Store) Save(_ context.Context, snap *rotation.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap = snap.Clone()
	s.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() error { return nil }
