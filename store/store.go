// Package store defines the snapshot Store interface.
//
// A store holds exactly one snapshot: the last rotation that was fully
// processed. Save replaces it atomically, so a reader never observes a
// partially written snapshot. Backends live in subpackages.
package store

import (
	"context"

	"github.com/xraph/rotawatch/rotation"
)

// DefaultSlot names the single snapshot record in backends that key by name.
const DefaultSlot = "current"

// Store is the snapshot persistence interface.
type Store interface {
	// Load returns the stored snapshot, or rotawatch.ErrSnapshotNotFound
	// when nothing has been saved yet.
	Load(ctx context.Context) (*rotation.Snapshot, error)

	// Save replaces the stored snapshot.
	Save(ctx context.Context, snap *rotation.Snapshot) error

	// Ping checks backend connectivity.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// Migrator is implemented by stores that need schema setup before use.
type Migrator interface {
	Migrate(ctx context.Context) error
}

// Migrate runs s's migrations when it has any.
func Migrate(ctx context.Context, s Store) error {
	if m, ok := s.(Migrator); ok {
		return m.Migrate(ctx)
	}
	return nil
}
