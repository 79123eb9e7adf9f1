// Package redis stores the snapshot as a JSON value under a single Redis key.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xraph/grove/kv"
	"github.com/xraph/grove/kv/drivers/redisdriver"

	rotawatch "github.com/xraph/rotawatch"
	"github.com/xraph/rotawatch/rotation"
	"github.com/xraph/rotawatch/store"
)

// compile-time interface checks
var (
	_ store.Store    = (*Store)(nil)
	_ store.Migrator = (*Store)(nil)
)

// DefaultKey is the Redis key holding the snapshot.
const DefaultKey = "rotawatch:snapshot:" + store.DefaultSlot

// Store implements store.Store on Redis via Grove KV. SET replaces the
// value in one step, so readers see either the old or the new snapshot.
type Store struct {
	kv  *kv.Store
	key string
}

// New creates a Redis store on an open KV store. An empty key uses DefaultKey.
func New(store *kv.Store, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{kv: store, key: key}
}

// Open connects to a redis:// URL.
func Open(ctx context.Context, url, key string) (*Store, error) {
	drv := redisdriver.New()
	if err := drv.Open(ctx, url); err != nil {
		return nil, fmt.Errorf("rotawatch/redis: open: %w", err)
	}
	kvs, err := kv.Open(drv)
	if err != nil {
		return nil, fmt.Errorf("rotawatch/redis: open: %w", err)
	}

	s := New(kvs, key)
	if err := s.Ping(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// Migrate is a no-op for Redis (no schema migrations needed).
func (s *Store) Migrate(_ context.Context) error {
	return nil
}

// Load reads and decodes the snapshot key.
func (s *Store) Load(ctx context.Context) (*rotation.Snapshot, error) {
	raw, err := s.kv.GetRaw(ctx, s.key)
	if isNotFound(err) {
		return nil, rotawatch.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("rotawatch/redis: get %s: %w", s.key, err)
	}

	var snap rotation.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("rotawatch/redis: %s: %w", s.key, err)
	}
	return &snap, nil
}

// Save writes the snapshot with no expiry.
func (s *Store) Save(ctx context.Context, snap *rotation.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("rotawatch/redis: marshal: %w", err)
	}
	if err := s.kv.SetRaw(ctx, s.key, raw); err != nil {
		return fmt.Errorf("rotawatch/redis: set %s: %w", s.key, err)
	}
	return nil
}

// Ping checks Redis connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.kv.Ping(ctx); err != nil {
		return fmt.Errorf("rotawatch/redis: ping: %w", err)
	}
	return nil
}

// Close closes the KV store.
func (s *Store) Close() error {
	return s.kv.Close()
}

// isNotFound checks if an error is a KV not-found sentinel.
func isNotFound(err error) bool {
	return errors.Is(err, kv.ErrNotFound)
}
