// Package postgres stores the snapshot in PostgreSQL through grove.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/pgdriver"
	_ "github.com/xraph/grove/drivers/pgdriver/pgmigrate" // registers the migration executor
	"github.com/xraph/grove/migrate"

	rotawatch "github.com/xraph/rotawatch"
	"github.com/xraph/rotawatch/rotation"
	"github.com/xraph/rotawatch/store"
)

// compile-time interface checks
var (
	_ store.Store    = (*Store)(nil)
	_ store.Migrator = (*Store)(nil)
)

// Store implements store.Store on PostgreSQL via grove.
type Store struct {
	db   *grove.DB
	pg   *pgdriver.PgDB
	slot string
}

// Open connects to databaseURL.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	drv := pgdriver.New()
	if err := drv.Open(ctx, databaseURL); err != nil {
		return nil, fmt.Errorf("rotawatch/postgres: open: %w", err)
	}
	db, err := grove.Open(drv)
	if err != nil {
		return nil, fmt.Errorf("rotawatch/postgres: open: %w", err)
	}

	s := New(db)
	if err := s.Ping(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("rotawatch/postgres: ping: %w", err)
	}
	return s, nil
}

// New creates a store on an open grove database.
func New(db *grove.DB) *Store {
	return &Store{
		db:   db,
		pg:   pgdriver.Unwrap(db),
		slot: store.DefaultSlot,
	}
}

// Migrate creates the snapshot table using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.pg)
	if err != nil {
		return fmt.Errorf("rotawatch/postgres: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("rotawatch/postgres: migration failed: %w", err)
	}
	return nil
}

// Load reads the snapshot row.
func (s *Store) Load(ctx context.Context) (*rotation.Snapshot, error) {
	m := new(snapshotModel)
	err := s.pg.NewSelect(m).
		Where("slot = $1", s.slot).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, rotawatch.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("rotawatch/postgres: load: %w", err)
	}

	snap, err := fromSnapshotModel(m)
	if err != nil {
		return nil, fmt.Errorf("rotawatch/postgres: %w", err)
	}
	return snap, nil
}

// Save upserts the snapshot row in a single statement.
func (s *Store) Save(ctx context.Context, snap *rotation.Snapshot) error {
	m, err := toSnapshotModel(s.slot, snap, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("rotawatch/postgres: %w", err)
	}

	_, err = s.pg.NewInsert(m).
		OnConflict("(slot) DO UPDATE").
		Set("rotation_id = EXCLUDED.rotation_id").
		Set("payload = EXCLUDED.payload").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("rotawatch/postgres: save: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
