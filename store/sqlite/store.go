// Package sqlite stores the snapshot in a SQLite database through grove.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	_ "github.com/xraph/grove/drivers/sqlitedriver/sqlitemigrate" // registers the migration executor
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

// Store implements store.Store on SQLite via grove. The snapshot is one
// row in rotation_snapshots, keyed by slot.
type Store struct {
	db   *grove.DB
	sdb  *sqlitedriver.SqliteDB
	slot string
}

// Open opens (creating if needed) the database file at path.
func Open(ctx context.Context, path string) (*Store, error) {
	drv := sqlitedriver.New()
	if err := drv.Open(ctx, path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"); err != nil {
		return nil, fmt.Errorf("rotawatch/sqlite: open %s: %w", path, err)
	}
	db, err := grove.Open(drv)
	if err != nil {
		return nil, fmt.Errorf("rotawatch/sqlite: open %s: %w", path, err)
	}
	return New(db), nil
}

// New creates a store on an open grove database.
func New(db *grove.DB) *Store {
	return &Store{
		db:   db,
		sdb:  sqlitedriver.Unwrap(db),
		slot: store.DefaultSlot,
	}
}

// Migrate creates the snapshot table using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("rotawatch/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("rotawatch/sqlite: migration failed: %w", err)
	}
	return nil
}

// Load reads the snapshot row.
func (s *Store) Load(ctx context.Context) (*rotation.Snapshot, error) {
	m := new(snapshotModel)
	err := s.sdb.NewSelect(m).
		Where("slot = ?", s.slot).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, rotawatch.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("rotawatch/sqlite: load: %w", err)
	}

	snap, err := fromSnapshotModel(m)
	if err != nil {
		return nil, fmt.Errorf("rotawatch/sqlite: %w", err)
	}
	return snap, nil
}

// Save upserts the snapshot row in a single statement.
func (s *Store) Save(ctx context.Context, snap *rotation.Snapshot) error {
	m, err := toSnapshotModel(s.slot, snap, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("rotawatch/sqlite: %w", err)
	}

	_, err = s.sdb.NewInsert(m).
		OnConflict("(slot) DO UPDATE").
		Set("rotation_id = EXCLUDED.rotation_id").
		Set("payload = EXCLUDED.payload").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("rotawatch/sqlite: save: %w", err)
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
