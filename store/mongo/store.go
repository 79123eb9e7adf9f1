// Package mongo stores the snapshot as a single MongoDB document via grove.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	rotawatch "github.com/xraph/rotawatch"
	"github.com/xraph/rotawatch/rotation"
	"github.com/xraph/rotawatch/store"
)

// compile-time interface check
var _ store.Store = (*Store)(nil)

// Store implements store.Store on MongoDB. The upsert replaces every
// field of the slot document, so readers never see a partial snapshot.
type Store struct {
	db   *grove.DB
	mdb  *mongodriver.MongoDB
	slot string
}

// Open connects to uri. The database is taken from the URI path,
// e.g. mongodb://localhost:27017/rotawatch.
func Open(ctx context.Context, uri string) (*Store, error) {
	drv := mongodriver.New()
	if err := drv.Open(ctx, uri); err != nil {
		return nil, fmt.Errorf("rotawatch/mongo: open: %w", err)
	}
	db, err := grove.Open(drv)
	if err != nil {
		return nil, fmt.Errorf("rotawatch/mongo: open: %w", err)
	}

	s := New(db)
	if err := s.Ping(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("rotawatch/mongo: ping: %w", err)
	}
	return s, nil
}

// New creates a store on an open grove database.
func New(db *grove.DB) *Store {
	return &Store{
		db:   db,
		mdb:  mongodriver.Unwrap(db),
		slot: store.DefaultSlot,
	}
}

// Load fetches the snapshot document.
func (s *Store) Load(ctx context.Context) (*rotation.Snapshot, error) {
	var m snapshotModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": s.slot}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, rotawatch.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("rotawatch/mongo: load: %w", err)
	}
	return fromSnapshotModel(&m), nil
}

// Save upserts the snapshot document in a single update.
func (s *Store) Save(ctx context.Context, snap *rotation.Snapshot) error {
	m := toSnapshotModel(s.slot, snap, time.Now().UTC())
	_, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.Slot}).
		SetUpdate(bson.M{"$set": bson.M{
			"rotation_id": m.RotationID,
			"pools":       m.Pools,
			"updated_at":  m.UpdatedAt,
		}}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("rotawatch/mongo: save: %w", err)
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

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
