package rotawatch

import (
	"errors"

	"github.com/xraph/rotawatch/scheduler"
)

// Sentinel errors returned by rotawatch operations.
var (
	// ErrNoStore is returned when a Watcher is created without a snapshot store.
	ErrNoStore = errors.New("rotawatch: store is required")

	// ErrNoCatalog is returned when a Watcher is created without a map catalog.
	ErrNoCatalog = errors.New("rotawatch: catalog is required")

	// ErrNoPools is returned when a Watcher is created with no pools to watch.
	ErrNoPools = errors.New("rotawatch: at least one pool is required")

	// ErrSnapshotNotFound is returned by stores when no snapshot has been saved yet.
	ErrSnapshotNotFound = errors.New("rotawatch: snapshot not found")

	// ErrSnapshotWrite wraps a failure to persist the new snapshot.
	ErrSnapshotWrite = errors.New("rotawatch: snapshot write failed")

	// ErrImageWrite wraps a failure to write the rendered summary to a sink.
	ErrImageWrite = errors.New("rotawatch: image write failed")

	// ErrInvalidConfig is returned when a config file or override cannot be used.
	ErrInvalidConfig = errors.New("rotawatch: invalid config")

	// ErrCheckInProgress is returned when a check is requested while another runs.
	ErrCheckInProgress = scheduler.ErrCheckInProgress
)
