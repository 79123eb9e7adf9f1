package rotawatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/xraph/rotawatch/catalog"
	"github.com/xraph/rotawatch/delivery"
	"github.com/xraph/rotawatch/observability"
	"github.com/xraph/rotawatch/pool"
	"github.com/xraph/rotawatch/render"
	"github.com/xraph/rotawatch/rotation"
	"github.com/xraph/rotawatch/scheduler"
	"github.com/xraph/rotawatch/storage"
	"github.com/xraph/rotawatch/store"
)

// Watcher is the root rotation watcher.
type Watcher struct {
	config       Config
	catalog      *catalog.Catalog
	pools        []pool.Pool
	store        store.Store
	targets      []delivery.Target
	sinks        []storage.Sink
	renderConfig render.Config
	metrics      *observability.Metrics
	tracer       *observability.Tracer
	logger       *slog.Logger

	fetcher   *rotation.Fetcher
	renderer  *render.Renderer
	notifier  *delivery.Notifier
	scheduler *scheduler.Scheduler

	mu      sync.RWMutex
	lastRun *Run
}

// New creates a Watcher with the given options.
func New(opts ...Option) (*Watcher, error) {
	w := &Watcher{
		config:       DefaultConfig(),
		pools:        pool.Default(),
		renderConfig: render.DefaultConfig(),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	if w.catalog == nil {
		return nil, ErrNoCatalog
	}
	if w.store == nil {
		return nil, ErrNoStore
	}
	if len(w.pools) == 0 {
		return nil, ErrNoPools
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	if err := w.wireServices(); err != nil {
		return nil, err
	}
	return w, nil
}

// wireServices initializes the internal services after options have been applied.
func (w *Watcher) wireServices() error {
	local, err := storage.NewLocal(w.config.ImageDir)
	if err != nil {
		return fmt.Errorf("rotawatch: image dir: %w", err)
	}
	w.sinks = append([]storage.Sink{local}, w.sinks...)

	w.renderer, err = render.New(w.renderConfig, w.catalog)
	if err != nil {
		return fmt.Errorf("rotawatch: renderer: %w", err)
	}

	w.fetcher = rotation.NewFetcher(rotation.FetcherConfig{
		LatestURL: w.config.LatestURL,
		PoolURL:   w.config.PoolURL,
		Timeout:   w.config.RequestTimeout,
	}, w.catalog)

	w.notifier = delivery.NewNotifier(w.targets, delivery.NotifierConfig{
		RequestTimeout: w.config.DeliveryTimeout,
		Metrics:        w.metrics,
		Tracer:         w.tracer,
	}, w.logger)

	w.scheduler = scheduler.New(w.fetcher, func(ctx context.Context, rotationID string) (bool, error) {
		run, err := w.Update(ctx, rotationID)
		return run != nil && run.Status == RunCompleted, err
	}, scheduler.Config{
		Interval: w.config.CheckInterval,
		Metrics:  w.metrics,
		Tracer:   w.tracer,
	}, w.logger)

	return nil
}

// Start runs a check immediately and then every CheckInterval.
func (w *Watcher) Start(ctx context.Context) {
	w.logger.InfoContext(ctx, "watcher started",
		"pools", len(w.pools),
		"targets", len(w.targets),
		"interval", w.config.CheckInterval,
	)
	w.scheduler.Start(ctx)
}

// Stop waits for an in-flight check and stops the schedule.
func (w *Watcher) Stop(ctx context.Context) {
	w.scheduler.Stop(ctx)
	w.logger.InfoContext(ctx, "watcher stopped")
}

// Check runs a single check outside the schedule. It returns
// ErrCheckInProgress when another check is running.
func (w *Watcher) Check(ctx context.Context) (bool, error) {
	return w.scheduler.Check(ctx)
}

// Busy reports whether a check is running.
func (w *Watcher) Busy() bool { return w.scheduler.Busy() }

// LastRotationID returns the last rotation processed by this process.
func (w *Watcher) LastRotationID() string { return w.scheduler.LastRotationID() }

// LastRun returns a copy of the most recent run, or nil.
func (w *Watcher) LastRun() *Run {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastRun.clone()
}

func (w *Watcher) recordRun(r *Run) {
	w.mu.Lock()
	w.lastRun = r.clone()
	w.mu.Unlock()
}

// Catalog returns the map catalog.
func (w *Watcher) Catalog() *catalog.Catalog { return w.catalog }

// Store returns the snapshot store.
func (w *Watcher) Store() store.Store { return w.store }

// Pools returns the watched pools.
func (w *Watcher) Pools() []pool.Pool { return append([]pool.Pool(nil), w.pools...) }

// Sinks returns the image sinks, local first.
func (w *Watcher) Sinks() []storage.Sink { return append([]storage.Sink(nil), w.sinks...) }
