// Package scheduler decides when the pipeline runs. It checks the latest
// rotation ID once at start and then on every tick, and runs the pipeline
// only when the ID differs from the last one processed successfully.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/xraph/rotawatch/observability"
)

// DefaultInterval is the time between checks.
const DefaultInterval = 15 * time.Minute

// ErrCheckInProgress is returned when a check starts while another is running.
var ErrCheckInProgress = errors.New("scheduler: check already in progress")

// Check results, as recorded in metrics.
const (
	ResultChanged   = "changed"
	ResultUnchanged = "unchanged"
	ResultBusy      = "busy"
	ResultError     = "error"
)

// Source reports the current rotation ID.
type Source interface {
	LatestRotationID(ctx context.Context) (string, error)
}

// UpdateFunc runs the pipeline for a new rotation. It reports false when
// the run did no work, e.g. because the rotation was already stored.
type UpdateFunc func(ctx context.Context, rotationID string) (bool, error)

// Config holds scheduler configuration.
type Config struct {
	Interval time.Duration
	Metrics  *observability.Metrics
	Tracer   *observability.Tracer
}

// Scheduler runs checks on a ticker and guards against overlap.
type Scheduler struct {
	source Source
	update UpdateFunc
	config Config
	logger *slog.Logger

	busy atomic.Bool

	mu     sync.Mutex
	lastID string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a scheduler.
func New(source Source, update UpdateFunc, cfg Config, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	return &Scheduler{
		source: source,
		update: update,
		config: cfg,
		logger: logger,
	}
}

// Start runs one check immediately and then one per interval until Stop is
// called or ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(ctx)
	}()
}

// Stop ends the loop and waits for an in-flight check to finish.
func (s *Scheduler) Stop(_ context.Context) {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context) {
	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick runs a check that is not interrupted by Stop: once a pipeline has
// started it runs to completion, bounded by its own request timeouts.
func (s *Scheduler) tick(ctx context.Context) {
	_, err := s.Check(context.WithoutCancel(ctx))
	if errors.Is(err, ErrCheckInProgress) {
		s.logger.DebugContext(ctx, "skipped tick, check in progress")
	}
}

// Check fetches the latest rotation ID and runs the pipeline when it
// changed. It reports whether the pipeline ran and published. A failed
// pipeline leaves the last processed ID unchanged, so the next check
// retries.
func (s *Scheduler) Check(ctx context.Context) (bool, error) {
	if !s.busy.CompareAndSwap(false, true) {
		s.config.Metrics.RecordCheck(ResultBusy)
		return false, ErrCheckInProgress
	}
	defer s.busy.Store(false)

	ctx, span := s.config.Tracer.StartCheckSpan(ctx)
	changed, err := s.check(ctx)
	observability.End(span, err)
	return changed, err
}

func (s *Scheduler) check(ctx context.Context) (bool, error) {
	rotationID, err := s.source.LatestRotationID(ctx)
	if err != nil {
		s.config.Metrics.RecordCheck(ResultError)
		s.logger.ErrorContext(ctx, "fetch latest rotation failed", "error", err)
		return false, err
	}

	last := s.LastRotationID()
	if rotationID == last {
		s.config.Metrics.RecordCheck(ResultUnchanged)
		s.logger.DebugContext(ctx, "rotation unchanged", "rotation_id", rotationID)
		return false, nil
	}

	s.logger.InfoContext(ctx, "rotation changed", "rotation_id", rotationID, "previous", last)

	published, err := s.update(ctx, rotationID)
	if err != nil {
		s.config.Metrics.RecordCheck(ResultError)
		s.logger.ErrorContext(ctx, "update failed", "rotation_id", rotationID, "error", err)
		return false, err
	}

	s.setLastRotationID(rotationID)
	if !published {
		s.config.Metrics.RecordCheck(ResultUnchanged)
		return false, nil
	}
	s.config.Metrics.RecordCheck(ResultChanged)
	return true, nil
}

// Busy reports whether a check is running.
func (s *Scheduler) Busy() bool { return s.busy.Load() }

// LastRotationID returns the last successfully processed rotation ID, or
// "" before the first success.
func (s *Scheduler) LastRotationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastID
}

func (s *Scheduler) setLastRotationID(rotationID string) {
	s.mu.Lock()
	s.lastID = rotationID
	s.mu.Unlock()
}
