package rotawatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/xraph/rotawatch/delivery"
	"github.com/xraph/rotawatch/id"
	"github.com/xraph/rotawatch/render"
	"github.com/xraph/rotawatch/rotation"
)

// Update runs the pipeline for rotationID and returns the run record.
//
// The critical path:
//  1. Load the stored snapshot; stop with status skipped if it already
//     holds rotationID.
//  2. Fetch every pool in order and resolve map names (abort on first error).
//  3. Diff each pool against the stored snapshot.
//  4. Render the summary and write it to every image sink.
//  5. Save the new snapshot.
//  6. Upload the summary to every webhook target.
//
// Webhook failures are recorded on the run but never fail it.
func (w *Watcher) Update(ctx context.Context, rotationID string) (*Run, error) {
	run := &Run{
		ID:         id.NewRunID(),
		RotationID: rotationID,
		StartedAt:  time.Now().UTC(),
	}
	logger := w.logger.With("run_id", run.ID, "rotation_id", rotationID)

	ctx, span := w.tracer.StartRunSpan(ctx, run.ID.String(), rotationID)

	err := w.runPipeline(ctx, run, logger)

	run.FinishedAt = time.Now().UTC()
	if err != nil {
		run.Status = RunFailed
		run.Error = err.Error()
	}

	w.recordRun(run)
	w.metrics.RecordRun(string(run.Status), run.Duration().Seconds(), run.FinishedAt.Unix())
	w.tracer.EndRunSpan(span, string(run.Status), err)

	return run.clone(), err
}

func (w *Watcher) runPipeline(ctx context.Context, run *Run, logger *slog.Logger) error {
	// 1. Previous snapshot and redundant-trigger check.
	prev, err := w.store.Load(ctx)
	switch {
	case errors.Is(err, ErrSnapshotNotFound):
		logger.InfoContext(ctx, "no previous snapshot, every map counts as added")
		prev = nil
	case err != nil:
		return fmt.Errorf("rotawatch: load snapshot: %w", err)
	}

	if prev != nil && prev.RotationID == run.RotationID {
		logger.InfoContext(ctx, "rotation unchanged, likely a restart")
		run.Status = RunSkipped
		return nil
	}

	// 2-3. Fetch and diff each pool.
	snap := rotation.NewSnapshot(run.RotationID)
	panels := make([]render.Panel, 0, len(w.pools))
	for _, p := range w.pools {
		names, err := w.fetcher.FetchNames(ctx, p.Key)
		if err != nil {
			return fmt.Errorf("rotawatch: fetch pool %s: %w", p.Key, err)
		}
		snap.Pools[p.Key] = names

		diff := rotation.Diff(prev.Pool(p.Key), names)
		panels = append(panels, render.Panel{Pool: p, Diff: diff, Current: names})
		run.Pools = append(run.Pools, PoolResult{
			Pool:    p.Key,
			Current: names,
			Added:   diff.Added,
			Removed: diff.Removed,
		})

		logger.DebugContext(ctx, "pool fetched",
			"pool", p.Key, "maps", len(names), "added", len(diff.Added), "removed", len(diff.Removed))
	}

	// 4. Render and write the image.
	summary, err := w.renderer.RenderPNG(panels)
	if err != nil {
		return fmt.Errorf("rotawatch: render summary: %w", err)
	}
	for _, sink := range w.sinks {
		if err := sink.Put(ctx, w.config.ImageKey, summary, render.ContentType); err != nil {
			logger.ErrorContext(ctx, "image write failed", "sink", sink.Name(), "error", err)
			return fmt.Errorf("%w: %s: %w", ErrImageWrite, sink.Name(), err)
		}
	}

	// 5. Persist the snapshot before anyone is told about it.
	if err := w.store.Save(ctx, snap); err != nil {
		logger.ErrorContext(ctx, "snapshot write failed", "error", err)
		return fmt.Errorf("%w: %w", ErrSnapshotWrite, err)
	}

	// 6. Fan out.
	run.Deliveries = w.notifier.Notify(ctx, delivery.Message{
		Content:  w.config.MessageContent,
		Username: w.config.Username,
		File: delivery.Attachment{
			Name:        w.config.ImageKey,
			ContentType: render.ContentType,
			Data:        summary,
		},
	})

	run.Status = RunCompleted
	logger.InfoContext(ctx, "rotation processed",
		"pools", len(run.Pools), "deliveries", len(run.Deliveries))
	return nil
}
