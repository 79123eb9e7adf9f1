package rotawatch

import (
	"time"

	"github.com/xraph/rotawatch/delivery"
	"github.com/xraph/rotawatch/id"
)

// RunStatus is the final state of a pipeline run.
type RunStatus string

const (
	// RunCompleted means the summary was rendered, stored and sent.
	RunCompleted RunStatus = "completed"

	// RunSkipped means the stored snapshot already held the rotation,
	// typically after a restart.
	RunSkipped RunStatus = "skipped"

	// RunFailed means the run aborted before the snapshot was saved.
	RunFailed RunStatus = "failed"
)

// PoolResult is one pool's outcome within a run.
type PoolResult struct {
	Pool    string   `json:"pool"`
	Current []string `json:"current"`
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
}

// Run records one pipeline execution.
type Run struct {
	ID         id.ID             `json:"id"`
	RotationID string            `json:"rotation_id"`
	Status     RunStatus         `json:"status"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Pools      []PoolResult      `json:"pools,omitempty"`
	Deliveries []delivery.Result `json:"deliveries,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// Duration returns how long the run took.
func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

func (r *Run) clone() *Run {
	if r == nil {
		return nil
	}
	out := *r
	out.Pools = make([]PoolResult, len(r.Pools))
	for i, p := range r.Pools {
		out.Pools[i] = PoolResult{
			Pool:    p.Pool,
			Current: append([]string(nil), p.Current...),
			Added:   append([]string(nil), p.Added...),
			Removed: append([]string(nil), p.Removed...),
		}
	}
	out.Deliveries = append([]delivery.Result(nil), r.Deliveries...)
	return &out
}
