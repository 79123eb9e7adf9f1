package api

import (
	"context"
	"errors"
	"math"
	"net"
	"net/http"
	"strconv"

	rotawatch "github.com/xraph/rotawatch"
	"github.com/xraph/rotawatch/store"
)

// Watcher is the part of *rotawatch.Watcher the API needs.
type Watcher interface {
	Check(ctx context.Context) (bool, error)
	Busy() bool
	LastRotationID() string
	LastRun() *rotawatch.Run
	Store() store.Store
}

// compile-time interface check
var _ Watcher = (*rotawatch.Watcher)(nil)

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	LastRotationID string         `json:"last_rotation_id"`
	Busy           bool           `json:"busy"`
	LastRun        *rotawatch.Run `json:"last_run,omitempty"`
}

// CheckResponse is the body of a successful POST /check.
type CheckResponse struct {
	Changed    bool   `json:"changed"`
	RotationID string `json:"rotation_id"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.watcher.Store().Ping(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "store ping failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		LastRotationID: h.watcher.LastRotationID(),
		Busy:           h.watcher.Busy(),
		LastRun:        h.watcher.LastRun(),
	})
}

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.watcher.Store().Load(r.Context())
	if isNotFound(err) {
		writeError(w, http.StatusNotFound, "no snapshot stored")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	client := clientKey(r)
	if !h.limiter.Allow(client) {
		retry := math.Ceil(h.limiter.RetryAfter(client).Seconds())
		w.Header().Set("Retry-After", strconv.Itoa(int(retry)))
		writeError(w, http.StatusTooManyRequests, "check rate limit exceeded")
		return
	}

	// A client hanging up must not abort a run after the snapshot is saved,
	// or the new rotation would never be delivered.
	changed, err := h.watcher.Check(context.WithoutCancel(r.Context()))
	if errors.Is(err, rotawatch.ErrCheckInProgress) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, CheckResponse{
		Changed:    changed,
		RotationID: h.watcher.LastRotationID(),
	})
}

// clientKey identifies the caller for rate limiting.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
