// Package api provides the ops HTTP API: health, status, the stored
// snapshot, a manual check trigger and Prometheus metrics.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	rotawatch "github.com/xraph/rotawatch"
	"github.com/xraph/rotawatch/ratelimit"
)

// Handler is the root HTTP handler for the ops API.
type Handler struct {
	watcher  Watcher
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	limiter  *ratelimit.Limiter
	router   chi.Router
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithCheckLimiter throttles POST /check per client address.
func WithCheckLimiter(l *ratelimit.Limiter) HandlerOption {
	return func(h *Handler) { h.limiter = l }
}

// NewHandler creates a new ops API handler. A nil gatherer disables
// /metrics.
func NewHandler(w Watcher, gatherer prometheus.Gatherer, logger *slog.Logger, opts ...HandlerOption) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	h := &Handler{
		watcher:  w,
		gatherer: gatherer,
		logger:   logger,
		router:   chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	h.router.Use(h.panicRecovery, h.logging)

	h.router.Get("/healthz", h.health)
	h.router.Get("/status", h.status)
	h.router.Get("/snapshot", h.snapshot)
	h.router.Post("/check", h.check)

	if h.gatherer != nil {
		h.router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		h.logger.InfoContext(r.Context(), "api request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (h *Handler) panicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.ErrorContext(r.Context(), "panic recovered",
					"error", rec,
					"stack", string(debug.Stack()),
				)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// JSON helpers.

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best effort
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// isNotFound reports whether err means no snapshot has been stored yet.
func isNotFound(err error) bool {
	return errors.Is(err, rotawatch.ErrSnapshotNotFound)
}
