package rotawatch

import (
	"log/slog"
	"time"

	"github.com/xraph/rotawatch/catalog"
	"github.com/xraph/rotawatch/delivery"
	"github.com/xraph/rotawatch/observability"
	"github.com/xraph/rotawatch/pool"
	"github.com/xraph/rotawatch/render"
	"github.com/xraph/rotawatch/storage"
	"github.com/xraph/rotawatch/store"
)

// Option configures a Watcher.
type Option func(*Watcher) error

// WithStore sets the snapshot store.
func WithStore(s store.Store) Option {
	return func(w *Watcher) error {
		w.store = s
		return nil
	}
}

// WithCatalog sets the map catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(w *Watcher) error {
		w.catalog = c
		return nil
	}
}

// WithPools replaces the watched pools. Order is display order.
func WithPools(pools ...pool.Pool) Option {
	return func(w *Watcher) error {
		w.pools = append([]pool.Pool(nil), pools...)
		return nil
	}
}

// WithTargets sets the webhook targets, attempted in order.
func WithTargets(targets ...delivery.Target) Option {
	return func(w *Watcher) error {
		w.targets = append([]delivery.Target(nil), targets...)
		return nil
	}
}

// WithSink adds an image sink after the local one.
func WithSink(s storage.Sink) Option {
	return func(w *Watcher) error {
		w.sinks = append(w.sinks, s)
		return nil
	}
}

// WithRenderConfig sets the summary layout.
func WithRenderConfig(cfg render.Config) Option {
	return func(w *Watcher) error {
		w.renderConfig = cfg
		return nil
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) error {
		w.logger = logger
		return nil
	}
}

// WithMetrics sets the metric instruments.
func WithMetrics(m *observability.Metrics) Option {
	return func(w *Watcher) error {
		w.metrics = m
		return nil
	}
}

// WithTracer sets the tracer.
func WithTracer(t *observability.Tracer) Option {
	return func(w *Watcher) error {
		w.tracer = t
		return nil
	}
}

// WithCheckInterval sets the time between rotation checks.
func WithCheckInterval(d time.Duration) Option {
	return func(w *Watcher) error {
		w.config.CheckInterval = d
		return nil
	}
}

// WithRequestTimeout sets the HTTP timeout for rotation API requests.
func WithRequestTimeout(d time.Duration) Option {
	return func(w *Watcher) error {
		w.config.RequestTimeout = d
		return nil
	}
}

// WithDeliveryTimeout sets the HTTP timeout per webhook upload.
func WithDeliveryTimeout(d time.Duration) Option {
	return func(w *Watcher) error {
		w.config.DeliveryTimeout = d
		return nil
	}
}

// WithAPI sets the rotation API endpoints. Empty values keep the defaults.
func WithAPI(latestURL, poolURL string) Option {
	return func(w *Watcher) error {
		if latestURL != "" {
			w.config.LatestURL = latestURL
		}
		if poolURL != "" {
			w.config.PoolURL = poolURL
		}
		return nil
	}
}

// WithImageDir sets the directory the local sink writes to.
func WithImageDir(dir string) Option {
	return func(w *Watcher) error {
		w.config.ImageDir = dir
		return nil
	}
}

// WithMessage sets the text and display name posted with the image.
func WithMessage(content, username string) Option {
	return func(w *Watcher) error {
		w.config.MessageContent = content
		w.config.Username = username
		return nil
	}
}

// WithImageKey sets the summary's file name and object key.
func WithImageKey(key string) Option {
	return func(w *Watcher) error {
		w.config.ImageKey = key
		return nil
	}
}
