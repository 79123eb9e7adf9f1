// Package setup turns a FileConfig into a ready Watcher. It is shared by
// the daemon and the Lambda entry point.
package setup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	rotawatch "github.com/xraph/rotawatch"
	"github.com/xraph/rotawatch/catalog"
	"github.com/xraph/rotawatch/observability"
	"github.com/xraph/rotawatch/signature"
	"github.com/xraph/rotawatch/storage"
	"github.com/xraph/rotawatch/store"
	"github.com/xraph/rotawatch/store/dynamo"
	"github.com/xraph/rotawatch/store/file"
	"github.com/xraph/rotawatch/store/memory"
	"github.com/xraph/rotawatch/store/mongo"
	"github.com/xraph/rotawatch/store/postgres"
	"github.com/xraph/rotawatch/store/redis"
	"github.com/xraph/rotawatch/store/sqlite"
)

// ErrUnknownDriver is returned for an unsupported store driver.
var ErrUnknownDriver = errors.New("setup: unknown store driver")

// OpenStore opens and migrates the snapshot backend named by cfg.Driver.
func OpenStore(ctx context.Context, cfg rotawatch.StoreConfig) (store.Store, error) {
	var (
		s   store.Store
		err error
	)

	switch strings.ToLower(cfg.Driver) {
	case "", "file":
		s = file.New(cfg.Path)
	case "memory":
		s = memory.New()
	case "redis":
		s, err = redis.Open(ctx, cfg.URL, cfg.Key)
	case "sqlite":
		s, err = sqlite.Open(ctx, cfg.Path)
	case "postgres":
		s, err = postgres.Open(ctx, cfg.URL)
	case "mongo":
		s, err = mongo.Open(ctx, cfg.URL)
	case "dynamodb":
		s, err = dynamo.Open(ctx, cfg.Table, cfg.Region)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx, s); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("setup: migrate %s store: %w", cfg.Driver, err)
	}
	return s, nil
}

// Build loads the catalog, opens the store and creates the Watcher. The
// returned store must be closed by the caller. reg may be nil to disable
// metrics.
func Build(ctx context.Context, cfg rotawatch.FileConfig, reg prometheus.Registerer, logger *slog.Logger) (*rotawatch.Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "catalog loaded", "path", cfg.Catalog, "maps", cat.Len())

	s, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "store opened", "driver", cfg.Store.Driver)

	for _, h := range cfg.Webhooks {
		if h.Secret != "" && !signature.IsGenerated(h.Secret) {
			logger.WarnContext(ctx, "webhook secret was not made by -gen-secret", "webhook", h.Name)
		}
	}

	opts := append(cfg.Options(),
		rotawatch.WithCatalog(cat),
		rotawatch.WithStore(s),
		rotawatch.WithLogger(logger),
		rotawatch.WithTracer(observability.NewTracer()),
	)
	if reg != nil {
		opts = append(opts, rotawatch.WithMetrics(observability.NewMetrics(reg)))
	}

	if cfg.S3.Bucket != "" {
		mirror, err := storage.NewS3(cfg.S3)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		opts = append(opts, rotawatch.WithSink(mirror))
		logger.InfoContext(ctx, "s3 mirror enabled", "bucket", cfg.S3.Bucket)
	}

	w, err := rotawatch.New(opts...)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	return w, nil
}
