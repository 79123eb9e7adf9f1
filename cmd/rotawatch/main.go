// Command rotawatch watches the map-pool rotation and posts a summary
// image to webhooks whenever it changes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	rotawatch "github.com/xraph/rotawatch"
	"github.com/xraph/rotawatch/api"
	"github.com/xraph/rotawatch/internal/logging"
	"github.com/xraph/rotawatch/internal/setup"
	"github.com/xraph/rotawatch/ratelimit"
	"github.com/xraph/rotawatch/signature"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	genSecret := flag.Bool("gen-secret", false, "print a new webhook signing secret and exit")
	once := flag.Bool("once", false, "run a single check and exit")
	flag.Parse()

	if *genSecret {
		secret, err := signature.GenerateSecret()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(secret)
		return
	}

	if err := run(*configPath, *once); err != nil {
		slog.Error("rotawatch exited", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, once bool) error {
	cfg, err := rotawatch.LoadFileConfig(configPath)
	if err != nil {
		return err
	}

	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	w, err := setup.Build(ctx, cfg, reg, logger)
	if err != nil {
		return err
	}
	defer w.Store().Close()

	if once {
		_, err := w.Check(ctx)
		return err
	}

	var srv *http.Server
	if cfg.ListenAddr != "" {
		srv = &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           api.NewHandler(w, reg, logger, api.WithCheckLimiter(ratelimit.New(cfg.CheckRateLimit, 1))),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("ops api listening", "addr", cfg.ListenAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("ops api stopped", "error", err)
				stop()
			}
		}()
	}

	w.Start(ctx)
	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("ops api shutdown", "error", err)
		}
	}
	w.Stop(shutdownCtx)
	return nil
}
