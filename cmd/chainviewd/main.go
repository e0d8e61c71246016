// Command chainviewd serves the timeline query HTTP API described by
// chainview's route grammar, backed by an in-process store.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erigontech/chainview/aliasresolve"
	"github.com/erigontech/chainview/api"
	"github.com/erigontech/chainview/config"
	"github.com/erigontech/chainview/dbpool"
	"github.com/erigontech/chainview/kv"
	"github.com/erigontech/chainview/log"
	"github.com/erigontech/chainview/metrics"
	"github.com/erigontech/chainview/ratelimit"
	"github.com/erigontech/chainview/store"
	"github.com/erigontech/chainview/validate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to a YAML config file; defaults are used when omitted",
	}
	listenFlag = &cli.StringFlag{
		Name:  "listen",
		Usage: "override the configured listen address",
	}
)

func main() {
	app := &cli.App{
		Name:   "chainviewd",
		Usage:  "serve the chainview timeline query API",
		Flags:  []cli.Flag{configFlag, listenFlag},
		Action: serve,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if addr := c.String("listen"); addr != "" {
		cfg.ListenAddr = addr
	}

	logger, err := log.New(log.Options{Path: cfg.LogPath})
	if err != nil {
		return fmt.Errorf("chainviewd: build logger: %w", err)
	}
	defer logger.Sync()

	// The in-process reference store never actually disconnects, so every
	// dial returns the same instance; a production Dialer would open a fresh
	// connection to the document-store collaborator instead.
	s := store.NewMemStore()
	dial := func(context.Context) (store.Store, error) { return s, nil }
	pool, err := dbpool.New(c.Context, dial, cfg.Store.MaxConcurrent)
	if err != nil {
		return fmt.Errorf("chainviewd: build store pool: %w", err)
	}
	defer pool.Close()

	alias, err := aliasresolve.New(s, cfg.Store.AliasCacheSize, cfg.Store.AliasCacheTTL)
	if err != nil {
		return fmt.Errorf("chainviewd: build alias resolver: %w", err)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	limiter := ratelimit.New(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	a := &api.API{
		Pool:               pool,
		Alias:              alias,
		Bounds:             validate.LimitBounds{Min: cfg.PageSize.Min, Max: cfg.PageSize.Max, Default: cfg.CountRange.Preset},
		MultisigCollection: kv.MultisigAccounts,
		Metrics:            m,
		Log:                logger,
	}

	mux := http.NewServeMux()
	mux.Handle("/", api.NewRouter(a, limiter))
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting chainviewd", "addr", cfg.ListenAddr)
	return runUntilSignal(srv, logger)
}

func loadConfig(c *cli.Context) (config.Config, error) {
	path := c.String("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// runUntilSignal starts srv and blocks until SIGINT/SIGTERM, then drains
// in-flight requests within a bounded grace period before returning.
func runUntilSignal(srv *http.Server, logger *log.Logger) error {
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("chainviewd: shutdown: %w", err)
		}
		return <-serveErr
	}
}
