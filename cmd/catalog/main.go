package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"APIDirectory/internal/catalog"
	"APIDirectory/internal/config"
	"APIDirectory/pkg/kit"
)

const rateWindow = time.Minute

func main() {
	service := "catalog"

	cfgFile := flag.String("config", os.Getenv("APIDIR_CONFIG"), "config file (default .apidir.yaml)")
	flag.Parse()

	if err := config.Init(*cfgFile); err != nil {
		kit.NewLogger(service, false).Fatal("config", zap.Error(err))
	}
	cfg, err := config.Load()
	if err != nil {
		kit.NewLogger(service, false).Fatal("config", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.Debug)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	store, closeStore, err := cfg.OpenStore()
	if err != nil {
		log.Fatal("open catalog source", zap.Error(err))
	}
	defer func() { _ = closeStore() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	holder := &catalog.Holder{
		Store:   store,
		Timeout: cfg.LoadTimeout,
		Log:     log,
		Metrics: catalog.NewLoadMetrics(reg),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A failed first load is not fatal: /api/apis reports it and the next
	// request tries again.
	if _, err := holder.Get(ctx); err != nil {
		log.Warn("initial catalog load failed", zap.Error(err))
	}

	if fs, ok := store.(*catalog.FileStore); ok && cfg.Watch {
		go watchCatalog(ctx, fs, holder, log)
	}

	s := &catalog.Server{Catalog: holder, Log: log}
	if cfg.RateLimit.PerMinute > 0 {
		s.Limiter = kit.NewIPRateLimiter(cfg.RateLimit.PerMinute, rateWindow)
	}

	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
		CORSOrigins:    cfg.CORS.Origins,
	})

	log.Info("serving catalog",
		zap.String("source", cfg.Source.Kind),
		zap.String("addr", cfg.Addr),
	)
	if err := kit.RunHTTPServer(ctx, cfg.Addr, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func watchCatalog(ctx context.Context, fs *catalog.FileStore, holder *catalog.Holder, log *zap.Logger) {
	log.Info("watching catalog file", zap.String("path", fs.Path()))
	err := fs.Watch(ctx, func() {
		if _, err := holder.Reload(ctx); err != nil {
			log.Warn("catalog reload failed, keeping previous snapshot", zap.Error(err))
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("catalog watch stopped", zap.Error(err))
	}
}
