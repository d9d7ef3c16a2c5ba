package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"vista-ads/internal/adapter/geo"
	httpadapter "vista-ads/internal/adapter/http"
	"vista-ads/internal/adapter/memory"
	"vista-ads/internal/adapter/postgres"
	redisadapter "vista-ads/internal/adapter/redis"
	"vista-ads/internal/adapter/usecase"
	"vista-ads/internal/config"
	"vista-ads/internal/core/port"
	"vista-ads/internal/core/pricing"
	"vista-ads/internal/db"
	"vista-ads/internal/metrics"
)

// main loads configuration, optionally runs migrations and seeds demo
// data, wires the selection engine to its adapters and starts the HTTP
// server. On a termination signal it shuts the server down gracefully.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler)
	}

	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
		} else {
			logger.Info("migrations applied successfully")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Psql.SeedDemoData {
		if err = db.Seed(ctx, pool); err != nil {
			logger.Error("seed error", slog.Any("error", err))
		}
	}

	// The virtual impression store prefers Redis; a single node can run
	// on the in-process store instead.
	var kv port.KeyValueStore = memory.New()
	if cfg.Redis.Enabled {
		rc, err := redisadapter.Connect(ctx, cfg.Redis.Addr)
		if err != nil {
			logger.Warn("redis unavailable, using in-process impression store",
				slog.Any("error", err))
		} else {
			defer rc.Close()
			kv = redisadapter.NewStore(rc)
		}
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	repo := postgres.NewCampaignRepository(pool)
	ledger := postgres.NewLedger(pool)
	adjuster := pricing.NewAdjuster(pricing.Countries(), cfg.Selection.UnknownCountryMultiplier)
	svc := usecase.NewSelectionUseCase(repo, ledger, kv, geo.NewStaticResolver(nil), adjuster,
		usecase.Config{
			ProhibitedHourStart: cfg.Selection.ProhibitedHourStart,
			ProhibitedHourEnd:   cfg.Selection.ProhibitedHourEnd,
			ImpressionTTL:       cfg.Selection.ImpressionTTL,
		}, logger, m)

	handler := httpadapter.NewHandler(svc, logger, registry)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	value := <-quit
	exitCode = 128 + int(value.(syscall.Signal))

	ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
