// jobmate-dashboard-service
//
// Job discovery dashboard for a single synthetic catalog:
//   - match scoring of every job against the user's preferences
//   - dashboard and saved views with filters and sorting
//   - per-job application status with a bounded history
//   - a once-a-day top matches digest, generated on demand or by cron
//
// User records live in memory, Redis or PostgreSQL (STORE_BACKEND).
// Publishes EVENT_STATUS_CHANGED and EVENT_DIGEST_READY to Redis when
// REDIS_URL is set.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"jobmate/dashboard-service/internal/catalog"
	"jobmate/dashboard-service/internal/config"
	"jobmate/dashboard-service/internal/dashboard"
	"jobmate/dashboard-service/internal/db"
	"jobmate/dashboard-service/internal/digest"
	"jobmate/dashboard-service/internal/events"
	"jobmate/dashboard-service/internal/ledger"
	"jobmate/dashboard-service/internal/logging"
	"jobmate/dashboard-service/internal/pipeline"
	"jobmate/dashboard-service/internal/preferences"
	"jobmate/dashboard-service/internal/saved"
	"jobmate/dashboard-service/internal/scheduler"
	"jobmate/dashboard-service/internal/server"
	"jobmate/dashboard-service/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "[dashboard-service] %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── Redis ────────────────────────────────────────────────────────────────
	var rdb *redis.Client
	if cfg.Store.RedisURL != "" {
		logger.Info("connecting to Redis")
		rdb, err = db.NewRedisClient(ctx, cfg.Store.RedisURL, cfg.Store.ConnectTimeout)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer rdb.Close()
		logger.Info("Redis connected")
	}

	// ── Store ────────────────────────────────────────────────────────────────
	var kv store.KV
	switch cfg.Store.Backend {
	case config.BackendRedis:
		kv = store.NewRedisKV(rdb)
	case config.BackendPostgres:
		logger.Info("connecting to PostgreSQL")
		pool, err := db.NewPostgresPool(ctx, cfg.Store.DatabaseURL, db.PoolOptions{
			MaxConns:       cfg.Store.MaxConns,
			MinConns:       cfg.Store.MinConns,
			ConnectTimeout: cfg.Store.ConnectTimeout,
		})
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		defer pool.Close()
		if err := db.RunMigrations(ctx, pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		logger.Info("PostgreSQL connected, migrations applied")
		kv = store.NewPostgresKV(pool)
	default:
		logger.Warn("using in-memory store, user data will not survive a restart")
		kv = store.NewMemoryKV()
	}

	var publisher events.Publisher = events.Nop{}
	if rdb != nil {
		publisher = events.NewRedisPublisher(rdb, logger)
	}

	// ── Domain ───────────────────────────────────────────────────────────────
	cat := catalog.NewStatic(catalog.Generate(cfg.Catalog.Size, cfg.Catalog.Seed))
	logger.Info("catalog ready", zap.Int("jobs", cat.Len()))

	prefs := preferences.NewStore(kv, logger)
	gen := digest.NewGenerator(kv, cat, prefs, logger,
		digest.WithLatency(cfg.Digest.Latency),
		digest.WithPublisher(publisher))

	svc := dashboard.NewService(dashboard.Deps{
		Catalog:     cat,
		Preferences: prefs,
		Ledger:      ledger.New(kv, logger),
		Saved:       saved.NewStore(kv, logger),
		Digest:      gen,
		Toggle:      pipeline.NewMatchesOnlyToggle(),
		Events:      publisher,
		Location:    cfg.Digest.Location,
		Logger:      logger,
	})

	// ── Scheduler ────────────────────────────────────────────────────────────
	batch := scheduler.NewBatch(kv, gen, cfg.Digest.Location, logger)
	sched := scheduler.New(batch, cfg.Digest.Cron, cfg.Digest.Location, logger)
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	defer sched.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.NewRouter(dashboard.NewHandler(svc), logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("version", server.Version), zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	}

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	logger.Info("stopped")
	return nil
}
