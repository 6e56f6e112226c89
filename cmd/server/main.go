package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/neexbeast/tourguide/internal/api"
	"github.com/neexbeast/tourguide/internal/cache"
	"github.com/neexbeast/tourguide/internal/config"
	"github.com/neexbeast/tourguide/internal/logging"
	"github.com/neexbeast/tourguide/internal/metrics"
	"github.com/neexbeast/tourguide/internal/storage"
	"github.com/neexbeast/tourguide/internal/tool"
	"github.com/neexbeast/tourguide/internal/tour"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, logCloser, err := logging.New(logging.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Dir:        cfg.LogDir,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	}, os.Stdout)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = logCloser.Close() }()
	slog.SetDefault(log)

	ctx := context.Background()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	// Wire dependencies.
	m := metrics.New()
	client := tour.NewClient(tour.ClientConfig{
		BaseURL:    cfg.TourAPIBaseURL,
		ServiceKey: cfg.TourAPIKey,
		MobileApp:  cfg.TourMobileApp,
		Timeout:    cfg.TourTimeout,
	}, tour.WithLogger(log), tour.WithObserver(m))

	coreOpts := []tour.CoreOption{tour.WithCoreLogger(log), tour.WithCoreObserver(m)}
	svc := tour.NewService(
		tour.NewAreaBasedCore(client, store, coreOpts...),
		tour.NewLocationBasedCore(client, store, coreOpts...),
		tour.NewDetailCore(client, store, coreOpts...),
		log,
	)
	tools := tool.NewTourTools(svc, tool.WithLogger(log), tool.WithRecorder(m))

	evictor := cache.NewEvictor(store, cfg.EvictLocation, log, tour.Namespaces(), cache.WithRecorder(m))
	evictor.Start(ctx)
	defer evictor.Stop()

	handlers := api.NewHandlers(svc, tools, evictor, log)
	router := api.NewRouter(handlers, cfg.BearerToken, store, m.Handler(), log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("server goroutine panicked", "recover", r)
				errCh <- fmt.Errorf("server panicked: %v", r)
			}
		}()
		log.Info("server starting", "port", cfg.Port, "cache_backend", cfg.CacheBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listening: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server shut down cleanly")
	return nil
}

// cacheBackend is a Store that can also answer the health check.
type cacheBackend interface {
	cache.Store
	api.Pinger
}

// openStore connects the backend selected by CACHE_BACKEND. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (cacheBackend, func(), error) {
	switch cfg.CacheBackend {
	case config.BackendRedis:
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		log.Info("cache backend ready", "backend", "redis")
		return cache.NewRedisStore(client), func() { _ = client.Close() }, nil

	case config.BackendPostgres:
		pool, err := storage.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		if err := storage.RunMigrations(ctx, pool, storage.Migrations, "migrations"); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		log.Info("migrations applied")
		return storage.NewCacheRepository(pool), pool.Close, nil

	default:
		log.Info("cache backend ready", "backend", "memory")
		return cache.NewMemoryStore(), func() {}, nil
	}
}
