package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/CloverPit_Go/internal/bootstrap"
	"github.com/osse101/CloverPit_Go/internal/concurrency"
	"github.com/osse101/CloverPit_Go/internal/config"
	"github.com/osse101/CloverPit_Go/internal/game"
	"github.com/osse101/CloverPit_Go/internal/handler"
	"github.com/osse101/CloverPit_Go/internal/scheduler"
	"github.com/osse101/CloverPit_Go/internal/server"
	"github.com/osse101/CloverPit_Go/internal/slots"
	"github.com/osse101/CloverPit_Go/internal/tracing"
	"github.com/osse101/CloverPit_Go/internal/worker"
)

const shutdownTimeout = 15 * time.Second

// @title CloverPit API
// @version 1.0
// @description Slot-machine roguelike: spin, pay the debt, buy lucky items.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	if err := run(cfg); err != nil {
		slog.Error("CloverPit exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Enabled:     cfg.OTELEnabled,
		Endpoint:    cfg.OTELEndpoint,
		ServiceName: cfg.ServiceName,
		Version:     cfg.Version,
		Environment: cfg.Environment,
	})
	if err != nil {
		return err
	}

	repos, err := bootstrap.InitializeRepositories(ctx, cfg)
	if err != nil {
		_ = shutdownTracing(context.Background())
		return err
	}

	if _, err := bootstrap.SyncItems(ctx, repos.Catalog, cfg.ItemsConfigPath); err != nil {
		repos.Close()
		_ = shutdownTracing(context.Background())
		return err
	}

	limiter, closeLimiter, err := bootstrap.NewRateLimiter(ctx, cfg)
	if err != nil {
		repos.Close()
		_ = shutdownTracing(context.Background())
		return err
	}

	handler.InitValidator()

	locks := concurrency.NewLockManager(repos.Locks)
	gameService := game.NewService(repos.Game, locks, slots.NewEngine(nil))

	pool := worker.NewPool(1, 4)
	pool.Start()
	sched := scheduler.New(pool)
	sched.Schedule(cfg.LockSweepInterval, worker.NewLockSweepJob(locks))

	srv := server.NewServer(cfg, repos.Pool, gameService, limiter)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:           srv,
		GameService:      gameService,
		Scheduler:        sched,
		WorkerPool:       pool,
		TracingShutdown:  shutdownTracing,
		CloseRateLimiter: closeLimiter,
		Repositories:     repos,
	})

	return err
}
