package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/CloverPit_Go/internal/game"
	"github.com/osse101/CloverPit_Go/internal/scheduler"
	"github.com/osse101/CloverPit_Go/internal/server"
	"github.com/osse101/CloverPit_Go/internal/tracing"
	"github.com/osse101/CloverPit_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server           *server.Server
	GameService      game.Service
	Scheduler        *scheduler.Scheduler
	WorkerPool       *worker.Pool
	TracingShutdown  tracing.ShutdownFunc
	CloseRateLimiter func()
	Repositories     *Repositories
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Game service (wait for in-flight operations)
// 3. Scheduler and workers
// 4. Tracing, rate limiter and storage
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.GameService != nil {
		if err := c.GameService.Shutdown(ctx); err != nil {
			slog.Error(LogMsgGameShutdownFailed, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.WorkerPool != nil {
		c.WorkerPool.Stop()
	}

	if c.TracingShutdown != nil {
		if err := c.TracingShutdown(ctx); err != nil {
			slog.Error(LogMsgTracingShutdownFailed, "error", err)
		}
	}

	if c.CloseRateLimiter != nil {
		c.CloseRateLimiter()
	}

	if c.Repositories != nil {
		c.Repositories.Close()
	}

	slog.Info(LogMsgServerStopped)
}
