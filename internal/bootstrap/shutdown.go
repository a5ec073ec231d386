package bootstrap

import (
	"context"
	"log/slog"

	"github.com/lifequest/lifequest/internal/server"
	"github.com/lifequest/lifequest/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server           *server.Server
	DailyResetWorker *worker.DailyResetWorker
	OverdueWorker    *worker.OverdueWorker
	WorkerPool       *worker.Pool
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in order:
// 1. HTTP server (stop accepting new requests)
// 2. Background workers (cancel pending timers and sweeps)
// 3. Worker pool (drain queued jobs)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.DailyResetWorker != nil {
		if err := components.DailyResetWorker.Shutdown(ctx); err != nil {
			slog.Error("Daily reset worker shutdown failed", "error", err)
		}
	}

	if components.OverdueWorker != nil {
		if err := components.OverdueWorker.Shutdown(ctx); err != nil {
			slog.Error("Overdue worker shutdown failed", "error", err)
		}
	}

	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	slog.Info(LogMsgServerStopped)
}
