package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lifequest/lifequest/internal/bootstrap"
	"github.com/lifequest/lifequest/internal/concurrency"
	"github.com/lifequest/lifequest/internal/config"
	"github.com/lifequest/lifequest/internal/database"
	"github.com/lifequest/lifequest/internal/engine"
	"github.com/lifequest/lifequest/internal/hero"
	"github.com/lifequest/lifequest/internal/server"
	"github.com/lifequest/lifequest/internal/task"
	"github.com/lifequest/lifequest/internal/worker"
)

const shutdownTimeout = 30 * time.Second

// @title LifeQuest API
// @version 1.0
// @description Gamified task tracking: heroes earn XP and gold for completing real-life tasks.
// @BasePath /
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

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdle, cfg.DBMaxLife)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	eventBus, resilientPublisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	locks := concurrency.NewLockManager()
	gameEngine := engine.New(time.Now)

	heroService := hero.NewService(repos.Hero, repos.Store, resilientPublisher, locks)
	taskService := task.NewService(repos.Task, repos.Hero, repos.Streak, repos.Store, gameEngine, resilientPublisher, locks)

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:    eventBus,
		HeroService: heroService,
	}); err != nil {
		slog.Error("Failed to register event handlers", "error", err)
		os.Exit(1)
	}

	// Background workers
	pool := worker.NewPool(4, 64)
	pool.Start()

	dailyResetWorker := worker.NewDailyResetWorker(repos.Economy, resilientPublisher)
	dailyResetWorker.Start()

	overdueWorker := worker.NewOverdueWorker(heroService, taskService, pool, cfg.OverdueSweepInterval)
	overdueWorker.Start()

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, heroService, taskService)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-quit:
		slog.Info("Shutdown signal received", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:           srv,
		DailyResetWorker: dailyResetWorker,
		OverdueWorker:    overdueWorker,
		WorkerPool:       pool,
	})
}
