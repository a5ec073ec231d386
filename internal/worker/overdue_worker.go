package worker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lifequest/lifequest/internal/hero"
	"github.com/lifequest/lifequest/internal/logger"
	"github.com/lifequest/lifequest/internal/task"
)

// OverdueWorker periodically sweeps every hero for tasks whose due date
// has passed and applies the failure penalty through the task service.
// Sweeps fan out over a worker pool so one slow hero does not stall the
// rest of the pass.
type OverdueWorker struct {
	heroService hero.Service
	taskService task.Service
	pool        *Pool
	interval    time.Duration
	shutdown    chan struct{}
	wg          sync.WaitGroup
}

// overdueSweep checks a single hero's tasks for missed due dates.
type overdueSweep struct {
	taskService task.Service
	heroID      uuid.UUID
}

func (j *overdueSweep) Process(ctx context.Context) error {
	outcomes, err := j.taskService.CheckOverdueTasks(ctx, j.heroID)
	if err != nil {
		return err
	}
	if len(outcomes) > 0 {
		logger.FromContext(ctx).Info(LogMsgOverdueTasksProcessed,
			"hero_id", j.heroID,
			"count", len(outcomes))
	}
	return nil
}

// NewOverdueWorker creates a new OverdueWorker
func NewOverdueWorker(heroService hero.Service, taskService task.Service, pool *Pool, interval time.Duration) *OverdueWorker {
	if interval <= 0 {
		interval = DefaultOverdueSweepInterval
	}
	return &OverdueWorker{
		heroService: heroService,
		taskService: taskService,
		pool:        pool,
		interval:    interval,
		shutdown:    make(chan struct{}),
	}
}

// Start begins the periodic sweep loop
func (w *OverdueWorker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.sweep()
			case <-w.shutdown:
				return
			}
		}
	}()
}

// sweep enqueues an overdue check for every hero
func (w *OverdueWorker) sweep() {
	ctx := context.Background()
	log := logger.FromContext(ctx)

	heroes, err := w.heroService.ListHeroes(ctx)
	if err != nil {
		log.Error(LogMsgOverdueSweepFailed, "error", err)
		return
	}

	for _, h := range heroes {
		// Dead heroes accumulate no further overdue damage; their
		// tasks surface again after respawn.
		if h.IsDead {
			continue
		}
		w.pool.Enqueue(&overdueSweep{taskService: w.taskService, heroID: h.ID})
	}

	log.Debug(LogMsgOverdueSweepScheduled, "heroes", len(heroes))
}

// Shutdown stops the sweep loop and waits for it to exit
func (w *OverdueWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down overdue worker")

	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("Overdue worker shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn("Overdue worker shutdown timeout")
		return ctx.Err()
	}
}
