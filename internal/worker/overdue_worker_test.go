package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/lifequest/lifequest/internal/domain"
	"github.com/lifequest/lifequest/internal/engine"
	"github.com/lifequest/lifequest/internal/event"
	"github.com/lifequest/lifequest/internal/hero"
	"github.com/lifequest/lifequest/internal/task"
)

// stubHeroService returns a fixed hero list; other methods are unused here.
type stubHeroService struct {
	heroes []*domain.Hero
}

func (s *stubHeroService) CreateHero(ctx context.Context, name string) (*domain.Hero, error) {
	return nil, nil
}
func (s *stubHeroService) GetHero(ctx context.Context, id uuid.UUID) (*domain.Hero, error) {
	return nil, nil
}
func (s *stubHeroService) ListHeroes(ctx context.Context) ([]*domain.Hero, error) {
	return s.heroes, nil
}
func (s *stubHeroService) GetHeroSummary(ctx context.Context, id uuid.UUID) (*hero.Summary, error) {
	return nil, nil
}
func (s *stubHeroService) RespawnHero(ctx context.Context, id uuid.UUID) (*domain.Hero, error) {
	return nil, nil
}
func (s *stubHeroService) DeleteHero(ctx context.Context, id uuid.UUID) error { return nil }
func (s *stubHeroService) RegisterInvalidation(bus event.Bus)                 {}

// stubTaskService counts overdue checks; other methods are unused here.
type stubTaskService struct {
	checked int32
}

func (s *stubTaskService) CreateTask(ctx context.Context, input task.CreateTaskInput) (*domain.Task, error) {
	return nil, nil
}
func (s *stubTaskService) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return nil, nil
}
func (s *stubTaskService) ListTasks(ctx context.Context, heroID uuid.UUID) ([]*domain.Task, error) {
	return nil, nil
}
func (s *stubTaskService) UpdateTask(ctx context.Context, id uuid.UUID, input task.UpdateTaskInput) (*domain.Task, error) {
	return nil, nil
}
func (s *stubTaskService) DeleteTask(ctx context.Context, id uuid.UUID) error { return nil }
func (s *stubTaskService) CompleteTask(ctx context.Context, taskID uuid.UUID) (*engine.CompletionResult, error) {
	return nil, nil
}
func (s *stubTaskService) FailTask(ctx context.Context, taskID uuid.UUID) (*engine.FailureResult, error) {
	return nil, nil
}
func (s *stubTaskService) CheckOverdueTasks(ctx context.Context, heroID uuid.UUID) ([]engine.OverdueOutcome, error) {
	atomic.AddInt32(&s.checked, 1)
	return nil, nil
}
func (s *stubTaskService) GetStreak(ctx context.Context, taskID uuid.UUID) (*domain.Streak, error) {
	return nil, nil
}
func (s *stubTaskService) ListStreaks(ctx context.Context, heroID uuid.UUID) ([]*domain.Streak, error) {
	return nil, nil
}
func (s *stubTaskService) PurchaseFreezeCharge(ctx context.Context, taskID uuid.UUID) (*domain.Streak, error) {
	return nil, nil
}
func (s *stubTaskService) UseStreakFreeze(ctx context.Context, taskID uuid.UUID) (*domain.Streak, error) {
	return nil, nil
}
func (s *stubTaskService) ActivateStreakShield(ctx context.Context, taskID uuid.UUID, expiresAt *time.Time) (*domain.Streak, error) {
	return nil, nil
}

func TestOverdueWorker_Sweep(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	alive := domain.NewHero("Aria", domain.DefaultStartingGold, now)
	dead := domain.NewHero("Bran", domain.DefaultStartingGold, now)
	dead.IsDead = true

	heroes := &stubHeroService{heroes: []*domain.Hero{alive, dead}}
	tasks := &stubTaskService{}

	pool := NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	w := NewOverdueWorker(heroes, tasks, pool, time.Hour)
	w.sweep()

	// Give the pool a moment to drain
	time.Sleep(100 * time.Millisecond)

	// Only the living hero is checked
	assert.Equal(t, int32(1), atomic.LoadInt32(&tasks.checked))
}

func TestOverdueWorker_Shutdown(t *testing.T) {
	heroes := &stubHeroService{}
	tasks := &stubTaskService{}

	pool := NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	w := NewOverdueWorker(heroes, tasks, pool, 10*time.Millisecond)
	w.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, w.Shutdown(ctx))
}
