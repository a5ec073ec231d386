package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lifequest/lifequest/internal/concurrency"
	"github.com/lifequest/lifequest/internal/domain"
	"github.com/lifequest/lifequest/internal/engine"
	"github.com/lifequest/lifequest/internal/event"
	"github.com/lifequest/lifequest/internal/logger"
	"github.com/lifequest/lifequest/internal/repository"
)

// Service defines the interface for task operations
type Service interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListTasks(ctx context.Context, heroID uuid.UUID) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error

	CompleteTask(ctx context.Context, taskID uuid.UUID) (*engine.CompletionResult, error)
	FailTask(ctx context.Context, taskID uuid.UUID) (*engine.FailureResult, error)
	CheckOverdueTasks(ctx context.Context, heroID uuid.UUID) ([]engine.OverdueOutcome, error)

	GetStreak(ctx context.Context, taskID uuid.UUID) (*domain.Streak, error)
	ListStreaks(ctx context.Context, heroID uuid.UUID) ([]*domain.Streak, error)
	PurchaseFreezeCharge(ctx context.Context, taskID uuid.UUID) (*domain.Streak, error)
	UseStreakFreeze(ctx context.Context, taskID uuid.UUID) (*domain.Streak, error)
	ActivateStreakShield(ctx context.Context, taskID uuid.UUID, expiresAt *time.Time) (*domain.Streak, error)
}

// CreateTaskInput carries the fields for a new task. HeroID is required;
// a task is never attached to an implicit default hero.
type CreateTaskInput struct {
	HeroID      uuid.UUID             `json:"hero_id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Type        domain.TaskType       `json:"type"`
	Difficulty  domain.TaskDifficulty `json:"difficulty"`
	DueDate     *time.Time            `json:"due_date,omitempty"`
}

// UpdateTaskInput carries a partial update; nil fields are left unchanged.
// Type is immutable after creation because the streak attached to a habit
// has no meaning for a one-time task.
type UpdateTaskInput struct {
	Title       *string                `json:"title,omitempty"`
	Description *string                `json:"description,omitempty"`
	Difficulty  *domain.TaskDifficulty `json:"difficulty,omitempty"`
	DueDate     *time.Time             `json:"due_date,omitempty"`
	IsActive    *bool                  `json:"is_active,omitempty"`
}

type service struct {
	taskRepo   repository.Task
	heroRepo   repository.Hero
	streakRepo repository.Streak
	txStarter  repository.TxStarter
	engine     *engine.Engine
	eventBus   event.Bus
	locks      *concurrency.LockManager
	now        func() time.Time
}

// NewService creates a new task service
func NewService(taskRepo repository.Task, heroRepo repository.Hero, streakRepo repository.Streak, txStarter repository.TxStarter, eng *engine.Engine, eventBus event.Bus, locks *concurrency.LockManager) Service {
	return &service{
		taskRepo:   taskRepo,
		heroRepo:   heroRepo,
		streakRepo: streakRepo,
		txStarter:  txStarter,
		engine:     eng,
		eventBus:   eventBus,
		locks:      locks,
		now:        time.Now,
	}
}

// CreateTask creates a task for the given hero
func (s *service) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	log := logger.FromContext(ctx)

	if err := validateCreateInput(&input); err != nil {
		return nil, err
	}

	// The hero must exist; the task table's foreign key would catch this
	// too, but a domain error beats a constraint violation.
	if _, err := s.heroRepo.GetHero(ctx, input.HeroID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	task := &domain.Task{
		ID:          uuid.New(),
		HeroID:      input.HeroID,
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		Difficulty:  input.Difficulty,
		IsActive:    true,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.taskRepo.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Info(logMsgTaskCreated, "task_id", task.ID, "hero_id", task.HeroID, "type", task.Type, "difficulty", task.Difficulty)
	return task, nil
}

// GetTask fetches a single task
func (s *service) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return s.taskRepo.GetTask(ctx, id)
}

// ListTasks returns the hero's active tasks
func (s *service) ListTasks(ctx context.Context, heroID uuid.UUID) ([]*domain.Task, error) {
	tasks, err := s.taskRepo.ListTasksByHero(ctx, heroID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask applies a partial update to a task
func (s *service) UpdateTask(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*domain.Task, error) {
	task, err := s.taskRepo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgTitleRequired)
		}
		if len(title) > MaxTitleLength {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgTitleTooLong)
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Difficulty != nil {
		if !input.Difficulty.Valid() {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgInvalidDifficulty)
		}
		task.Difficulty = *input.Difficulty
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.IsActive != nil {
		task.IsActive = *input.IsActive
	}
	task.UpdatedAt = s.now().UTC()

	if err := s.taskRepo.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask removes a task; its streak goes with it via the schema's
// cascade rule.
func (s *service) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := s.taskRepo.DeleteTask(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(logMsgTaskDeleted, "task_id", id)
	return nil
}

// CompleteTask applies the completion transition for a task. All
// aggregates are loaded and persisted inside one transaction under the
// owning hero's lock; events go out only after the commit.
func (s *service) CompleteTask(ctx context.Context, taskID uuid.UUID) (*engine.CompletionResult, error) {
	log := logger.FromContext(ctx)

	owner, err := s.taskRepo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	var result *engine.CompletionResult
	var hero *domain.Hero
	var task *domain.Task
	var oldLevel int
	var opErr error

	s.locks.WithLock(owner.HeroID.String(), func() {
		tx, err := s.txStarter.BeginTx(ctx)
		if err != nil {
			opErr = fmt.Errorf("failed to begin transaction: %w", err)
			return
		}
		defer func() { _ = tx.Rollback(ctx) }()

		task, err = tx.GetTask(ctx, taskID)
		if err != nil {
			opErr = err
			return
		}
		hero, err = tx.GetHero(ctx, task.HeroID)
		if err != nil {
			opErr = err
			return
		}
		ledger, err := tx.GetLedgerByHero(ctx, task.HeroID)
		if err != nil {
			opErr = err
			return
		}

		streak, streakIsNew, err := s.loadStreak(ctx, tx, task)
		if err != nil {
			opErr = err
			return
		}

		oldLevel = hero.Level
		result, opErr = s.engine.ApplyTaskCompletion(hero, task, streak, ledger)
		if opErr != nil {
			return
		}

		if err := tx.UpdateHero(ctx, hero); err != nil {
			opErr = fmt.Errorf("failed to persist hero: %w", err)
			return
		}
		if err := tx.UpdateTask(ctx, task); err != nil {
			opErr = fmt.Errorf("failed to persist task: %w", err)
			return
		}
		if err := tx.UpdateLedger(ctx, ledger); err != nil {
			opErr = fmt.Errorf("failed to persist ledger: %w", err)
			return
		}
		if streak != nil {
			if streakIsNew {
				err = tx.CreateStreak(ctx, streak)
			} else {
				err = tx.UpdateStreak(ctx, streak)
			}
			if err != nil {
				opErr = fmt.Errorf("failed to persist streak: %w", err)
				return
			}
		}

		opErr = tx.Commit(ctx)
	})
	if opErr != nil {
		return nil, opErr
	}

	s.publish(ctx, event.NewTaskCompletedEvent(
		hero.ID.String(), task.ID.String(), string(task.Type), string(task.Difficulty),
		result.XPGained, result.GoldGained, result.StreakDays))
	if result.LeveledUp {
		s.publish(ctx, event.NewHeroLevelUpEvent(hero.ID.String(), oldLevel, hero.Level))
	}

	log.Info(logMsgTaskCompleted,
		"task_id", task.ID, "hero_id", hero.ID,
		"xp_gained", result.XPGained, "gold_gained", result.GoldGained,
		"streak_days", result.StreakDays, "new_level", result.NewLevel)
	return result, nil
}

// FailTask applies the failure transition for a task
func (s *service) FailTask(ctx context.Context, taskID uuid.UUID) (*engine.FailureResult, error) {
	log := logger.FromContext(ctx)

	owner, err := s.taskRepo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	var result *engine.FailureResult
	var hero *domain.Hero
	var task *domain.Task
	var prevStreakDays int
	var opErr error

	s.locks.WithLock(owner.HeroID.String(), func() {
		tx, err := s.txStarter.BeginTx(ctx)
		if err != nil {
			opErr = fmt.Errorf("failed to begin transaction: %w", err)
			return
		}
		defer func() { _ = tx.Rollback(ctx) }()

		task, err = tx.GetTask(ctx, taskID)
		if err != nil {
			opErr = err
			return
		}
		hero, err = tx.GetHero(ctx, task.HeroID)
		if err != nil {
			opErr = err
			return
		}
		ledger, err := tx.GetLedgerByHero(ctx, task.HeroID)
		if err != nil {
			opErr = err
			return
		}

		streak, streakIsNew, err := s.loadStreak(ctx, tx, task)
		if err != nil {
			opErr = err
			return
		}
		if streak != nil {
			prevStreakDays = streak.CurrentDays
		}

		result, opErr = s.engine.ApplyTaskFailure(hero, task, streak, ledger)
		if opErr != nil {
			return
		}

		if err := tx.UpdateHero(ctx, hero); err != nil {
			opErr = fmt.Errorf("failed to persist hero: %w", err)
			return
		}
		if err := tx.UpdateTask(ctx, task); err != nil {
			opErr = fmt.Errorf("failed to persist task: %w", err)
			return
		}
		if err := tx.UpdateLedger(ctx, ledger); err != nil {
			opErr = fmt.Errorf("failed to persist ledger: %w", err)
			return
		}
		if streak != nil && !streakIsNew {
			if err := tx.UpdateStreak(ctx, streak); err != nil {
				opErr = fmt.Errorf("failed to persist streak: %w", err)
				return
			}
		}

		opErr = tx.Commit(ctx)
	})
	if opErr != nil {
		return nil, opErr
	}

	s.publishFailureEvents(ctx, hero, task, result, prevStreakDays, false)

	log.Info(logMsgTaskFailed,
		"task_id", task.ID, "hero_id", hero.ID,
		"hp_lost", result.HPLost, "gold_lost", result.GoldLost,
		"hero_died", result.HeroDied, "streak_broken", result.StreakBroken)
	return result, nil
}

// CheckOverdueTasks sweeps the hero's overdue tasks, failing each one.
// Tasks that come due while the hero is dead are skipped and surface
// again after respawn.
func (s *service) CheckOverdueTasks(ctx context.Context, heroID uuid.UUID) ([]engine.OverdueOutcome, error) {
	log := logger.FromContext(ctx)

	var outcomes []engine.OverdueOutcome
	var hero *domain.Hero
	var tasks []*domain.Task
	var streaks map[uuid.UUID]*domain.Streak
	var prevDays map[uuid.UUID]int
	var opErr error

	s.locks.WithLock(heroID.String(), func() {
		tx, err := s.txStarter.BeginTx(ctx)
		if err != nil {
			opErr = fmt.Errorf("failed to begin transaction: %w", err)
			return
		}
		defer func() { _ = tx.Rollback(ctx) }()

		hero, err = tx.GetHero(ctx, heroID)
		if err != nil {
			opErr = err
			return
		}
		ledger, err := tx.GetLedgerByHero(ctx, heroID)
		if err != nil {
			opErr = err
			return
		}
		tasks, err = tx.ListOverdueTasks(ctx, heroID)
		if err != nil {
			opErr = err
			return
		}
		if len(tasks) == 0 {
			return
		}

		streaks = make(map[uuid.UUID]*domain.Streak)
		prevDays = make(map[uuid.UUID]int)
		for _, t := range tasks {
			if t.Type != domain.TaskTypeHabit {
				continue
			}
			streak, err := tx.GetStreakByTask(ctx, t.ID)
			if err != nil {
				if errors.Is(err, domain.ErrStreakNotFound) {
					continue
				}
				opErr = err
				return
			}
			streaks[t.ID] = streak
			prevDays[t.ID] = streak.CurrentDays
		}

		outcomes = s.engine.SweepOverdue(hero, tasks, streaks, ledger)

		if err := tx.UpdateHero(ctx, hero); err != nil {
			opErr = fmt.Errorf("failed to persist hero: %w", err)
			return
		}
		if err := tx.UpdateLedger(ctx, ledger); err != nil {
			opErr = fmt.Errorf("failed to persist ledger: %w", err)
			return
		}
		for _, outcome := range outcomes {
			if outcome.Skipped {
				continue
			}
			for _, t := range tasks {
				if t.ID != outcome.TaskID {
					continue
				}
				if err := tx.UpdateTask(ctx, t); err != nil {
					opErr = fmt.Errorf("failed to persist task: %w", err)
					return
				}
				if streak, ok := streaks[t.ID]; ok {
					if err := tx.UpdateStreak(ctx, streak); err != nil {
						opErr = fmt.Errorf("failed to persist streak: %w", err)
						return
					}
				}
			}
		}

		opErr = tx.Commit(ctx)
	})
	if opErr != nil || len(outcomes) == 0 {
		return outcomes, opErr
	}

	failed := 0
	for _, outcome := range outcomes {
		if outcome.Skipped {
			continue
		}
		failed++
		for _, t := range tasks {
			if t.ID == outcome.TaskID {
				s.publishFailureEvents(ctx, hero, t, outcome.Result, prevDays[t.ID], true)
				break
			}
		}
	}

	log.Info(logMsgOverdueSweep, "hero_id", heroID, "failed", failed, "skipped", len(outcomes)-failed)
	return outcomes, nil
}

// GetStreak returns the streak attached to a habit task
func (s *service) GetStreak(ctx context.Context, taskID uuid.UUID) (*domain.Streak, error) {
	return s.streakRepo.GetStreakByTask(ctx, taskID)
}

// ListStreaks returns all streaks for a hero's habits
func (s *service) ListStreaks(ctx context.Context, heroID uuid.UUID) ([]*domain.Streak, error) {
	streaks, err := s.streakRepo.ListStreaksByHero(ctx, heroID)
	if err != nil {
		return nil, fmt.Errorf("failed to list streaks: %w", err)
	}
	return streaks, nil
}

// PurchaseFreezeCharge buys one freeze charge for the task's streak with
// the hero's gold. The gold deduction and the charge grant commit
// together.
func (s *service) PurchaseFreezeCharge(ctx context.Context, taskID uuid.UUID) (*domain.Streak, error) {
	owner, err := s.streakRepo.GetStreakByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	var streak *domain.Streak
	var opErr error

	s.locks.WithLock(owner.HeroID.String(), func() {
		tx, err := s.txStarter.BeginTx(ctx)
		if err != nil {
			opErr = fmt.Errorf("failed to begin transaction: %w", err)
			return
		}
		defer func() { _ = tx.Rollback(ctx) }()

		streak, err = tx.GetStreakByTask(ctx, taskID)
		if err != nil {
			opErr = err
			return
		}
		if streak.FreezeCharges >= domain.MaxFreezeCharges {
			opErr = fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgFreezeChargesFull)
			return
		}

		hero, err := tx.GetHero(ctx, streak.HeroID)
		if err != nil {
			opErr = err
			return
		}
		if hero.Gold < domain.FreezeChargeGoldCost {
			opErr = fmt.Errorf("%w: need %d gold", domain.ErrInsufficientGold, domain.FreezeChargeGoldCost)
			return
		}
		ledger, err := tx.GetLedgerByHero(ctx, streak.HeroID)
		if err != nil {
			opErr = err
			return
		}

		now := s.now().UTC()
		hero.SpendGold(domain.FreezeChargeGoldCost)
		hero.UpdatedAt = now
		ledger.RecordSpending(domain.FreezeChargeGoldCost, now)
		streak.FreezeCharges++
		streak.UpdatedAt = now

		if err := tx.UpdateHero(ctx, hero); err != nil {
			opErr = fmt.Errorf("failed to persist hero: %w", err)
			return
		}
		if err := tx.UpdateLedger(ctx, ledger); err != nil {
			opErr = fmt.Errorf("failed to persist ledger: %w", err)
			return
		}
		if err := tx.UpdateStreak(ctx, streak); err != nil {
			opErr = fmt.Errorf("failed to persist streak: %w", err)
			return
		}

		opErr = tx.Commit(ctx)
	})
	if opErr != nil {
		return nil, opErr
	}

	logger.FromContext(ctx).Info(logMsgFreezePurchased,
		"task_id", taskID, "hero_id", streak.HeroID, "charges", streak.FreezeCharges)
	return streak, nil
}

// UseStreakFreeze spends one freeze charge on the task's streak, opening
// a window during which missed days do not break it. Returns
// ErrNoFreezeCharges when no charge is available or a freeze is already
// running.
func (s *service) UseStreakFreeze(ctx context.Context, taskID uuid.UUID) (*domain.Streak, error) {
	streak, err := s.streakRepo.GetStreakByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	var opErr error
	s.locks.WithLock(streak.HeroID.String(), func() {
		if !streak.UseFreeze(s.now().UTC()) {
			opErr = fmt.Errorf("%w: task %s", domain.ErrNoFreezeCharges, taskID)
			return
		}
		opErr = s.streakRepo.UpdateStreak(ctx, streak)
	})
	if opErr != nil {
		return nil, opErr
	}

	logger.FromContext(ctx).Info(logMsgFreezeUsed,
		"task_id", taskID, "hero_id", streak.HeroID, "charges_left", streak.FreezeCharges)
	return streak, nil
}

// ActivateStreakShield protects the task's streak from breakage until
// the given expiry. A nil expiry keeps the shield up until it is
// explicitly replaced.
func (s *service) ActivateStreakShield(ctx context.Context, taskID uuid.UUID, expiresAt *time.Time) (*domain.Streak, error) {
	streak, err := s.streakRepo.GetStreakByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	var opErr error
	s.locks.WithLock(streak.HeroID.String(), func() {
		streak.ActivateShield(s.now().UTC(), expiresAt)
		opErr = s.streakRepo.UpdateStreak(ctx, streak)
	})
	if opErr != nil {
		return nil, opErr
	}

	logger.FromContext(ctx).Info(logMsgShieldActivated, "task_id", taskID, "hero_id", streak.HeroID)
	return streak, nil
}

// loadStreak fetches the habit's streak, creating a fresh in-memory one
// on first touch. One-time tasks have no streak. The second return
// reports whether the streak still needs an insert.
func (s *service) loadStreak(ctx context.Context, tx repository.GameTx, task *domain.Task) (*domain.Streak, bool, error) {
	if task.Type != domain.TaskTypeHabit {
		return nil, false, nil
	}

	streak, err := tx.GetStreakByTask(ctx, task.ID)
	if err == nil {
		return streak, false, nil
	}
	if errors.Is(err, domain.ErrStreakNotFound) {
		return domain.NewStreak(task.HeroID, task.ID, s.now().UTC()), true, nil
	}
	return nil, false, err
}

// publishFailureEvents emits the event fan-out for one failed task
func (s *service) publishFailureEvents(ctx context.Context, hero *domain.Hero, task *domain.Task, result *engine.FailureResult, prevStreakDays int, overdue bool) {
	s.publish(ctx, event.NewTaskFailedEvent(
		hero.ID.String(), task.ID.String(), string(task.Type), string(task.Difficulty),
		result.HPLost, result.GoldLost, overdue))

	if result.StreakBroken && result.StreakPenalty != nil {
		s.publish(ctx, event.NewStreakBrokenEvent(
			hero.ID.String(), task.ID.String(), prevStreakDays,
			result.StreakPenalty.XPLost, result.StreakPenalty.GoldLost))
	}
	if result.HeroDied {
		s.publish(ctx, event.NewHeroDiedEvent(hero.ID.String(), hero.DeathCount, task.ID.String()))
	}
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(logMsgPublishFailed, "event_type", evt.Type, "error", err)
	}
}

func validateCreateInput(input *CreateTaskInput) error {
	if input.HeroID == uuid.Nil {
		return fmt.Errorf("%w: hero id is required", domain.ErrInvalidInput)
	}

	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgTitleRequired)
	}
	if len(input.Title) > MaxTitleLength {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgTitleTooLong)
	}
	if len(input.Description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds maximum length", domain.ErrInvalidInput)
	}
	if !input.Type.Valid() {
		return fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, ErrMsgInvalidTaskType, input.Type)
	}
	if !input.Difficulty.Valid() {
		return fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, ErrMsgInvalidDifficulty, input.Difficulty)
	}
	return nil
}
