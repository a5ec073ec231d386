package engine

import (
	"math"

	"github.com/lifequest/lifequest/internal/domain"
)

// ApplyTaskCompletion runs the full completion transition against the
// hero's aggregates. The streak is nil for one-time tasks. Preconditions
// are checked before anything mutates, so a returned error means nothing
// changed.
//
// Reward order matters: a habit's streak is extended first, so today's
// completion earns today's multiplier, not yesterday's.
func (e *Engine) ApplyTaskCompletion(hero *domain.Hero, task *domain.Task, streak *domain.Streak, ledger *domain.EconomyLedger) (*CompletionResult, error) {
	now := e.now()

	if !task.IsActive {
		return nil, domain.ErrTaskInactive
	}
	if task.IsTerminallyCompleted() {
		return nil, domain.ErrTaskAlreadyCompleted
	}
	if hero.IsDead {
		return nil, domain.ErrHeroIsDead
	}
	if !ledger.CanCompleteTask(now) {
		return nil, domain.ErrDailyLimit{
			Completions: ledger.DailyTaskCompletions,
			Cap:         ledger.MaxDailyCompletions,
		}
	}

	streakMultiplier := 1.0
	streakDays := 0
	streakBonus := 0
	if task.Type == domain.TaskTypeHabit && streak != nil {
		streak.RegisterSuccess(now)
		streakMultiplier = streak.Multiplier()
		streakDays = streak.CurrentDays
		streakBonus = streak.BonusXPPercent()
	}

	base := domain.BaseReward(task.Type, task.Difficulty)
	difficulty := domain.DifficultyMultiplier(task.Difficulty)
	recovery := hero.RecoveryMultiplier(now)

	xp := int64(math.Floor(float64(base.XP) * difficulty * streakMultiplier *
		domain.LevelScaling(hero.Level) * recovery * ledger.FinalXPMultiplier(now)))
	gold := int64(math.Floor(float64(base.Gold) * recovery * ledger.GoldMultiplier))

	levelsGained := hero.GainXP(xp)
	hero.Gold += gold
	hero.UpdatedAt = now

	ledger.RecordEarnings(xp, gold, now)
	ledger.IncrementDailyCompletion(now)
	task.MarkCompleted(now)

	return &CompletionResult{
		XPGained:           xp,
		GoldGained:         gold,
		LeveledUp:          levelsGained > 0,
		LevelsGained:       levelsGained,
		NewLevel:           hero.Level,
		StreakDays:         streakDays,
		StreakBonusPercent: streakBonus,
	}, nil
}
