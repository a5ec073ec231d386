package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifequest/lifequest/internal/domain"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func testNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func newFixture(now time.Time) (*domain.Hero, *domain.EconomyLedger) {
	hero := domain.NewHero("Aldric", domain.DefaultStartingGold, now)
	ledger := domain.NewEconomyLedger(hero.ID, now)
	return hero, ledger
}

func newTask(heroID uuid.UUID, taskType domain.TaskType, difficulty domain.TaskDifficulty) *domain.Task {
	return &domain.Task{
		ID:         uuid.New(),
		HeroID:     heroID,
		Title:      "test task",
		Type:       taskType,
		Difficulty: difficulty,
		IsActive:   true,
	}
}

func TestApplyTaskCompletion(t *testing.T) {
	now := testNow()

	t.Run("easy habit without a streak", func(t *testing.T) {
		eng := New(fixedClock(now))
		hero, ledger := newFixture(now)
		task := newTask(hero.ID, domain.TaskTypeHabit, domain.DifficultyEasy)

		result, err := eng.ApplyTaskCompletion(hero, task, nil, ledger)

		require.NoError(t, err)
		// floor(10 * 1.0 * 1.0 * 1.01) = 10
		assert.Equal(t, int64(10), result.XPGained)
		assert.Equal(t, int64(5), result.GoldGained)
		assert.False(t, result.LeveledUp)
		assert.Equal(t, int64(10), hero.CurrentXP)
		assert.Equal(t, int64(domain.DefaultStartingGold+5), hero.Gold)
		assert.Equal(t, 1, ledger.DailyTaskCompletions)
		assert.Equal(t, 1, task.CompletionCount)
	})

	t.Run("habit streak extends before the reward is computed", func(t *testing.T) {
		eng := New(fixedClock(now))
		hero, ledger := newFixture(now)
		task := newTask(hero.ID, domain.TaskTypeHabit, domain.DifficultyEasy)
		streak := domain.NewStreak(hero.ID, task.ID, now)

		result, err := eng.ApplyTaskCompletion(hero, task, streak, ledger)

		require.NoError(t, err)
		assert.Equal(t, 1, result.StreakDays)
		// day one earns the 1.15x multiplier: floor(10 * 1.15 * 1.01) = 11
		assert.Equal(t, int64(11), result.XPGained)
		assert.Equal(t, 15, result.StreakBonusPercent)
	})

	t.Run("difficulty scales the XP", func(t *testing.T) {
		eng := New(fixedClock(now))
		hero, ledger := newFixture(now)
		task := newTask(hero.ID, domain.TaskTypeOneTime, domain.DifficultyEpic)

		result, err := eng.ApplyTaskCompletion(hero, task, nil, ledger)

		require.NoError(t, err)
		// floor(150 * 4.0 * 1.01) = 606
		assert.Equal(t, int64(606), result.XPGained)
		assert.Equal(t, int64(75), result.GoldGained)
		require.True(t, result.LeveledUp)
		assert.Equal(t, hero.Level, result.NewLevel)
		assert.True(t, task.IsTerminallyCompleted())
	})

	t.Run("recovery and death penalty stack multiplicatively", func(t *testing.T) {
		eng := New(fixedClock(now))
		hero, ledger := newFixture(now)
		hero.TakeDamage(hero.CurrentHP, now)
		ledger.ActivateDeathPenalty(now)
		require.True(t, hero.Respawn(now))
		task := newTask(hero.ID, domain.TaskTypeHabit, domain.DifficultyEasy)

		result, err := eng.ApplyTaskCompletion(hero, task, nil, ledger)

		require.NoError(t, err)
		// floor(10 * 1.01 * 0.75 * 0.75) = 5
		assert.Equal(t, int64(5), result.XPGained)
		// floor(5 * 0.75) = 3
		assert.Equal(t, int64(3), result.GoldGained)
	})

	t.Run("ledger totals match the result", func(t *testing.T) {
		eng := New(fixedClock(now))
		hero, ledger := newFixture(now)
		task := newTask(hero.ID, domain.TaskTypeHabit, domain.DifficultyHard)

		result, err := eng.ApplyTaskCompletion(hero, task, nil, ledger)

		require.NoError(t, err)
		assert.Equal(t, result.XPGained, ledger.TotalXPEarned)
		assert.Equal(t, result.GoldGained, ledger.TotalGoldEarned)
	})

	t.Run("rejects an inactive task", func(t *testing.T) {
		eng := New(fixedClock(now))
		hero, ledger := newFixture(now)
		task := newTask(hero.ID, domain.TaskTypeHabit, domain.DifficultyEasy)
		task.IsActive = false

		_, err := eng.ApplyTaskCompletion(hero, task, nil, ledger)

		assert.ErrorIs(t, err, domain.ErrTaskInactive)
		assert.Equal(t, int64(0), hero.CurrentXP)
	})

	t.Run("rejects a completed one-time task", func(t *testing.T) {
		eng := New(fixedClock(now))
		hero, ledger := newFixture(now)
		task := newTask(hero.ID, domain.TaskTypeOneTime, domain.DifficultyEasy)
		task.MarkCompleted(now)

		_, err := eng.ApplyTaskCompletion(hero, task, nil, ledger)

		assert.ErrorIs(t, err, domain.ErrTaskAlreadyCompleted)
	})

	t.Run("rejects a dead hero", func(t *testing.T) {
		eng := New(fixedClock(now))
		hero, ledger := newFixture(now)
		hero.TakeDamage(hero.CurrentHP, now)
		task := newTask(hero.ID, domain.TaskTypeHabit, domain.DifficultyEasy)

		_, err := eng.ApplyTaskCompletion(hero, task, nil, ledger)

		assert.ErrorIs(t, err, domain.ErrHeroIsDead)
		assert.Equal(t, 0, task.CompletionCount)
	})

	t.Run("rejects past the daily cap and leaves state untouched", func(t *testing.T) {
		eng := New(fixedClock(now))
		hero, ledger := newFixture(now)
		for i := 0; i < domain.DailyTaskCap; i++ {
			ledger.IncrementDailyCompletion(now)
		}
		task := newTask(hero.ID, domain.TaskTypeHabit, domain.DifficultyEasy)
		streak := domain.NewStreak(hero.ID, task.ID, now)

		_, err := eng.ApplyTaskCompletion(hero, task, streak, ledger)

		require.ErrorIs(t, err, domain.ErrDailyLimit{})
		var limitErr domain.ErrDailyLimit
		require.ErrorAs(t, err, &limitErr)
		assert.Equal(t, domain.DailyTaskCap, limitErr.Completions)
		assert.Equal(t, 0, streak.CurrentDays)
		assert.Equal(t, 0, task.CompletionCount)
	})
}

func TestApplyTaskFailure(t *testing.T) {
	now := testNow()

	t.Run("applies the base penalty", func(t *testing.T) {
		eng := New(fixedClock(now))
		hero, ledger := newFixture(now)
		task := newTask(hero.ID, domain.TaskTypeHabit, domain.DifficultyMedium)

		result, err := eng.ApplyTaskFailure(hero, task, nil, ledger)

		require.NoError(t, err)
		assert.Equal(t, 10, result.HPLost)
		assert.Equal(t, int64(5), result.GoldLost)
		assert.False(t, result.HeroDied)
		assert.Equal(t, domain.MaxHPForLevel(1)-10, hero.CurrentHP)
		assert.Equal(t, int64(domain.DefaultStartingGold-5), hero.Gold)
		assert.Equal(t, 1, task.FailCount)
	})

	t.Run("breaks an unprotected streak with the tiered penalty", func(t *testing.T) {
		eng := New(fixedClock(now))
		hero, ledger := newFixture(now)
		hero.CurrentXP = 90
		task := newTask(hero.ID, domain.TaskTypeHabit, domain.DifficultyEasy)
		streak := domain.NewStreak(hero.ID, task.ID, now)
		streak.CurrentDays = 45
		start := now.AddDate(0, 0, -45)
		streak.StartDate = &start

		result, err := eng.ApplyTaskFailure(hero, task, streak, ledger)

		require.NoError(t, err)
		require.True(t, result.StreakBroken)
		require.NotNil(t, result.StreakPenalty)
		assert.Equal(t, int64(150), result.StreakPenalty.XPLost)
		assert.Equal(t, int64(75), result.StreakPenalty.GoldLost)
		assert.Equal(t, 48, result.StreakPenalty.CooldownHours)
		assert.Equal(t, 0, streak.CurrentDays)
		assert.Equal(t, 1, streak.TotalBreaks)
		// XP clamps at zero, gold loses the 75 break penalty on top of the base 0
		assert.Equal(t, int64(0), hero.CurrentXP)
		assert.Equal(t, int64(domain.DefaultStartingGold-75), hero.Gold)
		assert.Equal(t, int64(75), result.GoldLost)
	})

	t.Run("short streaks break for free", func(t *testing.T) {
		eng := New(fixedClock(now))
		hero, ledger := newFixture(now)
		task := newTask(hero.ID, domain.TaskTypeHabit, domain.DifficultyEasy)
		streak := domain.NewStreak(hero.ID, task.ID, now)
		streak.CurrentDays = 5

		result, err := eng.ApplyTaskFailure(hero, task, streak, ledger)

		require.NoError(t, err)
		assert.True(t, result.StreakBroken)
		assert.Equal(t, int64(0), result.StreakPenalty.XPLost)
		assert.Equal(t, int64(domain.DefaultStartingGold), hero.Gold)
	})

	t.Run("a shielded streak survives the failure", func(t *testing.T) {
		eng := New(fixedClock(now))
		hero, ledger := newFixture(now)
		task := newTask(hero.ID, domain.TaskTypeHabit, domain.DifficultyEasy)
		streak := domain.NewStreak(hero.ID, task.ID, now)
		streak.CurrentDays = 20
		streak.ActivateShield(now, nil)

		result, err := eng.ApplyTaskFailure(hero, task, streak, ledger)

		require.NoError(t, err)
		assert.False(t, result.StreakBroken)
		assert.Equal(t, 20, streak.CurrentDays)
	})

	t.Run("lethal failure cascades into the death penalties", func(t *testing.T) {
		eng := New(fixedClock(now))
		hero, ledger := newFixture(now)
		hero.CurrentHP = 10
		task := newTask(hero.ID, domain.TaskTypeHabit, domain.DifficultyEpic)
		streak := domain.NewStreak(hero.ID, task.ID, now)
		streak.CurrentDays = 6
		streak.ActivateShield(now, nil)

		result, err := eng.ApplyTaskFailure(hero, task, streak, ledger)

		require.NoError(t, err)
		require.True(t, result.HeroDied)
		assert.True(t, hero.IsDead)
		assert.True(t, ledger.IsInPenaltyPeriod)
		// shield blocked the break, but death still halves the days
		assert.False(t, result.StreakBroken)
		assert.Equal(t, 3, streak.CurrentDays)
	})

	t.Run("rejects a dead hero", func(t *testing.T) {
		eng := New(fixedClock(now))
		hero, ledger := newFixture(now)
		hero.TakeDamage(hero.CurrentHP, now)
		task := newTask(hero.ID, domain.TaskTypeHabit, domain.DifficultyEasy)

		_, err := eng.ApplyTaskFailure(hero, task, nil, ledger)

		assert.ErrorIs(t, err, domain.ErrHeroIsDead)
	})
}

func TestSweepOverdue(t *testing.T) {
	now := testNow()
	pastDue := now.Add(-2 * time.Hour)
	futureDue := now.Add(2 * time.Hour)

	t.Run("fails only overdue active tasks", func(t *testing.T) {
		eng := New(fixedClock(now))
		hero, ledger := newFixture(now)

		overdue := newTask(hero.ID, domain.TaskTypeOneTime, domain.DifficultyEasy)
		overdue.DueDate = &pastDue
		notDue := newTask(hero.ID, domain.TaskTypeOneTime, domain.DifficultyEasy)
		notDue.DueDate = &futureDue
		noDue := newTask(hero.ID, domain.TaskTypeOneTime, domain.DifficultyEasy)

		outcomes := eng.SweepOverdue(hero, []*domain.Task{overdue, notDue, noDue}, nil, ledger)

		require.Len(t, outcomes, 1)
		assert.Equal(t, overdue.ID, outcomes[0].TaskID)
		assert.False(t, outcomes[0].Skipped)
		assert.Equal(t, 1, overdue.FailCount)
		assert.Equal(t, 0, notDue.FailCount)
	})

	t.Run("stops damaging the hero after a mid-sweep death", func(t *testing.T) {
		eng := New(fixedClock(now))
		hero, ledger := newFixture(now)
		hero.CurrentHP = 30

		var tasks []*domain.Task
		for i := 0; i < 3; i++ {
			task := newTask(hero.ID, domain.TaskTypeHabit, domain.DifficultyEpic)
			task.DueDate = &pastDue
			tasks = append(tasks, task)
		}

		outcomes := eng.SweepOverdue(hero, tasks, nil, ledger)

		require.Len(t, outcomes, 3)
		assert.False(t, outcomes[0].Skipped)
		require.True(t, outcomes[0].Result.HeroDied)
		assert.True(t, outcomes[1].Skipped)
		assert.True(t, outcomes[2].Skipped)
		assert.Equal(t, 1, hero.DeathCount)
		assert.Equal(t, 1, tasks[0].FailCount)
		assert.Equal(t, 0, tasks[1].FailCount)
	})

	t.Run("breaks the matching streak per task", func(t *testing.T) {
		eng := New(fixedClock(now))
		hero, ledger := newFixture(now)

		task := newTask(hero.ID, domain.TaskTypeHabit, domain.DifficultyEasy)
		task.DueDate = &pastDue
		streak := domain.NewStreak(hero.ID, task.ID, now)
		streak.CurrentDays = 3

		outcomes := eng.SweepOverdue(hero, []*domain.Task{task},
			map[uuid.UUID]*domain.Streak{task.ID: streak}, ledger)

		require.Len(t, outcomes, 1)
		assert.True(t, outcomes[0].Result.StreakBroken)
		assert.Equal(t, 0, streak.CurrentDays)
	})
}

func TestCompletionFailureRoundTrip(t *testing.T) {
	// Completing then failing the same habit must leave every aggregate
	// inside its invariants no matter the difficulty.
	now := testNow()
	for _, difficulty := range []domain.TaskDifficulty{
		domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard, domain.DifficultyEpic,
	} {
		eng := New(fixedClock(now))
		hero, ledger := newFixture(now)
		task := newTask(hero.ID, domain.TaskTypeHabit, difficulty)
		streak := domain.NewStreak(hero.ID, task.ID, now)

		_, err := eng.ApplyTaskCompletion(hero, task, streak, ledger)
		require.NoError(t, err)
		_, err = eng.ApplyTaskFailure(hero, task, streak, ledger)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, hero.CurrentHP, 0, string(difficulty))
		assert.LessOrEqual(t, hero.CurrentHP, hero.MaxHP, string(difficulty))
		assert.GreaterOrEqual(t, hero.Gold, int64(0), string(difficulty))
		assert.GreaterOrEqual(t, hero.CurrentXP, int64(0), string(difficulty))
		assert.Less(t, hero.CurrentXP, hero.XPForNextLevel(), string(difficulty))
		assert.Equal(t, 0, streak.CurrentDays, string(difficulty))
	}
}

func TestNewDefaultsClock(t *testing.T) {
	eng := New(nil)
	require.NotNil(t, eng.now)
	assert.WithinDuration(t, time.Now(), eng.now(), time.Second)

	var _ error = domain.ErrDailyLimit{}
	assert.True(t, errors.Is(domain.ErrDailyLimit{Completions: 1, Cap: 2}, domain.ErrDailyLimit{}))
}
