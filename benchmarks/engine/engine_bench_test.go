package engine_bench

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lifequest/lifequest/internal/domain"
	"github.com/lifequest/lifequest/internal/engine"
)

var benchNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func benchClock() time.Time { return benchNow }

func newHabit(heroID uuid.UUID) *domain.Task {
	return &domain.Task{
		ID:         uuid.New(),
		HeroID:     heroID,
		Title:      "bench habit",
		Type:       domain.TaskTypeHabit,
		Difficulty: domain.DifficultyMedium,
		IsActive:   true,
		CreatedAt:  benchNow,
		UpdatedAt:  benchNow,
	}
}

func BenchmarkApplyTaskCompletion(b *testing.B) {
	eng := engine.New(benchClock)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		hero := domain.NewHero("bench", domain.DefaultStartingGold, benchNow)
		task := newHabit(hero.ID)
		streak := domain.NewStreak(hero.ID, task.ID, benchNow)
		ledger := domain.NewEconomyLedger(hero.ID, benchNow)
		b.StartTimer()

		if _, err := eng.ApplyTaskCompletion(hero, task, streak, ledger); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkApplyTaskFailure(b *testing.B) {
	eng := engine.New(benchClock)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		hero := domain.NewHero("bench", domain.DefaultStartingGold, benchNow)
		task := newHabit(hero.ID)
		streak := domain.NewStreak(hero.ID, task.ID, benchNow)
		streak.CurrentDays = 10
		ledger := domain.NewEconomyLedger(hero.ID, benchNow)
		b.StartTimer()

		if _, err := eng.ApplyTaskFailure(hero, task, streak, ledger); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSweepOverdue(b *testing.B) {
	eng := engine.New(benchClock)
	due := benchNow.Add(-time.Hour)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		hero := domain.NewHero("bench", domain.DefaultStartingGold, benchNow)
		ledger := domain.NewEconomyLedger(hero.ID, benchNow)
		tasks := make([]*domain.Task, 20)
		streaks := make(map[uuid.UUID]*domain.Streak, 20)
		for j := range tasks {
			t := newHabit(hero.ID)
			t.DueDate = &due
			tasks[j] = t
			streaks[t.ID] = domain.NewStreak(hero.ID, t.ID, benchNow)
		}
		b.StartTimer()

		eng.SweepOverdue(hero, tasks, streaks, ledger)
	}
}
