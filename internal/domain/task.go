package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskType distinguishes repeatable habits from one-shot tasks
type TaskType string

const (
	// TaskTypeHabit is re-completable every day and drives a streak
	TaskTypeHabit TaskType = "habit"
	// TaskTypeOneTime can be completed at most once
	TaskTypeOneTime TaskType = "one_time"
)

// Valid reports whether t is a known task type
func (t TaskType) Valid() bool {
	return t == TaskTypeHabit || t == TaskTypeOneTime
}

// TaskDifficulty grades how hard a task is, scaling both rewards and penalties
type TaskDifficulty string

const (
	DifficultyEasy   TaskDifficulty = "easy"
	DifficultyMedium TaskDifficulty = "medium"
	DifficultyHard   TaskDifficulty = "hard"
	DifficultyEpic   TaskDifficulty = "epic"
)

// Valid reports whether d is a known difficulty
func (d TaskDifficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyEpic:
		return true
	}
	return false
}

// Task represents a user-defined task owned by a hero
type Task struct {
	ID          uuid.UUID      `json:"id"`
	HeroID      uuid.UUID      `json:"hero_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        TaskType       `json:"type"`
	Difficulty  TaskDifficulty `json:"difficulty"`

	IsActive bool       `json:"is_active"`
	DueDate  *time.Time `json:"due_date,omitempty"`

	IsCompleted     bool       `json:"is_completed"`
	CompletionCount int        `json:"completion_count"`
	FailCount       int        `json:"fail_count"`
	LastCompletedAt *time.Time `json:"last_completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsOverdue reports whether the task's due date has passed without completion
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && now.After(*t.DueDate) && !t.IsCompleted
}

// IsTerminallyCompleted reports whether the task can never be completed again.
// Only one-time tasks have a terminal state; habits are always re-completable.
func (t *Task) IsTerminallyCompleted() bool {
	return t.Type == TaskTypeOneTime && t.IsCompleted
}

// MarkCompleted records a completion. One-time tasks become terminal,
// habits stay open and just accrue their counters.
func (t *Task) MarkCompleted(now time.Time) {
	t.IsCompleted = t.Type == TaskTypeOneTime
	t.CompletionCount++
	t.LastCompletedAt = &now
	t.UpdatedAt = now
}

// MarkFailed records a failure
func (t *Task) MarkFailed(now time.Time) {
	t.FailCount++
	t.UpdatedAt = now
}
