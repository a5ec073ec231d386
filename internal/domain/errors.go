package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Hero errors
	ErrMsgHeroNotFound = "hero not found"
	ErrMsgHeroIsDead   = "hero is dead"
	ErrMsgHeroNotDead  = "hero is not dead"

	// Task errors
	ErrMsgTaskNotFound         = "task not found"
	ErrMsgTaskAlreadyCompleted = "task is already completed"
	ErrMsgTaskInactive         = "task is not active"

	// Streak errors
	ErrMsgStreakNotFound  = "streak not found"
	ErrMsgNoFreezeCharges = "no freeze charges available"

	// Economy errors
	ErrMsgDailyLimitReached = "daily completion limit reached"
	ErrMsgInsufficientGold  = "not enough gold"

	// Validation errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Hero errors
	ErrHeroNotFound = errors.New(ErrMsgHeroNotFound)
	ErrHeroIsDead   = errors.New(ErrMsgHeroIsDead)
	ErrHeroNotDead  = errors.New(ErrMsgHeroNotDead)

	// Task errors
	ErrTaskNotFound         = errors.New(ErrMsgTaskNotFound)
	ErrTaskAlreadyCompleted = errors.New(ErrMsgTaskAlreadyCompleted)
	ErrTaskInactive         = errors.New(ErrMsgTaskInactive)

	// Streak errors
	ErrStreakNotFound  = errors.New(ErrMsgStreakNotFound)
	ErrNoFreezeCharges = errors.New(ErrMsgNoFreezeCharges)

	// Economy errors
	ErrInsufficientGold = errors.New(ErrMsgInsufficientGold)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// ErrDailyLimit is returned when a completion would exceed the daily cap.
// It carries the current counts so callers can surface them to the user.
type ErrDailyLimit struct {
	Completions int
	Cap         int
}

func (e ErrDailyLimit) Error() string {
	return fmt.Sprintf("%s: %d/%d tasks completed today", ErrMsgDailyLimitReached, e.Completions, e.Cap)
}

// Is allows errors.Is() to match any ErrDailyLimit regardless of counts
func (e ErrDailyLimit) Is(target error) bool {
	_, ok := target.(ErrDailyLimit)
	return ok
}
