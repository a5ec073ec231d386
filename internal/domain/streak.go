package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Streak tracks consecutive-day completions for a single habit task.
// Day boundaries are whole UTC calendar days.
type Streak struct {
	ID     uuid.UUID `json:"id"`
	HeroID uuid.UUID `json:"hero_id"`
	TaskID uuid.UUID `json:"task_id"`

	CurrentDays int        `json:"current_days"`
	LongestDays int        `json:"longest_days"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	LastCheckIn *time.Time `json:"last_check_in,omitempty"`

	FreezeCharges     int        `json:"freeze_charges"`
	FreezeActiveUntil *time.Time `json:"freeze_active_until,omitempty"`
	IsShieldActive    bool       `json:"is_shield_active"`
	ShieldExpiresAt   *time.Time `json:"shield_expires_at,omitempty"`

	TotalBreaks   int        `json:"total_breaks"`
	LastBreakDate *time.Time `json:"last_break_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStreak creates an empty streak for a habit task
func NewStreak(heroID, taskID uuid.UUID, now time.Time) *Streak {
	return &Streak{
		ID:        uuid.New(),
		HeroID:    heroID,
		TaskID:    taskID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Reconcile clears expired freeze and shield windows. Callers invoke this
// at the start of every operation so the reads below stay side-effect free.
func (s *Streak) Reconcile(now time.Time) {
	if s.FreezeActiveUntil != nil && now.After(*s.FreezeActiveUntil) {
		s.FreezeActiveUntil = nil
	}
	if s.IsShieldActive && s.ShieldExpiresAt != nil && now.After(*s.ShieldExpiresAt) {
		s.IsShieldActive = false
		s.ShieldExpiresAt = nil
	}
}

// IsFrozen reports whether a freeze window is active. Pure read; call
// Reconcile first.
func (s *Streak) IsFrozen(now time.Time) bool {
	return s.FreezeActiveUntil != nil && now.Before(*s.FreezeActiveUntil)
}

// IsProtected reports whether breakage is currently suppressed by either
// a freeze or a shield
func (s *Streak) IsProtected(now time.Time) bool {
	return s.IsFrozen(now) || s.IsShieldActive
}

// RegisterSuccess records a completion for the streak's habit.
// Consecutive calendar days extend the streak, a same-day repeat is a
// no-op for the counter, and a gap resets to 1 unless a freeze absorbs it.
func (s *Streak) RegisterSuccess(now time.Time) {
	s.Reconcile(now)

	if s.StartDate == nil {
		start := now
		s.StartDate = &start
		s.CurrentDays = 1
	} else {
		last := *s.StartDate
		if s.LastCheckIn != nil && s.LastCheckIn.After(last) {
			last = *s.LastCheckIn
		}

		switch days := wholeDaysBetween(last, now); {
		case days == 1:
			s.CurrentDays++
		case days > 1 && !s.IsFrozen(now):
			start := now
			s.CurrentDays = 1
			s.StartDate = &start
		}
		// days == 0 (same-day repeat) and frozen gaps leave the count alone
	}

	checkIn := now
	s.LastCheckIn = &checkIn

	if s.CurrentDays > s.LongestDays {
		s.LongestDays = s.CurrentDays
	}
	s.UpdatedAt = now
}

// Break zeroes the streak and records the breakage. Suppression by
// freeze or shield is the caller's decision, not Break's.
func (s *Streak) Break(now time.Time) {
	s.CurrentDays = 0
	s.StartDate = nil
	s.TotalBreaks++
	s.LastBreakDate = &now
	s.UpdatedAt = now
}

// HalveDays cuts the day count in half, floor-rounded. Applied as a
// secondary cascade when the hero dies.
func (s *Streak) HalveDays(now time.Time) {
	s.CurrentDays = int(math.Floor(float64(s.CurrentDays) * (1 - DeathStreakPenaltyPercent)))
	if s.CurrentDays < 0 {
		s.CurrentDays = 0
	}
	s.UpdatedAt = now
}

// UseFreeze spends a freeze charge, opening a freeze window that absorbs
// missed days. Returns false if no charges remain or a freeze is active.
func (s *Streak) UseFreeze(now time.Time) bool {
	s.Reconcile(now)
	if s.FreezeCharges <= 0 || s.IsFrozen(now) {
		return false
	}
	s.FreezeCharges--
	until := now.Add(StreakFreezeHours * time.Hour)
	s.FreezeActiveUntil = &until
	s.UpdatedAt = now
	return true
}

// ActivateShield turns on breakage protection until the given expiry.
// A nil expiry means the shield lasts until explicitly cleared.
func (s *Streak) ActivateShield(now time.Time, expiresAt *time.Time) {
	s.IsShieldActive = true
	s.ShieldExpiresAt = expiresAt
	s.UpdatedAt = now
}

// Multiplier returns the reward multiplier for the current streak length
func (s *Streak) Multiplier() float64 {
	return StreakMultiplier(s.CurrentDays)
}

// BonusXPPercent returns the streak bonus as a whole percentage for display
func (s *Streak) BonusXPPercent() int {
	return int(math.Round((s.Multiplier() - 1.0) * 100))
}

// Tier returns the 1-based streak tier, one tier per 30 days
func (s *Streak) Tier() int {
	return s.CurrentDays/StreakTierDays + 1
}

// wholeDaysBetween returns the number of whole UTC calendar days from a to b
func wholeDaysBetween(a, b time.Time) int {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	aDay := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bDay := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bDay.Sub(aDay).Hours() / 24)
}
