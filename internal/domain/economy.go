package domain

import (
	"time"

	"github.com/google/uuid"
)

// EconomyLedger tracks per-hero daily completion throttling, reward
// multipliers, and lifetime earning totals. One ledger per hero.
//
// The daily counter resets lazily: every read or mutation reconciles
// DailyResetAt against the clock first, so a ledger that sat untouched
// across UTC midnight still reads correctly.
type EconomyLedger struct {
	ID     uuid.UUID `json:"id"`
	HeroID uuid.UUID `json:"hero_id"`

	TotalGoldEarned int64 `json:"total_gold_earned"`
	TotalGoldSpent  int64 `json:"total_gold_spent"`
	TotalXPEarned   int64 `json:"total_xp_earned"`

	DailyTaskCompletions int       `json:"daily_task_completions"`
	MaxDailyCompletions  int       `json:"max_daily_completions"`
	DailyResetAt         time.Time `json:"daily_reset_at"`

	XPMultiplier   float64 `json:"xp_multiplier"`
	GoldMultiplier float64 `json:"gold_multiplier"`

	IsInPenaltyPeriod bool       `json:"is_in_penalty_period"`
	PenaltyEndsAt     *time.Time `json:"penalty_ends_at,omitempty"`
	PenaltyMultiplier float64    `json:"penalty_multiplier"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEconomyLedger creates a fresh ledger with the default daily cap
func NewEconomyLedger(heroID uuid.UUID, now time.Time) *EconomyLedger {
	return &EconomyLedger{
		ID:                  uuid.New(),
		HeroID:              heroID,
		MaxDailyCompletions: DailyTaskCap,
		DailyResetAt:        utcDate(now),
		XPMultiplier:        1.0,
		GoldMultiplier:      1.0,
		PenaltyMultiplier:   1.0,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// ReconcileDailyReset zeroes the daily counter if a UTC day boundary has
// passed since the last reset. Must run before any counter read or write.
func (e *EconomyLedger) ReconcileDailyReset(now time.Time) {
	if utcDate(now).After(e.DailyResetAt) {
		e.DailyResetAt = utcDate(now)
		e.DailyTaskCompletions = 0
	}
}

// CanCompleteTask reports whether the hero is under the daily cap
func (e *EconomyLedger) CanCompleteTask(now time.Time) bool {
	e.ReconcileDailyReset(now)
	return e.DailyTaskCompletions < e.MaxDailyCompletions
}

// IncrementDailyCompletion counts a completion against the daily cap
func (e *EconomyLedger) IncrementDailyCompletion(now time.Time) {
	e.ReconcileDailyReset(now)
	e.DailyTaskCompletions++
	e.UpdatedAt = now
}

// FinalXPMultiplier returns the ledger's XP multiplier, including the
// death-penalty reduction while the penalty window is open
func (e *EconomyLedger) FinalXPMultiplier(now time.Time) float64 {
	multiplier := e.XPMultiplier
	if e.IsInPenaltyPeriod && e.PenaltyEndsAt != nil && !now.After(*e.PenaltyEndsAt) {
		multiplier *= e.PenaltyMultiplier
	}
	return multiplier
}

// ActivateDeathPenalty opens the post-death reward-reduction window.
// This stacks multiplicatively with the hero's own recovery debuff;
// the two model the same event from different aggregates on purpose.
func (e *EconomyLedger) ActivateDeathPenalty(now time.Time) {
	e.IsInPenaltyPeriod = true
	ends := now.Add(PenaltyPeriodHours * time.Hour)
	e.PenaltyEndsAt = &ends
	e.PenaltyMultiplier = PenaltyPeriodMultiplier
	e.UpdatedAt = now
}

// RecordEarnings adds to the lifetime totals
func (e *EconomyLedger) RecordEarnings(xp, gold int64, now time.Time) {
	e.TotalXPEarned += xp
	e.TotalGoldEarned += gold
	e.UpdatedAt = now
}

// RecordSpending adds to the lifetime gold-spent total
func (e *EconomyLedger) RecordSpending(gold int64, now time.Time) {
	e.TotalGoldSpent += gold
	e.UpdatedAt = now
}

// NextResetTime returns when the daily counter next resets (UTC midnight)
func (e *EconomyLedger) NextResetTime() time.Time {
	return e.DailyResetAt.AddDate(0, 0, 1)
}

// utcDate truncates a timestamp to its UTC calendar date
func utcDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
