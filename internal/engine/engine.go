// Package engine applies task outcomes to a hero's aggregates. It is
// pure orchestration over the domain types: no persistence, no I/O, and
// deterministic given an injected clock, so every reward path is
// testable without a database.
package engine

import (
	"time"

	"github.com/lifequest/lifequest/internal/domain"
)

// Clock supplies the current time. Production wiring passes time.Now;
// tests pin a fixed instant.
type Clock func() time.Time

// Engine computes and applies the outcome of completing or failing a
// task. Callers hold the per-hero lock and own transaction boundaries;
// the engine mutates the aggregates it is handed and reports what
// changed.
type Engine struct {
	now Clock
}

// New creates an engine. A nil clock defaults to time.Now.
func New(clock Clock) *Engine {
	if clock == nil {
		clock = time.Now
	}
	return &Engine{now: clock}
}

// CompletionResult reports what a successful completion changed.
type CompletionResult struct {
	XPGained   int64 `json:"xp_gained"`
	GoldGained int64 `json:"gold_gained"`

	LeveledUp    bool `json:"leveled_up"`
	LevelsGained int  `json:"levels_gained"`
	NewLevel     int  `json:"new_level"`

	StreakDays         int `json:"streak_days"`
	StreakBonusPercent int `json:"streak_bonus_percent"`
}

// FailureResult reports what a failure changed.
type FailureResult struct {
	HPLost   int   `json:"hp_lost"`
	GoldLost int64 `json:"gold_lost"`

	HeroDied bool `json:"hero_died"`

	StreakBroken  bool                       `json:"streak_broken"`
	StreakPenalty *domain.StreakBreakPenalty `json:"streak_penalty,omitempty"`
}
